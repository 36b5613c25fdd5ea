//go:build rp2040 || rp2350

package main

import "machine"

// ModeConfig holds the bench options for this image
type ModeConfig struct {
	// Speedup divides the emulated timer overflow period. 1 runs in real
	// time (one overflow every 8s, one cycle every 480s); 80 gives one
	// cycle every 6s for quick visual checks.
	Speedup uint32

	// PhaseBase is the first of three consecutive phase output pins
	// (base = lead 1, base+1 = leads 2&3, base+2 = lead 4)
	PhaseBase machine.Pin

	// UsePIO drives the phase pins from a PIO state machine when one is free
	UsePIO bool

	// TraceBaud is the UART0 trace stream baud rate
	TraceBaud uint32

	// Debug enables text diagnostics on USB CDC
	Debug bool
}

// GetMode returns the bench configuration
// This can be modified at compile time
func GetMode() ModeConfig {
	return ModeConfig{
		Speedup:   1,
		PhaseBase: machine.GPIO2,
		UsePIO:    true,
		TraceBaud: 115200,
		Debug:     true,
	}
}
