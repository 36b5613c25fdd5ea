//go:build rp2040 || rp2350

package pio

import (
	"device/rp"
	"machine"

	"vidclock/core"
)

// GPIOPhaseOutput drives the phase pins directly through SIO.
// A phase change is a single GPIO_OUT_XOR store, which flips exactly the
// bits that differ, so all three pins change on the same bus cycle.
type GPIOPhaseOutput struct {
	base  machine.Pin
	shift uint32
	mask  uint32
}

// NewGPIOPhaseOutput creates a new SIO-based phase backend
func NewGPIOPhaseOutput() *GPIOPhaseOutput {
	return &GPIOPhaseOutput{}
}

// Init configures base, base+1 and base+2 as outputs, all low
func (b *GPIOPhaseOutput) Init(base machine.Pin) {
	b.base = base
	b.shift = uint32(base)
	b.mask = uint32(core.PhaseMask) << b.shift

	for i := machine.Pin(0); i < 3; i++ {
		pin := base + i
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pin.Low()
	}
}

// WritePhase applies a phase code to the three pins
func (b *GPIOPhaseOutput) WritePhase(code uint8) {
	want := uint32(code&core.PhaseMask) << b.shift
	have := rp.SIO.GPIO_OUT.Get() & b.mask
	rp.SIO.GPIO_OUT_XOR.Set(have ^ want)
}
