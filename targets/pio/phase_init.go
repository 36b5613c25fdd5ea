//go:build rp2040 || rp2350

package pio

import (
	"errors"
	"machine"

	"vidclock/core"
)

// ErrPIOUnavailable is returned when no PIO state machine can drive the phase pins
var ErrPIOUnavailable = errors.New("pio: no state machine available")

var (
	// PIO allocation tracking
	// RP2040/RP2350 has 2 PIO blocks (PIO0, PIO1) with 4 state machines each
	pioAllocations = [2][4]bool{} // [pioNum][smNum]
	nextPIONum     = uint8(0)
	nextSMNum      = uint8(0)
)

// NewPhaseOutput returns the backend driving three consecutive pins starting
// at base. With preferPIO set a PIO state machine is tried first; the SIO
// backend is used when PIO is not available on this chip or is exhausted.
func NewPhaseOutput(base machine.Pin, preferPIO bool) (core.PhaseOutput, string) {
	if preferPIO {
		if pioNum, smNum, ok := allocatePIO(); ok {
			out := NewPIOPhaseOutput(pioNum, smNum)
			if err := out.Init(base); err == nil {
				return out, "PIO"
			}
			releasePIO(pioNum, smNum)
		}
	}

	out := NewGPIOPhaseOutput()
	out.Init(base)
	return out, "GPIO"
}

// allocatePIO allocates a PIO state machine
// Returns (pioNum, smNum, ok)
func allocatePIO() (uint8, uint8, bool) {
	// Round-robin allocation across PIO blocks and state machines
	for i := 0; i < 8; i++ { // 2 PIO × 4 SM = 8 total
		pioNum := nextPIONum
		smNum := nextSMNum

		// Advance to next slot
		nextSMNum++
		if nextSMNum >= 4 {
			nextSMNum = 0
			nextPIONum = (nextPIONum + 1) % 2
		}

		if !pioAllocations[pioNum][smNum] {
			pioAllocations[pioNum][smNum] = true
			return pioNum, smNum, true
		}
	}

	return 0, 0, false
}

func releasePIO(pioNum, smNum uint8) {
	pioAllocations[pioNum][smNum] = false
}
