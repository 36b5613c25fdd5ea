//go:build rp2350

package pio

import "machine"

// PIOPhaseOutput is not wired up on RP2350 yet; NewPhaseOutput falls back to
// the SIO backend.
type PIOPhaseOutput struct{}

func NewPIOPhaseOutput(pioNum, smNum uint8) *PIOPhaseOutput {
	return &PIOPhaseOutput{}
}

func (b *PIOPhaseOutput) Init(base machine.Pin) error {
	return ErrPIOUnavailable
}

func (b *PIOPhaseOutput) WritePhase(code uint8) {}
