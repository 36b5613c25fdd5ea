//go:build rp2040

package pio

// PIO phase backend using tinygo-org/pio.
// The state machine owns three consecutive OUT pins; every FIFO word carries
// one phase code in its low 3 bits and is latched onto all three pins by a
// single OUT instruction, so the coils never see a half-written code.

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"vidclock/core"
)

// Program flow:
//  1. Block until a phase word is in the TX FIFO
//  2. Shift 3 bits onto the OUT pins
//
// buildPhaseProgram creates the phase PIO program using AssemblerV0
func buildPhaseProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),          // 0: pull block
		asm.Out(rp2pio.OutDestPins, 3).Encode(), // 1: out pins, 3
		// .wrap
	}
}

const phasePIOOrigin = 0

// PIOPhaseOutput writes phase codes through a PIO state machine
type PIOPhaseOutput struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	base   machine.Pin
	offset uint8
	pioNum uint8
	smNum  uint8
}

// NewPIOPhaseOutput creates a PIO phase backend
// pioNum: 0 for PIO0, 1 for PIO1
// smNum: 0-3 for state machine number
func NewPIOPhaseOutput(pioNum, smNum uint8) *PIOPhaseOutput {
	var pioHW *rp2pio.PIO
	if pioNum == 0 {
		pioHW = rp2pio.PIO0
	} else {
		pioHW = rp2pio.PIO1
	}

	return &PIOPhaseOutput{
		pio:    pioHW,
		sm:     pioHW.StateMachine(smNum),
		pioNum: pioNum,
		smNum:  smNum,
	}
}

// Init loads the program and claims base, base+1 and base+2 as outputs
func (b *PIOPhaseOutput) Init(base machine.Pin) error {
	b.base = base

	// Claim the state machine before touching its registers
	if !b.sm.TryClaim() {
		return ErrPIOUnavailable
	}

	program := buildPhaseProgram()
	offset, err := b.pio.AddProgram(program, phasePIOOrigin)
	if err != nil {
		return err
	}
	b.offset = offset

	for i := machine.Pin(0); i < 3; i++ {
		(base + i).Configure(machine.PinConfig{Mode: b.pio.PinMode()})
	}

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetOutPins(base, 3)

	// Shift right, autopull disabled (explicit PULL), 32-bit threshold
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)

	// Timing comes from the CPU side hold; the SM only has to keep up
	cfg.SetClkDivIntFrac(1000, 0)

	b.sm.Init(offset, cfg)

	// Pin directions must be set after Init
	b.sm.SetPindirsConsecutive(base, 3, true)
	b.sm.SetPinsConsecutive(base, 3, false)

	b.sm.SetEnabled(true)
	return nil
}

// WritePhase queues a phase code for the state machine
func (b *PIOPhaseOutput) WritePhase(code uint8) {
	for b.sm.IsTxFIFOFull() {
		// Busy wait; the program drains one word per two instructions
	}
	b.sm.TxPut(uint32(code & core.PhaseMask))
}
