//go:build attiny85

package main

import (
	"device/avr"

	"vidclock/core"
)

// The core runs directly from the 32.768 kHz crystal
const cpuHz = core.DefaultTimerClockHz

// Cycles per pass of the hold loop: nop, 16-bit decrement, taken branch
const holdLoopCycles = 5

// portOutput writes the phase code to PB0..PB2 with one PORTB store.
// Only the main loop writes PORTB, so the read-modify-write cannot race.
type portOutput struct{}

func (portOutput) WritePhase(code uint8) {
	port := avr.PORTB.Get() &^ core.PhaseMask
	avr.PORTB.Set(port | code&core.PhaseMask)
}

// busyHolder spins for the phase hold. At 32.768 kHz a 3 ms hold is about
// 98 cycles, so the loop is counted in cycles rather than handed to the
// runtime sleep, which shares Timer0 with the clock tick. The overflow
// interrupt can still fire during it and only raises the pulse request.
type busyHolder struct{}

func (busyHolder) Hold(us uint32) {
	for n := core.SpinIterations(us, cpuHz, holdLoopCycles); n > 0; n-- {
		avr.Asm("nop")
	}
}

// idleSleeper enters idle sleep. Timer0 keeps running in idle mode and its
// overflow interrupt wakes the core.
type idleSleeper struct{}

func (idleSleeper) WaitForInterrupt() {
	// SM1:0 = 00 selects idle mode
	avr.MCUCR.ClearBits(avr.MCUCR_SM0 | avr.MCUCR_SM1)
	avr.MCUCR.SetBits(avr.MCUCR_SE)
	avr.Asm("sleep")
	avr.MCUCR.ClearBits(avr.MCUCR_SE)
}
