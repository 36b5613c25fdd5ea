//go:build attiny85

// Production image for the ATtiny85 clock board.
//
// Clocking: a 32.768kHz watch crystal on PB3/PB4 drives the core directly
// (low-frequency crystal oscillator fuses, CKDIV8 unprogrammed). Timer0 runs
// from it with a /1024 prescaler and overflows every 256 counts, once every
// 8 seconds. Flash with the attiny85-32khz.json target:
//
//	tinygo flash -target ./targets/attiny85/attiny85-32khz.json ./targets/attiny85
//
// Pins: PB0 = lead 1, PB1 = leads 2&3, PB2 = lead 4.
package main

import (
	"device/avr"
	"runtime/interrupt"

	"vidclock/core"
)

var fw *core.Firmware

func main() {
	InitPower()
	InitOutputs()
	// No debugger or trace link reads the ring on this board
	core.SetTimingEnabled(false)

	var err error
	fw, err = core.New(core.DefaultConfig(), portOutput{}, busyHolder{}, idleSleeper{})
	if err != nil {
		// Never drive the motor from an invalid config
		halt()
	}

	InitTimer()
	fw.Run()
}

// InitPower turns off everything the clock does not use
func InitPower() {
	avr.ADCSRA.Set(0)
	avr.PRR.SetBits(avr.PRR_PRTIM1 | avr.PRR_PRUSI | avr.PRR_PRADC)
}

// InitOutputs makes PB0..PB2 (phase) and PB5 outputs, all low
func InitOutputs() {
	avr.DDRB.SetBits(avr.DDRB_DDB0 | avr.DDRB_DDB1 | avr.DDRB_DDB2 | avr.DDRB_DDB5)
	avr.PORTB.ClearBits(avr.PORTB_PORTB0 | avr.PORTB_PORTB1 | avr.PORTB_PORTB2)
}

// InitTimer starts Timer0 at clk/1024 with the overflow interrupt enabled
func InitTimer() {
	interrupt.New(avr.IRQ_TIMER0_OVF, func(interrupt.Interrupt) {
		fw.OnTimerOverflow()
	})
	avr.TCCR0A.Set(0)
	avr.TCCR0B.Set(avr.TCCR0B_CS00 | avr.TCCR0B_CS02)
	avr.TIMSK.SetBits(avr.TIMSK_TOIE0)
	avr.Asm("sei")
}

// halt parks the chip in power-down with the coils off. Nothing is armed
// to wake it, so the loop only guards against a stray wakeup.
func halt() {
	avr.PORTB.ClearBits(avr.PORTB_PORTB0 | avr.PORTB_PORTB1 | avr.PORTB_PORTB2)
	avr.Asm("cli")
	// SM1:0 = 10 selects power-down
	avr.MCUCR.ClearBits(avr.MCUCR_SM0)
	avr.MCUCR.SetBits(avr.MCUCR_SM1 | avr.MCUCR_SE)
	for {
		avr.Asm("sleep")
	}
}
