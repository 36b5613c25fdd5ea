//go:build rp2040 || rp2350

package main

import (
	"runtime/interrupt"
	"time"
)

// overflowTicker stands in for the 8-bit timer overflow of the production
// board. It is the Idler for the bench firmware: WaitForInterrupt sleeps
// until the next emulated overflow deadline and then runs the overflow
// handler with interrupts masked, as the hardware vector would.
//
// Deadlines advance by a fixed period from the previous deadline, not from
// the wake time, so a late wake does not stretch the emulated clock.
type overflowTicker struct {
	periodUS   uint64
	next       uint64
	onOverflow func()
}

// maxSleepUS bounds a single sleep so a long period still re-checks the timer
const maxSleepUS = 10000

func newOverflowTicker(periodUS uint64, onOverflow func()) *overflowTicker {
	if periodUS == 0 {
		periodUS = 1
	}
	return &overflowTicker{
		periodUS:   periodUS,
		next:       GetHardwareUptime() + periodUS,
		onOverflow: onOverflow,
	}
}

// WaitForInterrupt implements core.Idler
func (t *overflowTicker) WaitForInterrupt() {
	for {
		now := GetHardwareUptime()
		if now >= t.next {
			break
		}
		remaining := t.next - now
		if remaining > maxSleepUS {
			remaining = maxSleepUS
		}
		time.Sleep(time.Duration(remaining) * time.Microsecond)
	}
	t.next += t.periodUS

	state := interrupt.Disable()
	t.onOverflow()
	interrupt.Restore(state)

	UpdateSystemTime()
}
