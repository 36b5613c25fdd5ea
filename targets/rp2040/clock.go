//go:build rp2040 || rp2350

package main

import "vidclock/core"

// InitClock prepares the 1MHz microsecond timer for reading.
// TinyGo's runtime has already started the tick generators; a few discarded
// reads let the counter settle before the boot time is latched.
func InitClock() {
	_ = timerRawL.Get()
	_ = timerRawL.Get()
	_ = timerRawL.Get()
	UpdateSystemTime()
}

// GetHardwareTime reads the low 32 bits of the microsecond counter
func GetHardwareTime() uint32 {
	return timerRawL.Get()
}

// GetHardwareUptime reads the full 64-bit hardware timer
func GetHardwareUptime() uint64 {
	// Must read high first, then low, then high again to detect rollover
	for {
		high1 := timerRawH.Get()
		low := timerRawL.Get()
		high2 := timerRawH.Get()

		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}

// UpdateSystemTime publishes the hardware time as the core trace clock
func UpdateSystemTime() {
	core.SetTime(GetHardwareTime())
}
