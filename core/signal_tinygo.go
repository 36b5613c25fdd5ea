//go:build tinygo

package core

import "runtime/volatile"

// pulseFlag backs PulseRequest on TinyGo targets. Both fields are single
// bytes so every load and store is one instruction, even on 8-bit AVR.
type pulseFlag struct {
	set      volatile.Register8
	overruns volatile.Register8 // saturates at 255
}

func (f *pulseFlag) raise() bool {
	if f.set.Get() != 0 {
		if n := f.overruns.Get(); n != 0xFF {
			f.overruns.Set(n + 1)
		}
		return false
	}
	f.set.Set(1)
	return true
}

func (f *pulseFlag) pending() bool {
	return f.set.Get() != 0
}

// swapClear must run with interrupts masked, see PulseRequest.Take.
func (f *pulseFlag) swapClear() bool {
	v := f.set.Get()
	f.set.Set(0)
	return v != 0
}

func (f *pulseFlag) overrunCount() uint32 {
	return uint32(f.overruns.Get())
}
