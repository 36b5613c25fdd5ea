//go:build !tinygo

package core

import "sync/atomic"

// pulseFlag backs PulseRequest on regular Go, where the "interrupt" is
// usually another goroutine.
type pulseFlag struct {
	set      atomic.Bool
	overruns atomic.Uint32
}

func (f *pulseFlag) raise() bool {
	if f.set.Swap(true) {
		f.overruns.Add(1)
		return false
	}
	return true
}

func (f *pulseFlag) pending() bool {
	return f.set.Load()
}

func (f *pulseFlag) swapClear() bool {
	return f.set.Swap(false)
}

func (f *pulseFlag) overrunCount() uint32 {
	return f.overruns.Load()
}
