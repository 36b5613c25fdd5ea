//go:build tinygo

package core

import "runtime/volatile"

var systemTicksValue uint32

// getSystemTicks returns the trace clock
func getSystemTicks() uint32 {
	return volatile.LoadUint32(&systemTicksValue)
}

// setSystemTicks sets the trace clock
func setSystemTicks(us uint32) {
	volatile.StoreUint32(&systemTicksValue, us)
}
