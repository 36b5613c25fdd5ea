//go:build !tinygo

package core

var systemTicks uint32

// getSystemTicks returns the trace clock (regular Go implementation)
func getSystemTicks() uint32 {
	return systemTicks
}

// setSystemTicks sets the trace clock (regular Go implementation)
func setSystemTicks(us uint32) {
	systemTicks = us
}
