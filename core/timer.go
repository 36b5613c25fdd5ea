package core

// Trace clock in microseconds. Targets with a free-running microsecond counter
// publish it here so diagnostic events can be stamped; the production image
// never sets it and every stamp reads zero.

var bootTime uint32

// GetTime returns the current trace clock in microseconds
func GetTime() uint32 {
	return getSystemTicks()
}

// SetTime sets the trace clock (for target clock code and tests)
func SetTime(us uint32) {
	setSystemTicks(us)
}

// TimeSinceBoot returns microseconds elapsed since TimerInit.
// Wraps after ~71 minutes, callers compare with unsigned subtraction.
func TimeSinceBoot() uint32 {
	return GetTime() - bootTime
}

// TimerInit latches the boot time
func TimerInit() {
	bootTime = GetTime()
}
