package core

// SpinIterations returns how many passes of a cycle-counted busy loop cover
// at least us microseconds on a core clocked at cpuHz, where one pass costs
// cyclesPerIter cycles. The count rounds up so a hold is never cut short,
// and saturates at 0xFFFF to fit a 16-bit loop counter.
func SpinIterations(us, cpuHz, cyclesPerIter uint32) uint16 {
	if cyclesPerIter == 0 {
		cyclesPerIter = 1
	}
	cycles := (uint64(us)*uint64(cpuHz) + 999999) / 1000000
	n := (cycles + uint64(cyclesPerIter) - 1) / uint64(cyclesPerIter)
	if n > 0xFFFF {
		return 0xFFFF
	}
	return uint16(n)
}
