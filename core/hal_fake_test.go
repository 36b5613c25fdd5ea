package core

// benchOp is one call observed by testBench
type benchOp struct {
	write bool   // true for WritePhase, false for Hold
	value uint32 // phase code or hold µs
}

// testBench implements PhaseOutput, Holder and Idler for tests.
// WaitForInterrupt simulates the timer firing by calling onInterrupt.
type testBench struct {
	ops         []benchOp
	idles       int
	onInterrupt func()

	// phase codes written before the first idle wait
	phasesBeforeIdle int
}

func (b *testBench) WritePhase(code uint8) {
	b.ops = append(b.ops, benchOp{write: true, value: uint32(code & PhaseMask)})
}

func (b *testBench) Hold(us uint32) {
	b.ops = append(b.ops, benchOp{value: us})
}

func (b *testBench) WaitForInterrupt() {
	if b.idles == 0 {
		b.phasesBeforeIdle = b.phaseWrites()
	}
	b.idles++
	if b.onInterrupt != nil {
		b.onInterrupt()
	}
}

// phaseWrites counts writes of non-off codes
func (b *testBench) phaseWrites() int {
	n := 0
	for _, op := range b.ops {
		if op.write && op.value != uint32(PhaseOff) {
			n++
		}
	}
	return n
}

func (b *testBench) reset() {
	b.ops = b.ops[:0]
}
