package core

// MotorDriver actuates the stepper one full 6 phase cycle at a time.
// It runs in main loop context only.
type MotorDriver struct {
	out    PhaseOutput
	hold   Holder
	holdUS uint32

	cycles uint32 // completed cycles since boot
	phases uint32 // phase codes applied since boot
}

// NewMotorDriver creates a driver writing to out and holding each phase for holdUS
func NewMotorDriver(out PhaseOutput, hold Holder, holdUS uint32) *MotorDriver {
	return &MotorDriver{
		out:    out,
		hold:   hold,
		holdUS: holdUS,
	}
}

// Cycle applies every phase code in table order, holding each, then switches
// the coils off so no current flows between requests.
func (d *MotorDriver) Cycle() {
	for i, code := range PhaseTable {
		d.out.WritePhase(code)
		d.phases++
		recordEvent(EvtPhase, uint32(i), uint32(code))
		d.hold.Hold(d.holdUS)
	}
	d.out.WritePhase(PhaseOff)
	d.cycles++
	recordEvent(EvtCycleDone, d.cycles, d.phases)
}

// SelfTest runs n cycles unconditionally. Used once at power-on to seat the
// gear train and make assembly errors visible.
func (d *MotorDriver) SelfTest(n uint16) {
	for j := uint16(0); j < n; j++ {
		d.Cycle()
	}
}

// Service runs one cycle if a pulse request is pending and reports whether
// it did. The request is cleared before actuating so a request raised during
// the cycle is kept for the next wake. With no request pending no pin is
// touched.
func (d *MotorDriver) Service(req *PulseRequest) bool {
	if !req.Take() {
		return false
	}
	d.Cycle()
	return true
}

// Cycles returns the number of completed cycles since boot
func (d *MotorDriver) Cycles() uint32 {
	return d.cycles
}

// Phases returns the number of phase codes applied since boot
func (d *MotorDriver) Phases() uint32 {
	return d.phases
}
