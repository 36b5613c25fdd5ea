package core

// Firmware ties the interrupt side and the main loop side together through
// one shared PulseRequest.
//
//	timer overflow -> OnTimerOverflow (RateAccumulator) -> PulseRequest
//	    -> Loop (MotorDriver) -> phase output pins
type Firmware struct {
	cfg     Config
	request PulseRequest
	acc     *RateAccumulator
	motor   *MotorDriver
	idle    Idler

	pulses   uint32 // requests serviced since boot
	overruns uint32 // last overrun count reported
	booted   bool
}

// New validates cfg and wires the accumulator and motor driver to a shared
// pulse request.
func New(cfg Config, out PhaseOutput, hold Holder, idle Idler) (*Firmware, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f := &Firmware{
		cfg:   cfg,
		motor: NewMotorDriver(out, hold, cfg.HoldUS),
		idle:  idle,
	}
	f.acc = NewRateAccumulator(cfg.TickPeriodUS(), cfg.PulseIntervalUS, &f.request)
	return f, nil
}

// OnTimerOverflow is the timer overflow interrupt body. It only advances
// the accumulator; it never touches pins or records events.
func (f *Firmware) OnTimerOverflow() {
	f.acc.Tick()
}

// Boot runs the startup self-test cycles. Only the first call has any effect.
func (f *Firmware) Boot() {
	if f.booted {
		return
	}
	f.booted = true
	recordEvent(EvtBoot, uint32(f.cfg.TickPeriodUS()), uint32(f.cfg.PulseIntervalUS))
	recordEvent(EvtConfig, f.cfg.HoldUS, uint32(f.cfg.SelfTestCycles))
	if IsDebugEnabled() {
		DebugPrintln("[BOOT] tick_us=" + utoa(uint32(f.cfg.TickPeriodUS())) +
			" interval_us=" + utoa(uint32(f.cfg.PulseIntervalUS)) +
			" self_test=" + utoa(uint32(f.cfg.SelfTestCycles)))
	}

	f.motor.SelfTest(f.cfg.SelfTestCycles)
	recordEvent(EvtSelfTest, f.motor.Cycles(), f.motor.Phases())
	if IsDebugEnabled() {
		DebugPrintln("[BOOT] self-test done uptime_us=" + utoa(TimeSinceBoot()))
	}
}

// Wake handles one wake-up of the main loop and reports whether the motor
// was actuated.
func (f *Firmware) Wake() bool {
	ticks := f.acc.Ticks()
	if !f.motor.Service(&f.request) {
		return false
	}
	f.pulses++
	recordEvent(EvtPulse, f.pulses, ticks)
	if n := f.request.Overruns(); n != f.overruns {
		f.overruns = n
		recordEvent(EvtOverrun, n, ticks)
		if IsDebugEnabled() {
			DebugPrintln("[PULSE] overrun count=" + utoa(n))
		}
	}
	return true
}

// Loop is one pass of the main loop: service any request, then sleep until
// the next timer interrupt.
func (f *Firmware) Loop() {
	f.Wake()
	f.idle.WaitForInterrupt()
}

// Run boots and then loops forever.
func (f *Firmware) Run() {
	f.Boot()
	for {
		f.Loop()
	}
}

// Request returns the shared pulse request
func (f *Firmware) Request() *PulseRequest {
	return &f.request
}

// Accumulator returns the interrupt-side accumulator
func (f *Firmware) Accumulator() *RateAccumulator {
	return f.acc
}

// Motor returns the main loop motor driver
func (f *Firmware) Motor() *MotorDriver {
	return f.motor
}

// Pulses returns the number of pulse requests serviced since boot
func (f *Firmware) Pulses() uint32 {
	return f.pulses
}
