package core

// PhaseOutput drives the three motor output pins.
// Implementations must update all three bits together; a partially applied
// code is a different phase as far as the motor is concerned.
type PhaseOutput interface {
	// WritePhase applies a 3-bit phase code (bits above PhaseMask are ignored)
	WritePhase(code uint8)
}

// Holder blocks the caller for a fixed time while the coils respond.
// This is a blocking hold, not a scheduled timer: the caller does not
// resume until the time has elapsed.
type Holder interface {
	Hold(us uint32)
}

// Idler puts the CPU into its low-power wait and returns after the next
// timer interrupt has been serviced.
type Idler interface {
	WaitForInterrupt()
}
