package core

// RateAccumulator turns a fixed-period timer overflow into pulse requests
// at an exact average rate of tick/interval, using integer arithmetic only.
//
// Unaccounted time is carried across interrupts: when a request is raised the
// interval is subtracted rather than the accumulator being zeroed, so the
// overshoot of one interval counts towards the next and no time is lost even
// when the interval is not a multiple of the tick.
//
// All fields are owned by the interrupt handler. The accumulator is bounded
// by interval+tick, well inside uint64 for any Config that passes Validate.
type RateAccumulator struct {
	tickUS      uint64
	intervalUS  uint64
	unaccounted uint64
	ticks       uint32 // overflow count, diagnostics only, wraps
	req         *PulseRequest
}

// NewRateAccumulator creates an accumulator raising req every intervalUS of
// accumulated ticks. tickUS must not exceed intervalUS.
func NewRateAccumulator(tickUS, intervalUS uint64, req *PulseRequest) *RateAccumulator {
	return &RateAccumulator{
		tickUS:     tickUS,
		intervalUS: intervalUS,
		req:        req,
	}
}

// Tick accounts one timer overflow. Interrupt context.
// Returns true when this tick raised a pulse request.
func (a *RateAccumulator) Tick() bool {
	a.ticks++
	a.unaccounted += a.tickUS
	if a.unaccounted < a.intervalUS {
		return false
	}
	a.unaccounted -= a.intervalUS

	a.req.Raise()
	return true
}

// Unaccounted returns the time accumulated towards the next request
func (a *RateAccumulator) Unaccounted() uint64 {
	return a.unaccounted
}

// Ticks returns the number of overflows seen since boot.
// Not read atomically on 8-bit targets; use from interrupt context or for
// diagnostics where a torn read is harmless.
func (a *RateAccumulator) Ticks() uint32 {
	return a.ticks
}
