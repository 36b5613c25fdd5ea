package core

// PulseRequest is the hand-off between the timer interrupt and the main loop.
//
// Ownership is split per direction: only the interrupt handler sets the
// request (Raise) and only the main loop clears it (Take). The request is a
// coalescing signal of capacity one; raising an already-pending request does
// not queue a second one, it only bumps the overrun counter.
type PulseRequest struct {
	flag pulseFlag
}

// Raise sets the request. Interrupt context only.
// Returns false when the request was already pending and the raise coalesced.
func (r *PulseRequest) Raise() bool {
	return r.flag.raise()
}

// Pending reports whether a request is waiting, without clearing it.
func (r *PulseRequest) Pending() bool {
	return r.flag.pending()
}

// Take reads and clears the request in one step. Main loop only.
// A Raise that lands while Take runs is either returned now or left pending
// for the next wake, never dropped.
func (r *PulseRequest) Take() bool {
	state := disableInterrupts()
	v := r.flag.swapClear()
	restoreInterrupts(state)
	return v
}

// Overruns returns how many raises found the request still pending.
func (r *PulseRequest) Overruns() uint32 {
	return r.flag.overrunCount()
}
