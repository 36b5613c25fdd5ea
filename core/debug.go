package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// EventSink receives every recorded event in main loop context
type EventSink func(TimingEvent)

// TimingEvent captures a diagnostic event for post-mortem analysis and for
// the bench trace stream.
type TimingEvent struct {
	EventType uint8  // Event type code
	Clock     uint32 // Trace clock (µs) at event
	Value1    uint32 // Context-dependent value
	Value2    uint32 // Context-dependent value
}

// Event type codes. These values go on the wire, do not renumber.
const (
	EvtBoot      = 1 // v1=tick period µs, v2=pulse interval µs
	EvtConfig    = 2 // v1=hold µs, v2=self-test cycles
	EvtPhase     = 3 // v1=phase index, v2=phase code
	EvtCycleDone = 4 // v1=cycles since boot, v2=phases since boot
	EvtSelfTest  = 5 // v1=cycles since boot, v2=phases since boot
	EvtPulse     = 6 // v1=pulses serviced, v2=timer overflows at wake
	EvtOverrun   = 7 // v1=overrun count, v2=timer overflows at wake
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// eventSink forwards events off-chip when set (bench builds)
	eventSink EventSink

	// Timing capture ring buffer (non-blocking, for post-mortem)
	timingRing     [TimingRingSize]TimingEvent
	timingRingHead uint8
	timingEnabled  bool = true
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled.
// Callers building messages by concatenation check it first so nothing is
// allocated on targets that never log.
func IsDebugEnabled() bool {
	return debugEnabled
}

// SetEventSink installs a receiver for recorded events; nil disables it
func SetEventSink(sink EventSink) {
	eventSink = sink
}

// SetTimingEnabled turns event capture on or off
func SetTimingEnabled(enabled bool) {
	timingEnabled = enabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// recordEvent stamps an event with the trace clock and records it.
// Main loop context only: the ring and the sink are not interrupt safe.
func recordEvent(eventType uint8, value1, value2 uint32) {
	RecordTiming(eventType, GetTime(), value1, value2)
}

// RecordTiming captures an event in the ring buffer and hands it to the sink
func RecordTiming(eventType uint8, clock, value1, value2 uint32) {
	if !timingEnabled {
		return
	}
	evt := TimingEvent{
		EventType: eventType,
		Clock:     clock,
		Value1:    value1,
		Value2:    value2,
	}
	idx := timingRingHead
	timingRing[idx] = evt
	timingRingHead = (idx + 1) % TimingRingSize

	if eventSink != nil {
		eventSink(evt)
	}
}

// RecentEvents returns the captured events, oldest first
func RecentEvents() []TimingEvent {
	events := make([]TimingEvent, 0, TimingRingSize)
	start := timingRingHead
	for i := uint8(0); i < TimingRingSize; i++ {
		evt := timingRing[(start+i)%TimingRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		events = append(events, evt)
	}
	return events
}

// EventName returns a short name for an event type code
func EventName(eventType uint8) string {
	switch eventType {
	case EvtBoot:
		return "BOOT"
	case EvtConfig:
		return "CONFIG"
	case EvtPhase:
		return "PHASE"
	case EvtCycleDone:
		return "CYCLE"
	case EvtSelfTest:
		return "SELF_TEST"
	case EvtPulse:
		return "PULSE"
	case EvtOverrun:
		return "OVERRUN!"
	default:
		return "UNKNOWN"
	}
}

// DumpTimingRing outputs the timing ring buffer through the debug writer
func DumpTimingRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[TIMING] === Timing Ring Dump ===")
	for _, evt := range RecentEvents() {
		debugPrintln("[TIMING] " + EventName(evt.EventType) +
			" clock=" + utoa(evt.Clock) +
			" v1=" + utoa(evt.Value1) +
			" v2=" + utoa(evt.Value2))
	}
	debugPrintln("[TIMING] === End Dump ===")
}

// ClearTimingRing clears the timing buffer
func ClearTimingRing() {
	for i := range timingRing {
		timingRing[i] = TimingEvent{}
	}
	timingRingHead = 0
}
