// Package monitor checks a bench trace stream against the behaviour the
// clock firmware promises: whole cycles in table order, holds that are never
// shortened, the full self-test at boot and one cycle per pulse interval.
package monitor

import (
	"fmt"
	"strings"

	"vidclock/core"
	"vidclock/protocol"
)

// maxViolations bounds the violations kept for the report; all are counted
const maxViolations = 100

// Violation is one broken expectation found in the stream
type Violation struct {
	Clock  uint32
	Kind   string
	Detail string
}

func (v Violation) String() string {
	return fmt.Sprintf("[%s] clock=%d %s", v.Kind, v.Clock, v.Detail)
}

// Monitor consumes events in stream order. The timing parameters are learned
// from the boot and config events the firmware sends first.
type Monitor struct {
	// Learned from EvtBoot / EvtConfig
	tickUS         uint64
	intervalUS     uint64
	holdUS         uint32
	selfTestCycles uint32
	haveBoot       bool

	boots int

	// Cycle tracking
	phaseIdx       int
	lastPhaseClock uint32
	cycles         uint32
	selfTestDone   bool
	selfTestSeen   uint32
	pulseCycles    uint32

	// Pulse tracking
	pulses         uint32
	firstPulseTick uint32
	lastPulseTick  uint32
	overruns       uint32

	violations     []Violation
	violationCount int
}

// New creates an empty monitor
func New() *Monitor {
	return &Monitor{}
}

// Feed checks one event
func (m *Monitor) Feed(evt protocol.Event) {
	switch evt.Type {
	case core.EvtBoot:
		m.onBoot(evt)
	case core.EvtConfig:
		m.holdUS = evt.Value1
		m.selfTestCycles = evt.Value2
	case core.EvtPhase:
		m.onPhase(evt)
	case core.EvtCycleDone:
		m.onCycleDone(evt)
	case core.EvtSelfTest:
		m.onSelfTest(evt)
	case core.EvtPulse:
		m.onPulse(evt)
	case core.EvtOverrun:
		m.overruns = evt.Value1
		m.violate(evt.Clock, "overrun",
			fmt.Sprintf("pulse request coalesced, %d step(s) lost so far", evt.Value1))
	default:
		m.violate(evt.Clock, "unknown", fmt.Sprintf("event type %d", evt.Type))
	}
}

// onBoot starts a fresh boot. A reboot mid-stream is reported but the new
// boot is checked from scratch.
func (m *Monitor) onBoot(evt protocol.Event) {
	if m.haveBoot {
		m.violate(evt.Clock, "reboot", fmt.Sprintf("boot #%d", m.boots+1))
	}
	*m = Monitor{
		boots:          m.boots + 1,
		violations:     m.violations,
		violationCount: m.violationCount,
	}
	m.haveBoot = true
	m.tickUS = uint64(evt.Value1)
	m.intervalUS = uint64(evt.Value2)
}

func (m *Monitor) onPhase(evt protocol.Event) {
	if !m.haveBoot {
		return
	}
	idx, code := int(evt.Value1), uint8(evt.Value2)

	switch {
	case idx != m.phaseIdx:
		m.violate(evt.Clock, "sequence",
			fmt.Sprintf("phase index %d, expected %d", idx, m.phaseIdx))
	case idx >= core.PhaseCount:
		m.violate(evt.Clock, "sequence", fmt.Sprintf("phase index %d out of range", idx))
	case code != core.PhaseTable[idx]:
		m.violate(evt.Clock, "sequence",
			fmt.Sprintf("phase %d code %#x, expected %#x", idx, code, core.PhaseTable[idx]))
	}

	if m.phaseIdx > 0 {
		m.checkHold(evt.Clock)
	}
	m.lastPhaseClock = evt.Clock
	m.phaseIdx = idx + 1
}

func (m *Monitor) onCycleDone(evt protocol.Event) {
	if !m.haveBoot {
		return
	}
	if m.phaseIdx != core.PhaseCount {
		m.violate(evt.Clock, "sequence",
			fmt.Sprintf("cycle ended after %d phases", m.phaseIdx))
	} else {
		m.checkHold(evt.Clock)
	}
	m.phaseIdx = 0

	m.cycles++
	if evt.Value1 != m.cycles {
		m.violate(evt.Clock, "count",
			fmt.Sprintf("cycle count %d, expected %d", evt.Value1, m.cycles))
		m.cycles = evt.Value1
	}
	if evt.Value2 != m.cycles*core.PhaseCount {
		m.violate(evt.Clock, "count",
			fmt.Sprintf("phase count %d after %d cycles", evt.Value2, m.cycles))
	}

	if m.selfTestDone {
		m.pulseCycles++
	}
}

func (m *Monitor) onSelfTest(evt protocol.Event) {
	if !m.haveBoot {
		return
	}
	m.selfTestDone = true
	m.selfTestSeen = evt.Value1
	if evt.Value1 != m.selfTestCycles {
		m.violate(evt.Clock, "self-test",
			fmt.Sprintf("%d cycles, expected %d", evt.Value1, m.selfTestCycles))
	}
	if evt.Value2 != evt.Value1*core.PhaseCount {
		m.violate(evt.Clock, "self-test",
			fmt.Sprintf("%d phases for %d cycles", evt.Value2, evt.Value1))
	}
}

func (m *Monitor) onPulse(evt protocol.Event) {
	if !m.haveBoot {
		return
	}
	if !m.selfTestDone {
		m.violate(evt.Clock, "self-test", "pulse serviced before self-test finished")
	}

	m.pulses++
	if evt.Value1 != m.pulses {
		m.violate(evt.Clock, "count",
			fmt.Sprintf("pulse count %d, expected %d", evt.Value1, m.pulses))
		m.pulses = evt.Value1
	}
	if m.pulseCycles != m.pulses {
		m.violate(evt.Clock, "count",
			fmt.Sprintf("%d cycles for %d pulses", m.pulseCycles, m.pulses))
		m.pulseCycles = m.pulses
	}

	ticks := evt.Value2
	lo, hi := m.TicksPerPulse()
	var spacing uint32
	if m.pulses == 1 {
		m.firstPulseTick = ticks
		spacing = ticks
	} else {
		spacing = ticks - m.lastPulseTick
	}
	if hi > 0 && (spacing < lo || spacing > hi) {
		m.violate(evt.Clock, "spacing",
			fmt.Sprintf("pulse %d after %d ticks, expected %d..%d", m.pulses, spacing, lo, hi))
	}
	m.lastPulseTick = ticks
}

func (m *Monitor) checkHold(clock uint32) {
	held := clock - m.lastPhaseClock
	if held < m.holdUS {
		m.violate(clock, "hold",
			fmt.Sprintf("phase %d held %dus, minimum %dus", m.phaseIdx-1, held, m.holdUS))
	}
}

func (m *Monitor) violate(clock uint32, kind, detail string) {
	m.violationCount++
	if len(m.violations) < maxViolations {
		m.violations = append(m.violations, Violation{Clock: clock, Kind: kind, Detail: detail})
	}
}

// TicksPerPulse returns the bounds on timer overflows between two pulses.
// The carried remainder makes the spacing alternate between floor and ceil
// of interval/tick; both are equal when the tick divides the interval.
func (m *Monitor) TicksPerPulse() (lo, hi uint32) {
	if m.tickUS == 0 {
		return 0, 0
	}
	lo = uint32(m.intervalUS / m.tickUS)
	hi = lo
	if m.intervalUS%m.tickUS != 0 {
		hi++
	}
	return lo, hi
}

// Report summarises the stream seen so far
func (m *Monitor) Report() Report {
	r := Report{
		Boots:          m.boots,
		TickUS:         m.tickUS,
		IntervalUS:     m.intervalUS,
		HoldUS:         m.holdUS,
		SelfTestCycles: m.selfTestSeen,
		SelfTestDone:   m.selfTestDone,
		Cycles:         m.cycles,
		Pulses:         m.pulses,
		Overruns:       m.overruns,
		Violations:     m.violations,
		ViolationCount: m.violationCount,
	}
	if m.pulses > 1 {
		ticks := uint64(m.lastPulseTick - m.firstPulseTick)
		r.MeanIntervalUS = float64(ticks*m.tickUS) / float64(m.pulses-1)
	}
	return r
}

// Report is the outcome of a monitoring session
type Report struct {
	Boots          int
	TickUS         uint64
	IntervalUS     uint64
	HoldUS         uint32
	SelfTestCycles uint32
	SelfTestDone   bool
	Cycles         uint32
	Pulses         uint32
	Overruns       uint32
	MeanIntervalUS float64 // from timer overflows between first and last pulse
	Violations     []Violation
	ViolationCount int
}

// OK reports whether a boot was seen and nothing was violated
func (r Report) OK() bool {
	return r.Boots > 0 && r.ViolationCount == 0
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "boots:            %d\n", r.Boots)
	fmt.Fprintf(&b, "tick / interval:  %dus / %dus\n", r.TickUS, r.IntervalUS)
	fmt.Fprintf(&b, "hold:             %dus\n", r.HoldUS)
	fmt.Fprintf(&b, "self-test:        %d cycles (done=%v)\n", r.SelfTestCycles, r.SelfTestDone)
	fmt.Fprintf(&b, "cycles / pulses:  %d / %d\n", r.Cycles, r.Pulses)
	fmt.Fprintf(&b, "overruns:         %d\n", r.Overruns)
	if r.Pulses > 1 {
		fmt.Fprintf(&b, "mean interval:    %.0fus\n", r.MeanIntervalUS)
	}
	fmt.Fprintf(&b, "violations:       %d\n", r.ViolationCount)
	for _, v := range r.Violations {
		fmt.Fprintf(&b, "  %s\n", v)
	}
	if r.ViolationCount > len(r.Violations) {
		fmt.Fprintf(&b, "  ... and %d more\n", r.ViolationCount-len(r.Violations))
	}
	return b.String()
}
