package monitor

import (
	"strings"
	"testing"

	"vidclock/core"
	"vidclock/protocol"
)

// benchRig runs the real firmware on the host. Holds advance the trace
// clock, every idle is one timer overflow, and each event goes through the
// wire encoder and decoder before reaching the monitor.
type benchRig struct {
	fw      *core.Firmware
	mon     *Monitor
	enc     *protocol.Encoder
	dec     *protocol.Decoder
	scratch *protocol.ScratchOutput
}

type nopOutput struct{}

func (nopOutput) WritePhase(uint8) {}

type clockHolder struct{}

func (clockHolder) Hold(us uint32) {
	core.SetTime(core.GetTime() + us)
}

type rigIdler struct {
	rig *benchRig
}

func (i rigIdler) WaitForInterrupt() {
	i.rig.fw.OnTimerOverflow()
}

func newBenchRig(t *testing.T, cfg core.Config) *benchRig {
	t.Helper()
	rig := &benchRig{
		mon:     New(),
		enc:     protocol.NewEncoder(),
		dec:     protocol.NewDecoder(),
		scratch: protocol.NewScratchOutput(),
	}
	fw, err := core.New(cfg, nopOutput{}, clockHolder{}, rigIdler{rig: rig})
	if err != nil {
		t.Fatalf("core.New failed: %v", err)
	}
	rig.fw = fw

	core.SetTime(0)
	core.SetEventSink(func(evt core.TimingEvent) {
		rig.scratch.Reset()
		rig.enc.EncodeEvent(rig.scratch, evt.EventType, evt.Clock, evt.Value1, evt.Value2)
		for _, e := range rig.dec.Feed(rig.scratch.Result()) {
			rig.mon.Feed(e)
		}
	})
	t.Cleanup(func() { core.SetEventSink(nil) })
	return rig
}

func TestMonitorAcceptsFirmwareTrace(t *testing.T) {
	rig := newBenchRig(t, core.DefaultConfig())

	rig.fw.Boot()
	for i := 0; i < 3000; i++ {
		rig.fw.Loop()
	}

	r := rig.mon.Report()
	if !r.OK() {
		t.Fatalf("Expected clean report, got:\n%s", r)
	}
	if r.SelfTestCycles != 180 || !r.SelfTestDone {
		t.Errorf("Expected 180 self-test cycles, got %d (done=%v)", r.SelfTestCycles, r.SelfTestDone)
	}
	if r.Pulses != rig.fw.Pulses() || r.Pulses == 0 {
		t.Errorf("Expected %d pulses, got %d", rig.fw.Pulses(), r.Pulses)
	}
	if r.Cycles != 180+r.Pulses {
		t.Errorf("Expected %d cycles, got %d", 180+r.Pulses, r.Cycles)
	}
	if r.MeanIntervalUS != 480000000 {
		t.Errorf("Expected mean interval 480000000us, got %.0f", r.MeanIntervalUS)
	}
	if stats := rig.dec.Stats(); stats.SeqGaps != 0 || stats.CRCErrors != 0 {
		t.Errorf("Decoder reported errors: %+v", stats)
	}
}

func TestMonitorAcceptsUnevenSpacing(t *testing.T) {
	// 8s ticks into a 100s interval: pulses alternate 12 and 13 ticks apart
	cfg := core.DefaultConfig()
	cfg.PulseIntervalUS = 100 * 1000 * 1000
	cfg.SelfTestCycles = 2
	rig := newBenchRig(t, cfg)

	rig.fw.Boot()
	for i := 0; i < 1000; i++ {
		rig.fw.Loop()
	}

	r := rig.mon.Report()
	if !r.OK() {
		t.Fatalf("Expected clean report, got:\n%s", r)
	}
	lo, hi := rig.mon.TicksPerPulse()
	if lo != 12 || hi != 13 {
		t.Errorf("Expected 12..13 ticks per pulse, got %d..%d", lo, hi)
	}
	// Long run mean converges on the configured interval
	if r.MeanIntervalUS < 99e6 || r.MeanIntervalUS > 101e6 {
		t.Errorf("Mean interval %.0f too far from 100000000", r.MeanIntervalUS)
	}
}

// scripted feeds a hand-built stream: boot, config, then the given events
func scripted(hold, selfTest uint32, events ...protocol.Event) *Monitor {
	m := New()
	m.Feed(protocol.Event{Type: core.EvtBoot, Value1: 8000000, Value2: 480000000})
	m.Feed(protocol.Event{Type: core.EvtConfig, Value1: hold, Value2: selfTest})
	for _, e := range events {
		m.Feed(e)
	}
	return m
}

// cycleEvents returns the phase and cycle-done events of one clean cycle
func cycleEvents(start, hold, cycle uint32) []protocol.Event {
	var events []protocol.Event
	clock := start
	for i, code := range core.PhaseTable {
		events = append(events, protocol.Event{Type: core.EvtPhase, Clock: clock, Value1: uint32(i), Value2: uint32(code)})
		clock += hold
	}
	events = append(events, protocol.Event{Type: core.EvtCycleDone, Clock: clock, Value1: cycle, Value2: cycle * core.PhaseCount})
	return events
}

func firstKind(r Report) string {
	if len(r.Violations) == 0 {
		return ""
	}
	return r.Violations[0].Kind
}

func TestMonitorViolations(t *testing.T) {
	skipped := cycleEvents(0, 3000, 1)
	skipped = append(skipped[:2], skipped[3:]...) // drop phase 2

	wrongCode := cycleEvents(0, 3000, 1)
	wrongCode[3].Value2 = 0x7

	shortHold := cycleEvents(0, 3000, 1)
	shortHold[4].Clock -= 1

	selfTest := append(cycleEvents(0, 3000, 1),
		protocol.Event{Type: core.EvtSelfTest, Value1: 1, Value2: 6})

	earlyPulse := append(cycleEvents(0, 3000, 1),
		protocol.Event{Type: core.EvtSelfTest, Value1: 1, Value2: 6})
	earlyPulse = append(earlyPulse, cycleEvents(100000, 3000, 2)...)
	earlyPulse = append(earlyPulse, protocol.Event{Type: core.EvtPulse, Clock: 200000, Value1: 1, Value2: 59})

	tests := []struct {
		name     string
		selfTest uint32
		events   []protocol.Event
		kind     string
	}{
		{"skipped phase", 1, skipped, "sequence"},
		{"wrong code", 1, wrongCode, "sequence"},
		{"short hold", 1, shortHold, "hold"},
		{"self-test count", 2, selfTest, "self-test"},
		{"pulse spacing", 1, earlyPulse, "spacing"},
		{"overrun", 1, []protocol.Event{{Type: core.EvtOverrun, Value1: 1, Value2: 120}}, "overrun"},
		{"unknown event", 1, []protocol.Event{{Type: 42}}, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := scripted(3000, tt.selfTest, tt.events...).Report()
			if r.OK() {
				t.Fatalf("Expected a %s violation, report is clean", tt.kind)
			}
			if got := firstKind(r); got != tt.kind {
				t.Errorf("Expected first violation %q, got %q (%v)", tt.kind, got, r.Violations)
			}
		})
	}
}

func TestMonitorCleanScript(t *testing.T) {
	events := append(cycleEvents(0, 3000, 1),
		protocol.Event{Type: core.EvtSelfTest, Value1: 1, Value2: 6})
	events = append(events, cycleEvents(100000, 3000, 2)...)
	events = append(events, protocol.Event{Type: core.EvtPulse, Clock: 200000, Value1: 1, Value2: 60})
	events = append(events, cycleEvents(300000, 3000, 3)...)
	events = append(events, protocol.Event{Type: core.EvtPulse, Clock: 400000, Value1: 2, Value2: 120})

	r := scripted(3000, 1, events...).Report()
	if !r.OK() {
		t.Fatalf("Expected clean report, got:\n%s", r)
	}
	if r.Pulses != 2 || r.Cycles != 3 {
		t.Errorf("Expected 2 pulses and 3 cycles, got %d and %d", r.Pulses, r.Cycles)
	}
	if r.MeanIntervalUS != 480000000 {
		t.Errorf("Expected mean 480000000us, got %.0f", r.MeanIntervalUS)
	}
}

func TestMonitorReboot(t *testing.T) {
	m := scripted(3000, 1, cycleEvents(0, 3000, 1)...)
	m.Feed(protocol.Event{Type: core.EvtBoot, Clock: 5, Value1: 8000000, Value2: 480000000})

	r := m.Report()
	if r.Boots != 2 {
		t.Errorf("Expected 2 boots, got %d", r.Boots)
	}
	if firstKind(r) != "reboot" {
		t.Errorf("Expected reboot violation, got %v", r.Violations)
	}
	if r.Cycles != 0 {
		t.Errorf("Cycle count should restart on reboot, got %d", r.Cycles)
	}
}

func TestReportString(t *testing.T) {
	m := scripted(3000, 1, protocol.Event{Type: 42, Clock: 7})
	out := m.Report().String()
	for _, want := range []string{"boots:            1", "violations:       1", "[unknown] clock=7 event type 42"} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q:\n%s", want, out)
		}
	}
}
