package core

import (
	"strings"
	"testing"
)

func TestTimingRingWraps(t *testing.T) {
	ClearTimingRing()
	t.Cleanup(ClearTimingRing)

	for i := uint32(1); i <= TimingRingSize+5; i++ {
		RecordTiming(EvtPhase, i, i, 0)
	}

	events := RecentEvents()
	if len(events) != TimingRingSize {
		t.Fatalf("Expected %d events, got %d", TimingRingSize, len(events))
	}
	if events[0].Clock != 6 {
		t.Errorf("Expected oldest event clock 6, got %d", events[0].Clock)
	}
	if events[len(events)-1].Clock != TimingRingSize+5 {
		t.Errorf("Expected newest event clock %d, got %d", TimingRingSize+5, events[len(events)-1].Clock)
	}
}

func TestRecordEventUsesTraceClock(t *testing.T) {
	ClearTimingRing()
	SetTime(12345)
	t.Cleanup(func() {
		SetTime(0)
		ClearTimingRing()
	})

	recordEvent(EvtCycleDone, 1, 6)
	events := RecentEvents()
	if len(events) != 1 || events[0].Clock != 12345 {
		t.Errorf("unexpected events %+v", events)
	}
}

func TestDumpTimingRing(t *testing.T) {
	ClearTimingRing()
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	t.Cleanup(func() {
		SetDebugWriter(func(string) {})
		ClearTimingRing()
	})

	RecordTiming(EvtPulse, 100, 3, 180)
	DumpTimingRing()

	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %v", len(lines), lines)
	}
	if want := "[TIMING] PULSE clock=100 v1=3 v2=180"; lines[1] != want {
		t.Errorf("got %q, want %q", lines[1], want)
	}
}

func TestDebugPrintlnDisabled(t *testing.T) {
	var got []string
	SetDebugWriter(func(s string) { got = append(got, s) })
	t.Cleanup(func() {
		SetDebugWriter(func(string) {})
		SetDebugEnabled(false)
	})

	DebugPrintln("hidden")
	SetDebugEnabled(true)
	DebugPrintln("shown")

	if strings.Join(got, ",") != "shown" {
		t.Errorf("unexpected output %v", got)
	}
}

func TestUtoa(t *testing.T) {
	testCases := map[uint32]string{
		0:          "0",
		7:          "7",
		480000000:  "480000000",
		4294967295: "4294967295",
	}
	for in, want := range testCases {
		if got := utoa(in); got != want {
			t.Errorf("utoa(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestTimingDisabledSkipsCapture(t *testing.T) {
	ClearTimingRing()
	var sunk int
	SetEventSink(func(TimingEvent) { sunk++ })
	t.Cleanup(func() {
		SetTimingEnabled(true)
		SetEventSink(nil)
		ClearTimingRing()
	})

	SetTimingEnabled(false)
	RecordTiming(EvtPulse, 1, 1, 60)
	if len(RecentEvents()) != 0 || sunk != 0 {
		t.Errorf("disabled capture recorded %d events, sink saw %d", len(RecentEvents()), sunk)
	}

	SetTimingEnabled(true)
	RecordTiming(EvtPulse, 2, 2, 120)
	if len(RecentEvents()) != 1 || sunk != 1 {
		t.Errorf("enabled capture recorded %d events, sink saw %d", len(RecentEvents()), sunk)
	}
}

func TestTimeSinceBootWraps(t *testing.T) {
	t.Cleanup(func() {
		SetTime(0)
		TimerInit()
	})

	SetTime(0xFFFFFF00)
	TimerInit()
	SetTime(0x100)
	if got := TimeSinceBoot(); got != 0x200 {
		t.Errorf("Expected 0x200 µs since boot across wrap, got %#x", got)
	}
}
