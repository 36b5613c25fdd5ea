package main

import (
	"testing"

	"vidclock/core"
)

func TestSimulateDefaultDay(t *testing.T) {
	cfg := core.DefaultConfig()
	r := simulate(cfg, 10800) // one day of 8s ticks

	if r.Pulses != 180 || r.ExpectedPulses != 180 {
		t.Errorf("Expected 180 pulses per day, got %d (expected %d)", r.Pulses, r.ExpectedPulses)
	}
	if r.ResidualUS != 0 {
		t.Errorf("Expected no residual, got %dus", r.ResidualUS)
	}
	// 8s divides 480s, so resetting to zero happens to be exact here
	if r.NaivePulses != 180 {
		t.Errorf("Expected reset-to-zero to match, got %d", r.NaivePulses)
	}
}

func TestSimulateUnevenInterval(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.PulseIntervalUS = 100 * 1000 * 1000

	r := simulate(cfg, 100000)

	if r.Pulses != r.ExpectedPulses {
		t.Errorf("Carried remainder must not drift: %d pulses, expected %d", r.Pulses, r.ExpectedPulses)
	}
	if r.ElapsedUS-r.Pulses*cfg.PulseIntervalUS != r.ResidualUS {
		t.Errorf("Residual %dus does not account for the remaining time", r.ResidualUS)
	}
	// Reset-to-zero waits 13 ticks (104s) per pulse
	if r.NaivePulses != 100000/13 {
		t.Errorf("Expected %d naive pulses, got %d", 100000/13, r.NaivePulses)
	}
	if r.DriftUS(cfg.PulseIntervalUS) == 0 {
		t.Error("Expected the reset-to-zero design to drift")
	}
	if r.Overruns != 0 {
		t.Errorf("Expected no overruns, got %d", r.Overruns)
	}
}

func TestSimCommand(t *testing.T) {
	t.Cleanup(func() {
		simPrescaler = core.DefaultPrescaler
		simBits = core.DefaultCounterBits
	})

	rootCmd.SetArgs([]string{"sim", "--days", "1", "--interval", "480000000"})
	if err := Execute(); err != nil {
		t.Fatalf("sim failed: %v", err)
	}

	// Tick period longer than the interval is rejected before simulating
	rootCmd.SetArgs([]string{"sim", "--days", "1", "--interval", "1000"})
	if err := Execute(); err == nil {
		t.Error("Expected sim to reject an interval shorter than the tick")
	}

	// Out of range deployment lengths are rejected rather than converted
	for _, days := range []string{"0", "-1", "NaN", "1e9"} {
		rootCmd.SetArgs([]string{"sim", "--days=" + days, "--interval", "480000000"})
		if err := Execute(); err == nil {
			t.Errorf("Expected sim to reject --days=%s", days)
		}
	}

	rootCmd.SetArgs([]string{"sim", "--days", "1", "--prescaler", "4294967295", "--bits", "16"})
	if err := Execute(); err == nil {
		t.Error("Expected sim to reject a prescaler no timer has")
	}
}
