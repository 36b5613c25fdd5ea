package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidclock/core"
)

// maxSimDays bounds a run to a century of deployment
const maxSimDays = 36500

var (
	simDays      float64
	simClockHz   uint32
	simPrescaler uint32
	simBits      uint8
	simInterval  uint64
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Simulate the pulse rate accumulator",
	Long: `Run the firmware's rate accumulator over a simulated deployment and compare
it with an accumulator that resets to zero on every pulse.

With the production timing (8s ticks, 480s interval) the two agree; pick an
interval that is not a multiple of the tick to see the reset-to-zero drift.`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().Float64Var(&simDays, "days", 30, "Simulated deployment length in days")
	simCmd.Flags().Uint32Var(&simClockHz, "clock", core.DefaultTimerClockHz, "Timer clock in Hz")
	simCmd.Flags().Uint32Var(&simPrescaler, "prescaler", core.DefaultPrescaler, "Timer prescaler")
	simCmd.Flags().Uint8Var(&simBits, "bits", core.DefaultCounterBits, "Timer counter width in bits")
	simCmd.Flags().Uint64Var(&simInterval, "interval", core.DefaultPulseIntervalUS, "Pulse interval in microseconds")
	rootCmd.AddCommand(simCmd)
}

// Result is the outcome of one simulated run
type Result struct {
	Ticks          uint64
	ElapsedUS      uint64
	Pulses         uint64 // carried-remainder accumulator
	ExpectedPulses uint64 // whole intervals in the elapsed time
	ResidualUS     uint64 // time carried towards the next pulse
	NaivePulses    uint64 // accumulator that resets to zero on each pulse
	Overruns       uint32
}

// DriftUS is how far behind the reset-to-zero design's hand ends up
func (r Result) DriftUS(intervalUS uint64) uint64 {
	return (r.ExpectedPulses - r.NaivePulses) * intervalUS
}

// simulate runs the firmware accumulator for ticks overflows, taking every
// request as the main loop would, next to a reset-to-zero accumulator.
func simulate(cfg core.Config, ticks uint64) Result {
	var req core.PulseRequest
	tickUS := cfg.TickPeriodUS()
	acc := core.NewRateAccumulator(tickUS, cfg.PulseIntervalUS, &req)

	var r Result
	var naive uint64
	for i := uint64(0); i < ticks; i++ {
		acc.Tick()
		if req.Take() {
			r.Pulses++
		}

		naive += tickUS
		if naive >= cfg.PulseIntervalUS {
			naive = 0
			r.NaivePulses++
		}
	}

	r.Ticks = ticks
	r.ElapsedUS = ticks * tickUS
	r.ExpectedPulses = r.ElapsedUS / cfg.PulseIntervalUS
	r.ResidualUS = acc.Unaccounted()
	r.Overruns = req.Overruns()
	return r
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg := core.DefaultConfig()
	cfg.TimerClockHz = simClockHz
	cfg.Prescaler = simPrescaler
	cfg.CounterBits = simBits
	cfg.PulseIntervalUS = simInterval

	// Also catches NaN, which fails every comparison
	if !(simDays > 0 && simDays <= maxSimDays) {
		return fmt.Errorf("--days must be in (0, %d], got %v", maxSimDays, simDays)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid timing config: %w", err)
	}

	tickUS := cfg.TickPeriodUS()
	ticks := uint64(simDays * 86400e6 / float64(tickUS))
	r := simulate(cfg, ticks)

	fmt.Println("vidclock accumulator simulation")
	fmt.Println("===============================")
	fmt.Printf("tick period:      %dus (%d ticks per pulse, rounded down)\n", tickUS, cfg.TicksPerPulse())
	fmt.Printf("pulse interval:   %dus\n", cfg.PulseIntervalUS)
	fmt.Printf("simulated:        %.2f days, %d ticks\n", simDays, r.Ticks)
	fmt.Println()
	fmt.Printf("pulses:           %d (expected %d)\n", r.Pulses, r.ExpectedPulses)
	fmt.Printf("residual:         %dus\n", r.ResidualUS)
	fmt.Printf("reset-to-zero:    %d pulses, hand %.1fs behind\n",
		r.NaivePulses, float64(r.DriftUS(cfg.PulseIntervalUS))/1e6)
	return nil
}
