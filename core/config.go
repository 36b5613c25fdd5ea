package core

import "errors"

// Default timing for the ATtiny85 running from a 32.768 kHz watch crystal.
//
// A 24 hour dial is 360 degrees at 1/3 degree per step, so 1080 steps a day or
// one step every 80 seconds. The motor is a 6 state device and every request
// runs a full 6 phase cycle, so a request is due every 480 seconds.
const (
	DefaultTimerClockHz    = 32768
	DefaultPrescaler       = 1024
	DefaultCounterBits     = 8
	DefaultPulseIntervalUS = 6 * 80 * 1000 * 1000
	DefaultHoldUS          = 3000
	DefaultSelfTestCycles  = 180

	// MaxPrescaler is the largest divider the AVR and RP timers offer
	MaxPrescaler = 1024
)

var (
	ErrZeroTimerClock      = errors.New("timer clock must be non-zero")
	ErrZeroPrescaler       = errors.New("prescaler must be non-zero")
	ErrPrescalerRange      = errors.New("prescaler must be at most 1024")
	ErrCounterBits         = errors.New("counter width must be 1..16 bits")
	ErrInexactTickPeriod   = errors.New("tick period is not a whole number of microseconds")
	ErrTickExceedsInterval = errors.New("tick period exceeds pulse interval")
	ErrZeroHold            = errors.New("phase hold must be non-zero")
	ErrCycleTooLong        = errors.New("motor cycle does not fit in one pulse interval")
)

// Config holds the compile-time timing and actuation constants.
// It is fixed at build time; nothing changes it while the device runs.
type Config struct {
	TimerClockHz    uint32 // Timer clock source in Hz
	Prescaler       uint32 // Timer prescaler divider
	CounterBits     uint8  // Timer width, overflow every 2^CounterBits counts
	PulseIntervalUS uint64 // Accumulated time between pulse requests
	HoldUS          uint32 // Hold time per phase code
	SelfTestCycles  uint16 // Unconditional cycles run once at boot
}

// DefaultConfig returns the production ATtiny85 configuration
func DefaultConfig() Config {
	return Config{
		TimerClockHz:    DefaultTimerClockHz,
		Prescaler:       DefaultPrescaler,
		CounterBits:     DefaultCounterBits,
		PulseIntervalUS: DefaultPulseIntervalUS,
		HoldUS:          DefaultHoldUS,
		SelfTestCycles:  DefaultSelfTestCycles,
	}
}

// overflowScaled returns prescaler * 2^bits * 1e6, the tick period numerator.
func (c Config) overflowScaled() uint64 {
	return (uint64(c.Prescaler) << c.CounterBits) * 1000000
}

// TickPeriodUS returns the time represented by one timer overflow.
// The product is formed before dividing so exact clocks stay exact.
func (c Config) TickPeriodUS() uint64 {
	if c.TimerClockHz == 0 {
		return 0
	}
	return c.overflowScaled() / uint64(c.TimerClockHz)
}

// TicksPerPulse returns the whole number of ticks in one pulse interval.
// Pulses are spaced either this many ticks apart or one more.
func (c Config) TicksPerPulse() uint64 {
	tick := c.TickPeriodUS()
	if tick == 0 {
		return 0
	}
	return c.PulseIntervalUS / tick
}

// Validate checks that the constants are consistent with each other.
// A truncated tick period would lose time on every interrupt, so it is
// rejected rather than rounded.
func (c Config) Validate() error {
	if c.TimerClockHz == 0 {
		return ErrZeroTimerClock
	}
	if c.Prescaler == 0 {
		return ErrZeroPrescaler
	}
	if c.Prescaler > MaxPrescaler {
		return ErrPrescalerRange
	}
	if c.CounterBits == 0 || c.CounterBits > 16 {
		return ErrCounterBits
	}
	if c.overflowScaled()%uint64(c.TimerClockHz) != 0 {
		return ErrInexactTickPeriod
	}
	if c.TickPeriodUS() > c.PulseIntervalUS {
		return ErrTickExceedsInterval
	}
	if c.HoldUS == 0 {
		return ErrZeroHold
	}
	if uint64(c.HoldUS)*PhaseCount >= c.PulseIntervalUS {
		return ErrCycleTooLong
	}
	return nil
}
