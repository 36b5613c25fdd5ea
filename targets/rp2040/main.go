//go:build rp2040 || rp2350

// Bench image: the production firmware core on an RP2040/RP2350 board, with
// the timer overflow emulated from the microsecond timer and every timing
// event streamed out of UART0 for vidclock-host monitor.
package main

import (
	"machine"
	"time"

	"vidclock/core"
	"vidclock/targets/pio"
)

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	mode := GetMode()

	InitClock()
	core.TimerInit()

	InitDebug(mode.Debug)
	InitTrace(mode.TraceBaud)

	out, backend := pio.NewPhaseOutput(mode.PhaseBase, mode.UsePIO)
	out.WritePhase(core.PhaseOff)
	core.DebugPrintln("[BENCH] phase backend=" + backend)

	cfg := core.DefaultConfig()
	speedup := uint64(mode.Speedup)
	if speedup == 0 {
		speedup = 1
	}

	// The ticker only calls back from WaitForInterrupt, after fw is set
	var fw *core.Firmware
	ticker := newOverflowTicker(cfg.TickPeriodUS()/speedup, func() {
		fw.OnTimerOverflow()
	})
	fw, err = core.New(cfg, stampedOutput{out: out}, delayHolder{}, ticker)
	if err != nil {
		haltWithError(err)
	}

	fw.Run()
}

// haltWithError keeps reporting a configuration error; the motor is never
// driven from an invalid config.
func haltWithError(err error) {
	for {
		core.DebugPrintln("[BENCH] invalid config: " + err.Error())
		time.Sleep(5 * time.Second)
	}
}
