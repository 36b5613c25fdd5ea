//go:build rp2040 || rp2350

package main

import (
	"time"

	"tinygo.org/x/drivers/delay"

	"vidclock/core"
)

// delayHolder busy-waits for the phase hold. On Cortex-M delay.Sleep counts
// CPU cycles, so the hold does not depend on the scheduler.
type delayHolder struct{}

func (delayHolder) Hold(us uint32) {
	delay.Sleep(time.Duration(us) * time.Microsecond)
}

// stampedOutput refreshes the trace clock after every pin write so the
// phase and cycle events carry the time the code was applied.
type stampedOutput struct {
	out core.PhaseOutput
}

func (s stampedOutput) WritePhase(code uint8) {
	s.out.WritePhase(code)
	UpdateSystemTime()
}
