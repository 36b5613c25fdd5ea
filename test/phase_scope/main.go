//go:build rp2040 || rp2350

package main

// Phase output scope test - runs motor cycles back to back on both phase
// backends at a range of hold times. Put a logic analyzer on GP2..GP4 and
// check that the three lines always change on the same edge and the codes
// follow 5,1,3,2,6,4,0.

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/delay"

	"vidclock/core"
	"vidclock/targets/pio"
)

const phaseBase = machine.GPIO2

// Hold times to sweep, in microseconds
var holdTests = []struct {
	holdUS uint32
	name   string
}{
	{3000, "Production (3 ms)"},
	{1000, "Fast (1 ms)"},
	{100, "Very fast (100 us)"},
	{10, "Edge check (10 us)"},
}

type busyHolder struct{}

func (busyHolder) Hold(us uint32) {
	delay.Sleep(time.Duration(us) * time.Microsecond)
}

func main() {
	time.Sleep(3 * time.Second)

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	// Flash LED to indicate start
	for i := 0; i < 3; i++ {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}

	println("=== Phase Output Scope Test ===")
	println("Lead 1: GP2, Leads 2&3: GP3, Lead 4: GP4")

	usePIO := true
	round := 0
	for {
		round++
		out, backend := pio.NewPhaseOutput(phaseBase, usePIO)
		println("\n=== Round", round, "backend:", backend, "===")

		for _, test := range holdTests {
			println("Hold:", test.name)
			motor := core.NewMotorDriver(out, busyHolder{}, test.holdUS)

			led.High()
			startTime := time.Now()
			for time.Since(startTime) < 3*time.Second {
				motor.Cycle()
			}
			led.Low()

			println("  cycles:", motor.Cycles(), "phases:", motor.Phases())
			time.Sleep(500 * time.Millisecond)
		}

		// The PIO state machine stays claimed; later rounds compare against SIO
		usePIO = false
		time.Sleep(1 * time.Second)
	}
}
