// vidclock-host - bench tooling for the vidclock firmware.
//
// monitor checks the live trace stream of a bench board; sim runs the
// firmware's rate accumulator over a simulated deployment.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
