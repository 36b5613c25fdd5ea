package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vidclock-host",
	Short: "Bench tooling for the vidclock firmware",
	Long: `vidclock-host checks the 24 hour clock firmware on a bench.

  monitor   decode the bench image's UART trace and check phase order, holds,
            the boot self-test and pulse spacing
  sim       run the pulse rate accumulator over a simulated deployment`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
