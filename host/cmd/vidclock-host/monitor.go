package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"vidclock/core"
	"vidclock/host/mcu"
	"vidclock/host/monitor"
	"vidclock/host/serial"
	"vidclock/protocol"
)

var (
	// Serial connection flags
	device   string
	baudRate int

	duration time.Duration
	verbose  bool
)

// errViolations makes the process exit non-zero when the trace failed a check
var errViolations = errors.New("trace check failed")

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Check the bench board's trace stream",
	Long: `Decode trace frames from the bench image's UART0 and check them as they
arrive. Runs until interrupted, the link closes or --duration expires, then
prints a report. Exits non-zero if any check failed.`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().StringVarP(&device, "device", "d", "/dev/ttyUSB0", "Serial device of the trace UART")
	monitorCmd.Flags().IntVarP(&baudRate, "baud", "b", serial.DefaultBaud, "Baud rate")
	monitorCmd.Flags().DurationVar(&duration, "duration", 0, "Stop after this long (0 = until interrupted)")
	monitorCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every event")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg := serial.DefaultConfig(device)
	cfg.Baud = baudRate

	link, err := mcu.Connect(cfg)
	if err != nil {
		return err
	}
	defer link.Close()

	fmt.Printf("vidclock monitor\n")
	fmt.Printf("Port: %s @ %d baud\n", device, baudRate)
	fmt.Printf("Press Ctrl+C to stop\n\n")

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt)
	defer signal.Stop(interrupted)

	var deadline <-chan time.Time
	if duration > 0 {
		deadline = time.After(duration)
	}

	mon := monitor.New()
	events := link.Events()

loop:
	for {
		select {
		case evt, ok := <-events:
			if !ok {
				fmt.Println("Trace link closed")
				break loop
			}
			if verbose {
				fmt.Print(formatEvent(evt))
			}
			mon.Feed(evt)
		case <-interrupted:
			break loop
		case <-deadline:
			break loop
		}
	}

	report := mon.Report()
	stats := link.Stats()

	fmt.Println()
	fmt.Println("=== Report ===")
	fmt.Print(report)
	fmt.Printf("link:             %d bytes, %d frames, %d crc errors, %d framing errors, %d seq gaps\n",
		link.BytesRead(), stats.Frames, stats.CRCErrors, stats.FramingErrors, stats.SeqGaps)

	if !report.OK() {
		return errViolations
	}
	return nil
}

func formatEvent(evt protocol.Event) string {
	return fmt.Sprintf("[%s] %2d %-10s clock=%-10d v1=%-10d v2=%d\n",
		time.Now().Format("15:04:05.000"), evt.Seq, core.EventName(evt.Type),
		evt.Clock, evt.Value1, evt.Value2)
}
