//go:build rp2040 || rp2350

package main

import (
	"io"
	"machine"

	"vidclock/core"
	"vidclock/protocol"
)

var (
	traceUART    io.Writer
	traceEncoder *protocol.Encoder
	traceOutput  *protocol.ScratchOutput

	// Debug counters
	framesSent  uint32
	traceErrors uint32
)

// InitTrace starts the binary event stream on UART0 (TX=GPIO0, RX=GPIO1).
// Each core timing event becomes one framed message for vidclock-host monitor.
func InitTrace(baud uint32) {
	uart, err := openTraceUART(baud, machine.GPIO0, machine.GPIO1)
	if err != nil {
		return
	}
	traceUART = uart

	traceEncoder = protocol.NewEncoder()
	traceOutput = protocol.NewScratchOutput()
	core.SetEventSink(sendTraceEvent)
}

// sendTraceEvent frames one event and writes it out. It runs in main loop
// context, between the pin write and the hold, so the UART time only ever
// lengthens a hold.
func sendTraceEvent(evt core.TimingEvent) {
	if traceUART == nil {
		return
	}
	traceOutput.Reset()
	traceEncoder.EncodeEvent(traceOutput, evt.EventType, evt.Clock, evt.Value1, evt.Value2)

	result := traceOutput.Result()
	written := 0
	for written < len(result) {
		n, err := traceUART.Write(result[written:])
		if err != nil || n == 0 {
			traceErrors++
			return
		}
		written += n
	}
	framesSent++
}

// InitDebug routes core text diagnostics to USB CDC, keeping UART0 for
// binary frames only.
func InitDebug(enabled bool) {
	if !enabled {
		return
	}
	if err := machine.Serial.Configure(machine.UARTConfig{}); err != nil {
		return
	}
	core.SetDebugWriter(func(s string) {
		machine.Serial.Write([]byte(s))
		machine.Serial.Write([]byte("\r\n"))
	})
	core.SetDebugEnabled(true)
}
