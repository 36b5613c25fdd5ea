//go:build rp2350

package main

import (
	"io"
	"machine"
)

// openTraceUART configures the machine package UART0
func openTraceUART(baud uint32, tx, rx machine.Pin) (io.Writer, error) {
	hw := machine.UART0
	err := hw.Configure(machine.UARTConfig{
		BaudRate: baud,
		TX:       tx,
		RX:       rx,
	})
	if err != nil {
		return nil, err
	}
	return hw, nil
}
