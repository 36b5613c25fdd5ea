//go:build rp2040

package main

import (
	"io"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// openTraceUART configures UART0 through uartx
func openTraceUART(baud uint32, tx, rx machine.Pin) (io.Writer, error) {
	hw := uartx.UART0
	err := hw.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       tx,
		RX:       rx,
	})
	if err != nil {
		return nil, err
	}
	return hw, nil
}
