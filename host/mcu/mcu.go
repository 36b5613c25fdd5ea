package mcu

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"vidclock/host/serial"
	"vidclock/protocol"
)

// Link is a read-only connection to the bench board's trace UART. A
// background reader decodes frames and delivers events in order on Events.
type Link struct {
	port    io.ReadCloser
	decoder *protocol.Decoder

	events chan protocol.Event

	mu       sync.Mutex
	stats    protocol.DecoderStats
	bytesIn  uint64
	readErrs uint64

	// Stop channel for graceful shutdown
	stopChan chan struct{}
	doneChan chan struct{}
	stopOnce sync.Once
}

// Connect opens the serial port described by cfg and starts reading
func Connect(cfg *serial.Config) (*Link, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace link: %w", err)
	}
	if err := port.Flush(); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to flush %s: %w", cfg.Device, err)
	}
	return NewLink(port), nil
}

// NewLink starts decoding frames from port
func NewLink(port io.ReadCloser) *Link {
	l := &Link{
		port:     port,
		decoder:  protocol.NewDecoder(),
		events:   make(chan protocol.Event, 64),
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}

	go l.readLoop()

	return l
}

// Events returns the decoded event stream. It is closed once the link is
// closed; an idle line does not end it.
func (l *Link) Events() <-chan protocol.Event {
	return l.events
}

// Stats returns the decoder counters
func (l *Link) Stats() protocol.DecoderStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// BytesRead returns the number of raw bytes received
func (l *Link) BytesRead() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bytesIn
}

// ReadErrors returns the number of failed reads (other than EOF)
func (l *Link) ReadErrors() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readErrs
}

// Close stops the reader and closes the serial port
func (l *Link) Close() error {
	var err error
	l.stopOnce.Do(func() {
		close(l.stopChan)
		err = l.port.Close()
		<-l.doneChan // Wait for read loop to finish
	})
	return err
}

// readLoop continuously reads from the port and decodes frames
func (l *Link) readLoop() {
	defer close(l.doneChan)
	defer close(l.events)

	buffer := make([]byte, 256)

	for {
		select {
		case <-l.stopChan:
			return
		default:
		}

		n, err := l.port.Read(buffer)
		if n > 0 {
			events := l.decoder.Feed(buffer[:n])

			l.mu.Lock()
			l.bytesIn += uint64(n)
			l.stats = l.decoder.Stats()
			l.mu.Unlock()

			for _, evt := range events {
				select {
				case l.events <- evt:
				case <-l.stopChan:
					return
				}
			}
		}
		if err != nil {
			// tarm/serial reports a read timeout with no data as io.EOF;
			// the firmware is silent for minutes between cycles.
			if errors.Is(err, io.EOF) {
				time.Sleep(time.Millisecond)
				continue
			}
			l.mu.Lock()
			l.readErrs++
			l.mu.Unlock()
			time.Sleep(10 * time.Millisecond)
		}
	}
}
