package protocol

import (
	"bytes"
	"errors"
)

var (
	ErrTrailingData = errors.New("trailing data after event fields")
)

// DecoderStats counts what the decoder had to throw away
type DecoderStats struct {
	Frames        uint64 // Frames decoded
	CRCErrors     uint64 // Frames dropped on checksum mismatch
	FramingErrors uint64 // Bad length, destination, sync byte or body
	SeqGaps       uint64 // Sequence discontinuities (lost frames)
}

// Decoder turns a raw byte stream back into events, resynchronising on the
// sync byte after any framing or checksum error.
type Decoder struct {
	buf     *FifoBuffer
	synced  bool
	nextSeq uint8
	haveSeq bool
	stats   DecoderStats
}

// NewDecoder creates a decoder. It starts unsynchronised and discards
// input up to the first sync byte.
func NewDecoder() *Decoder {
	return &Decoder{
		buf: NewFifoBuffer(4 * MessageLengthMax),
	}
}

// Stats returns the error counters
func (d *Decoder) Stats() DecoderStats {
	return d.stats
}

// Feed consumes raw bytes and returns every event completed by them
func (d *Decoder) Feed(data []byte) []Event {
	var events []Event
	for len(data) > 0 {
		n := d.buf.Write(data)
		data = data[n:]
		events = d.drain(events)
	}
	return events
}

// drain parses as many whole frames as the buffer holds
func (d *Decoder) drain(events []Event) []Event {
	data := d.buf.Data()
	total := len(data)

	for len(data) > 0 {
		if !d.synced {
			syncPos := bytes.IndexByte(data, MessageValueSync)
			if syncPos < 0 {
				data = nil
				break
			}
			data = data[syncPos+1:]
			d.synced = true
			continue
		}

		// Skip leading sync bytes
		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		if len(data) < MessageLengthMin {
			break
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.desync()
			continue
		}

		seq := data[MessagePositionSeq]
		if seq&^MessageSeqMask != MessageDest {
			d.desync()
			continue
		}

		// Wait for full message
		if len(data) < msgLen {
			break
		}

		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.desync()
			continue
		}

		frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
			uint16(data[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.stats.CRCErrors++
			d.synced = false
			continue
		}

		frame := data[MessageHeaderSize : msgLen-MessageTrailerSize]
		data = data[msgLen:]

		ev, err := DecodeEvent(frame)
		if err != nil {
			d.stats.FramingErrors++
			continue
		}
		ev.Seq = seq & MessageSeqMask
		d.checkSequence(ev.Seq)
		d.stats.Frames++
		events = append(events, ev)
	}

	d.buf.Pop(total - len(data))
	return events
}

func (d *Decoder) desync() {
	d.stats.FramingErrors++
	d.synced = false
}

func (d *Decoder) checkSequence(seq uint8) {
	if d.haveSeq && seq != d.nextSeq {
		d.stats.SeqGaps++
	}
	d.nextSeq = (seq + 1) & MessageSeqMask
	d.haveSeq = true
}

// DecodeEvent parses the body of one frame
func DecodeEvent(frame []byte) (Event, error) {
	var ev Event

	evtType, err := DecodeVLQUint(&frame)
	if err != nil {
		return ev, err
	}
	if ev.Clock, err = DecodeVLQUint(&frame); err != nil {
		return ev, err
	}
	if ev.Value1, err = DecodeVLQUint(&frame); err != nil {
		return ev, err
	}
	if ev.Value2, err = DecodeVLQUint(&frame); err != nil {
		return ev, err
	}
	if len(frame) != 0 {
		return ev, ErrTrailingData
	}
	ev.Type = uint8(evtType)
	return ev, nil
}
