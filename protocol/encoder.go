package protocol

// Encoder frames trace events. It keeps the rolling 4-bit sequence and
// writes a lone sync byte ahead of the first frame so a host that is
// already listening locks on immediately.
type Encoder struct {
	seq     uint8
	started bool
}

// NewEncoder creates an Encoder starting at sequence 0
func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodeEvent appends one framed event to output
func (e *Encoder) EncodeEvent(output OutputBuffer, evtType uint8, clock, value1, value2 uint32) {
	if !e.started {
		output.Output([]byte{MessageValueSync})
		e.started = true
	}

	e.encodeFrame(output, func(output OutputBuffer) {
		EncodeVLQUint(output, uint32(evtType))
		EncodeVLQUint(output, clock)
		EncodeVLQUint(output, value1)
		EncodeVLQUint(output, value2)
	})
	e.seq = (e.seq + 1) & MessageSeqMask
}

// encodeFrame writes header, body, CRC and sync byte
func (e *Encoder) encodeFrame(output OutputBuffer, frameData func(output OutputBuffer)) {
	cursor := output.CurPosition()

	// Length placeholder and sequence
	output.Output([]byte{0, MessageDest | e.seq})

	frameData(output)

	changed := len(output.DataSince(cursor))
	output.Update(cursor, uint8(changed+MessageTrailerSize))

	crc := CRC16(output.DataSince(cursor))
	output.Output([]byte{
		uint8((crc & 0xFF00) >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})
}
