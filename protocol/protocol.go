// Package protocol frames diagnostic trace events for the bench serial link.
//
// Frames use the Klipper message block layout so a stream can be resynchronised
// after noise or a mid-stream connect:
//
//	[len][0x10|seq][VLQ type][VLQ clock][VLQ v1][VLQ v2][crc16 hi][crc16 lo][0x7E]
//
// The link is one way, device to host. There are no acknowledgements; the host
// detects loss from sequence gaps.
package protocol

// Version of the trace stream format
const Version = "1"

// Protocol constants
const (
	MessageMax         = 512 // Scratch output buffer size
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10

	// Message sequence masks
	MessageSeqMask = 0x0F
)

// Event is one decoded trace record. Type codes are defined by the firmware
// (core.Evt*); the framing does not interpret them.
type Event struct {
	Type   uint8
	Seq    uint8  // 4-bit frame sequence
	Clock  uint32 // Device trace clock in µs
	Value1 uint32
	Value2 uint32
}
