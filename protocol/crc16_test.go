package protocol

import "testing"

func TestCRC16Empty(t *testing.T) {
	if got := CRC16(nil); got != 0xFFFF {
		t.Errorf("CRC16 of empty input = 0x%04X, want 0xFFFF", got)
	}
}

func TestCRC16KnownValue(t *testing.T) {
	// CRC-16/MCRF4XX check value
	if got := CRC16([]byte("123456789")); got != 0x6F91 {
		t.Errorf("CRC16(\"123456789\") = 0x%04X, want 0x6F91", got)
	}
}

func TestCRC16Different(t *testing.T) {
	data1 := []byte{0x01, 0x02, 0x03}
	data2 := []byte{0x01, 0x02, 0x04}

	if CRC16(data1) == CRC16(data2) {
		t.Errorf("CRC16 collision: both inputs produced %04X", CRC16(data1))
	}
}
