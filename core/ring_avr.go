//go:build avr

package core

// TimingRingSize is kept tiny on AVR, where the whole chip may have 512 bytes of RAM
const TimingRingSize = 4
