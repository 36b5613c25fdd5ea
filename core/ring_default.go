//go:build !avr

package core

// TimingRingSize keeps the last 32 events for post-mortem
const TimingRingSize = 32
