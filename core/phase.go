package core

// PhaseCount is the number of electrical states in one motor cycle
const PhaseCount = 6

// PhaseOff de-energises all coils between cycles
const PhaseOff uint8 = 0x0

// PhaseTable is the VID29 6 state drive sequence. It must be applied strictly
// forward; the motor keeps its own magnetic state and a skipped or repeated
// code desynchronises it.
//
//	VID29 lead   4  2&3  1
//	bit          2   1   0   code
//	state 0      1   0   1   0x5
//	state 1      0   0   1   0x1
//	state 2      0   1   1   0x3
//	state 3      0   1   0   0x2
//	state 4      1   1   0   0x6
//	state 5      1   0   0   0x4
var PhaseTable = [PhaseCount]uint8{0x5, 0x1, 0x3, 0x2, 0x6, 0x4}

// PhaseMask covers the three output bits of a phase code
const PhaseMask uint8 = 0x7
