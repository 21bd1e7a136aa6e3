// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package drv8711

import "strings"

// Register is the address of one of the DRV8711's 16 bit registers.
type Register uint8

// Register addresses, per the datasheet register map.
const (
	CTRL   Register = 0x00
	TORQUE Register = 0x01
	OFF    Register = 0x02
	BLANK  Register = 0x03
	DECAY  Register = 0x04
	// 0x05 (STALL) and 0x06 (DRIVE) are not implemented.
	STATUS Register = 0x07
)

// resetValues holds each register's power on reset value. The chip cannot
// be block-read, so the cached images start from these instead of an
// initial read.
var resetValues = [8]uint16{
	CTRL:   0xC10,
	TORQUE: 0x1FF,
	OFF:    0x30,
	BLANK:  0x80,
	DECAY:  0x110,
	STATUS: 0x0,
}

// CTRL register bits.
const (
	ctrlENBL    = 1 << 0 // enable the motor outputs
	ctrlRDIR    = 1 << 1 // invert the DIR pin
	ctrlRSTEP   = 1 << 2 // advance the indexer one step, self clearing
	ctrlEXSTALL = 1 << 7 // external stall detect
)

// OFF register bits.
const offPWMMode = 1 << 8 // bypass the indexer, outputs follow xINx pins

// field is a bit field inside a register. A value is placed into the field
// with mask and merge against the register's cached image, so the other
// fields of the register are never disturbed.
type field struct {
	reg    Register
	offset uint
	width  uint
}

func (f field) mask() uint16 {
	return (uint16(1)<<f.width - 1) << f.offset
}

// insert merges raw into the field's bits of img.
func (f field) insert(img, raw uint16) uint16 {
	return img&^f.mask() | raw<<f.offset
}

var (
	modeField   = field{reg: CTRL, offset: 3, width: 4}
	isgainField = field{reg: CTRL, offset: 8, width: 2}
	dtimeField  = field{reg: CTRL, offset: 10, width: 2}
	torqueField = field{reg: TORQUE, offset: 0, width: 8}
	toffField   = field{reg: OFF, offset: 0, width: 8}
	tblankField = field{reg: BLANK, offset: 0, width: 8}
	decmodField = field{reg: DECAY, offset: 8, width: 3}
)

// StepMode is the number of micro-steps per full step.
type StepMode uint16

const (
	MicroStep1   StepMode = 1
	MicroStep2   StepMode = 2
	MicroStep4   StepMode = 4
	MicroStep8   StepMode = 8
	MicroStep16  StepMode = 16
	MicroStep32  StepMode = 32
	MicroStep64  StepMode = 64
	MicroStep128 StepMode = 128
	MicroStep256 StepMode = 256
)

// stepModeCodes maps micro-step counts to the CTRL MODE field. The entries
// follow the ordering of Table 3 in the datasheet: the field code grows
// monotonically with the micro-step count.
var stepModeCodes = []struct {
	mode StepMode
	code uint16
}{
	{MicroStep1, 0x0},
	{MicroStep2, 0x1},
	{MicroStep4, 0x2},
	{MicroStep8, 0x3},
	{MicroStep16, 0x4},
	{MicroStep32, 0x5},
	{MicroStep64, 0x6},
	{MicroStep128, 0x7},
	{MicroStep256, 0x8},
}

// defaultStepModeCode is 1/4 micro-step, the chip's reset setting.
const defaultStepModeCode = 0x2

func stepModeCode(mode StepMode) uint16 {
	for _, e := range stepModeCodes {
		if e.mode == mode {
			return e.code
		}
	}
	return defaultStepModeCode
}

// Gain is the ISENSE amplifier gain.
type Gain uint8

const (
	Gain5  Gain = 5
	Gain10 Gain = 10
	Gain20 Gain = 20
	Gain40 Gain = 40
)

var gainCodes = []struct {
	gain Gain
	code uint16
}{
	{Gain5, 0x0},
	{Gain10, 0x1},
	{Gain20, 0x2},
	{Gain40, 0x3},
}

// defaultGainCode is a gain of 20, the chip's reset setting.
const defaultGainCode = 0x2

func gainCode(gain Gain) uint16 {
	for _, e := range gainCodes {
		if e.gain == gain {
			return e.code
		}
	}
	return defaultGainCode
}

// DeadTime is the output dead time in nanoseconds.
type DeadTime uint16

const (
	DeadTime400ns DeadTime = 400
	DeadTime450ns DeadTime = 450
	DeadTime650ns DeadTime = 650
	DeadTime850ns DeadTime = 850
)

var deadTimeCodes = []struct {
	t    DeadTime
	code uint16
}{
	{DeadTime400ns, 0x0},
	{DeadTime450ns, 0x1},
	{DeadTime650ns, 0x2},
	{DeadTime850ns, 0x3},
}

// defaultDeadTimeCode is 850 ns, the chip's reset setting.
const defaultDeadTimeCode = 0x3

func deadTimeCode(t DeadTime) uint16 {
	for _, e := range deadTimeCodes {
		if e.t == t {
			return e.code
		}
	}
	return defaultDeadTimeCode
}

// DecayMode selects how the winding current is recirculated between steps.
type DecayMode uint8

const (
	// DecaySlow forces slow decay always.
	DecaySlow DecayMode = 0
	// DecaySlowMixed uses slow decay for increasing current and mixed decay
	// for decreasing current. This is the chip's reset setting.
	DecaySlowMixed DecayMode = 1
	// DecayFast forces fast decay always.
	DecayFast DecayMode = 2
	// DecayMixed uses mixed decay always.
	DecayMixed DecayMode = 3
	// DecaySlowAutoMixed uses slow decay for increasing current and
	// auto mixed decay for decreasing current.
	DecaySlowAutoMixed DecayMode = 4
	// DecayAutoMixed uses auto mixed decay always.
	DecayAutoMixed DecayMode = 5
)

// defaultDecayModeCode is slow/mixed decay, the chip's reset setting.
const defaultDecayModeCode = 0x1

func decayModeCode(mode DecayMode) uint16 {
	if mode > DecayAutoMixed {
		return defaultDecayModeCode
	}
	return uint16(mode)
}

// Status is the STATUS register's fault flags. The flags reflect live chip
// state and are never cached; read them with Dev.ReadStatus.
type Status uint16

const (
	// StatusOTS indicates overtemperature shutdown.
	StatusOTS Status = 1 << 0
	// StatusAOCP indicates channel A overcurrent shutdown.
	StatusAOCP Status = 1 << 1
	// StatusBOCP indicates channel B overcurrent shutdown.
	StatusBOCP Status = 1 << 2
	// StatusAPDF indicates channel A predriver fault.
	StatusAPDF Status = 1 << 3
	// StatusBPDF indicates channel B predriver fault.
	StatusBPDF Status = 1 << 4
	// StatusUVLO indicates undervoltage lockout.
	StatusUVLO Status = 1 << 5
	// StatusSTD indicates a stall was detected.
	StatusSTD Status = 1 << 6
	// StatusSTDLAT indicates a latched stall detect.
	StatusSTDLAT Status = 1 << 7
)

var statusNames = []struct {
	bit  Status
	name string
}{
	{StatusOTS, "OTS"},
	{StatusAOCP, "AOCP"},
	{StatusBOCP, "BOCP"},
	{StatusAPDF, "APDF"},
	{StatusBPDF, "BPDF"},
	{StatusUVLO, "UVLO"},
	{StatusSTD, "STD"},
	{StatusSTDLAT, "STDLAT"},
}

func (s Status) String() string {
	if s == 0 {
		return "ok"
	}
	var names []string
	for _, e := range statusNames {
		if s&e.bit != 0 {
			names = append(names, e.name)
		}
	}
	return strings.Join(names, ",")
}
