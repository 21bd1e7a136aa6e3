// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package drv8711

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Dev is a handle to a DRV8711 stepper motor driver.
//
// Dev keeps a cached image of every register, seeded with the chip's power
// on reset values, and updates it on every successful write. All methods
// are synchronous single register transactions. A Dev owns its select line
// and must be the only user of it; the chip has no bus addressing, so
// sharing the SPI bus between several chips is the caller's problem to
// serialize.
type Dev struct {
	t    transport
	regs [8]uint16
}

// New returns a handle to a DRV8711 connected on the given SPI port, using
// cs as the chip select.
//
// cs must be a GPIO dedicated to the chip: the DRV8711 selects on a high
// level, which the SPI controller's own CS output cannot provide. New
// parks it low (deselected).
//
// No transaction is issued: the chip resets to documented register
// defaults and the cached images start from those.
func New(p spi.Port, cs gpio.PinOut) (*Dev, error) {
	c, err := p.Connect(500*physic.KiloHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("drv8711: %v", err)
	}
	if err := cs.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("drv8711: %v", err)
	}
	d := &Dev{t: transport{c: c, cs: cs, debug: noop}}
	d.regs = resetValues
	return d, nil
}

// String returns the device name and its select line.
//
// String implements conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("drv8711{%s}", d.t.cs.Name())
}

// Halt disables the motor outputs.
//
// Halt implements conn.Resource.
func (d *Dev) Halt() error {
	return d.Disable()
}

// EnableDebug sets a printf style function that traces all register
// traffic.
func (d *Dev) EnableDebug(f DebugF) {
	d.t.debug = f
}

// Enable sets the ENBL bit, enabling the motor outputs.
func (d *Dev) Enable() error {
	return d.writeShadow(CTRL, d.regs[CTRL]|ctrlENBL)
}

// Disable clears the ENBL bit, disabling the motor outputs. All other
// CTRL settings are kept.
func (d *Dev) Disable() error {
	return d.writeShadow(CTRL, d.regs[CTRL]&^ctrlENBL)
}

// FlipDirection toggles the RDIR bit. When set, the motor direction is
// the inverse of the DIR input pin.
func (d *Dev) FlipDirection() error {
	return d.writeShadow(CTRL, d.regs[CTRL]^ctrlRDIR)
}

// Step sets the RSTEP bit, advancing the indexer by one step. The chip
// clears the bit itself once the step has been taken.
func (d *Dev) Step() error {
	return d.writeShadow(CTRL, d.regs[CTRL]|ctrlRSTEP)
}

// SetStepMode sets the micro-stepping resolution.
//
// An unrecognized mode selects 1/4 micro-step, the chip's default. This
// mirrors the chip's register semantics: invalid settings are never an
// error.
func (d *Dev) SetStepMode(mode StepMode) error {
	return d.writeField(modeField, stepModeCode(mode))
}

// SetExternalStallDetection sets the EXSTALL bit: stall is signaled by
// external hardware on the STALLn/BEMF pins.
func (d *Dev) SetExternalStallDetection() error {
	return d.writeShadow(CTRL, d.regs[CTRL]|ctrlEXSTALL)
}

// SetInternalStallDetection clears the EXSTALL bit: the chip's internal
// back-EMF stall detection is used. This is the reset setting.
func (d *Dev) SetInternalStallDetection() error {
	return d.writeShadow(CTRL, d.regs[CTRL]&^ctrlEXSTALL)
}

// SetGain sets the ISENSE amplifier gain to 5, 10, 20 or 40.
//
// An unrecognized gain selects 20, the chip's default.
func (d *Dev) SetGain(gain Gain) error {
	return d.writeField(isgainField, gainCode(gain))
}

// SetDeadTime sets the output dead time to 400, 450, 650 or 850 ns.
//
// An unrecognized time selects 850 ns, the chip's default.
func (d *Dev) SetDeadTime(t DeadTime) error {
	return d.writeField(dtimeField, deadTimeCode(t))
}

// SetTorque sets the full scale output current scaling. The value is
// written as-is; see the current regulation equation in the datasheet.
func (d *Dev) SetTorque(torque uint8) error {
	return d.writeField(torqueField, uint16(torque))
}

// SetOffTime sets the fixed PWM off time, in 500 ns increments.
func (d *Dev) SetOffTime(offTime uint8) error {
	return d.writeField(toffField, uint16(offTime))
}

// SetBlankingTime sets the current trip blanking time, in 20 ns
// increments.
func (d *Dev) SetBlankingTime(blankTime uint8) error {
	return d.writeField(tblankField, uint16(blankTime))
}

// SetDecayMode sets how the winding current recirculates.
//
// An unrecognized mode selects slow/mixed decay, the chip's default.
func (d *Dev) SetDecayMode(mode DecayMode) error {
	return d.writeField(decmodField, decayModeCode(mode))
}

// TogglePWMMode toggles the PWMMODE bit, switching between the internal
// indexer (the reset setting) and direct PWM mode, where the outputs
// follow the xINx input pins.
func (d *Dev) TogglePWMMode() error {
	return d.writeShadow(OFF, d.regs[OFF]^offPWMMode)
}

// ReadStatus reads the STATUS register. The flags reflect live fault and
// stall state, so the result is never cached.
func (d *Dev) ReadStatus() (Status, error) {
	v, err := d.t.readReg(STATUS)
	return Status(v), err
}

// ClearStatus writes zero to the STATUS register, clearing the latched
// fault flags.
func (d *Dev) ClearStatus() error {
	return d.writeShadow(STATUS, 0)
}

// writeShadow writes v to the register and records it as the register's
// new cached image. The image is only updated once the write has gone
// out, so after a failed write it still holds the last value known to be
// in the chip.
func (d *Dev) writeShadow(r Register, v uint16) error {
	if err := d.t.writeReg(r, v); err != nil {
		return err
	}
	d.regs[r] = v
	return nil
}

// writeField merges raw into f on the register's cached image and writes
// the result. Bits outside the field are carried over unchanged, no read
// transaction is needed.
func (d *Dev) writeField(f field, raw uint16) error {
	return d.writeShadow(f.reg, f.insert(d.regs[f.reg], raw))
}
