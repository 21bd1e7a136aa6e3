// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package drv8711

import (
	"encoding/binary"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

// DebugF is the debug print function type.
type DebugF func(format string, v ...interface{})

func noop(string, ...interface{}) {}

// transport frames single 16 bit register exchanges on the SPI bus.
//
// The DRV8711 selects on a high level, so cs is driven high for the
// duration of each exchange and parked low otherwise.
type transport struct {
	c     spi.Conn
	cs    gpio.PinOut
	debug DebugF
}

// writeReg writes value to the register at addr.
//
// The chip only latches the new value once the select line has returned
// to its inactive level, so the closing cs.Out is part of the write's
// semantics, not just framing. It is attempted even when Tx fails: an
// exchange that has started must be closed out.
func (t *transport) writeReg(addr Register, value uint16) error {
	t.debug("drv8711: write reg %#02x value %#04x", uint8(addr), value)
	var w [2]byte
	binary.BigEndian.PutUint16(w[:], uint16(addr)<<12|value)
	if err := t.cs.Out(gpio.High); err != nil {
		return err
	}
	txErr := t.c.Tx(w[:], nil)
	if err := t.cs.Out(gpio.Low); err != nil {
		return err
	}
	return txErr
}

// readReg reads the register at addr. The chip shifts the register's value
// out during the same 16 bit exchange that carries the address, there is
// no second round trip.
func (t *transport) readReg(addr Register) (uint16, error) {
	t.debug("drv8711: read reg %#02x", uint8(addr))
	var w, r [2]byte
	binary.BigEndian.PutUint16(w[:], (0x8|uint16(addr))<<12)
	if err := t.cs.Out(gpio.High); err != nil {
		return 0, err
	}
	txErr := t.c.Tx(w[:], r[:])
	if err := t.cs.Out(gpio.Low); err != nil {
		return 0, err
	}
	if txErr != nil {
		return 0, txErr
	}
	value := binary.BigEndian.Uint16(r[:])
	t.debug("drv8711: read reg %#02x value %#04x", uint8(addr), value)
	return value, nil
}
