// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package drv8711 controls a Texas Instruments DRV8711 micro-stepping
// stepper motor gate driver via its SPI register interface.
//
// The DRV8711 drives external N-channel MOSFETs and handles micro-stepping,
// current regulation and stall detection on its own. This package exposes
// the chip's configuration registers (step resolution, current sense gain,
// dead time, decay mode, torque, off time, blanking time) and its fault
// status, without the caller having to assemble register words.
//
// The chip has no block-read command and comes out of reset with documented
// register defaults, so the driver keeps a cached image of every register
// and only ever issues single-register writes.
//
// Note the DRV8711's chip select is active high, the opposite of most SPI
// devices. The select line must therefore be a plain GPIO dedicated to this
// chip, not the SPI controller's own CS output.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/drv8711.pdf
//
// A carrier board for the chip:
//
// https://www.pololu.com/product/3730
package drv8711
