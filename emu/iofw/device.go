/*
 * CDC1700 - I/O framework device and descriptor structures.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package iofw

import (
	"errors"
	"fmt"
)

// Regs holds the processor side of an IN/OUT instruction.
type Regs struct {
	A uint16 // Accumulator, data to or from device
	Q uint16 // I/O address
}

// Backend is implemented by every device driven by the framework.
type Backend interface {
	IORead(iod *Descriptor, regs *Regs, reg uint8) Status
	IOWrite(iod *Descriptor, regs *Regs, reg uint8) Status
}

// Rejecter decides dynamically whether to refuse an access.
type Rejecter interface {
	Reject(iod *Descriptor, output bool, reg uint8) bool
}

// BDCBackend handles transfers from a 1706 buffered data channel.
type BDCBackend interface {
	BDCRead(iod *Descriptor, data *uint16, reg uint8) Status
	BDCWrite(iod *Descriptor, data *uint16, reg uint8) Status
}

// StateDumper writes device state for debugging.
type StateDumper interface {
	State(where string, dev *Device, iod *Descriptor)
}

// Interrupter reports device specific interrupt sources.
type Interrupter interface {
	Intr(iod *Descriptor) bool
}

// Raiser handles all interrupts of a device itself.
type Raiser interface {
	Raised(dev *Device) uint16
}

// Clearer performs a clear controller operation.
type Clearer interface {
	Clear(dev *Device)
}

// Unit is one addressable unit of a logical device.
type Unit struct {
	Ctx   *Descriptor // Descriptor this unit is connected to
	Flags int         // Unit specific flags
}

// Device is the processor visible side of a descriptor.
type Device struct {
	Name     string      // Device name
	Flags    int         // DevInput and/or DevOutput
	Units    []Unit      // Units of device
	DebugMsk int         // Debug option mask
	iod      *Descriptor // Shared hardware descriptor
}

// NewDevice creates a logical device bound to a descriptor.
func NewDevice(name string, flags int, iod *Descriptor) *Device {
	return &Device{Name: name, Flags: flags, iod: iod}
}

// Descriptor returns the hardware descriptor of device.
func (dev *Device) Descriptor() *Descriptor {
	return dev.iod
}

// Debug enables a debug option on a device.
func (dev *Device) Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return errors.New("Debug option not supported: " + opt)
	}
	dev.DebugMsk |= flag
	return nil
}

// Descriptor holds the hardware state of one physical device.
type Descriptor struct {
	Name      string  // Device name override
	Model     string  // Device model name
	Type      int     // Device type when driver supports several
	Equip     uint8   // Equipment number
	Station   uint8   // Station number
	Interrupt uint16  // Interrupt mask bit
	DCBase    uint16  // Base address of owning DC, 0 if none
	InDev     *Device // Input side
	OutDev    *Device // Output side
	Unit      *Unit   // Currently selected unit

	IEnable    uint16 // Interrupt enables
	OldIEnable uint16 // Enables before last director function
	IMask      uint16 // Valid interrupts
	DMask      uint16 // Valid director command bits
	SMask      uint16 // Valid status bits
	CMask      uint16 // Status bits cleared by clear interrupts
	RMask      uint16 // Register mask of I/O address

	Regs      uint8 // Number of registers
	ValidMask uint8 // Valid registers
	ReadMap   uint8 // Registers read from ReadR directly
	RejMapR   uint8 // Registers whose reads are rejected
	RejMapW   uint8 // Registers whose writes are rejected

	StatusZero bool  // Status register reads as zero
	DeviceDC   bool  // Device is a buffered data channel
	AQOnly     bool  // Device only works on the A/Q channel
	DC         uint8 // Buffered data channel, 0 if none

	ReadR  [MaxRegs]uint16 // Read registers
	WriteR [MaxRegs]uint16 // Write registers
	PrevR  [MaxRegs]uint16 // Write registers before last write

	Forced uint16 // Status bits forced on

	Event   uint64 // Backend timestamp
	Private any    // Backend state

	backend  Backend
	reject   Rejecter
	bdc      BDCBackend
	state    StateDumper
	intr     Interrupter
	raised   Raiser
	clear    Clearer
	attached bool
}

// Attach resolves the capabilities of backend onto the descriptor.
func (iod *Descriptor) Attach(backend Backend) error {
	if backend == nil {
		return fmt.Errorf("device %s: no backend", iod.Name)
	}
	if iod.Regs > MaxRegs {
		return fmt.Errorf("device %s: %d registers, max %d", iod.Name, iod.Regs, MaxRegs)
	}
	iod.backend = backend
	iod.reject, _ = backend.(Rejecter)
	iod.bdc, _ = backend.(BDCBackend)
	iod.state, _ = backend.(StateDumper)
	iod.intr, _ = backend.(Interrupter)
	iod.raised, _ = backend.(Raiser)
	iod.clear, _ = backend.(Clearer)
	if (iod.DC != 0 || iod.DeviceDC) && iod.bdc == nil {
		return fmt.Errorf("device %s: buffered channel device without channel handlers", iod.Name)
	}
	iod.attached = true
	return nil
}

// Status returns the device status register.
func (iod *Descriptor) Status() uint16 {
	return iod.ReadR[RegFunction]
}

// SetStatus sets the device status register.
func (iod *Descriptor) SetStatus(status uint16) {
	iod.ReadR[RegFunction] = status
}

// Function returns the last director function written.
func (iod *Descriptor) Function() uint16 {
	return iod.WriteR[RegFunction]
}

// Enabled reports whether any interrupt in mask is enabled.
func (iod *Descriptor) Enabled(mask uint16) bool {
	return (iod.IEnable & mask) != 0
}

// Changed returns the bits modified by the last write of register reg.
func (iod *Descriptor) Changed(reg uint8) uint16 {
	if reg >= MaxRegs {
		return 0
	}
	return iod.PrevR[reg] ^ iod.WriteR[reg]
}

// IChanged returns the interrupt enables modified by the last director function.
func (iod *Descriptor) IChanged() uint16 {
	return iod.IEnable ^ iod.OldIEnable
}

// Register decodes the register addressed by an I/O address.
// Registers past the bank decode as MaxRegs.
func (iod *Descriptor) Register(addr uint16) uint8 {
	var r uint16
	if iod.DeviceDC {
		if (addr & IOW) < iod.DCBase {
			return MaxRegs
		}
		r = ((addr & IOW) - iod.DCBase) >> wShift
	} else {
		r = addr & iod.RMask
	}
	if r >= MaxRegs {
		return MaxRegs
	}
	return uint8(r)
}

// DisplayName returns the override name or the name of the first logical device.
func (iod *Descriptor) DisplayName() string {
	if iod.Name != "" {
		return iod.Name
	}
	if iod.InDev != nil {
		return iod.InDev.Name
	}
	if iod.OutDev != nil {
		return iod.OutDev.Name
	}
	return "?"
}

// debugDev returns the device whose debug flags govern channel traces.
func (iod *Descriptor) debugDev() *Device {
	if iod.InDev != nil {
		return iod.InDev
	}
	return iod.OutDev
}
