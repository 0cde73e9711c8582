/*
 * CDC1700 - I/O framework device registry.
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
	"fmt"
	"strings"
)

// Host supplies the services the framework calls out to.
type Host interface {
	// Recompute the processor pending interrupt word.
	RebuildPending()
	// Signal an interrupt from dev to the processor.
	RaiseExternalInterrupt(dev *Device)
	// Build equipment number to device table.
	BuildIOTable(reg *Registry)
	// Build buffered data channel tables.
	BuildDCTables(reg *Registry)
}

// Registry holds every logical device and the lookup tables built from them.
type Registry struct {
	devices     []*Device
	descs       []*Descriptor // Distinct descriptors, set by Init
	host        Host
	equipment   [MaxEquip]*Device
	channels    [MaxDC + 1][]*Descriptor
	initialized bool
}

// NewRegistry creates an empty device registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a logical device.
func (reg *Registry) Add(dev *Device) error {
	if reg.initialized {
		return fmt.Errorf("device %s added after initialization", dev.Name)
	}
	iod := dev.iod
	if iod == nil {
		return fmt.Errorf("device %s has no descriptor", dev.Name)
	}
	if int(iod.Equip) >= MaxEquip {
		return fmt.Errorf("device %s equipment number %d too large", dev.Name, iod.Equip)
	}
	if iod.Regs > MaxRegs {
		return fmt.Errorf("device %s has %d registers, max %d", dev.Name, iod.Regs, MaxRegs)
	}
	if int(iod.DC) > MaxDC {
		return fmt.Errorf("device %s on channel %d, max %d", dev.Name, iod.DC, MaxDC)
	}
	if !iod.attached {
		return fmt.Errorf("device %s has no backend attached", dev.Name)
	}
	if reg.Find(dev.Name) != nil {
		return fmt.Errorf("device %s already defined", dev.Name)
	}
	reg.devices = append(reg.devices, dev)
	return nil
}

// Init binds logical devices to descriptors and builds the lookup tables.
func (reg *Registry) Init(host Host) {
	if reg.initialized {
		return
	}
	reg.host = host

	for _, dev := range reg.devices {
		iod := dev.iod
		if (dev.Flags & DevInput) != 0 {
			iod.InDev = dev
		}
		if (dev.Flags & DevOutput) != 0 {
			iod.OutDev = dev
		}
		iod.Interrupt = 1 << iod.Equip
	}
	reg.descs = reg.collect()

	host.BuildIOTable(reg)
	host.BuildDCTables(reg)
	reg.initialized = true
}

// Initialized reports whether Init has run.
func (reg *Registry) Initialized() bool {
	return reg.initialized
}

// Devices returns all logical devices in registration order.
func (reg *Registry) Devices() []*Device {
	return reg.devices
}

// Descriptors returns each descriptor once, in registration order.
func (reg *Registry) Descriptors() []*Descriptor {
	if reg.descs != nil {
		return reg.descs
	}
	return reg.collect()
}

func (reg *Registry) collect() []*Descriptor {
	var list []*Descriptor
	seen := map[*Descriptor]bool{}
	for _, dev := range reg.devices {
		if !seen[dev.iod] {
			seen[dev.iod] = true
			list = append(list, dev.iod)
		}
	}
	return list
}

// Find returns the logical device with name, nil if none.
func (reg *Registry) Find(name string) *Device {
	for _, dev := range reg.devices {
		if strings.EqualFold(dev.Name, name) {
			return dev
		}
	}
	return nil
}

// SetEquipment sets the device answering to an equipment number.
func (reg *Registry) SetEquipment(equip uint8, dev *Device) {
	if int(equip) < MaxEquip {
		reg.equipment[equip] = dev
	}
}

// Equipment returns the device at an equipment number, nil if none.
func (reg *Registry) Equipment(equip uint8) *Device {
	if int(equip) >= MaxEquip {
		return nil
	}
	return reg.equipment[equip]
}

// SetChannel sets the descriptors connected to a buffered data channel.
func (reg *Registry) SetChannel(dc uint8, list []*Descriptor) {
	if dc != 0 && int(dc) <= MaxDC {
		reg.channels[dc] = list
	}
}

// Channel returns the descriptors connected to a buffered data channel.
func (reg *Registry) Channel(dc uint8) []*Descriptor {
	if dc == 0 || int(dc) > MaxDC {
		return nil
	}
	return reg.channels[dc]
}

// PendingInterrupts returns the interrupt bits of every device wanting service.
func (reg *Registry) PendingInterrupts() uint16 {
	var pending uint16

	for _, iod := range reg.Descriptors() {
		if iod.raised != nil {
			if dev := iod.debugDev(); dev != nil {
				pending |= iod.raised.Raised(dev)
			}
			continue
		}
		if (iod.Status() & StInt) != 0 {
			pending |= iod.Interrupt
		}
	}
	return pending
}

// ClearAll performs a master clear of every descriptor.
func (reg *Registry) ClearAll() {
	for _, iod := range reg.Descriptors() {
		iod.IEnable = 0
		iod.OldIEnable = 0
		iod.SetStatus(iod.Forced & iod.SMask)
		if iod.clear != nil {
			if dev := iod.debugDev(); dev != nil {
				iod.clear.Clear(dev)
			}
		}
	}
	if reg.host != nil {
		reg.host.RebuildPending()
	}
}
