/*
 * CDC1700 - Test devices for I/O framework tests.
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
	"testing"
)

// Host which counts calls made by the framework.
type testHost struct {
	rebuilds int       // Calls to RebuildPending
	raised   []*Device // Devices passed to RaiseExternalInterrupt
	ioTables int       // Calls to BuildIOTable
	dcTables int       // Calls to BuildDCTables
	order    []string  // Order of table builds
}

func (h *testHost) RebuildPending() {
	h.rebuilds++
}

func (h *testHost) RaiseExternalInterrupt(dev *Device) {
	h.raised = append(h.raised, dev)
}

func (h *testHost) BuildIOTable(reg *Registry) {
	h.ioTables++
	h.order = append(h.order, "io")
	for _, dev := range reg.Devices() {
		if reg.Equipment(dev.iod.Equip) == nil {
			reg.SetEquipment(dev.iod.Equip, dev)
		}
	}
}

func (h *testHost) BuildDCTables(reg *Registry) {
	h.dcTables++
	h.order = append(h.order, "dc")
	for dc := uint8(1); dc <= MaxDC; dc++ {
		var list []*Descriptor
		for _, iod := range reg.Descriptors() {
			if iod.DC == dc {
				list = append(list, iod)
			}
		}
		reg.SetChannel(dc, list)
	}
}

// Basic device, records every call made to it.
type testDev struct {
	reads     []uint8  // Registers read
	writes    []uint8  // Registers written
	bdcReads  []uint8  // Registers read by channel
	bdcWrites []uint8  // Registers written by channel
	value     uint16   // Value returned by reads
	result    Status   // Status returned
	states    []string // State dump labels
	cleared   int      // Clear controller calls
}

func (d *testDev) IORead(_ *Descriptor, regs *Regs, reg uint8) Status {
	d.reads = append(d.reads, reg)
	regs.A = d.value
	return d.result
}

func (d *testDev) IOWrite(_ *Descriptor, _ *Regs, reg uint8) Status {
	d.writes = append(d.writes, reg)
	return d.result
}

func (d *testDev) calls() int {
	return len(d.reads) + len(d.writes) + len(d.bdcReads) + len(d.bdcWrites)
}

// Device with a dynamic reject check.
type rejectDev struct {
	*testDev
	reject bool
}

func (d *rejectDev) Reject(_ *Descriptor, _ bool, _ uint8) bool {
	return d.reject
}

// Device on a buffered data channel.
type bdcDev struct {
	*testDev
}

func (d *bdcDev) BDCRead(_ *Descriptor, data *uint16, reg uint8) Status {
	d.bdcReads = append(d.bdcReads, reg)
	*data = d.value
	return d.result
}

func (d *bdcDev) BDCWrite(_ *Descriptor, _ *uint16, reg uint8) Status {
	d.bdcWrites = append(d.bdcWrites, reg)
	return d.result
}

func (d *bdcDev) State(where string, _ *Device, _ *Descriptor) {
	d.states = append(d.states, where)
}

// Device with extra interrupt source and clear controller.
type intrDev struct {
	*testDev
	active bool
}

func (d *intrDev) Intr(_ *Descriptor) bool {
	return d.active
}

func (d *intrDev) Clear(_ *Device) {
	d.cleared++
}

// Device handling all its own interrupts.
type raiseDev struct {
	*testDev
	bits uint16
}

func (d *raiseDev) Raised(_ *Device) uint16 {
	return d.bits
}

// Simple device using generic reject.
type readyDev struct {
	*testDev
	RejectNotReady
}

// Build a two register descriptor.
func newDescriptor(equip uint8) *Descriptor {
	return &Descriptor{
		Equip:   equip,
		Regs:    2,
		RMask:   0x0007,
		SMask:   0xffff,
		IMask:   DirAlarm | DirEOP | DirData,
		DMask:   0x007f,
		CMask:   StAlarm | StEOP | StData,
		ReadMap: 0,
	}
}

// Create registry with one device using backend.
func setup(t *testing.T, iod *Descriptor, backend Backend) (*Registry, *testHost, *Device) {
	t.Helper()
	if err := iod.Attach(backend); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	dev := NewDevice("TST", DevInput|DevOutput, iod)
	reg := NewRegistry()
	if err := reg.Add(dev); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	host := &testHost{}
	reg.Init(host)
	return reg, host, dev
}
