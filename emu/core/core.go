/*
 * CDC1700 - Processor side of the I/O system.
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

package core

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rcornwell/CDC1700/emu/event"
	"github.com/rcornwell/CDC1700/emu/iofw"
)

// Message types sent to the core.
type Msg int

const (
	Start Msg = 1 + iota // Start external clock.
	Stop                 // Stop external clock.
	Call                 // Run function on core.
	Tick                 // Clock pulse, advance external clock.
)

// Clock delivers Tick packets while enabled.
type Clock interface {
	Start()
	Stop()
}

// Packet is a request to the core goroutine.
type Packet struct {
	Msg  Msg
	Fn   func()
	Done chan struct{}
}

type Core struct {
	Reg        *iofw.Registry // Devices connected to processor
	Pending    uint16         // Pending interrupt word
	Interrupts uint64         // Interrupts raised
	LastIntr   *iofw.Device   // Device which raised last interrupt
	Cycles     uint64         // External clock ticks
	Clock      Clock          // Pulse source, free run if nil

	wg      sync.WaitGroup
	done    chan struct{} // Signal to shutdown simulator.
	running bool          // Indicate when clock should run or not.
	Master  chan Packet
}

// Create core for devices in reg.
func New(reg *iofw.Registry) *Core {
	return &Core{
		Reg:    reg,
		Master: make(chan Packet),
		done:   make(chan struct{}),
	}
}

// Build equipment table, first input device wins, else output.
func (core *Core) BuildIOTable(reg *iofw.Registry) {
	for _, dev := range reg.Devices() {
		equip := dev.Descriptor().Equip
		cur := reg.Equipment(equip)
		if cur == nil || ((cur.Flags&iofw.DevInput) == 0 && (dev.Flags&iofw.DevInput) != 0) {
			reg.SetEquipment(equip, dev)
		}
	}
}

// Build buffered data channel tables.
func (core *Core) BuildDCTables(reg *iofw.Registry) {
	for dc := uint8(1); dc <= iofw.MaxDC; dc++ {
		var list []*iofw.Descriptor
		var ctl *iofw.Descriptor
		for _, iod := range reg.Descriptors() {
			if iod.DC != dc {
				continue
			}
			if iod.DeviceDC {
				if ctl == nil {
					ctl = iod
				}
				continue
			}
			list = append(list, iod)
		}
		reg.SetChannel(dc, list)
		if ctl == nil || ctl.InDev == nil {
			continue
		}
		// Controller units are the devices on its channel.
		ctl.InDev.Units = ctl.InDev.Units[:0]
		for _, iod := range list {
			ctl.InDev.Units = append(ctl.InDev.Units, iofw.Unit{Ctx: iod})
		}
	}
}

// Recompute pending interrupt word.
func (core *Core) RebuildPending() {
	core.Pending = core.Reg.PendingInterrupts()
}

// Post an external interrupt to processor.
func (core *Core) RaiseExternalInterrupt(dev *iofw.Device) {
	core.RebuildPending()
	core.Interrupts++
	core.LastIntr = dev
	name := "?"
	if dev != nil {
		name = dev.Name
	}
	slog.Debug("Interrupt", "device", name, "pending", core.Pending)
}

// Find device answering to I/O address.
func (core *Core) route(addr uint16) *iofw.Device {
	if (addr & iofw.IOW) == 0 {
		return core.Reg.Equipment(iofw.EquipNumber(addr))
	}
	// Controller with the closest base below the W field.
	w := addr & iofw.IOW
	var ctl *iofw.Descriptor
	for _, iod := range core.Reg.Descriptors() {
		if !iod.DeviceDC || w < iod.DCBase {
			continue
		}
		if ctl == nil || iod.DCBase > ctl.DCBase {
			ctl = iod
		}
	}
	if ctl == nil || ctl.Register(addr) >= ctl.Regs {
		return nil
	}
	if ctl.InDev != nil {
		return ctl.InDev
	}
	return ctl.OutDev
}

// In executes an input instruction.
func (core *Core) In(addr uint16) (uint16, iofw.Status) {
	dev := core.route(addr)
	if dev == nil {
		return 0, iofw.StatusReject
	}
	regs := iofw.Regs{Q: addr}
	st := core.Reg.DoIO(dev, &regs, false)
	return regs.A, st
}

// Out executes an output instruction.
func (core *Core) Out(addr uint16, data uint16) iofw.Status {
	dev := core.route(addr)
	if dev == nil {
		return iofw.StatusReject
	}
	regs := iofw.Regs{A: data, Q: addr}
	return core.Reg.DoIO(dev, &regs, true)
}

// Transfer moves one word between channel dc and the device at addr.
func (core *Core) Transfer(dc uint8, addr uint16, data *uint16, output bool) iofw.Status {
	var ctl *iofw.Descriptor
	for _, iod := range core.Reg.Descriptors() {
		if iod.DeviceDC && iod.DC == dc {
			ctl = iod
			break
		}
	}
	if ctl == nil {
		return iofw.StatusReject
	}
	iod := core.Reg.FindChanDevice(ctl, addr)
	if iod == nil {
		return iofw.StatusReject
	}
	return core.Reg.DoBDCIO(iod, data, output, iod.Register(addr))
}

// Reset initializes devices on first call, then master clears them.
func (core *Core) Reset() {
	if !core.Reg.Initialized() {
		core.Reg.Init(core)
	}
	event.Reset()
	core.Reg.ClearAll()
}

// Advance external clock n ticks.
func (core *Core) Step(n int) {
	for range n {
		core.Cycles++
		event.Advance(1)
	}
}

// Start core running.
func (core *Core) Start() {
	core.wg.Add(1)
	defer core.wg.Done()
	for {
		if core.running && core.Clock == nil {
			core.Step(1)
			select {
			case <-core.done:
				return
			case packet := <-core.Master:
				core.processPacket(packet)
			default:
			}
			continue
		}
		select {
		case <-core.done:
			return
		case packet := <-core.Master:
			core.processPacket(packet)
		}
	}
}

// Stop a running core.
func (core *Core) Stop() {
	slog.Info("Shutting down core")
	close(core.done)
	done := make(chan struct{})
	go func() {
		core.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for core to finish.")
		return
	}
}

// Start external clock.
func (core *Core) SendStart() {
	core.Master <- Packet{Msg: Start}
}

// Stop external clock.
func (core *Core) SendStop() {
	core.Master <- Packet{Msg: Stop}
}

// Run fn on the core goroutine and wait for it.
func (core *Core) Do(fn func()) {
	done := make(chan struct{})
	core.Master <- Packet{Msg: Call, Fn: fn, Done: done}
	<-done
}

// Process a packet sent to core.
func (core *Core) processPacket(packet Packet) {
	switch packet.Msg {
	case Start:
		core.running = true
		if core.Clock != nil {
			core.Clock.Start()
		}
	case Stop:
		core.running = false
		if core.Clock != nil {
			core.Clock.Stop()
		}
	case Tick:
		if core.running {
			core.Step(1)
		}
	case Call:
		if packet.Fn != nil {
			packet.Fn()
		}
	}
	if packet.Done != nil {
		close(packet.Done)
	}
}
