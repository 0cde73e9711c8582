/*
 * CDC1700 - I/O framework interrupt handling.
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
	"github.com/rcornwell/CDC1700/util/debug"
)

/*
 * A device may have several interrupt sources (data, end of operation and
 * alarm are standard) but only one interrupt flag in its status, StInt.
 * The flag is recomputed on every status change so that it is set while
 * any enabled source is active and dropped when the last one goes away.
 *
 * Devices with extra interrupt sources provide an Interrupter. Devices
 * with completely non-standard interrupts provide a Raiser and do not
 * use this code at all.
 */

// IOintr updates device status and the aggregated interrupt flag.
//
// An empty why updates the pending interrupt word without raising a new
// interrupt.
func (reg *Registry) IOintr(other bool, dev *Device, iod *Descriptor, set, clr, mask uint16, why string) {
	status := iod.Status()
	status &^= clr | StInt
	status |= set | iod.Forced
	status &= mask & iod.SMask
	iod.SetStatus(status)

	reg.rebuildPending()

	// Check for any interrupts enabled.
	if !iod.Enabled(iod.IMask) {
		return
	}

	intr := (iod.Enabled(DirAlarm) && (status&StAlarm) != 0) ||
		(iod.Enabled(DirEOP) && (status&StEOP) != 0) ||
		(iod.Enabled(DirData) && (status&StData) != 0)

	if other && iod.intr != nil && iod.intr.Intr(iod) {
		intr = true
	}

	if !intr {
		return
	}

	iod.SetStatus(iod.Status() | StInt)

	if why == "" {
		reg.rebuildPending()
		return
	}

	if dev != nil {
		debug.Debugf(debug.IntPrefix+dev.Name, dev.DebugMsk, DebugIntr,
			"Interrupt - %s, Ena: %04X, Sta: %04X", why, iod.IEnable, iod.Status())
	}
	if reg.host != nil {
		reg.host.RaiseExternalInterrupt(dev)
	}
}

func (reg *Registry) rebuildPending() {
	if reg.host != nil {
		reg.host.RebuildPending()
	}
}

// Mark an operation as started.
func underway(iod *Descriptor, clr uint16) {
	status := iod.Status()
	status &^= clr
	status |= StBusy | iod.Forced
	iod.SetStatus(status & iod.SMask)
}

/*
 * The following routines are only valid if the framework handles the
 * device status register and the function register enables interrupts
 * at end of processing.
 */

// IOunderwayData marks a device which signals completion with StData busy.
func IOunderwayData(iod *Descriptor, clr uint16) {
	underway(iod, clr|StReady|StData)
}

// IOcompleteData marks a device which signals completion with StData done.
func (reg *Registry) IOcompleteData(other bool, dev *Device, iod *Descriptor, mask uint16, why string) {
	reg.IOintr(other, dev, iod, StReady|StData, StBusy, mask, why)
}

// IOunderwayEOP marks a device which signals completion with StEOP busy.
func IOunderwayEOP(iod *Descriptor, clr uint16) {
	underway(iod, clr|StReady|StEOP)
}

// IOcompleteEOP marks a device which signals completion with StEOP done.
func (reg *Registry) IOcompleteEOP(other bool, dev *Device, iod *Descriptor, mask uint16, why string) {
	reg.IOintr(other, dev, iod, StReady|StEOP, StBusy, mask, why)
}

// IOunderwayEOP2 is IOunderwayEOP for devices which stay ready while busy.
func IOunderwayEOP2(iod *Descriptor, clr uint16) {
	underway(iod, clr|StEOP)
}

// IOcompleteEOP2 is IOcompleteEOP for devices which stay ready while busy.
func (reg *Registry) IOcompleteEOP2(other bool, dev *Device, iod *Descriptor, mask uint16, why string) {
	reg.IOintr(other, dev, iod, StEOP, StBusy, mask, why)
}

// IOalarm raises the alarm status of a device.
func (reg *Registry) IOalarm(other bool, dev *Device, iod *Descriptor, why string) {
	reg.IOintr(other, dev, iod, StAlarm, StBusy, 0xffff, why)
}
