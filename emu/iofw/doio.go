/*
 * CDC1700 - I/O framework register dispatch.
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

// Check whether an access should be refused before reaching the device.
func (iod *Descriptor) rejected(output bool, reg uint8) bool {
	rej := iod.RejMapR
	if output {
		rej = iod.RejMapW
	}
	// Register 1 availability belongs to the device.
	rej &^= maskReg1

	// Check for valid device address
	if reg >= iod.Regs {
		return true
	}

	if (rej & (1 << reg)) != 0 {
		return true
	}

	if iod.reject != nil && iod.reject.Reject(iod, output, reg) {
		return true
	}
	return false
}

// DoIO performs an IN or OUT instruction against dev.
func (reg *Registry) DoIO(dev *Device, regs *Regs, output bool) Status {
	iod := dev.iod
	r := iod.Register(regs.Q)

	if iod.rejected(output, r) {
		return StatusReject
	}

	if output {
		iod.PrevR[r] = iod.WriteR[r]
		iod.WriteR[r] = regs.A
		return iod.backend.IOWrite(iod, regs, r)
	}

	if (iod.ReadMap & (1 << r)) != 0 {
		regs.A = iod.ReadR[r]
		return StatusReply
	}

	return iod.backend.IORead(iod, regs, r)
}

// DoBDCIO performs a transfer from the buffered data channel against iod.
func (reg *Registry) DoBDCIO(iod *Descriptor, data *uint16, output bool, r uint8) Status {
	var status Status

	if iod.rejected(output, r) || iod.bdc == nil {
		return StatusReject
	}

	iod.dumpState("before BDC I/O")

	if output {
		iod.PrevR[r] = iod.WriteR[r]
		iod.WriteR[r] = *data
		status = iod.bdc.BDCWrite(iod, data, r)
	} else {
		if (iod.ReadMap & (1 << r)) != 0 {
			*data = iod.ReadR[r]
			iod.dumpState("after cached BDC I/O")
			return StatusReply
		}
		status = iod.bdc.BDCRead(iod, data, r)
	}

	iod.dumpState("after BDC I/O")
	return status
}

// Call state dump routine if device state debugging enabled.
func (iod *Descriptor) dumpState(where string) {
	dev := iod.debugDev()
	if dev == nil || (dev.DebugMsk&DebugDState) == 0 {
		return
	}
	if iod.state != nil {
		iod.state.State(where, dev, iod)
	}
}
