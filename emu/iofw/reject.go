/*
 * CDC1700 - I/O framework generic request handling.
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

// Reject refuses every OUT while the device is not ready, except to the
// director function register.
func Reject(iod *Descriptor, output bool, reg uint8) bool {
	if output && reg != RegFunction {
		return (iod.Status() & StReady) == 0
	}
	return false
}

// RejectNotReady gives a backend the generic reject check when embedded.
type RejectNotReady struct{}

func (RejectNotReady) Reject(iod *Descriptor, output bool, reg uint8) bool {
	return Reject(iod, output, reg)
}

// Director processes a standard director function written to register 1.
func (reg *Registry) Director(dev *Device, iod *Descriptor, value uint16) Status {
	if (value & (DirStart | DirStop)) == (DirStart | DirStop) {
		return StatusReject
	}

	if (value &^ iod.DMask) != 0 {
		return StatusReject
	}

	iod.OldIEnable = iod.IEnable

	// Clear interrupts
	if (value & DirCInt) != 0 {
		iod.IEnable = 0
		iod.SetStatus(iod.Status() &^ iod.CMask)
	}

	// Clear controller
	if (value&DirCCont) != 0 && iod.clear != nil {
		iod.clear.Clear(dev)
	}

	sel := value & iod.IMask
	if (value & DirStop) != 0 {
		iod.IEnable &^= sel
	} else {
		iod.IEnable |= sel
	}

	why := ""
	if (iod.IChanged() & iod.IEnable) != 0 {
		why = "Enable"
	}
	reg.IOintr(true, dev, iod, 0, 0, 0xffff, why)
	return StatusReply
}
