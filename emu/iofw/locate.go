/*
 * CDC1700 - I/O framework buffered data channel device lookup.
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

// FindChanDevice returns the device on channel iod which answers to addr.
//
// No device usable from a buffered data channel decodes a station
// address, so matching the equipment number against the channel units is
// enough.
func (reg *Registry) FindChanDevice(iod *Descriptor, addr uint16) *Descriptor {
	dev := iod.InDev
	target := reg.Equipment(EquipNumber(addr))

	if dev == nil || target == nil {
		return nil
	}

	for i := range dev.Units {
		if dev.Units[i].Ctx == target.iod {
			return target.iod
		}
	}
	return nil
}
