/*
 * CDC1700 - I/O framework forced status bits.
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

// Forced bits stay set in the status register while the framework clears
// and sets the standard bits, e.g. StBusy and StReady of a paper tape
// reader with no tape loaded.

// SetForced forces status bits in mask on.
func (iod *Descriptor) SetForced(mask uint16) {
	iod.Forced |= mask
	iod.SetStatus(iod.Status() | (mask & iod.SMask))
}

// ClearForced releases forced status bits in mask and clears them.
func (iod *Descriptor) ClearForced(mask uint16) {
	iod.Forced &^= mask
	iod.SetStatus(iod.Status() &^ mask)
}
