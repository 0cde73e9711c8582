/*
 * CDC1700 - I/O framework debug state dump.
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

// State dumps a device with just a function and status register.
func State(where string, dev *Device, iod *Descriptor) {
	debug.Debugf(debug.IntPrefix+dev.Name, dev.DebugMsk, DebugDState,
		"%s state: Function: %04X, Status: %04X", where, iod.Function(), iod.Status())
}

// FunctionState gives a backend the generic state dump when embedded.
type FunctionState struct{}

func (FunctionState) State(where string, dev *Device, iod *Descriptor) {
	State(where, dev, iod)
}
