/*
 * CDC1700 - Test device.
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

package testdev

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	config "github.com/rcornwell/CDC1700/config/configparser"
	"github.com/rcornwell/CDC1700/emu/event"
	"github.com/rcornwell/CDC1700/emu/iofw"
)

/*
 *  Registers.
 *
 *  0   Data        Read next input word, write output word.
 *  1   Function    Standard director function.
 *      Status      Standard status, read without calling device.
 *
 *  Options: STATION=n, DELAY=ticks, DC=channel, NAME=name.
 *
 *  An output word sets the device busy until it is accepted DELAY ticks
 *  later. Input words are queued by Input and presented one at a time
 *  with data status.
 */

const defaultDelay = 10

// Event arguments.
const (
	evOutput = 1 + iota
	evInput
)

type TestDev struct {
	iofw.RejectNotReady
	iofw.FunctionState
	reg    *iofw.Registry   // Registry device is in
	dev    *iofw.Device     // Logical device
	iod    *iofw.Descriptor // Hardware descriptor
	delay  int              // Ticks to complete transfer
	input  []uint16         // Queued input words
	Output []uint16         // Words written to device
}

// register a device on initialize.
func init() {
	config.RegisterModel("TESTDEV", config.TypeModel, create)
}

// Create a test device from configuration.
func create(reg *iofw.Registry, equip uint8, _ string, options []config.Option) error {
	_, err := New(reg, equip, options)
	return err
}

// New creates a test device at equip and adds it to reg.
func New(reg *iofw.Registry, equip uint8, options []config.Option) (*TestDev, error) {
	name := "TD" + strings.ToUpper(strconv.FormatUint(uint64(equip), 16))
	d := &TestDev{reg: reg, delay: defaultDelay}
	iod := &iofw.Descriptor{
		Model: "TESTDEV",
		Equip: equip,
		Regs:  2,
		RMask: 0x0001,
		SMask: iofw.StParity | iofw.StProt | iofw.StLost | iofw.StAlarm | iofw.StEOP |
			iofw.StData | iofw.StInt | iofw.StBusy | iofw.StReady,
		IMask:   iofw.DirAlarm | iofw.DirEOP | iofw.DirData,
		DMask:   0x007f,
		CMask:   iofw.StAlarm | iofw.StEOP | iofw.StData | iofw.StLost,
		ReadMap: 1 << iofw.RegFunction,
	}

	for _, opt := range options {
		switch strings.ToUpper(opt.Name) {
		case "STATION":
			v, err := opt.OptionValue(16, 4)
			if err != nil {
				return nil, err
			}
			iod.Station = uint8(v)
		case "DELAY":
			v, err := opt.OptionValue(10, 16)
			if err != nil {
				return nil, err
			}
			d.delay = int(v)
		case "DC":
			v, err := opt.OptionValue(10, 8)
			if err != nil {
				return nil, err
			}
			if v == 0 || v > iofw.MaxDC {
				return nil, errors.Errorf("test device channel must be 1 to %d", iofw.MaxDC)
			}
			iod.DC = uint8(v)
		case "NAME":
			if opt.EqualOpt == "" {
				return nil, errors.New("test device name requires a value")
			}
			name = strings.ToUpper(opt.EqualOpt)
		default:
			return nil, errors.New("test device invalid option: " + opt.Name)
		}
	}

	if err := iod.Attach(d); err != nil {
		return nil, err
	}
	d.iod = iod
	d.dev = iofw.NewDevice(name, iofw.DevInput|iofw.DevOutput, iod)
	d.dev.Units = []iofw.Unit{{Ctx: iod}}
	iod.Private = d
	iod.SetStatus(iofw.StReady)
	if err := reg.Add(d.dev); err != nil {
		return nil, err
	}
	return d, nil
}

// Device returns the logical device.
func (d *TestDev) Device() *iofw.Device {
	return d.dev
}

// Read data register.
func (d *TestDev) IORead(iod *iofw.Descriptor, regs *iofw.Regs, reg uint8) iofw.Status {
	if reg != 0 {
		return iofw.StatusReject
	}
	regs.A = d.read()
	return iofw.StatusReply
}

// Write data or director function.
func (d *TestDev) IOWrite(iod *iofw.Descriptor, regs *iofw.Regs, reg uint8) iofw.Status {
	if reg == iofw.RegFunction {
		return d.reg.Director(d.dev, iod, regs.A)
	}
	d.write(regs.A)
	return iofw.StatusReply
}

// Channel read of data register.
func (d *TestDev) BDCRead(_ *iofw.Descriptor, data *uint16, reg uint8) iofw.Status {
	if reg != 0 {
		return iofw.StatusReject
	}
	*data = d.read()
	return iofw.StatusReply
}

// Channel write of data register.
func (d *TestDev) BDCWrite(iod *iofw.Descriptor, data *uint16, reg uint8) iofw.Status {
	if reg != 0 {
		return iofw.StatusReject
	}
	d.write(*data)
	return iofw.StatusReply
}

// Clear controller.
func (d *TestDev) Clear(_ *iofw.Device) {
	event.CancelAll(d.iod)
	d.input = nil
	d.iod.ReadR[0] = 0
	d.iod.SetStatus((iofw.StReady | d.iod.Forced) & d.iod.SMask)
}

// Start output of one word.
func (d *TestDev) write(data uint16) {
	iofw.IOunderwayData(d.iod, 0)
	event.AddEvent(d.iod, func(_ int) {
		d.Output = append(d.Output, data)
		d.reg.IOcompleteData(false, d.dev, d.iod, 0xffff, "Output done")
	}, d.delay, evOutput)
}

// Return current input word and present the next one.
func (d *TestDev) read() uint16 {
	data := d.iod.ReadR[0]
	if (d.iod.Status() & iofw.StData) == 0 {
		return data
	}
	d.reg.IOintr(false, d.dev, d.iod, 0, iofw.StData, 0xffff, "")
	d.next()
	return data
}

// Schedule next input word.
func (d *TestDev) next() {
	if len(d.input) == 0 || event.Pending(d.iod, evInput) {
		return
	}
	event.AddEvent(d.iod, d.inputReady, d.delay, evInput)
}

// Present next input word.
func (d *TestDev) inputReady(_ int) {
	if len(d.input) == 0 {
		return
	}
	d.iod.ReadR[0] = d.input[0]
	d.input = d.input[1:]
	d.reg.IOcompleteData(false, d.dev, d.iod, 0xffff, "Input ready")
}

// Input queues words to be read by the processor.
func (d *TestDev) Input(words ...uint16) {
	d.input = append(d.input, words...)
	if (d.iod.Status() & iofw.StData) == 0 {
		d.next()
	}
}

// Find test device by logical device name.
func Find(reg *iofw.Registry, name string) (*TestDev, error) {
	dev := reg.Find(name)
	if dev == nil {
		return nil, errors.New("device not found: " + name)
	}
	td, ok := dev.Descriptor().Private.(*TestDev)
	if !ok {
		return nil, errors.New("not a test device: " + name)
	}
	return td, nil
}
