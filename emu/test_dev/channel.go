/*
 * CDC1700 - Buffered data channel controller.
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
	"github.com/rcornwell/CDC1700/emu/iofw"
)

// Channel is a minimal 1706 buffered data channel. It answers one
// register at W field DC: reads return status, writes are director
// functions. Its units are the devices with a matching DC option.
type Channel struct {
	iofw.FunctionState
	reg *iofw.Registry
	dev *iofw.Device
}

// register a device on initialize.
func init() {
	config.RegisterModel("BDC", config.TypeModel, createChannel)
}

// Create channel controller from configuration.
func createChannel(reg *iofw.Registry, equip uint8, _ string, options []config.Option) error {
	_, err := NewChannel(reg, equip, options)
	return err
}

// NewChannel creates a channel controller at equip and adds it to reg.
func NewChannel(reg *iofw.Registry, equip uint8, options []config.Option) (*Channel, error) {
	var dc uint8
	for _, opt := range options {
		if !strings.EqualFold(opt.Name, "DC") {
			return nil, errors.New("channel invalid option: " + opt.Name)
		}
		v, err := opt.OptionValue(10, 8)
		if err != nil {
			return nil, err
		}
		if v == 0 || v > iofw.MaxDC {
			return nil, errors.Errorf("channel number must be 1 to %d", iofw.MaxDC)
		}
		dc = uint8(v)
	}
	if dc == 0 {
		return nil, errors.New("channel requires DC option")
	}

	c := &Channel{reg: reg}
	iod := &iofw.Descriptor{
		Model:    "BDC",
		Equip:    equip,
		Regs:     1,
		DC:       dc,
		DeviceDC: true,
		DCBase:   uint16(dc) << 11,
		SMask:    iofw.StAlarm | iofw.StEOP | iofw.StData | iofw.StInt | iofw.StBusy | iofw.StReady,
		IMask:    iofw.DirAlarm | iofw.DirEOP | iofw.DirData,
		DMask:    0x007f,
		CMask:    iofw.StAlarm | iofw.StEOP | iofw.StData,
	}
	if err := iod.Attach(c); err != nil {
		return nil, err
	}
	c.dev = iofw.NewDevice("DC"+strconv.Itoa(int(dc)), iofw.DevInput|iofw.DevOutput, iod)
	iod.Private = c
	iod.SetStatus(iofw.StReady)
	if err := reg.Add(c.dev); err != nil {
		return nil, err
	}
	return c, nil
}

// Read status of channel.
func (c *Channel) IORead(iod *iofw.Descriptor, regs *iofw.Regs, _ uint8) iofw.Status {
	regs.A = iod.Status()
	return iofw.StatusReply
}

// Director function to channel.
func (c *Channel) IOWrite(iod *iofw.Descriptor, regs *iofw.Regs, _ uint8) iofw.Status {
	return c.reg.Director(c.dev, iod, regs.A)
}

// The channel does not transfer to itself.
func (c *Channel) BDCRead(_ *iofw.Descriptor, _ *uint16, _ uint8) iofw.Status {
	return iofw.StatusReject
}

func (c *Channel) BDCWrite(_ *iofw.Descriptor, _ *uint16, _ uint8) iofw.Status {
	return iofw.StatusReject
}

// Clear controller.
func (c *Channel) Clear(dev *iofw.Device) {
	iod := dev.Descriptor()
	iod.SetStatus((iofw.StReady | iod.Forced) & iod.SMask)
}
