/*
 * CDC1700 - Console commands.
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

package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bradleyjkemp/memviz"

	core "github.com/rcornwell/CDC1700/emu/core"
	"github.com/rcornwell/CDC1700/emu/iofw"
	testdev "github.com/rcornwell/CDC1700/emu/test_dev"
	"github.com/rcornwell/CDC1700/util/hex"
)

var cmdList = []cmd{
	{Name: "in", Min: 1, Process: in},
	{Name: "out", Min: 1, Process: outCmd},
	{Name: "bdc", Min: 1, Process: bdc},
	{Name: "step", Min: 3, Process: step},
	{Name: "start", Min: 3, Process: start},
	{Name: "stop", Min: 3, Process: stop},
	{Name: "show", Min: 2, Process: show, Complete: deviceComplete},
	{Name: "pending", Min: 1, Process: pending},
	{Name: "regs", Min: 3, Process: regs, Complete: deviceComplete},
	{Name: "type", Min: 1, Process: typeCmd, Complete: deviceComplete},
	{Name: "force", Min: 1, Process: force, Complete: deviceComplete},
	{Name: "unforce", Min: 1, Process: unforce, Complete: deviceComplete},
	{Name: "debug", Min: 1, Process: debugCmd, Complete: deviceComplete},
	{Name: "reset", Min: 3, Process: reset},
	{Name: "graph", Min: 1, Process: graph, Complete: deviceComplete},
	{Name: "quit", Min: 4, Process: quit},
}

// Run fn on core goroutine and return its error.
func run(core *core.Core, fn func() error) error {
	var err error
	core.Do(func() { err = fn() })
	return err
}

// Get logical device named on line.
func (line *cmdLine) getDevice(core *core.Core) (*iofw.Device, error) {
	name := line.getWord()
	if name == "" {
		return nil, errors.New("device name required")
	}
	dev := core.Reg.Find(name)
	if dev == nil {
		return nil, errors.New("device not found: " + name)
	}
	return dev, nil
}

// Input from I/O address.
func in(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command In")
	addr, err := line.getHex()
	if err != nil {
		return false, errors.New("in requires an address")
	}
	if err := line.expectEOL(); err != nil {
		return false, err
	}
	return false, run(core, func() error {
		v, st := core.In(addr)
		fmt.Fprintf(out, "%04X: %04X %s\n", addr, v, st)
		return nil
	})
}

// Output to I/O address.
func outCmd(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Out")
	addr, err := line.getHex()
	if err != nil {
		return false, errors.New("out requires an address")
	}
	value, err := line.getHex()
	if err != nil {
		return false, errors.New("out requires a value")
	}
	if err := line.expectEOL(); err != nil {
		return false, err
	}
	return false, run(core, func() error {
		st := core.Out(addr, value)
		fmt.Fprintf(out, "%04X: %s\n", addr, st)
		return nil
	})
}

// Transfer through a buffered data channel, read if no value given.
func bdc(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command BDC")
	dc, err := line.getNumber()
	if err != nil || dc == 0 || dc > iofw.MaxDC {
		return false, fmt.Errorf("bdc requires channel 1 to %d", iofw.MaxDC)
	}
	addr, err := line.getHex()
	if err != nil {
		return false, errors.New("bdc requires an address")
	}
	value, err := line.getHex()
	output := err == nil
	if err := line.expectEOL(); err != nil {
		return false, err
	}
	return false, run(core, func() error {
		st := core.Transfer(uint8(dc), addr, &value, output)
		if output {
			fmt.Fprintf(out, "DC%d %04X: %s\n", dc, addr, st)
		} else {
			fmt.Fprintf(out, "DC%d %04X: %04X %s\n", dc, addr, value, st)
		}
		return nil
	})
}

// Advance external clock.
func step(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Step")
	n := 1
	if !line.isEOL() {
		var err error
		n, err = line.getNumber()
		if err != nil {
			return false, err
		}
	}
	if err := line.expectEOL(); err != nil {
		return false, err
	}
	return false, run(core, func() error {
		core.Step(n)
		return nil
	})
}

// Start the external clock.
func start(_ *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Start")
	core.SendStart()
	return false, nil
}

// Stop the external clock.
func stop(_ *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Stop")
	core.SendStop()
	return false, nil
}

// Format state of one descriptor.
func showDescriptor(iod *iofw.Descriptor) string {
	model := iod.Model
	if model == "" {
		model = "-"
	}
	s := fmt.Sprintf("%-6s %-8s equip %X station %X status %04X enable %04X function %04X",
		iod.DisplayName(), model, iod.Equip, iod.Station, iod.Status(), iod.IEnable, iod.Function())
	if iod.Forced != 0 {
		s += fmt.Sprintf(" forced %04X", iod.Forced)
	}
	if iod.DC != 0 {
		s += fmt.Sprintf(" dc %d", iod.DC)
	}
	return s
}

// Show one or all devices.
func show(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Show")
	var dev *iofw.Device
	if !line.isEOL() {
		var err error
		dev, err = line.getDevice(core)
		if err != nil {
			return false, err
		}
	}
	return false, run(core, func() error {
		if dev != nil {
			fmt.Fprintln(out, showDescriptor(dev.Descriptor()))
			return nil
		}
		for _, iod := range core.Reg.Descriptors() {
			fmt.Fprintln(out, showDescriptor(iod))
		}
		return nil
	})
}

// Dump register banks of a device.
func regs(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Regs")
	dev, err := line.getDevice(core)
	if err != nil {
		return false, err
	}
	if err := line.expectEOL(); err != nil {
		return false, err
	}
	return false, run(core, func() error {
		iod := dev.Descriptor()
		n := min(int(iod.Regs), iofw.MaxRegs)
		var str strings.Builder
		str.WriteString(iod.DisplayName() + " ")
		hex.FormatDigit(&str, iod.Equip)
		hex.FormatDigit(&str, iod.Station)
		str.WriteString("\n read:  ")
		hex.FormatWords(&str, true, iod.ReadR[:n])
		str.WriteString("\n write: ")
		hex.FormatWords(&str, true, iod.WriteR[:n])
		str.WriteString("\n prev:  ")
		hex.FormatWords(&str, true, iod.PrevR[:n])
		str.WriteString("\n map:   ")
		hex.FormatByte(&str, iod.ReadMap)
		fmt.Fprintln(out, str.String())
		return nil
	})
}

// Show pending interrupts.
func pending(_ *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Pending")
	return false, run(core, func() error {
		fmt.Fprintf(out, "Pending: %04X Interrupts: %d\n", core.Pending, core.Interrupts)
		return nil
	})
}

// Queue text as input to a test device.
func typeCmd(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Type")
	name := line.getWord()
	text, ok := line.parseQuoteString()
	if !ok {
		return false, errors.New("type requires text")
	}
	return false, run(core, func() error {
		td, err := testdev.Find(core.Reg, name)
		if err != nil {
			return err
		}
		words := make([]uint16, 0, len(text))
		for _, by := range []byte(text) {
			words = append(words, uint16(by))
		}
		td.Input(words...)
		return nil
	})
}

// Force status bits on.
func force(line *cmdLine, core *core.Core) (bool, error) {
	return forceBits(line, core, true)
}

// Release forced status bits.
func unforce(line *cmdLine, core *core.Core) (bool, error) {
	return forceBits(line, core, false)
}

func forceBits(line *cmdLine, core *core.Core, set bool) (bool, error) {
	slog.Debug("Command Force", "set", set)
	dev, err := line.getDevice(core)
	if err != nil {
		return false, err
	}
	mask, err := line.getHex()
	if err != nil {
		return false, errors.New("force requires a status mask")
	}
	return false, run(core, func() error {
		iod := dev.Descriptor()
		if set {
			iod.SetForced(mask)
		} else {
			iod.ClearForced(mask)
		}
		core.RebuildPending()
		return nil
	})
}

// Set debug options on a device.
func debugCmd(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Debug")
	dev, err := line.getDevice(core)
	if err != nil {
		return false, err
	}
	var opts []string
	for !line.isEOL() {
		opt := line.getWord()
		if opt == "" {
			return false, errors.New("invalid debug option")
		}
		opts = append(opts, strings.ToUpper(opt))
	}
	if len(opts) == 0 {
		return false, errors.New("debug requires options")
	}
	return false, run(core, func() error {
		for _, opt := range opts {
			if err := dev.Debug(opt); err != nil {
				return err
			}
		}
		return nil
	})
}

// Master clear all devices.
func reset(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Reset")
	if err := line.expectEOL(); err != nil {
		return false, err
	}
	return false, run(core, func() error {
		core.Reset()
		return nil
	})
}

// Write a graph of device structures to a file.
func graph(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Graph")
	dev, err := line.getDevice(core)
	if err != nil {
		return false, err
	}
	name, ok := line.parseQuoteString()
	if !ok || name == "" {
		return false, errors.New("graph requires a file name")
	}
	file, err := os.Create(name)
	if err != nil {
		return false, err
	}
	defer file.Close()
	return false, run(core, func() error {
		memviz.Map(file, dev.Descriptor())
		return nil
	})
}

// Handle commands that quit simulation.
func quit(_ *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Quit")
	return true, nil
}
