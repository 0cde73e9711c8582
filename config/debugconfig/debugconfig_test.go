/*
 * CDC1700 - Debug configuration test cases.
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

package debugconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	config "github.com/rcornwell/CDC1700/config/configparser"
	"github.com/rcornwell/CDC1700/emu/iofw"
	"github.com/rcornwell/CDC1700/util/debug"
)

type nullDev struct{}

func (nullDev) IORead(_ *iofw.Descriptor, _ *iofw.Regs, _ uint8) iofw.Status {
	return iofw.StatusReply
}

func (nullDev) IOWrite(_ *iofw.Descriptor, _ *iofw.Regs, _ uint8) iofw.Status {
	return iofw.StatusReply
}

func setup(t *testing.T) (*iofw.Registry, *iofw.Device) {
	t.Helper()
	iod := &iofw.Descriptor{Equip: 2, Regs: 2}
	if err := iod.Attach(nullDev{}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	dev := iofw.NewDevice("TTY", iofw.DevInput, iod)
	reg := iofw.NewRegistry()
	if err := reg.Add(dev); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	return reg, dev
}

// Debug options are set on the named device.
func TestDebugDevice(t *testing.T) {
	reg, dev := setup(t)

	err := config.LoadConfig(strings.NewReader("DEBUG tty intr, dstate\n"), reg)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if dev.DebugMsk != iofw.DebugIntr|iofw.DebugDState {
		t.Errorf("Debug mask expected %02x got: %02x", iofw.DebugIntr|iofw.DebugDState, dev.DebugMsk)
	}
}

// Invalid debug lines are refused.
func TestDebugErrors(t *testing.T) {
	reg, _ := setup(t)

	for _, line := range []string{
		"DEBUG lp intr\n",
		"DEBUG tty bogus\n",
		"DEBUG tty intr=1\n",
		"DEBUG tty\n",
	} {
		if err := config.LoadConfig(strings.NewReader(line), reg); err == nil {
			t.Errorf("Debug line %q accepted", line)
		}
	}
}

// Debug file receives device traces.
func TestDebugFile(t *testing.T) {
	reg, dev := setup(t)
	name := filepath.Join(t.TempDir(), "debug.log")
	defer debug.Close()

	err := config.LoadConfig(strings.NewReader("DEBUGFILE "+name+"\nDEBUG TTY INTR\n"), reg)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if err := config.LoadConfig(strings.NewReader("DEBUGFILE "+name+"\n"), reg); err == nil {
		t.Errorf("Second debug file accepted")
	}

	debug.Debugf(dev.Name, dev.DebugMsk, iofw.DebugIntr, "trace %d", 1)
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("Unable to read debug file: %v", err)
	}
	if string(data) != "TTY: trace 1\n" {
		t.Errorf("Debug file expected %q got: %q", "TTY: trace 1\n", string(data))
	}
}
