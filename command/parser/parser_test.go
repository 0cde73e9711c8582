/*
 * CDC1700 - Console command tests.
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
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	config "github.com/rcornwell/CDC1700/config/configparser"
	core "github.com/rcornwell/CDC1700/emu/core"
	"github.com/rcornwell/CDC1700/emu/iofw"
	testdev "github.com/rcornwell/CDC1700/emu/test_dev"
)

// Build a running core with one test device at equipment 6.
func setup(t *testing.T) (*core.Core, *testdev.TestDev, *bytes.Buffer) {
	t.Helper()
	reg := iofw.NewRegistry()
	td, err := testdev.New(reg, 6, []config.Option{{Name: "DELAY", EqualOpt: "1"}})
	if err != nil {
		t.Fatalf("Unable to create test device: %v", err)
	}
	c := core.New(reg)
	c.Reset()
	go c.Start()
	t.Cleanup(c.Stop)

	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })
	return c, td, &buf
}

// Run a command that should succeed.
func command(t *testing.T, c *core.Core, line string) {
	t.Helper()
	quit, err := ProcessCommand(line, c)
	if err != nil {
		t.Fatalf("Command %q failed: %v", line, err)
	}
	if quit {
		t.Fatalf("Command %q quit", line)
	}
}

func TestMatchList(t *testing.T) {
	tests := []struct {
		command string
		want    []string
	}{
		{"st", []string{"step", "start", "stop"}},
		{"ste", []string{"step"}},
		{"sh", []string{"show"}},
		{"s", nil},
		{"in", []string{"in"}},
		{"quit", []string{"quit"}},
		{"qui", nil},
		{"unforcex", nil},
	}
	for _, test := range tests {
		var got []string
		for _, m := range matchList(test.command) {
			got = append(got, m.Name)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Match %q (-want +got):\n%s", test.command, diff)
		}
	}
}

func TestInStatus(t *testing.T) {
	c, _, buf := setup(t)
	command(t, c, "in 301")
	if buf.String() != "0301: 0001 reply\n" {
		t.Errorf("In status got: %q", buf.String())
	}
}

func TestOutput(t *testing.T) {
	c, td, buf := setup(t)
	command(t, c, "out 300 41")
	command(t, c, "step 2")
	command(t, c, "in 301")
	if buf.String() != "0300: reply\n0301: 0009 reply\n" {
		t.Errorf("Output got: %q", buf.String())
	}

	var output []uint16
	c.Do(func() { output = append(output, td.Output...) })
	if diff := cmp.Diff([]uint16{0x41}, output); diff != "" {
		t.Errorf("Output words (-want +got):\n%s", diff)
	}
}

func TestTypeInput(t *testing.T) {
	c, _, buf := setup(t)
	command(t, c, `type td6 "AB"`)
	command(t, c, "step 2")
	command(t, c, "in 300")
	command(t, c, "step 2")
	command(t, c, "in 300")
	want := "0300: 0041 reply\n0300: 0042 reply\n"
	if buf.String() != want {
		t.Errorf("Input expected %q got: %q", want, buf.String())
	}
}

func TestForce(t *testing.T) {
	c, _, buf := setup(t)
	command(t, c, "force td6 80")
	command(t, c, "in 301")
	command(t, c, "unforce td6 80")
	command(t, c, "in 301")
	want := "0301: 0081 reply\n0301: 0001 reply\n"
	if buf.String() != want {
		t.Errorf("Forced status expected %q got: %q", want, buf.String())
	}
}

func TestShow(t *testing.T) {
	c, _, buf := setup(t)
	command(t, c, "show td6")
	if !strings.HasPrefix(buf.String(), "TD6") || !strings.Contains(buf.String(), "TESTDEV") {
		t.Errorf("Show got: %q", buf.String())
	}
	buf.Reset()
	command(t, c, "show")
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("Show all got: %q", buf.String())
	}
}

func TestPending(t *testing.T) {
	c, _, buf := setup(t)
	command(t, c, "out 301 4")
	command(t, c, "type td6 A")
	command(t, c, "step 2")
	command(t, c, "pending")
	if !strings.Contains(buf.String(), "Pending: 0040 Interrupts: 1") {
		t.Errorf("Pending got: %q", buf.String())
	}
}

func TestCommandErrors(t *testing.T) {
	c, _, _ := setup(t)
	tests := []string{
		"frobnicate",
		"st",
		"in",
		"in xyz",
		"in 301 extra",
		"out 300",
		"bdc 9 800",
		"show nodev",
		"force td6",
		"type nodev A",
		"debug td6",
		"debug td6 bogus",
		"graph td6",
	}
	for _, line := range tests {
		if _, err := ProcessCommand(line, c); err == nil {
			t.Errorf("Command %q did not fail", line)
		}
	}
}

func TestQuit(t *testing.T) {
	c, _, _ := setup(t)
	quit, err := ProcessCommand("quit", c)
	if !quit || err != nil {
		t.Errorf("Quit expected true, nil got: %v, %v", quit, err)
	}
	quit, err = ProcessCommand("", c)
	if quit || err != nil {
		t.Errorf("Empty line expected false, nil got: %v, %v", quit, err)
	}
}

func TestComplete(t *testing.T) {
	c, _, _ := setup(t)
	if diff := cmp.Diff([]string{"show "}, CompleteCmd("sh", c)); diff != "" {
		t.Errorf("Complete command (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"show TD6 "}, CompleteCmd("show t", c)); diff != "" {
		t.Errorf("Complete device (-want +got):\n%s", diff)
	}
	if got := CompleteCmd("show td6 x", c); got != nil {
		t.Errorf("Complete past device got: %v", got)
	}
}

func TestRegs(t *testing.T) {
	c, _, buf := setup(t)
	command(t, c, "out 300 41")
	buf.Reset()
	command(t, c, "regs td6")
	want := "TD6 60\n read:  0000 0002\n write: 0041 0000\n prev:  0000 0000\n map:   02\n"
	if buf.String() != want {
		t.Errorf("Regs expected %q got: %q", want, buf.String())
	}
}
