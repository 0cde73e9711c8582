/*
 * CDC1700 - Log handler test cases.
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

package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// Debug records only reach the console when debugging.
func TestHandlerConsole(t *testing.T) {
	var file, console bytes.Buffer
	h := NewHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}, false)
	h.SetConsole(&console)
	log := slog.New(h)

	log.Debug("quiet")
	log.Info("loud")
	if strings.Count(file.String(), "\n") != 2 {
		t.Errorf("Log file expected 2 lines got: %q", file.String())
	}
	if strings.Contains(console.String(), "quiet") || !strings.Contains(console.String(), "INFO: loud") {
		t.Errorf("Console output not correct: %q", console.String())
	}

	h.SetDebug(true)
	log.Debug("now")
	if !strings.Contains(console.String(), "DEBUG: now") {
		t.Errorf("Debug record not on console: %q", console.String())
	}
}

// Attributes are written after the message.
func TestHandlerAttrs(t *testing.T) {
	var file bytes.Buffer
	h := NewHandler(&file, nil, false)
	h.SetConsole(nil)
	log := slog.New(h).With("device", "TTY")

	log.Warn("Interrupt", "pending", 4)
	line := strings.TrimSpace(file.String())
	if !strings.HasSuffix(line, "WARN: Interrupt device=TTY pending=4") {
		t.Errorf("Log line not correct: %q", line)
	}

	log.Debug("hidden")
	if strings.Contains(file.String(), "hidden") {
		t.Errorf("Debug record written at info level")
	}
}
