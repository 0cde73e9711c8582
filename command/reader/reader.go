/*
 * CDC1700 - Console command reader.
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

package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/rcornwell/CDC1700/command/parser"
	"github.com/rcornwell/CDC1700/emu/core"
)

const prompt = "CDC1700> "

// ConsoleReader reads commands from the console until quit.
func ConsoleReader(core *core.Core) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		ScriptReader(os.Stdin, core)
		return
	}

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(line string) []string {
		return parser.CompleteCmd(line, core)
	})

	for {
		command, err := line.Prompt(prompt)
		if err == nil {
			line.AppendHistory(command)
			if execute(command, core) {
				return
			}
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return
		}
		slog.Error("error reading line: " + err.Error())
	}
}

// ScriptReader runs commands from r, used when input is not a terminal.
func ScriptReader(r io.Reader, core *core.Core) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if execute(scanner.Text(), core) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Error("error reading commands: " + err.Error())
	}
}

// Run one command, return true if console should quit.
func execute(command string, core *core.Core) bool {
	quit, err := parser.ProcessCommand(command, core)
	if err != nil {
		fmt.Println("Error: " + err.Error())
	}
	return quit
}
