/*
 * CDC1700 - Console command parser.
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
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	core "github.com/rcornwell/CDC1700/emu/core"
)

type cmd struct {
	Name     string // Command name.
	Min      int    // Minimum match size.
	Process  func(*cmdLine, *core.Core) (bool, error)
	Complete func(*cmdLine, *core.Core) []string
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

// Where command output goes.
var out io.Writer = os.Stdout

// SetOutput changes where command output is written.
func SetOutput(w io.Writer) {
	out = w
}

// Execute the command line given.
func ProcessCommand(commandLine string, core *core.Core) (bool, error) {
	line := cmdLine{line: commandLine}
	command := line.getWord()
	if command == "" {
		return false, nil
	}

	match := matchList(command)
	if len(match) == 0 {
		return false, errors.New("command not found: " + command)
	}

	if len(match) > 1 {
		return false, errors.New("unique command not found: " + command)
	}

	return match[0].Process(&line, core)
}

// Check if command matches at least to minimum length.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.Name) {
		return false
	}
	return strings.HasPrefix(match.Name, command) && len(command) >= match.Min
}

// Check if command matches one of the commands.
func matchList(command string) []cmd {
	var match []cmd
	for _, m := range cmdList {
		if m.Name == command {
			return []cmd{m}
		}
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

// Skip forward over line until none whitespace character found.
func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *cmdLine) isEOL() bool {
	return line.pos >= len(line.line) || line.line[line.pos] == '#'
}

// Return text up to next space.
func (line *cmdLine) getToken() string {
	line.skipSpace()
	start := line.pos
	for !line.isEOL() && !unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
	return line.line[start:line.pos]
}

// Parse a name, returned in lower case.
func (line *cmdLine) getWord() string {
	pos := line.pos
	word := line.getToken()
	for _, by := range word {
		if !unicode.IsLetter(by) && !unicode.IsDigit(by) {
			line.pos = pos
			return ""
		}
	}
	return strings.ToLower(word)
}

// Parse a decimal number.
func (line *cmdLine) getNumber() (int, error) {
	pos := line.pos
	value, err := strconv.ParseUint(line.getToken(), 10, 31)
	if err != nil {
		line.pos = pos
		return 0, errors.New("not a number")
	}
	return int(value), nil
}

// Parse a 16 bit hex number.
func (line *cmdLine) getHex() (uint16, error) {
	pos := line.pos
	value, err := strconv.ParseUint(line.getToken(), 16, 16)
	if err != nil {
		line.pos = pos
		return 0, errors.New("not a hex number")
	}
	return uint16(value), nil
}

// Parse string that is "string" or just string.
func (line *cmdLine) parseQuoteString() (string, bool) {
	line.skipSpace()
	if line.isEOL() {
		return "", false
	}
	if line.line[line.pos] != '"' {
		return line.getToken(), true
	}

	var value strings.Builder
	line.pos++
	for line.pos < len(line.line) {
		by := line.line[line.pos]
		line.pos++
		if by != '"' {
			value.WriteByte(by)
			continue
		}
		// "" gets replaced by single quote.
		if line.pos < len(line.line) && line.line[line.pos] == '"' {
			value.WriteByte(by)
			line.pos++
			continue
		}
		return value.String(), true
	}
	return "", false
}

// Check nothing but a comment remains.
func (line *cmdLine) expectEOL() error {
	line.skipSpace()
	if !line.isEOL() {
		return errors.New("extra text on line: " + line.line[line.pos:])
	}
	return nil
}
