/*
 * CDC1700 - Console command completion.
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
	"slices"
	"strings"
	"unicode"

	core "github.com/rcornwell/CDC1700/emu/core"
)

// Called to complete a command line, during line editing.
func CompleteCmd(commandLine string, core *core.Core) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	// We have a command, let it try and complete it.
	if line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		match := matchList(name)
		if len(match) != 1 || match[0].Complete == nil {
			return nil
		}
		return match[0].Complete(&line, core)
	}

	var matches []string
	for _, m := range cmdList {
		if strings.HasPrefix(m.Name, name) {
			matches = append(matches, m.Name+" ")
		}
	}
	return matches
}

// Complete a device name, returns full lines.
func deviceComplete(line *cmdLine, core *core.Core) []string {
	line.skipSpace()
	prefix := line.line[:line.pos]
	partial := strings.ToUpper(line.getToken())
	if line.pos < len(line.line) {
		return nil
	}

	var names []string
	core.Do(func() {
		for _, dev := range core.Reg.Devices() {
			if strings.HasPrefix(strings.ToUpper(dev.Name), partial) {
				names = append(names, dev.Name)
			}
		}
	})
	slices.Sort(names)

	matches := make([]string, 0, len(names))
	for _, name := range names {
		matches = append(matches, prefix+name+" ")
	}
	return matches
}
