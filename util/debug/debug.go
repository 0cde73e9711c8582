/*
 * CDC1700 - Log debug data to a file
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

package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
)

// Prefix put in front of interrupt trace lines.
const IntPrefix = "INT: "

var out io.Writer

// Generic debug message.
func Debugf(module string, mask int, level int, format string, a ...interface{}) {
	if (mask & level) != 0 {
		write(module+": "+format, a...)
	}
}

// Device debug message, device named by equipment number.
func DebugEquipf(equip uint8, mask int, level int, format string, a ...interface{}) {
	if (mask & level) != 0 {
		eq := strconv.FormatUint(uint64(equip), 16)
		write("Equip "+eq+": "+format, a...)
	}
}

// Channel debug message.
func DebugChanf(number int, mask int, level int, format string, a ...interface{}) {
	if (mask & level) != 0 {
		ch := strconv.FormatInt(int64(number), 10)
		write("Channel "+ch+": "+format, a...)
	}
}

// Send debug output to file, nil returns output to the logger.
func SetOutput(w io.Writer) {
	out = w
}

// Create debug file.
func CreateFile(fileName string) error {
	if f, ok := out.(*os.File); ok && f != nil {
		return fmt.Errorf("can't have more then one debug file, previous: %s", f.Name())
	}

	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("unable to create debug file: %s", fileName)
	}

	out = file
	return nil
}

func write(format string, a ...interface{}) {
	if out == nil {
		slog.Debug(fmt.Sprintf(format, a...))
		return
	}
	fmt.Fprintf(out, format+"\n", a...)
}

// Close debug file and return output to the logger.
func Close() {
	if f, ok := out.(*os.File); ok && f != nil {
		f.Close()
	}
	out = nil
}
