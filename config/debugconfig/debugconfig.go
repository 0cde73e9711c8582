/*
 * CDC1700 - Debug configuration options.
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
	"strings"

	"github.com/pkg/errors"

	config "github.com/rcornwell/CDC1700/config/configparser"
	"github.com/rcornwell/CDC1700/emu/iofw"
	"github.com/rcornwell/CDC1700/util/debug"
)

// register options on initialize.
func init() {
	config.RegisterModel("DEBUG", config.TypeOptions, setDebug)
	config.RegisterOption("DEBUGFILE", setDebugFile)
}

// Set debug options of a logical device.
func setDebug(reg *iofw.Registry, _ uint8, device string, options []config.Option) error {
	if reg == nil {
		return errors.New("no devices to debug")
	}
	dev := reg.Find(device)
	if dev == nil {
		return errors.New("debug device not defined: " + device)
	}
	if len(options) == 0 {
		return errors.New("debug requires options for: " + device)
	}

	for _, opt := range options {
		if opt.EqualOpt != "" {
			return errors.New("debug option can't have a value: " + opt.Name)
		}
		if err := dev.Debug(strings.ToUpper(opt.Name)); err != nil {
			return err
		}
		for _, value := range opt.Value {
			if err := dev.Debug(strings.ToUpper(value)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Send debug output to a file.
func setDebugFile(_ *iofw.Registry, _ uint8, fileName string, _ []config.Option) error {
	return debug.CreateFile(fileName)
}
