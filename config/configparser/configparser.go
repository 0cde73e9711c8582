/*
 * CDC1700 - Configuration file parser.
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

package configparser

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/rcornwell/CDC1700/emu/iofw"
)

// List of options to pass to create routine.
type Option struct {
	Name     string   // Name of option.
	EqualOpt string   // Value of string after =.
	Value    []string // Comma separated values following option.
}

// Option after model.
type FirstOption struct {
	equip   uint8  // Equipment number if numeric.
	isEquip bool   // Valid equipment number in equip.
	value   string // String value of option.
}

// Current option line being parsed.
type optionLine struct {
	line   string // Current option line.
	pos    int    // Current position in line.
	number int    // Line number in file.
}

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := <model> <whitespace> <first> <whitespace> <options> |
 *            <option> <whitespace> <first> |
 *            <switch>
 * <first> ::= <hexnumber> | <string>
 * <options> ::= *(<option> *(<whitespace>))
 * <option> ::= <name> ['=' <quoteopt>] *(',' *(<whitespace>) <name>)
 * <quoteopt> ::= <string> | '"' *(<letter> | <whitespace> | '""') '"'
 */

const (
	TypeModel   = 1 + iota // Device, first option is equipment number.
	TypeOption             // Accepts a option parameter.
	TypeOptions            // Accepts a parameter and list of options.
	TypeSwitch             // Option only used to set a flag.
)

// NoEquip is passed when the first option is not an equipment number.
const NoEquip uint8 = 0xff

// CreateFunc builds what a configuration line describes.
type CreateFunc func(reg *iofw.Registry, equip uint8, value string, options []Option) error

// Model creation list.
type modelDef struct {
	create CreateFunc
	ty     int
}

var models = map[string]modelDef{}

// Return type of model or 0 if no model.
func getModel(mod string) int {
	model, ok := models[mod]
	if !ok {
		return 0
	}
	return model.ty
}

// Register should be called from init functions.
func RegisterModel(mod string, ty int, fn CreateFunc) {
	mod = strings.ToUpper(mod)
	slog.Debug("Registering device: " + mod)
	models[mod] = modelDef{create: fn, ty: ty}
}

// Register should be called from init functions.
func RegisterSwitch(mod string, fn CreateFunc) {
	mod = strings.ToUpper(mod)
	slog.Debug("Registering switch: " + mod)
	models[mod] = modelDef{create: fn, ty: TypeSwitch}
}

// Register should be called from init functions.
func RegisterOption(mod string, fn CreateFunc) {
	mod = strings.ToUpper(mod)
	slog.Debug("Registering simple option: " + mod)
	models[mod] = modelDef{create: fn, ty: TypeOption}
}

// Look up model and check it is of type ty.
func lookup(mod string, ty int, what string) (modelDef, error) {
	mod = strings.ToUpper(mod)
	model, ok := models[mod]
	if !ok {
		return model, errors.Errorf("unknown %s: %s", what, mod)
	}
	if model.ty != ty {
		return model, errors.Errorf("not a %s type: %s", what, mod)
	}
	return model, nil
}

// Create a device of type model.
func createModel(reg *iofw.Registry, mod string, first *FirstOption, options []Option) error {
	model, err := lookup(mod, TypeModel, "model")
	if err != nil {
		return err
	}
	return model.create(reg, first.equip, "", options)
}

// Create a option with one parameter.
func createOption(reg *iofw.Registry, mod string, first *FirstOption) error {
	model, err := lookup(mod, TypeOption, "option")
	if err != nil {
		return err
	}
	return model.create(reg, first.equip, first.value, nil)
}

// Create a option with options.
func createOptions(reg *iofw.Registry, mod string, first *FirstOption, options []Option) error {
	model, err := lookup(mod, TypeOptions, "options")
	if err != nil {
		return err
	}
	return model.create(reg, first.equip, first.value, options)
}

// Create switch option.
func createSwitch(reg *iofw.Registry, mod string) error {
	model, err := lookup(mod, TypeSwitch, "switch")
	if err != nil {
		return err
	}
	return model.create(reg, NoEquip, "", nil)
}

// Load in a configuration file.
func LoadConfigFile(name string, reg *iofw.Registry) error {
	file, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "unable to open configuration file")
	}
	defer file.Close()
	return errors.WithMessage(LoadConfig(file, reg), name)
}

// Load configuration from reader.
func LoadConfig(r io.Reader, reg *iofw.Registry) error {
	scanner := bufio.NewScanner(r)
	number := 0
	for scanner.Scan() {
		number++
		line := optionLine{line: scanner.Text(), number: number}
		if err := line.parseLine(reg); err != nil {
			return errors.Wrapf(err, "line %d", number)
		}
	}
	return scanner.Err()
}

// Parse one line from file.
func (line *optionLine) parseLine(reg *iofw.Registry) error {
	model := line.parseModel()
	if model == "" {
		return nil
	}
	switch getModel(model) {
	case TypeModel:
		first := line.parseFirst()
		if first == nil || !first.isEquip {
			return errors.Errorf("device %s requires equipment number", model)
		}
		options, err := line.parseOptions()
		if err != nil {
			return err
		}
		return createModel(reg, model, first, options)

	case TypeOption:
		first := line.parseFirst()
		line.skipSpace()
		if first == nil || !line.isEOL() {
			return errors.Errorf("option %s must be followed by one value", model)
		}
		return createOption(reg, model, first)

	case TypeOptions:
		first := line.parseFirst()
		if first == nil {
			return errors.Errorf("option %s not followed by value", model)
		}
		options, err := line.parseOptions()
		if err != nil {
			return err
		}
		return createOptions(reg, model, first, options)

	case TypeSwitch:
		line.skipSpace()
		if !line.isEOL() {
			return errors.Errorf("switch %s followed by options", model)
		}
		return createSwitch(reg, model)
	}
	return errors.Errorf("no type %s registered", model)
}

// Skip forward over line until none whitespace character found.
func (line *optionLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *optionLine) isEOL() bool {
	return line.pos >= len(line.line) || line.line[line.pos] == '#'
}

// Characters which end a word.
func isBreak(by byte) bool {
	return unicode.IsSpace(rune(by)) || by == ',' || by == '=' || by == '#' || by == '"'
}

// Collect characters up to the next break.
func (line *optionLine) getWord() string {
	start := line.pos
	for !line.isEOL() && !isBreak(line.line[line.pos]) {
		line.pos++
	}
	return line.line[start:line.pos]
}

// Parse model name.
func (line *optionLine) parseModel() string {
	line.skipSpace()
	start := line.pos
	for !line.isEOL() {
		by := rune(line.line[line.pos])
		if !unicode.IsLetter(by) && !unicode.IsNumber(by) {
			break
		}
		line.pos++
	}
	return strings.ToUpper(line.line[start:line.pos])
}

// Parse first option parameter.
func (line *optionLine) parseFirst() *FirstOption {
	line.skipSpace()
	if line.isEOL() {
		return nil
	}

	value := line.getWord()
	if value == "" {
		return nil
	}
	option := FirstOption{equip: NoEquip, value: value}

	equip, err := strconv.ParseUint(value, 16, 4)
	if err == nil {
		option.equip = uint8(equip)
		option.isEquip = true
	}
	return &option
}

// Parse string that is "string" or just string.
func (line *optionLine) parseQuoteString() (string, error) {
	if line.pos >= len(line.line) || line.line[line.pos] != '"' {
		return line.getWord(), nil
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
		// "" stands for a single quote.
		if line.pos < len(line.line) && line.line[line.pos] == '"' {
			value.WriteByte(by)
			line.pos++
			continue
		}
		return value.String(), nil
	}
	return "", errors.Errorf("unterminated quoted string at %d", line.pos)
}

// Parse option name.
func (line *optionLine) getName() (string, error) {
	if line.isEOL() {
		return "", nil
	}

	// First character must be alphabetic.
	if !unicode.IsLetter(rune(line.line[line.pos])) {
		return "", errors.Errorf("invalid option at %d", line.pos)
	}
	return line.getWord(), nil
}

// Parse options for a line.
func (line *optionLine) parseOption() (*Option, error) {
	line.skipSpace()

	name, err := line.getName()
	if name == "" {
		return nil, err
	}

	option := Option{Name: name}
	if line.isEOL() {
		return &option, nil
	}

	// Check if equals option.
	if line.line[line.pos] == '=' {
		line.pos++
		option.EqualOpt, err = line.parseQuoteString()
		if err != nil {
			return nil, err
		}
	}

	line.skipSpace()

	// Grab all , options
	for !line.isEOL() && line.line[line.pos] == ',' {
		line.pos++
		line.skipSpace()
		v, err := line.getName()
		if err != nil {
			return nil, err
		}
		if v != "" {
			option.Value = append(option.Value, v)
		}
		line.skipSpace()
	}

	return &option, nil
}

// Collect all options for line.
func (line *optionLine) parseOptions() ([]Option, error) {
	options := []Option{}
	for {
		option, err := line.parseOption()
		if err != nil {
			return nil, err
		}
		if option == nil {
			break
		}
		options = append(options, *option)
	}
	return options, nil
}

// OptionValue parses the value after = as a number in base.
func (opt *Option) OptionValue(base int, bits int) (uint64, error) {
	if opt.EqualOpt == "" {
		return 0, errors.Errorf("option %s requires a value", opt.Name)
	}
	v, err := strconv.ParseUint(opt.EqualOpt, base, bits)
	if err != nil {
		return 0, errors.Wrapf(err, "option %s", opt.Name)
	}
	return v, nil
}
