/*
 * CDC1700 - Main process.
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

package main

import (
	"io"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	reader "github.com/rcornwell/CDC1700/command/reader"
	config "github.com/rcornwell/CDC1700/config/configparser"
	core "github.com/rcornwell/CDC1700/emu/core"
	"github.com/rcornwell/CDC1700/emu/iofw"
	"github.com/rcornwell/CDC1700/emu/timer"
	"github.com/rcornwell/CDC1700/util/debug"
	logger "github.com/rcornwell/CDC1700/util/logger"
	"github.com/rcornwell/CDC1700/util/statsview"

	_ "github.com/rcornwell/CDC1700/config/debugconfig"
	_ "github.com/rcornwell/CDC1700/emu/test_dev"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "CDC1700.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Log debug to console")
	optStats := getopt.StringLong("stats", 's', "", "Serve runtime statistics on address")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var logFile io.Writer
	if *optLogFile != "" {
		file, err := os.Create(*optLogFile)
		if err != nil {
			slog.Error("Unable to create log file: " + err.Error())
			os.Exit(1)
		}
		defer file.Close()
		logFile = file
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	handler := logger.NewHandler(logFile, &slog.HandlerOptions{Level: programLevel}, *optDebug)
	slog.SetDefault(slog.New(handler))

	slog.Info("CDC1700 Started")
	if *optStats != "" {
		statsview.Launch(os.Stderr, *optStats)
	}

	if _, err := os.Stat(*optConfig); os.IsNotExist(err) {
		slog.Error("Configuration file " + *optConfig + " can't be found")
		os.Exit(1)
	}

	reg := iofw.NewRegistry()
	if err := config.LoadConfigFile(*optConfig, reg); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	// Build I/O tables and master clear devices.
	c := core.New(reg)
	clock := timer.NewTimer(c.Master, timer.DefaultInterval)
	c.Clock = clock
	c.Reset()

	go c.Start()

	reader.ConsoleReader(c)

	clock.Shutdown()
	c.Stop()
	debug.Close()
	slog.Info("CDC1700 stopped.")
}
