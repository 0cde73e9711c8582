/*
 * CDC1700 - Real time clock pulses.
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

package timer

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rcornwell/CDC1700/emu/core"
)

// Default clock pulse, one external clock tick per millisecond.
const DefaultInterval = time.Millisecond

type Timer struct {
	wg       sync.WaitGroup
	running  atomic.Bool        // Deliver pulses when set.
	master   chan<- core.Packet // Where pulses are sent.
	done     chan struct{}      // Stop timer task.
	interval time.Duration      // Time between pulses.
}

// Create a clock timer sending pulses to master.
func NewTimer(master chan<- core.Packet, interval time.Duration) *Timer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	timer := &Timer{
		master:   master,
		done:     make(chan struct{}),
		interval: interval,
	}
	timer.wg.Add(1)
	go timer.run()
	return timer
}

// Start delivering clock pulses.
func (timer *Timer) Start() {
	timer.running.Store(true)
}

// Stop delivering clock pulses.
func (timer *Timer) Stop() {
	timer.running.Store(false)
}

// Shutdown the timer task.
func (timer *Timer) Shutdown() {
	close(timer.done)
	done := make(chan struct{})
	go func() {
		timer.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for timer to finish.")
		return
	}
}

// Send a pulse on each tick while running.
func (timer *Timer) run() {
	defer timer.wg.Done()
	ticker := time.NewTicker(timer.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !timer.running.Load() {
				continue
			}
			select {
			case timer.master <- core.Packet{Msg: core.Tick}:
			case <-timer.done:
				return
			}
		case <-timer.done:
			return
		}
	}
}
