/*
 * CDC1700 - Event system test cases.
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

package event

import (
	"testing"

	"github.com/rcornwell/CDC1700/emu/iofw"
)

var stepCount uint64

type device struct {
	iod  iofw.Descriptor
	iarg int
	time uint64
}

var (
	deviceA device
	deviceB device
	deviceC device
	deviceD device
)

// Callbacks, save step count in routine time and set argument to iarg.
func (d *device) callback(iarg int) {
	d.iarg = iarg
	d.time = stepCount
}

// Callback which schedules another event on device A.
func (d *device) chainCallback(iarg int) {
	d.iarg = iarg
	d.time = stepCount
	AddEvent(&deviceA.iod, deviceA.callback, iarg, iarg)
}

// Initialize for each test.
func initTest() {
	Reset()
	stepCount = 0
	deviceA = device{}
	deviceB = device{}
	deviceC = device{}
	deviceD = device{}
}

func run(steps int) {
	for range steps {
		stepCount++
		Advance(1)
	}
}

func check(t *testing.T, name string, d *device, time uint64, iarg int) {
	t.Helper()
	if d.time != time {
		t.Errorf("Event %s did not fire at correct time %d got %d", name, time, d.time)
	}
	if d.iarg != iarg {
		t.Errorf("Event %s did not set data correct %d got %d", name, iarg, d.iarg)
	}
}

func TestAddEvent1(t *testing.T) {
	initTest()
	AddEvent(&deviceA.iod, deviceA.callback, 10, 1)
	run(20)
	check(t, "A", &deviceA, 10, 1)
	if !Empty() {
		t.Errorf("Event list not empty")
	}
}

// Add two events.
func TestAddEvent2(t *testing.T) {
	initTest()
	AddEvent(&deviceA.iod, deviceA.callback, 10, 1)
	AddEvent(&deviceB.iod, deviceB.callback, 5, 2)
	run(20)
	check(t, "A", &deviceA, 10, 1)
	check(t, "B", &deviceB, 5, 2)
}

// Add event With same time.
func TestAddEvent3(t *testing.T) {
	initTest()
	AddEvent(&deviceA.iod, deviceA.callback, 10, 1)
	AddEvent(&deviceB.iod, deviceB.callback, 10, 2)
	run(20)
	check(t, "A", &deviceA, 10, 1)
	check(t, "B", &deviceB, 10, 2)
}

// Add event during event.
func TestAddEvent4(t *testing.T) {
	initTest()
	AddEvent(&deviceA.iod, deviceA.callback, 20, 5)
	AddEvent(&deviceC.iod, deviceC.chainCallback, 10, 2)
	run(30)
	check(t, "C", &deviceC, 10, 2)
	// Chained event at 12 is overwritten by the one at 20.
	check(t, "A", &deviceA, 20, 5)
}

// Schedule 3 events, last one before first, make sure all are correct.
func TestAddEvent5(t *testing.T) {
	initTest()
	AddEvent(&deviceA.iod, deviceA.callback, 20, 1)
	AddEvent(&deviceB.iod, deviceB.callback, 20, 2)
	AddEvent(&deviceD.iod, deviceD.callback, 25, 3)
	run(30)
	check(t, "A", &deviceA, 20, 1)
	check(t, "B", &deviceB, 20, 2)
	check(t, "D", &deviceD, 25, 3)
}

// Cancel an event.
func TestCancelEvent1(t *testing.T) {
	initTest()
	AddEvent(&deviceA.iod, deviceA.callback, 10, 5)
	AddEvent(&deviceB.iod, deviceB.callback, 20, 2)
	for range 30 {
		stepCount++
		Advance(1)
		if deviceA.iarg == 5 {
			CancelEvent(&deviceB.iod, 2)
		}
	}
	check(t, "A", &deviceA, 10, 5)
	check(t, "B", &deviceB, 0, 0)
}

// Schedule 4 events, cancel two while events in queue.
func TestCancelEvent2(t *testing.T) {
	initTest()
	AddEvent(&deviceA.iod, deviceA.callback, 10, 5)
	AddEvent(&deviceB.iod, deviceB.callback, 40, 2)
	AddEvent(&deviceD.iod, deviceD.callback, 30, 3)
	AddEvent(&deviceD.iod, deviceD.callback, 50, 4)
	for range 60 {
		stepCount++
		Advance(1)
		if deviceA.iarg == 5 {
			CancelEvent(&deviceB.iod, 2)
			CancelEvent(&deviceD.iod, 4)
		}
	}
	check(t, "A", &deviceA, 10, 5)
	check(t, "B", &deviceB, 0, 0)
	check(t, "D", &deviceD, 30, 3)
}

// Cancel every event of one device.
func TestCancelAll(t *testing.T) {
	initTest()
	AddEvent(&deviceD.iod, deviceD.callback, 5, 1)
	AddEvent(&deviceA.iod, deviceA.callback, 10, 5)
	AddEvent(&deviceD.iod, deviceD.callback, 15, 2)
	if !Pending(&deviceD.iod, 2) {
		t.Errorf("Event D not pending")
	}
	CancelAll(&deviceD.iod)
	if Pending(&deviceD.iod, 1) || Pending(&deviceD.iod, 2) {
		t.Errorf("Event D still pending")
	}
	run(20)
	check(t, "A", &deviceA, 10, 5)
	check(t, "D", &deviceD, 0, 0)
}

// Advance by more than one cycle carries the overrun.
func TestAdvanceMany(t *testing.T) {
	initTest()
	AddEvent(&deviceA.iod, deviceA.callback, 3, 1)
	AddEvent(&deviceB.iod, deviceB.callback, 6, 2)
	AddEvent(&deviceD.iod, deviceD.callback, 9, 3)
	stepCount = 4
	Advance(4)
	check(t, "A", &deviceA, 4, 1)
	check(t, "B", &deviceB, 0, 0)
	stepCount = 8
	Advance(4)
	check(t, "B", &deviceB, 8, 2)
	check(t, "D", &deviceD, 0, 0)
	stepCount = 9
	Advance(1)
	check(t, "D", &deviceD, 9, 3)
}

// Test event at zero units.
func TestAddEventZero(t *testing.T) {
	initTest()
	AddEvent(&deviceA.iod, deviceA.callback, 0, 5)
	check(t, "A", &deviceA, 0, 5)
	if !Empty() {
		t.Errorf("Zero time event queued")
	}
}
