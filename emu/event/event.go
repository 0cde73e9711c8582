/*
 * CDC1700 - Event scheduler.
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
	"github.com/rcornwell/CDC1700/emu/iofw"
)

type Callback = func(iarg int)

type Event struct {
	time  int              // Number of cycles to event
	owner *iofw.Descriptor // Device event is registered too
	cb    Callback         // Function to callback
	iarg  int              // Integer argument
	prev  *Event
	next  *Event
}

type EventList struct {
	head *Event
	tail *Event
}

var el EventList

// Add an event, time of zero runs the callback immediately.
func AddEvent(owner *iofw.Descriptor, cb Callback, time int, iarg int) {
	if time <= 0 {
		cb(iarg)
		return
	}

	ev := &Event{owner: owner, cb: cb, time: time, iarg: iarg}

	evptr := el.head
	// If empty put on head
	if evptr == nil {
		el.head = ev
		el.tail = ev
		return
	}

	// Scan for place to install it
	for evptr != nil {
		// Event before next event
		if ev.time < evptr.time {
			// Remove current time from next time
			evptr.time -= ev.time
			ev.prev = evptr.prev
			ev.next = evptr
			evptr.prev = ev
			if ev.prev != nil {
				ev.prev.next = ev
			} else {
				el.head = ev
			}
			return
		}
		// Make new event relative to head of list
		ev.time -= evptr.time
		evptr = evptr.next
	}

	// Get here, put it on tail of list
	ev.prev = el.tail
	el.tail.next = ev
	el.tail = ev
}

// Remove an event from the list.
func (ev *Event) unlink() {
	nxt := ev.next
	if nxt != nil {
		// Give time to next event
		nxt.time += ev.time
		nxt.prev = ev.prev
	} else {
		el.tail = ev.prev
	}

	if ev.prev != nil {
		ev.prev.next = nxt
	} else {
		el.head = nxt
	}
	ev.prev = nil
	ev.next = nil
}

// Cancel first event for owner with argument iarg.
func CancelEvent(owner *iofw.Descriptor, iarg int) {
	for evptr := el.head; evptr != nil; evptr = evptr.next {
		if evptr.owner == owner && evptr.iarg == iarg {
			evptr.unlink()
			return
		}
	}
}

// Cancel every event of owner.
func CancelAll(owner *iofw.Descriptor) {
	evptr := el.head
	for evptr != nil {
		nxt := evptr.next
		if evptr.owner == owner {
			evptr.unlink()
		}
		evptr = nxt
	}
}

// Pending reports whether owner has an event with argument iarg queued.
func Pending(owner *iofw.Descriptor, iarg int) bool {
	for evptr := el.head; evptr != nil; evptr = evptr.next {
		if evptr.owner == owner && evptr.iarg == iarg {
			return true
		}
	}
	return false
}

// Empty reports whether no events are queued.
func Empty() bool {
	return el.head == nil
}

// Reset drops every queued event.
func Reset() {
	el.head = nil
	el.tail = nil
}

// Advance time by t clock cycles.
func Advance(t int) {
	evptr := el.head
	if evptr == nil {
		return
	}
	evptr.time -= t
	for evptr != nil && evptr.time <= 0 {
		// Leftover time belongs to the next event.
		over := evptr.time
		el.head = evptr.next
		if el.head != nil {
			el.head.prev = nil
			el.head.time += over
		} else {
			el.tail = nil
		}
		evptr.next = nil
		evptr.cb(evptr.iarg)
		evptr = el.head
	}
}
