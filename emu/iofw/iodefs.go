/*
 * CDC1700 - I/O framework definitions.
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

package iofw

// Status is the outcome of a register access.
type Status int

const (
	StatusReply          Status = iota // Value resolved, device replied
	StatusReject                       // Access refused
	StatusInternalReject               // Device refused after accepting address
)

func (s Status) String() string {
	switch s {
	case StatusReply:
		return "reply"
	case StatusReject:
		return "reject"
	case StatusInternalReject:
		return "internal reject"
	}
	return "status"
}

const (
	MaxRegs  = 8  // Register bank size
	MaxEquip = 16 // Equipment numbers
	MaxDC    = 3  // Buffered data channels

	// I/O address fields.
	IOW         uint16 = 0xf800 // Channel (W) field
	IOEquipment uint16 = 0x0780 // Equipment number
	IOStation   uint16 = 0x0078 // Station number
	IOCommand   uint16 = 0x007f // Station + register

	equipShift = 7
	wShift     = 11

	// Standard director function bits (register 1 write).
	DirStop  uint16 = 0x0040 // Stop operation
	DirStart uint16 = 0x0020 // Start operation
	DirAlarm uint16 = 0x0010 // Alarm interrupt select
	DirEOP   uint16 = 0x0008 // End of operation interrupt select
	DirData  uint16 = 0x0004 // Data interrupt select
	DirCInt  uint16 = 0x0002 // Clear interrupts
	DirCCont uint16 = 0x0001 // Clear controller

	// Standard status bits (register 1 read).
	StParity uint16 = 0x0100 // Parity error
	StProt   uint16 = 0x0080 // Protected
	StLost   uint16 = 0x0040 // Lost data
	StAlarm  uint16 = 0x0020 // Alarm
	StEOP    uint16 = 0x0010 // End of operation
	StData   uint16 = 0x0008 // Data
	StInt    uint16 = 0x0004 // Interrupt pending
	StBusy   uint16 = 0x0002 // Busy
	StReady  uint16 = 0x0001 // Ready

	// Function/status register.
	RegFunction uint8 = 1
	maskReg1    uint8 = 1 << RegFunction

	// Logical device direction flags.
	DevInput  = 0x01 // Input side of descriptor
	DevOutput = 0x02 // Output side of descriptor

	// Logical device debug options.
	DebugIntr   = 0x01 // Trace interrupts
	DebugDState = 0x02 // Dump device state around channel I/O
)

// EquipNumber returns the equipment number of an I/O address.
func EquipNumber(addr uint16) uint8 {
	return uint8((addr & IOEquipment) >> equipShift)
}

var debugOption = map[string]int{
	"INTR":   DebugIntr,
	"DSTATE": DebugDState,
}
