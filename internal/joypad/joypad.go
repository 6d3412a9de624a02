// Package joypad implements the P1 (0xFF00) selected-row button matrix.
package joypad

import (
	"github.com/rholden/dmgcore/internal/addr"
	"github.com/rholden/dmgcore/internal/bit"
	"github.com/rholden/dmgcore/internal/interrupt"
)

// Button identifies one of the eight buttons on the DMG matrix.
type Button uint8

const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// State tracks raw button/d-pad press state and the P1 selection bits.
// Pressed buttons are represented with a low bit (0 = pressed), matching
// the hardware's active-low convention.
type State struct {
	buttons uint8 // A/B/Select/Start, active low, low nibble
	dpad    uint8 // Right/Left/Up/Down, active low, low nibble
	select_ uint8 // P1 bits 4-5 as last written
}

// New returns a joypad with no buttons pressed.
func New() *State {
	return &State{buttons: 0x0F, dpad: 0x0F}
}

// Read returns the current P1 register value.
func (s *State) Read() uint8 {
	result := uint8(0b1100_0000) // bits 6-7 always read as 1
	result |= s.select_ & 0b0011_0000

	selectDpad := !bit.IsSet(4, s.select_)
	selectButtons := !bit.IsSet(5, s.select_)

	switch {
	case selectButtons && selectDpad:
		result |= s.buttons & s.dpad & 0x0F
	case selectButtons:
		result |= s.buttons & 0x0F
	case selectDpad:
		result |= s.dpad & 0x0F
	default:
		result |= 0x0F
	}

	return result
}

// WriteSelect updates the selection bits (4-5); only those bits are writable.
func (s *State) WriteSelect(value uint8) {
	s.select_ = value & 0b0011_0000
}

// bitOf returns which bank (buttons/dpad) and bit index a button belongs to.
func bitOf(b Button) (isDpad bool, index uint8) {
	switch b {
	case Right:
		return true, 0
	case Left:
		return true, 1
	case Up:
		return true, 2
	case Down:
		return true, 3
	case A:
		return false, 0
	case B:
		return false, 1
	case Select:
		return false, 2
	case Start:
		return false, 3
	default:
		panic("joypad: unknown button")
	}
}

// SetPressed updates a button's state and raises the joypad interrupt on any
// high-to-low (press) transition, as real hardware does.
func (s *State) SetPressed(b Button, pressed bool, ic *interrupt.Controller) {
	isDpad, index := bitOf(b)

	var before uint8
	if isDpad {
		before = s.dpad
	} else {
		before = s.buttons
	}

	after := bit.SetTo(index, before, !pressed)

	if isDpad {
		s.dpad = after
	} else {
		s.buttons = after
	}

	transitionedLow := before&(1<<index) != 0 && after&(1<<index) == 0
	if transitionedLow {
		ic.Request(addr.Joypad)
	}
}
