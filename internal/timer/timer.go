// Package timer implements the DIV/TIMA/TMA/TAC timer block, including the
// falling-edge increment rule used by real DMG hardware. It ticks in
// machine cycles rather than dot/T-cycles: DIV is bits 6-13 of a 16-bit
// counter incremented one M-cycle at a time, i.e. DIV = counter >> 6
// truncated to 8 bits.
package timer

import (
	"github.com/rholden/dmgcore/internal/addr"
	"github.com/rholden/dmgcore/internal/bit"
	"github.com/rholden/dmgcore/internal/interrupt"
)

// bitForRate maps TAC's 2-bit frequency select to the internal-counter bit
// whose falling edge clocks TIMA.
var bitForRate = [4]uint8{7, 1, 3, 5}

// Timer holds the internal divider counter and the user-visible registers.
type Timer struct {
	counter uint16 // internal counter; DIV = counter >> 6
	lastBit bool   // previous sampled value of the selected counter bit

	tima uint8
	tma  uint8
	tac  uint8
}

// New returns a timer with its internal counter zeroed.
func New() *Timer {
	return &Timer{}
}

// DIV returns the memory-visible divider register.
func (t *Timer) DIV() uint8 { return uint8(t.counter >> 6) }

func (t *Timer) TIMA() uint8 { return t.tima }
func (t *Timer) TMA() uint8  { return t.tma }
func (t *Timer) TAC() uint8  { return t.tac }

// WriteDIV zeroes the internal counter. This is deliberately observable: it
// can itself produce a falling edge on the selected bit, incrementing TIMA
// on the very next tick.
func (t *Timer) WriteDIV() {
	t.counter = 0
}

func (t *Timer) WriteTIMA(v uint8) { t.tima = v }
func (t *Timer) WriteTMA(v uint8)  { t.tma = v }
func (t *Timer) WriteTAC(v uint8)  { t.tac = v & 0x07 }

// selectedBit samples the bit chosen by TAC's frequency-select field.
func (t *Timer) selectedBit() bool {
	return bit.IsSet16(bitForRate[t.tac&0x03], t.counter)
}

// Tick advances the timer by the given number of machine cycles, one unit
// at a time so the falling-edge detection (and the resulting TIMA
// increments) matches hardware exactly regardless of how many cycles an
// instruction charges at once.
func (t *Timer) Tick(mCycles int, ic *interrupt.Controller) {
	for i := 0; i < mCycles; i++ {
		t.counter++

		current := t.selectedBit()
		enabled := bit.IsSet(2, t.tac)

		if t.lastBit && !current && enabled {
			t.tima++
			if t.tima == 0 {
				t.tima = t.tma
				ic.Request(addr.Timer)
			}
		}

		t.lastBit = current
	}
}
