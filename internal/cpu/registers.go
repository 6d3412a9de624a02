package cpu

import "github.com/rholden/dmgcore/internal/bit"

// Registers holds the SM83 register file: six general-purpose 8-bit
// registers addressable individually or as the 16-bit pairs AF/BC/DE/HL,
// plus the stack pointer and program counter.
type Registers struct {
	A, F       uint8
	B, C       uint8
	D, E       uint8
	H, L       uint8
	SP, PC     uint16
}

// AF returns the packed accumulator+flags pair. The low nibble of F is
// always zero on real hardware; New and every flag-setting path in this
// package already enforce that, so no masking is needed here.
func (r *Registers) AF() uint16 { return bit.Combine(r.A, r.F) }

// SetAF writes the accumulator+flags pair, masking the flag register's
// low nibble to zero: F's low 4 bits never read back as anything but zero,
// even after a raw 16-bit POP AF.
func (r *Registers) SetAF(v uint16) {
	r.A = bit.High(v)
	r.F = bit.Low(v) & 0xF0
}

func (r *Registers) BC() uint16    { return bit.Combine(r.B, r.C) }
func (r *Registers) SetBC(v uint16) { r.B, r.C = bit.High(v), bit.Low(v) }

func (r *Registers) DE() uint16    { return bit.Combine(r.D, r.E) }
func (r *Registers) SetDE(v uint16) { r.D, r.E = bit.High(v), bit.Low(v) }

func (r *Registers) HL() uint16    { return bit.Combine(r.H, r.L) }
func (r *Registers) SetHL(v uint16) { r.H, r.L = bit.High(v), bit.Low(v) }
