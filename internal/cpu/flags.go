package cpu

// Flag bit positions within F.
const (
	flagZ uint8 = 1 << 7
	flagN uint8 = 1 << 6
	flagH uint8 = 1 << 5
	flagC uint8 = 1 << 4
)

func (r *Registers) setFlag(mask uint8, set bool) {
	if set {
		r.F |= mask
	} else {
		r.F &^= mask
	}
}

func (r *Registers) Zero() bool      { return r.F&flagZ != 0 }
func (r *Registers) Subtract() bool  { return r.F&flagN != 0 }
func (r *Registers) HalfCarry() bool { return r.F&flagH != 0 }
func (r *Registers) Carry() bool     { return r.F&flagC != 0 }

func (r *Registers) SetZero(v bool)      { r.setFlag(flagZ, v) }
func (r *Registers) SetSubtract(v bool)  { r.setFlag(flagN, v) }
func (r *Registers) SetHalfCarry(v bool) { r.setFlag(flagH, v) }
func (r *Registers) SetCarry(v bool)     { r.setFlag(flagC, v) }
