package cpu

import "github.com/rholden/dmgcore/internal/bus"

// The 16-bit register pairs addressed by the 2-bit "dd" field in most
// 0x0X/0x1X/0x2X/0x3X opcodes: BC, DE, HL, SP.
func (c *CPU) readPair(index uint8) uint16 {
	switch index & 0x03 {
	case 0:
		return c.Regs.BC()
	case 1:
		return c.Regs.DE()
	case 2:
		return c.Regs.HL()
	default:
		return c.Regs.SP
	}
}

func (c *CPU) writePair(index uint8, value uint16) {
	switch index & 0x03 {
	case 0:
		c.Regs.SetBC(value)
	case 1:
		c.Regs.SetDE(value)
	case 2:
		c.Regs.SetHL(value)
	default:
		c.Regs.SP = value
	}
}

// The "qq" field used by PUSH/POP: BC, DE, HL, AF (AF instead of SP).
func (c *CPU) readStackPair(index uint8) uint16 {
	if index&0x03 == 3 {
		return c.Regs.AF()
	}
	return c.readPair(index)
}

func (c *CPU) writeStackPair(index uint8, value uint16) {
	if index&0x03 == 3 {
		c.Regs.SetAF(value)
	} else {
		c.writePair(index, value)
	}
}

// condition evaluates one of the four branch conditions NZ/Z/NC/C.
func (c *CPU) condition(index uint8) bool {
	switch index & 0x03 {
	case 0:
		return !c.Regs.Zero()
	case 1:
		return c.Regs.Zero()
	case 2:
		return !c.Regs.Carry()
	default:
		return c.Regs.Carry()
	}
}

func (c *CPU) readImmediate8(b *bus.Bus) uint8  { return c.fetch8(b) }
func (c *CPU) readImmediate16(b *bus.Bus) uint16 { return c.fetch16(b) }
