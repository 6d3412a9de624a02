package cpu

import "github.com/rholden/dmgcore/internal/bus"

// opcodeFn executes one base (non-CB) instruction and returns its cost in
// M-cycles.
type opcodeFn func(*CPU, *bus.Bus) int

var baseOpcodeTable [256]opcodeFn

// init builds the base dispatch table. Regular instruction families (the
// 0x40-0xBF block, INC/DEC r, LD r,n, ALU A,n, RST, PUSH/POP, the
// conditional jump/call/return families, and the 16-bit register-pair
// group) are generated from their bit-pattern fields instead of being
// spelled out as one function per opcode; the remaining one-off
// instructions are assigned individually.
func init() {
	for i := range baseOpcodeTable {
		op := uint8(i)
		baseOpcodeTable[i] = func(c *CPU, b *bus.Bus) int { return unimplemented(c, op) }
	}

	// 0x00: NOP
	baseOpcodeTable[0x00] = func(c *CPU, b *bus.Bus) int { return 1 }

	// 0x01/0x11/0x21/0x31: LD rr,nn
	for p := uint8(0); p < 4; p++ {
		pair := p
		baseOpcodeTable[0x01+pair<<4] = func(c *CPU, b *bus.Bus) int {
			c.writePair(pair, c.readImmediate16(b))
			return 3
		}
	}

	// 0x02/0x12/0x22/0x32: LD (BC/DE/HL+/HL-),A
	baseOpcodeTable[0x02] = func(c *CPU, b *bus.Bus) int { b.Write8(c.Regs.BC(), c.Regs.A); return 2 }
	baseOpcodeTable[0x12] = func(c *CPU, b *bus.Bus) int { b.Write8(c.Regs.DE(), c.Regs.A); return 2 }
	baseOpcodeTable[0x22] = func(c *CPU, b *bus.Bus) int {
		hl := c.Regs.HL()
		b.Write8(hl, c.Regs.A)
		c.Regs.SetHL(hl + 1)
		return 2
	}
	baseOpcodeTable[0x32] = func(c *CPU, b *bus.Bus) int {
		hl := c.Regs.HL()
		b.Write8(hl, c.Regs.A)
		c.Regs.SetHL(hl - 1)
		return 2
	}

	// 0x0A/0x1A/0x2A/0x3A: LD A,(BC/DE/HL+/HL-)
	baseOpcodeTable[0x0A] = func(c *CPU, b *bus.Bus) int { c.Regs.A = b.Read8(c.Regs.BC()); return 2 }
	baseOpcodeTable[0x1A] = func(c *CPU, b *bus.Bus) int { c.Regs.A = b.Read8(c.Regs.DE()); return 2 }
	baseOpcodeTable[0x2A] = func(c *CPU, b *bus.Bus) int {
		hl := c.Regs.HL()
		c.Regs.A = b.Read8(hl)
		c.Regs.SetHL(hl + 1)
		return 2
	}
	baseOpcodeTable[0x3A] = func(c *CPU, b *bus.Bus) int {
		hl := c.Regs.HL()
		c.Regs.A = b.Read8(hl)
		c.Regs.SetHL(hl - 1)
		return 2
	}

	// 0x03/0x13/0x23/0x33: INC rr ; 0x0B/0x1B/0x2B/0x3B: DEC rr (no flags)
	for p := uint8(0); p < 4; p++ {
		pair := p
		baseOpcodeTable[0x03+pair<<4] = func(c *CPU, b *bus.Bus) int {
			c.writePair(pair, c.readPair(pair)+1)
			return 2
		}
		baseOpcodeTable[0x0B+pair<<4] = func(c *CPU, b *bus.Bus) int {
			c.writePair(pair, c.readPair(pair)-1)
			return 2
		}
	}

	// 0x09/0x19/0x29/0x39: ADD HL,rr
	for p := uint8(0); p < 4; p++ {
		pair := p
		baseOpcodeTable[0x09+pair<<4] = func(c *CPU, b *bus.Bus) int {
			c.addToHL(c.readPair(pair))
			return 2
		}
	}

	// 0x04/0x05/0x06 + r<<3: INC r / DEC r / LD r,n over the 8 operand
	// indices, with the (HL) slot's extra cycles added via operandCycles.
	for r := uint8(0); r < 8; r++ {
		reg := r
		base := reg << 3
		baseOpcodeTable[0x04+base] = func(c *CPU, b *bus.Bus) int {
			c.writeOperand8(b, reg, c.inc8(c.readOperand8(b, reg)))
			return 1 + operandCycles(reg)*2
		}
		baseOpcodeTable[0x05+base] = func(c *CPU, b *bus.Bus) int {
			c.writeOperand8(b, reg, c.dec8(c.readOperand8(b, reg)))
			return 1 + operandCycles(reg)*2
		}
		baseOpcodeTable[0x06+base] = func(c *CPU, b *bus.Bus) int {
			c.writeOperand8(b, reg, c.readImmediate8(b))
			return 2 + operandCycles(reg)
		}
	}

	// 0x07/0x0F/0x17/0x1F: RLCA/RRCA/RLA/RRA. Unlike their CB-prefixed
	// counterparts these always clear Z, independent of the result.
	baseOpcodeTable[0x07] = func(c *CPU, b *bus.Bus) int { c.Regs.A = c.rlc(c.Regs.A); c.Regs.SetZero(false); return 1 }
	baseOpcodeTable[0x0F] = func(c *CPU, b *bus.Bus) int { c.Regs.A = c.rrc(c.Regs.A); c.Regs.SetZero(false); return 1 }
	baseOpcodeTable[0x17] = func(c *CPU, b *bus.Bus) int { c.Regs.A = c.rl(c.Regs.A); c.Regs.SetZero(false); return 1 }
	baseOpcodeTable[0x1F] = func(c *CPU, b *bus.Bus) int { c.Regs.A = c.rr(c.Regs.A); c.Regs.SetZero(false); return 1 }

	// 0x08: LD (nn),SP
	baseOpcodeTable[0x08] = func(c *CPU, b *bus.Bus) int {
		addr := c.readImmediate16(b)
		b.Write16(addr, c.Regs.SP)
		return 5
	}

	baseOpcodeTable[0x10] = func(c *CPU, b *bus.Bus) int { c.fetch8(b); return 1 } // STOP, second byte ignored

	// 0x18: JR e ; 0x20/0x28/0x30/0x38: JR cc,e
	baseOpcodeTable[0x18] = func(c *CPU, b *bus.Bus) int {
		e := int8(c.readImmediate8(b))
		c.Regs.PC = uint16(int32(c.Regs.PC) + int32(e))
		return 3
	}
	for cc := uint8(0); cc < 4; cc++ {
		cond := cc
		baseOpcodeTable[0x20+cond<<3] = func(c *CPU, b *bus.Bus) int {
			e := int8(c.readImmediate8(b))
			if !c.condition(cond) {
				return 2
			}
			c.Regs.PC = uint16(int32(c.Regs.PC) + int32(e))
			return 3
		}
	}

	// 0x76 is HALT, occupying what would otherwise be LD (HL),(HL).
	baseOpcodeTable[0x76] = func(c *CPU, b *bus.Bus) int { c.Halt(); return 1 }

	// 0x40-0x7F (minus 0x76): LD r,r'
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			op := 0x40 + dst<<3 + src
			if op == 0x76 {
				continue
			}
			d, s := dst, src
			baseOpcodeTable[op] = func(c *CPU, b *bus.Bus) int {
				c.writeOperand8(b, d, c.readOperand8(b, s))
				return 1 + operandCycles(d) + operandCycles(s)
			}
		}
	}

	// 0x80-0xBF: ALU A,r (ADD/ADC/SUB/SBC/AND/XOR/OR/CP)
	aluOps := []func(*CPU, uint8){
		func(c *CPU, v uint8) { c.add(v, false) },
		func(c *CPU, v uint8) { c.add(v, true) },
		func(c *CPU, v uint8) { c.sub(v, false) },
		func(c *CPU, v uint8) { c.sub(v, true) },
		func(c *CPU, v uint8) { c.and(v) },
		func(c *CPU, v uint8) { c.xor(v) },
		func(c *CPU, v uint8) { c.or(v) },
		func(c *CPU, v uint8) { c.compare(v) },
	}
	for o := uint8(0); o < 8; o++ {
		for r := uint8(0); r < 8; r++ {
			op := 0x80 + o<<3 + r
			fn, reg := aluOps[o], r
			baseOpcodeTable[op] = func(c *CPU, b *bus.Bus) int {
				fn(c, c.readOperand8(b, reg))
				return 1 + operandCycles(reg)
			}
		}
	}
	// 0xC6/0xCE/0xD6/0xDE/0xE6/0xEE/0xF6/0xFE: ALU A,n
	for o := uint8(0); o < 8; o++ {
		fn := aluOps[o]
		baseOpcodeTable[0xC6+o<<3] = func(c *CPU, b *bus.Bus) int {
			fn(c, c.readImmediate8(b))
			return 2
		}
	}

	// 0xC0/0xC8/0xD0/0xD8: RET cc
	for cc := uint8(0); cc < 4; cc++ {
		cond := cc
		baseOpcodeTable[0xC0+cond<<3] = func(c *CPU, b *bus.Bus) int {
			if !c.condition(cond) {
				return 2
			}
			c.Regs.PC = c.pop16(b)
			return 5
		}
	}
	baseOpcodeTable[0xC9] = func(c *CPU, b *bus.Bus) int { c.Regs.PC = c.pop16(b); return 4 }
	baseOpcodeTable[0xD9] = func(c *CPU, b *bus.Bus) int {
		c.Regs.PC = c.pop16(b)
		c.ime = true
		return 4
	}

	// 0xC1/0xD1/0xE1/0xF1: POP rr ; 0xC5/0xD5/0xE5/0xF5: PUSH rr
	for p := uint8(0); p < 4; p++ {
		pair := p
		baseOpcodeTable[0xC1+pair<<4] = func(c *CPU, b *bus.Bus) int {
			c.writeStackPair(pair, c.pop16(b))
			return 3
		}
		baseOpcodeTable[0xC5+pair<<4] = func(c *CPU, b *bus.Bus) int {
			c.push16(b, c.readStackPair(pair))
			return 4
		}
	}

	// 0xC2/0xCA/0xD2/0xDA: JP cc,nn
	for cc := uint8(0); cc < 4; cc++ {
		cond := cc
		baseOpcodeTable[0xC2+cond<<3] = func(c *CPU, b *bus.Bus) int {
			target := c.readImmediate16(b)
			if !c.condition(cond) {
				return 3
			}
			c.Regs.PC = target
			return 4
		}
	}
	baseOpcodeTable[0xC3] = func(c *CPU, b *bus.Bus) int { c.Regs.PC = c.readImmediate16(b); return 4 }
	baseOpcodeTable[0xE9] = func(c *CPU, b *bus.Bus) int { c.Regs.PC = c.Regs.HL(); return 1 }

	// 0xC4/0xCC/0xD4/0xDC: CALL cc,nn
	for cc := uint8(0); cc < 4; cc++ {
		cond := cc
		baseOpcodeTable[0xC4+cond<<3] = func(c *CPU, b *bus.Bus) int {
			target := c.readImmediate16(b)
			if !c.condition(cond) {
				return 3
			}
			c.push16(b, c.Regs.PC)
			c.Regs.PC = target
			return 6
		}
	}
	baseOpcodeTable[0xCD] = func(c *CPU, b *bus.Bus) int {
		target := c.readImmediate16(b)
		c.push16(b, c.Regs.PC)
		c.Regs.PC = target
		return 6
	}

	// 0xC7/0xCF/.../0xFF: RST n
	for t := uint8(0); t < 8; t++ {
		target := uint16(t) * 8
		baseOpcodeTable[0xC7+t<<3] = func(c *CPU, b *bus.Bus) int {
			c.push16(b, c.Regs.PC)
			c.Regs.PC = target
			return 4
		}
	}

	baseOpcodeTable[0xE0] = func(c *CPU, b *bus.Bus) int {
		offset := c.readImmediate8(b)
		b.Write8(0xFF00+uint16(offset), c.Regs.A)
		return 3
	}
	baseOpcodeTable[0xF0] = func(c *CPU, b *bus.Bus) int {
		offset := c.readImmediate8(b)
		c.Regs.A = b.Read8(0xFF00 + uint16(offset))
		return 3
	}
	baseOpcodeTable[0xE2] = func(c *CPU, b *bus.Bus) int { b.Write8(0xFF00+uint16(c.Regs.C), c.Regs.A); return 2 }
	baseOpcodeTable[0xF2] = func(c *CPU, b *bus.Bus) int { c.Regs.A = b.Read8(0xFF00 + uint16(c.Regs.C)); return 2 }
	baseOpcodeTable[0xEA] = func(c *CPU, b *bus.Bus) int {
		addr := c.readImmediate16(b)
		b.Write8(addr, c.Regs.A)
		return 4
	}
	baseOpcodeTable[0xFA] = func(c *CPU, b *bus.Bus) int {
		addr := c.readImmediate16(b)
		c.Regs.A = b.Read8(addr)
		return 4
	}

	baseOpcodeTable[0x27] = func(c *CPU, b *bus.Bus) int { c.daa(); return 1 }
	baseOpcodeTable[0x2F] = func(c *CPU, b *bus.Bus) int {
		c.Regs.A = ^c.Regs.A
		c.Regs.SetSubtract(true)
		c.Regs.SetHalfCarry(true)
		return 1
	}
	baseOpcodeTable[0x37] = func(c *CPU, b *bus.Bus) int {
		c.Regs.SetSubtract(false)
		c.Regs.SetHalfCarry(false)
		c.Regs.SetCarry(true)
		return 1
	}
	baseOpcodeTable[0x3F] = func(c *CPU, b *bus.Bus) int {
		c.Regs.SetSubtract(false)
		c.Regs.SetHalfCarry(false)
		c.Regs.SetCarry(!c.Regs.Carry())
		return 1
	}

	baseOpcodeTable[0xE8] = func(c *CPU, b *bus.Bus) int {
		e := int8(c.readImmediate8(b))
		c.Regs.SP = c.addSignedToSP(e)
		return 4
	}
	baseOpcodeTable[0xF8] = func(c *CPU, b *bus.Bus) int {
		e := int8(c.readImmediate8(b))
		c.Regs.SetHL(c.addSignedToSP(e))
		return 3
	}
	baseOpcodeTable[0xF9] = func(c *CPU, b *bus.Bus) int { c.Regs.SP = c.Regs.HL(); return 2 }

	baseOpcodeTable[0xF3] = func(c *CPU, b *bus.Bus) int { c.DisableInterrupts(); return 1 }
	baseOpcodeTable[0xFB] = func(c *CPU, b *bus.Bus) int { c.EnableInterrupts(); return 1 }
}
