package cpu

import "github.com/rholden/dmgcore/internal/bus"

// CB-prefixed opcodes are fully regular: bits 7-6 select the operation
// group (00=rotate/shift, 01=BIT, 10=RES, 11=SET), bits 5-3 select either
// the rotate/shift variant or the bit index, and bits 2-0 select the
// 8-value register operand shared with the base table. That regularity
// lets the whole table be built from the bit fields rather than 256
// hand-written functions.
var cbOpcodeTable [256]opcodeFn

var shiftOps = [8]func(*CPU, uint8) uint8{
	(*CPU).rlc,
	(*CPU).rrc,
	(*CPU).rl,
	(*CPU).rr,
	(*CPU).sla,
	(*CPU).sra,
	(*CPU).swap,
	(*CPU).srl,
}

func init() {
	for variant := uint8(0); variant < 8; variant++ {
		for reg := uint8(0); reg < 8; reg++ {
			op := variant<<3 + reg
			v, r := variant, reg
			cbOpcodeTable[op] = func(c *CPU, b *bus.Bus) int {
				c.writeOperand8(b, r, shiftOps[v](c, c.readOperand8(b, r)))
				return 2 + operandCycles(r)*2
			}
		}
	}

	for bitIndex := uint8(0); bitIndex < 8; bitIndex++ {
		for reg := uint8(0); reg < 8; reg++ {
			idx, r := bitIndex, reg
			cbOpcodeTable[0x40+idx<<3+r] = func(c *CPU, b *bus.Bus) int {
				c.bit(idx, c.readOperand8(b, r))
				if r&0x07 == 6 {
					return 3
				}
				return 2
			}
			cbOpcodeTable[0x80+idx<<3+r] = func(c *CPU, b *bus.Bus) int {
				c.writeOperand8(b, r, resBit(idx, c.readOperand8(b, r)))
				return 2 + operandCycles(r)*2
			}
			cbOpcodeTable[0xC0+idx<<3+r] = func(c *CPU, b *bus.Bus) int {
				c.writeOperand8(b, r, setBit(idx, c.readOperand8(b, r)))
				return 2 + operandCycles(r)*2
			}
		}
	}
}

func execCB(c *CPU, b *bus.Bus, opcode uint8) int {
	return cbOpcodeTable[opcode](c, b)
}
