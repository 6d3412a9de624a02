// Package cpu implements the Sharp SM83 instruction set: register file,
// flags, fetch/decode/execute, and interrupt dispatch. Opcode dispatch is
// built from operand-index tables grouped by bit pattern rather than one
// function per opcode, keeping the ~250-entry instruction set to a handful
// of generator loops.
package cpu

import (
	"fmt"

	"github.com/rholden/dmgcore/internal/addr"
	"github.com/rholden/dmgcore/internal/bus"
	"github.com/rholden/dmgcore/internal/interrupt"
)

// CPU is the Sharp SM83 core. It holds no peripheral state of its own: all
// memory-mapped I/O flows through the Bus passed to Step.
type CPU struct {
	Regs Registers

	ime     bool
	halted  bool
	haltBug bool // HALT with IME=0 and a pending interrupt: PC fails to advance once

	currentOpcode uint8
}

// New returns a CPU in its post-boot-ROM power-on state: interrupts
// enabled, AF=0x01B0, BC=0x0013, DE=0x00D8, HL=0x014D, SP=0xFFFE and PC at
// the cartridge entry point (0x0100).
func New() *CPU {
	c := &CPU{}
	c.Regs.SetAF(0x01B0)
	c.Regs.SetBC(0x0013)
	c.Regs.SetDE(0x00D8)
	c.Regs.SetHL(0x014D)
	c.Regs.PC = 0x0100
	c.Regs.SP = 0xFFFE
	c.ime = true
	return c
}

func (c *CPU) IME() bool    { return c.ime }
func (c *CPU) Halted() bool { return c.halted }

// Step executes one instruction (or one idle HALT cycle) and returns the
// number of machine cycles (M-cycles, 4 dots each) it took.
func (c *CPU) Step(b *bus.Bus) int {
	if serviced, cycles := c.serviceInterrupt(b); serviced {
		return cycles
	}

	if c.halted {
		if b.Interrupts().HasPendingRegardlessOfIME() {
			// Wakes on the pending interrupt but does not service it: this
			// step only charges the idle cycle, the same as any other
			// HALT-idle step. Execution resumes, unhalted, on the step
			// after this one.
			c.halted = false
		}
		return 1
	}

	opcode := c.fetch8(b)
	c.currentOpcode = opcode

	if opcode == 0xCB {
		cb := c.fetch8(b)
		return execCB(c, b, cb)
	}

	return baseOpcodeTable[opcode](c, b)
}

// serviceInterrupt dispatches the highest-priority pending interrupt, if
// IME is set and one is pending, in fixed priority order (VBlank > LCDSTAT >
// Timer > Serial > Joypad). It costs 5 M-cycles: two wasted, a push of PC,
// and the jump.
func (c *CPU) serviceInterrupt(b *bus.Bus) (bool, int) {
	ic := b.Interrupts()

	if !c.ime {
		return false, 0
	}

	pending := ic.Pending()
	source, ok := interrupt.Lowest(pending)
	if !ok {
		return false, 0
	}

	c.halted = false
	c.ime = false
	ic.Clear(source)

	c.push16(b, c.Regs.PC)
	c.Regs.PC = addr.Vector(source)
	return true, 5
}

func (c *CPU) fetch8(b *bus.Bus) uint8 {
	v := b.Read8(c.Regs.PC)
	c.Regs.PC++
	return v
}

func (c *CPU) fetch16(b *bus.Bus) uint16 {
	low := c.fetch8(b)
	high := c.fetch8(b)
	return uint16(high)<<8 | uint16(low)
}

func (c *CPU) push16(b *bus.Bus, v uint16) {
	c.Regs.SP--
	b.Write8(c.Regs.SP, uint8(v>>8))
	c.Regs.SP--
	b.Write8(c.Regs.SP, uint8(v))
}

func (c *CPU) pop16(b *bus.Bus) uint16 {
	low := b.Read8(c.Regs.SP)
	c.Regs.SP++
	high := b.Read8(c.Regs.SP)
	c.Regs.SP++
	return uint16(high)<<8 | uint16(low)
}

// readOperand8/writeOperand8 decode the 3-bit register-index field shared by
// most base opcodes and every CB opcode: 0=B 1=C 2=D 3=E 4=H 5=L 6=(HL) 7=A.
func (c *CPU) readOperand8(b *bus.Bus, index uint8) uint8 {
	switch index & 0x07 {
	case 0:
		return c.Regs.B
	case 1:
		return c.Regs.C
	case 2:
		return c.Regs.D
	case 3:
		return c.Regs.E
	case 4:
		return c.Regs.H
	case 5:
		return c.Regs.L
	case 6:
		return b.Read8(c.Regs.HL())
	default:
		return c.Regs.A
	}
}

func (c *CPU) writeOperand8(b *bus.Bus, index uint8, value uint8) {
	switch index & 0x07 {
	case 0:
		c.Regs.B = value
	case 1:
		c.Regs.C = value
	case 2:
		c.Regs.D = value
	case 3:
		c.Regs.E = value
	case 4:
		c.Regs.H = value
	case 5:
		c.Regs.L = value
	case 6:
		b.Write8(c.Regs.HL(), value)
	default:
		c.Regs.A = value
	}
}

// operandCycles returns the extra M-cycles a (HL)-indexed operand costs
// relative to a register operand, used by callers that need exact timing.
func operandCycles(index uint8) int {
	if index&0x07 == 6 {
		return 1
	}
	return 0
}

func unimplemented(c *CPU, op uint8) int {
	panic(fmt.Sprintf("cpu: unimplemented opcode 0x%02X at PC=0x%04X", op, c.Regs.PC-1))
}

// EnableInterrupts implements EI. Real hardware delays IME taking effect by
// one instruction; this core sets it as soon as EI executes.
func (c *CPU) EnableInterrupts() { c.ime = true }

// DisableInterrupts implements DI: IME clears immediately.
func (c *CPU) DisableInterrupts() { c.ime = false }

// Halt implements HALT. The real-hardware "halt bug" (PC fails to advance
// past HALT when IME=0 and an interrupt is already pending) is not
// reproduced.
func (c *CPU) Halt() { c.halted = true }
