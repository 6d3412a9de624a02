package cpu

import (
	"testing"

	"github.com/rholden/dmgcore/internal/bus"
	"github.com/rholden/dmgcore/internal/cartridge"
	"github.com/rholden/dmgcore/internal/video"
	"github.com/stretchr/testify/require"
)

func newTestSystem(t *testing.T) (*CPU, *bus.Bus) {
	t.Helper()
	rom := make([]byte, 0x8000)
	rom[0x0147] = 0x00
	rom[0x0148] = 0x00
	cart, err := cartridge.Load(rom)
	require.NoError(t, err)

	b := bus.New(cart, video.NewLCD(), video.NewVRAM(), video.NewOAM())
	c := New()
	c.Regs.PC = 0xC000 // run test programs out of WRAM
	return c, b
}

func loadProgram(b *bus.Bus, at uint16, program ...uint8) {
	for i, v := range program {
		b.Write8(at+uint16(i), v)
	}
}

func TestCPU_LDrr_and_INC(t *testing.T) {
	c, b := newTestSystem(t)
	loadProgram(b, c.Regs.PC,
		0x06, 0x05, // LD B,5
		0x04, // INC B
	)

	c.Step(b)
	require.Equal(t, uint8(5), c.Regs.B)

	c.Step(b)
	require.Equal(t, uint8(6), c.Regs.B)
	require.False(t, c.Regs.Zero())
}

func TestCPU_INC_SetsZeroAndHalfCarry(t *testing.T) {
	c, b := newTestSystem(t)
	c.Regs.B = 0xFF
	loadProgram(b, c.Regs.PC, 0x04) // INC B

	c.Step(b)

	require.Equal(t, uint8(0), c.Regs.B)
	require.True(t, c.Regs.Zero())
	require.True(t, c.Regs.HalfCarry())
	require.False(t, c.Regs.Subtract())
}

func TestCPU_ADD_SetsCarryAndHalfCarry(t *testing.T) {
	c, b := newTestSystem(t)
	c.Regs.A = 0xF0
	c.Regs.B = 0x20
	loadProgram(b, c.Regs.PC, 0x80) // ADD A,B

	c.Step(b)

	require.Equal(t, uint8(0x10), c.Regs.A)
	require.True(t, c.Regs.Carry())
	require.False(t, c.Regs.HalfCarry())
}

func TestCPU_PushPopRoundTrip(t *testing.T) {
	c, b := newTestSystem(t)
	c.Regs.SP = 0xDFFE
	c.Regs.SetBC(0xCAFE)
	loadProgram(b, c.Regs.PC,
		0xC5, // PUSH BC
		0x01, 0x00, 0x00, // LD BC,0
		0xC1, // POP BC
	)

	c.Step(b) // PUSH BC
	c.Step(b) // LD BC,0
	require.Equal(t, uint16(0), c.Regs.BC())

	c.Step(b) // POP BC
	require.Equal(t, uint16(0xCAFE), c.Regs.BC())
}

func TestCPU_JRConditionalNotTaken(t *testing.T) {
	c, b := newTestSystem(t)
	c.Regs.SetZero(false)
	start := c.Regs.PC
	loadProgram(b, start, 0x28, 0x10) // JR Z,+16 (not taken, Z clear)

	cycles := c.Step(b)

	require.Equal(t, 2, cycles)
	require.Equal(t, start+2, c.Regs.PC)
}

func TestCPU_JRConditionalTaken(t *testing.T) {
	c, b := newTestSystem(t)
	c.Regs.SetZero(true)
	start := c.Regs.PC
	loadProgram(b, start, 0x28, 0x05) // JR Z,+5

	cycles := c.Step(b)

	require.Equal(t, 3, cycles)
	require.Equal(t, start+2+5, c.Regs.PC)
}

func TestCPU_CallAndRet(t *testing.T) {
	c, b := newTestSystem(t)
	c.Regs.SP = 0xDFFE
	loadProgram(b, c.Regs.PC,
		0xCD, 0x00, 0xD0, // CALL 0xD000
	)
	loadProgram(b, 0xD000, 0xC9) // RET

	retAddr := c.Regs.PC + 3
	c.Step(b) // CALL
	require.Equal(t, uint16(0xD000), c.Regs.PC)

	c.Step(b) // RET
	require.Equal(t, retAddr, c.Regs.PC)
}

func TestCPU_HaltResumesOnPendingInterrupt(t *testing.T) {
	c, b := newTestSystem(t)
	c.DisableInterrupts()
	loadProgram(b, c.Regs.PC, 0x76) // HALT

	c.Step(b)
	require.True(t, c.Halted())

	b.Interrupts().WriteIE(0x01)
	b.Interrupts().Request(1) // VBlank

	pcBefore := c.Regs.PC
	cycles := c.Step(b)
	require.False(t, c.Halted())
	require.Equal(t, 1, cycles, "HALT with IME=0 resumes without servicing the interrupt")
	require.Equal(t, pcBefore, c.Regs.PC, "the wake-up step must not also fetch and execute")
}

func TestCPU_RotateLeftAccumulatorClearsZeroRegardlessOfResult(t *testing.T) {
	c, b := newTestSystem(t)
	c.Regs.A = 0x00
	loadProgram(b, c.Regs.PC, 0x07) // RLCA

	c.Step(b)

	require.False(t, c.Regs.Zero(), "RLCA always clears Z even when the result is zero")
}

func TestCPU_CBBitOpcode(t *testing.T) {
	c, b := newTestSystem(t)
	c.Regs.B = 0x00
	loadProgram(b, c.Regs.PC, 0xCB, 0x40) // BIT 0,B

	cycles := c.Step(b)

	require.Equal(t, 2, cycles)
	require.True(t, c.Regs.Zero())
	require.True(t, c.Regs.HalfCarry())
}

func TestCPU_CBSetOpcodeOnMemory(t *testing.T) {
	c, b := newTestSystem(t)
	c.Regs.SetHL(0xC100)
	b.Write8(0xC100, 0x00)
	loadProgram(b, c.Regs.PC, 0xCB, 0xC6) // SET 0,(HL)

	cycles := c.Step(b)

	require.Equal(t, 4, cycles)
	require.Equal(t, uint8(0x01), b.Read8(0xC100))
}
