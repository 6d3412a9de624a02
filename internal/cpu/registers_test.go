package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisters_PairAccessors(t *testing.T) {
	var r Registers

	r.SetBC(0xABCD)
	require.Equal(t, uint16(0xABCD), r.BC())
	require.Equal(t, uint8(0xAB), r.B)
	require.Equal(t, uint8(0xCD), r.C)

	r.SetDE(0x1234)
	require.Equal(t, uint16(0x1234), r.DE())

	r.SetHL(0xBEEF)
	require.Equal(t, uint16(0xBEEF), r.HL())
}

func TestRegisters_SetAFMasksLowNibble(t *testing.T) {
	var r Registers
	r.SetAF(0x12FF)

	require.Equal(t, uint8(0x12), r.A)
	require.Equal(t, uint8(0xF0), r.F, "F's low 4 bits always read back as zero")
	require.Equal(t, uint16(0x12F0), r.AF())
}

func TestRegisters_Flags(t *testing.T) {
	var r Registers
	r.SetZero(true)
	r.SetCarry(true)

	require.True(t, r.Zero())
	require.True(t, r.Carry())
	require.False(t, r.Subtract())
	require.False(t, r.HalfCarry())

	r.SetZero(false)
	require.False(t, r.Zero())
	require.True(t, r.Carry())
}
