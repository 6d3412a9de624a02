package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func makeROM() []byte {
	rom := make([]byte, 0x8000)
	rom[0x0147] = 0x00
	rom[0x0148] = 0x00
	// JR -2: an infinite loop at the cartridge entry point, so Step always
	// has a well-defined instruction to execute.
	rom[0x0100] = 0x18
	rom[0x0101] = 0xFE
	return rom
}

func TestEmulator_NewParsesHeader(t *testing.T) {
	e, err := New(makeROM())
	require.NoError(t, err)
	require.Equal(t, "(untitled)", e.CartridgeHeader().Title)
}

func TestEmulator_StepAdvancesInstructionCount(t *testing.T) {
	e, err := New(makeROM())
	require.NoError(t, err)

	e.Step()
	require.Equal(t, uint64(1), e.InstructionCount())
}

func TestEmulator_RunFrameProducesExactlyOneFrame(t *testing.T) {
	e, err := New(makeROM())
	require.NoError(t, err)

	e.RunFrame()
	require.Equal(t, uint64(1), e.FrameCount())
}

func TestEmulator_PauseStopsRunFrame(t *testing.T) {
	e, err := New(makeROM())
	require.NoError(t, err)

	e.Pause()
	e.RunFrame()
	require.Equal(t, uint64(0), e.FrameCount())
}
