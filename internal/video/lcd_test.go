package video

import (
	"testing"

	"github.com/rholden/dmgcore/internal/interrupt"
	"github.com/stretchr/testify/require"
)

func TestLCD_ModeSequence(t *testing.T) {
	lcd := NewLCD()
	ic := interrupt.New()

	require.Equal(t, ModeOAM, lcd.mode())

	lcd.Update(80/4, ic)
	require.Equal(t, ModeVRAM, lcd.mode())

	lcd.Update(172/4, ic)
	require.Equal(t, ModeHBlank, lcd.mode())

	lcd.Update(204/4, ic)
	require.Equal(t, ModeOAM, lcd.mode())
	require.Equal(t, uint8(1), lcd.LY())
}

func TestLCD_VBlankAtLine144(t *testing.T) {
	lcd := NewLCD()
	ic := interrupt.New()

	// Drive LY from 0 to 143 (143 full scanlines).
	for i := 0; i < 143; i++ {
		lcd.Update(dotsPerScanline/4, ic)
	}
	require.Equal(t, uint8(143), lcd.LY())

	event := lcd.Update(dotsPerScanline/4, ic)
	require.Equal(t, VBlankEntered, event)
	require.Equal(t, uint8(144), lcd.LY())
	require.NotZero(t, ic.ReadIF()&0x01, "vblank interrupt requested")
}

func TestLCD_ScanlineWrapReentersOAM(t *testing.T) {
	lcd := NewLCD()
	ic := interrupt.New()

	for i := 0; i < 153; i++ {
		lcd.Update(dotsPerScanline/4, ic)
	}
	require.Equal(t, uint8(153), lcd.LY())

	event := lcd.Update(dotsPerScanline/4, ic)
	require.Equal(t, OAMScanEntered, event)
	require.Equal(t, uint8(0), lcd.LY())
}

func TestLCD_LYCMatchRaisesSTATInterrupt(t *testing.T) {
	lcd := NewLCD()
	ic := interrupt.New()

	lcd.WriteLYC(1)
	lcd.WriteSTAT(0x40) // enable LYC=LY STAT IRQ

	lcd.Update(dotsPerScanline/4, ic)

	require.Equal(t, uint8(1), lcd.LY())
	require.True(t, lcd.STAT()&0x04 != 0)
	require.NotZero(t, ic.ReadIF()&0x02)
}

func TestLCD_WriteLYResetsToZero(t *testing.T) {
	lcd := NewLCD()
	ic := interrupt.New()
	lcd.Update(dotsPerScanline/4, ic)
	require.Equal(t, uint8(1), lcd.LY())

	lcd.WriteLY(ic)
	require.Equal(t, uint8(0), lcd.LY())
}
