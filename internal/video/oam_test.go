package video

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOAM_ScanLineCapsAtTen(t *testing.T) {
	o := NewOAM()

	// 15 sprites, all Y=16 (screen Y 0), all visible at LY=0.
	for i := 0; i < 15; i++ {
		base := uint16(i * 4)
		o.Write(0xFE00+base, 16) // Y=16 -> screen Y 0
		o.Write(0xFE00+base+1, 8)
		o.Write(0xFE00+base+2, 0)
		o.Write(0xFE00+base+3, 0)
	}

	lcdc := uint8(0x02) // objects enabled, 8x8
	o.ScanLine(0, lcdc)

	buf := o.Buffer()
	count := 0
	for i, idx := range buf {
		if idx == EmptySlot {
			continue
		}
		count++
		require.Equal(t, uint8(i), idx, "buffer retains first-found OAM index order")
	}
	require.Equal(t, 10, count)
}

func TestOAM_ScanLineClearedWhenObjectsDisabled(t *testing.T) {
	o := NewOAM()
	o.Write(0xFE00, 16)
	o.Write(0xFE00+1, 8)

	o.ScanLine(0, 0x00) // LCDC.1 clear: objects disabled

	for _, idx := range o.Buffer() {
		require.Equal(t, uint8(EmptySlot), idx)
	}
}

func TestOAM_ScanLineRespects16PixelHeight(t *testing.T) {
	o := NewOAM()
	o.Write(0xFE00, 16) // screen Y 0, covers LY 0-15 at height 16

	o.ScanLine(15, 0x06) // objects enabled + 8x16 mode (LCDC.2)
	require.Equal(t, uint8(0), o.Buffer()[0])

	o.ScanLine(16, 0x06)
	require.Equal(t, uint8(EmptySlot), o.Buffer()[0])
}
