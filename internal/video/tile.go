package video

import "github.com/rholden/dmgcore/internal/bit"

// tileRowPixels decodes one 8-pixel row of 2bpp tile data into palette
// indices 0-3, MSB (pixel 0, leftmost) first.
func tileRowPixels(low, high uint8) [8]uint8 {
	var row [8]uint8
	for x := 0; x < 8; x++ {
		index := uint8(7 - x)
		pixel := uint8(0)
		if bit.IsSet(index, low) {
			pixel |= 1
		}
		if bit.IsSet(index, high) {
			pixel |= 2
		}
		row[x] = pixel
	}
	return row
}

// tileDataAddr resolves a tile-map byte to the address of its row data,
// honoring LCDC.4's signed/unsigned addressing mode.
func tileDataAddr(tileIndex uint8, unsignedAddressing bool, rowInTile int) uint16 {
	var base int
	if unsignedAddressing {
		base = 0x8000 + int(tileIndex)*16
	} else {
		base = 0x9000 + int(int8(tileIndex))*16
	}
	return uint16(base + rowInTile*2)
}
