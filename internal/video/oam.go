package video

import "github.com/rholden/dmgcore/internal/bit"

// OAMSize is the size in bytes of the sprite attribute table.
const OAMSize = 0xA0

// EmptySlot is the sentinel value for an unused scanline-object-buffer slot.
const EmptySlot = 0xFF

// maxSpritesPerLine is the hardware limit on sprites rendered per scanline.
const maxSpritesPerLine = 10

// OAM is the 160-byte sprite attribute table plus the per-scanline object
// buffer the PPU scans into.
type OAM struct {
	data    [OAMSize]uint8
	buffer  [maxSpritesPerLine]uint8 // OAM indices, EmptySlot = empty
}

// NewOAM returns an empty OAM table.
func NewOAM() *OAM {
	o := &OAM{}
	o.clearBuffer()
	return o
}

func (o *OAM) clearBuffer() {
	for i := range o.buffer {
		o.buffer[i] = EmptySlot
	}
}

// Read reads a raw OAM byte at an address in 0xFE00-0xFE9F.
func (o *OAM) Read(address uint16) uint8 {
	return o.data[address-0xFE00]
}

// Write writes a raw OAM byte.
func (o *OAM) Write(address uint16, value uint8) {
	o.data[address-0xFE00] = value
}

// spriteHeight returns 8 or 16 depending on LCDC.2.
func spriteHeight(lcdc uint8) int {
	if bit.IsSet(2, lcdc) {
		return 16
	}
	return 8
}

// ScanLine refreshes the scanline object buffer for the given LY: scan OAM
// entries in index order, keep the first up to 10 whose Y range covers
// LY+16, sentinel the remaining slots. If objects are globally disabled
// (LCDC.1 clear), the buffer is fully cleared instead.
func (o *OAM) ScanLine(ly int, lcdc uint8) {
	o.clearBuffer()

	if !bit.IsSet(1, lcdc) {
		return
	}

	height := spriteHeight(lcdc)
	found := 0

	for i := 0; i < 40 && found < maxSpritesPerLine; i++ {
		y := int(o.Read(0xFE00 + uint16(i*4)))
		top := y
		if ly+16 >= top && ly+16 < top+height {
			o.buffer[found] = uint8(i)
			found++
		}
	}
}

// Buffer returns the current scanline's object-index buffer.
func (o *OAM) Buffer() [maxSpritesPerLine]uint8 {
	return o.buffer
}

// Sprite is the decoded 4-byte OAM entry for one object.
type Sprite struct {
	Y, X      uint8 // raw OAM bytes, +16/+8 hardware offset NOT yet applied
	TileIndex uint8
	Flags     uint8
}

// SpriteAt decodes the OAM entry at the given index (0-39).
func (o *OAM) SpriteAt(index uint8) Sprite {
	base := uint16(index) * 4
	return Sprite{
		Y:         o.Read(0xFE00 + base),
		X:         o.Read(0xFE00 + base + 1),
		TileIndex: o.Read(0xFE00 + base + 2),
		Flags:     o.Read(0xFE00 + base + 3),
	}
}

func (s Sprite) paletteIsOBP1() bool { return bit.IsSet(4, s.Flags) }
func (s Sprite) flipX() bool         { return bit.IsSet(5, s.Flags) }
func (s Sprite) flipY() bool         { return bit.IsSet(6, s.Flags) }
func (s Sprite) behindBG() bool      { return bit.IsSet(7, s.Flags) }
