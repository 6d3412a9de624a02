package video

import "sort"

// PPU renders background, window and objects into a FrameBuffer, driven by
// ScanlineEvents from the LCD state machine. It snapshots LCD register
// state at the start of each scanline event and never mutates LCD state
// itself.
type PPU struct {
	vram *VRAM
	oam  *OAM
	fb   *FrameBuffer

	windowLine int    // window_internal_line_counter
	bgRaw      [Width]uint8 // raw (pre-palette) BG/window pixel values for the line being drawn
}

// NewPPU wires a PPU to its VRAM and OAM.
func NewPPU(vram *VRAM, oam *OAM) *PPU {
	return &PPU{
		vram: vram,
		oam:  oam,
		fb:   NewFrameBuffer(),
	}
}

// FrameBuffer returns the framebuffer the PPU renders into.
func (p *PPU) FrameBuffer() *FrameBuffer { return p.fb }

// WindowLine returns the internal window line counter, exposed for tests.
func (p *PPU) WindowLine() int { return p.windowLine }

// OnEvent reacts to a ScanlineEvent emitted by the LCD this tick.
func (p *PPU) OnEvent(event ScanlineEvent, lcd *LCD) {
	switch event {
	case OAMScanEntered:
		p.oam.ScanLine(int(lcd.LY()), lcd.LCDC())
	case HBlankEntered:
		p.renderScanline(lcd)
	case VBlankEntered:
		p.windowLine = 0
	}
}

func (p *PPU) renderScanline(lcd *LCD) {
	ly := int(lcd.LY())
	lcdc := lcd.LCDC()

	if lcdc&0x80 == 0 { // LCDC.7: LCD disable
		for x := 0; x < Width; x++ {
			p.fb.Set(x, ly, 0)
		}
		return
	}

	p.drawBackground(lcd, ly, lcdc)
	p.drawWindow(lcd, ly, lcdc)
	p.drawObjects(lcd, ly, lcdc)
}

func (p *PPU) drawBackground(lcd *LCD, ly int, lcdc uint8) {
	bgEnabled := lcdc&0x01 != 0
	unsignedAddressing := lcdc&0x10 != 0
	mapBase := uint16(0x9800)
	if lcdc&0x08 != 0 {
		mapBase = 0x9C00
	}

	scx, scy := int(lcd.SCX()), int(lcd.SCY())
	bgp := lcd.BGP()

	for x := 0; x < Width; x++ {
		if !bgEnabled {
			p.bgRaw[x] = 0
			p.fb.Set(x, ly, applyPalette(bgp, 0))
			continue
		}

		sx := (x + scx) & 0xFF
		sy := (ly + scy) & 0xFF

		tileCol := sx / 8
		tileRow := sy / 8
		tileAddr := mapBase + uint16(tileRow*32+tileCol)
		tileIndex := p.vram.Read(tileAddr)

		rowAddr := tileDataAddr(tileIndex, unsignedAddressing, sy%8)
		low := p.vram.Read(rowAddr)
		high := p.vram.Read(rowAddr + 1)
		row := tileRowPixels(low, high)
		pixel := row[sx%8]

		p.bgRaw[x] = pixel
		p.fb.Set(x, ly, applyPalette(bgp, pixel))
	}
}

func (p *PPU) drawWindow(lcd *LCD, ly int, lcdc uint8) {
	windowEnabled := lcdc&0x20 != 0
	bgEnabled := lcdc&0x01 != 0
	wy := int(lcd.WY())
	wx := int(lcd.WX())

	visible := windowEnabled && bgEnabled && ly >= wy && wy < 144
	if !visible {
		return
	}

	unsignedAddressing := lcdc&0x10 != 0
	mapBase := uint16(0x9800)
	if lcdc&0x40 != 0 {
		mapBase = 0x9C00
	}

	bgp := lcd.BGP()
	wyLine := p.windowLine

	for x := 0; x < Width; x++ {
		if x < wx-7 || wx > 166 {
			continue
		}

		wxLocal := x - (wx - 7)
		tileCol := wxLocal / 8
		tileRow := wyLine / 8
		tileAddr := mapBase + uint16(tileRow*32+tileCol)
		tileIndex := p.vram.Read(tileAddr)

		rowAddr := tileDataAddr(tileIndex, unsignedAddressing, wyLine%8)
		low := p.vram.Read(rowAddr)
		high := p.vram.Read(rowAddr + 1)
		row := tileRowPixels(low, high)
		pixel := row[wxLocal%8]

		p.bgRaw[x] = pixel
		p.fb.Set(x, ly, applyPalette(bgp, pixel))
	}

	if wx < 166 {
		p.windowLine++
	}
}

func (p *PPU) drawObjects(lcd *LCD, ly int, lcdc uint8) {
	if lcdc&0x02 == 0 {
		return
	}

	height := spriteHeight(lcdc)
	buffer := p.oam.Buffer()

	type ent struct {
		index uint8
		x     int
	}
	var entries []ent
	for _, idx := range buffer {
		if idx == EmptySlot {
			continue
		}
		s := p.oam.SpriteAt(idx)
		entries = append(entries, ent{index: idx, x: int(s.X)})
	}

	// Sort by x ascending, then render in reverse so lower-x sprites paint
	// last and win pixel ties.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].x < entries[j].x })

	obp0, obp1 := lcd.OBP0(), lcd.OBP1()

	for i := len(entries) - 1; i >= 0; i-- {
		s := p.oam.SpriteAt(entries[i].index)
		// Spec's skip rule uses raw OAM X before the -8 offset: 0 and 168
		// mark the object fully off-screen in hardware coordinates.
		if s.X == 0 || s.X >= 168 {
			continue
		}

		x := int(s.X) - 8
		y := int(s.Y) - 16

		rowInTile := ((ly - y) % height + height) % height
		if s.flipY() {
			rowInTile = height - 1 - rowInTile
		}

		tile := s.TileIndex
		if height == 16 {
			if rowInTile < 8 {
				tile &= 0xFE
			} else {
				tile |= 0x01
				rowInTile -= 8
			}
		}

		rowAddr := uint16(0x8000) + uint16(tile)*16 + uint16(rowInTile*2)
		low := p.vram.Read(rowAddr)
		high := p.vram.Read(rowAddr + 1)
		row := tileRowPixels(low, high)

		palette := obp0
		if s.paletteIsOBP1() {
			palette = obp1
		}

		for col := 0; col < 8; col++ {
			screenX := x + col
			if screenX < 0 || screenX >= Width {
				continue
			}

			sampleCol := col
			if s.flipX() {
				sampleCol = 7 - col
			}
			pixel := row[sampleCol]
			if pixel == 0 {
				// Sentinel: color 0 is always transparent for objects.
				continue
			}

			if s.behindBG() && p.bgRaw[screenX] != 0 {
				continue
			}

			p.fb.Set(screenX, ly, applyPalette(palette, pixel))
		}
	}
}
