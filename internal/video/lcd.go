// Package video implements VRAM, the LCD mode state machine, the OAM
// scanline buffer, and the PPU scanline renderer, built around a
// per-scanline dot-cycle counter that emits a discrete ScanlineEvent at
// each mode-boundary crossing.
package video

import (
	"github.com/rholden/dmgcore/internal/addr"
	"github.com/rholden/dmgcore/internal/bit"
	"github.com/rholden/dmgcore/internal/interrupt"
)

// Mode is one of the four LCD STAT modes.
type Mode uint8

const (
	ModeHBlank Mode = 0
	ModeVBlank Mode = 1
	ModeOAM    Mode = 2
	ModeVRAM   Mode = 3
)

// Dot-cycle boundaries within one 456-dot scanline. Mode-3 length is fixed
// at 172 dots regardless of sprites/window; real hardware varies it, which
// this core does not model.
const (
	dotsPerScanline = 456
	oamEndDot       = 80
	vramEndDot      = 80 + 172 // 252
	scanlinesPerFrame = 154
	visibleScanlines  = 144
)

// ScanlineEvent is the signal the LCD state machine emits to the PPU at
// mode-boundary crossings.
type ScanlineEvent uint8

const (
	NoEvent ScanlineEvent = iota
	OAMScanEntered
	HBlankEntered
	VBlankEntered
)

// STAT register bit positions.
const (
	statLYCIrq    = 6
	statOAMIrq    = 5
	statVBlankIrq = 4
	statHBlankIrq = 3
	statLYCEqual  = 2
)

// LCD holds the register file and the per-scanline dot counter that drives
// mode transitions.
type LCD struct {
	lcdc, stat       uint8
	scy, scx         uint8
	ly, lyc          uint8
	bgp, obp0, obp1  uint8
	wy, wx           uint8

	dot int // lcd_y_cycles: 0-455 dot cycles into the current scanline
}

// NewLCD returns an LCD with its registers at power-on defaults.
func NewLCD() *LCD {
	return &LCD{stat: uint8(ModeOAM)}
}

func (l *LCD) LCDC() uint8 { return l.lcdc }
func (l *LCD) STAT() uint8 { return l.stat&0xFC | uint8(l.mode()) }
func (l *LCD) SCY() uint8  { return l.scy }
func (l *LCD) SCX() uint8  { return l.scx }
func (l *LCD) LY() uint8   { return l.ly }
func (l *LCD) LYC() uint8  { return l.lyc }
func (l *LCD) BGP() uint8  { return l.bgp }
func (l *LCD) OBP0() uint8 { return l.obp0 }
func (l *LCD) OBP1() uint8 { return l.obp1 }
func (l *LCD) WY() uint8   { return l.wy }
func (l *LCD) WX() uint8   { return l.wx }

func (l *LCD) WriteLCDC(v uint8) { l.lcdc = v }
func (l *LCD) WriteSTAT(v uint8) { l.stat = (l.stat & 0x07) | (v & 0xF8) }
func (l *LCD) WriteSCY(v uint8)  { l.scy = v }
func (l *LCD) WriteSCX(v uint8)  { l.scx = v }
func (l *LCD) WriteLYC(v uint8)  { l.lyc = v }
func (l *LCD) WriteBGP(v uint8)  { l.bgp = v }
func (l *LCD) WriteOBP0(v uint8) { l.obp0 = v }
func (l *LCD) WriteOBP1(v uint8) { l.obp1 = v }
func (l *LCD) WriteWY(v uint8)   { l.wy = v }
func (l *LCD) WriteWX(v uint8)   { l.wx = v }

// WriteLY resets LY to 0, matching real hardware (writes to the read-only
// LY register clear it).
func (l *LCD) WriteLY(ic *interrupt.Controller) {
	l.ly = 0
	l.dot = 0
	l.compareLYC(ic)
}

func (l *LCD) mode() Mode {
	switch {
	case l.ly >= visibleScanlines:
		return ModeVBlank
	case l.dot < oamEndDot:
		return ModeOAM
	case l.dot < vramEndDot:
		return ModeVRAM
	default:
		return ModeHBlank
	}
}

func (l *LCD) setSTATMode(m Mode) {
	l.stat = l.stat&0xFC | uint8(m)
}

// compareLYC updates STAT.2 and raises the LYC=LY STAT interrupt on match.
func (l *LCD) compareLYC(ic *interrupt.Controller) {
	if l.ly == l.lyc {
		l.stat = bit.Set(statLYCEqual, l.stat)
		if bit.IsSet(statLYCIrq, l.stat) {
			ic.Request(addr.LCDSTAT)
		}
	} else {
		l.stat = bit.Reset(statLYCEqual, l.stat)
	}
}

// Update advances the LCD by the given number of machine cycles (converted
// to dot cycles, 4 per M-cycle) and returns the last ScanlineEvent crossed
// (NoEvent if none); earlier crossings within the same call are not
// reported.
func (l *LCD) Update(mCycles int, ic *interrupt.Controller) ScanlineEvent {
	event := NoEvent
	dots := mCycles * 4

	for i := 0; i < dots; i++ {
		before := l.mode()
		l.dot++

		if l.dot >= dotsPerScanline {
			l.dot = 0
			l.ly++
			if l.ly >= scanlinesPerFrame {
				l.ly = 0
			}
			l.compareLYC(ic)
		}

		after := l.mode()
		if after == before {
			continue
		}

		l.setSTATMode(after)

		switch after {
		case ModeOAM:
			event = OAMScanEntered
			if bit.IsSet(statOAMIrq, l.stat) {
				ic.Request(addr.LCDSTAT)
			}
		case ModeHBlank:
			event = HBlankEntered
			if bit.IsSet(statHBlankIrq, l.stat) {
				ic.Request(addr.LCDSTAT)
			}
		case ModeVBlank:
			event = VBlankEntered
			ic.Request(addr.VBlank)
			if bit.IsSet(statVBlankIrq, l.stat) {
				ic.Request(addr.LCDSTAT)
			}
		}
	}

	return event
}
