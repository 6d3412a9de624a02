// Package bus implements the 16-bit address decoder: it classifies an
// address into one of the owning subsystems and forwards the read/write,
// and it owns OAM DMA.
package bus

import (
	"fmt"
	"log/slog"

	"github.com/rholden/dmgcore/internal/addr"
	"github.com/rholden/dmgcore/internal/apu"
	"github.com/rholden/dmgcore/internal/cartridge"
	"github.com/rholden/dmgcore/internal/interrupt"
	"github.com/rholden/dmgcore/internal/joypad"
	"github.com/rholden/dmgcore/internal/serial"
	"github.com/rholden/dmgcore/internal/timer"
	"github.com/rholden/dmgcore/internal/video"
)

const (
	wramSize = 0x2000 // banks 0 and 1, 4KiB each
	hramSize = 0x7F
)

// Bus is the sole owner of every addressable subsystem. Instruction
// implementations receive a *Bus for the duration of one opcode and must
// not retain it.
type Bus struct {
	cart *cartridge.Cartridge
	vram *video.VRAM
	oam  *video.OAM
	lcd  *video.LCD
	wram [wramSize]uint8
	hram [hramSize]uint8

	interrupts *interrupt.Controller
	timer      *timer.Timer
	joypad     *joypad.State
	serial     *serial.Port
	apu        *apu.APU

	dmaPending bool
	dmaSource  uint8
}

// New wires a Bus to a freshly loaded cartridge and fresh peripheral state.
func New(cart *cartridge.Cartridge, lcd *video.LCD, vram *video.VRAM, oam *video.OAM) *Bus {
	return &Bus{
		cart:       cart,
		vram:       vram,
		oam:        oam,
		lcd:        lcd,
		interrupts: interrupt.New(),
		timer:      timer.New(),
		joypad:     joypad.New(),
		serial:     serial.New(),
		apu:        apu.New(),
	}
}

func (b *Bus) Interrupts() *interrupt.Controller { return b.interrupts }
func (b *Bus) Timer() *timer.Timer               { return b.timer }
func (b *Bus) Joypad() *joypad.State             { return b.joypad }

// Read8 reads a byte at a 16-bit address, decoding it into the owning region.
func (b *Bus) Read8(address uint16) uint8 {
	switch {
	case address <= addr.ROMBankNEnd:
		return b.cart.Read(address)
	case address >= addr.VRAMStart && address <= addr.VRAMEnd:
		return b.vram.Read(address)
	case address >= addr.ExtRAMStart && address <= addr.ExtRAMEnd:
		return b.cart.Read(address)
	case address >= addr.WRAM0Start && address <= addr.WRAMNEnd:
		return b.wram[address-addr.WRAM0Start]
	case address >= addr.EchoStart && address <= addr.EchoEnd:
		return b.wram[address-addr.EchoStart]
	case address >= addr.OAMStart && address <= addr.OAMEnd:
		return b.oam.Read(address)
	case address >= addr.UnmappedStart && address <= addr.UnmappedEnd:
		return 0xFF
	case address >= addr.HRAMStart && address <= addr.HRAMEnd:
		return b.hram[address-addr.HRAMStart]
	case address == addr.IE:
		return b.interrupts.ReadIE()
	default:
		return b.readIO(address)
	}
}

// Write8 writes a byte at a 16-bit address.
func (b *Bus) Write8(address uint16, value uint8) {
	switch {
	case address <= addr.ROMBankNEnd:
		b.cart.Write(address, value)
	case address >= addr.VRAMStart && address <= addr.VRAMEnd:
		b.vram.Write(address, value)
	case address >= addr.ExtRAMStart && address <= addr.ExtRAMEnd:
		b.cart.Write(address, value)
	case address >= addr.WRAM0Start && address <= addr.WRAMNEnd:
		b.wram[address-addr.WRAM0Start] = value
	case address >= addr.EchoStart && address <= addr.EchoEnd:
		b.wram[address-addr.EchoStart] = value
	case address >= addr.OAMStart && address <= addr.OAMEnd:
		b.oam.Write(address, value)
	case address >= addr.UnmappedStart && address <= addr.UnmappedEnd:
		// writes ignored
	case address >= addr.HRAMStart && address <= addr.HRAMEnd:
		b.hram[address-addr.HRAMStart] = value
	case address == addr.IE:
		b.interrupts.WriteIE(value)
	default:
		b.writeIO(address, value)
	}
}

// Read16 reads a little-endian 16-bit word (low byte at the lower address).
func (b *Bus) Read16(address uint16) uint16 {
	low := b.Read8(address)
	high := b.Read8(address + 1)
	return uint16(high)<<8 | uint16(low)
}

// Write16 writes a little-endian 16-bit word.
func (b *Bus) Write16(address uint16, value uint16) {
	b.Write8(address, uint8(value))
	b.Write8(address+1, uint8(value>>8))
}

func (b *Bus) readIO(address uint16) uint8 {
	switch {
	case address == addr.P1:
		return b.joypad.Read()
	case address == addr.SB || address == addr.SC:
		return b.serial.Read(address)
	case address == addr.DIV:
		return b.timer.DIV()
	case address == addr.TIMA:
		return b.timer.TIMA()
	case address == addr.TMA:
		return b.timer.TMA()
	case address == addr.TAC:
		return b.timer.TAC()
	case address == addr.IF:
		return b.interrupts.ReadIF()
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		return b.apu.ReadRegister(address)
	case address == addr.LCDC:
		return b.lcd.LCDC()
	case address == addr.STAT:
		return b.lcd.STAT()
	case address == addr.SCY:
		return b.lcd.SCY()
	case address == addr.SCX:
		return b.lcd.SCX()
	case address == addr.LY:
		return b.lcd.LY()
	case address == addr.LYC:
		return b.lcd.LYC()
	case address == addr.DMA:
		return b.dmaSource
	case address == addr.BGP:
		return b.lcd.BGP()
	case address == addr.OBP0:
		return b.lcd.OBP0()
	case address == addr.OBP1:
		return b.lcd.OBP1()
	case address == addr.WY:
		return b.lcd.WY()
	case address == addr.WX:
		return b.lcd.WX()
	case address == addr.KEY1:
		return 0xFF
	case address == addr.VRAMBank:
		return 0x00
	default:
		// Unimplemented I/O region: a programmer error, not a recoverable one.
		panic(fmt.Sprintf("bus: read from unimplemented I/O address 0x%04X", address))
	}
}

func (b *Bus) writeIO(address uint16, value uint8) {
	switch {
	case address == addr.P1:
		b.joypad.WriteSelect(value)
	case address == addr.SB || address == addr.SC:
		b.serial.Write(address, value, b.interrupts)
	case address == addr.DIV:
		b.timer.WriteDIV()
	case address == addr.TIMA:
		b.timer.WriteTIMA(value)
	case address == addr.TMA:
		b.timer.WriteTMA(value)
	case address == addr.TAC:
		b.timer.WriteTAC(value)
	case address == addr.IF:
		b.interrupts.WriteIF(value)
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		b.apu.WriteRegister(address, value)
	case address == addr.LCDC:
		b.lcd.WriteLCDC(value)
	case address == addr.STAT:
		b.lcd.WriteSTAT(value)
	case address == addr.SCY:
		b.lcd.WriteSCY(value)
	case address == addr.SCX:
		b.lcd.WriteSCX(value)
	case address == addr.LY:
		b.lcd.WriteLY(b.interrupts)
	case address == addr.LYC:
		b.lcd.WriteLYC(value)
	case address == addr.DMA:
		b.dmaSource = value
		b.dmaPending = true
	case address == addr.BGP:
		b.lcd.WriteBGP(value)
	case address == addr.OBP0:
		b.lcd.WriteOBP0(value)
	case address == addr.OBP1:
		b.lcd.WriteOBP1(value)
	case address == addr.WY:
		b.lcd.WriteWY(value)
	case address == addr.WX:
		b.lcd.WriteWX(value)
	case address == addr.KEY1:
		// CGB speed-switch register: a legal no-op on DMG hardware.
	case address == addr.VRAMBank:
		// VRAM banking is CGB-only; DMG always uses bank 0.
	default:
		slog.Warn("bus: write to unimplemented I/O address ignored", "addr", fmt.Sprintf("0x%04X", address), "value", value)
	}
}

// RunPendingDMA performs the 160-byte OAM DMA copy if one was latched this
// instruction. The copy is modeled as atomic within one instruction
// boundary: no per-cycle interleaving is observable by the CPU core.
func (b *Bus) RunPendingDMA() {
	if !b.dmaPending {
		return
	}
	b.dmaPending = false

	source := uint16(b.dmaSource) << 8
	for i := uint16(0); i < 0xA0; i++ {
		b.Write8(0xFE00+i, b.Read8(source+i))
	}
}
