package cartridge

import "github.com/rholden/dmgcore/internal/addr"

const ramBankSize = 0x2000

// MBC is the interface the bus dispatches ROM/external-RAM traffic to.
type MBC interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// romOnly serves ROM directly out of 0x0000-0x7FFF with no banking;
// external RAM and control writes have no effect.
type romOnly struct {
	rom []uint8
}

func newROMOnly(rom []uint8) *romOnly { return &romOnly{rom: rom} }

func (m *romOnly) Read(address uint16) uint8 {
	if int(address) < len(m.rom) {
		return m.rom[address]
	}
	return 0xFF
}

func (m *romOnly) Write(address uint16, value uint8) {}

// mbc1 implements a subset of MBC1: RAM enable, 5-bit ROM bank select
// (masked to the cartridge's ROM size), 2-bit RAM bank select, and a no-op
// banking-mode select.
type mbc1 struct {
	rom []uint8
	ram []uint8

	romBankMask uint8
	romBank     uint8
	ramBank     uint8
	ramEnabled  bool
}

func newMBC1(rom []uint8, romBankMask uint8, ramBanks int) *mbc1 {
	return &mbc1{
		rom:         rom,
		ram:         make([]uint8, max(ramBanks, 1)*ramBankSize),
		romBankMask: romBankMask,
		romBank:     1,
	}
}

// effectiveBank applies the zero-wraps-to-one rule: bank 0 selected is
// treated as bank 1, so the fixed window at 0x0000-0x3FFF is never aliased
// by the switchable window.
func effectiveBank(selected, mask uint8) uint8 {
	bank := selected & mask
	if bank == 0 {
		bank = 1
	}
	return bank
}

func (m *mbc1) Read(address uint16) uint8 {
	switch {
	case address <= addr.ROMBank0End:
		return m.rom[address]
	case address >= addr.ROMBankNStart && address <= addr.ROMBankNEnd:
		bank := effectiveBank(m.romBank, m.romBankMask)
		offset := int(bank-1)*0x4000 + 0x4000 + int(address-addr.ROMBankNStart)
		if offset < len(m.rom) {
			return m.rom[offset]
		}
		return 0xFF
	case address >= addr.ExtRAMStart && address <= addr.ExtRAMEnd:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		offset := int(m.ramBank)*ramBankSize + int(address-addr.ExtRAMStart)
		return m.ram[offset%len(m.ram)]
	default:
		return 0xFF
	}
}

func (m *mbc1) Write(address uint16, value uint8) {
	switch {
	case address <= 0x1FFF:
		m.ramEnabled = value&0x0F == 0x0A
	case address >= 0x2000 && address <= 0x3FFF:
		m.romBank = value & 0x1F
	case address >= 0x4000 && address <= 0x5FFF:
		m.ramBank = value & 0x03
	case address >= 0x6000 && address <= 0x7FFF:
		// Banking-mode select: no-op for the implemented subset.
	case address >= addr.ExtRAMStart && address <= addr.ExtRAMEnd:
		if !m.ramEnabled || len(m.ram) == 0 {
			return
		}
		offset := int(m.ramBank)*ramBankSize + int(address-addr.ExtRAMStart)
		m.ram[offset%len(m.ram)] = value
	}
}

// mbc3 implements a subset of MBC3: the same RAM-enable/ROM-bank/RAM-bank
// write windows as MBC1, but with a full 7-bit ROM bank register and no
// banking-mode select. RTC registers (0x08-0x0C written to the RAM-bank
// window) are treated as an unbacked, always-0xFF RAM bank.
type mbc3 struct {
	rom []uint8
	ram []uint8

	romBankMask uint8
	romBank     uint8
	ramBank     uint8
	ramEnabled  bool
}

func newMBC3(rom []uint8, romBankMask uint8, ramBanks int) *mbc3 {
	return &mbc3{
		rom:         rom,
		ram:         make([]uint8, max(ramBanks, 1)*ramBankSize),
		romBankMask: romBankMask,
		romBank:     1,
	}
}

func (m *mbc3) Read(address uint16) uint8 {
	switch {
	case address <= addr.ROMBank0End:
		return m.rom[address]
	case address >= addr.ROMBankNStart && address <= addr.ROMBankNEnd:
		bank := effectiveBank(m.romBank, m.romBankMask)
		offset := int(bank-1)*0x4000 + 0x4000 + int(address-addr.ROMBankNStart)
		if offset < len(m.rom) {
			return m.rom[offset]
		}
		return 0xFF
	case address >= addr.ExtRAMStart && address <= addr.ExtRAMEnd:
		if !m.ramEnabled || m.ramBank >= 0x08 || len(m.ram) == 0 {
			return 0xFF
		}
		offset := int(m.ramBank)*ramBankSize + int(address-addr.ExtRAMStart)
		return m.ram[offset%len(m.ram)]
	default:
		return 0xFF
	}
}

func (m *mbc3) Write(address uint16, value uint8) {
	switch {
	case address <= 0x1FFF:
		m.ramEnabled = value&0x0F == 0x0A
	case address >= 0x2000 && address <= 0x3FFF:
		m.romBank = value & 0x7F
	case address >= 0x4000 && address <= 0x5FFF:
		m.ramBank = value
	case address >= 0x6000 && address <= 0x7FFF:
		// RTC latch: RTC is out of scope, treated as a no-op.
	case address >= addr.ExtRAMStart && address <= addr.ExtRAMEnd:
		if !m.ramEnabled || m.ramBank >= 0x08 || len(m.ram) == 0 {
			return
		}
		offset := int(m.ramBank)*ramBankSize + int(address-addr.ExtRAMStart)
		m.ram[offset%len(m.ram)] = value
	}
}

// New constructs the appropriate MBC implementation for the given header
// and ROM data.
func New(h Header, rom []uint8) MBC {
	banks := ramBankCount(h.RAMSizeCode)
	switch h.MBCType {
	case TypeROMOnly:
		return newROMOnly(rom)
	case TypeMBC1:
		return newMBC1(rom, h.ROMBankMask, banks)
	case TypeMBC3:
		return newMBC3(rom, h.ROMBankMask, banks)
	default:
		panic("cartridge: New called with unsupported MBC type")
	}
}
