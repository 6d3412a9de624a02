package cartridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func makeROM(size int, cartType, romSizeCode byte) []byte {
	rom := make([]byte, size)
	rom[cartTypeAddr] = cartType
	rom[romSizeAddr] = romSizeCode
	copy(rom[titleAddr:], "TESTGAME")
	return rom
}

func TestParseHeader_ROMOnly(t *testing.T) {
	rom := makeROM(0x8000, 0x00, 0x00)
	h, err := ParseHeader(rom)
	require.NoError(t, err)
	require.Equal(t, TypeROMOnly, h.MBCType)
	require.Equal(t, "TESTGAME", h.Title)
}

func TestParseHeader_UnsupportedCartType(t *testing.T) {
	rom := makeROM(0x8000, 0xFF, 0x00)
	_, err := ParseHeader(rom)
	require.Error(t, err)
}

func TestMBC1_BankZeroWrapsToOne(t *testing.T) {
	rom := make([]byte, 0x4000*4) // 4 banks
	for bank := 0; bank < 4; bank++ {
		for i := 0; i < 0x4000; i++ {
			rom[bank*0x4000+i] = byte(bank)
		}
	}

	mbc := newMBC1(rom, 0x03, 0)

	mbc.Write(0x2000, 0x01)
	require.Equal(t, byte(1), mbc.Read(0x4000))

	mbc.Write(0x2000, 0x02)
	require.Equal(t, byte(2), mbc.Read(0x4000))

	// Writing 0 wraps to effective bank 1.
	mbc.Write(0x2000, 0x00)
	require.Equal(t, byte(1), mbc.Read(0x4000))
}

func TestMBC1_RAMEnableGating(t *testing.T) {
	rom := make([]byte, 0x8000)
	mbc := newMBC1(rom, 0x01, 1)

	require.Equal(t, byte(0xFF), mbc.Read(0xA000), "RAM reads 0xFF while disabled")

	mbc.Write(0x0000, 0x0A)
	mbc.Write(0xA000, 0x42)
	require.Equal(t, byte(0x42), mbc.Read(0xA000))

	mbc.Write(0x0000, 0x00)
	require.Equal(t, byte(0xFF), mbc.Read(0xA000), "RAM reads 0xFF after being disabled again")
}

func TestMBC1_ROMBankMasking(t *testing.T) {
	rom := make([]byte, 0x4000*4) // 4 banks, mask 0x03
	for bank := 0; bank < 4; bank++ {
		for i := 0; i < 0x4000; i++ {
			rom[bank*0x4000+i] = byte(bank)
		}
	}

	mbc := newMBC1(rom, 0x03, 0)

	// Bank select 0x06 masked with 0x03 -> bank 2.
	mbc.Write(0x2000, 0x06)
	require.Equal(t, byte(2), mbc.Read(0x4000))
}

func TestMBC3_RAMBankSwitching(t *testing.T) {
	rom := make([]byte, 0x8000)
	mbc := newMBC3(rom, 0x01, 4)

	mbc.Write(0x0000, 0x0A)

	mbc.Write(0x4000, 0x00)
	mbc.Write(0xA000, 0x11)

	mbc.Write(0x4000, 0x01)
	mbc.Write(0xA000, 0x22)

	mbc.Write(0x4000, 0x00)
	require.Equal(t, byte(0x11), mbc.Read(0xA000))

	mbc.Write(0x4000, 0x01)
	require.Equal(t, byte(0x22), mbc.Read(0xA000))
}
