package cartridge

// Cartridge bundles a parsed header with the MBC that serves it.
type Cartridge struct {
	Header Header
	mbc    MBC
}

// Load parses the header from data and constructs the matching MBC. It
// returns an error for malformed or unsupported ROMs: a fatal configuration
// error, reported once at startup.
func Load(data []byte) (*Cartridge, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	return &Cartridge{
		Header: h,
		mbc:    New(h, data),
	}, nil
}

// Read dispatches a ROM or external-RAM read to the MBC.
func (c *Cartridge) Read(address uint16) uint8 { return c.mbc.Read(address) }

// Write dispatches a ROM-control or external-RAM write to the MBC.
func (c *Cartridge) Write(address uint16, value uint8) { c.mbc.Write(address, value) }
