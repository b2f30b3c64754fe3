package cart

// Cartridge defines the minimal interface the Bus needs for ROM/RAM banking.
// Implementations can be ROM-only or MBC variants. Addresses are CPU addresses.
type Cartridge interface {
	// Read returns a byte for ROM (0x0000–0x7FFF) and external RAM (0xA000–0xBFFF).
	Read(addr uint16) byte
	// Write handles MBC control writes (0x0000–0x7FFF) and external RAM writes (0xA000–0xBFFF).
	Write(addr uint16, value byte)
	// SaveState/LoadState serialize internal banking registers and external RAM for save states.
	SaveState() []byte
	LoadState(data []byte)
}

// NewCartridge inspects the ROM header and constructs a Cartridge. Bank
// switching (MBC1/3/5 and friends) is out of scope for this module, so
// every cart type is served by the ROM-only implementation; the header
// is still parsed so callers can log what kind of cartridge they were
// handed.
func NewCartridge(rom []byte) Cartridge {
	if h, err := ParseHeader(rom); err == nil && h.CartType != 0x00 {
		// Non-zero cart types expect bank switching this module doesn't
		// implement; still load it read-only rather than refuse it.
		return NewROMOnly(rom)
	}
	return NewROMOnly(rom)
}

// LoadROM is the external entry point: load_rom(bytes) -> state.
func LoadROM(rom []byte) Cartridge { return NewCartridge(rom) }
