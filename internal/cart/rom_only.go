package cart

import "log"

const (
	romFixedEnd = 0x7FFF
	extRAMStart = 0xA000
	extRAMEnd   = 0xBFFF
)

// ROMOnly is the Cartridge this module actually runs: bank switching
// (MBC1/3/5 and friends) is a Non-goal, so every cart type the header
// reports — including ones that would expect a mapper on real hardware —
// is served by a flat, unbanked ROM image with no external RAM. It
// exists to keep the bus's cartridge-range decode fully mapped, not to
// play a real cart.
type ROMOnly struct {
	rom []byte
}

// NewROMOnly wraps rom for direct, unbanked addressing.
func NewROMOnly(rom []byte) *ROMOnly {
	return &ROMOnly{rom: rom}
}

// Read serves the fixed ROM bank (0x0000-0x7FFF) directly out of the
// image and reports 0xFF for external RAM (0xA000-0xBFFF), which this
// cart type never has. A read past the end of a short ROM image logs a
// diagnostic and returns 0xFF, following the bus's own out-of-range
// read policy (see bus.Bus.Get8) rather than panicking on a malformed
// dump.
func (c *ROMOnly) Read(addr uint16) byte {
	switch {
	case addr <= romFixedEnd:
		if int(addr) < len(c.rom) {
			return c.rom[addr]
		}
		log.Printf("cart: ROM read at %#04x past end of %d-byte image", addr, len(c.rom))
		return 0xFF
	case addr >= extRAMStart && addr <= extRAMEnd:
		return 0xFF
	default:
		return 0xFF
	}
}

// Write is a no-op: a ROM-only cart has no mapper registers to latch and
// no external RAM to accept the byte.
func (c *ROMOnly) Write(addr uint16, value byte) {}

// SaveState/LoadState are no-ops: a ROM-only cart carries no banking
// registers or RAM contents to persist.
func (c *ROMOnly) SaveState() []byte     { return nil }
func (c *ROMOnly) LoadState(data []byte) {}
