package gpu

// GetTileIndex returns the background/window tilemap byte for pixel
// coordinates (y, x) (0-255; the map cell is y/8, x/8) from the given
// tilemap area (0x9800 or 0x9C00), always reading VRAM bank 0.
func (g *GPU) GetTileIndex(area uint16, y, x byte) byte {
	addr := area + uint16(y/8)*32 + uint16(x/8)
	return g.VRAM.Bank(0, addr)
}

// GetTileAttributes returns the CGB tilemap attribute byte at the same
// map coordinates as GetTileIndex, from VRAM bank 1 (palette, bank,
// flip, and priority bits).
func (g *GPU) GetTileAttributes(area uint16, y, x byte) byte {
	addr := area + uint16(y/8)*32 + uint16(x/8)
	return g.VRAM.Bank(1, addr)
}

// GetTileDataRow returns the two bitplane bytes for one row of a
// background/window tile. area selects 0x8000 (unsigned index) or 0x9000
// (signed index) addressing.
func (g *GPU) GetTileDataRow(area uint16, index byte, row byte, bank int) (byte, byte) {
	var addr uint16
	if area == 0x8000 {
		addr = 0x8000 + uint16(index)*16 + uint16(row)*2
	} else {
		addr = uint16(int32(0x9000) + int32(int8(index))*16 + int32(row)*2)
	}
	lo := g.VRAM.Bank(bank, addr)
	hi := g.VRAM.Bank(bank, addr+1)
	return lo, hi
}

// GetObjTileDataRow fetches a sprite's tile-row bitplanes from the
// unsigned 0x8000 tile block. When size is 16 the low bit of index is
// cleared, since tall sprites address a tile pair. chosenBank is XORed
// with the VRAM bank-select register rather than used directly — a
// suspected bug in the reference implementation this reproduces rather
// than fixes.
func (g *GPU) GetObjTileDataRow(index byte, size, row, chosenBank int) (byte, byte) {
	if size == 16 {
		index &= 0xFE
	}
	addr := 0x8000 + uint16(index)*16 + uint16(row)*2
	bank := chosenBank ^ g.VRAM.SelectedBank()
	lo := g.VRAM.Bank(bank, addr)
	hi := g.VRAM.Bank(bank, addr+1)
	return lo, hi
}
