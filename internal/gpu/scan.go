package gpu

// ScannedObj is the ephemeral per-scanline sprite descriptor a rasterizer
// would consume: its screen X, the two decoded bitplane bytes for this
// row, the resolved CGB palette index, and whether it draws under
// non-zero BG/window pixels.
type ScannedObj struct {
	X       byte
	P1, P2  byte
	Palette byte
	Prio    bool
}

// ScanObj scans OAM for scanline ly (see OAM.ScanOAM for ordering) and
// decodes each hit's flags and tile-row bitplanes. size is the active
// sprite height (8 or 16, from LCDC bit 2).
func (g *GPU) ScanObj(ly byte, size int) []ScannedObj {
	entries := g.OAM.ScanOAM(ly, size)
	out := make([]ScannedObj, 0, len(entries))
	for _, e := range entries {
		yFlip := e.Flags&(1<<6) != 0
		xFlip := e.Flags&(1<<5) != 0
		bank := 0
		if e.Flags&(1<<3) != 0 {
			bank = 1
		}
		palette := e.Flags & 0x07
		prio := e.Flags&(1<<7) != 0

		top := int(e.Y) - 16
		line := int(ly) - top
		row := line
		if yFlip {
			row = size - 1 - line
		}

		p1, p2 := g.GetObjTileDataRow(e.Tile, size, row, bank)
		// The reference implementation reverses bitplanes when x-flip is
		// NOT set, rather than when it is — preserved for fidelity.
		if !xFlip {
			p1 = reverseBits(p1)
			p2 = reverseBits(p2)
		}

		out = append(out, ScannedObj{X: e.X, P1: p1, P2: p2, Palette: palette, Prio: prio})
	}
	return out
}

func reverseBits(b byte) byte {
	var r byte
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}
