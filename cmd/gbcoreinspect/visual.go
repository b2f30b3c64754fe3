package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mjfrisby/gbcore/internal/bus"
)

const (
	tilesPerRow = 16
	// 256 tiles reachable via the unsigned 0x8000 addressing mode (VRAM
	// 0x8000-0x8FFF). The extra 128 tiles only reachable through signed
	// 0x9000-relative addressing (0x9000-0x97FF) aren't shown here.
	tileRows        = 16
	tileSheetWidth  = tilesPerRow * 8
	tileSheetHeight = tileRows * 8
)

// tileSheetView is an Ebiten game that renders every tile currently in
// VRAM bank 0 as a flat sheet, using CGB BG palette 0. It never ticks the
// CPU; Update does nothing, and Draw re-reads VRAM each frame so a user
// poking at a companion tool (or a future write-injection feature) sees
// live state.
type tileSheetView struct {
	bus    *bus.Bus
	screen *ebiten.Image
	pixels []byte
}

func newTileSheetView(b *bus.Bus, scale int) *tileSheetView {
	return &tileSheetView{
		bus:    b,
		screen: ebiten.NewImage(tileSheetWidth, tileSheetHeight),
		pixels: make([]byte, tileSheetWidth*tileSheetHeight*4),
	}
}

func (v *tileSheetView) Update() error { return nil }

func (v *tileSheetView) Draw(screen *ebiten.Image) {
	gpu := v.bus.GPU()
	for tile := 0; tile < tilesPerRow*tileRows; tile++ {
		tx := (tile % tilesPerRow) * 8
		ty := (tile / tilesPerRow) * 8
		for row := 0; row < 8; row++ {
			lo, hi := gpu.GetTileDataRow(0x8000, byte(tile), byte(row), 0)
			for col := 0; col < 8; col++ {
				bit := 7 - col
				colorIdx := (hi>>bit)&1<<1 | (lo>>bit)&1
				c := decodeRGB555(gpu.Palette.LookupBG(0, colorIdx))
				px := tx + col
				py := ty + row
				offset := (py*tileSheetWidth + px) * 4
				v.pixels[offset] = c.R
				v.pixels[offset+1] = c.G
				v.pixels[offset+2] = c.B
				v.pixels[offset+3] = c.A
			}
		}
	}
	v.screen.WritePixels(v.pixels)
	screen.DrawImage(v.screen, nil)
}

func (v *tileSheetView) Layout(_, _ int) (int, int) {
	return tileSheetWidth, tileSheetHeight
}

// decodeRGB555 expands a little-endian 15-bit BGR color (5 bits per
// channel) to 8-bit RGBA, the format CGB palette RAM stores colors in.
func decodeRGB555(v uint16) color.RGBA {
	r := v & 0x1F
	g := (v >> 5) & 0x1F
	b := (v >> 10) & 0x1F
	return color.RGBA{
		R: byte(r<<3 | r>>2),
		G: byte(g<<3 | g>>2),
		B: byte(b<<3 | b>>2),
		A: 0xFF,
	}
}
