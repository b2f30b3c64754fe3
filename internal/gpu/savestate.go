package gpu

import (
	"bytes"
	"encoding/gob"
)

// gpuState is the gob-encoded snapshot of everything SaveState persists.
// Mode is rebuilt from ModeCode/Dot rather than encoded directly, since
// Mode is an interface and gob needs concrete, registered types for
// that — encoding the derived STAT mode bits plus the dot counter is
// simpler and sufficient to resume ticking correctly.
type gpuState struct {
	VRAM0, VRAM1 [vramBankSize]byte
	VRAMSel      byte
	OAM          [OAMSize]byte
	BGCRAM       [paletteRAMSize]byte
	OBJCRAM      [paletteRAMSize]byte
	BCPS, OCPS   byte
	BGP, OBP0, OBP1 byte
	LCDC, STAT, SCY, SCX, LY, LYC, WY, WX, WLC byte
	Dot          int
	ModeCode     byte
}

// SaveState serializes the GPU's full memory and mode-machine state via
// encoding/gob.
func (g *GPU) SaveState() []byte {
	var buf bytes.Buffer
	s := gpuState{
		VRAM0: g.VRAM.banks[0], VRAM1: g.VRAM.banks[1], VRAMSel: g.VRAM.sel,
		OAM:     g.OAM.bytes,
		BGCRAM:  g.Palette.bgCRAM, OBJCRAM: g.Palette.objCRAM,
		BCPS: g.Palette.bcps, OCPS: g.Palette.ocps,
		BGP: g.Palette.BGP, OBP0: g.Palette.OBP0, OBP1: g.Palette.OBP1,
		LCDC: g.LCD.LCDC, STAT: g.LCD.STAT, SCY: g.LCD.SCY, SCX: g.LCD.SCX,
		LY: g.LCD.LY, LYC: g.LCD.LYC, WY: g.LCD.WY, WX: g.LCD.WX, WLC: g.LCD.wlc,
		Dot: g.dot, ModeCode: g.mode.Code(),
	}
	_ = gob.NewEncoder(&buf).Encode(s)
	return buf.Bytes()
}

// LoadState restores a snapshot produced by SaveState. On decode failure
// it leaves the GPU untouched, following this codebase's
// fail-silently-and-keep-running convention for state loading.
func (g *GPU) LoadState(data []byte) {
	var s gpuState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return
	}
	g.VRAM.banks[0], g.VRAM.banks[1], g.VRAM.sel = s.VRAM0, s.VRAM1, s.VRAMSel
	g.OAM.bytes = s.OAM
	g.Palette.bgCRAM, g.Palette.objCRAM = s.BGCRAM, s.OBJCRAM
	g.Palette.bcps, g.Palette.ocps = s.BCPS, s.OCPS
	g.Palette.BGP, g.Palette.OBP0, g.Palette.OBP1 = s.BGP, s.OBP0, s.OBP1
	g.LCD.LCDC, g.LCD.STAT, g.LCD.SCY, g.LCD.SCX = s.LCDC, s.STAT, s.SCY, s.SCX
	g.LCD.LY, g.LCD.LYC, g.LCD.WY, g.LCD.WX, g.LCD.wlc = s.LY, s.LYC, s.WY, s.WX, s.WLC
	g.dot = s.Dot
	switch s.ModeCode {
	case ModeHBlank:
		g.mode = HBlankMode{}
	case ModeOAMScan:
		g.mode = OAMScanMode{}
	case ModeDrawing:
		g.mode = DrawingMode{}
	default:
		g.mode = VBlankMode{}
	}
}
