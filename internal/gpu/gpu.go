// Package gpu implements the GPU memory subsystem: dual-bank VRAM, OAM,
// LCD registers, CGB palettes, and the LCD mode state machine that
// drives them. It does not rasterize pixels; it is the memory and
// bookkeeping a rasterizer would read from.
package gpu

import "github.com/mjfrisby/gbcore/internal/addressable"

var (
	_ addressable.Addressable = (*VRAM)(nil)
	_ addressable.Addressable = (*OAM)(nil)
	_ addressable.Addressable = (*LCD)(nil)
	_ addressable.Addressable = (*Palette)(nil)
	_ addressable.Addressable = (*GPU)(nil)
)

const (
	DotsPerScanline  = 456
	DotsOAMScan      = 80
	DotsDrawing      = 172
	DotsHBlank       = DotsPerScanline - DotsOAMScan - DotsDrawing
	ScanlinesVisible = 144
	ScanlinesTotal   = 154
)

// InterruptRequester lets the GPU ask the bus-owned interrupt gate to
// raise an IF bit, without the GPU package depending on the bus package.
// Each call is expected to be a no-op unless the matching IE bit is set.
type InterruptRequester func()

// GPU is the composite Addressable covering every GPU-owned address
// range, plus the mode machine and fetch helpers a scanline renderer
// would call.
type GPU struct {
	VRAM    VRAM
	OAM     OAM
	LCD     LCD
	Palette Palette

	mode Mode
	dot  int

	reqLCD    InterruptRequester
	reqVBlank InterruptRequester

	regions []addressable.Addressable
}

// Config follows this codebase's per-subsystem Config struct convention:
// a handful of construction-time knobs, not a generic config-file loader.
type Config struct {
	// BootSnapshot, when true (the default via New), initializes
	// registers to the post-boot-ROM snapshot (LCDC=0x91, LY=0x91,
	// BGP=0xFC, mode=VBlank) instead of all-zero. Tests that want a
	// clean slate construct with Config{BootSnapshot: false}.
	BootSnapshot bool
}

// DefaultConfig returns the boot-snapshot configuration New uses.
func DefaultConfig() Config { return Config{BootSnapshot: true} }

// New builds a GPU with DefaultConfig and wires the interrupt callbacks
// the bus supplies.
func New(reqLCD, reqVBlank InterruptRequester) *GPU {
	return NewWithConfig(DefaultConfig(), reqLCD, reqVBlank)
}

// NewWithConfig builds a GPU per cfg. With BootSnapshot set (the odd
// LY=0x91 is left over from the boot ROM's own stepping, not a hardware
// reset value), registers start in the post-boot snapshot state;
// otherwise everything starts zeroed.
func NewWithConfig(cfg Config, reqLCD, reqVBlank InterruptRequester) *GPU {
	g := &GPU{reqLCD: reqLCD, reqVBlank: reqVBlank}
	if cfg.BootSnapshot {
		g.LCD.LCDC = 0x91
		g.LCD.STAT = 0x81
		g.LCD.LY = 0x91
		g.Palette.BGP = 0xFC
	}
	g.mode = VBlankMode{LineWithinVBlank: 0}
	g.regions = []addressable.Addressable{&g.VRAM, &g.OAM, &g.LCD, &g.Palette}
	return g
}

func (g *GPU) InRange(addr uint16) bool {
	for _, r := range g.regions {
		if r.InRange(addr) {
			return true
		}
	}
	return false
}

func (g *GPU) Get(addr uint16) (byte, bool) {
	for _, r := range g.regions {
		if v, ok := r.Get(addr); ok {
			return v, true
		}
	}
	return 0, false
}

// Set writes addr if it belongs to any GPU sub-region. It does not itself
// re-evaluate LY==LYC — that is the bus-layer gate's job (see
// ReevaluateLYC), so bus.Bus calls it after a successful Set.
func (g *GPU) Set(addr uint16, v byte) bool {
	for _, r := range g.regions {
		if r.Set(addr, v) {
			return true
		}
	}
	return false
}

// Mode returns the live mode-machine state.
func (g *GPU) Mode() Mode { return g.mode }

// UpdateMode swaps the mode-machine state without touching STAT's mode
// bits — used when a mode's internal bookkeeping (DotsRemaining, etc.)
// needs to change but the externally visible mode hasn't.
func (g *GPU) UpdateMode(m Mode) { g.mode = m }

// ChangeMode swaps the mode-machine state and writes its 2-bit code into
// STAT bits 0-1, as seen by any code reading 0xFF41.
func (g *GPU) ChangeMode(m Mode) {
	g.mode = m
	g.LCD.STAT = (g.LCD.STAT &^ STATModeMask) | (m.Code() & STATModeMask)
}

// CmpLYC recomputes STAT bit 2 from LY==LYC and reports whether the
// comparison just transitioned from false to true.
func (g *GPU) CmpLYC() bool {
	was := g.LCD.STAT&STATLYCFlag != 0
	eq := g.LCD.LY == g.LCD.LYC
	if eq {
		g.LCD.STAT |= STATLYCFlag
	} else {
		g.LCD.STAT &^= STATLYCFlag
	}
	return !was && eq
}

// ReevaluateLYC implements the bus-layer interrupt gate: call after every
// successful write that lands inside GPU memory. On a rising LY==LYC edge
// with the LYC interrupt source enabled, it requests the LCD interrupt.
func (g *GPU) ReevaluateLYC() {
	if g.CmpLYC() && g.LCD.STAT&STATLYCInterrupt != 0 && g.reqLCD != nil {
		g.reqLCD()
	}
}

// IncLY increments LY, wrapping at 160 rather than hardware's 154 — a
// suspected bug in the reference implementation this reproduces rather
// than fixes. The mode machine's own line-advance logic (advanceLine)
// uses the correct 154-line wrap; IncLY is exposed separately for callers
// that want the literal, buggy counter.
func (g *GPU) IncLY() {
	g.LCD.LY++
	if g.LCD.LY >= 160 {
		g.LCD.LY = 0
	}
}

func (g *GPU) ResetWLC() { g.LCD.wlc = 0 }
func (g *GPU) IncWLC()   { g.LCD.wlc++ }
func (g *GPU) WLC() byte { return g.LCD.wlc }

// LY returns the current scanline register.
func (g *GPU) LY() byte { return g.LCD.LY }

// ResetLY zeroes the scanline register directly, bypassing IncLY's
// wrap quirk — used when re-synchronizing the mode machine rather than
// stepping it dot by dot.
func (g *GPU) ResetLY() { g.LCD.LY = 0 }

// ScanOAM is the GPU-level sprite scan named in the external interface:
// it derives the active sprite size from LCDC bit 2 and returns decoded
// ScannedObj entries for scanline ly. It's a thin wrapper over ScanObj
// for callers that don't need to pass size explicitly.
func (g *GPU) ScanOAM(ly byte) []ScannedObj {
	return g.ScanObj(ly, g.objSize())
}

// Tick advances the mode machine by cycles dots, transitioning OAM
// scan -> drawing -> HBlank -> (next line), or into VBlank at line 144,
// requesting STAT mode interrupts and the VBlank interrupt the way the
// teacher project's PPU.Tick does. A disabled LCD (LCDC bit 7 clear) does
// not advance.
func (g *GPU) Tick(cycles int) {
	if g.LCD.LCDC&LCDCLCDEnable == 0 {
		return
	}
	for i := 0; i < cycles; i++ {
		g.dot++
		switch g.mode.(type) {
		case OAMScanMode:
			if g.dot >= DotsOAMScan {
				size := g.objSize()
				count := len(g.OAM.ScanOAM(g.LCD.LY, size))
				g.ChangeMode(DrawingMode{DotsRemaining: DotsDrawing, LineObjCount: count})
				g.requestModeInterrupt()
			}
		case DrawingMode:
			if g.dot >= DotsOAMScan+DotsDrawing {
				g.ChangeMode(HBlankMode{DotsRemaining: DotsHBlank})
				g.requestModeInterrupt()
			}
		}
		if g.dot >= DotsPerScanline {
			g.dot = 0
			g.advanceLine()
		}
	}
}

func (g *GPU) objSize() int {
	if g.LCD.LCDC&LCDCOBJSize != 0 {
		return 16
	}
	return 8
}

func (g *GPU) requestModeInterrupt() {
	var bit byte
	switch g.mode.(type) {
	case HBlankMode:
		bit = STATMode0Interrupt
	case OAMScanMode:
		bit = STATMode2Interrupt
	case VBlankMode:
		bit = STATMode1Interrupt
	default:
		return
	}
	if g.LCD.STAT&bit != 0 && g.reqLCD != nil {
		g.reqLCD()
	}
}

func (g *GPU) windowVisibleThisLine() bool {
	return g.LCD.LCDC&LCDCWindowEnable != 0 && g.LCD.LCDC&LCDCBGWindowEnable != 0 && g.LCD.LY >= g.LCD.WY
}

// advanceLine is the mode machine's own line counter, correctly wrapping
// at 154 total scanlines (unlike IncLY's preserved 160-wrap quirk).
func (g *GPU) advanceLine() {
	g.LCD.LY++
	switch {
	case g.LCD.LY == ScanlinesVisible:
		g.ChangeMode(VBlankMode{LineWithinVBlank: 0})
		if g.reqVBlank != nil {
			g.reqVBlank()
		}
		g.requestModeInterrupt()
	case g.LCD.LY >= ScanlinesTotal:
		g.LCD.LY = 0
		g.ResetWLC()
		g.ChangeMode(OAMScanMode{DotsRemaining: DotsOAMScan})
		g.requestModeInterrupt()
	case g.LCD.LY < ScanlinesVisible:
		g.ChangeMode(OAMScanMode{DotsRemaining: DotsOAMScan})
		g.requestModeInterrupt()
		if g.windowVisibleThisLine() {
			g.IncWLC()
		}
	default:
		if v, ok := g.mode.(VBlankMode); ok {
			g.UpdateMode(VBlankMode{LineWithinVBlank: v.LineWithinVBlank + 1})
		}
	}
	g.ReevaluateLYC()
}
