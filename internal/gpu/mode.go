package gpu

// Mode codes, matching STAT bits 0-1.
const (
	ModeHBlank  byte = 0
	ModeVBlank  byte = 1
	ModeOAMScan byte = 2
	ModeDrawing byte = 3
)

// Mode is the LCD mode-machine state. Only one concrete type is live at a
// time, each carrying just the fields that mode needs rather than one
// struct padded with fields the other modes never touch.
type Mode interface {
	Code() byte
}

// HBlankMode is entered after pixel transfer finishes and lasts until the
// scanline's 456 dots are spent.
type HBlankMode struct {
	DotsRemaining int
	LineObjCount  int
}

func (HBlankMode) Code() byte { return ModeHBlank }

// VBlankMode covers scanlines 144-153.
type VBlankMode struct {
	LineWithinVBlank int
}

func (VBlankMode) Code() byte { return ModeVBlank }

// OAMScanMode is the 80-dot sprite-search window at the start of a
// visible scanline.
type OAMScanMode struct {
	DotsRemaining int
}

func (OAMScanMode) Code() byte { return ModeOAMScan }

// DrawingMode is the pixel-transfer window following OAM scan.
type DrawingMode struct {
	DotsRemaining int
	LineObjCount  int
}

func (DrawingMode) Code() byte { return ModeDrawing }
