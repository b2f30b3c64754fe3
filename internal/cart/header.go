package cart

import (
	"errors"
	"strings"
)

const headerEnd = 0x014F

// Header holds the cartridge header fields this module actually has a use
// for: enough for cmd/gbcoreinspect's info command to report what ROM it
// was handed, and for HeaderChecksumOK to validate it. Bank-switching is
// a Non-goal here, so the licensee/destination/version/global-checksum
// fields a full loader would keep are not carried.
type Header struct {
	Title       string // 0x0134-0x0143 (0x0142 when the CGB flag is set), trimmed of trailing NUL padding
	CGBFlag     byte   // 0x0143
	CartType    byte   // 0x0147
	CartTypeStr string // decoded MBC family, for logs

	ROMSizeBytes int
	ROMBanks     int
	RAMSizeBytes int
}

// ParseHeader reads the fixed-offset fields out of a ROM image's header
// region (0x0100-0x014F).
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < headerEnd+1 {
		return nil, errors.New("ROM too small to contain header")
	}

	titleEnd := 0x0144
	if rom[0x0143]&0x80 != 0 {
		// On CGB cartridges 0x0143 holds the CGB flag, not a title character.
		titleEnd = 0x0143
	}
	rawTitle := rom[0x0134:titleEnd]
	title := strings.TrimRight(string(rawTitle), "\x00")

	h := &Header{
		Title:    title,
		CGBFlag:  rom[0x0143],
		CartType: rom[0x0147],
	}
	h.ROMSizeBytes, h.ROMBanks = decodeROMSize(rom[0x0148])
	h.RAMSizeBytes = decodeRAMSize(rom[0x0149])
	h.CartTypeStr = cartTypeString(h.CartType)

	return h, nil
}

// HeaderChecksumOK recomputes the header checksum over 0x0134-0x014C and
// compares it against the stored value at 0x014D.
func HeaderChecksumOK(rom []byte) bool {
	if len(rom) < 0x014E {
		return false
	}
	var sum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	return sum == rom[0x014D]
}

func decodeROMSize(code byte) (size, banks int) {
	switch code {
	case 0x00:
		return 32 * 1024, 2
	case 0x01:
		return 64 * 1024, 4
	case 0x02:
		return 128 * 1024, 8
	case 0x03:
		return 256 * 1024, 16
	case 0x04:
		return 512 * 1024, 32
	case 0x05:
		return 1 * 1024 * 1024, 64
	case 0x06:
		return 2 * 1024 * 1024, 128
	case 0x07:
		return 4 * 1024 * 1024, 256
	case 0x08:
		return 8 * 1024 * 1024, 512
	case 0x52:
		return 1152 * 1024, 72
	case 0x53:
		return 1280 * 1024, 80
	case 0x54:
		return 1536 * 1024, 96
	default:
		return 0, 0
	}
}

func decodeRAMSize(code byte) int {
	switch code {
	case 0x00:
		return 0
	case 0x02:
		return 8 * 1024
	case 0x03:
		return 32 * 1024
	case 0x04:
		return 128 * 1024
	case 0x05:
		return 64 * 1024
	default:
		return 0
	}
}

func cartTypeString(code byte) string {
	switch code {
	case 0x00:
		return "ROM ONLY"
	case 0x01, 0x02, 0x03:
		return "MBC1 (variants)"
	case 0x05, 0x06:
		return "MBC2 (variants)"
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return "MBC3 (variants)"
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return "MBC5 (variants)"
	default:
		return "Other/unknown"
	}
}
