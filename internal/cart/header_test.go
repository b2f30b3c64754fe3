package cart

import "testing"

// headerROM builds a synthetic ROM image carrying a valid, checksummed
// header so ParseHeader/HeaderChecksumOK can be exercised without a real
// cartridge dump.
func headerROM(title string, cgbFlag, cartType, romSizeCode, ramSizeCode byte, length int) []byte {
	rom := make([]byte, length)
	copy(rom[0x0134:0x0144], []byte(title))
	rom[0x0143] = cgbFlag
	rom[0x0147] = cartType
	rom[0x0148] = romSizeCode
	rom[0x0149] = ramSizeCode

	var sum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	rom[0x014D] = sum
	return rom
}

func TestParseHeaderFieldsUsedByInfoCommand(t *testing.T) {
	rom := headerROM("POKEMON", 0x80, 0x01, 0x02, 0x03, 128*1024)

	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Title != "POKEMON" {
		t.Fatalf("Title = %q, want %q", h.Title, "POKEMON")
	}
	if h.CGBFlag != 0x80 {
		t.Fatalf("CGBFlag = %#02x, want 0x80", h.CGBFlag)
	}
	if h.CartType != 0x01 || h.CartTypeStr != "MBC1 (variants)" {
		t.Fatalf("CartType/CartTypeStr = %#02x/%q", h.CartType, h.CartTypeStr)
	}
	if h.ROMSizeBytes != 128*1024 || h.ROMBanks != 8 {
		t.Fatalf("ROM size decode = %d bytes / %d banks, want 131072/8", h.ROMSizeBytes, h.ROMBanks)
	}
	if h.RAMSizeBytes != 32*1024 {
		t.Fatalf("RAM size decode = %d, want 32768", h.RAMSizeBytes)
	}
}

func TestParseHeaderTrimsTitlePadding(t *testing.T) {
	rom := headerROM("ZELDA", 0x00, 0x00, 0x00, 0x00, 32*1024)

	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Title != "ZELDA" {
		t.Fatalf("Title = %q, want %q (trailing NUL padding should be trimmed)", h.Title, "ZELDA")
	}
}

func TestHeaderChecksumOKFlagsCorruption(t *testing.T) {
	rom := headerROM("TEST", 0x00, 0x00, 0x00, 0x00, 32*1024)
	if !HeaderChecksumOK(rom) {
		t.Fatalf("expected a freshly built header to checksum OK")
	}

	rom[0x0140] ^= 0xFF // corrupt a byte inside the checksummed range
	if HeaderChecksumOK(rom) {
		t.Fatalf("expected HeaderChecksumOK to fail after corruption")
	}
}

func TestParseHeaderRejectsShortROM(t *testing.T) {
	short := make([]byte, 0x100) // too small to hold a full header
	if _, err := ParseHeader(short); err == nil {
		t.Fatalf("expected an error for a ROM too short to contain a header")
	}
}
