package bus

import "testing"

func newTestBus() *Bus {
	rom := make([]byte, 32*1024)
	return New(rom)
}

func TestEchoRAMMirrorsWRAM(t *testing.T) {
	b := newTestBus()
	b.Set8(0xC010, 0x42)
	if got := b.Get8(0xE010); got != 0x42 {
		t.Fatalf("expected echo RAM to mirror WRAM, got %#02x", got)
	}
	b.Set8(0xE020, 0x99)
	if got := b.Get8(0xC020); got != 0x99 {
		t.Fatalf("expected echo RAM write to land in WRAM, got %#02x", got)
	}
}

func TestWRAMBankingViaSVBK(t *testing.T) {
	b := newTestBus()
	b.Set8(0xFF70, 0x02)
	b.Set8(0xD000, 0xAB)
	b.Set8(0xFF70, 0x03)
	b.Set8(0xD000, 0xCD)

	b.Set8(0xFF70, 0x02)
	if got := b.Get8(0xD000); got != 0xAB {
		t.Fatalf("expected bank 2 to read back 0xAB, got %#02x", got)
	}
	b.Set8(0xFF70, 0x03)
	if got := b.Get8(0xD000); got != 0xCD {
		t.Fatalf("expected bank 3 to read back 0xCD, got %#02x", got)
	}
}

func TestWRAMSVBKZeroSelectsBankOne(t *testing.T) {
	b := newTestBus()
	b.Set8(0xFF70, 0x01)
	b.Set8(0xD000, 0x11)
	b.Set8(0xFF70, 0x00)
	if got := b.Get8(0xD000); got != 0x11 {
		t.Fatalf("expected SVBK=0 to alias bank 1, got %#02x", got)
	}
}

func TestOAMDMACopies160Bytes(t *testing.T) {
	b := newTestBus()
	for i := uint16(0); i < 160; i++ {
		b.Set8(0xC000+i, byte(i))
	}
	b.Set8(0xFF46, 0xC0)

	for i := uint16(0); i < 160; i++ {
		if got := b.Get8(0xFE00 + i); got != byte(i) {
			t.Fatalf("OAM byte %d: expected %#02x, got %#02x", i, byte(i), got)
		}
	}
}

func TestGeneralPurposeVRAMDMACopies16ByteBlock(t *testing.T) {
	b := newTestBus()
	for i := uint16(0); i < 16; i++ {
		b.Set8(0xC100+i, byte(0x10+i))
	}
	b.Set8(0xFF51, 0xC1) // source high
	b.Set8(0xFF52, 0x00) // source low
	b.Set8(0xFF53, 0x00) // dest high (relative to 0x8000)
	b.Set8(0xFF54, 0x00) // dest low
	b.Set8(0xFF55, 0x00) // length 1 block, GDMA mode (bit7 clear)

	for i := uint16(0); i < 16; i++ {
		if got, _ := b.gpu.VRAM.Get(0x8000 + i); got != byte(0x10+i) {
			t.Fatalf("VRAM byte %d: expected %#02x, got %#02x", i, byte(0x10+i), got)
		}
	}
	if got := b.Get8(0xFF55); got != 0xFF {
		t.Fatalf("expected HDMA5 to read back 0xFF after GDMA completes, got %#02x", got)
	}
}

func TestHBlankVRAMDMALatchesWithoutCopying(t *testing.T) {
	b := newTestBus()
	b.Set8(0xC100, 0xAB)
	b.Set8(0xFF51, 0xC1)
	b.Set8(0xFF52, 0x00)
	b.Set8(0xFF53, 0x00)
	b.Set8(0xFF54, 0x00)
	b.Set8(0xFF55, 0x80) // bit7 set: HBlank mode, latch only

	if got, _ := b.gpu.VRAM.Get(0x8000); got != 0x00 {
		t.Fatalf("expected HBlank-mode DMA to not copy immediately, VRAM[0]=%#02x", got)
	}
	pending, remaining := b.vramDMA.PendingHBlankDMA()
	if !pending {
		t.Fatalf("expected HBlank DMA to be latched as pending")
	}
	if remaining != 0 {
		t.Fatalf("expected remaining blocks 0 (length byte 0 means 1 block, stored raw), got %d", remaining)
	}
}

func TestStepHBlankVRAMDMACopiesOneBlockPerCall(t *testing.T) {
	b := newTestBus()
	for i := uint16(0); i < 32; i++ {
		b.Set8(0xC100+i, byte(0x20+i))
	}
	b.Set8(0xFF51, 0xC1)
	b.Set8(0xFF52, 0x00)
	b.Set8(0xFF53, 0x00)
	b.Set8(0xFF54, 0x00)
	b.Set8(0xFF55, 0x81) // bit7 set: HBlank mode, length byte 1 => 2 blocks

	if got, _ := b.gpu.VRAM.Get(0x8000); got != 0x00 {
		t.Fatalf("expected no copy before the first HBlank step, VRAM[0]=%#02x", got)
	}

	if done := b.StepHBlankVRAMDMA(); done {
		t.Fatalf("expected one block remaining after the first step")
	}
	if got, _ := b.gpu.VRAM.Get(0x8000); got != 0x20 {
		t.Fatalf("expected first block to have copied, VRAM[0]=%#02x", got)
	}
	if got, _ := b.gpu.VRAM.Get(0x8010); got != 0x00 {
		t.Fatalf("expected second block not yet copied, VRAM[0x10]=%#02x", got)
	}

	if done := b.StepHBlankVRAMDMA(); !done {
		t.Fatalf("expected the transfer to complete after the second block")
	}
	if got, _ := b.gpu.VRAM.Get(0x8010); got != 0x30 {
		t.Fatalf("expected second block to have copied, VRAM[0x10]=%#02x", got)
	}

	if done := b.StepHBlankVRAMDMA(); !done {
		t.Fatalf("expected StepHBlankVRAMDMA to be a no-op once nothing is pending")
	}
}

func TestInterruptRequestGatedByIE(t *testing.T) {
	b := newTestBus()
	b.Set8(0xFFFF, 0x00) // IE: nothing enabled
	b.interrupts.RequestVBlank()
	if b.interrupts.Pending() != 0 {
		t.Fatalf("expected no pending interrupt when IE is clear")
	}

	b.Set8(0xFFFF, IEVBlank)
	b.interrupts.RequestVBlank()
	if b.interrupts.Pending()&IEVBlank == 0 {
		t.Fatalf("expected VBlank interrupt pending once IE enables it")
	}
}

func TestGPUWriteReevaluatesLYC(t *testing.T) {
	b := newTestBus()
	b.Set8(0xFFFF, IELCD)
	b.Set8(0xFF41, 0x40) // enable LYC STAT interrupt source
	ly := b.Get8(0xFF44)
	b.Set8(0xFF45, ly) // LYC = LY, triggers rising edge via the write gate

	if b.interrupts.Pending()&IELCD == 0 {
		t.Fatalf("expected LCD interrupt pending after LY==LYC write-triggered reevaluation")
	}
}
