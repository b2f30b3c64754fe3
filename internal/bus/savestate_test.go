package bus

import "testing"

func TestSaveLoadStateRoundTrip(t *testing.T) {
	b := newTestBus()
	b.Set8(0xC000, 0x42)
	b.Set8(0xFF70, 0x03)
	b.Set8(0xD000, 0x77)
	b.Set8(0x8000, 0x99)
	b.Set8(0xFFFF, IEVBlank)
	b.interrupts.RequestVBlank()

	data := b.SaveState()

	fresh := newTestBus()
	fresh.LoadState(data)

	if got := fresh.Get8(0xC000); got != 0x42 {
		t.Fatalf("expected WRAM bank 0 byte to round-trip, got %#02x", got)
	}
	fresh.Set8(0xFF70, 0x03)
	if got := fresh.Get8(0xD000); got != 0x77 {
		t.Fatalf("expected WRAM bank 3 byte to round-trip, got %#02x", got)
	}
	if got, _ := fresh.gpu.VRAM.Get(0x8000); got != 0x99 {
		t.Fatalf("expected VRAM byte to round-trip, got %#02x", got)
	}
	if fresh.interrupts.Pending()&IEVBlank == 0 {
		t.Fatalf("expected pending VBlank interrupt to round-trip")
	}
}
