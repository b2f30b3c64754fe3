// Package bus implements the unified address-bus dispatcher that routes
// every CPU-visible address to the component that owns it: cartridge
// ROM/RAM, GPU memory, CGB-banked work RAM, high RAM, the minimal I/O
// register stores, and the two DMA engines.
package bus

import (
	"log"

	"github.com/mjfrisby/gbcore/internal/addressable"
	"github.com/mjfrisby/gbcore/internal/cart"
	"github.com/mjfrisby/gbcore/internal/gpu"
)

// Bus owns every memory-mapped component and decides, for each address,
// which one handles it. The cartridge is dispatched separately (it has
// its own Read/Write contract, not the shared Addressable one) and WRAM's
// echo-RAM mirror is handled separately too; every other component is
// addressed uniformly through the regions slice.
type Bus struct {
	cart cart.Cartridge
	gpu  *gpu.GPU

	wram       WRAM
	hram       HRAM
	joypad     Joypad
	serial     Serial
	timer      Timer
	audio      Audio
	wave       WavePattern
	interrupts Interrupts
	oamDMA     OAMDMA
	vramDMA    VRAMDMA

	regions []addressable.Addressable
}

var (
	_ addressable.Addressable = (*WRAM)(nil)
	_ addressable.Addressable = (*HRAM)(nil)
	_ addressable.Addressable = (*Joypad)(nil)
	_ addressable.Addressable = (*Serial)(nil)
	_ addressable.Addressable = (*Timer)(nil)
	_ addressable.Addressable = (*Interrupts)(nil)
	_ addressable.Addressable = (*Audio)(nil)
	_ addressable.Addressable = (*WavePattern)(nil)
	_ addressable.Addressable = (*OAMDMA)(nil)
	_ addressable.Addressable = (*VRAMDMA)(nil)
)

// New builds a Bus around the given ROM image.
func New(rom []byte) *Bus {
	b := &Bus{cart: cart.LoadROM(rom)}
	b.gpu = gpu.New(b.interrupts.RequestLCD, b.interrupts.RequestVBlank)
	b.oamDMA.copyFn = b.copyOAMDMA
	b.vramDMA.copyFn = b.copyVRAMDMA
	b.regions = []addressable.Addressable{
		b.gpu, &b.wram, &b.joypad, &b.serial, &b.timer,
		&b.interrupts, &b.audio, &b.wave, &b.oamDMA, &b.vramDMA, &b.hram,
	}
	return b
}

// GPU exposes the GPU memory subsystem for callers (a renderer, a
// debugger) that need direct access beyond Get8/Set8.
func (b *Bus) GPU() *gpu.GPU { return b.gpu }

// Cart exposes the cartridge collaborator.
func (b *Bus) Cart() cart.Cartridge { return b.cart }

// Interrupts exposes the IE/IF register pair, e.g. for a CPU's
// interrupt-dispatch step to check Pending().
func (b *Bus) Interrupts() *Interrupts { return &b.interrupts }

// StepHBlankVRAMDMA copies one latched 16-byte block of a pending
// HBlank-mode VRAM DMA transfer and reports whether the transfer is now
// complete. A driver that steps the GPU mode machine through HBlank
// calls this once per HBlank period; the bus does not call it on its
// own.
func (b *Bus) StepHBlankVRAMDMA() (done bool) { return b.vramDMA.StepHBlankChunk() }

func (b *Bus) copyOAMDMA(srcBase uint16) {
	for i := uint16(0); i < gpu.OAMSize; i++ {
		b.gpu.OAM.Set(0xFE00+i, b.Get8(srcBase+i))
	}
}

func (b *Bus) copyVRAMDMA(src, dst uint16, length int) {
	for i := 0; i < length; i++ {
		b.gpu.VRAM.Set(dst+uint16(i), b.Get8(src+uint16(i)))
	}
}

// Get8 reads one byte from the address space.
func (b *Bus) Get8(addr uint16) byte {
	switch {
	case addr <= 0x7FFF, addr >= 0xA000 && addr <= 0xBFFF:
		return b.cart.Read(addr)
	case addr >= 0xE000 && addr <= 0xFDFF:
		return b.wram.EchoGet(addr)
	}
	for _, r := range b.regions {
		if v, ok := r.Get(addr); ok {
			return v
		}
	}
	log.Printf("bus: unmapped read at %#04x", addr)
	return 0xFF
}

// Set8 writes one byte to the address space. Writes that land inside GPU
// memory re-evaluate LY==LYC afterward, implementing the interrupt gate.
func (b *Bus) Set8(addr uint16, v byte) {
	switch {
	case addr <= 0x7FFF, addr >= 0xA000 && addr <= 0xBFFF:
		b.cart.Write(addr, v)
		return
	case addr >= 0xE000 && addr <= 0xFDFF:
		b.wram.EchoSet(addr, v)
		return
	}
	for _, r := range b.regions {
		if r.Set(addr, v) {
			if r == b.gpu {
				b.gpu.ReevaluateLYC()
			}
			return
		}
	}
	log.Printf("bus: unmapped write at %#04x (value %#02x)", addr, v)
}

// Get16 reads a little-endian 16-bit value.
func (b *Bus) Get16(addr uint16) uint16 {
	lo := b.Get8(addr)
	hi := b.Get8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// Set16 writes a little-endian 16-bit value.
func (b *Bus) Set16(addr uint16, v uint16) {
	b.Set8(addr, byte(v))
	b.Set8(addr+1, byte(v>>8))
}
