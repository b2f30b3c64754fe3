package bus

import (
	"bytes"
	"encoding/gob"
)

// busState is the gob-encoded snapshot of everything on the bus besides
// the GPU (which persists itself via gpu.GPU.SaveState/LoadState) and the
// cartridge (via cart.Cartridge.SaveState/LoadState).
type busState struct {
	WRAMBanks [wramBankCount][wramBankSize]byte
	SVBK      byte
	HRAM      [0x7F]byte
	JoypSel   byte
	SerialSB  byte
	SerialSC  byte
	TimerDIV  byte
	TimerTIMA byte
	TimerTMA  byte
	TimerTAC  byte
	AudioRegs [0xFF27 - 0xFF10]byte
	WaveRAM   [0x10]byte
	IE, IF    byte
	OAMDMASrc byte
	HDMASrcHi, HDMASrcLo byte
	HDMADstHi, HDMADstLo byte
	HDMAPending          bool
	HDMARemaining        byte
	HDMANextBlock        byte
	GPU                  []byte
	Cart                 []byte
}

// SaveState serializes the whole bus graph — every device except the
// cartridge and GPU, which nest their own SaveState output — using the
// same gob save/load convention those packages use.
func (b *Bus) SaveState() []byte {
	var buf bytes.Buffer
	s := busState{
		WRAMBanks: b.wram.banks, SVBK: b.wram.svbk,
		HRAM:      b.hram.bytes,
		JoypSel:   b.joypad.selectBits,
		SerialSB:  b.serial.data, SerialSC: b.serial.control,
		TimerDIV: b.timer.div, TimerTIMA: b.timer.tima, TimerTMA: b.timer.tma, TimerTAC: b.timer.tac,
		AudioRegs: b.audio.regs, WaveRAM: b.wave.bytes,
		IE: b.interrupts.IE, IF: b.interrupts.IF,
		OAMDMASrc: b.oamDMA.source,
		HDMASrcHi: b.vramDMA.srcHi, HDMASrcLo: b.vramDMA.srcLo,
		HDMADstHi: b.vramDMA.dstHi, HDMADstLo: b.vramDMA.dstLo,
		HDMAPending: b.vramDMA.hblankPending, HDMARemaining: b.vramDMA.remaining,
		HDMANextBlock: b.vramDMA.nextBlock,
		GPU:  b.gpu.SaveState(),
		Cart: b.cart.SaveState(),
	}
	_ = gob.NewEncoder(&buf).Encode(s)
	return buf.Bytes()
}

// LoadState restores a snapshot produced by SaveState, leaving the bus
// untouched on decode failure.
func (b *Bus) LoadState(data []byte) {
	var s busState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return
	}
	b.wram.banks, b.wram.svbk = s.WRAMBanks, s.SVBK
	b.hram.bytes = s.HRAM
	b.joypad.selectBits = s.JoypSel
	b.serial.data, b.serial.control = s.SerialSB, s.SerialSC
	b.timer.div, b.timer.tima, b.timer.tma, b.timer.tac = s.TimerDIV, s.TimerTIMA, s.TimerTMA, s.TimerTAC
	b.audio.regs, b.wave.bytes = s.AudioRegs, s.WaveRAM
	b.interrupts.IE, b.interrupts.IF = s.IE, s.IF
	b.oamDMA.source = s.OAMDMASrc
	b.vramDMA.srcHi, b.vramDMA.srcLo = s.HDMASrcHi, s.HDMASrcLo
	b.vramDMA.dstHi, b.vramDMA.dstLo = s.HDMADstHi, s.HDMADstLo
	b.vramDMA.hblankPending, b.vramDMA.remaining = s.HDMAPending, s.HDMARemaining
	b.vramDMA.nextBlock = s.HDMANextBlock
	b.gpu.LoadState(s.GPU)
	b.cart.LoadState(s.Cart)
}
