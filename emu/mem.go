package emu

// Hardware memory image layout. The board decodes 0x4000-0x5FFF into a
// single 8KB RAM block holding video RAM, color RAM, work RAM and the
// sprite registers; everything below is program ROM.
const (
	MemBase = 0x4000 // Z80 address of the start of the memory image
	MemSize = 0x2000 // 8KB image

	// Offsets within the memory image
	VRAMOffset    = 0x0000 // 0x4000-0x43FF: tile codes
	CRAMOffset    = 0x0400 // 0x4400-0x47FF: palette indices
	RAMOffset     = 0x0800 // 0x4800-0x4FFF: work RAM
	SpriteOffset  = 0x0FF0 // 0x4FF0-0x4FFF: sprite code/color/flip slots
	SpriteXYBase  = 0x1060 // 0x5060-0x506F: sprite coordinate slots
	ROMSize       = 0x4000 // 16KB base program ROM
	AuxROMBase    = 0x8000 // Ms. Pac-Man auxiliary ROM window
	AuxROMEnd     = 0xA000
	AuxROMFileOff = 0x4000 // aux window maps to ROM bytes 0x4000-0x5FFF
)

// Work RAM addresses the game program is known to keep state at
// (Z80 address space).
const (
	AddrGameMode = 0x4E00 // 0x01=attract, 0x02=starting, 0x03+=playing
	AddrLives    = 0x4E14 // lives remaining
	AddrCoins    = 0x4E66 // partial coin counter
	AddrCredits  = 0x4E6E // credit count
)

// Game mode byte values observed at AddrGameMode.
const (
	ModeAttract  = 0x01
	ModeStarting = 0x02
)

// Memory owns the hardware memory image. The CPU core writes it through
// the Bus; the renderer and the game state monitor take borrowed views.
type Memory struct {
	rom   []uint8
	image [MemSize]uint8
}

// NewMemory creates the memory image around the given program ROM.
// The ROM is copied so the caller's slice can be reused.
func NewMemory(rom []byte) *Memory {
	m := &Memory{rom: make([]uint8, len(rom))}
	copy(m.rom, rom)
	return m
}

// ROMByte reads a byte from program ROM. Reads past the end of the
// loaded ROM return the undefined-read value.
func (m *Memory) ROMByte(off int) uint8 {
	if off < 0 || off >= len(m.rom) {
		return 0xFF
	}
	return m.rom[off]
}

// Image returns the live memory image. Callers must treat the returned
// slice as a borrowed view; no second physical copy is ever made.
func (m *Memory) Image() []uint8 {
	return m.image[:]
}

// Reset zeroes the memory image.
func (m *Memory) Reset() {
	for i := range m.image {
		m.image[i] = 0
	}
}

// GameMode returns the game mode byte the program maintains in work RAM.
func (m *Memory) GameMode() uint8 {
	return m.image[AddrGameMode-MemBase]
}

// Lives returns the lives-remaining byte.
func (m *Memory) Lives() uint8 {
	return m.image[AddrLives-MemBase]
}

// ClearCredits zeroes the credit and partial-coin counters. Run after
// attract video playback so the ROM plays its demo instead of sitting on
// the "press start" screen waiting for banked coins.
func (m *Memory) ClearCredits() {
	m.image[AddrCredits-MemBase] = 0
	m.image[AddrCoins-MemBase] = 0
}
