package emu

// DIPDefault is the factory switch setting: 3 lives, bonus at 10,000,
// one coin per credit.
const DIPDefault = 0xC9

// SoundRegCount is the size of the write-only sound register block.
const SoundRegCount = 32

// Bus presents the flat Z80 address space and fans accesses out to the
// memory image, the input ports and the sound registers. It implements
// the go-chip-z80 bus interface, so the CPU core is configured with the
// Bus rather than calling free functions.
type Bus struct {
	mem   *Memory
	input *Input
	dip   uint8

	soundRegs [SoundRegCount]uint8

	irqEnabled bool
	irqVector  uint8
}

// NewBus creates a bus over the given memory image and input state.
func NewBus(mem *Memory, input *Input, dip uint8) *Bus {
	return &Bus{mem: mem, input: input, dip: dip}
}

// Fetch reads an opcode byte. The board makes no fetch/read distinction.
func (b *Bus) Fetch(addr uint16) uint8 { return b.Read(addr) }

// Read dispatches a CPU read. Addresses outside any decoded range return
// 0xFF, the undefined-read convention of the original hardware.
func (b *Bus) Read(addr uint16) uint8 {
	// 0x0000-0x3FFF: program ROM (most common case, checked first)
	if addr < MemBase {
		return b.mem.ROMByte(int(addr))
	}

	// 0x4000-0x4FFF: video RAM, color RAM, work RAM
	if addr < 0x5000 {
		return b.mem.image[addr-MemBase]
	}

	// 0x5000-0x50FF: input and configuration ports
	if addr < 0x5100 {
		switch addr {
		case 0x5000:
			return b.input.ReadIN0()
		case 0x5040:
			return b.input.ReadIN1()
		case 0x5080:
			return b.dip
		}
		return 0xFF
	}

	// 0x8000-0x9FFF: auxiliary ROM (Ms. Pac-Man second board)
	if addr >= AuxROMBase && addr < AuxROMEnd {
		return b.mem.ROMByte(int(addr) - AuxROMFileOff)
	}

	return 0xFF
}

// Write dispatches a CPU write. A15 is not wired on the board, so it is
// masked off before decoding. Writes outside the decoded ranges are
// no-ops, never errors.
func (b *Bus) Write(addr uint16, value uint8) {
	addr &= 0x7FFF

	// 0x4000-0x4FFF: memory image (most common case)
	if addr >= MemBase && addr < 0x5000 {
		b.mem.image[addr-MemBase] = value
		return
	}

	if addr >= 0x5000 && addr < 0x5100 {
		// 0x5060-0x506F: sprite coordinate RAM, stored in the image so
		// the renderer sees it alongside the attribute slots
		if addr >= 0x5060 && addr < 0x5070 {
			b.mem.image[addr-MemBase] = value
			return
		}

		// 0x5000 bit 0: interrupt enable
		if addr == 0x5000 {
			b.irqEnabled = value&1 != 0
			return
		}

		// 0x5040-0x505F: sound registers, 4 bits wide on the chip
		if addr >= 0x5040 && addr < 0x5060 {
			b.soundRegs[addr-0x5040] = value & 0x0F
			return
		}
	}
}

// In handles Z80 IN instructions. The board drives no input ports.
func (b *Bus) In(port uint16) uint8 { return 0xFF }

// Out handles Z80 OUT instructions. The program writes its IM2 interrupt
// vector to port 0; the port number itself is not decoded.
func (b *Bus) Out(port uint16, value uint8) {
	b.irqVector = value
}

// SoundRegisters returns the live sound register block for the
// synthesizer to parse. Borrowed view, same discipline as Memory.Image.
func (b *Bus) SoundRegisters() *[SoundRegCount]uint8 {
	return &b.soundRegs
}

// InterruptEnabled reports whether the program has enabled the VBLANK
// interrupt via the control port.
func (b *Bus) InterruptEnabled() bool { return b.irqEnabled }

// InterruptVector returns the IM2 vector last written via OUT.
func (b *Bus) InterruptVector() uint8 { return b.irqVector }

// Reset clears interrupt state and the sound registers.
func (b *Bus) Reset() {
	b.irqEnabled = false
	b.irqVector = 0
	for i := range b.soundRegs {
		b.soundRegs[i] = 0
	}
}
