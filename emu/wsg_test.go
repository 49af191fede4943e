package emu

import "testing"

// TestWSG_SilenceMidpoint tests that idle voices render the DC midpoint
func TestWSG_SilenceMidpoint(t *testing.T) {
	w := NewWSG(make([]int8, WaveTableLen))

	buf := make([]uint16, 64)
	w.Render(buf)

	for i, s := range buf {
		if s != 0x8000 {
			t.Fatalf("sample %d: expected 0x8000, got 0x%04X", i, s)
		}
	}
}

// TestWSG_FrequencyAssembly tests the 20-bit frequency registers,
// including voice 0's extra low nibble
func TestWSG_FrequencyAssembly(t *testing.T) {
	w := NewWSG(make([]int8, WaveTableLen))

	var regs [SoundRegCount]uint8
	// Voice 0: nibbles 0x1 0x2 0x3 0x4 0x5 low to high, volume on
	regs[0x10] = 0x1
	regs[0x11] = 0x2
	regs[0x12] = 0x3
	regs[0x13] = 0x4
	regs[0x14] = 0x5
	regs[0x15] = 0x8

	// Voice 1: same nibble pattern shifted into its slots
	regs[0x16] = 0x2
	regs[0x17] = 0x3
	regs[0x18] = 0x4
	regs[0x19] = 0x5
	regs[0x1A] = 0x8

	w.ParseRegisters(&regs)

	if got := w.freq[0]; got != 0x54321 {
		t.Errorf("voice 0 frequency: expected 0x54321, got 0x%05X", got)
	}
	// Voice 1 has no bit 3:0 register; its low nibble is zero
	if got := w.freq[1]; got != 0x54320 {
		t.Errorf("voice 1 frequency: expected 0x54320, got 0x%05X", got)
	}
}

// TestWSG_ZeroVolumeSilencesVoice tests that a muted voice clears its
// frequency so the phase counter stops advancing
func TestWSG_ZeroVolumeSilencesVoice(t *testing.T) {
	w := NewWSG(make([]int8, WaveTableLen))

	var regs [SoundRegCount]uint8
	regs[0x11] = 0xF
	regs[0x15] = 0x0 // volume zero

	w.ParseRegisters(&regs)
	if w.freq[0] != 0 {
		t.Errorf("muted voice frequency: expected 0, got 0x%05X", w.freq[0])
	}
}

// TestWSG_PhaseContinuity tests that reparsing registers never resets
// the phase counters
func TestWSG_PhaseContinuity(t *testing.T) {
	w := NewWSG(make([]int8, WaveTableLen))

	var regs [SoundRegCount]uint8
	regs[0x11] = 0xF
	regs[0x15] = 0xF
	w.ParseRegisters(&regs)

	buf := make([]uint16, 100)
	w.Render(buf)
	phase := w.cnt[0]
	if phase == 0 {
		t.Fatal("phase did not advance")
	}

	w.ParseRegisters(&regs)
	if w.cnt[0] != phase {
		t.Errorf("phase reset by register parse: 0x%08X -> 0x%08X", phase, w.cnt[0])
	}
}

// TestWSG_WaveOutput tests sample generation against a hand-built wave
func TestWSG_WaveOutput(t *testing.T) {
	wavetable := make([]int8, WaveTableLen)
	// Wave 1 holds a constant 4
	for i := 0; i < WaveSize; i++ {
		wavetable[WaveSize+i] = 4
	}
	w := NewWSG(wavetable)

	var regs [SoundRegCount]uint8
	regs[0x05] = 0x1 // voice 0 selects wave 1
	regs[0x11] = 0x1
	regs[0x15] = 0x2 // volume 2
	w.ParseRegisters(&regs)

	buf := make([]uint16, 4)
	w.Render(buf)

	// 2 * 4 * 48 above the midpoint
	want := uint16(0x8000 + 2*4*wsgVolumeScale)
	for i, s := range buf {
		if s != want {
			t.Errorf("sample %d: expected 0x%04X, got 0x%04X", i, want, s)
		}
	}
}

// TestWSG_MaxLegalMix tests that all three voices at full volume over
// the loudest wave the sample PROM can hold mix without saturating
func TestWSG_MaxLegalMix(t *testing.T) {
	// PROM samples are 4-bit nibbles rebiased to -7..+8
	wavetable := make([]int8, WaveTableLen)
	for i := range wavetable {
		wavetable[i] = 8
	}
	w := NewWSG(wavetable)

	var regs [SoundRegCount]uint8
	for ch := 0; ch < WSGChannels; ch++ {
		regs[ch*5+0x11] = 0x1
		regs[ch*5+0x15] = 0xF
	}
	w.ParseRegisters(&regs)

	buf := make([]uint16, 8)
	w.Render(buf)

	want := uint16(0x8000 + 3*15*8*wsgVolumeScale)
	for i, s := range buf {
		if s != want {
			t.Errorf("sample %d: expected 0x%04X, got 0x%04X", i, want, s)
		}
	}
}

// TestWSG_MixHeadroom tests that an out-of-range wavetable clamps
// rather than wrapping
func TestWSG_MixHeadroom(t *testing.T) {
	wavetable := make([]int8, WaveTableLen)
	for i := range wavetable {
		wavetable[i] = 127
	}
	w := NewWSG(wavetable)

	var regs [SoundRegCount]uint8
	for ch := 0; ch < WSGChannels; ch++ {
		regs[ch*5+0x15] = 0xF
	}
	w.ParseRegisters(&regs)

	buf := make([]uint16, 8)
	w.Render(buf)

	// 3 * 15 * 127 * 48 overflows the sample range and must clamp
	for i, s := range buf {
		if s != 0xFFFF {
			t.Errorf("sample %d: expected clamp to 0xFFFF, got 0x%04X", i, s)
		}
	}
}

// TestWSG_Silent tests the register-level silence predicate
func TestWSG_Silent(t *testing.T) {
	var regs [SoundRegCount]uint8
	if !Silent(&regs) {
		t.Error("all-zero registers reported non-silent")
	}

	regs[0x1F] = 0x3 // voice 2 volume
	if Silent(&regs) {
		t.Error("voice 2 volume set but reported silent")
	}

	regs[0x1F] = 0
	regs[0x07] = 0xF // not a volume register
	if !Silent(&regs) {
		t.Error("non-volume register tripped the silence predicate")
	}
}
