package emu

// Three voice wavetable sound generator.
const (
	WSGChannels  = 3
	WaveSize     = 32
	WaveTableLen = 16 * WaveSize
)

// volume scale chosen for headroom: three voices at full volume and
// full wave amplitude stay inside 16 bits without hard clipping artifacts
const wsgVolumeScale = 48

var silentWave [WaveSize]int8

// WSG generates mono samples from the sound register block. Phase
// accumulators persist across register parses so retuning a voice never
// clicks.
type WSG struct {
	wavetable []int8

	cnt    [WSGChannels]uint32
	freq   [WSGChannels]uint32
	wave   [WSGChannels][]int8
	volume [WSGChannels]uint8
}

// NewWSG creates a synthesizer over the 512 byte wavetable, 16 waves of
// 32 signed samples each. A nil wavetable yields silence.
func NewWSG(wavetable []int8) *WSG {
	w := &WSG{wavetable: wavetable}
	for ch := 0; ch < WSGChannels; ch++ {
		w.wave[ch] = silentWave[:]
	}
	return w
}

// ParseRegisters latches voice parameters from the register block. Each
// voice carries a 20 bit frequency spread over five nibble registers;
// voice 0 alone has the lowest nibble wired. Phase counters are left
// untouched.
func (w *WSG) ParseRegisters(regs *[SoundRegCount]uint8) {
	for ch := 0; ch < WSGChannels; ch++ {
		w.volume[ch] = regs[ch*5+0x15] & 0x0F

		if w.volume[ch] == 0 {
			w.freq[ch] = 0
			w.wave[ch] = silentWave[:]
			continue
		}

		var freq uint32
		if ch == 0 {
			freq = uint32(regs[0x10] & 0x0F)
		}
		freq |= uint32(regs[ch*5+0x11]&0x0F) << 4
		freq |= uint32(regs[ch*5+0x12]&0x0F) << 8
		freq |= uint32(regs[ch*5+0x13]&0x0F) << 12
		freq |= uint32(regs[ch*5+0x14]&0x0F) << 16
		w.freq[ch] = freq

		waveIdx := int(regs[ch*5+0x05] & 0x0F)
		if w.wavetable != nil {
			w.wave[ch] = w.wavetable[waveIdx*WaveSize : (waveIdx+1)*WaveSize]
		} else {
			w.wave[ch] = silentWave[:]
		}
	}
}

// Render fills buffer with unsigned 16 bit samples centered on 0x8000.
func (w *WSG) Render(buffer []uint16) {
	for i := range buffer {
		var v int32

		// Upper 5 bits of each phase counter index the 32 sample wave
		for ch := 0; ch < WSGChannels; ch++ {
			if w.volume[ch] != 0 {
				v += int32(w.volume[ch]) * int32(w.wave[ch][(w.cnt[ch]>>13)&0x1F])
			}
		}

		v *= wsgVolumeScale
		if v > 32767 {
			v = 32767
		}
		if v < -32768 {
			v = -32768
		}
		buffer[i] = uint16(0x8000 + v)

		for ch := 0; ch < WSGChannels; ch++ {
			w.cnt[ch] += w.freq[ch]
		}
	}
}

// Silent reports whether every voice volume in the register block is
// zero. The amplifier governor uses this rather than rendered output so
// power drops as soon as the program stops the voices.
func Silent(regs *[SoundRegCount]uint8) bool {
	for ch := 0; ch < WSGChannels; ch++ {
		if regs[ch*5+0x15]&0x0F != 0 {
			return false
		}
	}
	return true
}

// Reset zeroes phase, frequency and volume on every voice.
func (w *WSG) Reset() {
	for ch := 0; ch < WSGChannels; ch++ {
		w.cnt[ch] = 0
		w.freq[ch] = 0
		w.volume[ch] = 0
		w.wave[ch] = silentWave[:]
	}
}
