package cli

import (
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/jesse-r-castro/PELLETINO/emu"
)

// Ring capacity in samples, about a quarter second at 44.1 kHz. Deep
// enough to ride out a slow frame, shallow enough to keep latency sane.
const ringSize = 12288

// AudioPlayer pushes synthesizer output to the host audio device. The
// machine writes samples each frame; oto pulls them from a ring on its
// own goroutine, so the ring is the only shared state.
type AudioPlayer struct {
	ctx    *oto.Context
	player *oto.Player

	mu      sync.Mutex
	ring    [ringSize]int16
	head    int
	tail    int
	count   int
	powered bool
}

// NewAudioPlayer opens the host audio device at the machine's sample
// rate, mono signed 16 bit.
func NewAudioPlayer() (*AudioPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   emu.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	p := &AudioPlayer{ctx: ctx, powered: true}
	p.player = ctx.NewPlayer(p)
	p.player.Play()
	return p, nil
}

// WriteSamples implements emu.AudioSink. Samples arrive unsigned and
// centered on 0x8000; the ring stores them signed. Overruns drop the
// oldest samples so playback never blocks the frame loop.
func (p *AudioPlayer) WriteSamples(samples []uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, s := range samples {
		if p.count == ringSize {
			p.tail = (p.tail + 1) % ringSize
			p.count--
		}
		p.ring[p.head] = int16(int32(s) - 0x8000)
		p.head = (p.head + 1) % ringSize
		p.count++
	}
}

// SetPowered mirrors the amplifier enable line. Unpowered output is
// silence while the ring keeps draining, matching a real amplifier
// being cut while the synthesizer runs on.
func (p *AudioPlayer) SetPowered(on bool) {
	p.mu.Lock()
	p.powered = on
	p.mu.Unlock()
}

// Read implements io.Reader for oto. Underruns fill with silence.
func (p *AudioPlayer) Read(buf []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := 0; i+1 < len(buf); i += 2 {
		var s int16
		if p.count > 0 {
			s = p.ring[p.tail]
			p.tail = (p.tail + 1) % ringSize
			p.count--
		}
		if !p.powered {
			s = 0
		}
		buf[i] = byte(s)
		buf[i+1] = byte(s >> 8)
	}
	return len(buf) &^ 1, nil
}

// Close stops playback and releases the device.
func (p *AudioPlayer) Close() {
	if p.player != nil {
		p.player.Close()
		p.player = nil
	}
}
