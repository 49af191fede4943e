package emu

import "time"

// createTestROM creates a 16KB ROM where each byte encodes its offset,
// so reads can be checked against where they should have landed.
func createTestROM() []byte {
	rom := make([]byte, ROMSize)
	for i := range rom {
		rom[i] = byte((i >> 8) ^ i)
	}
	return rom
}

// createNopROM creates a 16KB ROM of zero bytes. The CPU executes it as
// an endless run of NOPs, which is all the frame loop tests need.
func createNopROM() []byte {
	return make([]byte, ROMSize)
}

// createTestAssets returns minimal graphics and wavetable data sized
// for the renderer and synthesizer.
func createTestAssets(rom []byte) Assets {
	return Assets{
		ROM:       rom,
		Tiles:     make([]uint16, TileCount*TileWords),
		Sprites:   make([]uint32, SpriteVariants*SpriteCount*SpriteWords),
		Colormap:  make([]uint16, ColormapSize),
		Wavetable: make([]int8, WaveTableLen),
	}
}

// recordingDisplay records transport calls for inspection.
type recordingDisplay struct {
	windows [][4]int
	writes  int
	pixels  []uint16
	fills   []uint16
	waits   int
}

func (d *recordingDisplay) SetWindow(x, y, w, h int) {
	d.windows = append(d.windows, [4]int{x, y, w, h})
}

func (d *recordingDisplay) WritePixels(pixels []uint16) {
	d.writes++
	d.pixels = append(d.pixels[:0], pixels...)
}

func (d *recordingDisplay) WaitDone() { d.waits++ }

func (d *recordingDisplay) Fill(color uint16) {
	d.fills = append(d.fills, color)
}

// fakePower records governor calls.
type fakePower struct {
	profiles   []CPUProfile
	backlights []uint8
	ampStates  []bool
	muted      bool
}

func (p *fakePower) SetCPUProfile(profile CPUProfile) {
	p.profiles = append(p.profiles, profile)
}

func (p *fakePower) SetBacklight(level uint8) {
	p.backlights = append(p.backlights, level)
}

func (p *fakePower) SetAmplifierPower(on bool) {
	p.ampStates = append(p.ampStates, on)
}

func (p *fakePower) Muted() bool { return p.muted }

func (p *fakePower) lastAmp() (bool, bool) {
	if len(p.ampStates) == 0 {
		return false, false
	}
	return p.ampStates[len(p.ampStates)-1], true
}

// fakeTilt returns a fixed reading.
type fakeTilt struct {
	pitch, roll int8
	err         error
}

func (ft *fakeTilt) Tilt() (int8, int8, error) {
	return ft.pitch, ft.roll, ft.err
}

// countingSink counts sample batches.
type countingSink struct {
	batches int
	samples int
}

func (s *countingSink) WriteSamples(samples []uint16) {
	s.batches++
	s.samples += len(samples)
}

// newTestMachine builds a machine over a NOP ROM with recording fakes.
func newTestMachine(cfg Config) (*Machine, *recordingDisplay, *fakePower, *countingSink) {
	display := &recordingDisplay{}
	power := &fakePower{}
	sink := &countingSink{}

	m, err := New(cfg, createTestAssets(createNopROM()), Hardware{
		Display: display,
		Power:   power,
		Audio:   sink,
	})
	if err != nil {
		panic(err)
	}

	// Tests drive frames directly, no wall clock
	m.now = func() time.Time { return time.Time{} }
	m.sleep = func(time.Duration) {}

	return m, display, power, sink
}
