package emu

import (
	"errors"
	"time"

	"github.com/user-none/go-chip-z80"
)

const (
	// 3.072 MHz clock at 60 frames per second.
	CPUClockHz     = 3072000
	FramesPerSec   = 60
	CyclesPerFrame = CPUClockHz / FramesPerSec

	// Mono sample stream feeding the amplifier. Audio is serviced in
	// four slices per frame, three interleaved with the render and a
	// final one that tops the frame up to the full sample budget, so
	// the sink always receives a frame's worth of samples per frame.
	SampleRate      = 44100
	samplesPerFrame = SampleRate / FramesPerSec
	audioSliceLen   = samplesPerFrame / 4

	frameTime = 16667 * time.Microsecond
)

// AttractPlayer runs the promotional clip. Playback owns the panel
// until it returns; a failed clip is reported but never fatal.
type AttractPlayer interface {
	Play() error
}

// Config selects machine options. The zero value disables tilt steering
// and frame pacing; use the Default constructors for the tuned
// threshold sets.
type Config struct {
	DIPSwitches uint8
	Power       PowerConfig
	Tilt        TiltConfig

	// FramePacing enables the internal 60 Hz sleep loop. Hosts that
	// already tick at 60 Hz leave it off.
	FramePacing bool

	// OnAttractError receives clip playback failures, which are never
	// fatal to the frame loop. Hosts that want them logged install a
	// hook; nil discards them.
	OnAttractError func(error)
}

// DefaultConfig returns the factory configuration.
func DefaultConfig() Config {
	return Config{
		DIPSwitches: DIPDefault,
		Power:       DefaultPowerConfig(),
		Tilt:        DefaultTiltConfig(),
		FramePacing: true,
	}
}

// Assets is the converted romset: program ROM plus predecoded graphics
// and the synthesizer wavetable. Colormap entries are byte swapped for
// the panel controller.
type Assets struct {
	ROM       []byte
	Tiles     []uint16
	Sprites   []uint32
	Colormap  []uint16
	Wavetable []int8
}

// Hardware is the board the machine drives. Display and Power are
// required; Audio and Tilt may be nil.
type Hardware struct {
	Display DisplayTransport
	Power   PowerController
	Audio   AudioSink
	Tilt    TiltReader
}

// Machine ties the CPU, memory image, renderer, synthesizer and the
// power governor into one 60 Hz frame machine. Everything runs on the
// caller's goroutine; RunFrame does a full frame of work.
type Machine struct {
	cfg Config

	cpu     *z80.CPU
	mem     *Memory
	bus     *Bus
	input   *Input
	video   *Video
	wsg     *WSG
	monitor *Monitor

	hw            Hardware
	attract       AttractPlayer
	audioBuf      []uint16
	audioRendered int

	intAsserted bool

	// Governor state
	ampOn         bool
	silenceFrames uint32
	idleFrames    uint32
	backlight     uint8
	lowPower      bool

	now   func() time.Time
	sleep func(time.Duration)
}

// New creates a machine from the romset and board. The CPU starts in
// its power-on state with the program counter at zero.
func New(cfg Config, assets Assets, hw Hardware) (*Machine, error) {
	if len(assets.ROM) == 0 {
		return nil, errors.New("no program rom")
	}
	if hw.Display == nil {
		return nil, errors.New("no display transport")
	}
	if hw.Power == nil {
		return nil, errors.New("no power controller")
	}

	if cfg.Power.FrameTime <= 0 {
		cfg.Power.FrameTime = frameTime
	}
	if cfg.Power.AttractFrameTime <= 0 {
		cfg.Power.AttractFrameTime = cfg.Power.FrameTime
	}

	mem := NewMemory(assets.ROM)
	input := NewInput(cfg.Tilt, hw.Tilt)
	bus := NewBus(mem, input, cfg.DIPSwitches)
	cpu := z80.New(bus)

	m := &Machine{
		cfg:      cfg,
		cpu:      cpu,
		mem:      mem,
		bus:      bus,
		input:    input,
		video:    NewVideo(mem, hw.Display, assets.Tiles, assets.Sprites, assets.Colormap),
		wsg:      NewWSG(assets.Wavetable),
		monitor:  NewMonitor(mem),
		hw:       hw,
		audioBuf: make([]uint16, samplesPerFrame),
		ampOn:    true,
		now:      time.Now,
		sleep:    time.Sleep,
	}
	m.backlight = cfg.Power.BacklightActive
	hw.Power.SetBacklight(m.backlight)
	return m, nil
}

// SetAttractPlayer installs the clip player invoked when attract mode
// begins. Optional.
func (m *Machine) SetAttractPlayer(p AttractPlayer) {
	m.attract = p
}

// SetButtons replaces the host button state for the coming frame.
func (m *Machine) SetButtons(buttons uint8) {
	m.input.SetButtons(buttons)
}

// Reset returns the whole machine to its power-on state. The CPU core
// holds no reset entry point, so it is rebuilt over the same bus.
func (m *Machine) Reset() {
	m.mem.Reset()
	m.bus.Reset()
	m.input.Reset()
	m.wsg.Reset()
	m.monitor.Reset()
	m.cpu = z80.New(m.bus)
	m.intAsserted = false
	m.silenceFrames = 0
	m.idleFrames = 0
	m.lowPower = false
	m.ampOn = true
	m.backlight = m.cfg.Power.BacklightActive
	m.hw.Power.SetBacklight(m.backlight)
}

// Memory exposes the memory image, mostly for tests and tooling.
func (m *Machine) Memory() *Memory { return m.mem }

// Bus exposes the address decoder, mostly for tests and tooling.
func (m *Machine) Bus() *Bus { return m.bus }

// renderAudio pulls the sound registers into the synthesizer and pushes
// one slice of samples to the sink.
func (m *Machine) renderAudio() {
	m.serviceAudio(audioSliceLen)
}

// serviceAudio renders n samples, keeping the frame's running total so
// the last service of the frame can cover whatever the interleaved
// slices left over.
func (m *Machine) serviceAudio(n int) {
	if m.hw.Audio == nil || n <= 0 {
		return
	}
	m.wsg.ParseRegisters(m.bus.SoundRegisters())
	buf := m.audioBuf[:n]
	m.wsg.Render(buf)
	m.hw.Audio.WriteSamples(buf)
	m.audioRendered += n
}
