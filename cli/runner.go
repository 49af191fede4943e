// Package cli runs the machine in a desktop window, standing in for
// the handheld's panel, speaker and buttons. The window ticks at 60 Hz
// so the machine's own frame pacing stays off.
package cli

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/jesse-r-castro/PELLETINO/attract"
	"github.com/jesse-r-castro/PELLETINO/emu"
	"github.com/jesse-r-castro/PELLETINO/romset"
)

// Runner wraps a machine as an ebiten game. It owns input polling; the
// machine only consumes the button mask it is handed.
type Runner struct {
	machine *emu.Machine
	display *PanelDisplay
	power   *HostPower
	audio   *AudioPlayer

	frame *ebiten.Image
	pix   []byte
}

// NewRunner builds the full machine from a loaded romset. A host
// without a working audio device still runs, silently.
func NewRunner(set *romset.Set, cfg emu.Config) (*Runner, error) {
	display := NewPanelDisplay()

	audio, err := NewAudioPlayer()
	if err != nil {
		audio = nil
	}
	power := NewHostPower(audio)

	// The window ticks the frames
	cfg.FramePacing = false

	var sink emu.AudioSink
	if audio != nil {
		sink = audio
	}

	machine, err := emu.New(cfg, emu.Assets{
		ROM:       set.ROM,
		Tiles:     set.Tiles,
		Sprites:   set.Sprites,
		Colormap:  set.Colormap,
		Wavetable: set.Wavetable,
	}, emu.Hardware{
		Display: display,
		Power:   power,
		Audio:   sink,
	})
	if err != nil {
		if audio != nil {
			audio.Close()
		}
		return nil, err
	}

	if set.AttractClip != nil {
		machine.SetAttractPlayer(attract.NewPlayer(set.AttractClip, display, attract.Config{}))
	}

	return &Runner{
		machine: machine,
		display: display,
		power:   power,
		audio:   audio,
		frame:   ebiten.NewImage(emu.DisplayWidth, emu.DisplayHeight),
		pix:     make([]byte, emu.DisplayWidth*emu.DisplayHeight*4),
	}, nil
}

// Close releases the audio device.
func (r *Runner) Close() {
	if r.audio != nil {
		r.audio.Close()
		r.audio = nil
	}
}

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	if !ebiten.IsFocused() {
		return nil
	}

	r.machine.SetButtons(r.pollButtons())

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		r.power.ToggleMute()
	}

	r.machine.RunFrame()
	return nil
}

// Draw implements ebiten.Game. The panel framebuffer is preswapped
// RGB565; swap back and expand to RGBA for the window.
func (r *Runner) Draw(screen *ebiten.Image) {
	fb := r.display.Framebuffer()
	for i, px := range fb {
		v := px>>8 | px<<8
		r.pix[4*i] = uint8(v>>11) << 3
		r.pix[4*i+1] = uint8(v>>5) << 2
		r.pix[4*i+2] = uint8(v) << 3
		r.pix[4*i+3] = 0xFF
	}
	r.frame.WritePixels(r.pix)

	var op ebiten.DrawImageOptions
	// The panel runs half PWM when active, which reads as normal
	// brightness in person. Map the active level to full scale and dim
	// proportionally below it.
	dim := r.power.Backlight() * 2
	if dim > 1 {
		dim = 1
	}
	op.ColorScale.Scale(dim, dim, dim, 1)
	screen.DrawImage(r.frame, &op)
}

// Layout implements ebiten.Game.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return emu.DisplayWidth, emu.DisplayHeight
}

// pollButtons reads keyboard and gamepad input into the machine's
// button mask. Arrows or WASD steer, Enter or C drops the virtual coin.
func (r *Runner) pollButtons() uint8 {
	var buttons uint8
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		buttons |= emu.BtnUp
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		buttons |= emu.BtnDown
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		buttons |= emu.BtnLeft
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		buttons |= emu.BtnRight
	}
	if ebiten.IsKeyPressed(ebiten.KeyEnter) || ebiten.IsKeyPressed(ebiten.KeyC) {
		buttons |= emu.BtnCoin
	}

	// Gamepad support (all connected gamepads)
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}

		// D-pad
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop) {
			buttons |= emu.BtnUp
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom) {
			buttons |= emu.BtnDown
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
			buttons |= emu.BtnLeft
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) {
			buttons |= emu.BtnRight
		}

		// A/Cross drops the coin
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			buttons |= emu.BtnCoin
		}

		// Left analog stick (with deadzone)
		const deadzone = 0.5
		axisX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		axisY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if axisX < -deadzone {
			buttons |= emu.BtnLeft
		}
		if axisX > deadzone {
			buttons |= emu.BtnRight
		}
		if axisY < -deadzone {
			buttons |= emu.BtnUp
		}
		if axisY > deadzone {
			buttons |= emu.BtnDown
		}
	}

	return buttons
}
