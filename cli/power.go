package cli

import (
	"sync/atomic"

	"github.com/jesse-r-castro/PELLETINO/emu"
)

// HostPower implements the board power controller on a desktop host.
// The CPU profile is recorded but has no host effect; the backlight
// level darkens the window and the amplifier line gates the audio
// player.
type HostPower struct {
	audio *AudioPlayer

	backlight atomic.Int32
	profile   atomic.Int32
	muted     atomic.Bool
}

// NewHostPower creates a controller. audio may be nil when the host has
// no audio device.
func NewHostPower(audio *AudioPlayer) *HostPower {
	p := &HostPower{audio: audio}
	p.backlight.Store(100)
	return p
}

func (p *HostPower) SetCPUProfile(profile emu.CPUProfile) {
	p.profile.Store(int32(profile))
}

func (p *HostPower) SetBacklight(level uint8) {
	p.backlight.Store(int32(level))
}

func (p *HostPower) SetAmplifierPower(on bool) {
	if p.audio != nil {
		p.audio.SetPowered(on)
	}
}

func (p *HostPower) Muted() bool {
	return p.muted.Load()
}

// ToggleMute flips the host mute switch the governor consults.
func (p *HostPower) ToggleMute() {
	p.muted.Store(!p.muted.Load())
}

// Backlight returns the current level as a 0 to 1 scale for drawing.
func (p *HostPower) Backlight() float32 {
	return float32(p.backlight.Load()) / 100
}

// Profile returns the last requested CPU tier, for diagnostics.
func (p *HostPower) Profile() emu.CPUProfile {
	return emu.CPUProfile(p.profile.Load())
}
