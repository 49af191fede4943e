package emu

// Panel and playfield geometry in pixels. The playfield is 8 pixels
// narrower than the panel and 8 pixels taller, so frames are centered
// horizontally and the bottom tile row is never presented.
const (
	DisplayWidth  = 240
	DisplayHeight = 280

	GameWidth  = 224
	GameHeight = 288
	GameXOff   = 8

	TileWidth  = 8
	TileHeight = 8
)

// DisplayTransport is the panel as the renderer sees it. Pixel data is
// RGB565 with the bytes already swapped for the panel controller, so
// implementations pass buffers straight through.
//
// WritePixels may return before the transfer finishes; WaitDone blocks
// until every queued transfer has landed. SetWindow addresses the
// region the next writes fill, top to bottom.
type DisplayTransport interface {
	SetWindow(x, y, w, h int)
	WritePixels(pixels []uint16)
	WaitDone()
	Fill(color uint16)
}

// CPUProfile selects the host clock governor tier.
type CPUProfile int

const (
	CPUProfilePowersave CPUProfile = iota
	CPUProfileHighPerf
)

// PowerController drives the parts of the board the frame governor
// manages: the CPU clock, the panel backlight and the audio amplifier.
type PowerController interface {
	SetCPUProfile(profile CPUProfile)
	SetBacklight(level uint8)
	SetAmplifierPower(on bool)
	Muted() bool
}

// AudioSink consumes rendered audio. Samples are unsigned 16 bit mono
// centered on 0x8000.
type AudioSink interface {
	WriteSamples(samples []uint16)
}
