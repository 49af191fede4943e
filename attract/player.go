package attract

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"time"
)

// Panel geometry, matching the machine's display transport.
const (
	displayWidth  = 240
	displayHeight = 280
)

// Display is the slice of the panel transport playback needs. Pixels
// are RGB565 with the bytes preswapped for the panel controller.
type Display interface {
	SetWindow(x, y, w, h int)
	WritePixels(pixels []uint16)
	WaitDone()
	Fill(color uint16)
}

// FrameDecoder turns one demuxed JPEG frame into an image.
type FrameDecoder interface {
	Decode(frame []byte) (image.Image, error)
}

// stdDecoder is the default decoder.
type stdDecoder struct{}

func (stdDecoder) Decode(frame []byte) (image.Image, error) {
	return jpeg.Decode(bytes.NewReader(frame))
}

// Config selects playback options. The zero value gets the clip's
// native rate and tuned slack.
type Config struct {
	// FPS is the clip's frame rate. Defaults to 24.
	FPS int

	// SkipSlack is how far behind schedule a frame may run before it
	// is dropped instead of decoded. Defaults to half a frame period.
	SkipSlack time.Duration

	// ChunkRows is the height of each presentation transfer, bounded
	// by the transport's transfer limit. Defaults to 40.
	ChunkRows int

	// Decoder overrides the built-in JPEG decoder.
	Decoder FrameDecoder
}

// Player presents a motion JPEG clip on the panel. Each Play call runs
// the whole clip on the caller's goroutine; the staging buffer is
// allocated once and reused across plays.
type Player struct {
	clip      []byte
	display   Display
	decoder   FrameDecoder
	fps       int
	skipSlack time.Duration
	chunkRows int

	staging []uint16

	now   func() time.Time
	sleep func(time.Duration)
}

// NewPlayer creates a player for the clip.
func NewPlayer(clip []byte, display Display, cfg Config) *Player {
	if cfg.FPS <= 0 {
		cfg.FPS = 24
	}
	if cfg.SkipSlack <= 0 {
		cfg.SkipSlack = time.Second / time.Duration(2*cfg.FPS)
	}
	if cfg.ChunkRows <= 0 {
		cfg.ChunkRows = 40
	}
	if cfg.Decoder == nil {
		cfg.Decoder = stdDecoder{}
	}
	return &Player{
		clip:      clip,
		display:   display,
		decoder:   cfg.Decoder,
		fps:       cfg.FPS,
		skipSlack: cfg.SkipSlack,
		chunkRows: cfg.ChunkRows,
		staging:   make([]uint16, displayWidth*displayHeight),
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

// Play runs the clip start to finish. Frames that have fallen behind
// the wall clock schedule by more than the slack are dropped without
// decoding so playback catches up instead of drifting. A decode failure
// ends the clip early and is returned for logging; the caller treats it
// as non-fatal.
func (p *Player) Play() error {
	if len(p.staging) < displayWidth*displayHeight {
		return errors.New("no staging buffer")
	}

	stream := NewStream(p.clip)
	period := time.Second / time.Duration(p.fps)
	start := p.now()

	p.display.Fill(0)
	defer func() {
		p.display.Fill(0)
		p.display.WaitDone()
	}()

	var err error
	for index := 0; ; index++ {
		frame := stream.Next()
		if frame == nil {
			break
		}

		target := time.Duration(index) * period
		elapsed := p.now().Sub(start)

		if elapsed > target+p.skipSlack {
			continue
		}

		var img image.Image
		img, err = p.decoder.Decode(frame)
		if err != nil {
			err = fmt.Errorf("decode frame %d: %w", index, err)
			break
		}

		p.stage(img)
		p.present()

		if remain := target + period - p.now().Sub(start); remain > 0 {
			p.sleep(remain)
		}
	}

	return err
}

// stage converts the decoded frame into preswapped RGB565 pixels in the
// full frame staging buffer. Frames smaller than the panel leave the
// previous contents in the uncovered margin, which the entry fill has
// already blanked.
func (p *Player) stage(img image.Image) {
	bounds := img.Bounds()

	w := bounds.Dx()
	if w > displayWidth {
		w = displayWidth
	}
	h := bounds.Dy()
	if h > displayHeight {
		h = displayHeight
	}

	for y := 0; y < h; y++ {
		row := p.staging[y*displayWidth:]
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

			rgb565 := uint16(r>>11)<<11 | uint16(g>>10)<<5 | uint16(b>>11)
			row[x] = rgb565>>8 | rgb565<<8
		}
	}
}

// present transfers the staging buffer in fixed height chunks, waiting
// out each transfer so only one chunk is ever in flight.
func (p *Player) present() {
	p.display.SetWindow(0, 0, displayWidth, displayHeight)

	for y := 0; y < displayHeight; y += p.chunkRows {
		rows := p.chunkRows
		if y+rows > displayHeight {
			rows = displayHeight - y
		}
		p.display.WritePixels(p.staging[y*displayWidth : (y+rows)*displayWidth])
		p.display.WaitDone()
	}
}
