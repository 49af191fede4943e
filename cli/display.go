package cli

import (
	"github.com/jesse-r-castro/PELLETINO/emu"
)

// PanelDisplay is a software stand-in for the handheld's panel
// controller. Writes land in a full panel framebuffer that the runner
// converts for the window each draw. Transfers complete synchronously,
// so WaitDone has nothing to wait for.
type PanelDisplay struct {
	fb [emu.DisplayWidth * emu.DisplayHeight]uint16

	// Current window and write cursor within it
	wx, wy, ww, wh int
	cx, cy         int
}

// NewPanelDisplay creates a display with a full panel window selected.
func NewPanelDisplay() *PanelDisplay {
	d := &PanelDisplay{}
	d.SetWindow(0, 0, emu.DisplayWidth, emu.DisplayHeight)
	return d
}

// SetWindow selects the region the next writes fill, clamped to the
// panel edges.
func (d *PanelDisplay) SetWindow(x, y, w, h int) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x+w > emu.DisplayWidth {
		w = emu.DisplayWidth - x
	}
	if y+h > emu.DisplayHeight {
		h = emu.DisplayHeight - y
	}
	d.wx, d.wy, d.ww, d.wh = x, y, w, h
	d.cx, d.cy = 0, 0
}

// WritePixels streams pixels into the window row by row, wrapping at
// the window edge. Pixels beyond the window bottom are dropped, which
// is what the panel controller does too.
func (d *PanelDisplay) WritePixels(pixels []uint16) {
	for _, px := range pixels {
		if d.cy >= d.wh {
			return
		}
		d.fb[(d.wy+d.cy)*emu.DisplayWidth+d.wx+d.cx] = px
		d.cx++
		if d.cx >= d.ww {
			d.cx = 0
			d.cy++
		}
	}
}

// WaitDone is a no-op; writes are synchronous here.
func (d *PanelDisplay) WaitDone() {}

// Fill paints the whole panel and resets the window to full screen.
func (d *PanelDisplay) Fill(color uint16) {
	for i := range d.fb {
		d.fb[i] = color
	}
	d.SetWindow(0, 0, emu.DisplayWidth, emu.DisplayHeight)
}

// Framebuffer returns the panel contents, preswapped RGB565 row major.
func (d *PanelDisplay) Framebuffer() []uint16 {
	return d.fb[:]
}
