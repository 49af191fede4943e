package emu

const maxSprites = 8

// Tile and sprite pixel data sizes. Tiles are 8x8 at 2bpp, one word per
// scanline. Sprites are 16x16 at 2bpp, one doubleword per scanline,
// stored four times over for the flip combinations.
const (
	TileCount      = 256
	TileWords      = 8
	SpriteCount    = 64
	SpriteWords    = 16
	SpriteVariants = 4
	ColormapSize   = 64 * 4
)

type sprite struct {
	x, y  int
	code  uint8
	color uint8
	flags uint8
}

// Video renders the memory image to the panel one tile row band at a
// time, mixing audio at a fixed cadence so the sample buffer never runs
// dry during the frame. All buffers are allocated up front.
type Video struct {
	mem     *Memory
	display DisplayTransport

	tiles    []uint16
	sprites  []uint32
	colormap []uint16

	active [maxSprites]sprite
	nspr   int

	rowBuf []uint16
}

// NewVideo creates a renderer over the given memory image and panel.
// colormap must already be byte swapped for the panel controller.
func NewVideo(mem *Memory, display DisplayTransport, tiles []uint16, sprites []uint32, colormap []uint16) *Video {
	return &Video{
		mem:      mem,
		display:  display,
		tiles:    tiles,
		sprites:  sprites,
		colormap: colormap,
		rowBuf:   make([]uint16, GameWidth*TileHeight),
	}
}

// RenderFrame draws the full playfield. audio is called every twelfth
// band so sound generation interleaves with the pixel transfers; it may
// be nil. Rendering is skipped when graphics data is missing.
func (v *Video) RenderFrame(audio func()) {
	if v.tiles == nil || v.sprites == nil || v.colormap == nil {
		return
	}

	v.prepareSprites()

	// The panel is 280 tall so only 35 of the 36 tile rows fit. The
	// bottom row mirrors the top score row and is safe to drop.
	v.display.SetWindow(GameXOff, 0, GameWidth, DisplayHeight)

	for row := 0; row < 35; row++ {
		v.renderBand(row)
		v.display.WritePixels(v.rowBuf)

		if audio != nil && row%12 == 0 {
			audio()
		}
	}

	v.display.WaitDone()
}

// prepareSprites reads the eight attribute and coordinate slot pairs.
// Slots are stored back to front; walking them reversed keeps sprite 0
// on top without a depth pass.
func (v *Video) prepareSprites() {
	v.nspr = 0
	mem := v.mem.Image()

	for idx := 0; idx < maxSprites; idx++ {
		base := 2 * (7 - idx)

		var spr sprite
		spr.code = mem[SpriteOffset+base] >> 2
		spr.flags = mem[SpriteOffset+base] & 3
		spr.color = mem[SpriteOffset+base+1] & 63

		spr.x = 255 - 16 - int(mem[SpriteXYBase+base])
		spr.y = 16 + 256 - int(mem[SpriteXYBase+base+1])

		if spr.code < SpriteCount &&
			spr.y > -16 && spr.y < GameHeight &&
			spr.x > -16 && spr.x < GameWidth {
			v.active[v.nspr] = spr
			v.nspr++
		}
	}
}

func (v *Video) renderBand(row int) {
	for i := range v.rowBuf {
		v.rowBuf[i] = 0
	}

	for col := 0; col < TileCols; col++ {
		v.blitTile(row, col)
	}

	for s := 0; s < v.nspr; s++ {
		spr := &v.active[s]
		if spr.y < 8*(row+1) && spr.y+16 > 8*row {
			v.blitSprite(row, spr)
		}
	}
}

func (v *Video) blitTile(row, col int) {
	mem := v.mem.Image()
	addr := tileAddrTable[row][col]

	tileIdx := mem[addr]
	colorIdx := mem[CRAMOffset+int(addr)] & 63

	tile := v.tiles[int(tileIdx)*TileWords:]
	colors := v.colormap[int(colorIdx)*4:]

	base := col * TileWidth
	for r := 0; r < TileHeight; r++ {
		pix := tile[r]
		ptr := v.rowBuf[base+r*GameWidth:]
		for c := 0; c < TileWidth; c++ {
			if p := pix & 3; p != 0 {
				ptr[c] = colors[p]
			}
			pix >>= 2
		}
	}
}

func (v *Video) blitSprite(row int, spr *sprite) {
	gfx := v.sprites[int(spr.flags)*SpriteCount*SpriteWords+int(spr.code)*SpriteWords:]
	colors := v.colormap[int(spr.color)*4:]

	// Mask off pixel pairs that fall outside the playfield edges
	mask := uint32(0xFFFFFFFF)
	if spr.x < 0 {
		mask <<= uint(-2 * spr.x)
	}
	if spr.x > GameWidth-16 {
		mask >>= uint(2 * (spr.x - (GameWidth - 16)))
	}

	yOffset := spr.y - 8*row

	lines := 8
	if yOffset < -8 {
		lines = 16 + yOffset
	}

	startline := 0
	if yOffset > 0 {
		startline = yOffset
		lines = 8 - yOffset
	}

	gi := 0
	if yOffset < 0 {
		gi = -yOffset
	}

	for r := 0; r < lines; r++ {
		pix := gfx[gi] & mask
		gi++
		line := (startline + r) * GameWidth

		for c := 0; c < 16; c++ {
			px := pix & 3
			pix >>= 2
			if px == 0 {
				continue
			}
			x := spr.x + c
			if x < 0 || x >= GameWidth {
				continue
			}
			// Palette black stays transparent so sprites never punch
			// holes in the maze
			if color := colors[px]; color != 0 {
				v.rowBuf[line+x] = color
			}
		}
	}
}
