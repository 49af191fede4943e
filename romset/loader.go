// Package romset loads a converted romset from disk: the program ROM
// plus graphics, palette and wavetable data already decoded into the
// renderer's packed formats.
package romset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// Romset file names within the set directory.
const (
	ROMFile       = "game.rom"
	TilesFile     = "tiles.bin"
	SpritesFile   = "sprites.bin"
	ColormapFile  = "cmap.bin"
	WavetableFile = "wavetable.bin"
	AttractFile   = "attract.mjp"
)

// Expected sizes in bytes. The ROM is 16KB for a single board game and
// 24KB when an auxiliary board is present.
const (
	ROMSizeBase = 0x4000
	ROMSizeAux  = 0x6000

	tilesSize     = 256 * 8 * 2
	spritesSize   = 4 * 64 * 16 * 4
	colormapSize  = 64 * 4 * 2
	wavetableSize = 16 * 32
)

// Set is a loaded romset. Tiles, Sprites and Wavetable are in the
// renderer's and synthesizer's native layouts; Colormap entries are
// byte swapped for the panel controller. AttractClip is nil when the
// set carries no clip.
type Set struct {
	ROM       []byte
	Tiles     []uint16
	Sprites   []uint32
	Colormap  []uint16
	Wavetable []int8

	AttractClip []byte
}

// Load reads a romset from dir on the given filesystem.
func Load(fsys afero.Fs, dir string) (*Set, error) {
	rom, err := afero.ReadFile(fsys, filepath.Join(dir, ROMFile))
	if err != nil {
		return nil, fmt.Errorf("romset: %w", err)
	}
	if len(rom) != ROMSizeBase && len(rom) != ROMSizeAux {
		return nil, fmt.Errorf("romset: %s is %d bytes, want %d or %d",
			ROMFile, len(rom), ROMSizeBase, ROMSizeAux)
	}

	tiles, err := loadWords16(fsys, dir, TilesFile, tilesSize)
	if err != nil {
		return nil, err
	}

	sprites, err := loadWords32(fsys, dir, SpritesFile, spritesSize)
	if err != nil {
		return nil, err
	}

	colormap, err := loadWords16(fsys, dir, ColormapFile, colormapSize)
	if err != nil {
		return nil, err
	}
	// Preswap so frames go to the panel without a per-pixel swap
	for i, c := range colormap {
		colormap[i] = c>>8 | c<<8
	}

	waveRaw, err := loadExact(fsys, dir, WavetableFile, wavetableSize)
	if err != nil {
		return nil, err
	}
	wavetable := make([]int8, len(waveRaw))
	for i, b := range waveRaw {
		wavetable[i] = int8(b)
	}

	// The clip is optional; a set without one simply never plays video.
	// Anything other than absence is a real read failure.
	clip, err := afero.ReadFile(fsys, filepath.Join(dir, AttractFile))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("romset: %w", err)
		}
		clip = nil
	}

	return &Set{
		ROM:         rom,
		Tiles:       tiles,
		Sprites:     sprites,
		Colormap:    colormap,
		Wavetable:   wavetable,
		AttractClip: clip,
	}, nil
}

func loadExact(fsys afero.Fs, dir, name string, size int) ([]byte, error) {
	data, err := afero.ReadFile(fsys, filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("romset: %w", err)
	}
	if len(data) != size {
		return nil, fmt.Errorf("romset: %s is %d bytes, want %d", name, len(data), size)
	}
	return data, nil
}

func loadWords16(fsys afero.Fs, dir, name string, size int) ([]uint16, error) {
	data, err := loadExact(fsys, dir, name, size)
	if err != nil {
		return nil, err
	}
	words := make([]uint16, len(data)/2)
	for i := range words {
		words[i] = binary.LittleEndian.Uint16(data[2*i:])
	}
	return words, nil
}

func loadWords32(fsys afero.Fs, dir, name string, size int) ([]uint32, error) {
	data, err := loadExact(fsys, dir, name, size)
	if err != nil {
		return nil, err
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[4*i:])
	}
	return words, nil
}
