package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/afero"

	"github.com/jesse-r-castro/PELLETINO/cli"
	"github.com/jesse-r-castro/PELLETINO/emu"
	"github.com/jesse-r-castro/PELLETINO/romset"
)

func main() {
	setDir := flag.String("romset", "romset", "path to the converted romset directory")
	scale := flag.Int("scale", 2, "window scale factor")
	dip := flag.Int("dip", emu.DIPDefault, "DIP switch byte")
	flag.Parse()

	set, err := romset.Load(afero.NewOsFs(), *setDir)
	if err != nil {
		log.Fatal(err)
	}

	cfg := emu.DefaultConfig()
	cfg.DIPSwitches = uint8(*dip)
	cfg.OnAttractError = func(err error) {
		log.Printf("attract clip: %v", err)
	}

	runner, err := cli.NewRunner(set, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer runner.Close()

	ebiten.SetWindowSize(emu.DisplayWidth * *scale, emu.DisplayHeight * *scale)
	ebiten.SetWindowTitle("PELLETINO")
	ebiten.SetTPS(emu.FramesPerSec)

	if err := ebiten.RunGame(runner); err != nil {
		log.Fatal(err)
	}
}
