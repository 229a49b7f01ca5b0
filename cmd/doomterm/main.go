// Command doomterm is the tcell-presented engine binary: the same
// internal/game.Loop as cmd/doomcore, driven from a terminal instead
// of a window, mirroring the teacher's own three-backend split
// (video_backend_ebiten.go / video_terminal.go / video_backend_headless.go
// all presenting one VideoChip) one level up, at the cmd/ boundary
// instead of inside internal/render.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ebitengine/oto/v3"
	"github.com/gdamore/tcell/v2"

	"github.com/doomcore/engine/internal/game"
	"github.com/doomcore/engine/internal/level"
	"github.com/doomcore/engine/internal/opl"
	"github.com/doomcore/engine/internal/render"
	"github.com/doomcore/engine/internal/wad"
)

const (
	screenWidth  = 320
	screenHeight = 200
	sampleRate   = 49716
)

func main() {
	iwad := flag.String("iwad", "", "path to the IWAD file")
	mapName := flag.String("map", "E1M1", "map lump name to start on")
	sky := flag.String("sky", "SKY1", "sky texture name")
	noAudio := flag.Bool("no-audio", false, "disable the OPL/oto audio thread")
	flag.Parse()

	if *iwad == "" {
		fmt.Println("usage: doomterm -iwad PATH [-map E1M1] [-sky SKY1]")
		os.Exit(1)
	}

	f, err := os.Open(*iwad)
	if err != nil {
		fmt.Printf("failed to open IWAD: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	wadFile, err := wad.Open(f)
	if err != nil {
		fmt.Printf("failed to read WAD directory: %v\n", err)
		os.Exit(1)
	}

	lv, err := level.Load(wadFile, *mapName, *sky)
	if err != nil {
		fmt.Printf("failed to load %s: %v\n", *mapName, err)
		os.Exit(1)
	}
	lv.SpawnPlayers()

	renderer := render.NewRenderer(screenWidth, screenHeight)
	audio := opl.NewChip(sampleRate)

	if !*noAudio {
		otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatFloat32LE,
			BufferSize:   4,
		})
		if err != nil {
			fmt.Printf("failed to initialize audio: %v\n", err)
			os.Exit(1)
		}
		<-ready
		player := otoCtx.NewPlayer(newOPLReader(audio))
		player.Play()
		defer player.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Printf("failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Printf("failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()

	input := newTermInput()
	loop := game.NewLoop(lv, renderer, audio, lv.Pic, input, nil, 0)
	loop.Start()
	defer loop.Stop()

	presenter := newTermPresenter(screen, &lv.Pic.Palettes[0])
	runEventLoop(screen, loop, input, presenter)
}
