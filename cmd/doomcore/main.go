// Command doomcore is the ebiten-presented, oto-backed engine binary
// (spec §5/§9's primary desktop target). It wires internal/game's fixed
// -tic Loop to an ebiten window and an oto audio stream, following the
// teacher's main.go device-construction order almost line for line:
// build the audio/video backends first, map them to their producer,
// start them, then hand control to the windowing event loop.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/term"

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
	flag.Parse()

	path := *iwad
	if path == "" {
		path = promptForIWAD()
	}
	if path == "" {
		fmt.Println("no IWAD given, exiting")
		os.Exit(1)
	}

	f, err := os.Open(path)
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

	input := newKeyboardInput()
	loop := game.NewLoop(lv, renderer, audio, lv.Pic, input, nil, 0)
	loop.Start()
	defer loop.Stop()

	ebiten.SetWindowSize(screenWidth*3, screenHeight*3)
	ebiten.SetWindowTitle("doomcore")
	ebiten.SetWindowResizable(true)

	g := &ebitenGame{loop: loop, input: input, palette: &lv.Pic.Palettes[0]}
	if err := ebiten.RunGame(g); err != nil {
		fmt.Printf("ebiten error: %v\n", err)
	}
}

// promptForIWAD asks on the controlling terminal when -iwad wasn't
// given, following the teacher's CLI-argument-then-prompt fallback
// shape in main.go's usage handling.
func promptForIWAD() string {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ""
	}
	fmt.Print("IWAD path: ")
	var path string
	fmt.Scanln(&path)
	return path
}
