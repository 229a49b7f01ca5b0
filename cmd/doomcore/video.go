package main

import (
	"bytes"
	"image"
	"image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"
	"golang.org/x/image/draw"

	"github.com/doomcore/engine/internal/game"
	"github.com/doomcore/engine/internal/pic"
)

// ebitenGame adapts internal/game.Loop to ebiten.Game, mirroring
// video_backend_ebiten.go's EbitenOutput: an owned *ebiten.Image
// rewritten from a palette-index frame buffer every Draw, window
// close wired to a clean shutdown instead of a CPU reset.
type ebitenGame struct {
	loop    *game.Loop
	input   *keyboardInput
	palette *[pic.PaletteSize]pic.RGB

	window *ebiten.Image
	rgba   []byte

	clipboardReady bool
}

func (g *ebitenGame) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.loop.Stop()
		return ebiten.Termination
	}
	g.input.poll()
	if ebiten.IsKeyJustPressed(ebiten.KeyF12) {
		g.screenshot()
	}
	g.loop.Draw()
	return nil
}

func (g *ebitenGame) Draw(screen *ebiten.Image) {
	w, h := g.loop.Renderer.Width, g.loop.Renderer.Height
	if g.window == nil {
		g.window = ebiten.NewImage(w, h)
		g.rgba = make([]byte, w*h*4)
	}
	g.loop.Renderer.WriteRGBA(g.rgba, g.palette)
	g.window.WritePixels(g.rgba)

	// x/image/draw rescales the fixed internal resolution up to
	// whatever size the window was resized to, per the Open Question
	// decision recorded in DESIGN.md (internal render size stays
	// fixed; presenters rescale only at present time).
	bounds := screen.Bounds()
	if bounds.Dx() == w && bounds.Dy() == h {
		screen.DrawImage(g.window, nil)
		return
	}
	dst := image.NewRGBA(bounds)
	draw.NearestNeighbor.Scale(dst, bounds, g.window, g.window.Bounds(), draw.Over, nil)
	screen.WritePixels(dst.Pix)
}

func (g *ebitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// screenshot copies the current frame to the system clipboard as a
// PNG, mirroring video_backend_ebiten.go's clipboard integration
// (there used for paste; here for copy, the natural counterpart).
func (g *ebitenGame) screenshot() {
	if !g.clipboardReady {
		if clipboard.Init() != nil {
			return
		}
		g.clipboardReady = true
	}
	if g.window == nil {
		return
	}
	if data := encodePNG(g.window); data != nil {
		clipboard.Write(clipboard.FmtImage, data)
	}
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
