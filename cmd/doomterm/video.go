package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/doomcore/engine/internal/game"
	"github.com/doomcore/engine/internal/pic"
)

// termPresenter downsamples the renderer's fixed internal resolution
// onto the terminal grid using the half-block trick: each terminal
// cell packs two source rows into one glyph, an upper-half-block rune
// whose foreground is the top source pixel and background the bottom
// one, doubling effective vertical resolution the way
// video_terminal.go's own framebuffer-to-glyph downsampler does for
// the teacher's register-mapped video chip.
type termPresenter struct {
	screen  tcell.Screen
	palette *[pic.PaletteSize]pic.RGB
	rgba    []byte
}

func newTermPresenter(screen tcell.Screen, palette *[pic.PaletteSize]pic.RGB) *termPresenter {
	return &termPresenter{screen: screen, palette: palette}
}

const upperHalfBlock = '▀'

func (p *termPresenter) draw(r renderFrameSource) {
	w, h := r.Width(), r.Height()
	need := w * h * 4
	if cap(p.rgba) < need {
		p.rgba = make([]byte, need)
	}
	p.rgba = p.rgba[:need]
	r.WriteRGBA(p.rgba, p.palette)

	termW, termH := p.screen.Size()
	if termW <= 0 || termH <= 0 {
		return
	}
	rows := termH * 2

	for ty := 0; ty < termH; ty++ {
		topY := ty * 2 * h / rows
		botY := (ty*2 + 1) * h / rows
		if botY >= h {
			botY = h - 1
		}
		for tx := 0; tx < termW; tx++ {
			sx := tx * w / termW
			top := p.pixelAt(sx, topY, w)
			bot := p.pixelAt(sx, botY, w)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top[0]), int32(top[1]), int32(top[2]))).
				Background(tcell.NewRGBColor(int32(bot[0]), int32(bot[1]), int32(bot[2])))
			p.screen.SetContent(tx, ty, upperHalfBlock, nil, style)
		}
	}
	p.screen.Show()
}

func (p *termPresenter) pixelAt(x, y, w int) [3]byte {
	o := (y*w + x) * 4
	return [3]byte{p.rgba[o], p.rgba[o+1], p.rgba[o+2]}
}

// renderFrameSource is the slice of *render.Renderer this presenter
// needs; declared as an interface so video.go doesn't have to import
// internal/render just to name the concrete type.
type renderFrameSource interface {
	Width() int
	Height() int
	WriteRGBA(dst []uint8, palette *[pic.PaletteSize]pic.RGB)
}

// runEventLoop drives both tcell's blocking event stream and the
// presenter's own ~30Hz redraw timer, stopping the simulation loop on
// Ctrl-C/Escape or when the event stream ends, following the teacher's
// video_terminal.go main-loop split between an input-poll goroutine
// and a redraw ticker.
func runEventLoop(screen tcell.Screen, loop *game.Loop, input *termInput, presenter *termPresenter) {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	redraw := time.NewTicker(time.Second / 30)
	defer redraw.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				loop.Stop()
				return
			}
			switch e := ev.(type) {
			case *tcell.EventKey:
				if e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC {
					loop.Stop()
					return
				}
				input.handleKey(e)
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-redraw.C:
			loop.Draw()
			presenter.draw(rendererSource{loop})
		}
	}
}

// rendererSource adapts *game.Loop's embedded *render.Renderer to
// renderFrameSource without importing internal/render here.
type rendererSource struct{ loop *game.Loop }

func (r rendererSource) Width() int  { return r.loop.Renderer.Width }
func (r rendererSource) Height() int { return r.loop.Renderer.Height }
func (r rendererSource) WriteRGBA(dst []uint8, palette *[pic.PaletteSize]pic.RGB) {
	r.loop.Renderer.WriteRGBA(dst, palette)
}
