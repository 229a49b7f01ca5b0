// Package game runs the fixed-rate simulation/render loop that owns a
// Level, a Renderer and an audio Chip for one running session (spec
// §5). It generalises the teacher's main.go orchestration — spawn the
// CPU goroutine, start the video/audio chips, let the GUI drive
// presentation — to DOOM's own fixed-35Hz-tic discipline instead of a
// free-running CPU clock.
package game

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/doomcore/engine/internal/level"
	"github.com/doomcore/engine/internal/mobj"
	"github.com/doomcore/engine/internal/opl"
	"github.com/doomcore/engine/internal/pic"
	"github.com/doomcore/engine/internal/render"
)

const (
	// TicRate is DOOM's fixed simulation rate (spec §5).
	TicRate = 35
	ticDuration = time.Second / TicRate

	// maxTicsPerFrame caps the "spiral of death" catch-up: if
	// presentation falls more than this many tics behind, the extra
	// backlog is dropped rather than simulated, trading determinism
	// for staying responsive under sustained overload.
	maxTicsPerFrame = 4
)

// InputSource supplies one player's TicCmd for the tic about to run.
// cmd/doomcore's keyboard poller implements this; tests can
// supply a canned sequence.
type InputSource interface {
	PollTicCmd(player int) mobj.TicCmd
}

// SoundPlayer starts a named sound effect at a world position, panned
// and attenuated against the listener by the implementation. Loop only
// forwards the Level's queued requests (spec §5's SPSC sound-request
// handoff); cmd/doomcore and cmd/doomterm pass a nil SoundPlayer, so
// there the requests are never drained.
type SoundPlayer interface {
	Play(name string, x, y float64)
}

// Loop owns one session's Level, Renderer and audio Chip, and drives
// them at a fixed 35Hz tic rate independent of the presenter's frame
// rate, following the teacher's "chips run on their own goroutine,
// the GUI just reads their latest output" split.
type Loop struct {
	Level    *level.Level
	Renderer *render.Renderer
	Audio    *opl.Chip
	Pic      *pic.Data

	Input InputSource
	Sound SoundPlayer

	running  atomic.Bool
	shutdown atomic.Bool

	viewPlayer int
}

// NewLoop wires a Level to a Renderer and an audio Chip for one
// session. viewPlayer selects whose camera the Renderer follows.
func NewLoop(lv *level.Level, r *render.Renderer, audio *opl.Chip, picData *pic.Data, input InputSource, sound SoundPlayer, viewPlayer int) *Loop {
	return &Loop{
		Level:      lv,
		Renderer:   r,
		Audio:      audio,
		Pic:        picData,
		Input:      input,
		Sound:      sound,
		viewPlayer: viewPlayer,
	}
}

// Start begins the fixed-tic simulation goroutine. Stop signals it to
// exit; Draw (called from the presenter's own loop, e.g. an ebiten
// Game.Update) reads whatever the simulation has produced so far.
func (l *Loop) Start() {
	if l.running.Swap(true) {
		return // already running
	}
	l.shutdown.Store(false)
	go l.run()
}

// Stop signals the simulation goroutine to exit after its current tic
// and blocks until it acknowledges by clearing running.
func (l *Loop) Stop() {
	l.shutdown.Store(true)
	for l.running.Load() {
		time.Sleep(time.Millisecond)
	}
}

// run is the fixed-tic accumulator loop: sleep-accurate enough for a
// software simulation, with a spiral-of-death cap so a stalled
// goroutine (GC pause, slow render) doesn't try to replay hours of
// backlogged tics once it resumes.
func (l *Loop) run() {
	defer l.running.Store(false)

	ticker := time.NewTicker(ticDuration)
	defer ticker.Stop()

	var accumulated time.Duration
	last := time.Now()

	for range ticker.C {
		if l.shutdown.Load() {
			return
		}
		now := time.Now()
		accumulated += now.Sub(last)
		last = now

		tics := 0
		for accumulated >= ticDuration && tics < maxTicsPerFrame {
			l.runOneTic()
			accumulated -= ticDuration
			tics++
		}
		if tics == maxTicsPerFrame && accumulated >= ticDuration {
			log.Printf("game: spiral of death, dropping %s of backlog", accumulated.Truncate(time.Millisecond))
			accumulated = 0
		}
	}
}

// runOneTic resolves every player's input and advances the Level by
// one tic, then drains any sounds the tic queued and hands each off to
// Sound (spec §5's SPSC sound-request queue; Chip's own register
// writes are a MUS/MIDI sequencer's job, layered above this loop).
func (l *Loop) runOneTic() {
	var cmds [level.MaxPlayers]mobj.TicCmd
	if l.Input != nil {
		for i := 0; i < level.MaxPlayers; i++ {
			if l.Level.Players[i] != nil {
				cmds[i] = l.Input.PollTicCmd(i)
			}
		}
	}
	l.Level.Tick(cmds)

	if l.Sound != nil {
		for {
			name, x, y, ok := l.Level.DrainSound()
			if !ok {
				break
			}
			l.Sound.Play(name, x, y)
		}
	}
}

// Draw renders the current simulation state for viewPlayer into the
// Renderer's frame buffer (spec §5's tick->draw serialization: the
// presenter calls this once per display frame, independent of how
// many tics just ran).
func (l *Loop) Draw() {
	x, y, z, angle, ok := l.Level.View(l.viewPlayer)
	if !ok {
		return
	}
	view := render.View{X: x, Y: y, Z: z, Angle: angle}
	things := l.Level.VisibleThings(x, y)
	l.Renderer.RenderFrame(l.Level.MapData, l.Pic, view, things)
}
