package main

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/doomcore/engine/internal/mobj"
)

// termInput tracks which movement/action keys are currently held,
// updated from tcell's blocking PollEvent loop on the main goroutine
// and read by internal/game.Loop's own 35Hz tic goroutine, mirroring
// cmd/doomcore's keyboardInput (there sampled from ebiten's per-frame
// key state instead of discrete key-down/key-up events, so this one
// tracks held-state explicitly with a mutex rather than polling it).
type termInput struct {
	mu           sync.Mutex
	forward      int8
	side         int8
	turnLeft     bool
	turnRight    bool
	attack       bool
	use          bool
	changeWeapon int
}

func newTermInput() *termInput {
	return &termInput{changeWeapon: -1}
}

const moveSpeed = 50
const turnSpeed = 1280

// handleKey updates held-key state from one tcell key event.
// Movement keys are momentary: this terminal has no key-up events for
// plain runes, so WASD/arrow motion is applied for one tic per
// keystroke (auto-repeat while held, per terminal driver behavior)
// rather than tracked as a continuous press.
func (t *termInput) handleKey(ev *tcell.EventKey) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.forward, t.side, t.turnLeft, t.turnRight = 0, 0, false, false
	t.attack, t.use = false, false
	t.changeWeapon = -1

	switch ev.Key() {
	case tcell.KeyUp:
		t.forward = moveSpeed
	case tcell.KeyDown:
		t.forward = -moveSpeed
	case tcell.KeyLeft:
		t.turnLeft = true
	case tcell.KeyRight:
		t.turnRight = true
	case tcell.KeyCtrlSpace:
		t.attack = true
	}

	switch ev.Rune() {
	case 'w', 'W':
		t.forward = moveSpeed
	case 's', 'S':
		t.forward = -moveSpeed
	case 'a', 'A':
		t.side = -moveSpeed
	case 'd', 'D':
		t.side = moveSpeed
	case ' ':
		t.attack = true
	case 'e', 'E':
		t.use = true
	case '1', '2', '3', '4', '5', '6', '7':
		t.changeWeapon = int(ev.Rune() - '1')
	}
}

// PollTicCmd implements internal/game.InputSource.
func (t *termInput) PollTicCmd(player int) mobj.TicCmd {
	if player != 0 {
		return mobj.TicCmd{ChangeWeapon: -1}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	turn := int16(0)
	if t.turnLeft {
		turn -= turnSpeed
	}
	if t.turnRight {
		turn += turnSpeed
	}
	cmd := mobj.TicCmd{
		ForwardMove:  t.forward,
		SideMove:     t.side,
		Turn:         turn,
		Attack:       t.attack,
		Use:          t.use,
		ChangeWeapon: t.changeWeapon,
	}
	t.forward, t.side = 0, 0
	t.turnLeft, t.turnRight = false, false
	t.attack, t.use = false, false
	return cmd
}
