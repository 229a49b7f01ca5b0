package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/doomcore/engine/internal/mobj"
)

// keyboardInput samples ebiten's key state once per ebiten.Game.Update
// and hands the latest snapshot to internal/game.Loop's own 35Hz
// goroutine as a mobj.TicCmd, mirroring video_backend_ebiten.go's
// handleKeyboardInput poll-and-forward shape (there forwarding
// terminal bytes, here forwarding movement intent).
type keyboardInput struct {
	forward, side int8
	turn          int16
	attack, use   bool
	changeWeapon  int
}

func newKeyboardInput() *keyboardInput {
	return &keyboardInput{changeWeapon: -1}
}

const (
	moveSpeed = 50
	turnSpeed = 1280
)

func (k *keyboardInput) poll() {
	k.forward, k.side, k.turn = 0, 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		k.forward += moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		k.forward -= moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		k.side -= moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		k.side += moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		k.turn -= turnSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		k.turn += turnSpeed
	}
	k.attack = ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeySpace)
	k.use = ebiten.IsKeyPressed(ebiten.KeyE)

	k.changeWeapon = -1
	for i, key := range []ebiten.Key{
		ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
		ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7,
	} {
		if ebiten.IsKeyPressed(key) {
			k.changeWeapon = i
		}
	}
}

// PollTicCmd implements internal/game.InputSource. Only player 0 reads
// the local keyboard; other slots are for future networked players.
func (k *keyboardInput) PollTicCmd(player int) mobj.TicCmd {
	if player != 0 {
		return mobj.TicCmd{ChangeWeapon: -1}
	}
	return mobj.TicCmd{
		ForwardMove:  k.forward,
		SideMove:     k.side,
		Turn:         k.turn,
		Attack:       k.attack,
		Use:          k.use,
		ChangeWeapon: k.changeWeapon,
	}
}
