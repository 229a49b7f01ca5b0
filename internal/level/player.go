package level

import (
	"math"

	"github.com/doomcore/engine/internal/mobj"
	"github.com/doomcore/engine/internal/movement"
)

// playerMoveScale converts a TicCmd's [-127,127] forward/side range
// into map units/tic, so a full ±127 gives ±MaxMove on each axis;
// movement.SlideMove applies no further cap.
const playerMoveScale = mobj.MaxMove / 127

// SpawnPlayers instantiates a Player and body for every THINGS-lump
// player start LoadThings recorded (spec §3's Player, called once
// after a level's things are loaded).
func (lv *Level) SpawnPlayers() {
	for i := 0; i < MaxPlayers; i++ {
		sp := lv.playerStarts[i]
		if !sp.Set || lv.Players[i] != nil {
			continue
		}
		body := lv.SpawnThing(mobj.KindPlayer, sp.X, sp.Y, sp.Angle, false)
		if body == nil {
			continue
		}
		p := mobj.NewPlayer()
		p.ViewHeight = 41
		p.Body = body
		body.SetPlayer(p)
		lv.Players[i] = p
	}
}

// playerThink applies one tic of player input: turn, move (via
// SlideMove so walls deflect rather than stop the player outright),
// use, and weapon fire/change (spec §6.2's TicCmd, §4.3's slide-move).
func (lv *Level) playerThink(p *mobj.Player, cmd mobj.TicCmd) {
	body := p.Body
	if body == nil || body.Health <= 0 {
		p.Last = cmd
		return
	}

	body.Angle += float64(cmd.Turn) / 65536 * 2 * math.Pi

	forward := float64(cmd.ForwardMove) * playerMoveScale
	side := float64(cmd.SideMove) * playerMoveScale
	if forward != 0 || side != 0 {
		fx, fy := math.Cos(body.Angle), math.Sin(body.Angle)
		sx, sy := math.Sin(body.Angle), -math.Cos(body.Angle) // strafe-right unit vector
		movement.SlideMove(lv, body, fx*forward+sx*side, fy*forward+sy*side)
		lv.touchPickups(body)
	}

	if cmd.Use && !p.Last.Use {
		lv.useLines(body)
	}
	if cmd.Attack {
		lv.fireWeapon(p)
	}
	if cmd.ChangeWeapon >= 0 && mobj.Weapon(cmd.ChangeWeapon) < mobj.NumWeapons &&
		p.WeaponOwned[cmd.ChangeWeapon] {
		p.PendingWeapon = mobj.Weapon(cmd.ChangeWeapon)
	}
	if p.PendingWeapon != p.ReadyWeapon {
		p.ReadyWeapon = p.PendingWeapon
	}

	p.Last = cmd
}

// View returns player i's current camera position for the renderer
// (spec §4.5), or ok=false if that slot has no live body.
func (lv *Level) View(i int) (x, y, z, angle float64, ok bool) {
	if i < 0 || i >= MaxPlayers || lv.Players[i] == nil || lv.Players[i].Body == nil {
		return 0, 0, 0, 0, false
	}
	p := lv.Players[i]
	return p.Body.X, p.Body.Y, p.Body.Z + p.ViewHeight, p.Body.Angle, true
}

// touchPickups scans body's current sector's thing-list for
// pickup-flagged objects within touching radius and resolves them via
// mobj.TouchSpecial (spec §4.4's item-contact edge case).
func (lv *Level) touchPickups(body *mobj.MapObject) {
	lv.ThingsInSector(body.Sector, func(other *mobj.MapObject) bool {
		if other == body || !other.Flags.Has(mobj.FlagPickup) {
			return true
		}
		if math.Hypot(other.X-body.X, other.Y-body.Y) > body.Radius+other.Radius {
			return true
		}
		mobj.TouchSpecial(body, other, mobj.Pickups[other.Kind], lv)
		return true
	})
}
