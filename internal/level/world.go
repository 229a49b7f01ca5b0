package level

import (
	"math"

	"github.com/doomcore/engine/internal/mobj"
	"github.com/doomcore/engine/internal/movement"
	"github.com/doomcore/engine/internal/think"
)

// Level implements mobj.World, the seam that lets internal/mobj's AI
// actions reach collision, hitscan, and pool operations without
// internal/mobj importing internal/level (spec §9's interface-based
// dependency inversion).
var _ mobj.World = (*Level)(nil)

// SpawnMissile launches a KindRocket-style projectile from source
// toward target's current position (spec §4.4's missile-state attacks).
func (lv *Level) SpawnMissile(source, target *mobj.MapObject, kind mobj.Kind) *mobj.MapObject {
	bi := mobj.Bestiary[kind]
	angle := math.Atan2(target.Y-source.Y, target.X-source.X)
	dist := math.Hypot(target.X-source.X, target.Y-source.Y)
	speed := bi.Speed
	if speed == 0 {
		speed = 20
	}

	m := lv.SpawnThing(kind, source.X, source.Y, angle, false)
	if m == nil {
		return nil
	}
	m.Z = source.Z + source.Height/2 + 8
	m.VX = math.Cos(angle) * speed
	m.VY = math.Sin(angle) * speed
	if dist > 0 {
		m.VZ = (target.Z - source.Z) / dist * speed
	}
	m.Owner = source
	return m
}

// SpawnPuff drops a wall/ceiling hitscan impact effect at (x,y,z).
func (lv *Level) SpawnPuff(x, y, z float64) {
	if m := lv.SpawnThing(mobj.KindPuff, x, y, 0, false); m != nil {
		m.Z = z
	}
}

// SpawnBlood drops a hit-thing impact effect at (x,y,z), shortening its
// first state by a random 0-3 tics (minimum 1). damage is not used.
func (lv *Level) SpawnBlood(x, y, z float64, damage int) {
	m := lv.SpawnThing(mobj.KindBlood, x, y, 0, false)
	if m == nil {
		return
	}
	m.Z = z
	m.Tics -= lv.rng.next() & 3
	if m.Tics < 1 {
		m.Tics = 1
	}
}

// LineAttack fires a hitscan from source along angle, ignoring the
// caller-supplied slope in favor of movement.LineAttack's own aim
// pass (internal/mobj's AI actions always pass 0 here; only a real
// autoaim computation should pick the vertical slope).
func (lv *Level) LineAttack(source *mobj.MapObject, angle, distance, _ float64, damage int) {
	res := movement.LineAttack(lv, source, angle, distance)
	if !res.Hit {
		return
	}
	if res.Thing != nil {
		if res.Thing.Flags.Has(mobj.FlagNoBlood) {
			lv.SpawnPuff(res.X, res.Y, res.Z)
		} else {
			lv.SpawnBlood(res.X, res.Y, res.Z, damage)
		}
		res.Thing.Damage(damage, source, lv)
		return
	}
	lv.SpawnPuff(res.X, res.Y, res.Z)
}

// RadiusAttack applies an explosion's falloff damage to everything
// within reach of source, then routes each hit through MapObject.Damage
// so death/pain/BossDeath bookkeeping only ever runs in one place.
func (lv *Level) RadiusAttack(source *mobj.MapObject, damage int) {
	for _, hit := range movement.RadiusDamage(lv, source, float64(damage)) {
		hit.Thing.Damage(hit.Dealt, source, lv)
	}
}

// NoiseAlert floods sound from emitter's sector (spec §4.4); target is
// part of mobj.World's signature but unused here — the flood always
// starts at the emitter, matching floodSector's contract.
func (lv *Level) NoiseAlert(_, emitter *mobj.MapObject) {
	lv.validcount++
	movement.NoiseAlert(lv.MapData, emitter, lv.validcount)
}

func (lv *Level) CheckSight(from, to *mobj.MapObject) bool {
	return movement.CheckSight(lv, from, to.X, to.Y, to.Z)
}

func (lv *Level) PlaySound(sfx string, x, y float64) {
	lv.sounds.push(soundRequest{Name: sfx, X: x, Y: y})
}

func (lv *Level) Random() int { return lv.rng.next() }

// RemoveBody detaches m from its sector thing-list and schedules its
// pool slot for removal at the end of the current Think call.
func (lv *Level) RemoveBody(m *mobj.MapObject) {
	lv.unlinkThing(m)
	lv.Pool.MarkRemove(m.Handle())
}

// TryMove attempts to relocate m, then — for a player's body — scans
// for touch-pickups sharing its destination sector (spec §4.4's item
// contact edge case).
func (lv *Level) TryMove(m *mobj.MapObject, x, y float64) bool {
	if !movement.TryMove(lv, m, x, y) {
		return false
	}
	if m.Player() != nil {
		lv.touchPickups(m)
	}
	return true
}

// NightmareRespawn re-spawns a dead monster at its original spawn
// point (spec §4.4's nightmare-skill behavior); the dead MapObject
// itself is left for the caller to remove.
func (lv *Level) NightmareRespawn(m *mobj.MapObject) {
	if !m.HasSpawnPoint {
		return
	}
	lv.SpawnThing(m.SpawnKind, m.SpawnX, m.SpawnY, m.SpawnAngle, m.Flags.Has(mobj.FlagAmbush))
}

// BossDeath decrements the kill count for a tracked boss kind and, once
// every instance is dead, lowers every tag-666 sector and fires the
// script's on_boss_death hook (spec §4.4, classic DOOM's boss-death
// level actions generalized via ScriptHost instead of a hardcoded
// per-map switch).
func (lv *Level) BossDeath(m *mobj.MapObject) {
	if !lv.BossKinds[m.Kind] {
		return
	}
	lv.bossKindsAlive[m.Kind]--
	if lv.bossKindsAlive[m.Kind] > 0 {
		return
	}
	lv.triggerTaggedFloors(666)
	lv.Script.OnBossDeath(int(m.Kind))
}

func (lv *Level) ResolveTarget(h think.Handle) *mobj.MapObject {
	t, _ := lv.Pool.Resolve(h).(*mobj.MapObject)
	return t
}

// FindPlayerTarget does a round-robin, sight-gated scan over live
// players starting at m's last search position, the generic form of
// a_look's player search (spec §4.4).
func (lv *Level) FindPlayerTarget(m *mobj.MapObject) *mobj.MapObject {
	for i := 0; i < MaxPlayers; i++ {
		idx := (m.LastLook + i) % MaxPlayers
		p := lv.Players[idx]
		if p == nil || p.Body == nil || p.Health <= 0 {
			continue
		}
		if movement.CheckSight(lv, m, p.Body.X, p.Body.Y, p.Body.Z) {
			m.LastLook = (idx + 1) % MaxPlayers
			return p.Body
		}
	}
	return nil
}
