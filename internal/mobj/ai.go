package mobj

import "math"

// aLook implements the player-search half of the §4.4 look pattern:
// it takes the first player World.FindPlayerTarget's round-robin,
// sight-gated scan returns. Sector.SoundTarget (written by
// level.NoiseAlert) is not consulted, so sound alone never wakes a
// monster.
func aLook(m *MapObject, w World) {
	if w == nil {
		return
	}
	target := w.FindPlayerTarget(m)
	if target == nil {
		return
	}
	m.Target = target.handle
	m.ReactionTime = 0
	bi := Bestiary[m.Kind]
	if bi.SeeSound != "" {
		w.PlaySound(bi.SeeSound, m.X, m.Y)
	}
	m.setState(bi.SeeState, w)
}

// aChase is the generic pursue/attack loop (spec §4.4). It is the
// see state's action; that state's Next points back to itself, so
// aChase runs again each time the state's tics run out.
func aChase(m *MapObject, w World) {
	if w == nil {
		return
	}
	bi := Bestiary[m.Kind]
	target := w.ResolveTarget(m.Target)
	if target == nil || target.Health <= 0 {
		target = w.FindPlayerTarget(m)
		if target == nil {
			m.setState(bi.SpawnState, w)
			return
		}
		m.Target = target.handle
	}

	dx, dy := target.X-m.X, target.Y-m.Y
	dist := math.Hypot(dx, dy)
	m.Angle = math.Atan2(dy, dx)

	if bi.MeleeState != StateNull && dist < bi.MeleeRange {
		m.setState(bi.MeleeState, w)
		return
	}
	if bi.MissileState != StateNull && dist < bi.MissileRange && w.CheckSight(m, target) {
		if w.Random() < 200 {
			m.setState(bi.MissileState, w)
			return
		}
	}

	step := bi.Speed
	if step == 0 {
		step = 8
	}
	nx := m.X + math.Cos(m.Angle)*step
	ny := m.Y + math.Sin(m.Angle)*step
	if !w.TryMove(m, nx, ny) {
		m.MoveCount = 0
	}
}

func aFaceTarget(m *MapObject, w World) {
	if w == nil {
		return
	}
	target := w.ResolveTarget(m.Target)
	if target == nil {
		return
	}
	m.Angle = math.Atan2(target.Y-m.Y, target.X-m.X)
}

func aMelee(m *MapObject, w World) {
	aFaceTarget(m, w)
}

func aPain(m *MapObject, w World) {
	bi := Bestiary[m.Kind]
	if bi.PainSound != "" && w != nil {
		w.PlaySound(bi.PainSound, m.X, m.Y)
	}
}

func aScream(m *MapObject, w World) {
	bi := Bestiary[m.Kind]
	if bi.DeathSound != "" && w != nil {
		w.PlaySound(bi.DeathSound, m.X, m.Y)
	}
}

func aFall(m *MapObject, w World) {
	m.Flags &^= FlagSolid
}

// aExplode is the barrel/rocket detonation action (spec §8 scenario
// 3): spawn a radius attack centered on m.
func aExplode(m *MapObject, w World) {
	if w != nil {
		w.RadiusAttack(m, 128)
	}
}

// aPosAttack is the zombieman's hitscan attack: one shot, +/- a small
// spread, 3-15 damage (a multiple of 3), grounded on
// gameplay/src/thing/shooting.rs.
func aPosAttack(m *MapObject, w World) {
	if w == nil {
		return
	}
	target := w.ResolveTarget(m.Target)
	if target == nil {
		return
	}
	aFaceTarget(m, w)
	spread := (float64(w.Random()) - 128) / 128 * 0.05
	dmg := 3 * ((w.Random() % 5) + 1)
	w.LineAttack(m, m.Angle+spread, 2048, 0, dmg)
	w.PlaySound("pistol", m.X, m.Y)
}

// aTroopAttack: melee claw if in range, else a single fireball.
func aTroopAttack(m *MapObject, w World) {
	if w == nil {
		return
	}
	target := w.ResolveTarget(m.Target)
	if target == nil {
		return
	}
	aFaceTarget(m, w)
	dx, dy := target.X-m.X, target.Y-m.Y
	if math.Hypot(dx, dy) < 64 {
		dmg := 3 * ((w.Random() % 8) + 1)
		w.LineAttack(m, m.Angle, 64, 0, dmg)
		return
	}
	w.SpawnMissile(m, target, KindRocket)
}

func aSargAttack(m *MapObject, w World) {
	if w == nil {
		return
	}
	target := w.ResolveTarget(m.Target)
	if target == nil {
		return
	}
	aFaceTarget(m, w)
	dx, dy := target.X-m.X, target.Y-m.Y
	if math.Hypot(dx, dy) >= 64 {
		return
	}
	dmg := 4 * ((w.Random() % 10) + 1)
	w.LineAttack(m, m.Angle, 64, 0, dmg)
}
