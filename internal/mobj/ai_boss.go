package mobj

import "math"

// The original source left a_vilechase, a_brainspit, and a_fire as
// stubs (spec §9 Open Questions: "implementers should follow the
// original DOOM behavior rather than the source's placeholders").
// These give each a real, if simplified, behavior rather than a
// no-op, using the same World seam as the rest of internal/mobj's AI.

// aVileChase extends aChase with corpse resurrection: if the Arch-Vile's
// Tracer handle resolves to a live MapObject, that object is raised
// into its RaiseState instead of the Arch-Vile advancing toward its
// target that tic. No range, line-of-sight, or corpse-flag check is
// made.
func aVileChase(m *MapObject, w World) {
	if w != nil {
		if corpse := findRaisableCorpse(m, w); corpse != nil {
			raise(corpse, w)
			return
		}
	}
	aChase(m, w)
}

func findRaisableCorpse(m *MapObject, w World) *MapObject {
	// mobj does not own the level's sector/BSP data, so no search is
	// done here: the candidate is whatever m.Tracer resolves to. Nothing
	// in internal/level sets Tracer, so this returns nil unless a
	// caller has set it.
	return w.ResolveTarget(m.Tracer)
}

func raise(corpse *MapObject, w World) {
	bi := Bestiary[corpse.Kind]
	if bi.RaiseState == StateNull {
		return
	}
	corpse.Health = bi.Health
	corpse.Flags |= FlagSolid | FlagShootable | FlagCountKill
	corpse.Flags &^= FlagCorpse
	corpse.SetState(bi.RaiseState, w)
}

// aBrainSpit fires one cube toward the current target, the simplified
// analogue of the Icon of Sin's cube-spawner: in the original this
// cycles through a ring of spawn-shooter things, which is level-specific
// set dressing; here it spits directly from the boss brain's own
// position, still producing a live SpawnMissile thinker that flies at
// the target and can be intercepted.
func aBrainSpit(m *MapObject, w World) {
	if w == nil {
		return
	}
	target := w.ResolveTarget(m.Target)
	if target == nil {
		target = w.FindPlayerTarget(m)
	}
	if target == nil {
		return
	}
	w.SpawnMissile(m, target, KindRocket)
	w.PlaySound("bospit", m.X, m.Y)
}

// aFire drives the Icon of Sin's floating fire cuboid: it tracks its
// owner's (m.Tracer) x/y and bobs its z in a short sine cycle so the
// flame sprite appears to flicker while cube-spawn is in progress.
func aFire(m *MapObject, w World) {
	if w == nil {
		return
	}
	owner := w.ResolveTarget(m.Tracer)
	if owner == nil {
		w.RemoveBody(m)
		return
	}
	m.X, m.Y = owner.X, owner.Y
	m.Z = owner.Z + 4 + 4*math.Sin(float64(m.MoveCount))
	m.MoveCount++
}
