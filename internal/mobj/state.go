package mobj

import "github.com/doomcore/engine/internal/think"

// ActionFn is a state's associated Actor function (spec §9: "plain
// data; a tag selects which action closure runs"), generalizing the
// source's function-pointer-per-state table: each State carries its
// ActionFn, and setState calls it directly on entering the state.
type ActionFn func(m *MapObject, w World)

// World is the subset of level operations AI actions need, kept as an
// interface so internal/mobj does not import internal/level (which
// would create an import cycle — level owns the ThinkerPool that
// stores MapObjects).
type World interface {
	SpawnMissile(source, target *MapObject, kind Kind) *MapObject
	SpawnPuff(x, y, z float64)
	SpawnBlood(x, y, z float64, damage int)
	LineAttack(source *MapObject, angle, distance, slope float64, damage int)
	RadiusAttack(source *MapObject, damage int)
	NoiseAlert(target, emitter *MapObject)
	CheckSight(from, to *MapObject) bool
	PlaySound(sfx string, x, y float64)
	Random() int // 0..255 uniform, the classic DOOM RNG table equivalent
	RemoveBody(m *MapObject)
	TryMove(m *MapObject, x, y float64) bool
	NightmareRespawn(m *MapObject)
	BossDeath(m *MapObject)

	// ResolveTarget dereferences a stable thinker handle (e.g. a
	// MapObject's Target/Tracer field) to its live MapObject, or nil.
	ResolveTarget(h think.Handle) *MapObject
	// FindPlayerTarget does the round-robin player search a_look uses.
	FindPlayerTarget(m *MapObject) *MapObject
}

// StateID indexes into the shared State table.
type StateID int

const StateNull StateID = 0

// State is one entry of the static state table (spec §4.4 step 3).
type State struct {
	Sprite    string
	Frame     int
	Tics      int
	Action    ActionFn
	Next      StateID
}

// States is the global, read-only state table populated at init time
// from the bestiary defined in bestiary.go. It plays the role of the
// source's per-mobjtype state arrays, flattened into one table indexed
// by StateID so MapObject only needs to store a single integer. Entry
// 0 is an empty placeholder so that no registered state gets the
// StateNull id.
var States = []State{{}}

func registerStates(s []State) []StateID {
	base := StateID(len(States))
	States = append(States, s...)
	ids := make([]StateID, len(s))
	for i := range s {
		ids[i] = base + StateID(i)
	}
	return ids
}
