package level

import (
	"encoding/binary"
	"math"

	"github.com/doomcore/engine/internal/mobj"
	"github.com/doomcore/engine/internal/think"
	"github.com/doomcore/engine/internal/wad"
)

// thingRecord mirrors the THINGS lump's 10-byte record (spec §6.1).
type thingRecord struct {
	X, Y, Angle, Type, Flags int16
}

const (
	thingFlagEasy = 1 << iota
	thingFlagMedium
	thingFlagHard
	thingFlagAmbush
	thingFlagMultiplayerOnly
)

// doomedNumKind maps a THINGS doomednum to the Kind this engine's
// Bestiary/Pickups tables can spawn — the subset of the classic thing-
// type numbering this small bestiary (internal/mobj/bestiary.go,
// bestiary_items.go) covers.
var doomedNumKind = map[int16]mobj.Kind{
	3004: mobj.KindZombieman,
	3001: mobj.KindImp,
	3002: mobj.KindDemon,
	2035: mobj.KindBarrel,
	2011: mobj.KindStimpack,
	2012: mobj.KindMedikit,
	2007: mobj.KindClip,
	2001: mobj.KindShotgun,
	2049: mobj.KindShellBox,
	2013: mobj.KindSoulsphere,
	2015: mobj.KindArmorBonus,
	8:    mobj.KindBackpack,
	5:    mobj.KindBlueCard,
}

func isPlayerStart(doomedNum int16) (playerIndex int, ok bool) {
	if doomedNum >= 1 && doomedNum <= 4 {
		return int(doomedNum - 1), true
	}
	return 0, false
}

// LoadThings parses mapName's THINGS lump, recording player starts and
// spawning every monster/item doomedNumKind recognizes (spec §6.1,
// §4.1's "push" into the pool).
func (lv *Level) LoadThings(f *wad.File, mapName string) error {
	lumps, err := f.MapLumps(mapName)
	if err != nil {
		return err
	}
	raw, err := f.Read(lumps["THINGS"])
	if err != nil {
		return err
	}

	const rec = 10
	for o := 0; o+rec <= len(raw); o += rec {
		t := thingRecord{
			X:     int16(binary.LittleEndian.Uint16(raw[o : o+2])),
			Y:     int16(binary.LittleEndian.Uint16(raw[o+2 : o+4])),
			Angle: int16(binary.LittleEndian.Uint16(raw[o+4 : o+6])),
			Type:  int16(binary.LittleEndian.Uint16(raw[o+6 : o+8])),
			Flags: int16(binary.LittleEndian.Uint16(raw[o+8 : o+10])),
		}
		angle := float64(t.Angle) * math.Pi / 180

		if idx, ok := isPlayerStart(t.Type); ok {
			if idx < MaxPlayers {
				lv.playerStarts[idx] = startPoint{X: float64(t.X), Y: float64(t.Y), Angle: angle, Set: true}
			}
			continue
		}
		if t.Flags&thingFlagMultiplayerOnly != 0 {
			continue
		}
		kind, ok := doomedNumKind[t.Type]
		if !ok {
			continue
		}
		lv.SpawnThing(kind, float64(t.X), float64(t.Y), angle, t.Flags&thingFlagAmbush != 0)
	}
	return nil
}

// SpawnThing creates a MapObject of kind at (x,y), drops it onto its
// destination sector's floor (or hangs it from the ceiling for
// FlagSpawnCeiling kinds), pushes it into the ThinkerPool, links it
// into that sector's thing-list, and runs its spawn-state action
// (spec §4.1's push, §4.4 step 3, §3's sector thing-list).
func (lv *Level) SpawnThing(kind mobj.Kind, x, y, angle float64, ambush bool) *mobj.MapObject {
	bi := mobj.Bestiary[kind]
	m := &mobj.MapObject{
		X: x, Y: y, Angle: angle,
		Radius: bi.Radius, Height: bi.Height,
		Health: bi.Health, Kind: kind, Flags: bi.Flags,
		SpawnX: x, SpawnY: y, SpawnAngle: angle, SpawnKind: kind, HasSpawnPoint: true,
	}
	if ambush {
		m.Flags |= mobj.FlagAmbush
	}
	if _, ok := lv.Pool.Push(think.VariantMapObject, m); !ok {
		lv.logDrop("MapObject")
		return nil
	}
	if lv.BossKinds[kind] {
		lv.bossKindsAlive[kind]++
	}

	sub := lv.MapData.PointInSubsector(x, y)
	sec := &lv.MapData.Sectors[lv.MapData.SubSectors[sub].Sector]
	if bi.Flags.Has(mobj.FlagSpawnCeiling) {
		m.Z = sec.CeilingHeight - m.Height
	} else {
		m.Z = sec.FloorHeight
	}
	lv.linkThing(m, sub)
	m.SetState(bi.SpawnState, lv)
	return m
}
