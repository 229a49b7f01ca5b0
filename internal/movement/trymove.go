package movement

import (
	"math"

	"github.com/doomcore/engine/internal/mapdata"
	"github.com/doomcore/engine/internal/mobj"
)

// Level is the subset of level state try-move/hitscan/sight need,
// kept as an interface so internal/movement never imports
// internal/level (which owns the ThinkerPool and sector thing-list
// heads that back these queries).
type Level interface {
	Map() *mapdata.Map
	// ThingsInSector walks the intrusive sector thing-list, calling fn
	// for each resident MapObject; fn returning false stops the walk.
	ThingsInSector(sector int, fn func(*mobj.MapObject) bool)
	// Relink moves thing from its current sector/subsector list to the
	// one at (x,y), updating MapObject.X/Y/Sector/SubSector. It does not
	// touch FloorZ/CeilingZ — TryMove sets those from its own running
	// tmfloorz/tmceilingz accumulation, which accounts for openings at
	// adjacent two-sided lines, not just the destination sector's bare
	// floor/ceiling.
	Relink(thing *mobj.MapObject, x, y float64)
}

const maxDropoff = 24.0

// TryMove attempts to relocate thing to (nx, ny), per spec §4.3's
// try-move algorithm: gather the line openings and thing cylinders
// touching thing's radius at the new position, reject on insufficient
// headroom or an un-steppable drop-off, otherwise commit the move and
// relink the thing into its new sector.
func TryMove(lv Level, thing *mobj.MapObject, nx, ny float64) bool {
	m := lv.Map()
	r := thing.Radius

	newSub := m.PointInSubsector(nx, ny)
	newSector := m.SubSectors[newSub].Sector
	sec := &m.Sectors[newSector]

	tmFloorZ := sec.FloorHeight
	tmCeilingZ := sec.CeilingHeight
	tmDropoffZ := sec.FloorHeight

	blocked := false
	lv.ThingsInSector(newSector, func(other *mobj.MapObject) bool {
		if other == thing {
			return true
		}
		if !other.Flags.Has(mobj.FlagSolid) {
			return true
		}
		dx, dy := nx-other.X, ny-other.Y
		if math.Abs(dx) >= r+other.Radius || math.Abs(dy) >= r+other.Radius {
			return true
		}
		if thing.Flags.Has(mobj.FlagMissile) || other.Flags.Has(mobj.FlagMissile) {
			blocked = true
			return false
		}
		if thing.Z+thing.Height < other.Z || other.Z+other.Height < thing.Z {
			return true // cylinders don't overlap vertically
		}
		blocked = true
		return false
	})
	if blocked {
		return false
	}

	for _, li := range linedefsNear(m, nx, ny, r) {
		if !lineBoxOverlap(m, li, nx-r, nx+r, ny-r, ny+r) {
			continue
		}
		l := &m.Linedefs[li]
		if !l.TwoSided() {
			return false
		}
		opening := m.LineOpening(li)
		if opening.Ceiling < tmCeilingZ {
			tmCeilingZ = opening.Ceiling
		}
		if opening.Floor > tmFloorZ {
			tmFloorZ = opening.Floor
		}
		if opening.LowFloor < tmDropoffZ {
			tmDropoffZ = opening.LowFloor
		}
	}

	if tmCeilingZ-tmFloorZ < thing.Height {
		return false
	}
	if tmCeilingZ-thing.Z < thing.Height {
		return false
	}
	if !thing.Flags.Has(mobj.FlagDropOff) && tmFloorZ-tmDropoffZ > maxDropoff {
		return false
	}

	lv.Relink(thing, nx, ny)
	thing.FloorZ, thing.CeilingZ = tmFloorZ, tmCeilingZ
	return true
}
