package level

import (
	"math"

	"github.com/doomcore/engine/internal/mapdata"
	"github.com/doomcore/engine/internal/mobj"
	"github.com/doomcore/engine/internal/think"
)

// Linedef special numbers this engine recognizes (spec §4.4's sector
// movers). The numbering borrows classic DOOM's for familiarity but
// this engine's behavior set is a representative slice, not the full
// ~80-entry table.
const (
	specialDoorManual                = 1
	specialPlatformDownWaitUp        = 62
	specialFloorRaiseToLowestCeiling = 5
)

const useRange = 64.0

// useLines finds the nearest special linedef within useRange that
// body is facing and activates it (spec §4.4's "use" edge case).
func (lv *Level) useLines(body *mobj.MapObject) {
	m := lv.MapData
	bestDist := useRange
	bestLi := -1
	for li := range m.Linedefs {
		l := &m.Linedefs[li]
		if l.Special == 0 {
			continue
		}
		v1, v2 := m.Vertexes[l.V1], m.Vertexes[l.V2]
		mx, my := (v1.X+v2.X)/2, (v1.Y+v2.Y)/2
		dx, dy := mx-body.X, my-body.Y
		dist := math.Hypot(dx, dy)
		if dist > bestDist {
			continue
		}
		facing := math.Cos(body.Angle)*dx + math.Sin(body.Angle)*dy
		if facing <= 0 {
			continue
		}
		bestDist, bestLi = dist, li
	}
	if bestLi >= 0 {
		lv.activateLinedef(bestLi)
	}
}

func (lv *Level) activateLinedef(li int) {
	l := &lv.MapData.Linedefs[li]
	switch l.Special {
	case specialDoorManual:
		lv.activateDoor(l)
	case specialPlatformDownWaitUp:
		lv.forEachTaggedSector(l.Tag, lv.activatePlatform)
	case specialFloorRaiseToLowestCeiling:
		lv.forEachTaggedSector(l.Tag, lv.activateFloorRaise)
	}
}

// activateDoor spawns (or, on a repeat use, reverses) a VerticalDoor
// on the line's back sector (spec §8 scenario 2).
func (lv *Level) activateDoor(l *mapdata.Linedef) {
	if !l.TwoSided() {
		return
	}
	secIdx := lv.MapData.Sidedefs[l.BackSide].Sector
	sec := &lv.MapData.Sectors[secIdx]

	if sec.SpecialData >= 0 {
		if d, ok := lv.Pool.PayloadAt(sec.SpecialData).(*VerticalDoor); ok {
			d.Reverse()
		}
		return
	}

	v1, v2 := lv.MapData.Vertexes[l.V1], lv.MapData.Vertexes[l.V2]
	d := &VerticalDoor{
		Sector:       secIdx,
		X:            (v1.X + v2.X) / 2,
		Y:            (v1.Y + v2.Y) / 2,
		TopHeight:    lowestNeighborCeiling(lv.MapData, secIdx) - 4,
		BottomHeight: sec.FloorHeight,
		State:        doorRaising,
	}
	h, ok := lv.Pool.Push(think.VariantVerticalDoor, d)
	if !ok {
		lv.logDrop("door")
		return
	}
	sec.SpecialData = int(h.Index)
	lv.PlaySound("doropn", d.X, d.Y)
}

func (lv *Level) activatePlatform(secIdx int) {
	sec := &lv.MapData.Sectors[secIdx]
	if sec.SpecialData >= 0 {
		return
	}
	p := &Platform{
		Sector: secIdx,
		Low:    lowestNeighborFloor(lv.MapData, secIdx),
		High:   sec.FloorHeight,
		State:  platLowering,
	}
	h, ok := lv.Pool.Push(think.VariantPlatform, p)
	if !ok {
		lv.logDrop("platform")
		return
	}
	sec.SpecialData = int(h.Index)
}

func (lv *Level) activateFloorRaise(secIdx int) {
	sec := &lv.MapData.Sectors[secIdx]
	if sec.SpecialData >= 0 {
		return
	}
	target := lowestNeighborCeiling(lv.MapData, secIdx)
	direction := 1.0
	if target < sec.FloorHeight {
		direction = -1.0
	}
	fm := &FloorMove{Sector: secIdx, Target: target, Speed: 1.0, Direction: direction}
	h, ok := lv.Pool.Push(think.VariantFloorMove, fm)
	if !ok {
		lv.logDrop("floor mover")
		return
	}
	sec.SpecialData = int(h.Index)
}

// triggerTaggedFloors permanently lowers every tag-matching sector to
// its lowest neighboring floor, the generic form of classic DOOM's
// boss-death level action (spec §4.4, called from World.BossDeath).
func (lv *Level) triggerTaggedFloors(tag int) {
	lv.forEachTaggedSector(tag, func(secIdx int) {
		sec := &lv.MapData.Sectors[secIdx]
		if sec.SpecialData >= 0 {
			return
		}
		fm := &FloorMove{
			Sector:    secIdx,
			Target:    lowestNeighborFloor(lv.MapData, secIdx),
			Speed:     1.0,
			Direction: -1,
		}
		h, ok := lv.Pool.Push(think.VariantFloorMove, fm)
		if !ok {
			lv.logDrop("boss-death floor mover")
			return
		}
		sec.SpecialData = int(h.Index)
	})
}

func (lv *Level) forEachTaggedSector(tag int, fn func(secIdx int)) {
	for i := range lv.MapData.Sectors {
		if lv.MapData.Sectors[i].Tag == tag {
			fn(i)
		}
	}
}

// neighborSectors returns every sector reachable from secIdx across a
// two-sided line, the building block for the "raise/lower to
// neighboring floor/ceiling" sector-mover targets.
func neighborSectors(m *mapdata.Map, secIdx int) []int {
	seen := make(map[int]bool)
	var out []int
	for li := range m.Linedefs {
		l := &m.Linedefs[li]
		if !l.TwoSided() {
			continue
		}
		front := m.Sidedefs[l.FrontSide].Sector
		back := m.Sidedefs[l.BackSide].Sector
		var other int
		switch secIdx {
		case front:
			other = back
		case back:
			other = front
		default:
			continue
		}
		if !seen[other] {
			seen[other] = true
			out = append(out, other)
		}
	}
	return out
}

func lowestNeighborCeiling(m *mapdata.Map, secIdx int) float64 {
	best := m.Sectors[secIdx].CeilingHeight
	for i, n := range neighborSectors(m, secIdx) {
		c := m.Sectors[n].CeilingHeight
		if i == 0 || c < best {
			best = c
		}
	}
	return best
}

func lowestNeighborFloor(m *mapdata.Map, secIdx int) float64 {
	best := m.Sectors[secIdx].FloorHeight
	for i, n := range neighborSectors(m, secIdx) {
		f := m.Sectors[n].FloorHeight
		if i == 0 || f < best {
			best = f
		}
	}
	return best
}
