package level

import (
	"github.com/doomcore/engine/internal/mapdata"
	"github.com/doomcore/engine/internal/mobj"
)

// Map satisfies internal/movement's Level interface.
func (lv *Level) Map() *mapdata.Map { return lv.MapData }

func (lv *Level) thingAt(idx int) *mobj.MapObject {
	t, _ := lv.Pool.PayloadAt(idx).(*mobj.MapObject)
	return t
}

// linkThing threads thing into sector sec's intrusive thing-list head
// (spec §3's "thing-list head, intrusive doubly-linked list").
func (lv *Level) linkThing(thing *mobj.MapObject, sub int) {
	sec := lv.MapData.SubSectors[sub].Sector
	thing.SubSector = sub
	thing.Sector = sec
	thing.FloorZ = lv.MapData.Sectors[sec].FloorHeight
	thing.CeilingZ = lv.MapData.Sectors[sec].CeilingHeight

	head := lv.MapData.Sectors[sec].ThingListHead
	thing.SectorNext = head
	thing.SectorPrev = -1
	if head >= 0 {
		if other := lv.thingAt(head); other != nil {
			other.SectorPrev = int(thing.Handle().Index)
		}
	}
	lv.MapData.Sectors[sec].ThingListHead = int(thing.Handle().Index)
}

// unlinkThing removes thing from its current sector's thing-list and
// resets its own SectorNext/SectorPrev to -1, leaving Sector/SubSector
// untouched (the caller either relinks immediately or is removing the
// thing entirely).
func (lv *Level) unlinkThing(thing *mobj.MapObject) {
	sec := &lv.MapData.Sectors[thing.Sector]
	idx := int(thing.Handle().Index)

	if thing.SectorPrev >= 0 {
		if prev := lv.thingAt(thing.SectorPrev); prev != nil {
			prev.SectorNext = thing.SectorNext
		}
	} else if sec.ThingListHead == idx {
		sec.ThingListHead = thing.SectorNext
	}
	if thing.SectorNext >= 0 {
		if next := lv.thingAt(thing.SectorNext); next != nil {
			next.SectorPrev = thing.SectorPrev
		}
	}
	thing.SectorNext, thing.SectorPrev = -1, -1
}

// ThingsInSector walks sector secIdx's intrusive thing-list, invoking
// fn on each live MapObject until fn returns false.
func (lv *Level) ThingsInSector(secIdx int, fn func(*mobj.MapObject) bool) {
	if secIdx < 0 || secIdx >= len(lv.MapData.Sectors) {
		return
	}
	idx := lv.MapData.Sectors[secIdx].ThingListHead
	for idx >= 0 {
		t := lv.thingAt(idx)
		if t == nil {
			break
		}
		next := t.SectorNext
		if !fn(t) {
			return
		}
		idx = next
	}
}

// Relink moves thing to (x,y), re-homing it into the destination
// subsector's sector thing-list (spec §4.3 try-move step 4: "commit:
// unlink from sector list, assign subsector, link").
func (lv *Level) Relink(thing *mobj.MapObject, x, y float64) {
	newSub := lv.MapData.PointInSubsector(x, y)
	newSec := lv.MapData.SubSectors[newSub].Sector
	if thing.Sector != newSec {
		lv.unlinkThing(thing)
		thing.X, thing.Y = x, y
		lv.linkThing(thing, newSub)
	} else {
		thing.X, thing.Y = x, y
		thing.SubSector = newSub
	}
}
