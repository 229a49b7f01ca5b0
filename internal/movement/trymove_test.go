package movement

import (
	"testing"

	"github.com/doomcore/engine/internal/mapdata"
	"github.com/doomcore/engine/internal/mobj"
)

// fakeLevel is the minimal movement.Level for a single-sector map with
// no neighboring lines to clip against.
type fakeLevel struct {
	m           *mapdata.Map
	relinkCalls int
}

func (f *fakeLevel) Map() *mapdata.Map { return f.m }
func (f *fakeLevel) ThingsInSector(sector int, fn func(*mobj.MapObject) bool) {}
func (f *fakeLevel) Relink(thing *mobj.MapObject, x, y float64) {
	f.relinkCalls++
	thing.X, thing.Y = x, y
}

func singleSectorMap() *mapdata.Map {
	return &mapdata.Map{
		Sectors:    []mapdata.Sector{{FloorHeight: 0, CeilingHeight: 128, ThingListHead: -1}},
		SubSectors: []mapdata.SubSector{{Sector: 0}},
		StartNode:  mapdata.LeafBit | 0,
	}
}

// TestTryMoveZeroDeltaSucceeds exercises spec §8's round-trip
// property: try_move(p, p) succeeds, leaves the position unchanged,
// and takes floor/ceiling from the sector the thing stands in.
func TestTryMoveZeroDeltaSucceeds(t *testing.T) {
	lv := &fakeLevel{m: singleSectorMap()}
	thing := &mobj.MapObject{X: 32, Y: 32, Z: 0, Radius: 16, Height: 56, Flags: mobj.FlagSolid}

	ok := TryMove(lv, thing, thing.X, thing.Y)
	if !ok {
		t.Fatal("zero-delta try-move should always succeed")
	}
	if thing.X != 32 || thing.Y != 32 {
		t.Fatalf("zero-delta try-move perturbed position: (%v,%v)", thing.X, thing.Y)
	}
	if thing.FloorZ != 0 || thing.CeilingZ != 128 {
		t.Fatalf("unexpected floor/ceiling after zero-delta move: floor=%v ceil=%v", thing.FloorZ, thing.CeilingZ)
	}
}

// TestTryMoveRejectsInsufficientHeadroom checks the height-clearance
// failure mode from spec §4.3 step 4.
func TestTryMoveRejectsInsufficientHeadroom(t *testing.T) {
	lv := &fakeLevel{m: singleSectorMap()}
	thing := &mobj.MapObject{X: 32, Y: 32, Z: 0, Radius: 16, Height: 200, Flags: mobj.FlagSolid}

	if TryMove(lv, thing, 40, 40) {
		t.Fatal("try-move should fail when the thing is taller than the sector's clearance")
	}
	if lv.relinkCalls != 0 {
		t.Fatal("a rejected try-move must not relink the thing")
	}
}
