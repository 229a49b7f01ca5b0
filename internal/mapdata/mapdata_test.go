package mapdata

import "testing"

// simpleMap builds a single-split BSP: one node partitioning on the
// vertical line x=0 (DX=0, DY=1 so the partition runs along +y),
// subsector 0 on the right (x>0) and subsector 1 on the left (x<0),
// matching the right/front convention PointSide documents.
func simpleMap() *Map {
	return &Map{
		Nodes: []Node{
			{X: 0, Y: 0, DX: 0, DY: 1, Children: [2]int32{int32(LeafBit | 0), int32(LeafBit | 1)}},
		},
		SubSectors: []SubSector{{Sector: 0}, {Sector: 1}},
		StartNode:  0,
	}
}

func TestPointInSubsectorDeterministic(t *testing.T) {
	m := simpleMap()
	cases := []struct {
		x, y float64
		want int
	}{
		{10, 0, 0},
		{10, 100, 0},
		{-10, 0, 1},
		{-10, -100, 1},
		// spec §8: a point exactly on the partition line goes to the
		// front/right child (subsector 0 here).
		{0, 0, 0},
		{0, 50, 0},
	}
	for _, c := range cases {
		got := m.PointInSubsector(c.x, c.y)
		if got != c.want {
			t.Errorf("PointInSubsector(%v,%v) = %d, want %d", c.x, c.y, got, c.want)
		}
		// Pure function of (p, map): repeated calls must agree.
		if again := m.PointInSubsector(c.x, c.y); again != got {
			t.Errorf("PointInSubsector(%v,%v) not deterministic: %d then %d", c.x, c.y, got, again)
		}
	}
}

func TestLineOpeningOneSidedBlocks(t *testing.T) {
	m := &Map{
		Sectors:  []Sector{{FloorHeight: 0, CeilingHeight: 128}},
		Sidedefs: []Sidedef{{Sector: 0}},
		Linedefs: []Linedef{{FrontSide: 0, BackSide: -1}},
	}
	op := m.LineOpening(0)
	if !op.Blocking {
		t.Fatal("a one-sided linedef must report a blocking opening")
	}
}

func TestLineOpeningTwoSided(t *testing.T) {
	m := &Map{
		Sectors: []Sector{
			{FloorHeight: 0, CeilingHeight: 128},   // front
			{FloorHeight: 16, CeilingHeight: 120},  // back
		},
		Sidedefs: []Sidedef{{Sector: 0}, {Sector: 1}},
		Linedefs: []Linedef{{FrontSide: 0, BackSide: 1}},
	}
	op := m.LineOpening(0)
	if op.Blocking {
		t.Fatal("a two-sided linedef must not report a blocking opening")
	}
	if op.Floor != 16 {
		t.Errorf("opening floor = %v, want max(0,16)=16", op.Floor)
	}
	if op.Ceiling != 120 {
		t.Errorf("opening ceiling = %v, want min(128,120)=120", op.Ceiling)
	}
	if op.LowFloor != 0 {
		t.Errorf("opening low floor = %v, want min(0,16)=0", op.LowFloor)
	}
}
