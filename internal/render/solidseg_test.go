package render

import (
	"math"
	"testing"
)

// assertSolidSegInvariant checks spec §8's solid-seg list invariant:
// sorted, non-overlapping, sentinel-bracketed intervals.
func assertSolidSegInvariant(t *testing.T, segs []solidSeg) {
	t.Helper()
	for i := 1; i < len(segs); i++ {
		if segs[i].first <= segs[i-1].last {
			t.Fatalf("solidsegs not sorted/non-overlapping at %d: %+v then %+v", i, segs[i-1], segs[i])
		}
	}
}

func TestClipSolidMaintainsInvariant(t *testing.T) {
	r := NewRenderer(320, 200)
	r.beginFrame()
	assertSolidSegInvariant(t, r.solidsegs)

	r.clipSolid(10, 20)
	assertSolidSegInvariant(t, r.solidsegs)

	// Overlapping/adjacent range merges into the existing interval
	// rather than creating an overlap.
	r.clipSolid(15, 30)
	assertSolidSegInvariant(t, r.solidsegs)

	// A disjoint range elsewhere inserts a new interval.
	r.clipSolid(100, 110)
	assertSolidSegInvariant(t, r.solidsegs)

	// A range spanning both existing intervals merges them into one,
	// and entries between them must be compacted away.
	r.clipSolid(0, 200)
	assertSolidSegInvariant(t, r.solidsegs)
}

// TestClipSolidTerminatesWithoutCrossingSentinels guards against the
// crunch loop walking an inserted/merged range past the bracketing
// sentinels (spec §8 boundary behavior). A range adjacent to a sentinel
// merges into it, so only the sentinels' outer bounds stay fixed.
func TestClipSolidTerminatesWithoutCrossingSentinels(t *testing.T) {
	r := NewRenderer(64, 48)
	r.beginFrame()

	for x := 0; x < r.Width; x += 3 {
		r.clipSolid(x, x+2)
		assertSolidSegInvariant(t, r.solidsegs)
	}

	first := r.solidsegs[0]
	last := r.solidsegs[len(r.solidsegs)-1]
	if first.first != math.MinInt32 {
		t.Fatalf("left sentinel's lower bound was moved: %+v", first)
	}
	if last.last != math.MaxInt32 {
		t.Fatalf("right sentinel's upper bound was moved: %+v", last)
	}
}
