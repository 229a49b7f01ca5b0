package render

import "testing"

// TestMarkPlaneColumnExtendsSamePlaneForDisjointColumns is the common
// case from spec §8's pillar scenario: two subsectors sharing a
// (height,picnum,light) key but writing disjoint x columns stay on the
// same visplane instance, just widening its minX/maxX span.
func TestMarkPlaneColumnExtendsSamePlaneForDisjointColumns(t *testing.T) {
	r := NewRenderer(320, 200)
	p := r.findPlane(0, "FLOOR4_8", false, 128)

	r.markPlaneColumn(p, 10, 90, 110)
	r.markPlaneColumn(p, 200, 95, 105)

	if len(r.planes) != 1 {
		t.Fatalf("disjoint columns on the same key should not split, got %d planes", len(r.planes))
	}
	if p.top[10] != 90 || p.bottom[10] != 110 {
		t.Fatalf("first column overwritten: top=%d bottom=%d", p.top[10], p.bottom[10])
	}
	if p.top[200] != 95 || p.bottom[200] != 105 {
		t.Fatalf("second column wrong: top=%d bottom=%d", p.top[200], p.bottom[200])
	}
	if p.minX != 10 || p.maxX != 200 {
		t.Fatalf("plane bounds not widened: minX=%d maxX=%d", p.minX, p.maxX)
	}
}

// TestMarkPlaneColumnSplitsOnConflictingColumn is spec §8's pillar
// scenario proper: two coplanar floor stretches separated by a solid
// pillar project to overlapping screen columns with different visible
// spans at the same x. The second write must not clobber the first -
// it must land on a second visplane sharing the same key.
func TestMarkPlaneColumnSplitsOnConflictingColumn(t *testing.T) {
	r := NewRenderer(320, 200)
	p := r.findPlane(0, "FLOOR4_8", false, 128)

	r.markPlaneColumn(p, 50, 90, 110)
	r.markPlaneColumn(p, 50, 20, 30)

	if len(r.planes) != 2 {
		t.Fatalf("conflicting column write should split into a second visplane, got %d planes", len(r.planes))
	}
	if p.top[50] != 90 || p.bottom[50] != 110 {
		t.Fatalf("original plane's column was clobbered: top=%d bottom=%d", p.top[50], p.bottom[50])
	}

	q := r.planes[1]
	if q.top[50] != 20 || q.bottom[50] != 30 {
		t.Fatalf("split plane has wrong column data: top=%d bottom=%d", q.top[50], q.bottom[50])
	}
	if q.height != p.height || q.picnum != p.picnum || q.isCeiling != p.isCeiling || q.lightLevel != p.lightLevel {
		t.Fatalf("split plane does not share the original's key: %+v vs %+v", q, p)
	}
}

// TestMarkPlaneColumnReusesExistingSibling checks that once a split has
// happened, a later conflicting write at a different column reuses the
// already-split sibling instead of fragmenting into a third plane.
func TestMarkPlaneColumnReusesExistingSibling(t *testing.T) {
	r := NewRenderer(320, 200)
	p := r.findPlane(0, "FLOOR4_8", false, 128)

	r.markPlaneColumn(p, 50, 90, 110) // near stretch, column 50
	r.markPlaneColumn(p, 50, 20, 30)  // far stretch, column 50 -> splits off a sibling
	r.markPlaneColumn(p, 51, 90, 110) // near stretch continues at column 51, still free on p
	r.markPlaneColumn(p, 51, 20, 30)  // far stretch continues at column 51, conflicts again

	if len(r.planes) != 2 {
		t.Fatalf("the far stretch should keep reusing the same sibling, got %d planes", len(r.planes))
	}
	q := r.planes[1]
	if q.top[50] != 20 || q.bottom[50] != 30 || q.top[51] != 20 || q.bottom[51] != 30 {
		t.Fatalf("sibling plane missing far-stretch columns: %+v", q)
	}
	if p.top[51] != 90 || p.bottom[51] != 110 {
		t.Fatalf("near stretch column 51 was not recorded on the original plane: top=%d bottom=%d", p.top[51], p.bottom[51])
	}
}
