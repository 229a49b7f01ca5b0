package movement

import (
	"math"

	"github.com/doomcore/engine/internal/mapdata"
	"github.com/doomcore/engine/internal/mobj"
)

// SlideMove implements spec §4.3's slide-move: on a failed try-move,
// find the blocking linedef with the smallest fractional intercept
// along the attempted velocity, project velocity onto that line, and
// retry up to 3 times; velocity is zeroed after the third failure.
func SlideMove(lv Level, thing *mobj.MapObject, vx, vy float64) {
	for attempt := 0; attempt < 3; attempt++ {
		nx, ny := thing.X+vx, thing.Y+vy
		if TryMove(lv, thing, nx, ny) {
			return
		}

		li, frac := firstBlockingLine(lv.Map(), thing.X, thing.Y, vx, vy, thing.Radius)
		if li < 0 {
			break
		}
		vx, vy = projectOntoLine(lv.Map(), li, vx, vy)
		_ = frac
	}
	thing.VX, thing.VY = 0, 0
}

// firstBlockingLine returns the blocking linedef with the smallest
// intercept fraction along (vx,vy) from (x,y), or -1 if none found
// within the swept AABB.
func firstBlockingLine(m *mapdata.Map, x, y, vx, vy, radius float64) (int, float64) {
	nx, ny := x+vx, y+vy
	xl, xh := math.Min(x, nx)-radius, math.Max(x, nx)+radius
	yl, yh := math.Min(y, ny)-radius, math.Max(y, ny)+radius

	best := -1
	bestFrac := math.Inf(1)
	for _, li := range linedefsNear(m, x, y, radius+math.Hypot(vx, vy)) {
		if !lineBoxOverlap(m, li, xl, xh, yl, yh) {
			continue
		}
		l := &m.Linedefs[li]
		if l.TwoSided() {
			op := m.LineOpening(li)
			if op.Ceiling-op.Floor > 0 {
				continue // passable opening, not a blocker for slide purposes
			}
		}
		v1, v2 := m.Vertexes[l.V1], m.Vertexes[l.V2]
		frac, ok := rayLineFrac(x, y, vx, vy, v1.X, v1.Y, v2.X, v2.Y)
		if !ok || frac < 0 || frac > 1 {
			continue
		}
		if frac < bestFrac {
			bestFrac = frac
			best = li
		}
	}
	return best, bestFrac
}

// rayLineFrac solves for the fraction t along (x,y)+t*(vx,vy) at which
// it crosses the segment (x1,y1)-(x2,y2).
func rayLineFrac(x, y, vx, vy, x1, y1, x2, y2 float64) (float64, bool) {
	dx, dy := x2-x1, y2-y1
	denom := vx*dy - vy*dx
	if denom == 0 {
		return 0, false
	}
	t := ((x1-x)*dy - (y1-y)*dx) / denom
	u := ((x1-x)*vy - (y1-y)*vx) / denom
	if u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// projectOntoLine removes the velocity component perpendicular to
// linedef li, leaving only the component parallel to the wall.
func projectOntoLine(m *mapdata.Map, li int, vx, vy float64) (float64, float64) {
	l := &m.Linedefs[li]
	v1, v2 := m.Vertexes[l.V1], m.Vertexes[l.V2]
	lx, ly := v2.X-v1.X, v2.Y-v1.Y
	length := math.Hypot(lx, ly)
	if length == 0 {
		return 0, 0
	}
	lx, ly = lx/length, ly/length
	dot := vx*lx + vy*ly
	return lx * dot, ly * dot
}
