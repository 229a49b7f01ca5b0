// Package movement implements try-move/slide-move collision, hitscan
// attacks, radius damage, and sight checks, all driven by BSP
// traversal over a level's geometry (spec §4.3), following the
// BSP-box intercept pattern in render-soft/src/bsp.rs's
// bb_extents_in_fov and gameplay's BSPTrace.
package movement

import "github.com/doomcore/engine/internal/mapdata"

// boxIntersects reports whether the AABB [xl,xh]x[yl,yh] overlaps a
// node's child bounding box, stored as [bottom,top,left,right].
func boxIntersects(xl, xh, yl, yh float64, bbox [4]float64) bool {
	bottom, top, left, right := bbox[mapdata.BBBottom], bbox[mapdata.BBTop], bbox[mapdata.BBLeft], bbox[mapdata.BBRight]
	if xh < left || xl > right {
		return false
	}
	if yh < bottom || yl > top {
		return false
	}
	return true
}

// subsectorsInBox walks the BSP, collecting every subsector index
// whose node bounding box overlaps the AABB. Both children are
// descended whenever the box isn't cleanly on one side, since a
// moving thing's radius can straddle a partition line.
func subsectorsInBox(m *mapdata.Map, nodeIdx int, xl, xh, yl, yh float64, out *[]int) {
	if nodeIdx&mapdata.LeafBit != 0 {
		*out = append(*out, nodeIdx&^mapdata.LeafBit)
		return
	}
	n := &m.Nodes[nodeIdx]
	for side := 0; side < 2; side++ {
		if !boxIntersects(xl, xh, yl, yh, n.BBox[side]) {
			continue
		}
		subsectorsInBox(m, n.ChildIndex(side), xl, xh, yl, yh, out)
	}
}

// linedefsNear returns the deduplicated set of linedef indices
// bordering any subsector the AABB around (x,y,radius) overlaps —
// spec §4.3's "walk BSP to enumerate candidate blocks/subsectors".
func linedefsNear(m *mapdata.Map, x, y, radius float64) []int {
	var subs []int
	subsectorsInBox(m, m.StartNode, x-radius, x+radius, y-radius, y+radius, &subs)

	seen := make(map[int]bool)
	var lines []int
	for _, si := range subs {
		ss := &m.SubSectors[si]
		for i := ss.StartSeg; i < ss.StartSeg+ss.SegCount; i++ {
			li := m.Segs[i].Linedef
			if !seen[li] {
				seen[li] = true
				lines = append(lines, li)
			}
		}
	}
	return lines
}

// lineBoxOverlap reports whether linedef li's bounding box overlaps the
// AABB [xl,xh]x[yl,yh], used to reject linedefs that are nowhere near
// the thing: a thing can share a subsector with a wall on the far side
// of the room, so the BSP box query alone over-approximates.
func lineBoxOverlap(m *mapdata.Map, li int, xl, xh, yl, yh float64) bool {
	l := &m.Linedefs[li]
	v1, v2 := m.Vertexes[l.V1], m.Vertexes[l.V2]
	lxl, lxh := v1.X, v2.X
	if lxl > lxh {
		lxl, lxh = lxh, lxl
	}
	lyl, lyh := v1.Y, v2.Y
	if lyl > lyh {
		lyl, lyh = lyh, lyl
	}
	return lxh >= xl && lxl <= xh && lyh >= yl && lyl <= yh
}
