package render

import (
	"math"

	"github.com/doomcore/engine/internal/mapdata"
	"github.com/doomcore/engine/internal/pic"
)

// walkBSP recurses front-to-back from the player's subsector (spec
// §4.6), following render-soft/src/bsp.rs's render_subsector/
// render_node split: at a leaf, draw its segs; at a node, descend the
// near child first, then frustum-test the far child's bbox before
// descending it.
func (r *Renderer) walkBSP(m *mapdata.Map, picData *pic.Data, view View, nodeIdx int) {
	if nodeIdx&mapdata.LeafBit != 0 {
		r.drawSubsector(m, picData, view, nodeIdx&^mapdata.LeafBit)
		return
	}
	n := &m.Nodes[nodeIdx]
	side := n.PointSide(view.X, view.Y)

	r.walkBSP(m, picData, view, int(n.Children[side]))

	other := 1 - side
	if r.bboxInFrustum(view, n.BBox[other]) {
		r.walkBSP(m, picData, view, int(n.Children[other]))
	}
}

// bboxInFrustum implements spec §4.6's far-child frustum test: the two
// extreme angles of the box corners relative to the player must fall
// inside the 90-degree clipping fan, or every seg inside is behind or
// beside the view and can be skipped.
func (r *Renderer) bboxInFrustum(view View, bbox [4]float64) bool {
	bottom, top, left, right := bbox[mapdata.BBBottom], bbox[mapdata.BBTop], bbox[mapdata.BBLeft], bbox[mapdata.BBRight]

	var corners [4][2]float64
	switch {
	case view.X <= left:
		if view.Y >= top {
			corners = [4][2]float64{{left, top}, {right, top}, {left, bottom}, {right, bottom}}
		} else if view.Y <= bottom {
			corners = [4][2]float64{{left, bottom}, {right, bottom}, {left, top}, {right, top}}
		} else {
			corners = [4][2]float64{{left, top}, {left, bottom}, {right, top}, {right, bottom}}
		}
	case view.X >= right:
		if view.Y >= top {
			corners = [4][2]float64{{left, top}, {right, top}, {left, bottom}, {right, bottom}}
		} else if view.Y <= bottom {
			corners = [4][2]float64{{left, bottom}, {right, bottom}, {left, top}, {right, top}}
		} else {
			corners = [4][2]float64{{right, top}, {right, bottom}, {left, top}, {left, bottom}}
		}
	default:
		if view.Y >= top {
			corners = [4][2]float64{{left, top}, {right, top}, {left, bottom}, {right, bottom}}
		} else if view.Y <= bottom {
			corners = [4][2]float64{{left, bottom}, {right, bottom}, {left, top}, {right, top}}
		} else {
			return true // view point is inside the box
		}
	}

	a1 := normalizeAngle(math.Atan2(corners[0][1]-view.Y, corners[0][0]-view.X) - view.Angle)
	a2 := normalizeAngle(math.Atan2(corners[1][1]-view.Y, corners[1][0]-view.X) - view.Angle)

	const half = fieldOfView / 2
	if a1 > half && a2 > half {
		return false
	}
	if a1 < -half && a2 < -half {
		return false
	}
	return true
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// drawSubsector projects its sector's floor/ceiling into visplanes and
// walks each of its segs in turn (spec §4.6 step 1).
func (r *Renderer) drawSubsector(m *mapdata.Map, picData *pic.Data, view View, subIdx int) {
	ss := &m.SubSectors[subIdx]
	sec := &m.Sectors[ss.Sector]

	var floorPlane, ceilPlane *visplane
	if sec.FloorHeight < view.Z {
		floorPlane = r.findPlane(sec.FloorHeight, sec.FloorFlat, false, sec.LightLevel)
	}
	if sec.CeilingHeight > view.Z || sec.CeilingFlat == picData.SkyFlatName {
		ceilPlane = r.findPlane(sec.CeilingHeight, sec.CeilingFlat, true, sec.LightLevel)
	}

	for i := ss.StartSeg; i < ss.StartSeg+ss.SegCount; i++ {
		r.addLine(m, picData, view, i, floorPlane, ceilPlane)
	}
}

// addLine projects one seg into screen space and dispatches it to the
// solid or portal clipper (spec §4.6).
func (r *Renderer) addLine(m *mapdata.Map, picData *pic.Data, view View, segIdx int, floorPlane, ceilPlane *visplane) {
	seg := &m.Segs[segIdx]
	v1, v2 := m.Vertexes[seg.V1], m.Vertexes[seg.V2]

	a1 := normalizeAngle(math.Atan2(v1.Y-view.Y, v1.X-view.X) - view.Angle)
	a2 := normalizeAngle(math.Atan2(v2.Y-view.Y, v2.X-view.X) - view.Angle)

	// Reject segs facing away from the viewer (normal points toward
	// the front sector; a seg only projects when v1 lies
	// counterclockwise of v2, at the larger angle, as seen from the
	// player, matching the native renderer's angle1 > angle2
	// orientation check).
	if a1 < a2 {
		return
	}

	const half = fieldOfView / 2
	if a1 < -half && a2 < -half {
		return
	}
	if a1 > half && a2 > half {
		return
	}
	if a1 > half {
		a1 = half
	}
	if a2 < -half {
		a2 = -half
	}

	x1 := angleToX(r, a1)
	x2 := angleToX(r, a2)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if x1 == x2 {
		return
	}

	backSector := -1
	if seg.BackSector >= 0 {
		backSector = seg.BackSector
	}
	frontSector := &m.Sectors[seg.FrontSector]

	solid := backSector < 0
	var back *mapdata.Sector
	if backSector >= 0 {
		back = &m.Sectors[backSector]
		if back.CeilingHeight <= frontSector.FloorHeight || back.FloorHeight >= frontSector.CeilingHeight {
			solid = true // fully occluding two-sided line (closed door etc.)
		}
		if back.CeilingHeight == frontSector.CeilingHeight && back.FloorHeight == frontSector.FloorHeight &&
			m.Sidedefs[seg.Sidedef].MidTexture == "" {
			return // nothing to draw and nothing to occlude
		}
	}

	r.storeWallRange(m, picData, view, segIdx, x1, x2, frontSector, back, floorPlane, ceilPlane)

	if solid {
		r.clipSolid(x1, x2)
	} else {
		r.clipPortal(x1, x2)
	}
}

// angleToX projects a view-relative angle onto the screen-x axis as
// halfWidth - tan(angle)*distToScreen, clamped to [0, Width] (spec
// §4.7).
func angleToX(r *Renderer, angle float64) int {
	t := math.Tan(angle)
	x := int(r.halfWidth - t*r.distToScreen)
	if x < 0 {
		x = 0
	}
	if x > r.Width {
		x = r.Width
	}
	return x
}

// clipSolid implements the bookkeeping half of spec §4.6's clip_solid:
// it merges [x1,x2] into the sorted solidsegs list. It draws nothing;
// storeWallRange has already drawn the seg, and later segs are hidden
// by the ceilClip/floorClip arrays it closed.
func (r *Renderer) clipSolid(x1, x2 int) {
	i := 0
	for i < len(r.solidsegs) && r.solidsegs[i].last < x1-1 {
		i++
	}

	if x1 < r.solidsegs[i].first {
		if x2 < r.solidsegs[i].first-1 {
			r.insertSolidSeg(i, x1, x2)
			return
		}
		r.solidsegs[i].first = x1
	}

	if x2 <= r.solidsegs[i].last {
		return
	}

	start := i
	for i+1 < len(r.solidsegs) && x2 >= r.solidsegs[i+1].first-1 {
		i++
	}
	r.solidsegs[start].last = r.solidsegs[i].last
	if r.solidsegs[start].last < x2 {
		r.solidsegs[start].last = x2
	}
	if i > start {
		r.solidsegs = append(r.solidsegs[:start+1], r.solidsegs[i+1:]...)
	}
}

func (r *Renderer) insertSolidSeg(at, first, last int) {
	r.solidsegs = append(r.solidsegs, solidSeg{})
	copy(r.solidsegs[at+1:], r.solidsegs[at:])
	r.solidsegs[at] = solidSeg{first: first, last: last}
}

// clipPortal is the two-sided counterpart of clipSolid: it leaves
// solidsegs unchanged, so later geometry still shows through the
// opening.
func (r *Renderer) clipPortal(x1, x2 int) {
	// Nothing to record: storeWallRange has already drawn this seg's
	// columns within the current ceilClip/floorClip bounds and narrowed
	// them to the opening.
}
