package movement

import (
	"math"

	"github.com/doomcore/engine/internal/mobj"
)

// shootHeight is how far above a thing's feet an attack originates,
// matching the original's z + height/2 + 8.
func shootHeight(m *mobj.MapObject) float64 {
	return m.Z + m.Height/2 + 8
}

// HitResult is what a hitscan, aim, or sight check found along its ray.
type HitResult struct {
	Hit      bool
	X, Y, Z  float64
	Thing    *mobj.MapObject
	Distance float64
	Slope    float64 // vertical slope at the hit point
}

type lineHit struct {
	frac float64
	li   int
}

func sortFracs(h []lineHit) {
	for i := 1; i < len(h); i++ {
		for j := i; j > 0 && h[j].frac < h[j-1].frac; j-- {
			h[j], h[j-1] = h[j-1], h[j]
		}
	}
}

// candidateLines gathers and sorts, nearest first, every linedef the
// swept AABB from (sx,sy) along (dx,dy) touches (spec §4.3's "walk BSP
// to enumerate candidate blocks/subsectors; for each linedef touching
// the AABB").
func candidateLines(lv Level, sx, sy, dx, dy float64) []lineHit {
	m := lv.Map()
	dist := math.Hypot(dx, dy)
	xl, xh := math.Min(sx, sx+dx), math.Max(sx, sx+dx)
	yl, yh := math.Min(sy, sy+dy), math.Max(sy, sy+dy)

	var hits []lineHit
	for _, li := range linedefsNear(m, sx, sy, dist) {
		if !lineBoxOverlap(m, li, xl, xh, yl, yh) {
			continue
		}
		l := &m.Linedefs[li]
		v1, v2 := m.Vertexes[l.V1], m.Vertexes[l.V2]
		frac, ok := rayLineFrac(sx, sy, dx, dy, v1.X, v1.Y, v2.X, v2.Y)
		if !ok || frac < 0 || frac > 1 {
			continue
		}
		hits = append(hits, lineHit{frac, li})
	}
	sortFracs(hits)
	return hits
}

// candidateThings gathers every shootable thing in a sector touched by
// the swept AABB, deduplicated by sector.
func candidateThings(lv Level, sx, sy, dx, dy float64) []*mobj.MapObject {
	m := lv.Map()
	xl, xh := math.Min(sx, sx+dx), math.Max(sx, sx+dx)
	yl, yh := math.Min(sy, sy+dy), math.Max(sy, sy+dy)

	var subs []int
	subsectorsInBox(m, m.StartNode, xl, xh, yl, yh, &subs)

	seen := make(map[int]bool)
	var things []*mobj.MapObject
	for _, si := range subs {
		sec := m.SubSectors[si].Sector
		if seen[sec] {
			continue
		}
		seen[sec] = true
		lv.ThingsInSector(sec, func(t *mobj.MapObject) bool {
			things = append(things, t)
			return true
		})
	}
	return things
}

// aimTrace is the aim-only pass (gameplay's SubSectTraverse): it
// accumulates top/bottom slope bounds as the ray crosses openings and
// reports the first shootable thing whose vertical footprint fits
// inside the bounds reached so far, without spawning any effect.
func aimTrace(lv Level, source *mobj.MapObject, dx, dy float64) HitResult {
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return HitResult{}
	}
	shootZ := shootHeight(source)
	sx, sy := source.X, source.Y
	m := lv.Map()

	topSlope, botSlope := 100.0/160.0, -100.0/160.0

	lines := candidateLines(lv, sx, sy, dx, dy)
	things := candidateThings(lv, sx, sy, dx, dy)

	li := 0
	for _, t := range sortedByProjection(things, sx, sy, dx, dy, dist) {
		if t.thing == source || !t.thing.Flags.Has(mobj.FlagShootable) {
			continue
		}
		for li < len(lines) && lines[li].frac < t.proj {
			ln := &m.Linedefs[lines[li].li]
			if !ln.TwoSided() {
				return HitResult{}
			}
			op := m.LineOpening(lines[li].li)
			lineDist := dist * lines[li].frac
			if lineDist > 0 {
				front := &m.Sectors[m.Sidedefs[ln.FrontSide].Sector]
				back := &m.Sectors[m.Sidedefs[ln.BackSide].Sector]
				if front.FloorHeight != back.FloorHeight {
					if s := (op.LowFloor - shootZ) / lineDist; s > botSlope {
						botSlope = s
					}
				}
				if front.CeilingHeight != back.CeilingHeight {
					if s := (op.Ceiling - shootZ) / lineDist; s < topSlope {
						topSlope = s
					}
				}
			}
			if topSlope <= botSlope {
				return HitResult{}
			}
			li++
		}

		perp, proj := perpDistance(t.thing, sx, sy, dx, dy, dist)
		if perp > t.thing.Radius || proj <= 0 {
			continue
		}
		lineDist := dist * proj
		topZ := (t.thing.Z + t.thing.Height - shootZ) / lineDist
		botZ := (t.thing.Z - shootZ) / lineDist
		if topZ < botSlope || botZ > topSlope {
			continue
		}
		if topZ > topSlope {
			topZ = topSlope
		}
		if botZ < botSlope {
			botZ = botSlope
		}
		slope := (topZ + botZ) / 2
		return HitResult{Hit: true, Thing: t.thing, Slope: slope,
			X: sx + dx*proj, Y: sy + dy*proj, Z: shootZ + slope*lineDist,
			Distance: lineDist}
	}
	return HitResult{}
}

type projectedThing struct {
	thing *mobj.MapObject
	proj  float64
}

func sortedByProjection(things []*mobj.MapObject, sx, sy, dx, dy, dist float64) []projectedThing {
	out := make([]projectedThing, 0, len(things))
	for _, t := range things {
		_, proj := perpDistance(t, sx, sy, dx, dy, dist)
		out = append(out, projectedThing{t, proj})
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].proj < out[j-1].proj; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func perpDistance(t *mobj.MapObject, sx, sy, dx, dy, dist float64) (perp, proj float64) {
	if dist == 0 {
		return math.Inf(1), 0
	}
	tx, ty := t.X-sx, t.Y-sy
	proj = (tx*dx + ty*dy) / (dist * dist)
	px, py := dx*proj, dy*proj
	perp = math.Hypot(tx-px, ty-py)
	return perp, proj
}

// shootTrace is the firing pass (gameplay's ShootTraverse): walks the
// same candidates using a fixed aimSlope (from a prior aimTrace),
// stopping at the first wall that closes the opening at that slope or
// the first shootable thing the slope intersects.
func shootTrace(lv Level, source *mobj.MapObject, dx, dy, aimSlope float64) HitResult {
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return HitResult{}
	}
	shootZ := shootHeight(source)
	sx, sy := source.X, source.Y
	m := lv.Map()

	lines := candidateLines(lv, sx, sy, dx, dy)
	things := sortedByProjection(candidateThings(lv, sx, sy, dx, dy), sx, sy, dx, dy, dist)

	li, ti := 0, 0
	for {
		var nextLineFrac, nextThingProj = math.Inf(1), math.Inf(1)
		if li < len(lines) {
			nextLineFrac = lines[li].frac
		}
		if ti < len(things) {
			nextThingProj = things[ti].proj
		}
		if li >= len(lines) && ti >= len(things) {
			return HitResult{}
		}

		if nextLineFrac <= nextThingProj {
			ln := &m.Linedefs[lines[li].li]
			lineDist := dist * nextLineFrac
			if !ln.TwoSided() {
				return wallHitResult(sx, sy, dx, dy, dist, nextLineFrac, shootZ, aimSlope)
			}
			op := m.LineOpening(lines[li].li)
			front := &m.Sectors[m.Sidedefs[ln.FrontSide].Sector]
			back := &m.Sectors[m.Sidedefs[ln.BackSide].Sector]
			blocked := false
			if lineDist > 0 {
				if front.FloorHeight != back.FloorHeight {
					if s := (op.LowFloor - shootZ) / lineDist; s > aimSlope {
						blocked = true
					}
				}
				if front.CeilingHeight != back.CeilingHeight {
					if s := (op.Ceiling - shootZ) / lineDist; s < aimSlope {
						blocked = true
					}
				}
			}
			if blocked {
				return wallHitResult(sx, sy, dx, dy, dist, nextLineFrac, shootZ, aimSlope)
			}
			li++
			continue
		}

		t := things[ti].thing
		ti++
		if t == source || !t.Flags.Has(mobj.FlagShootable) || things[ti-1].proj <= 0 {
			continue
		}
		perp, proj := perpDistance(t, sx, sy, dx, dy, dist)
		if perp > t.Radius {
			continue
		}
		lineDist := dist * proj
		topZ := (t.Z + t.Height - shootZ) / lineDist
		botZ := (t.Z - shootZ) / lineDist
		if topZ < aimSlope || botZ > aimSlope {
			continue
		}
		return HitResult{Hit: true, Thing: t, Slope: aimSlope,
			X: sx + dx*proj, Y: sy + dy*proj, Z: shootZ + aimSlope*lineDist,
			Distance: lineDist}
	}
}

// puffFudge is how far back along the ray a wall puff/impact is
// pulled from the exact intersection point, so it renders in front of
// the wall plane instead of poking into it (gameplay/src/thing/
// shooting.rs's hit_line: `frac - 4.0 / attack_range`).
const puffFudge = 4.0

// wallHitResult builds the HitResult for a wall-closing hit, pulling
// the impact point back by puffFudge/attackRange along the ray before
// computing x/y/z, matching hit_line's frac backoff (spec.md's own
// worked example: a shot into a wall at x=512 puffs at x≈508).
func wallHitResult(sx, sy, dx, dy, attackRange, frac, shootZ, slope float64) HitResult {
	if attackRange > 0 {
		frac -= puffFudge / attackRange
	}
	if frac < 0 {
		frac = 0
	}
	lineDist := attackRange * frac
	return HitResult{Hit: true, Slope: slope,
		X: sx + dx*frac, Y: sy + dy*frac,
		Z: shootZ + slope*lineDist, Distance: lineDist}
}

// LineAttack performs a hitscan from source along angle for up to
// distance units (spec §4.3): an aim pass picks up a vertical slope
// toward whatever's under the crosshair, then the shot itself is
// fired along that slope, returning the first thing or wall struck.
func LineAttack(lv Level, source *mobj.MapObject, angle, distance float64) HitResult {
	dx, dy := math.Cos(angle)*distance, math.Sin(angle)*distance
	aim := aimTrace(lv, source, dx, dy)
	slope := aim.Slope
	return shootTrace(lv, source, dx, dy, slope)
}

// CheckSight is the hitscan variant that stops at the first
// fully-closing segment (opening <= 0) and reports whether the
// endpoint was reached unobstructed (spec §4.3).
func CheckSight(lv Level, from *mobj.MapObject, toX, toY, toZ float64) bool {
	dx, dy := toX-from.X, toY-from.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return true
	}
	shootZ := shootHeight(from)
	m := lv.Map()

	for _, lh := range candidateLines(lv, from.X, from.Y, dx, dy) {
		ln := &m.Linedefs[lh.li]
		if !ln.TwoSided() {
			return false
		}
		op := m.LineOpening(lh.li)
		if op.Ceiling-op.Floor <= 0 {
			return false
		}
		lineDist := dist * lh.frac
		if lineDist == 0 {
			continue
		}
		zAtLine := shootZ + (toZ-shootZ)*lh.frac
		if zAtLine < op.Floor || zAtLine > op.Ceiling {
			return false
		}
	}
	return true
}
