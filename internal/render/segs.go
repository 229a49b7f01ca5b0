package render

import (
	"math"

	"github.com/doomcore/engine/internal/mapdata"
	"github.com/doomcore/engine/internal/pic"
)

// storeWallRange renders one seg's visible column range [x1,x2),
// implementing spec §4.7 end to end: perpendicular distance, per-
// column scale interpolation, world-space top/bottom heights, texture
// column sampling, and floor/ceiling clip-array maintenance. It
// returns the drawSeg recorded for the later masked pass.
func (r *Renderer) storeWallRange(m *mapdata.Map, picData *pic.Data, view View, segIdx, x1, x2 int, front, back *mapdata.Sector, floorPlane, ceilPlane *visplane) *drawSeg {
	seg := &m.Segs[segIdx]
	side := &m.Sidedefs[seg.Sidedef]
	line := &m.Linedefs[seg.Linedef]
	v1 := m.Vertexes[seg.V1]

	hyp := math.Hypot(v1.X-view.X, v1.Y-view.Y)
	rayToV1 := math.Atan2(v1.Y-view.Y, v1.X-view.X)
	offsetAngle := seg.Angle - rayToV1
	rwDistance := hyp * math.Sin(math.Pi/2-offsetAngle)
	if rwDistance <= 0 {
		rwDistance = 1
	}

	scaleAt := func(x int) float64 {
		xAngle := r.screenAngle[x]
		denom := rwDistance * math.Cos(xAngle)
		if denom <= 0 {
			denom = 0.01
		}
		return r.distToScreen * math.Cos(view.Angle-seg.Angle-xAngle) / denom
	}
	scale1 := scaleAt(x1)
	scale2 := scaleAt(max(x1, x2-1))
	var scaleStep float64
	if x2 > x1 {
		scaleStep = (scale2 - scale1) / float64(x2-x1)
	}

	worldTop := front.CeilingHeight - view.Z
	worldBottom := front.FloorHeight - view.Z
	var worldHigh, worldLow float64
	twoSided := back != nil
	if twoSided {
		worldHigh = back.CeilingHeight - view.Z
		worldLow = back.FloorHeight - view.Z
	}

	ds := &drawSeg{x1: x1, x2: x2, scale1: scale1, scale2: scale2, seg: segIdx}
	if twoSided && side.MidTexture != "" {
		ds.maskedTexture = side.MidTexture
		ds.sprTopClip = make([]int, x2-x1)
		ds.sprBotClip = make([]int, x2-x1)
	}

	midTex, hasMid := picData.Texture(side.MidTexture)
	upperTex, hasUpper := picData.Texture(side.TopTexture)
	lowerTex, hasLower := picData.Texture(side.BottomTexture)

	scale := scale1
	for x := x1; x < x2; x++ {
		if scale <= 0 {
			scale = 0.0001
		}
		lightnum := front.LightLevel >> 4
		if line.Flags&mapdata.LineUnpegTop != 0 {
			lightnum++
		}
		cm := picData.ColumnLight(lightnum, 1/scale)

		ceilScreen := clampY(r, int(r.halfWidth-worldTop*scale))
		floorScreen := clampY(r, int(r.halfWidth-worldBottom*scale))

		top := r.ceilClip[x] + 1
		bottom := r.floorClip[x] - 1

		if !twoSided {
			if hasMid && ceilScreen <= bottom && floorScreen >= top {
				drawColumn(r, midTex, cm, x, max(top, ceilScreen), min(bottom, floorScreen), wallTexCol(seg, offsetAngle, rwDistance, view, r, x))
			}
			r.markPlaneColumn(ceilPlane, x, top, min(bottom, ceilScreen-1))
			r.markPlaneColumn(floorPlane, x, max(top, floorScreen+1), bottom)
			r.ceilClip[x] = bottom
			r.floorClip[x] = top
		} else {
			highScreen := clampY(r, int(r.halfWidth-worldHigh*scale))
			lowScreen := clampY(r, int(r.halfWidth-worldLow*scale))

			if hasUpper && ceilScreen <= highScreen-1 {
				drawColumn(r, upperTex, cm, x, max(top, ceilScreen), min(bottom, highScreen-1), wallTexCol(seg, offsetAngle, rwDistance, view, r, x))
			}
			if hasLower && lowScreen+1 <= floorScreen {
				drawColumn(r, lowerTex, cm, x, max(top, lowScreen+1), min(bottom, floorScreen), wallTexCol(seg, offsetAngle, rwDistance, view, r, x))
			}
			if hasMid && ds.maskedTexture != "" {
				ds.sprTopClip[x-x1] = max(top, highScreen)
				ds.sprBotClip[x-x1] = min(bottom, lowScreen)
			}

			r.markPlaneColumn(ceilPlane, x, top, min(bottom, ceilScreen-1))
			r.markPlaneColumn(floorPlane, x, max(top, floorScreen+1), bottom)
			r.ceilClip[x] = max(r.ceilClip[x], min(bottom, highScreen-1))
			r.floorClip[x] = min(r.floorClip[x], max(top, lowScreen+1))
		}

		scale += scaleStep
	}

	if len(r.drawsegs) < maxDrawSegs {
		r.drawsegs = append(r.drawsegs, *ds)
	}
	return ds
}

// wallTexCol computes the texture column at screen-x per spec §4.7
// step 4: offset minus the tangent of the per-column view angle times
// the perpendicular distance.
func wallTexCol(seg *mapdata.Segment, offsetAngle, rwDistance float64, view View, r *Renderer, x int) int {
	xAngle := r.screenAngle[x]
	col := seg.Offset - math.Tan(offsetAngle+xAngle)*rwDistance
	return int(col)
}

func drawColumn(r *Renderer, tex *pic.Texture, cm *[pic.PaletteSize]uint8, x, y1, y2, texCol int) {
	if y1 > y2 {
		return
	}
	for y := y1; y <= y2; y++ {
		if y < 0 || y >= r.Height {
			continue
		}
		px, ok := tex.ColumnPixel(texCol, y%tex.Height)
		if !ok {
			continue
		}
		r.frame[y*r.Width+x] = cm[px]
	}
}

func clampY(r *Renderer, y int) int {
	if y < -1 {
		return -1
	}
	if y > r.Height {
		return r.Height
	}
	return y
}
