package render

import (
	"math"

	"github.com/doomcore/engine/internal/mapdata"
	"github.com/doomcore/engine/internal/pic"
)

// findPlane returns an existing visplane matching (height, picnum,
// light) or allocates a new one, the accumulation step of spec §4.7's
// "mark corresponding columns of the active floor/ceiling visplanes".
func (r *Renderer) findPlane(height float64, picnum string, isCeiling bool, light int) *visplane {
	for _, p := range r.planes {
		if p.height == height && p.picnum == picnum && p.isCeiling == isCeiling && p.lightLevel == light {
			return p
		}
	}
	if len(r.planes) >= maxVisplanes {
		return r.planes[len(r.planes)-1]
	}
	p := &visplane{
		height: height, picnum: picnum, isCeiling: isCeiling, lightLevel: light,
		minX: r.Width, maxX: -1,
		top:    make([]int, r.Width),
		bottom: make([]int, r.Width),
	}
	for x := range p.top {
		p.top[x] = -1
		p.bottom[x] = -1
	}
	r.planes = append(r.planes, p)
	return p
}

// markPlaneColumn records that column x of plane spans [y1,y2]
// (inclusive). Per spec §4.7 step 6, most columns land on a fresh
// index and just extend the plane's bounds, but two subsectors that
// share a (height,picnum,light) key can disagree on an already-written
// column (the §8 pillar scenario: a near and far stretch of the same
// coplanar floor, split on screen by a solid pillar between them). When
// that happens the existing span must not be clobbered, so fork or
// reuse a sibling visplane carrying the same key instead.
func (r *Renderer) markPlaneColumn(p *visplane, x, y1, y2 int) {
	if p == nil || y1 > y2 {
		return
	}
	for p.top[x] != -1 && (p.top[x] != y1 || p.bottom[x] != y2) {
		next := r.siblingPlane(p, x)
		if next == p {
			break // visplane pool exhausted; clobber rather than drop the column
		}
		p = next
	}
	if x < p.minX {
		p.minX = x
	}
	if x > p.maxX {
		p.maxX = x
	}
	p.top[x] = y1
	p.bottom[x] = y2
}

// siblingPlane returns another visplane sharing p's (height, picnum,
// isCeiling, light) key whose column x is still free, allocating a new
// one if none exists — the actual split from spec §4.7 step 6.
func (r *Renderer) siblingPlane(p *visplane, x int) *visplane {
	for _, q := range r.planes {
		if q == p {
			continue
		}
		if q.height == p.height && q.picnum == p.picnum && q.isCeiling == p.isCeiling &&
			q.lightLevel == p.lightLevel && q.top[x] == -1 {
			return q
		}
	}
	if len(r.planes) >= maxVisplanes {
		return p
	}
	np := &visplane{
		height: p.height, picnum: p.picnum, isCeiling: p.isCeiling, lightLevel: p.lightLevel,
		minX: r.Width, maxX: -1,
		top:    make([]int, r.Width),
		bottom: make([]int, r.Width),
	}
	for i := range np.top {
		np.top[i] = -1
		np.bottom[i] = -1
	}
	r.planes = append(r.planes, np)
	return np
}

// resolvePlanes implements spec §4.8: for each visplane, emit sky
// columns (if its picnum names the sky flat) or flat-textured
// horizontal spans otherwise.
func (r *Renderer) resolvePlanes(m *mapdata.Map, picData *pic.Data, view View) {
	for _, p := range r.planes {
		if p.maxX < p.minX {
			continue
		}
		if p.picnum == picData.SkyFlatName {
			r.drawSkyPlane(picData, view, p)
			continue
		}
		r.drawFlatPlane(picData, view, p)
	}
}

// drawSkyPlane fills each column of a sky visplane from the sky
// texture, one full revolution per 360 degrees of view (spec §4.8).
func (r *Renderer) drawSkyPlane(picData *pic.Data, view View, p *visplane) {
	tex, ok := picData.Texture(picData.SkyTexture)
	if !ok {
		return
	}
	viewAngleDeg := view.Angle * 180 / math.Pi
	for x := p.minX; x <= p.maxX; x++ {
		if p.top[x] < 0 {
			continue
		}
		xToView := r.screenAngle[x] * 180 / math.Pi
		skyAngle := (viewAngleDeg + xToView) * 2.8444
		col := int(skyAngle) % tex.Width
		if col < 0 {
			col += tex.Width
		}
		for y := p.top[x]; y <= p.bottom[x] && y < r.Height; y++ {
			if y < 0 {
				continue
			}
			texY := (y * tex.Height) / r.Height
			px, ok := tex.ColumnPixel(col, texY)
			if !ok {
				continue
			}
			r.frame[y*r.Width+x] = px // colormap 0, sky is unshaded (spec §4.8)
		}
	}
}

// drawFlatPlane renders a non-sky visplane's horizontal spans,
// projecting the flat plane onto screen via the height difference from
// the viewer and a distance-selected colormap (spec §4.8).
func (r *Renderer) drawFlatPlane(picData *pic.Data, view View, p *visplane) {
	flat, ok := picData.Flat(p.picnum)
	if !ok {
		return
	}
	planeZ := math.Abs(p.height - view.Z)
	if planeZ == 0 {
		return
	}
	centerY := r.Height / 2

	for x := p.minX; x <= p.maxX; x++ {
		if p.top[x] < 0 || p.bottom[x] < p.top[x] {
			continue
		}
		screenDX := float64(x) - r.halfWidth
		for y := p.top[x]; y <= p.bottom[x]; y++ {
			if y < 0 || y >= r.Height {
				continue
			}
			screenDY := float64(y - centerY)
			if screenDY == 0 {
				continue
			}
			// distance from the viewer to the flat point under this
			// pixel, by similar triangles against the projection plane.
			dist := planeZ * r.distToScreen / math.Abs(screenDY)
			worldX := view.X + dist*math.Cos(view.Angle) - dist*screenDX/r.distToScreen*math.Sin(view.Angle)
			worldY := view.Y + dist*math.Sin(view.Angle) + dist*screenDX/r.distToScreen*math.Cos(view.Angle)

			fx := int(worldX) & (flat.Size - 1)
			fy := int(worldY) & (flat.Size - 1)
			if fx < 0 {
				fx += flat.Size
			}
			if fy < 0 {
				fy += flat.Size
			}
			cm := picData.ColumnLight(p.lightLevel>>4, dist/64)
			r.frame[y*r.Width+x] = cm[flat.At(fx, fy)]
		}
	}
}
