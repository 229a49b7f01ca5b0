package render

import (
	"math"
	"sort"

	"github.com/doomcore/engine/internal/pic"
)

// Thing is the minimal projection input the renderer needs per visible
// map object (internal/level supplies these from its MapObject list),
// keeping render free of an internal/mobj import.
type Thing struct {
	X, Y, Z     float64
	Angle       float64
	SpriteLump  string // resolved lump name, e.g. "TROOA1"
	LightLevel  int
	Shadow      bool
}

// ProjectSprite transforms a thing into view space and, if visible,
// appends a VisSprite to the frame's queue (spec §4.9 step 1). It
// returns false when the thing is behind the viewer or outside the
// horizontal frustum.
func (r *Renderer) ProjectSprite(picData *pic.Data, view View, t Thing) bool {
	dx, dy := t.X-view.X, t.Y-view.Y
	tz := dx*math.Cos(view.Angle) + dy*math.Sin(view.Angle)
	if tz < 4 {
		return false
	}
	tx := dx*math.Sin(view.Angle) - dy*math.Cos(view.Angle)
	if math.Abs(tx) > 4*tz {
		return false
	}

	patch, ok := picData.Sprite(t.SpriteLump)
	if !ok {
		return false
	}

	xscale := r.halfWidth / tz * (r.distToScreen / r.halfWidth)
	screenX := r.halfWidth - tx*xscale

	width := float64(patch.Width) * xscale
	x1 := int(screenX - width/2)
	x2 := int(screenX + width/2)
	if x2 < 0 || x1 > r.Width {
		return false
	}
	if len(r.vissprites) >= maxVisSprites {
		return false
	}

	r.vissprites = append(r.vissprites, visSprite{
		x1: x1, x2: x2, scale: xscale, texZ: t.Z,
		sprite: patch, lightLevel: t.LightLevel, shadow: t.Shadow,
	})
	return true
}

// renderMaskedPass implements spec §4.9's back-to-front pass: sort
// VisSprites by ascending scale (farthest first), clip each against
// every drawseg in front of it, draw masked middle-texture columns,
// then draw the sprite itself.
func (r *Renderer) renderMaskedPass(picData *pic.Data, view View) {
	sort.Slice(r.vissprites, func(i, j int) bool {
		return r.vissprites[i].scale < r.vissprites[j].scale
	})

	for i := range r.vissprites {
		vs := &r.vissprites[i]
		vs.topClip = make([]int, max(0, vs.x2-vs.x1))
		vs.botClip = make([]int, max(0, vs.x2-vs.x1))
		for k := range vs.topClip {
			vs.topClip[k] = -1
			vs.botClip[k] = r.Height
		}

		for j := len(r.drawsegs) - 1; j >= 0; j-- {
			ds := &r.drawsegs[j]
			if ds.scale1 < vs.scale && ds.scale2 < vs.scale {
				r.clipSpriteAgainstSeg(vs, ds)
			}
			if ds.maskedTexture != "" {
				r.renderMaskedSegRange(picData, ds)
			}
		}

		r.drawVisSprite(picData, vs)
	}
}

func (r *Renderer) clipSpriteAgainstSeg(vs *visSprite, ds *drawSeg) {
	lo := max(vs.x1, ds.x1)
	hi := min(vs.x2, ds.x2)
	for x := lo; x < hi; x++ {
		k := x - vs.x1
		if k < 0 || k >= len(vs.topClip) {
			continue
		}
		di := x - ds.x1
		if di < 0 || di >= len(ds.sprTopClip) {
			continue
		}
		if ds.sprTopClip[di] > vs.topClip[k] {
			vs.topClip[k] = ds.sprTopClip[di]
		}
		if ds.sprBotClip[di] < vs.botClip[k] {
			vs.botClip[k] = ds.sprBotClip[di]
		}
	}
}

// renderMaskedSegRange draws a two-sided line's masked middle texture
// within its drawseg's clip range (spec §4.9's "also invoke
// render_masked_seg_range").
func (r *Renderer) renderMaskedSegRange(picData *pic.Data, ds *drawSeg) {
	tex, ok := picData.Texture(ds.maskedTexture)
	if !ok {
		return
	}
	cm := picData.ColumnLight(15, 0)
	for x := ds.x1; x < ds.x2; x++ {
		k := x - ds.x1
		top, bot := ds.sprTopClip[k], ds.sprBotClip[k]
		if top > bot {
			continue
		}
		col := x % tex.Width
		for y := top; y <= bot; y++ {
			if y < 0 || y >= r.Height {
				continue
			}
			px, opaque := tex.ColumnPixel(col, y%tex.Height)
			if !opaque {
				continue
			}
			r.frame[y*r.Width+x] = cm[px]
		}
	}
}

// fuzzTable pseudo-randomly skips roughly 2 of every 3 pixels for the
// Shadow flag's "fuzz" effect (spec §4.9), cycling through a small
// fixed offset table rather than a true RNG so the effect is stable
// frame to frame for a given screen position.
var fuzzTable = [...]int{1, -1, -1}

func (r *Renderer) drawVisSprite(picData *pic.Data, vs *visSprite) {
	cm := picData.ColumnLight(vs.lightLevel>>4, 0)
	if vs.shadow {
		cm = &picData.Colormaps[pic.ColormapShadow]
	}

	for sx := vs.x1; sx < vs.x2; sx++ {
		if sx < 0 || sx >= r.Width {
			continue
		}
		k := sx - vs.x1
		top, bot := -1, r.Height
		if k >= 0 && k < len(vs.topClip) {
			top, bot = vs.topClip[k], vs.botClip[k]
		}

		texX := (sx - vs.x1) * vs.sprite.Width / max(1, vs.x2-vs.x1)
		if texX < 0 || texX >= vs.sprite.Width {
			continue
		}
		col := vs.sprite.ExpandColumn(texX)

		for sy := max(0, top+1); sy < min(r.Height, bot); sy++ {
			if vs.shadow && fuzzTable[sy%len(fuzzTable)] < 0 {
				continue
			}
			texY := (sy) * vs.sprite.Height / r.Height
			if texY < 0 || texY >= len(col) {
				continue
			}
			px := col[texY]
			if px < 0 {
				continue
			}
			r.frame[sy*r.Width+sx] = cm[px]
		}
	}
}
