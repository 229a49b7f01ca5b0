// Package render implements the three-stage software renderer (spec
// §4.5–§4.9): a front-to-back BSP walk that clips solid segs and
// collects visplane spans and wall columns, visplane resolution into
// flat/sky spans, and a back-to-front masked pass for sprites and
// masked middle textures. It mirrors the teacher's "one struct owns
// the whole pixel pipeline, mutex-guards cross-goroutine state"
// discipline from video_chip.go's VideoChip, generalised from a
// register-mapped 2D blitter to a BSP rasterizer.
package render

import (
	"math"
	"sync"

	"github.com/doomcore/engine/internal/mapdata"
	"github.com/doomcore/engine/internal/pic"
)

const (
	fieldOfView = math.Pi / 2 // 90 degrees, spec §4.6's clipping fan

	maxVisplanes = 256
	maxDrawSegs  = 256
	maxVisSprites = 256
)

// View is the camera state a frame is rendered from.
type View struct {
	X, Y, Z float64
	Angle   float64
}

// solidSeg is one closed, inclusive screen-x interval in the
// solid-seg occlusion list (spec §4.6).
type solidSeg struct {
	first, last int
}

// visplane accumulates the flat/sky spans sharing one (height, floor
// or ceiling flat) pair, bucketed per screen column (spec §4.8).
type visplane struct {
	height       float64
	picnum       string
	isCeiling    bool
	lightLevel   int
	minX, maxX   int
	top, bottom  []int // per-column span bounds, sentinel -1 where unused
}

// drawSeg records one rendered wall span's projection for the masked
// pass to clip sprites and masked middle textures against (spec §4.9).
type drawSeg struct {
	x1, x2               int
	scale1, scale2       float64
	seg                  int
	maskedTexture        string
	sprTopClip, sprBotClip []int
}

// visSprite is a projected thing awaiting the masked pass.
type visSprite struct {
	x1, x2     int
	scale      float64
	texZ       float64
	sprite     *pic.Patch
	flip       bool
	lightLevel int
	shadow     bool
	topClip, botClip []int
}

// Renderer owns one frame's complete pixel pipeline plus the
// geometry/graphics it reads. Like VideoChip it is built once per
// session and reused frame after frame; mu guards the fields a
// concurrent Present (spec §5, the presenter goroutine) may read
// while a new frame is mid-render.
type Renderer struct {
	mu sync.Mutex

	Width, Height int
	halfWidth     float64
	distToScreen  float64 // projection plane distance, halfWidth/tan(fov/2)

	screenAngle []float64 // per-column angle-from-view-center, precomputed

	frame []uint8 // palette indices, row-major Width*Height

	solidsegs []solidSeg
	planes    []*visplane
	drawsegs  []drawSeg
	vissprites []visSprite

	floorClip, ceilClip []int

	openings [][]uint8 // scratch masked-middle-texture column buffer

	validcount int
}

// NewRenderer allocates a fixed internal resolution (spec §9's Open
// Question: internal size is fixed per level, presenters rescale at
// present time).
func NewRenderer(width, height int) *Renderer {
	r := &Renderer{
		Width: width, Height: height,
		halfWidth: float64(width) / 2,
	}
	r.distToScreen = r.halfWidth / math.Tan(fieldOfView/2)
	r.frame = make([]uint8, width*height)
	r.floorClip = make([]int, width)
	r.ceilClip = make([]int, width)
	r.screenAngle = make([]float64, width)
	for x := 0; x < width; x++ {
		r.screenAngle[x] = math.Atan((float64(x) - r.halfWidth) / r.distToScreen)
	}
	return r
}

// Frame returns the current frame's palette-index buffer. Callers
// must not mutate it while a RenderFrame call is in progress.
func (r *Renderer) Frame() []uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// RenderFrame runs the full three-stage pipeline for one frame (spec
// §4.5): BSP walk, visplane resolution, sprite projection, masked
// pass. things is the frame's Thing list, typically internal/level's
// VisibleThings.
func (r *Renderer) RenderFrame(m *mapdata.Map, picData *pic.Data, view View, things []Thing) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.beginFrame()
	r.walkBSP(m, picData, view, m.StartNode)
	r.resolvePlanes(m, picData, view)
	for _, t := range things {
		r.ProjectSprite(picData, view, t)
	}
	r.renderMaskedPass(picData, view)
}

func (r *Renderer) beginFrame() {
	for i := range r.frame {
		r.frame[i] = 0
	}
	r.solidsegs = r.solidsegs[:0]
	r.solidsegs = append(r.solidsegs,
		solidSeg{first: math.MinInt32, last: -1},
		solidSeg{first: r.Width, last: math.MaxInt32},
	)
	r.planes = r.planes[:0]
	r.drawsegs = r.drawsegs[:0]
	r.vissprites = r.vissprites[:0]
	for x := 0; x < r.Width; x++ {
		r.floorClip[x] = r.Height
		r.ceilClip[x] = -1
	}
	r.validcount++
}
