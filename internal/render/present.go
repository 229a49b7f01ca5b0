package render

import "github.com/doomcore/engine/internal/pic"

// WriteRGBA expands the current palette-index frame into dst (a
// Width*Height*4 RGBA buffer, e.g. an ebiten.Image's Pix slice),
// following video_chip.go's palette-to-RGBA conversion pattern — a
// lookup against PLAYPAL rather than a live compositor, since this
// renderer's frame buffer is already palette-indexed software output.
func (r *Renderer) WriteRGBA(dst []uint8, palette *[pic.PaletteSize]pic.RGB) {
	r.mu.Lock()
	defer r.mu.Unlock()

	need := r.Width * r.Height * 4
	if len(dst) < need {
		return
	}
	for i, idx := range r.frame {
		c := palette[idx]
		o := i * 4
		dst[o] = c.R
		dst[o+1] = c.G
		dst[o+2] = c.B
		dst[o+3] = 255
	}
}
