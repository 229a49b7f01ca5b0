package main

import (
	"encoding/binary"
	"math"

	"github.com/doomcore/engine/internal/opl"
)

// oplReader is cmd/doomcore's oplReader duplicated into this binary's
// own package main (package main can't import a sibling cmd/), same
// float32 stereo pull-from-chip shape grounded on
// audio_backend_oto.go's OtoPlayer.Read.
type oplReader struct {
	chip *opl.Chip
	buf  []float32
}

func newOPLReader(chip *opl.Chip) *oplReader {
	return &oplReader{chip: chip}
}

func (r *oplReader) Read(p []byte) (int, error) {
	frames := len(p) / 8
	if cap(r.buf) < frames*2 {
		r.buf = make([]float32, frames*2)
	}
	buf := r.buf[:frames*2]

	for i := 0; i < frames; i++ {
		l, rr := r.chip.GenerateSample()
		buf[i*2] = l
		buf[i*2+1] = rr
	}

	for i, s := range buf {
		bits := math.Float32bits(s)
		binary.LittleEndian.PutUint32(p[i*4:], bits)
	}
	return frames * 8, nil
}
