package main

import (
	"encoding/binary"
	"math"

	"github.com/doomcore/engine/internal/opl"
)

// oplReader adapts opl.Chip to io.Reader for oto.NewPlayer, mirroring
// audio_backend_oto.go's OtoPlayer.Read: pull interleaved float32
// stereo samples from the chip on oto's own callback goroutine, with
// no lock held across the generation call (Chip's own mutex is scoped
// to GenerateSample alone).
type oplReader struct {
	chip *opl.Chip
	buf  []float32
}

func newOPLReader(chip *opl.Chip) *oplReader {
	return &oplReader{chip: chip}
}

func (r *oplReader) Read(p []byte) (int, error) {
	frames := len(p) / 8 // 2 channels * 4 bytes/float32
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
