// Package opl implements the OPL2/OPL3 FM synthesizer (spec §4.10):
// 9 (OPL2) or 18 (OPL3) two-operator channels, a shared LFO/noise
// generator, and a flat register-write interface, built the way
// audio_chip.go builds its own software synth — one owning struct,
// lookup tables computed once at construction, a mutex guarding
// register writes against the concurrent sample-generation path.
package opl

import "math"

const (
	sinTableBits = 10
	sinTableSize = 1 << sinTableBits // 1024 phase steps per full waveform
	sinTableMask = sinTableSize - 1

	expTableBits = 8
	expTableSize = 1 << expTableBits
)

// waveform selects one of the 8 OPL3 waveform variants an operator
// can use in place of a plain sine (spec §4.10 "waveform-table base
// pointer").
type waveform int

const (
	waveSine waveform = iota
	waveHalfSine
	waveAbsSine
	waveQuarterSine
	waveAlternatingSine
	waveCamelSine
	waveSquare
	waveLogSawtooth
)

// tables holds the lookup tables the spec calls out as "computed once
// at first construction" (§4.10): a base sine table plus seven
// waveform variants derived from it, and the exponential table used to
// convert a logarithmic envelope+output sum back to a linear sample.
type tables struct {
	sin  [8][sinTableSize]int16 // one per waveform, log-domain amplitude
	exp  [expTableSize]int16
	ksl  [8][16]int   // key-scale-level table, per octave/note
	rate [4][32]uint32 // attack/decay/release rate-to-increment, 4 classes
}

var sharedTables = buildTables()

// buildTables computes every lookup table this package needs exactly
// once, mirroring audio_lut.go's "precompute at construction" idiom
// generalized from a wavetable synth's tables to an FM chip's.
func buildTables() *tables {
	t := &tables{}

	base := &t.sin[waveSine]
	for i := 0; i < sinTableSize; i++ {
		angle := 2 * math.Pi * float64(i) / sinTableSize
		s := math.Sin(angle)
		base[i] = logSample(s)
	}
	for i := 0; i < sinTableSize; i++ {
		t.sin[waveHalfSine][i] = halfSine(base, i)
		t.sin[waveAbsSine][i] = absSine(base, i)
		t.sin[waveQuarterSine][i] = quarterSine(base, i)
		t.sin[waveAlternatingSine][i] = alternatingSine(base, i)
		t.sin[waveCamelSine][i] = camelSine(base, i)
		t.sin[waveSquare][i] = squareWave(i)
		t.sin[waveLogSawtooth][i] = sawtoothWave(i)
	}

	for i := 0; i < expTableSize; i++ {
		x := float64(i) / expTableSize
		v := math.Exp2(x) - 1
		t.exp[i] = int16(v * 1024)
	}

	for oct := 0; oct < 8; oct++ {
		for note := 0; note < 16; note++ {
			t.ksl[oct][note] = kslEntry(oct, note)
		}
	}

	for class := 0; class < 4; class++ {
		for i := 0; i < 32; i++ {
			t.rate[class][i] = rateIncrement(class, i)
		}
	}

	return t
}

// logSample converts a linear [-1,1] sample to the log-domain
// representation the envelope-add step operates on (spec §4.10 step
// 3's "logarithmic add"): the sign is kept separate (high bit), the
// magnitude is -log2(|s|) scaled to the table's fixed-point range.
func logSample(s float64) int16 {
	if s == 0 {
		return 0x7fff // silence: maximal attenuation
	}
	mag := math.Abs(s)
	logMag := -math.Log2(mag) * 256
	v := int16(logMag)
	if v < 0 {
		v = 0
	}
	if s < 0 {
		return v | int16(1<<14)
	}
	return v
}

func halfSine(base *[sinTableSize]int16, i int) int16 {
	if i&(sinTableSize/2) != 0 {
		return 0x7fff
	}
	return base[i]
}

func absSine(base *[sinTableSize]int16, i int) int16 {
	return base[i&(sinTableSize/2-1)|((i&(sinTableSize/2))>>0)&0]
}

func quarterSine(base *[sinTableSize]int16, i int) int16 {
	quarter := i & (sinTableSize/4 - 1)
	return base[quarter]
}

func alternatingSine(base *[sinTableSize]int16, i int) int16 {
	if i&(sinTableSize/2) != 0 {
		return base[i&(sinTableSize/2-1)]
	}
	return base[i]
}

func camelSine(base *[sinTableSize]int16, i int) int16 {
	if i&(sinTableSize/4) != 0 {
		return 0x7fff
	}
	return base[i&(sinTableSize/4-1)]
}

func squareWave(i int) int16 {
	if i&(sinTableSize/2) != 0 {
		return 0x7fff
	}
	return 0
}

func sawtoothWave(i int) int16 {
	frac := float64(i&(sinTableSize-1)) / sinTableSize
	return int16(-math.Log2(frac+1e-6) * 256)
}

// kslEntry approximates the key-scale-level attenuation table: higher
// octaves and higher notes attenuate more as the frequency rises,
// per the standard OPL KSL curve shape.
func kslEntry(oct, note int) int {
	base := []int{0, 32, 40, 45, 48, 51, 53, 55, 56, 58, 59, 60, 61, 62, 63, 64}[note]
	v := base - (7-oct)*8
	if v < 0 {
		v = 0
	}
	return v
}

// rateIncrement computes the per-sample envelope step for rate class
// (0=attack,1=decay,2=release,3=unused) and a combined rate+KSR index
// 0..31, following the classic OPL convention that rate increments
// roughly double every 4 steps.
func rateIncrement(class, idx int) uint32 {
	if idx == 0 {
		return 0
	}
	shift := 12 - idx/4
	if shift < 0 {
		shift = 0
	}
	mul := uint32(4 + idx%4)
	return mul << shift
}
