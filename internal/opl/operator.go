package opl

// envState is one operator's position in the classic four-stage
// envelope (spec §4.10: "Off, Attack, Decay, Sustain, Release").
type envState int

const (
	envOff envState = iota
	envAttack
	envDecay
	envSustain
	envRelease
)

// operator is one FM operator: a phase accumulator driving a waveform
// table, shaped by an ADSR envelope expressed in the log-amplitude
// domain (0 = loudest, 511 = silent, per the OPL convention spec
// §4.10 calls out directly).
type operator struct {
	phase    uint32
	phaseInc uint32

	wave waveform

	state envState
	level uint32 // 0..511, log-domain attenuation; 511 == silent

	attackRate, decayRate, releaseRate int // raw 0..15 register values
	sustainLevel                       uint32
	totalLevel                         uint32 // 0..63, register TL
	ksl                                int
	ksr                                bool
	sustainHeld                        bool // register EGT: hold at sustain instead of releasing into it

	mult int // frequency multiplier index 0..15, register MULT
	vib  bool
	am   bool

	keyOn bool
}

// multTable converts the 4-bit MULT register field to the operator's
// frequency multiplier, halved for index 0 per the OPL convention.
var multTable = [16]float64{
	0.5, 1, 2, 3, 4, 5, 6, 7,
	8, 9, 10, 10, 12, 12, 15, 15,
}

// setFrequency recomputes phaseInc from the channel's F-Number/block
// pair and this operator's MULT, following spec §4.10's "frequency =
// F-Number * 2^(Block-20) * sampleRateScale" phase-accumulator model.
func (op *operator) setFrequency(fnum uint32, block uint, sampleRate float64) {
	freq := float64(fnum) * float64(uint32(1)<<block) * sampleStep
	freq *= multTable[op.mult]
	op.phaseInc = uint32(freq / sampleRate * sinTableSize * (1 << fracBits))
}

const (
	sampleStep = 49716.0 / (1 << 20) // OPL base clock / F-Number scale, Hz per unit
	fracBits   = 16                  // phase accumulator sub-step precision
)

// keyOnEvent starts (or restarts) this operator's envelope from the
// top of the attack stage (spec §4.10's key-on transition). With an
// attack rate of 0 the operator goes to Off instead and stays silent.
func (op *operator) keyOnEvent() {
	op.keyOn = true
	op.phase = 0
	if op.attackRate == 0 {
		op.state = envOff
		op.level = 0
		return
	}
	op.state = envAttack
}

// keyOffEvent begins the release stage from any stage other than Off,
// whatever the release rate.
func (op *operator) keyOffEvent() {
	op.keyOn = false
	if op.state != envOff {
		op.state = envRelease
	}
}

// rateIndex combines a 4-bit rate register with key-scale-rate (KSR)
// into the table's 0..31 index, per spec §4.10's "(rate<<2)+ksr".
func (op *operator) rateIndex(rate int, block uint, fnumHigh uint32) int {
	ksrShift := 0
	if op.ksr {
		ksrShift = int(block)<<1 | int(fnumHigh>>9&1)
	} else {
		ksrShift = int(block) >> 1
	}
	idx := rate*4 + ksrShift
	if idx > 31 {
		idx = 31
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// advanceEnvelope steps this operator's envelope one sample forward
// through its current stage, following spec §4.10's state machine:
// Attack exponentially approaches 0 (loudest), Decay/Release linearly
// increase attenuation toward Sustain/silence.
func (op *operator) advanceEnvelope(block uint, fnumHigh uint32) {
	switch op.state {
	case envOff:
		op.level = 511
	case envAttack:
		idx := op.rateIndex(op.attackRate, block, fnumHigh)
		inc := sharedTables.rate[0][idx]
		if inc == 0 {
			return
		}
		step := (inc * op.level) >> 16
		if step == 0 {
			step = 1
		}
		if op.level <= step {
			op.level = 0
			op.state = envDecay
			return
		}
		op.level -= step
	case envDecay:
		idx := op.rateIndex(op.decayRate, block, fnumHigh)
		inc := sharedTables.rate[1][idx] >> 8
		op.level += inc
		if op.level >= op.sustainLevel {
			op.level = op.sustainLevel
			if op.sustainHeld {
				op.state = envSustain
			} else {
				op.state = envRelease
			}
		}
	case envSustain:
		if !op.sustainHeld {
			op.state = envRelease
		}
	case envRelease:
		idx := op.rateIndex(op.releaseRate, block, fnumHigh)
		inc := sharedTables.rate[2][idx] >> 8
		op.level += inc
		if op.level >= 511 {
			op.level = 511
			op.state = envOff
		}
	}
}

// sample advances the phase accumulator by one step (modulated by
// modInput, a prior operator's output in FM chains, and by vibScale,
// the shared LFO's current frequency deviation when this operator has
// vibrato enabled) and returns the operator's signed linear-domain
// sample for this tick.
func (op *operator) sample(modInput int32, tremolo, vibScale float64) int16 {
	inc := op.phaseInc
	if op.vib {
		inc = uint32(float64(inc) * (1 + vibScale))
	}
	op.phase += inc
	idx := int((op.phase>>fracBits)+uint32(modInput)) & sinTableMask

	logAmp := sharedTables.sin[op.wave][idx]
	sign := logAmp&(1<<14) != 0
	mag := logAmp &^ (1 << 14)

	atten := uint32(mag) + op.level<<2 + uint32(op.totalLevel)<<5
	if op.am {
		atten += uint32(tremolo)
	}

	if atten >= uint32(len(sharedTables.exp))<<1 {
		return 0
	}
	expIdx := atten & (expTableSize - 1)
	out := int16(sharedTables.exp[expIdx]) >> (atten >> expTableBits)
	if sign {
		return -out
	}
	return out
}
