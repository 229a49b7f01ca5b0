package opl

import "sync"

const (
	// MaxChannelsOPL2 is the channel count in OPL2-compatible mode.
	MaxChannelsOPL2 = 9
	// MaxChannelsOPL3 is the channel count once the 0x105 OPL3-mode
	// bit is set, doubling the OPL2 register bank.
	MaxChannelsOPL3 = 18

	// Register base addresses (spec §4.10's register interface).
	regWaveformSelectEnable = 0x01
	regTimer1               = 0x02
	regTimer2               = 0x03
	regTimerControl         = 0x04
	regRhythmControl        = 0xBD
	regOPL3Enable           = 0x105
	regOPL3Panning          = 0x104

	regAMVib    = 0x20 // +op offset: tremolo/vibrato/sustain/KSR/multiple
	regKSLLevel = 0x40 // +op offset: key-scale level / total level
	regAttDecay = 0x60 // +op offset: attack rate / decay rate
	regSustRel  = 0x80 // +op offset: sustain level / release rate
	regWaveSel  = 0xE0 // +op offset: waveform select

	regFNumLow   = 0xA0 // +channel offset
	regFNumHigh  = 0xB0 // +channel offset: key-on/block/F-Number high bits
	regFeedConn  = 0xC0 // +channel offset: feedback/connection (+panning in OPL3)

	rhythmBassDrum  = 1 << 4
	rhythmSnare     = 1 << 3
	rhythmTomTom    = 1 << 2
	rhythmCymbal    = 1 << 1
	rhythmHiHat     = 1 << 0
	rhythmKeyOnAll  = 1 << 5
)

// opOffsetToChannel maps an operator register's 0x00-0x15-ish slot
// offset to (channel, operator-within-channel), following the OPL
// register layout's 3-groups-of-6 pattern (slots 0-5, 8-13, 16-21 per
// bank map to channels 0-2, 3-5, 6-8).
var opOffsetToChannel = buildOpOffsetTable()

func buildOpOffsetTable() map[int][2]int {
	m := make(map[int][2]int)
	group := 0
	for _, base := range []int{0, 8, 16} {
		for slot := 0; slot < 6; slot++ {
			ch := group*3 + slot/2
			op := slot % 2
			m[base+slot] = [2]int{ch, op}
		}
		group++
	}
	return m
}

// Chip is one OPL2/OPL3 FM synthesizer instance: 9 or 18 channels of
// two operators each, a shared LFO (vibrato/tremolo) and noise
// generator for rhythm mode, and a flat register-write interface.
// Mirrors audio_chip.go's SoundChip: one owning struct, a mutex
// guarding register-write state against the concurrent sample-
// generation read path, register addresses dispatched through a flat
// switch rather than a table of closures.
type Chip struct {
	mu sync.Mutex

	sampleRate float64
	opl3       bool
	rhythm     bool

	channels [MaxChannelsOPL3]channel

	lfoCounter  uint32
	vibratoIdx  int
	tremoloIdx  int
	noiseLFSR   uint32

	timer1, timer2               uint8
	timer1Enabled, timer2Enabled bool
}

// NewChip constructs a Chip at the given sample rate. OPL3 mode
// (doubling the channel count to 18 and enabling per-channel stereo
// panning) is switched on by writing register 0x105 with bit 0 set (and
// off again with bit 0 clear); the chip starts in OPL2 mode, as real
// hardware powers on.
func NewChip(sampleRate float64) *Chip {
	c := &Chip{
		sampleRate: sampleRate,
		noiseLFSR:  1,
	}
	for i := range c.channels {
		c.channels[i].ops[0].wave = waveSine
		c.channels[i].ops[1].wave = waveSine
		c.channels[i].ops[0].level = 511
		c.channels[i].ops[1].level = 511
	}
	return c
}

// HandleRegisterWrite processes one OPL register write.
//
// Register map overview (spec §4.10):
//
//	0x01:       waveform-select enable
//	0x02-0x04:  timers
//	0x20-0x35:  tremolo/vibrato/sustain/KSR/multiple, per operator
//	0x40-0x55:  key-scale level / total level, per operator
//	0x60-0x75:  attack rate / decay rate, per operator
//	0x80-0x95:  sustain level / release rate, per operator
//	0xA0-0xA8:  F-Number low bits, per channel
//	0xB0-0xB8:  key-on / block / F-Number high bits, per channel
//	0xBD:       rhythm mode control + bass/snare/tom/cymbal/hihat keys
//	0xC0-0xC8:  feedback / connection (+ panning in OPL3 high bank)
//	0xE0-0xF5:  waveform select, per operator
//	0x104:      OPL3 4-operator channel-pair enable mask
//	0x105:      OPL3 mode enable
//
// The high register bank (addr bit 0x100 set) addresses OPL3's second
// bank of 9 channels/18 operators, duplicating the low bank's layout.
func (c *Chip) HandleRegisterWrite(addr uint32, value uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if addr == regOPL3Enable {
		c.opl3 = value&0x01 != 0
		return
	}
	if addr == regOPL3Panning {
		return // channel-pair 4-op enable mask; 2-op-only chip leaves it inert
	}
	switch addr {
	case regTimer1:
		c.timer1 = value
		return
	case regTimer2:
		c.timer2 = value
		return
	case regTimerControl:
		c.timer1Enabled = value&0x40 == 0 && value&0x01 != 0
		c.timer2Enabled = value&0x20 == 0 && value&0x02 != 0
		return
	case regWaveformSelectEnable:
		return // waveform-select enable; this chip always honours op.wave
	}

	bank := 0
	if addr >= 0x100 {
		bank = 9
		addr -= 0x100
	}

	switch {
	case addr == regRhythmControl:
		c.handleRhythmControl(value)
		return
	case addr >= regFNumLow && addr < regFNumLow+9:
		c.channels[bank+int(addr-regFNumLow)].fnum =
			c.channels[bank+int(addr-regFNumLow)].fnum&0x300 | uint32(value)
		c.channels[bank+int(addr-regFNumLow)].retuneOperators(c.sampleRate)
		return
	case addr >= regFNumHigh && addr < regFNumHigh+9:
		c.handleFNumHigh(bank+int(addr-regFNumHigh), value)
		return
	case addr >= regFeedConn && addr < regFeedConn+9:
		ch := &c.channels[bank+int(addr-regFeedConn)]
		ch.feedback = int(value>>1) & 0x07
		ch.fmMode = value&0x01 == 0
		if c.opl3 {
			ch.left = value&0x10 != 0
			ch.right = value&0x20 != 0
		} else {
			ch.left, ch.right = true, true
		}
		return
	}

	if opSlot, ok := opOffsetToChannel[opRegSlot(addr)]; ok {
		ch := &c.channels[bank+opSlot[0]]
		op := &ch.ops[opSlot[1]]
		c.writeOperatorRegister(addr, value, op, ch)
	}
}

// opRegSlot subtracts the register group's base address (0x20, 0x40,
// 0x60, 0x80 or 0xE0) from an operator register address, leaving the
// 0..21-ish slot index opOffsetToChannel keys on.
func opRegSlot(addr uint32) int {
	switch {
	case addr >= regWaveSel:
		return int(addr - regWaveSel)
	case addr >= regSustRel:
		return int(addr - regSustRel)
	case addr >= regAttDecay:
		return int(addr - regAttDecay)
	case addr >= regKSLLevel:
		return int(addr - regKSLLevel)
	case addr >= regAMVib:
		return int(addr - regAMVib)
	}
	return -1
}

// writeOperatorRegister applies one of the five per-operator register
// banks (spec §4.10): tremolo/vibrato/sustain-hold/KSR/multiple,
// key-scale-level/total-level, attack/decay rate, sustain level/
// release rate, or waveform select. ch is only needed to retune this
// operator's phase increment after a MULT change.
func (c *Chip) writeOperatorRegister(addr uint32, value uint8, op *operator, ch *channel) {
	switch {
	case addr >= regAMVib && addr < regAMVib+0x16:
		op.am = value&0x80 != 0
		op.vib = value&0x40 != 0
		op.sustainHeld = value&0x20 != 0
		op.ksr = value&0x10 != 0
		op.mult = int(value & 0x0F)
		ch.retuneOperators(c.sampleRate)
	case addr >= regKSLLevel && addr < regKSLLevel+0x16:
		op.ksl = int(value>>6) & 0x03
		op.totalLevel = uint32(value & 0x3F)
	case addr >= regAttDecay && addr < regAttDecay+0x16:
		op.attackRate = int(value>>4) & 0x0F
		op.decayRate = int(value & 0x0F)
	case addr >= regSustRel && addr < regSustRel+0x16:
		op.sustainLevel = uint32(value>>4&0x0F) * 32
		op.releaseRate = int(value & 0x0F)
	case addr >= regWaveSel && addr < regWaveSel+0x16:
		sel := value & 0x07
		if !c.opl3 {
			sel &= 0x03 // OPL2 only exposes the first 4 waveforms
		}
		op.wave = waveform(sel)
	}
}

// handleFNumHigh applies register 0xB0+ch's key-on bit, block
// (octave), and F-Number high bits, retuning and re-triggering the
// channel's envelope on a 0->1 key-on transition.
func (c *Chip) handleFNumHigh(chIdx int, value uint8) {
	ch := &c.channels[chIdx]
	wasKeyOn := ch.ops[0].keyOn
	keyOn := value&0x20 != 0
	ch.block = uint(value>>2) & 0x07
	ch.fnum = ch.fnum&0xFF | uint32(value&0x03)<<8
	ch.retuneOperators(c.sampleRate)
	if keyOn && !wasKeyOn {
		ch.setKeyOn(true)
	} else if !keyOn && wasKeyOn {
		ch.setKeyOn(false)
	}
}

// handleRhythmControl applies register 0xBD's rhythm-mode enable and
// the five percussion key bits (spec §4.10's rhythm mode, driving
// channels 6-8's operators as bass drum/snare/tom/cymbal/hihat instead
// of melodic voices).
func (c *Chip) handleRhythmControl(value uint8) {
	c.rhythm = value&rhythmKeyOnAll != 0
	if !c.rhythm {
		return
	}
	percMap := []struct {
		bit uint8
		ch  int
		op  int
	}{
		{rhythmBassDrum, 6, 0},
		{rhythmBassDrum, 6, 1},
		{rhythmSnare, 7, 1},
		{rhythmHiHat, 7, 0},
		{rhythmTomTom, 8, 0},
		{rhythmCymbal, 8, 1},
	}
	for _, p := range percMap {
		ch := &c.channels[p.ch]
		op := &ch.ops[p.op]
		if value&p.bit != 0 {
			op.keyOnEvent()
		} else {
			op.keyOffEvent()
		}
	}
}

// activeChannels returns the channel count for the chip's current
// OPL2/OPL3 mode.
func (c *Chip) activeChannels() int {
	if c.opl3 {
		return MaxChannelsOPL3
	}
	return MaxChannelsOPL2
}

// vibratoTable is the classic 8-step OPL vibrato depth curve,
// expressed as a fractional frequency deviation.
var vibratoTable = [8]float64{0, 0.0007, 0.0014, 0.0007, 0, -0.0007, -0.0014, -0.0007}

// advanceLFO steps the shared vibrato/tremolo low-frequency
// oscillators and the rhythm-mode noise LFSR by one sample, following
// spec §4.10's per-sample LFO/noise update, and returns their current
// values for this sample's channel.tick calls.
func (c *Chip) advanceLFO() (tremolo, vibrato float64) {
	c.lfoCounter++
	if c.lfoCounter&1023 == 0 {
		c.vibratoIdx = (c.vibratoIdx + 1) % 8
	}
	if c.lfoCounter&63 == 0 {
		c.tremoloIdx = (c.tremoloIdx + 1) % 256
	}
	bit := (c.noiseLFSR ^ (c.noiseLFSR >> 13) ^ (c.noiseLFSR >> 15)) & 1
	c.noiseLFSR = (c.noiseLFSR >> 1) | (bit << 22)

	tri := c.tremoloIdx
	if tri >= 128 {
		tri = 255 - tri
	}
	return float64(tri) / 128 * 26, vibratoTable[c.vibratoIdx]
}

// GenerateSample renders one stereo sample frame by summing every
// active channel's FM output, attenuated by each operator's OPL3 pan
// bits (or centred in OPL2 mode).
func (c *Chip) GenerateSample() (left, right float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tremolo, vibrato := c.advanceLFO()

	var sumL, sumR int32
	n := c.activeChannels()
	for i := 0; i < n; i++ {
		if c.rhythm && i >= 6 && i < 9 {
			continue // channels 6-8 are driven by handleRhythmControl instead
		}
		out := c.channels[i].tick(tremolo, vibrato)
		if c.channels[i].left {
			sumL += out
		}
		if c.channels[i].right {
			sumR += out
		}
	}
	if c.rhythm {
		for i := 6; i < 9; i++ {
			out := c.channels[i].tick(tremolo, vibrato)
			sumL += out
			sumR += out
		}
	}

	const scale = 1.0 / (1 << 13)
	return float32(sumL) * scale, float32(sumR) * scale
}

// GenerateBlock fills left/right with n stereo samples.
func (c *Chip) GenerateBlock(left, right []float32) {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	for i := 0; i < n; i++ {
		left[i], right[i] = c.GenerateSample()
	}
}
