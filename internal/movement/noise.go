package movement

import (
	"github.com/doomcore/engine/internal/mapdata"
	"github.com/doomcore/engine/internal/mobj"
)

// NoiseAlert floods sound from the emitter's sector through two-sided,
// non-BlockSound lines (spec §4.4's noise_alert): each reached sector
// gets SoundTarget set to the emitter's handle and Soundtraversed
// recording the hop count, bounded by Validcount so no sector is
// revisited in one flood.
func NoiseAlert(m *mapdata.Map, emitter *mobj.MapObject, validcount int) {
	startSector := emitter.Sector
	floodSector(m, startSector, emitter, 0, validcount)
}

func floodSector(m *mapdata.Map, secIdx int, emitter *mobj.MapObject, hops, validcount int) {
	sec := &m.Sectors[secIdx]
	if sec.Validcount == validcount {
		return
	}
	sec.Validcount = validcount
	sec.Soundtraversed = hops + 1
	sec.SoundTarget = int(emitter.Handle().Index)

	for li := range m.Linedefs {
		l := &m.Linedefs[li]
		if !l.TwoSided() || l.Flags&mapdata.LineBlockSound != 0 {
			continue
		}
		front := m.Sidedefs[l.FrontSide].Sector
		back := m.Sidedefs[l.BackSide].Sector
		var other int
		switch secIdx {
		case front:
			other = back
		case back:
			other = front
		default:
			continue
		}
		floodSector(m, other, emitter, hops+1, validcount)
	}
}
