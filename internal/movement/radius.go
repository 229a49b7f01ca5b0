package movement

import (
	"math"

	"github.com/doomcore/engine/internal/mobj"
)

const maxRadiusReach = 128.0

// RadiusDamage reports, for each shootable thing within damage +
// maxRadiusReach of source with a clear sight line, how much damage it
// takes — spec §4.3's radius attack: `dist = max(|dx|,|dy|) -
// self.radius - other.radius`, damage = `damage - dist` when
// `dist < damage`. The caller (internal/level) applies the damage via
// MapObject.Damage so mobj's Damage/BossDeath bookkeeping runs once in
// one place.
func RadiusDamage(lv Level, source *mobj.MapObject, damage float64) []struct {
	Thing *mobj.MapObject
	Dealt int
} {
	reach := damage + maxRadiusReach
	var hits []struct {
		Thing *mobj.MapObject
		Dealt int
	}

	m := lv.Map()
	var subs []int
	subsectorsInBox(m, m.StartNode, source.X-reach, source.X+reach, source.Y-reach, source.Y+reach, &subs)

	seen := make(map[int]bool)
	for _, si := range subs {
		sec := m.SubSectors[si].Sector
		if seen[sec] {
			continue
		}
		seen[sec] = true
		lv.ThingsInSector(sec, func(other *mobj.MapObject) bool {
			if other == source || !other.Flags.Has(mobj.FlagShootable) {
				return true
			}
			dx := math.Abs(other.X - source.X)
			dy := math.Abs(other.Y - source.Y)
			dist := dx
			if dy > dx {
				dist = dy
			}
			dist -= other.Radius + source.Radius
			if dist < 0 {
				dist = 0
			}
			if dist >= damage {
				return true
			}
			if !CheckSight(lv, source, other.X, other.Y, other.Z) {
				return true
			}
			hits = append(hits, struct {
				Thing *mobj.MapObject
				Dealt int
			}{other, int(damage - dist)})
			return true
		})
	}
	return hits
}
