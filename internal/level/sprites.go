package level

import (
	"math"

	"github.com/doomcore/engine/internal/mobj"
	"github.com/doomcore/engine/internal/render"
	"github.com/doomcore/engine/internal/think"
)

// spriteRotation picks one of 8 rotation lumps for a sprite frame from
// the angle between the viewer and the thing relative to the thing's
// own facing (spec §4.9's rotation-table formula).
func spriteRotation(viewerToThing, thingAngle float64) int {
	delta := viewerToThing - thingAngle + math.Pi/16
	for delta < 0 {
		delta += 2 * math.Pi
	}
	return int(8*delta/(2*math.Pi)) % 8
}

// spriteLumpName builds the classic "TROOA1"-style lump name from a
// sprite/frame pair and a resolved 0-7 rotation. A sprite that only
// ships a single ("...0") rotation is tried first, since most pickups
// and projectiles don't vary by viewing angle.
func (lv *Level) spriteLumpName(sprite string, frame, rotation int) string {
	letter := string(rune('A' + frame))
	if _, ok := lv.Pic.Sprite(sprite + letter + "0"); ok {
		return sprite + letter + "0"
	}
	return sprite + letter + string(rune('1'+rotation))
}

// VisibleThings builds the renderer's per-frame Thing list from every
// live MapObject in the pool (spec §4.9's sprite projection input),
// resolving each one's current sprite lump by state and rotation.
func (lv *Level) VisibleThings(viewX, viewY float64) []render.Thing {
	var out []render.Thing
	lv.Pool.Each(func(variant think.Variant, payload think.Thinker) {
		if variant != think.VariantMapObject {
			return
		}
		m, ok := payload.(*mobj.MapObject)
		if !ok || int(m.State) >= len(mobj.States) {
			return
		}
		st := mobj.States[m.State]
		if st.Sprite == "" {
			return
		}
		viewerToThing := math.Atan2(m.Y-viewY, m.X-viewX)
		rot := spriteRotation(viewerToThing, m.Angle)
		sec := &lv.MapData.Sectors[m.Sector]
		out = append(out, render.Thing{
			X: m.X, Y: m.Y, Z: m.Z, Angle: m.Angle,
			SpriteLump: lv.spriteLumpName(st.Sprite, st.Frame, rot),
			LightLevel: sec.LightLevel,
			Shadow:     m.Flags.Has(mobj.FlagShadow),
		})
	})
	return out
}
