package level

import "github.com/doomcore/engine/internal/think"

// Light thinkers modulate a sector's LightLevel per tic by a
// pseudo-random or periodic pattern (spec §4.4), spawned from the
// sector's Special value at load time (spawnSectorSpecials below).
// No single original_source file isolates these four patterns — the
// classic LightFlash/StrobeFlash/FireFlicker/Glow split is reproduced
// directly from spec §4.4's description.

type LightFlash struct {
	Sector              int
	MaxLight, MinLight  int
	Count               int
	handle              think.Handle
}

func (l *LightFlash) SetHandle(h think.Handle) { l.handle = h }

func (l *LightFlash) Think(ctx any) think.Outcome {
	lv, _ := ctx.(*Level)
	if lv == nil {
		return think.Continue
	}
	l.Count--
	if l.Count > 0 {
		return think.Continue
	}
	sec := &lv.MapData.Sectors[l.Sector]
	if sec.LightLevel == l.MaxLight {
		sec.LightLevel = l.MinLight
		l.Count = 1 + lv.rng.next()%8
	} else {
		sec.LightLevel = l.MaxLight
		l.Count = 1 + lv.rng.next()%64
	}
	return think.Continue
}

type StrobeFlash struct {
	Sector               int
	MaxLight, MinLight   int
	DarkTime, BrightTime int
	Count                int
	handle               think.Handle
}

func (s *StrobeFlash) SetHandle(h think.Handle) { s.handle = h }

func (s *StrobeFlash) Think(ctx any) think.Outcome {
	lv, _ := ctx.(*Level)
	if lv == nil {
		return think.Continue
	}
	s.Count--
	if s.Count > 0 {
		return think.Continue
	}
	sec := &lv.MapData.Sectors[s.Sector]
	if sec.LightLevel == s.MinLight {
		sec.LightLevel = s.MaxLight
		s.Count = s.BrightTime
	} else {
		sec.LightLevel = s.MinLight
		s.Count = s.DarkTime
	}
	return think.Continue
}

type FireFlicker struct {
	Sector             int
	MaxLight, MinLight int
	Count              int
	handle             think.Handle
}

func (f *FireFlicker) SetHandle(h think.Handle) { f.handle = h }

func (f *FireFlicker) Think(ctx any) think.Outcome {
	lv, _ := ctx.(*Level)
	if lv == nil {
		return think.Continue
	}
	f.Count--
	if f.Count > 0 {
		return think.Continue
	}
	sec := &lv.MapData.Sectors[f.Sector]
	amount := (lv.rng.next() % 3) * 16
	if sec.LightLevel-amount < f.MinLight {
		sec.LightLevel = f.MinLight
	} else {
		sec.LightLevel = f.MaxLight - amount
	}
	f.Count = 4
	return think.Continue
}

type Glow struct {
	Sector             int
	MaxLight, MinLight int
	Direction          int
	handle             think.Handle
}

func (g *Glow) SetHandle(h think.Handle) { g.handle = h }

func (g *Glow) Think(ctx any) think.Outcome {
	lv, _ := ctx.(*Level)
	if lv == nil {
		return think.Continue
	}
	const glowSpeed = 1
	sec := &lv.MapData.Sectors[g.Sector]
	sec.LightLevel += glowSpeed * g.Direction
	if g.Direction < 0 && sec.LightLevel <= g.MinLight {
		g.Direction = 1
	} else if g.Direction > 0 && sec.LightLevel >= g.MaxLight {
		g.Direction = -1
	}
	return think.Continue
}

// spawnSectorSpecials reads every sector's classic light-special
// number and spawns the matching thinker, run once at level load.
func (lv *Level) spawnSectorSpecials() {
	for i := range lv.MapData.Sectors {
		sec := &lv.MapData.Sectors[i]
		min := sec.LightLevel - 80
		if min < 0 {
			min = 0
		}
		switch sec.Special {
		case 1:
			lv.pushLight(think.VariantLightFlash, &LightFlash{Sector: i, MaxLight: sec.LightLevel, MinLight: min, Count: 1 + lv.rng.next()%64})
		case 2:
			lv.pushLight(think.VariantStrobeFlash, &StrobeFlash{Sector: i, MaxLight: sec.LightLevel, MinLight: min, DarkTime: 15, BrightTime: 5, Count: 5})
		case 3:
			lv.pushLight(think.VariantStrobeFlash, &StrobeFlash{Sector: i, MaxLight: sec.LightLevel, MinLight: min, DarkTime: 35, BrightTime: 5, Count: 5})
		case 8:
			lv.pushLight(think.VariantGlow, &Glow{Sector: i, MaxLight: sec.LightLevel, MinLight: min, Direction: -1})
		case 17:
			lv.pushLight(think.VariantFireFlicker, &FireFlicker{Sector: i, MaxLight: sec.LightLevel, MinLight: min, Count: 4})
		}
	}
}

func (lv *Level) pushLight(variant think.Variant, t think.Thinker) {
	if _, ok := lv.Pool.Push(variant, t); !ok {
		lv.logDrop("light thinker")
	}
}
