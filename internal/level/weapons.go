package level

import "github.com/doomcore/engine/internal/mobj"

// weaponInfo is the static per-weapon firing recipe (mobj/bestiary.go's
// sibling for weapons): ammo cost, pellet count/spread for shotgun-like
// weapons, and a damage die rolled per pellet.
type weaponInfo struct {
	Ammo      mobj.AmmoType
	NoAmmo    bool
	Cost      int
	Pellets   int
	DamageDie int
	DamageMul int
	Sound     string
	Range     float64
	Spread    float64
}

func (wi weaponInfo) dieSize() int {
	if wi.DamageDie <= 0 {
		return 1
	}
	return wi.DamageDie
}

// weapons covers the hitscan-capable slots; the rocket launcher,
// plasma gun, and BFG are supplemented-feature candidates this
// bestiary doesn't model a projectile for yet, so firing them falls
// back to the fist.
var weapons = map[mobj.Weapon]weaponInfo{
	mobj.WeaponFist:      {NoAmmo: true, DamageDie: 10, DamageMul: 2, Range: 64},
	mobj.WeaponChainsaw:  {NoAmmo: true, DamageDie: 10, DamageMul: 2, Range: 64, Sound: "sawful"},
	mobj.WeaponPistol:    {Ammo: mobj.AmmoClip, Cost: 1, Pellets: 1, DamageDie: 5, DamageMul: 3, Sound: "pistol", Range: 2048, Spread: 0.02},
	mobj.WeaponChaingun:  {Ammo: mobj.AmmoClip, Cost: 1, Pellets: 1, DamageDie: 5, DamageMul: 3, Sound: "pistol", Range: 2048, Spread: 0.02},
	mobj.WeaponShotgun:   {Ammo: mobj.AmmoShell, Cost: 1, Pellets: 7, DamageDie: 3, DamageMul: 1, Sound: "shotgn", Range: 2048, Spread: 0.08},
	mobj.WeaponSuperShotgun: {Ammo: mobj.AmmoShell, Cost: 2, Pellets: 20, DamageDie: 5, DamageMul: 1, Sound: "dshtgn", Range: 2048, Spread: 0.14},
}

// fireWeapon charges the player's ready weapon's ammo cost and fires
// its pellets as hitscans (spec §4.3's LineAttack, supplemented
// per-weapon spread/pellet-count feature).
func (lv *Level) fireWeapon(p *mobj.Player) {
	wi, ok := weapons[p.ReadyWeapon]
	if !ok {
		wi = weapons[mobj.WeaponFist]
	}
	if !wi.NoAmmo {
		if p.Ammo[wi.Ammo] < wi.Cost {
			return
		}
		p.Ammo[wi.Ammo] -= wi.Cost
	}

	body := p.Body
	if wi.Sound != "" {
		lv.PlaySound(wi.Sound, body.X, body.Y)
	}

	pellets := wi.Pellets
	if pellets < 1 {
		pellets = 1
	}
	dist := wi.Range
	if dist == 0 {
		dist = 64
	}
	for i := 0; i < pellets; i++ {
		spread := 0.0
		if wi.Spread > 0 {
			spread = (float64(lv.rng.next())/255 - 0.5) * 2 * wi.Spread
		}
		dmg := wi.DamageMul * ((lv.rng.next() % wi.dieSize()) + 1)
		lv.LineAttack(body, body.Angle+spread, dist, 0, dmg)
	}
}
