package mobj

// Power indexes the Powers tic-counter array (spec §3).
type Power int

const (
	PowerInvulnerability Power = iota
	PowerStrength
	PowerInvisibility
	PowerIronFeet
	PowerAllMap
	PowerInfrared
	NumPowers
)

// Weapon identifies one of the player's weapon slots.
type Weapon int

const (
	WeaponFist Weapon = iota
	WeaponPistol
	WeaponShotgun
	WeaponChaingun
	WeaponRocketLauncher
	WeaponPlasma
	WeaponBFG
	WeaponChainsaw
	WeaponSuperShotgun
	NumWeapons
)

// AmmoType indexes the ammo/maxammo arrays.
type AmmoType int

const (
	AmmoClip AmmoType = iota
	AmmoShell
	AmmoCell
	AmmoMissile
	NumAmmoTypes
)

// Key identifies one of the three key-card/skull-key colors, doubled
// for card vs skull per classic DOOM.
type Key int

const (
	KeyBlueCard Key = iota
	KeyYellowCard
	KeyRedCard
	KeyBlueSkull
	KeyYellowSkull
	KeyRedSkull
	NumKeys
)

// TicCmd is the per-player input for one tic (spec §6.2).
type TicCmd struct {
	ForwardMove int8 // scaled forward/back
	SideMove    int8 // scaled strafe
	Turn        int16
	Attack      bool
	Use         bool
	ChangeWeapon int // -1 if none requested
	Jump        bool
	StrafeMod   bool
}

// PSprite is one overlay sprite (weapon or muzzle flash).
type PSprite struct {
	Sprite string
	Frame  int
	SX, SY float64
	Tics   int
	State  StateID
}

// Player is the per-human-player state (spec §3).
type Player struct {
	ViewZ, ViewHeight float64
	BobAmplitude      float64
	OnGround          bool

	Health, Armor int
	ArmorType     int
	Backpack      bool

	Ammo    [NumAmmoTypes]int
	MaxAmmo [NumAmmoTypes]int

	WeaponOwned  [NumWeapons]bool
	ReadyWeapon  Weapon
	PendingWeapon Weapon // == ReadyWeapon if no change pending

	Powers [NumPowers]int

	Keys [NumKeys]bool

	Frags int
	Cheats uint32

	Message string

	BonusCount  int
	DamageCount int
	ExtraLight  int
	FixedColormap int // -1 == none

	PSprites [2]PSprite // 0 = weapon, 1 = flash

	Body *MapObject
	Last TicCmd
}

func NewPlayer() *Player {
	p := &Player{ReadyWeapon: WeaponPistol, PendingWeapon: WeaponPistol, FixedColormap: -1}
	p.WeaponOwned[WeaponFist] = true
	p.WeaponOwned[WeaponPistol] = true
	p.MaxAmmo[AmmoClip] = 200
	p.MaxAmmo[AmmoShell] = 50
	p.MaxAmmo[AmmoCell] = 300
	p.MaxAmmo[AmmoMissile] = 50
	p.Ammo[AmmoClip] = 50
	p.Health = 100
	return p
}

// GiveBody adds hp points of health, capped at 100, reporting whether
// anything was actually given (spec §8's pickup scenarios: picking up
// a medikit at full health is a no-op, not a negative-then-clamp).
func (p *Player) GiveBody(hp int) bool {
	if p.Health >= 100 {
		return false
	}
	p.Health += hp
	if p.Health > 100 {
		p.Health = 100
	}
	return true
}

// GiveArmor sets armor to the class's full value if that is an
// improvement over what the player already has; armorType 1 is the
// green armor (1/3 absorption), 2 is blue (1/2 absorption).
func (p *Player) GiveArmor(armorType int) bool {
	hits := 100
	if armorType == 2 {
		hits = 200
	}
	if p.Armor >= hits {
		return false
	}
	p.ArmorType = armorType
	p.Armor = hits
	return true
}

// GiveAmmo adds count boxes of ammo of the given type (1 box = the
// type's per-pickup quantity), doubled if the player has a backpack,
// returning false if the player was already at MaxAmmo.
func (p *Player) GiveAmmo(a AmmoType, boxes int) bool {
	if p.Ammo[a] == p.MaxAmmo[a] {
		return false
	}
	amount := boxes * ammoClipAmount[a]
	if p.Backpack {
		amount *= 2
	}
	p.Ammo[a] += amount
	if p.Ammo[a] > p.MaxAmmo[a] {
		p.Ammo[a] = p.MaxAmmo[a]
	}
	return true
}

var ammoClipAmount = [NumAmmoTypes]int{
	AmmoClip:    10,
	AmmoShell:   4,
	AmmoCell:    20,
	AmmoMissile: 1,
}

// GiveWeapon marks w owned, switches the player to it unless a better
// weapon is already up, and tops off its matching ammo type.
func (p *Player) GiveWeapon(w Weapon, dropped bool) bool {
	alreadyOwned := p.WeaponOwned[w]
	p.WeaponOwned[w] = true
	if a, ok := weaponAmmo[w]; ok {
		amt := 2
		if dropped {
			amt = 1
		}
		p.GiveAmmo(a, amt)
	}
	if !alreadyOwned && w > p.ReadyWeapon {
		p.PendingWeapon = w
	}
	return true
}

var weaponAmmo = map[Weapon]AmmoType{
	WeaponPistol:       AmmoClip,
	WeaponShotgun:      AmmoShell,
	WeaponSuperShotgun: AmmoShell,
	WeaponChaingun:     AmmoClip,
	WeaponRocketLauncher: AmmoMissile,
	WeaponPlasma:       AmmoCell,
	WeaponBFG:          AmmoCell,
}

// GivePower activates a tic-counted power, returning false if it was
// already running (re-touching the same sphere is a no-op per spec).
func (p *Player) GivePower(pw Power) bool {
	const powerDurationTics = 30 * 35
	if p.Powers[pw] > 0 && pw != PowerAllMap {
		return false
	}
	p.Powers[pw] = powerDurationTics
	return true
}

// GiveKey records possession of a key-card/skull-key, reporting
// whether it was newly given.
func (p *Player) GiveKey(k Key) bool {
	if p.Keys[k] {
		return false
	}
	p.Keys[k] = true
	return true
}

// TickPowers decrements every tic-counted power, the generic version
// of the original's per-power decrement block.
func (p *Player) TickPowers() {
	for i := range p.Powers {
		if p.Powers[i] > 0 {
			p.Powers[i]--
		}
	}
	if p.DamageCount > 0 {
		p.DamageCount--
	}
	if p.BonusCount > 0 {
		p.BonusCount--
	}
}
