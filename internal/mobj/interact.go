package mobj

// ItemKind identifies what a pickup-flagged MapObject grants, the
// sprite-keyed dispatch of gameplay/src/play/mobj/interact.rs's
// touch_special collapsed onto an explicit enum instead of matching on
// sprite name strings.
type ItemKind int

const (
	ItemNone ItemKind = iota
	ItemArmor1
	ItemArmor2
	ItemHealthBonus
	ItemArmorBonus
	ItemSoulsphere
	ItemMegasphere
	ItemBlueCard
	ItemYellowCard
	ItemRedCard
	ItemBlueSkull
	ItemYellowSkull
	ItemRedSkull
	ItemStimpack
	ItemMedikit
	ItemInvulnerability
	ItemBerserk
	ItemInvisibility
	ItemRadSuit
	ItemComputerMap
	ItemLightAmp
	ItemClip
	ItemClipBox
	ItemRocket
	ItemRocketBox
	ItemCell
	ItemCellBox
	ItemShell
	ItemShellBox
	ItemBackpack
	ItemBFG
	ItemChaingun
	ItemChainsaw
	ItemRocketLauncher
	ItemPlasmaGun
	ItemShotgun
	ItemSuperShotgun
)

// Item is the static per-ItemKind pickup recipe: bestiary.go's Bestiary
// sibling for the subset of map objects that are touch-pickups rather
// than monsters.
type Item struct {
	Kind    ItemKind
	Message string
	Sound   string
	CountItem bool
}

// BonusAdd is the bonuscount bump applied on every successful pickup
// (spec §8's item-flash scenario), matching the original's BONUSADD.
const BonusAdd = 6

// TouchSpecial runs when toucher overlaps a pickup-flagged special
// (spec §4.4's "item contact" edge case; grounded on
// gameplay/src/play/mobj/interact.rs's touch_special). Height-gates on
// z exactly like the original: the map is 2D collision-wise, so a
// pickup sitting on a high ledge is reachable only within height+8
// units of vertical overlap.
func TouchSpecial(toucher, special *MapObject, item Item, w World) {
	delta := special.Z - toucher.Z
	if delta > toucher.Height || delta < -8 {
		return
	}

	p := toucher.Player()
	if p == nil || toucher.Health <= 0 {
		return
	}

	if !applyItem(p, toucher, item) {
		return
	}

	toucher.Health = p.Health
	if item.CountItem {
		// itemcount tracking lives on the level's intermission stats,
		// not the player struct; exposed via World once level scoring
		// is wired up.
	}

	if w != nil {
		w.RemoveBody(special)
		sound := item.Sound
		if sound == "" {
			sound = "itemup"
		}
		w.PlaySound(sound, toucher.X, toucher.Y)
	}
	p.Message = item.Message
	p.BonusCount += BonusAdd
}

func applyItem(p *Player, toucher *MapObject, item Item) bool {
	switch item.Kind {
	case ItemArmor1:
		return p.GiveArmor(1)
	case ItemArmor2:
		return p.GiveArmor(2)
	case ItemHealthBonus:
		p.Health++
		if p.Health > 200 {
			p.Health = 200
		}
		return true
	case ItemArmorBonus:
		p.Armor++
		if p.Armor > 200 {
			p.Armor = 200
		}
		if p.ArmorType == 0 {
			p.ArmorType = 1
		}
		return true
	case ItemSoulsphere:
		p.Health += 100
		if p.Health > 200 {
			p.Health = 200
		}
		return true
	case ItemMegasphere:
		p.Health = 200
		p.GiveArmor(2)
		return true
	case ItemBlueCard:
		return p.GiveKey(KeyBlueCard)
	case ItemYellowCard:
		return p.GiveKey(KeyYellowCard)
	case ItemRedCard:
		return p.GiveKey(KeyRedCard)
	case ItemBlueSkull:
		return p.GiveKey(KeyBlueSkull)
	case ItemYellowSkull:
		return p.GiveKey(KeyYellowSkull)
	case ItemRedSkull:
		return p.GiveKey(KeyRedSkull)
	case ItemStimpack:
		return p.GiveBody(10)
	case ItemMedikit:
		return p.GiveBody(25)
	case ItemInvulnerability:
		return p.GivePower(PowerInvulnerability)
	case ItemBerserk:
		if !p.GivePower(PowerStrength) {
			return false
		}
		if p.ReadyWeapon != WeaponFist {
			p.PendingWeapon = WeaponFist
		}
		return true
	case ItemInvisibility:
		if !p.GivePower(PowerInvisibility) {
			return false
		}
		toucher.Flags |= FlagShadow
		return true
	case ItemRadSuit:
		return p.GivePower(PowerIronFeet)
	case ItemComputerMap:
		return p.GivePower(PowerAllMap)
	case ItemLightAmp:
		return p.GivePower(PowerInfrared)
	case ItemClip:
		return p.GiveAmmo(AmmoClip, 1)
	case ItemClipBox:
		return p.GiveAmmo(AmmoClip, 5)
	case ItemRocket:
		return p.GiveAmmo(AmmoMissile, 1)
	case ItemRocketBox:
		return p.GiveAmmo(AmmoMissile, 5)
	case ItemCell:
		return p.GiveAmmo(AmmoCell, 1)
	case ItemCellBox:
		return p.GiveAmmo(AmmoCell, 5)
	case ItemShell:
		return p.GiveAmmo(AmmoShell, 1)
	case ItemShellBox:
		return p.GiveAmmo(AmmoShell, 5)
	case ItemBackpack:
		if !p.Backpack {
			for i := range p.MaxAmmo {
				p.MaxAmmo[i] *= 2
			}
			p.Backpack = true
		}
		for a := AmmoType(0); a < NumAmmoTypes; a++ {
			p.GiveAmmo(a, 1)
		}
		return true
	case ItemBFG:
		return p.GiveWeapon(WeaponBFG, false)
	case ItemChaingun:
		return p.GiveWeapon(WeaponChaingun, false)
	case ItemChainsaw:
		return p.GiveWeapon(WeaponChainsaw, false)
	case ItemRocketLauncher:
		return p.GiveWeapon(WeaponRocketLauncher, false)
	case ItemPlasmaGun:
		return p.GiveWeapon(WeaponPlasma, false)
	case ItemShotgun:
		return p.GiveWeapon(WeaponShotgun, false)
	case ItemSuperShotgun:
		return p.GiveWeapon(WeaponSuperShotgun, false)
	default:
		return false
	}
}
