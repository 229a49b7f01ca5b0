package mobj

// Pickups sibling the monster Bestiary: a static per-Kind template for
// the touch-pickup kinds, each carrying the Item recipe TouchSpecial
// consumes. Grounded the same way as the monster entries — a small
// representative slice (health/ammo/weapon/key/backpack) exercises
// every branch applyItem (interact.go) dispatches on.
var Pickups [KindNumKinds]Item

func init() {
	registerItemStates()
}

func registerItemStates() {
	stimpack := registerStates([]State{{Sprite: "STIM", Frame: 0, Tics: -1, Next: StateNull}})[0]
	medikit := registerStates([]State{{Sprite: "MEDI", Frame: 0, Tics: -1, Next: StateNull}})[0]
	clip := registerStates([]State{{Sprite: "CLIP", Frame: 0, Tics: -1, Next: StateNull}})[0]
	shotgun := registerStates([]State{{Sprite: "SHOT", Frame: 0, Tics: -1, Next: StateNull}})[0]
	shellbox := registerStates([]State{{Sprite: "SBOX", Frame: 0, Tics: -1, Next: StateNull}})[0]
	soul := registerStates([]State{{Sprite: "SOUL", Frame: 0, Tics: 6, Next: StateNull}})[0]
	armorBonus := registerStates([]State{{Sprite: "BON2", Frame: 0, Tics: -1, Next: StateNull}})[0]
	backpack := registerStates([]State{{Sprite: "BPAK", Frame: 0, Tics: -1, Next: StateNull}})[0]
	bluecard := registerStates([]State{{Sprite: "BKEY", Frame: 0, Tics: -1, Next: StateNull}})[0]
	States[soul].Next = soul // the soulsphere re-enters its state every 6 tics until picked up

	Bestiary[KindStimpack] = BestiaryInfo{Radius: 20, Height: 16, Flags: FlagPickup, SpawnState: stimpack}
	Bestiary[KindMedikit] = BestiaryInfo{Radius: 20, Height: 16, Flags: FlagPickup, SpawnState: medikit}
	Bestiary[KindClip] = BestiaryInfo{Radius: 20, Height: 16, Flags: FlagPickup, SpawnState: clip}
	Bestiary[KindShotgun] = BestiaryInfo{Radius: 20, Height: 16, Flags: FlagPickup, SpawnState: shotgun}
	Bestiary[KindShellBox] = BestiaryInfo{Radius: 20, Height: 16, Flags: FlagPickup, SpawnState: shellbox}
	Bestiary[KindSoulsphere] = BestiaryInfo{Radius: 20, Height: 16, Flags: FlagPickup | FlagCountItem, SpawnState: soul}
	Bestiary[KindArmorBonus] = BestiaryInfo{Radius: 20, Height: 16, Flags: FlagPickup | FlagCountItem, SpawnState: armorBonus}
	Bestiary[KindBackpack] = BestiaryInfo{Radius: 20, Height: 16, Flags: FlagPickup | FlagCountItem, SpawnState: backpack}
	Bestiary[KindBlueCard] = BestiaryInfo{Radius: 20, Height: 16, Flags: FlagPickup, SpawnState: bluecard}

	Pickups[KindStimpack] = Item{Kind: ItemStimpack, Message: "Picked up a stimpack."}
	Pickups[KindMedikit] = Item{Kind: ItemMedikit, Message: "Picked up a medikit."}
	Pickups[KindClip] = Item{Kind: ItemClip, Message: "Picked up a clip."}
	Pickups[KindShotgun] = Item{Kind: ItemShotgun, Message: "You got the shotgun!", Sound: "wpnup"}
	Pickups[KindShellBox] = Item{Kind: ItemShellBox, Message: "Picked up a box of shells."}
	Pickups[KindSoulsphere] = Item{Kind: ItemSoulsphere, Message: "Supercharge!", Sound: "getpow", CountItem: true}
	Pickups[KindArmorBonus] = Item{Kind: ItemArmorBonus, Message: "Picked up an armor bonus.", CountItem: true}
	Pickups[KindBackpack] = Item{Kind: ItemBackpack, Message: "Picked up a backpack.", CountItem: true}
	Pickups[KindBlueCard] = Item{Kind: ItemBlueCard, Message: "Picked up a blue keycard."}
}
