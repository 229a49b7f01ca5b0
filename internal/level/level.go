// Package level owns a loaded map's full runtime state: geometry and
// graphics (mapdata.Map, pic.Data), the ThinkerPool every MapObject and
// sector mover lives in, the players, the deterministic RNG, the
// sim-to-audio sound queue, and the optional Lua script hook (spec §3,
// §4, §5). It is the concrete implementation of internal/mobj's World
// interface, the seam that breaks the mobj/level import cycle.
package level

import (
	"log"

	"github.com/doomcore/engine/internal/mapdata"
	"github.com/doomcore/engine/internal/mobj"
	"github.com/doomcore/engine/internal/pic"
	"github.com/doomcore/engine/internal/think"
)

// MaxPlayers bounds the Players array (spec §3).
const MaxPlayers = 4

type startPoint struct {
	X, Y, Angle float64
	Set         bool
}

// Level is a single loaded map's complete simulation state.
type Level struct {
	MapData *mapdata.Map
	Pic     *pic.Data
	Pool    *think.Pool

	Players      [MaxPlayers]*mobj.Player
	playerStarts [MaxPlayers]startPoint

	Tic        int
	validcount int

	rng    *rng
	sounds *soundQueue
	Script *ScriptHost

	BossKinds      map[mobj.Kind]bool
	bossKindsAlive map[mobj.Kind]int
}

// Config holds New's optional parameters, set via the Option functions
// below (the teacher's functional-option idiom, e.g. audio_backend_oto.go's
// OtoPlayer construction).
type Config struct {
	poolCapacity int
	rngSeed      uint32
	scriptSource string
	bossKinds    []mobj.Kind
}

type Option func(*Config)

// WithPoolCapacity overrides the ThinkerPool's fixed slot count.
func WithPoolCapacity(n int) Option { return func(c *Config) { c.poolCapacity = n } }

// WithRNGSeed fixes the deterministic RNG's seed (0 is remapped to 1).
func WithRNGSeed(seed uint32) Option { return func(c *Config) { c.rngSeed = seed } }

// WithScript supplies a level's optional SCRIPT lump source.
func WithScript(source string) Option { return func(c *Config) { c.scriptSource = source } }

// WithBossKinds names the Kinds whose death, once every instance of
// that kind on the map is dead, triggers a tag-666 floor lower and the
// script's on_boss_death hook.
func WithBossKinds(kinds ...mobj.Kind) Option {
	return func(c *Config) { c.bossKinds = kinds }
}

// New constructs a Level over an already-parsed Map and graphics set.
// Callers that just want "load this map from a WAD" should use Load
// instead.
func New(m *mapdata.Map, picData *pic.Data, opts ...Option) (*Level, error) {
	cfg := Config{poolCapacity: think.DefaultCapacity, rngSeed: 1}
	for _, o := range opts {
		o(&cfg)
	}

	m.ResetThingLists()

	script, err := NewScriptHost(cfg.scriptSource)
	if err != nil {
		return nil, err
	}

	lv := &Level{
		MapData:        m,
		Pic:            picData,
		Pool:           think.New(cfg.poolCapacity),
		rng:            newRNG(cfg.rngSeed),
		sounds:         newSoundQueue(),
		Script:         script,
		BossKinds:      make(map[mobj.Kind]bool, len(cfg.bossKinds)),
		bossKindsAlive: make(map[mobj.Kind]int),
	}
	for _, k := range cfg.bossKinds {
		lv.BossKinds[k] = true
	}
	return lv, nil
}

// Tick advances the simulation by one 35 Hz tic (spec §5): per-player
// input is resolved first, then every thinker in the pool runs once,
// then per-player power timers decay. cmds[i] is ignored for a slot
// with no live player.
func (lv *Level) Tick(cmds [MaxPlayers]mobj.TicCmd) {
	lv.Tic++
	lv.validcount++

	for i, p := range lv.Players {
		if p == nil {
			continue
		}
		lv.playerThink(p, cmds[i])
	}

	lv.Pool.Run(lv)

	for _, p := range lv.Players {
		if p != nil {
			p.TickPowers()
		}
	}
}

// DrainSound pops the oldest pending sound request so its caller can
// start playing it (spec §5's SPSC sound-request queue).
func (lv *Level) DrainSound() (name string, x, y float64, ok bool) {
	req, has := lv.sounds.pop()
	if !has {
		return "", 0, 0, false
	}
	return req.Name, req.X, req.Y, true
}

func (lv *Level) logDrop(what string) {
	log.Printf("level: thinker pool full, dropping %s spawn", what)
}
