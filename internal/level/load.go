package level

import (
	"github.com/doomcore/engine/internal/mapdata"
	"github.com/doomcore/engine/internal/pic"
	"github.com/doomcore/engine/internal/wad"
)

// Load opens mapName's geometry and graphics out of f, constructs a
// Level, spawns every THINGS-lump entry and sector light special, then
// runs the script's on_level_load hook (spec §4.2's asset-loading
// surface, orchestrating mapdata.Load/pic.Load/LoadThings into one
// entry point for cmd/doomcore).
func Load(f *wad.File, mapName, skyTextureName string, opts ...Option) (*Level, error) {
	m, err := mapdata.Load(f, mapName)
	if err != nil {
		return nil, err
	}
	picData, err := pic.Load(f, skyTextureName)
	if err != nil {
		return nil, err
	}
	lv, err := New(m, picData, opts...)
	if err != nil {
		return nil, err
	}
	if err := lv.LoadThings(f, mapName); err != nil {
		return nil, err
	}
	lv.spawnSectorSpecials()
	lv.SpawnPlayers()
	lv.Script.OnLevelLoad()
	return lv, nil
}
