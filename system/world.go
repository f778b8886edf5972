package system

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/prefabs"
)

// fallMargin is how far below the level a body may drop before it counts
// as lost.
const fallMargin = 64.0

// Config is every tunable the world needs to spawn a level.
type Config struct {
	Player    obj.Tuning
	Enemy     obj.EnemyConfig
	Behaviour prefabs.BehaviourSpec
	Platform  prefabs.PlatformSpec
	Shot      obj.ShotConfig
	Uppercut  obj.UppercutConfig
	Surfaces  prefabs.SurfacesSpec
	// Seed feeds the enemy behaviours. Enemy i uses Seed+i.
	Seed uint64
}

// DefaultConfig returns built-in values without touching the prefab files.
// Enemies use the random behaviour.
func DefaultConfig() Config {
	shot, up := obj.DefaultAttacks()
	return Config{
		Player:    obj.DefaultTuning(),
		Enemy:     obj.DefaultEnemyConfig(),
		Behaviour: prefabs.BehaviourSpec{Kind: "random", IdleTime: 3, IdleJitter: 2},
		Platform:  prefabs.PlatformSpec{Width: 96, Height: 16, Speed: 60},
		Shot:      shot,
		Uppercut:  up,
		Surfaces: prefabs.SurfacesSpec{
			Icy:    prefabs.IcySpec{AccelRate: 0.25},
			Bouncy: prefabs.BouncySpec{BounceRate: 1.1, BounceJumpRate: 1.4, DoubleJump: true},
		},
		Seed: 1,
	}
}

// LoadConfig reads every prefab spec.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return cfg, err
	}
	cfg.Player = obj.TuningFromSpec(player)

	enemy, err := prefabs.LoadEnemySpec()
	if err != nil {
		return cfg, err
	}
	cfg.Enemy = obj.EnemyConfigFromSpec(enemy)
	cfg.Behaviour = enemy.Behaviour

	platform, err := prefabs.LoadPlatformSpec()
	if err != nil {
		return cfg, err
	}
	cfg.Platform = *platform

	attacks, err := prefabs.LoadAttacksSpec()
	if err != nil {
		return cfg, err
	}
	cfg.Shot, cfg.Uppercut = obj.AttacksFromSpec(attacks)

	surfaces, err := prefabs.LoadSurfacesSpec()
	if err != nil {
		return cfg, err
	}
	cfg.Surfaces = *surfaces
	return cfg, nil
}

// World owns the level geometry and everything spawned into it, and steps
// them in a fixed order.
type World struct {
	Level      *levels.Level
	Collision  *collision.World
	Player     *obj.Player
	Enemies    []*obj.Enemy
	Platforms  []*obj.Platform
	Transients *obj.TransientPool
	// Camera is optional. When set it follows the player.
	Camera *obj.Camera
	Config Config

	spawn   cp.Vector
	ticks   uint64
	deaths  int
	kills   int
	stopped bool
}

// NewWorld builds the level's geometry and spawns its entities. input
// drives the player.
func NewWorld(lvl *levels.Level, cfg Config, input obj.InputSource) (*World, error) {
	if lvl == nil {
		return nil, fmt.Errorf("system: %w: nil level", levels.ErrBadLevel)
	}
	w := &World{
		Level:     lvl,
		Collision: BuildGeometry(lvl, cfg.Surfaces),
		Transients: &obj.TransientPool{
			GhostWidth:  cfg.Player.Width,
			GhostHeight: cfg.Player.Height,
			Max:         64,
		},
		Config: cfg,
	}
	w.spawnPlatforms()
	if err := w.spawnPlayer(input); err != nil {
		return nil, err
	}
	if err := w.spawnEnemies(); err != nil {
		return nil, err
	}
	log.Printf("world: loaded %s (%dx%d, %d enemies, %d platforms)",
		lvl.Name, lvl.Width, lvl.Height, len(w.Enemies), len(w.Platforms))
	return w, nil
}

// AttachCamera sets the camera bounds to the level and centers it on the
// player.
func (w *World) AttachCamera(c *obj.Camera) {
	w.Camera = c
	if c == nil {
		return
	}
	c.SetWorldBounds(w.Level.PixelSize())
	c.SnapTo(w.Player.Body.Center())
}

// Update steps the world by one tick.
func (w *World) Update(dt float64) {
	if w == nil || w.stopped || dt <= 0 {
		return
	}
	w.ticks++

	for _, p := range w.Platforms {
		p.Advance(dt)
	}
	w.Player.Tick(dt)
	for _, e := range w.Enemies {
		e.Tick(dt)
	}
	ResolveCombat(w.Player, w.Enemies)
	w.Transients.Advance(dt)
	if w.Camera != nil {
		w.Camera.Follow(&w.Player.Body)
	}
	w.reapEnemies()
	w.checkPlayer()
}

func (w *World) reapEnemies() {
	alive := w.Enemies[:0]
	for _, e := range w.Enemies {
		if e.Alive() && !w.lost(&e.Body) {
			alive = append(alive, e)
			continue
		}
		e.Destroy()
		w.kills++
	}
	for i := len(alive); i < len(w.Enemies); i++ {
		w.Enemies[i] = nil
	}
	w.Enemies = alive
}

func (w *World) checkPlayer() {
	if w.Player.Alive() && !w.lost(&w.Player.Body) {
		return
	}
	w.deaths++
	log.Printf("world: player down at %v, respawning (deaths=%d)", w.Player.Body.Position, w.deaths)
	w.Player.Respawn(w.spawn)
	if w.Camera != nil {
		w.Camera.SnapTo(w.Player.Body.Center())
	}
}

func (w *World) lost(b *obj.Body) bool {
	_, h := w.Level.PixelSize()
	return b.Position.Y > h+fallMargin
}

// SetPlayerTuning swaps the player's tuning between ticks.
func (w *World) SetPlayerTuning(t obj.Tuning) error {
	if err := w.Player.SetTuning(t); err != nil {
		return err
	}
	w.Config.Player = w.Player.Tuning
	w.Transients.GhostWidth = w.Player.Tuning.Width
	w.Transients.GhostHeight = w.Player.Tuning.Height
	return nil
}

// Spawn is the player's respawn point.
func (w *World) Spawn() cp.Vector {
	return w.spawn
}

func (w *World) Ticks() uint64 {
	return w.ticks
}

// Deaths counts player respawns.
func (w *World) Deaths() int {
	return w.deaths
}

// Kills counts enemies removed from the world.
func (w *World) Kills() int {
	return w.kills
}

// Close destroys every object. Update does nothing afterwards.
func (w *World) Close() {
	if w == nil || w.stopped {
		return
	}
	w.Player.Destroy()
	for _, e := range w.Enemies {
		e.Destroy()
	}
	for _, p := range w.Platforms {
		p.Destroy()
	}
	w.Enemies = nil
	w.Platforms = nil
	w.Transients.Clear()
	w.stopped = true
}
