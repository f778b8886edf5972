package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/obj"
)

func (w *World) spawnPlayer(input obj.InputSource) error {
	pe := w.Level.Player()
	x, y := w.Level.Feet(pe.X, pe.Y)
	w.spawn = cp.Vector{X: x, Y: y}

	player, err := obj.NewPlayer(w.Collision, w.spawn, w.Config.Player, input)
	if err != nil {
		return fmt.Errorf("system: spawn player: %w", err)
	}
	player.Arsenal = obj.NewArsenal(w.Collision, w.Config.Shot, w.Config.Uppercut)
	player.Spawner = w.Transients
	player.Health.OnDamage = onPlayerDamage
	w.Player = player
	return nil
}

func (w *World) spawnEnemies() error {
	for i, pe := range w.Level.Of(levels.EntityEnemy) {
		behaviour, err := obj.BehaviourFromSpec(w.Config.Behaviour)
		if err != nil {
			return fmt.Errorf("system: spawn enemy %d: %w", i, err)
		}
		x, y := w.Level.Feet(pe.X, pe.Y)
		enemy, err := obj.NewEnemy(w.Collision, cp.Vector{X: x, Y: y}, w.Config.Enemy, behaviour, w.Config.Seed+uint64(i))
		if err != nil {
			return fmt.Errorf("system: spawn enemy %d: %w", i, err)
		}
		w.Enemies = append(w.Enemies, enemy)
	}
	return nil
}

func (w *World) spawnPlatforms() {
	spec := w.Config.Platform
	for _, pe := range w.Level.Of(levels.EntityPlatform) {
		nodes := make([]cp.Vector, 0, len(pe.Nodes))
		for _, n := range pe.Nodes {
			x, y := w.Level.TileCenter(n.X, n.Y)
			nodes = append(nodes, cp.Vector{X: x, Y: y})
		}
		platform := obj.NewPlatform(w.Collision, nodes, spec.Width, spec.Height, spec.Speed, spec.OneWay || pe.OneWay)
		w.Platforms = append(w.Platforms, platform)
	}
}
