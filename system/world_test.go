package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/obj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60.0

// arena is a 10x4 room with a solid floor row and side walls. Entities are
// appended by each test.
func arena(t *testing.T, entities string) *levels.Level {
	t.Helper()
	src := `{"width":10,"height":4,"tiles":[
		1,0,0,0,0,0,0,0,0,1,
		1,0,0,0,0,0,0,0,0,1,
		1,0,0,0,0,0,0,0,0,1,
		1,1,1,1,1,1,1,1,1,1
	],"entities":[` + entities + `]}`
	lvl, err := levels.Parse("arena", []byte(src))
	require.NoError(t, err)
	return lvl
}

func newTestWorld(t *testing.T, lvl *levels.Level, in obj.InputSource) *World {
	t.Helper()
	w, err := NewWorld(lvl, DefaultConfig(), in)
	require.NoError(t, err)
	t.Cleanup(w.Close)
	return w
}

func TestBuildGeometryMergesTiles(t *testing.T) {
	lvl := arena(t, `{"type":"player","x":2,"y":2}`)
	world := BuildGeometry(lvl, DefaultConfig().Surfaces)

	// left column, right column, floor remainder, four bounds
	assert.Len(t, world.Colliders(), 7)

	hit, ok := world.Raycast(cp.Vector{X: 150, Y: 10}, cp.Vector{X: 0, Y: 1}, 200, collision.MaskDown)
	require.True(t, ok)
	assert.InDelta(t, 96.0, hit.Point.Y, 1e-9)
}

func TestBuildGeometryTileKinds(t *testing.T) {
	src := `{"width":6,"height":3,"tile_size":10,"tiles":[
		0,0,0,0,0,0,
		2,3,4,0,7,0,
		5,5,6,1,0,0
	],"entities":[{"type":"player","x":5,"y":0}]}`
	lvl, err := levels.Parse("kinds", []byte(src))
	require.NoError(t, err)
	surfaces := DefaultConfig().Surfaces
	world := BuildGeometry(lvl, surfaces)
	assert.Len(t, world.Colliders(), 11)

	down := cp.Vector{X: 0, Y: 1}
	up := cp.Vector{X: 0, Y: -1}
	tests := []struct {
		name   string
		origin cp.Vector
		dir    cp.Vector
		mask   collision.Layer
		layer  collision.Layer
		slope  bool
		y      float64
	}{
		{name: "slope right", origin: cp.Vector{X: 8, Y: 2}, dir: down, mask: collision.MaskDown, layer: collision.LayerSolid, slope: true, y: 12},
		{name: "slope left", origin: cp.Vector{X: 12, Y: 2}, dir: down, mask: collision.MaskDown, layer: collision.LayerSolid, slope: true, y: 12},
		{name: "one way", origin: cp.Vector{X: 25, Y: 2}, dir: down, mask: collision.MaskDown, layer: collision.LayerSoftBottom, y: 10},
		{name: "soft top", origin: cp.Vector{X: 45, Y: 25}, dir: up, mask: collision.MaskUp, layer: collision.LayerSoftTop, y: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := world.Raycast(tt.origin, tt.dir, 30, tt.mask)
			require.True(t, ok)
			require.NotNil(t, hit.Collider)
			assert.Equal(t, tt.layer, hit.Collider.Layer)
			assert.Equal(t, tt.slope, hit.Collider.IsSlope())
			assert.InDelta(t, tt.y, hit.Point.Y, 1e-6)
		})
	}

	kinds := map[component.SurfaceKind][]*collision.Collider{}
	for _, c := range world.Colliders() {
		kinds[c.Surface.Kind] = append(kinds[c.Surface.Kind], c)
	}
	require.Len(t, kinds[component.SurfaceIcy], 1, "icy run is merged")
	icy := kinds[component.SurfaceIcy][0]
	assert.InDelta(t, 0.0, icy.Bounds().L, 1e-9)
	assert.InDelta(t, 20.0, icy.Bounds().R, 1e-9)
	assert.Equal(t, surfaces.Icy.AccelRate, icy.Surface.AccelRate)

	require.Len(t, kinds[component.SurfaceBouncy], 1)
	bouncy := kinds[component.SurfaceBouncy][0]
	assert.Equal(t, surfaces.Bouncy.BounceRate, bouncy.Surface.BounceRate)
	assert.True(t, bouncy.Surface.DoubleJumpEnabled)
}

func TestNewWorldSpawns(t *testing.T) {
	lvl, err := levels.Load("demo.json")
	require.NoError(t, err)
	w := newTestWorld(t, lvl, &obj.HeldInput{})

	assert.Len(t, w.Enemies, 2)
	assert.Len(t, w.Platforms, 1)
	x, y := lvl.Feet(2, 12)
	assert.Equal(t, cp.Vector{X: x, Y: y}, w.Spawn())
	assert.Equal(t, w.Spawn(), w.Player.Body.Position)
	require.NotNil(t, w.Player.Arsenal)

	for range 60 {
		w.Update(dt)
	}
	assert.True(t, w.Player.Grounded())
	assert.InDelta(t, y, w.Player.Body.Position.Y, 1e-6)
	assert.Equal(t, uint64(60), w.Ticks())
}

func TestNilLevel(t *testing.T) {
	_, err := NewWorld(nil, DefaultConfig(), nil)
	assert.ErrorIs(t, err, levels.ErrBadLevel)
}

func TestBadTuningFailsSpawn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Player.GroundRays = 1
	_, err := NewWorld(arena(t, `{"type":"player","x":2,"y":2}`), cfg, nil)
	assert.ErrorIs(t, err, collision.ErrTooFewRays)
}

func TestDeadEnemyIsRemoved(t *testing.T) {
	w := newTestWorld(t, arena(t, `{"type":"player","x":1,"y":2},{"type":"enemy","x":7,"y":2}`), &obj.HeldInput{})
	require.Len(t, w.Enemies, 1)
	e := w.Enemies[0]

	e.Health.TakeDamage(100)
	w.Update(dt)
	assert.Empty(t, w.Enemies)
	assert.True(t, e.Destroyed())
	assert.Equal(t, 1, w.Kills())
}

func TestPlayerRespawns(t *testing.T) {
	tests := []struct {
		name string
		kill func(p *obj.Player)
	}{
		{name: "out of health", kill: func(p *obj.Player) { p.Health.TakeDamage(p.Health.Max) }},
		{name: "fell out", kill: func(p *obj.Player) { p.Body.Position.Y = 10_000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, arena(t, `{"type":"player","x":2,"y":2}`), &obj.HeldInput{})
			w.AttachCamera(obj.NewCamera(320, 128, 1))
			for range 10 {
				w.Update(dt)
			}
			w.Player.Body.Position.X += 64
			tt.kill(w.Player)
			w.Update(dt)

			assert.Equal(t, 1, w.Deaths())
			assert.Equal(t, w.Spawn(), w.Player.Body.Position)
			assert.Equal(t, w.Player.Health.Max, w.Player.Health.Current)
			assert.True(t, w.Player.Alive())
		})
	}
}

func TestEnemyTouchHurtsPlayer(t *testing.T) {
	w := newTestWorld(t, arena(t, `{"type":"player","x":3,"y":2},{"type":"enemy","x":6,"y":2}`), &obj.HeldInput{})
	for range 5 {
		w.Update(dt)
	}
	e := w.Enemies[0]
	e.Body.Position = w.Player.Body.Position

	w.Update(dt)
	w.Update(dt)
	assert.Equal(t, w.Player.Health.Max-w.Config.Enemy.TouchDamage, w.Player.Health.Current)
	assert.True(t, w.Player.Body.Condition.Has(component.Hit))

	// Further contact is ignored while the player reacts.
	for range 5 {
		e.Body.Position = w.Player.Body.Position
		w.Update(dt)
	}
	assert.Equal(t, w.Player.Health.Max-w.Config.Enemy.TouchDamage, w.Player.Health.Current)
}

func TestShotDamagesEnemy(t *testing.T) {
	in := &obj.HeldInput{}
	w := newTestWorld(t, arena(t, `{"type":"player","x":1,"y":2},{"type":"enemy","x":6,"y":2}`), in)
	e := w.Enemies[0]

	in.Raw.Shoot = true
	w.Update(dt)
	require.Len(t, w.Player.Arsenal.Shots(), 1)
	in.Raw.Shoot = false

	for range 40 {
		w.Update(dt)
	}
	assert.Equal(t, e.Config.Tuning.Health-w.Config.Shot.Damage, e.Health.Current)
	assert.Empty(t, w.Player.Arsenal.Shots())
}

func TestDashLeavesTrail(t *testing.T) {
	in := &obj.HeldInput{}
	w := newTestWorld(t, arena(t, `{"type":"player","x":2,"y":2}`), in)
	for range 5 {
		w.Update(dt)
	}
	in.Raw = obj.RawInput{Axis: 1, Dash: true}
	w.Update(dt)
	w.Update(dt)
	assert.Positive(t, w.Transients.Count(obj.EffectDashTrail))
}

func TestPlatformCarriesPlayer(t *testing.T) {
	// The platform's top sits on the bottom edge of row 1 so the player,
	// spawned in row 1, starts on it.
	lvl := arena(t, `{"type":"player","x":3,"y":1},{"type":"platform","nodes":[{"x":3,"y":2},{"x":6,"y":2}]}`)
	cfg := DefaultConfig()
	cfg.Platform.Height = 32
	w, err := NewWorld(lvl, cfg, &obj.HeldInput{})
	require.NoError(t, err)
	defer w.Close()

	for range 30 {
		w.Update(dt)
	}
	require.True(t, w.Player.Grounded())
	assert.Same(t, w.Platforms[0], w.Player.Rider.Platform())
	assert.Greater(t, w.Player.Body.Position.X, w.Spawn().X)
}

func TestSetPlayerTuning(t *testing.T) {
	w := newTestWorld(t, arena(t, `{"type":"player","x":2,"y":2}`), &obj.HeldInput{})
	tu := w.Config.Player
	tu.Width = 30
	require.NoError(t, w.SetPlayerTuning(tu))
	assert.Equal(t, 30.0, w.Transients.GhostWidth)

	tu.SideRays = 0
	assert.Error(t, w.SetPlayerTuning(tu))
}

func TestClosedWorldIgnoresUpdate(t *testing.T) {
	w, err := NewWorld(arena(t, `{"type":"player","x":2,"y":2}`), DefaultConfig(), nil)
	require.NoError(t, err)
	w.Close()
	w.Update(dt)
	assert.Zero(t, w.Ticks())
	assert.True(t, w.Player.Destroyed())
	w.Close()
}
