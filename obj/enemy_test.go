package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnemy(t *testing.T, w collision.Query, pos cp.Vector, b Behaviour) *Enemy {
	t.Helper()
	e, err := NewEnemy(w, pos, DefaultEnemyConfig(), b, 1)
	require.NoError(t, err)
	return e
}

func TestEnemyTurnsAroundAtWall(t *testing.T) {
	e := newTestEnemy(t, wallWorld(), cp.Vector{X: 50, Y: floorY}, stubBehaviour{axis: 1})
	hits := countEvents(e.Events, component.OnLateralCollision)

	for range 300 {
		e.Tick(dt)
		require.LessOrEqual(t, e.Body.Position.X, 100-e.Body.Width/2+1e-6)
	}
	assert.Equal(t, 1, *hits)
	assert.Equal(t, -1.0, e.Axis())
	assert.Equal(t, -1.0, e.Body.Facing)
	assert.Less(t, e.Body.Position.X, 50.0)
}

func TestEnemySpeedCap(t *testing.T) {
	e := newTestEnemy(t, flatWorld(component.NormalSurface()), cp.Vector{X: 0, Y: floorY}, stubBehaviour{axis: -1})
	for range 120 {
		e.Tick(dt)
		require.LessOrEqual(t, -e.Body.Velocity.X, e.Config.Tuning.MaxSpeed)
	}
	assert.Equal(t, -e.Config.Tuning.MaxSpeed, e.Body.Velocity.X)
}

func TestEnemyLaunch(t *testing.T) {
	e := newTestEnemy(t, flatWorld(component.NormalSurface()), cp.Vector{X: 0, Y: floorY}, stubBehaviour{})
	for range 5 {
		e.Tick(dt)
	}
	require.True(t, e.Grounded())

	vy := -480.0
	e.ForceMovement(nil, &vy)
	assert.Zero(t, e.Body.Velocity.Y, "applied on the next tick")
	e.Tick(dt)
	assert.Equal(t, -480.0, e.Body.Velocity.Y)

	lands := countEvents(e.Events, component.OnLand)
	for range 120 {
		e.Tick(dt)
	}
	assert.Equal(t, 1, *lands)
	assert.True(t, e.Grounded())
}

func TestEnemyHurt(t *testing.T) {
	e := newTestEnemy(t, flatWorld(component.NormalSurface()), cp.Vector{X: 0, Y: floorY}, stubBehaviour{})
	deaths := 0
	e.Health.OnDeath = func(*component.Health) { deaths++ }

	assert.False(t, e.Hurt(component.Hurtbox{Damage: 1, Faction: component.FactionEnemy}), "friendly fire")
	assert.True(t, e.Hurt(component.Hurtbox{Damage: 1, Faction: component.FactionPlayer}))
	assert.Equal(t, 2.0, e.Health.Current)
	assert.True(t, e.Hurt(component.Hurtbox{Damage: 5, Faction: component.FactionPlayer}))
	assert.False(t, e.Alive())
	assert.Equal(t, 1, deaths)
	assert.False(t, e.Hurt(component.Hurtbox{Damage: 1, Faction: component.FactionPlayer}))
}

func TestEnemyTouchHurtbox(t *testing.T) {
	e := newTestEnemy(t, flatWorld(component.NormalSurface()), cp.Vector{X: 0, Y: floorY}, stubBehaviour{})
	tests := []struct {
		name  string
		other cp.Vector
		want  float64
	}{
		{name: "right", other: cp.Vector{X: 10}, want: 1},
		{name: "left", other: cp.Vector{X: -10}, want: -1},
		{name: "centered uses facing", other: cp.Vector{}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := e.TouchHurtbox(tt.other)
			assert.Equal(t, tt.want, h.Direction)
			assert.Equal(t, component.FactionEnemy, h.Faction)
			assert.Equal(t, e.Config.TouchDamage, h.Damage)
		})
	}
}

func TestEnemyDestroyDropsSubscriptions(t *testing.T) {
	e := newTestEnemy(t, flatWorld(component.NormalSurface()), cp.Vector{X: 0, Y: 100}, stubBehaviour{})
	require.Equal(t, 1, e.Events.Count(component.OnLand))
	e.Destroy()
	assert.Zero(t, e.Events.Count(component.OnLand))
	assert.True(t, e.Destroyed())

	pos := e.Body.Position
	e.Tick(dt)
	assert.Equal(t, pos, e.Body.Position)
}

func TestEnemyRunsWanderScript(t *testing.T) {
	spec, err := prefabs.LoadEnemySpec()
	require.NoError(t, err)
	b, err := BehaviourFromSpec(spec.Behaviour)
	require.NoError(t, err)

	e, err := NewEnemy(wallWorld(), cp.Vector{X: 0, Y: floorY}, EnemyConfigFromSpec(spec), b, 42)
	require.NoError(t, err)
	for range 600 {
		e.Tick(dt)
		require.Contains(t, []float64{-1, 0, 1}, e.Axis())
		require.NoError(t, e.Body.Movement.Validate())
	}
	assert.True(t, e.Grounded())
}
