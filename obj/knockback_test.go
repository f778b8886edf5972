package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnockbackSequence(t *testing.T) {
	b := NewBody(cp.Vector{}, 20, 40)
	b.Velocity = cp.Vector{X: 100, Y: 50}
	b.Movement.Add(component.Dashing)
	k := Knockback{Duration: 0.4, BlinkInterval: 0.1, RecoveryBlinks: 4}

	require.True(t, k.Trigger(&b, 300, -1, 240))
	assert.Equal(t, 240.0, k.Speed(), "clamped to max speed")
	assert.Equal(t, cp.Vector{}, b.Velocity)
	assert.True(t, b.Condition.Has(component.Hit))
	assert.False(t, b.Movement.Has(component.Dashing))
	assert.False(t, k.Trigger(&b, 100, 1, 240))

	assert.False(t, k.Advance(&b, 0.1))
	assert.InDelta(t, -180.0, b.Velocity.X, 1e-9)
	k.Advance(&b, 0.1)
	assert.InDelta(t, -120.0, b.Velocity.X, 1e-9)
	k.Advance(&b, 0.1)
	assert.InDelta(t, -60.0, b.Velocity.X, 1e-9)

	assert.True(t, k.Advance(&b, 0.1))
	assert.Zero(t, b.Velocity.X)
	assert.Equal(t, KnockbackRecovery, k.Phase())
	assert.True(t, b.Condition.Has(component.Recovering))
	assert.False(t, b.Condition.Has(component.Hit))

	k.Advance(&b, 0.1)
	assert.False(t, b.Visible)
	k.Advance(&b, 0.1)
	assert.True(t, b.Visible)
	k.Advance(&b, 0.1)
	assert.True(t, k.Advance(&b, 0.15))
	assert.Equal(t, KnockbackIdle, k.Phase())
	assert.True(t, b.Condition.Has(component.Normal))
	assert.True(t, b.Visible)
}

func TestKnockbackIgnoredWhileReacting(t *testing.T) {
	tests := []struct {
		name string
		cond component.ConditionFlag
	}{
		{name: "hit", cond: component.Hit},
		{name: "recovering", cond: component.Recovering},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBody(cp.Vector{}, 20, 40)
			b.Condition.Add(tt.cond)
			var k Knockback
			assert.False(t, k.Trigger(&b, 100, 1, 240))
			assert.Equal(t, KnockbackIdle, k.Phase())
		})
	}
}

func TestKnockbackZeroDurationEndsImmediately(t *testing.T) {
	b := NewBody(cp.Vector{}, 20, 40)
	var k Knockback
	require.True(t, k.Trigger(&b, 100, 1, 240))
	assert.True(t, k.Advance(&b, 0.016))
	assert.Zero(t, b.Velocity.X)
	assert.True(t, k.Advance(&b, 0.016), "no blinks means recovery ends at once")
	assert.True(t, b.Condition.Has(component.Normal))
}

func TestKnockbackReset(t *testing.T) {
	b := NewBody(cp.Vector{}, 20, 40)
	k := Knockback{Duration: 1, BlinkInterval: 0.1, RecoveryBlinks: 3}
	k.Trigger(&b, 100, 1, 240)
	k.Reset(&b)
	assert.Equal(t, KnockbackIdle, k.Phase())
	assert.True(t, b.Condition.Has(component.Normal))
}
