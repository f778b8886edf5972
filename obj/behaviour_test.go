package obj

import (
	"testing"

	"github.com/milk9111/platformer/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBehavioursAgree(t *testing.T) {
	script, err := LoadScriptBehaviour("wander.tengo", 3, 2)
	require.NoError(t, err)
	behaviours := map[string]Behaviour{
		"random": RandomBehaviour{IdleTime: 3, IdleJitter: 2},
		"script": script,
	}

	tests := []struct {
		name     string
		ctx      BehaviourContext
		wantAxis float64
		wantHold float64
	}{
		{name: "left", ctx: BehaviourContext{Roll: 0.1, Roll2: 0.5}, wantAxis: -1, wantHold: 3},
		{name: "stop", ctx: BehaviourContext{Roll: 0.5, Roll2: 0.5}, wantAxis: 0, wantHold: 3},
		{name: "right", ctx: BehaviourContext{Roll: 0.9, Roll2: 0.5}, wantAxis: 1, wantHold: 3},
		{name: "short hold", ctx: BehaviourContext{Roll: 0.9, Roll2: 0}, wantAxis: 1, wantHold: 1},
		{name: "long hold", ctx: BehaviourContext{Roll: 0.9, Roll2: 0.75}, wantAxis: 1, wantHold: 4},
		{name: "blocked turns around", ctx: BehaviourContext{Axis: 1, Blocked: true, Roll: 0.9, Roll2: 0.5}, wantAxis: -1, wantHold: 3},
	}
	for name, b := range behaviours {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				axis, hold, err := b.Next(tt.ctx)
				require.NoError(t, err)
				assert.Equal(t, tt.wantAxis, axis)
				assert.InDelta(t, tt.wantHold, hold, 1e-9)
			})
		}
	}
}

func TestRandomBehaviourHoldFloor(t *testing.T) {
	axis, hold, err := RandomBehaviour{}.Next(BehaviourContext{Roll: 0.5})
	require.NoError(t, err)
	assert.Zero(t, axis)
	assert.Equal(t, 0.25, hold)
}

func TestScriptBehaviourErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		// compileErr is true when NewScriptBehaviour should fail.
		compileErr bool
	}{
		{name: "syntax", src: `next_axis := (`, compileErr: true},
		{name: "unknown import", src: `x := import("nope")`, compileErr: true},
		{name: "missing outputs", src: `x := axis`},
		{name: "runtime error", src: `next_axis := 1; hold := 1 / int(roll)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewScriptBehaviour(tt.name, []byte(tt.src), 1, 0)
			if tt.compileErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, _, err = b.Next(BehaviourContext{})
			assert.Error(t, err)
		})
	}
}

func TestScriptBehaviourClampsOutput(t *testing.T) {
	b, err := NewScriptBehaviour("wild", []byte(`next_axis := 7; hold := -1`), 1, 0)
	require.NoError(t, err)
	axis, hold, err := b.Next(BehaviourContext{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, axis)
	assert.Equal(t, minHold, hold)
}

func TestLoadScriptBehaviourMissing(t *testing.T) {
	_, err := LoadScriptBehaviour("does_not_exist.tengo", 1, 0)
	assert.ErrorIs(t, err, prefabs.ErrNotFound)
}

func TestBehaviourFromSpec(t *testing.T) {
	b, err := BehaviourFromSpec(prefabs.BehaviourSpec{Kind: "random", IdleTime: 2})
	require.NoError(t, err)
	assert.IsType(t, RandomBehaviour{}, b)

	b, err = BehaviourFromSpec(prefabs.BehaviourSpec{Kind: "script", Script: "wander.tengo", IdleTime: 2})
	require.NoError(t, err)
	assert.IsType(t, &ScriptBehaviour{}, b)
}
