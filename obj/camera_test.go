package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func TestCameraFollow(t *testing.T) {
	tests := []struct {
		name   string
		body   cp.Vector
		facing float64
		want   cp.Vector
	}{
		{name: "middle of level", body: cp.Vector{X: 500, Y: 270}, facing: 1, want: cp.Vector{X: 548, Y: 250}},
		{name: "facing left", body: cp.Vector{X: 500, Y: 270}, facing: -1, want: cp.Vector{X: 452, Y: 250}},
		{name: "clamped at origin", body: cp.Vector{X: 0, Y: 0}, facing: 1, want: cp.Vector{X: 160, Y: 120}},
		{name: "clamped at far edge", body: cp.Vector{X: 2000, Y: 900}, facing: 1, want: cp.Vector{X: 840, Y: 380}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(320, 240, 1)
			c.SetWorldBounds(1000, 500)
			c.SetSmooth(0)
			b := NewBody(tt.body, 20, 40)
			b.Facing = tt.facing
			c.Follow(&b)
			assert.Equal(t, tt.want, c.Pos)
		})
	}
}

func TestCameraSmoothing(t *testing.T) {
	c := NewCamera(320, 240, 1)
	c.LookAhead = 0
	c.SnapTo(cp.Vector{X: 100, Y: 100})
	b := NewBody(cp.Vector{X: 200, Y: 120}, 20, 40)

	c.Follow(&b)
	assert.Greater(t, c.Pos.X, 100.0)
	assert.Less(t, c.Pos.X, 200.0)
	for range 200 {
		c.Follow(&b)
	}
	assert.InDelta(t, 200.0, c.Pos.X, 1)
	assert.InDelta(t, 100.0, c.Pos.Y, 1)
}

func TestCameraSmallLevelIsCentered(t *testing.T) {
	c := NewCamera(320, 240, 2)
	c.SetWorldBounds(100, 100)
	c.SnapTo(cp.Vector{X: 10, Y: 90})
	assert.Equal(t, cp.Vector{X: 50, Y: 50}, c.Pos)
	assert.Equal(t, cp.Vector{X: -30, Y: -10}, c.ViewTopLeft())
}
