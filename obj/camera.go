package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// Camera follows a body with smoothing and a small look-ahead in the
// facing direction, clamped to the level bounds.
type Camera struct {
	Pos cp.Vector

	// LookAhead shifts the target along the body's facing, in pixels.
	LookAhead float64

	screenW float64
	screenH float64
	zoom    float64
	// smoothing factor (0..1). higher -> faster follow
	smooth float64
	// level size in pixels, 0 means unbounded
	worldW float64
	worldH float64
}

func NewCamera(screenW, screenH int, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{
		Pos:       cp.Vector{X: float64(screenW) / 2, Y: float64(screenH) / 2},
		LookAhead: 48,
		screenW:   float64(screenW),
		screenH:   float64(screenH),
		zoom:      zoom,
		smooth:    0.15,
	}
}

func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

func (c *Camera) Zoom() float64 {
	return c.zoom
}

// Follow moves the camera toward the body's center plus look-ahead. Call
// once per tick so the smoothing is frame-rate independent.
func (c *Camera) Follow(b *Body) {
	target := b.Center().Add(b.FacingVector().Mult(c.LookAhead))
	if c.smooth <= 0 {
		c.Pos = target
	} else {
		c.Pos = c.Pos.Lerp(target, c.smooth)
	}
	c.settle()
}

// SnapTo centers the camera on pos without smoothing, as after a respawn.
func (c *Camera) SnapTo(pos cp.Vector) {
	c.Pos = pos
	c.settle()
}

// ViewTopLeft returns the world-space top-left of the view.
func (c *Camera) ViewTopLeft() cp.Vector {
	return cp.Vector{
		X: c.Pos.X - c.screenW/c.zoom/2,
		Y: c.Pos.Y - c.screenH/c.zoom/2,
	}
}

// settle snaps to the 1/zoom grid and clamps to the level.
func (c *Camera) settle() {
	c.Pos.X = math.Round(c.Pos.X*c.zoom) / c.zoom
	c.Pos.Y = math.Round(c.Pos.Y*c.zoom) / c.zoom
	c.Pos.X = clampAxis(c.Pos.X, c.screenW/c.zoom/2, c.worldW)
	c.Pos.Y = clampAxis(c.Pos.Y, c.screenH/c.zoom/2, c.worldH)
}

// clampAxis keeps a view of half-size half inside [0, size]. A level
// smaller than the view is centered.
func clampAxis(v, half, size float64) float64 {
	if size <= 0 {
		return v
	}
	if size-half < half {
		return size / 2
	}
	return common.Clamp(v, half, size-half)
}
