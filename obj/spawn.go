package obj

import (
	"github.com/jakecoffman/cp"
)

// Effect kinds the controllers ask the spawner for.
const (
	EffectDashTrail  = "dash_trail"
	EffectDoubleJump = "double_jump"
	EffectWallSlide  = "wall_slide"
)

const (
	trailStartAlpha = 0.4
	trailFadeStep   = 0.05
	puffLifetime    = 0.25
)

// Spawner creates transient visual objects. The returned handle may be
// nil when the spawner drops the request.
type Spawner interface {
	Spawn(kind string, pos cp.Vector, facing float64) *Transient
}

// Transient is a short-lived visual: a fading dash ghost or a dust puff.
type Transient struct {
	Kind   string
	Pos    cp.Vector
	Facing float64
	Alpha  float64
	Width  float64
	Height float64

	ttl  float64
	dead bool
}

// Advance fades or ages the transient and reports whether it is still
// alive.
func (t *Transient) Advance(dt float64) bool {
	if t.dead {
		return false
	}
	switch t.Kind {
	case EffectDashTrail:
		t.Alpha -= trailFadeStep
		if t.Alpha <= 0 {
			t.dead = true
		}
	default:
		t.ttl -= dt
		if t.ttl > 0 {
			t.Alpha = t.ttl / puffLifetime
		} else {
			t.dead = true
		}
	}
	return !t.dead
}

func (t *Transient) Destroy() {
	if t != nil {
		t.dead = true
	}
}

func (t *Transient) Alive() bool {
	return t != nil && !t.dead
}

// TransientPool owns every live transient and destroys them once they fade.
type TransientPool struct {
	items []*Transient
	// Size of dash ghosts, usually the player's box.
	GhostWidth  float64
	GhostHeight float64
	// Max caps the pool. Zero means unlimited.
	Max int
}

func (tp *TransientPool) Spawn(kind string, pos cp.Vector, facing float64) *Transient {
	if tp == nil {
		return nil
	}
	if tp.Max > 0 && len(tp.items) >= tp.Max {
		return nil
	}
	t := &Transient{Kind: kind, Pos: pos, Facing: facing}
	switch kind {
	case EffectDashTrail:
		t.Alpha = trailStartAlpha
		t.Width = tp.GhostWidth
		t.Height = tp.GhostHeight
	default:
		t.Alpha = 1
		t.ttl = puffLifetime
		t.Width = 6
		t.Height = 6
	}
	tp.items = append(tp.items, t)
	return t
}

// Advance steps every transient and drops the dead ones.
func (tp *TransientPool) Advance(dt float64) {
	if tp == nil {
		return
	}
	alive := tp.items[:0]
	for _, t := range tp.items {
		if t.Advance(dt) {
			alive = append(alive, t)
		}
	}
	for i := len(alive); i < len(tp.items); i++ {
		tp.items[i] = nil
	}
	tp.items = alive
}

func (tp *TransientPool) Items() []*Transient {
	if tp == nil {
		return nil
	}
	return tp.items
}

func (tp *TransientPool) Count(kind string) int {
	n := 0
	for _, t := range tp.Items() {
		if t.Kind == kind {
			n++
		}
	}
	return n
}

func (tp *TransientPool) Clear() {
	if tp == nil {
		return
	}
	tp.items = nil
}
