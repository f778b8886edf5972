package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/collision"
)

// Platform is a moving collider that loops through its nodes at a constant
// speed. Riders standing on it are moved by the same delta.
type Platform struct {
	Nodes  []cp.Vector
	Speed  float64
	Width  float64
	Height float64

	world     *collision.World
	collider  *collision.Collider
	pos       cp.Vector
	target    int
	delta     cp.Vector
	riders    map[*Rider]struct{}
	destroyed bool
}

// NewPlatform creates a platform centered on the first node. A one-way
// platform can be jumped through from below.
func NewPlatform(world *collision.World, nodes []cp.Vector, width, height, speed float64, oneWay bool) *Platform {
	p := &Platform{
		Nodes:  nodes,
		Speed:  speed,
		Width:  width,
		Height: height,
		world:  world,
		riders: make(map[*Rider]struct{}),
	}
	if len(nodes) > 0 {
		p.pos = nodes[0]
	}
	if len(nodes) > 1 {
		p.target = 1
	}
	layer := collision.LayerSolid
	if oneWay {
		layer = collision.LayerSoftBottom
	}
	local := cp.BB{L: -width / 2, B: -height / 2, R: width / 2, T: height / 2}
	p.collider = world.AddKinematicBox(local, p.pos, layer, p)
	return p
}

// Advance moves the platform toward its current node. Reaching a node
// targets the next one, wrapping around at the end of the list.
func (p *Platform) Advance(dt float64) {
	if p == nil || p.destroyed {
		return
	}
	p.delta = cp.Vector{}
	if len(p.Nodes) < 2 || p.Speed <= 0 || dt <= 0 {
		return
	}
	start := p.pos
	step := p.Speed * dt
	to := p.Nodes[p.target]
	d := to.Sub(p.pos)
	dist := d.Length()
	if dist <= step {
		p.pos = to
		p.target = (p.target + 1) % len(p.Nodes)
	} else {
		p.pos = p.pos.Add(d.Mult(step / dist))
	}
	p.delta = p.pos.Sub(start)
	p.world.MoveCollider(p.collider, p.pos)
}

func (p *Platform) Position() cp.Vector {
	return p.pos
}

// Delta is how far the platform moved in its last Advance.
func (p *Platform) Delta() cp.Vector {
	if p == nil || p.destroyed {
		return cp.Vector{}
	}
	return p.delta
}

func (p *Platform) Bounds() cp.BB {
	return cp.NewBBForExtents(p.pos, p.Width/2, p.Height/2)
}

func (p *Platform) Board(r *Rider) {
	if p == nil || p.destroyed || r == nil {
		return
	}
	p.riders[r] = struct{}{}
}

func (p *Platform) Alight(r *Rider) {
	if p == nil {
		return
	}
	delete(p.riders, r)
}

func (p *Platform) Carries(r *Rider) bool {
	if p == nil || p.destroyed {
		return false
	}
	_, ok := p.riders[r]
	return ok
}

func (p *Platform) RiderCount() int {
	if p == nil {
		return 0
	}
	return len(p.riders)
}

// ReleaseAll drops every rider. Each rider notices on its next Carry.
func (p *Platform) ReleaseAll() {
	if p == nil {
		return
	}
	clear(p.riders)
}

func (p *Platform) Destroyed() bool {
	return p == nil || p.destroyed
}

// Destroy removes the platform from the world and releases its riders.
func (p *Platform) Destroy() {
	if p == nil || p.destroyed {
		return
	}
	p.ReleaseAll()
	p.world.Remove(p.collider)
	p.delta = cp.Vector{}
	p.destroyed = true
}

// Rider is a body's weak binding to the platform under it.
type Rider struct {
	platform *Platform
}

func (r *Rider) Bind(p *Platform) {
	if r.platform == p {
		if p != nil && !p.Carries(r) {
			p.Board(r)
		}
		return
	}
	r.Release()
	if p == nil || p.Destroyed() {
		return
	}
	r.platform = p
	p.Board(r)
}

func (r *Rider) Release() {
	if r.platform == nil {
		return
	}
	r.platform.Alight(r)
	r.platform = nil
}

// Platform returns the bound platform. A destroyed platform, or one that
// dropped the rider, unbinds silently and reports nil.
func (r *Rider) Platform() *Platform {
	if r.platform == nil {
		return nil
	}
	if r.platform.Destroyed() || !r.platform.Carries(r) {
		r.platform = nil
		return nil
	}
	return r.platform
}

// Carry returns the platform's delta for this tick, or zero when unbound.
func (r *Rider) Carry() cp.Vector {
	p := r.Platform()
	if p == nil {
		return cp.Vector{}
	}
	return p.Delta()
}
