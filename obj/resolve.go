package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/component"
)

var (
	vecDown = cp.Vector{X: 0, Y: 1}
	vecUp   = cp.Vector{X: 0, Y: -1}
)

// presenceReach is how far past the body's side the wall presence probe
// looks.
const presenceReach = 0.001

// Mover is the probe-driven body shared by the player and enemy
// controllers. It owns the ray fans and the contact state of the last
// resolution.
type Mover struct {
	Body   Body
	Events *component.Dispatcher
	Rider  Rider

	world  collision.Query
	ground *collision.Probe
	side   *collision.Probe

	skin           float64
	wallLeeway     float64
	slopeThreshold float64
	slopeFriction  float64

	grounded     bool
	groundNormal cp.Vector
	groundFresh  bool
	wallDir      float64
	wallContact  bool
	ceilContact  bool
}

func newMover(world collision.Query, body Body, t Tuning) (Mover, error) {
	ground, err := collision.NewProbe(t.GroundRays)
	if err != nil {
		return Mover{}, err
	}
	side, err := collision.NewProbe(t.SideRays)
	if err != nil {
		return Mover{}, err
	}
	m := Mover{
		Body:   body,
		Events: component.NewDispatcher(),
		world:  world,
		ground: ground,
		side:   side,
	}
	m.configure(t)
	return m, nil
}

func (m *Mover) configure(t Tuning) {
	m.skin = t.Skin
	m.wallLeeway = t.WallAngleLeeway
	m.slopeThreshold = t.SlopeNormalThreshold
	m.slopeFriction = t.SlopeFriction
}

func (m *Mover) Grounded() bool {
	return m.grounded
}

// GroundNormal is the normal of this tick's ground contact, or zero.
func (m *Mover) GroundNormal() cp.Vector {
	if !m.groundFresh {
		return cp.Vector{}
	}
	return m.groundNormal
}

// WallDirection is the side of the last wall contact: -1, 1 or 0.
func (m *Mover) WallDirection() float64 {
	return m.wallDir
}

// GroundRays returns the ground probe's ray origins, for debug drawing.
func (m *Mover) GroundRays() []cp.Vector {
	return m.ground.Origins()
}

func (m *Mover) SideRays() []cp.Vector {
	return m.side.Origins()
}

// beginTick applies the platform carry and clears the per-tick flags.
func (m *Mover) beginTick() {
	m.Body.Position = m.Body.Position.Add(m.Rider.Carry())
	m.Body.Movement.Remove(component.Landing)
	m.groundFresh = false
}

// applyGravity pulls an airborne body down and raises Falling on the tick
// vertical velocity turns downward.
func (m *Mover) applyGravity(gravity, maxFall float64) {
	b := &m.Body
	if !m.grounded && !b.WallAdhered() {
		b.Velocity.Y = math.Min(b.Velocity.Y+gravity, maxFall)
	}
	if b.Velocity.Y > 0 && !b.Movement.Has(component.Falling) {
		b.Movement.Add(component.Falling)
		b.Movement.Remove(component.Jumping)
		m.Events.Emit(component.OnFall)
	}
}

// resolveGround casts the ground fan and snaps the body onto the closest
// hit. It reports whether this tick is a landing.
func (m *Mover) resolveGround(dt float64) bool {
	b := &m.Body
	if !m.grounded && !b.Movement.Has(component.Falling) {
		return false
	}

	bb := b.AABB()
	cy := b.Position.Y - b.Height/2
	reach := m.skin
	if !m.grounded {
		reach = math.Abs(b.Velocity.Y * dt)
	}
	m.ground.Fan(cp.Vector{X: bb.L + m.skin, Y: cy}, cp.Vector{X: bb.R - m.skin, Y: cy})
	hit, ok := m.ground.Cast(m.world, vecDown, b.Height/2+reach, collision.MaskDown).Closest()
	if !ok {
		m.grounded = false
		m.Rider.Release()
		b.Surface = component.NormalSurface()
		return false
	}

	b.Position.Y = hit.Point.Y
	b.Velocity.Y = 0
	m.grounded = true
	m.groundNormal = hit.Normal
	m.groundFresh = true

	b.Surface = component.NormalSurface()
	if hit.Collider != nil {
		b.Surface = hit.Collider.Surface
		if p, isPlatform := hit.Collider.Owner.(*Platform); isPlatform {
			m.Rider.Bind(p)
		} else {
			m.Rider.Release()
		}
	} else {
		m.Rider.Release()
	}

	if !b.Movement.Has(component.Falling) {
		return false
	}
	b.Movement.Add(component.Landing)
	b.Movement.Remove(component.Jumping | component.WallSticking | component.WallSliding)
	m.Events.Emit(component.OnLand)
	return true
}

// resolveCeiling stops a rising body at the first surface above it. A
// grounded body that is not rising only reacts when a ceiling already cuts
// into it, and is not moved since that would push it into the floor.
func (m *Mover) resolveCeiling(dt float64) {
	b := &m.Body
	rising := b.Velocity.Y < 0
	if !rising && !m.grounded {
		m.ceilContact = false
		return
	}

	bb := b.AABB()
	cy := b.Position.Y - b.Height/2
	reach := m.skin
	if rising {
		reach = math.Max(m.skin, -b.Velocity.Y*dt)
	}
	m.ground.Fan(cp.Vector{X: bb.L + m.skin, Y: cy}, cp.Vector{X: bb.R - m.skin, Y: cy})
	hit, ok := m.ground.Cast(m.world, vecUp, b.Height/2+reach, collision.MaskUp).Closest()
	if !ok || (!rising && hit.Distance >= b.Height/2) {
		m.ceilContact = false
		return
	}
	b.Velocity.Y = 0
	if rising {
		b.Position.Y = hit.Point.Y + b.Height
	} else if m.ceilContact {
		return
	}
	m.ceilContact = true
	m.Events.Emit(component.OnCeilingCollision)
}

// sideFan spreads the side rays over the body's height, inset by the skin
// so the bottom ray does not graze the floor it stands on.
func (m *Mover) sideFan() {
	b := &m.Body
	top := b.Position.Y - b.Height
	m.side.Fan(cp.Vector{X: b.Position.X, Y: top + m.skin}, cp.Vector{X: b.Position.X, Y: b.Position.Y - m.skin})
}

// resolveLateral stops the body at a vertical wall in its direction of
// travel. Ramps and single-ray hits do not block. It reports whether a
// wall was hit.
func (m *Mover) resolveLateral(dt float64) bool {
	b := &m.Body
	vx := b.Velocity.X
	if vx == 0 {
		m.wallContact = false
		return false
	}
	dir := common.Sign(vx)
	m.sideFan()
	res := m.side.Cast(m.world, cp.Vector{X: dir}, b.Width/2+math.Abs(vx*dt), collision.MaskSide)

	a, c, ok := res.AdjacentPair()
	if !ok || !m.isWall(a.Point, c.Point) {
		m.wallContact = false
		return false
	}
	closest, _ := res.Closest()
	b.Position.X += dir * (closest.Distance - b.Width/2)
	b.Velocity.X = 0
	m.wallDir = dir
	if !m.wallContact {
		m.wallContact = true
		m.Events.Emit(component.OnLateralCollision)
	}
	return true
}

// isWall reports whether the segment between two hit points is within the
// leeway of vertical.
func (m *Mover) isWall(p0, p1 cp.Vector) bool {
	seg := p1.Sub(p0)
	if seg.LengthSq() == 0 {
		return false
	}
	fromVertical := math.Atan2(math.Abs(seg.X), math.Abs(seg.Y)) * 180 / math.Pi
	return fromVertical <= m.wallLeeway
}

// wallPresent probes a hair past the body's side toward dir. It returns
// the lowest hit for effects.
func (m *Mover) wallPresent(dir float64) (collision.RayHit, bool) {
	if dir == 0 {
		return collision.RayHit{}, false
	}
	b := &m.Body
	m.sideFan()
	res := m.side.Cast(m.world, cp.Vector{X: dir}, b.Width/2+presenceReach, collision.MaskSide)
	return res.Lowest()
}

// followSlope adjusts horizontal speed and height on a sloped ground
// contact from this tick's probe. It reports whether a slope was followed.
func (m *Mover) followSlope(dt, axis, maxSpeed float64) bool {
	b := &m.Body
	if !m.grounded || !m.groundFresh || axis == 0 {
		return false
	}
	n := m.groundNormal
	if math.Abs(n.X) <= m.slopeThreshold {
		return false
	}
	vx := common.Clamp(b.Velocity.X-n.X*m.slopeFriction, -maxSpeed, maxSpeed)
	b.Velocity.X = vx
	b.Position.Y += n.X * math.Abs(vx) * dt * common.Sign(vx-n.X)
	b.Movement.Remove(component.Landing)
	return true
}

// integrate moves the body by its velocity. Moving follows the body's own
// horizontal displacement; the platform carry is not counted. A grounded
// body moving up leaves the ground.
func (m *Mover) integrate(dt float64) {
	b := &m.Body
	step := b.Velocity.Mult(dt)
	b.Position = b.Position.Add(step)
	if step.X != 0 {
		b.Movement.Add(component.Moving)
	} else {
		b.Movement.Add(component.Idle)
	}
	if m.grounded && b.Velocity.Y < 0 {
		m.grounded = false
		m.groundFresh = false
		m.Rider.Release()
	}
}

// clampVelocity enforces the caps and resets non-finite components. It
// reports whether a reset happened.
func (m *Mover) clampVelocity(maxSpeed, maxFall float64) bool {
	b := &m.Body
	reset := false
	if !common.Finite(b.Velocity.X) {
		b.Velocity.X = 0
		reset = true
	}
	if !common.Finite(b.Velocity.Y) {
		b.Velocity.Y = 0
		reset = true
	}
	if !common.Finite(b.Position.X) || !common.Finite(b.Position.Y) {
		b.Position = cp.Vector{}
		reset = true
	}
	b.Velocity.X = common.Clamp(b.Velocity.X, -maxSpeed, maxSpeed)
	if b.Velocity.Y > maxFall {
		b.Velocity.Y = maxFall
	}
	return reset
}

// release drops the platform binding and every observer.
func (m *Mover) release() {
	m.Rider.Release()
	m.Events.Close()
}
