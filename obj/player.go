package obj

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/component"
)

// Player is the input-driven controller. Every module runs inside Tick in a
// fixed order; nothing else moves the body.
type Player struct {
	Mover

	Tuning    Tuning
	Health    *component.Health
	Dash      Dash
	Knockback Knockback
	Jump      Jumper
	Arsenal   *Arsenal

	Input   InputSource
	Spawner Spawner

	// Vulnerable is false while an attack grants invulnerability.
	Vulnerable bool

	now           float64
	intent        Intent
	stickDeadline float64
	pending       *component.Hurtbox
	destroyed     bool
}

// NewPlayer builds a player standing at pos. The tuning is sanitized; ray
// counts below two are rejected.
func NewPlayer(world collision.Query, pos cp.Vector, t Tuning, input InputSource) (*Player, error) {
	t.Sanitize()
	m, err := newMover(world, NewBody(pos, t.Width, t.Height), t)
	if err != nil {
		return nil, fmt.Errorf("new player: %w", err)
	}
	p := &Player{
		Mover:      m,
		Tuning:     t,
		Health:     component.NewHealth(t.Health),
		Input:      input,
		Vulnerable: true,
	}
	p.applyTuning()
	return p, nil
}

func (p *Player) applyTuning() {
	t := p.Tuning
	p.Dash.Speed = t.DashSpeed
	p.Dash.Duration = t.DashTime
	p.Knockback.Duration = t.KnockbackTime
	p.Knockback.BlinkInterval = t.BlinkInterval
	p.Knockback.RecoveryBlinks = t.RecoveryBlinks
	p.configure(t)
}

// SetTuning swaps the tuning in place, as on a prefab hot reload. The body
// keeps its position and state. Changed ray counts rebuild the probes.
func (p *Player) SetTuning(t Tuning) error {
	t.Sanitize()
	if t.GroundRays != p.ground.Count() {
		probe, err := collision.NewProbe(t.GroundRays)
		if err != nil {
			return fmt.Errorf("set tuning: %w", err)
		}
		p.ground = probe
	}
	if t.SideRays != p.side.Count() {
		probe, err := collision.NewProbe(t.SideRays)
		if err != nil {
			return fmt.Errorf("set tuning: %w", err)
		}
		p.side = probe
	}
	p.Tuning = t
	p.Body.Width = t.Width
	p.Body.Height = t.Height
	p.Health.Max = t.Health
	p.applyTuning()
	return nil
}

// Now is the controller clock in seconds.
func (p *Player) Now() float64 {
	return p.now
}

// Intent returns the input used by the last tick.
func (p *Player) Intent() Intent {
	return p.intent
}

// Tick advances the player by dt seconds.
func (p *Player) Tick(dt float64) {
	if p == nil || p.destroyed || !(dt > 0) || !common.Finite(dt) {
		return
	}
	p.now += dt
	b := &p.Body
	t := &p.Tuning

	var in Intent
	if p.Input != nil {
		in = p.Input.Poll().clamped()
	}
	if b.Condition.InputRestricted() {
		p.Jump.hold(in.Jump.Held)
		in = Intent{}
	} else {
		p.Jump.press(in.Jump.Held, p.now)
	}
	p.intent = in

	p.beginTick()
	if in.Axis != 0 {
		b.Facing = common.Sign(in.Axis)
	}

	p.applyGravity(t.Gravity, t.MaxFall)
	if p.resolveGround(dt) {
		p.Dash.Interrupt()
		b.Movement.Remove(component.Dashing)
	}
	if p.grounded {
		p.Dash.Release()
		p.Jump.touchGround(p.now, t.CoyoteTime)
	}

	accel, jumpSpeed := applyGroundEffect(b, p.grounded, t.Accel, t.JumpSpeed, &p.Jump.DoubleJump)
	p.locomote(in.Axis, accel)
	p.tryDash(in)
	p.followSlope(dt, in.Axis, p.Dash.Cap(t.MaxSpeed))

	p.takeHit()
	p.Knockback.Advance(b, dt)

	if b.WallAdhered() {
		p.holdWall()
	} else if p.resolveLateral(dt) {
		p.tryStick(in.Axis)
	}

	p.jump(in, jumpSpeed)
	if p.Arsenal != nil {
		p.Arsenal.Update(p, in, dt)
	}
	p.resolveCeiling(dt)

	p.Dash.Advance(dt)
	b.Movement.Set(component.Dashing, p.Dash.Phase() == DashEnter)
	if p.Dash.Phase() == DashEnter {
		p.spawn(EffectDashTrail, b.Position)
	}

	if p.clampVelocity(p.Dash.Cap(t.MaxSpeed), t.MaxFall) {
		log.Printf("player: non-finite motion reset at t=%.3f", p.now)
	}
	p.integrate(dt)
}

// locomote accelerates toward the input axis within the active cap, or
// decelerates toward rest without input.
func (p *Player) locomote(axis, accel float64) {
	b := &p.Body
	limit := p.Dash.Cap(p.Tuning.MaxSpeed)
	if axis != 0 {
		b.Velocity.X = common.Clamp(b.Velocity.X+accel*axis, -limit, limit)
		return
	}
	b.Velocity.X = common.Approach(b.Velocity.X, 0, accel)
}

// tryDash starts a dash from the ground or a wall.
func (p *Player) tryDash(in Intent) {
	b := &p.Body
	if !p.Tuning.CanDash || !in.Dash.Pressed || in.Axis == 0 {
		return
	}
	adhered := b.WallAdhered()
	if !p.grounded && !adhered {
		return
	}
	if b.Condition.Has(component.Hit) || !p.Dash.Trigger() {
		return
	}
	b.Velocity.X = p.Tuning.DashSpeed * common.Sign(in.Axis)
	if adhered {
		b.Movement.Remove(component.WallSticking | component.WallSliding)
	}
}

func (p *Player) takeHit() {
	if p.pending == nil {
		return
	}
	h := *p.pending
	p.pending = nil
	if !p.Vulnerable {
		return
	}
	if !p.Knockback.Trigger(&p.Body, h.Knockback, h.Direction, p.Tuning.MaxSpeed) {
		return
	}
	p.Dash.Interrupt()
	p.Health.TakeDamage(h.Damage)
}

func (p *Player) spawn(kind string, pos cp.Vector) {
	if p.Spawner != nil {
		p.Spawner.Spawn(kind, pos, p.Body.Facing)
	}
}

// ForceMovement overrides the velocity components that are not nil. An
// upward override clears Falling so the next descent raises OnFall again,
// and pulls the body off any wall it clings to.
func (p *Player) ForceMovement(vx, vy *float64) {
	if p == nil || p.destroyed {
		return
	}
	forceMovement(&p.Body, vx, vy)
}

func forceMovement(b *Body, vx, vy *float64) {
	if vx != nil && common.Finite(*vx) {
		b.Velocity.X = *vx
	}
	if vy != nil && common.Finite(*vy) {
		b.Velocity.Y = *vy
		if *vy < 0 {
			b.Movement.Remove(component.Falling | component.Landing | component.WallSticking | component.WallSliding)
		}
	}
}

// Hurt queues a hit for the next tick. It reports false when the hit is
// ignored: the player is invulnerable, already reacting to a hit, or gone.
func (p *Player) Hurt(h component.Hurtbox) bool {
	if p == nil || p.destroyed || !p.Vulnerable || p.pending != nil {
		return false
	}
	c := p.Body.Condition
	if c.Has(component.Hit) || c.Has(component.Recovering) {
		return false
	}
	p.pending = &h
	return true
}

func (p *Player) Bounds() cp.BB {
	return p.Body.AABB()
}

func (p *Player) Alive() bool {
	return p != nil && !p.destroyed && p.Health.IsAlive()
}

func (p *Player) Faction() component.Faction {
	return component.FactionPlayer
}

// Respawn puts the player back at pos with full health and every module at
// rest.
func (p *Player) Respawn(pos cp.Vector) {
	if p == nil || p.destroyed {
		return
	}
	if p.Arsenal != nil {
		p.Arsenal.Reset()
	}
	p.Rider.Release()
	p.Body = NewBody(pos, p.Tuning.Width, p.Tuning.Height)
	p.Health.Reset()
	p.Dash.Reset()
	p.Knockback.Reset(&p.Body)
	p.Jump.reset()
	p.Vulnerable = true
	p.pending = nil
	p.grounded = false
	p.groundFresh = false
	p.wallContact = false
	p.ceilContact = false
	p.wallDir = 0
}

// Destroy releases the platform binding, the attacks and every observer.
// The player ignores all calls afterwards.
func (p *Player) Destroy() {
	if p == nil || p.destroyed {
		return
	}
	if p.Arsenal != nil {
		p.Arsenal.Destroy()
	}
	p.release()
	p.destroyed = true
}

func (p *Player) Destroyed() bool {
	return p == nil || p.destroyed
}
