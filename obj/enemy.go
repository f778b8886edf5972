package obj

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/prefabs"
)

// EnemyConfig is the enemy prefab after defaults are applied.
type EnemyConfig struct {
	Tuning         Tuning
	TouchDamage    float64
	TouchKnockback float64
}

func DefaultEnemyConfig() EnemyConfig {
	t := DefaultTuning()
	t.Width, t.Height = 24, 24
	t.Health = 3
	t.Accel = 2
	t.MaxSpeed = 60
	t.GroundRays, t.SideRays = 4, 4
	t.CanDash, t.CanStickWall, t.CanDoubleJump = false, false, false
	return EnemyConfig{Tuning: t, TouchDamage: 1, TouchKnockback: 200}
}

func EnemyConfigFromSpec(spec *prefabs.EnemySpec) EnemyConfig {
	cfg := DefaultEnemyConfig()
	if spec == nil {
		return cfg
	}
	t := &cfg.Tuning
	applyMovementSpec(t, spec.Movement)
	applyProbeSpec(t, spec.Probe)
	setIf(&t.Width, spec.Collider.Width)
	setIf(&t.Height, spec.Collider.Height)
	setIf(&t.Health, spec.Health)
	setIf(&cfg.TouchDamage, spec.Touch.Damage)
	setIf(&cfg.TouchKnockback, spec.Touch.Knockback)
	return cfg
}

// Enemy is an AI-driven body. It walks with the same resolvers as the
// player but has no jump, dash or wall abilities; its axis comes from a
// Behaviour.
type Enemy struct {
	Mover

	Config    EnemyConfig
	Health    *component.Health
	Behaviour Behaviour

	rng     *rand.Rand
	axis    float64
	hold    float64
	blocked bool
	forceX  *float64
	forceY  *float64
	onLand  component.Subscription

	destroyed bool
}

// NewEnemy places an enemy at pos. seed makes its rolls reproducible.
func NewEnemy(world collision.Query, pos cp.Vector, cfg EnemyConfig, behaviour Behaviour, seed uint64) (*Enemy, error) {
	cfg.Tuning.Sanitize()
	m, err := newMover(world, NewBody(pos, cfg.Tuning.Width, cfg.Tuning.Height), cfg.Tuning)
	if err != nil {
		return nil, fmt.Errorf("new enemy: %w", err)
	}
	if behaviour == nil {
		behaviour = RandomBehaviour{IdleTime: 3, IdleJitter: 2}
	}
	e := &Enemy{
		Mover:     m,
		Config:    cfg,
		Health:    component.NewHealth(cfg.Tuning.Health),
		Behaviour: behaviour,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	// Pick a fresh direction once back on the ground.
	e.onLand = e.Events.Subscribe(component.OnLand, func(component.MovementEvent) {
		e.hold = 0
	})
	return e, nil
}

// Axis is the direction the enemy is walking in.
func (e *Enemy) Axis() float64 {
	return e.axis
}

func (e *Enemy) Tick(dt float64) {
	if e == nil || e.destroyed || !(dt > 0) || !common.Finite(dt) {
		return
	}
	b := &e.Body
	t := &e.Config.Tuning

	e.beginTick()
	if b.Condition.InputRestricted() {
		e.axis = 0
	} else {
		e.think(dt)
	}
	if e.axis != 0 {
		b.Facing = common.Sign(e.axis)
	}

	e.applyGravity(t.Gravity, t.MaxFall)
	e.resolveGround(dt)

	accel, _ := applyGroundEffect(b, e.grounded, t.Accel, t.JumpSpeed, nil)
	if e.axis != 0 {
		b.Velocity.X = common.Clamp(b.Velocity.X+accel*e.axis, -t.MaxSpeed, t.MaxSpeed)
	} else {
		b.Velocity.X = common.Approach(b.Velocity.X, 0, accel)
	}
	if e.forceX != nil || e.forceY != nil {
		forceMovement(b, e.forceX, e.forceY)
		e.forceX, e.forceY = nil, nil
	}
	e.followSlope(dt, e.axis, t.MaxSpeed)

	if e.resolveLateral(dt) {
		e.blocked = true
	}
	e.resolveCeiling(dt)

	if e.clampVelocity(t.MaxSpeed, t.MaxFall) {
		log.Printf("enemy: non-finite motion reset")
	}
	e.integrate(dt)
}

func (e *Enemy) think(dt float64) {
	e.hold -= dt
	if e.hold > 0 && !e.blocked {
		return
	}
	axis, hold, err := e.Behaviour.Next(BehaviourContext{
		Axis:    e.axis,
		Blocked: e.blocked,
		Roll:    e.rng.Float64(),
		Roll2:   e.rng.Float64(),
	})
	if err != nil {
		log.Printf("enemy: %v", err)
		axis, hold = 0, 1
	}
	e.axis = common.Clamp(axis, -1, 1)
	e.hold = hold
	e.blocked = false
}

// ForceMovement overrides the velocity on the next tick, after
// locomotion.
func (e *Enemy) ForceMovement(vx, vy *float64) {
	if e == nil || e.destroyed {
		return
	}
	if vx != nil {
		x := *vx
		e.forceX = &x
	}
	if vy != nil {
		y := *vy
		e.forceY = &y
	}
}

// TouchHurtbox is the hit the enemy deals to a body it overlaps, pushing
// the body away from the enemy's center.
func (e *Enemy) TouchHurtbox(other cp.Vector) component.Hurtbox {
	dir := common.Sign(other.X - e.Body.Position.X)
	if dir == 0 {
		dir = e.Body.Facing
	}
	return component.Hurtbox{
		Damage:    e.Config.TouchDamage,
		Knockback: e.Config.TouchKnockback,
		Direction: dir,
		Faction:   component.FactionEnemy,
	}
}

func (e *Enemy) Hurt(h component.Hurtbox) bool {
	if !e.Alive() || h.Faction == component.FactionEnemy {
		return false
	}
	if !e.Health.TakeDamage(h.Damage) {
		return false
	}
	if h.Knockback > 0 {
		vx := common.Sign(h.Direction) * h.Knockback
		e.ForceMovement(&vx, nil)
	}
	return true
}

func (e *Enemy) Bounds() cp.BB {
	return e.Body.AABB()
}

func (e *Enemy) Alive() bool {
	return e != nil && !e.destroyed && e.Health.IsAlive()
}

func (e *Enemy) Faction() component.Faction {
	return component.FactionEnemy
}

// Destroy drops the land subscription, the platform binding and every
// remaining observer.
func (e *Enemy) Destroy() {
	if e == nil || e.destroyed {
		return
	}
	e.Events.Unsubscribe(e.onLand)
	e.release()
	e.destroyed = true
}

func (e *Enemy) Destroyed() bool {
	return e == nil || e.destroyed
}
