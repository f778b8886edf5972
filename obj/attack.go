package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/prefabs"
)

const (
	shotName     = "shot"
	uppercutName = "uppercut"
)

type ShotConfig struct {
	Damage   float64
	Speed    float64
	Lifetime float64
	Cooldown float64
	Width    float64
	Height   float64
}

type UppercutConfig struct {
	Damage      float64
	UpwardSpeed float64
	LaunchSpeed float64
	Cooldown    float64
	Width       float64
	Height      float64
}

func DefaultAttacks() (ShotConfig, UppercutConfig) {
	return ShotConfig{Damage: 1, Speed: 420, Lifetime: 0.6, Cooldown: 0.3, Width: 8, Height: 8},
		UppercutConfig{Damage: 1, UpwardSpeed: 520, LaunchSpeed: 480, Cooldown: 0.6, Width: 28, Height: 40}
}

// AttacksFromSpec maps the attacks prefab onto the defaults.
func AttacksFromSpec(spec *prefabs.AttacksSpec) (ShotConfig, UppercutConfig) {
	shot, up := DefaultAttacks()
	if spec == nil {
		return shot, up
	}
	setIf(&shot.Damage, spec.Shot.Damage)
	setIf(&shot.Speed, spec.Shot.Speed)
	setIf(&shot.Lifetime, spec.Shot.Lifetime)
	setIf(&shot.Cooldown, spec.Shot.Cooldown)
	setIf(&shot.Width, spec.Shot.Width)
	setIf(&shot.Height, spec.Shot.Height)
	setIf(&up.Damage, spec.Uppercut.Damage)
	setIf(&up.UpwardSpeed, spec.Uppercut.UpwardSpeed)
	setIf(&up.LaunchSpeed, spec.Uppercut.LaunchSpeed)
	setIf(&up.Cooldown, spec.Uppercut.Cooldown)
	setIf(&up.Width, spec.Uppercut.Width)
	setIf(&up.Height, spec.Uppercut.Height)
	return shot, up
}

var (
	_ component.Attack = (*Shot)(nil)
	_ component.Attack = (*Uppercut)(nil)
)

// Launchable is a target an uppercut can throw upward.
type Launchable interface {
	ForceMovement(vx, vy *float64)
}

// Shot is a straight projectile. It dies on its first wall, its first
// confirmed hit or when its lifetime runs out.
type Shot struct {
	Pos cp.Vector
	Vel cp.Vector

	cfg    ShotConfig
	age    float64
	active bool
}

func newShot(cfg ShotConfig, pos cp.Vector, facing float64) *Shot {
	return &Shot{
		Pos:    pos,
		Vel:    cp.Vector{X: facing * cfg.Speed},
		cfg:    cfg,
		active: true,
	}
}

func (s *Shot) Name() string       { return shotName }
func (s *Shot) Damage() float64    { return s.cfg.Damage }
func (s *Shot) Cooldown() float64  { return s.cfg.Cooldown }
func (s *Shot) Active() bool       { return s != nil && s.active }
func (s *Shot) Destroy()           { s.active = false }
func (s *Shot) Direction() float64 { return common.Sign(s.Vel.X) }

func (s *Shot) OnHitConfirmed(component.Target) {
	s.Destroy()
}

func (s *Shot) Bounds() cp.BB {
	return cp.NewBBForExtents(s.Pos, s.cfg.Width/2, s.cfg.Height/2)
}

// Advance moves the shot and stops it at the first side-blocking collider.
func (s *Shot) Advance(q collision.Query, dt float64) {
	if !s.Active() {
		return
	}
	s.age += dt
	if s.age >= s.cfg.Lifetime {
		s.Destroy()
		return
	}
	step := s.Vel.Mult(dt)
	dist := step.Length()
	if dist == 0 {
		return
	}
	if q != nil {
		if _, ok := q.Raycast(s.Pos, step.Normalize(), dist+s.cfg.Width/2, collision.MaskSide); ok {
			s.Destroy()
			return
		}
	}
	s.Pos = s.Pos.Add(step)
}

// Uppercut throws its owner upward, invulnerable and with input
// restricted, until the owner starts to fall.
type Uppercut struct {
	cfg    UppercutConfig
	owner  *Player
	sub    component.Subscription
	hit    map[component.Target]struct{}
	active bool
}

func newUppercut(p *Player, cfg UppercutConfig) *Uppercut {
	u := &Uppercut{
		cfg:    cfg,
		owner:  p,
		hit:    make(map[component.Target]struct{}),
		active: true,
	}
	p.Body.Condition.Add(component.RestrictedAttacking)
	p.Vulnerable = false
	vy := -cfg.UpwardSpeed
	p.ForceMovement(nil, &vy)
	u.sub = p.Events.Subscribe(component.OnFall, func(component.MovementEvent) {
		u.Destroy()
	})
	return u
}

func (u *Uppercut) Name() string      { return uppercutName }
func (u *Uppercut) Damage() float64   { return u.cfg.Damage }
func (u *Uppercut) Cooldown() float64 { return u.cfg.Cooldown }
func (u *Uppercut) Active() bool      { return u != nil && u.active }

// Bounds is the strike box above the owner's head, centered on it.
func (u *Uppercut) Bounds() cp.BB {
	b := &u.owner.Body
	c := cp.Vector{X: b.Position.X, Y: b.Position.Y - b.Height/2 - u.cfg.Height/4}
	return cp.NewBBForExtents(c, u.cfg.Width/2, u.cfg.Height/2)
}

// Hits reports whether t was already struck by this uppercut.
func (u *Uppercut) Hits(t component.Target) bool {
	_, ok := u.hit[t]
	return ok
}

func (u *Uppercut) OnHitConfirmed(t component.Target) {
	u.hit[t] = struct{}{}
	if l, ok := t.(Launchable); ok {
		vy := -u.cfg.LaunchSpeed
		l.ForceMovement(nil, &vy)
	}
}

// Destroy ends the attack and gives the owner back its input and
// vulnerability.
func (u *Uppercut) Destroy() {
	if !u.Active() {
		return
	}
	u.active = false
	u.owner.Events.Unsubscribe(u.sub)
	u.owner.Body.Condition.Remove(component.RestrictedAttacking)
	u.owner.Vulnerable = true
}

// Arsenal triggers and tracks the player's attacks.
type Arsenal struct {
	Shot     ShotConfig
	Uppercut UppercutConfig

	world    collision.Query
	shots    []*Shot
	uppercut *Uppercut

	shotReady     float64
	uppercutReady float64
}

func NewArsenal(world collision.Query, shot ShotConfig, up UppercutConfig) *Arsenal {
	return &Arsenal{Shot: shot, Uppercut: up, world: world}
}

// Update advances live attacks and starts new ones from the intent.
func (a *Arsenal) Update(p *Player, in Intent, dt float64) {
	a.shotReady = math.Max(0, a.shotReady-dt)
	a.uppercutReady = math.Max(0, a.uppercutReady-dt)

	alive := a.shots[:0]
	for _, s := range a.shots {
		s.Advance(a.world, dt)
		if s.Active() {
			alive = append(alive, s)
		}
	}
	for i := len(alive); i < len(a.shots); i++ {
		a.shots[i] = nil
	}
	a.shots = alive

	if a.uppercut != nil && !a.uppercut.Active() {
		a.uppercut = nil
	}

	b := &p.Body
	if b.Condition.Has(component.Hit) {
		return
	}
	if in.Shoot.Pressed && a.shotReady == 0 {
		pos := b.Center().Add(b.FacingVector().Mult(b.Width / 2))
		a.shots = append(a.shots, newShot(a.Shot, pos, b.Facing))
		a.shotReady = a.Shot.Cooldown
	}
	if in.Uppercut.Pressed && a.uppercut == nil && a.uppercutReady == 0 {
		a.uppercut = newUppercut(p, a.Uppercut)
		a.uppercutReady = a.Uppercut.Cooldown
	}
}

func (a *Arsenal) Shots() []*Shot {
	return a.shots
}

// ActiveUppercut returns the running uppercut or nil.
func (a *Arsenal) ActiveUppercut() *Uppercut {
	if a.uppercut.Active() {
		return a.uppercut
	}
	return nil
}

// Strike applies every live attack to the targets it overlaps. Friendly
// and dead targets are skipped.
func (a *Arsenal) Strike(targets []component.Target) int {
	landed := 0
	for _, s := range a.shots {
		for _, t := range targets {
			if !s.Active() {
				break
			}
			if !hittable(t) || !s.Bounds().Intersects(t.Bounds()) {
				continue
			}
			if t.Hurt(component.Hurtbox{Damage: s.Damage(), Direction: s.Direction(), Faction: component.FactionPlayer}) {
				s.OnHitConfirmed(t)
				landed++
			}
		}
	}
	if u := a.ActiveUppercut(); u != nil {
		box := u.Bounds()
		for _, t := range targets {
			if !hittable(t) || u.Hits(t) || !box.Intersects(t.Bounds()) {
				continue
			}
			if t.Hurt(component.Hurtbox{Damage: u.Damage(), Direction: u.owner.Body.Facing, Faction: component.FactionPlayer}) {
				u.OnHitConfirmed(t)
				landed++
			}
		}
	}
	return landed
}

func hittable(t component.Target) bool {
	return t != nil && t.Alive() && t.Faction() != component.FactionPlayer
}

// Reset drops every live attack and clears the cooldowns.
func (a *Arsenal) Reset() {
	for _, s := range a.shots {
		s.Destroy()
	}
	a.shots = nil
	if a.uppercut != nil {
		a.uppercut.Destroy()
		a.uppercut = nil
	}
	a.shotReady = 0
	a.uppercutReady = 0
}

func (a *Arsenal) Destroy() {
	a.Reset()
}
