package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/component"
)

type KnockbackPhase int

const (
	KnockbackIdle KnockbackPhase = iota
	KnockbackImpact
	KnockbackRecovery
)

func (p KnockbackPhase) String() string {
	switch p {
	case KnockbackIdle:
		return "idle"
	case KnockbackImpact:
		return "impact"
	case KnockbackRecovery:
		return "recovery"
	}
	return "unknown"
}

// Knockback sequences a hit: Impact pushes the body away with a speed that
// decays linearly to zero over Duration, then Recovery blinks the body for
// RecoveryBlinks intervals before returning it to Normal.
type Knockback struct {
	Duration       float64
	BlinkInterval  float64
	RecoveryBlinks int

	phase   KnockbackPhase
	elapsed float64
	blink   float64
	speed   float64
	dir     float64
}

func (k *Knockback) Phase() KnockbackPhase {
	return k.phase
}

// Speed returns the knockback magnitude of the current sequence.
func (k *Knockback) Speed() float64 {
	return k.speed
}

// Trigger starts a sequence on b. It is ignored while a sequence runs or
// while b is Hit or Recovering. speed is clamped to maxSpeed.
func (k *Knockback) Trigger(b *Body, speed, dir, maxSpeed float64) bool {
	if k.phase != KnockbackIdle || b.Condition.Has(component.Hit) || b.Condition.Has(component.Recovering) {
		return false
	}
	speed = math.Abs(speed)
	if !common.Finite(speed) {
		speed = 0
	}
	k.speed = math.Min(speed, maxSpeed)
	k.dir = common.Sign(dir)
	if k.dir == 0 {
		k.dir = -b.Facing
	}
	k.elapsed = 0
	k.blink = 0
	k.phase = KnockbackImpact

	b.Condition.Add(component.Hit)
	b.Movement.Remove(component.Dashing | component.WallSticking | component.WallSliding)
	b.Velocity = cp.Vector{}
	return true
}

// Advance steps the sequence and reports whether the phase changed.
func (k *Knockback) Advance(b *Body, dt float64) bool {
	switch k.phase {
	case KnockbackImpact:
		progress := 1.0
		if k.Duration > 0 {
			k.elapsed = math.Min(k.elapsed+dt, k.Duration)
			progress = k.elapsed / k.Duration
		}
		b.Velocity.X = k.dir * k.speed * (1 - progress)
		if progress >= 1 {
			b.Condition.Add(component.Recovering)
			k.phase = KnockbackRecovery
			k.elapsed = 0
			k.blink = 0
			return true
		}
	case KnockbackRecovery:
		k.elapsed += dt
		k.blink += dt
		for k.BlinkInterval > 0 && k.blink >= k.BlinkInterval {
			k.blink -= k.BlinkInterval
			b.Visible = !b.Visible
		}
		if k.elapsed >= k.BlinkInterval*float64(k.RecoveryBlinks) {
			b.Visible = true
			b.Condition.Remove(component.Recovering)
			k.phase = KnockbackIdle
			return true
		}
	}
	return false
}

// Reset abandons any sequence and restores b to Normal.
func (k *Knockback) Reset(b *Body) {
	k.phase = KnockbackIdle
	k.elapsed = 0
	k.blink = 0
	b.Condition.Remove(component.Hit | component.Recovering)
	b.Visible = true
}
