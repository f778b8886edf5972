package component

import "github.com/jakecoffman/cp"

// Faction identifies teams for friendly-fire checks.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionEnemy
)

// Hurtbox describes an incoming hit: how much damage it deals and how hard
// it pushes the target away along X.
type Hurtbox struct {
	Damage    float64
	Knockback float64
	// Direction is the sign of the knockback along X (-1 or 1).
	Direction float64
	Faction   Faction
}

// Damageable is a health sink.
type Damageable interface {
	TakeDamage(amount float64) bool
	CurrentHealth() float64
}

// Target is anything an attack or hurtbox can hit.
type Target interface {
	Bounds() cp.BB
	Hurt(h Hurtbox) bool
	Alive() bool
	Faction() Faction
}

// Attack is an offensive action owned by a body. Destroy must release every
// subscription and flag the attack took on its owner.
type Attack interface {
	Name() string
	Damage() float64
	Cooldown() float64
	OnHitConfirmed(t Target)
	Active() bool
	Destroy()
}
