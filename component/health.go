package component

import "github.com/milk9111/platformer/common"

var _ Damageable = (*Health)(nil)

// Health tracks hit points for a player or enemy. Once Current reaches zero
// the owner is dead until Reset.
type Health struct {
	Max     float64
	Current float64
	Dead    bool

	OnDamage func(h *Health, amount float64)
	OnDeath  func(h *Health)
}

func NewHealth(max float64) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// TakeDamage lowers Current, clamped at 0, and reports whether anything was
// applied. The killing blow runs OnDamage before OnDeath.
func (h *Health) TakeDamage(amount float64) bool {
	if !h.IsAlive() || amount <= 0 || !common.Finite(amount) {
		return false
	}
	h.Current = common.Clamp(h.Current-amount, 0, h.Max)
	if h.OnDamage != nil {
		h.OnDamage(h, amount)
	}
	if h.Current == 0 {
		h.Dead = true
		if h.OnDeath != nil {
			h.OnDeath(h)
		}
	}
	return true
}

// Heal restores up to Max. The dead stay dead.
func (h *Health) Heal(amount float64) {
	if !h.IsAlive() || amount <= 0 {
		return
	}
	h.Current = min(h.Current+amount, h.Max)
}

// Reset revives at full health.
func (h *Health) Reset() {
	if h == nil {
		return
	}
	h.Current, h.Dead = h.Max, false
}

func (h *Health) CurrentHealth() float64 {
	if h == nil {
		return 0
	}
	return h.Current
}
