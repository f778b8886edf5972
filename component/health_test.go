package component

import "testing"

func TestHealthDamageAndDeath(t *testing.T) {
	h := NewHealth(3)
	var damaged []float64
	deaths := 0
	h.OnDamage = func(_ *Health, amount float64) { damaged = append(damaged, amount) }
	h.OnDeath = func(*Health) { deaths++ }

	if h.TakeDamage(0) || h.TakeDamage(-1) {
		t.Fatalf("non-positive damage should be ignored")
	}
	if !h.TakeDamage(1) || h.Current != 2 {
		t.Fatalf("expected 2 health, got %v", h.Current)
	}
	if !h.TakeDamage(5) || h.Current != 0 || !h.Dead {
		t.Fatalf("expected death, got %+v", h)
	}
	if h.TakeDamage(1) {
		t.Fatalf("dead health should not take damage")
	}
	if deaths != 1 || len(damaged) != 2 {
		t.Fatalf("deaths=%d damaged=%v", deaths, damaged)
	}

	h.Reset()
	if !h.IsAlive() || h.Current != 3 {
		t.Fatalf("reset: %+v", h)
	}
}

func TestHealthHealClamps(t *testing.T) {
	h := NewHealth(4)
	h.TakeDamage(3)
	h.Heal(10)
	if h.Current != 4 {
		t.Fatalf("expected clamp at max, got %v", h.Current)
	}
}

func TestHealthDefaults(t *testing.T) {
	if h := NewHealth(-2); h.Max != 1 {
		t.Fatalf("expected fallback max 1, got %v", h.Max)
	}
	var h *Health
	if h.IsAlive() || h.CurrentHealth() != 0 || h.TakeDamage(1) {
		t.Fatalf("nil health should be inert")
	}
	var _ Damageable = NewHealth(1)
}
