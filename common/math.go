package common

import "math"

const (
	// TPS is the fixed simulation rate.
	TPS = 60
	// TickDelta is the fixed step in seconds.
	TickDelta = 1.0 / TPS
	// TileSize is the level grid size in pixels.
	TileSize = 32
)

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Approach moves v toward target by at most step.
func Approach(v, target, step float64) float64 {
	if step < 0 {
		step = -step
	}
	if v < target {
		return math.Min(v+step, target)
	}
	return math.Max(v-step, target)
}

// Sign returns -1, 0 or 1. Zero (and NaN) map to 0.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// PositiveOr returns v when it is a finite positive number, otherwise min.
func PositiveOr(v, min float64) float64 {
	if !Finite(v) || v <= 0 {
		return min
	}
	return v
}

// NonNegativeOr returns v when it is finite and >= 0, otherwise def.
func NonNegativeOr(v, def float64) float64 {
	if !Finite(v) || v < 0 {
		return def
	}
	return v
}
