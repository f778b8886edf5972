package obj

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/prefabs"
)

// Tuning holds every movement constant of a controller. Accel and Gravity
// are velocity changes per tick; everything else is in pixels and seconds.
type Tuning struct {
	Width  float64
	Height float64
	Health float64

	Accel           float64
	MaxSpeed        float64
	Gravity         float64
	MaxFall         float64
	JumpSpeed       float64
	JumpPressLeeway float64
	CoyoteTime      float64
	DoubleJumpRate  float64

	DashSpeed float64
	DashTime  float64

	WallSlideSpeed float64
	WallSlideDelay float64
	WallJumpAway   float64
	WallJumpRate   float64

	Skin                 float64
	GroundRays           int
	SideRays             int
	WallAngleLeeway      float64 // degrees
	SlopeNormalThreshold float64
	SlopeFriction        float64

	KnockbackTime  float64
	BlinkInterval  float64
	RecoveryBlinks int

	CanDash       bool
	CanStickWall  bool
	CanDoubleJump bool
}

func DefaultTuning() Tuning {
	return Tuning{
		Width:  20,
		Height: 40,
		Health: 5,

		Accel:           20,
		MaxSpeed:        240,
		Gravity:         30,
		MaxFall:         720,
		JumpSpeed:       600,
		JumpPressLeeway: 0.1,
		CoyoteTime:      0.08,
		DoubleJumpRate:  0.75,

		DashSpeed: 480,
		DashTime:  0.15,

		WallSlideSpeed: 120,
		WallSlideDelay: 0.1,
		WallJumpAway:   240,
		WallJumpRate:   0.8,

		Skin:                 1,
		GroundRays:           8,
		SideRays:             8,
		WallAngleLeeway:      5,
		SlopeNormalThreshold: 0.1,
		SlopeFriction:        4,

		KnockbackTime:  0.35,
		BlinkInterval:  0.1,
		RecoveryBlinks: 12,

		CanDash:       true,
		CanStickWall:  true,
		CanDoubleJump: true,
	}
}

// TuningFromSpec maps a player spec onto the defaults. Zero fields in the
// spec keep the default value.
func TuningFromSpec(spec *prefabs.PlayerSpec) Tuning {
	t := DefaultTuning()
	if spec == nil {
		return t
	}
	applyMovementSpec(&t, spec.Movement)
	applyProbeSpec(&t, spec.Probe)
	setIf(&t.Width, spec.Collider.Width)
	setIf(&t.Height, spec.Collider.Height)
	setIf(&t.Health, spec.Health)
	setIf(&t.KnockbackTime, spec.Hit.KnockbackTime)
	setIf(&t.BlinkInterval, spec.Hit.BlinkInterval)
	if spec.Hit.RecoveryBlinks != 0 {
		t.RecoveryBlinks = spec.Hit.RecoveryBlinks
	}
	t.CanDash = spec.Abilities.Dash
	t.CanStickWall = spec.Abilities.WallStick
	t.CanDoubleJump = spec.Abilities.DoubleJump
	return t
}

func applyMovementSpec(t *Tuning, m prefabs.MovementSpec) {
	setIf(&t.Accel, m.Accel)
	setIf(&t.MaxSpeed, m.MaxSpeed)
	setIf(&t.Gravity, m.Gravity)
	setIf(&t.MaxFall, m.MaxFall)
	setIf(&t.JumpSpeed, m.JumpSpeed)
	setIf(&t.JumpPressLeeway, m.JumpPressLeeway)
	setIf(&t.CoyoteTime, m.CoyoteTime)
	setIf(&t.DoubleJumpRate, m.DoubleJumpRate)
	setIf(&t.DashSpeed, m.DashSpeed)
	setIf(&t.DashTime, m.DashTime)
	setIf(&t.WallSlideSpeed, m.WallSlideSpeed)
	setIf(&t.WallSlideDelay, m.WallSlideDelay)
	setIf(&t.WallJumpAway, m.WallJumpAway)
	setIf(&t.WallJumpRate, m.WallJumpRate)
	setIf(&t.SlopeFriction, m.SlopeFriction)
}

func applyProbeSpec(t *Tuning, p prefabs.ProbeSpec) {
	setIf(&t.Skin, p.Skin)
	setIf(&t.WallAngleLeeway, p.WallAngleLeeway)
	setIf(&t.SlopeNormalThreshold, p.SlopeNormalThreshold)
	if p.GroundRays != 0 {
		t.GroundRays = p.GroundRays
	}
	if p.SideRays != 0 {
		t.SideRays = p.SideRays
	}
}

func setIf(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

const (
	minSize     = 1.0
	minRate     = 0.01
	minDuration = 0.001
	minSkin     = 0.01
)

// Sanitize replaces zero, negative and non-finite values with safe
// minimums so integration can never produce NaN or infinity. Ray counts are
// left alone; NewProbe rejects them.
func (t *Tuning) Sanitize() {
	t.Width = common.PositiveOr(t.Width, minSize)
	t.Height = common.PositiveOr(t.Height, minSize)
	t.Health = common.PositiveOr(t.Health, 1)

	t.Accel = common.PositiveOr(t.Accel, minRate)
	t.MaxSpeed = common.PositiveOr(t.MaxSpeed, minSize)
	t.Gravity = common.PositiveOr(t.Gravity, minRate)
	t.MaxFall = common.PositiveOr(t.MaxFall, minSize)
	t.JumpSpeed = common.NonNegativeOr(t.JumpSpeed, 0)
	t.JumpPressLeeway = common.NonNegativeOr(t.JumpPressLeeway, 0)
	t.CoyoteTime = common.NonNegativeOr(t.CoyoteTime, 0)
	t.DoubleJumpRate = common.NonNegativeOr(t.DoubleJumpRate, 0)

	t.DashSpeed = common.NonNegativeOr(t.DashSpeed, 0)
	t.DashTime = common.PositiveOr(t.DashTime, minDuration)

	t.WallSlideSpeed = common.NonNegativeOr(t.WallSlideSpeed, 0)
	t.WallSlideDelay = common.NonNegativeOr(t.WallSlideDelay, 0)
	t.WallJumpAway = common.NonNegativeOr(t.WallJumpAway, 0)
	t.WallJumpRate = common.NonNegativeOr(t.WallJumpRate, 0)

	t.Skin = common.PositiveOr(t.Skin, minSkin)
	t.WallAngleLeeway = common.NonNegativeOr(t.WallAngleLeeway, 0)
	t.SlopeNormalThreshold = common.NonNegativeOr(t.SlopeNormalThreshold, 0)
	t.SlopeFriction = common.NonNegativeOr(t.SlopeFriction, 0)

	t.KnockbackTime = common.PositiveOr(t.KnockbackTime, minDuration)
	t.BlinkInterval = common.PositiveOr(t.BlinkInterval, minDuration)
	if t.RecoveryBlinks < 0 {
		t.RecoveryBlinks = 0
	}
}
