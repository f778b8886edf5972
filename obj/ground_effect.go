package obj

import "github.com/milk9111/platformer/component"

// applyGroundEffect returns this tick's acceleration and jump speed for the
// surface under b. Bouncy ground also launches the body, except on the
// landing tick, and sets the double jump when doubleJump is not nil.
func applyGroundEffect(b *Body, grounded bool, accel, jumpSpeed float64, doubleJump *bool) (float64, float64) {
	if !grounded {
		return accel, jumpSpeed
	}
	s := b.Surface
	switch s.Kind {
	case component.SurfaceIcy:
		return accel * s.AccelRate, jumpSpeed
	case component.SurfaceBouncy:
		if b.Movement.Has(component.Landing) {
			return accel, jumpSpeed
		}
		b.Velocity.Y = -jumpSpeed * s.BounceRate
		if doubleJump != nil {
			*doubleJump = s.DoubleJumpEnabled
		}
		return accel, jumpSpeed * s.BounceJumpRate
	case component.SurfaceNormal:
		return accel, jumpSpeed
	}
	return accel, jumpSpeed
}
