package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/component"
)

// Body is the kinematic state of one controlled actor. Position is the
// bottom-center of the box (the feet) in y-down pixels.
type Body struct {
	Position cp.Vector
	Velocity cp.Vector
	Width    float64
	Height   float64
	// Facing is -1 (left) or 1 (right).
	Facing float64

	Movement  component.MovementState
	Condition component.ConditionState
	Surface   component.Surface

	// Visible is toggled by the recovery blink. Rendering only.
	Visible bool
}

func NewBody(pos cp.Vector, width, height float64) Body {
	return Body{
		Position: pos,
		Width:    width,
		Height:   height,
		Facing:   1,
		Movement: component.NewMovementState(component.Idle),
		Surface:  component.NormalSurface(),
		Visible:  true,
	}
}

// AABB returns the bounding box. B is the top edge and T the bottom edge,
// since screen Y grows downward.
func (b *Body) AABB() cp.BB {
	hw := b.Width / 2
	return cp.BB{
		L: b.Position.X - hw,
		B: b.Position.Y - b.Height,
		R: b.Position.X + hw,
		T: b.Position.Y,
	}
}

func (b *Body) Center() cp.Vector {
	return cp.Vector{X: b.Position.X, Y: b.Position.Y - b.Height/2}
}

func (b *Body) FacingVector() cp.Vector {
	return cp.Vector{X: b.Facing, Y: 0}
}

func (b *Body) WallAdhered() bool {
	return b.Movement.HasAny(component.WallSticking | component.WallSliding)
}
