package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/component"
)

// tryStick adheres an airborne body to the wall it just hit when the input
// pushes into that wall.
func (p *Player) tryStick(axis float64) {
	b := &p.Body
	if p.grounded || !p.Tuning.CanStickWall || b.WallAdhered() {
		return
	}
	if axis == 0 || common.Sign(axis) != p.wallDir {
		return
	}
	b.Movement.Add(component.WallSticking)
	b.Movement.Remove(component.Jumping | component.Falling)
	b.Velocity = cp.Vector{}
	p.stickDeadline = p.now + p.Tuning.WallSlideDelay
}

// holdWall pins an adhered body to its wall, drops it when the wall ends
// and turns a stick into a slide once the deadline passes.
func (p *Player) holdWall() {
	b := &p.Body
	if !b.WallAdhered() {
		return
	}
	b.Velocity.X = 0

	low, ok := p.wallPresent(p.wallDir)
	if !ok {
		b.Movement.Remove(component.WallSticking | component.WallSliding)
		return
	}

	if b.Movement.Has(component.WallSticking) && p.now >= p.stickDeadline {
		b.Movement.Add(component.WallSliding)
		b.Velocity = cp.Vector{X: 0, Y: p.Tuning.WallSlideSpeed}
	}
	if b.Movement.Has(component.WallSliding) {
		p.spawn(EffectWallSlide, low.Point)
	}
}
