package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/component"
)

// Jumper buffers jump presses and tracks the double jump and coyote window.
type Jumper struct {
	// DoubleJump is true while one mid-air jump is available.
	DoubleJump bool

	lastHeld    bool
	buffered    bool
	pressAt     float64
	coyoteUntil float64
}

// press records the time of a rising edge of the jump button.
func (j *Jumper) press(held bool, now float64) {
	if held && !j.lastHeld {
		j.buffered = true
		j.pressAt = now
	}
	j.lastHeld = held
}

// hold tracks the button while input is restricted. Nothing is buffered,
// so a button held through the restriction needs a fresh press.
func (j *Jumper) hold(held bool) {
	j.buffered = false
	j.lastHeld = held
}

// Buffered reports whether an unconsumed press is inside the leeway window.
func (j *Jumper) Buffered(now, leeway float64) bool {
	return j.buffered && now-j.pressAt < leeway
}

func (j *Jumper) consume() {
	j.buffered = false
	j.coyoteUntil = 0
}

func (j *Jumper) touchGround(now, coyote float64) {
	j.coyoteUntil = now + coyote
}

func (j *Jumper) coyote(now float64) bool {
	return now <= j.coyoteUntil
}

func (j *Jumper) reset() {
	*j = Jumper{}
}

// jump runs the jump module: a grounded jump, then a wall jump, then a
// double jump. A landing tick never jumps.
func (p *Player) jump(in Intent, jumpSpeed float64) {
	b := &p.Body
	t := &p.Tuning

	if b.Movement.Has(component.Landing) || b.Condition.InputRestricted() || !p.Jump.Buffered(p.now, t.JumpPressLeeway) {
		return
	}

	adhered := b.WallAdhered()
	coyote := !adhered && b.Velocity.Y >= 0 && p.Jump.coyote(p.now)
	switch {
	case p.grounded || coyote:
		b.Velocity.Y = -jumpSpeed
		p.Jump.DoubleJump = t.CanDoubleJump
	case adhered:
		b.Velocity = cp.Vector{X: -p.wallDir * t.WallJumpAway, Y: -jumpSpeed * t.WallJumpRate}
		b.Movement.Remove(component.WallSticking | component.WallSliding)
		p.Jump.DoubleJump = false
	case p.Jump.DoubleJump && !b.Movement.Has(component.Dashing):
		b.Velocity.Y = -jumpSpeed * t.DoubleJumpRate
		p.Jump.DoubleJump = false
		p.spawn(EffectDoubleJump, b.Position)
	default:
		return
	}

	p.Jump.consume()
	b.Movement.Remove(component.Falling)
	b.Movement.Add(component.Jumping)
}
