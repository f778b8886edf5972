package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/obj"
	"golang.org/x/image/colornames"
)

// view maps world coordinates onto the screen.
type view struct {
	origin cp.Vector
	zoom   float64
}

func (v view) point(p cp.Vector) (float32, float32) {
	return float32((p.X - v.origin.X) * v.zoom), float32((p.Y - v.origin.Y) * v.zoom)
}

func (v view) fill(screen *ebiten.Image, bb cp.BB, clr color.Color) {
	x, y := v.point(cp.Vector{X: bb.L, Y: bb.B})
	w := float32((bb.R - bb.L) * v.zoom)
	h := float32((bb.T - bb.B) * v.zoom)
	vector.FillRect(screen, x, y, w, h, clr, false)
}

func (v view) stroke(screen *ebiten.Image, bb cp.BB, clr color.Color) {
	x, y := v.point(cp.Vector{X: bb.L, Y: bb.B})
	w := float32((bb.R - bb.L) * v.zoom)
	h := float32((bb.T - bb.B) * v.zoom)
	vector.StrokeRect(screen, x, y, w, h, 1, clr, false)
}

func (v view) line(screen *ebiten.Image, a, b cp.Vector, clr color.Color) {
	x0, y0 := v.point(a)
	x1, y1 := v.point(b)
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, true)
}

func (v view) outline(screen *ebiten.Image, verts []cp.Vector, clr color.Color) {
	for i := range verts {
		v.line(screen, verts[i], verts[(i+1)%len(verts)], clr)
	}
}

func colliderColor(c *collision.Collider) color.Color {
	switch c.Surface.Kind {
	case component.SurfaceIcy:
		return colornames.Lightcyan
	case component.SurfaceBouncy:
		return colornames.Hotpink
	}
	switch c.Layer {
	case collision.LayerSoftBottom:
		return colornames.Goldenrod
	case collision.LayerSoftTop:
		return colornames.Mediumpurple
	}
	return colornames.Slategray
}

// withAlpha scales a color's alpha by a in [0, 1].
func withAlpha(clr color.Color, a float64) color.Color {
	r, g, b, _ := clr.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(255 * max(0, min(a, 1)))}
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	v := view{origin: g.camera.ViewTopLeft(), zoom: g.camera.Zoom()}
	w := g.world

	for _, c := range w.Collision.Colliders() {
		if c.Owner != nil {
			continue
		}
		clr := colliderColor(c)
		switch {
		case c.IsSlope():
			v.outline(screen, c.Vertices(), clr)
		case len(c.Vertices()) == 2:
			// level bounds
		default:
			v.fill(screen, c.Bounds(), clr)
		}
	}

	for _, p := range w.Platforms {
		v.fill(screen, p.Bounds(), g.colors.platform)
	}

	for _, t := range w.Transients.Items() {
		switch t.Kind {
		case obj.EffectDashTrail:
			bb := cp.BB{L: t.Pos.X - t.Width/2, B: t.Pos.Y - t.Height, R: t.Pos.X + t.Width/2, T: t.Pos.Y}
			v.fill(screen, bb, withAlpha(g.colors.player, t.Alpha))
		default:
			x, y := v.point(t.Pos)
			vector.StrokeCircle(screen, x, y, float32(t.Width*v.zoom), 1, withAlpha(colornames.White, t.Alpha), true)
		}
	}

	for _, e := range w.Enemies {
		g.drawBody(screen, v, &e.Mover, g.colors.enemy)
	}

	p := w.Player
	if p.Body.Visible {
		clr := g.colors.player
		if p.Body.Condition.Has(component.Hit) {
			clr = colornames.White
		}
		g.drawBody(screen, v, &p.Mover, clr)
	}
	if p.Arsenal != nil {
		for _, s := range p.Arsenal.Shots() {
			v.fill(screen, s.Bounds(), colornames.Yellow)
		}
		if u := p.Arsenal.ActiveUppercut(); u != nil {
			v.stroke(screen, u.Bounds(), colornames.Orangered)
		}
	}
}

func (g *Game) drawBody(screen *ebiten.Image, v view, m *obj.Mover, clr color.Color) {
	b := &m.Body
	v.fill(screen, b.AABB(), clr)

	// facing marker
	c := b.Center()
	v.line(screen, c, c.Add(b.FacingVector().Mult(b.Width/2)), colornames.Black)

	if !g.debug {
		return
	}
	rayClr := colornames.Lime
	if !m.Grounded() {
		rayClr = colornames.Red
	}
	for _, o := range m.GroundRays() {
		v.line(screen, o, o.Add(cp.Vector{Y: b.Height/2 + 1}), rayClr)
	}
	wallClr := colornames.Gray
	if b.WallAdhered() {
		wallClr = colornames.Aqua
	}
	for _, o := range m.SideRays() {
		v.line(screen, o, o.Add(b.FacingVector().Mult(b.Width/2+1)), wallClr)
	}
}
