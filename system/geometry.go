package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

// tileCollider maps a box tile code to its layer and surface. ok is false
// for empty and slope tiles.
func tileCollider(code int, surfaces prefabs.SurfacesSpec) (collision.Layer, component.Surface, bool) {
	switch code {
	case levels.TileSolid:
		return collision.LayerSolid, component.NormalSurface(), true
	case levels.TileOneWay:
		return collision.LayerSoftBottom, component.NormalSurface(), true
	case levels.TileSoftTop:
		return collision.LayerSoftTop, component.NormalSurface(), true
	case levels.TileIcy:
		return collision.LayerSolid, component.IcySurface(surfaces.Icy.AccelRate), true
	case levels.TileBouncy:
		b := surfaces.Bouncy
		return collision.LayerSolid, component.BouncySurface(b.BounceRate, b.BounceJumpRate, b.DoubleJump), true
	}
	return 0, component.Surface{}, false
}

// BuildGeometry turns the level's tiles into colliders. Runs of the same box
// tile are merged into larger rectangles so the space holds fewer shapes;
// slope tiles stay individual triangles. The level is closed by segments on
// all four sides.
func BuildGeometry(lvl *levels.Level, surfaces prefabs.SurfacesSpec) *collision.World {
	world := collision.NewWorld()
	if lvl == nil {
		return world
	}
	size := float64(lvl.TileSize)

	processed := make([]bool, lvl.Width*lvl.Height)
	for y := 0; y < lvl.Height; y++ {
		for x := 0; x < lvl.Width; x++ {
			idx := y*lvl.Width + x
			if processed[idx] {
				continue
			}
			processed[idx] = true
			code := lvl.At(x, y)
			x0 := float64(x) * size
			y0 := float64(y) * size

			switch code {
			case levels.TileEmpty:
				continue
			case levels.TileSlopeRight:
				world.AddSlope(
					cp.Vector{X: x0, Y: y0 + size},
					cp.Vector{X: x0 + size, Y: y0 + size},
					cp.Vector{X: x0 + size, Y: y0},
					collision.LayerSolid, component.NormalSurface())
				continue
			case levels.TileSlopeLeft:
				world.AddSlope(
					cp.Vector{X: x0, Y: y0 + size},
					cp.Vector{X: x0 + size, Y: y0 + size},
					cp.Vector{X: x0, Y: y0},
					collision.LayerSolid, component.NormalSurface())
				continue
			}

			layer, surface, ok := tileCollider(code, surfaces)
			if !ok {
				continue
			}

			// Widen first, then grow downward while every tile in the next
			// row matches.
			w := 1
			for x+w < lvl.Width {
				idx2 := y*lvl.Width + x + w
				if processed[idx2] || lvl.Tiles[idx2] != code {
					break
				}
				w++
			}
			h := 1
		heightLoop:
			for y+h < lvl.Height {
				for xi := x; xi < x+w; xi++ {
					idx2 := (y+h)*lvl.Width + xi
					if processed[idx2] || lvl.Tiles[idx2] != code {
						break heightLoop
					}
				}
				h++
			}

			bb := cp.BB{L: x0, B: y0, R: x0 + float64(w)*size, T: y0 + float64(h)*size}
			world.AddBox(bb, layer, surface)

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*lvl.Width+xx] = true
				}
			}
		}
	}

	worldW, worldH := lvl.PixelSize()
	bounds := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},           // left
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}
	for _, seg := range bounds {
		world.AddSegment(seg.a, seg.b, 1, collision.LayerSolid)
	}
	return world
}
