package collision

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/component"
)

// Hit is a single ray hit.
type Hit struct {
	Point    cp.Vector
	Normal   cp.Vector
	Distance float64
	// Fraction is Distance over the cast length, in (0, 1).
	Fraction float64
	Collider *Collider
}

// Query is the read side of the world the probes need.
type Query interface {
	Raycast(origin, dir cp.Vector, dist float64, mask Layer) (Hit, bool)
}

// Collider is stored in the UserData of each cp shape the world owns.
type Collider struct {
	Layer   Layer
	Surface component.Surface
	// Owner is the gameplay object behind a moving collider (a platform).
	Owner any

	shape *cp.Shape
	body  *cp.Body
	kind  colliderKind
}

type colliderKind int

const (
	kindBox colliderKind = iota
	kindSlope
	kindSegment
)

func (c *Collider) Bounds() cp.BB {
	if c == nil || c.shape == nil {
		return cp.BB{}
	}
	return c.shape.BB()
}

// Vertices returns the outline of a box or slope in world space. Segments
// return their two end points.
func (c *Collider) Vertices() []cp.Vector {
	if c == nil || c.shape == nil {
		return nil
	}
	switch c.kind {
	case kindSegment:
		seg := c.shape.Class.(*cp.Segment)
		return []cp.Vector{seg.TransformA(), seg.TransformB()}
	default:
		poly := c.shape.Class.(*cp.PolyShape)
		verts := make([]cp.Vector, poly.Count())
		for i := range verts {
			verts[i] = poly.TransformVert(i)
		}
		return verts
	}
}

func (c *Collider) IsSlope() bool {
	return c != nil && c.kind == kindSlope
}

// World is the static and kinematic level geometry backed by a cp.Space.
// Bodies driven by the movement controllers are not part of the space; they
// only query it.
type World struct {
	space     *cp.Space
	colliders []*Collider
}

func NewWorld() *World {
	return &World{space: cp.NewSpace()}
}

// AddBox adds a static axis-aligned box. bb uses y-down screen coordinates,
// so B is the top edge and T the bottom edge.
func (w *World) AddBox(bb cp.BB, layer Layer, surface component.Surface) *Collider {
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	return w.add(shape, nil, layer, surface, kindBox)
}

// AddSlope adds a static triangle. Winding does not matter.
func (w *World) AddSlope(a, b, c cp.Vector, layer Layer, surface component.Surface) *Collider {
	verts := []cp.Vector{a, b, c}
	shape := cp.NewPolyShape(w.space.StaticBody, len(verts), verts, cp.NewTransformIdentity(), 0)
	return w.add(shape, nil, layer, surface, kindSlope)
}

// AddSegment adds a static segment, used for the level bounds.
func (w *World) AddSegment(a, b cp.Vector, radius float64, layer Layer) *Collider {
	shape := cp.NewSegment(w.space.StaticBody, a, b, radius)
	return w.add(shape, nil, layer, component.NormalSurface(), kindSegment)
}

// AddKinematicBox adds a box that can be moved with MoveCollider. local is
// relative to pos.
func (w *World) AddKinematicBox(local cp.BB, pos cp.Vector, layer Layer, owner any) *Collider {
	body := cp.NewKinematicBody()
	body.SetPosition(pos)
	w.space.AddBody(body)
	shape := cp.NewBox2(body, local, 0)
	c := w.add(shape, body, layer, component.NormalSurface(), kindBox)
	c.Owner = owner
	return c
}

func (w *World) add(shape *cp.Shape, body *cp.Body, layer Layer, surface component.Surface, kind colliderKind) *Collider {
	c := &Collider{Layer: layer, Surface: surface, shape: shape, body: body, kind: kind}
	shape.SetFilter(layer.shapeFilter())
	shape.SetFriction(0)
	shape.UserData = c
	w.space.AddShape(shape)
	w.colliders = append(w.colliders, c)
	return c
}

// MoveCollider repositions a kinematic collider. cp only refreshes a shape's
// bounds when it is inserted, so the shape is removed and added back.
func (w *World) MoveCollider(c *Collider, pos cp.Vector) {
	if w == nil || c == nil || c.body == nil || c.shape == nil || c.shape.Space() == nil {
		return
	}
	w.space.RemoveShape(c.shape)
	c.body.SetPosition(pos)
	w.space.AddShape(c.shape)
}

// Position returns the origin of a kinematic collider, or the center of a
// static one.
func (c *Collider) Position() cp.Vector {
	if c == nil {
		return cp.Vector{}
	}
	if c.body != nil {
		return c.body.Position()
	}
	return c.Bounds().Center()
}

// Remove takes the collider out of the world. Removing twice is a no-op.
func (w *World) Remove(c *Collider) {
	if w == nil || c == nil || c.shape == nil {
		return
	}
	if c.shape.Space() != nil {
		w.space.RemoveShape(c.shape)
	}
	if c.body != nil && w.space.ContainsBody(c.body) {
		w.space.RemoveBody(c.body)
	}
	for i, other := range w.colliders {
		if other == c {
			w.colliders = append(w.colliders[:i], w.colliders[i+1:]...)
			break
		}
	}
}

// Colliders returns every collider currently in the world.
func (w *World) Colliders() []*Collider {
	if w == nil {
		return nil
	}
	return w.colliders
}

// Raycast casts a ray of length dist from origin along dir (normalized
// here) and returns the closest collider in mask. Hits at fraction 0, such
// as a ray starting inside a shape, are not reported.
func (w *World) Raycast(origin, dir cp.Vector, dist float64, mask Layer) (Hit, bool) {
	if w == nil || dist <= 0 || dir.LengthSq() == 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()
	end := origin.Add(dir.Mult(dist))
	info := w.space.SegmentQueryFirst(origin, end, 0, mask.queryFilter())
	if info.Shape == nil || info.Alpha <= 0 || info.Alpha >= 1 {
		return Hit{}, false
	}
	c, _ := info.Shape.UserData.(*Collider)
	return Hit{
		Point:    info.Point,
		Normal:   info.Normal,
		Distance: info.Alpha * dist,
		Fraction: info.Alpha,
		Collider: c,
	}, true
}
