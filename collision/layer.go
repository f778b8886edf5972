package collision

import "github.com/jakecoffman/cp"

// Layer is the collision category of a collider. A query passes a mask of
// the layers it wants to see.
type Layer uint

const (
	LayerSolid Layer = 1 << iota
	// LayerSoftTop blocks bodies moving up but lets them fall through.
	LayerSoftTop
	// LayerSoftBottom is a one-way platform: bodies jump up through it and
	// land on top of it.
	LayerSoftBottom
)

const (
	MaskDown = LayerSolid | LayerSoftBottom
	MaskUp   = LayerSolid | LayerSoftTop
	MaskSide = LayerSolid
	MaskAll  = LayerSolid | LayerSoftTop | LayerSoftBottom
)

func (l Layer) String() string {
	switch l {
	case LayerSolid:
		return "solid"
	case LayerSoftTop:
		return "soft_top"
	case LayerSoftBottom:
		return "soft_bottom"
	}
	return "mask"
}

// shapeFilter puts a shape in category l. Shapes accept every query mask.
func (l Layer) shapeFilter() cp.ShapeFilter {
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: uint(l), Mask: cp.ALL_CATEGORIES}
}

// queryFilter accepts shapes whose category is in the mask.
func (l Layer) queryFilter() cp.ShapeFilter {
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: uint(l)}
}
