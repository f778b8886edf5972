package component

import "fmt"

type SurfaceKind int

const (
	SurfaceNormal SurfaceKind = iota
	SurfaceIcy
	SurfaceBouncy
)

func (k SurfaceKind) String() string {
	switch k {
	case SurfaceNormal:
		return "normal"
	case SurfaceIcy:
		return "icy"
	case SurfaceBouncy:
		return "bouncy"
	}
	return fmt.Sprintf("surface(%d)", int(k))
}

// Surface describes the ground a body stands on. Only the fields of its
// Kind are meaningful; build one with the constructors below.
type Surface struct {
	Kind SurfaceKind

	// Icy
	AccelRate float64

	// Bouncy
	BounceRate        float64
	BounceJumpRate    float64
	DoubleJumpEnabled bool
}

func NormalSurface() Surface {
	return Surface{Kind: SurfaceNormal}
}

func IcySurface(accelRate float64) Surface {
	return Surface{Kind: SurfaceIcy, AccelRate: accelRate}
}

func BouncySurface(bounceRate, bounceJumpRate float64, doubleJump bool) Surface {
	return Surface{
		Kind:              SurfaceBouncy,
		BounceRate:        bounceRate,
		BounceJumpRate:    bounceJumpRate,
		DoubleJumpEnabled: doubleJump,
	}
}

func (s Surface) String() string {
	switch s.Kind {
	case SurfaceIcy:
		return fmt.Sprintf("icy(accel=%.2f)", s.AccelRate)
	case SurfaceBouncy:
		return fmt.Sprintf("bouncy(bounce=%.2f jump=%.2f double=%t)", s.BounceRate, s.BounceJumpRate, s.DoubleJumpEnabled)
	}
	return s.Kind.String()
}
