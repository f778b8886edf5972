package collision

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

var ErrTooFewRays = errors.New("collision: a probe needs at least 2 rays")

// RayHit is the result of one ray of a probe. OK is false on a miss.
type RayHit struct {
	Index  int
	Origin cp.Vector
	Hit
	OK bool
}

// ProbeResult holds one entry per ray, indexed by ray number.
type ProbeResult struct {
	Hits []RayHit
}

// Closest returns the hit with the smallest distance. On equal distances
// the lowest ray index wins.
func (r ProbeResult) Closest() (RayHit, bool) {
	best := -1
	for i, h := range r.Hits {
		if !h.OK {
			continue
		}
		if best < 0 || h.Distance < r.Hits[best].Distance {
			best = i
		}
	}
	if best < 0 {
		return RayHit{}, false
	}
	return r.Hits[best], true
}

// Any reports whether at least one ray hit.
func (r ProbeResult) Any() bool {
	for _, h := range r.Hits {
		if h.OK {
			return true
		}
	}
	return false
}

// Count returns the number of rays that hit.
func (r ProbeResult) Count() int {
	n := 0
	for _, h := range r.Hits {
		if h.OK {
			n++
		}
	}
	return n
}

// AdjacentPair returns the first two neighbouring rays that both hit.
func (r ProbeResult) AdjacentPair() (RayHit, RayHit, bool) {
	for i := 1; i < len(r.Hits); i++ {
		if r.Hits[i-1].OK && r.Hits[i].OK {
			return r.Hits[i-1], r.Hits[i], true
		}
	}
	return RayHit{}, RayHit{}, false
}

// Lowest returns the hit with the largest Y (lowest on screen).
func (r ProbeResult) Lowest() (RayHit, bool) {
	best := -1
	for i, h := range r.Hits {
		if !h.OK {
			continue
		}
		if best < 0 || h.Point.Y > r.Hits[best].Point.Y {
			best = i
		}
	}
	if best < 0 {
		return RayHit{}, false
	}
	return r.Hits[best], true
}

// Probe is a fan of parallel rays cast together.
type Probe struct {
	origins []cp.Vector
	hits    []RayHit
}

func NewProbe(n int) (*Probe, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewRays, n)
	}
	return &Probe{
		origins: make([]cp.Vector, n),
		hits:    make([]RayHit, n),
	}, nil
}

func (p *Probe) Count() int {
	return len(p.origins)
}

// Fan spaces the ray origins evenly from a to b, both inclusive.
func (p *Probe) Fan(a, b cp.Vector) {
	last := float64(len(p.origins) - 1)
	for i := range p.origins {
		p.origins[i] = a.Lerp(b, float64(i)/last)
	}
}

func (p *Probe) Origins() []cp.Vector {
	return p.origins
}

// Cast sends every ray along dir for dist. The returned result shares its
// buffer with the probe and is only valid until the next Cast.
func (p *Probe) Cast(q Query, dir cp.Vector, dist float64, mask Layer) ProbeResult {
	for i, o := range p.origins {
		h, ok := q.Raycast(o, dir, dist, mask)
		p.hits[i] = RayHit{Index: i, Origin: o, Hit: h, OK: ok}
	}
	return ProbeResult{Hits: p.hits}
}
