package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/component"
	"github.com/stretchr/testify/require"
)

const (
	floorY = 200.0
	dt     = common.TickDelta
)

// flatWorld is a wide floor whose top edge is at floorY.
func flatWorld(surface component.Surface) *collision.World {
	w := collision.NewWorld()
	w.AddBox(cp.BB{L: -2000, B: floorY, R: 2000, T: floorY + 32}, collision.LayerSolid, surface)
	return w
}

// wallWorld adds a wall whose left face is at x=100 to the flat floor.
func wallWorld() *collision.World {
	w := flatWorld(component.NormalSurface())
	w.AddBox(cp.BB{L: 100, B: -200, R: 132, T: floorY}, collision.LayerSolid, component.NormalSurface())
	return w
}

func newTestPlayer(t *testing.T, w collision.Query, pos cp.Vector, in InputSource) *Player {
	t.Helper()
	p, err := NewPlayer(w, pos, DefaultTuning(), in)
	require.NoError(t, err)
	return p
}

func tickN(p *Player, n int) {
	for range n {
		p.Tick(dt)
	}
}

// settle lets a freshly placed player land and clears the landing tick.
func settle(t *testing.T, p *Player) {
	t.Helper()
	for range 120 {
		p.Tick(dt)
		if p.Grounded() && !p.Body.Movement.Has(component.Landing) {
			return
		}
	}
	t.Fatalf("player never settled, at %v", p.Body.Position)
}

// tickUntil ticks until cond holds, failing after max ticks.
func tickUntil(t *testing.T, p *Player, max int, cond func() bool) int {
	t.Helper()
	for i := 1; i <= max; i++ {
		p.Tick(dt)
		if cond() {
			return i
		}
	}
	t.Fatalf("condition not reached in %d ticks, at %v", max, p.Body.Position)
	return 0
}

func countEvents(d *component.Dispatcher, ev component.MovementEvent) *int {
	n := new(int)
	d.Subscribe(ev, func(component.MovementEvent) { *n++ })
	return n
}

// stubBehaviour walks along axis forever and turns around when blocked.
type stubBehaviour struct {
	axis float64
}

func (s stubBehaviour) Next(ctx BehaviourContext) (float64, float64, error) {
	if ctx.Blocked {
		return -ctx.Axis, 100, nil
	}
	return s.axis, 100, nil
}
