package obj

import "math"

type DashPhase int

const (
	DashReady DashPhase = iota
	DashEnter
	DashExit
	DashFinish
)

func (p DashPhase) String() string {
	switch p {
	case DashReady:
		return "ready"
	case DashEnter:
		return "enter"
	case DashExit:
		return "exit"
	case DashFinish:
		return "finish"
	}
	return "unknown"
}

// Dash is the dash phase machine. Enter lasts Duration. Exit keeps the
// raised cap until Release or Interrupt. Finish runs for one tick and
// re-arms.
type Dash struct {
	Speed    float64
	Duration float64

	phase   DashPhase
	elapsed float64
	hold    bool
}

func (d *Dash) Phase() DashPhase {
	return d.phase
}

func (d *Dash) Ready() bool {
	return d.phase == DashReady
}

// Active reports whether the raised speed cap is in effect.
func (d *Dash) Active() bool {
	return d.phase == DashEnter || d.phase == DashExit
}

// Trigger starts a dash. It does nothing unless the dash is ready.
func (d *Dash) Trigger() bool {
	if d.phase != DashReady {
		return false
	}
	d.phase = DashEnter
	d.elapsed = 0
	d.hold = false
	return true
}

// Release ends the exit hold. It has no effect outside Exit.
func (d *Dash) Release() {
	if d.phase == DashExit {
		d.hold = false
	}
}

// Interrupt cuts an active dash short. The next Advance finishes it.
func (d *Dash) Interrupt() {
	if d.Active() {
		d.phase = DashFinish
		d.hold = false
	}
}

// Cap returns the speed cap to enforce given the normal one.
func (d *Dash) Cap(normal float64) float64 {
	if d.Active() {
		return math.Max(d.Speed, normal)
	}
	return normal
}

// Advance steps the machine and reports whether the phase changed.
func (d *Dash) Advance(dt float64) bool {
	switch d.phase {
	case DashEnter:
		d.elapsed += dt
		if d.elapsed >= d.Duration {
			d.phase = DashExit
			d.hold = true
			return true
		}
	case DashExit:
		if !d.hold {
			d.phase = DashFinish
			return true
		}
	case DashFinish:
		d.phase = DashReady
		d.elapsed = 0
		return true
	}
	return false
}

// Reset returns the dash to Ready without running Finish.
func (d *Dash) Reset() {
	d.phase = DashReady
	d.elapsed = 0
	d.hold = false
}
