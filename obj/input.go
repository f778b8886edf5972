package obj

import "github.com/milk9111/platformer/common"

// ButtonState is the per-tick state of one logical button.
type ButtonState struct {
	Pressed  bool // went down this tick
	Held     bool
	Released bool // went up this tick
}

// Next derives the state for this tick from the raw held value and the
// previous tick's state.
func (b ButtonState) Next(held bool) ButtonState {
	return ButtonState{
		Pressed:  held && !b.Held,
		Held:     held,
		Released: !held && b.Held,
	}
}

// Intent is what the controller is asked to do this tick.
type Intent struct {
	// Axis is the horizontal axis in [-1, 1].
	Axis     float64
	Jump     ButtonState
	Dash     ButtonState
	Shoot    ButtonState
	Uppercut ButtonState
}

func (in Intent) clamped() Intent {
	if !common.Finite(in.Axis) {
		in.Axis = 0
	}
	in.Axis = common.Clamp(in.Axis, -1, 1)
	return in
}

// InputSource supplies one Intent per tick. Controllers never read devices
// directly.
type InputSource interface {
	Poll() Intent
}

// InputFunc adapts a function to InputSource.
type InputFunc func() Intent

func (f InputFunc) Poll() Intent {
	return f()
}

// RawInput is the held state of each button, as read from a device or a
// script.
type RawInput struct {
	Axis     float64 `yaml:"axis"`
	Jump     bool    `yaml:"jump"`
	Dash     bool    `yaml:"dash"`
	Shoot    bool    `yaml:"shoot"`
	Uppercut bool    `yaml:"uppercut"`
}

// ButtonTracker turns successive RawInput samples into Intents with
// pressed/released edges.
type ButtonTracker struct {
	last Intent
}

func (t *ButtonTracker) Update(raw RawInput) Intent {
	in := Intent{
		Axis:     raw.Axis,
		Jump:     t.last.Jump.Next(raw.Jump),
		Dash:     t.last.Dash.Next(raw.Dash),
		Shoot:    t.last.Shoot.Next(raw.Shoot),
		Uppercut: t.last.Uppercut.Next(raw.Uppercut),
	}
	t.last = in
	return in
}

// InputStep holds a RawInput for a number of ticks.
type InputStep struct {
	Ticks    int `yaml:"ticks"`
	RawInput `yaml:",inline"`
}

// ScriptedInput replays a list of steps, then reports no input.
type ScriptedInput struct {
	Steps []InputStep

	step    int
	elapsed int
	tracker ButtonTracker
}

func NewScriptedInput(steps ...InputStep) *ScriptedInput {
	return &ScriptedInput{Steps: steps}
}

func (s *ScriptedInput) Poll() Intent {
	for s.step < len(s.Steps) && s.elapsed >= s.Steps[s.step].Ticks {
		s.step++
		s.elapsed = 0
	}
	if s.step >= len(s.Steps) {
		return s.tracker.Update(RawInput{})
	}
	s.elapsed++
	return s.tracker.Update(s.Steps[s.step].RawInput)
}

// Done reports whether every step has been replayed.
func (s *ScriptedInput) Done() bool {
	return s.step >= len(s.Steps) ||
		(s.step == len(s.Steps)-1 && s.elapsed >= s.Steps[s.step].Ticks)
}

// HeldInput reports whatever Raw currently holds. Tests mutate Raw between
// ticks.
type HeldInput struct {
	Raw     RawInput
	tracker ButtonTracker
}

func (h *HeldInput) Poll() Intent {
	return h.tracker.Update(h.Raw)
}
