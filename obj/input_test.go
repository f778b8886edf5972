package obj

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestButtonTrackerEdges(t *testing.T) {
	var tr ButtonTracker
	samples := []struct {
		held bool
		want ButtonState
	}{
		{held: false, want: ButtonState{}},
		{held: true, want: ButtonState{Pressed: true, Held: true}},
		{held: true, want: ButtonState{Held: true}},
		{held: false, want: ButtonState{Released: true}},
		{held: false, want: ButtonState{}},
	}
	for i, s := range samples {
		in := tr.Update(RawInput{Jump: s.held})
		assert.Equal(t, s.want, in.Jump, "sample %d", i)
	}
}

func TestScriptedInputReplaysSteps(t *testing.T) {
	in := NewScriptedInput(
		InputStep{Ticks: 2, RawInput: RawInput{Axis: 1}},
		InputStep{Ticks: 1, RawInput: RawInput{Axis: 1, Jump: true}},
	)
	got := []Intent{in.Poll(), in.Poll(), in.Poll()}
	assert.True(t, in.Done())
	assert.Equal(t, 1.0, got[0].Axis)
	assert.False(t, got[1].Jump.Held)
	assert.True(t, got[2].Jump.Pressed)

	after := in.Poll()
	assert.Zero(t, after.Axis)
	assert.True(t, after.Jump.Released)
}

func TestScriptedInputFromYAML(t *testing.T) {
	src := `
- ticks: 3
  axis: -1
- ticks: 1
  dash: true
  axis: -1
`
	var steps []InputStep
	assert.NoError(t, yaml.Unmarshal([]byte(src), &steps))
	assert.Len(t, steps, 2)
	assert.Equal(t, 3, steps[0].Ticks)
	assert.Equal(t, -1.0, steps[0].Axis)
	assert.True(t, steps[1].Dash)
}

func TestIntentClamped(t *testing.T) {
	tests := []struct {
		axis float64
		want float64
	}{
		{axis: 0.5, want: 0.5},
		{axis: 3, want: 1},
		{axis: -7, want: -1},
		{axis: math.NaN(), want: 0},
		{axis: math.Inf(-1), want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Intent{Axis: tt.axis}.clamped().Axis)
	}
}

func TestInputFunc(t *testing.T) {
	var src InputSource = InputFunc(func() Intent { return Intent{Axis: -1} })
	assert.Equal(t, -1.0, src.Poll().Axis)
}
