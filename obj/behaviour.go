package obj

import (
	"fmt"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/prefabs"
)

const minHold = 0.05

// BehaviourContext is what a behaviour sees when asked for its next move.
// Roll and Roll2 are uniform in [0, 1).
type BehaviourContext struct {
	Axis    float64
	Blocked bool
	Roll    float64
	Roll2   float64
}

// Behaviour picks an AI body's next axis and how long to keep it.
type Behaviour interface {
	Next(ctx BehaviourContext) (axis, hold float64, err error)
}

// RandomBehaviour wanders: a uniform pick from left, stop and right, held
// for IdleTime plus or minus IdleJitter. Hitting a wall turns around.
type RandomBehaviour struct {
	IdleTime   float64
	IdleJitter float64
}

func (r RandomBehaviour) Next(ctx BehaviourContext) (float64, float64, error) {
	var axis float64
	switch {
	case ctx.Blocked:
		axis = -ctx.Axis
	case ctx.Roll < 1.0/3:
		axis = -1
	case ctx.Roll < 2.0/3:
		axis = 0
	default:
		axis = 1
	}
	hold := math.Max(0.25, r.IdleTime+(ctx.Roll2*2-1)*r.IdleJitter)
	return axis, hold, nil
}

// ScriptBehaviour runs a tengo script per decision. The script reads axis,
// blocked, roll, roll2, idle_time and idle_jitter, and must set next_axis
// and hold.
type ScriptBehaviour struct {
	Name string

	compiled *tengo.Compiled
}

// NewScriptBehaviour compiles src once. Each Next reuses the compiled
// program with fresh inputs.
func NewScriptBehaviour(name string, src []byte, idleTime, idleJitter float64) (*ScriptBehaviour, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math"))
	inputs := map[string]any{
		"axis":        0.0,
		"blocked":     false,
		"roll":        0.0,
		"roll2":       0.0,
		"idle_time":   idleTime,
		"idle_jitter": idleJitter,
	}
	for k, v := range inputs {
		if err := script.Add(k, v); err != nil {
			return nil, fmt.Errorf("behaviour %s: add %s: %w", name, k, err)
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("behaviour %s: compile: %w", name, err)
	}
	return &ScriptBehaviour{Name: name, compiled: compiled}, nil
}

// LoadScriptBehaviour reads a script from the prefabs and compiles it.
func LoadScriptBehaviour(name string, idleTime, idleJitter float64) (*ScriptBehaviour, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("behaviour %s: %w", name, err)
	}
	return NewScriptBehaviour(name, src, idleTime, idleJitter)
}

func (s *ScriptBehaviour) Next(ctx BehaviourContext) (float64, float64, error) {
	c := s.compiled
	for k, v := range map[string]any{
		"axis":    ctx.Axis,
		"blocked": ctx.Blocked,
		"roll":    ctx.Roll,
		"roll2":   ctx.Roll2,
	} {
		if err := c.Set(k, v); err != nil {
			return 0, 0, fmt.Errorf("behaviour %s: set %s: %w", s.Name, k, err)
		}
	}
	if err := c.Run(); err != nil {
		return 0, 0, fmt.Errorf("behaviour %s: run: %w", s.Name, err)
	}
	if !c.IsDefined("next_axis") || !c.IsDefined("hold") {
		return 0, 0, fmt.Errorf("behaviour %s: script must set next_axis and hold", s.Name)
	}
	axis := c.Get("next_axis").Float()
	hold := c.Get("hold").Float()
	if !common.Finite(axis) || !common.Finite(hold) {
		return 0, 0, fmt.Errorf("behaviour %s: non-finite output", s.Name)
	}
	return common.Clamp(axis, -1, 1), math.Max(hold, minHold), nil
}

// BehaviourFromSpec builds the behaviour a prefab asks for. Unknown kinds
// fall back to RandomBehaviour.
func BehaviourFromSpec(spec prefabs.BehaviourSpec) (Behaviour, error) {
	switch spec.Kind {
	case "script":
		return LoadScriptBehaviour(spec.Script, spec.IdleTime, spec.IdleJitter)
	default:
		return RandomBehaviour{IdleTime: spec.IdleTime, IdleJitter: spec.IdleJitter}, nil
	}
}
