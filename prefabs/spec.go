package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type MovementSpec struct {
	Accel           float64 `yaml:"accel"`
	MaxSpeed        float64 `yaml:"max_speed"`
	Gravity         float64 `yaml:"gravity"`
	MaxFall         float64 `yaml:"max_fall"`
	JumpSpeed       float64 `yaml:"jump_speed"`
	JumpPressLeeway float64 `yaml:"jump_press_leeway"`
	CoyoteTime      float64 `yaml:"coyote_time"`
	DoubleJumpRate  float64 `yaml:"double_jump_rate"`
	DashSpeed       float64 `yaml:"dash_speed"`
	DashTime        float64 `yaml:"dash_time"`
	WallSlideSpeed  float64 `yaml:"wall_slide_speed"`
	WallSlideDelay  float64 `yaml:"wall_slide_delay"`
	WallJumpAway    float64 `yaml:"wall_jump_away"`
	WallJumpRate    float64 `yaml:"wall_jump_rate"`
	SlopeFriction   float64 `yaml:"slope_friction"`
}

type ProbeSpec struct {
	Skin                 float64 `yaml:"skin"`
	GroundRays           int     `yaml:"ground_rays"`
	SideRays             int     `yaml:"side_rays"`
	WallAngleLeeway      float64 `yaml:"wall_angle_leeway"`
	SlopeNormalThreshold float64 `yaml:"slope_normal_threshold"`
}

type HitSpec struct {
	KnockbackTime  float64 `yaml:"knockback_time"`
	BlinkInterval  float64 `yaml:"blink_interval"`
	RecoveryBlinks int     `yaml:"recovery_blinks"`
}

type AbilitiesSpec struct {
	Dash       bool `yaml:"dash"`
	WallStick  bool `yaml:"wall_stick"`
	DoubleJump bool `yaml:"double_jump"`
}

type PlayerSpec struct {
	Name       string        `yaml:"name"`
	Collider   ColliderSpec  `yaml:"collider"`
	Health     float64       `yaml:"health"`
	Movement   MovementSpec  `yaml:"movement"`
	Probe      ProbeSpec     `yaml:"probe"`
	Hit        HitSpec       `yaml:"hit"`
	Abilities  AbilitiesSpec `yaml:"abilities"`
	DebugColor *YAMLColor    `yaml:"debug_color"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type BehaviourSpec struct {
	// Kind is "random" or "script".
	Kind       string  `yaml:"kind"`
	Script     string  `yaml:"script"`
	IdleTime   float64 `yaml:"idle_time"`
	IdleJitter float64 `yaml:"idle_jitter"`
}

type TouchSpec struct {
	Damage    float64 `yaml:"damage"`
	Knockback float64 `yaml:"knockback"`
}

type EnemySpec struct {
	Name       string        `yaml:"name"`
	Collider   ColliderSpec  `yaml:"collider"`
	Health     float64       `yaml:"health"`
	Movement   MovementSpec  `yaml:"movement"`
	Probe      ProbeSpec     `yaml:"probe"`
	Behaviour  BehaviourSpec `yaml:"behaviour"`
	Touch      TouchSpec     `yaml:"touch"`
	DebugColor *YAMLColor    `yaml:"debug_color"`
}

func LoadEnemySpec() (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec]("enemy.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PlatformSpec struct {
	Width      float64    `yaml:"width"`
	Height     float64    `yaml:"height"`
	Speed      float64    `yaml:"speed"`
	OneWay     bool       `yaml:"one_way"`
	DebugColor *YAMLColor `yaml:"debug_color"`
}

func LoadPlatformSpec() (*PlatformSpec, error) {
	spec, err := LoadSpec[PlatformSpec]("platform.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ShotSpec struct {
	Damage   float64 `yaml:"damage"`
	Speed    float64 `yaml:"speed"`
	Lifetime float64 `yaml:"lifetime"`
	Cooldown float64 `yaml:"cooldown"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
}

type UppercutSpec struct {
	Damage      float64 `yaml:"damage"`
	UpwardSpeed float64 `yaml:"upward_speed"`
	LaunchSpeed float64 `yaml:"launch_speed"`
	Cooldown    float64 `yaml:"cooldown"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
}

type AttacksSpec struct {
	Shot     ShotSpec     `yaml:"shot"`
	Uppercut UppercutSpec `yaml:"uppercut"`
}

func LoadAttacksSpec() (*AttacksSpec, error) {
	spec, err := LoadSpec[AttacksSpec]("attacks.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type IcySpec struct {
	AccelRate float64 `yaml:"accel_rate"`
}

type BouncySpec struct {
	BounceRate     float64 `yaml:"bounce_rate"`
	BounceJumpRate float64 `yaml:"bounce_jump_rate"`
	DoubleJump     bool    `yaml:"double_jump"`
}

type SurfacesSpec struct {
	Icy    IcySpec    `yaml:"icy"`
	Bouncy BouncySpec `yaml:"bouncy"`
}

func LoadSurfacesSpec() (*SurfacesSpec, error) {
	spec, err := LoadSpec[SurfacesSpec]("surfaces.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// YAMLColor is a debug-draw color written as "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("prefabs: color at line %d must be a string", value.Line)
	}
	s := strings.TrimPrefix(value.Value, "#")
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return fmt.Errorf("prefabs: bad color %q", value.Value)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("prefabs: bad color %q: %w", value.Value, err)
	}
	c.Color = color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return nil
}

// Or returns the parsed color, or def when the field was not set.
func (c *YAMLColor) Or(def color.Color) color.Color {
	if c == nil || c.Color == nil {
		return def
	}
	return c.Color
}
