package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigidsync/physics"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

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

type Vec2Spec struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

func (v Vec2Spec) Vec2() mgl32.Vec2 {
	return mgl32.Vec2{v.X, v.Y}
}

// WorldSpec configures the simulation and the view onto it.
type WorldSpec struct {
	Gravity            *Vec2Spec `yaml:"gravity"`
	Iterations         uint      `yaml:"iterations"`
	SleepTimeThreshold *float64  `yaml:"sleep_time_threshold"`
	PixelsPerUnit      float32   `yaml:"pixels_per_unit"`
	Camera             Vec2Spec  `yaml:"camera"`
	ImpulseScript      string    `yaml:"impulse_script"`
	LinearImpulse      float32   `yaml:"linear_impulse"`
	AngularImpulse     float32   `yaml:"angular_impulse"`
}

func LoadWorldSpec(filename string) (WorldSpec, error) {
	return LoadSpec[WorldSpec](filename)
}

// PhysicsConfig fills unset fields from physics.DefaultConfig.
func (s WorldSpec) PhysicsConfig() physics.Config {
	cfg := physics.DefaultConfig()
	if s.Gravity != nil {
		cfg.Gravity = s.Gravity.Vec2()
	}
	if s.Iterations > 0 {
		cfg.Iterations = s.Iterations
	}
	if s.SleepTimeThreshold != nil {
		cfg.SleepTimeThreshold = *s.SleepTimeThreshold
	}
	return cfg
}

// SceneSpec lists the entities to spawn at startup.
type SceneSpec struct {
	Name     string            `yaml:"name"`
	Entities []SceneEntitySpec `yaml:"entities"`
}

// SceneEntitySpec spawns one prefab. Position becomes the entity's initial
// translation.
type SceneEntitySpec struct {
	Name     string   `yaml:"name"`
	Prefab   string   `yaml:"prefab"`
	Position Vec2Spec `yaml:"position"`
}

func LoadSceneSpec(filename string) (SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return SceneSpec{}, err
	}
	for i, ent := range spec.Entities {
		if strings.TrimSpace(ent.Prefab) == "" {
			return SceneSpec{}, fmt.Errorf("%w: %s: entity %d has no prefab", ErrInvalidSpec, filename, i)
		}
	}
	return spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// ToRGBA returns the colour premultiplied, or the zero colour if unset.
func (c YAMLColor) ToRGBA() color.RGBA {
	if c.Color == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
}
