package prefabs

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigidsync/physics"
	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// PhysicsBodyComponentSpec describes a body template. X and Y are the body's
// starting position relative to the entity's translation; Angle is degrees.
type PhysicsBodyComponentSpec struct {
	Kind        string  `yaml:"kind"`
	Shape       string  `yaml:"shape"`
	HalfWidth   float32 `yaml:"half_width"`
	HalfHeight  float32 `yaml:"half_height"`
	Radius      float32 `yaml:"radius"`
	Mass        float32 `yaml:"mass"`
	Friction    float32 `yaml:"friction"`
	Restitution float32 `yaml:"restitution"`
	X           float32 `yaml:"x"`
	Y           float32 `yaml:"y"`
	Angle       float32 `yaml:"angle"`
}

func (s PhysicsBodyComponentSpec) Descriptor() (physics.BodyDescriptor, error) {
	kind, err := physics.ParseBodyKind(s.Kind)
	if err != nil {
		return physics.BodyDescriptor{}, err
	}

	var shape physics.Shape
	switch s.Shape {
	case "", "box":
		shape = physics.Box(s.HalfWidth, s.HalfHeight)
	case "circle":
		shape = physics.Circle(s.Radius)
	default:
		return physics.BodyDescriptor{}, fmt.Errorf("%w: unknown shape %q", ErrInvalidSpec, s.Shape)
	}

	desc := physics.BodyDescriptor{
		Kind:        kind,
		Shape:       shape,
		Mass:        s.Mass,
		Friction:    s.Friction,
		Restitution: s.Restitution,
		Position:    mgl32.Vec2{s.X, s.Y},
		Angle:       mgl32.DegToRad(s.Angle),
	}
	if err := desc.Validate(); err != nil {
		return physics.BodyDescriptor{}, err
	}
	return desc, nil
}

type RenderableComponentSpec struct {
	Color YAMLColor `yaml:"color"`
}

// Cache keeps decoded entity templates until they are invalidated, usually
// by the watcher reporting a change on disk.
type Cache struct {
	mu    sync.Mutex
	specs map[string]EntityBuildSpec
}

func NewCache() *Cache {
	return &Cache{specs: make(map[string]EntityBuildSpec)}
}

func (c *Cache) Get(name string) (EntityBuildSpec, error) {
	key := cleanPrefabPath(name)
	c.mu.Lock()
	defer c.mu.Unlock()
	if spec, ok := c.specs[key]; ok {
		return spec, nil
	}
	spec, err := LoadEntityBuildSpec(key)
	if err != nil {
		return EntityBuildSpec{}, err
	}
	c.specs[key] = spec
	return spec, nil
}

// Invalidate drops the template for path, which may be a disk path such as
// prefabs/dynamic_box.yaml. It reports whether anything was cached.
func (c *Cache) Invalidate(path string) bool {
	key := filepath.Base(path)
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.specs[key]
	delete(c.specs, key)
	return ok
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.specs)
}
