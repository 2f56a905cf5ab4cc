package entity

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/ecs/component"
	"github.com/milk9111/rigidsync/physics"
	"github.com/milk9111/rigidsync/prefabs"
)

type buildContext struct {
	PrefabPath string
	Shape      *physics.Shape
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":    addTransform,
	"physics_body": addPhysicsBody,
	"impulse":      addImpulse,
	"input":        addInput,
	"renderable":   addRenderable,
}

// renderable reads the shape recorded by physics_body, so order matters.
var componentBuildOrder = []string{
	"transform",
	"physics_body",
	"impulse",
	"input",
	"renderable",
}

// SpecSource returns entity templates by prefab path.
type SpecSource interface {
	Get(name string) (prefabs.EntityBuildSpec, error)
}

// BuildEntity creates an entity from a prefab template. On error nothing is
// left in the world.
func BuildEntity(w *ecs.World, specs SpecSource, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := specs.Get(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}
	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	if len(remaining) > 0 {
		unknown := make([]string, 0, len(remaining))
		for name := range remaining {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, unknown[0])
	}

	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

// SetEntityPosition moves e's translation, adding a transform if it has none.
func SetEntityPosition(w *ecs.World, e ecs.Entity, pos mgl32.Vec2) error {
	t, ok := ecs.Get(w, e, component.LocalTransformComponent.Kind())
	if !ok {
		return ecs.Add(w, e, component.LocalTransformComponent.Kind(), component.NewLocalTransform(pos.X(), pos.Y()))
	}
	t.Translation = mgl32.Vec3{pos.X(), pos.Y(), t.Translation.Z()}
	return nil
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.LocalTransformComponent.Kind(), component.NewLocalTransform(spec.X, spec.Y))
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return err
	}
	desc, err := spec.Descriptor()
	if err != nil {
		return err
	}
	ctx.Shape = &desc.Shape
	return ecs.Add(w, e, component.PhysicsBindingComponent.Kind(), component.Pending(desc))
}

func addImpulse(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ImpulseRequestComponent.Kind(), &component.ImpulseRequest{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addRenderable(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderableComponentSpec](raw)
	if err != nil {
		return err
	}
	if ctx.Shape == nil {
		return fmt.Errorf("renderable needs a physics_body shape")
	}
	return ecs.Add(w, e, component.RenderableComponent.Kind(), &component.Renderable{
		Shape: *ctx.Shape,
		Color: spec.Color.ToRGBA(),
	})
}
