package bodysync

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/ecs/component"
	"github.com/milk9111/rigidsync/physics"
	"gopkg.in/yaml.v3"
)

// BodySnapshot is the synced pose of one physics entity.
type BodySnapshot struct {
	Entity string  `yaml:"entity"`
	Handle uint64  `yaml:"handle,omitempty"`
	State  string  `yaml:"state"`
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Angle  float32 `yaml:"angle"`
}

// Snapshot lists every entity with a binding and transform, in entity order.
// Angle is in degrees. State is the binding state while pending, the body's
// activation state once bound, or "missing" if the handle is unknown.
func Snapshot(w *ecs.World, world physics.World) []BodySnapshot {
	var out []BodySnapshot
	for _, e := range ecs.Entities(w) {
		binding, ok := ecs.Get(w, e, component.PhysicsBindingComponent.Kind())
		if !ok {
			continue
		}
		t, ok := ecs.Get(w, e, component.LocalTransformComponent.Kind())
		if !ok {
			continue
		}
		snap := BodySnapshot{
			Entity: e.String(),
			State:  binding.State().String(),
			X:      t.Translation.X(),
			Y:      t.Translation.Y(),
			Angle:  mgl32.RadToDeg(physics.PlanarAngle(t.Rotation)),
		}
		if h, bound := binding.Handle(); bound {
			snap.Handle = uint64(h)
			snap.State = "missing"
			if body, ok := world.Get(h); ok {
				snap.State = body.ActivationState().String()
			}
		}
		out = append(out, snap)
	}
	return out
}

func MarshalSnapshot(snaps []BodySnapshot) ([]byte, error) {
	return yaml.Marshal(struct {
		Bodies []BodySnapshot `yaml:"bodies"`
	}{Bodies: snaps})
}
