// Package bodysync keeps ECS transforms in step with a physics.World. It has
// no window or input dependencies, so it also runs headless.
package bodysync

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/ecs/component"
	"github.com/milk9111/rigidsync/physics"
	"go.uber.org/zap"
)

var (
	ErrInvalidDelta   = errors.New("physics sync: delta must be finite and non-negative")
	ErrReentrantFrame = errors.New("physics sync: frame already in progress")
	ErrBindFailed     = errors.New("physics sync: body insert failed")
)

// activationStrength is passed to Activate when a sleeping body is about to
// receive an impulse.
const activationStrength = 1.0

// System owns a physics world and keeps LocalTransforms in step
// with it. Each frame it binds pending entities or reads bound poses, applies
// requested impulses, then advances the world once.
type System struct {
	world  physics.World
	clock  Clock
	logger *zap.Logger

	inFrame bool
	failed  map[ecs.Entity]error
	// reported holds entities whose insert failure has been logged, so a
	// descriptor that keeps failing is logged once.
	reported map[ecs.Entity]struct{}
}

type Option func(*System)

// WithClock sets the source of per-frame elapsed time used by Update.
func WithClock(c Clock) Option {
	return func(s *System) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *System) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(world physics.World, opts ...Option) *System {
	s := &System{
		world:    world,
		clock:    NewFixedClock(DefaultTPS),
		logger:   zap.NewNop(),
		failed:   make(map[ecs.Entity]error),
		reported: make(map[ecs.Entity]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *System) World() physics.World {
	return s.world
}

// Update runs one frame using the configured clock. Insert failures are
// logged the first time an entity hits them and do not abort the schedule;
// any other error is returned.
func (s *System) Update(w *ecs.World) error {
	s.pruneReported(w)
	err := s.Sync(w, s.clock.Delta())
	if err == nil || !errors.Is(err, ErrBindFailed) {
		return err
	}
	for e, cause := range s.failed {
		if _, ok := s.reported[e]; ok {
			continue
		}
		s.reported[e] = struct{}{}
		s.logger.Warn("physics sync: body not created", zap.Stringer("entity", e), zap.Error(cause))
	}
	return withoutBindFailures(err)
}

// withoutBindFailures drops the ErrBindFailed parts of a joined error.
func withoutBindFailures(err error) error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		if errors.Is(err, ErrBindFailed) {
			return nil
		}
		return err
	}
	var rest []error
	for _, e := range joined.Unwrap() {
		if !errors.Is(e, ErrBindFailed) {
			rest = append(rest, e)
		}
	}
	return errors.Join(rest...)
}

// pruneReported forgets entities destroyed without Despawn.
func (s *System) pruneReported(w *ecs.World) {
	for e := range s.reported {
		if !ecs.IsAlive(w, e) {
			delete(s.reported, e)
		}
	}
}

// Sync runs one frame with an explicit elapsed time in seconds. Insert
// failures do not stop other entities; they are returned joined once the
// world has been stepped, and the entity stays pending so the insert is
// tried again next frame.
func (s *System) Sync(w *ecs.World, dt float32) error {
	if math.IsNaN(float64(dt)) || math.IsInf(float64(dt), 0) || dt < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidDelta, dt)
	}
	if s.inFrame {
		return ErrReentrantFrame
	}
	s.inFrame = true
	defer func() { s.inFrame = false }()
	clear(s.failed)

	bindErr := s.bindOrRead(w)
	s.applyImpulses(w)
	s.world.Step(dt)
	return bindErr
}

func (s *System) bindOrRead(w *ecs.World) error {
	var errs []error
	ecs.ForEach2(w, component.PhysicsBindingComponent.Kind(), component.LocalTransformComponent.Kind(), func(e ecs.Entity, binding *component.PhysicsBinding, transform *component.LocalTransform) {
		if h, ok := binding.Handle(); ok {
			body, ok := s.world.Get(h)
			if !ok {
				return
			}
			pos := body.Position()
			transform.Translation = mgl32.Vec3{pos.X(), pos.Y(), 0}
			transform.Rotation = physics.RotationToQuat(body.RotationSubmatrix())
			return
		}

		desc, ok := binding.Descriptor()
		if !ok {
			return
		}
		offset := mgl32.Vec2{transform.Translation.X(), transform.Translation.Y()}
		desc = desc.WithOffset(offset)
		// Malformed descriptors never reach the world.
		var h physics.BodyHandle
		err := desc.Validate()
		if err == nil {
			h, err = s.world.Insert(desc)
		}
		if err != nil {
			s.failed[e] = err
			errs = append(errs, fmt.Errorf("%w: entity %s: %w", ErrBindFailed, e, err))
			return
		}
		if err := binding.Bind(h); err != nil {
			errs = append(errs, fmt.Errorf("entity %s: %w", e, err))
			return
		}
		delete(s.reported, e)
		w.Events().Push(ecs.Event{
			Type: "body",
			Data: ecs.BodyEvent{Entity: e, Kind: ecs.BodyEventBound, Handle: uint64(h)},
		})
	})
	return errors.Join(errs...)
}

func (s *System) applyImpulses(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBindingComponent.Kind(), component.ImpulseRequestComponent.Kind(), func(e ecs.Entity, binding *component.PhysicsBinding, req *component.ImpulseRequest) {
		h, ok := binding.Handle()
		if !ok || req.Empty() {
			return
		}
		defer req.Clear()

		body, ok := s.world.Get(h)
		if !ok {
			return
		}
		if body.ActivationState() == physics.Inactive {
			body.Activate(activationStrength)
		}
		if req.Angular != nil {
			body.ApplyAngularImpulse(*req.Angular)
		}
		if req.Linear != nil {
			body.ApplyLinearImpulse(*req.Linear)
		}
	})
}

// Despawn destroys e and removes its body from the world if it was bound.
// It reports false when e was not alive.
func (s *System) Despawn(w *ecs.World, e ecs.Entity) bool {
	if !ecs.IsAlive(w, e) {
		return false
	}
	if binding, ok := ecs.Get(w, e, component.PhysicsBindingComponent.Kind()); ok {
		if h, bound := binding.Handle(); bound && s.world.Remove(h) {
			w.Events().Push(ecs.Event{
				Type: "body",
				Data: ecs.BodyEvent{Entity: e, Kind: ecs.BodyEventRemoved, Handle: uint64(h)},
			})
		}
	}
	delete(s.reported, e)
	return ecs.DestroyEntity(w, e)
}
