// Package physicstest provides an in-memory physics.World that records every
// call made against it, for tests of code that drives a simulation.
package physicstest

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigidsync/physics"
)

type Op string

const (
	OpInsert   Op = "insert"
	OpRemove   Op = "remove"
	OpStep     Op = "step"
	OpActivate Op = "activate"
	OpAngular  Op = "angular_impulse"
	OpLinear   Op = "linear_impulse"
)

// Call is one recorded interaction. Value holds the descriptor, delta,
// strength or impulse passed in.
type Call struct {
	Op     Op
	Handle physics.BodyHandle
	Value  any
}

// Body is the mutable state behind a handle. Tests set Position, Rotation
// and State directly to script what the world reports.
type Body struct {
	Descriptor physics.BodyDescriptor
	Position   mgl32.Vec2
	Rotation   mgl32.Mat2
	State      physics.ActivationState

	AngularMomentum float32
	LinearMomentum  mgl32.Vec2
}

// World is a physics.World that never simulates anything.
type World struct {
	Bodies map[physics.BodyHandle]*Body
	Calls  []Call

	// InsertErr, when set, is returned by every Insert.
	InsertErr error

	last physics.BodyHandle
}

var _ physics.World = (*World)(nil)

func New() *World {
	return &World{Bodies: make(map[physics.BodyHandle]*Body)}
}

func (w *World) Insert(desc physics.BodyDescriptor) (physics.BodyHandle, error) {
	if w.InsertErr != nil {
		return 0, w.InsertErr
	}
	if err := desc.Validate(); err != nil {
		return 0, err
	}
	w.last++
	h := w.last
	w.Bodies[h] = &Body{
		Descriptor: desc,
		Position:   desc.Position,
		Rotation:   physics.AngleSubmatrix(float64(desc.Angle)),
		State:      physics.Active,
	}
	w.Calls = append(w.Calls, Call{Op: OpInsert, Handle: h, Value: desc})
	return h, nil
}

func (w *World) Get(h physics.BodyHandle) (physics.Body, bool) {
	b, ok := w.Bodies[h]
	if !ok {
		return nil, false
	}
	return &bodyView{world: w, handle: h, body: b}, true
}

func (w *World) Remove(h physics.BodyHandle) bool {
	if _, ok := w.Bodies[h]; !ok {
		return false
	}
	delete(w.Bodies, h)
	w.Calls = append(w.Calls, Call{Op: OpRemove, Handle: h})
	return true
}

func (w *World) Step(dt float32) {
	w.Calls = append(w.Calls, Call{Op: OpStep, Value: dt})
}

func (w *World) Len() int {
	return len(w.Bodies)
}

// Count returns how many calls of op were recorded.
func (w *World) Count(op Op) int {
	n := 0
	for _, c := range w.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Ops returns the recorded operations in order.
func (w *World) Ops() []Op {
	ops := make([]Op, 0, len(w.Calls))
	for _, c := range w.Calls {
		ops = append(ops, c.Op)
	}
	return ops
}

// Reset forgets recorded calls but keeps the bodies.
func (w *World) Reset() {
	w.Calls = nil
}

type bodyView struct {
	world  *World
	handle physics.BodyHandle
	body   *Body
}

func (v *bodyView) record(op Op, value any) {
	v.world.Calls = append(v.world.Calls, Call{Op: op, Handle: v.handle, Value: value})
}

func (v *bodyView) Position() mgl32.Vec2 {
	return v.body.Position
}

func (v *bodyView) RotationSubmatrix() mgl32.Mat2 {
	return v.body.Rotation
}

func (v *bodyView) ActivationState() physics.ActivationState {
	return v.body.State
}

func (v *bodyView) Activate(strength float32) {
	v.record(OpActivate, strength)
	if strength > 0 {
		v.body.State = physics.Active
	}
}

func (v *bodyView) ApplyAngularImpulse(impulse float32) {
	v.record(OpAngular, impulse)
	v.body.AngularMomentum += impulse
}

func (v *bodyView) ApplyLinearImpulse(impulse mgl32.Vec2) {
	v.record(OpLinear, impulse)
	v.body.LinearMomentum = v.body.LinearMomentum.Add(impulse)
}
