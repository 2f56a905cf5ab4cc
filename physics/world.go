// Package physics defines the contract between the ECS and a 2D rigid-body
// simulation, the conversion of simulation rotations into render-space
// quaternions, and a Chipmunk-backed implementation of that contract.
package physics

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrInvalidDescriptor = errors.New("physics: invalid body descriptor")

// BodyHandle is a stable reference to a body inserted into a World. Handles
// are never reused, even after the body is removed.
type BodyHandle uint64

// ActivationState reports whether a body participates in simulation.
type ActivationState uint8

const (
	Active ActivationState = iota
	Inactive
)

func (s ActivationState) String() string {
	switch s {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// Body is a view of one simulated body. It must not be retained past the
// frame that obtained it.
type Body interface {
	Position() mgl32.Vec2
	RotationSubmatrix() mgl32.Mat2
	ActivationState() ActivationState
	Activate(strength float32)
	ApplyAngularImpulse(impulse float32)
	ApplyLinearImpulse(impulse mgl32.Vec2)
}

// World is the simulation service the sync system drives. Implementations
// are not safe for concurrent use; a single owner mutates the world within
// one frame.
type World interface {
	Insert(desc BodyDescriptor) (BodyHandle, error)
	Get(h BodyHandle) (Body, bool)
	Remove(h BodyHandle) bool
	Step(dt float32)
	Len() int
}
