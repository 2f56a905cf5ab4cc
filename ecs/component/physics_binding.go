package component

import (
	"errors"
	"fmt"

	"github.com/milk9111/rigidsync/physics"
)

var ErrAlreadyBound = errors.New("ecs: physics binding already bound")

type BindingState uint8

const (
	BindingPending BindingState = iota
	BindingBound
)

func (s BindingState) String() string {
	switch s {
	case BindingPending:
		return "pending"
	case BindingBound:
		return "bound"
	default:
		return fmt.Sprintf("BindingState(%d)", uint8(s))
	}
}

// PhysicsBinding links an entity to a body. It starts Pending with the
// descriptor to insert and moves to Bound exactly once, after which only the
// handle is kept.
type PhysicsBinding struct {
	state      BindingState
	descriptor physics.BodyDescriptor
	handle     physics.BodyHandle
}

// Pending returns a binding that will create a body from desc.
func Pending(desc physics.BodyDescriptor) *PhysicsBinding {
	return &PhysicsBinding{state: BindingPending, descriptor: desc}
}

// Bound returns a binding for a body that already exists.
func Bound(h physics.BodyHandle) *PhysicsBinding {
	return &PhysicsBinding{state: BindingBound, handle: h}
}

func (b *PhysicsBinding) State() BindingState {
	return b.state
}

// Descriptor returns the pending descriptor. ok is false once bound.
func (b *PhysicsBinding) Descriptor() (desc physics.BodyDescriptor, ok bool) {
	if b.state != BindingPending {
		return physics.BodyDescriptor{}, false
	}
	return b.descriptor, true
}

// Handle returns the body handle. ok is false while pending.
func (b *PhysicsBinding) Handle() (h physics.BodyHandle, ok bool) {
	if b.state != BindingBound {
		return 0, false
	}
	return b.handle, true
}

// Bind records the inserted body. Rebinding is an error and leaves the
// original handle in place.
func (b *PhysicsBinding) Bind(h physics.BodyHandle) error {
	if b.state == BindingBound {
		return fmt.Errorf("bind handle %d over %d: %w", h, b.handle, ErrAlreadyBound)
	}
	b.state = BindingBound
	b.handle = h
	b.descriptor = physics.BodyDescriptor{}
	return nil
}

var PhysicsBindingComponent = NewComponent[PhysicsBinding]()
