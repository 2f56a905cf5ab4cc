package component

import "github.com/go-gl/mathgl/mgl32"

// ImpulseRequest is a one-shot slot for impulses to apply on the next frame.
// Writing a field twice before the frame replaces the earlier value.
type ImpulseRequest struct {
	Angular *float32
	Linear  *mgl32.Vec2
}

func (r *ImpulseRequest) SetAngular(impulse float32) {
	r.Angular = &impulse
}

func (r *ImpulseRequest) SetLinear(impulse mgl32.Vec2) {
	r.Linear = &impulse
}

// Empty reports whether neither field is set.
func (r *ImpulseRequest) Empty() bool {
	return r.Angular == nil && r.Linear == nil
}

func (r *ImpulseRequest) Clear() {
	r.Angular = nil
	r.Linear = nil
}

var ImpulseRequestComponent = NewComponent[ImpulseRequest]()
