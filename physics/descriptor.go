package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BodyKind selects how the simulation treats a body.
type BodyKind uint8

const (
	Dynamic BodyKind = iota
	Static
	Kinematic
)

func (k BodyKind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	default:
		return fmt.Sprintf("BodyKind(%d)", uint8(k))
	}
}

// ParseBodyKind accepts the names produced by BodyKind.String.
func ParseBodyKind(s string) (BodyKind, error) {
	switch s {
	case "", "dynamic":
		return Dynamic, nil
	case "static":
		return Static, nil
	case "kinematic":
		return Kinematic, nil
	default:
		return 0, fmt.Errorf("%w: unknown body kind %q", ErrInvalidDescriptor, s)
	}
}

type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
)

// Shape is the collision geometry of a body, centred on the body origin.
type Shape struct {
	Kind        ShapeKind
	HalfExtents mgl32.Vec2
	Radius      float32
}

func Box(halfWidth, halfHeight float32) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: mgl32.Vec2{halfWidth, halfHeight}}
}

func Circle(radius float32) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// BodyDescriptor is an uninstantiated body. Position and Angle give the
// starting pose in world units and radians.
type BodyDescriptor struct {
	Kind        BodyKind
	Shape       Shape
	Mass        float32
	Friction    float32
	Restitution float32
	Position    mgl32.Vec2
	Angle       float32
}

// WithOffset returns a copy of d translated by offset.
func (d BodyDescriptor) WithOffset(offset mgl32.Vec2) BodyDescriptor {
	d.Position = d.Position.Add(offset)
	return d
}

// Validate rejects descriptors the simulation cannot instantiate.
func (d BodyDescriptor) Validate() error {
	switch d.Kind {
	case Dynamic, Static, Kinematic:
	default:
		return fmt.Errorf("%w: kind %s", ErrInvalidDescriptor, d.Kind)
	}
	switch d.Shape.Kind {
	case ShapeBox:
		if !positiveFinite(d.Shape.HalfExtents[0]) || !positiveFinite(d.Shape.HalfExtents[1]) {
			return fmt.Errorf("%w: box half extents %v", ErrInvalidDescriptor, d.Shape.HalfExtents)
		}
	case ShapeCircle:
		if !positiveFinite(d.Shape.Radius) {
			return fmt.Errorf("%w: circle radius %v", ErrInvalidDescriptor, d.Shape.Radius)
		}
	default:
		return fmt.Errorf("%w: shape kind %d", ErrInvalidDescriptor, d.Shape.Kind)
	}
	if d.Kind == Dynamic && !positiveFinite(d.Mass) {
		return fmt.Errorf("%w: dynamic body mass %v", ErrInvalidDescriptor, d.Mass)
	}
	if !nonNegativeFinite(d.Friction) {
		return fmt.Errorf("%w: friction %v", ErrInvalidDescriptor, d.Friction)
	}
	if !nonNegativeFinite(d.Restitution) {
		return fmt.Errorf("%w: restitution %v", ErrInvalidDescriptor, d.Restitution)
	}
	if !finite(d.Position[0]) || !finite(d.Position[1]) || !finite(d.Angle) {
		return fmt.Errorf("%w: pose %v/%v", ErrInvalidDescriptor, d.Position, d.Angle)
	}
	return nil
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func positiveFinite(v float32) bool {
	return finite(v) && v > 0
}

func nonNegativeFinite(v float32) bool {
	return finite(v) && v >= 0
}
