package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("physics: invalid world config")

// DefaultGravity points down the screen (+y), in world units per second².
var DefaultGravity = mgl32.Vec2{0, 9.81}

// Config is applied once when the Space is built.
type Config struct {
	Gravity    mgl32.Vec2
	Iterations uint
	// SleepTimeThreshold is how long, in seconds, a body must stay idle
	// before it becomes Inactive. Zero disables sleeping.
	SleepTimeThreshold float64
}

func DefaultConfig() Config {
	return Config{
		Gravity:            DefaultGravity,
		Iterations:         20,
		SleepTimeThreshold: 0.5,
	}
}

func (c Config) validate() error {
	if !finite(c.Gravity[0]) || !finite(c.Gravity[1]) {
		return fmt.Errorf("%w: gravity %v", ErrInvalidConfig, c.Gravity)
	}
	if c.Iterations == 0 {
		return fmt.Errorf("%w: iterations must be positive", ErrInvalidConfig)
	}
	if c.SleepTimeThreshold < 0 || math.IsNaN(c.SleepTimeThreshold) {
		return fmt.Errorf("%w: sleep time threshold %v", ErrInvalidConfig, c.SleepTimeThreshold)
	}
	return nil
}

// Space is a World backed by a Chipmunk space.
type Space struct {
	space   *cp.Space
	gravity mgl32.Vec2
	bodies  *intmap.Map[BodyHandle, *spaceBody]
	last    BodyHandle
	logger  *zap.Logger
}

type spaceBody struct {
	body  *cp.Body
	shape *cp.Shape
	kind  BodyKind
}

var _ World = (*Space)(nil)

type Option func(*Space)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Space) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSpace creates an empty simulation configured by cfg.
func NewSpace(cfg Config, opts ...Option) (*Space, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	space := cp.NewSpace()
	space.Iterations = cfg.Iterations
	space.SetGravity(cp.Vector{X: float64(cfg.Gravity[0]), Y: float64(cfg.Gravity[1])})
	if cfg.SleepTimeThreshold > 0 {
		space.SleepTimeThreshold = cfg.SleepTimeThreshold
	}

	s := &Space{
		space:   space,
		gravity: cfg.Gravity,
		bodies:  intmap.New[BodyHandle, *spaceBody](64),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Chipmunk exposes the underlying space for debug drawing.
func (s *Space) Chipmunk() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

func (s *Space) Gravity() mgl32.Vec2 {
	return s.gravity
}

// Insert instantiates desc and returns its handle.
func (s *Space) Insert(desc BodyDescriptor) (BodyHandle, error) {
	if err := desc.Validate(); err != nil {
		return 0, err
	}

	var body *cp.Body
	switch desc.Kind {
	case Static:
		body = cp.NewStaticBody()
	case Kinematic:
		body = cp.NewKinematicBody()
	default:
		mass := float64(desc.Mass)
		body = cp.NewBody(mass, momentFor(desc.Shape, mass))
	}
	body.SetPosition(cp.Vector{X: float64(desc.Position[0]), Y: float64(desc.Position[1])})
	body.SetAngle(float64(desc.Angle))

	var shape *cp.Shape
	switch desc.Shape.Kind {
	case ShapeCircle:
		shape = cp.NewCircle(body, float64(desc.Shape.Radius), cp.Vector{})
	default:
		shape = cp.NewBox(body, 2*float64(desc.Shape.HalfExtents[0]), 2*float64(desc.Shape.HalfExtents[1]), 0)
	}
	shape.SetFriction(float64(desc.Friction))
	shape.SetElasticity(float64(desc.Restitution))

	s.space.AddBody(body)
	s.space.AddShape(shape)

	s.last++
	h := s.last
	s.bodies.Put(h, &spaceBody{body: body, shape: shape, kind: desc.Kind})

	s.logger.Debug("physics: body inserted",
		zap.Uint64("handle", uint64(h)),
		zap.Stringer("kind", desc.Kind),
		zap.Float32("x", desc.Position[0]),
		zap.Float32("y", desc.Position[1]),
	)
	return h, nil
}

func momentFor(shape Shape, mass float64) float64 {
	if shape.Kind == ShapeCircle {
		return cp.MomentForCircle(mass, 0, float64(shape.Radius), cp.Vector{})
	}
	return cp.MomentForBox(mass, 2*float64(shape.HalfExtents[0]), 2*float64(shape.HalfExtents[1]))
}

// Get looks a body up by handle.
func (s *Space) Get(h BodyHandle) (Body, bool) {
	sb, ok := s.bodies.Get(h)
	if !ok || sb == nil {
		return nil, false
	}
	return spaceBodyView{sb}, true
}

// Remove takes the body and its shape out of the simulation. The handle is
// not handed out again.
func (s *Space) Remove(h BodyHandle) bool {
	sb, ok := s.bodies.Get(h)
	if !ok || sb == nil {
		return false
	}
	s.space.RemoveShape(sb.shape)
	s.space.RemoveBody(sb.body)
	s.bodies.Del(h)
	s.logger.Debug("physics: body removed", zap.Uint64("handle", uint64(h)))
	return true
}

// Step advances the simulation by dt seconds. A zero delta leaves every body
// where it is.
func (s *Space) Step(dt float32) {
	if dt <= 0 {
		return
	}
	s.space.Step(float64(dt))
}

func (s *Space) Len() int {
	return s.bodies.Len()
}

type spaceBodyView struct {
	*spaceBody
}

func (v spaceBodyView) Position() mgl32.Vec2 {
	p := v.body.Position()
	return mgl32.Vec2{float32(p.X), float32(p.Y)}
}

func (v spaceBodyView) RotationSubmatrix() mgl32.Mat2 {
	return AngleSubmatrix(v.body.Angle())
}

func (v spaceBodyView) ActivationState() ActivationState {
	if v.body.IsSleeping() {
		return Inactive
	}
	return Active
}

// Activate wakes a sleeping dynamic body. Chipmunk has no partial wake, so
// any positive strength resets the body's idle timer.
func (v spaceBodyView) Activate(strength float32) {
	if v.kind != Dynamic || strength <= 0 {
		return
	}
	v.body.Activate()
}

// ApplyAngularImpulse changes angular momentum by impulse.
func (v spaceBodyView) ApplyAngularImpulse(impulse float32) {
	if v.kind != Dynamic {
		return
	}
	moment := v.body.Moment()
	if moment <= 0 || math.IsInf(moment, 0) {
		return
	}
	v.body.SetAngularVelocity(v.body.AngularVelocity() + float64(impulse)/moment)
}

// ApplyLinearImpulse applies impulse at the centre of mass.
func (v spaceBodyView) ApplyLinearImpulse(impulse mgl32.Vec2) {
	if v.kind != Dynamic {
		return
	}
	v.body.ApplyImpulseAtWorldPoint(cp.Vector{X: float64(impulse[0]), Y: float64(impulse[1])}, v.body.Position())
}
