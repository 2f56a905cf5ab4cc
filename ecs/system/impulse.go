package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/ecs/component"
	"go.uber.org/zap"
)

const (
	DefaultLinearImpulse  = 0.5
	DefaultAngularImpulse = 0.05
)

// ImpulseMapper turns one frame of input into an impulse. An empty request
// means nothing fires.
type ImpulseMapper interface {
	Map(in component.Input) (component.ImpulseRequest, error)
}

// KeyImpulseMapper pushes along the first pressed arrow, checked up, down,
// left then right. Rotation keys add an angular impulse independently.
type KeyImpulseMapper struct {
	Linear  float32
	Angular float32
}

func NewKeyImpulseMapper() KeyImpulseMapper {
	return KeyImpulseMapper{Linear: DefaultLinearImpulse, Angular: DefaultAngularImpulse}
}

func (m KeyImpulseMapper) Map(in component.Input) (component.ImpulseRequest, error) {
	var req component.ImpulseRequest
	switch {
	case in.Up:
		req.SetLinear(mgl32.Vec2{0, -m.Linear})
	case in.Down:
		req.SetLinear(mgl32.Vec2{0, m.Linear})
	case in.Left:
		req.SetLinear(mgl32.Vec2{-m.Linear, 0})
	case in.Right:
		req.SetLinear(mgl32.Vec2{m.Linear, 0})
	}
	switch {
	case in.RotateLeft && !in.RotateRight:
		req.SetAngular(-m.Angular)
	case in.RotateRight && !in.RotateLeft:
		req.SetAngular(m.Angular)
	}
	return req, nil
}

// ImpulseSystem reads the frame's input and writes the mapped impulse into
// every ImpulseRequest in the world.
type ImpulseSystem struct {
	mapper ImpulseMapper
	logger *zap.Logger
}

func NewImpulseSystem(mapper ImpulseMapper, logger *zap.Logger) *ImpulseSystem {
	if mapper == nil {
		mapper = NewKeyImpulseMapper()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImpulseSystem{mapper: mapper, logger: logger}
}

// SetMapper swaps the mapper, e.g. after a script reload.
func (s *ImpulseSystem) SetMapper(mapper ImpulseMapper) {
	if mapper != nil {
		s.mapper = mapper
	}
}

func (s *ImpulseSystem) Update(w *ecs.World) error {
	inputEnt, ok := ecs.First(w, component.InputComponent.Kind())
	if !ok {
		return nil
	}
	in, ok := ecs.Get(w, inputEnt, component.InputComponent.Kind())
	if !ok || !in.Any() {
		return nil
	}

	req, err := s.mapper.Map(*in)
	if err != nil {
		s.logger.Warn("impulse: mapping failed", zap.Error(err))
		return nil
	}
	if req.Empty() {
		return nil
	}

	ecs.ForEach(w, component.ImpulseRequestComponent.Kind(), func(e ecs.Entity, dst *component.ImpulseRequest) {
		if req.Angular != nil {
			dst.SetAngular(*req.Angular)
		}
		if req.Linear != nil {
			dst.SetLinear(*req.Linear)
		}
	})
	return nil
}
