package bodysync

import (
	"github.com/milk9111/rigidsync/ecs"
	"go.uber.org/zap"
)

// EventLogSystem logs body lifecycle events queued during the frame. Run it
// after the systems that emit them.
type EventLogSystem struct {
	logger *zap.Logger
}

func NewEventLogSystem(logger *zap.Logger) *EventLogSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventLogSystem{logger: logger}
}

func (s *EventLogSystem) Update(w *ecs.World) error {
	for _, evt := range w.Events().Peek() {
		body, ok := evt.Data.(ecs.BodyEvent)
		if !ok {
			continue
		}
		s.logger.Debug("body event",
			zap.String("kind", string(body.Kind)),
			zap.Stringer("entity", body.Entity),
			zap.Uint64("handle", body.Handle),
		)
	}
	return nil
}
