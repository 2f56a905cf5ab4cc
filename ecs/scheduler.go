package ecs

import "fmt"

// System updates a world once per frame. A returned error aborts the rest of
// the frame.
type System interface {
	Update(w *World) error
}

// Scheduler runs systems in registration order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs every system once, then clears the world's event queue. The
// first system error stops the frame and is returned wrapped with the
// system's position.
func (s *Scheduler) Update(w *World) error {
	defer w.Events().flush()
	for i, system := range s.systems {
		if err := system.Update(w); err != nil {
			return fmt.Errorf("ecs: system %d (%T): %w", i, system, err)
		}
	}
	return nil
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
