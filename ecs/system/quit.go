package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/ecs/component"
)

// QuitSystem ends the game loop when any Input reports Quit.
type QuitSystem struct{}

func (QuitSystem) Update(w *ecs.World) error {
	quit := false
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		quit = quit || in.Quit
	})
	if quit {
		return ebiten.Termination
	}
	return nil
}
