package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/ecs/component"
)

// KeySource reports keys that went down this tick.
type KeySource interface {
	IsKeyJustPressed(key ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

type InputSystem struct {
	keys KeySource
}

// NewInputSystem polls ebiten's keyboard. Pass a KeySource to replace it.
func NewInputSystem(keys ...KeySource) *InputSystem {
	s := &InputSystem{keys: ebitenKeys{}}
	if len(keys) > 0 && keys[0] != nil {
		s.keys = keys[0]
	}
	return s
}

func (i *InputSystem) Update(w *ecs.World) error {
	if w == nil {
		return nil
	}

	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if i.keys.IsKeyJustPressed(k) {
				return true
			}
		}
		return false
	}

	state := component.Input{
		Left:        pressed(ebiten.KeyArrowLeft),
		Right:       pressed(ebiten.KeyArrowRight),
		Up:          pressed(ebiten.KeyArrowUp),
		Down:        pressed(ebiten.KeyArrowDown),
		RotateLeft:  pressed(ebiten.KeyQ),
		RotateRight: pressed(ebiten.KeyE),
		Quit:        pressed(ebiten.KeyEscape),
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = state
	})
	return nil
}
