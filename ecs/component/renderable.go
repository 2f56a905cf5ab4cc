package component

import (
	"image/color"

	"github.com/milk9111/rigidsync/physics"
)

// Renderable describes how to draw an entity's transform as a flat shape in
// world units.
type Renderable struct {
	Shape physics.Shape
	Color color.RGBA
}

var RenderableComponent = NewComponent[Renderable]()
