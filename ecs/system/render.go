package system

import (
	"image/color"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/rigidsync/common"
	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/ecs/component"
	"github.com/milk9111/rigidsync/physics"
	"golang.org/x/image/colornames"
)

const (
	renderCircleSegments = 24
	renderStrokeWidth    = 2
)

type RenderSystem struct {
	view common.View
}

func NewRenderSystem(view common.View) *RenderSystem {
	return &RenderSystem{view: view}
}

// Draw outlines every entity that has a LocalTransform and a Renderable,
// posed by the transform's translation and rotation.
func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	type item struct {
		e         ecs.Entity
		transform component.LocalTransform
		render    component.Renderable
	}
	var items []item
	ecs.ForEach2(w, component.LocalTransformComponent.Kind(), component.RenderableComponent.Kind(), func(e ecs.Entity, t *component.LocalTransform, rd *component.Renderable) {
		items = append(items, item{e: e, transform: *t, render: *rd})
	})
	slices.SortStableFunc(items, func(a, b item) int {
		switch {
		case a.e < b.e:
			return -1
		case a.e > b.e:
			return 1
		}
		return 0
	})

	for _, it := range items {
		clr := it.render.Color
		if clr == (color.RGBA{}) {
			clr = colornames.Lightgrey
		}
		points := shapeOutline(it.transform, it.render.Shape)
		r.strokePolygon(screen, points, clr)
		if it.render.Shape.Kind == physics.ShapeCircle && len(points) > 0 {
			center := it.transform.Translation.Vec2()
			r.strokeLine(screen, center, points[0], clr)
		}
	}
}

func (r *RenderSystem) strokePolygon(screen *ebiten.Image, points []mgl32.Vec2, clr color.Color) {
	for i := range points {
		r.strokeLine(screen, points[i], points[(i+1)%len(points)], clr)
	}
}

func (r *RenderSystem) strokeLine(screen *ebiten.Image, a, b mgl32.Vec2, clr color.Color) {
	x1, y1 := r.view.ToScreen(a)
	x2, y2 := r.view.ToScreen(b)
	vector.StrokeLine(screen, x1, y1, x2, y2, renderStrokeWidth, clr, true)
}

// shapeOutline returns the shape's outline in world space. The first point of
// a circle lies along the body's local +x axis.
func shapeOutline(t component.LocalTransform, shape physics.Shape) []mgl32.Vec2 {
	var local []mgl32.Vec2
	switch shape.Kind {
	case physics.ShapeBox:
		hx, hy := shape.HalfExtents.X(), shape.HalfExtents.Y()
		local = []mgl32.Vec2{{hx, -hy}, {hx, hy}, {-hx, hy}, {-hx, -hy}}
	case physics.ShapeCircle:
		local = make([]mgl32.Vec2, 0, renderCircleSegments)
		for i := 0; i < renderCircleSegments; i++ {
			a := 2 * math.Pi * float64(i) / renderCircleSegments
			local = append(local, mgl32.Vec2{
				shape.Radius * float32(math.Cos(a)),
				shape.Radius * float32(math.Sin(a)),
			})
		}
	default:
		return nil
	}

	rot := t.Rotation
	if rot.Len() == 0 {
		rot = mgl32.QuatIdent()
	}
	out := make([]mgl32.Vec2, len(local))
	for i, p := range local {
		world := rot.Rotate(p.Vec3(0)).Add(t.Translation)
		out[i] = world.Vec2()
	}
	return out
}
