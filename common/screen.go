package common

import "github.com/go-gl/mathgl/mgl32"

const (
	BaseWidth  = 640
	BaseHeight = 480

	DefaultPixelsPerUnit = 120
)

// View maps world units onto the screen with Center at the middle of a
// Width x Height image. World +y points down the screen.
type View struct {
	Center        mgl32.Vec2
	PixelsPerUnit float32
	Width         int
	Height        int
}

func DefaultView() View {
	return View{
		Center:        mgl32.Vec2{0, 0.5},
		PixelsPerUnit: DefaultPixelsPerUnit,
		Width:         BaseWidth,
		Height:        BaseHeight,
	}
}

func (v View) ToScreen(p mgl32.Vec2) (float32, float32) {
	x := (p.X()-v.Center.X())*v.PixelsPerUnit + float32(v.Width)/2
	y := (p.Y()-v.Center.Y())*v.PixelsPerUnit + float32(v.Height)/2
	return x, y
}

// Scale converts a world length to pixels.
func (v View) Scale(length float32) float32 {
	return length * v.PixelsPerUnit
}
