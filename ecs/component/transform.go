package component

import "github.com/go-gl/mathgl/mgl32"

// LocalTransform is an entity's pose relative to its parent. Propagation to
// world space is done outside this package.
type LocalTransform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

// NewLocalTransform returns a transform at (x, y, 0) with identity rotation.
func NewLocalTransform(x, y float32) *LocalTransform {
	return &LocalTransform{
		Translation: mgl32.Vec3{x, y, 0},
		Rotation:    mgl32.QuatIdent(),
	}
}

var LocalTransformComponent = NewComponent[LocalTransform]()
