package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dynamicBox() BodyDescriptor {
	return BodyDescriptor{
		Kind:        Dynamic,
		Shape:       Box(0.5, 0.5),
		Mass:        0.5,
		Friction:    0.5,
		Restitution: 0.2,
	}
}

func TestBodyDescriptorValidate(t *testing.T) {
	nan := float32(math.NaN())

	tests := []struct {
		name    string
		mutate  func(d *BodyDescriptor)
		wantErr bool
	}{
		{"valid_dynamic", func(d *BodyDescriptor) {}, false},
		{"valid_static_without_mass", func(d *BodyDescriptor) { d.Kind = Static; d.Mass = 0 }, false},
		{"valid_circle", func(d *BodyDescriptor) { d.Shape = Circle(0.3) }, false},
		{"dynamic_zero_mass", func(d *BodyDescriptor) { d.Mass = 0 }, true},
		{"negative_extent", func(d *BodyDescriptor) { d.Shape = Box(-1, 1) }, true},
		{"zero_radius", func(d *BodyDescriptor) { d.Shape = Circle(0) }, true},
		{"negative_friction", func(d *BodyDescriptor) { d.Friction = -0.1 }, true},
		{"nan_restitution", func(d *BodyDescriptor) { d.Restitution = nan }, true},
		{"nan_position", func(d *BodyDescriptor) { d.Position = mgl32.Vec2{nan, 0} }, true},
		{"unknown_kind", func(d *BodyDescriptor) { d.Kind = BodyKind(9) }, true},
		{"unknown_shape", func(d *BodyDescriptor) { d.Shape.Kind = ShapeKind(9) }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := dynamicBox()
			tc.mutate(&d)
			err := d.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDescriptor)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBodyDescriptorWithOffset(t *testing.T) {
	d := dynamicBox()
	d.Position = mgl32.Vec2{1, 2}

	moved := d.WithOffset(mgl32.Vec2{0.5, -1})

	assert.Equal(t, mgl32.Vec2{1.5, 1}, moved.Position)
	assert.Equal(t, mgl32.Vec2{1, 2}, d.Position, "original must not change")
	assert.Equal(t, d.Shape, moved.Shape)
}

func TestParseBodyKind(t *testing.T) {
	for _, kind := range []BodyKind{Dynamic, Static, Kinematic} {
		got, err := ParseBodyKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}

	got, err := ParseBodyKind("")
	require.NoError(t, err)
	assert.Equal(t, Dynamic, got)

	_, err = ParseBodyKind("floaty")
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
}
