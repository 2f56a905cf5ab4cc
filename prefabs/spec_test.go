package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigidsync/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// useDir points disk overrides at dir for the duration of the test.
func useDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
}

func TestEmbeddedWorldSpec(t *testing.T) {
	useDir(t, t.TempDir())

	spec, err := LoadWorldSpec("world.yaml")
	require.NoError(t, err)

	cfg := spec.PhysicsConfig()
	assert.Equal(t, mgl32.Vec2{0, 9.81}, cfg.Gravity)
	assert.Equal(t, uint(20), cfg.Iterations)
	assert.Equal(t, 0.5, cfg.SleepTimeThreshold)
	assert.Equal(t, float32(120), spec.PixelsPerUnit)
	assert.Equal(t, float32(0.5), spec.LinearImpulse)
}

func TestPhysicsConfigDefaults(t *testing.T) {
	cfg := WorldSpec{}.PhysicsConfig()
	assert.Equal(t, physics.DefaultConfig(), cfg)

	zero := 0.0
	cfg = WorldSpec{
		Gravity:            &Vec2Spec{X: 1, Y: 0},
		Iterations:         5,
		SleepTimeThreshold: &zero,
	}.PhysicsConfig()
	assert.Equal(t, mgl32.Vec2{1, 0}, cfg.Gravity)
	assert.Equal(t, uint(5), cfg.Iterations)
	assert.Zero(t, cfg.SleepTimeThreshold)
}

func TestEmbeddedSceneSpec(t *testing.T) {
	useDir(t, t.TempDir())

	scene, err := LoadSceneSpec("prefabs/scene.yaml")
	require.NoError(t, err)
	require.Len(t, scene.Entities, 3)
	assert.Equal(t, "dynamic_box.yaml", scene.Entities[0].Prefab)
	assert.Equal(t, mgl32.Vec2{0.8, 1.2}, scene.Entities[1].Position.Vec2())
	assert.Equal(t, mgl32.Vec2{0, 1.5}, scene.Entities[2].Position.Vec2())
}

func TestSceneSpecRequiresPrefab(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("entities:\n  - name: nothing\n"), 0o644))

	_, err := LoadSceneSpec("broken.yaml")
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "world.yaml"), []byte("iterations: 3\n"), 0o644))

	spec, err := LoadWorldSpec("world.yaml")
	require.NoError(t, err)
	assert.Equal(t, uint(3), spec.Iterations)
	assert.Nil(t, spec.Gravity)
}

func TestLoadSpecErrors(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("iterations: [\n"), 0o644))

	_, err := LoadWorldSpec("missing.yaml")
	assert.Error(t, err)

	_, err = LoadWorldSpec("bad.yaml")
	assert.ErrorContains(t, err, "unmarshal bad.yaml")
}

func TestEmbeddedTemplates(t *testing.T) {
	useDir(t, t.TempDir())

	tests := []struct {
		file        string
		kind        physics.BodyKind
		mass        float32
		friction    float32
		restitution float32
	}{
		{file: "dynamic_box.yaml", kind: physics.Dynamic, mass: 0.5, friction: 0.9, restitution: 0.5},
		{file: "static_box.yaml", kind: physics.Static, friction: 0.5, restitution: 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(tt.file)
			require.NoError(t, err)

			body, err := DecodeComponentSpec[PhysicsBodyComponentSpec](spec.Components["physics_body"])
			require.NoError(t, err)
			desc, err := body.Descriptor()
			require.NoError(t, err)

			assert.Equal(t, tt.kind, desc.Kind)
			assert.Equal(t, physics.ShapeBox, desc.Shape.Kind)
			assert.Equal(t, mgl32.Vec2{0.463, 0.463}, desc.Shape.HalfExtents)
			assert.Equal(t, tt.mass, desc.Mass)
			assert.Equal(t, tt.friction, desc.Friction)
			assert.Equal(t, tt.restitution, desc.Restitution)
		})
	}
}

func TestPhysicsBodyDescriptor(t *testing.T) {
	t.Run("circle with offset and angle", func(t *testing.T) {
		desc, err := PhysicsBodyComponentSpec{
			Kind: "dynamic", Shape: "circle", Radius: 0.25, Mass: 1, X: 1, Y: -1, Angle: 180,
		}.Descriptor()
		require.NoError(t, err)
		assert.Equal(t, physics.Circle(0.25), desc.Shape)
		assert.Equal(t, mgl32.Vec2{1, -1}, desc.Position)
		assert.InDelta(t, 3.14159, desc.Angle, 1e-4)
	})

	t.Run("unknown shape", func(t *testing.T) {
		_, err := PhysicsBodyComponentSpec{Kind: "dynamic", Shape: "capsule", Mass: 1}.Descriptor()
		assert.ErrorIs(t, err, ErrInvalidSpec)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := PhysicsBodyComponentSpec{Kind: "floating", HalfWidth: 1, HalfHeight: 1}.Descriptor()
		assert.Error(t, err)
	})

	t.Run("dynamic without mass", func(t *testing.T) {
		_, err := PhysicsBodyComponentSpec{Kind: "dynamic", HalfWidth: 1, HalfHeight: 1}.Descriptor()
		assert.ErrorIs(t, err, physics.ErrInvalidDescriptor)
	})
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{name: "rgb", in: `"#ff8000"`, want: color.RGBA{R: 0xff, G: 0x80, A: 0xff}},
		{name: "no hash", in: `"00ff00"`, want: color.RGBA{G: 0xff, A: 0xff}},
		{name: "transparent", in: `"#ffffff00"`, want: color.RGBA{}},
		{name: "short", in: `"#fff"`, wantErr: true},
		{name: "not hex", in: `"#gggggg"`, wantErr: true},
		{name: "not scalar", in: `[1, 2]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tt.in), &c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.ToRGBA())
		})
	}

	assert.Equal(t, color.RGBA{}, YAMLColor{}.ToRGBA())
}

func TestCache(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	path := filepath.Join(dir, "crate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: crate\n"), 0o644))

	c := NewCache()
	spec, err := c.Get("crate.yaml")
	require.NoError(t, err)
	assert.Equal(t, "crate", spec.Name)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, os.WriteFile(path, []byte("name: barrel\n"), 0o644))
	spec, err = c.Get("prefabs/crate.yaml")
	require.NoError(t, err)
	assert.Equal(t, "crate", spec.Name, "served from cache")

	assert.True(t, c.Invalidate(path))
	assert.False(t, c.Invalidate(path))
	spec, err = c.Get("crate.yaml")
	require.NoError(t, err)
	assert.Equal(t, "barrel", spec.Name)

	_, err = c.Get("nope.yaml")
	assert.Error(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestLoadScript(t *testing.T) {
	useDir(t, t.TempDir())

	for _, name := range []string{"impulse.tengo", "scripts/impulse.tengo", "prefabs/scripts/impulse.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "linear")
	}
}
