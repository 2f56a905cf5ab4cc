package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigidsync/ecs/component"
)

var scriptInputVars = []string{"left", "right", "up", "down", "rotate_left", "rotate_right"}

// ScriptedImpulseMapper runs a tengo script per input frame. The script sees
// the booleans left, right, up, down, rotate_left and rotate_right, and may
// assign linear (a two element array) and angular (a number).
type ScriptedImpulseMapper struct {
	compiled *tengo.Compiled
}

func NewScriptedImpulseMapper(src []byte) (*ScriptedImpulseMapper, error) {
	script := tengo.NewScript(src)
	for _, name := range scriptInputVars {
		_ = script.Add(name, false)
	}
	_ = script.Add("linear", nil)
	_ = script.Add("angular", nil)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("impulse script: compile: %w", err)
	}
	return &ScriptedImpulseMapper{compiled: compiled}, nil
}

func (m *ScriptedImpulseMapper) Map(in component.Input) (component.ImpulseRequest, error) {
	var req component.ImpulseRequest
	values := map[string]bool{
		"left":         in.Left,
		"right":        in.Right,
		"up":           in.Up,
		"down":         in.Down,
		"rotate_left":  in.RotateLeft,
		"rotate_right": in.RotateRight,
	}
	for name, v := range values {
		if err := m.compiled.Set(name, v); err != nil {
			return req, err
		}
	}
	if err := m.compiled.Set("linear", nil); err != nil {
		return req, err
	}
	if err := m.compiled.Set("angular", nil); err != nil {
		return req, err
	}
	if err := m.compiled.Run(); err != nil {
		return req, fmt.Errorf("impulse script: run: %w", err)
	}

	if v := m.compiled.Get("angular"); !v.IsUndefined() {
		switch v.ValueType() {
		case "int", "float":
			req.SetAngular(float32(v.Float()))
		default:
			return component.ImpulseRequest{}, fmt.Errorf("impulse script: angular must be a number, got %s", v.ValueType())
		}
	}
	if v := m.compiled.Get("linear"); !v.IsUndefined() {
		linear, err := scriptVec2(v.Array())
		if err != nil {
			return component.ImpulseRequest{}, err
		}
		req.SetLinear(linear)
	}
	return req, nil
}

func scriptVec2(items []any) (mgl32.Vec2, error) {
	if len(items) != 2 {
		return mgl32.Vec2{}, fmt.Errorf("impulse script: linear must have 2 elements, got %d", len(items))
	}
	var out mgl32.Vec2
	for i, item := range items {
		switch n := item.(type) {
		case int64:
			out[i] = float32(n)
		case float64:
			out[i] = float32(n)
		default:
			return mgl32.Vec2{}, fmt.Errorf("impulse script: linear[%d] is %T", i, item)
		}
	}
	return out, nil
}
