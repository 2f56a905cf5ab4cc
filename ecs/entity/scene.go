package entity

import (
	"fmt"

	"github.com/milk9111/rigidsync/ecs"
	"github.com/milk9111/rigidsync/prefabs"
)

// SpawnScene builds every entity in the scene and places it at its scene
// position. Entities already built are destroyed if a later one fails.
func SpawnScene(w *ecs.World, specs SpecSource, scene prefabs.SceneSpec) ([]ecs.Entity, error) {
	spawned := make([]ecs.Entity, 0, len(scene.Entities))
	for i, ent := range scene.Entities {
		e, err := BuildEntity(w, specs, ent.Prefab)
		if err == nil {
			err = SetEntityPosition(w, e, ent.Position.Vec2())
		}
		if err != nil {
			for _, prev := range spawned {
				ecs.DestroyEntity(w, prev)
			}
			if e.Valid() {
				ecs.DestroyEntity(w, e)
			}
			return nil, fmt.Errorf("spawn scene %q: entity %d (%s): %w", scene.Name, i, ent.Name, err)
		}
		spawned = append(spawned, e)
	}
	return spawned, nil
}
