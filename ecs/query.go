package ecs

// intersectEntities returns entities present in every set, iterating the
// smallest one. The result is a fresh slice so callers may mutate the world
// while walking it.
func intersectEntities(sets ...*SparseSet) []Entity {
	if len(sets) == 0 {
		return nil
	}
	smallest := 0
	for i, s := range sets {
		if s == nil {
			return nil
		}
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}
	out := make([]Entity, 0, sets[smallest].Len())
outer:
	for _, e := range sets[smallest].Entities() {
		for i, s := range sets {
			if i == smallest {
				continue
			}
			if !s.Has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}
