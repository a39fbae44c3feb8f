package document

// collection provides the id-based primitives shared by both entity
// repositories. The id accessor is supplied once per entity type so the
// helpers stay free of per-entity knowledge.
type collection[T any] struct {
	id func(T) int
}

// nextID allocates the next id for the collection. The high-water mark
// is the largest id ever issued; taking the max with the live records
// keeps allocation monotonic even when loading a document written
// before the mark existed. Deleted ids are never reused.
func (c collection[T]) nextID(items []T, highWater int) int {
	next := highWater
	for _, item := range items {
		if id := c.id(item); id > next {
			next = id
		}
	}
	return next + 1
}

func (c collection[T]) indexByID(items []T, id int) int {
	for i, item := range items {
		if c.id(item) == id {
			return i
		}
	}
	return -1
}

func (c collection[T]) findByID(items []T, id int) (T, bool) {
	if i := c.indexByID(items, id); i >= 0 {
		return items[i], true
	}
	var zero T
	return zero, false
}

// removeByID removes the record with the given id, preserving storage
// order. The second result reports whether anything was removed.
func (c collection[T]) removeByID(items []T, id int) ([]T, bool) {
	i := c.indexByID(items, id)
	if i < 0 {
		return items, false
	}
	return append(items[:i], items[i+1:]...), true
}
