package vulkan

// table hands out stable non-zero ids for binding handles.
type table[T comparable] struct {
	next    uint64
	objects map[uint64]T
}

func newTable[T comparable]() *table[T] {
	return &table[T]{
		next:    1,
		objects: make(map[uint64]T),
	}
}

func (t *table[T]) put(obj T) uint64 {
	id := t.next
	t.next++
	t.objects[id] = obj
	return id
}

// putUnique returns the existing id if obj is already present,
// enumeration returns the same physical devices on every call.
func (t *table[T]) putUnique(obj T) uint64 {
	for id, o := range t.objects {
		if o == obj {
			return id
		}
	}
	return t.put(obj)
}

func (t *table[T]) get(id uint64) (T, bool) {
	obj, ok := t.objects[id]
	return obj, ok
}

func (t *table[T]) remove(id uint64) (T, bool) {
	obj, ok := t.objects[id]
	if ok {
		delete(t.objects, id)
	}
	return obj, ok
}

func (t *table[T]) len() int {
	return len(t.objects)
}
