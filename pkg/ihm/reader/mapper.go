package reader

import (
	"github.com/matzehuels/ihmgraph/pkg/cif"
)

// Identified is anything that can be stamped with the row identifier it was
// read with.
type Identified interface {
	SetID(string)
}

// IDMapper maps file-scoped identifiers of one category to objects. The
// first Resolve of an id creates the object; later calls return the same
// object, so references that appear before a definition end up pointing at
// the object the definition fills in.
type IDMapper[T Identified] struct {
	objs  map[string]T
	order []T
	add   func(T)
}

// NewIDMapper returns a mapper that passes every newly created object to
// add, which typically appends it to a list on the system. add may be nil.
func NewIDMapper[T Identified](add func(T)) *IDMapper[T] {
	return &IDMapper[T]{objs: make(map[string]T), add: add}
}

// Resolve returns the object for id, creating it with ctor when id has not
// been seen. ctor is ignored for known ids.
func (m *IDMapper[T]) Resolve(id string, ctor func() T) T {
	if obj, ok := m.objs[id]; ok {
		return obj
	}
	obj := ctor()
	obj.SetID(id)
	m.objs[id] = obj
	m.order = append(m.order, obj)
	if m.add != nil {
		m.add(obj)
	}
	return obj
}

// Lookup returns the object for id without creating one.
func (m *IDMapper[T]) Lookup(id string) (T, bool) {
	obj, ok := m.objs[id]
	return obj, ok
}

// Values returns all objects in creation order.
func (m *IDMapper[T]) Values() []T { return m.order }

// Len returns the number of objects.
func (m *IDMapper[T]) Len() int { return len(m.order) }

// Ref resolves the reference held in v. Absent and unknown references
// resolve to the zero T (nil for pointer types).
func Ref[T Identified](m *IDMapper[T], v cif.Value, ctor func() T) T {
	if !v.IsPresent() {
		var zero T
		return zero
	}
	return m.Resolve(v.Text(), ctor)
}

// newOf returns a constructor for a zero *T.
func newOf[T any]() func() *T {
	return func() *T { return new(T) }
}
