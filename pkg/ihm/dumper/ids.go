package dumper

import "github.com/matzehuels/ihmgraph/pkg/cif"

// ids numbers the objects of one kind in the order they are first added,
// starting at 1. When same is set, an object that is the same as one
// already numbered shares its id and is not listed again.
type ids[T comparable] struct {
	byObj map[T]int
	order []T
	same  func(a, b T) bool
}

func newIDs[T comparable](same func(a, b T) bool) *ids[T] {
	return &ids[T]{byObj: make(map[T]int), same: same}
}

// add numbers obj unless it already has an id. The zero T is ignored.
func (m *ids[T]) add(obj T) {
	var zero T
	if obj == zero {
		return
	}
	if _, ok := m.byObj[obj]; ok {
		return
	}
	if m.same != nil {
		for i, o := range m.order {
			if m.same(o, obj) {
				m.byObj[obj] = i + 1
				return
			}
		}
	}
	m.order = append(m.order, obj)
	m.byObj[obj] = len(m.order)
}

// id returns the number of obj, or 0 when it has none.
func (m *ids[T]) id(obj T) int { return m.byObj[obj] }

// ref returns the id of obj as a value, absent when obj has no id.
func (m *ids[T]) ref(obj T) cif.Value {
	if n := m.byObj[obj]; n > 0 {
		return cif.Int(n)
	}
	return cif.Value{}
}

// list returns the numbered objects; the object with id n is at n-1.
func (m *ids[T]) list() []T { return m.order }

// asymName returns the n-th (1-based) asymmetric unit identifier: A..Z,
// then AA, BA, ... ZA, AB, and so on.
func asymName(n int) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	var b []byte
	for n--; ; n = n/26 - 1 {
		b = append(b, letters[n%26])
		if n < 26 {
			break
		}
	}
	return string(b)
}
