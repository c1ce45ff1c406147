package ihm

import (
	"errors"
	"fmt"
)

// ErrGraphCycle is matched by every [*GraphCycleError].
var ErrGraphCycle = errors.New("cycle in object graph")

// RangeError reports a residue interval that does not fit its parent.
type RangeError struct {
	Kind       string // "entity" or "asym"
	ID         string
	Begin, End int
	Length     int
}

func (e *RangeError) Error() string {
	if e.Begin > e.End {
		return fmt.Sprintf("%s %q: range %d-%d is reversed", e.Kind, e.ID, e.Begin, e.End)
	}
	return fmt.Sprintf("%s %q: range %d-%d outside 1-%d", e.Kind, e.ID, e.Begin, e.End, e.Length)
}

// GraphCycleError reports an object that is reachable from itself through a
// relation that must be acyclic, such as dataset parents.
type GraphCycleError struct {
	Kind string
	ID   string
}

func (e *GraphCycleError) Error() string {
	return fmt.Sprintf("%s %q is its own ancestor", e.Kind, e.ID)
}

func (e *GraphCycleError) Is(target error) bool { return target == ErrGraphCycle }

func checkRange(kind, id string, begin, end, length int) error {
	if begin > end || begin < 1 || end > length {
		return &RangeError{Kind: kind, ID: id, Begin: begin, End: end, Length: length}
	}
	return nil
}
