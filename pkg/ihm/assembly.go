package ihm

import (
	"slices"

	"github.com/matzehuels/ihmgraph/pkg/cif"
)

// AssemblyElement is a part of the system that can be placed in an
// [Assembly]: *Entity, *AsymUnit, [EntityRange] or [AsymUnitRange].
//
// All implementations are comparable, so elements can be compared with ==.
type AssemblyElement interface {
	ID() string
	SeqRange() (begin, end int)
}

// Assembly is an ordered set of parts of the system that were modeled or
// probed together. Assemblies may nest through Parent.
//
// Writers deduplicate assemblies with Equal, so two assemblies listing the
// same elements share one identifier on output.
type Assembly struct {
	Ident
	Elements    []AssemblyElement
	Name        cif.Value
	Description cif.Value
	Parent      *Assembly
}

// NewAssembly returns an assembly of the given elements.
func NewAssembly(elements ...AssemblyElement) *Assembly {
	return &Assembly{Elements: elements}
}

// Equal reports whether a and o hold the same elements in the same order.
func (a *Assembly) Equal(o *Assembly) bool {
	if a == o {
		return true
	}
	if a == nil || o == nil {
		return false
	}
	return slices.Equal(a.Elements, o.Elements)
}

// Contains reports whether e is one of the elements.
func (a *Assembly) Contains(e AssemblyElement) bool {
	return slices.Contains(a.Elements, e)
}

// Add appends e unless it is already present.
func (a *Assembly) Add(e AssemblyElement) {
	if !a.Contains(e) {
		a.Elements = append(a.Elements, e)
	}
}
