package ihm

import (
	"strings"

	"github.com/matzehuels/ihmgraph/pkg/cif"
	"github.com/matzehuels/ihmgraph/pkg/ihm/reference"
)

// Entity is a chain with a unique sequence. Many asymmetric units may be
// instances of one entity.
//
// Two entities are Equal when their sequences are; Equal does not look at
// the descriptive fields.
type Entity struct {
	Ident
	Sequence    []*ChemComp
	Description cif.Value
	Details     cif.Value

	Type              cif.Value
	SrcMethod         cif.Value
	NumberOfMolecules cif.Value
	FormulaWeight     cif.Value

	// References point at the sequence in external databases.
	References []*reference.TargetReference
}

// NewEntity returns a polymer entity with the given sequence. The formula
// weight starts out unknown.
func NewEntity(seq []*ChemComp) *Entity {
	return &Entity{
		Sequence:          seq,
		Type:              cif.Str("polymer"),
		SrcMethod:         cif.Str("man"),
		NumberOfMolecules: cif.Int(1),
		FormulaWeight:     cif.Unknown,
	}
}

// SeqRange returns the 1-based bounds of the whole sequence.
func (e *Entity) SeqRange() (begin, end int) { return 1, len(e.Sequence) }

// Equal reports whether e and o have the same sequence.
func (e *Entity) Equal(o *Entity) bool { return sameSequence(e.Sequence, o.Sequence) }

// SequenceKey returns the sequence as a comparable string of component IDs.
func (e *Entity) SequenceKey() string {
	ids := make([]string, len(e.Sequence))
	for i, c := range e.Sequence {
		if c == nil {
			ids[i] = "?"
			continue
		}
		ids[i] = c.ID
	}
	return strings.Join(ids, " ")
}

// Range returns the residues begin through end (inclusive, 1-based).
func (e *Entity) Range(begin, end int) (EntityRange, error) {
	if err := checkRange("entity", e.ID(), begin, end, len(e.Sequence)); err != nil {
		return EntityRange{}, err
	}
	return EntityRange{Entity: e, Begin: begin, End: end}, nil
}

// Residue returns the residue at seqID.
func (e *Entity) Residue(seqID int) (Residue, error) {
	if err := checkRange("entity", e.ID(), seqID, seqID, len(e.Sequence)); err != nil {
		return Residue{}, err
	}
	return Residue{Entity: e, SeqID: seqID}, nil
}

// AsymUnit is one modeled instance of an entity.
type AsymUnit struct {
	Ident
	Entity  *Entity
	Details cif.Value
}

// NewAsymUnit returns an asymmetric unit of entity.
func NewAsymUnit(entity *Entity) *AsymUnit { return &AsymUnit{Entity: entity} }

// SeqRange returns the bounds of the entity's sequence.
func (a *AsymUnit) SeqRange() (begin, end int) { return 1, a.length() }

func (a *AsymUnit) length() int {
	if a.Entity == nil {
		return 0
	}
	return len(a.Entity.Sequence)
}

// Range returns the residues begin through end of the unit.
func (a *AsymUnit) Range(begin, end int) (AsymUnitRange, error) {
	if err := checkRange("asym", a.ID(), begin, end, a.length()); err != nil {
		return AsymUnitRange{}, err
	}
	return AsymUnitRange{Asym: a, Begin: begin, End: end}, nil
}

// Residue returns the residue at seqID.
func (a *AsymUnit) Residue(seqID int) (Residue, error) {
	if err := checkRange("asym", a.ID(), seqID, seqID, a.length()); err != nil {
		return Residue{}, err
	}
	return Residue{Asym: a, SeqID: seqID}, nil
}

// EntityRange is a contiguous part of an entity. It has no identity of its
// own: ID returns the entity's ID and two ranges are == when they cover the
// same interval of the same *Entity.
type EntityRange struct {
	Entity     *Entity
	Begin, End int
}

// ID returns the ID of the entity.
func (r EntityRange) ID() string { return r.Entity.ID() }

// SeqRange returns the interval.
func (r EntityRange) SeqRange() (begin, end int) { return r.Begin, r.End }

// AsymUnitRange is a contiguous part of an asymmetric unit, with the same
// identity rules as [EntityRange].
type AsymUnitRange struct {
	Asym       *AsymUnit
	Begin, End int
}

// ID returns the ID of the asymmetric unit.
func (r AsymUnitRange) ID() string { return r.Asym.ID() }

// SeqRange returns the interval.
func (r AsymUnitRange) SeqRange() (begin, end int) { return r.Begin, r.End }

// Residue is a single position in either an entity or an asymmetric unit.
// Exactly one of Entity and Asym is set.
type Residue struct {
	Entity *Entity
	Asym   *AsymUnit
	SeqID  int
}

// ID returns the ID of the parent.
func (r Residue) ID() string {
	if r.Asym != nil {
		return r.Asym.ID()
	}
	return r.Entity.ID()
}

// EntityOf returns the entity an assembly element or residue belongs to, or
// nil for values that carry no entity.
func EntityOf(v any) *Entity {
	switch x := v.(type) {
	case *Entity:
		return x
	case EntityRange:
		return x.Entity
	case *AsymUnit:
		return x.Entity
	case AsymUnitRange:
		return x.Asym.Entity
	case Residue:
		if x.Asym != nil {
			return x.Asym.Entity
		}
		return x.Entity
	}
	return nil
}

// AsymOf returns the asymmetric unit of v, or nil when v refers to an entity.
func AsymOf(v any) *AsymUnit {
	switch x := v.(type) {
	case *AsymUnit:
		return x
	case AsymUnitRange:
		return x.Asym
	case Residue:
		return x.Asym
	}
	return nil
}
