// Package reference links target sequences back to sequence databases.
package reference

import "github.com/matzehuels/ihmgraph/pkg/cif"

// Database names written to db_name.
const (
	DBUniProt = "UNP"
	DBOther   = "Other"
)

// TargetReference points at the sequence of an entity in a sequence
// database. A zero AlignBegin/AlignEnd means the entity covers the whole
// database sequence.
type TargetReference struct {
	id string

	DBName             string
	Code               cif.Value
	Accession          cif.Value
	AlignBegin         cif.Value
	AlignEnd           cif.Value
	Isoform            cif.Value
	NCBITaxonomyID     cif.Value
	OrganismScientific cif.Value

	// Details describes a custom database when DBName is DBOther.
	Details cif.Value
}

// ID returns the row identifier the reference was read with.
func (r *TargetReference) ID() string { return r.id }

// SetID sets the row identifier.
func (r *TargetReference) SetID(id string) { r.id = id }

// UniProt returns a reference to a UniProt entry.
func UniProt(code, accession string) *TargetReference {
	return &TargetReference{DBName: DBUniProt, Code: cif.Str(code), Accession: cif.Str(accession)}
}

// Custom returns a reference to a database that has no name of its own in
// the dictionary. description ends up in the db_name_other_details field.
func Custom(description, code, accession string) *TargetReference {
	return &TargetReference{
		DBName:    DBOther,
		Code:      cif.Str(code),
		Accession: cif.Str(accession),
		Details:   cif.Str(description),
	}
}

// OtherDetails returns the description of a custom database, or the absent
// value for named databases.
func (r *TargetReference) OtherDetails() cif.Value {
	if r.DBName == DBOther {
		return r.Details
	}
	return cif.Value{}
}
