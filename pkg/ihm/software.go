package ihm

import "github.com/matzehuels/ihmgraph/pkg/cif"

// Software used as part of the modeling.
//
// Two Software values describe the same program when their Key matches,
// whatever their description says. Collectors on [System] still compare by
// identity; writers merge by Key.
type Software struct {
	Ident
	Name           cif.Value
	Classification cif.Value
	Description    cif.Value
	Location       cif.Value
	Type           cif.Value
	Version        cif.Value
}

// SoftwareKey identifies a program independently of the object holding it.
type SoftwareKey struct {
	Name, Version cif.Value
}

// NewSoftware returns a program entry.
func NewSoftware(name, classification, description, location, version string) *Software {
	return &Software{
		Name:           cif.Str(name),
		Classification: cif.OptStr(classification),
		Description:    cif.OptStr(description),
		Location:       cif.OptStr(location),
		Type:           cif.Str("program"),
		Version:        cif.OptStr(version),
	}
}

// Key returns the value-equality key.
func (s *Software) Key() SoftwareKey { return SoftwareKey{Name: s.Name, Version: s.Version} }

// Equal reports whether s and o have the same name and version.
func (s *Software) Equal(o *Software) bool { return s.Key() == o.Key() }

// Citation is a publication describing the modeling. Citations are compared
// by identity.
type Citation struct {
	Ident
	PMID      cif.Value
	Title     cif.Value
	Journal   cif.Value
	Volume    cif.Value
	PageFirst cif.Value
	PageLast  cif.Value
	Year      cif.Value
	DOI       cif.Value
	// Authors in order, last name followed by initials ("Smith AJ").
	Authors []string
}
