package ihm

import (
	"fmt"
	"slices"

	"github.com/matzehuels/ihmgraph/pkg/cif"
)

// Chemical component types.
const (
	CompTypeOther      = "other"
	CompTypePeptide    = "Peptide linking"
	CompTypeLPeptide   = "L-peptide linking"
	CompTypeDNA        = "DNA linking"
	CompTypeRNA        = "RNA linking"
	CompTypeNonPolymer = "non-polymer"
)

const unknownCanonicalOneCode = "X"

// ChemComp is a chemical component (a monomer such as an amino acid) from
// which entity sequences are built.
//
// ID is globally unique ("GLY", "MSE", "DG"). Code is unique within an
// entity and CodeCanonical is the standard one-letter form. For example
// selenomethionine is ID "MSE", Code "MSE", CodeCanonical "M".
type ChemComp struct {
	ID            string
	Code          string
	CodeCanonical string
	Type          string
	Name          cif.Value
	Formula       cif.Value
}

// Equal reports whether c and o have the same identifiers and type.
func (c *ChemComp) Equal(o *ChemComp) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.ID == o.ID && c.Code == o.Code && c.CodeCanonical == o.CodeCanonical && c.Type == o.Type
}

// Alphabet maps codes to chemical components.
type Alphabet map[string]*ChemComp

func peptide(code, id, canon string) *ChemComp {
	t := CompTypeLPeptide
	if code == "G" {
		t = CompTypePeptide
	}
	return &ChemComp{ID: id, Code: code, CodeCanonical: canon, Type: t}
}

// LPeptideAlphabet maps one-letter amino acid codes to L-amino acids
// (glycine is achiral). MSE is included under its full name.
var LPeptideAlphabet = func() Alphabet {
	a := Alphabet{}
	for _, p := range [][2]string{
		{"A", "ALA"}, {"C", "CYS"}, {"D", "ASP"}, {"E", "GLU"}, {"F", "PHE"},
		{"G", "GLY"}, {"H", "HIS"}, {"I", "ILE"}, {"K", "LYS"}, {"L", "LEU"},
		{"M", "MET"}, {"N", "ASN"}, {"P", "PRO"}, {"Q", "GLN"}, {"R", "ARG"},
		{"S", "SER"}, {"T", "THR"}, {"V", "VAL"}, {"W", "TRP"}, {"Y", "TYR"},
	} {
		a[p[0]] = peptide(p[0], p[1], p[0])
	}
	a["MSE"] = &ChemComp{ID: "MSE", Code: "MSE", CodeCanonical: "M", Type: CompTypeLPeptide}
	return a
}()

// RNAAlphabet maps one-letter codes to RNA components.
var RNAAlphabet = func() Alphabet {
	a := Alphabet{}
	for _, c := range []string{"A", "C", "G", "U"} {
		a[c] = &ChemComp{ID: c, Code: c, CodeCanonical: c, Type: CompTypeRNA}
	}
	return a
}()

// DNAAlphabet maps two-letter codes (DA, DC, DG, DT) to DNA components.
var DNAAlphabet = func() Alphabet {
	a := Alphabet{}
	for _, c := range []string{"A", "C", "G", "T"} {
		a["D"+c] = &ChemComp{ID: "D" + c, Code: "D" + c, CodeCanonical: c, Type: CompTypeDNA}
	}
	return a
}()

// Sequence looks up each code in the alphabet.
func (a Alphabet) Sequence(codes ...string) ([]*ChemComp, error) {
	seq := make([]*ChemComp, 0, len(codes))
	for _, c := range codes {
		comp, ok := a[c]
		if !ok {
			return nil, fmt.Errorf("unknown component code %q", c)
		}
		seq = append(seq, comp)
	}
	return seq, nil
}

// Letters splits s into one-letter codes and looks each one up.
func (a Alphabet) Letters(s string) ([]*ChemComp, error) {
	codes := make([]string, 0, len(s))
	for _, r := range s {
		codes = append(codes, string(r))
	}
	return a.Sequence(codes...)
}

// LookupComp finds a standard component by its ID ("ALA", "DG", "U") in the
// built-in alphabets.
func LookupComp(id string) (*ChemComp, bool) {
	for _, a := range []Alphabet{LPeptideAlphabet, DNAAlphabet, RNAAlphabet} {
		for _, c := range a {
			if c.ID == id {
				return c, true
			}
		}
	}
	return nil, false
}

// NewChemComp returns a component for id, copying codes and type from the
// built-in alphabets when id is a standard residue.
func NewChemComp(id string) *ChemComp {
	if std, ok := LookupComp(id); ok {
		c := *std
		return &c
	}
	return &ChemComp{ID: id, Code: id, CodeCanonical: unknownCanonicalOneCode, Type: CompTypeOther}
}

func sameSequence(a, b []*ChemComp) bool {
	return slices.EqualFunc(a, b, func(x, y *ChemComp) bool { return x.Equal(y) })
}
