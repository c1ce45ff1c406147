package ihm

import (
	"iter"

	"github.com/matzehuels/ihmgraph/pkg/cif"
)

// DefaultSystemID is the data block name used when none is given.
const DefaultSystemID = "model"

// System is the root of one document.
//
// The Orphan* lists hold objects that nothing else refers to; objects that
// are referenced (a protocol used by a model, a dataset in a group) need not
// be listed there. The All* collectors find both.
type System struct {
	ID       string
	Title    cif.Value
	Comments []string

	Software  []*Software
	Citations []*Citation
	Entities  []*Entity
	AsymUnits []*AsymUnit

	// CompleteAssembly holds every asymmetric unit plus every entity that
	// has none. It is derived by [System.MakeCompleteAssembly] and always
	// written as the first assembly.
	CompleteAssembly *Assembly
	OrphanAssemblies []*Assembly

	// Locations of extra resources not referenced elsewhere.
	Locations []Location

	OrphanDatasets        []*Dataset
	OrphanDatasetGroups   []*DatasetGroup
	OrphanRepresentations []*Representation
	OrphanStartingModels  []*StartingModel
	OrphanProtocols       []*Protocol
	OrphanChemDescriptors []*ChemDescriptor
	Restraints            []Restraint
	Ensembles             []*Ensemble
	StateGroups           []*StateGroup

	// Extensions carry data from dictionary extensions such as FLR.
	Extensions []Extension
}

// NewSystem returns an empty system with the given data block ID.
func NewSystem(id string) *System {
	if id == "" {
		id = DefaultSystemID
	}
	return &System{
		ID: id,
		CompleteAssembly: &Assembly{
			Name:        cif.Str("Complete assembly"),
			Description: cif.Str("All known components"),
		},
	}
}

// MakeCompleteAssembly refills the complete assembly with all asymmetric
// units in order, followed by every entity that no asymmetric unit
// instantiates. Calling it twice without changing the system gives the same
// result. Each call builds a new slice, so earlier Elements slices keep
// their contents.
func (s *System) MakeCompleteAssembly() {
	if s.CompleteAssembly == nil {
		s.CompleteAssembly = NewSystem(s.ID).CompleteAssembly
	}
	a := s.CompleteAssembly
	a.Elements = make([]AssemblyElement, 0, len(s.AsymUnits)+len(s.Entities))
	seen := make(map[*Entity]bool)
	for _, asym := range s.AsymUnits {
		a.Elements = append(a.Elements, asym)
		seen[asym.Entity] = true
	}
	for _, e := range s.Entities {
		if !seen[e] {
			a.Elements = append(a.Elements, e)
		}
	}
}

// Extension is data from a dictionary extension that refers to objects of
// the core graph. Collectors include what extensions yield.
type Extension interface {
	Datasets() iter.Seq[*Dataset]
	DatasetGroups() iter.Seq[*DatasetGroup]
	Software() iter.Seq[*Software]
	Locations() iter.Seq[Location]
	ChemDescriptors() iter.Seq[*ChemDescriptor]
}
