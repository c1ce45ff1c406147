package ihm

import "github.com/matzehuels/ihmgraph/pkg/cif"

// Model is one output structure of the modeling. Coordinates are not held.
type Model struct {
	Ident
	Name           cif.Value
	Assembly       *Assembly
	Protocol       *Protocol
	Representation *Representation
}

// ModelGroup is an ordered set of models, for example one cluster.
// A model may appear in several groups.
type ModelGroup struct {
	Ident
	Models  []*Model
	Name    cif.Value
	Details cif.Value
}

// State is one state of a multi-state system, made of model groups.
type State struct {
	Ident
	ModelGroups        []*ModelGroup
	Name               cif.Value
	Type               cif.Value
	ExperimentType     cif.Value
	PopulationFraction cif.Value
	Details            cif.Value
}

// StateGroup is a set of states that together describe the system, such as
// the states of one multi-state model.
type StateGroup struct {
	Ident
	States []*State
}

// Ensemble is a set of models described together, usually the result of
// clustering.
type Ensemble struct {
	Ident
	ModelGroup  *ModelGroup
	PostProcess *AnalysisStep
	File        Location
	Densities   []*LocalizationDensity

	Name              cif.Value
	ClusteringMethod  cif.Value
	ClusteringFeature cif.Value
	NumModels         cif.Value
	NumDeposited      cif.Value
	Precision         cif.Value
}

// LocalizationDensity is a density map of where part of the system lies
// within an ensemble.
type LocalizationDensity struct {
	Ident
	// Element is the *AsymUnit or [AsymUnitRange] the density describes.
	Element AssemblyElement
	File    Location
}
