package ihm

import "github.com/matzehuels/ihmgraph/pkg/cif"

// Protocol is a modeling workflow: an ordered list of steps and any number
// of analyses of the result.
type Protocol struct {
	Ident
	Name     cif.Value
	Steps    []*Step
	Analyses []*Analysis
}

// Step is one stage of a [Protocol].
type Step struct {
	Ident
	Assembly     *Assembly
	DatasetGroup *DatasetGroup
	Software     *Software
	Script       Location

	Name           cif.Value
	Method         cif.Value
	NumModelsBegin cif.Value
	NumModelsEnd   cif.Value
	MultiScale     cif.Value
	MultiState     cif.Value
	Ordered        cif.Value
	Description    cif.Value
}

// Analysis is a series of post-processing steps applied to the output of a
// protocol.
type Analysis struct {
	Ident
	Steps []*AnalysisStep
}

// AnalysisStep is one post-processing step such as filtering or clustering.
type AnalysisStep struct {
	Ident
	Type           cif.Value // "filter", "cluster", "rescore", "validation", "other", "none"
	Feature        cif.Value // "RMSD", "dRMSD", "energy/score", "other", "none"
	NumModelsBegin cif.Value
	NumModelsEnd   cif.Value
	Assembly       *Assembly
	DatasetGroup   *DatasetGroup
	Software       *Software
	Details        cif.Value
}
