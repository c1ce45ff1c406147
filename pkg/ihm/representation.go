package ihm

import "github.com/matzehuels/ihmgraph/pkg/cif"

// Representation describes how the system was represented during modeling,
// as an ordered list of segments.
type Representation struct {
	Ident
	Segments []*Segment
	Name     cif.Value
	Details  cif.Value
}

// Segment represents one part of the system (an asymmetric unit or a range
// of one) with a single kind of primitive.
type Segment struct {
	Ident
	Element       AssemblyElement
	Primitive     cif.Value // "sphere", "gaussian", "atomistic"
	Granularity   cif.Value // "by-residue", "by-feature", "by-atom"
	Rigid         cif.Value // model_mode: "rigid" or "flexible"
	Count         cif.Value
	StartingModel *StartingModel
	Description   cif.Value
}

// StartingModel is an initial structure for part of the system, taken from
// an experimental structure, a comparative model or similar.
type StartingModel struct {
	Ident
	// Asym is the *AsymUnit or [AsymUnitRange] that was modeled.
	Asym      AssemblyElement
	Dataset   *Dataset
	Source    cif.Value
	AuthAsym  cif.Value
	Offset    cif.Value
	Templates []*Template
	Details   cif.Value
}

// Template is a structure used to build a comparative [StartingModel].
type Template struct {
	Ident
	Dataset       *Dataset
	AuthAsym      cif.Value
	SeqBegin      cif.Value
	SeqEnd        cif.Value
	TemplateBegin cif.Value
	TemplateEnd   cif.Value

	SequenceIdentity            cif.Value
	SequenceIdentityDenominator cif.Value
	AlignmentFile               Location
}
