package ihm

import "github.com/matzehuels/ihmgraph/pkg/cif"

// Restraint is experimental data used to restrain the modeling.
type Restraint interface {
	ID() string
	SetID(string)
	// Base returns the fields shared by all restraints.
	Base() *RestraintBase
}

// RestraintBase holds the dataset and assembly of a restraint.
type RestraintBase struct {
	Ident
	Dataset  *Dataset
	Assembly *Assembly
}

// Base implements [Restraint].
func (b *RestraintBase) Base() *RestraintBase { return b }

// EM3DRestraint restrains the system with a 3D electron microscopy map.
type EM3DRestraint struct {
	RestraintBase
	FittingMethod         cif.Value
	NumberOfGaussians     cif.Value
	FittingMethodCitation *Citation
	Details               cif.Value
}

// EM2DRestraint restrains the system with a 2D class average.
type EM2DRestraint struct {
	RestraintBase
	NumRawMicrographs cif.Value
	PixelSizeWidth    cif.Value
	PixelSizeHeight   cif.Value
	ImageResolution   cif.Value
	Segment           cif.Value
	NumProjections    cif.Value
	Details           cif.Value
}

// SASRestraint restrains the system with a small angle scattering profile.
type SASRestraint struct {
	RestraintBase
	SegmentedProfile cif.Value
	FittingAtomType  cif.Value
	FittingMethod    cif.Value
	MultiState       cif.Value
	RadiusOfGyration cif.Value
	ChiValue         cif.Value
	Details          cif.Value
}

// ChemDescriptor describes a chemical such as a crosslinker or a dye.
type ChemDescriptor struct {
	Ident
	AuthName        cif.Value
	ChemicalName    cif.Value
	CommonName      cif.Value
	SMILES          cif.Value
	SMILESCanonical cif.Value
	InChI           cif.Value
	InChIKey        cif.Value
	Details         cif.Value
}
