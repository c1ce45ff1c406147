// Package flr holds fluorescence (FRET) data that extends an integrative
// model.
//
// The types roughly follow the categories of the FLR dictionary. A [Data]
// value collects everything for one system; add it to
// ihm.System.Extensions so that writers find the datasets, software, files
// and chemical descriptors it refers to.
//
// Most objects are only reachable from a FRET distance restraint: restraint
// → sample/probe pairs → samples and probes → descriptors and positions.
// Collectors on Data walk that graph and deduplicate by identity.
package flr

import (
	"errors"
	"fmt"

	"github.com/matzehuels/ihmgraph/pkg/cif"
	"github.com/matzehuels/ihmgraph/pkg/ihm"
)

// ErrNegativeCopies is returned by [EntityAssembly.AddEntity].
var ErrNegativeCopies = errors.New("number of copies must not be negative")

// Experiment lists combinations of instrument, setting and sample used for
// measurements.
type Experiment struct {
	ihm.Ident
	Entries []ExperimentEntry
}

// ExperimentEntry is one row of an experiment.
type ExperimentEntry struct {
	Instrument *Instrument
	ExpSetting *ExpSetting
	Sample     *Sample
	Details    cif.Value
}

// Add appends an entry unless the same instrument, setting and sample are
// already listed.
func (e *Experiment) Add(inst *Instrument, setting *ExpSetting, sample *Sample, details cif.Value) {
	if e.Contains(inst, setting, sample) {
		return
	}
	e.Entries = append(e.Entries, ExperimentEntry{Instrument: inst, ExpSetting: setting, Sample: sample, Details: details})
}

// Contains reports whether the triple is already listed.
func (e *Experiment) Contains(inst *Instrument, setting *ExpSetting, sample *Sample) bool {
	for _, en := range e.Entries {
		if en.Instrument == inst && en.ExpSetting == setting && en.Sample == sample {
			return true
		}
	}
	return false
}

// Instrument used for measurements.
type Instrument struct {
	ihm.Ident
	Details cif.Value
}

// ExpSetting describes experimental settings such as temperature.
type ExpSetting struct {
	ihm.Ident
	Details cif.Value
}

// SampleCondition describes the conditions of a sample.
type SampleCondition struct {
	ihm.Ident
	Details cif.Value
}

// EntityAssembly lists entities with their copy numbers in a sample.
type EntityAssembly struct {
	ihm.Ident
	Entries []EntityCopies
}

// EntityCopies is one entity of an [EntityAssembly].
type EntityCopies struct {
	Entity    *ihm.Entity
	NumCopies int
}

// AddEntity appends an entity with its copy number.
func (a *EntityAssembly) AddEntity(e *ihm.Entity, numCopies int) error {
	if numCopies < 0 {
		return fmt.Errorf("entity %q: %w", e.ID(), ErrNegativeCopies)
	}
	a.Entries = append(a.Entries, EntityCopies{Entity: e, NumCopies: numCopies})
	return nil
}

// Sample is the material that was measured.
type Sample struct {
	ihm.Ident
	EntityAssembly *EntityAssembly
	Condition      *SampleCondition
	NumOfProbes    cif.Value
	Description    cif.Value
	Details        cif.Value
	SolventPhase   cif.Value
}

// ProbeList names a fluorescent probe and how it is attached.
type ProbeList struct {
	ChromophoreName   cif.Value
	ReactiveProbeFlag cif.Value
	ReactiveProbeName cif.Value
	ProbeOrigin       cif.Value
	ProbeLinkType     cif.Value
}

// ProbeDescriptor holds the chemical descriptors of a probe.
type ProbeDescriptor struct {
	ReactiveProbe         *ihm.ChemDescriptor
	Chromophore           *ihm.ChemDescriptor
	ChromophoreCenterAtom cif.Value
}

// Probe is a fluorescent probe. It joins the list entry and descriptor that
// share a probe id in the file.
type Probe struct {
	ihm.Ident
	List       ProbeList
	Descriptor ProbeDescriptor
}

// PolyProbePosition is the residue and atom a probe is attached to. A
// mutated or modified residue carries its own chemical descriptor.
type PolyProbePosition struct {
	ihm.Ident
	Entity   *ihm.Entity
	SeqID    cif.Value
	CompID   cif.Value
	AtomID   cif.Value
	AuthName cif.Value

	Mutated  *ihm.ChemDescriptor
	Modified *ihm.ChemDescriptor
}

// SampleProbeDetails connects a probe to a sample.
type SampleProbeDetails struct {
	ihm.Ident
	Sample          *Sample
	Probe           *Probe
	Position        *PolyProbePosition
	FluorophoreType cif.Value // "donor", "acceptor", "unspecified"
	Description     cif.Value
}

// PolyProbeConjugate is the conjugate of a polymer residue and a probe.
type PolyProbeConjugate struct {
	ihm.Ident
	SampleProbe            *SampleProbeDetails
	ChemDescriptor         *ihm.ChemDescriptor
	AmbiguousStoichiometry cif.Value
	ProbeStoichiometry     cif.Value
}

// FRETForsterRadius is the Förster radius of a donor/acceptor pair.
type FRETForsterRadius struct {
	ihm.Ident
	Donor                *Probe
	Acceptor             *Probe
	ForsterRadius        cif.Value
	ReducedForsterRadius cif.Value
}

// FRETCalibrationParameters are the correction factors of a measurement.
type FRETCalibrationParameters struct {
	ihm.Ident
	PhiAcceptor cif.Value
	Alpha       cif.Value
	AlphaSD     cif.Value
	GGGRRatio   cif.Value
	Beta        cif.Value
	Gamma       cif.Value
	Delta       cif.Value
	AB          cif.Value
}

// PeakAssignment is how a peak was assigned when there were several.
type PeakAssignment struct {
	ihm.Ident
	MethodName cif.Value
	Details    cif.Value
}

// FRETAnalysis is an analysis of FRET data.
type FRETAnalysis struct {
	ihm.Ident
	Experiment            *Experiment
	SampleProbe1          *SampleProbeDetails
	SampleProbe2          *SampleProbeDetails
	ForsterRadius         *FRETForsterRadius
	CalibrationParameters *FRETCalibrationParameters
	MethodName            cif.Value
	ChiSquareReduced      cif.Value
	Dataset               *ihm.Dataset
	ExternalFile          ihm.Location
	Software              *ihm.Software
}

// FRETDistanceRestraint is a distance restraint derived from FRET.
type FRETDistanceRestraint struct {
	ihm.Ident
	SampleProbe1       *SampleProbeDetails
	SampleProbe2       *SampleProbeDetails
	Analysis           *FRETAnalysis
	State              *ihm.State
	PeakAssignment     *PeakAssignment
	Distance           cif.Value
	DistanceErrorPlus  cif.Value
	DistanceErrorMinus cif.Value
	DistanceType       cif.Value
	PopulationFraction cif.Value
}

// FRETDistanceRestraintGroup is a set of restraints used together.
type FRETDistanceRestraintGroup struct {
	ihm.Ident
	Restraints []*FRETDistanceRestraint
}

// Add appends r unless it is already in the group.
func (g *FRETDistanceRestraintGroup) Add(r *FRETDistanceRestraint) {
	g.Restraints = ihm.AppendOnce(g.Restraints, r)
}

// FRETModelQuality is the agreement of a model with the FRET data.
type FRETModelQuality struct {
	ihm.Ident
	Model            *ihm.Model
	DatasetGroup     *ihm.DatasetGroup
	ChiSquareReduced cif.Value
	Method           cif.Value
	Details          cif.Value
}

// FRETModelDistance is the distance a model shows for one restraint.
type FRETModelDistance struct {
	ihm.Ident
	Restraint *FRETDistanceRestraint
	Model     *ihm.Model
	Distance  cif.Value
	Deviation cif.Value
}

// NewFRETModelDistance returns a model distance and computes its deviation
// from the restraint when possible.
func NewFRETModelDistance(r *FRETDistanceRestraint, m *ihm.Model, distance float64) *FRETModelDistance {
	d := &FRETModelDistance{Restraint: r, Model: m, Distance: cif.Float(distance)}
	d.CalculateDeviation()
	return d
}

// CalculateDeviation sets Deviation to restraint distance minus model
// distance if it is not set yet.
func (d *FRETModelDistance) CalculateDeviation() {
	if d.Deviation.IsSet() {
		return
	}
	d.UpdateDeviation()
}

// UpdateDeviation recomputes Deviation. It leaves Deviation alone when
// either distance is not a number.
func (d *FRETModelDistance) UpdateDeviation() {
	if d.Restraint == nil {
		return
	}
	want, err := d.Restraint.Distance.AsFloat()
	if err != nil {
		return
	}
	got, err := d.Distance.AsFloat()
	if err != nil {
		return
	}
	d.Deviation = cif.Float(want - got)
}
