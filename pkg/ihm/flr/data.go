package flr

import (
	"iter"
	"slices"

	"github.com/matzehuels/ihmgraph/pkg/ihm"
)

// Data is the fluorescence data of one system. It implements
// [ihm.Extension].
type Data struct {
	DistanceRestraintGroups []*FRETDistanceRestraintGroup
	PolyProbeConjugates     []*PolyProbeConjugate
	ModelQualities          []*FRETModelQuality
	ModelDistances          []*FRETModelDistance
}

var _ ihm.Extension = (*Data)(nil)

// Restraints yields every distance restraint of every group.
func (d *Data) Restraints() iter.Seq[*FRETDistanceRestraint] {
	return func(yield func(*FRETDistanceRestraint) bool) {
		for _, g := range d.DistanceRestraintGroups {
			for _, r := range g.Restraints {
				if !yield(r) {
					return
				}
			}
		}
	}
}

// SampleProbes yields the sample/probe pairs of restraints, analyses and
// conjugates, without duplicates.
func (d *Data) SampleProbes() iter.Seq[*SampleProbeDetails] {
	return ihm.Unique(nonNil(func(yield func(*SampleProbeDetails) bool) {
		for r := range d.Restraints() {
			if !yield(r.SampleProbe1) || !yield(r.SampleProbe2) {
				return
			}
		}
		for a := range d.Analyses() {
			if !yield(a.SampleProbe1) || !yield(a.SampleProbe2) {
				return
			}
		}
		for _, c := range d.PolyProbeConjugates {
			if !yield(c.SampleProbe) {
				return
			}
		}
	}))
}

// Analyses yields the analyses of all restraints, without duplicates.
func (d *Data) Analyses() iter.Seq[*FRETAnalysis] {
	return ihm.Unique(nonNil(func(yield func(*FRETAnalysis) bool) {
		for r := range d.Restraints() {
			if !yield(r.Analysis) {
				return
			}
		}
	}))
}

// Experiments yields the experiments of all analyses, without duplicates.
func (d *Data) Experiments() iter.Seq[*Experiment] {
	return ihm.Unique(nonNil(mapSeq(d.Analyses(), func(a *FRETAnalysis) *Experiment { return a.Experiment })))
}

// Samples yields the samples of sample/probe pairs and experiments, without
// duplicates.
func (d *Data) Samples() iter.Seq[*Sample] {
	return ihm.Unique(nonNil(func(yield func(*Sample) bool) {
		for sp := range d.SampleProbes() {
			if !yield(sp.Sample) {
				return
			}
		}
		for e := range d.Experiments() {
			for _, en := range e.Entries {
				if !yield(en.Sample) {
					return
				}
			}
		}
	}))
}

// Instruments yields the instruments of all experiments, without duplicates.
func (d *Data) Instruments() iter.Seq[*Instrument] {
	return ihm.Unique(nonNil(func(yield func(*Instrument) bool) {
		for e := range d.Experiments() {
			for _, en := range e.Entries {
				if !yield(en.Instrument) {
					return
				}
			}
		}
	}))
}

// ExpSettings yields the settings of all experiments, without duplicates.
func (d *Data) ExpSettings() iter.Seq[*ExpSetting] {
	return ihm.Unique(nonNil(func(yield func(*ExpSetting) bool) {
		for e := range d.Experiments() {
			for _, en := range e.Entries {
				if !yield(en.ExpSetting) {
					return
				}
			}
		}
	}))
}

// EntityAssemblies yields the entity assemblies of all samples.
func (d *Data) EntityAssemblies() iter.Seq[*EntityAssembly] {
	return ihm.Unique(nonNil(mapSeq(d.Samples(), func(s *Sample) *EntityAssembly { return s.EntityAssembly })))
}

// SampleConditions yields the conditions of all samples.
func (d *Data) SampleConditions() iter.Seq[*SampleCondition] {
	return ihm.Unique(nonNil(mapSeq(d.Samples(), func(s *Sample) *SampleCondition { return s.Condition })))
}

// Probes yields the probes of all sample/probe pairs and Förster radii.
func (d *Data) Probes() iter.Seq[*Probe] {
	return ihm.Unique(nonNil(func(yield func(*Probe) bool) {
		for sp := range d.SampleProbes() {
			if !yield(sp.Probe) {
				return
			}
		}
		for fr := range d.ForsterRadii() {
			if !yield(fr.Donor) || !yield(fr.Acceptor) {
				return
			}
		}
	}))
}

// PolyProbePositions yields the attachment positions of all sample/probe
// pairs.
func (d *Data) PolyProbePositions() iter.Seq[*PolyProbePosition] {
	return ihm.Unique(nonNil(mapSeq(d.SampleProbes(), func(sp *SampleProbeDetails) *PolyProbePosition { return sp.Position })))
}

// ForsterRadii yields the Förster radii of all analyses.
func (d *Data) ForsterRadii() iter.Seq[*FRETForsterRadius] {
	return ihm.Unique(nonNil(mapSeq(d.Analyses(), func(a *FRETAnalysis) *FRETForsterRadius { return a.ForsterRadius })))
}

// CalibrationParameters yields the calibration parameters of all analyses.
func (d *Data) CalibrationParameters() iter.Seq[*FRETCalibrationParameters] {
	return ihm.Unique(nonNil(mapSeq(d.Analyses(), func(a *FRETAnalysis) *FRETCalibrationParameters {
		return a.CalibrationParameters
	})))
}

// PeakAssignments yields the peak assignments of all restraints.
func (d *Data) PeakAssignments() iter.Seq[*PeakAssignment] {
	return ihm.Unique(nonNil(mapSeq(d.Restraints(), func(r *FRETDistanceRestraint) *PeakAssignment { return r.PeakAssignment })))
}

// Datasets implements [ihm.Extension].
func (d *Data) Datasets() iter.Seq[*ihm.Dataset] {
	return nonNil(mapSeq(d.Analyses(), func(a *FRETAnalysis) *ihm.Dataset { return a.Dataset }))
}

// DatasetGroups implements [ihm.Extension].
func (d *Data) DatasetGroups() iter.Seq[*ihm.DatasetGroup] {
	return nonNil(mapSeq(slices.Values(d.ModelQualities), func(q *FRETModelQuality) *ihm.DatasetGroup { return q.DatasetGroup }))
}

// Software implements [ihm.Extension].
func (d *Data) Software() iter.Seq[*ihm.Software] {
	return nonNil(mapSeq(d.Analyses(), func(a *FRETAnalysis) *ihm.Software { return a.Software }))
}

// Locations implements [ihm.Extension].
func (d *Data) Locations() iter.Seq[ihm.Location] {
	return nonNil(mapSeq(d.Analyses(), func(a *FRETAnalysis) ihm.Location { return a.ExternalFile }))
}

// ChemDescriptors implements [ihm.Extension]. It yields the reactive probe
// and chromophore descriptors of every probe used by a restraint, the
// descriptors of mutated or modified attachment residues, and those of
// conjugates. Duplicates may be present.
func (d *Data) ChemDescriptors() iter.Seq[*ihm.ChemDescriptor] {
	return nonNil(func(yield func(*ihm.ChemDescriptor) bool) {
		for r := range d.Restraints() {
			for _, sp := range []*SampleProbeDetails{r.SampleProbe1, r.SampleProbe2} {
				if sp == nil {
					continue
				}
				if p := sp.Probe; p != nil {
					if !yield(p.Descriptor.ReactiveProbe) || !yield(p.Descriptor.Chromophore) {
						return
					}
				}
				if pos := sp.Position; pos != nil {
					if !yield(pos.Mutated) || !yield(pos.Modified) {
						return
					}
				}
			}
		}
		for _, c := range d.PolyProbeConjugates {
			if !yield(c.ChemDescriptor) {
				return
			}
		}
	})
}

func mapSeq[T, R any](seq iter.Seq[T], f func(T) R) iter.Seq[R] {
	return func(yield func(R) bool) {
		for v := range seq {
			if !yield(f(v)) {
				return
			}
		}
	}
}

func nonNil[T comparable](seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		var zero T
		for v := range seq {
			if v != zero && !yield(v) {
				return
			}
		}
	}
}
