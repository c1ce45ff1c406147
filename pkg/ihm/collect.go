package ihm

import (
	"iter"
	"slices"
)

// The All* collectors walk the graph lazily. Each yields the orphan list of
// its kind first and then every object reachable through the documented
// owning relations, in that order. Where a collector deduplicates it does so
// by identity and keeps the first occurrence.

// AllModelGroups yields the model groups of every state of every state
// group. A group listed in several states is yielded each time.
func (s *System) AllModelGroups() iter.Seq[*ModelGroup] {
	return func(yield func(*ModelGroup) bool) {
		for _, sg := range s.StateGroups {
			for _, st := range sg.States {
				for _, mg := range st.ModelGroups {
					if !yield(mg) {
						return
					}
				}
			}
		}
	}
}

// AllModels yields each model together with its group. Duplicates within one
// group are dropped; a model listed in two groups is yielded for both.
func (s *System) AllModels() iter.Seq2[*ModelGroup, *Model] {
	return func(yield func(*ModelGroup, *Model) bool) {
		for mg := range s.AllModelGroups() {
			seen := make(map[*Model]bool, len(mg.Models))
			for _, m := range mg.Models {
				if seen[m] {
					continue
				}
				seen[m] = true
				if !yield(mg, m) {
					return
				}
			}
		}
	}
}

func (s *System) models() iter.Seq[*Model] {
	return func(yield func(*Model) bool) {
		for _, m := range s.AllModels() {
			if !yield(m) {
				return
			}
		}
	}
}

// AllRepresentations yields orphan representations and those of every
// model, without duplicates.
func (s *System) AllRepresentations() iter.Seq[*Representation] {
	return Unique(chain(
		slices.Values(s.OrphanRepresentations),
		present(s.models(), func(m *Model) *Representation { return m.Representation }),
	))
}

// AllSegments yields the segments of every representation.
func (s *System) AllSegments() iter.Seq[*Segment] {
	return func(yield func(*Segment) bool) {
		for r := range s.AllRepresentations() {
			for _, seg := range r.Segments {
				if !yield(seg) {
					return
				}
			}
		}
	}
}

// AllStartingModels yields orphan starting models and those used by
// segments, without duplicates.
func (s *System) AllStartingModels() iter.Seq[*StartingModel] {
	return Unique(chain(
		slices.Values(s.OrphanStartingModels),
		present(s.AllSegments(), func(seg *Segment) *StartingModel { return seg.StartingModel }),
	))
}

// AllProtocols yields orphan protocols and those of every model, without
// duplicates.
func (s *System) AllProtocols() iter.Seq[*Protocol] {
	return Unique(chain(
		slices.Values(s.OrphanProtocols),
		present(s.models(), func(m *Model) *Protocol { return m.Protocol }),
	))
}

// AllProtocolSteps yields the steps of every protocol.
func (s *System) AllProtocolSteps() iter.Seq[*Step] {
	return func(yield func(*Step) bool) {
		for p := range s.AllProtocols() {
			for _, st := range p.Steps {
				if !yield(st) {
					return
				}
			}
		}
	}
}

// AllAnalyses yields each analysis of every protocol with its protocol.
func (s *System) AllAnalyses() iter.Seq2[*Protocol, *Analysis] {
	return func(yield func(*Protocol, *Analysis) bool) {
		for p := range s.AllProtocols() {
			for _, a := range p.Analyses {
				if !yield(p, a) {
					return
				}
			}
		}
	}
}

// AllAnalysisSteps yields the steps of every analysis of every protocol.
func (s *System) AllAnalysisSteps() iter.Seq[*AnalysisStep] {
	return func(yield func(*AnalysisStep) bool) {
		for _, a := range s.AllAnalyses() {
			for _, st := range a.Steps {
				if !yield(st) {
					return
				}
			}
		}
	}
}

// AllAssemblies yields the complete assembly first, then orphan assemblies
// and those of models, protocol steps, analysis steps and restraints. Each
// is followed by its chain of parents. Duplicates are not removed.
func (s *System) AllAssemblies() iter.Seq[*Assembly] {
	base := chain(
		present(slices.Values(append([]*Assembly{s.CompleteAssembly}, s.OrphanAssemblies...)),
			func(a *Assembly) *Assembly { return a }),
		present(s.models(), func(m *Model) *Assembly { return m.Assembly }),
		present(s.AllProtocolSteps(), func(st *Step) *Assembly { return st.Assembly }),
		present(s.AllAnalysisSteps(), func(st *AnalysisStep) *Assembly { return st.Assembly }),
		present(slices.Values(s.Restraints), func(r Restraint) *Assembly { return r.Base().Assembly }),
	)
	return func(yield func(*Assembly) bool) {
		for a := range base {
			if !yield(a) {
				return
			}
			seen := map[*Assembly]bool{a: true}
			for p := a.Parent; p != nil && !seen[p]; p = p.Parent {
				seen[p] = true
				if !yield(p) {
					return
				}
			}
		}
	}
}

// AllDatasetGroups yields orphan dataset groups, those of protocol and
// analysis steps, and those of extensions. Duplicates are not removed.
func (s *System) AllDatasetGroups() iter.Seq[*DatasetGroup] {
	return chain(
		slices.Values(s.OrphanDatasetGroups),
		present(s.AllProtocolSteps(), func(st *Step) *DatasetGroup { return st.DatasetGroup }),
		present(s.AllAnalysisSteps(), func(st *AnalysisStep) *DatasetGroup { return st.DatasetGroup }),
		fromExtensions(s.Extensions, func(e Extension) iter.Seq[*DatasetGroup] { return e.DatasetGroups() }),
	)
}

// AllTemplates yields the templates of every starting model.
func (s *System) AllTemplates() iter.Seq[*Template] {
	return func(yield func(*Template) bool) {
		for sm := range s.AllStartingModels() {
			for _, t := range sm.Templates {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// datasetsExceptParents yields every dataset referenced from somewhere other
// than the parent list of another dataset.
func (s *System) datasetsExceptParents() iter.Seq[*Dataset] {
	inGroups := func(yield func(*Dataset) bool) {
		for g := range s.AllDatasetGroups() {
			for _, d := range g.Datasets {
				if !yield(d) {
					return
				}
			}
		}
	}
	return chain(
		slices.Values(s.OrphanDatasets),
		inGroups,
		present(s.AllStartingModels(), func(sm *StartingModel) *Dataset { return sm.Dataset }),
		present(slices.Values(s.Restraints), func(r Restraint) *Dataset { return r.Base().Dataset }),
		present(s.AllTemplates(), func(t *Template) *Dataset { return t.Dataset }),
		fromExtensions(s.Extensions, func(e Extension) iter.Seq[*Dataset] { return e.Datasets() }),
	)
}

// AllDatasets yields every dataset preceded by its ancestors, parents
// before children. Datasets reachable along several paths are yielded
// several times.
//
// If a dataset is its own ancestor the sequence ends with a nil dataset and
// a [*GraphCycleError].
func (s *System) AllDatasets() iter.Seq2[*Dataset, error] {
	return func(yield func(*Dataset, error) bool) {
		for d := range s.datasetsExceptParents() {
			if !withAncestors(d, make(map[*Dataset]bool), yield) {
				return
			}
		}
	}
}

// withAncestors yields the parents of d recursively and then d. path holds
// the datasets on the current descent so that a cycle is detected on the
// first revisit.
func withAncestors(d *Dataset, path map[*Dataset]bool, yield func(*Dataset, error) bool) bool {
	if path[d] {
		yield(nil, &GraphCycleError{Kind: "dataset", ID: d.ID()})
		return false
	}
	path[d] = true
	for _, p := range d.Parents {
		if !withAncestors(p, path, yield) {
			return false
		}
	}
	delete(path, d)
	return yield(d, nil)
}

// AllLocations yields the system's own locations followed by those of
// datasets, ensembles, localization densities, templates, protocol step
// scripts and extensions. Duplicates are not removed. A dataset cycle ends
// the sequence with its error.
func (s *System) AllLocations() iter.Seq2[Location, error] {
	return func(yield func(Location, error) bool) {
		for _, l := range s.Locations {
			if !yield(l, nil) {
				return
			}
		}
		for d, err := range s.AllDatasets() {
			if err != nil {
				yield(nil, err)
				return
			}
			if d.Location != nil && !yield(d.Location, nil) {
				return
			}
		}
		var densities []*LocalizationDensity
		for _, e := range s.Ensembles {
			densities = append(densities, e.Densities...)
		}
		rest := chain(
			present(slices.Values(s.Ensembles), func(e *Ensemble) Location { return e.File }),
			present(slices.Values(densities), func(d *LocalizationDensity) Location { return d.File }),
			present(s.AllTemplates(), func(t *Template) Location { return t.AlignmentFile }),
			present(s.AllProtocolSteps(), func(st *Step) Location { return st.Script }),
			fromExtensions(s.Extensions, func(e Extension) iter.Seq[Location] { return e.Locations() }),
		)
		for l := range rest {
			if !yield(l, nil) {
				return
			}
		}
	}
}

// AllCitations yields the system's citations and those of 3DEM fitting
// methods, without duplicates.
func (s *System) AllCitations() iter.Seq[*Citation] {
	return Unique(chain(
		slices.Values(s.Citations),
		present(slices.Values(s.Restraints), func(r Restraint) *Citation {
			if em, ok := r.(*EM3DRestraint); ok {
				return em.FittingMethodCitation
			}
			return nil
		}),
	))
}

// AllSoftware yields the system's software and that referenced by protocol
// steps, analysis steps and extensions, without duplicate objects. Distinct
// objects with equal [Software.Key] are all yielded.
func (s *System) AllSoftware() iter.Seq[*Software] {
	return Unique(chain(
		slices.Values(s.Software),
		present(s.AllProtocolSteps(), func(st *Step) *Software { return st.Software }),
		present(s.AllAnalysisSteps(), func(st *AnalysisStep) *Software { return st.Software }),
		fromExtensions(s.Extensions, func(e Extension) iter.Seq[*Software] { return e.Software() }),
	))
}

// AllChemComps yields every component used by an entity sequence, once per
// component ID. Gaps (nil entries) in a sequence are skipped.
func (s *System) AllChemComps() iter.Seq[*ChemComp] {
	comps := func(yield func(*ChemComp) bool) {
		for _, e := range s.Entities {
			for _, c := range e.Sequence {
				if c != nil && !yield(c) {
					return
				}
			}
		}
	}
	return UniqueFunc(comps, func(c *ChemComp) string { return c.ID })
}

// AllChemDescriptors yields orphan descriptors and those used by
// extensions, without duplicates.
func (s *System) AllChemDescriptors() iter.Seq[*ChemDescriptor] {
	return Unique(chain(
		slices.Values(s.OrphanChemDescriptors),
		fromExtensions(s.Extensions, func(e Extension) iter.Seq[*ChemDescriptor] { return e.ChemDescriptors() }),
	))
}

// fromExtensions yields the non-nil objects pick returns for each extension.
func fromExtensions[T comparable](exts []Extension, pick func(Extension) iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		var zero T
		for _, e := range exts {
			for v := range pick(e) {
				if v != zero && !yield(v) {
					return
				}
			}
		}
	}
}
