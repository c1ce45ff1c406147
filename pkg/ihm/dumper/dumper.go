package dumper

import (
	"context"
	"io"
	"time"

	"github.com/matzehuels/ihmgraph/pkg/cif"
	"github.com/matzehuels/ihmgraph/pkg/errors"
	"github.com/matzehuels/ihmgraph/pkg/ihm"
	"github.com/matzehuels/ihmgraph/pkg/ihm/flr"
	"github.com/matzehuels/ihmgraph/pkg/observability"
)

// dumper holds the identifiers assigned to one system.
type dumper struct {
	sys *ihm.System

	software       *ids[*ihm.Software]
	citations      *ids[*ihm.Citation]
	entities       *ids[*ihm.Entity]
	asyms          *ids[*ihm.AsymUnit]
	descriptors    *ids[*ihm.ChemDescriptor]
	assemblies     *ids[*ihm.Assembly]
	repos          *ids[*ihm.Repository]
	files          *ids[*ihm.FileLocation]
	dbLocations    *ids[*ihm.DatabaseLocation]
	datasets       *ids[*ihm.Dataset]
	datasetGroups  *ids[*ihm.DatasetGroup]
	representation *ids[*ihm.Representation]
	segments       *ids[*ihm.Segment]
	startingModels *ids[*ihm.StartingModel]
	templates      *ids[*ihm.Template]
	protocols      *ids[*ihm.Protocol]
	steps          *ids[*ihm.Step]
	analysisSteps  *ids[*ihm.AnalysisStep]
	em3d           *ids[*ihm.EM3DRestraint]
	em2d           *ids[*ihm.EM2DRestraint]
	sas            *ids[*ihm.SASRestraint]
	models         *ids[*ihm.Model]
	modelGroups    *ids[*ihm.ModelGroup]
	states         *ids[*ihm.State]
	stateGroups    *ids[*ihm.StateGroup]
	ensembles      *ids[*ihm.Ensemble]
	densities      *ids[*ihm.LocalizationDensity]

	// hasLocal is set when some file belongs to no repository.
	hasLocal bool

	flr *flrIDs
}

func newDumper(sys *ihm.System) *dumper {
	return &dumper{
		sys:            sys,
		software:       newIDs(func(a, b *ihm.Software) bool { return a.Equal(b) }),
		citations:      newIDs[*ihm.Citation](nil),
		entities:       newIDs(sameSequence),
		asyms:          newIDs[*ihm.AsymUnit](nil),
		descriptors:    newIDs[*ihm.ChemDescriptor](nil),
		assemblies:     newIDs(func(a, b *ihm.Assembly) bool { return a.Equal(b) }),
		repos:          newIDs[*ihm.Repository](nil),
		files:          newIDs[*ihm.FileLocation](nil),
		dbLocations:    newIDs[*ihm.DatabaseLocation](nil),
		datasets:       newIDs[*ihm.Dataset](nil),
		datasetGroups:  newIDs[*ihm.DatasetGroup](nil),
		representation: newIDs[*ihm.Representation](nil),
		segments:       newIDs[*ihm.Segment](nil),
		startingModels: newIDs[*ihm.StartingModel](nil),
		templates:      newIDs[*ihm.Template](nil),
		protocols:      newIDs[*ihm.Protocol](nil),
		steps:          newIDs[*ihm.Step](nil),
		analysisSteps:  newIDs[*ihm.AnalysisStep](nil),
		em3d:           newIDs[*ihm.EM3DRestraint](nil),
		em2d:           newIDs[*ihm.EM2DRestraint](nil),
		sas:            newIDs[*ihm.SASRestraint](nil),
		models:         newIDs[*ihm.Model](nil),
		modelGroups:    newIDs[*ihm.ModelGroup](nil),
		states:         newIDs[*ihm.State](nil),
		stateGroups:    newIDs[*ihm.StateGroup](nil),
		ensembles:      newIDs[*ihm.Ensemble](nil),
		densities:      newIDs[*ihm.LocalizationDensity](nil),
		flr:            newFLRIDs(),
	}
}

// sameSequence merges entities with equal, non-empty sequences. Entities
// without a sequence are only the same as themselves.
func sameSequence(a, b *ihm.Entity) bool {
	return len(a.Sequence) > 0 && a.Equal(b)
}

// Dump recomputes the complete assembly of sys, numbers every object and
// returns the categories to write, in order. Categories without rows are
// left out.
//
// A dataset that is its own ancestor makes Dump fail with an error that
// wraps a [*ihm.GraphCycleError].
func Dump(sys *ihm.System) ([]cif.Category, error) {
	sys.MakeCompleteAssembly()
	d := newDumper(sys)
	if err := d.assign(); err != nil {
		return nil, err
	}

	var out []cif.Category
	for _, section := range sections {
		for _, c := range section(d) {
			if c != nil && len(c.Rows) > 0 {
				out = append(out, *c)
			}
		}
	}
	return out, nil
}

// section produces the categories of one part of the file.
type section func(d *dumper) []*cif.Category

var sections = []section{
	func(d *dumper) []*cif.Category { return []*cif.Category{d.dumpStruct()} },
	func(d *dumper) []*cif.Category { return []*cif.Category{d.dumpSoftware()} },
	(*dumper).dumpCitations,
	func(d *dumper) []*cif.Category { return []*cif.Category{d.dumpChemComps()} },
	(*dumper).dumpEntities,
	func(d *dumper) []*cif.Category { return []*cif.Category{d.dumpStructAsym()} },
	func(d *dumper) []*cif.Category { return []*cif.Category{d.dumpChemDescriptors()} },
	(*dumper).dumpAssemblies,
	(*dumper).dumpExternalFiles,
	(*dumper).dumpDatasets,
	(*dumper).dumpRepresentations,
	(*dumper).dumpStartingModels,
	(*dumper).dumpProtocols,
	(*dumper).dumpRestraints,
	(*dumper).dumpModels,
	(*dumper).dumpEnsembles,
	(*dumper).dumpFLR,
}

// assign numbers everything reachable from the system, in the order the
// collectors yield it.
func (d *dumper) assign() error {
	s := d.sys
	for sw := range s.AllSoftware() {
		d.software.add(sw)
	}
	for c := range s.AllCitations() {
		d.citations.add(c)
	}

	for _, e := range s.Entities {
		d.entities.add(e)
	}
	for _, a := range s.AsymUnits {
		d.addAsym(a)
	}
	for c := range s.AllChemDescriptors() {
		d.descriptors.add(c)
	}

	for a := range s.AllAssemblies() {
		d.assemblies.add(a)
		for _, el := range a.Elements {
			d.addElement(el)
		}
	}

	for loc, err := range s.AllLocations() {
		if err != nil {
			return errors.Wrap(errors.ErrCodeGraphCycle, err, "data_%s", s.ID)
		}
		d.addLocation(loc)
	}
	for ds, err := range s.AllDatasets() {
		if err != nil {
			return errors.Wrap(errors.ErrCodeGraphCycle, err, "data_%s", s.ID)
		}
		d.datasets.add(ds)
		d.addLocation(ds.Location)
	}
	for g := range s.AllDatasetGroups() {
		d.datasetGroups.add(g)
	}

	for r := range s.AllRepresentations() {
		d.representation.add(r)
	}
	for seg := range s.AllSegments() {
		d.segments.add(seg)
		d.addElement(seg.Element)
	}
	for sm := range s.AllStartingModels() {
		d.startingModels.add(sm)
		d.addElement(sm.Asym)
	}
	for t := range s.AllTemplates() {
		d.templates.add(t)
	}

	for p := range s.AllProtocols() {
		d.protocols.add(p)
	}
	for st := range s.AllProtocolSteps() {
		d.steps.add(st)
	}
	for st := range s.AllAnalysisSteps() {
		d.analysisSteps.add(st)
	}

	for _, r := range s.Restraints {
		switch r := r.(type) {
		case *ihm.EM3DRestraint:
			if r.Dataset == nil {
				return errors.New(errors.ErrCodeInvalidInput, "data_%s: 3DEM restraint without dataset", s.ID)
			}
			d.em3d.add(r)
		case *ihm.EM2DRestraint:
			d.em2d.add(r)
		case *ihm.SASRestraint:
			if r.Dataset == nil {
				return errors.New(errors.ErrCodeInvalidInput, "data_%s: SAS restraint without dataset", s.ID)
			}
			d.sas.add(r)
		}
	}

	for _, sg := range s.StateGroups {
		d.stateGroups.add(sg)
		for _, st := range sg.States {
			d.states.add(st)
		}
	}
	for g := range s.AllModelGroups() {
		d.modelGroups.add(g)
	}
	for _, m := range s.AllModels() {
		d.models.add(m)
	}
	for _, e := range s.Ensembles {
		d.ensembles.add(e)
		for _, den := range e.Densities {
			d.densities.add(den)
			d.addElement(den.Element)
		}
	}

	for _, x := range flrData(s) {
		d.flr.add(d, x)
	}
	return nil
}

// localRef is the reference id shared by files that belong to no
// repository. It follows the repository ids.
func (d *dumper) localRef() cif.Value {
	if !d.hasLocal {
		return cif.Value{}
	}
	return cif.Int(len(d.repos.list()) + 1)
}

func (d *dumper) addAsym(a *ihm.AsymUnit) {
	d.asyms.add(a)
	if a != nil {
		d.entities.add(a.Entity)
	}
}

// addElement numbers the entity and asymmetric unit behind el.
func (d *dumper) addElement(el ihm.AssemblyElement) {
	switch el := el.(type) {
	case *ihm.Entity:
		d.entities.add(el)
	case ihm.EntityRange:
		d.entities.add(el.Entity)
	case *ihm.AsymUnit:
		d.addAsym(el)
	case ihm.AsymUnitRange:
		d.addAsym(el.Asym)
	}
}

func (d *dumper) addLocation(loc ihm.Location) {
	switch loc := loc.(type) {
	case *ihm.FileLocation:
		if loc == nil {
			return
		}
		d.files.add(loc)
		if loc.Repository != nil {
			d.repos.add(loc.Repository)
		} else {
			d.hasLocal = true
		}
	case *ihm.DatabaseLocation:
		d.dbLocations.add(loc)
	}
}

// flrData returns the FLR extensions of s.
func flrData(s *ihm.System) []*flr.Data {
	var out []*flr.Data
	for _, e := range s.Extensions {
		if x, ok := e.(*flr.Data); ok && x != nil {
			out = append(out, x)
		}
	}
	return out
}

// Write dumps each system as one data block of w.
func Write(ctx context.Context, w io.Writer, systems ...*ihm.System) error {
	start := time.Now()
	observability.IO().OnWriteStart(ctx, len(systems))

	n, err := write(ctx, w, systems)

	observability.IO().OnWriteComplete(ctx, len(systems), n, time.Since(start), err)
	return err
}

func write(ctx context.Context, w io.Writer, systems []*ihm.System) (int, error) {
	cw := cif.NewWriter(w)
	n := 0
	for _, s := range systems {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		cats, err := Dump(s)
		if err != nil {
			return n, err
		}
		if err := cw.StartBlock(s.ID); err != nil {
			return n, err
		}
		for _, c := range s.Comments {
			if err := cw.WriteComment(c); err != nil {
				return n, err
			}
		}
		for _, c := range cats {
			if err := cw.WriteCategory(c); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, cw.Flush()
}
