package reader

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/ihmgraph/pkg/ihm"
	"github.com/matzehuels/ihmgraph/pkg/ihm/flr"
)

// Session holds the state of reading one data block: the system being built
// and one IDMapper per identifier space. Handlers resolve every reference
// through the session, so an id always maps to one object within a block.
type Session struct {
	System *ihm.System
	Logger *log.Logger

	Software        *IDMapper[*ihm.Software]
	Citations       *IDMapper[*ihm.Citation]
	Entities        *IDMapper[*ihm.Entity]
	Asyms           *IDMapper[*ihm.AsymUnit]
	Assemblies      *IDMapper[*ihm.Assembly]
	Repositories    *IDMapper[*ihm.Repository]
	Files           *IDMapper[*ihm.FileLocation]
	DBLocations     *IDMapper[*ihm.DatabaseLocation]
	Datasets        *IDMapper[*ihm.Dataset]
	DatasetGroups   *IDMapper[*ihm.DatasetGroup]
	Representations *IDMapper[*ihm.Representation]
	Segments        *IDMapper[*ihm.Segment]
	StartingModels  *IDMapper[*ihm.StartingModel]
	Templates       *IDMapper[*ihm.Template]
	Protocols       *IDMapper[*ihm.Protocol]
	Steps           *IDMapper[*ihm.Step]
	Analyses        *IDMapper[*ihm.Analysis]
	AnalysisSteps   *IDMapper[*ihm.AnalysisStep]
	EM3D            *IDMapper[*ihm.EM3DRestraint]
	EM2D            *IDMapper[*ihm.EM2DRestraint]
	SAS             *IDMapper[*ihm.SASRestraint]
	Models          *IDMapper[*ihm.Model]
	ModelGroups     *IDMapper[*ihm.ModelGroup]
	States          *IDMapper[*ihm.State]
	StateGroups     *IDMapper[*ihm.StateGroup]
	Ensembles       *IDMapper[*ihm.Ensemble]
	Densities       *IDMapper[*ihm.LocalizationDensity]
	ChemDescriptors *IDMapper[*ihm.ChemDescriptor]

	chemComps  map[string]*ihm.ChemComp
	localFiles map[string]bool
	fileRefs   map[*ihm.FileLocation]string
	elements   []elementRef
	flr        *FLRSession
	skipped    map[string]int
	handled    int
}

// NewSession returns a session that fills sys. A nil logger means
// log.Default().
func NewSession(sys *ihm.System, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{
		System:     sys,
		Logger:     logger,
		chemComps:  make(map[string]*ihm.ChemComp),
		localFiles: make(map[string]bool),
		fileRefs:   make(map[*ihm.FileLocation]string),
		skipped:    make(map[string]int),
	}
	s.Software = NewIDMapper(func(v *ihm.Software) { sys.Software = append(sys.Software, v) })
	s.Citations = NewIDMapper(func(v *ihm.Citation) { sys.Citations = append(sys.Citations, v) })
	s.Entities = NewIDMapper(func(v *ihm.Entity) { sys.Entities = append(sys.Entities, v) })
	s.Asyms = NewIDMapper(func(v *ihm.AsymUnit) { sys.AsymUnits = append(sys.AsymUnits, v) })
	s.Assemblies = NewIDMapper(func(v *ihm.Assembly) { sys.OrphanAssemblies = append(sys.OrphanAssemblies, v) })
	s.Repositories = NewIDMapper[*ihm.Repository](nil)
	s.Files = NewIDMapper(func(v *ihm.FileLocation) { sys.Locations = append(sys.Locations, v) })
	s.DBLocations = NewIDMapper(func(v *ihm.DatabaseLocation) { sys.Locations = append(sys.Locations, v) })
	s.Datasets = NewIDMapper(func(v *ihm.Dataset) { sys.OrphanDatasets = append(sys.OrphanDatasets, v) })
	s.DatasetGroups = NewIDMapper(func(v *ihm.DatasetGroup) { sys.OrphanDatasetGroups = append(sys.OrphanDatasetGroups, v) })
	s.Representations = NewIDMapper(func(v *ihm.Representation) {
		sys.OrphanRepresentations = append(sys.OrphanRepresentations, v)
	})
	s.Segments = NewIDMapper[*ihm.Segment](nil)
	s.StartingModels = NewIDMapper(func(v *ihm.StartingModel) {
		sys.OrphanStartingModels = append(sys.OrphanStartingModels, v)
	})
	s.Templates = NewIDMapper[*ihm.Template](nil)
	s.Protocols = NewIDMapper(func(v *ihm.Protocol) { sys.OrphanProtocols = append(sys.OrphanProtocols, v) })
	s.Steps = NewIDMapper[*ihm.Step](nil)
	s.Analyses = NewIDMapper[*ihm.Analysis](nil)
	s.AnalysisSteps = NewIDMapper[*ihm.AnalysisStep](nil)
	s.EM3D = NewIDMapper(func(v *ihm.EM3DRestraint) { sys.Restraints = append(sys.Restraints, v) })
	s.EM2D = NewIDMapper(func(v *ihm.EM2DRestraint) { sys.Restraints = append(sys.Restraints, v) })
	s.SAS = NewIDMapper(func(v *ihm.SASRestraint) { sys.Restraints = append(sys.Restraints, v) })
	s.Models = NewIDMapper[*ihm.Model](nil)
	s.ModelGroups = NewIDMapper[*ihm.ModelGroup](nil)
	s.States = NewIDMapper[*ihm.State](nil)
	s.StateGroups = NewIDMapper(func(v *ihm.StateGroup) { sys.StateGroups = append(sys.StateGroups, v) })
	s.Ensembles = NewIDMapper(func(v *ihm.Ensemble) { sys.Ensembles = append(sys.Ensembles, v) })
	s.Densities = NewIDMapper[*ihm.LocalizationDensity](nil)
	s.ChemDescriptors = NewIDMapper(func(v *ihm.ChemDescriptor) {
		sys.OrphanChemDescriptors = append(sys.OrphanChemDescriptors, v)
	})
	return s
}

// ChemComp returns the component with the given ID, creating it from the
// built-in alphabets (or as a non-standard component) on first use.
func (s *Session) ChemComp(id string) *ihm.ChemComp {
	if c, ok := s.chemComps[id]; ok {
		return c
	}
	c := ihm.NewChemComp(id)
	s.chemComps[id] = c
	return c
}

// FLRSession maps the identifier spaces of the FLR categories. It is
// created on first use, which also attaches its Data to the system.
type FLRSession struct {
	Data *flr.Data

	Experiments      *IDMapper[*flr.Experiment]
	Instruments      *IDMapper[*flr.Instrument]
	ExpSettings      *IDMapper[*flr.ExpSetting]
	SampleConditions *IDMapper[*flr.SampleCondition]
	EntityAssemblies *IDMapper[*flr.EntityAssembly]
	Samples          *IDMapper[*flr.Sample]
	Probes           *IDMapper[*flr.Probe]
	Positions        *IDMapper[*flr.PolyProbePosition]
	SampleProbes     *IDMapper[*flr.SampleProbeDetails]
	Conjugates       *IDMapper[*flr.PolyProbeConjugate]
	ForsterRadii     *IDMapper[*flr.FRETForsterRadius]
	Calibrations     *IDMapper[*flr.FRETCalibrationParameters]
	PeakAssignments  *IDMapper[*flr.PeakAssignment]
	Analyses         *IDMapper[*flr.FRETAnalysis]
	Restraints       *IDMapper[*flr.FRETDistanceRestraint]
	RestraintGroups  *IDMapper[*flr.FRETDistanceRestraintGroup]
	ModelQualities   *IDMapper[*flr.FRETModelQuality]
	ModelDistances   *IDMapper[*flr.FRETModelDistance]
}

// FLR returns the FLR mappers of the session.
func (s *Session) FLR() *FLRSession {
	if s.flr != nil {
		return s.flr
	}
	d := &flr.Data{}
	s.System.Extensions = append(s.System.Extensions, d)
	s.flr = &FLRSession{
		Data:             d,
		Experiments:      NewIDMapper[*flr.Experiment](nil),
		Instruments:      NewIDMapper[*flr.Instrument](nil),
		ExpSettings:      NewIDMapper[*flr.ExpSetting](nil),
		SampleConditions: NewIDMapper[*flr.SampleCondition](nil),
		EntityAssemblies: NewIDMapper[*flr.EntityAssembly](nil),
		Samples:          NewIDMapper[*flr.Sample](nil),
		Probes:           NewIDMapper[*flr.Probe](nil),
		Positions:        NewIDMapper[*flr.PolyProbePosition](nil),
		SampleProbes:     NewIDMapper[*flr.SampleProbeDetails](nil),
		Conjugates: NewIDMapper(func(v *flr.PolyProbeConjugate) {
			d.PolyProbeConjugates = append(d.PolyProbeConjugates, v)
		}),
		ForsterRadii:    NewIDMapper[*flr.FRETForsterRadius](nil),
		Calibrations:    NewIDMapper[*flr.FRETCalibrationParameters](nil),
		PeakAssignments: NewIDMapper[*flr.PeakAssignment](nil),
		Analyses:        NewIDMapper[*flr.FRETAnalysis](nil),
		Restraints:      NewIDMapper[*flr.FRETDistanceRestraint](nil),
		RestraintGroups: NewIDMapper(func(v *flr.FRETDistanceRestraintGroup) {
			d.DistanceRestraintGroups = append(d.DistanceRestraintGroups, v)
		}),
		ModelQualities: NewIDMapper(func(v *flr.FRETModelQuality) {
			d.ModelQualities = append(d.ModelQualities, v)
		}),
		ModelDistances: NewIDMapper(func(v *flr.FRETModelDistance) {
			d.ModelDistances = append(d.ModelDistances, v)
		}),
	}
	return s.flr
}

// Finish completes the system after all rows are handled. It checks the
// sequence ranges rows referred to, now that every sequence is known, and
// detaches files kept alongside the mmCIF file from the repository
// placeholder their reference created. Models that are in no group are put
// into a new group, and model groups and states that are in no state or
// state group end up in a new default state group.
func (s *Session) Finish() error {
	for _, e := range s.elements {
		el, err := e.resolve()
		if err != nil {
			return err
		}
		e.set(el)
	}
	s.elements = nil

	for f, ref := range s.fileRefs {
		if s.localFiles[ref] && f.Repository != nil && f.Repository.ID() == ref {
			f.Repository = nil
		}
	}

	grouped := make(map[*ihm.Model]bool)
	for _, g := range s.ModelGroups.Values() {
		for _, m := range g.Models {
			grouped[m] = true
		}
	}
	var looseModels []*ihm.Model
	for _, m := range s.Models.Values() {
		if !grouped[m] {
			looseModels = append(looseModels, m)
		}
	}

	inState := make(map[*ihm.ModelGroup]bool)
	for _, st := range s.States.Values() {
		for _, g := range st.ModelGroups {
			inState[g] = true
		}
	}
	var looseGroups []*ihm.ModelGroup
	for _, g := range s.ModelGroups.Values() {
		if !inState[g] {
			looseGroups = append(looseGroups, g)
		}
	}
	if len(looseModels) > 0 {
		looseGroups = append(looseGroups, &ihm.ModelGroup{Models: looseModels})
	}

	inGroup := make(map[*ihm.State]bool)
	for _, sg := range s.StateGroups.Values() {
		for _, st := range sg.States {
			inGroup[st] = true
		}
	}
	var looseStates []*ihm.State
	for _, st := range s.States.Values() {
		if !inGroup[st] {
			looseStates = append(looseStates, st)
		}
	}
	if len(looseGroups) > 0 {
		looseStates = append(looseStates, &ihm.State{ModelGroups: looseGroups})
	}
	if len(looseStates) > 0 {
		s.System.StateGroups = append(s.System.StateGroups, &ihm.StateGroup{States: looseStates})
	}
	return nil
}
