package reader

import (
	"github.com/matzehuels/ihmgraph/pkg/cif"
	"github.com/matzehuels/ihmgraph/pkg/ihm"
)

func handleRepresentation(s *Session, r cif.Record) error {
	id, err := key("_ihm_model_representation", r, "id")
	if err != nil {
		return err
	}
	rep := s.Representations.Resolve(id, newOf[ihm.Representation]())
	setField(&rep.Name, r, "name")
	setField(&rep.Details, r, "details")
	return nil
}

var segmentFields = fieldMap[ihm.Segment]{
	"model_object_primitive": func(x *ihm.Segment) *cif.Value { return &x.Primitive },
	"model_granularity":      func(x *ihm.Segment) *cif.Value { return &x.Granularity },
	"model_mode":             func(x *ihm.Segment) *cif.Value { return &x.Rigid },
	"model_object_count":     func(x *ihm.Segment) *cif.Value { return &x.Count },
	"description":            func(x *ihm.Segment) *cif.Value { return &x.Description },
}

func handleSegment(s *Session, r cif.Record) error {
	const category = "_ihm_model_representation_details"
	id, err := key(category, r, "id")
	if err != nil {
		return err
	}
	seg := s.Segments.Resolve(id, newOf[ihm.Segment]())
	copyFields(seg, r, segmentFields)
	err = s.element(category, r, "entity_id", "entity_asym_id", "seq_id_begin", "seq_id_end",
		func(el ihm.AssemblyElement) { seg.Element = el })
	if err != nil {
		return err
	}
	if sm := Ref(s.StartingModels, r.Value("starting_model_id"), newOf[ihm.StartingModel]()); sm != nil {
		seg.StartingModel = sm
	}
	if rep := Ref(s.Representations, r.Value("representation_id"), newOf[ihm.Representation]()); rep != nil {
		rep.Segments = ihm.AppendOnce(rep.Segments, seg)
	}
	return nil
}

var startingModelFields = fieldMap[ihm.StartingModel]{
	"starting_model_source":          func(x *ihm.StartingModel) *cif.Value { return &x.Source },
	"starting_model_auth_asym_id":    func(x *ihm.StartingModel) *cif.Value { return &x.AuthAsym },
	"starting_model_sequence_offset": func(x *ihm.StartingModel) *cif.Value { return &x.Offset },
	"description":                    func(x *ihm.StartingModel) *cif.Value { return &x.Details },
}

func handleStartingModel(s *Session, r cif.Record) error {
	const category = "_ihm_starting_model_details"
	id, err := key(category, r, "starting_model_id")
	if err != nil {
		return err
	}
	sm := s.StartingModels.Resolve(id, newOf[ihm.StartingModel]())
	copyFields(sm, r, startingModelFields)
	err = s.element(category, r, "", "asym_id", "seq_id_begin", "seq_id_end",
		func(el ihm.AssemblyElement) { sm.Asym = el })
	if err != nil {
		return err
	}
	if d := Ref(s.Datasets, r.Value("dataset_list_id"), newOf[ihm.Dataset]()); d != nil {
		sm.Dataset = d
	}
	return nil
}

var templateFields = fieldMap[ihm.Template]{
	"template_auth_asym_id":                  func(x *ihm.Template) *cif.Value { return &x.AuthAsym },
	"starting_model_seq_id_begin":            func(x *ihm.Template) *cif.Value { return &x.SeqBegin },
	"starting_model_seq_id_end":              func(x *ihm.Template) *cif.Value { return &x.SeqEnd },
	"template_seq_id_begin":                  func(x *ihm.Template) *cif.Value { return &x.TemplateBegin },
	"template_seq_id_end":                    func(x *ihm.Template) *cif.Value { return &x.TemplateEnd },
	"template_sequence_identity":             func(x *ihm.Template) *cif.Value { return &x.SequenceIdentity },
	"template_sequence_identity_denominator": func(x *ihm.Template) *cif.Value { return &x.SequenceIdentityDenominator },
}

func handleTemplate(s *Session, r cif.Record) error {
	const category = "_ihm_starting_comparative_models"
	id, err := key(category, r, "id")
	if err != nil {
		return err
	}
	smID, err := key(category, r, "starting_model_id")
	if err != nil {
		return err
	}
	t := s.Templates.Resolve(id, newOf[ihm.Template]())
	copyFields(t, r, templateFields)
	if d := Ref(s.Datasets, r.Value("template_dataset_list_id"), newOf[ihm.Dataset]()); d != nil {
		t.Dataset = d
	}
	if f := s.location(r.Value("alignment_file_id")); f != nil {
		t.AlignmentFile = f
	}
	sm := s.StartingModels.Resolve(smID, newOf[ihm.StartingModel]())
	sm.Templates = ihm.AppendOnce(sm.Templates, t)
	return nil
}

func handleProtocol(s *Session, r cif.Record) error {
	id, err := key("_ihm_modeling_protocol", r, "id")
	if err != nil {
		return err
	}
	p := s.Protocols.Resolve(id, newOf[ihm.Protocol]())
	setField(&p.Name, r, "protocol_name")
	return nil
}

var stepFields = fieldMap[ihm.Step]{
	"step_name":        func(x *ihm.Step) *cif.Value { return &x.Name },
	"step_method":      func(x *ihm.Step) *cif.Value { return &x.Method },
	"num_models_begin": func(x *ihm.Step) *cif.Value { return &x.NumModelsBegin },
	"num_models_end":   func(x *ihm.Step) *cif.Value { return &x.NumModelsEnd },
	"multi_scale_flag": func(x *ihm.Step) *cif.Value { return &x.MultiScale },
	"multi_state_flag": func(x *ihm.Step) *cif.Value { return &x.MultiState },
	"ordered_flag":     func(x *ihm.Step) *cif.Value { return &x.Ordered },
	"description":      func(x *ihm.Step) *cif.Value { return &x.Description },
}

func handleProtocolStep(s *Session, r cif.Record) error {
	const category = "_ihm_modeling_protocol_details"
	id, err := key(category, r, "id")
	if err != nil {
		return err
	}
	pid, err := key(category, r, "protocol_id")
	if err != nil {
		return err
	}
	st := s.Steps.Resolve(id, newOf[ihm.Step]())
	copyFields(st, r, stepFields)
	if a := Ref(s.Assemblies, r.Value("struct_assembly_id"), newOf[ihm.Assembly]()); a != nil {
		st.Assembly = a
	}
	if g := Ref(s.DatasetGroups, r.Value("dataset_group_id"), newOf[ihm.DatasetGroup]()); g != nil {
		st.DatasetGroup = g
	}
	if sw := Ref(s.Software, r.Value("software_id"), newOf[ihm.Software]()); sw != nil {
		st.Software = sw
	}
	if f := s.location(r.Value("script_file_id")); f != nil {
		st.Script = f
	}
	p := s.Protocols.Resolve(pid, newOf[ihm.Protocol]())
	p.Steps = ihm.AppendOnce(p.Steps, st)
	return nil
}

var analysisStepFields = fieldMap[ihm.AnalysisStep]{
	"type":             func(x *ihm.AnalysisStep) *cif.Value { return &x.Type },
	"feature":          func(x *ihm.AnalysisStep) *cif.Value { return &x.Feature },
	"num_models_begin": func(x *ihm.AnalysisStep) *cif.Value { return &x.NumModelsBegin },
	"num_models_end":   func(x *ihm.AnalysisStep) *cif.Value { return &x.NumModelsEnd },
	"details":          func(x *ihm.AnalysisStep) *cif.Value { return &x.Details },
}

// handlePostProcess adds one analysis step. Analysis ids are only unique
// within their protocol.
func handlePostProcess(s *Session, r cif.Record) error {
	const category = "_ihm_modeling_post_process"
	id, err := key(category, r, "id")
	if err != nil {
		return err
	}
	pid, err := key(category, r, "protocol_id")
	if err != nil {
		return err
	}
	aid, err := key(category, r, "analysis_id")
	if err != nil {
		return err
	}
	st := s.AnalysisSteps.Resolve(id, newOf[ihm.AnalysisStep]())
	copyFields(st, r, analysisStepFields)
	if a := Ref(s.Assemblies, r.Value("struct_assembly_id"), newOf[ihm.Assembly]()); a != nil {
		st.Assembly = a
	}
	if g := Ref(s.DatasetGroups, r.Value("dataset_group_id"), newOf[ihm.DatasetGroup]()); g != nil {
		st.DatasetGroup = g
	}
	if sw := Ref(s.Software, r.Value("software_id"), newOf[ihm.Software]()); sw != nil {
		st.Software = sw
	}

	p := s.Protocols.Resolve(pid, newOf[ihm.Protocol]())
	an := s.Analyses.Resolve(pid+"/"+aid, newOf[ihm.Analysis]())
	an.SetID(aid)
	an.Steps = ihm.AppendOnce(an.Steps, st)
	p.Analyses = ihm.AppendOnce(p.Analyses, an)
	return nil
}

// restraintBase fills the dataset and assembly shared by all restraints.
func (s *Session) restraintBase(b *ihm.RestraintBase, r cif.Record) {
	if d := Ref(s.Datasets, r.Value("dataset_list_id"), newOf[ihm.Dataset]()); d != nil {
		b.Dataset = d
	}
	if a := Ref(s.Assemblies, r.Value("struct_assembly_id"), newOf[ihm.Assembly]()); a != nil {
		b.Assembly = a
	}
}

var em3dFields = fieldMap[ihm.EM3DRestraint]{
	"fitting_method":      func(x *ihm.EM3DRestraint) *cif.Value { return &x.FittingMethod },
	"number_of_gaussians": func(x *ihm.EM3DRestraint) *cif.Value { return &x.NumberOfGaussians },
	"details":             func(x *ihm.EM3DRestraint) *cif.Value { return &x.Details },
}

// handleEM3DRestraint reads one fit of a 3DEM map. A map fitted against
// several models has one row per model; all rows of a dataset describe the
// same restraint.
func handleEM3DRestraint(s *Session, r cif.Record) error {
	did, err := key("_ihm_3dem_restraint", r, "dataset_list_id")
	if err != nil {
		return err
	}
	em := s.EM3D.Resolve(did, newOf[ihm.EM3DRestraint]())
	s.restraintBase(&em.RestraintBase, r)
	copyFields(em, r, em3dFields)
	if c := Ref(s.Citations, r.Value("fitting_method_citation_id"), newOf[ihm.Citation]()); c != nil {
		em.FittingMethodCitation = c
	}
	return nil
}

var em2dFields = fieldMap[ihm.EM2DRestraint]{
	"number_raw_micrographs": func(x *ihm.EM2DRestraint) *cif.Value { return &x.NumRawMicrographs },
	"pixel_size_width":       func(x *ihm.EM2DRestraint) *cif.Value { return &x.PixelSizeWidth },
	"pixel_size_height":      func(x *ihm.EM2DRestraint) *cif.Value { return &x.PixelSizeHeight },
	"image_resolution":       func(x *ihm.EM2DRestraint) *cif.Value { return &x.ImageResolution },
	"image_segment_flag":     func(x *ihm.EM2DRestraint) *cif.Value { return &x.Segment },
	"number_of_projections":  func(x *ihm.EM2DRestraint) *cif.Value { return &x.NumProjections },
	"details":                func(x *ihm.EM2DRestraint) *cif.Value { return &x.Details },
}

func handleEM2DRestraint(s *Session, r cif.Record) error {
	id, err := key("_ihm_2dem_class_average_restraint", r, "id")
	if err != nil {
		return err
	}
	em := s.EM2D.Resolve(id, newOf[ihm.EM2DRestraint]())
	s.restraintBase(&em.RestraintBase, r)
	copyFields(em, r, em2dFields)
	return nil
}

var sasFields = fieldMap[ihm.SASRestraint]{
	"profile_segment_flag": func(x *ihm.SASRestraint) *cif.Value { return &x.SegmentedProfile },
	"fitting_atom_type":    func(x *ihm.SASRestraint) *cif.Value { return &x.FittingAtomType },
	"fitting_method":       func(x *ihm.SASRestraint) *cif.Value { return &x.FittingMethod },
	"fitting_state":        func(x *ihm.SASRestraint) *cif.Value { return &x.MultiState },
	"radius_of_gyration":   func(x *ihm.SASRestraint) *cif.Value { return &x.RadiusOfGyration },
	"chi_value":            func(x *ihm.SASRestraint) *cif.Value { return &x.ChiValue },
	"details":              func(x *ihm.SASRestraint) *cif.Value { return &x.Details },
}

func handleSASRestraint(s *Session, r cif.Record) error {
	did, err := key("_ihm_sas_restraint", r, "dataset_list_id")
	if err != nil {
		return err
	}
	sas := s.SAS.Resolve(did, newOf[ihm.SASRestraint]())
	s.restraintBase(&sas.RestraintBase, r)
	copyFields(sas, r, sasFields)
	return nil
}

func handleModel(s *Session, r cif.Record) error {
	id, err := key("_ihm_model_list", r, "model_id")
	if err != nil {
		return err
	}
	m := s.Models.Resolve(id, newOf[ihm.Model]())
	setField(&m.Name, r, "model_name")
	if a := Ref(s.Assemblies, r.Value("assembly_id"), newOf[ihm.Assembly]()); a != nil {
		m.Assembly = a
	}
	if p := Ref(s.Protocols, r.Value("protocol_id"), newOf[ihm.Protocol]()); p != nil {
		m.Protocol = p
	}
	if rep := Ref(s.Representations, r.Value("representation_id"), newOf[ihm.Representation]()); rep != nil {
		m.Representation = rep
	}
	return nil
}

func handleModelGroup(s *Session, r cif.Record) error {
	id, err := key("_ihm_model_group", r, "id")
	if err != nil {
		return err
	}
	g := s.ModelGroups.Resolve(id, newOf[ihm.ModelGroup]())
	setField(&g.Name, r, "name")
	setField(&g.Details, r, "details")
	return nil
}

func handleModelGroupLink(s *Session, r cif.Record) error {
	const category = "_ihm_model_group_link"
	gid, err := key(category, r, "group_id")
	if err != nil {
		return err
	}
	mid, err := key(category, r, "model_id")
	if err != nil {
		return err
	}
	g := s.ModelGroups.Resolve(gid, newOf[ihm.ModelGroup]())
	g.Models = ihm.AppendOnce(g.Models, s.Models.Resolve(mid, newOf[ihm.Model]()))
	return nil
}

var stateFields = fieldMap[ihm.State]{
	"state_name":          func(x *ihm.State) *cif.Value { return &x.Name },
	"state_type":          func(x *ihm.State) *cif.Value { return &x.Type },
	"experiment_type":     func(x *ihm.State) *cif.Value { return &x.ExperimentType },
	"population_fraction": func(x *ihm.State) *cif.Value { return &x.PopulationFraction },
	"details":             func(x *ihm.State) *cif.Value { return &x.Details },
}

func handleState(s *Session, r cif.Record) error {
	id, err := key("_ihm_multi_state_modeling", r, "state_id")
	if err != nil {
		return err
	}
	st := s.States.Resolve(id, newOf[ihm.State]())
	copyFields(st, r, stateFields)
	if sg := Ref(s.StateGroups, r.Value("state_group_id"), newOf[ihm.StateGroup]()); sg != nil {
		sg.States = ihm.AppendOnce(sg.States, st)
	}
	return nil
}

func handleStateModelGroupLink(s *Session, r cif.Record) error {
	const category = "_ihm_multi_state_model_group_link"
	sid, err := key(category, r, "state_id")
	if err != nil {
		return err
	}
	gid, err := key(category, r, "model_group_id")
	if err != nil {
		return err
	}
	st := s.States.Resolve(sid, newOf[ihm.State]())
	st.ModelGroups = ihm.AppendOnce(st.ModelGroups, s.ModelGroups.Resolve(gid, newOf[ihm.ModelGroup]()))
	return nil
}

var ensembleFields = fieldMap[ihm.Ensemble]{
	"ensemble_name":                 func(x *ihm.Ensemble) *cif.Value { return &x.Name },
	"ensemble_clustering_method":    func(x *ihm.Ensemble) *cif.Value { return &x.ClusteringMethod },
	"ensemble_clustering_feature":   func(x *ihm.Ensemble) *cif.Value { return &x.ClusteringFeature },
	"num_ensemble_models":           func(x *ihm.Ensemble) *cif.Value { return &x.NumModels },
	"num_ensemble_models_deposited": func(x *ihm.Ensemble) *cif.Value { return &x.NumDeposited },
	"ensemble_precision_value":      func(x *ihm.Ensemble) *cif.Value { return &x.Precision },
}

func handleEnsemble(s *Session, r cif.Record) error {
	id, err := key("_ihm_ensemble_info", r, "ensemble_id")
	if err != nil {
		return err
	}
	e := s.Ensembles.Resolve(id, newOf[ihm.Ensemble]())
	copyFields(e, r, ensembleFields)
	if g := Ref(s.ModelGroups, r.Value("model_group_id"), newOf[ihm.ModelGroup]()); g != nil {
		e.ModelGroup = g
	}
	if st := Ref(s.AnalysisSteps, r.Value("post_process_id"), newOf[ihm.AnalysisStep]()); st != nil {
		e.PostProcess = st
	}
	if f := s.location(r.Value("ensemble_file_id")); f != nil {
		e.File = f
	}
	return nil
}

func handleDensity(s *Session, r cif.Record) error {
	const category = "_ihm_localization_density_files"
	id, err := key(category, r, "id")
	if err != nil {
		return err
	}
	eid, err := key(category, r, "ensemble_id")
	if err != nil {
		return err
	}
	d := s.Densities.Resolve(id, newOf[ihm.LocalizationDensity]())
	err = s.element(category, r, "entity_id", "asym_id", "seq_id_begin", "seq_id_end",
		func(el ihm.AssemblyElement) { d.Element = el })
	if err != nil {
		return err
	}
	if f := s.location(r.Value("file_id")); f != nil {
		d.File = f
	}
	e := s.Ensembles.Resolve(eid, newOf[ihm.Ensemble]())
	e.Densities = ihm.AppendOnce(e.Densities, d)
	return nil
}
