package reader

import (
	"github.com/matzehuels/ihmgraph/pkg/cif"
	"github.com/matzehuels/ihmgraph/pkg/errors"
	"github.com/matzehuels/ihmgraph/pkg/ihm"
	"github.com/matzehuels/ihmgraph/pkg/ihm/flr"
)

func handleFLRInstrument(s *Session, r cif.Record) error {
	id, err := key("_flr_instrument", r, "id")
	if err != nil {
		return err
	}
	in := s.FLR().Instruments.Resolve(id, newOf[flr.Instrument]())
	setField(&in.Details, r, "details")
	return nil
}

func handleFLRExpSetting(s *Session, r cif.Record) error {
	id, err := key("_flr_inst_setting", r, "id")
	if err != nil {
		return err
	}
	set := s.FLR().ExpSettings.Resolve(id, newOf[flr.ExpSetting]())
	setField(&set.Details, r, "details")
	return nil
}

func handleFLRSampleCondition(s *Session, r cif.Record) error {
	id, err := key("_flr_sample_condition", r, "id")
	if err != nil {
		return err
	}
	c := s.FLR().SampleConditions.Resolve(id, newOf[flr.SampleCondition]())
	setField(&c.Details, r, "details")
	return nil
}

// handleFLREntityAssembly adds one entity to an entity assembly. A row that
// repeats an entity already listed with the same copy number is ignored.
func handleFLREntityAssembly(s *Session, r cif.Record) error {
	const category = "_flr_entity_assembly"
	id, err := key(category, r, "assembly_id")
	if err != nil {
		return err
	}
	eid, err := key(category, r, "entity_id")
	if err != nil {
		return err
	}
	n, _, err := intField(category, r, "num_copies")
	if err != nil {
		return err
	}
	a := s.FLR().EntityAssemblies.Resolve(id, newOf[flr.EntityAssembly]())
	e := s.Entities.Resolve(eid, newOf[ihm.Entity]())
	for _, en := range a.Entries {
		if en.Entity == e && en.NumCopies == n {
			return nil
		}
	}
	if err := a.AddEntity(e, n); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s", category)
	}
	return nil
}

var sampleFields = fieldMap[flr.Sample]{
	"num_of_probes":      func(x *flr.Sample) *cif.Value { return &x.NumOfProbes },
	"sample_description": func(x *flr.Sample) *cif.Value { return &x.Description },
	"sample_details":     func(x *flr.Sample) *cif.Value { return &x.Details },
	"solvent_phase":      func(x *flr.Sample) *cif.Value { return &x.SolventPhase },
}

func handleFLRSample(s *Session, r cif.Record) error {
	id, err := key("_flr_sample", r, "id")
	if err != nil {
		return err
	}
	f := s.FLR()
	sample := f.Samples.Resolve(id, newOf[flr.Sample]())
	copyFields(sample, r, sampleFields)
	if a := Ref(f.EntityAssemblies, r.Value("entity_assembly_id"), newOf[flr.EntityAssembly]()); a != nil {
		sample.EntityAssembly = a
	}
	if c := Ref(f.SampleConditions, r.Value("sample_condition_id"), newOf[flr.SampleCondition]()); c != nil {
		sample.Condition = c
	}
	return nil
}

func handleFLRExperiment(s *Session, r cif.Record) error {
	id, err := key("_flr_experiment", r, "id")
	if err != nil {
		return err
	}
	f := s.FLR()
	e := f.Experiments.Resolve(id, newOf[flr.Experiment]())
	e.Add(
		Ref(f.Instruments, r.Value("instrument_id"), newOf[flr.Instrument]()),
		Ref(f.ExpSettings, r.Value("inst_setting_id"), newOf[flr.ExpSetting]()),
		Ref(f.Samples, r.Value("sample_id"), newOf[flr.Sample]()),
		r.Value("details"),
	)
	return nil
}

var probeListFields = fieldMap[flr.ProbeList]{
	"chromophore_name":    func(x *flr.ProbeList) *cif.Value { return &x.ChromophoreName },
	"reactive_probe_flag": func(x *flr.ProbeList) *cif.Value { return &x.ReactiveProbeFlag },
	"reactive_probe_name": func(x *flr.ProbeList) *cif.Value { return &x.ReactiveProbeName },
	"probe_origin":        func(x *flr.ProbeList) *cif.Value { return &x.ProbeOrigin },
	"probe_link_type":     func(x *flr.ProbeList) *cif.Value { return &x.ProbeLinkType },
}

func handleFLRProbeList(s *Session, r cif.Record) error {
	id, err := key("_flr_probe_list", r, "probe_id")
	if err != nil {
		return err
	}
	p := s.FLR().Probes.Resolve(id, newOf[flr.Probe]())
	copyFields(&p.List, r, probeListFields)
	return nil
}

func handleFLRProbeDescriptor(s *Session, r cif.Record) error {
	id, err := key("_flr_probe_descriptor", r, "probe_id")
	if err != nil {
		return err
	}
	p := s.FLR().Probes.Resolve(id, newOf[flr.Probe]())
	if d := Ref(s.ChemDescriptors, r.Value("reactive_probe_chem_descriptor_id"), newOf[ihm.ChemDescriptor]()); d != nil {
		p.Descriptor.ReactiveProbe = d
	}
	if d := Ref(s.ChemDescriptors, r.Value("chromophore_chem_descriptor_id"), newOf[ihm.ChemDescriptor]()); d != nil {
		p.Descriptor.Chromophore = d
	}
	setField(&p.Descriptor.ChromophoreCenterAtom, r, "chromophore_center_atom")
	return nil
}

var positionFields = fieldMap[flr.PolyProbePosition]{
	"seq_id":    func(x *flr.PolyProbePosition) *cif.Value { return &x.SeqID },
	"comp_id":   func(x *flr.PolyProbePosition) *cif.Value { return &x.CompID },
	"atom_id":   func(x *flr.PolyProbePosition) *cif.Value { return &x.AtomID },
	"auth_name": func(x *flr.PolyProbePosition) *cif.Value { return &x.AuthName },
}

func handleFLRPosition(s *Session, r cif.Record) error {
	id, err := key("_flr_poly_probe_position", r, "id")
	if err != nil {
		return err
	}
	pos := s.FLR().Positions.Resolve(id, newOf[flr.PolyProbePosition]())
	copyFields(pos, r, positionFields)
	if e := Ref(s.Entities, r.Value("entity_id"), newOf[ihm.Entity]()); e != nil {
		pos.Entity = e
	}
	return nil
}

func handleFLRPositionMutated(s *Session, r cif.Record) error {
	id, err := key("_flr_poly_probe_position_mutated", r, "id")
	if err != nil {
		return err
	}
	pos := s.FLR().Positions.Resolve(id, newOf[flr.PolyProbePosition]())
	if d := Ref(s.ChemDescriptors, r.Value("chem_descriptor_id"), newOf[ihm.ChemDescriptor]()); d != nil {
		pos.Mutated = d
	}
	return nil
}

func handleFLRPositionModified(s *Session, r cif.Record) error {
	id, err := key("_flr_poly_probe_position_modified", r, "id")
	if err != nil {
		return err
	}
	pos := s.FLR().Positions.Resolve(id, newOf[flr.PolyProbePosition]())
	if d := Ref(s.ChemDescriptors, r.Value("chem_descriptor_id"), newOf[ihm.ChemDescriptor]()); d != nil {
		pos.Modified = d
	}
	return nil
}

func handleFLRSampleProbe(s *Session, r cif.Record) error {
	id, err := key("_flr_sample_probe_details", r, "sample_probe_id")
	if err != nil {
		return err
	}
	f := s.FLR()
	sp := f.SampleProbes.Resolve(id, newOf[flr.SampleProbeDetails]())
	setField(&sp.FluorophoreType, r, "fluorophore_type")
	setField(&sp.Description, r, "description")
	if x := Ref(f.Samples, r.Value("sample_id"), newOf[flr.Sample]()); x != nil {
		sp.Sample = x
	}
	if x := Ref(f.Probes, r.Value("probe_id"), newOf[flr.Probe]()); x != nil {
		sp.Probe = x
	}
	if x := Ref(f.Positions, r.Value("poly_probe_position_id"), newOf[flr.PolyProbePosition]()); x != nil {
		sp.Position = x
	}
	return nil
}

func handleFLRConjugate(s *Session, r cif.Record) error {
	id, err := key("_flr_poly_probe_conjugate", r, "id")
	if err != nil {
		return err
	}
	f := s.FLR()
	c := f.Conjugates.Resolve(id, newOf[flr.PolyProbeConjugate]())
	if x := Ref(f.SampleProbes, r.Value("sample_probe_id"), newOf[flr.SampleProbeDetails]()); x != nil {
		c.SampleProbe = x
	}
	if d := Ref(s.ChemDescriptors, r.Value("chem_descriptor_id"), newOf[ihm.ChemDescriptor]()); d != nil {
		c.ChemDescriptor = d
	}
	setField(&c.AmbiguousStoichiometry, r, "ambiguous_stoichiometry_flag")
	setField(&c.ProbeStoichiometry, r, "probe_stoichiometry")
	return nil
}

func handleFLRForsterRadius(s *Session, r cif.Record) error {
	id, err := key("_flr_fret_forster_radius", r, "id")
	if err != nil {
		return err
	}
	f := s.FLR()
	fr := f.ForsterRadii.Resolve(id, newOf[flr.FRETForsterRadius]())
	if p := Ref(f.Probes, r.Value("donor_probe_id"), newOf[flr.Probe]()); p != nil {
		fr.Donor = p
	}
	if p := Ref(f.Probes, r.Value("acceptor_probe_id"), newOf[flr.Probe]()); p != nil {
		fr.Acceptor = p
	}
	setField(&fr.ForsterRadius, r, "forster_radius")
	setField(&fr.ReducedForsterRadius, r, "reduced_forster_radius")
	return nil
}

var calibrationFields = fieldMap[flr.FRETCalibrationParameters]{
	"phi_acceptor": func(x *flr.FRETCalibrationParameters) *cif.Value { return &x.PhiAcceptor },
	"alpha":        func(x *flr.FRETCalibrationParameters) *cif.Value { return &x.Alpha },
	"alpha_sd":     func(x *flr.FRETCalibrationParameters) *cif.Value { return &x.AlphaSD },
	"gg_gr_ratio":  func(x *flr.FRETCalibrationParameters) *cif.Value { return &x.GGGRRatio },
	"beta":         func(x *flr.FRETCalibrationParameters) *cif.Value { return &x.Beta },
	"gamma":        func(x *flr.FRETCalibrationParameters) *cif.Value { return &x.Gamma },
	"delta":        func(x *flr.FRETCalibrationParameters) *cif.Value { return &x.Delta },
	"a_b":          func(x *flr.FRETCalibrationParameters) *cif.Value { return &x.AB },
}

func handleFLRCalibration(s *Session, r cif.Record) error {
	id, err := key("_flr_fret_calibration_parameters", r, "id")
	if err != nil {
		return err
	}
	copyFields(s.FLR().Calibrations.Resolve(id, newOf[flr.FRETCalibrationParameters]()), r, calibrationFields)
	return nil
}

func handleFLRPeakAssignment(s *Session, r cif.Record) error {
	id, err := key("_flr_peak_assignment", r, "id")
	if err != nil {
		return err
	}
	p := s.FLR().PeakAssignments.Resolve(id, newOf[flr.PeakAssignment]())
	setField(&p.MethodName, r, "method_name")
	setField(&p.Details, r, "details")
	return nil
}

func handleFLRAnalysis(s *Session, r cif.Record) error {
	id, err := key("_flr_fret_analysis", r, "id")
	if err != nil {
		return err
	}
	f := s.FLR()
	a := f.Analyses.Resolve(id, newOf[flr.FRETAnalysis]())
	setField(&a.MethodName, r, "method_name")
	setField(&a.ChiSquareReduced, r, "chi_square_reduced")
	if x := Ref(f.Experiments, r.Value("experiment_id"), newOf[flr.Experiment]()); x != nil {
		a.Experiment = x
	}
	if x := Ref(f.SampleProbes, r.Value("sample_probe_id_1"), newOf[flr.SampleProbeDetails]()); x != nil {
		a.SampleProbe1 = x
	}
	if x := Ref(f.SampleProbes, r.Value("sample_probe_id_2"), newOf[flr.SampleProbeDetails]()); x != nil {
		a.SampleProbe2 = x
	}
	if x := Ref(f.ForsterRadii, r.Value("forster_radius_id"), newOf[flr.FRETForsterRadius]()); x != nil {
		a.ForsterRadius = x
	}
	if x := Ref(f.Calibrations, r.Value("calibration_parameters_id"), newOf[flr.FRETCalibrationParameters]()); x != nil {
		a.CalibrationParameters = x
	}
	if x := Ref(s.Datasets, r.Value("dataset_list_id"), newOf[ihm.Dataset]()); x != nil {
		a.Dataset = x
	}
	if x := s.location(r.Value("external_file_id")); x != nil {
		a.ExternalFile = x
	}
	if x := Ref(s.Software, r.Value("software_id"), newOf[ihm.Software]()); x != nil {
		a.Software = x
	}
	return nil
}

var distanceRestraintFields = fieldMap[flr.FRETDistanceRestraint]{
	"distance":             func(x *flr.FRETDistanceRestraint) *cif.Value { return &x.Distance },
	"distance_error_plus":  func(x *flr.FRETDistanceRestraint) *cif.Value { return &x.DistanceErrorPlus },
	"distance_error_minus": func(x *flr.FRETDistanceRestraint) *cif.Value { return &x.DistanceErrorMinus },
	"distance_type":        func(x *flr.FRETDistanceRestraint) *cif.Value { return &x.DistanceType },
	"population_fraction":  func(x *flr.FRETDistanceRestraint) *cif.Value { return &x.PopulationFraction },
}

func handleFLRDistanceRestraint(s *Session, r cif.Record) error {
	const category = "_flr_fret_distance_restraint"
	id, err := key(category, r, "id")
	if err != nil {
		return err
	}
	gid, err := key(category, r, "group_id")
	if err != nil {
		return err
	}
	f := s.FLR()
	d := f.Restraints.Resolve(id, newOf[flr.FRETDistanceRestraint]())
	copyFields(d, r, distanceRestraintFields)
	if x := Ref(f.SampleProbes, r.Value("sample_probe_id_1"), newOf[flr.SampleProbeDetails]()); x != nil {
		d.SampleProbe1 = x
	}
	if x := Ref(f.SampleProbes, r.Value("sample_probe_id_2"), newOf[flr.SampleProbeDetails]()); x != nil {
		d.SampleProbe2 = x
	}
	if x := Ref(f.Analyses, r.Value("analysis_id"), newOf[flr.FRETAnalysis]()); x != nil {
		d.Analysis = x
	}
	if x := Ref(s.States, r.Value("state_id"), newOf[ihm.State]()); x != nil {
		d.State = x
	}
	if x := Ref(f.PeakAssignments, r.Value("peak_assignment_id"), newOf[flr.PeakAssignment]()); x != nil {
		d.PeakAssignment = x
	}
	f.RestraintGroups.Resolve(gid, newOf[flr.FRETDistanceRestraintGroup]()).Add(d)
	return nil
}

func handleFLRModelQuality(s *Session, r cif.Record) error {
	mid, err := key("_flr_fret_model_quality", r, "model_id")
	if err != nil {
		return err
	}
	q := s.FLR().ModelQualities.Resolve(mid, newOf[flr.FRETModelQuality]())
	q.Model = s.Models.Resolve(mid, newOf[ihm.Model]())
	copyFields(q, r, fieldMap[flr.FRETModelQuality]{
		"chi_square_reduced": func(x *flr.FRETModelQuality) *cif.Value { return &x.ChiSquareReduced },
		"method":             func(x *flr.FRETModelQuality) *cif.Value { return &x.Method },
		"details":            func(x *flr.FRETModelQuality) *cif.Value { return &x.Details },
	})
	if g := Ref(s.DatasetGroups, r.Value("dataset_group_id"), newOf[ihm.DatasetGroup]()); g != nil {
		q.DatasetGroup = g
	}
	return nil
}

func handleFLRModelDistance(s *Session, r cif.Record) error {
	id, err := key("_flr_fret_model_distance", r, "id")
	if err != nil {
		return err
	}
	f := s.FLR()
	md := f.ModelDistances.Resolve(id, newOf[flr.FRETModelDistance]())
	if x := Ref(f.Restraints, r.Value("restraint_id"), newOf[flr.FRETDistanceRestraint]()); x != nil {
		md.Restraint = x
	}
	if x := Ref(s.Models, r.Value("model_id"), newOf[ihm.Model]()); x != nil {
		md.Model = x
	}
	setField(&md.Distance, r, "distance")
	setField(&md.Deviation, r, "distance_deviation")
	return nil
}
