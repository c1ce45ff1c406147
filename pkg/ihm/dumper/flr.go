package dumper

import (
	"github.com/matzehuels/ihmgraph/pkg/cif"
	"github.com/matzehuels/ihmgraph/pkg/ihm/flr"
)

// flrIDs numbers the objects of all FLR extensions of a system.
type flrIDs struct {
	experiments      *ids[*flr.Experiment]
	instruments      *ids[*flr.Instrument]
	expSettings      *ids[*flr.ExpSetting]
	sampleConditions *ids[*flr.SampleCondition]
	entityAssemblies *ids[*flr.EntityAssembly]
	samples          *ids[*flr.Sample]
	probes           *ids[*flr.Probe]
	positions        *ids[*flr.PolyProbePosition]
	sampleProbes     *ids[*flr.SampleProbeDetails]
	conjugates       *ids[*flr.PolyProbeConjugate]
	forsterRadii     *ids[*flr.FRETForsterRadius]
	calibrations     *ids[*flr.FRETCalibrationParameters]
	peaks            *ids[*flr.PeakAssignment]
	analyses         *ids[*flr.FRETAnalysis]
	restraints       *ids[*flr.FRETDistanceRestraint]
	groups           *ids[*flr.FRETDistanceRestraintGroup]
	qualities        *ids[*flr.FRETModelQuality]
	distances        *ids[*flr.FRETModelDistance]
}

func newFLRIDs() *flrIDs {
	return &flrIDs{
		experiments:      newIDs[*flr.Experiment](nil),
		instruments:      newIDs[*flr.Instrument](nil),
		expSettings:      newIDs[*flr.ExpSetting](nil),
		sampleConditions: newIDs[*flr.SampleCondition](nil),
		entityAssemblies: newIDs[*flr.EntityAssembly](nil),
		samples:          newIDs[*flr.Sample](nil),
		probes:           newIDs[*flr.Probe](nil),
		positions:        newIDs[*flr.PolyProbePosition](nil),
		sampleProbes:     newIDs[*flr.SampleProbeDetails](nil),
		conjugates:       newIDs[*flr.PolyProbeConjugate](nil),
		forsterRadii:     newIDs[*flr.FRETForsterRadius](nil),
		calibrations:     newIDs[*flr.FRETCalibrationParameters](nil),
		peaks:            newIDs[*flr.PeakAssignment](nil),
		analyses:         newIDs[*flr.FRETAnalysis](nil),
		restraints:       newIDs[*flr.FRETDistanceRestraint](nil),
		groups:           newIDs[*flr.FRETDistanceRestraintGroup](nil),
		qualities:        newIDs[*flr.FRETModelQuality](nil),
		distances:        newIDs[*flr.FRETModelDistance](nil),
	}
}

func (f *flrIDs) add(d *dumper, x *flr.Data) {
	for _, g := range x.DistanceRestraintGroups {
		f.groups.add(g)
		for _, r := range g.Restraints {
			f.restraints.add(r)
		}
	}
	for a := range x.Analyses() {
		f.analyses.add(a)
	}
	for e := range x.Experiments() {
		f.experiments.add(e)
	}
	for v := range x.Instruments() {
		f.instruments.add(v)
	}
	for v := range x.ExpSettings() {
		f.expSettings.add(v)
	}
	for v := range x.Samples() {
		f.samples.add(v)
	}
	for v := range x.EntityAssemblies() {
		f.entityAssemblies.add(v)
		for _, en := range v.Entries {
			d.entities.add(en.Entity)
		}
	}
	for v := range x.SampleConditions() {
		f.sampleConditions.add(v)
	}
	for v := range x.SampleProbes() {
		f.sampleProbes.add(v)
	}
	for v := range x.Probes() {
		f.probes.add(v)
	}
	for v := range x.PolyProbePositions() {
		f.positions.add(v)
		d.entities.add(v.Entity)
	}
	for _, v := range x.PolyProbeConjugates {
		f.conjugates.add(v)
	}
	for v := range x.ForsterRadii() {
		f.forsterRadii.add(v)
	}
	for v := range x.CalibrationParameters() {
		f.calibrations.add(v)
	}
	for v := range x.PeakAssignments() {
		f.peaks.add(v)
	}
	for _, v := range x.ModelQualities {
		f.qualities.add(v)
	}
	for _, v := range x.ModelDistances {
		f.distances.add(v)
	}
}

func (d *dumper) dumpFLR() []*cif.Category {
	f := d.flr
	var out []*cif.Category

	simple := func(name string, n int, details func(i int) cif.Value) {
		c := category(name, "id", "details")
		for i := range n {
			c.AddRow(cif.Int(i+1), details(i))
		}
		out = append(out, c)
	}
	simple("_flr_instrument", len(f.instruments.list()), func(i int) cif.Value { return f.instruments.list()[i].Details })
	simple("_flr_inst_setting", len(f.expSettings.list()), func(i int) cif.Value { return f.expSettings.list()[i].Details })
	simple("_flr_sample_condition", len(f.sampleConditions.list()), func(i int) cif.Value {
		return f.sampleConditions.list()[i].Details
	})

	ea := category("_flr_entity_assembly", "ordinal_id", "assembly_id", "entity_id", "num_copies")
	for i, a := range f.entityAssemblies.list() {
		for _, en := range a.Entries {
			ea.AddRow(cif.Int(len(ea.Rows)+1), cif.Int(i+1), d.entities.ref(en.Entity), cif.Int(en.NumCopies))
		}
	}

	samples := category("_flr_sample", "id", "entity_assembly_id", "num_of_probes", "sample_condition_id",
		"sample_description", "sample_details", "solvent_phase")
	for i, s := range f.samples.list() {
		samples.AddRow(cif.Int(i+1), f.entityAssemblies.ref(s.EntityAssembly), s.NumOfProbes,
			f.sampleConditions.ref(s.Condition), s.Description, s.Details, s.SolventPhase)
	}

	exps := category("_flr_experiment", "ordinal_id", "id", "instrument_id", "inst_setting_id", "sample_id", "details")
	for i, e := range f.experiments.list() {
		for _, en := range e.Entries {
			exps.AddRow(cif.Int(len(exps.Rows)+1), cif.Int(i+1), f.instruments.ref(en.Instrument),
				f.expSettings.ref(en.ExpSetting), f.samples.ref(en.Sample), en.Details)
		}
	}
	out = append(out, ea, samples, exps)

	list := category("_flr_probe_list", "probe_id", "chromophore_name", "reactive_probe_flag",
		"reactive_probe_name", "probe_origin", "probe_link_type")
	desc := category("_flr_probe_descriptor", "probe_id", "reactive_probe_chem_descriptor_id",
		"chromophore_chem_descriptor_id", "chromophore_center_atom")
	for i, p := range f.probes.list() {
		id := cif.Int(i + 1)
		l := p.List
		list.AddRow(id, l.ChromophoreName, l.ReactiveProbeFlag, l.ReactiveProbeName, l.ProbeOrigin, l.ProbeLinkType)
		desc.AddRow(id, d.descriptors.ref(p.Descriptor.ReactiveProbe), d.descriptors.ref(p.Descriptor.Chromophore),
			p.Descriptor.ChromophoreCenterAtom)
	}
	out = append(out, list, desc)

	pos := category("_flr_poly_probe_position", "id", "entity_id", "seq_id", "comp_id", "atom_id",
		"mutation_flag", "modification_flag", "auth_name")
	mut := category("_flr_poly_probe_position_mutated", "id", "chem_descriptor_id")
	mod := category("_flr_poly_probe_position_modified", "id", "chem_descriptor_id")
	for i, p := range f.positions.list() {
		id := cif.Int(i + 1)
		pos.AddRow(id, d.entities.ref(p.Entity), p.SeqID, p.CompID, p.AtomID,
			cif.Bool(p.Mutated != nil), cif.Bool(p.Modified != nil), p.AuthName)
		if p.Mutated != nil {
			mut.AddRow(id, d.descriptors.ref(p.Mutated))
		}
		if p.Modified != nil {
			mod.AddRow(id, d.descriptors.ref(p.Modified))
		}
	}
	out = append(out, pos, mut, mod)

	sp := category("_flr_sample_probe_details", "sample_probe_id", "sample_id", "probe_id", "fluorophore_type",
		"description", "poly_probe_position_id")
	for i, x := range f.sampleProbes.list() {
		sp.AddRow(cif.Int(i+1), f.samples.ref(x.Sample), f.probes.ref(x.Probe), x.FluorophoreType,
			x.Description, f.positions.ref(x.Position))
	}
	conj := category("_flr_poly_probe_conjugate", "id", "sample_probe_id", "chem_descriptor_id",
		"ambiguous_stoichiometry_flag", "probe_stoichiometry")
	for i, c := range f.conjugates.list() {
		conj.AddRow(cif.Int(i+1), f.sampleProbes.ref(c.SampleProbe), d.descriptors.ref(c.ChemDescriptor),
			c.AmbiguousStoichiometry, c.ProbeStoichiometry)
	}
	out = append(out, sp, conj)

	fr := category("_flr_fret_forster_radius", "id", "donor_probe_id", "acceptor_probe_id", "forster_radius",
		"reduced_forster_radius")
	for i, r := range f.forsterRadii.list() {
		fr.AddRow(cif.Int(i+1), f.probes.ref(r.Donor), f.probes.ref(r.Acceptor), r.ForsterRadius, r.ReducedForsterRadius)
	}
	cal := category("_flr_fret_calibration_parameters", "id", "phi_acceptor", "alpha", "alpha_sd", "gg_gr_ratio",
		"beta", "gamma", "delta", "a_b")
	for i, c := range f.calibrations.list() {
		cal.AddRow(cif.Int(i+1), c.PhiAcceptor, c.Alpha, c.AlphaSD, c.GGGRRatio, c.Beta, c.Gamma, c.Delta, c.AB)
	}
	peaks := category("_flr_peak_assignment", "id", "method_name", "details")
	for i, p := range f.peaks.list() {
		peaks.AddRow(cif.Int(i+1), p.MethodName, p.Details)
	}
	out = append(out, fr, cal, peaks)

	an := category("_flr_fret_analysis", "id", "experiment_id", "sample_probe_id_1", "sample_probe_id_2",
		"forster_radius_id", "calibration_parameters_id", "method_name", "chi_square_reduced",
		"dataset_list_id", "external_file_id", "software_id")
	for i, a := range f.analyses.list() {
		an.AddRow(cif.Int(i+1), f.experiments.ref(a.Experiment), f.sampleProbes.ref(a.SampleProbe1),
			f.sampleProbes.ref(a.SampleProbe2), f.forsterRadii.ref(a.ForsterRadius),
			f.calibrations.ref(a.CalibrationParameters), a.MethodName, a.ChiSquareReduced,
			d.datasets.ref(a.Dataset), d.location(a.ExternalFile), d.software.ref(a.Software))
	}

	dr := category("_flr_fret_distance_restraint", "ordinal_id", "id", "group_id", "sample_probe_id_1",
		"sample_probe_id_2", "state_id", "analysis_id", "distance", "distance_error_plus",
		"distance_error_minus", "distance_type", "population_fraction", "peak_assignment_id")
	for i, g := range f.groups.list() {
		for _, r := range g.Restraints {
			dr.AddRow(cif.Int(len(dr.Rows)+1), f.restraints.ref(r), cif.Int(i+1), f.sampleProbes.ref(r.SampleProbe1),
				f.sampleProbes.ref(r.SampleProbe2), d.states.ref(r.State), f.analyses.ref(r.Analysis), r.Distance,
				r.DistanceErrorPlus, r.DistanceErrorMinus, r.DistanceType, r.PopulationFraction,
				f.peaks.ref(r.PeakAssignment))
		}
	}
	out = append(out, an, dr)

	mq := category("_flr_fret_model_quality", "model_id", "chi_square_reduced", "dataset_group_id", "method", "details")
	for _, q := range f.qualities.list() {
		if mid := d.models.ref(q.Model); mid.IsPresent() {
			mq.AddRow(mid, q.ChiSquareReduced, d.datasetGroups.ref(q.DatasetGroup), q.Method, q.Details)
		}
	}
	md := category("_flr_fret_model_distance", "id", "restraint_id", "model_id", "distance", "distance_deviation")
	for i, m := range f.distances.list() {
		md.AddRow(cif.Int(i+1), f.restraints.ref(m.Restraint), d.models.ref(m.Model), m.Distance, m.Deviation)
	}
	return append(out, mq, md)
}
