package dumper

import (
	"github.com/matzehuels/ihmgraph/pkg/cif"
	"github.com/matzehuels/ihmgraph/pkg/ihm"
)

// location returns the file id of loc. Database locations cannot be
// referenced from these categories and yield the absent value.
func (d *dumper) location(loc ihm.Location) cif.Value {
	if f, ok := loc.(*ihm.FileLocation); ok {
		return d.files.ref(f)
	}
	return cif.Value{}
}

func (d *dumper) dumpRepresentations() []*cif.Category {
	reps := category("_ihm_model_representation", "id", "name", "details")
	segs := category("_ihm_model_representation_details", "id", "representation_id", "entity_id",
		"entity_asym_id", "seq_id_begin", "seq_id_end", "model_object_primitive", "starting_model_id",
		"model_mode", "model_granularity", "model_object_count", "description")
	for i, r := range d.representation.list() {
		id := cif.Int(i + 1)
		reps.AddRow(id, r.Name, r.Details)
		for _, seg := range r.Segments {
			sp := d.span(seg.Element)
			segs.AddRow(d.segments.ref(seg), id, sp.entity, sp.asym, sp.begin, sp.end, seg.Primitive,
				d.startingModels.ref(seg.StartingModel), seg.Rigid, seg.Granularity, seg.Count, seg.Description)
		}
	}
	return []*cif.Category{reps, segs}
}

func (d *dumper) dumpStartingModels() []*cif.Category {
	sms := category("_ihm_starting_model_details", "starting_model_id", "entity_id", "asym_id",
		"seq_id_begin", "seq_id_end", "starting_model_source", "starting_model_auth_asym_id",
		"starting_model_sequence_offset", "dataset_list_id", "description")
	tmpl := category("_ihm_starting_comparative_models", "id", "starting_model_id",
		"starting_model_auth_asym_id", "starting_model_seq_id_begin", "starting_model_seq_id_end",
		"template_auth_asym_id", "template_seq_id_begin", "template_seq_id_end",
		"template_sequence_identity", "template_sequence_identity_denominator",
		"template_dataset_list_id", "alignment_file_id")
	for i, sm := range d.startingModels.list() {
		id := cif.Int(i + 1)
		sp := d.span(sm.Asym)
		sms.AddRow(id, sp.entity, sp.asym, sp.begin, sp.end, sm.Source, sm.AuthAsym, sm.Offset,
			d.datasets.ref(sm.Dataset), sm.Details)
		for _, t := range sm.Templates {
			tmpl.AddRow(d.templates.ref(t), id, sm.AuthAsym, t.SeqBegin, t.SeqEnd, t.AuthAsym,
				t.TemplateBegin, t.TemplateEnd, t.SequenceIdentity, t.SequenceIdentityDenominator,
				d.datasets.ref(t.Dataset), d.location(t.AlignmentFile))
		}
	}
	return []*cif.Category{sms, tmpl}
}

func (d *dumper) dumpProtocols() []*cif.Category {
	prots := category("_ihm_modeling_protocol", "id", "protocol_name", "num_steps")
	steps := category("_ihm_modeling_protocol_details", "id", "protocol_id", "step_id", "struct_assembly_id",
		"dataset_group_id", "step_name", "step_method", "num_models_begin", "num_models_end",
		"multi_scale_flag", "multi_state_flag", "ordered_flag", "software_id", "script_file_id", "description")
	post := category("_ihm_modeling_post_process", "id", "protocol_id", "analysis_id", "step_id", "type",
		"feature", "num_models_begin", "num_models_end", "struct_assembly_id", "dataset_group_id",
		"software_id", "details")
	for i, p := range d.protocols.list() {
		id := cif.Int(i + 1)
		prots.AddRow(id, p.Name, cif.Int(len(p.Steps)))
		for n, st := range p.Steps {
			steps.AddRow(d.steps.ref(st), id, cif.Int(n+1), d.assemblies.ref(st.Assembly),
				d.datasetGroups.ref(st.DatasetGroup), st.Name, st.Method, st.NumModelsBegin, st.NumModelsEnd,
				st.MultiScale, st.MultiState, st.Ordered, d.software.ref(st.Software), d.location(st.Script),
				st.Description)
		}
		for a, an := range p.Analyses {
			for n, st := range an.Steps {
				post.AddRow(d.analysisSteps.ref(st), id, cif.Int(a+1), cif.Int(n+1), st.Type, st.Feature,
					st.NumModelsBegin, st.NumModelsEnd, d.assemblies.ref(st.Assembly),
					d.datasetGroups.ref(st.DatasetGroup), d.software.ref(st.Software), st.Details)
			}
		}
	}
	return []*cif.Category{prots, steps, post}
}

func (d *dumper) dumpRestraints() []*cif.Category {
	em3d := category("_ihm_3dem_restraint", "id", "dataset_list_id", "struct_assembly_id", "fitting_method",
		"number_of_gaussians", "fitting_method_citation_id", "details")
	for i, r := range d.em3d.list() {
		em3d.AddRow(cif.Int(i+1), d.datasets.ref(r.Dataset), d.assemblies.ref(r.Assembly), r.FittingMethod,
			r.NumberOfGaussians, d.citations.ref(r.FittingMethodCitation), r.Details)
	}

	em2d := category("_ihm_2dem_class_average_restraint", "id", "dataset_list_id", "struct_assembly_id",
		"number_raw_micrographs", "pixel_size_width", "pixel_size_height", "image_resolution",
		"image_segment_flag", "number_of_projections", "details")
	for i, r := range d.em2d.list() {
		em2d.AddRow(cif.Int(i+1), d.datasets.ref(r.Dataset), d.assemblies.ref(r.Assembly), r.NumRawMicrographs,
			r.PixelSizeWidth, r.PixelSizeHeight, r.ImageResolution, r.Segment, r.NumProjections, r.Details)
	}

	sas := category("_ihm_sas_restraint", "id", "dataset_list_id", "struct_assembly_id", "profile_segment_flag",
		"fitting_atom_type", "fitting_method", "fitting_state", "radius_of_gyration", "chi_value", "details")
	for i, r := range d.sas.list() {
		sas.AddRow(cif.Int(i+1), d.datasets.ref(r.Dataset), d.assemblies.ref(r.Assembly), r.SegmentedProfile,
			r.FittingAtomType, r.FittingMethod, r.MultiState, r.RadiusOfGyration, r.ChiValue, r.Details)
	}
	return []*cif.Category{em3d, em2d, sas}
}

func (d *dumper) dumpModels() []*cif.Category {
	models := category("_ihm_model_list", "model_id", "model_name", "assembly_id", "protocol_id",
		"representation_id")
	for i, m := range d.models.list() {
		models.AddRow(cif.Int(i+1), m.Name, d.assemblies.ref(m.Assembly), d.protocols.ref(m.Protocol),
			d.representation.ref(m.Representation))
	}

	groups := category("_ihm_model_group", "id", "name", "details")
	for i, g := range d.modelGroups.list() {
		groups.AddRow(cif.Int(i+1), g.Name, g.Details)
	}
	links := category("_ihm_model_group_link", "group_id", "model_id")
	for _, g := range d.modelGroups.list() {
		seen := make(map[*ihm.Model]bool)
		for _, m := range g.Models {
			if !seen[m] {
				seen[m] = true
				links.AddRow(d.modelGroups.ref(g), d.models.ref(m))
			}
		}
	}

	states := category("_ihm_multi_state_modeling", "state_id", "state_group_id", "population_fraction",
		"state_type", "state_name", "experiment_type", "details")
	stateLinks := category("_ihm_multi_state_model_group_link", "state_id", "model_group_id")
	linked := make(map[*ihm.State]bool)
	for i, sg := range d.stateGroups.list() {
		for _, st := range sg.States {
			sid := d.states.ref(st)
			states.AddRow(sid, cif.Int(i+1), st.PopulationFraction, st.Type, st.Name, st.ExperimentType, st.Details)
			if linked[st] {
				continue
			}
			linked[st] = true
			for _, g := range st.ModelGroups {
				stateLinks.AddRow(sid, d.modelGroups.ref(g))
			}
		}
	}
	return []*cif.Category{models, groups, links, states, stateLinks}
}

func (d *dumper) dumpEnsembles() []*cif.Category {
	ens := category("_ihm_ensemble_info", "ensemble_id", "ensemble_name", "post_process_id", "model_group_id",
		"ensemble_clustering_method", "ensemble_clustering_feature", "num_ensemble_models",
		"num_ensemble_models_deposited", "ensemble_precision_value", "ensemble_file_id")
	dens := category("_ihm_localization_density_files", "id", "file_id", "ensemble_id", "entity_id",
		"asym_id", "seq_id_begin", "seq_id_end")
	for i, e := range d.ensembles.list() {
		id := cif.Int(i + 1)
		ens.AddRow(id, e.Name, d.analysisSteps.ref(e.PostProcess), d.modelGroups.ref(e.ModelGroup),
			e.ClusteringMethod, e.ClusteringFeature, e.NumModels, e.NumDeposited, e.Precision, d.location(e.File))
		for _, den := range e.Densities {
			sp := d.span(den.Element)
			dens.AddRow(d.densities.ref(den), d.location(den.File), id, sp.entity, sp.asym, sp.begin, sp.end)
		}
	}
	return []*cif.Category{ens, dens}
}
