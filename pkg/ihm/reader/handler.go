package reader

import (
	"github.com/matzehuels/ihmgraph/pkg/cif"
)

// Handler turns the rows of one category into objects.
type Handler interface {
	// Category returns the category name including the leading underscore,
	// in lower case.
	Category() string
	// Handle processes one row.
	Handle(s *Session, r cif.Record) error
}

type funcHandler struct {
	category string
	fn       func(*Session, cif.Record) error
}

func (h funcHandler) Category() string                      { return h.category }
func (h funcHandler) Handle(s *Session, r cif.Record) error { return h.fn(s, r) }

// NewHandler returns a Handler for category that calls fn for each row.
func NewHandler(category string, fn func(s *Session, r cif.Record) error) Handler {
	return funcHandler{category: category, fn: fn}
}

// DefaultHandlers returns the built-in handlers.
func DefaultHandlers() []Handler {
	return []Handler{
		NewHandler("_struct", handleStruct),
		NewHandler("_software", handleSoftware),
		NewHandler("_citation", handleCitation),
		NewHandler("_citation_author", handleCitationAuthor),
		NewHandler("_chem_comp", handleChemComp),
		NewHandler("_entity", handleEntity),
		NewHandler("_entity_poly_seq", handleEntityPolySeq),
		NewHandler("_ma_target_ref_db_details", handleTargetRef),
		NewHandler("_struct_asym", handleStructAsym),
		NewHandler("_ihm_chemical_component_descriptor", handleChemDescriptor),
		NewHandler("_ihm_struct_assembly", handleAssembly),
		NewHandler("_ihm_struct_assembly_details", handleAssemblyDetails),
		NewHandler("_ihm_external_reference_info", handleExternalReference),
		NewHandler("_ihm_external_files", handleExternalFile),
		NewHandler("_ihm_dataset_list", handleDataset),
		NewHandler("_ihm_dataset_group", handleDatasetGroup),
		NewHandler("_ihm_dataset_group_link", handleDatasetGroupLink),
		NewHandler("_ihm_dataset_related_db_reference", handleDatasetDBReference),
		NewHandler("_ihm_dataset_external_reference", handleDatasetFileReference),
		NewHandler("_ihm_related_datasets", handleRelatedDatasets),
		NewHandler("_ihm_starting_model_details", handleStartingModel),
		NewHandler("_ihm_starting_comparative_models", handleTemplate),
		NewHandler("_ihm_model_representation", handleRepresentation),
		NewHandler("_ihm_model_representation_details", handleSegment),
		NewHandler("_ihm_modeling_protocol", handleProtocol),
		NewHandler("_ihm_modeling_protocol_details", handleProtocolStep),
		NewHandler("_ihm_modeling_post_process", handlePostProcess),
		NewHandler("_ihm_3dem_restraint", handleEM3DRestraint),
		NewHandler("_ihm_2dem_class_average_restraint", handleEM2DRestraint),
		NewHandler("_ihm_sas_restraint", handleSASRestraint),
		NewHandler("_ihm_model_list", handleModel),
		NewHandler("_ihm_model_group", handleModelGroup),
		NewHandler("_ihm_model_group_link", handleModelGroupLink),
		NewHandler("_ihm_multi_state_modeling", handleState),
		NewHandler("_ihm_multi_state_model_group_link", handleStateModelGroupLink),
		NewHandler("_ihm_ensemble_info", handleEnsemble),
		NewHandler("_ihm_localization_density_files", handleDensity),

		NewHandler("_flr_instrument", handleFLRInstrument),
		NewHandler("_flr_inst_setting", handleFLRExpSetting),
		NewHandler("_flr_sample_condition", handleFLRSampleCondition),
		NewHandler("_flr_entity_assembly", handleFLREntityAssembly),
		NewHandler("_flr_sample", handleFLRSample),
		NewHandler("_flr_experiment", handleFLRExperiment),
		NewHandler("_flr_probe_list", handleFLRProbeList),
		NewHandler("_flr_probe_descriptor", handleFLRProbeDescriptor),
		NewHandler("_flr_poly_probe_position", handleFLRPosition),
		NewHandler("_flr_poly_probe_position_mutated", handleFLRPositionMutated),
		NewHandler("_flr_poly_probe_position_modified", handleFLRPositionModified),
		NewHandler("_flr_sample_probe_details", handleFLRSampleProbe),
		NewHandler("_flr_poly_probe_conjugate", handleFLRConjugate),
		NewHandler("_flr_fret_forster_radius", handleFLRForsterRadius),
		NewHandler("_flr_fret_calibration_parameters", handleFLRCalibration),
		NewHandler("_flr_peak_assignment", handleFLRPeakAssignment),
		NewHandler("_flr_fret_analysis", handleFLRAnalysis),
		NewHandler("_flr_fret_distance_restraint", handleFLRDistanceRestraint),
		NewHandler("_flr_fret_model_quality", handleFLRModelQuality),
		NewHandler("_flr_fret_model_distance", handleFLRModelDistance),
	}
}
