package graph

import (
	"errors"
	"fmt"

	"github.com/matzehuels/ihmgraph/pkg/cif"
)

// object says which category holds objects of a kind.
type object struct {
	category string
	kind     string
	id       string // attribute holding the object id
	label    string // attribute used as the node label
}

var objects = []object{
	{"_entity", "entity", "id", "pdbx_description"},
	{"_struct_asym", "asym", "id", "details"},
	{"_ihm_chemical_component_descriptor", "chem descriptor", "id", "auth_name"},
	{"_ihm_struct_assembly", "assembly", "id", "name"},
	{"_software", "software", "pdbx_ordinal", "name"},
	{"_citation", "citation", "id", "title"},
	{"_ihm_external_reference_info", "repository", "reference_id", "reference"},
	{"_ihm_external_files", "file", "id", "file_path"},
	{"_ihm_dataset_list", "dataset", "id", "data_type"},
	{"_ihm_dataset_group", "dataset group", "id", "name"},
	{"_ihm_model_representation", "representation", "id", "name"},
	{"_ihm_starting_model_details", "starting model", "starting_model_id", "starting_model_source"},
	{"_ihm_modeling_protocol", "protocol", "id", "protocol_name"},
	{"_ihm_3dem_restraint", "3dem restraint", "id", "fitting_method"},
	{"_ihm_2dem_class_average_restraint", "2dem restraint", "id", "details"},
	{"_ihm_sas_restraint", "sas restraint", "id", "fitting_method"},
	{"_ihm_model_list", "model", "model_id", "model_name"},
	{"_ihm_model_group", "model group", "id", "name"},
	{"_ihm_multi_state_modeling", "state", "state_id", "state_name"},
	{"_ihm_ensemble_info", "ensemble", "ensemble_id", "ensemble_name"},
	{"_flr_fret_analysis", "fret analysis", "id", "method_name"},
	{"_flr_fret_distance_restraint", "fret restraint", "id", "distance_type"},
}

// reference says which attributes of a category link two objects.
type reference struct {
	category string
	fromKind string
	from     string
	toKind   string
	to       string
	label    string
}

var references = []reference{
	{"_struct_asym", "asym", "id", "entity", "entity_id", "instance of"},
	{"_ihm_struct_assembly_details", "assembly", "assembly_id", "asym", "asym_id", "contains"},
	{"_ihm_struct_assembly_details", "assembly", "assembly_id", "assembly", "parent_assembly_id", "parent"},
	{"_ihm_external_files", "file", "id", "repository", "reference_id", "in"},
	{"_ihm_related_datasets", "dataset", "dataset_list_id_derived", "dataset", "dataset_list_id_primary", "derived from"},
	{"_ihm_dataset_external_reference", "dataset", "dataset_list_id", "file", "file_id", "stored in"},
	{"_ihm_dataset_group_link", "dataset group", "group_id", "dataset", "dataset_list_id", "contains"},
	{"_ihm_model_representation_details", "representation", "representation_id", "asym", "entity_asym_id", "represents"},
	{"_ihm_model_representation_details", "representation", "representation_id", "starting model", "starting_model_id", "starts from"},
	{"_ihm_starting_model_details", "starting model", "starting_model_id", "asym", "asym_id", "models"},
	{"_ihm_starting_model_details", "starting model", "starting_model_id", "dataset", "dataset_list_id", "from"},
	{"_ihm_starting_comparative_models", "starting model", "starting_model_id", "dataset", "template_dataset_list_id", "template"},
	{"_ihm_modeling_protocol_details", "protocol", "protocol_id", "assembly", "struct_assembly_id", "assembly"},
	{"_ihm_modeling_protocol_details", "protocol", "protocol_id", "dataset group", "dataset_group_id", "uses"},
	{"_ihm_modeling_protocol_details", "protocol", "protocol_id", "software", "software_id", "software"},
	{"_ihm_modeling_protocol_details", "protocol", "protocol_id", "file", "script_file_id", "script"},
	{"_ihm_modeling_post_process", "protocol", "protocol_id", "dataset group", "dataset_group_id", "validated with"},
	{"_ihm_3dem_restraint", "3dem restraint", "id", "dataset", "dataset_list_id", "dataset"},
	{"_ihm_3dem_restraint", "3dem restraint", "id", "assembly", "struct_assembly_id", "assembly"},
	{"_ihm_3dem_restraint", "3dem restraint", "id", "citation", "fitting_method_citation_id", "cites"},
	{"_ihm_2dem_class_average_restraint", "2dem restraint", "id", "dataset", "dataset_list_id", "dataset"},
	{"_ihm_2dem_class_average_restraint", "2dem restraint", "id", "assembly", "struct_assembly_id", "assembly"},
	{"_ihm_sas_restraint", "sas restraint", "id", "dataset", "dataset_list_id", "dataset"},
	{"_ihm_sas_restraint", "sas restraint", "id", "assembly", "struct_assembly_id", "assembly"},
	{"_ihm_model_list", "model", "model_id", "assembly", "assembly_id", "assembly"},
	{"_ihm_model_list", "model", "model_id", "protocol", "protocol_id", "protocol"},
	{"_ihm_model_list", "model", "model_id", "representation", "representation_id", "representation"},
	{"_ihm_model_group_link", "model group", "group_id", "model", "model_id", "contains"},
	{"_ihm_multi_state_model_group_link", "state", "state_id", "model group", "model_group_id", "contains"},
	{"_ihm_ensemble_info", "ensemble", "ensemble_id", "model group", "model_group_id", "of"},
	{"_ihm_ensemble_info", "ensemble", "ensemble_id", "file", "ensemble_file_id", "stored in"},
	{"_flr_fret_analysis", "fret analysis", "id", "dataset", "dataset_list_id", "dataset"},
	{"_flr_fret_analysis", "fret analysis", "id", "software", "software_id", "software"},
	{"_flr_fret_distance_restraint", "fret restraint", "id", "fret analysis", "analysis_id", "analysis"},
	{"_flr_fret_distance_restraint", "fret restraint", "id", "state", "state_id", "state"},
}

// NodeID returns the node ID of the object of kind with file id.
func NodeID(kind, id string) string { return kind + ":" + id }

// FromCategories builds the object graph of one dumped system. Categories
// the tables do not mention are ignored. References to objects that have no
// row of their own, such as entity-wide assembly rows with no asym, are
// skipped.
func FromCategories(cats []cif.Category) (*Graph, error) {
	byName := make(map[string]*cif.Category, len(cats))
	for i := range cats {
		byName[cats[i].Name] = &cats[i]
	}

	g := New()
	for _, o := range objects {
		c, ok := byName[o.category]
		if !ok {
			continue
		}
		col := columns(c)
		for _, row := range c.Rows {
			id := cell(row, col, o.id)
			if !id.IsPresent() {
				continue
			}
			n := Node{ID: NodeID(o.kind, id.Text()), Kind: o.kind, Label: cell(row, col, o.label).Text(), Meta: meta(c, row, o)}
			// Several rows may describe one object, e.g. a state in two state groups.
			if err := g.AddNode(n); err != nil && !errors.Is(err, ErrDuplicateNodeID) {
				return nil, fmt.Errorf("%s: %w", o.category, err)
			}
		}
	}

	for _, r := range references {
		c, ok := byName[r.category]
		if !ok {
			continue
		}
		col := columns(c)
		for _, row := range c.Rows {
			from, to := cell(row, col, r.from), cell(row, col, r.to)
			if !from.IsPresent() || !to.IsPresent() {
				continue
			}
			e := Edge{From: NodeID(r.fromKind, from.Text()), To: NodeID(r.toKind, to.Text()), Label: r.label}
			if e.From == e.To {
				continue
			}
			err := g.AddEdge(e)
			if errors.Is(err, ErrUnknownSourceNode) || errors.Is(err, ErrUnknownTargetNode) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("%s: %w", r.category, err)
			}
		}
	}
	return g, nil
}

// meta collects the present attributes of a row other than its id and label.
func meta(c *cif.Category, row []cif.Value, o object) map[string]string {
	m := make(map[string]string)
	for i, f := range c.Fields {
		if f == o.id || f == o.label || i >= len(row) || !row[i].IsPresent() {
			continue
		}
		m[f] = row[i].Text()
	}
	return m
}

func columns(c *cif.Category) map[string]int {
	m := make(map[string]int, len(c.Fields))
	for i, f := range c.Fields {
		m[f] = i
	}
	return m
}

func cell(row []cif.Value, col map[string]int, field string) cif.Value {
	i, ok := col[field]
	if !ok || i >= len(row) {
		return cif.Value{}
	}
	return row[i]
}
