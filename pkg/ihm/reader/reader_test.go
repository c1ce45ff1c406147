package reader

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/matzehuels/ihmgraph/pkg/cif"
	"github.com/matzehuels/ihmgraph/pkg/errors"
	"github.com/matzehuels/ihmgraph/pkg/ihm"
	"github.com/matzehuels/ihmgraph/pkg/ihm/flr"
)

func readOne(t *testing.T, src string, opts Options) *ihm.System {
	t.Helper()
	systems, err := Read(context.Background(), strings.NewReader(src), opts)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(systems) != 1 {
		t.Fatalf("got %d systems, want 1", len(systems))
	}
	return systems[0]
}

func TestIDMapper(t *testing.T) {
	var added []*ihm.Software
	m := NewIDMapper(func(s *ihm.Software) { added = append(added, s) })

	calls := 0
	ctor := func() *ihm.Software { calls++; return &ihm.Software{} }
	a := m.Resolve("1", ctor)
	b := m.Resolve("1", ctor)
	c := m.Resolve("2", ctor)

	if a != b {
		t.Error("same id should resolve to the same object")
	}
	if a == c {
		t.Error("different ids should resolve to different objects")
	}
	if calls != 2 {
		t.Errorf("ctor called %d times, want 2", calls)
	}
	if a.ID() != "1" || c.ID() != "2" {
		t.Errorf("ids = %q, %q", a.ID(), c.ID())
	}
	if len(added) != 2 || added[0] != a || added[1] != c {
		t.Errorf("add callback saw %v", added)
	}
	if got, ok := m.Lookup("2"); !ok || got != c {
		t.Error("Lookup(2) failed")
	}
	if _, ok := m.Lookup("3"); ok {
		t.Error("Lookup should not create objects")
	}
	if m.Len() != 2 {
		t.Errorf("Len = %d", m.Len())
	}

	if got := Ref(m, cif.Unknown, ctor); got != nil {
		t.Error("unknown reference should resolve to nil")
	}
	if got := Ref(m, cif.Value{}, ctor); got != nil {
		t.Error("absent reference should resolve to nil")
	}
}

func TestCopyFields(t *testing.T) {
	sw := &ihm.Software{Name: cif.Str("old"), Version: cif.Str("1.0")}
	copyFields(sw, cif.Record{
		"version":     cif.Unknown,
		"type":        cif.Unknown,
		"location":    cif.Str(""),
		"description": cif.Str("new"),
	}, softwareFields)

	if sw.Name.Text() != "old" {
		t.Error("absent attribute must not overwrite")
	}
	if sw.Version.Text() != "1.0" {
		t.Errorf("Version = %v, unknown must not overwrite a value", sw.Version)
	}
	if !sw.Type.IsUnknown() {
		t.Errorf("Type = %v, want unknown", sw.Type)
	}
	if sw.Description.Text() != "new" {
		t.Errorf("Description = %v, want new", sw.Description)
	}
	if !sw.Location.IsPresent() || sw.Location.Text() != "" {
		t.Errorf("Location = %#v, want present empty string", sw.Location)
	}
	if sw.Classification.IsSet() {
		t.Error("Classification should stay absent")
	}
}

func TestReadRepeatedRecords(t *testing.T) {
	src := `data_x
loop_
_software.pdbx_ordinal
_software.name
_software.version
_software.location
_software.type
1 IMP 2.8 https://integrativemodeling.org ?
1 IMP-dev ? . program
`
	s := readOne(t, src, Options{})
	if len(s.Software) != 1 {
		t.Fatalf("software = %d, want 1", len(s.Software))
	}
	sw := s.Software[0]
	tests := []struct {
		field string
		got   cif.Value
		want  string
	}{
		{"name", sw.Name, "IMP-dev"},
		{"version", sw.Version, "2.8"},
		{"location", sw.Location, "https://integrativemodeling.org"},
		{"type", sw.Type, "program"},
	}
	for _, tt := range tests {
		if !tt.got.IsPresent() || tt.got.Text() != tt.want {
			t.Errorf("%s = %#v, want %q", tt.field, tt.got, tt.want)
		}
	}
}

func TestReadSeparateIDSpaces(t *testing.T) {
	src := `data_x
_software.pdbx_ordinal 1
_software.name IMP
_citation.id 1
_citation.title 'Nup84 complex'
_ihm_dataset_list.id 1
_ihm_dataset_list.data_type 'CX-MS data'
_ihm_dataset_group.id 1
_ihm_dataset_group.name all
_ihm_external_files.id 1
_ihm_external_files.file_path xl.csv
_ihm_dataset_related_db_reference.id 1
_ihm_dataset_related_db_reference.dataset_list_id 1
_ihm_dataset_related_db_reference.db_name PDB
`
	s := readOne(t, src, Options{})
	if len(s.Software) != 1 || len(s.Citations) != 1 {
		t.Fatalf("software = %d, citations = %d", len(s.Software), len(s.Citations))
	}
	if s.Software[0].Name.Text() != "IMP" || s.Citations[0].Title.Text() != "Nup84 complex" {
		t.Errorf("software %+v, citation %+v", s.Software[0], s.Citations[0])
	}
	if len(s.OrphanDatasets) != 1 || len(s.OrphanDatasetGroups) != 1 {
		t.Fatalf("datasets = %d, groups = %d", len(s.OrphanDatasets), len(s.OrphanDatasetGroups))
	}
	if s.OrphanDatasetGroups[0].Name.Text() != "all" || len(s.OrphanDatasetGroups[0].Datasets) != 0 {
		t.Errorf("group = %+v", s.OrphanDatasetGroups[0])
	}
	if len(s.Locations) != 2 {
		t.Fatalf("locations = %d, want a file and a database entry", len(s.Locations))
	}
	if _, ok := s.Locations[0].(*ihm.FileLocation); !ok {
		t.Errorf("location 1 is %T", s.Locations[0])
	}
	if db, ok := s.Locations[1].(*ihm.DatabaseLocation); !ok || s.OrphanDatasets[0].Location != ihm.Location(db) {
		t.Errorf("location 2 is %T", s.Locations[1])
	}
}

const structSoftware = `data_model
_struct.entry_id testsys
_struct.title 'Test title'
#
loop_
_software.pdbx_ordinal
_software.name
_software.classification
_software.version
_software.location
1 IMP 'integrative model building' 2.8 .
2 Chimera visualization ? ''
`

func TestReadStructAndSoftware(t *testing.T) {
	s := readOne(t, structSoftware, Options{})

	if s.ID != "testsys" {
		t.Errorf("ID = %q, want testsys", s.ID)
	}
	if s.Title.Text() != "Test title" {
		t.Errorf("Title = %v", s.Title)
	}
	if len(s.Software) != 2 {
		t.Fatalf("got %d software, want 2", len(s.Software))
	}
	imp, chimera := s.Software[0], s.Software[1]
	if imp.ID() != "1" || imp.Name.Text() != "IMP" || imp.Version.Text() != "2.8" {
		t.Errorf("software 1 = %+v", imp)
	}
	if imp.Location.IsSet() {
		t.Errorf("'.' should leave Location absent, got %#v", imp.Location)
	}
	if !chimera.Version.IsUnknown() {
		t.Errorf("'?' should give unknown, got %#v", chimera.Version)
	}
	if !chimera.Location.IsPresent() {
		t.Errorf("'' should give a present empty value")
	}
}

func TestReadIsIdempotent(t *testing.T) {
	src := `data_x
loop_
_ihm_dataset_group_link.group_id
_ihm_dataset_group_link.dataset_list_id
1 1
1 1
1 2
loop_
_ihm_dataset_list.id
_ihm_dataset_list.data_type
1 'Experimental model'
2 'Comparative model'
1 'Experimental model'
`
	s := readOne(t, src, Options{})
	if len(s.OrphanDatasetGroups) != 1 {
		t.Fatalf("groups = %d", len(s.OrphanDatasetGroups))
	}
	g := s.OrphanDatasetGroups[0]
	if len(g.Datasets) != 2 {
		t.Fatalf("group has %d datasets, want 2", len(g.Datasets))
	}
	if len(s.OrphanDatasets) != 2 {
		t.Errorf("datasets = %d, want 2", len(s.OrphanDatasets))
	}
	// The link rows come first in the file but must end up pointing at the
	// objects the dataset rows describe.
	if g.Datasets[0].DataType.Text() != ihm.DataPDB {
		t.Errorf("dataset 1 type = %v", g.Datasets[0].DataType)
	}
}

func TestReadPlaceholders(t *testing.T) {
	src := `data_x
_ihm_model_list.model_id 1
_ihm_model_list.model_name 'best'
_ihm_model_list.assembly_id 5
_ihm_model_list.protocol_id 9
`
	s := readOne(t, src, Options{})
	if len(s.OrphanAssemblies) != 1 || s.OrphanAssemblies[0].ID() != "5" {
		t.Fatalf("assemblies = %v", s.OrphanAssemblies)
	}
	if len(s.OrphanProtocols) != 1 || s.OrphanProtocols[0].ID() != "9" {
		t.Fatalf("protocols = %v", s.OrphanProtocols)
	}

	var models []*ihm.Model
	for _, m := range s.AllModels() {
		models = append(models, m)
	}
	if len(models) != 1 {
		t.Fatalf("models = %d, want 1", len(models))
	}
	if models[0].Assembly != s.OrphanAssemblies[0] || models[0].Protocol != s.OrphanProtocols[0] {
		t.Error("model should point at the placeholders")
	}
}

func TestReadFinishGroupsLooseObjects(t *testing.T) {
	src := `data_x
loop_
_ihm_model_list.model_id
_ihm_model_list.model_name
1 a
2 b
3 c
loop_
_ihm_model_group.id
_ihm_model_group.name
1 cluster1
loop_
_ihm_model_group_link.group_id
_ihm_model_group_link.model_id
1 1
`
	s := readOne(t, src, Options{})
	if len(s.StateGroups) != 1 {
		t.Fatalf("state groups = %d, want 1", len(s.StateGroups))
	}
	states := s.StateGroups[0].States
	if len(states) != 1 || len(states[0].ModelGroups) != 2 {
		t.Fatalf("states = %+v", states)
	}
	if got := states[0].ModelGroups[0].Name.Text(); got != "cluster1" {
		t.Errorf("first group = %q, want cluster1", got)
	}
	loose := states[0].ModelGroups[1]
	if len(loose.Models) != 2 || loose.Models[0].Name.Text() != "b" || loose.Models[1].Name.Text() != "c" {
		t.Errorf("loose group = %+v", loose.Models)
	}
}

func TestReadStatesKeepTheirGroups(t *testing.T) {
	src := `data_x
loop_
_ihm_multi_state_modeling.state_id
_ihm_multi_state_modeling.state_group_id
_ihm_multi_state_modeling.population_fraction
_ihm_multi_state_modeling.state_name
1 1 0.4 open
2 1 0.6 closed
loop_
_ihm_multi_state_model_group_link.state_id
_ihm_multi_state_model_group_link.model_group_id
1 1
2 2
`
	s := readOne(t, src, Options{})
	if len(s.StateGroups) != 1 {
		t.Fatalf("state groups = %d, want 1", len(s.StateGroups))
	}
	states := s.StateGroups[0].States
	if len(states) != 2 || states[1].Name.Text() != "closed" {
		t.Fatalf("states = %+v", states)
	}
	if n := len(states[0].ModelGroups); n != 1 {
		t.Errorf("state 1 has %d groups", n)
	}
}

const sequenceAndAssembly = `data_x
loop_
_entity.id
_entity.type
_entity.pdbx_description
1 polymer Nup84
loop_
_entity_poly_seq.entity_id
_entity_poly_seq.num
_entity_poly_seq.mon_id
1 1 MET
1 2 GLY
1 3 MSE
1 4 HEM
loop_
_struct_asym.id
_struct_asym.entity_id
A 1
B 1
loop_
_ihm_struct_assembly_details.assembly_id
_ihm_struct_assembly_details.parent_assembly_id
_ihm_struct_assembly_details.entity_id
_ihm_struct_assembly_details.asym_id
_ihm_struct_assembly_details.seq_id_begin
_ihm_struct_assembly_details.seq_id_end
1 1 1 A 1 4
1 1 1 B 1 4
2 1 1 A 2 3
3 . 1 . 1 2
`

func TestReadSequenceAndAssemblies(t *testing.T) {
	s := readOne(t, sequenceAndAssembly, Options{})

	if len(s.Entities) != 1 {
		t.Fatalf("entities = %d", len(s.Entities))
	}
	e := s.Entities[0]
	if got := e.SequenceKey(); got != "MET GLY MSE HEM" {
		t.Errorf("sequence = %q", got)
	}
	if e.Sequence[2].CodeCanonical != "M" || e.Sequence[3].Type != ihm.CompTypeOther {
		t.Errorf("components = %+v, %+v", e.Sequence[2], e.Sequence[3])
	}
	if len(s.AsymUnits) != 2 || s.AsymUnits[0].Entity != e {
		t.Fatalf("asyms = %v", s.AsymUnits)
	}
	a, b := s.AsymUnits[0], s.AsymUnits[1]

	if len(s.OrphanAssemblies) != 3 {
		t.Fatalf("assemblies = %d", len(s.OrphanAssemblies))
	}
	complete, sub, ent := s.OrphanAssemblies[0], s.OrphanAssemblies[1], s.OrphanAssemblies[2]

	// Full-length ranges collapse to the unit itself.
	want := []ihm.AssemblyElement{a, b}
	if len(complete.Elements) != 2 || complete.Elements[0] != want[0] || complete.Elements[1] != want[1] {
		t.Errorf("assembly 1 = %v", complete.Elements)
	}
	if complete.Parent != nil {
		t.Error("self parent should be dropped")
	}
	rng, _ := a.Range(2, 3)
	if len(sub.Elements) != 1 || sub.Elements[0] != ihm.AssemblyElement(rng) {
		t.Errorf("assembly 2 = %v", sub.Elements)
	}
	if sub.Parent != complete {
		t.Error("assembly 2 parent should be assembly 1")
	}
	er, _ := e.Range(1, 2)
	if len(ent.Elements) != 1 || ent.Elements[0] != ihm.AssemblyElement(er) {
		t.Errorf("assembly 3 = %v", ent.Elements)
	}

	s.MakeCompleteAssembly()
	if !s.CompleteAssembly.Equal(complete) {
		t.Error("read-back complete assembly should equal the derived one")
	}
}

func TestReadRangeErrors(t *testing.T) {
	tests := []struct {
		name string
		row  string
		code errors.Code
	}{
		{"past end", "1 A 2 9", errors.ErrCodeInvalidRange},
		{"reversed", "1 A 3 2", errors.ErrCodeInvalidRange},
		{"not a number", "1 A x 2", errors.ErrCodeInvalidFormat},
		{"half range", "1 A 1 .", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := `data_x
loop_
_entity_poly_seq.entity_id
_entity_poly_seq.num
_entity_poly_seq.mon_id
1 1 ALA
1 2 GLY
1 3 CYS
_struct_asym.id A
_struct_asym.entity_id 1
loop_
_ihm_struct_assembly_details.assembly_id
_ihm_struct_assembly_details.asym_id
_ihm_struct_assembly_details.seq_id_begin
_ihm_struct_assembly_details.seq_id_end
` + tt.row + "\n"
			_, err := Read(context.Background(), strings.NewReader(src), Options{})
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s (%v)", errors.GetCode(err), tt.code, err)
			}
			if !strings.Contains(err.Error(), "_ihm_struct_assembly_details") {
				t.Errorf("error should name the category: %v", err)
			}
			var re *ihm.RangeError
			if tt.code == errors.ErrCodeInvalidRange && !stderrors.As(err, &re) {
				t.Errorf("expected a *ihm.RangeError in %v", err)
			}
		})
	}
}

func TestReadSyntaxError(t *testing.T) {
	_, err := Read(context.Background(), strings.NewReader("data_x\n_struct.title 'open\n"), Options{})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
	var se *cif.SyntaxError
	if !stderrors.As(err, &se) {
		t.Errorf("expected a *cif.SyntaxError in %v", err)
	}
}

func TestReadDatasetsAndLocations(t *testing.T) {
	src := `data_x
loop_
_ihm_external_reference_info.reference_id
_ihm_external_reference_info.reference_provider
_ihm_external_reference_info.reference_type
_ihm_external_reference_info.reference
_ihm_external_reference_info.refers_to
_ihm_external_reference_info.associated_url
1 Zenodo DOI 10.5281/zenodo.1218053 Archive https://zenodo.org/record/1218053/files/x.zip
2 . 'Supplementary Files' . Other .
loop_
_ihm_external_files.id
_ihm_external_files.reference_id
_ihm_external_files.file_path
_ihm_external_files.content_type
1 1 scripts/run.py 'Modeling workflow or script'
2 2 local/data.csv 'Input data or restraints'
loop_
_ihm_dataset_list.id
_ihm_dataset_list.data_type
1 'Experimental model'
2 'Comparative model'
3 'CX-MS data'
_ihm_dataset_related_db_reference.id 1
_ihm_dataset_related_db_reference.dataset_list_id 1
_ihm_dataset_related_db_reference.db_name PDB
_ihm_dataset_related_db_reference.accession_code 3JRO
_ihm_dataset_related_db_reference.version ?
_ihm_dataset_external_reference.id 1
_ihm_dataset_external_reference.dataset_list_id 3
_ihm_dataset_external_reference.file_id 2
_ihm_related_datasets.dataset_list_id_derived 2
_ihm_related_datasets.dataset_list_id_primary 1
`
	s := readOne(t, src, Options{})
	ds := s.OrphanDatasets
	if len(ds) != 3 {
		t.Fatalf("datasets = %d", len(ds))
	}
	db, ok := ds[0].Location.(*ihm.DatabaseLocation)
	if !ok || db.AccessCode.Text() != "3JRO" || !db.Version.IsUnknown() {
		t.Errorf("dataset 1 location = %#v", ds[0].Location)
	}
	if len(ds[1].Parents) != 1 || ds[1].Parents[0] != ds[0] {
		t.Errorf("dataset 2 parents = %v", ds[1].Parents)
	}
	f, ok := ds[2].Location.(*ihm.FileLocation)
	if !ok || f.Path != "local/data.csv" || f.Repository != nil {
		t.Errorf("dataset 3 location = %#v", ds[2].Location)
	}
	if ds[0].Location == nil || ds[1].Location != nil {
		t.Error("dataset 2 has no location and must hold a nil interface")
	}

	var script *ihm.FileLocation
	for l, err := range s.AllLocations() {
		if err != nil {
			t.Fatal(err)
		}
		if fl, ok := l.(*ihm.FileLocation); ok && fl.Path == "scripts/run.py" {
			script = fl
		}
	}
	if script == nil || script.Repository == nil || script.Repository.DOI.Text() != "10.5281/zenodo.1218053" {
		t.Fatalf("script location = %#v", script)
	}
}

func TestReadProtocolAndRestraints(t *testing.T) {
	src := `data_x
_software.pdbx_ordinal 1
_software.name IMP
_ihm_struct_assembly.id 1
loop_
_ihm_modeling_protocol_details.id
_ihm_modeling_protocol_details.protocol_id
_ihm_modeling_protocol_details.step_id
_ihm_modeling_protocol_details.struct_assembly_id
_ihm_modeling_protocol_details.software_id
_ihm_modeling_protocol_details.step_method
1 1 1 1 1 'Monte Carlo'
2 1 2 1 1 'Replica exchange'
loop_
_ihm_modeling_post_process.id
_ihm_modeling_post_process.protocol_id
_ihm_modeling_post_process.analysis_id
_ihm_modeling_post_process.step_id
_ihm_modeling_post_process.type
1 1 1 1 filter
2 1 1 2 cluster
3 1 2 1 none
loop_
_ihm_3dem_restraint.id
_ihm_3dem_restraint.dataset_list_id
_ihm_3dem_restraint.model_id
_ihm_3dem_restraint.fitting_method
1 4 1 'Gaussian mixture models'
2 4 2 'Gaussian mixture models'
_ihm_sas_restraint.id 1
_ihm_sas_restraint.dataset_list_id 5
_ihm_sas_restraint.radius_of_gyration 21.07
`
	s := readOne(t, src, Options{})
	if len(s.OrphanProtocols) != 1 {
		t.Fatalf("protocols = %d", len(s.OrphanProtocols))
	}
	p := s.OrphanProtocols[0]
	if len(p.Steps) != 2 || p.Steps[1].Method.Text() != "Replica exchange" {
		t.Errorf("steps = %+v", p.Steps)
	}
	if p.Steps[0].Software != s.Software[0] || p.Steps[0].Assembly != s.OrphanAssemblies[0] {
		t.Error("step references not resolved")
	}
	if len(p.Analyses) != 2 || len(p.Analyses[0].Steps) != 2 || len(p.Analyses[1].Steps) != 1 {
		t.Errorf("analyses = %+v", p.Analyses)
	}
	if len(s.Restraints) != 2 {
		t.Fatalf("restraints = %d, want 2", len(s.Restraints))
	}
	em, ok := s.Restraints[0].(*ihm.EM3DRestraint)
	if !ok || em.Dataset == nil || em.Dataset.ID() != "4" {
		t.Errorf("restraint 1 = %#v", s.Restraints[0])
	}
	sas, ok := s.Restraints[1].(*ihm.SASRestraint)
	if !ok || sas.RadiusOfGyration.Text() != "21.07" {
		t.Errorf("restraint 2 = %#v", s.Restraints[1])
	}
}

func TestReadCustomHandler(t *testing.T) {
	src := `data_x
_my_category.value 42
_other.value 1
_software.pdbx_ordinal 1
_software.name IMP
`
	var got []string
	h := NewHandler("_my_category", func(s *Session, r cif.Record) error {
		got = append(got, r.Text("value"))
		return nil
	})
	override := NewHandler("_software", func(s *Session, r cif.Record) error {
		got = append(got, "software "+r.Text("name"))
		return nil
	})
	s := readOne(t, src, Options{Handlers: []Handler{h, override}})

	if len(got) != 2 || got[0] != "42" || got[1] != "software IMP" {
		t.Errorf("handled %v, want file order", got)
	}
	if len(s.Software) != 0 {
		t.Error("overridden handler should not run")
	}
}

func TestReadDispatchesInFileOrder(t *testing.T) {
	src := `data_x
_my_note.text before
_software.pdbx_ordinal 1
_software.name IMP
loop_
_my_note.text
after
`
	var seen []int
	h := NewHandler("_my_note", func(s *Session, r cif.Record) error {
		seen = append(seen, len(s.System.Software))
		return nil
	})
	readOne(t, src, Options{Handlers: []Handler{h}})
	if len(seen) != 2 || seen[0] != 0 || seen[1] != 1 {
		t.Errorf("software seen by _my_note rows = %v, want [0 1]", seen)
	}
}

func TestReadRangesBeforeSequence(t *testing.T) {
	src := `data_x
loop_
_ihm_struct_assembly_details.assembly_id
_ihm_struct_assembly_details.asym_id
_ihm_struct_assembly_details.seq_id_begin
_ihm_struct_assembly_details.seq_id_end
1 A 1 3
1 A 2 3
_ihm_model_representation_details.id 1
_ihm_model_representation_details.representation_id 1
_ihm_model_representation_details.entity_asym_id A
_ihm_model_representation_details.seq_id_begin 1
_ihm_model_representation_details.seq_id_end 2
_struct_asym.id A
_struct_asym.entity_id 1
loop_
_entity_poly_seq.entity_id
_entity_poly_seq.num
_entity_poly_seq.mon_id
1 1 ALA
1 2 GLY
1 3 CYS
`
	s := readOne(t, src, Options{})
	a := s.AsymUnits[0]
	if a.Entity != s.Entities[0] {
		t.Fatal("asym should point at entity 1")
	}
	rng, _ := a.Range(2, 3)
	els := s.OrphanAssemblies[0].Elements
	if len(els) != 2 || els[0] != ihm.AssemblyElement(a) || els[1] != ihm.AssemblyElement(rng) {
		t.Errorf("assembly elements = %v", els)
	}
	seg, _ := a.Range(1, 2)
	reps := s.OrphanRepresentations
	if len(reps) != 1 || len(reps[0].Segments) != 1 {
		t.Fatalf("representations = %+v", reps)
	}
	if got := reps[0].Segments[0].Element; got != ihm.AssemblyElement(seg) {
		t.Errorf("segment element = %v", got)
	}
}

func TestReadLocalFileBeforeReference(t *testing.T) {
	src := `data_x
_ihm_external_files.id 1
_ihm_external_files.reference_id 2
_ihm_external_files.file_path local/data.csv
_ihm_external_reference_info.reference_id 2
_ihm_external_reference_info.reference_type 'Supplementary Files'
`
	s := readOne(t, src, Options{})
	if len(s.Locations) != 1 {
		t.Fatalf("locations = %d", len(s.Locations))
	}
	f := s.Locations[0].(*ihm.FileLocation)
	if f.Repository != nil {
		t.Errorf("local file should have no repository, got %+v", f.Repository)
	}
}

func TestReadMultipleBlocks(t *testing.T) {
	src := "data_a\n_struct.title A\ndata_b\n_struct.title B\n"
	systems, err := Read(context.Background(), strings.NewReader(src), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(systems) != 2 || systems[0].ID != "a" || systems[1].Title.Text() != "B" {
		t.Errorf("systems = %+v", systems)
	}
}

func TestReadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Read(ctx, strings.NewReader(structSoftware), Options{})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestReadFLR(t *testing.T) {
	src := `data_x
_ihm_chemical_component_descriptor.id 1
_ihm_chemical_component_descriptor.auth_name 'Alexa Fluor 488'
_ihm_dataset_list.id 1
_ihm_dataset_list.data_type 'Single molecule FRET data'
_flr_probe_descriptor.probe_id 1
_flr_probe_descriptor.chromophore_chem_descriptor_id 1
_flr_sample.id 1
_flr_sample.entity_assembly_id 1
_flr_entity_assembly.ordinal_id 1
_flr_entity_assembly.assembly_id 1
_flr_entity_assembly.entity_id 1
_flr_entity_assembly.num_copies 2
loop_
_flr_sample_probe_details.sample_probe_id
_flr_sample_probe_details.sample_id
_flr_sample_probe_details.probe_id
_flr_sample_probe_details.fluorophore_type
1 1 1 donor
2 1 1 acceptor
_flr_fret_analysis.id 1
_flr_fret_analysis.sample_probe_id_1 1
_flr_fret_analysis.sample_probe_id_2 2
_flr_fret_analysis.dataset_list_id 1
loop_
_flr_fret_distance_restraint.ordinal_id
_flr_fret_distance_restraint.id
_flr_fret_distance_restraint.group_id
_flr_fret_distance_restraint.sample_probe_id_1
_flr_fret_distance_restraint.sample_probe_id_2
_flr_fret_distance_restraint.analysis_id
_flr_fret_distance_restraint.distance
1 1 1 1 2 1 53.5
2 1 1 1 2 1 53.5
_flr_fret_model_distance.id 1
_flr_fret_model_distance.restraint_id 1
_flr_fret_model_distance.model_id 1
_flr_fret_model_distance.distance 52.0
`
	s := readOne(t, src, Options{})
	if len(s.Extensions) != 1 {
		t.Fatalf("extensions = %d", len(s.Extensions))
	}
	d, ok := s.Extensions[0].(*flr.Data)
	if !ok {
		t.Fatalf("extension is %T", s.Extensions[0])
	}
	if len(d.DistanceRestraintGroups) != 1 || len(d.DistanceRestraintGroups[0].Restraints) != 1 {
		t.Fatalf("groups = %+v", d.DistanceRestraintGroups)
	}
	r := d.DistanceRestraintGroups[0].Restraints[0]
	if r.SampleProbe1.Sample != r.SampleProbe2.Sample || r.SampleProbe1.Probe != r.SampleProbe2.Probe {
		t.Error("sample probes should share sample and probe")
	}
	ea := r.SampleProbe1.Sample.EntityAssembly
	if len(ea.Entries) != 1 || ea.Entries[0].NumCopies != 2 || ea.Entries[0].Entity != s.Entities[0] {
		t.Errorf("entity assembly = %+v", ea.Entries)
	}
	if r.Analysis.Dataset != s.OrphanDatasets[0] {
		t.Error("analysis dataset not resolved")
	}
	if len(d.ModelDistances) != 1 || d.ModelDistances[0].Restraint != r {
		t.Errorf("model distances = %+v", d.ModelDistances)
	}

	descs := 0
	for range s.AllChemDescriptors() {
		descs++
	}
	if descs != 1 {
		t.Errorf("chem descriptors = %d, want 1", descs)
	}
}
