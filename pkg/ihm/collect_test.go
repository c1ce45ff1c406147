package ihm

import (
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/matzehuels/ihmgraph/pkg/cif"
)

func collect[T any](seq iter.Seq[T]) []T { return slices.Collect(seq) }

func TestUnique(t *testing.T) {
	x, y := &Model{}, &Model{}
	got := collect(Unique(slices.Values([]*Model{x, x, y, x})))
	if !slices.Equal(got, []*Model{x, y}) {
		t.Errorf("Unique = %v", got)
	}
}

func TestAllModelGroups(t *testing.T) {
	g1, g2 := &ModelGroup{}, &ModelGroup{}
	s := NewSystem("")
	s.StateGroups = []*StateGroup{{States: []*State{
		{ModelGroups: []*ModelGroup{g1, g2}},
		{ModelGroups: []*ModelGroup{g2, g2}},
	}}}
	got := collect(s.AllModelGroups())
	if !slices.Equal(got, []*ModelGroup{g1, g2, g2, g2}) {
		t.Errorf("AllModelGroups = %v", got)
	}
}

func TestAllModelsDedupPerGroup(t *testing.T) {
	m1, m2 := &Model{}, &Model{}
	g1 := &ModelGroup{Models: []*Model{m1, m2, m1}}
	g2 := &ModelGroup{Models: []*Model{m1, m1}}
	s := NewSystem("")
	s.StateGroups = []*StateGroup{{States: []*State{{ModelGroups: []*ModelGroup{g1, g2}}}}}

	perGroup := map[*ModelGroup][]*Model{}
	var flat []*Model
	for g, m := range s.AllModels() {
		perGroup[g] = append(perGroup[g], m)
		flat = append(flat, m)
	}
	if !slices.Equal(perGroup[g1], []*Model{m1, m2}) {
		t.Errorf("group 1 = %v, want [m1 m2]", perGroup[g1])
	}
	if !slices.Equal(perGroup[g2], []*Model{m1}) {
		t.Errorf("group 2 = %v, want [m1]", perGroup[g2])
	}
	if !slices.Equal(flat, []*Model{m1, m2, m1}) {
		t.Errorf("flat listing = %v, want [m1 m2 m1]", flat)
	}
}

func TestAllProtocolsDedup(t *testing.T) {
	p1, p2 := &Protocol{}, &Protocol{}
	models := []*Model{{}, {Protocol: p2}, {Protocol: p1}}
	s := NewSystem("")
	s.OrphanProtocols = []*Protocol{p1}
	s.StateGroups = []*StateGroup{{States: []*State{{ModelGroups: []*ModelGroup{{Models: models}}}}}}

	got := collect(s.AllProtocols())
	if !slices.Equal(got, []*Protocol{p1, p2}) {
		t.Errorf("AllProtocols = %v, want [p1 p2]", got)
	}
}

func TestMakeCompleteAssembly(t *testing.T) {
	e1 := NewEntity(mustLetters(t, "AC"))
	e2 := NewEntity(mustLetters(t, "DE"))
	e3 := NewEntity(mustLetters(t, "FG"))
	a1, a2 := NewAsymUnit(e1), NewAsymUnit(e2)
	s := NewSystem("")
	s.Entities = []*Entity{e1, e2, e3}
	s.AsymUnits = []*AsymUnit{a1, a2}

	s.MakeCompleteAssembly()
	want := []AssemblyElement{a1, a2, e3}
	if !slices.Equal(s.CompleteAssembly.Elements, want) {
		t.Fatalf("complete assembly = %v", s.CompleteAssembly.Elements)
	}
	s.MakeCompleteAssembly()
	if !slices.Equal(s.CompleteAssembly.Elements, want) {
		t.Errorf("second call changed the result: %v", s.CompleteAssembly.Elements)
	}
}

func TestMakeCompleteAssemblyKeepsEarlierResult(t *testing.T) {
	e1, e2 := NewEntity(mustLetters(t, "AC")), NewEntity(mustLetters(t, "DE"))
	a1 := NewAsymUnit(e1)
	s := NewSystem("")
	s.Entities = []*Entity{e1, e2}
	s.AsymUnits = []*AsymUnit{a1}

	s.MakeCompleteAssembly()
	first := s.CompleteAssembly.Elements
	want := []AssemblyElement{a1, e2}

	a2 := NewAsymUnit(e2)
	s.AsymUnits = append(s.AsymUnits, a2)
	s.MakeCompleteAssembly()

	if !slices.Equal(first, want) {
		t.Errorf("earlier elements changed to %v, want %v", first, want)
	}
	if got := s.CompleteAssembly.Elements; !slices.Equal(got, []AssemblyElement{a1, a2}) {
		t.Errorf("recomputed elements = %v", got)
	}
}

func TestAllAssembliesCompleteFirst(t *testing.T) {
	s := NewSystem("")
	orphan := &Assembly{}
	parent := &Assembly{}
	child := &Assembly{Parent: parent}
	s.OrphanAssemblies = []*Assembly{orphan}
	s.Restraints = []Restraint{&SASRestraint{RestraintBase: RestraintBase{Assembly: child}}}
	s.OrphanProtocols = []*Protocol{{Steps: []*Step{{Assembly: orphan}}}}

	got := collect(s.AllAssemblies())
	want := []*Assembly{s.CompleteAssembly, orphan, orphan, child, parent}
	if !slices.Equal(got, want) {
		t.Errorf("AllAssemblies = %v, want %v", got, want)
	}
}

func TestAllDatasetsAncestorExpansion(t *testing.T) {
	d1 := NewDataset(DataPDB, nil)
	d2 := NewDataset(DataComparativeModel, nil)
	d3 := NewDataset(DataIntegrativeModel, nil)
	d2.AddParent(d1)
	d3.AddParent(d2)
	s := NewSystem("")
	s.OrphanDatasets = []*Dataset{d3}

	var got []*Dataset
	for d, err := range s.AllDatasets() {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, d)
	}
	if !slices.Equal(got, []*Dataset{d1, d2, d3}) {
		t.Errorf("AllDatasets = %v, want [d1 d2 d3]", got)
	}
}

func TestAllDatasetsCycle(t *testing.T) {
	d1 := NewDataset(DataOther, nil)
	d2 := NewDataset(DataOther, nil)
	d1.SetID("1")
	d2.SetID("2")
	d1.AddParent(d2)
	d2.AddParent(d1)
	s := NewSystem("")
	s.OrphanDatasets = []*Dataset{d1}

	var err error
	n := 0
	for _, e := range s.AllDatasets() {
		n++
		if e != nil {
			err = e
		}
	}
	if !errors.Is(err, ErrGraphCycle) {
		t.Fatalf("err = %v, want ErrGraphCycle", err)
	}
	var ce *GraphCycleError
	if !errors.As(err, &ce) || ce.ID != "1" {
		t.Errorf("cycle error = %+v", ce)
	}
	if n != 1 {
		t.Errorf("got %d items, want only the error", n)
	}
}

func TestAllDatasetsSources(t *testing.T) {
	grouped := NewDataset(DataCXMS, nil)
	sm := NewDataset(DataPDB, nil)
	em := NewDataset(DataEMDensity, nil)
	tmpl := NewDataset(DataPDB, nil)

	s := NewSystem("")
	startModel := &StartingModel{Dataset: sm, Templates: []*Template{{Dataset: tmpl}}}
	s.OrphanStartingModels = []*StartingModel{startModel}
	s.OrphanDatasetGroups = []*DatasetGroup{{Datasets: []*Dataset{grouped}}}
	s.Restraints = []Restraint{&EM3DRestraint{RestraintBase: RestraintBase{Dataset: em}}}

	var got []*Dataset
	for d, err := range s.AllDatasets() {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, d)
	}
	if want := []*Dataset{grouped, sm, em, tmpl}; !slices.Equal(got, want) {
		t.Errorf("AllDatasets = %v, want %v", got, want)
	}
}

func TestAllCitationsAndSoftware(t *testing.T) {
	c1, c2 := &Citation{}, &Citation{}
	imp1 := NewSoftware("IMP", "", "", "", "2.8")
	imp2 := NewSoftware("IMP", "", "other description", "", "2.8")
	s := NewSystem("")
	s.Citations = []*Citation{c1}
	s.Software = []*Software{imp1}
	s.Restraints = []Restraint{
		&EM3DRestraint{FittingMethodCitation: c2},
		&EM3DRestraint{FittingMethodCitation: c1},
	}
	s.OrphanProtocols = []*Protocol{{Steps: []*Step{{Software: imp2}, {Software: imp1}}}}

	if got := collect(s.AllCitations()); !slices.Equal(got, []*Citation{c1, c2}) {
		t.Errorf("AllCitations = %v", got)
	}
	got := collect(s.AllSoftware())
	if !slices.Equal(got, []*Software{imp1, imp2}) {
		t.Errorf("AllSoftware = %v", got)
	}
	byKey := collect(UniqueFunc(s.AllSoftware(), (*Software).Key))
	if len(byKey) != 1 {
		t.Errorf("software by key = %d entries, want 1", len(byKey))
	}
}

func TestSoftwareValueEquality(t *testing.T) {
	a := NewSoftware("IMP", "modeling", "one", "", "2.8")
	b := NewSoftware("IMP", "modeling", "two", "", "2.8")
	c := NewSoftware("IMP", "modeling", "one", "", "2.9")
	if !a.Equal(b) || a.Key() != b.Key() {
		t.Error("same name and version should compare equal")
	}
	if a.Equal(c) {
		t.Error("different versions should not compare equal")
	}
	m := map[SoftwareKey]*Software{a.Key(): a}
	if m[b.Key()] != a {
		t.Error("equal keys should hash alike")
	}
	if a == b {
		t.Error("value equality must not alias the objects")
	}
}

func TestAllLocations(t *testing.T) {
	top := NewFileLocation("top.txt", ContentOther)
	dloc := &DatabaseLocation{DBName: cif.Str("PDB"), AccessCode: cif.Str("1abc")}
	ens := NewFileLocation("ens.dcd", ContentOutput)
	dens := NewFileLocation("dens.mrc", ContentOutput)
	aln := NewFileLocation("aln.ali", ContentInput)

	s := NewSystem("")
	s.Locations = []Location{top}
	s.OrphanDatasets = []*Dataset{NewDataset(DataPDB, dloc)}
	s.Ensembles = []*Ensemble{{File: ens, Densities: []*LocalizationDensity{{File: dens}}}}
	s.OrphanStartingModels = []*StartingModel{{Templates: []*Template{{AlignmentFile: aln}}}}

	var got []Location
	for l, err := range s.AllLocations() {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, l)
	}
	want := []Location{top, dloc, ens, dens, aln}
	if !slices.Equal(got, want) {
		t.Errorf("AllLocations = %v, want %v", got, want)
	}
}

func TestUpdateLocationsInRepositories(t *testing.T) {
	dir := t.TempDir()
	loc := NewFileLocation(dir+"/sub/simple.pdb", ContentInput)
	inRepo := NewFileLocation("x", ContentInput)
	inRepo.Repository = &Repository{}

	s := NewSystem("")
	s.Locations = []Location{loc, inRepo}
	outer := &Repository{DOI: cif.Str("1.2.3.4"), Root: dir}
	inner := &Repository{DOI: cif.Str("5.6.7.8"), Root: dir + "/sub", TopDirectory: "top"}
	unrelated := &Repository{Root: dir + "/other"}

	if err := s.UpdateLocationsInRepositories([]*Repository{outer, inner, unrelated}); err != nil {
		t.Fatal(err)
	}
	if loc.Repository != inner || loc.Path != "simple.pdb" {
		t.Errorf("location = %q in %+v, want simple.pdb in inner", loc.Path, loc.Repository)
	}
	if got := loc.FullPath(); got != "top/simple.pdb" {
		t.Errorf("FullPath() = %q", got)
	}
	if inRepo.Path != "x" {
		t.Error("locations already in a repository should not move")
	}
}

type fakeExtension struct {
	dataset *Dataset
	sw      *Software
	desc    *ChemDescriptor
}

func (f fakeExtension) Datasets() iter.Seq[*Dataset] { return slices.Values([]*Dataset{f.dataset}) }
func (f fakeExtension) DatasetGroups() iter.Seq[*DatasetGroup] {
	return slices.Values([]*DatasetGroup{nil})
}
func (f fakeExtension) Software() iter.Seq[*Software] { return slices.Values([]*Software{f.sw}) }
func (f fakeExtension) Locations() iter.Seq[Location] { return slices.Values([]Location{nil}) }
func (f fakeExtension) ChemDescriptors() iter.Seq[*ChemDescriptor] {
	return slices.Values([]*ChemDescriptor{f.desc, f.desc})
}

func TestExtensionsContribute(t *testing.T) {
	ext := fakeExtension{dataset: NewDataset(DataFRET, nil), sw: &Software{}, desc: &ChemDescriptor{}}
	s := NewSystem("")
	s.Extensions = []Extension{ext}

	n := 0
	for d, err := range s.AllDatasets() {
		if err != nil || d != ext.dataset {
			t.Errorf("dataset = %v, %v", d, err)
		}
		n++
	}
	if n != 1 {
		t.Errorf("got %d datasets, want 1", n)
	}
	if got := collect(s.AllSoftware()); len(got) != 1 || got[0] != ext.sw {
		t.Errorf("AllSoftware = %v", got)
	}
	if got := collect(s.AllChemDescriptors()); len(got) != 1 {
		t.Errorf("AllChemDescriptors = %v", got)
	}
	if got := collect(s.AllDatasetGroups()); len(got) != 0 {
		t.Errorf("nil groups should be skipped, got %v", got)
	}
}
