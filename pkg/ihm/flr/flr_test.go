package flr

import (
	"errors"
	"slices"
	"testing"

	"github.com/matzehuels/ihmgraph/pkg/cif"
	"github.com/matzehuels/ihmgraph/pkg/ihm"
)

func TestEntityAssemblyAddEntity(t *testing.T) {
	e := ihm.NewEntity(nil)
	var a EntityAssembly
	if err := a.AddEntity(e, 2); err != nil {
		t.Fatal(err)
	}
	if err := a.AddEntity(e, -1); !errors.Is(err, ErrNegativeCopies) {
		t.Errorf("err = %v, want ErrNegativeCopies", err)
	}
	if len(a.Entries) != 1 || a.Entries[0].NumCopies != 2 {
		t.Errorf("Entries = %+v", a.Entries)
	}
}

func TestExperimentContains(t *testing.T) {
	inst, set, sample := &Instrument{}, &ExpSetting{}, &Sample{}
	var e Experiment
	e.Add(inst, set, sample, cif.Str("first"))
	e.Add(inst, set, sample, cif.Str("again"))
	if len(e.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(e.Entries))
	}
	if !e.Contains(inst, set, sample) || e.Contains(&Instrument{}, set, sample) {
		t.Error("Contains compares by identity")
	}
}

func TestModelDistanceDeviation(t *testing.T) {
	r := &FRETDistanceRestraint{Distance: cif.Str("52.5")}
	d := NewFRETModelDistance(r, &ihm.Model{}, 50)
	if got, _ := d.Deviation.AsFloat(); got != 2.5 {
		t.Errorf("Deviation = %v, want 2.5", d.Deviation)
	}

	d.Distance = cif.Float(52)
	d.CalculateDeviation()
	if got, _ := d.Deviation.AsFloat(); got != 2.5 {
		t.Error("CalculateDeviation should not overwrite a set deviation")
	}
	d.UpdateDeviation()
	if got, _ := d.Deviation.AsFloat(); got != 0.5 {
		t.Errorf("UpdateDeviation = %v, want 0.5", d.Deviation)
	}

	unknown := NewFRETModelDistance(&FRETDistanceRestraint{Distance: cif.Unknown}, nil, 1)
	if unknown.Deviation.IsSet() {
		t.Error("deviation against an unknown distance should stay unset")
	}
}

func fixture() (*Data, map[string]*ihm.ChemDescriptor) {
	desc := map[string]*ihm.ChemDescriptor{}
	for _, n := range []string{"reactive", "chromophore", "mutated", "conjugate"} {
		desc[n] = &ihm.ChemDescriptor{AuthName: cif.Str(n)}
	}
	probe := &Probe{Descriptor: ProbeDescriptor{ReactiveProbe: desc["reactive"], Chromophore: desc["chromophore"]}}
	pos := &PolyProbePosition{Mutated: desc["mutated"]}
	sample := &Sample{EntityAssembly: &EntityAssembly{}, Condition: &SampleCondition{}}
	donor := &SampleProbeDetails{Sample: sample, Probe: probe, Position: pos}
	acceptor := &SampleProbeDetails{Sample: sample, Probe: probe}
	exp := &Experiment{}
	exp.Add(&Instrument{}, &ExpSetting{}, sample, cif.Value{})
	dataset := ihm.NewDataset(ihm.DataFRET, nil)
	analysis := &FRETAnalysis{
		Experiment:    exp,
		SampleProbe1:  donor,
		SampleProbe2:  acceptor,
		ForsterRadius: &FRETForsterRadius{Donor: probe, Acceptor: probe},
		Dataset:       dataset,
		Software:      &ihm.Software{},
		ExternalFile:  ihm.NewFileLocation("fret.csv", ihm.ContentInput),
	}
	r1 := &FRETDistanceRestraint{SampleProbe1: donor, SampleProbe2: acceptor, Analysis: analysis}
	r2 := &FRETDistanceRestraint{SampleProbe1: acceptor, SampleProbe2: donor, Analysis: analysis}
	g := &FRETDistanceRestraintGroup{}
	g.Add(r1)
	g.Add(r2)
	g.Add(r1)
	d := &Data{
		DistanceRestraintGroups: []*FRETDistanceRestraintGroup{g},
		PolyProbeConjugates:     []*PolyProbeConjugate{{SampleProbe: donor, ChemDescriptor: desc["conjugate"]}},
		ModelQualities:          []*FRETModelQuality{{DatasetGroup: &ihm.DatasetGroup{}}},
	}
	return d, desc
}

func TestDataCollectors(t *testing.T) {
	d, desc := fixture()

	if n := len(slices.Collect(d.Restraints())); n != 2 {
		t.Errorf("Restraints = %d, want 2", n)
	}
	counts := map[string]int{
		"sample probes":      len(slices.Collect(d.SampleProbes())),
		"analyses":           len(slices.Collect(d.Analyses())),
		"experiments":        len(slices.Collect(d.Experiments())),
		"samples":            len(slices.Collect(d.Samples())),
		"instruments":        len(slices.Collect(d.Instruments())),
		"settings":           len(slices.Collect(d.ExpSettings())),
		"entity assemblies":  len(slices.Collect(d.EntityAssemblies())),
		"conditions":         len(slices.Collect(d.SampleConditions())),
		"probes":             len(slices.Collect(d.Probes())),
		"positions":          len(slices.Collect(d.PolyProbePositions())),
		"forster radii":      len(slices.Collect(d.ForsterRadii())),
		"calibration params": len(slices.Collect(d.CalibrationParameters())),
	}
	want := map[string]int{
		"sample probes": 2, "analyses": 1, "experiments": 1, "samples": 1,
		"instruments": 1, "settings": 1, "entity assemblies": 1, "conditions": 1,
		"probes": 1, "positions": 1, "forster radii": 1, "calibration params": 0,
	}
	for k, w := range want {
		if counts[k] != w {
			t.Errorf("%s = %d, want %d", k, counts[k], w)
		}
	}

	got := slices.Collect(ihm.Unique(d.ChemDescriptors()))
	wantDesc := []*ihm.ChemDescriptor{desc["reactive"], desc["chromophore"], desc["mutated"], desc["conjugate"]}
	if !slices.Equal(got, wantDesc) {
		t.Errorf("ChemDescriptors = %v", got)
	}
}

func TestDataAsExtension(t *testing.T) {
	d, _ := fixture()
	s := ihm.NewSystem("")
	s.Extensions = []ihm.Extension{d}

	n := 0
	for ds, err := range s.AllDatasets() {
		if err != nil {
			t.Fatal(err)
		}
		if ds.DataType.Text() != ihm.DataFRET {
			t.Errorf("unexpected dataset %v", ds.DataType)
		}
		n++
	}
	if n != 1 {
		t.Errorf("datasets = %d, want 1", n)
	}
	if n := len(slices.Collect(s.AllSoftware())); n != 1 {
		t.Errorf("software = %d, want 1", n)
	}
	if n := len(slices.Collect(s.AllDatasetGroups())); n != 1 {
		t.Errorf("dataset groups = %d, want 1", n)
	}
	if n := len(slices.Collect(s.AllChemDescriptors())); n != 4 {
		t.Errorf("chem descriptors = %d, want 4", n)
	}
}
