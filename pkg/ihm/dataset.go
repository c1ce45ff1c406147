package ihm

import "github.com/matzehuels/ihmgraph/pkg/cif"

// Dataset data types.
const (
	DataCXMS               = "CX-MS data"
	DataMassSpec           = "Mass Spectrometry data"
	DataHDX                = "H/D exchange data"
	DataPDB                = "Experimental model"
	DataComparativeModel   = "Comparative model"
	DataIntegrativeModel   = "Integrative model"
	DataDeNovoModel        = "De Novo model"
	DataEMDensity          = "3DEM volume"
	DataEM2DClassAverage   = "2DEM class average"
	DataEMMicrographs      = "EM raw micrographs"
	DataSAS                = "SAS data"
	DataFRET               = "Single molecule FRET data"
	DataEnsembleFRET       = "Ensemble FRET data"
	DataYeastTwoHybrid     = "Yeast two-hybrid screening data"
	DataGeneticInteraction = "Quantitative measurements of genetic interactions"
	DataOther              = "Other"
)

// Dataset is a piece of external scientific data used in the modeling.
//
// Parents lists the datasets this one was derived from. The relation must be
// acyclic; [System.AllDatasets] reports a cycle as a [*GraphCycleError].
type Dataset struct {
	Ident
	DataType cif.Value
	Location Location
	Parents  []*Dataset
	Details  cif.Value
}

// NewDataset returns a dataset of the given type stored at loc.
func NewDataset(dataType string, loc Location) *Dataset {
	return &Dataset{DataType: cif.Str(dataType), Location: loc}
}

// AddParent records p as a parent unless it already is one.
func (d *Dataset) AddParent(p *Dataset) { d.Parents = AppendOnce(d.Parents, p) }

// DatasetGroup is an ordered set of datasets used together, for example by
// one protocol step.
type DatasetGroup struct {
	Ident
	Datasets    []*Dataset
	Name        cif.Value
	Application cif.Value
	Details     cif.Value
}

// Add appends d unless it is already in the group.
func (g *DatasetGroup) Add(d *Dataset) { g.Datasets = AppendOnce(g.Datasets, d) }
