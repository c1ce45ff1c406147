package reader

import (
	"github.com/matzehuels/ihmgraph/pkg/cif"
	"github.com/matzehuels/ihmgraph/pkg/ihm"
	"github.com/matzehuels/ihmgraph/pkg/ihm/reference"
)

// key returns the identifier held in attribute name. Rows without it
// cannot be mapped to an object.
func key(category string, r cif.Record, name string) (string, error) {
	v := r.Value(name)
	if !v.IsPresent() {
		return "", missing(category, name)
	}
	return v.Text(), nil
}

func handleStruct(s *Session, r cif.Record) error {
	if v := r.Value("entry_id"); v.IsPresent() {
		s.System.ID = v.Text()
	}
	setField(&s.System.Title, r, "title")
	return nil
}

var softwareFields = fieldMap[ihm.Software]{
	"name":           func(x *ihm.Software) *cif.Value { return &x.Name },
	"classification": func(x *ihm.Software) *cif.Value { return &x.Classification },
	"description":    func(x *ihm.Software) *cif.Value { return &x.Description },
	"location":       func(x *ihm.Software) *cif.Value { return &x.Location },
	"type":           func(x *ihm.Software) *cif.Value { return &x.Type },
	"version":        func(x *ihm.Software) *cif.Value { return &x.Version },
}

func handleSoftware(s *Session, r cif.Record) error {
	id, err := key("_software", r, "pdbx_ordinal")
	if err != nil {
		return err
	}
	copyFields(s.Software.Resolve(id, newOf[ihm.Software]()), r, softwareFields)
	return nil
}

var citationFields = fieldMap[ihm.Citation]{
	"title":                   func(x *ihm.Citation) *cif.Value { return &x.Title },
	"journal_abbrev":          func(x *ihm.Citation) *cif.Value { return &x.Journal },
	"journal_volume":          func(x *ihm.Citation) *cif.Value { return &x.Volume },
	"page_first":              func(x *ihm.Citation) *cif.Value { return &x.PageFirst },
	"page_last":               func(x *ihm.Citation) *cif.Value { return &x.PageLast },
	"year":                    func(x *ihm.Citation) *cif.Value { return &x.Year },
	"pdbx_database_id_pubmed": func(x *ihm.Citation) *cif.Value { return &x.PMID },
	"pdbx_database_id_doi":    func(x *ihm.Citation) *cif.Value { return &x.DOI },
}

func handleCitation(s *Session, r cif.Record) error {
	id, err := key("_citation", r, "id")
	if err != nil {
		return err
	}
	copyFields(s.Citations.Resolve(id, newOf[ihm.Citation]()), r, citationFields)
	return nil
}

func handleCitationAuthor(s *Session, r cif.Record) error {
	id, err := key("_citation_author", r, "citation_id")
	if err != nil {
		return err
	}
	c := s.Citations.Resolve(id, newOf[ihm.Citation]())
	if name := r.Value("name"); name.IsPresent() {
		c.Authors = ihm.AppendOnce(c.Authors, name.Text())
	}
	return nil
}

func handleChemComp(s *Session, r cif.Record) error {
	id, err := key("_chem_comp", r, "id")
	if err != nil {
		return err
	}
	c := s.ChemComp(id)
	if v := r.Value("type"); v.IsPresent() {
		c.Type = v.Text()
	}
	setField(&c.Name, r, "name")
	setField(&c.Formula, r, "formula")
	return nil
}

var entityFields = fieldMap[ihm.Entity]{
	"type":                     func(x *ihm.Entity) *cif.Value { return &x.Type },
	"src_method":               func(x *ihm.Entity) *cif.Value { return &x.SrcMethod },
	"pdbx_description":         func(x *ihm.Entity) *cif.Value { return &x.Description },
	"formula_weight":           func(x *ihm.Entity) *cif.Value { return &x.FormulaWeight },
	"pdbx_number_of_molecules": func(x *ihm.Entity) *cif.Value { return &x.NumberOfMolecules },
	"details":                  func(x *ihm.Entity) *cif.Value { return &x.Details },
}

func handleEntity(s *Session, r cif.Record) error {
	id, err := key("_entity", r, "id")
	if err != nil {
		return err
	}
	copyFields(s.Entities.Resolve(id, newOf[ihm.Entity]()), r, entityFields)
	return nil
}

// handleEntityPolySeq places the component at position num of the entity's
// sequence, growing the sequence as needed.
func handleEntityPolySeq(s *Session, r cif.Record) error {
	const category = "_entity_poly_seq"
	id, err := key(category, r, "entity_id")
	if err != nil {
		return err
	}
	comp, err := key(category, r, "mon_id")
	if err != nil {
		return err
	}
	num, ok, err := intField(category, r, "num")
	if err != nil {
		return err
	}
	if !ok || num < 1 {
		return missing(category, "num")
	}
	e := s.Entities.Resolve(id, newOf[ihm.Entity]())
	for len(e.Sequence) < num {
		e.Sequence = append(e.Sequence, nil)
	}
	e.Sequence[num-1] = s.ChemComp(comp)
	return nil
}

// handleTargetRef adds a sequence database reference to an entity. Rows
// have no identifier of their own; a row equal to an existing reference of
// the same entity is ignored.
func handleTargetRef(s *Session, r cif.Record) error {
	id, err := key("_ma_target_ref_db_details", r, "target_entity_id")
	if err != nil {
		return err
	}
	e := s.Entities.Resolve(id, newOf[ihm.Entity]())
	ref := &reference.TargetReference{
		DBName:             r.Text("db_name"),
		Code:               r.Value("db_code"),
		Accession:          r.Value("db_accession"),
		AlignBegin:         r.Value("seq_db_align_begin"),
		AlignEnd:           r.Value("seq_db_align_end"),
		Isoform:            r.Value("seq_db_isoform"),
		NCBITaxonomyID:     r.Value("ncbi_taxonomy_id"),
		OrganismScientific: r.Value("organism_scientific"),
		Details:            r.Value("db_name_other_details"),
	}
	for _, old := range e.References {
		if *old == *ref {
			return nil
		}
	}
	e.References = append(e.References, ref)
	return nil
}

func handleStructAsym(s *Session, r cif.Record) error {
	id, err := key("_struct_asym", r, "id")
	if err != nil {
		return err
	}
	a := s.Asyms.Resolve(id, newOf[ihm.AsymUnit]())
	if e := Ref(s.Entities, r.Value("entity_id"), newOf[ihm.Entity]()); e != nil {
		a.Entity = e
	}
	setField(&a.Details, r, "details")
	return nil
}

var chemDescriptorFields = fieldMap[ihm.ChemDescriptor]{
	"auth_name":        func(x *ihm.ChemDescriptor) *cif.Value { return &x.AuthName },
	"chemical_name":    func(x *ihm.ChemDescriptor) *cif.Value { return &x.ChemicalName },
	"common_name":      func(x *ihm.ChemDescriptor) *cif.Value { return &x.CommonName },
	"smiles":           func(x *ihm.ChemDescriptor) *cif.Value { return &x.SMILES },
	"smiles_canonical": func(x *ihm.ChemDescriptor) *cif.Value { return &x.SMILESCanonical },
	"inchi":            func(x *ihm.ChemDescriptor) *cif.Value { return &x.InChI },
	"inchi_key":        func(x *ihm.ChemDescriptor) *cif.Value { return &x.InChIKey },
	"details":          func(x *ihm.ChemDescriptor) *cif.Value { return &x.Details },
}

func handleChemDescriptor(s *Session, r cif.Record) error {
	id, err := key("_ihm_chemical_component_descriptor", r, "id")
	if err != nil {
		return err
	}
	copyFields(s.ChemDescriptors.Resolve(id, newOf[ihm.ChemDescriptor]()), r, chemDescriptorFields)
	return nil
}

func handleAssembly(s *Session, r cif.Record) error {
	id, err := key("_ihm_struct_assembly", r, "id")
	if err != nil {
		return err
	}
	a := s.Assemblies.Resolve(id, newOf[ihm.Assembly]())
	setField(&a.Name, r, "name")
	setField(&a.Description, r, "description")
	return nil
}

func handleAssemblyDetails(s *Session, r cif.Record) error {
	const category = "_ihm_struct_assembly_details"
	id, err := key(category, r, "assembly_id")
	if err != nil {
		return err
	}
	a := s.Assemblies.Resolve(id, newOf[ihm.Assembly]())
	if p := r.Value("parent_assembly_id"); p.IsPresent() && p.Text() != id {
		a.Parent = s.Assemblies.Resolve(p.Text(), newOf[ihm.Assembly]())
	}
	return s.element(category, r, "entity_id", "asym_id", "seq_id_begin", "seq_id_end", a.Add)
}

// element records the assembly element a row refers to: an asymmetric unit
// when asymKey is present, an entity otherwise, narrowed to a range when
// the row gives one. set receives the element in Finish, once every
// sequence in the block is known. Rows naming neither are ignored.
func (s *Session) element(category string, r cif.Record, entityKey, asymKey, beginKey, endKey string, set func(ihm.AssemblyElement)) error {
	begin, end, hasRange, err := seqRange(category, r, beginKey, endKey)
	if err != nil {
		return err
	}
	ref := elementRef{category: category, begin: begin, end: end, hasRange: hasRange, set: set}
	if asymKey != "" {
		ref.asym = Ref(s.Asyms, r.Value(asymKey), newOf[ihm.AsymUnit]())
	}
	if ref.asym == nil && entityKey != "" {
		ref.entity = Ref(s.Entities, r.Value(entityKey), newOf[ihm.Entity]())
	}
	if ref.asym != nil || ref.entity != nil {
		s.elements = append(s.elements, ref)
	}
	return nil
}

// elementRef is an assembly element whose range has not been checked yet.
type elementRef struct {
	category   string
	asym       *ihm.AsymUnit
	entity     *ihm.Entity
	begin, end int
	hasRange   bool
	set        func(ihm.AssemblyElement)
}

// resolve returns the unit or entity, or the range of it the row named. A
// range covering the whole sequence yields the unit or entity itself.
func (e elementRef) resolve() (ihm.AssemblyElement, error) {
	var whole ihm.AssemblyElement = e.entity
	if e.asym != nil {
		whole = e.asym
	}
	if !e.hasRange {
		return whole, nil
	}
	if b, end := whole.SeqRange(); b == e.begin && end == e.end {
		return whole, nil
	}
	var (
		rng ihm.AssemblyElement
		err error
	)
	if e.asym != nil {
		rng, err = e.asym.Range(e.begin, e.end)
	} else {
		rng, err = e.entity.Range(e.begin, e.end)
	}
	if err != nil {
		return nil, rangeError(e.category, err)
	}
	return rng, nil
}
