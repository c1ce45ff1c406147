package dumper

import (
	"github.com/matzehuels/ihmgraph/pkg/cif"
	"github.com/matzehuels/ihmgraph/pkg/ihm"
)

func category(name string, fields ...string) *cif.Category {
	return &cif.Category{Name: name, Fields: fields}
}

func (d *dumper) dumpStruct() *cif.Category {
	c := category("_struct", "entry_id", "title")
	c.AddRow(cif.Str(d.sys.ID), d.sys.Title)
	return c
}

func (d *dumper) dumpSoftware() *cif.Category {
	c := category("_software", "pdbx_ordinal", "name", "classification", "description", "version", "type", "location")
	for i, s := range d.software.list() {
		c.AddRow(cif.Int(i+1), s.Name, s.Classification, s.Description, s.Version, s.Type, s.Location)
	}
	return c
}

func (d *dumper) dumpCitations() []*cif.Category {
	c := category("_citation", "id", "title", "journal_abbrev", "journal_volume", "page_first", "page_last",
		"year", "pdbx_database_id_pubmed", "pdbx_database_id_doi")
	a := category("_citation_author", "citation_id", "name", "ordinal")
	ordinal := 0
	for i, cit := range d.citations.list() {
		id := cif.Int(i + 1)
		c.AddRow(id, cit.Title, cit.Journal, cit.Volume, cit.PageFirst, cit.PageLast, cit.Year, cit.PMID, cit.DOI)
		for _, name := range cit.Authors {
			ordinal++
			a.AddRow(id, cif.Str(name), cif.Int(ordinal))
		}
	}
	return []*cif.Category{c, a}
}

func (d *dumper) dumpChemComps() *cif.Category {
	c := category("_chem_comp", "id", "type", "name", "formula")
	for comp := range d.sys.AllChemComps() {
		c.AddRow(cif.Str(comp.ID), cif.Str(comp.Type), comp.Name, comp.Formula)
	}
	return c
}

func (d *dumper) dumpEntities() []*cif.Category {
	ent := category("_entity", "id", "type", "src_method", "pdbx_description", "formula_weight",
		"pdbx_number_of_molecules", "details")
	seq := category("_entity_poly_seq", "entity_id", "num", "mon_id", "hetero")
	refs := category("_ma_target_ref_db_details", "target_entity_id", "db_name", "db_name_other_details",
		"db_code", "db_accession", "seq_db_isoform", "seq_db_align_begin", "seq_db_align_end",
		"ncbi_taxonomy_id", "organism_scientific")
	for i, e := range d.entities.list() {
		id := cif.Int(i + 1)
		ent.AddRow(id, e.Type, e.SrcMethod, e.Description, e.FormulaWeight, e.NumberOfMolecules, e.Details)
		for n, comp := range e.Sequence {
			if comp == nil {
				continue
			}
			seq.AddRow(id, cif.Int(n+1), cif.Str(comp.ID))
		}
		for _, r := range e.References {
			refs.AddRow(id, cif.Str(r.DBName), r.OtherDetails(), r.Code, r.Accession, r.Isoform,
				r.AlignBegin, r.AlignEnd, r.NCBITaxonomyID, r.OrganismScientific)
		}
	}
	return []*cif.Category{ent, seq, refs}
}

func (d *dumper) dumpStructAsym() *cif.Category {
	c := category("_struct_asym", "id", "entity_id", "details")
	for i, a := range d.asyms.list() {
		c.AddRow(cif.Str(asymName(i+1)), d.entities.ref(a.Entity), a.Details)
	}
	return c
}

// asym returns the identifier of a, absent when a is unnumbered.
func (d *dumper) asym(a *ihm.AsymUnit) cif.Value {
	if n := d.asyms.id(a); n > 0 {
		return cif.Str(asymName(n))
	}
	return cif.Value{}
}

func (d *dumper) dumpChemDescriptors() *cif.Category {
	c := category("_ihm_chemical_component_descriptor", "id", "auth_name", "chemical_name", "common_name",
		"smiles", "smiles_canonical", "inchi", "inchi_key", "details")
	for i, x := range d.descriptors.list() {
		c.AddRow(cif.Int(i+1), x.AuthName, x.ChemicalName, x.CommonName, x.SMILES, x.SMILESCanonical,
			x.InChI, x.InChIKey, x.Details)
	}
	return c
}

// span is where an assembly element lies: its entity, its asymmetric unit
// (absent for entities) and its residue interval.
type span struct {
	entity, asym, begin, end cif.Value
}

func (d *dumper) span(el ihm.AssemblyElement) span {
	var sp span
	switch el := el.(type) {
	case *ihm.Entity:
		sp.entity = d.entities.ref(el)
	case ihm.EntityRange:
		sp.entity = d.entities.ref(el.Entity)
	case *ihm.AsymUnit:
		sp.entity = d.entities.ref(el.Entity)
		sp.asym = d.asym(el)
	case ihm.AsymUnitRange:
		sp.entity = d.entities.ref(el.Asym.Entity)
		sp.asym = d.asym(el.Asym)
	default:
		return sp
	}
	b, e := el.SeqRange()
	sp.begin, sp.end = cif.Int(b), cif.Int(e)
	return sp
}

func (d *dumper) dumpAssemblies() []*cif.Category {
	asm := category("_ihm_struct_assembly", "id", "name", "description")
	det := category("_ihm_struct_assembly_details", "id", "assembly_id", "parent_assembly_id",
		"entity_id", "asym_id", "seq_id_begin", "seq_id_end")
	ordinal := 0
	for i, a := range d.assemblies.list() {
		id := cif.Int(i + 1)
		asm.AddRow(id, a.Name, a.Description)
		parent := id
		if a.Parent != nil {
			parent = d.assemblies.ref(a.Parent)
		}
		for _, el := range a.Elements {
			sp := d.span(el)
			ordinal++
			det.AddRow(cif.Int(ordinal), id, parent, sp.entity, sp.asym, sp.begin, sp.end)
		}
	}
	return []*cif.Category{asm, det}
}
