package reader

import (
	"github.com/matzehuels/ihmgraph/pkg/cif"
	"github.com/matzehuels/ihmgraph/pkg/ihm"
)

// Values of _ihm_external_reference_info.reference_type.
const (
	refTypeDOI   = "DOI"
	refTypeLocal = "Supplementary Files"
)

// handleExternalReference defines a repository. References of type
// "Supplementary Files" stand for files shipped alongside the mmCIF file;
// Finish takes the repository off files pointing at them.
func handleExternalReference(s *Session, r cif.Record) error {
	id, err := key("_ihm_external_reference_info", r, "reference_id")
	if err != nil {
		return err
	}
	if r.Text("reference_type") == refTypeLocal {
		s.localFiles[id] = true
		return nil
	}
	repo := s.Repositories.Resolve(id, newOf[ihm.Repository]())
	if r.Text("reference_type") == refTypeDOI {
		setField(&repo.DOI, r, "reference")
	}
	setField(&repo.URL, r, "associated_url")
	setField(&repo.Details, r, "details")
	return nil
}

func handleExternalFile(s *Session, r cif.Record) error {
	id, err := key("_ihm_external_files", r, "id")
	if err != nil {
		return err
	}
	f := s.Files.Resolve(id, newOf[ihm.FileLocation]())
	if v := r.Value("file_path"); v.IsPresent() {
		f.Path = v.Text()
	}
	if ref := r.Value("reference_id"); ref.IsPresent() {
		f.Repository = s.Repositories.Resolve(ref.Text(), newOf[ihm.Repository]())
		s.fileRefs[f] = ref.Text()
	}
	setField(&f.ContentType, r, "content_type")
	setField(&f.FileSize, r, "file_size_bytes")
	setField(&f.Details, r, "details")
	return nil
}

// file resolves a reference to an external file. It returns nil for absent
// references so that the result can be stored in an ihm.Location field
// without becoming a non-nil interface holding a nil pointer.
func (s *Session) file(v cif.Value) *ihm.FileLocation {
	return Ref(s.Files, v, newOf[ihm.FileLocation]())
}

func (s *Session) location(v cif.Value) ihm.Location {
	if f := s.file(v); f != nil {
		return f
	}
	return nil
}

func handleDataset(s *Session, r cif.Record) error {
	id, err := key("_ihm_dataset_list", r, "id")
	if err != nil {
		return err
	}
	d := s.Datasets.Resolve(id, newOf[ihm.Dataset]())
	setField(&d.DataType, r, "data_type")
	setField(&d.Details, r, "details")
	return nil
}

func handleDatasetGroup(s *Session, r cif.Record) error {
	id, err := key("_ihm_dataset_group", r, "id")
	if err != nil {
		return err
	}
	g := s.DatasetGroups.Resolve(id, newOf[ihm.DatasetGroup]())
	setField(&g.Name, r, "name")
	setField(&g.Application, r, "application")
	setField(&g.Details, r, "details")
	return nil
}

func handleDatasetGroupLink(s *Session, r cif.Record) error {
	const category = "_ihm_dataset_group_link"
	gid, err := key(category, r, "group_id")
	if err != nil {
		return err
	}
	did, err := key(category, r, "dataset_list_id")
	if err != nil {
		return err
	}
	s.DatasetGroups.Resolve(gid, newOf[ihm.DatasetGroup]()).Add(s.Datasets.Resolve(did, newOf[ihm.Dataset]()))
	return nil
}

func handleDatasetDBReference(s *Session, r cif.Record) error {
	const category = "_ihm_dataset_related_db_reference"
	id, err := key(category, r, "id")
	if err != nil {
		return err
	}
	did, err := key(category, r, "dataset_list_id")
	if err != nil {
		return err
	}
	loc := s.DBLocations.Resolve(id, newOf[ihm.DatabaseLocation]())
	copyFields(loc, r, fieldMap[ihm.DatabaseLocation]{
		"db_name":        func(x *ihm.DatabaseLocation) *cif.Value { return &x.DBName },
		"accession_code": func(x *ihm.DatabaseLocation) *cif.Value { return &x.AccessCode },
		"version":        func(x *ihm.DatabaseLocation) *cif.Value { return &x.Version },
		"details":        func(x *ihm.DatabaseLocation) *cif.Value { return &x.Details },
	})
	s.Datasets.Resolve(did, newOf[ihm.Dataset]()).Location = loc
	return nil
}

func handleDatasetFileReference(s *Session, r cif.Record) error {
	const category = "_ihm_dataset_external_reference"
	did, err := key(category, r, "dataset_list_id")
	if err != nil {
		return err
	}
	if _, err := key(category, r, "file_id"); err != nil {
		return err
	}
	s.Datasets.Resolve(did, newOf[ihm.Dataset]()).Location = s.location(r.Value("file_id"))
	return nil
}

func handleRelatedDatasets(s *Session, r cif.Record) error {
	const category = "_ihm_related_datasets"
	derived, err := key(category, r, "dataset_list_id_derived")
	if err != nil {
		return err
	}
	primary, err := key(category, r, "dataset_list_id_primary")
	if err != nil {
		return err
	}
	d := s.Datasets.Resolve(derived, newOf[ihm.Dataset]())
	d.AddParent(s.Datasets.Resolve(primary, newOf[ihm.Dataset]()))
	return nil
}
