package dumper

import (
	"strings"

	"github.com/matzehuels/ihmgraph/pkg/cif"
	"github.com/matzehuels/ihmgraph/pkg/ihm"
)

// Values of _ihm_external_reference_info.reference_type.
const (
	refTypeDOI   = "DOI"
	refTypeLocal = "Supplementary Files"
)

// refersTo guesses what a repository URL points at.
func refersTo(url cif.Value) cif.Value {
	u := strings.ToLower(url.Text())
	switch {
	case !url.IsPresent():
		return cif.Str("Other")
	case strings.HasSuffix(u, ".zip"), strings.HasSuffix(u, ".tar.gz"), strings.HasSuffix(u, ".tgz"):
		return cif.Str("Archive")
	default:
		return cif.Str("File")
	}
}

func (d *dumper) dumpExternalFiles() []*cif.Category {
	refs := category("_ihm_external_reference_info", "reference_id", "reference_provider", "reference_type",
		"reference", "refers_to", "associated_url", "details")
	for i, r := range d.repos.list() {
		refs.AddRow(cif.Int(i+1), cif.Value{}, cif.Str(refTypeDOI), r.DOI, refersTo(r.URL), r.URL, r.Details)
	}
	if local := d.localRef(); local.IsPresent() {
		refs.AddRow(local, cif.Value{}, cif.Str(refTypeLocal), cif.Value{}, cif.Str("Other"))
	}

	files := category("_ihm_external_files", "id", "reference_id", "file_path", "content_type",
		"file_size_bytes", "details")
	for i, f := range d.files.list() {
		ref := d.localRef()
		if f.Repository != nil {
			ref = d.repos.ref(f.Repository)
		}
		files.AddRow(cif.Int(i+1), ref, cif.Str(f.FullPath()), f.ContentType, f.FileSize, f.Details)
	}
	return []*cif.Category{refs, files}
}

func (d *dumper) dumpDatasets() []*cif.Category {
	list := category("_ihm_dataset_list", "id", "data_type", "database_hosted", "details")
	dbRefs := category("_ihm_dataset_related_db_reference", "id", "dataset_list_id", "db_name",
		"accession_code", "version", "details")
	fileRefs := category("_ihm_dataset_external_reference", "id", "dataset_list_id", "file_id")
	related := category("_ihm_related_datasets", "dataset_list_id_derived", "dataset_list_id_primary")

	for i, ds := range d.datasets.list() {
		id := cif.Int(i + 1)
		_, hosted := ds.Location.(*ihm.DatabaseLocation)
		list.AddRow(id, ds.DataType, cif.Bool(hosted), ds.Details)

		switch loc := ds.Location.(type) {
		case *ihm.DatabaseLocation:
			dbRefs.AddRow(d.dbLocations.ref(loc), id, loc.DBName, loc.AccessCode, loc.Version, loc.Details)
		case *ihm.FileLocation:
			fileRefs.AddRow(cif.Int(len(fileRefs.Rows)+1), id, d.files.ref(loc))
		}
		for _, p := range ds.Parents {
			related.AddRow(id, d.datasets.ref(p))
		}
	}

	groups := category("_ihm_dataset_group", "id", "name", "application", "details")
	links := category("_ihm_dataset_group_link", "group_id", "dataset_list_id")
	for i, g := range d.datasetGroups.list() {
		id := cif.Int(i + 1)
		groups.AddRow(id, g.Name, g.Application, g.Details)
		seen := make(map[*ihm.Dataset]bool)
		for _, ds := range g.Datasets {
			if !seen[ds] {
				seen[ds] = true
				links.AddRow(id, d.datasets.ref(ds))
			}
		}
	}
	return []*cif.Category{list, groups, links, dbRefs, fileRefs, related}
}
