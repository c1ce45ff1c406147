package ihm

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/matzehuels/ihmgraph/pkg/cif"
)

// Content types of file locations.
const (
	ContentInput         = "Input data or restraints"
	ContentOutput        = "Modeling or post-processing output"
	ContentWorkflow      = "Modeling workflow or script"
	ContentVisualization = "Visualization script"
	ContentOther         = "Other"
)

// Location points at an external resource: a [*DatabaseLocation] or a
// [*FileLocation].
type Location interface {
	ID() string
	SetID(string)
	LocationDetails() cif.Value
}

// DatabaseLocation is an entry in an external database.
type DatabaseLocation struct {
	Ident
	DBName     cif.Value
	AccessCode cif.Value
	Version    cif.Value
	Details    cif.Value
}

// LocationDetails implements [Location].
func (l *DatabaseLocation) LocationDetails() cif.Value { return l.Details }

// FileLocation is a file, either local or inside a [Repository].
//
// For files inside a repository Path is relative to the repository root.
type FileLocation struct {
	Ident
	Path        string
	ContentType cif.Value
	FileSize    cif.Value
	Repository  *Repository
	Details     cif.Value
}

// NewFileLocation returns a location for the file at p.
func NewFileLocation(p, contentType string) *FileLocation {
	return &FileLocation{Path: p, ContentType: cif.OptStr(contentType)}
}

// LocationDetails implements [Location].
func (l *FileLocation) LocationDetails() cif.Value { return l.Details }

// FullPath returns the path as written to a file: prefixed with the
// repository's top directory when there is one.
func (l *FileLocation) FullPath() string {
	if l.Repository != nil && l.Repository.TopDirectory != "" {
		return path.Join(l.Repository.TopDirectory, filepath.ToSlash(l.Path))
	}
	return filepath.ToSlash(l.Path)
}

// Repository is an archive of files with a DOI, such as a Zenodo deposit.
type Repository struct {
	Ident
	DOI     cif.Value
	URL     cif.Value
	Details cif.Value

	// TopDirectory is prepended to paths inside the archive.
	TopDirectory string
	// Root is the local directory that corresponds to the archive root. It is
	// only used by [System.UpdateLocationsInRepositories].
	Root string
}

// relativeTo returns p relative to the repository root, or false if p is not
// below it.
func (r *Repository) relativeTo(p string) (string, bool) {
	if r.Root == "" {
		return "", false
	}
	root, err := filepath.Abs(r.Root)
	if err != nil {
		return "", false
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// UpdateLocationsInRepositories re-points every local [FileLocation] that
// lies below the Root of one of repos at that repository. When several
// repositories match, the one giving the shortest relative path wins.
// Locations that already name a repository are left alone.
func (s *System) UpdateLocationsInRepositories(repos []*Repository) error {
	for loc, err := range s.AllLocations() {
		if err != nil {
			return err
		}
		fl, ok := loc.(*FileLocation)
		if !ok || fl.Repository != nil {
			continue
		}
		orig := fl.Path
		for _, r := range repos {
			rel, ok := r.relativeTo(orig)
			if !ok {
				continue
			}
			if fl.Repository == nil || len(rel) < len(fl.Path) {
				fl.Repository = r
				fl.Path = rel
			}
		}
	}
	return nil
}
