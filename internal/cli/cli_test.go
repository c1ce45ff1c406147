package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/ihmgraph/pkg/errors"
	"github.com/matzehuels/ihmgraph/pkg/ihm/reader"
)

const fixture = "testdata/nup84.cif"

// execute runs the root command with a config file holding cfg.
func execute(t *testing.T, cfg string, args ...string) (string, string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	var logs, stdout, stderr bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", path}, args...))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestStats(t *testing.T) {
	out, _, err := execute(t, "", "stats", fixture)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"data_nup84", "_entity ", "_struct_asym ", "_ihm_dataset_list ", "_ihm_dataset_group_link "} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}

	out, _, err = execute(t, "", "stats", "--objects", fixture)
	if err != nil {
		t.Fatalf("stats --objects: %v", err)
	}
	for _, want := range []string{"dataset group", "entity", "objects,"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats --objects output missing %q:\n%s", want, out)
		}
	}
}

func TestStatsMissingFile(t *testing.T) {
	_, _, err := execute(t, "", "stats", "testdata/missing.cif")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestConvert(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.cif")
	_, stderr, err := execute(t, "", "convert", fixture, out, "--name", "nup84_v2")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(stderr, out) {
		t.Errorf("status should name the output file, got %q", stderr)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	systems, err := reader.Read(context.Background(), f, reader.Options{})
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if len(systems) != 1 || systems[0].ID != "nup84_v2" {
		t.Fatalf("systems = %v", systems)
	}
	if n := len(systems[0].Entities); n != 2 {
		t.Errorf("entities = %d, want 2", n)
	}
}

func TestConvertToStdout(t *testing.T) {
	out, _, err := execute(t, "", "convert", fixture)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.HasPrefix(out, "data_nup84\n") {
		t.Errorf("output should start with the data block, got %q", out[:min(len(out), 40)])
	}
}

func TestConvertRepository(t *testing.T) {
	out, _, err := execute(t, "", "convert", fixture,
		"--repo", "10.5281/zenodo.46266=testdata/local", "--top-directory", "nup84-1.0")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	for _, want := range []string{"10.5281/zenodo.46266", "nup84-1.0/xlinks.csv"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "local/xlinks.csv") {
		t.Error("local path should be rewritten into the repository")
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad block name", []string{"--name", "two words"}, errors.ErrCodeInvalidInput},
		{"bad repo", []string{"--repo", "nodir"}, errors.ErrCodeInvalidInput},
		{"absolute top directory", []string{"--repo", "x=testdata", "--top-directory", "/abs"}, errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"convert", fixture}, tt.args...)
			_, _, err := execute(t, "", args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

const summaryJSON = `{"result": {"uids": ["25161197"], "25161197": {
  "uid": "25161197", "pubdate": "2014 Nov", "source": "Mol Cell Proteomics",
  "authors": [{"name": "Shi Y", "authtype": "Author"}],
  "title": "Structural characterization by cross-linking.",
  "volume": "13", "pages": "2927-43",
  "articleids": [{"idtype": "doi", "value": "10.1074/mcp.M114.041673"}]}}}`

func pubmedServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(summaryJSON))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestCite(t *testing.T) {
	srv, calls := pubmedServer(t)
	cacheDir := t.TempDir()
	cfg := "[cache]\ndir = '" + cacheDir + "'\n[pubmed]\nbase_url = '" + srv.URL + "'\n"

	out, _, err := execute(t, cfg, "cite", "25161197")
	if err != nil {
		t.Fatalf("cite: %v", err)
	}
	for _, want := range []string{"_citation", "25161197", "Mol Cell Proteomics", "10.1074/mcp.M114.041673", "'Shi Y'"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if _, _, err := execute(t, cfg, "cite", "25161197"); err != nil {
		t.Fatalf("second cite: %v", err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server calls = %d, want 1 (second lookup cached)", n)
	}

	if _, _, err := execute(t, cfg, "--no-cache", "cite", "25161197"); err != nil {
		t.Fatalf("cite --no-cache: %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("server calls = %d, want 2", n)
	}
}

func TestCiteInto(t *testing.T) {
	srv, _ := pubmedServer(t)
	cfg := "[cache]\nbackend = 'none'\n[pubmed]\nbase_url = '" + srv.URL + "'\n"

	out, _, err := execute(t, cfg, "cite", "25161197", "--into", fixture)
	if err != nil {
		t.Fatalf("cite --into: %v", err)
	}
	if !strings.HasPrefix(out, "data_nup84\n") || !strings.Contains(out, "Mol Cell Proteomics") {
		t.Errorf("citation should be added to data_nup84:\n%s", out)
	}
}

func TestCiteInvalidPMID(t *testing.T) {
	srv, calls := pubmedServer(t)
	cfg := "[cache]\nbackend = 'none'\n[pubmed]\nbase_url = '" + srv.URL + "'\n"

	_, _, err := execute(t, cfg, "cite", "PMC123")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
	if calls.Load() != 0 {
		t.Error("an invalid id must not reach the server")
	}
}

func TestGraph(t *testing.T) {
	out, _, err := execute(t, "", "graph", fixture, "-f", "dot", "--edge-labels")
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	for _, want := range []string{"digraph G {", `"dataset group:1"`, `"asym:A" -> "entity:1" [label="instance of"]`} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT missing %q:\n%s", want, out)
		}
	}
}

func TestGraphJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nup84.json")
	if _, _, err := execute(t, "", "graph", fixture, "-o", path, "--from", "dataset group:1"); err != nil {
		t.Fatalf("graph: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var g struct {
		Nodes []struct{ ID string } `json:"nodes"`
	}
	if err := json.Unmarshal(data, &g); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for _, n := range g.Nodes {
		if strings.HasPrefix(n.ID, "entity:") {
			t.Errorf("entity %s is not reachable from the dataset group", n.ID)
		}
	}
	if len(g.Nodes) < 3 {
		t.Errorf("nodes = %v, want the group, its datasets and the file", g.Nodes)
	}
}

func TestGraphErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown format", []string{"-f", "gif"}, errors.ErrCodeInvalidInput},
		{"unknown extension", []string{"-o", "out.bmp"}, errors.ErrCodeInvalidInput},
		{"unknown block", []string{"-f", "dot", "--block", "other"}, errors.ErrCodeNotFound},
		{"unknown node", []string{"-f", "dot", "--from", "model:9"}, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"graph", fixture}, tt.args...)
			_, _, err := execute(t, "", args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		format, output, want string
	}{
		{"", "", "svg"},
		{"", "out.SVG", "svg"},
		{"", "graph.json", "json"},
		{"dot", "graph.svg", "dot"},
		{"png", "", "png"},
	}
	for _, tt := range tests {
		got, err := resolveFormat(tt.format, tt.output)
		if err != nil || got != tt.want {
			t.Errorf("resolveFormat(%q, %q) = %q, %v; want %q", tt.format, tt.output, got, err, tt.want)
		}
	}
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stale.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := execute(t, "[cache]\ndir = '"+dir+"'\n", "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Cleared file cache") {
		t.Errorf("output = %q", out)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("%d entries left", len(entries))
	}
}

func TestCachePath(t *testing.T) {
	out, _, err := execute(t, "[cache]\ndir = '/tmp/ihmgraph-test'\n", "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "/tmp/ihmgraph-test" {
		t.Errorf("cache path = %q", out)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "ihmgraph version ") {
		t.Errorf("version output = %q", out)
	}
}
