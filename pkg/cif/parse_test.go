package cif

import (
	"errors"
	"strings"
	"testing"
)

func parseOne(t *testing.T, src string) *Block {
	t.Helper()
	blocks, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	return blocks[0]
}

func TestParsePairs(t *testing.T) {
	b := parseOne(t, `data_test
_struct.entry_id  eid
_struct.title     'My title'
_Struct.Pdbx_Descriptor "It's here"
_software.name IMP
`)
	if b.Name != "test" {
		t.Errorf("Name = %q, want test", b.Name)
	}
	if len(b.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(b.Rows))
	}
	st := b.Rows[0]
	if st.Category != "_struct" {
		t.Errorf("Category = %q, want _struct", st.Category)
	}
	if got := st.Record.Text("entry_id"); got != "eid" {
		t.Errorf("entry_id = %q", got)
	}
	if got := st.Record.Text("title"); got != "My title" {
		t.Errorf("title = %q", got)
	}
	if got := st.Record.Text("pdbx_descriptor"); got != "It's here" {
		t.Errorf("pdbx_descriptor = %q", got)
	}
	if got := b.Rows[1].Record.Text("name"); got != "IMP" {
		t.Errorf("software name = %q", got)
	}
}

func TestParseLoop(t *testing.T) {
	b := parseOne(t, `data_x
loop_
_entity.id
_entity.type
_entity.details
1 polymer ?
2 water .
# trailing comment
`)
	if len(b.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(b.Rows))
	}
	first, second := b.Rows[0].Record, b.Rows[1].Record
	if v := first.Value("details"); !v.IsUnknown() {
		t.Errorf("details = %v, want unknown", v)
	}
	if _, ok := second.Get("details"); ok {
		t.Error("'.' should not be stored in the record")
	}
	if got := second.Text("type"); got != "water" {
		t.Errorf("type = %q", got)
	}
}

func TestParseThreeStates(t *testing.T) {
	b := parseOne(t, "_a.x ''\n_a.y ?\n_a.z .\n_a.w '?'\n")
	r := b.Rows[0].Record
	if v := r.Value("x"); !v.IsPresent() || v.Text() != "" {
		t.Errorf("x = %#v, want present empty string", v)
	}
	if v := r.Value("y"); !v.IsUnknown() {
		t.Errorf("y = %#v, want unknown", v)
	}
	if v := r.Value("z"); !v.IsAbsent() {
		t.Errorf("z = %#v, want absent", v)
	}
	if v := r.Value("w"); !v.IsPresent() || v.Text() != "?" {
		t.Errorf("w = %#v, want quoted question mark", v)
	}
}

func TestParseTextField(t *testing.T) {
	b := parseOne(t, "data_t\nloop_\n_c.id\n_c.text\n1\n;line one\nline two\n;\n2 short\n")
	if len(b.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(b.Rows))
	}
	if got := b.Rows[0].Record.Text("text"); got != "line one\nline two" {
		t.Errorf("text = %q", got)
	}
}

func TestParseRepeatedPairsStartNewRow(t *testing.T) {
	b := parseOne(t, "_a.x 1\n_a.x 2\n")
	if len(b.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(b.Rows))
	}
}

func TestParseMultipleBlocks(t *testing.T) {
	blocks, err := Parse(strings.NewReader("data_a\n_a.x 1\ndata_b\n_a.x 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 || blocks[0].Name != "a" || blocks[1].Name != "b" {
		t.Fatalf("unexpected blocks %+v", blocks)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"unterminated quote", "_a.x 'oops\n", 1},
		{"unterminated text field", "_a.x\n;never ends\n", 2},
		{"incomplete loop row", "loop_\n_a.x\n_a.y\n1 2 3\n", 4},
		{"mixed loop categories", "loop_\n_a.x\n_b.y\n1 2\n", 3},
		{"missing value", "_a.x\n_a.y 1\n", 1},
		{"stray value", "data_a\nvalue\n", 2},
		{"tag without attribute", "_a 1\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("err = %v, want *SyntaxError", err)
			}
			if se.Line != tt.line {
				t.Errorf("Line = %d, want %d", se.Line, tt.line)
			}
		})
	}
}

func TestBlockCategories(t *testing.T) {
	b := parseOne(t, "_a.x 1\n_b.x 1\n_a.x 2\n")
	got := b.Categories()
	if len(got) != 2 || got[0] != "_a" || got[1] != "_b" {
		t.Errorf("Categories() = %v", got)
	}
}
