package cif

import "strings"

// Record is one row of a category: attribute name (without the category
// prefix, lower case) to value. Absent fields have no entry.
type Record map[string]Value

// Get returns the value for key and whether the record holds it.
func (r Record) Get(key string) (Value, bool) {
	v, ok := r[strings.ToLower(key)]
	return v, ok
}

// Value returns the value for key, or the absent value.
func (r Record) Value(key string) Value { return r[strings.ToLower(key)] }

// Text returns the text of a present value for key and "" otherwise.
func (r Record) Text(key string) string { return r[strings.ToLower(key)].Text() }

// Row is a record tagged with the category it belongs to.
// Category names keep their leading underscore, e.g. "_software".
type Row struct {
	Category string
	Record   Record
}

// Block is one data_ block of a file with its rows in input order.
type Block struct {
	Name string
	Rows []Row
}

// Categories returns the distinct category names of the block in order of
// first appearance.
func (b *Block) Categories() []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range b.Rows {
		if !seen[r.Category] {
			seen[r.Category] = true
			names = append(names, r.Category)
		}
	}
	return names
}

// Category is a table ready to be written: the category name, its ordered
// attribute names, and one slice of values per row (aligned with Fields).
type Category struct {
	Name   string
	Fields []string
	Rows   [][]Value
}

// AddRow appends a row. Missing trailing values are treated as absent.
func (c *Category) AddRow(vals ...Value) {
	row := make([]Value, len(c.Fields))
	copy(row, vals)
	c.Rows = append(c.Rows, row)
}
