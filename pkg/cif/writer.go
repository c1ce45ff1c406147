package cif

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Writer emits blocks and categories in the tabular text format.
//
// Write errors are sticky: after the first failure every method returns the
// same error and writes nothing.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter returns a Writer that buffers output to w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// StartBlock writes a data_ header.
func (w *Writer) StartBlock(name string) error {
	if name == "" {
		name = "model"
	}
	w.printf("data_%s\n", strings.Join(strings.Fields(name), "_"))
	return w.err
}

// WriteComment writes text as one or more # comment lines.
func (w *Writer) WriteComment(text string) error {
	for _, line := range strings.Split(text, "\n") {
		w.printf("# %s\n", line)
	}
	return w.err
}

// WriteCategory writes c as key/value pairs when it has a single row and as
// a loop_ otherwise. Categories without rows are skipped.
func (w *Writer) WriteCategory(c Category) error {
	switch len(c.Rows) {
	case 0:
		return w.err
	case 1:
		w.writePairs(c)
	default:
		w.writeLoop(c)
	}
	w.printf("#\n")
	return w.err
}

// Flush writes any buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

func (w *Writer) writePairs(c Category) {
	width := 0
	for _, f := range c.Fields {
		width = max(width, len(c.Name)+1+len(f))
	}
	row := c.Rows[0]
	for i, f := range c.Fields {
		tag := c.Name + "." + f
		text, field := format(row[i])
		if field {
			w.printf("%s\n;%s\n;\n", tag, text)
			continue
		}
		w.printf("%-*s %s\n", width, tag, text)
	}
}

func (w *Writer) writeLoop(c Category) {
	w.printf("loop_\n")
	for _, f := range c.Fields {
		w.printf("%s.%s\n", c.Name, f)
	}
	var line []string
	flushLine := func() {
		if len(line) > 0 {
			w.printf("%s\n", strings.Join(line, " "))
			line = line[:0]
		}
	}
	for _, row := range c.Rows {
		for _, v := range row {
			text, field := format(v)
			if field {
				flushLine()
				w.printf(";%s\n;\n", text)
				continue
			}
			line = append(line, text)
		}
		flushLine()
	}
}

var reserved = []string{"data_", "loop_", "save_", "global_", "stop_"}

// format returns the on-disk form of v and whether it must be written as a
// semicolon text field.
func format(v Value) (string, bool) {
	switch {
	case v.IsAbsent():
		return ".", false
	case v.IsUnknown():
		return "?", false
	}
	s := v.text
	if strings.ContainsAny(s, "\r\n") {
		return s, true
	}
	if !needsQuotes(s) {
		return s, false
	}
	if !endsQuote(s, '\'') {
		return "'" + s + "'", false
	}
	if !endsQuote(s, '"') {
		return `"` + s + `"`, false
	}
	return s, true
}

func needsQuotes(s string) bool {
	if s == "" || s == "." || s == "?" {
		return true
	}
	if strings.ContainsAny(s, " \t") {
		return true
	}
	switch s[0] {
	case '_', '#', '$', '\'', '"', '[', ']', ';':
		return true
	}
	lower := strings.ToLower(s)
	for _, r := range reserved {
		if strings.HasPrefix(lower, r) {
			return true
		}
	}
	return false
}

// endsQuote reports whether q followed by whitespace occurs in s, which
// would terminate a value quoted with q early.
func endsQuote(s string, q byte) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == q && isSpace(s[i+1]) {
			return true
		}
	}
	return false
}
