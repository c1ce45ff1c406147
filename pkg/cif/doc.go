// Package cif reads and writes the flat, category-based text format used by
// mmCIF files.
//
// # Overview
//
// An mmCIF file is a sequence of data blocks. Each block holds categories
// (tables) whose rows are written either as single key/value pairs:
//
//	_struct.entry_id  model
//	_struct.title     'My system'
//
// or as loops:
//
//	loop_
//	_software.pdbx_ordinal
//	_software.name
//	1 IMP
//	2 Modeller
//
// [Parse] turns text into [Block] values holding [Row]s in input order. Each
// row pairs a category name with a [Record], a map from attribute name
// (category prefix stripped, lower case) to [Value].
//
// # Values
//
// The format distinguishes three states for every field, and so does [Value]:
//
//   - absent: the zero Value. Written as "." and never stored in a Record.
//   - unknown: [Unknown]. Written as "?".
//   - present: [Str] and friends. An empty string is a present value,
//     written as ''.
//
// Consumers rely on this to avoid overwriting attributes with fields a row
// did not supply.
//
// # Writing
//
// [Writer] emits [Category] values. A category with one row is written in
// key/value form, anything longer as a loop_. Values are quoted only when
// needed.
//
// This package knows nothing about what the categories mean. The object
// model lives in [ihm], the mapping between the two in [reader] and [dumper].
//
// [ihm]: github.com/matzehuels/ihmgraph/pkg/ihm
// [reader]: github.com/matzehuels/ihmgraph/pkg/ihm/reader
// [dumper]: github.com/matzehuels/ihmgraph/pkg/ihm/dumper
package cif
