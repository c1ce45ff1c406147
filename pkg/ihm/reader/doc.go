// Package reader builds ihm.System values from mmCIF files.
//
// Each data block becomes one system. Rows are handed to a [Handler] chosen
// by category name, in a single pass and in file order; categories without
// a handler are skipped and reported at debug level, and attributes a
// handler does not know are ignored. Checks that need data from other
// categories, such as sequence ranges, run in [Session.Finish] after the
// last row.
//
// # Identifiers
//
// Identifiers in a file are only meaningful within their data block and
// category. A [Session] keeps one [IDMapper] per identifier space. The
// first mention of an id, whether a definition or a reference, creates the
// object; later rows fill it in. A reference to an id that is never
// defined therefore yields an empty placeholder rather than an error.
//
// # Values
//
// Fields keep the three states of the file: an attribute written as "."
// leaves the field untouched, "?" sets it to cif.Unknown unless an earlier
// row gave a value, anything else to its text. When rows for one id
// disagree, the last value wins. Reading a row twice gives the same result
// as reading it once.
//
// # Extending
//
// Pass extra handlers in [Options] to read categories the package does not
// know, or to replace a built-in handler:
//
//	h := reader.NewHandler("_my_category", func(s *reader.Session, r cif.Record) error {
//	    ...
//	})
//	systems, err := reader.Read(ctx, f, reader.Options{Handlers: []reader.Handler{h}})
package reader
