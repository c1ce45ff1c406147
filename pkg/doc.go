// Package pkg holds the ihmgraph libraries for integrative structural
// modeling files.
//
// # Overview
//
// The packages split into three areas:
//
//  1. Data model and file format: [cif] (tokenizer and writer), [ihm] (the
//     object graph of one data block) with [ihm/reader] and [ihm/dumper]
//  2. Exploration: [graph] (objects and their references) and [render]
//     (Graphviz output)
//  3. Infrastructure: [cache], [integrations] (PubMed citations),
//     [httputil], [errors] and [observability]
//
// # Data Flow
//
//	mmCIF file
//	     ↓
//	[ihm/reader]  (rows to objects, placeholders for forward references)
//	     ↓
//	[ihm.System]  (entities, datasets, protocols, models, restraints)
//	     ↓
//	[ihm/dumper]  (ids assigned in collector order, rows written back)
//	     ↓
//	mmCIF file, or [graph] → [render] → SVG/PDF/PNG/DOT/JSON
//
// # Quick Start
//
//	systems, err := reader.Read(ctx, f, reader.Options{})
//	if err != nil {
//	    return err
//	}
//	return dumper.Write(ctx, os.Stdout, systems...)
//
// [cif]: github.com/matzehuels/ihmgraph/pkg/cif
// [ihm]: github.com/matzehuels/ihmgraph/pkg/ihm
// [ihm/reader]: github.com/matzehuels/ihmgraph/pkg/ihm/reader
// [ihm/dumper]: github.com/matzehuels/ihmgraph/pkg/ihm/dumper
// [ihm.System]: github.com/matzehuels/ihmgraph/pkg/ihm#System
// [graph]: github.com/matzehuels/ihmgraph/pkg/graph
// [render]: github.com/matzehuels/ihmgraph/pkg/render
// [cache]: github.com/matzehuels/ihmgraph/pkg/cache
// [integrations]: github.com/matzehuels/ihmgraph/pkg/integrations
// [httputil]: github.com/matzehuels/ihmgraph/pkg/httputil
// [errors]: github.com/matzehuels/ihmgraph/pkg/errors
// [observability]: github.com/matzehuels/ihmgraph/pkg/observability
package pkg
