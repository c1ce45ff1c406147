// Package graph builds the object graph of an integrative model: one node
// per identified object (entity, asymmetric unit, assembly, dataset, model,
// ...) and one edge per reference between them.
//
// Graphs are built from the categories produced by the dumper, so node
// identifiers match the ids written to the file:
//
//	cats, err := dumper.Dump(sys)
//	g, err := graph.FromCategories(cats)
//
// # Node identifiers
//
// A node ID is the object kind and its file id, joined by a colon:
// "dataset:3", "asym:B", "model group:1". Which categories yield nodes and
// which attributes yield edges is fixed by two tables in build.go.
//
// # JSON
//
// [WriteJSON] and [ReadJSON] use a node-link format:
//
//	{
//	  "nodes": [{"id": "dataset:1", "kind": "dataset", "label": "Experimental model"}],
//	  "edges": [{"from": "dataset:2", "to": "dataset:1", "label": "derived from"}]
//	}
package graph
