// Package ihm holds the object graph of an integrative modeling document.
//
// # Overview
//
// A [System] is the root of one document. It owns the entities, asymmetric
// units, datasets, restraints, protocols and models of a modeling study, plus
// a set of "orphan" lists for objects that nothing else refers to. Objects
// refer to each other with plain pointers: an [AsymUnit] points at its
// [Entity], a [Model] at its [Assembly], [Protocol] and [Representation]. A
// pointer is a reference, never a copy, so ten references to one entity are
// ten pointers to the same *Entity.
//
// Scalar attributes are [cif.Value]s. This keeps the three states of the file
// format apart: a field that was never supplied (the zero Value), a field
// that is present but unknown ([cif.Unknown]) and a present value, which may
// be the empty string.
//
// # Identity and equality
//
// Two notions of sameness are used, and each kind documents which applies:
//
//   - Identity (pointer equality) is the default. Collectors deduplicate
//     models, protocols, representations, starting models and citations by
//     identity.
//   - Value equality is defined for [Software] (name and version, see
//     [Software.Key]), [Entity] (its sequence, see [Entity.Equal]), the range
//     types ([EntityRange], [AsymUnitRange]) and [Assembly] (its elements).
//
// Range types are small comparable structs. Their ID is the ID of the parent
// entity or asymmetric unit and their constructors reject intervals outside
// the parent's sequence with a [*RangeError].
//
// # Collectors
//
// The All* methods ([System.AllModels], [System.AllAssemblies],
// [System.AllDatasets], ...) walk the graph lazily and yield every object of one
// kind that a writer has to emit, orphans first, in a fixed order. Datasets
// are expanded so that parents always precede the datasets derived from
// them; a dataset that is its own ancestor is reported as a
// [*GraphCycleError].
//
// # Extensions
//
// Dictionary extensions such as fluorescence data (package flr) hang off
// [System.Extensions] and contribute datasets, software, locations and
// chemical descriptors to the collectors through the [Extension] interface.
package ihm
