// Package dumper turns an ihm.System into mmCIF categories.
//
// Identifiers held by the objects are ignored. Before writing, every object
// reachable from the system is numbered per kind, in the order the All*
// collectors of ihm.System yield it, starting at 1. The complete assembly
// is always assembly 1 and asymmetric units are named A, B, ... Z, AA, BA
// and so on.
//
// Most objects are told apart by identity. Two kinds are merged by value:
// software with the same name and version, and assemblies listing the same
// elements. Entities with equal non-empty sequences are also merged, since
// a sequence is what identifies an entity.
//
// The output of [Write] reads back with reader.Read into an equivalent
// system, and dumping that system again yields the same categories.
package dumper
