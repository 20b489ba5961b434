// Package wiretree converts typed Go values to plain JSON-compatible
// trees and back, driven by per-field metadata registered ahead of time.
//
// A Registry maps struct types to class descriptors. Each descriptor
// lists property descriptors: the field name, the wire name it maps to,
// a Scheme (a paired to-wire/from-wire value transform) and the
// directions the field participates in. Resolution walks a type's
// ancestor chain (anonymous embedded structs, or an explicit parent set
// at registration) and merges descriptors most-specific-first, so a
// derived type's registration for a wire name always wins over an
// ancestor's.
//
// The registry has a two-phase lifecycle: register everything during
// initialization, then serialize and deserialize freely. Mutation is
// guarded by a read-write lock, but interleaving registration with
// active conversion is not a supported pattern.
//
// Wire values are nil, primitives, []any slices and map[string]any
// mappings. A bare map[string]any passes through Serialize unchanged,
// which is the escape hatch for already-wire-shaped data nested inside
// a typed graph.
package wiretree
