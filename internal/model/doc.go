// Package model is the in-memory source building model consumed by the
// lowering pass.
//
// The graph is handle-addressed: every entity receives a uuid handle when it
// is added, and entities refer to each other through typed references
// (Ref[T]) that are checked against the expected Go type on resolution.
// Geometric and derived properties are exposed as plain queries; the
// lowering pass treats them as already-computed values.
package model
