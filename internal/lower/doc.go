// Package lower translates a source building model into target records.
//
// Lowering pipeline:
//  1. Pre-pass normalization mutates the graph: required singletons are
//     created, orphans removed, spaces combined per zone (zone mode),
//     unreferenced space types collapsed, category loads materialized,
//     zone-restricted controls partitioned, adjacency conflicts resolved.
//  2. The memoized dispatcher walks a fixed kind order; every entity is
//     translated at most once and its record is registered before its
//     children are visited.
//  3. Globally required output records are appended last.
//
// All caches live in a run value created per Translate call. Entity-level
// problems are reported through diagnostic.Diagnostics and never abort the
// run; broken internal invariants panic.
package lower
