// Package match ranks entity names by similarity. The model loader uses it
// to suggest the intended target of a reference that names nothing.
//
// Key functions:
//   - NormalizeName: folds case and drops separators
//   - Levenshtein: computes edit distance between strings
//   - Rank: orders known names by similarity to a wanted one
package match
