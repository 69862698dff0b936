// Package target holds the flat, insertion-ordered records produced by the
// lowering pass.
//
// A record has a kind from the closed Kind enumeration, a name, and an ordered
// list of named fields. Records reference each other by name. Once appended,
// a record is never removed; the store is serialized by an external writer.
package target
