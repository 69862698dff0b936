// Package export writes a finished record store: as the textual target
// format and as a SQLite database for inspection.
package export
