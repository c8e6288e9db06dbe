// Package registry keeps the catalog of known courses in a SQLite database.
// The catalog is bookkeeping only: which courses exist, where they live, and
// when they were last touched. Per-course progress stays in the JSON state
// file under each course directory; the registry never duplicates it.
package registry
