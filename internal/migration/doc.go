// Package migration relocates or duplicates a course's files between
// directory trees. Analysis classifies every file under the source by
// extension and sizes the plan; execution reproduces the source's relative
// directory structure under the target, tolerating per-file failures; the
// composed course migration finishes by building fresh tracked state at the
// destination from the files actually present there.
package migration
