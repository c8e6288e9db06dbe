// Package tracker maintains per-course pipeline progress. A Tracker owns the
// in-memory course state exclusively and writes it through the state store on
// every mutation, so a crash after any single call leaves the on-disk
// document consistent with that call's outcome. Recovery after interruption
// is plain re-querying: construct a new Tracker against the same directory
// and ask which steps and files survived.
//
// The tracker takes no file locks; concurrent processes mutating the same
// course directory are a caller error, not something this package tolerates
// or arbitrates. The CLI driver refuses concurrent runs with an advisory
// lock before it ever touches a Tracker.
package tracker
