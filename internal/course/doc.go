// Package course defines the pipeline step registry and the persisted
// per-course state document.
//
// A course progresses through a fixed ordered set of steps. Each step owns a
// file category and, for locally produced outputs, a filesystem evidence
// pattern (a subdirectory plus extensions) used to re-detect completion after
// an interruption. The State type is the JSON document written under the
// course directory; Store handles atomic load/save with corrupt-state
// recovery left to the caller.
package course
