// Package workload loads process descriptions from any afs supported URL.
//
// The default format has one process per line:
//
//	arrival name service memory
//
// with fields separated by blanks; blank lines are ignored.  Files with a
// .yaml or .yml extension hold a "processes" list instead.  Loaded processes
// are validated and stable-sorted by arrival time.
package workload
