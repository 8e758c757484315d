// Package policy defines the declarative scheduling rules a simulation run is
// configured with: the dispatch discipline ordering the ready queue and the
// memory strategy deciding whether processes compete for a finite address
// space.
package policy
