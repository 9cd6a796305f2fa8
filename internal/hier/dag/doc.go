// Package dag orders the instantiation graph of a design: which interface
// implementations instantiate which. The hierarchy walk itself only needs a
// visiting set; the graph is what lets the resolver name a cycle instead of
// silently cutting it.
package dag
