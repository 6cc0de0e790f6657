// Package match finds injective bindings of a rule's left-hand pattern
// against a live graph.
//
// The matcher is classical subgraph isomorphism with constraint
// propagation: node variables are enumerated in pattern order over the
// graph's insertion order, then edge variables the same way, with
// backtracking. Distinct variables bind distinct elements by default;
// distinct_nodes/distinct_edges constraints are additive. The first
// binding discovered under this fixed enumeration is returned, which
// makes matching deterministic even for ambiguous patterns.
//
// Matching never mutates the graph and never reads the clock. A failed
// search returns a *FailedError naming the variable that could not be
// bound; no partial state leaks.
package match
