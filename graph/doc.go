// Package graph provides the typed property graph mutated by the rewrite
// engine: nodes and edges with attribute maps, the graph container, and
// revision-stamped snapshots.
//
// Order is significant for determinism: nodes and edges iterate in
// insertion order, and that order is preserved by cloning and
// serialization. Node and edge ids are unique within a graph.
//
// The package also defines the closed sets of recognized node and edge
// types for the conversation-and-decision-log domain and the typed-edge
// table that constrains which endpoint types each edge type may connect.
// Unrecognized node types may exist in a graph but cannot participate in
// typed edges.
package graph
