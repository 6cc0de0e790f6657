// Package dpograph provides a deterministic graph-rewrite core for a
// conversation and decision log domain.
//
// The core maintains a typed property graph (threads, turns, messages,
// actors, concepts, decisions, tasks) and mutates it exclusively through
// declarative double-pushout (DPO) rewrite rules. Rules are untrusted
// input: every rule is matched, simulated in a sandbox, and checked
// against the invariant battery before the live graph is touched. A
// committed rewrite yields an execution proof carrying both snapshots,
// the structural diff, and the rule's canonical hash.
//
// # Architecture Overview
//
// The module is organized into layers with strict dependency ordering:
//
//	Foundation tier (no internal dependencies):
//	  - value: Immutable tagged-union values with canonical JSON
//
//	Core library tier:
//	  - graph: Typed nodes, edges, graphs, and snapshots
//	  - rule: DPO rule representation and well-formedness
//	  - match: Injective deterministic pattern matching
//	  - invariant: The invariant battery and validation reports
//	  - rewrite: Sandboxed simulation and the transactional engine
//
//	Collaborator tier:
//	  - oracle: The external rule-proposer contract and a mock
//	  - adapter/json: JSON/JSONC document parsing and canonical output
//
// # Entry Points
//
// Applying a rule:
//
//	import "github.com/simon-lentz/dpograph/rewrite"
//
//	eng := rewrite.New()
//	proof, err := eng.Apply(rule)
//	if err != nil {
//	    // Rule rejected; engine state is unchanged.
//	}
//
// Validating without committing:
//
//	report, err := eng.Validate(rule)
//	if err != nil {
//	    // Malformed rule or no match in the current graph.
//	}
//	if !report.IsValid {
//	    // One or more invariants failed; report.Errors names them.
//	}
//
// # Determinism
//
// All observable behavior is deterministic: mappings iterate in sorted key
// order, sequences in insertion order, and the matcher enumerates
// candidates in a fixed order. Canonical JSON serialization is byte-stable
// and defines value equality for snapshot comparison. Commit timestamps
// come from an injectable clock; matching and simulation never read it.
package dpograph
