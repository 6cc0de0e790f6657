// Package invariant implements the battery of checks applied to every
// candidate post-state and every candidate rule before a rewrite commits.
//
// Graph-level checks run against the sandbox graph produced by
// simulation: well_typed_edges enforces the typed-edge table,
// no_orphan_messages requires each Message to have exactly one incoming
// HAS_MESSAGE and one outgoing AUTHORED_BY, and no_assistant_pii_leak
// scans assistant-authored message content for email- and phone-like
// text. The rule-level check immutable_history rejects any rule that
// could delete a Message node.
//
// Each check returns a Result naming the invariant, whether it passed,
// and a message listing offenders. Run aggregates the battery into a
// Report; a rule is applied only when the report is valid.
package invariant
