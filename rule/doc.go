// Package rule defines the declarative double-pushout rewrite rule: a
// left-hand pattern L, a gluing interface K, and a concrete replacement
// graph R, plus rule metadata.
//
// L and K are patterns over variables; K's variables must all appear in
// L. R is a fully concrete graph whose element ids carry sentinel
// prefixes: "var:NAME" refers to the binding of variable NAME from K,
// and "new:NAME" marks a fresh element allocated at apply time. An id in
// R without a sentinel prefix makes the rule malformed.
//
// Attribute constraints on pattern elements are conjunctions of
// operations (eq, neq, lt, lte, gt, gte, regex, in). WellFormed checks
// the structural contract between L, K, and R; semantic checks (matching
// against a live graph, invariant preservation) live in the match,
// rewrite, and invariant packages.
package rule
