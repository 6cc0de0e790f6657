// Package rewrite applies DPO rules to the live graph through a
// validate-simulate-commit pipeline.
//
// Simulate is a pure function from (graph, rule, binding, counters) to a
// sandbox graph; it never mutates its input. The Engine owns the live
// snapshot, the monotonic id counters, and the revision chain: Validate
// runs the matcher, the simulator, and the invariant battery without
// changing state; Apply additionally promotes the sandbox to the live
// graph, advances the revision from rev-N to rev-(N+1), and returns an
// execution Proof carrying both snapshots and the structural diff.
//
// Apply is atomic from the caller's perspective: it either commits and
// returns a proof, or returns an error with the engine byte-identical to
// its pre-call state. The engine is single-threaded by contract; callers
// observe state only through Snapshot, which returns a deep value copy.
package rewrite
