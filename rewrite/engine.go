package rewrite

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/simon-lentz/dpograph/graph"
	"github.com/simon-lentz/dpograph/internal/trace"
	"github.com/simon-lentz/dpograph/invariant"
	"github.com/simon-lentz/dpograph/match"
	"github.com/simon-lentz/dpograph/rule"
)

// Engine holds the live snapshot, the id counters, the revision chain,
// and the optional named-rule registry. It orchestrates
// validate-simulate-commit and produces execution proofs.
//
// The engine is single-threaded by contract; it performs no locking and
// must not be shared across goroutines without external synchronization.
type Engine struct {
	snapshot graph.Snapshot
	revision uint64
	counters Counters
	matcher  *match.Matcher
	registry map[string]RegisteredRule
	history  []Proof

	clock  func() time.Time
	actor  string
	logger *slog.Logger
}

// New creates an engine over an empty graph at revision rev-0 with both
// counters at 1 and actor "system".
func New(opts ...Option) *Engine {
	e := &Engine{
		revision: 0,
		counters: NewCounters(),
		registry: map[string]RegisteredRule{},
		clock:    func() time.Time { return time.Now().UTC() },
		actor:    "system",
	}
	for _, opt := range opts {
		opt(e)
	}
	e.matcher = match.New(match.WithLogger(e.logger))
	e.snapshot = graph.Snapshot{
		Metadata: graph.Metadata{
			Revision:    graph.FormatRevision(0),
			Timestamp:   e.clock().UTC(),
			ActorID:     e.actor,
			Description: "Initial empty state",
		},
	}
	return e
}

// Seed replaces the live graph wholesale while staying at the current
// revision. It exists for constructing test fixtures and restoring
// persisted states; rule application is the only mutation path beyond
// it. The graph is deep-copied, and the id counters advance past any
// n{N}/e{N} ids already present so fresh allocations never collide.
func (e *Engine) Seed(g graph.Graph, description string) {
	e.snapshot.Graph = g.Clone()
	e.snapshot.Metadata.Timestamp = e.clock().UTC()
	e.snapshot.Metadata.Description = description

	for _, n := range e.snapshot.Graph.Nodes {
		if num, ok := allocatedID(n.ID, 'n'); ok && num >= e.counters.NextNode {
			e.counters.NextNode = num + 1
		}
	}
	for _, edge := range e.snapshot.Graph.Edges {
		if num, ok := allocatedID(edge.ID, 'e'); ok && num >= e.counters.NextEdge {
			e.counters.NextEdge = num + 1
		}
	}
}

// allocatedID reports whether id has the counter-allocated form
// prefix{N} and returns N.
func allocatedID(id string, prefix byte) (uint64, bool) {
	if len(id) < 2 || id[0] != prefix {
		return 0, false
	}
	num, err := strconv.ParseUint(id[1:], 10, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// Snapshot returns a deep value copy of the current state. Holders see a
// frozen graph unaffected by subsequent applies.
func (e *Engine) Snapshot() graph.Snapshot {
	return e.snapshot.Clone()
}

// Revision returns the current revision string.
func (e *Engine) Revision() string {
	return e.snapshot.Metadata.Revision
}

// Validate runs the full pipeline against the current graph without
// changing state: well-formedness, matching, simulation, and the
// invariant battery.
//
// A *rule.MalformedError or *match.FailedError is returned as the error;
// invariant failures are reported in the Report with IsValid false and a
// nil error.
func (e *Engine) Validate(r rule.DpoRule) (invariant.Report, error) {
	report, _, _, err := e.validate(r)
	return report, err
}

// Apply validates the rule and, if everything holds, promotes the
// sandbox graph, advances the counters and the revision, and returns the
// execution proof.
//
// On any failure the returned error is non-nil and the engine state is
// byte-identical to its pre-call state. Invariant failures surface as
// *InvalidRuleError carrying the report's errors.
func (e *Engine) Apply(r rule.DpoRule) (*Proof, error) {
	report, sandbox, scratch, err := e.validate(r)
	if err != nil {
		return nil, err
	}
	if !report.IsValid {
		trace.Warn(context.Background(), e.logger, "rule rejected",
			slog.String("rule", r.Metadata.ID),
			slog.Int("errors", len(report.Errors)),
		)
		return nil, &InvalidRuleError{Errors: report.Errors}
	}

	// The hash serializes the whole rule; compute it before any state
	// changes so a serialization failure cannot leave a partial commit.
	hash, err := rule.Hash(r)
	if err != nil {
		return nil, &InternalError{Reason: fmt.Sprintf("rule hash: %v", err)}
	}

	before := e.Snapshot()
	now := e.clock().UTC()

	e.revision++
	e.counters = scratch
	e.snapshot = graph.Snapshot{
		Graph: sandbox,
		Metadata: graph.Metadata{
			Revision:    graph.FormatRevision(e.revision),
			Timestamp:   now,
			ActorID:     e.actor,
			Description: r.Metadata.Description,
		},
	}
	after := e.Snapshot()

	proof := Proof{
		RuleMetadata: r.Metadata.Clone(),
		RuleHash:     hash,
		BeforeRev:    before.Metadata.Revision,
		AfterRev:     after.Metadata.Revision,
		Before:       before,
		After:        after,
		Diff:         Diff(before.Graph, after.Graph),
		ActorID:      e.actor,
		Timestamp:    now,
	}
	e.history = append(e.history, proof.Clone())

	trace.Debug(context.Background(), e.logger, "rule committed",
		slog.String("rule", r.Metadata.ID),
		slog.String("revision", after.Metadata.Revision),
		slog.Int("nodes_added", proof.Diff.NodesAdded),
		slog.Int("edges_added", proof.Diff.EdgesAdded),
	)
	return &proof, nil
}

// History returns deep copies of the proofs of every committed apply, in
// commit order.
func (e *Engine) History() []Proof {
	out := make([]Proof, len(e.history))
	for i, p := range e.history {
		out[i] = p.Clone()
	}
	return out
}

// validate is the shared pipeline behind Validate and Apply. It returns
// the report plus the sandbox graph and scratch counters so Apply can
// promote them without re-simulating.
func (e *Engine) validate(r rule.DpoRule) (invariant.Report, graph.Graph, Counters, error) {
	if err := rule.WellFormed(r); err != nil {
		return invariant.Report{}, graph.Graph{}, e.counters, err
	}

	binding, err := e.matcher.Find(&e.snapshot.Graph, r.Left)
	if err != nil {
		return invariant.Report{}, graph.Graph{}, e.counters, err
	}

	sandbox, scratch, err := Simulate(&e.snapshot.Graph, r, binding, e.counters)
	if err != nil {
		return invariant.Report{}, graph.Graph{}, e.counters, err
	}

	report := invariant.Run(&sandbox, r)
	trace.Debug(context.Background(), e.logger, "rule validated",
		slog.String("rule", r.Metadata.ID),
		slog.Bool("is_valid", report.IsValid),
	)
	return report, sandbox, scratch, nil
}
