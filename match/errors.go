package match

// FailedError reports that the left-hand pattern has no injective
// binding in the current graph.
type FailedError struct {
	Reason string
}

func (e *FailedError) Error() string {
	return "match failed: " + e.Reason
}
