package rule

// MalformedError reports a rule that violates the structural contract
// between L, K, and R: an unprefixed id in R, a "var:" reference not in
// K, a K variable missing from L, or a pattern referencing undeclared
// variables.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return "malformed rule: " + e.Reason
}
