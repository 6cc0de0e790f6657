package rule

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex-encoded SHA-256 of the rule's canonical JSON.
//
// Because the canonical form is byte-stable, equal rules hash equally
// across processes and runs. The hash identifies the rule in execution
// proofs and the named-rule registry.
func Hash(r DpoRule) (string, error) {
	data, err := r.MarshalJSON()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
