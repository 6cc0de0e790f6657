package json

import "errors"

// ErrEmptyDocument is returned when the input holds no JSON value.
var ErrEmptyDocument = errors.New("adapter/json: empty document")

// Adapter parses rule and graph documents.
//
// Adapter is safe for concurrent Parse* calls after construction; all
// state is configuration.
type Adapter struct {
	strictJSON bool
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithStrictJSON disables JSONC preprocessing: comments and trailing
// commas become parse errors. Off by default.
func WithStrictJSON(strict bool) Option {
	return func(a *Adapter) {
		a.strictJSON = strict
	}
}

// NewAdapter creates an adapter with the given options.
func NewAdapter(opts ...Option) *Adapter {
	a := &Adapter{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
