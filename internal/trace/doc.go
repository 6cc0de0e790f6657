// Package trace provides nil-safe wrappers around log/slog for optional
// debug logging inside the rewrite core.
//
// The core takes an optional *slog.Logger via rewrite.WithLogger; most
// callers pass none. Every helper here tolerates a nil logger with a
// single nil check, so call sites stay unconditional and the disabled
// path costs nothing measurable. Lazy variants defer attribute
// construction until the level is known to be enabled.
package trace
