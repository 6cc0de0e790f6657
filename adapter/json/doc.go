// Package json parses rules, graphs, and snapshots from JSON documents
// and writes them back in canonical form.
//
// Input documents may contain comments and trailing commas (JSONC); the
// adapter strips them before decoding unless strict mode is enabled.
// Output is always canonical: mapping keys in sorted order, floats in
// shortest round-trip form, byte-stable across runs. Parsing a canonical
// document and writing it back yields the identical bytes.
package json
