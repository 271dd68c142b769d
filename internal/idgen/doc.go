// Package idgen hands out identifiers used across the simulator: monotonic
// process ids from a Sequence and opaque event ids. It lives under `internal`
// because callers should treat event ids as opaque strings.
package idgen
