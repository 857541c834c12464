package rewrite

import "errors"

// ErrSubstitutionMismatch is returned when a replacement's boundary
// cannot be matched to the targeted Subcircuit (wrong wire counts per
// class, or a boundary wire class Substitute does not support), or when
// a Subcircuit itself violates its own consistency rules. The host
// circuit is left completely unchanged (spec §4.8).
var ErrSubstitutionMismatch = errors.New("rewrite: substitution mismatch")

// ErrOpGroupCollision is returned by SubstituteNamed when replacement
// carries an opgroup label that already names a different region of the
// host circuit (spec §4.8's opgroup-scoped substitution).
var ErrOpGroupCollision = errors.New("rewrite: opgroup collision")
