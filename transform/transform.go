// Package transform implements the Transform combinator family (spec
// §4.9): a Transform is a circuit rewrite that reports whether it
// changed anything, Sequence/Repeat/RepeatUntil compose them, and a set
// of concrete Clifford-circuit passes are provided on top, grounded in
// original_source/tket's Transformations/CliffordOptimisation.cpp.
// Grounded on the teacher's qc/builder/builder.go fluent chaining shape
// (each step either succeeds or the whole chain reports failure)
// applied here to RepeatUntil's loop-then-check contract; per-pass
// logging uses internal/logger's SpawnForPass the way the teacher's
// server middleware spawns a per-request logger.
package transform

import (
	"errors"

	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/internal/cfg"
	"github.com/kegliz/qcompile/internal/logger"
)

// ErrPredicateNotSatisfied is returned by RepeatUntil when the
// transform has stabilized (stopped reporting changes) without the
// predicate becoming true, or when the iteration cap is reached first
// (spec §4.9).
var ErrPredicateNotSatisfied = errors.New("transform: predicate not satisfied")

// Transform rewrites c in place and reports whether it changed
// anything (spec §4.9's Circuit -> bool).
type Transform func(c *circuit.Circuit) bool

// Predicate checks a property of c, used to terminate RepeatUntil.
type Predicate func(c *circuit.Circuit) bool

// Sequence runs each transform once, in order, reporting whether any of
// them changed the circuit (spec §4.9's >> combinator).
func Sequence(ts ...Transform) Transform {
	return func(c *circuit.Circuit) bool {
		changed := false
		for _, t := range ts {
			if t(c) {
				changed = true
			}
		}
		return changed
	}
}

// Repeat runs t until it reports no change, capped at
// cfg.Defaults().MaxRepeatIterations as a non-termination safety valve
// (spec §4.9's repeat).
func Repeat(t Transform) Transform {
	return RepeatCapped(t, cfg.Defaults().MaxRepeatIterations)
}

// RepeatCapped is Repeat with an explicit iteration cap.
func RepeatCapped(t Transform, maxIterations int) Transform {
	return func(c *circuit.Circuit) bool {
		changed := false
		for i := 0; i < maxIterations; i++ {
			if !t(c) {
				break
			}
			changed = true
		}
		return changed
	}
}

// RepeatUntil runs t repeatedly until pred(c) holds, failing with
// ErrPredicateNotSatisfied if t stabilizes (returns false) before pred
// is satisfied, or if maxIterations is exhausted first (spec §4.9's
// repeat_until).
func RepeatUntil(t Transform, pred Predicate, maxIterations int) func(*circuit.Circuit) error {
	return func(c *circuit.Circuit) error {
		for i := 0; i < maxIterations; i++ {
			if pred(c) {
				return nil
			}
			if !t(c) {
				if pred(c) {
					return nil
				}
				return ErrPredicateNotSatisfied
			}
		}
		if pred(c) {
			return nil
		}
		return ErrPredicateNotSatisfied
	}
}

// Logged wraps t so every application it makes is announced on l at
// debug level, tagged with name via logger.SpawnForPass; changed/
// unchanged applications are both logged since a no-op application is
// useful signal when diagnosing why a Repeat loop isn't converging.
func Logged(name string, t Transform, l *logger.Logger) Transform {
	pl := l.SpawnForPass(name)
	return func(c *circuit.Circuit) bool {
		changed := t(c)
		pl.Debug().Bool("changed", changed).Msg("pass applied")
		return changed
	}
}
