// Package op implements the Operation hierarchy: a tagged sum type
// covering primitive gates, composite boxes, classical operations,
// conditional wrappers and barriers (spec §4.2). Every variant is an
// immutable value with a fixed Signature; the hierarchy replaces the
// source's shared_ptr-with-dynamic_cast design with a Go tagged union,
// per spec §9's design note, the same way the teacher's qc/gate package
// models gates as small immutable value types behind a narrow interface
// (qc/gate/gate.go's Gate interface and builtin.go's singleton values)
// rather than a class hierarchy.
package op

import (
	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/unit"
)

// Tag identifies an Operation variant.
type Tag int

const (
	TagPrimitive Tag = iota
	TagMeasure
	TagReset
	TagBarrier
	TagConditional
	TagCircBox
	TagUnitary1qBox
	TagUnitary2qBox
	TagUnitary3qBox
	TagExpBox
	TagPauliExpBox
	TagPauliExpPairBox
	TagPauliExpCommutingSetBox
	TagQControlBox
	TagMultiplexorBox
	TagMultiplexedRotationBox
	TagMultiplexedU2Box
	TagMultiplexedTensoredU2Box
	TagCustomGate
	TagSetBits
	TagCopyBits
	TagExplicitPredicate
	TagExplicitModifier
	TagRangePredicate
	TagMultiBit
	TagClassicalTransform
	TagWASM
	TagInput
	TagOutput
	TagClInput
	TagClOutput
	TagWasmInput
	TagWasmOutput
)

// Operation is the uniform contract every variant in spec §4.2 exposes.
type Operation interface {
	Tag() Tag
	// Signature is the ordered list of wire types at this operation's
	// ports (spec §3 invariant 2).
	Signature() []unit.WireType
	NQubits() int
	NBits() int
	NClassical() int
	NBoolean() int
	// Dagger and Transpose return another Operation; daggers are
	// involutive (spec §4.2).
	Dagger() Operation
	Transpose() Operation
	// SymbolSubstitution returns an operation with free symbols
	// replaced; numerical (symbol-free) operations return themselves.
	SymbolSubstitution(m map[expr.Symbol]expr.Expr) Operation
	FreeSymbols() map[expr.Symbol]struct{}
	// IsEqual is structural equality (spec §4.2 / §3 invariant 6).
	IsEqual(other Operation) bool
	// HashValue is consistent with IsEqual for non-ClassicalEvalOp
	// operations; ClassicalEvalOp implementations must not be used as
	// hash keys when truth-table equality is required (spec §4.2).
	HashValue() uint64
	String() string
}

// IsExtern reports whether an Operation is an opaque external (only
// WASMOp, per spec §4.2).
type IsExtern interface {
	IsExtern() bool
}

func countWire(sig []unit.WireType, w unit.WireType) int {
	n := 0
	for _, t := range sig {
		if t == w {
			n++
		}
	}
	return n
}

// countsFromSignature derives the four port-count accessors from a
// signature, the way every concrete Operation's NQubits/NBits/
// NClassical/NBoolean is implemented: NQubits counts Quantum ports,
// NClassical counts (read-write) Classical ports, NBoolean counts
// (read-only) Boolean ports, and NBits is their sum — the total number
// of bit-typed ports, matching the source's "n_bits" meaning "every
// classical port regardless of read/write role".
func countsFromSignature(sig []unit.WireType) (nQubits, nClassical, nBoolean, nBits int) {
	nQubits = countWire(sig, unit.Quantum)
	nClassical = countWire(sig, unit.Classical)
	nBoolean = countWire(sig, unit.Boolean)
	nBits = nClassical + nBoolean
	return
}
