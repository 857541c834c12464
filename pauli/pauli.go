// Package pauli implements Pauli-string algebra: PauliTensor, generic over
// a Container shape (sparse qubit-indexed vs dense positional) and a Coeff
// coefficient domain (none, quarter-turn, complex, symbolic), per spec
// §4.6. The generic parameters follow spec §9's "trait-object-free
// generic" design note: both Container and Coeff are self-referential
// constraint interfaces (methods return Self), the idiomatic Go shape for
// what the source expressed with C++ template specialization.
package pauli

import "fmt"

// Pauli is one of the four single-qubit Pauli operators.
type Pauli int

const (
	I Pauli = iota
	X
	Y
	Z
)

func (p Pauli) String() string {
	switch p {
	case I:
		return "I"
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return fmt.Sprintf("Pauli(%d)", int(p))
	}
}

// mulTable is the fixed Pauli multiplication table (spec §4.6): result
// symbol plus the accumulated quarter-turn phase of (row * col).
type mulEntry struct {
	result Pauli
	phase  QuarterTurn
}

var mulTable = map[[2]Pauli]mulEntry{
	{I, I}: {I, 0}, {I, X}: {X, 0}, {I, Y}: {Y, 0}, {I, Z}: {Z, 0},
	{X, I}: {X, 0}, {Y, I}: {Y, 0}, {Z, I}: {Z, 0},
	{X, X}: {I, 0}, {Y, Y}: {I, 0}, {Z, Z}: {I, 0},
	{X, Y}: {Z, 1}, {Y, X}: {Z, 3},
	{Y, Z}: {X, 1}, {Z, Y}: {X, 3},
	{Z, X}: {Y, 1}, {X, Z}: {Y, 3},
}

// multiplyPaulis returns (a*b, quarter-turn phase of the product).
func multiplyPaulis(a, b Pauli) (Pauli, QuarterTurn) {
	e := mulTable[[2]Pauli{a, b}]
	return e.result, e.phase
}
