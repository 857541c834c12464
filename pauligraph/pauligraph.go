// Package pauligraph implements PauliGraph: a sequence of Pauli
// exponentials exp(iθP) together with a trailing Clifford, built from a
// circuit's commands and synthesized back into one (spec §4.7).
// Grounded on the pauli package's generic Container/Coeff tensor (spec
// §4.6) for representing both the exponential vertices and the
// Clifford tableau rows, and on circuit/command for the construction
// walk — the same "iterate commands, maintain running state" shape
// command.Commands itself uses over slicer.New.
package pauligraph

import (
	"errors"

	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/pauli"
	"github.com/kegliz/qcompile/unit"
)

// VertexID identifies one Pauli-exponential vertex, assigned in the
// order Vertices were inserted.
type VertexID int

// Vertex is one exp(iθP) term (spec §4.7: "(PauliTensor, θ: Expr)").
type Vertex struct {
	Paulis pauli.PauliTensor[pauli.SparseMap, pauli.NoCoeff]
	Theta  expr.Expr
}

// Row is a Clifford tableau entry: the current image of one generator
// (X_q or Z_q), expressed as a signed Pauli string over however many
// qubits it has come to touch.
type Row = pauli.PauliTensor[pauli.SparseMap, pauli.QuarterTurn]

// Tableau is the trailing Clifford, tracked the way the stabilizer
// formalism tracks a Clifford circuit: the image of every qubit's X
// and Z generator under every gate applied so far.
type Tableau struct {
	X map[unit.ID]Row
	Z map[unit.ID]Row
}

// PauliGraph is a DAG of Pauli-exponential vertices with
// anti-commutation edges, plus the trailing Clifford those exponentials
// are conjugated against (spec §4.7).
type PauliGraph struct {
	Vertices []Vertex
	// Edges[v] lists the earlier-inserted vertices that v anti-commutes
	// with ("an anti-commutation edge to every previously inserted
	// vertex it anti-commutes with", spec §4.7).
	Edges   map[VertexID][]VertexID
	Tableau Tableau
	Qubits  []unit.ID
	// Clifford records, in order, every Clifford primitive FromCircuit
	// folded into Tableau. Synthesize replays these verbatim for the
	// trailing Clifford (see synthesize.go) rather than resynthesizing
	// a minimal circuit from Tableau's abstract generator images.
	Clifford []CliffordStep
}

// CliffordStep is one Clifford primitive recorded during construction,
// in its original qubit order (control/pivot first for CX/CY/CZ).
type CliffordStep struct {
	Type   op.GateType
	Qubits []unit.ID
}

// ErrMidCircuitMeasurement is returned by FromCircuit when a Measure is
// followed by any further operation on the same qubit (spec §4.7).
var ErrMidCircuitMeasurement = errors.New("pauligraph: mid-circuit measurement")

// ErrUnsupportedOp is returned by FromCircuit for any command that is
// neither a supported Clifford gate, a PauliExpBox, nor a (terminal)
// Measure: conditional ops, resets, non-Clifford primitives (T/Tdg,
// rotations other than via PauliExpBox, Toffoli-family gates) and
// opaque boxes all fall here (spec §4.7).
var ErrUnsupportedOp = errors.New("pauligraph: unsupported operation")
