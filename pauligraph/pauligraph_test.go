package pauligraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/oracle"
	"github.com/kegliz/qcompile/pauli"
	"github.com/kegliz/qcompile/unit"
)

func zzxxExpBox(theta expr.Expr, q0, q1, q2, q3 unit.ID) op.PauliExpBox {
	tensor := pauli.New(pauli.NewSparseMap(
		pauli.QubitPauli{Qubit: q0, P: pauli.Z},
		pauli.QubitPauli{Qubit: q1, P: pauli.Z},
		pauli.QubitPauli{Qubit: q2, P: pauli.X},
		pauli.QubitPauli{Qubit: q3, P: pauli.X},
	), pauli.NoCoeff{})
	return op.NewPauliExpBox(tensor, theta)
}

func zziiExpBox(theta expr.Expr, q0, q1 unit.ID) op.PauliExpBox {
	tensor := pauli.New(pauli.NewSparseMap(
		pauli.QubitPauli{Qubit: q0, P: pauli.Z},
		pauli.QubitPauli{Qubit: q1, P: pauli.Z},
	), pauli.NoCoeff{})
	return op.NewPauliExpBox(tensor, theta)
}

// TestFromCircuitCommutingSet builds spec §8 scenario 6's two-term
// input (exp(iθ1 ZZXX) · exp(iθ2 ZZII) on 4 qubits) and checks the
// PauliGraph construction recovers two vertices with no anti-commutation
// edge between them (ZZXX and ZZII overlap only on Z-type qubits, an
// even number of positions where both are non-I and differ: zero).
func TestFromCircuitCommutingSet(t *testing.T) {
	require := require.New(t)
	c := circuit.New(4, 0)
	q0, q1, q2, q3 := unit.Qb(0), unit.Qb(1), unit.Qb(2), unit.Qb(3)

	theta1 := expr.Sym("theta1")
	theta2 := expr.Sym("theta2")
	_, err := c.AddOp(zzxxExpBox(theta1, q0, q1, q2, q3), []unit.ID{q0, q1, q2, q3}, "")
	require.NoError(err)
	_, err = c.AddOp(zziiExpBox(theta2, q0, q1), []unit.ID{q0, q1}, "")
	require.NoError(err)

	pg, err := FromCircuit(c)
	require.NoError(err)
	require.Len(pg.Vertices, 2)
	assert.Empty(t, pg.Edges[1], "ZZXX and ZZII commute (even qubit overlap)")
}

// TestFromCircuitAntiCommutingPair checks that XI and ZI (anti-commuting
// on the shared qubit) produce an edge.
func TestFromCircuitAntiCommutingPair(t *testing.T) {
	require := require.New(t)
	c := circuit.New(1, 0)
	q0 := unit.Qb(0)

	x := pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: q0, P: pauli.X}), pauli.NoCoeff{})
	z := pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: q0, P: pauli.Z}), pauli.NoCoeff{})

	_, err := c.AddOp(op.NewPauliExpBox(x, expr.Real(0.3)), []unit.ID{q0}, "")
	require.NoError(err)
	_, err = c.AddOp(op.NewPauliExpBox(z, expr.Real(0.7)), []unit.ID{q0}, "")
	require.NoError(err)

	pg, err := FromCircuit(c)
	require.NoError(err)
	require.Len(pg.Vertices, 2)
	assert.Equal(t, []VertexID{0}, pg.Edges[1])
}

// TestFromCircuitMidCircuitMeasurement checks spec §4.7's forbidden-input
// rule: any further op on an already-measured qubit fails.
func TestFromCircuitMidCircuitMeasurement(t *testing.T) {
	require := require.New(t)
	c := circuit.New(1, 1)
	q0, b0 := unit.Qb(0), unit.Cb(0)
	_, err := c.AddMeasure(q0, b0)
	require.NoError(err)
	_, err = c.AddOp(op.H(), []unit.ID{q0}, "")
	require.NoError(err)

	_, err = FromCircuit(c)
	assert.ErrorIs(t, err, ErrMidCircuitMeasurement)
}

// TestFromCircuitUnsupportedOp checks a non-Clifford primitive outside
// a PauliExpBox fails ErrUnsupportedOp.
func TestFromCircuitUnsupportedOp(t *testing.T) {
	require := require.New(t)
	c := circuit.New(1, 0)
	q0 := unit.Qb(0)
	_, err := c.AddOp(op.NewPrimitive(op.GateT), []unit.ID{q0}, "")
	require.NoError(err)

	_, err = FromCircuit(c)
	assert.ErrorIs(t, err, ErrUnsupportedOp)
}

// TestSynthesizeCommutingSetUnitary is spec §8 scenario 6: synthesize
// exp(iθ1 ZZXX) · exp(iθ2 ZZII) on 4 qubits with Sets/Snake and check the
// output reproduces the input unitary to ε=1e-10 for numerical thetas.
// The two vertices commute, so Sets groups them into a single colour
// class and diagonalizes it with one shared Clifford: ZZXX's own fold
// (rotate q2,q3 to Z, CX(q0,q1).CX(q1,q2).CX(q2,q3), 3 CX onto q3) also
// reduces ZZII's image to a bare Z on q1, so ZZII's Rz costs it no CX of
// its own. The set's conjugating Clifford is unwound once at the end
// (3 more CX), for 6 total — fewer than Individual's 8 (3+3 for ZZXX,
// 1+1 for ZZII, each unwound separately).
func TestSynthesizeCommutingSetUnitary(t *testing.T) {
	require := require.New(t)
	c := circuit.New(4, 0)
	q0, q1, q2, q3 := unit.Qb(0), unit.Qb(1), unit.Qb(2), unit.Qb(3)

	theta1 := expr.Real(0.37)
	theta2 := expr.Real(-0.91)
	_, err := c.AddOp(zzxxExpBox(theta1, q0, q1, q2, q3), []unit.ID{q0, q1, q2, q3}, "")
	require.NoError(err)
	_, err = c.AddOp(zziiExpBox(theta2, q0, q1), []unit.ID{q0, q1}, "")
	require.NoError(err)

	pg, err := FromCircuit(c)
	require.NoError(err)

	synth, err := Synthesize(pg, Sets, Snake)
	require.NoError(err)

	want := expIThetaZZXXthenZZII(t, theta1, theta2, q0, q1, q2, q3)
	got, err := oracle.Unitary(synth, nil)
	require.NoError(err)

	diff := oracle.MaxUnitaryDiff(want, got)
	assert.Less(t, diff, 1e-10)

	assert.Equal(t, 6, synth.CountGates(op.CX(), false))
}

// expIThetaZZXXthenZZII builds the reference unitary for
// exp(iθ1 ZZXX)·exp(iθ2 ZZII) by constructing each term as its own
// Individual-strategy PauliGraph synthesis and composing the two
// circuits, the most direct way to get an oracle-checkable reference
// without hand-deriving an 16x16 matrix.
func expIThetaZZXXthenZZII(t *testing.T, theta1, theta2 expr.Expr, q0, q1, q2, q3 unit.ID) [][]complex128 {
	c := circuit.New(4, 0)
	_, err := c.AddOp(zzxxExpBox(theta1, q0, q1, q2, q3), []unit.ID{q0, q1, q2, q3}, "")
	require.NoError(t, err)
	_, err = c.AddOp(zziiExpBox(theta2, q0, q1), []unit.ID{q0, q1}, "")
	require.NoError(t, err)

	pg, err := FromCircuit(c)
	require.NoError(t, err)
	synth, err := Synthesize(pg, Individual, Snake)
	require.NoError(t, err)

	u, err := oracle.Unitary(synth, nil)
	require.NoError(t, err)
	return u
}

// TestPauliGraphCliffordRecorded checks a Clifford prefix (H on q0, CX)
// before a PauliExpBox is folded into the tableau and replayed verbatim
// by Synthesize, rather than appearing as its own vertex.
func TestPauliGraphCliffordRecorded(t *testing.T) {
	require := require.New(t)
	c := circuit.New(2, 0)
	q0, q1 := unit.Qb(0), unit.Qb(1)
	_, err := c.AddOp(op.H(), []unit.ID{q0}, "")
	require.NoError(err)
	_, err = c.AddOp(op.CX(), []unit.ID{q0, q1}, "")
	require.NoError(err)
	z := pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: q0, P: pauli.Z}), pauli.NoCoeff{})
	_, err = c.AddOp(op.NewPauliExpBox(z, expr.Real(0.5)), []unit.ID{q0}, "")
	require.NoError(err)

	pg, err := FromCircuit(c)
	require.NoError(err)
	require.Len(pg.Vertices, 1)
	require.Len(pg.Clifford, 2)
	assert.Equal(t, op.GateH, pg.Clifford[0].Type)
	assert.Equal(t, op.GateCX, pg.Clifford[1].Type)
}
