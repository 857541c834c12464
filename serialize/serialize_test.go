package serialize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/pauli"
	"github.com/kegliz/qcompile/unit"
)

func TestRoundTripEmptyCircuit(t *testing.T) {
	require := require.New(t)
	c := circuit.New(2, 1)
	data, err := Marshal(c)
	require.NoError(err)

	got, err := Unmarshal(data)
	require.NoError(err)
	require.True(c.IsEqualValue(got))
}

func TestRoundTripGatesAndMeasure(t *testing.T) {
	require := require.New(t)
	c := circuit.New(2, 2)
	q0, q1 := unit.Qb(0), unit.Qb(1)
	cb0, cb1 := unit.Cb(0), unit.Cb(1)

	_, err := c.AddOp(op.H(), []unit.ID{q0}, "")
	require.NoError(err)
	_, err = c.AddOp(op.CX(), []unit.ID{q0, q1}, "")
	require.NoError(err)
	_, err = c.AddOp(op.Rz(expr.Sym("theta")), []unit.ID{q1}, "")
	require.NoError(err)
	_, err = c.AddMeasure(q0, cb0)
	require.NoError(err)
	_, err = c.AddMeasure(q1, cb1)
	require.NoError(err)

	data, err := Marshal(c)
	require.NoError(err)

	got, err := Unmarshal(data)
	require.NoError(err)
	require.True(c.IsEqualValue(got))
}

func TestRoundTripImplicitPermutation(t *testing.T) {
	require := require.New(t)
	c := circuit.New(2, 0)
	q0, q1 := unit.Qb(0), unit.Qb(1)
	_, err := c.AddOp(op.SWAP(), []unit.ID{q0, q1}, "")
	require.NoError(err)

	_, err = c.ReplaceSWAPs(true)
	require.NoError(err)
	require.True(c.HasImplicitWireSwaps())

	data, err := Marshal(c)
	require.NoError(err)

	got, err := Unmarshal(data)
	require.NoError(err)
	require.True(c.IsEqualValue(got))
	require.True(got.HasImplicitWireSwaps())
}

func TestRoundTripPauliExpBox(t *testing.T) {
	require := require.New(t)
	q0, q1 := unit.Qb(0), unit.Qb(1)
	tensor := pauli.New(pauli.NewSparseMap(), pauli.NoCoeff{}).With(q0, pauli.X).With(q1, pauli.Z)
	box := op.NewPauliExpBox(tensor, expr.Sym("alpha"))

	c := circuit.New(2, 0)
	_, err := c.AddOp(box, []unit.ID{q0, q1}, "")
	require.NoError(err)

	data, err := Marshal(c)
	require.NoError(err)

	got, err := Unmarshal(data)
	require.NoError(err)
	require.True(c.IsEqualValue(got))
}

func TestEncodeOperationRejectsClassicalTransform(t *testing.T) {
	require := require.New(t)
	ct := op.ClassicalTransform{NIn: 1, NOut: 1, Table: func(b []bool) []bool { return b }}
	_, err := EncodeOperation(ct)
	require.ErrorIs(err, ErrNotSerializable)
}

func TestRoundTripNestedCircBox(t *testing.T) {
	require := require.New(t)
	inner := circuit.New(1, 0)
	_, err := inner.AddOp(op.H(), []unit.ID{unit.Qb(0)}, "")
	require.NoError(err)

	outer := circuit.New(1, 0)
	_, err = outer.AddOp(op.NewCircBox(inner), []unit.ID{unit.Qb(0)}, "")
	require.NoError(err)

	data, err := Marshal(outer)
	require.NoError(err)

	got, err := Unmarshal(data)
	require.NoError(err)
	require.True(outer.IsEqualValue(got))
}

func TestExprRoundTrip(t *testing.T) {
	require := require.New(t)
	e := expr.Add(expr.Mul(expr.Sym("a"), expr.Const(2)), expr.Sym("b"))
	encoded := EncodeExpr(e)
	decoded, err := DecodeExpr(encoded)
	require.NoError(err)
	require.True(e.IsEqual(decoded))
}

func TestUnitIDRoundTrip(t *testing.T) {
	require := require.New(t)
	u := unit.New(unit.Qubit, "q", 3, 1)
	encoded := EncodeUnitID(u)
	decoded, err := DecodeUnitID(encoded)
	require.NoError(err)
	require.Equal(u, decoded)
}
