package op

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/unit"
)

func TestPrimitiveGateDaggerInvolutive(t *testing.T) {
	assert := assert.New(t)
	for _, g := range []PrimitiveGate{H(), X(), Y(), Z()} {
		assert.True(g.IsEqual(g.Dagger().Dagger()), g.String())
	}
	assert.True(S().Dagger().IsEqual(Sdg()))
	assert.True(T().Dagger().IsEqual(Tdg()))
	assert.True(V().Dagger().IsEqual(Vdg()))
}

func TestPrimitiveGateRotationDaggerNegatesModPeriod(t *testing.T) {
	require := require.New(t)
	g := Rx(expr.Real(1))
	d := g.Dagger().(PrimitiveGate)
	require.Len(d.Params, 1)
	v, ok := d.Params[0].Eval(nil)
	require.True(ok)
	assert.InDelta(t, 3.0, real(v), 1e-9) // -1 mod 4 == 3
}

func TestPrimitiveGateSignatureAndCounts(t *testing.T) {
	assert := assert.New(t)
	g := CX()
	assert.Equal([]unit.WireType{unit.Quantum, unit.Quantum}, g.Signature())
	assert.Equal(2, g.NQubits())
	assert.Equal(0, g.NBits())
}

func TestPrimitiveGateParamCountPanics(t *testing.T) {
	assert.Panics(t, func() { NewPrimitive(GateRx) })
}

func TestPrimitiveGateSymbolSubstitution(t *testing.T) {
	assert := assert.New(t)
	theta := expr.Sym("theta")
	g := Rx(theta)
	subbed := g.SymbolSubstitution(map[expr.Symbol]expr.Expr{"theta": expr.Real(2)}).(PrimitiveGate)
	assert.Empty(subbed.FreeSymbols())
	v, ok := subbed.Params[0].Eval(nil)
	assert.True(ok)
	assert.Equal(complex(2, 0), v)
}

func TestMeasureAndResetSignature(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]unit.WireType{unit.Quantum, unit.Classical}, Measure{}.Signature())
	assert.Equal([]unit.WireType{unit.Quantum}, Reset{}.Signature())
	assert.True(Measure{}.IsEqual(Measure{}))
	assert.False(Measure{}.IsEqual(Reset{}))
}

func TestBarrierPreservesDataOnDaggerTranspose(t *testing.T) {
	assert := assert.New(t)
	b := NewBarrier([]unit.WireType{unit.Quantum, unit.Quantum}, "opt-barrier-1")
	assert.True(b.IsEqual(b.Dagger()))
	assert.True(b.IsEqual(b.Transpose()))
	assert.Equal("Barrier[opt-barrier-1]", b.String())
}

func TestConditionalDelegatesToInner(t *testing.T) {
	assert := assert.New(t)
	c := NewConditional(X(), 2, 3)
	assert.Equal(1, c.NQubits())
	assert.Equal(2, c.NBoolean())
	d := c.Dagger().(Conditional)
	assert.Equal(c.Width, d.Width)
	assert.Equal(c.Value, d.Value)
	assert.True(d.Inner.IsEqual(X().Dagger()))
	assert.Equal("If(width=2,value=3).X", c.String())
}

func TestExplicitPredicateTruthTable(t *testing.T) {
	assert := assert.New(t)
	// AND of two bits.
	and := ExplicitPredicate{NIn: 2, Table: []bool{false, false, false, true}}
	assert.Equal([]bool{false}, and.EvalBits([]bool{false, false}))
	assert.Equal([]bool{true}, and.EvalBits([]bool{true, true}))
}

func TestExplicitPredicateEqualsAcrossRepresentations(t *testing.T) {
	assert := assert.New(t)
	and := ExplicitPredicate{NIn: 2, Table: []bool{false, false, false, true}}
	rangeAsAnd := RangePredicate{N: 2, A: 3, B: 3} // only input 11 (=3) satisfies
	assert.True(and.IsEqual(rangeAsAnd))
}

func TestRangePredicate(t *testing.T) {
	assert := assert.New(t)
	r := RangePredicate{N: 3, A: 2, B: 5}
	for v := uint64(0); v < 8; v++ {
		bits := bitsOf(v, 3)
		want := v >= 2 && v <= 5
		assert.Equal([]bool{want}, r.EvalBits(bits))
	}
}

func TestMultiBitOpTilesInner(t *testing.T) {
	assert := assert.New(t)
	notGate := ExplicitModifier{NIn: 0, Table: []bool{true, false}}
	multi := MultiBitOp{Inner: notGate, N: 3}
	out := multi.EvalBits([]bool{false, true, false})
	assert.Equal([]bool{true, false, true}, out)
}

func TestSetBitsAndCopyBits(t *testing.T) {
	assert := assert.New(t)
	sb := SetBits{Values: []bool{true, false, true}}
	assert.Equal([]bool{true, false, true}, sb.EvalBits(nil))
	cb := CopyBits{N: 2}
	assert.Equal([]bool{true, false}, cb.EvalBits([]bool{true, false}))
}

func TestClassicalTransformEquality(t *testing.T) {
	assert := assert.New(t)
	xorFn := func(bits []bool) []bool { return []bool{bits[0] != bits[1]} }
	ct := ClassicalTransform{NIn: 2, NOut: 1, Table: xorFn}
	xorTable := ExplicitPredicate{NIn: 2, Table: []bool{false, true, true, false}}
	assert.True(ct.IsEqual(xorTable))
}

func TestWASMOpIsExtern(t *testing.T) {
	assert := assert.New(t)
	w := NewWASMOp(4, 1, []int{2}, []int{2}, "add_i32", "mymod")
	var ie IsExtern = w
	assert.True(ie.IsExtern())
	assert.Equal(5, len(w.Signature()))
	assert.True(w.IsEqual(w.Dagger()))
}

func TestBoundarySentinels(t *testing.T) {
	assert := assert.New(t)
	q0 := unit.Qb(0)
	in := Input(q0)
	out := Output(q0)
	assert.False(in.IsEqual(out))
	assert.True(in.IsEqual(Input(q0)))
	assert.Equal(1, in.NQubits())
	assert.Equal(0, in.NBits())

	cb0 := unit.Cb(0)
	clin := ClInput(cb0)
	assert.Equal(1, clin.NBits())
	assert.Equal(0, clin.NQubits())
}

func TestQControlBoxSignatureAndEquality(t *testing.T) {
	assert := assert.New(t)
	qc := NewQControlBox(X(), 2)
	assert.Equal(3, qc.NQubits())
	qc2 := NewQControlBox(X(), 2)
	assert.True(qc.IsEqual(qc2))
	assert.False(qc.IsEqual(NewQControlBox(X(), 1)))
}

func TestUnitaryBoxDaggerIsConjugateTranspose(t *testing.T) {
	assert := assert.New(t)
	m := [][]complex128{
		{0, complex(0, -1)},
		{complex(0, 1), 0},
	}
	box := NewUnitary1qBox(m)
	dag := box.Dagger().(unitaryBox)
	assert.Equal(complex(0, -1), dag.matrix[1][0])
	assert.Equal(complex(0, 1), dag.matrix[0][1])
}
