package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstEval(t *testing.T) {
	assert := assert.New(t)
	c := Real(3.5)
	v, ok := c.Eval(nil)
	assert.True(ok)
	assert.Equal(complex(3.5, 0), v)
	assert.Empty(c.FreeSymbols())
}

func TestSymFreeSymbolsAndSubstitute(t *testing.T) {
	assert := assert.New(t)
	x := Sym("x")
	_, ok := x.Eval(nil)
	assert.False(ok)

	fs := x.FreeSymbols()
	assert.Len(fs, 1)
	_, present := fs["x"]
	assert.True(present)

	substituted := x.Substitute(map[Symbol]Expr{"x": Real(2)})
	assert.Equal(Const(complex(2, 0)), substituted)
}

func TestAddMulEagerSimplification(t *testing.T) {
	assert := assert.New(t)
	sum := Add(Real(1), Real(2))
	_, isConst := sum.(Const)
	assert.True(isConst)

	prod := Mul(Sym("theta"), Real(2))
	_, isConst = prod.(Const)
	assert.False(isConst)
	assert.Contains(prod.FreeSymbols(), Symbol("theta"))

	bound := prod.Substitute(map[Symbol]Expr{"theta": Real(3)})
	v, ok := bound.Eval(nil)
	assert.True(ok)
	assert.Equal(complex(6, 0), v)
}

func TestNegAndModReal(t *testing.T) {
	assert := assert.New(t)
	n := Neg(Real(1.5))
	v, _ := n.Eval(nil)
	assert.Equal(complex(-1.5, 0), v)

	m := ModReal(Real(2.5), 2)
	v, _ = m.Eval(nil)
	assert.InDelta(0.5, real(v), 1e-9)

	symbolic := ModReal(Sym("x"), 2)
	assert.Equal(Sym("x"), symbolic)
}

func TestSymbolRegistryFreshSymbol(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	reg := NewSymbolRegistry()

	s1, err := reg.FreshSymbol("theta")
	require.NoError(err)
	assert.Equal(Symbol("theta"), s1)

	s2, err := reg.FreshSymbol("theta")
	require.NoError(err)
	assert.Equal(Symbol("theta_1"), s2)

	s3, err := reg.FreshSymbol("theta")
	require.NoError(err)
	assert.Equal(Symbol("theta_2"), s3)

	_, err = reg.FreshSymbol("")
	assert.Error(err)
	var clash SymbolClash
	assert.ErrorAs(err, &clash)
}

func TestSymbolRegistryFreshSymbols(t *testing.T) {
	require := require.New(t)
	reg := NewSymbolRegistry()
	syms, err := reg.FreshSymbols("a", 3)
	require.NoError(err)
	require.Equal([]Symbol{"a", "a_1", "a_2"}, syms)

	more, err := reg.FreshSymbols("a", 2)
	require.NoError(err)
	require.Equal([]Symbol{"a_3", "a_4"}, more)
}

func TestUnionAndSortedSymbols(t *testing.T) {
	assert := assert.New(t)
	u := UnionFreeSymbols(Sym("b"), Sym("a"), Real(1))
	assert.Equal([]Symbol{"a", "b"}, SortedSymbols(u))
}
