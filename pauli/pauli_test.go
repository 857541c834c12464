package pauli

import (
	"testing"

	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qbs(n int) []unit.ID {
	out := make([]unit.ID, n)
	for i := range out {
		out[i] = unit.Qb(uint(i))
	}
	return out
}

func sparseTensor(p map[int]Pauli, q QuarterTurn) PauliTensor[SparseMap, QuarterTurn] {
	entries := make([]QubitPauli, 0, len(p))
	for i, v := range p {
		entries = append(entries, QubitPauli{Qubit: unit.Qb(uint(i)), P: v})
	}
	return New[SparseMap, QuarterTurn](NewSparseMap(entries...), q)
}

func TestMultiplyXY(t *testing.T) {
	assert := assert.New(t)
	q := unit.Qb(0)
	x := sparseTensor(map[int]Pauli{0: X}, 0)
	y := sparseTensor(map[int]Pauli{0: Y}, 0)

	xy := Multiply(x, y)
	assert.Equal(Z, xy.Get(q))
	assert.Equal(QuarterTurn(1), xy.Coeff) // i

	yx := Multiply(y, x)
	assert.Equal(Z, yx.Get(q))
	assert.Equal(QuarterTurn(3), yx.Coeff) // -i
}

func TestCommutesWith(t *testing.T) {
	// [X,Y,Z,Y,X] vs [Z,X,Y,Z,I]: conflicts at positions 0,1,2,3 = 4 (even) -> commute.
	a := sparseTensor(map[int]Pauli{0: X, 1: Y, 2: Z, 3: Y, 4: X}, 0)
	b := sparseTensor(map[int]Pauli{0: Z, 1: X, 2: Y, 3: Z}, 0)
	assert.True(t, CommutesWith(a, b))
}

func TestCompareOrderingILO(t *testing.T) {
	assert := assert.New(t)
	a := sparseTensor(map[int]Pauli{0: X, 1: I}, 0)
	b := sparseTensor(map[int]Pauli{1: X}, 0)
	// b has a non-identity at the higher-indexed qubit (1); ILO compares
	// the higher qubit first, so b should sort before/after a
	// consistently with qubit 1 vs qubit 0 ordering.
	c := Compare(a, b)
	assert.NotEqual(0, c)
}

func TestTransposeYCount(t *testing.T) {
	assert := assert.New(t)
	t1 := sparseTensor(map[int]Pauli{0: Y, 1: Y}, 0)
	assert.Equal(2, t1.YCount())
	tr := t1.Transpose()
	assert.Equal(QuarterTurn(0), tr.Coeff) // even Y count -> unchanged

	t2 := sparseTensor(map[int]Pauli{0: Y}, 0)
	assert.Equal(1, t2.YCount())
	tr2 := t2.Transpose()
	assert.Equal(QuarterTurn(2), tr2.Coeff) // odd Y count -> *-1
}

func TestHashConsistentWithEqual(t *testing.T) {
	assert := assert.New(t)
	a := sparseTensor(map[int]Pauli{0: X, 1: I}, 0) // trailing I dropped
	b := sparseTensor(map[int]Pauli{0: X}, 0)
	assert.True(a.IsEqual(b))
	assert.Equal(a.Hash(), b.Hash())
}

func TestCastContainerRoundTrip(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	sparse := sparseTensor(map[int]Pauli{0: X, 2: Z}, 0)
	dense, err := CastSparseToDense(sparse.Map)
	require.NoError(err)
	assert.Equal(3, dense.Len())

	back := CastDenseToSparse(dense)
	assert.True(sparse.Map.IsEqual(back))
}

func TestCastContainerNonDefaultRegister(t *testing.T) {
	s := NewSparseMap(QubitPauli{Qubit: unit.New(unit.Qubit, "ancilla", 0), P: X})
	_, err := CastSparseToDense(s)
	var nde NonDefaultRegister
	require.ErrorAs(t, err, &nde)
}

func TestCastCoeffLosslessAndLossy(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	assert.Equal(Complex(complex(0, 1)), CastQuarterTurnToComplex(1))

	q, err := CastComplexToQuarterTurn(Complex(complex(0, 1)))
	require.NoError(err)
	assert.Equal(QuarterTurn(1), q)

	_, err = CastComplexToQuarterTurn(Complex(complex(0.5, 0.5)))
	var npi NonPowerOfI
	require.ErrorAs(err, &npi)

	sym := Symbolic{E: expr.Sym("theta")}
	_, err = CastSymbolicToComplex(sym)
	var ue UnevaluatedSymbol
	require.ErrorAs(err, &ue)
}
