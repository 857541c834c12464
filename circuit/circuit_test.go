package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/unit"
)

func TestNewCircuitHasDefaultRegisters(t *testing.T) {
	assert := assert.New(t)
	c := New(2, 1)
	assert.Len(c.AllQubits(), 2)
	assert.Len(c.AllBits(), 1)
	assert.Equal(unit.Qb(0), c.AllQubits()[0])
	assert.Equal(unit.Cb(0), c.AllBits()[0])
}

func TestAddOpSplicesIntoLinearChain(t *testing.T) {
	require := require.New(t)
	c := New(1, 0)
	q := unit.Qb(0)
	v1, err := c.AddOp(op.H(), []unit.ID{q}, "")
	require.NoError(err)
	v2, err := c.AddOp(op.X(), []unit.ID{q}, "")
	require.NoError(err)

	inV, _ := c.InVertex(q)
	outV, _ := c.OutVertex(q)
	gotOp1, _, ok := c.Vertex(v1)
	require.True(ok)
	require.True(gotOp1.IsEqual(op.H()))
	gotOp2, _, ok := c.Vertex(v2)
	require.True(ok)
	require.True(gotOp2.IsEqual(op.X()))

	// chain should read inV -> v1 -> v2 -> outV
	edges := c.Edges()
	foundInToV1, foundV1ToV2, foundV2ToOut := false, false, false
	for _, e := range edges {
		if e.Src == inV && e.Tgt == v1 {
			foundInToV1 = true
		}
		if e.Src == v1 && e.Tgt == v2 {
			foundV1ToV2 = true
		}
		if e.Src == v2 && e.Tgt == outV {
			foundV2ToOut = true
		}
	}
	assert.True(t, foundInToV1)
	assert.True(t, foundV1ToV2)
	assert.True(t, foundV2ToOut)
}

func TestAddOpRejectsWrongKindArgument(t *testing.T) {
	assert := assert.New(t)
	c := New(1, 1)
	_, err := c.AddOp(op.H(), []unit.ID{unit.Cb(0)}, "")
	assert.ErrorIs(err, ErrInvalidArguments)
}

func TestAddMeasureAndCountGates(t *testing.T) {
	require := require.New(t)
	c := New(1, 1)
	q, cb := unit.Qb(0), unit.Cb(0)
	_, err := c.AddOp(op.H(), []unit.ID{q}, "")
	require.NoError(err)
	_, err = c.AddMeasure(q, cb)
	require.NoError(err)
	assert.Equal(t, 1, c.CountGates(op.H(), false))
	assert.Equal(t, 0, c.CountGates(op.X(), false))
}

func TestAddOpBooleanTapDoesNotDisturbLinearChain(t *testing.T) {
	require := require.New(t)
	c := New(1, 1)
	q, cb := unit.Qb(0), unit.Cb(0)
	_, err := c.AddMeasure(q, cb)
	require.NoError(err)

	before := c.currentWriterEdgeMust(t, cb)
	cond := op.NewConditional(op.X(), 1, 1)
	_, err = c.AddOp(cond, []unit.ID{cb, q}, "")
	require.NoError(err)
	after := c.currentWriterEdgeMust(t, cb)
	assert.Equal(t, before, after, "boolean tap must not move the bit's own linear writer")
}

func (c *Circuit) currentWriterEdgeMust(t *testing.T, u unit.ID) EdgeID {
	t.Helper()
	eid, err := c.currentWriterEdge(u)
	require.NoError(t, err)
	return eid
}

func TestDepthCountsNonBarrierLayers(t *testing.T) {
	require := require.New(t)
	c := New(1, 0)
	q := unit.Qb(0)
	_, err := c.AddOp(op.H(), []unit.ID{q}, "")
	require.NoError(err)
	_, err = c.AddOp(op.X(), []unit.ID{q}, "")
	require.NoError(err)
	assert.Equal(t, 2, c.Depth())
}

func TestDepth2QOnlyCountsTwoQubitLayers(t *testing.T) {
	require := require.New(t)
	c := New(2, 0)
	q0, q1 := unit.Qb(0), unit.Qb(1)
	_, err := c.AddOp(op.H(), []unit.ID{q0}, "")
	require.NoError(err)
	_, err = c.AddOp(op.CX(), []unit.ID{q0, q1}, "")
	require.NoError(err)
	assert.Equal(t, 1, c.Depth2Q())
}

func TestImplicitQubitPermutationIdentityByDefault(t *testing.T) {
	require := require.New(t)
	c := New(2, 0)
	q0, q1 := unit.Qb(0), unit.Qb(1)
	_, err := c.AddOp(op.CX(), []unit.ID{q0, q1}, "")
	require.NoError(err)
	assert.False(t, c.HasImplicitWireSwaps())
	perm := c.ImplicitQubitPermutation()
	assert.Equal(t, q0, perm[q0])
	assert.Equal(t, q1, perm[q1])
}

func TestReplaceSWAPsIntroducesImplicitPermutation(t *testing.T) {
	require := require.New(t)
	c := New(2, 0)
	q0, q1 := unit.Qb(0), unit.Qb(1)
	_, err := c.AddOp(op.SWAP(), []unit.ID{q0, q1}, "")
	require.NoError(err)

	n, err := c.ReplaceSWAPs(true)
	require.NoError(err)
	assert.Equal(t, 1, n)
	assert.True(t, c.HasImplicitWireSwaps())
	perm := c.ImplicitQubitPermutation()
	assert.Equal(t, q1, perm[q0])
	assert.Equal(t, q0, perm[q1])
}

func TestReplaceAllImplicitWireSwapsRestoresIdentity(t *testing.T) {
	require := require.New(t)
	c := New(2, 0)
	q0, q1 := unit.Qb(0), unit.Qb(1)
	_, err := c.AddOp(op.SWAP(), []unit.ID{q0, q1}, "")
	require.NoError(err)
	_, err = c.ReplaceSWAPs(true)
	require.NoError(err)
	require.True(c.HasImplicitWireSwaps())

	require.NoError(c.ReplaceAllImplicitWireSwaps())
	assert.False(t, c.HasImplicitWireSwaps())
}

func TestRemoveVertexWithRewireClosesGap(t *testing.T) {
	require := require.New(t)
	c := New(1, 0)
	q := unit.Qb(0)
	v1, err := c.AddOp(op.H(), []unit.ID{q}, "")
	require.NoError(err)
	v2, err := c.AddOp(op.X(), []unit.ID{q}, "")
	require.NoError(err)
	require.NoError(c.RemoveVertex(v1, true))

	assert.Equal(t, 0, c.CountGates(op.H(), false))
	assert.Equal(t, 1, c.CountGates(op.X(), false))
	inV, _ := c.InVertex(q)
	found := false
	for _, e := range c.Edges() {
		if e.Src == inV && e.Tgt == v2 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAppendGluesOntoExistingFrontier(t *testing.T) {
	require := require.New(t)
	c := New(1, 0)
	q := unit.Qb(0)
	_, err := c.AddOp(op.H(), []unit.ID{q}, "")
	require.NoError(err)

	other := New(1, 0)
	_, err = other.AddOp(op.X(), []unit.ID{q}, "")
	require.NoError(err)

	require.NoError(c.Append(other))
	assert.Equal(t, 1, c.CountGates(op.H(), false))
	assert.Equal(t, 1, c.CountGates(op.X(), false))
}

func TestDaggerReversesOrderAndDaggersOps(t *testing.T) {
	require := require.New(t)
	c := New(1, 0)
	q := unit.Qb(0)
	_, err := c.AddOp(op.S(), []unit.ID{q}, "")
	require.NoError(err)
	_, err = c.AddOp(op.H(), []unit.ID{q}, "")
	require.NoError(err)

	d, ok := c.Dagger().(*Circuit)
	require.True(ok)
	assert.Equal(t, 1, d.CountGates(op.H(), false))
	assert.Equal(t, 1, d.CountGates(op.Sdg(), false))

	order := d.topoOrder()
	var ops []op.Operation
	for _, v := range order {
		o, _, _ := d.Vertex(v)
		if !isBoundaryTag(o.Tag()) {
			ops = append(ops, o)
		}
	}
	require.Len(ops, 2)
	assert.True(t, ops[0].IsEqual(op.H().Dagger()))
	assert.True(t, ops[1].IsEqual(op.S().Dagger()))
}

func TestFreeSymbolsAggregatesFromVertices(t *testing.T) {
	require := require.New(t)
	c := New(1, 0)
	q := unit.Qb(0)
	theta := expr.Sym("theta")
	_, err := c.AddOp(op.Rx(theta), []unit.ID{q}, "")
	require.NoError(err)
	fs := c.FreeSymbols()
	assert.Len(t, fs, 1)
}
