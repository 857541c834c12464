package slicer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/unit"
)

func drain(t *testing.T, it *SliceIterator) [][]circuit.VertexID {
	t.Helper()
	var cuts [][]circuit.VertexID
	for !it.Finished() {
		cut, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			t.Fatalf("iterator stalled before Finished()")
		}
		cuts = append(cuts, cut.Slice)
	}
	return cuts
}

func TestSliceIteratorInitialCutIsBoundaryInputs(t *testing.T) {
	require := require.New(t)
	c := circuit.New(1, 0)
	q := unit.Qb(0)
	_, err := c.AddOp(op.H(), []unit.ID{q}, "")
	require.NoError(err)

	it := New(c, nil)
	cut, ok, err := it.Next()
	require.NoError(err)
	require.True(ok)
	inV, _ := c.InVertex(q)
	assert.Contains(t, cut.Slice, inV)
}

func TestSliceIteratorCoversEveryVertexExactlyOnce(t *testing.T) {
	require := require.New(t)
	c := circuit.New(2, 0)
	q0, q1 := unit.Qb(0), unit.Qb(1)
	_, err := c.AddOp(op.H(), []unit.ID{q0}, "")
	require.NoError(err)
	_, err = c.AddOp(op.CX(), []unit.ID{q0, q1}, "")
	require.NoError(err)

	it := New(c, nil)
	cuts := drain(t, it)
	seen := map[circuit.VertexID]bool{}
	for _, slice := range cuts {
		for _, v := range slice {
			assert.False(t, seen[v], "vertex %d admitted twice", v)
			seen[v] = true
		}
	}
	assert.Equal(t, len(c.VertexIDs()), len(seen))
	assert.True(t, it.Finished())
}

func TestSliceIteratorZeroArityVertexJoinsFirstCut(t *testing.T) {
	require := require.New(t)
	c := circuit.New(1, 0)
	q := unit.Qb(0)
	phase := c.AddVertex(op.Phase(expr.Real(0.5)), "")
	_, err := c.AddOp(op.H(), []unit.ID{q}, "")
	require.NoError(err)

	it := New(c, nil)
	cut, ok, err := it.Next()
	require.NoError(err)
	require.True(ok)
	assert.Contains(t, cut.Slice, phase)
}

func TestSliceIteratorSkipFnFoldsBarriersIntoFrontier(t *testing.T) {
	require := require.New(t)
	c := circuit.New(1, 0)
	q := unit.Qb(0)
	_, err := c.AddOp(op.H(), []unit.ID{q}, "")
	require.NoError(err)
	_, err = c.AddBarrier([]unit.ID{q}, "")
	require.NoError(err)
	_, err = c.AddOp(op.X(), []unit.ID{q}, "")
	require.NoError(err)

	skipBarrier := func(o op.Operation) bool { _, ok := o.(op.Barrier); return ok }
	it := New(c, skipBarrier)
	cuts := drain(t, it)

	// the barrier must never start its own cut; it folds into whichever
	// cut admits it.
	for _, slice := range cuts {
		hasBarrier, hasOther := false, false
		for _, v := range slice {
			o, _, _ := c.Vertex(v)
			if _, ok := o.(op.Barrier); ok {
				hasBarrier = true
			} else if !c.IsBoundary(v) {
				hasOther = true
			}
		}
		if hasBarrier {
			assert.True(t, hasOther, "barrier-only cut should have been folded elsewhere")
		}
	}
}

func TestSliceIteratorBooleanTapResolvesInSameFrontierAsWrite(t *testing.T) {
	require := require.New(t)
	c := circuit.New(1, 1)
	q, cb := unit.Qb(0), unit.Cb(0)
	_, err := c.AddMeasure(q, cb)
	require.NoError(err)
	cond := op.NewConditional(op.X(), 1, 1)
	_, err = c.AddOp(cond, []unit.ID{cb, q}, "")
	require.NoError(err)

	it := New(c, nil)
	cuts := drain(t, it)
	assert.True(t, it.Finished())
	assert.NotEmpty(t, cuts)
}
