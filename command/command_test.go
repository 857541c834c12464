package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/unit"
)

func TestCommandsOrderFollowsInsertion(t *testing.T) {
	require := require.New(t)
	c := circuit.New(1, 0)
	q := unit.Qb(0)
	_, err := c.AddOp(op.H(), []unit.ID{q}, "")
	require.NoError(err)
	_, err = c.AddOp(op.X(), []unit.ID{q}, "")
	require.NoError(err)

	cmds, err := Commands(c)
	require.NoError(err)
	require.Len(cmds, 2)
	assert.True(t, cmds[0].Op.IsEqual(op.H()))
	assert.True(t, cmds[1].Op.IsEqual(op.X()))
	assert.Equal(t, []unit.ID{q}, cmds[0].Args)
	assert.Equal(t, []unit.ID{q}, cmds[1].Args)
}

func TestCommandsRecoverBooleanControllingBit(t *testing.T) {
	require := require.New(t)
	c := circuit.New(1, 1)
	q, cb := unit.Qb(0), unit.Cb(0)
	_, err := c.AddMeasure(q, cb)
	require.NoError(err)
	cond := op.NewConditional(op.X(), 1, 1)
	_, err = c.AddOp(cond, []unit.ID{cb, q}, "")
	require.NoError(err)

	cmds, err := Commands(c)
	require.NoError(err)
	var found bool
	for _, cmd := range cmds {
		if _, ok := cmd.Op.(op.Conditional); ok {
			require.Len(cmd.Args, 2)
			assert.Equal(t, cb, cmd.Args[0])
			assert.Equal(t, q, cmd.Args[1])
			found = true
		}
	}
	assert.True(t, found)
}

// TestCommandsRecoverMultiBitConditionalGate is spec §8 scenario 4:
// AddConditionalGate(X, width=2, value=3) over two controlling bits
// must appear as one Command whose Op is Conditional{Inner: X, Width:
// 2, Value: 3} and whose Args are the bits followed by the qubit, in
// that order.
func TestCommandsRecoverMultiBitConditionalGate(t *testing.T) {
	require := require.New(t)
	c := circuit.New(1, 2)
	q0, b0, b1 := unit.Qb(0), unit.Cb(0), unit.Cb(1)
	_, err := c.AddConditionalGate(op.X(), []unit.ID{q0}, []unit.ID{b0, b1}, 3)
	require.NoError(err)

	cmds, err := Commands(c)
	require.NoError(err)
	require.Len(cmds, 1)

	cond, ok := cmds[0].Op.(op.Conditional)
	require.True(ok)
	assert.True(t, cond.Inner.IsEqual(op.X()))
	assert.Equal(t, 2, cond.Width)
	assert.Equal(t, uint64(3), cond.Value)
	assert.Equal(t, []unit.ID{b0, b1, q0}, cmds[0].Args)
}

func TestCommandsSkipBoundaryVertices(t *testing.T) {
	require := require.New(t)
	c := circuit.New(1, 0)
	cmds, err := Commands(c)
	require.NoError(err)
	assert.Empty(t, cmds)
}
