package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/command"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/unit"
)

func opTypes(t *testing.T, c *circuit.Circuit) []op.GateType {
	t.Helper()
	cmds, err := command.Commands(c)
	require.NoError(t, err)
	var out []op.GateType
	for _, cmd := range cmds {
		pg, ok := cmd.Op.(op.PrimitiveGate)
		require.True(t, ok)
		out = append(out, pg.Type)
	}
	return out
}

func TestSequenceReportsUnchangedWhenNoStepChanged(t *testing.T) {
	c := circuit.New(1, 0)
	_, err := c.AddOp(op.X(), []unit.ID{unit.Qb(0)}, "")
	require.NoError(t, err)

	noop := func(*circuit.Circuit) bool { return false }
	seq := Sequence(noop, CancelAdjacentCX, noop)
	assert.False(t, seq(c))
}

func TestRepeatCappedStopsAtCap(t *testing.T) {
	calls := 0
	always := func(*circuit.Circuit) bool { calls++; return true }
	c := circuit.New(1, 0)
	changed := RepeatCapped(always, 3)(c)
	assert.True(t, changed)
	assert.Equal(t, 3, calls)
}

func TestRepeatUntilFailsWhenPredicateNeverSatisfied(t *testing.T) {
	c := circuit.New(1, 0)
	never := func(*circuit.Circuit) bool { return false }
	alwaysChanging := func(*circuit.Circuit) bool { return true }
	err := RepeatUntil(alwaysChanging, never, 5)(c)
	require.ErrorIs(t, err, ErrPredicateNotSatisfied)
}

func TestRepeatUntilSucceedsOncePredicateHolds(t *testing.T) {
	c := circuit.New(1, 0)
	seen := 0
	pred := func(*circuit.Circuit) bool { seen++; return seen > 2 }
	changing := func(*circuit.Circuit) bool { return true }
	err := RepeatUntil(changing, pred, 10)(c)
	require.NoError(t, err)
}

func TestCancelAdjacentCXRemovesBothGates(t *testing.T) {
	c := circuit.New(2, 0)
	a, b := unit.Qb(0), unit.Qb(1)
	_, err := c.AddOp(op.CX(), []unit.ID{a, b}, "")
	require.NoError(t, err)
	_, err = c.AddOp(op.CX(), []unit.ID{a, b}, "")
	require.NoError(t, err)

	changed := CancelAdjacentCX(c)
	assert.True(t, changed)
	assert.Empty(t, opTypes(t, c))
}

func TestCancelAdjacentCXNoopOnLoneCX(t *testing.T) {
	c := circuit.New(2, 0)
	_, err := c.AddOp(op.CX(), []unit.ID{unit.Qb(0), unit.Qb(1)}, "")
	require.NoError(t, err)

	assert.False(t, CancelAdjacentCX(c))
	assert.Equal(t, []op.GateType{op.GateCX}, opTypes(t, c))
}

func TestCommuteHAdjacentCXSwapsControlAndTarget(t *testing.T) {
	c := circuit.New(2, 0)
	ctrl, tgt := unit.Qb(0), unit.Qb(1)
	_, err := c.AddOp(op.H(), []unit.ID{ctrl}, "")
	require.NoError(t, err)
	_, err = c.AddOp(op.H(), []unit.ID{tgt}, "")
	require.NoError(t, err)
	_, err = c.AddOp(op.CX(), []unit.ID{ctrl, tgt}, "")
	require.NoError(t, err)
	_, err = c.AddOp(op.H(), []unit.ID{ctrl}, "")
	require.NoError(t, err)
	_, err = c.AddOp(op.H(), []unit.ID{tgt}, "")
	require.NoError(t, err)

	changed := CommuteHAdjacentCX(c)
	assert.True(t, changed)

	cmds, err := command.Commands(c)
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.True(t, cmds[0].Op.IsEqual(op.CX()))
	assert.Equal(t, []unit.ID{tgt, ctrl}, cmds[0].Args)
}

func TestCopyPiThroughCXSplitsLeadingX(t *testing.T) {
	c := circuit.New(2, 0)
	ctrl, tgt := unit.Qb(0), unit.Qb(1)
	_, err := c.AddOp(op.X(), []unit.ID{ctrl}, "")
	require.NoError(t, err)
	_, err = c.AddOp(op.CX(), []unit.ID{ctrl, tgt}, "")
	require.NoError(t, err)

	assert.True(t, CopyPiThroughCX(c))

	cmds, err := command.Commands(c)
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	assert.True(t, cmds[0].Op.IsEqual(op.CX()))
	assert.True(t, cmds[1].Op.IsEqual(op.X()))
	assert.True(t, cmds[2].Op.IsEqual(op.X()))
}

func TestCopyPiThroughCXSplitsTrailingZ(t *testing.T) {
	c := circuit.New(2, 0)
	ctrl, tgt := unit.Qb(0), unit.Qb(1)
	_, err := c.AddOp(op.CX(), []unit.ID{ctrl, tgt}, "")
	require.NoError(t, err)
	_, err = c.AddOp(op.Z(), []unit.ID{tgt}, "")
	require.NoError(t, err)

	assert.True(t, CopyPiThroughCX(c))

	cmds, err := command.Commands(c)
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	assert.True(t, cmds[0].Op.IsEqual(op.Z()))
	assert.True(t, cmds[1].Op.IsEqual(op.Z()))
	assert.True(t, cmds[2].Op.IsEqual(op.CX()))
}

func TestPushCliffordsThroughMeasuresDropsPrecedingZ(t *testing.T) {
	c := circuit.New(1, 1)
	q, cb := unit.Qb(0), unit.Cb(0)
	_, err := c.AddOp(op.Z(), []unit.ID{q}, "")
	require.NoError(t, err)
	_, err = c.AddMeasure(q, cb)
	require.NoError(t, err)

	assert.True(t, PushCliffordsThroughMeasures(c))
	cmds, err := command.Commands(c)
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	_, isMeasure := cmds[0].Op.(op.Measure)
	assert.True(t, isMeasure)
}

func TestMultiqCliffordReplacementCollapsesToSwap(t *testing.T) {
	c := circuit.New(2, 0)
	a, b := unit.Qb(0), unit.Qb(1)
	_, err := c.AddOp(op.CX(), []unit.ID{a, b}, "")
	require.NoError(t, err)
	_, err = c.AddOp(op.CX(), []unit.ID{b, a}, "")
	require.NoError(t, err)
	_, err = c.AddOp(op.CX(), []unit.ID{a, b}, "")
	require.NoError(t, err)

	changed := MultiqCliffordReplacement(true)(c)
	assert.True(t, changed)

	cmds, err := command.Commands(c)
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.True(t, cmds[0].Op.IsEqual(op.SWAP()))
}

func TestMultiqCliffordReplacementDisabledIsNoop(t *testing.T) {
	c := circuit.New(2, 0)
	a, b := unit.Qb(0), unit.Qb(1)
	_, err := c.AddOp(op.CX(), []unit.ID{a, b}, "")
	require.NoError(t, err)
	_, err = c.AddOp(op.CX(), []unit.ID{b, a}, "")
	require.NoError(t, err)
	_, err = c.AddOp(op.CX(), []unit.ID{a, b}, "")
	require.NoError(t, err)

	assert.False(t, MultiqCliffordReplacement(false)(c))
}

func TestSingleQCliffordSweepRewritesHToCanonicalWord(t *testing.T) {
	c := circuit.New(1, 0)
	q := unit.Qb(0)
	_, err := c.AddOp(op.H(), []unit.ID{q}, "")
	require.NoError(t, err)

	changed := SingleQCliffordSweep(c)
	assert.True(t, changed)

	for _, gt := range opTypes(t, c) {
		assert.Contains(t, canonicalOrder, gt)
	}
	// re-applying should be a fixed point: H's canonical word, once
	// written, is already in canonical form.
	assert.False(t, SingleQCliffordSweep(c))
}

func TestSingleQCliffordSweepNoopOnAlreadyCanonicalRun(t *testing.T) {
	c := circuit.New(1, 0)
	q := unit.Qb(0)
	_, err := c.AddOp(op.Z(), []unit.ID{q}, "")
	require.NoError(t, err)
	_, err = c.AddOp(op.X(), []unit.ID{q}, "")
	require.NoError(t, err)

	assert.False(t, SingleQCliffordSweep(c))
	assert.Equal(t, []op.GateType{op.GateZ, op.GateX}, opTypes(t, c))
}

func TestSingleQCliffordSweepStopsAtTwoQubitGate(t *testing.T) {
	c := circuit.New(2, 0)
	q0, q1 := unit.Qb(0), unit.Qb(1)
	_, err := c.AddOp(op.H(), []unit.ID{q0}, "")
	require.NoError(t, err)
	_, err = c.AddOp(op.CX(), []unit.ID{q0, q1}, "")
	require.NoError(t, err)
	_, err = c.AddOp(op.H(), []unit.ID{q0}, "")
	require.NoError(t, err)

	SingleQCliffordSweep(c)

	cmds, err := command.Commands(c)
	require.NoError(t, err)
	var sawCX bool
	for _, cmd := range cmds {
		if cmd.Op.IsEqual(op.CX()) {
			sawCX = true
		}
	}
	assert.True(t, sawCX)
}
