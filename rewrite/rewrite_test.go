package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/command"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/unit"
)

func TestSubstituteReplacesSingleVertex(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	host := circuit.New(1, 0)
	q := unit.Qb(0)
	v, err := host.AddOp(op.X(), []unit.ID{q}, "")
	require.NoError(err)

	sub, err := FromVertices(host, []circuit.VertexID{v})
	require.NoError(err)

	replacement := circuit.New(1, 0)
	_, err = replacement.AddOp(op.Z(), []unit.ID{unit.Qb(0)}, "")
	require.NoError(err)

	require.NoError(Substitute(host, replacement, sub))

	cmds, err := command.Commands(host)
	require.NoError(err)
	require.Len(cmds, 1)
	assert.True(cmds[0].Op.IsEqual(op.Z()))
	assert.Equal([]unit.ID{q}, cmds[0].Args)
}

func TestSubstituteRejectsWrongQubitCount(t *testing.T) {
	require := require.New(t)

	host := circuit.New(1, 0)
	v, err := host.AddOp(op.X(), []unit.ID{unit.Qb(0)}, "")
	require.NoError(err)
	sub, err := FromVertices(host, []circuit.VertexID{v})
	require.NoError(err)

	replacement := circuit.New(2, 0)
	err = Substitute(host, replacement, sub)
	require.ErrorIs(err, ErrSubstitutionMismatch)
}

func TestSubstituteAllReplacesEveryMatch(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	host := circuit.New(2, 0)
	_, err := host.AddOp(op.X(), []unit.ID{unit.Qb(0)}, "")
	require.NoError(err)
	_, err = host.AddOp(op.X(), []unit.ID{unit.Qb(1)}, "")
	require.NoError(err)

	replacement := circuit.New(1, 0)
	_, err = replacement.AddOp(op.H(), []unit.ID{unit.Qb(0)}, "")
	require.NoError(err)

	require.NoError(SubstituteAll(host, replacement, op.X()))

	cmds, err := command.Commands(host)
	require.NoError(err)
	require.Len(cmds, 2)
	for _, cmd := range cmds {
		assert.True(cmd.Op.IsEqual(op.H()))
	}
}

func TestSubstituteNamedRenamesSelfReferentialOpgroup(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	host := circuit.New(2, 0)
	_, err := host.AddOp(op.X(), []unit.ID{unit.Qb(0)}, "twirl")
	require.NoError(err)
	_, err = host.AddOp(op.X(), []unit.ID{unit.Qb(1)}, "twirl")
	require.NoError(err)

	replacement := circuit.New(1, 0)
	_, err = replacement.AddOp(op.H(), []unit.ID{unit.Qb(0)}, "twirl")
	require.NoError(err)

	require.NoError(SubstituteNamed(host, replacement, "twirl"))

	groups := host.Opgroups()
	assert.False(groups["twirl"])
	assert.True(groups["twirl_1"])
}

func TestSubstituteNamedNoMatchIsNoop(t *testing.T) {
	require := require.New(t)

	host := circuit.New(1, 0)
	replacement := circuit.New(1, 0)
	require.NoError(SubstituteNamed(host, replacement, "absent"))
}
