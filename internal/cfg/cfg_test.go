package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsMatchSpecValues(t *testing.T) {
	assert := assert.New(t)
	d := Defaults()
	assert.Equal(1e-10, d.SynthesisEpsilon)
	assert.Equal(StrategySets, d.DefaultStrategy)
	assert.Equal(ShapeSnake, d.DefaultShape)
}

func TestLoadFallsBackToDefaultsWithNoConfigFile(t *testing.T) {
	require := require.New(t)
	c, err := Load("", t.TempDir())
	require.NoError(err)
	require.Equal(Defaults(), c)
}
