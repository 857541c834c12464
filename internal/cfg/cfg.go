// Package cfg carries process-level tunables that are not part of the
// core library's API proper: the Pauli-graph synthesis epsilon (spec
// §4.7, default 1e-10), the default diagonalisation strategy, and the
// iteration caps transform.Repeat/RepeatUntil enforce (SPEC_FULL §1).
// Grounded on the teacher's go.mod already requiring spf13/viper
// (previously unwired); read once by a caller at process start, never
// touched by the core library itself beyond that one read.
package cfg

import (
	"strings"

	"github.com/spf13/viper"
)

// Strategy names a PauliGraph synthesis strategy (spec §4.7).
type Strategy string

const (
	StrategyIndividual Strategy = "individual"
	StrategySets       Strategy = "sets"
)

// DiagonalisationShape names a Sets-strategy CX-tree shape (spec §4.7).
type DiagonalisationShape string

const (
	ShapeSnake DiagonalisationShape = "snake"
	ShapeStar  DiagonalisationShape = "star"
)

// Config is the set of tunables a caller reads once at process start.
type Config struct {
	// SynthesisEpsilon bounds the acceptable unitary distance between a
	// PauliGraph and its synthesised circuit (spec §4.7's ε, default 1e-10).
	SynthesisEpsilon float64
	// DefaultStrategy is the PauliGraph synthesis strategy a pass picks
	// when the caller does not name one explicitly.
	DefaultStrategy Strategy
	// DefaultShape is the Sets-strategy diagonalisation shape used when
	// the caller does not name one explicitly.
	DefaultShape DiagonalisationShape
	// MaxRepeatIterations bounds transform.Repeat/RepeatUntil's fixed-point
	// loop, a safety valve against a non-terminating rewrite (not named by
	// spec §4.9, which describes the combinator but not a termination
	// bound a host process should apply).
	MaxRepeatIterations int
}

// Defaults returns the configuration's default values.
func Defaults() Config {
	return Config{
		SynthesisEpsilon:    1e-10,
		DefaultStrategy:     StrategySets,
		DefaultShape:        ShapeSnake,
		MaxRepeatIterations: 1000,
	}
}

// Load reads a Config from viper, seeding it with Defaults() first so any
// key the environment/config file does not set keeps its default value.
// configPaths are directories viper searches for a "qcompile" config file
// (any format viper supports); envPrefix, if non-empty, additionally binds
// QCOMPILE_-style environment variables (e.g. QCOMPILE_SYNTHESISEPSILON).
func Load(envPrefix string, configPaths ...string) (Config, error) {
	d := Defaults()

	v := viper.New()
	v.SetConfigName("qcompile")
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}
	v.SetDefault("synthesisepsilon", d.SynthesisEpsilon)
	v.SetDefault("defaultstrategy", string(d.DefaultStrategy))
	v.SetDefault("defaultshape", string(d.DefaultShape))
	v.SetDefault("maxrepeatiterations", d.MaxRepeatIterations)

	if envPrefix != "" {
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, err
		}
	}

	return Config{
		SynthesisEpsilon:    v.GetFloat64("synthesisepsilon"),
		DefaultStrategy:     Strategy(v.GetString("defaultstrategy")),
		DefaultShape:        DiagonalisationShape(v.GetString("defaultshape")),
		MaxRepeatIterations: v.GetInt("maxrepeatiterations"),
	}, nil
}
