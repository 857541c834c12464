package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDCompare(t *testing.T) {
	assert := assert.New(t)

	q0 := Qb(0)
	q1 := Qb(1)
	c0 := Cb(0)

	assert.True(q0.Compare(q1) < 0)
	assert.True(q1.Compare(q0) > 0)
	assert.Equal(0, q0.Compare(Qb(0)))
	// Qubit kind sorts before Bit kind.
	assert.True(q0.Compare(c0) < 0)
}

func TestIDEqualAndSameRegister(t *testing.T) {
	assert := assert.New(t)

	a := New(Qubit, "q", 0, 1)
	b := New(Qubit, "q", 0, 1)
	c := New(Qubit, "q", 0, 2)

	assert.True(a.Equal(b))
	assert.False(a.Equal(c))
	assert.True(a.SameRegister(c))
	assert.False(a.SameRegister(Cb(0)))
}

func TestWireTypeLinearAndTag(t *testing.T) {
	assert := assert.New(t)

	assert.True(Quantum.Linear())
	assert.True(Classical.Linear())
	assert.False(Boolean.Linear())
	assert.True(WASM.Linear())
	assert.True(RNG.Linear())

	for _, w := range []WireType{Quantum, Classical, Boolean, WASM, RNG} {
		tag := w.Tag()
		got, ok := TagToWireType(tag)
		assert.True(ok)
		assert.Equal(w, got)
	}
}

func TestIDString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("q[0]", Qb(0).String())
	assert.Equal("w[2,1]", New(WasmState, "w", 2, 1).String())
}
