package op

import (
	"hash/fnv"

	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/unit"
)

// Boundary vertices wrap sentinel ops, one per wire kind (spec §4.2:
// "Boundary vertices wrap sentinel ops Input/Output/ClInput/ClOutput/
// WASMInput/WASMOutput"). Each sentinel carries the UnitID it represents
// so a Circuit's boundary can be reconstructed from its vertex set.

type boundaryKind int

const (
	boundaryInput boundaryKind = iota
	boundaryOutput
	boundaryClInput
	boundaryClOutput
	boundaryWasmInput
	boundaryWasmOutput
)

var boundaryTagOf = map[boundaryKind]Tag{
	boundaryInput:      TagInput,
	boundaryOutput:     TagOutput,
	boundaryClInput:    TagClInput,
	boundaryClOutput:   TagClOutput,
	boundaryWasmInput:  TagWasmInput,
	boundaryWasmOutput: TagWasmOutput,
}

var boundaryWireOf = map[boundaryKind]unit.WireType{
	boundaryInput:      unit.Quantum,
	boundaryOutput:     unit.Quantum,
	boundaryClInput:    unit.Classical,
	boundaryClOutput:   unit.Classical,
	boundaryWasmInput:  unit.WASM,
	boundaryWasmOutput: unit.WASM,
}

var boundaryNameOf = map[boundaryKind]string{
	boundaryInput:      "Input",
	boundaryOutput:     "Output",
	boundaryClInput:    "ClInput",
	boundaryClOutput:   "ClOutput",
	boundaryWasmInput:  "WASMInput",
	boundaryWasmOutput: "WASMOutput",
}

type boundarySentinel struct {
	kind boundaryKind
	unit unit.ID
}

func newBoundary(kind boundaryKind, u unit.ID) boundarySentinel {
	return boundarySentinel{kind: kind, unit: u}
}

func Input(u unit.ID) Operation      { return newBoundary(boundaryInput, u) }
func Output(u unit.ID) Operation     { return newBoundary(boundaryOutput, u) }
func ClInput(u unit.ID) Operation    { return newBoundary(boundaryClInput, u) }
func ClOutput(u unit.ID) Operation   { return newBoundary(boundaryClOutput, u) }
func WasmInput(u unit.ID) Operation  { return newBoundary(boundaryWasmInput, u) }
func WasmOutput(u unit.ID) Operation { return newBoundary(boundaryWasmOutput, u) }

func (b boundarySentinel) Tag() Tag { return boundaryTagOf[b.kind] }
func (b boundarySentinel) Signature() []unit.WireType {
	return []unit.WireType{boundaryWireOf[b.kind]}
}
func (b boundarySentinel) NQubits() int {
	if boundaryWireOf[b.kind] == unit.Quantum {
		return 1
	}
	return 0
}
func (b boundarySentinel) NBits() int {
	if boundaryWireOf[b.kind] == unit.Classical {
		return 1
	}
	return 0
}
func (b boundarySentinel) NClassical() int { return b.NBits() }
func (b boundarySentinel) NBoolean() int   { return 0 }

// Dagger/Transpose on a boundary sentinel is an identity: the boundary
// marks where the circuit's wires begin or end, not a unitary to invert.
func (b boundarySentinel) Dagger() Operation    { return b }
func (b boundarySentinel) Transpose() Operation { return b }

func (b boundarySentinel) SymbolSubstitution(map[expr.Symbol]expr.Expr) Operation { return b }
func (boundarySentinel) FreeSymbols() map[expr.Symbol]struct{}                    { return nil }

func (b boundarySentinel) IsEqual(other Operation) bool {
	o, ok := other.(boundarySentinel)
	return ok && o.kind == b.kind && o.unit.Equal(b.unit)
}

func (b boundarySentinel) HashValue() uint64 {
	h := fnv.New64a()
	h.Write([]byte(boundaryNameOf[b.kind]))
	h.Write([]byte(b.unit.String()))
	return h.Sum64()
}

func (b boundarySentinel) String() string { return boundaryNameOf[b.kind] + "[" + b.unit.String() + "]" }

// Unit returns the UnitID this boundary sentinel represents.
func (b boundarySentinel) Unit() unit.ID { return b.unit }
