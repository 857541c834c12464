package op

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/unit"
)

// GateType names a primitive gate (spec §4.2: "primitive gates (named
// type + ordered parameter list of Expr)").
type GateType string

const (
	GateH     GateType = "H"
	GateX     GateType = "X"
	GateY     GateType = "Y"
	GateZ     GateType = "Z"
	GateS     GateType = "S"
	GateSdg   GateType = "Sdg"
	GateT     GateType = "T"
	GateTdg   GateType = "Tdg"
	GateV     GateType = "V"
	GateVdg   GateType = "Vdg"
	GateRx    GateType = "Rx"
	GateRy    GateType = "Ry"
	GateRz    GateType = "Rz"
	GateU1    GateType = "U1"
	GatePhase GateType = "Phase" // zero-qubit global-phase op, spec §4.4's "zero-arity vertex"
	GateCX    GateType = "CX"
	GateCY    GateType = "CY"
	GateCZ    GateType = "CZ"
	GateSWAP  GateType = "SWAP"
	GateCCX   GateType = "CCX"
	GateCSWAP GateType = "CSWAP"
)

type gateMeta struct {
	nQubits    int
	nParams    int
	symbol     string
	dagger     GateType // "" if involutive (self-dagger)
	isRotation bool
	period     float64 // parameter periodicity, for rotation-family gates; angle units are half-turns
}

var gateTable = map[GateType]gateMeta{
	GateH:     {1, 0, "H", "", false, 0},
	GateX:     {1, 0, "X", "", false, 0},
	GateY:     {1, 0, "Y", "", false, 0},
	GateZ:     {1, 0, "Z", "", false, 0},
	GateS:     {1, 0, "S", GateSdg, false, 0},
	GateSdg:   {1, 0, "Sdg", GateS, false, 0},
	GateT:     {1, 0, "T", GateTdg, false, 0},
	GateTdg:   {1, 0, "Tdg", GateT, false, 0},
	GateV:     {1, 0, "V", GateVdg, false, 0},
	GateVdg:   {1, 0, "Vdg", GateV, false, 0},
	GateRx:    {1, 1, "Rx", "", true, 4},
	GateRy:    {1, 1, "Ry", "", true, 4},
	GateRz:    {1, 1, "Rz", "", true, 4},
	GateU1:    {1, 1, "U1", "", true, 2},
	GatePhase: {0, 1, "Phase", "", true, 2},
	GateCX:    {2, 0, "CX", "", false, 0},
	GateCY:    {2, 0, "CY", "", false, 0},
	GateCZ:    {2, 0, "CZ", "", false, 0},
	GateSWAP:  {2, 0, "SWAP", "", false, 0},
	GateCCX:   {3, 0, "CCX", "", false, 0},
	GateCSWAP: {3, 0, "CSWAP", "", false, 0},
}

// PrimitiveGate is the immutable value for every named-type gate in
// gateTable: a GateType plus an ordered Expr parameter list.
type PrimitiveGate struct {
	Type   GateType
	Params []expr.Expr
}

// NewPrimitive constructs a PrimitiveGate, panicking if the parameter
// count does not match gateTable (a programmer error, not a
// caller-reachable CircuitInvalidity per spec §7 — callers only ever
// reach Gate(...) constructors below, which always pass the right
// count).
func NewPrimitive(t GateType, params ...expr.Expr) PrimitiveGate {
	meta, ok := gateTable[t]
	if !ok {
		panic("op: unknown gate type " + string(t))
	}
	if len(params) != meta.nParams {
		panic(fmt.Sprintf("op: gate %s expects %d params, got %d", t, meta.nParams, len(params)))
	}
	return PrimitiveGate{Type: t, Params: append([]expr.Expr(nil), params...)}
}

func (g PrimitiveGate) Tag() Tag { return TagPrimitive }

func (g PrimitiveGate) Signature() []unit.WireType {
	meta := gateTable[g.Type]
	sig := make([]unit.WireType, meta.nQubits)
	for i := range sig {
		sig[i] = unit.Quantum
	}
	return sig
}

func (g PrimitiveGate) NQubits() int     { nq, _, _, _ := countsFromSignature(g.Signature()); return nq }
func (g PrimitiveGate) NBits() int       { _, _, _, nb := countsFromSignature(g.Signature()); return nb }
func (g PrimitiveGate) NClassical() int  { _, nc, _, _ := countsFromSignature(g.Signature()); return nc }
func (g PrimitiveGate) NBoolean() int    { _, _, nb, _ := countsFromSignature(g.Signature()); return nb }

func (g PrimitiveGate) DrawSymbol() string { return gateTable[g.Type].symbol }

// Dagger returns the inverse gate: involutive gates return themselves;
// table-paired gates (S/Sdg, T/Tdg, V/Vdg) swap; rotation-family gates
// negate their angle modulo the gate's periodicity (spec §4.2).
func (g PrimitiveGate) Dagger() Operation {
	meta := gateTable[g.Type]
	if meta.isRotation {
		negated := expr.ModReal(expr.Neg(g.Params[0]), meta.period)
		return PrimitiveGate{Type: g.Type, Params: []expr.Expr{negated}}
	}
	if meta.dagger != "" {
		return PrimitiveGate{Type: meta.dagger}
	}
	return g // involutive
}

// Transpose: every primitive gate in this table has a real matrix
// representation up to a global phase tracked separately on Circuit, so
// Transpose coincides with Dagger here. This is a deliberate
// simplification documented in DESIGN.md; spec §4.6 specifies Transpose
// precisely only for PauliExpBox, which overrides this behavior.
func (g PrimitiveGate) Transpose() Operation { return g.Dagger() }

func (g PrimitiveGate) SymbolSubstitution(m map[expr.Symbol]expr.Expr) Operation {
	if len(g.Params) == 0 {
		return g
	}
	newParams := make([]expr.Expr, len(g.Params))
	for i, p := range g.Params {
		newParams[i] = p.Substitute(m)
	}
	return PrimitiveGate{Type: g.Type, Params: newParams}
}

func (g PrimitiveGate) FreeSymbols() map[expr.Symbol]struct{} {
	return expr.UnionFreeSymbols(g.Params...)
}

func (g PrimitiveGate) IsEqual(other Operation) bool {
	o, ok := other.(PrimitiveGate)
	if !ok || o.Type != g.Type || len(o.Params) != len(g.Params) {
		return false
	}
	for i := range g.Params {
		if !g.Params[i].IsEqual(o.Params[i]) {
			return false
		}
	}
	return true
}

func (g PrimitiveGate) HashValue() uint64 {
	h := fnv.New64a()
	h.Write([]byte(g.Type))
	for _, p := range g.Params {
		h.Write([]byte(p.String()))
	}
	return h.Sum64()
}

func (g PrimitiveGate) String() string {
	if len(g.Params) == 0 {
		return string(g.Type)
	}
	parts := make([]string, len(g.Params))
	for i, p := range g.Params {
		parts[i] = p.String()
	}
	return string(g.Type) + "(" + strings.Join(parts, ",") + ")"
}

// ---------------------------------------------------------------------
// Constructors, the idiomatic Go analogue of the teacher's
// qc/gate/builtin.go singleton-accessor pattern (gate.H(), gate.CNOT()).

func H() PrimitiveGate    { return PrimitiveGate{Type: GateH} }
func X() PrimitiveGate    { return PrimitiveGate{Type: GateX} }
func Y() PrimitiveGate    { return PrimitiveGate{Type: GateY} }
func Z() PrimitiveGate    { return PrimitiveGate{Type: GateZ} }
func S() PrimitiveGate    { return PrimitiveGate{Type: GateS} }
func Sdg() PrimitiveGate  { return PrimitiveGate{Type: GateSdg} }
func T() PrimitiveGate    { return PrimitiveGate{Type: GateT} }
func Tdg() PrimitiveGate  { return PrimitiveGate{Type: GateTdg} }
func V() PrimitiveGate    { return PrimitiveGate{Type: GateV} }
func Vdg() PrimitiveGate  { return PrimitiveGate{Type: GateVdg} }
func CX() PrimitiveGate   { return PrimitiveGate{Type: GateCX} }
func CY() PrimitiveGate   { return PrimitiveGate{Type: GateCY} }
func CZ() PrimitiveGate   { return PrimitiveGate{Type: GateCZ} }
func SWAP() PrimitiveGate { return PrimitiveGate{Type: GateSWAP} }
func CCX() PrimitiveGate  { return PrimitiveGate{Type: GateCCX} }
func CSWAP() PrimitiveGate { return PrimitiveGate{Type: GateCSWAP} }

func Rx(theta expr.Expr) PrimitiveGate { return NewPrimitive(GateRx, theta) }
func Ry(theta expr.Expr) PrimitiveGate { return NewPrimitive(GateRy, theta) }
func Rz(theta expr.Expr) PrimitiveGate { return NewPrimitive(GateRz, theta) }
func U1(lambda expr.Expr) PrimitiveGate { return NewPrimitive(GateU1, lambda) }
func Phase(theta expr.Expr) PrimitiveGate { return NewPrimitive(GatePhase, theta) }
