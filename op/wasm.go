package op

import (
	"hash/fnv"

	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/unit"
)

// WASMOp is an opaque external call (spec §4.2/§4.1: "WASM operations
// are opaque externals: is_extern() = true. They act on a declared set
// of classical bits partitioned into input and output i32 groups, plus
// ww_n WASMState wires threaded for ordering"). WidthsIn/WidthsOut sum
// to the classical bits read/written; NWires WASM-typed ports carry no
// payload, only ordering.
type WASMOp struct {
	nBits     int
	NWires    int
	WidthsIn  []int
	WidthsOut []int
	FuncName  string
	ModuleID  string
}

func NewWASMOp(nBits, nWires int, widthsIn, widthsOut []int, funcName, moduleID string) WASMOp {
	return WASMOp{
		nBits:     nBits,
		NWires:    nWires,
		WidthsIn:  append([]int(nil), widthsIn...),
		WidthsOut: append([]int(nil), widthsOut...),
		FuncName:  funcName,
		ModuleID:  moduleID,
	}
}

func (w WASMOp) Tag() Tag { return TagWASM }

func (w WASMOp) Signature() []unit.WireType {
	sig := make([]unit.WireType, 0, w.nBits+w.NWires)
	for i := 0; i < w.nBits; i++ {
		sig = append(sig, unit.Classical)
	}
	for i := 0; i < w.NWires; i++ {
		sig = append(sig, unit.WASM)
	}
	return sig
}

func (w WASMOp) NQubits() int    { return 0 }
func (w WASMOp) NBits() int      { return w.nBits }
func (w WASMOp) NClassical() int { return w.nBits }
func (w WASMOp) NBoolean() int   { return 0 }

// IsExtern marks WASMOp as an opaque external (spec §4.1).
func (w WASMOp) IsExtern() bool { return true }

// Dagger/Transpose are not meaningful for an opaque external call; it
// returns itself, matching the "not exercised by the source" treatment
// spec §9's Open Question gives WASMOp under conditional_circuit.
func (w WASMOp) Dagger() Operation    { return w }
func (w WASMOp) Transpose() Operation { return w }

func (w WASMOp) SymbolSubstitution(map[expr.Symbol]expr.Expr) Operation { return w }
func (WASMOp) FreeSymbols() map[expr.Symbol]struct{}                    { return nil }

func (w WASMOp) IsEqual(other Operation) bool {
	o, ok := other.(WASMOp)
	if !ok || o.nBits != w.nBits || o.NWires != w.NWires || o.FuncName != w.FuncName || o.ModuleID != w.ModuleID {
		return false
	}
	if len(o.WidthsIn) != len(w.WidthsIn) || len(o.WidthsOut) != len(w.WidthsOut) {
		return false
	}
	for i := range w.WidthsIn {
		if w.WidthsIn[i] != o.WidthsIn[i] {
			return false
		}
	}
	for i := range w.WidthsOut {
		if w.WidthsOut[i] != o.WidthsOut[i] {
			return false
		}
	}
	return true
}

func (w WASMOp) HashValue() uint64 {
	h := fnv.New64a()
	h.Write([]byte("WASMOp"))
	h.Write([]byte(w.FuncName))
	h.Write([]byte(w.ModuleID))
	for _, v := range w.WidthsIn {
		h.Write([]byte{byte(v)})
	}
	for _, v := range w.WidthsOut {
		h.Write([]byte{byte(v)})
	}
	return h.Sum64()
}

func (w WASMOp) String() string { return "WASMOp[" + w.FuncName + "@" + w.ModuleID + "]" }
