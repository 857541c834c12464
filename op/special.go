package op

import (
	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/unit"
)

// Measure is the single measurement operation: one quantum in/out port
// paired with one classical write port.
type Measure struct{}

func (Measure) Tag() Tag                   { return TagMeasure }
func (Measure) Signature() []unit.WireType { return []unit.WireType{unit.Quantum, unit.Classical} }
func (Measure) NQubits() int               { return 1 }
func (Measure) NBits() int                 { return 1 }
func (Measure) NClassical() int            { return 1 }
func (Measure) NBoolean() int              { return 0 }

// Dagger/Transpose of a non-unitary operation are not exercised by the
// public rewrite API (spec §4.7 forbids mid-circuit measurement in
// PauliGraph construction, and no other pass in §4.9 reaches into a
// measurement); we return the operation unchanged rather than erroring,
// since Operation.Dagger/Transpose have no error return.
func (m Measure) Dagger() Operation    { return m }
func (m Measure) Transpose() Operation { return m }

func (m Measure) SymbolSubstitution(map[expr.Symbol]expr.Expr) Operation { return m }
func (Measure) FreeSymbols() map[expr.Symbol]struct{}                    { return nil }

func (Measure) IsEqual(other Operation) bool { _, ok := other.(Measure); return ok }
func (Measure) HashValue() uint64            { return 0x4d454153 } // "MEAS"
func (Measure) String() string               { return "Measure" }

// Reset discards a qubit's state and reinitializes it to |0>.
type Reset struct{}

func (Reset) Tag() Tag                   { return TagReset }
func (Reset) Signature() []unit.WireType { return []unit.WireType{unit.Quantum} }
func (Reset) NQubits() int               { return 1 }
func (Reset) NBits() int                 { return 0 }
func (Reset) NClassical() int            { return 0 }
func (Reset) NBoolean() int              { return 0 }
func (r Reset) Dagger() Operation        { return r }
func (r Reset) Transpose() Operation     { return r }

func (r Reset) SymbolSubstitution(map[expr.Symbol]expr.Expr) Operation { return r }
func (Reset) FreeSymbols() map[expr.Symbol]struct{}                    { return nil }
func (Reset) IsEqual(other Operation) bool                            { _, ok := other.(Reset); return ok }
func (Reset) HashValue() uint64                                       { return 0x52455345 } // "RESE"
func (Reset) String() string                                          { return "Reset" }
