package op

import (
	"hash/fnv"
	"strconv"

	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/unit"
)

// Conditional wraps inner, prepending Width Boolean control bits: it
// runs inner iff the little-endian integer formed by those bits equals
// Value (spec §4.2).
type Conditional struct {
	Inner Operation
	Width int
	Value uint64
}

func NewConditional(inner Operation, width int, value uint64) Conditional {
	return Conditional{Inner: inner, Width: width, Value: value}
}

func (c Conditional) Tag() Tag { return TagConditional }

func (c Conditional) Signature() []unit.WireType {
	sig := make([]unit.WireType, 0, c.Width+len(c.Inner.Signature()))
	for i := 0; i < c.Width; i++ {
		sig = append(sig, unit.Boolean)
	}
	sig = append(sig, c.Inner.Signature()...)
	return sig
}

func (c Conditional) NQubits() int    { return c.Inner.NQubits() }
func (c Conditional) NClassical() int { return c.Inner.NClassical() }
func (c Conditional) NBoolean() int   { return c.Width + c.Inner.NBoolean() }
func (c Conditional) NBits() int      { return c.Width + c.Inner.NBits() }

// Dagger/Transpose apply to the inner operation only; the condition
// itself is not invertible semantics, it gates whether inner runs.
func (c Conditional) Dagger() Operation    { return Conditional{Inner: c.Inner.Dagger(), Width: c.Width, Value: c.Value} }
func (c Conditional) Transpose() Operation { return Conditional{Inner: c.Inner.Transpose(), Width: c.Width, Value: c.Value} }

func (c Conditional) SymbolSubstitution(m map[expr.Symbol]expr.Expr) Operation {
	return Conditional{Inner: c.Inner.SymbolSubstitution(m), Width: c.Width, Value: c.Value}
}

func (c Conditional) FreeSymbols() map[expr.Symbol]struct{} { return c.Inner.FreeSymbols() }

func (c Conditional) IsEqual(other Operation) bool {
	o, ok := other.(Conditional)
	return ok && o.Width == c.Width && o.Value == c.Value && c.Inner.IsEqual(o.Inner)
}

func (c Conditional) HashValue() uint64 {
	h := fnv.New64a()
	h.Write([]byte("Conditional"))
	h.Write([]byte{byte(c.Width)})
	for i := 0; i < 8; i++ {
		h.Write([]byte{byte(c.Value >> (8 * i))})
	}
	var buf [8]byte
	iv := c.Inner.HashValue()
	for i := range buf {
		buf[i] = byte(iv >> (8 * i))
	}
	h.Write(buf[:])
	return h.Sum64()
}

func (c Conditional) String() string {
	return "If(width=" + strconv.Itoa(c.Width) + ",value=" + strconv.FormatUint(c.Value, 10) + ")." + c.Inner.String()
}
