package op

import (
	"hash/fnv"

	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/unit"
)

// Barrier prevents reordering across the wires it spans; it carries no
// semantic effect beyond ordering, plus an opaque data string (spec
// §4.2/§4.3's Barrier(signature, data)).
type Barrier struct {
	Sig  []unit.WireType
	Data string
}

func NewBarrier(sig []unit.WireType, data string) Barrier {
	return Barrier{Sig: append([]unit.WireType(nil), sig...), Data: data}
}

func (b Barrier) Tag() Tag                   { return TagBarrier }
func (b Barrier) Signature() []unit.WireType { return b.Sig }
func (b Barrier) NQubits() int               { nq, _, _, _ := countsFromSignature(b.Sig); return nq }
func (b Barrier) NBits() int                 { _, _, _, nb := countsFromSignature(b.Sig); return nb }
func (b Barrier) NClassical() int            { _, nc, _, _ := countsFromSignature(b.Sig); return nc }
func (b Barrier) NBoolean() int              { _, _, nb, _ := countsFromSignature(b.Sig); return nb }

// Dagger/Transpose preserve a Barrier with its data intact (spec §4.3's
// dagger()/transpose() contract: "Barriers are preserved with data
// intact").
func (b Barrier) Dagger() Operation    { return b }
func (b Barrier) Transpose() Operation { return b }

func (b Barrier) SymbolSubstitution(map[expr.Symbol]expr.Expr) Operation { return b }
func (Barrier) FreeSymbols() map[expr.Symbol]struct{}                    { return nil }

func (b Barrier) IsEqual(other Operation) bool {
	o, ok := other.(Barrier)
	if !ok || len(o.Sig) != len(b.Sig) || o.Data != b.Data {
		return false
	}
	for i := range b.Sig {
		if b.Sig[i] != o.Sig[i] {
			return false
		}
	}
	return true
}

func (b Barrier) HashValue() uint64 {
	h := fnv.New64a()
	h.Write([]byte("Barrier"))
	h.Write([]byte(b.Data))
	for _, t := range b.Sig {
		h.Write([]byte(t.Tag()))
	}
	return h.Sum64()
}

func (b Barrier) String() string { return "Barrier[" + b.Data + "]" }
