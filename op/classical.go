package op

import (
	"hash/fnv"

	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/unit"
)

// ClassicalEvalOp is the interface every classical variant in spec §4.2
// implements so that IsEqual can be defined once, by full-truth-table
// comparison, "permitting equivalent logical predicates to compare equal
// regardless of representation" (spec §4.2).
type ClassicalEvalOp interface {
	Operation
	// Shape returns (n_i, n_io, n_o): input-only, input/output, and
	// output-only classical port counts.
	Shape() (nIn, nIO, nOut int)
	// EvalBits takes n_i+n_io bits (read-only inputs, then io inputs)
	// and returns n_io+n_o bits (new io values, then new outputs).
	EvalBits(bits []bool) []bool
}

func littleEndian(bits []bool) uint64 {
	var v uint64
	for i, b := range bits {
		if b {
			v |= 1 << uint(i)
		}
	}
	return v
}

func bitsOf(v uint64, n int) []bool {
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = (v>>uint(i))&1 == 1
	}
	return out
}

// classicalEvalEqual implements spec §4.2's ClassicalEvalOp equality:
// both ops, applied to every input in [0, 2^(n_i+n_io)), must produce
// equal outputs.
func classicalEvalEqual(a, b ClassicalEvalOp) bool {
	ani, anio, ano := a.Shape()
	bni, bnio, bno := b.Shape()
	if ani != bni || anio != bnio || ano != bno {
		return false
	}
	n := ani + anio
	total := uint64(1) << uint(n)
	for v := uint64(0); v < total; v++ {
		bits := bitsOf(v, n)
		oa := a.EvalBits(bits)
		ob := b.EvalBits(bits)
		if len(oa) != len(ob) {
			return false
		}
		for i := range oa {
			if oa[i] != ob[i] {
				return false
			}
		}
	}
	return true
}

func classicalSignature(nIn, nIO, nOut int) []unit.WireType {
	sig := make([]unit.WireType, nIn+nIO+nOut)
	for i := range sig {
		sig[i] = unit.Classical
	}
	return sig
}

// ---------------------------------------------------------------------
// ExplicitPredicate: NIn read-only bits -> 1 new output bit, via an
// explicit truth table indexed by the little-endian input integer.
type ExplicitPredicate struct {
	NIn   int
	Table []bool // len 2^NIn
}

func (e ExplicitPredicate) Tag() Tag                   { return TagExplicitPredicate }
func (e ExplicitPredicate) Signature() []unit.WireType { return classicalSignature(e.NIn, 0, 1) }
func (e ExplicitPredicate) NQubits() int               { return 0 }
func (e ExplicitPredicate) NClassical() int            { return e.NIn + 1 }
func (e ExplicitPredicate) NBoolean() int               { return 0 }
func (e ExplicitPredicate) NBits() int                 { return e.NIn + 1 }
func (e ExplicitPredicate) Shape() (int, int, int)     { return e.NIn, 0, 1 }
func (e ExplicitPredicate) EvalBits(bits []bool) []bool {
	return []bool{e.Table[littleEndian(bits)]}
}
func (e ExplicitPredicate) Dagger() Operation    { return e }
func (e ExplicitPredicate) Transpose() Operation { return e }
func (e ExplicitPredicate) SymbolSubstitution(map[expr.Symbol]expr.Expr) Operation { return e }
func (ExplicitPredicate) FreeSymbols() map[expr.Symbol]struct{}                    { return nil }
func (e ExplicitPredicate) IsEqual(other Operation) bool {
	o, ok := other.(ClassicalEvalOp)
	return ok && classicalEvalEqual(e, o)
}

// HashValue is NOT consistent with the truth-table IsEqual above (spec
// §4.2 explicitly calls this out): it only hashes this concrete
// representation, so ExplicitPredicate must not be used as a hash key
// alongside other ClassicalEvalOp representations expected to compare
// equal by truth table.
func (e ExplicitPredicate) HashValue() uint64 {
	h := fnv.New64a()
	h.Write([]byte("ExplicitPredicate"))
	for _, b := range e.Table {
		if b {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}
	return h.Sum64()
}
func (e ExplicitPredicate) String() string { return "ExplicitPredicate" }

// ---------------------------------------------------------------------
// ExplicitModifier: NIn read-only bits plus one io bit -> new io value.
type ExplicitModifier struct {
	NIn   int
	Table []bool // len 2^(NIn+1), indexed by (inputs, io) little-endian
}

func (e ExplicitModifier) Tag() Tag                   { return TagExplicitModifier }
func (e ExplicitModifier) Signature() []unit.WireType { return classicalSignature(e.NIn, 1, 0) }
func (e ExplicitModifier) NQubits() int               { return 0 }
func (e ExplicitModifier) NClassical() int            { return e.NIn + 1 }
func (e ExplicitModifier) NBoolean() int              { return 0 }
func (e ExplicitModifier) NBits() int                 { return e.NIn + 1 }
func (e ExplicitModifier) Shape() (int, int, int)     { return e.NIn, 1, 0 }
func (e ExplicitModifier) EvalBits(bits []bool) []bool {
	return []bool{e.Table[littleEndian(bits)]}
}
func (e ExplicitModifier) Dagger() Operation    { return e }
func (e ExplicitModifier) Transpose() Operation { return e }
func (e ExplicitModifier) SymbolSubstitution(map[expr.Symbol]expr.Expr) Operation { return e }
func (ExplicitModifier) FreeSymbols() map[expr.Symbol]struct{}                    { return nil }
func (e ExplicitModifier) IsEqual(other Operation) bool {
	o, ok := other.(ClassicalEvalOp)
	return ok && classicalEvalEqual(e, o)
}
func (e ExplicitModifier) HashValue() uint64 {
	h := fnv.New64a()
	h.Write([]byte("ExplicitModifier"))
	for _, b := range e.Table {
		if b {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}
	return h.Sum64()
}
func (e ExplicitModifier) String() string { return "ExplicitModifier" }

// ---------------------------------------------------------------------
// RangePredicate: N-bit input -> 1 iff the little-endian value lies in
// [A, B].
type RangePredicate struct {
	N    int
	A, B uint64
}

func (r RangePredicate) Tag() Tag                   { return TagRangePredicate }
func (r RangePredicate) Signature() []unit.WireType { return classicalSignature(r.N, 0, 1) }
func (r RangePredicate) NQubits() int               { return 0 }
func (r RangePredicate) NClassical() int            { return r.N + 1 }
func (r RangePredicate) NBoolean() int              { return 0 }
func (r RangePredicate) NBits() int                 { return r.N + 1 }
func (r RangePredicate) Shape() (int, int, int)     { return r.N, 0, 1 }
func (r RangePredicate) EvalBits(bits []bool) []bool {
	v := littleEndian(bits)
	return []bool{v >= r.A && v <= r.B}
}
func (r RangePredicate) Dagger() Operation    { return r }
func (r RangePredicate) Transpose() Operation { return r }
func (r RangePredicate) SymbolSubstitution(map[expr.Symbol]expr.Expr) Operation { return r }
func (RangePredicate) FreeSymbols() map[expr.Symbol]struct{}                    { return nil }
func (r RangePredicate) IsEqual(other Operation) bool {
	o, ok := other.(ClassicalEvalOp)
	return ok && classicalEvalEqual(r, o)
}
func (r RangePredicate) HashValue() uint64 {
	h := fnv.New64a()
	h.Write([]byte("RangePredicate"))
	var buf [16]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(r.A >> (8 * i))
		buf[8+i] = byte(r.B >> (8 * i))
	}
	h.Write(buf[:])
	return h.Sum64()
}
func (r RangePredicate) String() string { return "RangePredicate" }

// ---------------------------------------------------------------------
// MultiBitOp: tiles Inner N times over contiguous arguments.
type MultiBitOp struct {
	Inner ClassicalEvalOp
	N     int
}

func (m MultiBitOp) Tag() Tag { return TagMultiBit }
func (m MultiBitOp) Signature() []unit.WireType {
	ni, nio, no := m.Inner.Shape()
	return classicalSignature(ni*m.N, nio*m.N, no*m.N)
}
func (m MultiBitOp) NQubits() int { return 0 }
func (m MultiBitOp) NClassical() int {
	ni, nio, no := m.Inner.Shape()
	return (ni + nio + no) * m.N
}
func (m MultiBitOp) NBoolean() int { return 0 }
func (m MultiBitOp) NBits() int    { return m.NClassical() }
func (m MultiBitOp) Shape() (int, int, int) {
	ni, nio, no := m.Inner.Shape()
	return ni * m.N, nio * m.N, no * m.N
}
func (m MultiBitOp) EvalBits(bits []bool) []bool {
	ni, nio, _ := m.Inner.Shape()
	chunkIn := ni + nio
	out := make([]bool, 0)
	for i := 0; i < m.N; i++ {
		chunk := bits[i*chunkIn : (i+1)*chunkIn]
		out = append(out, m.Inner.EvalBits(chunk)...)
	}
	return out
}
func (m MultiBitOp) Dagger() Operation    { return m }
func (m MultiBitOp) Transpose() Operation { return m }
func (m MultiBitOp) SymbolSubstitution(map[expr.Symbol]expr.Expr) Operation { return m }
func (MultiBitOp) FreeSymbols() map[expr.Symbol]struct{}                    { return nil }
func (m MultiBitOp) IsEqual(other Operation) bool {
	o, ok := other.(ClassicalEvalOp)
	return ok && classicalEvalEqual(m, o)
}
func (m MultiBitOp) HashValue() uint64 {
	h := fnv.New64a()
	h.Write([]byte("MultiBitOp"))
	h.Write([]byte{byte(m.N)})
	var buf [8]byte
	iv := m.Inner.HashValue()
	for i := range buf {
		buf[i] = byte(iv >> (8 * i))
	}
	h.Write(buf[:])
	return h.Sum64()
}
func (m MultiBitOp) String() string { return "MultiBit(" + m.Inner.String() + ")" }

// ---------------------------------------------------------------------
// ClassicalTransform: generic table-based transform (SPEC_FULL §3,
// grounded on the original's ClassicalTransform, spec §4.2 names the
// variant without detailing it).
type ClassicalTransform struct {
	NIn, NOut int
	Table     func([]bool) []bool
}

func (c ClassicalTransform) Tag() Tag                   { return TagClassicalTransform }
func (c ClassicalTransform) Signature() []unit.WireType { return classicalSignature(c.NIn, 0, c.NOut) }
func (c ClassicalTransform) NQubits() int               { return 0 }
func (c ClassicalTransform) NClassical() int            { return c.NIn + c.NOut }
func (c ClassicalTransform) NBoolean() int              { return 0 }
func (c ClassicalTransform) NBits() int                 { return c.NIn + c.NOut }
func (c ClassicalTransform) Shape() (int, int, int)     { return c.NIn, 0, c.NOut }
func (c ClassicalTransform) EvalBits(bits []bool) []bool { return c.Table(bits) }
func (c ClassicalTransform) Dagger() Operation           { return c }
func (c ClassicalTransform) Transpose() Operation        { return c }
func (c ClassicalTransform) SymbolSubstitution(map[expr.Symbol]expr.Expr) Operation { return c }
func (ClassicalTransform) FreeSymbols() map[expr.Symbol]struct{}                    { return nil }
func (c ClassicalTransform) IsEqual(other Operation) bool {
	o, ok := other.(ClassicalEvalOp)
	return ok && classicalEvalEqual(c, o)
}
func (c ClassicalTransform) HashValue() uint64 {
	// Function values have no stable representation; this op must never
	// be used as a hash key (spec §4.2's ClassicalEvalOp carve-out).
	return 0
}
func (c ClassicalTransform) String() string { return "ClassicalTransform" }

// ---------------------------------------------------------------------
// SetBits: writes literal constant values to len(Values) output bits.
type SetBits struct {
	Values []bool
}

func (s SetBits) Tag() Tag                   { return TagSetBits }
func (s SetBits) Signature() []unit.WireType { return classicalSignature(0, 0, len(s.Values)) }
func (s SetBits) NQubits() int               { return 0 }
func (s SetBits) NClassical() int            { return len(s.Values) }
func (s SetBits) NBoolean() int              { return 0 }
func (s SetBits) NBits() int                 { return len(s.Values) }
func (s SetBits) Shape() (int, int, int)     { return 0, 0, len(s.Values) }
func (s SetBits) EvalBits([]bool) []bool     { return s.Values }
func (s SetBits) Dagger() Operation          { return s }
func (s SetBits) Transpose() Operation       { return s }
func (s SetBits) SymbolSubstitution(map[expr.Symbol]expr.Expr) Operation { return s }
func (SetBits) FreeSymbols() map[expr.Symbol]struct{}                    { return nil }
func (s SetBits) IsEqual(other Operation) bool {
	o, ok := other.(ClassicalEvalOp)
	return ok && classicalEvalEqual(s, o)
}
func (s SetBits) HashValue() uint64 {
	h := fnv.New64a()
	h.Write([]byte("SetBits"))
	for _, b := range s.Values {
		if b {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}
	return h.Sum64()
}
func (s SetBits) String() string { return "SetBits" }

// ---------------------------------------------------------------------
// CopyBits: copies N read-only input bits to N fresh output bits.
type CopyBits struct{ N int }

func (c CopyBits) Tag() Tag                   { return TagCopyBits }
func (c CopyBits) Signature() []unit.WireType { return classicalSignature(c.N, 0, c.N) }
func (c CopyBits) NQubits() int               { return 0 }
func (c CopyBits) NClassical() int            { return 2 * c.N }
func (c CopyBits) NBoolean() int              { return 0 }
func (c CopyBits) NBits() int                 { return 2 * c.N }
func (c CopyBits) Shape() (int, int, int)     { return c.N, 0, c.N }
func (c CopyBits) EvalBits(bits []bool) []bool {
	out := make([]bool, len(bits))
	copy(out, bits)
	return out
}
func (c CopyBits) Dagger() Operation    { return c }
func (c CopyBits) Transpose() Operation { return c }
func (c CopyBits) SymbolSubstitution(map[expr.Symbol]expr.Expr) Operation { return c }
func (CopyBits) FreeSymbols() map[expr.Symbol]struct{}                    { return nil }
func (c CopyBits) IsEqual(other Operation) bool {
	o, ok := other.(ClassicalEvalOp)
	return ok && classicalEvalEqual(c, o)
}
func (c CopyBits) HashValue() uint64 {
	h := fnv.New64a()
	h.Write([]byte("CopyBits"))
	h.Write([]byte{byte(c.N)})
	return h.Sum64()
}
func (c CopyBits) String() string { return "CopyBits" }
