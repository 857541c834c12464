// Package unit defines the identifiers that name quantum, classical and
// WASM-state wires, and the wire-type tags that drive the linear/read-only
// rules enforced by package circuit.
package unit

import (
	"fmt"
	"strings"
)

// Kind distinguishes the three families of named endpoint a UnitID can
// refer to. Boolean and RNG wires are not separately "kinds" of UnitID —
// they are WireTypes produced on top of a Bit or fresh internally by the
// circuit, per spec §3.
type Kind int

const (
	Qubit Kind = iota
	Bit
	WasmState
)

func (k Kind) String() string {
	switch k {
	case Qubit:
		return "q"
	case Bit:
		return "c"
	case WasmState:
		return "w"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// maxIndexDims bounds the index arity an ID can carry. tket registers
// are rarely more than 2-dimensional (qubit grids); 4 leaves headroom
// while keeping ID a plain comparable value usable as a map key.
const maxIndexDims = 4

// ID identifies a single wire endpoint: a register name plus a
// multi-dimensional index within that register. Two IDs are considered
// part of the same register iff they share Kind and Register; the
// circuit package enforces that such IDs also share index-arity. ID is
// a comparable value type so it can be used directly as a map key.
type ID struct {
	Kind     Kind
	Register string
	dims     [maxIndexDims]uint
	ndims    uint8
}

// New builds an ID with the given index tuple, the common case being a
// single index (register[i]). Panics if more than maxIndexDims indices
// are supplied.
func New(k Kind, register string, index ...uint) ID {
	if len(index) > maxIndexDims {
		panic("unit: index arity exceeds maxIndexDims")
	}
	id := ID{Kind: k, Register: register, ndims: uint8(len(index))}
	copy(id.dims[:], index)
	return id
}

// Index returns the index tuple as a fresh slice.
func (u ID) Index() []uint {
	return append([]uint(nil), u.dims[:u.ndims]...)
}

// Qb is shorthand for a default-register qubit.
func Qb(i uint) ID { return New(Qubit, "q", i) }

// Cb is shorthand for a default-register classical bit.
func Cb(i uint) ID { return New(Bit, "c", i) }

// Equal reports structural equality. Since ID is comparable, u == o
// works identically; Equal exists for readability at call sites.
func (u ID) Equal(o ID) bool { return u == o }

// Compare implements the lexicographic order on (kind, name, index)
// required by spec §3 for UnitID equality/ordering.
func (u ID) Compare(o ID) int {
	if u.Kind != o.Kind {
		return int(u.Kind) - int(o.Kind)
	}
	if u.Register != o.Register {
		return strings.Compare(u.Register, o.Register)
	}
	n := int(u.ndims)
	if int(o.ndims) < n {
		n = int(o.ndims)
	}
	for i := 0; i < n; i++ {
		if u.dims[i] != o.dims[i] {
			if u.dims[i] < o.dims[i] {
				return -1
			}
			return 1
		}
	}
	return int(u.ndims) - int(o.ndims)
}

// SameRegister reports whether u and o name positions in the same
// register (same Kind and Register name). It does not check arity; the
// "registers are implicit" invariant in spec §3 is enforced by the
// circuit package at the point a register is extended.
func (u ID) SameRegister(o ID) bool {
	return u.Kind == o.Kind && u.Register == o.Register
}

// String renders "register[i,j,...]", e.g. "q[0]" or "w[2,1]".
func (u ID) String() string {
	var sb strings.Builder
	sb.WriteString(u.Register)
	sb.WriteByte('[')
	for i := 0; i < int(u.ndims); i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", u.dims[i])
	}
	sb.WriteByte(']')
	return sb.String()
}

// WireType is the type carried by a single circuit edge (spec §3).
type WireType int

const (
	Quantum WireType = iota
	Classical
	Boolean
	WASM
	RNG
)

// Linear reports whether the wire type requires exactly one in-edge and
// one out-edge per vertex port (every type except Boolean).
func (w WireType) Linear() bool { return w != Boolean }

// Tag returns the one-letter JSON serialization tag from spec §6.
func (w WireType) Tag() string {
	switch w {
	case Quantum:
		return "Q"
	case Classical:
		return "C"
	case Boolean:
		return "B"
	case WASM:
		return "W"
	case RNG:
		return "R"
	default:
		return "?"
	}
}

func (w WireType) String() string {
	switch w {
	case Quantum:
		return "Quantum"
	case Classical:
		return "Classical"
	case Boolean:
		return "Boolean"
	case WASM:
		return "WASM"
	case RNG:
		return "RNG"
	default:
		return fmt.Sprintf("WireType(%d)", int(w))
	}
}

// TagToWireType inverts Tag; used by package serialize.
func TagToWireType(tag string) (WireType, bool) {
	switch tag {
	case "Q":
		return Quantum, true
	case "C":
		return Classical, true
	case "B":
		return Boolean, true
	case "W":
		return WASM, true
	case "R":
		return RNG, true
	default:
		return 0, false
	}
}
