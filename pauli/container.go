package pauli

import (
	"sort"

	"github.com/kegliz/qcompile/unit"
)

// QubitPauli pairs a non-identity Pauli with the qubit it acts on.
type QubitPauli struct {
	Qubit unit.ID
	P     Pauli
}

// Container is the self-referential constraint every PauliTensor storage
// shape must satisfy (spec §4.6, spec §9's generic-container design
// note). Entries always excludes identity positions ("I treated as
// absent" per spec §4.6's compare contract).
type Container[Self any] interface {
	Get(q unit.ID) Pauli
	Set(q unit.ID, p Pauli) Self
	// Entries returns the non-identity (qubit, Pauli) pairs in this
	// container's canonical comparison order.
	Entries() []QubitPauli
	Empty() Self
	Clone() Self
	IsEqual(other Self) bool
}

// ---------------------------------------------------------------------
// Sparse: qubit-indexed map, order is Ignored Little-endian Ordering
// (ILO) — higher-indexed qubit compared first, per spec §4.6/glossary.

// SparseMap is the sparse qubit-indexed Container.
type SparseMap struct {
	m map[unit.ID]Pauli
}

// NewSparseMap builds a SparseMap from explicit (qubit, Pauli) pairs;
// identity entries are dropped.
func NewSparseMap(entries ...QubitPauli) SparseMap {
	s := SparseMap{m: make(map[unit.ID]Pauli, len(entries))}
	for _, e := range entries {
		if e.P != I {
			s.m[e.Qubit] = e.P
		}
	}
	return s
}

func (s SparseMap) Get(q unit.ID) Pauli {
	if s.m == nil {
		return I
	}
	return s.m[q]
}

func (s SparseMap) Set(q unit.ID, p Pauli) SparseMap {
	out := s.Clone()
	if out.m == nil {
		out.m = map[unit.ID]Pauli{}
	}
	if p == I {
		delete(out.m, q)
	} else {
		out.m[q] = p
	}
	return out
}

func (s SparseMap) Empty() SparseMap { return SparseMap{m: map[unit.ID]Pauli{}} }

func (s SparseMap) Clone() SparseMap {
	out := make(map[unit.ID]Pauli, len(s.m))
	for k, v := range s.m {
		out[k] = v
	}
	return SparseMap{m: out}
}

// Entries returns non-identity entries in ILO order: higher-indexed
// qubit first, per spec §4.6/glossary.
func (s SparseMap) Entries() []QubitPauli {
	out := make([]QubitPauli, 0, len(s.m))
	for q, p := range s.m {
		out = append(out, QubitPauli{Qubit: q, P: p})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Qubit.Compare(out[j].Qubit) > 0 // ILO: descending
	})
	return out
}

func (s SparseMap) IsEqual(o SparseMap) bool {
	ea, eb := s.Entries(), o.Entries()
	if len(ea) != len(eb) {
		return false
	}
	for i := range ea {
		if !ea[i].Qubit.Equal(eb[i].Qubit) || ea[i].P != eb[i].P {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------
// Dense: positional vector over the default register, ascending index.

// DenseVec is the dense positional Container. It only addresses qubits
// on the default "q" register with a single-dimensional index, per
// spec §4.6's cast_container contract.
type DenseVec struct {
	v []Pauli
}

// NewDenseVec builds a DenseVec of the given length, all-identity.
func NewDenseVec(n int) DenseVec { return DenseVec{v: make([]Pauli, n)} }

func denseIndex(q unit.ID) (int, bool) {
	idx := q.Index()
	if q.Register != "q" || len(idx) != 1 {
		return 0, false
	}
	return int(idx[0]), true
}

func (d DenseVec) Get(q unit.ID) Pauli {
	i, ok := denseIndex(q)
	if !ok || i < 0 || i >= len(d.v) {
		return I
	}
	return d.v[i]
}

// Set grows the backing vector if needed.
func (d DenseVec) Set(q unit.ID, p Pauli) DenseVec {
	i, ok := denseIndex(q)
	if !ok {
		return d.Clone()
	}
	out := d.Clone()
	for len(out.v) <= i {
		out.v = append(out.v, I)
	}
	out.v[i] = p
	return out
}

func (d DenseVec) Empty() DenseVec { return DenseVec{} }

func (d DenseVec) Clone() DenseVec {
	out := make([]Pauli, len(d.v))
	copy(out, d.v)
	return DenseVec{v: out}
}

// Entries returns non-identity entries in ascending positional order.
func (d DenseVec) Entries() []QubitPauli {
	out := make([]QubitPauli, 0)
	for i, p := range d.v {
		if p != I {
			out = append(out, QubitPauli{Qubit: unit.Qb(uint(i)), P: p})
		}
	}
	return out
}

func (d DenseVec) IsEqual(o DenseVec) bool {
	maxLen := len(d.v)
	if len(o.v) > maxLen {
		maxLen = len(o.v)
	}
	for i := 0; i < maxLen; i++ {
		var a, b Pauli
		if i < len(d.v) {
			a = d.v[i]
		}
		if i < len(o.v) {
			b = o.v[i]
		}
		if a != b {
			return false
		}
	}
	return true
}

// Len reports the nominal dense length (max_index + 1).
func (d DenseVec) Len() int { return len(d.v) }
