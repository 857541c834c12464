package pauli

import (
	"hash/fnv"
	"sort"

	"github.com/kegliz/qcompile/unit"
)

// PauliTensor is an element of {I,X,Y,Z}^⊗n together with a scalar
// coefficient, generic over storage Container and coefficient domain
// Coeff (spec §4.6).
type PauliTensor[C Container[C], K Coeff[K]] struct {
	Map   C
	Coeff K
}

// New builds a PauliTensor from the given container and coefficient;
// callers typically start from an empty container and set entries via With.
func New[C Container[C], K Coeff[K]](container C, coeff K) PauliTensor[C, K] {
	return PauliTensor[C, K]{Map: container, Coeff: coeff}
}

// With returns a copy with qubit q set to Pauli p.
func (t PauliTensor[C, K]) With(q unit.ID, p Pauli) PauliTensor[C, K] {
	return PauliTensor[C, K]{Map: t.Map.Set(q, p), Coeff: t.Coeff}
}

// Get returns the Pauli acting on q (I if absent).
func (t PauliTensor[C, K]) Get(q unit.ID) Pauli { return t.Map.Get(q) }

// Multiply implements spec §4.6's multiply(a, b): it walks the union of
// non-identity qubits, applies the fixed Pauli multiplication table per
// qubit, aggregates the resulting quarter-turn phase, and combines it
// with the two operands' existing coefficients via multiply_coeffs.
func Multiply[C Container[C], K Coeff[K]](a, b PauliTensor[C, K]) PauliTensor[C, K] {
	seen := map[unit.ID]struct{}{}
	qubits := make([]unit.ID, 0)
	for _, e := range a.Map.Entries() {
		if _, ok := seen[e.Qubit]; !ok {
			seen[e.Qubit] = struct{}{}
			qubits = append(qubits, e.Qubit)
		}
	}
	for _, e := range b.Map.Entries() {
		if _, ok := seen[e.Qubit]; !ok {
			seen[e.Qubit] = struct{}{}
			qubits = append(qubits, e.Qubit)
		}
	}

	result := a.Map.Empty()
	var totalPhase QuarterTurn
	for _, q := range qubits {
		pa := a.Map.Get(q)
		pb := b.Map.Get(q)
		res, ph := multiplyPaulis(pa, pb)
		totalPhase = totalPhase.ApplyQuarterTurn(ph)
		result = result.Set(q, res)
	}

	coeff := a.Coeff.Multiply(b.Coeff).ApplyQuarterTurn(totalPhase)
	return PauliTensor[C, K]{Map: result, Coeff: coeff}
}

// CommutesWith is true iff the number of positions where both Paulis are
// non-identity and differ is even (spec §4.6).
func CommutesWith[C Container[C], K Coeff[K]](a, b PauliTensor[C, K]) bool {
	seen := map[unit.ID]struct{}{}
	conflicts := 0
	check := func(q unit.ID) {
		if _, ok := seen[q]; ok {
			return
		}
		seen[q] = struct{}{}
		pa, pb := a.Map.Get(q), b.Map.Get(q)
		if pa != I && pb != I && pa != pb {
			conflicts++
		}
	}
	for _, e := range a.Map.Entries() {
		check(e.Qubit)
	}
	for _, e := range b.Map.Entries() {
		check(e.Qubit)
	}
	return conflicts%2 == 0
}

// Compare implements spec §4.6's total order: first by coefficient, then
// lexicographically over (qubit, Pauli) pairs in the container's
// canonical order (ILO for sparse).
func Compare[C Container[C], K Coeff[K]](a, b PauliTensor[C, K]) int {
	if c := a.Coeff.Compare(b.Coeff); c != 0 {
		return c
	}
	ea, eb := a.Map.Entries(), b.Map.Entries()
	n := len(ea)
	if len(eb) < n {
		n = len(eb)
	}
	for i := 0; i < n; i++ {
		if c := ea[i].Qubit.Compare(eb[i].Qubit); c != 0 {
			return c
		}
		if ea[i].P != eb[i].P {
			return int(ea[i].P) - int(eb[i].P)
		}
	}
	return len(ea) - len(eb)
}

// IsEqual is structural equality: same canonical entries and equal
// coefficient.
func (t PauliTensor[C, K]) IsEqual(o PauliTensor[C, K]) bool {
	return t.Map.IsEqual(o.Map) && t.Coeff.IsEqual(o.Coeff)
}

// Hash is consistent with IsEqual: it ignores trailing identities
// (Entries() already excludes them) and hashes the coefficient's
// canonical string form.
func (t PauliTensor[C, K]) Hash() uint64 {
	h := fnv.New64a()
	for _, e := range t.Map.Entries() {
		h.Write([]byte(e.Qubit.String()))
		h.Write([]byte{byte(e.P)})
	}
	h.Write([]byte(t.Coeff.String()))
	return h.Sum64()
}

// Transpose multiplies the coefficient by (-1)^(number of Y's), per spec
// §4.6.
func (t PauliTensor[C, K]) Transpose() PauliTensor[C, K] {
	return PauliTensor[C, K]{Map: t.Map, Coeff: t.Coeff.Transpose(t.YCount())}
}

// YCount returns the number of Y operators in the tensor.
func (t PauliTensor[C, K]) YCount() int {
	n := 0
	for _, e := range t.Map.Entries() {
		if e.P == Y {
			n++
		}
	}
	return n
}

// String renders the coefficient followed by one "(qubit,pauli)" pair
// per entry in ascending qubit order, e.g. "(q[0],X)(q[2],Z)" after the
// coefficient's own text.
func (t PauliTensor[C, K]) String() string {
	entries := t.Map.Entries()
	sorted := append([]QubitPauli(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Qubit.Compare(sorted[j].Qubit) < 0 })
	out := t.Coeff.String()
	for _, e := range sorted {
		out += "(" + e.Qubit.String() + "," + e.P.String() + ")"
	}
	return out
}

// ---------------------------------------------------------------------
// cast_container (spec §4.6): dense -> sparse is always permitted;
// sparse -> dense requires every qubit to be on the default register
// with a single-dimensional index.

// NonDefaultRegister is returned by CastSparseToDense when a sparse
// tensor references a qubit outside the default register.
type NonDefaultRegister struct{ Qubit unit.ID }

func (e NonDefaultRegister) Error() string {
	return "pauli: qubit " + e.Qubit.String() + " is not on the default register"
}

// CastDenseToSparse is always permitted.
func CastDenseToSparse(d DenseVec) SparseMap {
	return NewSparseMap(d.Entries()...)
}

// CastSparseToDense requires every qubit to be from the default register
// ("q") with a single-dimensional index; the resulting length is
// max_index + 1.
func CastSparseToDense(s SparseMap) (DenseVec, error) {
	entries := s.Entries()
	maxIdx := -1
	for _, e := range entries {
		i, ok := denseIndex(e.Qubit)
		if !ok {
			return DenseVec{}, NonDefaultRegister{Qubit: e.Qubit}
		}
		if i > maxIdx {
			maxIdx = i
		}
	}
	out := NewDenseVec(maxIdx + 1)
	for _, e := range entries {
		out = out.Set(e.Qubit, e.P)
	}
	return out, nil
}
