package pauligraph

import (
	"math"
	"sort"

	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/pauli"
	"github.com/kegliz/qcompile/unit"
)

// Strategy selects one of spec §4.7's Pauli-exponential synthesis
// strategies.
type Strategy int

const (
	// Individual emits each vertex on its own, in insertion order, via
	// a CX-ladder basis change terminating in a single Rz.
	Individual Strategy = iota
	// Sets partitions vertices into mutually-commuting sets by greedy
	// colouring of the anti-commutation graph (spec §4.7), then
	// diagonalizes each set with one shared Clifford conjugation: every
	// member's Rz lands under the same running basis change, and the
	// whole set is unwound once at the end instead of once per member.
	Sets
)

// DiagStrategy names the CX-tree shape diagonalizeSet uses to fold a
// set member's active qubits onto its Rz pivot (spec §4.7).
type DiagStrategy int

const (
	// Snake chains consecutive active qubits: CX(q0,q1), CX(q1,q2), ...
	Snake DiagStrategy = iota
	// Star routes every non-pivot active qubit directly onto the pivot:
	// CX(q0,pivot), CX(q1,pivot), ... Same CX count as Snake; since every
	// CX targets the pivot they run one after another, so the CX depth is
	// also n-1. The pivot qubit takes part in every CX instead of just
	// its neighbours.
	Star
)

// Synthesize turns pg back into a circuit (spec §4.7's pauli_graph ->
// circuit direction): every vertex's exp(iθP) is emitted via a
// CX-ladder basis change, grouped per strategy, followed by the
// trailing Clifford recorded in pg.Clifford.
func Synthesize(pg *PauliGraph, strategy Strategy, diag DiagStrategy) (*circuit.Circuit, error) {
	c := circuit.New(0, 0)
	for _, q := range pg.Qubits {
		if err := c.AddQubit(q); err != nil {
			return nil, err
		}
	}

	switch strategy {
	case Sets:
		for _, set := range colorSets(pg) {
			members := make([]Vertex, len(set))
			for i, v := range set {
				members[i] = pg.Vertices[v]
			}
			if err := diagonalizeSet(c, pg.Qubits, members, diag); err != nil {
				return nil, err
			}
		}
	default: // Individual
		for i := range pg.Vertices {
			if err := emitVertex(c, pg.Vertices[i]); err != nil {
				return nil, err
			}
		}
	}

	for _, step := range pg.Clifford {
		if step.Type == op.GateCY {
			if err := emitCY(c, step.Qubits); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := c.AddOp(op.NewPrimitive(step.Type), step.Qubits, ""); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// emitCY expands a recorded CY step the same way applyCY conjugates the
// tableau: S_target . CX . Sdg_target as an operator product, emitted
// in time order Sdg, CX, S.
func emitCY(c *circuit.Circuit, qubits []unit.ID) error {
	control, target := qubits[0], qubits[1]
	if _, err := c.AddOp(op.Sdg(), []unit.ID{target}, ""); err != nil {
		return err
	}
	if _, err := c.AddOp(op.CX(), []unit.ID{control, target}, ""); err != nil {
		return err
	}
	_, err := c.AddOp(op.S(), []unit.ID{target}, "")
	return err
}

// emitVertex emits exp(iθP) as: rotate every non-identity qubit's
// active Pauli axis to Z (H for X, Sdg-then-H for Y), fold parity onto
// the last qubit via a CX staircase, apply the resulting Rz, then
// unwind both ladders. A fully-identity P (global phase only) emits a
// zero-qubit Phase vertex instead, since it has no qubit to ladder
// through.
func emitVertex(c *circuit.Circuit, v Vertex) error {
	entries := v.Paulis.Map.Entries()
	if len(entries) == 0 {
		_, err := c.AddOp(op.Phase(globalPhaseParam(v.Theta)), nil, "")
		return err
	}

	for _, e := range entries {
		switch e.P {
		case pauli.X:
			if _, err := c.AddOp(op.H(), []unit.ID{e.Qubit}, ""); err != nil {
				return err
			}
		case pauli.Y:
			if _, err := c.AddOp(op.Sdg(), []unit.ID{e.Qubit}, ""); err != nil {
				return err
			}
			if _, err := c.AddOp(op.H(), []unit.ID{e.Qubit}, ""); err != nil {
				return err
			}
		}
	}

	order := make([]unit.ID, len(entries))
	for i, e := range entries {
		order[i] = e.Qubit
	}
	for i := 0; i < len(order)-1; i++ {
		if _, err := c.AddOp(op.CX(), []unit.ID{order[i], order[i+1]}, ""); err != nil {
			return err
		}
	}

	pivot := order[len(order)-1]
	if _, err := c.AddOp(op.Rz(rzParam(v.Theta)), []unit.ID{pivot}, ""); err != nil {
		return err
	}

	for i := len(order) - 2; i >= 0; i-- {
		if _, err := c.AddOp(op.CX(), []unit.ID{order[i], order[i+1]}, ""); err != nil {
			return err
		}
	}

	for _, e := range entries {
		switch e.P {
		case pauli.X:
			if _, err := c.AddOp(op.H(), []unit.ID{e.Qubit}, ""); err != nil {
				return err
			}
		case pauli.Y:
			if _, err := c.AddOp(op.H(), []unit.ID{e.Qubit}, ""); err != nil {
				return err
			}
			if _, err := c.AddOp(op.S(), []unit.ID{e.Qubit}, ""); err != nil {
				return err
			}
		}
	}
	return nil
}

// diagGate is one Clifford primitive diagonalizeSet has emitted as part
// of the set's shared basis change, recorded so the whole change can be
// unwound by replaying it in reverse with each gate inverted.
type diagGate struct {
	Type   op.GateType
	Qubits []unit.ID
}

func inverseOf(g op.GateType) op.GateType {
	if g == op.GateS {
		return op.GateSdg
	}
	if g == op.GateSdg {
		return op.GateS
	}
	return g // H and CX are self-inverse
}

// diagonalizeSet emits every member of a mutually-commuting set under
// one shared Clifford conjugation (spec §4.7's per-set diagonalization):
// each member's current image is read off a running Tableau, rotated to
// all-Z and folded onto a single pivot qubit with diag's CX-tree shape,
// and its Rz is placed right there — the conjugating gates built up so
// far are never undone between members, only once at the very end.
//
// This is sound regardless of how members share qubits: a member's
// pivot may be a qubit an earlier member already pivoted on (forced to
// be Z there by the commutation invariant every pair in the set
// satisfies), and gates added for a later member are free to use an
// earlier member's pivot as a control or a target. Writing the circuit
// as U_1 Rz_1 ΔU_2 Rz_2 ... ΔU_k Rz_k U_total^-1 and substituting
// U_i = ΔU_i ... ΔU_1 telescopes to exp(iθ_k P_k)...exp(iθ_1 P_1)
// regardless of interleaving, since U_i† Rz_i U_i = exp(iθ_i P_i) holds
// at the moment each Rz_i is placed and the U_i†...U_i pairs cancel in
// sequence. The set members commute, so their target product doesn't
// care about order either.
func diagonalizeSet(c *circuit.Circuit, qubits []unit.ID, members []Vertex, diag DiagStrategy) error {
	tab := newTableau(qubits)
	var gates []diagGate

	emit := func(g op.GateType, qs []unit.ID) error {
		if _, err := c.AddOp(op.NewPrimitive(g), qs, ""); err != nil {
			return err
		}
		gates = append(gates, diagGate{Type: g, Qubits: qs})
		applyGate(tab, g, qs)
		return nil
	}

	for _, v := range members {
		row0 := Row{Map: v.Paulis.Map, Coeff: pauli.QuarterTurn(0)}
		cur := substituteRow(row0, tab)
		entries := cur.Map.Entries()
		if len(entries) == 0 {
			if _, err := c.AddOp(op.Phase(globalPhaseParam(v.Theta)), nil, ""); err != nil {
				return err
			}
			continue
		}

		qs := make([]unit.ID, len(entries))
		for i, e := range entries {
			qs[i] = e.Qubit
		}
		sort.Slice(qs, func(i, j int) bool { return qs[i].Compare(qs[j]) < 0 })

		for _, e := range entries {
			switch e.P {
			case pauli.X:
				if err := emit(op.GateH, []unit.ID{e.Qubit}); err != nil {
					return err
				}
			case pauli.Y:
				if err := emit(op.GateSdg, []unit.ID{e.Qubit}); err != nil {
					return err
				}
				if err := emit(op.GateH, []unit.ID{e.Qubit}); err != nil {
					return err
				}
			}
		}

		pivot := qs[len(qs)-1]
		switch diag {
		case Star:
			for i := 0; i < len(qs)-1; i++ {
				if err := emit(op.GateCX, []unit.ID{qs[i], pivot}); err != nil {
					return err
				}
			}
		default: // Snake
			for i := 0; i < len(qs)-1; i++ {
				if err := emit(op.GateCX, []unit.ID{qs[i], qs[i+1]}); err != nil {
					return err
				}
			}
		}

		theta := v.Theta
		final := substituteRow(row0, tab)
		if final.Coeff == 2 {
			theta = expr.Neg(theta)
		}
		if _, err := c.AddOp(op.Rz(rzParam(theta)), []unit.ID{pivot}, ""); err != nil {
			return err
		}
	}

	for i := len(gates) - 1; i >= 0; i-- {
		g := gates[i]
		if _, err := c.AddOp(op.NewPrimitive(inverseOf(g.Type)), g.Qubits, ""); err != nil {
			return err
		}
	}
	return nil
}

// rzParam converts exp(iθZ)'s radian θ to Rz's half-turn parameter t
// (op/primitive.go: Rz(t) = diag(e^{-iπt/2}, e^{iπt/2})), so
// -πt/2 = θ, t = -2θ/π.
func rzParam(theta expr.Expr) expr.Expr {
	return expr.Mul(expr.Real(-2/math.Pi), theta)
}

// globalPhaseParam converts exp(iθ)'s radian θ to Phase's half-turn
// parameter t (Phase(t) = e^{iπt}), t = θ/π.
func globalPhaseParam(theta expr.Expr) expr.Expr {
	return expr.Mul(expr.Real(1/math.Pi), theta)
}

// colorSets greedily colours the anti-commutation graph (spec §4.7:
// "partition gadgets into mutually commuting sets (greedy colouring of
// the anti-commutation graph)"), returning each colour class as a list
// of vertex indices in insertion order. Same-colour vertices share no
// anti-commutation edge, so they pairwise commute.
func colorSets(pg *PauliGraph) [][]VertexID {
	n := len(pg.Vertices)
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	for v, neighbors := range pg.Edges {
		for _, u := range neighbors {
			adj[v][u] = true
			adj[u][v] = true
		}
	}

	colorOf := make([]int, n)
	for i := range colorOf {
		colorOf[i] = -1
	}
	var sets [][]VertexID
	for v := 0; v < n; v++ {
		used := map[int]bool{}
		for u := 0; u < v; u++ {
			if adj[v][u] {
				used[colorOf[u]] = true
			}
		}
		col := 0
		for used[col] {
			col++
		}
		colorOf[v] = col
		for len(sets) <= col {
			sets = append(sets, nil)
		}
		sets[col] = append(sets[col], VertexID(v))
	}
	return sets
}
