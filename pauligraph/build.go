package pauligraph

import (
	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/command"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/pauli"
	"github.com/kegliz/qcompile/unit"
)

var cliffordPrimitives = map[op.GateType]bool{
	op.GateH: true, op.GateX: true, op.GateY: true, op.GateZ: true,
	op.GateS: true, op.GateSdg: true, op.GateV: true, op.GateVdg: true,
	op.GateCX: true, op.GateCY: true, op.GateCZ: true, op.GateSWAP: true,
}

// FromCircuit walks c's commands in order and builds the equivalent
// PauliGraph (spec §4.7's circuit -> pauli_graph direction): every
// Clifford primitive updates the running tableau, every PauliExpBox is
// conjugated backward through it and inserted as a new vertex with an
// anti-commutation edge to each earlier vertex it anti-commutes with. A
// terminal Measure (nothing else touches its qubit afterward) is
// absorbed silently, since PauliGraph has no vertex kind for it; any
// further command on an already-measured qubit fails
// ErrMidCircuitMeasurement. A Barrier is a scheduling hint with no
// algebraic content and is skipped rather than rejected. Anything else —
// Conditional, Reset, a non-Clifford primitive (T/Tdg, Rx/Ry/Rz/U1
// outside a PauliExpBox, Toffoli-family gates), or any box type other
// than PauliExpBox — fails ErrUnsupportedOp.
func FromCircuit(c *circuit.Circuit) (*PauliGraph, error) {
	qubits := c.AllQubits()
	pg := &PauliGraph{
		Edges:   map[VertexID][]VertexID{},
		Tableau: newTableau(qubits),
		Qubits:  qubits,
	}

	cmds, err := command.Commands(c)
	if err != nil {
		return nil, err
	}

	measured := map[unit.ID]bool{}
	touches := func(args []unit.ID) bool {
		for _, a := range args {
			if a.Kind == unit.Qubit && measured[a] {
				return true
			}
		}
		return false
	}

	for _, cmd := range cmds {
		if touches(cmd.Args) {
			return nil, ErrMidCircuitMeasurement
		}
		switch o := cmd.Op.(type) {
		case op.Barrier:
			continue
		case op.Measure:
			measured[cmd.Args[0]] = true
			continue
		case op.PrimitiveGate:
			if !cliffordPrimitives[o.Type] {
				return nil, ErrUnsupportedOp
			}
			if o.Type == op.GateCY {
				if !applyCY(pg.Tableau, cmd.Args[0], cmd.Args[1]) {
					return nil, ErrUnsupportedOp
				}
				pg.Clifford = append(pg.Clifford, CliffordStep{Type: op.GateCY, Qubits: cmd.Args})
				continue
			}
			if !applyGate(pg.Tableau, o.Type, cmd.Args) {
				return nil, ErrUnsupportedOp
			}
			pg.Clifford = append(pg.Clifford, CliffordStep{Type: o.Type, Qubits: cmd.Args})
		case op.PauliExpBox:
			tensor, theta := conjugateBoxThroughTableau(o.Paulis, o.Phase, pg.Tableau)
			insertVertex(pg, Vertex{Paulis: tensor, Theta: theta})
		default:
			return nil, ErrUnsupportedOp
		}
	}
	return pg, nil
}

func insertVertex(pg *PauliGraph, v Vertex) VertexID {
	id := VertexID(len(pg.Vertices))
	pg.Vertices = append(pg.Vertices, v)
	var anti []VertexID
	for i := range pg.Vertices[:len(pg.Vertices)-1] {
		prior := VertexID(i)
		if !pauli.CommutesWith(v.Paulis, pg.Vertices[prior].Paulis) {
			anti = append(anti, prior)
		}
	}
	pg.Edges[id] = anti
	return id
}
