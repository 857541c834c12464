package transform

import (
	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/unit"
)

func asPrimitive(c *circuit.Circuit, v circuit.VertexID) (op.PrimitiveGate, bool) {
	if c.IsBoundary(v) {
		return op.PrimitiveGate{}, false
	}
	o, _, ok := c.Vertex(v)
	if !ok {
		return op.PrimitiveGate{}, false
	}
	pg, ok := o.(op.PrimitiveGate)
	return pg, ok
}

func isGate(c *circuit.Circuit, v circuit.VertexID, t op.GateType) bool {
	pg, ok := asPrimitive(c, v)
	return ok && pg.Type == t
}

func isCX(c *circuit.Circuit, v circuit.VertexID) bool { return isGate(c, v, op.GateCX) }

// cxArgs recovers a CX vertex's (control, target) qubits.
func cxArgs(c *circuit.Circuit, v circuit.VertexID) (control, target unit.ID, ok bool) {
	control, ok0 := c.UnitOfPort(v, 0)
	target, ok1 := c.UnitOfPort(v, 1)
	return control, target, ok0 && ok1
}

// nextVertexBothPorts returns the single vertex that both of v's ports
// 0 and 1 feed into, if they feed the same vertex (used to detect
// adjacent two-qubit gates with no gate on either qubit in between).
func nextVertexBothPorts(c *circuit.Circuit, v circuit.VertexID) (circuit.VertexID, bool) {
	e0, ok0 := c.LinearOutAt(v, 0)
	e1, ok1 := c.LinearOutAt(v, 1)
	if !ok0 || !ok1 {
		return 0, false
	}
	edge0, ok0 := c.EdgeByID(e0)
	edge1, ok1 := c.EdgeByID(e1)
	if !ok0 || !ok1 || edge0.Tgt != edge1.Tgt {
		return 0, false
	}
	return edge0.Tgt, true
}

func predecessorGate(c *circuit.Circuit, v circuit.VertexID, port int, want op.GateType) (circuit.VertexID, bool) {
	eid := c.InEdgeAtPort(v, port)
	if eid == 0 {
		return 0, false
	}
	e, ok := c.EdgeByID(eid)
	if !ok || c.IsBoundary(e.Src) {
		return 0, false
	}
	if isGate(c, e.Src, want) {
		return e.Src, true
	}
	return 0, false
}

func successorGate(c *circuit.Circuit, v circuit.VertexID, port int, want op.GateType) (circuit.VertexID, bool) {
	eid, ok := c.LinearOutAt(v, port)
	if !ok {
		return 0, false
	}
	e, ok := c.EdgeByID(eid)
	if !ok || c.IsBoundary(e.Tgt) {
		return 0, false
	}
	if isGate(c, e.Tgt, want) {
		return e.Tgt, true
	}
	return 0, false
}

func groupOf(c *circuit.Circuit, v circuit.VertexID) string {
	_, g, _ := c.Vertex(v)
	return g
}

func unitArgs(us ...unit.ID) []unit.ID { return us }
