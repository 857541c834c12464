package circuit

import (
	"golang.org/x/exp/slices"

	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/unit"
)

// AllQubits returns qubit units in insertion order (spec §4.3).
func (c *Circuit) AllQubits() []unit.ID { return c.unitsOfKind(unit.Qubit) }

// AllBits returns classical-bit units in insertion order.
func (c *Circuit) AllBits() []unit.ID { return c.unitsOfKind(unit.Bit) }

func (c *Circuit) unitsOfKind(k unit.Kind) []unit.ID {
	out := make([]unit.ID, 0, len(c.boundary))
	for _, u := range c.boundary {
		if u.Kind == k {
			out = append(out, u)
		}
	}
	return out
}

// topoOrder returns every vertex (boundary included) in a deterministic
// topological order via Kahn's algorithm, the same technique as the
// teacher's qc/dag/dag.go calculateTopoSort, generalized from a
// children-adjacency slice to the edge map.
func (c *Circuit) topoOrder() []VertexID {
	indeg := make(map[VertexID]int, len(c.vertices))
	adj := make(map[VertexID][]VertexID, len(c.vertices))
	for v := range c.vertices {
		indeg[v] = 0
	}
	for _, e := range c.edges {
		indeg[e.Tgt]++
		adj[e.Src] = append(adj[e.Src], e.Tgt)
	}
	var ready []VertexID
	for v, d := range indeg {
		if d == 0 {
			ready = append(ready, v)
		}
	}
	slices.Sort(ready)

	order := make([]VertexID, 0, len(c.vertices))
	for len(ready) > 0 {
		slices.Sort(ready)
		v := ready[0]
		ready = ready[1:]
		order = append(order, v)
		for _, w := range adj[v] {
			indeg[w]--
			if indeg[w] == 0 {
				ready = append(ready, w)
			}
		}
	}
	return order
}

func (c *Circuit) inEdgesOf(v VertexID) []EdgeID {
	return c.vertices[v].ins
}

// layerDepth computes, for each vertex, 1+max(parent layer) when count
// reports true for that vertex's op, else max(parent layer) unchanged
// (spec §4.3's depth/depth_by_types/depth_2q all share this shape).
func (c *Circuit) layerDepth(count func(op.Operation) bool) int {
	order := c.topoOrder()
	depth := make(map[VertexID]int, len(order))
	max := 0
	for _, v := range order {
		vs := c.vertices[v]
		d := 0
		for _, eid := range c.inEdgesOf(v) {
			if eid == 0 {
				continue
			}
			if pd := depth[c.edges[eid].Src]; pd > d {
				d = pd
			}
		}
		if !isBoundaryTag(vs.op.Tag()) && count(vs.op) {
			d++
		}
		depth[v] = d
		if d > max {
			max = d
		}
	}
	return max
}

func isBarrier(o op.Operation) bool { _, ok := o.(op.Barrier); return ok }

// Depth is the number of non-empty slices, skipping Barrier.
func (c *Circuit) Depth() int {
	return c.layerDepth(func(o op.Operation) bool { return !isBarrier(o) })
}

// DepthByTypes counts slices containing at least one op whose Tag is in types.
func (c *Circuit) DepthByTypes(types map[op.Tag]bool) int {
	return c.layerDepth(func(o op.Operation) bool { return types[o.Tag()] })
}

// Depth2Q counts slices containing a 2-qubit non-barrier op.
func (c *Circuit) Depth2Q() int {
	return c.layerDepth(func(o op.Operation) bool { return !isBarrier(o) && o.NQubits() == 2 })
}

func firstNonBoolean(ids []EdgeID, edges map[EdgeID]*Edge) (EdgeID, bool) {
	for _, id := range ids {
		if edges[id].Type != unit.Boolean {
			return id, true
		}
	}
	return 0, false
}

// ImplicitQubitPermutation follows each qubit's linear path from its
// input boundary vertex to whichever output boundary vertex it
// terminates at (spec §4.3).
func (c *Circuit) ImplicitQubitPermutation() map[unit.ID]unit.ID {
	reverseOut := make(map[VertexID]unit.ID, len(c.outVert))
	for u, v := range c.outVert {
		reverseOut[v] = u
	}
	perm := make(map[unit.ID]unit.ID)
	for _, u := range c.boundary {
		if u.Kind != unit.Qubit {
			continue
		}
		curV, curPort := c.inVert[u], 0
		for {
			if outUnit, ok := reverseOut[curV]; ok {
				perm[u] = outUnit
				break
			}
			vs := c.vertices[curV]
			eid, ok := firstNonBoolean(vs.outs[curPort], c.edges)
			if !ok {
				perm[u] = u
				break
			}
			e := c.edges[eid]
			curV, curPort = e.Tgt, e.TgtPort
		}
	}
	return perm
}

// HasImplicitWireSwaps reports whether ImplicitQubitPermutation is non-identity.
func (c *Circuit) HasImplicitWireSwaps() bool {
	for u, v := range c.ImplicitQubitPermutation() {
		if !u.Equal(v) {
			return true
		}
	}
	return false
}

// gateKey is the granular identifier CountGates matches on: a
// PrimitiveGate's Tag alone does not distinguish H from CX from Measure
// (Measure/Reset now carry their own Tag, but every PrimitiveGate still
// shares TagPrimitive), so for a PrimitiveGate the key also carries its
// GateType. Parameters are deliberately excluded — "how many Rz gates"
// should count every Rz regardless of angle, the same way tket's OpType
// granularity (spec §9's dynamic_cast replacement) never encoded a
// gate's parameters either.
func gateKey(o op.Operation) (op.Tag, op.GateType) {
	if pg, ok := o.(op.PrimitiveGate); ok {
		return op.TagPrimitive, pg.Type
	}
	return o.Tag(), ""
}

// CountGates counts vertices whose top-level op is the same gate as
// gate (spec §4.3's count_gates(type, include_conditional=false)): same
// Tag, and for a PrimitiveGate the same GateType too, so a CX vertex is
// never confused with an H or a Measure vertex. When includeConditional
// is set, a Conditional vertex also counts if its wrapped inner op
// matches.
func (c *Circuit) CountGates(gate op.Operation, includeConditional bool) int {
	wantTag, wantType := gateKey(gate)
	matches := func(o op.Operation) bool {
		tag, typ := gateKey(o)
		return tag == wantTag && typ == wantType
	}
	n := 0
	for _, vs := range c.vertices {
		if isBoundaryTag(vs.op.Tag()) {
			continue
		}
		if matches(vs.op) {
			n++
			continue
		}
		if includeConditional {
			if cond, ok := vs.op.(op.Conditional); ok && matches(cond.Inner) {
				n++
			}
		}
	}
	return n
}

// FreeSymbols returns every free symbol referenced by any vertex's
// operation or by Phase (spec §3 invariant 7).
func (c *Circuit) FreeSymbols() map[expr.Symbol]struct{} {
	out := map[expr.Symbol]struct{}{}
	merge := func(s map[expr.Symbol]struct{}) {
		for k := range s {
			out[k] = struct{}{}
		}
	}
	merge(c.Phase.FreeSymbols())
	for _, vs := range c.vertices {
		merge(vs.op.FreeSymbols())
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
