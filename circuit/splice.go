package circuit

import "github.com/kegliz/qcompile/unit"

// Clone returns a deep copy of c with vertex/edge identities preserved
// exactly (unlike Dagger/Transpose, which build a new circuit with a
// remapped vertex space). Grounded on spec §4.3's "higher-level passes
// wrap risky edits in try-clone patterns": a pass that wants to attempt
// a multi-step mutation and back out on failure clones first and
// discards the clone (or the original) rather than relying on rollback,
// since spec §4.3/§7 guarantee atomicity only per primitive, not per
// pass.
func (c *Circuit) Clone() *Circuit {
	cp := &Circuit{
		Name:      c.Name,
		Phase:     c.Phase,
		boundary:  append([]unit.ID(nil), c.boundary...),
		inVert:    make(map[unit.ID]VertexID, len(c.inVert)),
		outVert:   make(map[unit.ID]VertexID, len(c.outVert)),
		vertices:  make(map[VertexID]*vertexState, len(c.vertices)),
		edges:     make(map[EdgeID]*Edge, len(c.edges)),
		nextV:     c.nextV,
		nextE:     c.nextE,
		registers: copyRegisters(c.registers),
	}
	for u, v := range c.inVert {
		cp.inVert[u] = v
	}
	for u, v := range c.outVert {
		cp.outVert[u] = v
	}
	for id, vs := range c.vertices {
		cp.vertices[id] = &vertexState{
			op:      vs.op,
			opGroup: vs.opGroup,
			ins:     append([]EdgeID(nil), vs.ins...),
			outs:    cloneOuts(vs.outs),
		}
	}
	for id, e := range c.edges {
		cpe := *e
		cp.edges[id] = &cpe
	}
	return cp
}

func cloneOuts(in [][]EdgeID) [][]EdgeID {
	out := make([][]EdgeID, len(in))
	for i, s := range in {
		out[i] = append([]EdgeID(nil), s...)
	}
	return out
}

// WithRelabeledOpgroup returns a deep copy of c with every vertex whose
// opgroup equals old relabeled to new (rewrite package's opgroup-rename
// step for substitute_named, spec §4.8).
func (c *Circuit) WithRelabeledOpgroup(old, new string) *Circuit {
	cp := c.Clone()
	for _, vs := range cp.vertices {
		if vs.opGroup == old {
			vs.opGroup = new
		}
	}
	return cp
}

// Opgroups returns every distinct non-empty opgroup label currently used
// by a vertex in c.
func (c *Circuit) Opgroups() map[string]bool {
	out := map[string]bool{}
	for _, vs := range c.vertices {
		if vs.opGroup != "" {
			out[vs.opGroup] = true
		}
	}
	return out
}

// PortRef names a single vertex port.
type PortRef struct {
	V    VertexID
	Port int
}

// SpliceEnds is, per unit of a circuit inserted via InsertSubgraph, the
// attachment point a caller should wire external edges onto: Entry is
// the port that should receive the unit's incoming edge, Exit is the
// port an outgoing edge should read from. PassThrough is true when the
// inserted circuit has no internal vertex touching that unit at all (a
// bare wire from its input boundary straight to its output boundary);
// callers must then connect the unit's external in/out edges directly
// to each other instead of through a vertex.
type SpliceEnds struct {
	Entry       PortRef
	Exit        PortRef
	PassThrough bool
}

// InsertSubgraph copies other's internal (non-boundary) vertices and
// edges into c as a detached subgraph — no edge connects it to any of
// c's existing vertices — and reports, per unit of other's boundary,
// where a caller should attach external wiring to splice the copy in
// (spec §4.8's substitute step 3, "insert a copy of replacement.dag").
// A Boolean-typed edge inside other whose source is itself a boundary
// Input/ClInput sentinel (reading a unit's value at the very start of
// the replacement, before any vertex writes it) is not supported: such
// an edge is dropped from the copy, a deliberate scope simplification
// recorded in DESIGN.md since no pass built in this repository emits one.
func (c *Circuit) InsertSubgraph(other *Circuit) map[unit.ID]SpliceEnds {
	oldToNew := make(map[VertexID]VertexID, len(other.vertices))
	for v, ovs := range other.vertices {
		if isBoundaryTag(ovs.op.Tag()) {
			continue
		}
		oldToNew[v] = c.AddVertex(ovs.op, ovs.opGroup)
	}
	for _, e := range other.edges {
		srcBoundary := isBoundaryTag(other.vertices[e.Src].op.Tag())
		tgtBoundary := isBoundaryTag(other.vertices[e.Tgt].op.Tag())
		if srcBoundary || tgtBoundary {
			continue
		}
		_, _ = c.addEdgeRaw(oldToNew[e.Src], e.SrcPort, oldToNew[e.Tgt], e.TgtPort, e.Type)
	}

	result := make(map[unit.ID]SpliceEnds, len(other.boundary))
	for _, u := range other.boundary {
		inV := other.inVert[u]
		outV := other.outVert[u]
		firstEdgeID, ok := other.LinearOutAt(inV, 0)
		if !ok {
			result[u] = SpliceEnds{PassThrough: true}
			continue
		}
		firstEdge, _ := other.EdgeByID(firstEdgeID)
		if isBoundaryTag(other.vertices[firstEdge.Tgt].op.Tag()) {
			result[u] = SpliceEnds{PassThrough: true}
			continue
		}
		lastEdgeID := other.vertices[outV].ins[0]
		lastEdge, _ := other.EdgeByID(lastEdgeID)
		result[u] = SpliceEnds{
			Entry: PortRef{V: oldToNew[firstEdge.Tgt], Port: firstEdge.TgtPort},
			Exit:  PortRef{V: oldToNew[lastEdge.Src], Port: lastEdge.SrcPort},
		}
	}
	return result
}
