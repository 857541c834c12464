// Package circuit implements the central DAG data structure (spec §4.3):
// a boundary of named endpoints plus a vertex/edge graph where each edge
// carries a wire type and port indices. Grounded on the teacher's
// qc/dag/dag.go (Kahn topological sort, per-qubit frontier tracking,
// atomic NodeID counter) generalized from single-typed qubit/clbit wires
// to the full multi-wire-type, opgroup-bearing, boundary-mapped model.
package circuit

import (
	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/unit"
)

// VertexID is stable across mutation (never reused), the same
// never-reused-counter idiom as the teacher's dag.NodeID.
type VertexID uint64

// EdgeID is stable across mutation.
type EdgeID uint64

// Edge is a directed, typed connection between two vertex ports (spec
// §3's Edge entity).
type Edge struct {
	ID      EdgeID
	Src     VertexID
	SrcPort int
	Tgt     VertexID
	TgtPort int
	Type    unit.WireType
}

type vertexState struct {
	op      op.Operation
	opGroup string
	ins     []EdgeID   // one slot per signature port; 0 = unconnected
	outs    [][]EdgeID // one slot per signature port; linear ports hold at most one non-Boolean edge, plus any number of Boolean fan-out taps
}

type registerInfo struct {
	kind unit.Kind
	size int
}

// Circuit is the DAG IR (spec §3's Circuit entity). The zero value is
// not usable; construct with New.
type Circuit struct {
	Name  string
	Phase expr.Expr

	boundary []unit.ID // insertion order (spec §3 invariant 5)
	inVert   map[unit.ID]VertexID
	outVert  map[unit.ID]VertexID

	vertices map[VertexID]*vertexState
	edges    map[EdgeID]*Edge
	nextV    VertexID
	nextE    EdgeID

	registers map[string]registerInfo
}

func naturalWireType(k unit.Kind) unit.WireType {
	switch k {
	case unit.Qubit:
		return unit.Quantum
	case unit.Bit:
		return unit.Classical
	case unit.WasmState:
		return unit.WASM
	default:
		return unit.Quantum
	}
}

func boundaryOps(k unit.Kind, u unit.ID) (in, out op.Operation) {
	switch k {
	case unit.Bit:
		return op.ClInput(u), op.ClOutput(u)
	case unit.WasmState:
		return op.WasmInput(u), op.WasmOutput(u)
	default:
		return op.Input(u), op.Output(u)
	}
}

// New creates a Circuit with default registers "q" (nQ qubits) and "c"
// (nC classical bits), per spec §4.3's new(n_q, n_c).
func New(nQ, nC int) *Circuit {
	c := &Circuit{
		Phase:     expr.Real(0),
		inVert:    map[unit.ID]VertexID{},
		outVert:   map[unit.ID]VertexID{},
		vertices:  map[VertexID]*vertexState{},
		edges:     map[EdgeID]*Edge{},
		nextV:     1,
		nextE:     1,
		registers: map[string]registerInfo{},
	}
	if nQ > 0 {
		_ = c.AddQRegister("q", nQ)
	}
	if nC > 0 {
		_ = c.AddCRegister("c", nC)
	}
	return c
}

// AddQRegister appends size fresh qubit endpoints under register name.
func (c *Circuit) AddQRegister(name string, size int) error {
	return c.addRegister(unit.Qubit, name, size)
}

// AddCRegister appends size fresh classical-bit endpoints under register name.
func (c *Circuit) AddCRegister(name string, size int) error {
	return c.addRegister(unit.Bit, name, size)
}

func (c *Circuit) addRegister(kind unit.Kind, name string, size int) error {
	if _, exists := c.registers[name]; exists {
		return ErrDuplicateRegister
	}
	c.registers[name] = registerInfo{kind: kind, size: size}
	for i := 0; i < size; i++ {
		u := unit.New(kind, name, uint(i))
		c.addUnit(u)
	}
	return nil
}

// AddQubit adds a single qubit endpoint.
func (c *Circuit) AddQubit(u unit.ID) error { return c.addSingleUnit(u) }

// AddBit adds a single classical-bit endpoint.
func (c *Circuit) AddBit(u unit.ID) error { return c.addSingleUnit(u) }

func (c *Circuit) addSingleUnit(u unit.ID) error {
	if _, exists := c.outVert[u]; exists {
		return ErrUnitAlreadyExists
	}
	c.addUnit(u)
	return nil
}

func (c *Circuit) addUnit(u unit.ID) {
	inOp, outOp := boundaryOps(u.Kind, u)
	inV := c.AddVertex(inOp, "")
	outV := c.AddVertex(outOp, "")
	wt := naturalWireType(u.Kind)
	_, _ = c.addEdgeRaw(inV, 0, outV, 0, wt)
	c.boundary = append(c.boundary, u)
	c.inVert[u] = inV
	c.outVert[u] = outV
}

// AddVertex returns a new unanchored vertex; no edges added (spec
// §4.3's add_vertex).
func (c *Circuit) AddVertex(o op.Operation, opgroup string) VertexID {
	id := c.nextV
	c.nextV++
	sig := o.Signature()
	c.vertices[id] = &vertexState{
		op:      o,
		opGroup: opgroup,
		ins:     make([]EdgeID, len(sig)),
		outs:    make([][]EdgeID, len(sig)),
	}
	return id
}

func portTypeCompatible(portType, edgeType unit.WireType) bool {
	if portType == edgeType {
		return true
	}
	// A Classical-writing port may additionally source any number of
	// Boolean fan-out snapshot edges (spec §3: Boolean "is produced at
	// the output port of a classical-writing vertex as a snapshot").
	return portType == unit.Classical && edgeType == unit.Boolean
}

// AddEdge fails if ports are already saturated for linear types or
// types don't match the operation signatures (spec §4.3's add_edge).
func (c *Circuit) AddEdge(srcV VertexID, srcPort int, tgtV VertexID, tgtPort int, typ unit.WireType) error {
	_, err := c.addEdgeRaw(srcV, srcPort, tgtV, tgtPort, typ)
	return err
}

func (c *Circuit) addEdgeRaw(srcV VertexID, srcPort int, tgtV VertexID, tgtPort int, typ unit.WireType) (EdgeID, error) {
	sv, ok := c.vertices[srcV]
	if !ok {
		return 0, ErrUnknownVertex
	}
	tv, ok := c.vertices[tgtV]
	if !ok {
		return 0, ErrUnknownVertex
	}
	srcSig, tgtSig := sv.op.Signature(), tv.op.Signature()
	if srcPort < 0 || srcPort >= len(srcSig) || tgtPort < 0 || tgtPort >= len(tgtSig) {
		return 0, ErrInvalidPort
	}
	if !portTypeCompatible(srcSig[srcPort], typ) || tgtSig[tgtPort] != typ {
		return 0, ErrInvalidEdgeType
	}
	if tv.ins[tgtPort] != 0 {
		return 0, ErrPortSaturated
	}
	if typ != unit.Boolean {
		for _, e := range sv.outs[srcPort] {
			if c.edges[e].Type != unit.Boolean {
				return 0, ErrPortSaturated
			}
		}
	}
	id := c.nextE
	c.nextE++
	edge := &Edge{ID: id, Src: srcV, SrcPort: srcPort, Tgt: tgtV, TgtPort: tgtPort, Type: typ}
	c.edges[id] = edge
	sv.outs[srcPort] = append(sv.outs[srcPort], id)
	tv.ins[tgtPort] = id
	return id, nil
}

func primaryOut(ids []EdgeID, edges map[EdgeID]*Edge) EdgeID {
	for _, id := range ids {
		if edges[id].Type != unit.Boolean {
			return id
		}
	}
	return 0
}

func (c *Circuit) removeEdgeRecord(id EdgeID) {
	e, ok := c.edges[id]
	if !ok {
		return
	}
	delete(c.edges, id)
	if sv, ok := c.vertices[e.Src]; ok {
		outs := sv.outs[e.SrcPort]
		for i, oid := range outs {
			if oid == id {
				sv.outs[e.SrcPort] = append(outs[:i], outs[i+1:]...)
				break
			}
		}
	}
	if tv, ok := c.vertices[e.Tgt]; ok {
		if tv.ins[e.TgtPort] == id {
			tv.ins[e.TgtPort] = 0
		}
	}
}

// Vertex returns the operation and opgroup stored at v, and whether v exists.
func (c *Circuit) Vertex(v VertexID) (o op.Operation, opgroup string, ok bool) {
	vs, ok := c.vertices[v]
	if !ok {
		return nil, "", false
	}
	return vs.op, vs.opGroup, true
}

// Edges returns every edge currently in the circuit, in no particular order.
func (c *Circuit) Edges() []Edge {
	out := make([]Edge, 0, len(c.edges))
	for _, e := range c.edges {
		out = append(out, *e)
	}
	return out
}

// VertexIDs returns every vertex ID currently in the circuit.
func (c *Circuit) VertexIDs() []VertexID {
	out := make([]VertexID, 0, len(c.vertices))
	for v := range c.vertices {
		out = append(out, v)
	}
	return out
}

// InVertex/OutVertex expose a unit's boundary termini (used by rewrite
// and pauligraph to locate a unit's current frontier).
func (c *Circuit) InVertex(u unit.ID) (VertexID, bool)  { v, ok := c.inVert[u]; return v, ok }
func (c *Circuit) OutVertex(u unit.ID) (VertexID, bool) { v, ok := c.outVert[u]; return v, ok }

// Boundary returns every unit in insertion order (spec §3 invariant 5).
func (c *Circuit) Boundary() []unit.ID { return append([]unit.ID(nil), c.boundary...) }

// IsBoundary reports whether v is one of the six boundary sentinel kinds.
func (c *Circuit) IsBoundary(v VertexID) bool {
	vs, ok := c.vertices[v]
	return ok && isBoundaryTag(vs.op.Tag())
}

// Signature returns v's operation's port signature.
func (c *Circuit) Signature(v VertexID) []unit.WireType {
	vs, ok := c.vertices[v]
	if !ok {
		return nil
	}
	return vs.op.Signature()
}

// InEdgeAtPort returns the edge feeding v's in-port, or 0 if unconnected.
func (c *Circuit) InEdgeAtPort(v VertexID, port int) EdgeID {
	vs, ok := c.vertices[v]
	if !ok || port < 0 || port >= len(vs.ins) {
		return 0
	}
	return vs.ins[port]
}

// OutEdgesAtPort returns every edge sourced from v's out-port (spec §3's
// Boolean-tap fan-out: at most one non-Boolean edge plus any number of
// Boolean snapshots).
func (c *Circuit) OutEdgesAtPort(v VertexID, port int) []EdgeID {
	vs, ok := c.vertices[v]
	if !ok || port < 0 || port >= len(vs.outs) {
		return nil
	}
	return append([]EdgeID(nil), vs.outs[port]...)
}

// EdgeByID looks up a single edge.
func (c *Circuit) EdgeByID(id EdgeID) (Edge, bool) {
	e, ok := c.edges[id]
	if !ok {
		return Edge{}, false
	}
	return *e, true
}

// LinearOutAt picks the single non-Boolean continuation edge out of a
// port, if any (the rest are Boolean taps).
func (c *Circuit) LinearOutAt(v VertexID, port int) (EdgeID, bool) {
	return firstNonBoolean(c.OutEdgesAtPort(v, port), c.edges)
}

// UnitOfPort traces a port's linear in-edge chain backward until it
// reaches a boundary input vertex, recovering the unit that port's wire
// belongs to. It works for both a gate's own linear args and for a
// Boolean-typed source port, since a Boolean tap's source is itself the
// bit-writing vertex/port (spec §4.5's "recovered from the previous
// b_frontier").
func (c *Circuit) UnitOfPort(v VertexID, port int) (unit.ID, bool) {
	cur, curPort := v, port
	for {
		vs, ok := c.vertices[cur]
		if !ok {
			return unit.ID{}, false
		}
		if isBoundaryTag(vs.op.Tag()) {
			for u, iv := range c.inVert {
				if iv == cur {
					return u, true
				}
			}
			return unit.ID{}, false
		}
		eid := vs.ins[curPort]
		if eid == 0 {
			return unit.ID{}, false
		}
		e := c.edges[eid]
		cur, curPort = e.Src, e.SrcPort
	}
}

func isBoundaryTag(t op.Tag) bool {
	switch t {
	case op.TagInput, op.TagOutput, op.TagClInput, op.TagClOutput, op.TagWasmInput, op.TagWasmOutput:
		return true
	default:
		return false
	}
}
