package circuit

import (
	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/unit"
)

func copyRegisters(in map[string]registerInfo) map[string]registerInfo {
	out := make(map[string]registerInfo, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// currentWriterEdge returns the edge currently feeding u's output
// boundary vertex: its source is whichever vertex/port last wrote (or,
// for a fresh unit, the input boundary) u's linear value.
func (c *Circuit) currentWriterEdge(u unit.ID) (EdgeID, error) {
	ov, ok := c.outVert[u]
	if !ok {
		return 0, ErrUnknownUnit
	}
	eid := c.vertices[ov].ins[0]
	if eid == 0 {
		return 0, ErrUnknownVertex
	}
	return eid, nil
}

func wantKindFor(t unit.WireType) (unit.Kind, bool) {
	switch t {
	case unit.Quantum:
		return unit.Qubit, true
	case unit.Classical, unit.Boolean:
		return unit.Bit, true
	case unit.WASM:
		return unit.WasmState, true
	default:
		return 0, false
	}
}

func (c *Circuit) validateArgs(sig []unit.WireType, args []unit.ID) error {
	if len(sig) != len(args) {
		return ErrInvalidArguments
	}
	for i, t := range sig {
		wantKind, ok := wantKindFor(t)
		if !ok {
			return ErrInvalidArguments
		}
		if args[i].Kind != wantKind {
			return ErrInvalidArguments
		}
		if _, ok := c.outVert[args[i]]; !ok {
			return ErrUnknownUnit
		}
	}
	return nil
}

// AddOp appends o, wired to args in signature order (spec §4.3's
// add_gate family). A Quantum/Classical/WASM port is spliced into the
// named unit's linear chain, immediately upstream of its output
// boundary vertex; a Boolean port is instead tapped directly off
// whatever vertex/port is currently writing that bit, without
// disturbing the bit's own linear chain (spec §3's Boolean "snapshot"
// read).
func (c *Circuit) AddOp(o op.Operation, args []unit.ID, opgroup string) (VertexID, error) {
	sig := o.Signature()
	if err := c.validateArgs(sig, args); err != nil {
		return 0, err
	}
	v := c.AddVertex(o, opgroup)
	for i, t := range sig {
		u := args[i]
		eid, err := c.currentWriterEdge(u)
		if err != nil {
			return 0, err
		}
		e := *c.edges[eid]
		if t == unit.Boolean {
			if _, err := c.addEdgeRaw(e.Src, e.SrcPort, v, i, unit.Boolean); err != nil {
				return 0, err
			}
			continue
		}
		c.removeEdgeRecord(eid)
		if _, err := c.addEdgeRaw(e.Src, e.SrcPort, v, i, e.Type); err != nil {
			return 0, err
		}
		if _, err := c.addEdgeRaw(v, i, c.outVert[u], 0, e.Type); err != nil {
			return 0, err
		}
	}
	return v, nil
}

// AddMeasure appends a Measure(q -> c) vertex (spec §4.3's add_measure).
func (c *Circuit) AddMeasure(q, cbit unit.ID) (VertexID, error) {
	return c.AddOp(op.Measure{}, []unit.ID{q, cbit}, "")
}

// AddBarrier appends a Barrier over args, each argument's own wire type
// determining the corresponding Barrier signature port (spec §4.3's
// add_barrier).
func (c *Circuit) AddBarrier(args []unit.ID, data string) (VertexID, error) {
	sig := make([]unit.WireType, len(args))
	for i, u := range args {
		switch u.Kind {
		case unit.Qubit:
			sig[i] = unit.Quantum
		case unit.Bit:
			sig[i] = unit.Classical
		case unit.WasmState:
			sig[i] = unit.WASM
		}
	}
	return c.AddOp(op.NewBarrier(sig, data), args, "")
}

// AddConditionalGate wraps inner in a Conditional over cargs (in
// little-endian bit order) and appends it wired to cargs followed by
// qargs (spec §4.3's add_conditional_gate).
func (c *Circuit) AddConditionalGate(inner op.Operation, qargs, cargs []unit.ID, value uint64) (VertexID, error) {
	cond := op.NewConditional(inner, len(cargs), value)
	args := make([]unit.ID, 0, len(cargs)+len(qargs))
	args = append(args, cargs...)
	args = append(args, qargs...)
	return c.AddOp(cond, args, "")
}

// RemoveVertex deletes v. If rewire is true, each port with both an
// in-edge and a linear out-edge is closed by reconnecting the in-edge's
// source directly to the out-edge's target; any Boolean taps sourced
// from that same port are redirected to read from the new upstream
// writer instead of being dropped (spec §4.3's remove_vertex).
// RemoveVertex refuses to remove a boundary sentinel.
func (c *Circuit) RemoveVertex(v VertexID, rewire bool) error {
	vs, ok := c.vertices[v]
	if !ok {
		return ErrUnknownVertex
	}
	if isBoundaryTag(vs.op.Tag()) {
		return ErrInvalidArguments
	}
	sig := vs.op.Signature()
	if rewire {
		for port := range sig {
			inID := vs.ins[port]
			if inID == 0 {
				continue
			}
			inEdge := *c.edges[inID]
			var linearOut *Edge
			var boolOuts []Edge
			for _, oid := range vs.outs[port] {
				oe := *c.edges[oid]
				if oe.Type == unit.Boolean {
					boolOuts = append(boolOuts, oe)
				} else if linearOut == nil {
					linearOut = &oe
				}
			}
			c.removeEdgeRecord(inID)
			if linearOut != nil {
				c.removeEdgeRecord(linearOut.ID)
				if _, err := c.addEdgeRaw(inEdge.Src, inEdge.SrcPort, linearOut.Tgt, linearOut.TgtPort, inEdge.Type); err != nil {
					return err
				}
			}
			for _, be := range boolOuts {
				c.removeEdgeRecord(be.ID)
				if _, err := c.addEdgeRaw(inEdge.Src, inEdge.SrcPort, be.Tgt, be.TgtPort, unit.Boolean); err != nil {
					return err
				}
			}
		}
	}
	for port := range sig {
		if id := vs.ins[port]; id != 0 {
			c.removeEdgeRecord(id)
		}
		for _, id := range append([]EdgeID(nil), vs.outs[port]...) {
			c.removeEdgeRecord(id)
		}
	}
	delete(c.vertices, v)
	return nil
}

// Rewire replaces v's current in-edges with inEdges (spec §4.3's
// rewire), preserving v's out-edges. len(inEdges) and types must match
// v's signature.
func (c *Circuit) Rewire(v VertexID, inEdges []EdgeID, types []unit.WireType) error {
	vs, ok := c.vertices[v]
	if !ok {
		return ErrUnknownVertex
	}
	sig := vs.op.Signature()
	if len(inEdges) != len(sig) || len(types) != len(sig) {
		return ErrInvalidArguments
	}
	for i, t := range types {
		if t != sig[i] {
			return ErrInvalidEdgeType
		}
	}
	old := append([]EdgeID(nil), vs.ins...)
	for _, eid := range inEdges {
		if _, ok := c.edges[eid]; !ok {
			return ErrUnknownVertex
		}
	}
	for i, eid := range inEdges {
		if old[i] != 0 {
			c.removeEdgeRecord(old[i])
		}
		e := c.edges[eid]
		vs.ins[i] = eid
		e.Tgt, e.TgtPort = v, i
	}
	return nil
}

// ReplaceSWAPs removes every SWAP vertex, cross-connecting its
// neighbours (in0->out1, in1->out0) rather than same-port rewiring, so
// the elimination introduces an implicit permutation at the output
// boundary instead of a no-op identity (spec §4.3's
// replace_SWAPs(allow_implicit=true)). If allowImplicit is false, SWAPs
// whose removal would change ImplicitQubitPermutation are left in
// place. Returns the number of SWAPs removed.
func (c *Circuit) ReplaceSWAPs(allowImplicit bool) (int, error) {
	removed := 0
	for _, v := range c.VertexIDs() {
		vs, ok := c.vertices[v]
		if !ok {
			continue
		}
		pg, ok := vs.op.(op.PrimitiveGate)
		if !ok || pg.Type != op.GateSWAP {
			continue
		}
		if !allowImplicit {
			continue
		}
		in0, in1 := vs.ins[0], vs.ins[1]
		out0ID, ok0 := firstNonBoolean(vs.outs[0], c.edges)
		out1ID, ok1 := firstNonBoolean(vs.outs[1], c.edges)
		if in0 == 0 || in1 == 0 || !ok0 || !ok1 {
			continue
		}
		e0, e1 := *c.edges[in0], *c.edges[in1]
		o0, o1 := *c.edges[out0ID], *c.edges[out1ID]
		c.removeEdgeRecord(in0)
		c.removeEdgeRecord(in1)
		c.removeEdgeRecord(out0ID)
		c.removeEdgeRecord(out1ID)
		if _, err := c.addEdgeRaw(e0.Src, e0.SrcPort, o1.Tgt, o1.TgtPort, e0.Type); err != nil {
			return removed, err
		}
		if _, err := c.addEdgeRaw(e1.Src, e1.SrcPort, o0.Tgt, o0.TgtPort, e1.Type); err != nil {
			return removed, err
		}
		delete(c.vertices, v)
		removed++
	}
	return removed, nil
}

// ReplaceAllImplicitWireSwaps inserts an explicit SWAP chain at the
// output boundary so that ImplicitQubitPermutation becomes the identity
// (the inverse of ReplaceSWAPs(allow_implicit=true), spec §4.3).
func (c *Circuit) ReplaceAllImplicitWireSwaps() error {
	for _, src := range c.AllQubits() {
		dst := c.ImplicitQubitPermutation()[src]
		if src.Equal(dst) {
			continue
		}
		// src's wire ends at dst's output boundary: cross-connect the two
		// output boundaries (the same shape as ReplaceSWAPs's neighbour
		// reconnection) to bring it home, then splice an explicit SWAP in
		// front of them so each state still reaches the output it reached.
		srcOutV, dstOutV := c.outVert[src], c.outVert[dst]
		srcIn, dstIn := c.vertices[srcOutV].ins[0], c.vertices[dstOutV].ins[0]
		se, de := *c.edges[srcIn], *c.edges[dstIn]
		c.removeEdgeRecord(srcIn)
		c.removeEdgeRecord(dstIn)
		if _, err := c.addEdgeRaw(se.Src, se.SrcPort, dstOutV, 0, se.Type); err != nil {
			return err
		}
		if _, err := c.addEdgeRaw(de.Src, de.SrcPort, srcOutV, 0, de.Type); err != nil {
			return err
		}
		if _, err := c.AddOp(op.SWAP(), []unit.ID{src, dst}, ""); err != nil {
			return err
		}
	}
	return nil
}

// ApplyImplicitPermutation moves the wire that starts at each qubit src
// in perm so that it ends at the output boundary of perm[src], using the
// same output cross-connect ReplaceAllImplicitWireSwaps performs. Each
// wire is moved from wherever it currently ends, so both entries of a
// two-cycle together make a single swap. Package serialize's JSON decoder uses this to restore a
// circuit's implicit_permutation field, which is recorded separately
// from the command stream (spec §6) because an implicit permutation by
// definition has no vertex of its own to replay.
func (c *Circuit) ApplyImplicitPermutation(perm map[unit.ID]unit.ID) error {
	for src, dst := range perm {
		_, ok1 := c.outVert[src]
		_, ok2 := c.outVert[dst]
		if !ok1 || !ok2 {
			return ErrUnknownUnit
		}
	}
	for _, src := range c.AllQubits() {
		dst, ok := perm[src]
		if !ok {
			continue
		}
		cur := c.ImplicitQubitPermutation()[src]
		if cur.Equal(dst) {
			continue
		}
		curOutV, dstOutV := c.outVert[cur], c.outVert[dst]
		curIn, dstIn := c.vertices[curOutV].ins[0], c.vertices[dstOutV].ins[0]
		se, de := *c.edges[curIn], *c.edges[dstIn]
		c.removeEdgeRecord(curIn)
		c.removeEdgeRecord(dstIn)
		if _, err := c.addEdgeRaw(se.Src, se.SrcPort, dstOutV, 0, se.Type); err != nil {
			return err
		}
		if _, err := c.addEdgeRaw(de.Src, de.SrcPort, curOutV, 0, de.Type); err != nil {
			return err
		}
	}
	return nil
}

// SymbolSubstitution rewrites every vertex's operation and Phase in
// place (spec §4.3).
func (c *Circuit) SymbolSubstitution(m map[expr.Symbol]expr.Expr) {
	c.Phase = c.Phase.Substitute(m)
	for _, vs := range c.vertices {
		vs.op = vs.op.SymbolSubstitution(m)
	}
}

type writerPoint struct {
	v    VertexID
	port int
}

// AppendWithMap splices other's internal vertices onto c, gluing
// other's input boundary to c's current output frontier and other's
// output boundary to c's new output frontier, using m to translate
// other's unit IDs to c's (spec §4.3's append_with_map). m must cover
// exactly other's boundary units.
func (c *Circuit) AppendWithMap(other *Circuit, m map[unit.ID]unit.ID) error {
	for _, u := range other.boundary {
		if _, ok := m[u]; !ok {
			return ErrUnitMismatch
		}
	}
	if len(m) != len(other.boundary) {
		return ErrUnitMismatch
	}

	// Detach every mapped unit's current writer in c up front, so that
	// edge re-attachment below is independent of other.edges's (map)
	// iteration order.
	prevWriter := make(map[unit.ID]writerPoint, len(other.boundary))
	for _, u := range other.boundary {
		cu := m[u]
		eid, err := c.currentWriterEdge(cu)
		if err != nil {
			return err
		}
		e := *c.edges[eid]
		prevWriter[cu] = writerPoint{v: e.Src, port: e.SrcPort}
		c.removeEdgeRecord(eid)
	}

	vmap := make(map[VertexID]VertexID, len(other.vertices))
	for ov, ovs := range other.vertices {
		if isBoundaryTag(ovs.op.Tag()) {
			continue
		}
		vmap[ov] = c.AddVertex(ovs.op, ovs.opGroup)
	}

	for _, e := range other.edges {
		srcIsBoundaryIn := other.unitOfInVertex(e.Src)
		tgtIsBoundaryOut := other.unitOfOutVertex(e.Tgt)
		switch {
		case srcIsBoundaryIn != nil && tgtIsBoundaryOut != nil:
			cu := m[*srcIsBoundaryIn]
			wp := prevWriter[cu]
			if _, err := c.addEdgeRaw(wp.v, wp.port, c.outVert[cu], 0, e.Type); err != nil {
				return err
			}
		case srcIsBoundaryIn != nil:
			cu := m[*srcIsBoundaryIn]
			wp := prevWriter[cu]
			if _, err := c.addEdgeRaw(wp.v, wp.port, vmap[e.Tgt], e.TgtPort, e.Type); err != nil {
				return err
			}
		case tgtIsBoundaryOut != nil:
			cu := m[*tgtIsBoundaryOut]
			if _, err := c.addEdgeRaw(vmap[e.Src], e.SrcPort, c.outVert[cu], 0, e.Type); err != nil {
				return err
			}
		default:
			if _, err := c.addEdgeRaw(vmap[e.Src], e.SrcPort, vmap[e.Tgt], e.TgtPort, e.Type); err != nil {
				return err
			}
		}
	}
	return nil
}

// Append splices other onto c using identity unit mapping, requiring
// other's boundary units to already exist in c (spec §4.3's append).
func (c *Circuit) Append(other *Circuit) error {
	m := make(map[unit.ID]unit.ID, len(other.boundary))
	for _, u := range other.boundary {
		m[u] = u
	}
	return c.AppendWithMap(other, m)
}

// AppendQubits splices other onto c, mapping other's qubits
// positionally onto qs and leaving other's classical bits mapped by
// identity (spec §4.3's append_qubits, used to graft a purely unitary
// subcircuit onto a subset of c's qubits).
func (c *Circuit) AppendQubits(other *Circuit, qs []unit.ID) error {
	otherQubits := other.AllQubits()
	if len(otherQubits) != len(qs) {
		return ErrUnitMismatch
	}
	m := make(map[unit.ID]unit.ID, len(other.boundary))
	for i, oq := range otherQubits {
		m[oq] = qs[i]
	}
	for _, b := range other.AllBits() {
		m[b] = b
	}
	return c.AppendWithMap(other, m)
}

func (c *Circuit) unitOfInVertex(v VertexID) *unit.ID {
	for u, iv := range c.inVert {
		if iv == v {
			uu := u
			return &uu
		}
	}
	return nil
}

func (c *Circuit) unitOfOutVertex(v VertexID) *unit.ID {
	for u, ov := range c.outVert {
		if ov == v {
			uu := u
			return &uu
		}
	}
	return nil
}

// ConditionalCircuit wraps every non-boundary vertex's operation in a
// Conditional over bits (spec §4.3's conditional_circuit). It refuses
// circuits with implicit wire swaps or any vertex writing to one of
// bits, since the wrapped semantics would then depend on evaluation
// order (spec §4.3's documented restriction).
//
// Conditional.Signature prepends len(bits) Boolean ports ahead of the
// wrapped operation's own ports, so wrapping a vertex in place also
// means: wiring a fresh Boolean tap from each bit's current writer into
// the new leading ports, shifting every pre-existing in/out edge's
// port index by len(bits), and resizing ins/outs to the new signature's
// length. Skipping any of that would leave vs.ins/vs.outs shorter than
// vs.op.Signature(), which panics the first time any later primitive
// indexes them by port.
func (c *Circuit) ConditionalCircuit(bits []unit.ID, value uint64) error {
	if c.HasImplicitWireSwaps() {
		return ErrInvalidCondition
	}
	condSrc := make([]Edge, len(bits))
	for i, b := range bits {
		eid, err := c.currentWriterEdge(b)
		if err != nil {
			return err
		}
		e := *c.edges[eid]
		if e.Src != c.inVert[b] {
			return ErrInvalidCondition
		}
		condSrc[i] = e
	}
	width := len(bits)
	for v, vs := range c.vertices {
		if isBoundaryTag(vs.op.Tag()) {
			continue
		}
		oldLen := len(vs.op.Signature())
		newIns := make([]EdgeID, width+oldLen)
		newOuts := make([][]EdgeID, width+oldLen)
		for i := 0; i < oldLen; i++ {
			newIns[width+i] = vs.ins[i]
			newOuts[width+i] = vs.outs[i]
			if eid := vs.ins[i]; eid != 0 {
				c.edges[eid].TgtPort = width + i
			}
			for _, eid := range vs.outs[i] {
				c.edges[eid].SrcPort = width + i
			}
		}
		vs.op = op.NewConditional(vs.op, width, value)
		vs.ins = newIns
		vs.outs = newOuts
		for i := range condSrc {
			if _, err := c.addEdgeRaw(condSrc[i].Src, condSrc[i].SrcPort, v, i, unit.Boolean); err != nil {
				return err
			}
		}
	}
	return nil
}

// Dagger returns the reverse circuit with every operation daggered,
// the DAG analogue of op.Operation.Dagger (spec §4.3): every internal
// vertex keeps its own port layout under Dagger(), and every edge
// reverses direction; a unit's input boundary vertex becomes its
// output boundary vertex and vice versa, which already has the right
// shape for a reversed single-port sentinel. Returns op.CircuitValue
// (not *Circuit) to satisfy that interface; callers needing the
// concrete type can type-assert.
func (c *Circuit) Dagger() op.CircuitValue { return c.daggerCircuit() }

func (c *Circuit) daggerCircuit() *Circuit {
	out := &Circuit{
		Name:      c.Name + ".dagger",
		Phase:     expr.Neg(c.Phase),
		inVert:    map[unit.ID]VertexID{},
		outVert:   map[unit.ID]VertexID{},
		vertices:  map[VertexID]*vertexState{},
		edges:     map[EdgeID]*Edge{},
		nextV:     1,
		nextE:     1,
		registers: copyRegisters(c.registers),
		boundary:  append([]unit.ID(nil), c.boundary...),
	}
	oldToNew := make(map[VertexID]VertexID, len(c.vertices))
	for _, u := range c.boundary {
		inOp, outOp := boundaryOps(u.Kind, u)
		iv := out.AddVertex(inOp, "")
		ov := out.AddVertex(outOp, "")
		out.inVert[u] = iv
		out.outVert[u] = ov
		oldToNew[c.inVert[u]] = ov
		oldToNew[c.outVert[u]] = iv
	}
	for v, vs := range c.vertices {
		if isBoundaryTag(vs.op.Tag()) {
			continue
		}
		oldToNew[v] = out.AddVertex(vs.op.Dagger(), vs.opGroup)
	}
	for _, e := range c.edges {
		newSrc, newSrcPort := oldToNew[e.Tgt], e.TgtPort
		newTgt, newTgtPort := oldToNew[e.Src], e.SrcPort
		_, _ = out.addEdgeRaw(newSrc, newSrcPort, newTgt, newTgtPort, e.Type)
	}
	return out
}

// Transpose returns the circuit with every operation's Transpose
// applied in place, leaving the DAG shape unchanged (spec §4.3).
// Returns op.CircuitValue to satisfy that interface; callers needing
// the concrete type can type-assert.
func (c *Circuit) Transpose() op.CircuitValue { return c.transposeCircuit() }

func (c *Circuit) transposeCircuit() *Circuit {
	out := &Circuit{
		Name:      c.Name + ".transpose",
		Phase:     c.Phase,
		inVert:    map[unit.ID]VertexID{},
		outVert:   map[unit.ID]VertexID{},
		vertices:  map[VertexID]*vertexState{},
		edges:     map[EdgeID]*Edge{},
		nextV:     1,
		nextE:     1,
		registers: copyRegisters(c.registers),
		boundary:  append([]unit.ID(nil), c.boundary...),
	}
	oldToNew := make(map[VertexID]VertexID, len(c.vertices))
	for _, u := range c.boundary {
		inOp, outOp := boundaryOps(u.Kind, u)
		iv := out.AddVertex(inOp, "")
		ov := out.AddVertex(outOp, "")
		out.inVert[u] = iv
		out.outVert[u] = ov
		oldToNew[c.inVert[u]] = iv
		oldToNew[c.outVert[u]] = ov
	}
	for v, vs := range c.vertices {
		if isBoundaryTag(vs.op.Tag()) {
			continue
		}
		oldToNew[v] = out.AddVertex(vs.op.Transpose(), vs.opGroup)
	}
	for _, e := range c.edges {
		_, _ = out.addEdgeRaw(oldToNew[e.Src], e.SrcPort, oldToNew[e.Tgt], e.TgtPort, e.Type)
	}
	return out
}
