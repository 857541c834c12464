package rewrite

import (
	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/unit"
)

type boundaryPoint struct {
	v    circuit.VertexID
	port int
}

func externalSrc(c *circuit.Circuit, eid circuit.EdgeID) boundaryPoint {
	e, _ := c.EdgeByID(eid)
	return boundaryPoint{v: e.Src, port: e.SrcPort}
}

func externalTgt(c *circuit.Circuit, eid circuit.EdgeID) boundaryPoint {
	e, _ := c.EdgeByID(eid)
	return boundaryPoint{v: e.Tgt, port: e.TgtPort}
}

// Substitute replaces the region named by sub with a copy of
// replacement (spec §4.8's substitute). replacement's boundary is
// matched against sub in qubit-then-bit order: replacement must have
// exactly len(sub.InEdges[Quantum]) qubits and len(sub.InEdges[Classical])
// classical bits, and sub must carry no boundary Boolean edge (a region
// with external Boolean reads or taps is outside Substitute's supported
// scope, a deliberate simplification since no pass in this repository
// needs it). On any mismatch host is left completely unchanged.
func Substitute(host *circuit.Circuit, replacement *circuit.Circuit, sub Subcircuit) error {
	if len(sub.InEdges[unit.Boolean]) > 0 || len(sub.OutEdges[unit.Boolean]) > 0 {
		return ErrSubstitutionMismatch
	}
	if len(sub.InEdges[unit.WASM]) > 0 || len(sub.InEdges[unit.RNG]) > 0 {
		return ErrSubstitutionMismatch
	}

	repQ := replacement.AllQubits()
	repC := replacement.AllBits()
	if len(repQ) != len(sub.InEdges[unit.Quantum]) || len(repC) != len(sub.InEdges[unit.Classical]) {
		return ErrSubstitutionMismatch
	}

	inPoints := map[unit.WireType][]boundaryPoint{}
	outPoints := map[unit.WireType][]boundaryPoint{}
	for wt, eids := range sub.InEdges {
		for _, eid := range eids {
			inPoints[wt] = append(inPoints[wt], externalSrc(host, eid))
		}
	}
	for wt, eids := range sub.OutEdges {
		for _, eid := range eids {
			outPoints[wt] = append(outPoints[wt], externalTgt(host, eid))
		}
	}

	for v := range sub.Vertices {
		if host.IsBoundary(v) {
			return ErrSubstitutionMismatch
		}
	}
	for v := range sub.Vertices {
		if err := host.RemoveVertex(v, false); err != nil {
			return err
		}
	}

	ends := host.InsertSubgraph(replacement)

	wireUp := func(u unit.ID, wt unit.WireType, i int) error {
		e := ends[u]
		in := inPoints[wt][i]
		out := outPoints[wt][i]
		if e.PassThrough {
			return host.AddEdge(in.v, in.port, out.v, out.port, wt)
		}
		if err := host.AddEdge(in.v, in.port, e.Entry.V, e.Entry.Port, wt); err != nil {
			return err
		}
		return host.AddEdge(e.Exit.V, e.Exit.Port, out.v, out.port, wt)
	}

	for i, u := range repQ {
		if err := wireUp(u, unit.Quantum, i); err != nil {
			return err
		}
	}
	for i, u := range repC {
		if err := wireUp(u, unit.Classical, i); err != nil {
			return err
		}
	}

	host.Phase = expr.Add(host.Phase, replacement.Phase)
	return nil
}

// SubstituteAll applies Substitute at every vertex whose operation is
// IsEqual to target, each independently treated as a single-vertex
// Subcircuit (spec §4.8's substitute_all).
func SubstituteAll(host *circuit.Circuit, replacement *circuit.Circuit, target op.Operation) error {
	var targets []circuit.VertexID
	for _, v := range host.VertexIDs() {
		if host.IsBoundary(v) {
			continue
		}
		o, _, ok := host.Vertex(v)
		if ok && o.IsEqual(target) {
			targets = append(targets, v)
		}
	}
	for _, v := range targets {
		sub, err := FromVertices(host, []circuit.VertexID{v})
		if err != nil {
			return err
		}
		if err := Substitute(host, replacement, sub); err != nil {
			return err
		}
	}
	return nil
}
