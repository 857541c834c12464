// Package rewrite implements the boundary-matched substitution family
// (spec §4.8): naming a region of a circuit.Circuit as a Subcircuit,
// splicing a replacement circuit into that region, and the op-equality-
// or opgroup-scoped variants that apply a single replacement at every
// matching site. Grounded on the teacher's qc/builder/builder.go
// bail-out style (accumulate the first error, refuse further work once
// one has occurred) applied here as "never mutate the host past the
// point a mismatch is detected".
package rewrite

import (
	"sort"

	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/unit"
)

// Subcircuit names a region of a host circuit by its boundary: the
// edges entering and leaving the region, grouped by wire type, plus the
// set of vertices the region contains. len(InEdges[t]) == len(OutEdges[t])
// must hold for every linear wire type (Quantum, Classical, WASM, RNG):
// a linear wire that threads through the region enters exactly once and
// leaves exactly once. Boolean is exempt from that balance, since a
// region may read more bits than it closes off (fan-out taps) or expose
// fresh Boolean taps to consumers outside it.
type Subcircuit struct {
	InEdges  map[unit.WireType][]circuit.EdgeID
	OutEdges map[unit.WireType][]circuit.EdgeID
	Vertices map[circuit.VertexID]struct{}
}

var linearWireTypes = []unit.WireType{unit.Quantum, unit.Classical, unit.WASM, unit.RNG}

// FromVertices builds a Subcircuit covering exactly vertices: every edge
// with at least one endpoint outside that set becomes a boundary edge,
// classified into InEdges/OutEdges by its wire type. It fails with
// ErrSubstitutionMismatch if the resulting region is not linear-balanced
// (spec §4.8's "|in_edges| = |out_edges| for each wire class").
func FromVertices(c *circuit.Circuit, vertices []circuit.VertexID) (Subcircuit, error) {
	set := make(map[circuit.VertexID]struct{}, len(vertices))
	for _, v := range vertices {
		set[v] = struct{}{}
	}

	ordered := append([]circuit.VertexID(nil), vertices...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	sub := Subcircuit{
		InEdges:  map[unit.WireType][]circuit.EdgeID{},
		OutEdges: map[unit.WireType][]circuit.EdgeID{},
		Vertices: set,
	}
	seenIn := map[circuit.EdgeID]bool{}
	seenOut := map[circuit.EdgeID]bool{}

	for _, v := range ordered {
		sig := c.Signature(v)
		for port, t := range sig {
			if eid := c.InEdgeAtPort(v, port); eid != 0 && !seenIn[eid] {
				e, ok := c.EdgeByID(eid)
				if ok {
					if _, inside := set[e.Src]; !inside {
						sub.InEdges[t] = append(sub.InEdges[t], eid)
						seenIn[eid] = true
					}
				}
			}
			for _, oeid := range c.OutEdgesAtPort(v, port) {
				if seenOut[oeid] {
					continue
				}
				oe, ok := c.EdgeByID(oeid)
				if !ok {
					continue
				}
				if _, inside := set[oe.Tgt]; !inside {
					sub.OutEdges[oe.Type] = append(sub.OutEdges[oe.Type], oeid)
					seenOut[oeid] = true
				}
			}
		}
	}

	for _, wt := range linearWireTypes {
		if len(sub.InEdges[wt]) != len(sub.OutEdges[wt]) {
			return Subcircuit{}, ErrSubstitutionMismatch
		}
	}
	return sub, nil
}
