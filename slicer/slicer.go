// Package slicer walks a circuit.Circuit cut by cut, the frontier
// abstraction spec §4.4 calls the Slicer. Grounded in technique on the
// teacher's qc/dag/dag.go Kahn-queue topological loop, generalized from a
// single pass producing one flat order into a stepwise iterator that
// also tracks, per unit, which edge currently sits at the frontier and,
// per bit, which Boolean reads of its last write remain unresolved.
package slicer

import (
	"errors"

	"golang.org/x/exp/slices"

	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/unit"
)

// ErrRAWHazard is raised when a bit's linear chain advances past a new
// write before every Boolean read of its previous write has been
// resolved into an earlier cut (spec §4.4).
var ErrRAWHazard = errors.New("slicer: read-after-write hazard on bit frontier")

// Cut is one step of circuit slicing (spec §4.4).
type Cut struct {
	Slice     []circuit.VertexID
	UFrontier map[unit.ID]circuit.EdgeID
	BFrontier map[unit.ID][]circuit.EdgeID
}

// SliceIterator produces successive Cuts over a Circuit (spec §4.4's
// SliceIterator(circuit, skip_fn?)).
type SliceIterator struct {
	c      *circuit.Circuit
	skipFn func(op.Operation) bool

	indeg   map[circuit.VertexID]int
	outEdge map[circuit.VertexID][]circuit.EdgeID
	visited map[circuit.VertexID]bool
	ready   []circuit.VertexID
	pending []circuit.VertexID

	uFrontier map[unit.ID]circuit.EdgeID
	bFrontier map[unit.ID][]circuit.EdgeID
}

// New builds a SliceIterator over c. When skipFn is non-nil, next_cut
// greedily folds every vertex for which skipFn(op) holds into the
// current slice before stopping, the mechanism depth_by_types-style
// metrics are built from.
func New(c *circuit.Circuit, skipFn func(op.Operation) bool) *SliceIterator {
	it := &SliceIterator{
		c:         c,
		skipFn:    skipFn,
		indeg:     map[circuit.VertexID]int{},
		outEdge:   map[circuit.VertexID][]circuit.EdgeID{},
		visited:   map[circuit.VertexID]bool{},
		uFrontier: map[unit.ID]circuit.EdgeID{},
		bFrontier: map[unit.ID][]circuit.EdgeID{},
	}
	for _, v := range c.VertexIDs() {
		it.indeg[v] = 0
	}
	for _, e := range c.Edges() {
		it.indeg[e.Tgt]++
		it.outEdge[e.Src] = append(it.outEdge[e.Src], e.ID)
	}
	for v, d := range it.indeg {
		if d == 0 {
			it.ready = append(it.ready, v)
		}
	}
	slices.Sort(it.ready)
	for _, u := range c.Boundary() {
		if v, ok := c.InVertex(u); ok {
			if eid, ok := c.LinearOutAt(v, 0); ok {
				it.uFrontier[u] = eid
			}
		}
	}
	return it
}

// Finished reports whether every vertex has been admitted into some
// cut, equivalent to spec §4.4's "every u_frontier edge points at a
// terminal boundary vertex and every b_frontier entry is empty" for any
// well-formed circuit.
func (it *SliceIterator) Finished() bool {
	return len(it.visited) == len(it.indeg)
}

func (it *SliceIterator) markVisited(v circuit.VertexID) {
	it.visited[v] = true
	for _, eid := range it.outEdge[v] {
		e, ok := it.c.EdgeByID(eid)
		if !ok {
			continue
		}
		it.indeg[e.Tgt]--
		if it.indeg[e.Tgt] == 0 {
			it.pending = append(it.pending, e.Tgt)
		}
	}
}

// Next computes the next cut. ok is false once Finished(); err is
// ErrRAWHazard if advancing the frontier found a bit rewritten while
// Boolean reads of its prior value remain unresolved.
func (it *SliceIterator) Next() (cut Cut, ok bool, err error) {
	if it.Finished() {
		return Cut{}, false, nil
	}
	batch := it.ready
	it.ready = nil
	if len(batch) == 0 {
		return Cut{}, false, nil
	}
	slice := append([]circuit.VertexID(nil), batch...)
	for _, v := range batch {
		it.markVisited(v)
	}
	for it.skipFn != nil {
		pending := it.pending
		it.pending = nil
		var carried []circuit.VertexID
		folded := false
		for _, v := range pending {
			o, _, vok := it.c.Vertex(v)
			if vok && it.skipFn(o) {
				slice = append(slice, v)
				it.markVisited(v)
				folded = true
			} else {
				carried = append(carried, v)
			}
		}
		it.pending = append(it.pending, carried...)
		if !folded {
			break
		}
	}
	it.ready = append(it.ready, it.pending...)
	it.pending = nil
	slices.Sort(it.ready)

	if aerr := it.advanceFrontier(); aerr != nil {
		return Cut{}, false, aerr
	}
	return Cut{
		Slice:     slice,
		UFrontier: cloneUFrontier(it.uFrontier),
		BFrontier: cloneBFrontier(it.bFrontier),
	}, true, nil
}

func (it *SliceIterator) advanceFrontier() error {
	for u, taps := range it.bFrontier {
		var remain []circuit.EdgeID
		for _, t := range taps {
			if te, ok := it.c.EdgeByID(t); ok && !it.visited[te.Tgt] {
				remain = append(remain, t)
			}
		}
		it.bFrontier[u] = remain
	}
	for _, u := range it.c.Boundary() {
		for {
			eid, ok := it.uFrontier[u]
			if !ok {
				break
			}
			e, ok := it.c.EdgeByID(eid)
			if !ok || !it.visited[e.Tgt] {
				break
			}
			if u.Kind == unit.Bit && e.Type != unit.Boolean && len(it.bFrontier[u]) > 0 {
				return ErrRAWHazard
			}
			nextEid, ok := it.c.LinearOutAt(e.Tgt, e.TgtPort)
			if !ok {
				delete(it.uFrontier, u)
				break
			}
			it.uFrontier[u] = nextEid
			if u.Kind == unit.Bit {
				var taps []circuit.EdgeID
				for _, t := range it.c.OutEdgesAtPort(e.Tgt, e.TgtPort) {
					if te, ok := it.c.EdgeByID(t); ok && te.Type == unit.Boolean {
						taps = append(taps, t)
					}
				}
				it.bFrontier[u] = taps
			}
		}
	}
	return nil
}

func cloneUFrontier(m map[unit.ID]circuit.EdgeID) map[unit.ID]circuit.EdgeID {
	out := make(map[unit.ID]circuit.EdgeID, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneBFrontier(m map[unit.ID][]circuit.EdgeID) map[unit.ID][]circuit.EdgeID {
	out := make(map[unit.ID][]circuit.EdgeID, len(m))
	for k, v := range m {
		out[k] = append([]circuit.EdgeID(nil), v...)
	}
	return out
}
