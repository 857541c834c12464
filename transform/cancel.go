package transform

import (
	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/op"
)

// CancelAdjacentCX removes a CX immediately followed by another CX on
// the same control and target with nothing else in between, since
// CX·CX = I (SPEC_FULL §3's supplement to spec §4.9's named passes).
func CancelAdjacentCX(c *circuit.Circuit) bool {
	changed := false
restart:
	for _, v := range c.VertexIDs() {
		if !isCX(c, v) {
			continue
		}
		ctrl, tgt, ok := cxArgs(c, v)
		if !ok {
			continue
		}
		next, ok := nextVertexBothPorts(c, v)
		if !ok || !isCX(c, next) {
			continue
		}
		ctrl2, tgt2, ok := cxArgs(c, next)
		if !ok || !ctrl2.Equal(ctrl) || !tgt2.Equal(tgt) {
			continue
		}
		_ = c.RemoveVertex(next, true)
		_ = c.RemoveVertex(v, true)
		changed = true
		goto restart
	}
	return changed
}

// CommuteHAdjacentCX rewrites H(control);H(target);CX;H(control);H(target)
// into a single CX with control and target swapped, the standard
// (H⊗H)·CX_{c,t}·(H⊗H) = CX_{t,c} identity (SPEC_FULL §3's supplement).
func CommuteHAdjacentCX(c *circuit.Circuit) bool {
	changed := false
restart:
	for _, v := range c.VertexIDs() {
		if !isCX(c, v) {
			continue
		}
		preC, okC := predecessorGate(c, v, 0, op.GateH)
		preT, okT := predecessorGate(c, v, 1, op.GateH)
		postC, okC2 := successorGate(c, v, 0, op.GateH)
		postT, okT2 := successorGate(c, v, 1, op.GateH)
		if !okC || !okT || !okC2 || !okT2 {
			continue
		}
		ctrl, tgt, ok := cxArgs(c, v)
		if !ok {
			continue
		}
		group := groupOf(c, v)
		_ = c.RemoveVertex(postT, true)
		_ = c.RemoveVertex(postC, true)
		_ = c.RemoveVertex(v, true)
		_ = c.RemoveVertex(preT, true)
		_ = c.RemoveVertex(preC, true)
		_, _ = c.AddOp(op.CX(), unitArgs(tgt, ctrl), group)
		changed = true
		goto restart
	}
	return changed
}

// CopyPiThroughCX pushes a Pauli-X sitting on CX's control immediately
// before the gate to after it, splitting into X on both control and
// target (CX·(X⊗I) = (X⊗X)·CX), and a Pauli-Z sitting on CX's target
// immediately after the gate to before it, splitting the same way
// ((I⊗Z)·CX = CX·(Z⊗Z)·... applied in reverse): the standard stabilizer
// "copy through CX" identity (original_source/tket's CliffordOptimisation).
func CopyPiThroughCX(c *circuit.Circuit) bool {
	changed := false
restart:
	for _, v := range c.VertexIDs() {
		if !isCX(c, v) {
			continue
		}
		ctrl, tgt, ok := cxArgs(c, v)
		if !ok {
			continue
		}
		if pre, ok := predecessorGate(c, v, 0, op.GateX); ok {
			group := groupOf(c, v)
			_ = c.RemoveVertex(pre, true)
			_, _ = c.AddOp(op.X(), unitArgs(ctrl), group)
			_, _ = c.AddOp(op.X(), unitArgs(tgt), group)
			changed = true
			goto restart
		}
		if post, ok := successorGate(c, v, 1, op.GateZ); ok {
			group := groupOf(c, v)
			_ = c.RemoveVertex(post, true)
			_, _ = c.AddOp(op.Z(), unitArgs(ctrl), group)
			_, _ = c.AddOp(op.Z(), unitArgs(tgt), group)
			changed = true
			goto restart
		}
	}
	return changed
}

// PushCliffordsThroughMeasures deletes a Z-diagonal single-qubit gate
// (Z, S, Sdg, or a global-phase Phase) sitting immediately before a
// Measure on the measured qubit, since a computational-basis
// measurement's outcome statistics are invariant to any phase gate
// applied just before it (spec §4.9's named pass).
func PushCliffordsThroughMeasures(c *circuit.Circuit) bool {
	changed := false
	diagonal := []op.GateType{op.GateZ, op.GateS, op.GateSdg, op.GatePhase}
restart:
	for _, v := range c.VertexIDs() {
		if c.IsBoundary(v) {
			continue
		}
		o, _, ok := c.Vertex(v)
		if !ok {
			continue
		}
		if _, ok := o.(op.Measure); !ok {
			continue
		}
		for _, gt := range diagonal {
			if pre, ok := predecessorGate(c, v, 0, gt); ok {
				_ = c.RemoveVertex(pre, true)
				changed = true
				goto restart
			}
		}
	}
	return changed
}
