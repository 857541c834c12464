package transform

import (
	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/op"
)

// MultiqCliffordReplacement collapses the three-CX SWAP identity
// CX(a,b)·CX(b,a)·CX(a,b) = SWAP(a,b) into a single SWAP gate when
// allowSwaps is true; when false it leaves the triple in place, the
// same all-or-nothing reading ReplaceSWAPs(allow_implicit=false) gives
// the equivalent decision in circuit.ReplaceSWAPs (spec §4.9's
// multi-qubit Clifford rewrite, grounded in
// original_source/tket's CliffordOptimisation three-CX-to-SWAP rule).
func MultiqCliffordReplacement(allowSwaps bool) Transform {
	return func(c *circuit.Circuit) bool {
		if !allowSwaps {
			return false
		}
		changed := false
	restart:
		for _, v1 := range c.VertexIDs() {
			if !isCX(c, v1) {
				continue
			}
			a, b, ok := cxArgs(c, v1)
			if !ok {
				continue
			}
			v2, ok := nextVertexBothPorts(c, v1)
			if !ok || !isCX(c, v2) {
				continue
			}
			b2, a2, ok := cxArgs(c, v2)
			if !ok || !a2.Equal(a) || !b2.Equal(b) {
				continue
			}
			v3, ok := nextVertexBothPorts(c, v2)
			if !ok || !isCX(c, v3) {
				continue
			}
			a3, b3, ok := cxArgs(c, v3)
			if !ok || !a3.Equal(a) || !b3.Equal(b) {
				continue
			}
			group := groupOf(c, v1)
			_ = c.RemoveVertex(v3, true)
			_ = c.RemoveVertex(v2, true)
			_ = c.RemoveVertex(v1, true)
			_, _ = c.AddOp(op.SWAP(), unitArgs(a, b), group)
			changed = true
			goto restart
		}
		return changed
	}
}
