package circuit

import (
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/unit"
)

// BoundarySignature implements op.CircuitValue, letting *Circuit sit
// inside an op.CircBox without op importing circuit (spec §9).
func (c *Circuit) BoundarySignature() []unit.WireType {
	sig := make([]unit.WireType, len(c.boundary))
	for i, u := range c.boundary {
		sig[i] = naturalWireType(u.Kind)
	}
	return sig
}

// String renders a deterministic textual form: the boundary followed
// by every non-boundary vertex in topological order, each line naming
// its operation and the vertex IDs feeding its ports. Used as the
// canonical representation behind IsEqualValue/HashValue, the same way
// op.Operation implementations fold their fields into a single string
// before hashing (op/boxes.go's hashString).
func (c *Circuit) String() string {
	var sb strings.Builder
	sb.WriteString("Circuit[")
	for i, u := range c.boundary {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(u.String())
	}
	sb.WriteString("]\n")
	for _, v := range c.topoOrder() {
		vs := c.vertices[v]
		if isBoundaryTag(vs.op.Tag()) {
			continue
		}
		sb.WriteString(strconv.FormatUint(uint64(v), 10))
		sb.WriteString(": ")
		sb.WriteString(vs.op.String())
		sb.WriteString(" <- [")
		for i, eid := range vs.ins {
			if i > 0 {
				sb.WriteByte(',')
			}
			if eid == 0 {
				sb.WriteByte('_')
				continue
			}
			e := c.edges[eid]
			sb.WriteString(strconv.FormatUint(uint64(e.Src), 10))
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(e.SrcPort))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

// IsEqualValue compares two circuits by their canonical String form
// (spec §4.3's circuit equality, delegated through op.CircuitValue).
func (c *Circuit) IsEqualValue(other op.CircuitValue) bool {
	o, ok := other.(*Circuit)
	return ok && c.String() == o.String()
}

// HashValue is consistent with IsEqualValue.
func (c *Circuit) HashValue() uint64 {
	h := fnv.New64a()
	h.Write([]byte(c.String()))
	return h.Sum64()
}

// Dagger and Transpose, satisfying the remainder of op.CircuitValue,
// live in mutate.go alongside the rest of the graph-mutation surface.
