package rewrite

import (
	"fmt"

	"github.com/kegliz/qcompile/circuit"
)

func findVerticesWithOpgroup(c *circuit.Circuit, group string) []circuit.VertexID {
	var out []circuit.VertexID
	for _, v := range c.VertexIDs() {
		if c.IsBoundary(v) {
			continue
		}
		_, g, ok := c.Vertex(v)
		if ok && g == group {
			out = append(out, v)
		}
	}
	return out
}

// renameCollidingOpgroups resolves the one case spec §4.8 calls out as
// recoverable: replacement carrying an internal opgroup literally equal
// to the group being substituted (the natural thing to write when
// replacement is itself the canonical definition of that named region).
// That label is deterministically suffixed so repeated insertion across
// several matched sites doesn't produce a group sharing its name with
// the region being replaced. Any other opgroup label replacement
// carries that already names a *different* region of host is treated as
// an unresolvable collision.
func renameCollidingOpgroups(host, replacement *circuit.Circuit, targetGroup string) (*circuit.Circuit, error) {
	hostOther := map[string]bool{}
	for _, v := range host.VertexIDs() {
		if host.IsBoundary(v) {
			continue
		}
		_, g, _ := host.Vertex(v)
		if g != "" && g != targetGroup {
			hostOther[g] = true
		}
	}

	needsRename := false
	for _, v := range replacement.VertexIDs() {
		if replacement.IsBoundary(v) {
			continue
		}
		_, g, _ := replacement.Vertex(v)
		if g == "" {
			continue
		}
		if g == targetGroup {
			needsRename = true
			continue
		}
		if hostOther[g] {
			return nil, ErrOpGroupCollision
		}
	}
	if !needsRename {
		return replacement, nil
	}

	newName := targetGroup
	for k := 1; newName == targetGroup || hostOther[newName]; k++ {
		newName = fmt.Sprintf("%s_%d", targetGroup, k)
	}
	return replacement.WithRelabeledOpgroup(targetGroup, newName), nil
}

// SubstituteNamed applies Substitute, with the same replacement, at
// every vertex whose opgroup equals opgroup (spec §4.8's
// substitute_named). It fails with ErrOpGroupCollision if replacement
// carries an opgroup label that already names a different region of
// host; a replacement opgroup equal to the target itself is renamed
// deterministically instead (see renameCollidingOpgroups), and that same
// renamed replacement is reused at every matched site so all copies end
// up with identical relabeled groups.
func SubstituteNamed(host *circuit.Circuit, replacement *circuit.Circuit, opgroup string) error {
	targets := findVerticesWithOpgroup(host, opgroup)
	if len(targets) == 0 {
		return nil
	}

	effective, err := renameCollidingOpgroups(host, replacement, opgroup)
	if err != nil {
		return err
	}

	for _, v := range targets {
		sub, err := FromVertices(host, []circuit.VertexID{v})
		if err != nil {
			return err
		}
		if err := Substitute(host, effective, sub); err != nil {
			return err
		}
	}
	return nil
}
