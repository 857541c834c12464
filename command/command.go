// Package command walks a circuit.Circuit as a flat sequence of
// Commands, the view spec §4.5 builds on top of the slicer's cuts.
// Grounded on the teacher's qc/circuit/circuit.go Operations() iterator
// (topological order with a stable insertion-order tie-break),
// generalized to also recover the controlling bits behind Boolean
// arguments.
package command

import (
	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/slicer"
	"github.com/kegliz/qcompile/unit"
)

// Command is one step of the flattened view: an operation, its
// argument units in signature order, and the opgroup it belongs to.
type Command struct {
	Op      op.Operation
	Args    []unit.ID
	OpGroup string
}

// Commands returns every non-boundary vertex of c as a Command, ordered
// by slice then by insertion order within a slice (spec §4.5).
func Commands(c *circuit.Circuit) ([]Command, error) {
	it := slicer.New(c, nil)
	var out []Command
	for !it.Finished() {
		cut, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		for _, v := range cut.Slice {
			if c.IsBoundary(v) {
				continue
			}
			o, group, ok := c.Vertex(v)
			if !ok {
				continue
			}
			sig := o.Signature()
			args := make([]unit.ID, len(sig))
			for port := range sig {
				eid := c.InEdgeAtPort(v, port)
				if eid == 0 {
					continue
				}
				e, ok := c.EdgeByID(eid)
				if !ok {
					continue
				}
				if u, ok := c.UnitOfPort(e.Src, e.SrcPort); ok {
					args[port] = u
				}
			}
			out = append(out, Command{Op: o, Args: args, OpGroup: group})
		}
	}
	return out, nil
}
