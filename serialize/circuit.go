package serialize

import (
	"encoding/json"

	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/command"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/unit"
)

// EncodeCircuit renders c as spec §6's required Circuit shape: "name",
// "phase", "qubits", "bits", "commands" and "implicit_permutation".
// Commands are recovered via package command, whose Command.Args are
// already ordered exactly as circuit.AddOp expects them, so decoding is
// a straight replay rather than a from-scratch wiring reconstruction.
func EncodeCircuit(c *circuit.Circuit) (map[string]interface{}, error) {
	cmds, err := command.Commands(c)
	if err != nil {
		return nil, err
	}
	encodedCmds := make([]interface{}, len(cmds))
	for i, cmd := range cmds {
		encOp, err := EncodeOperation(cmd.Op)
		if err != nil {
			return nil, err
		}
		args := make([]interface{}, len(cmd.Args))
		for j, a := range cmd.Args {
			args[j] = EncodeUnitID(a)
		}
		encodedCmds[i] = map[string]interface{}{
			"op":      encOp,
			"args":    args,
			"opgroup": cmd.OpGroup,
		}
	}

	perm := c.ImplicitQubitPermutation()
	permOut := make([]interface{}, 0, len(perm))
	for from, to := range perm {
		if from.Equal(to) {
			continue
		}
		permOut = append(permOut, map[string]interface{}{
			"from": EncodeUnitID(from),
			"to":   EncodeUnitID(to),
		})
	}

	qubits := c.AllQubits()
	encodedQubits := make([]interface{}, len(qubits))
	for i, q := range qubits {
		encodedQubits[i] = EncodeUnitID(q)
	}
	bits := c.AllBits()
	encodedBits := make([]interface{}, len(bits))
	for i, b := range bits {
		encodedBits[i] = EncodeUnitID(b)
	}

	return map[string]interface{}{
		"name":                 c.Name,
		"phase":                EncodeExpr(c.Phase),
		"qubits":               encodedQubits,
		"bits":                 encodedBits,
		"commands":             encodedCmds,
		"implicit_permutation": permOut,
	}, nil
}

// DecodeCircuit is the inverse of EncodeCircuit: it builds an empty
// circuit over the declared qubits/bits, replays each command through
// circuit.AddOp, and finally applies the recorded implicit permutation —
// a permutation has no vertex of its own to replay, so it must be
// restored as a distinct post-processing step (circuit.
// ApplyImplicitPermutation exists for exactly this).
func DecodeCircuit(m map[string]interface{}) (*circuit.Circuit, error) {
	c := circuit.New(0, 0)

	qubitsRaw, ok := asSlice(m["qubits"])
	if !ok {
		return nil, ErrBadShape
	}
	for _, qv := range qubitsRaw {
		qm, ok := asMap(qv)
		if !ok {
			return nil, ErrBadShape
		}
		u, err := DecodeUnitID(qm)
		if err != nil {
			return nil, err
		}
		if err := c.AddQubit(u); err != nil {
			return nil, err
		}
	}

	bitsRaw, ok := asSlice(m["bits"])
	if !ok {
		return nil, ErrBadShape
	}
	for _, bv := range bitsRaw {
		bm, ok := asMap(bv)
		if !ok {
			return nil, ErrBadShape
		}
		u, err := DecodeUnitID(bm)
		if err != nil {
			return nil, err
		}
		if err := c.AddBit(u); err != nil {
			return nil, err
		}
	}

	decodeInner := func(cm map[string]interface{}) (op.CircuitValue, error) { return DecodeCircuit(cm) }

	cmdsRaw, ok := asSlice(m["commands"])
	if !ok {
		return nil, ErrBadShape
	}
	for _, cv := range cmdsRaw {
		cmdM, ok := asMap(cv)
		if !ok {
			return nil, ErrBadShape
		}
		opM, ok := asMap(cmdM["op"])
		if !ok {
			return nil, ErrBadShape
		}
		o, err := DecodeOperation(opM, decodeInner)
		if err != nil {
			return nil, err
		}
		argsRaw, ok := asSlice(cmdM["args"])
		if !ok {
			return nil, ErrBadShape
		}
		args := make([]unit.ID, len(argsRaw))
		for i, av := range argsRaw {
			am, ok := asMap(av)
			if !ok {
				return nil, ErrBadShape
			}
			u, err := DecodeUnitID(am)
			if err != nil {
				return nil, err
			}
			args[i] = u
		}
		opgroup, _ := asString(cmdM["opgroup"])
		if _, err := c.AddOp(o, args, opgroup); err != nil {
			return nil, err
		}
	}

	permRaw, ok := asSlice(m["implicit_permutation"])
	if !ok {
		return nil, ErrBadShape
	}
	perm := make(map[unit.ID]unit.ID, len(permRaw))
	for _, pv := range permRaw {
		pm, ok := asMap(pv)
		if !ok {
			return nil, ErrBadShape
		}
		fromM, ok := asMap(pm["from"])
		if !ok {
			return nil, ErrBadShape
		}
		toM, ok := asMap(pm["to"])
		if !ok {
			return nil, ErrBadShape
		}
		from, err := DecodeUnitID(fromM)
		if err != nil {
			return nil, err
		}
		to, err := DecodeUnitID(toM)
		if err != nil {
			return nil, err
		}
		perm[from] = to
	}
	if err := c.ApplyImplicitPermutation(perm); err != nil {
		return nil, err
	}

	name, _ := asString(m["name"])
	c.Name = name
	phaseM, ok := asMap(m["phase"])
	if !ok {
		return nil, ErrBadShape
	}
	phase, err := DecodeExpr(phaseM)
	if err != nil {
		return nil, err
	}
	c.Phase = phase

	return c, nil
}

// Marshal renders c as the JSON bytes spec §6 requires.
func Marshal(c *circuit.Circuit) ([]byte, error) {
	m, err := EncodeCircuit(c)
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// Unmarshal is the inverse of Marshal.
func Unmarshal(data []byte) (*circuit.Circuit, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return DecodeCircuit(m)
}
