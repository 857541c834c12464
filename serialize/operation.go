package serialize

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kegliz/qcompile/circuit"
	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/pauli"
	"github.com/kegliz/qcompile/unit"
)

// EncodeOperation renders o as spec §6's required Operation shape:
// {"type": <tag>, "params"?: [expr], and tag-specific fields}. The type
// tag is the GateType string for a primitive gate, or the Operation's
// own name for every other variant.
func EncodeOperation(o op.Operation) (map[string]interface{}, error) {
	switch v := o.(type) {
	case op.PrimitiveGate:
		m := map[string]interface{}{"type": string(v.Type)}
		if len(v.Params) > 0 {
			m["params"] = encodeExprList(v.Params)
		}
		return m, nil
	case op.Measure:
		return map[string]interface{}{"type": "Measure"}, nil
	case op.Reset:
		return map[string]interface{}{"type": "Reset"}, nil
	case op.Barrier:
		sig := make([]interface{}, len(v.Sig))
		for i, t := range v.Sig {
			sig[i] = t.Tag()
		}
		return map[string]interface{}{"type": "Barrier", "signature": sig, "data": v.Data}, nil
	case op.Conditional:
		inner, err := EncodeOperation(v.Inner)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"type":  "Conditional",
			"width": float64(v.Width),
			"value": float64(v.Value),
			"op":    inner,
		}, nil
	case op.CircBox:
		inner, ok := v.Inner.(*circuit.Circuit)
		if !ok {
			return nil, ErrUnsupportedInner
		}
		encoded, err := EncodeCircuit(inner)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"type": "CircBox", "circuit": encoded}, nil
	case op.ExpBox:
		t, err := exprOrErr(v.T)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"type":      "ExpBox",
			"hermitian": encodeMatrix(v.Hermitian),
			"t":         t,
		}, nil
	case op.PauliExpBox:
		return encodePauliExpBox(v)
	case op.PauliExpPairBox:
		first, err := encodePauliExpBox(v.First)
		if err != nil {
			return nil, err
		}
		second, err := encodePauliExpBox(v.Second)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"type": "PauliExpPairBox", "first": first, "second": second}, nil
	case op.PauliExpCommutingSetBox:
		terms := make([]interface{}, len(v.Terms))
		for i, t := range v.Terms {
			enc, err := encodePauliExpBox(t)
			if err != nil {
				return nil, err
			}
			terms[i] = enc
		}
		return map[string]interface{}{"type": "PauliExpCommutingSetBox", "terms": terms}, nil
	case op.QControlBox:
		inner, err := EncodeOperation(v.Inner)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"type": "QControlBox", "n_controls": float64(v.NControls), "inner": inner}, nil
	case op.MultiplexedRotationBox:
		return encodeMultiplexor("MultiplexedRotationBox", v.MultiplexorBox)
	case op.MultiplexedU2Box:
		return encodeMultiplexor("MultiplexedU2Box", v.MultiplexorBox)
	case op.MultiplexedTensoredU2Box:
		return encodeMultiplexor("MultiplexedTensoredU2Box", v.MultiplexorBox)
	case op.MultiplexorBox:
		return encodeMultiplexor("MultiplexorBox", v)
	case op.CustomGate:
		def, ok := v.Def.Definition.(*circuit.Circuit)
		if !ok {
			return nil, ErrUnsupportedInner
		}
		encodedDef, err := EncodeCircuit(def)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"type": "CustomGate",
			"def": map[string]interface{}{
				"id":         v.Def.ID.String(),
				"name":       v.Def.Name,
				"n_qubits":   float64(v.Def.NQubits),
				"n_params":   float64(v.Def.NParams),
				"definition": encodedDef,
			},
			"params": encodeExprList(v.Args),
		}, nil
	case op.SetBits:
		return map[string]interface{}{"type": "SetBits", "values": encodeBools(v.Values)}, nil
	case op.CopyBits:
		return map[string]interface{}{"type": "CopyBits", "n": float64(v.N)}, nil
	case op.ExplicitPredicate:
		return map[string]interface{}{"type": "ExplicitPredicate", "n_in": float64(v.NIn), "table": encodeBools(v.Table)}, nil
	case op.ExplicitModifier:
		return map[string]interface{}{"type": "ExplicitModifier", "n_in": float64(v.NIn), "table": encodeBools(v.Table)}, nil
	case op.RangePredicate:
		return map[string]interface{}{"type": "RangePredicate", "n": float64(v.N), "a": float64(v.A), "b": float64(v.B)}, nil
	case op.MultiBitOp:
		inner, err := EncodeOperation(v.Inner)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"type": "MultiBit", "n": float64(v.N), "inner": inner}, nil
	case op.ClassicalTransform:
		// ClassicalTransform carries a Go func value (SPEC_FULL §3); there
		// is no JSON representation for it, so it cannot round-trip
		// through this encoder (spec §4.2 names the variant without
		// requiring a serializable table, unlike ExplicitPredicate).
		return nil, fmt.Errorf("%w: ClassicalTransform", ErrNotSerializable)
	case op.WASMOp:
		widthsIn := make([]interface{}, len(v.WidthsIn))
		for i, w := range v.WidthsIn {
			widthsIn[i] = float64(w)
		}
		widthsOut := make([]interface{}, len(v.WidthsOut))
		for i, w := range v.WidthsOut {
			widthsOut[i] = float64(w)
		}
		return map[string]interface{}{
			"type":       "WASM",
			"n_bits":     float64(v.NBits()),
			"n_wires":    float64(v.NWires),
			"widths_in":  widthsIn,
			"widths_out": widthsOut,
			"func_name":  v.FuncName,
			"module_id":  v.ModuleID,
		}, nil
	default:
		// unitaryBox (Unitary1q/2q/3qBox) is unexported; handled via the
		// UnitaryBox accessor interface below since a type switch can't
		// name an unexported type from this package.
		if u, ok := o.(unitaryAccessor); ok {
			return encodeUnitaryBox(u)
		}
		return nil, fmt.Errorf("%w: %T", ErrUnknownType, o)
	}
}

// unitaryAccessor is satisfied by op's unexported unitaryBox type (its
// Tag/Matrix methods are exported even though the concrete type is not),
// letting this package recover the matrix without op exporting the type
// itself.
type unitaryAccessor interface {
	op.Operation
	Matrix() [][]complex128
}

func encodeUnitaryBox(u unitaryAccessor) (map[string]interface{}, error) {
	var tagName string
	switch u.Tag() {
	case op.TagUnitary1qBox:
		tagName = "Unitary1qBox"
	case op.TagUnitary2qBox:
		tagName = "Unitary2qBox"
	case op.TagUnitary3qBox:
		tagName = "Unitary3qBox"
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownType, u)
	}
	return map[string]interface{}{"type": tagName, "matrix": encodeMatrix(u.Matrix())}, nil
}

func encodeExprList(es []expr.Expr) []interface{} {
	out := make([]interface{}, len(es))
	for i, e := range es {
		out[i] = EncodeExpr(e)
	}
	return out
}

func exprOrErr(e expr.Expr) (map[string]interface{}, error) {
	if e == nil {
		return nil, ErrBadShape
	}
	return EncodeExpr(e), nil
}

func encodeBools(bs []bool) []interface{} {
	out := make([]interface{}, len(bs))
	for i, b := range bs {
		out[i] = b
	}
	return out
}

func encodeMatrix(m [][]complex128) []interface{} {
	out := make([]interface{}, len(m))
	for i, row := range m {
		r := make([]interface{}, len(row))
		for j, c := range row {
			r[j] = map[string]interface{}{"re": real(c), "im": imag(c)}
		}
		out[i] = r
	}
	return out
}

func decodeMatrix(v interface{}) ([][]complex128, error) {
	rows, ok := asSlice(v)
	if !ok {
		return nil, ErrBadShape
	}
	out := make([][]complex128, len(rows))
	for i, rv := range rows {
		cols, ok := asSlice(rv)
		if !ok {
			return nil, ErrBadShape
		}
		row := make([]complex128, len(cols))
		for j, cv := range cols {
			cm, ok := asMap(cv)
			if !ok {
				return nil, ErrBadShape
			}
			re, _ := asFloat(cm["re"])
			im, _ := asFloat(cm["im"])
			row[j] = complex(re, im)
		}
		out[i] = row
	}
	return out, nil
}

func encodePauliExpBox(p op.PauliExpBox) (map[string]interface{}, error) {
	entries := p.Paulis.Map.Entries()
	paulis := make([]interface{}, len(entries))
	for i, e := range entries {
		paulis[i] = map[string]interface{}{
			"qubit": EncodeUnitID(e.Qubit),
			"pauli": e.P.String(),
		}
	}
	phase, err := exprOrErr(p.Phase)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"type": "PauliExpBox", "paulis": paulis, "phase": phase}, nil
}

func decodePauliEntries(v interface{}) (pauli.PauliTensor[pauli.SparseMap, pauli.NoCoeff], error) {
	t := pauli.New(pauli.NewSparseMap(), pauli.NoCoeff{})
	entries, ok := asSlice(v)
	if !ok {
		return t, ErrBadShape
	}
	for _, ev := range entries {
		em, ok := asMap(ev)
		if !ok {
			return t, ErrBadShape
		}
		qm, ok := asMap(em["qubit"])
		if !ok {
			return t, ErrBadShape
		}
		q, err := DecodeUnitID(qm)
		if err != nil {
			return t, err
		}
		pStr, ok := asString(em["pauli"])
		if !ok {
			return t, ErrBadShape
		}
		p, ok := pauliFromString(pStr)
		if !ok {
			return t, ErrBadShape
		}
		t = t.With(q, p)
	}
	return t, nil
}

func pauliFromString(s string) (pauli.Pauli, bool) {
	switch s {
	case "I":
		return pauli.I, true
	case "X":
		return pauli.X, true
	case "Y":
		return pauli.Y, true
	case "Z":
		return pauli.Z, true
	default:
		return 0, false
	}
}

func decodePauliExpBox(m map[string]interface{}) (op.PauliExpBox, error) {
	t, err := decodePauliEntries(m["paulis"])
	if err != nil {
		return op.PauliExpBox{}, err
	}
	phaseM, ok := asMap(m["phase"])
	if !ok {
		return op.PauliExpBox{}, ErrBadShape
	}
	phase, err := DecodeExpr(phaseM)
	if err != nil {
		return op.PauliExpBox{}, err
	}
	return op.NewPauliExpBox(t, phase), nil
}

func encodeMultiplexor(tagName string, m op.MultiplexorBox) (map[string]interface{}, error) {
	branches := make([]interface{}, len(m.Branches))
	for i, b := range m.Branches {
		enc, err := EncodeOperation(b.Op)
		if err != nil {
			return nil, err
		}
		branches[i] = map[string]interface{}{"control_value": float64(b.ControlValue), "op": enc}
	}
	return map[string]interface{}{"type": tagName, "n_controls": float64(m.NControls), "branches": branches}, nil
}

func decodeMultiplexor(m map[string]interface{}, decodeCircuit func(map[string]interface{}) (op.CircuitValue, error)) (op.MultiplexorBox, error) {
	nControls, _ := asFloat(m["n_controls"])
	rawBranches, ok := asSlice(m["branches"])
	if !ok {
		return op.MultiplexorBox{}, ErrBadShape
	}
	branches := make([]op.MultiplexorBranch, len(rawBranches))
	for i, rb := range rawBranches {
		bm, ok := asMap(rb)
		if !ok {
			return op.MultiplexorBox{}, ErrBadShape
		}
		cv, _ := asFloat(bm["control_value"])
		opM, ok := asMap(bm["op"])
		if !ok {
			return op.MultiplexorBox{}, ErrBadShape
		}
		inner, err := DecodeOperation(opM, decodeCircuit)
		if err != nil {
			return op.MultiplexorBox{}, err
		}
		branches[i] = op.MultiplexorBranch{ControlValue: uint64(cv), Op: inner}
	}
	return op.MultiplexorBox{NControls: int(nControls), Branches: branches}, nil
}

// DecodeOperation is the inverse of EncodeOperation. decodeCircuit, when
// non-nil, is used to decode a nested "circuit" field (CircBox/CustomGate
// payloads); passing nil rejects those variants with ErrUnsupportedInner.
func DecodeOperation(m map[string]interface{}, decodeCircuit func(map[string]interface{}) (op.CircuitValue, error)) (op.Operation, error) {
	typ, ok := asString(m["type"])
	if !ok {
		return nil, ErrBadShape
	}
	if _, ok := gateTypeLookup[op.GateType(typ)]; ok {
		params, err := decodeParamsField(m["params"])
		if err != nil {
			return nil, err
		}
		return op.NewPrimitive(op.GateType(typ), params...), nil
	}
	switch typ {
	case "Measure":
		return op.Measure{}, nil
	case "Reset":
		return op.Reset{}, nil
	case "Barrier":
		sigRaw, ok := asSlice(m["signature"])
		if !ok {
			return nil, ErrBadShape
		}
		sig := make([]unit.WireType, len(sigRaw))
		for i, s := range sigRaw {
			tag, ok := asString(s)
			if !ok {
				return nil, ErrBadShape
			}
			wt, ok := unit.TagToWireType(tag)
			if !ok {
				return nil, ErrBadShape
			}
			sig[i] = wt
		}
		data, _ := asString(m["data"])
		return op.NewBarrier(sig, data), nil
	case "Conditional":
		width, _ := asFloat(m["width"])
		value, _ := asFloat(m["value"])
		innerM, ok := asMap(m["op"])
		if !ok {
			return nil, ErrBadShape
		}
		inner, err := DecodeOperation(innerM, decodeCircuit)
		if err != nil {
			return nil, err
		}
		return op.NewConditional(inner, int(width), uint64(value)), nil
	case "CircBox":
		if decodeCircuit == nil {
			return nil, ErrUnsupportedInner
		}
		circM, ok := asMap(m["circuit"])
		if !ok {
			return nil, ErrBadShape
		}
		inner, err := decodeCircuit(circM)
		if err != nil {
			return nil, err
		}
		return op.NewCircBox(inner), nil
	case "ExpBox":
		herm, err := decodeMatrix(m["hermitian"])
		if err != nil {
			return nil, err
		}
		tM, ok := asMap(m["t"])
		if !ok {
			return nil, ErrBadShape
		}
		tExpr, err := DecodeExpr(tM)
		if err != nil {
			return nil, err
		}
		return op.NewExpBox(herm, tExpr), nil
	case "PauliExpBox":
		return decodePauliExpBox(m)
	case "PauliExpPairBox":
		firstM, ok := asMap(m["first"])
		if !ok {
			return nil, ErrBadShape
		}
		secondM, ok := asMap(m["second"])
		if !ok {
			return nil, ErrBadShape
		}
		first, err := decodePauliExpBox(firstM)
		if err != nil {
			return nil, err
		}
		second, err := decodePauliExpBox(secondM)
		if err != nil {
			return nil, err
		}
		return op.PauliExpPairBox{First: first, Second: second}, nil
	case "PauliExpCommutingSetBox":
		rawTerms, ok := asSlice(m["terms"])
		if !ok {
			return nil, ErrBadShape
		}
		terms := make([]op.PauliExpBox, len(rawTerms))
		for i, rt := range rawTerms {
			tm, ok := asMap(rt)
			if !ok {
				return nil, ErrBadShape
			}
			t, err := decodePauliExpBox(tm)
			if err != nil {
				return nil, err
			}
			terms[i] = t
		}
		return op.PauliExpCommutingSetBox{Terms: terms}, nil
	case "QControlBox":
		nControls, _ := asFloat(m["n_controls"])
		innerM, ok := asMap(m["inner"])
		if !ok {
			return nil, ErrBadShape
		}
		inner, err := DecodeOperation(innerM, decodeCircuit)
		if err != nil {
			return nil, err
		}
		return op.NewQControlBox(inner, int(nControls)), nil
	case "MultiplexorBox":
		return decodeMultiplexor(m, decodeCircuit)
	case "MultiplexedRotationBox":
		mb, err := decodeMultiplexor(m, decodeCircuit)
		if err != nil {
			return nil, err
		}
		return op.MultiplexedRotationBox{MultiplexorBox: mb}, nil
	case "MultiplexedU2Box":
		mb, err := decodeMultiplexor(m, decodeCircuit)
		if err != nil {
			return nil, err
		}
		return op.MultiplexedU2Box{MultiplexorBox: mb}, nil
	case "MultiplexedTensoredU2Box":
		mb, err := decodeMultiplexor(m, decodeCircuit)
		if err != nil {
			return nil, err
		}
		return op.MultiplexedTensoredU2Box{MultiplexorBox: mb}, nil
	case "CustomGate":
		if decodeCircuit == nil {
			return nil, ErrUnsupportedInner
		}
		defM, ok := asMap(m["def"])
		if !ok {
			return nil, ErrBadShape
		}
		idStr, _ := asString(defM["id"])
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, err
		}
		name, _ := asString(defM["name"])
		nQubits, _ := asFloat(defM["n_qubits"])
		nParams, _ := asFloat(defM["n_params"])
		defCircM, ok := asMap(defM["definition"])
		if !ok {
			return nil, ErrBadShape
		}
		definition, err := decodeCircuit(defCircM)
		if err != nil {
			return nil, err
		}
		args, err := decodeParamsField(m["params"])
		if err != nil {
			return nil, err
		}
		def := op.CustomGateDef{ID: id, Name: name, NQubits: int(nQubits), NParams: int(nParams), Definition: definition}
		return op.NewCustomGate(def, args...), nil
	case "SetBits":
		values, err := decodeBoolSlice(m["values"])
		if err != nil {
			return nil, err
		}
		return op.SetBits{Values: values}, nil
	case "CopyBits":
		n, _ := asFloat(m["n"])
		return op.CopyBits{N: int(n)}, nil
	case "ExplicitPredicate":
		nIn, _ := asFloat(m["n_in"])
		table, err := decodeBoolSlice(m["table"])
		if err != nil {
			return nil, err
		}
		return op.ExplicitPredicate{NIn: int(nIn), Table: table}, nil
	case "ExplicitModifier":
		nIn, _ := asFloat(m["n_in"])
		table, err := decodeBoolSlice(m["table"])
		if err != nil {
			return nil, err
		}
		return op.ExplicitModifier{NIn: int(nIn), Table: table}, nil
	case "RangePredicate":
		n, _ := asFloat(m["n"])
		a, _ := asFloat(m["a"])
		b, _ := asFloat(m["b"])
		return op.RangePredicate{N: int(n), A: uint64(a), B: uint64(b)}, nil
	case "MultiBit":
		n, _ := asFloat(m["n"])
		innerM, ok := asMap(m["inner"])
		if !ok {
			return nil, ErrBadShape
		}
		inner, err := DecodeOperation(innerM, decodeCircuit)
		if err != nil {
			return nil, err
		}
		evalInner, ok := inner.(op.ClassicalEvalOp)
		if !ok {
			return nil, ErrBadShape
		}
		return op.MultiBitOp{Inner: evalInner, N: int(n)}, nil
	case "WASM":
		nBits, _ := asFloat(m["n_bits"])
		nWires, _ := asFloat(m["n_wires"])
		widthsIn, err := decodeIntSlice(m["widths_in"])
		if err != nil {
			return nil, err
		}
		widthsOut, err := decodeIntSlice(m["widths_out"])
		if err != nil {
			return nil, err
		}
		funcName, _ := asString(m["func_name"])
		moduleID, _ := asString(m["module_id"])
		return op.NewWASMOp(int(nBits), int(nWires), widthsIn, widthsOut, funcName, moduleID), nil
	case "Unitary1qBox", "Unitary2qBox", "Unitary3qBox":
		mat, err := decodeMatrix(m["matrix"])
		if err != nil {
			return nil, err
		}
		switch typ {
		case "Unitary1qBox":
			return op.NewUnitary1qBox(mat), nil
		case "Unitary2qBox":
			return op.NewUnitary2qBox(mat), nil
		default:
			return op.NewUnitary3qBox(mat), nil
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
}

// gateTypeLookup restricts the primitive-gate fast path in DecodeOperation
// to the types op.NewPrimitive actually recognizes; built once against
// the same constants op/primitive.go exports.
var gateTypeLookup = map[op.GateType]struct{}{
	op.GateH: {}, op.GateX: {}, op.GateY: {}, op.GateZ: {},
	op.GateS: {}, op.GateSdg: {}, op.GateT: {}, op.GateTdg: {},
	op.GateV: {}, op.GateVdg: {}, op.GateRx: {}, op.GateRy: {},
	op.GateRz: {}, op.GateU1: {}, op.GatePhase: {}, op.GateCX: {},
	op.GateCY: {}, op.GateCZ: {}, op.GateSWAP: {}, op.GateCCX: {},
	op.GateCSWAP: {},
}

func decodeParamsField(v interface{}) ([]expr.Expr, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := asSlice(v)
	if !ok {
		return nil, ErrBadShape
	}
	out := make([]expr.Expr, len(raw))
	for i, r := range raw {
		m, ok := asMap(r)
		if !ok {
			return nil, ErrBadShape
		}
		e, err := DecodeExpr(m)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func decodeBoolSlice(v interface{}) ([]bool, error) {
	raw, ok := asSlice(v)
	if !ok {
		return nil, ErrBadShape
	}
	out := make([]bool, len(raw))
	for i, r := range raw {
		b, ok := r.(bool)
		if !ok {
			return nil, ErrBadShape
		}
		out[i] = b
	}
	return out, nil
}

func decodeIntSlice(v interface{}) ([]int, error) {
	raw, ok := asSlice(v)
	if !ok {
		return nil, ErrBadShape
	}
	out := make([]int, len(raw))
	for i, r := range raw {
		f, ok := asFloat(r)
		if !ok {
			return nil, ErrBadShape
		}
		out[i] = int(f)
	}
	return out, nil
}
