package serialize

import "github.com/kegliz/qcompile/unit"

func kindTag(k unit.Kind) string {
	switch k {
	case unit.Qubit:
		return "q"
	case unit.Bit:
		return "c"
	case unit.WasmState:
		return "w"
	default:
		return "?"
	}
}

func kindFromTag(tag string) (unit.Kind, bool) {
	switch tag {
	case "q":
		return unit.Qubit, true
	case "c":
		return unit.Bit, true
	case "w":
		return unit.WasmState, true
	default:
		return 0, false
	}
}

// EncodeUnitID renders a unit.ID as spec §6's "unitid" value: a kind
// tag, register name and index tuple.
func EncodeUnitID(u unit.ID) map[string]interface{} {
	idx := u.Index()
	out := make([]interface{}, len(idx))
	for i, v := range idx {
		out[i] = float64(v)
	}
	return map[string]interface{}{
		"kind":     kindTag(u.Kind),
		"register": u.Register,
		"index":    out,
	}
}

// DecodeUnitID is the inverse of EncodeUnitID.
func DecodeUnitID(m map[string]interface{}) (unit.ID, error) {
	kindStr, ok := asString(m["kind"])
	if !ok {
		return unit.ID{}, ErrBadShape
	}
	k, ok := kindFromTag(kindStr)
	if !ok {
		return unit.ID{}, ErrBadShape
	}
	reg, ok := asString(m["register"])
	if !ok {
		return unit.ID{}, ErrBadShape
	}
	idxRaw, ok := asSlice(m["index"])
	if !ok {
		return unit.ID{}, ErrBadShape
	}
	idx := make([]uint, len(idxRaw))
	for i, v := range idxRaw {
		f, ok := asFloat(v)
		if !ok {
			return unit.ID{}, ErrBadShape
		}
		idx[i] = uint(f)
	}
	return unit.New(k, reg, idx...), nil
}
