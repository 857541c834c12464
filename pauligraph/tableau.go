package pauligraph

import (
	"github.com/kegliz/qcompile/expr"
	"github.com/kegliz/qcompile/op"
	"github.com/kegliz/qcompile/pauli"
	"github.com/kegliz/qcompile/unit"
)

// newTableau seeds every qubit's X and Z generator to itself: before any
// gate is applied, X_q conjugates to X_q and Z_q to Z_q.
func newTableau(qubits []unit.ID) Tableau {
	t := Tableau{X: map[unit.ID]Row{}, Z: map[unit.ID]Row{}}
	for _, q := range qubits {
		t.X[q] = pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: q, P: pauli.X}), pauli.QuarterTurn(0))
		t.Z[q] = pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: q, P: pauli.Z}), pauli.QuarterTurn(0))
	}
	return t
}

func identityRow() Row {
	return pauli.New(pauli.SparseMap{}.Empty(), pauli.QuarterTurn(0))
}

// imageOf looks up how generator (q, p) is currently expressed in terms
// of the step tableau step, defaulting to (q, p) unchanged for any qubit
// step does not mention — the qubits a gate doesn't touch pass through.
func imageOf(q unit.ID, p pauli.Pauli, step Tableau) Row {
	switch p {
	case pauli.I:
		return identityRow()
	case pauli.X:
		if r, ok := step.X[q]; ok {
			return r
		}
		return pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: q, P: pauli.X}), pauli.QuarterTurn(0))
	case pauli.Z:
		if r, ok := step.Z[q]; ok {
			return r
		}
		return pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: q, P: pauli.Z}), pauli.QuarterTurn(0))
	default: // pauli.Y: Y = i*X*Z, so image(Y) = i * image(X) * image(Z)
		xz := pauli.Multiply(imageOf(q, pauli.X, step), imageOf(q, pauli.Z, step))
		return Row{Map: xz.Map, Coeff: xz.Coeff.ApplyQuarterTurn(1)}
	}
}

// substituteRow re-expresses row in terms of step's generator images,
// the core operation both tableau composition (applyGate) and backward
// conjugation of a PauliExpBox's tensor (conjugateBoxThroughTableau)
// reduce to: decompose row into its per-qubit Pauli factors and
// multiply together their images under step.
func substituteRow(row Row, step Tableau) Row {
	acc := identityRow()
	for _, e := range row.Map.Entries() {
		acc = pauli.Multiply(acc, imageOf(e.Qubit, e.P, step))
	}
	return Row{Map: acc.Map, Coeff: acc.Coeff.Multiply(row.Coeff)}
}

// singleQubitStepImages gives, for each single-qubit Clifford generator,
// the image of its X and Z generator as an (axis, sign) pair — the same
// conjugation convention transform.SingleQCliffordSweep's conjTables
// fixes, independently encoded here since pauligraph has no reason to
// import transform (nor vice versa).
type axisImage struct {
	axis pauli.Pauli // X or Z
	sign pauli.QuarterTurn
}

var singleQubitStepImages = map[op.GateType]struct{ x, z axisImage }{
	op.GateX:   {axisImage{pauli.X, 0}, axisImage{pauli.Z, 2}},
	op.GateY:   {axisImage{pauli.X, 2}, axisImage{pauli.Z, 2}},
	op.GateZ:   {axisImage{pauli.X, 2}, axisImage{pauli.Z, 0}},
	op.GateH:   {axisImage{pauli.Z, 0}, axisImage{pauli.X, 0}},
	op.GateS:   {axisImage{pauli.Y, 0}, axisImage{pauli.Z, 0}},
	op.GateSdg: {axisImage{pauli.Y, 2}, axisImage{pauli.Z, 0}},
	op.GateV:   {axisImage{pauli.X, 0}, axisImage{pauli.Y, 2}},
	op.GateVdg: {axisImage{pauli.X, 0}, axisImage{pauli.Y, 0}},
}

func axisRow(q unit.ID, img axisImage) Row {
	return pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: q, P: img.axis}), img.sign)
}

// stepFor builds the one-gate tableau step applyGate composes into the
// running Tableau: the gate's generator images on its own qubits, with
// every other qubit left to substituteRow's pass-through default.
func stepFor(g op.GateType, qubits []unit.ID) (Tableau, bool) {
	step := Tableau{X: map[unit.ID]Row{}, Z: map[unit.ID]Row{}}
	switch g {
	case op.GateX, op.GateY, op.GateZ, op.GateH, op.GateS, op.GateSdg, op.GateV, op.GateVdg:
		q := qubits[0]
		imgs := singleQubitStepImages[g]
		step.X[q] = axisRow(q, imgs.x)
		step.Z[q] = axisRow(q, imgs.z)
		return step, true
	case op.GateCX:
		c, t := qubits[0], qubits[1]
		step.X[c] = pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: c, P: pauli.X}, pauli.QubitPauli{Qubit: t, P: pauli.X}), pauli.QuarterTurn(0))
		step.Z[c] = pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: c, P: pauli.Z}), pauli.QuarterTurn(0))
		step.X[t] = pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: t, P: pauli.X}), pauli.QuarterTurn(0))
		step.Z[t] = pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: c, P: pauli.Z}, pauli.QubitPauli{Qubit: t, P: pauli.Z}), pauli.QuarterTurn(0))
		return step, true
	case op.GateCZ:
		a, b := qubits[0], qubits[1]
		step.X[a] = pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: a, P: pauli.X}, pauli.QubitPauli{Qubit: b, P: pauli.Z}), pauli.QuarterTurn(0))
		step.Z[a] = pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: a, P: pauli.Z}), pauli.QuarterTurn(0))
		step.X[b] = pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: a, P: pauli.Z}, pauli.QubitPauli{Qubit: b, P: pauli.X}), pauli.QuarterTurn(0))
		step.Z[b] = pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: b, P: pauli.Z}), pauli.QuarterTurn(0))
		return step, true
	case op.GateSWAP:
		a, b := qubits[0], qubits[1]
		step.X[a] = pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: b, P: pauli.X}), pauli.QuarterTurn(0))
		step.Z[a] = pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: b, P: pauli.Z}), pauli.QuarterTurn(0))
		step.X[b] = pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: a, P: pauli.X}), pauli.QuarterTurn(0))
		step.Z[b] = pauli.New(pauli.NewSparseMap(pauli.QubitPauli{Qubit: a, P: pauli.Z}), pauli.QuarterTurn(0))
		return step, true
	default:
		return Tableau{}, false
	}
}

// applyGate composes a new gate's conjugation into tab in place: every
// row in the tableau (not only the rows for the gate's own qubits — a
// row for an untouched qubit may already mention one of the gate's
// qubits from an earlier entangling gate) is re-expressed through the
// gate's one-step tableau via substituteRow.
func applyGate(tab Tableau, g op.GateType, qubits []unit.ID) bool {
	step, ok := stepFor(g, qubits)
	if !ok {
		return false
	}
	for q, row := range tab.X {
		tab.X[q] = substituteRow(row, step)
	}
	for q, row := range tab.Z {
		tab.Z[q] = substituteRow(row, step)
	}
	return true
}

// applyCY decomposes CY_{c,t} = S_t . CX_{c,t} . Sdg_t (an operator
// product, so Sdg is applied first and S last), avoiding a
// separately hand-derived two-qubit table for a gate spec §4.7 doesn't
// itself name as Clifford-supported but op.GateCY still exists for.
func applyCY(tab Tableau, control, target unit.ID) bool {
	ok1 := applyGate(tab, op.GateSdg, []unit.ID{target})
	ok2 := applyGate(tab, op.GateCX, []unit.ID{control, target})
	ok3 := applyGate(tab, op.GateS, []unit.ID{target})
	return ok1 && ok2 && ok3
}

// conjugateBoxThroughTableau re-expresses a PauliExpBox's tensor (fixed
// at construction time, in the frame of the qubits as originally
// declared) backward through the Clifford applied so far, per spec
// §4.7's "conjugate its tensor backward through the running Clifford".
// A sign the substitution picks up is folded into theta (exp(iθP) =
// exp(i(-θ)(-P))), since pauli.NoCoeff carries no phase of its own.
func conjugateBoxThroughTableau(t pauli.PauliTensor[pauli.SparseMap, pauli.NoCoeff], theta expr.Expr, tab Tableau) (pauli.PauliTensor[pauli.SparseMap, pauli.NoCoeff], expr.Expr) {
	lifted := Row{Map: t.Map, Coeff: pauli.QuarterTurn(0)}
	substituted := substituteRow(lifted, tab)
	newTheta := theta
	if substituted.Coeff == 2 {
		newTheta = expr.Neg(theta)
	}
	return pauli.PauliTensor[pauli.SparseMap, pauli.NoCoeff]{Map: substituted.Map, Coeff: pauli.NoCoeff{}}, newTheta
}
