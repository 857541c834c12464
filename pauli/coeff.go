package pauli

import (
	"fmt"
	"math"

	"github.com/kegliz/qcompile/expr"
)

// Coeff is the self-referential constraint every PauliTensor coefficient
// domain must satisfy (spec §4.6).
type Coeff[Self any] interface {
	// Multiply combines this coefficient with another of the same
	// domain (the a.Coeff / b.Coeff part of multiply_coeffs).
	Multiply(other Self) Self
	// ApplyQuarterTurn folds an accumulated quarter-turn phase (from the
	// Pauli multiplication table) into this coefficient.
	ApplyQuarterTurn(q QuarterTurn) Self
	// Transpose multiplies the coefficient by (-1)^yCount, per spec
	// §4.6's transpose contract.
	Transpose(yCount int) Self
	Compare(other Self) int
	IsEqual(other Self) bool
	String() string
}

// ---------------------------------------------------------------------
// NoCoeff: the "none" coefficient domain (original tket's no_coeff_t).
// Equality and multiplication are up to an untracked global phase.

type NoCoeff struct{}

func (NoCoeff) Multiply(NoCoeff) NoCoeff              { return NoCoeff{} }
func (NoCoeff) ApplyQuarterTurn(QuarterTurn) NoCoeff   { return NoCoeff{} }
func (NoCoeff) Transpose(int) NoCoeff                  { return NoCoeff{} }
func (NoCoeff) Compare(NoCoeff) int                    { return 0 }
func (NoCoeff) IsEqual(NoCoeff) bool                   { return true }
func (NoCoeff) String() string                         { return "" }

// ---------------------------------------------------------------------
// QuarterTurn: integer mod 4 representing a phase from {1, i, -1, -i}.

// QuarterTurn is the mod-4 integer coefficient domain (spec glossary).
type QuarterTurn int

func normQ(q QuarterTurn) QuarterTurn {
	q %= 4
	if q < 0 {
		q += 4
	}
	return q
}

func (q QuarterTurn) Multiply(o QuarterTurn) QuarterTurn { return normQ(q + o) }
func (q QuarterTurn) ApplyQuarterTurn(k QuarterTurn) QuarterTurn { return normQ(q + k) }
func (q QuarterTurn) Transpose(yCount int) QuarterTurn {
	if yCount%2 != 0 {
		return normQ(q + 2)
	}
	return normQ(q)
}
func (q QuarterTurn) Compare(o QuarterTurn) int { return int(normQ(q)) - int(normQ(o)) }
func (q QuarterTurn) IsEqual(o QuarterTurn) bool { return normQ(q) == normQ(o) }
func (q QuarterTurn) String() string {
	return [...]string{"1", "i", "-1", "-i"}[normQ(q)]
}

func quarterTurnToComplex(q QuarterTurn) complex128 {
	switch normQ(q) {
	case 0:
		return complex(1, 0)
	case 1:
		return complex(0, 1)
	case 2:
		return complex(-1, 0)
	default:
		return complex(0, -1)
	}
}

// ---------------------------------------------------------------------
// Complex: arbitrary complex scalar coefficient.

// Complex is the complex-scalar coefficient domain.
type Complex complex128

func (c Complex) Multiply(o Complex) Complex            { return c * o }
func (c Complex) ApplyQuarterTurn(k QuarterTurn) Complex { return c * Complex(quarterTurnToComplex(k)) }
func (c Complex) Transpose(yCount int) Complex {
	if yCount%2 != 0 {
		return -c
	}
	return c
}

// Compare preserves the source order (spec §9 Open Question): real part
// first, then imaginary, rather than the more conventional (norm, arg).
func (c Complex) Compare(o Complex) int {
	if real(c) != real(o) {
		if real(c) < real(o) {
			return -1
		}
		return 1
	}
	if imag(c) != imag(o) {
		if imag(c) < imag(o) {
			return -1
		}
		return 1
	}
	return 0
}

func (c Complex) IsEqual(o Complex) bool { return c == o }
func (c Complex) String() string {
	return fmt.Sprintf("(%g%+gi)", real(c), imag(c))
}

// ---------------------------------------------------------------------
// Symbolic: an expr.Expr-valued coefficient.

// Symbolic is the symbolic-expression coefficient domain.
type Symbolic struct{ E expr.Expr }

func (s Symbolic) Multiply(o Symbolic) Symbolic { return Symbolic{expr.Mul(s.E, o.E)} }
func (s Symbolic) ApplyQuarterTurn(k QuarterTurn) Symbolic {
	v := quarterTurnToComplex(k)
	return Symbolic{expr.Mul(s.E, expr.Const(v))}
}
func (s Symbolic) Transpose(yCount int) Symbolic {
	if yCount%2 != 0 {
		return Symbolic{expr.Neg(s.E)}
	}
	return s
}

// Compare falls back to comparing the rendered string form when the
// expressions aren't both numerically closed; this is a total order but
// not a numerically meaningful one for unevaluated symbols.
func (s Symbolic) Compare(o Symbolic) int {
	av, aok := s.E.Eval(nil)
	bv, bok := o.E.Eval(nil)
	if aok && bok {
		return Complex(av).Compare(Complex(bv))
	}
	sa, sb := s.E.String(), o.E.String()
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}

func (s Symbolic) IsEqual(o Symbolic) bool { return s.E.IsEqual(o.E) }
func (s Symbolic) String() string          { return s.E.String() }

// ---------------------------------------------------------------------
// Casts between coefficient domains (spec §4.6's cast_coeff contract).
// Lossless conversions (unit -> anything, and any domain -> NoCoeff) are
// always permitted; lossy conversions fail with a typed error when the
// source value isn't representable in the target domain.

// NonPowerOfI is returned casting a Complex/Symbolic value to QuarterTurn
// when it is not within epsilon of 1, i, -1 or -i.
type NonPowerOfI struct{ Value complex128 }

func (e NonPowerOfI) Error() string {
	return fmt.Sprintf("pauli: %v is not a power of i", e.Value)
}

// UnevaluatedSymbol is returned casting a Symbolic value to Complex (or
// onward to QuarterTurn) when it still has free symbols.
type UnevaluatedSymbol struct{ Expr string }

func (e UnevaluatedSymbol) Error() string {
	return fmt.Sprintf("pauli: expression %q has unbound free symbols", e.Expr)
}

const castEpsilon = 1e-9

func CastNoCoeffToQuarterTurn(NoCoeff) QuarterTurn { return 0 }
func CastNoCoeffToComplex(NoCoeff) Complex         { return 1 }
func CastNoCoeffToSymbolic(NoCoeff) Symbolic       { return Symbolic{expr.Real(1)} }

func CastQuarterTurnToNoCoeff(QuarterTurn) NoCoeff        { return NoCoeff{} }
func CastQuarterTurnToComplex(q QuarterTurn) Complex      { return Complex(quarterTurnToComplex(q)) }
func CastQuarterTurnToSymbolic(q QuarterTurn) Symbolic {
	return Symbolic{expr.Const(quarterTurnToComplex(q))}
}

func CastComplexToNoCoeff(Complex) NoCoeff       { return NoCoeff{} }
func CastComplexToSymbolic(c Complex) Symbolic   { return Symbolic{expr.Const(complex128(c))} }

// CastComplexToQuarterTurn fails with NonPowerOfI unless c is within
// castEpsilon of one of {1, i, -1, -i}.
func CastComplexToQuarterTurn(c Complex) (QuarterTurn, error) {
	for k := QuarterTurn(0); k < 4; k++ {
		if cmplxClose(complex128(c), quarterTurnToComplex(k)) {
			return k, nil
		}
	}
	return 0, NonPowerOfI{Value: complex128(c)}
}

func CastSymbolicToNoCoeff(Symbolic) NoCoeff { return NoCoeff{} }

// CastSymbolicToComplex fails with UnevaluatedSymbol if the expression
// has free symbols remaining.
func CastSymbolicToComplex(s Symbolic) (Complex, error) {
	v, ok := s.E.Eval(nil)
	if !ok {
		return 0, UnevaluatedSymbol{Expr: s.E.String()}
	}
	return Complex(v), nil
}

// CastSymbolicToQuarterTurn chains through Complex.
func CastSymbolicToQuarterTurn(s Symbolic) (QuarterTurn, error) {
	c, err := CastSymbolicToComplex(s)
	if err != nil {
		return 0, err
	}
	return CastComplexToQuarterTurn(c)
}

func cmplxClose(a, b complex128) bool {
	d := a - b
	return math.Hypot(real(d), imag(d)) < castEpsilon
}
