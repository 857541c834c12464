package circuit

import "errors"

// Error values for circuit API misuse (spec §7's CircuitInvalidity
// family, split per concrete cause the way the teacher splits dag
// errors in qc/dag/errors.go).
var (
	ErrDuplicateRegister = errors.New("circuit: register already exists")
	ErrUnknownUnit       = errors.New("circuit: unit not present in boundary")
	ErrUnitAlreadyExists = errors.New("circuit: unit already present")
	ErrUnknownVertex     = errors.New("circuit: unknown vertex")
	ErrInvalidPort       = errors.New("circuit: port index out of range")
	ErrInvalidEdgeType   = errors.New("circuit: edge type incompatible with port signature")
	ErrPortSaturated     = errors.New("circuit: port already has a linear edge")
	ErrInvalidArguments  = errors.New("circuit: operation signature does not align with arguments")
	ErrUnitMismatch      = errors.New("circuit: append map does not cover exactly the source circuit's units")
	ErrInvalidCondition  = errors.New("circuit: conditional_circuit not valid over implicit wireswaps or writes to condition bits")
	ErrCyclic            = errors.New("circuit: linear-edge cycle detected")
)
