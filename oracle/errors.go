package oracle

import "errors"

var (
	// ErrUnsupportedOperation is returned for any op.Operation this
	// package has no unitary/statevector interpretation for (anything
	// that isn't a PrimitiveGate or Barrier: measurement, reset,
	// conditionals, opaque boxes). The oracle exists to check synthesis
	// and rewrite output, which never emit those.
	ErrUnsupportedOperation = errors.New("oracle: operation has no unitary/statevector interpretation")

	// ErrUnboundSymbol is returned when a gate parameter's free symbol
	// has no entry in the caller-supplied binding environment.
	ErrUnboundSymbol = errors.New("oracle: gate parameter has a free symbol with no bound value")
)
