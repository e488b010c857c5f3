package r1cs

import "errors"

// Error kinds for the synthesis core, per the error taxonomy: every
// failure a circuit or gadget can observe is one of these, possibly
// wrapped with fmt.Errorf("%w", ...) for call-site context.
var (
	// ErrAssignmentMissing is returned when a value thunk fails, or when
	// an arena query needs a concrete value that proving mode has not
	// (yet) supplied.
	ErrAssignmentMissing = errors.New("r1cs: assignment missing")

	// ErrDivisionByZero is returned when Inverse (or a birational map
	// built on it) is evaluated against a zero value at witness time.
	ErrDivisionByZero = errors.New("r1cs: division by zero")

	// ErrMissingCS is returned when an operation requiring a live arena
	// is invoked through the None handle.
	ErrMissingCS = errors.New("r1cs: no constraint system bound")

	// ErrUnsatisfiable marks a structural error, e.g. a fixed-width
	// gadget given the wrong number of bits. It is distinct from a
	// constraint simply evaluating false, which is reported through
	// IsSatisfied/WhichIsUnsatisfied instead of an error.
	ErrUnsatisfiable = errors.New("r1cs: unsatisfiable")

	// ErrNotImplemented is returned by OutlineLCs, which spec leaves
	// optional; callers that invoke it should expect this, not a panic.
	ErrNotImplemented = errors.New("r1cs: not implemented")

	// ErrAlreadyLeft names a second Leave of the same namespace. Nothing
	// in this package returns it: Namespace.Leave is idempotent, reports
	// nothing, and treats a repeated call as a no-op.
	ErrAlreadyLeft = errors.New("r1cs: namespace already left")

	// errConstructMatricesDisabled is returned by ToMatrices when the
	// current mode does not construct matrices. It is unexported because
	// callers should check System.ShouldConstructMatrices() up front
	// rather than branch on this specific error.
	errConstructMatricesDisabled = errors.New("r1cs: ToMatrices called but mode does not construct matrices")
)
