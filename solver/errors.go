package solver

import "errors"

var (
	// ErrUnsatisfied is returned by AddConstraint when a constraint
	// conflicts with a required constraint already in the system.
	ErrUnsatisfied = errors.New("solver: constraint unsatisfiable against required constraints")

	// ErrUnbound is returned by AddConstraint when a constraint leaves
	// the system unbounded.
	ErrUnbound = errors.New("solver: constraint system is unbounded")

	// ErrInternal signals a violated solver invariant — the simplex
	// engine reached a state its own algorithm guarantees should not
	// occur.
	ErrInternal = errors.New("solver: internal invariant violated")
)
