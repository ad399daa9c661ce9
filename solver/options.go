package solver

import (
	"log/slog"

	"github.com/gridwright/cassowary/internal/tableau"
)

const defaultPageSize = 4096

type options struct {
	pageSize int
	onGrow   tableau.GrowthObserver
	logger   *slog.Logger
}

func defaultOptions() *options {
	return &options{
		pageSize: defaultPageSize,
		logger:   slog.Default(),
	}
}

// Option configures a Solver built by NewSolver.
type Option func(*options)

// WithPageSize sets the initial capacity reserved for variables,
// constraints, and tableau terms. n must be a positive power of two.
func WithPageSize(n int) Option {
	if n <= 0 || n&(n-1) != 0 {
		panic("solver: page size must be a positive power of two")
	}
	return func(o *options) { o.pageSize = n }
}

// WithGrowthObserver registers a callback invoked whenever the solver's
// backing storage (variables, constraints, or tableau terms) doubles in
// capacity.
func WithGrowthObserver(fn tableau.GrowthObserver) Option {
	return func(o *options) { o.onGrow = fn }
}

// WithLogger overrides the slog.Logger the Solver reports rejected
// constraints to (at Debug level). Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("solver: logger must not be nil")
	}
	return func(o *options) { o.logger = l }
}
