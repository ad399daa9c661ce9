// Package cassowary is an incremental linear constraint solver implementing
// the Cassowary algorithm: weighted linear equality/inequality constraints
// over real-valued variables, solved for an assignment that satisfies every
// required constraint and best-effort optimizes the rest, with cheap
// re-suggestion of edit-variable values without a full re-solve.
//
// The canonical use is two-way UI layout, but the solver has no notion of
// boxes or views — it only knows about symbols, constraints and a sparse
// tableau.
//
// Organized as:
//
//	internal/arena/     — free-list-backed sparse slot pool (variables, constraints, terms)
//	internal/hashindex/ — open-addressing hash table with backshift deletion
//	internal/tableau/   — sparse DOK matrix with row/column linked lists
//	solver/             — symbol classification, primal/dual simplex, public Solver API
//	layoutspec/         — YAML constraint-file schema consumed by the CLI
//	cmd/cassowary-demo/ — solve/suggest CLI driver
//
// go get github.com/gridwright/cassowary/solver
package cassowary
