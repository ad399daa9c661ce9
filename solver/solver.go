// Package solver implements an incremental Cassowary linear-constraint
// solver: variables and linear equality/inequality constraints over
// them, solved by a primal/dual simplex pair kept incrementally
// up to date as constraints and edit suggestions are added and removed.
//
// Internally every variable, slack, error, and dummy quantity is a
// Symbol indexing into a shared sparse tableau (internal/tableau); the
// public surface only ever deals in Symbol and ConstraintHandle values.
package solver

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gridwright/cassowary/internal/arena"
	"github.com/gridwright/cassowary/internal/tableau"
)

// Solver holds every variable, constraint, and tableau row of one
// constraint system. The zero Solver is not usable; construct with
// NewSolver.
type Solver struct {
	terms       *tableau.Tableau
	vars        *arena.Pool[varData]
	constraints *arena.Pool[constraintData]

	objective      Symbol
	infeasibleRows Symbol

	logger *slog.Logger
}

// NewSolver creates an empty constraint system with its objective row
// already initialized to zero.
func NewSolver(opts ...Option) *Solver {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	s := &Solver{
		terms:       tableau.New(o.pageSize, o.onGrow),
		vars:        arena.New[varData](o.pageSize, o.onGrow),
		constraints: arena.New[constraintData](o.pageSize, o.onGrow),
		logger:      o.logger,
	}

	s.objective = s.newSymbol(external)
	s.terms.InitRow(uint16(s.objective), 0)

	return s
}

func (s *Solver) getVarData(sym Symbol) *varData { return s.vars.Get(uint32(sym)) }

func (s *Solver) getConstraintData(h ConstraintHandle) *constraintData {
	return s.constraints.Get(uint32(h))
}

func (s *Solver) isExternal(sym Symbol) bool { return s.getVarData(sym).kind == external }
func (s *Solver) isSlack(sym Symbol) bool    { return s.getVarData(sym).kind == slack }
func (s *Solver) isError(sym Symbol) bool    { return s.getVarData(sym).kind == errorSymbol }
func (s *Solver) isDummy(sym Symbol) bool    { return s.getVarData(sym).kind == dummy }
func (s *Solver) isPivotable(sym Symbol) bool {
	return s.isSlack(sym) || s.isError(sym)
}

// newSymbol allocates a fresh symbol of the given kind and gives it an
// (initially empty) column in the tableau.
func (s *Solver) newSymbol(kind symbolType) Symbol {
	id := s.vars.Alloc(varData{kind: kind})
	if id > 0xFFFF {
		panic("solver: symbol space exhausted")
	}

	sym := Symbol(id)
	s.terms.NewSymbolColumn(uint16(sym))
	return sym
}

// freeSymbol releases a symbol that the tableau no longer references: it
// must have no row of its own and an empty column.
func (s *Solver) freeSymbol(sym Symbol) {
	if sym == 0 {
		return
	}
	if s.terms.HasRow(uint16(sym)) || !s.terms.ColumnEmpty(uint16(sym)) {
		panic("solver: freeSymbol on a symbol still referenced by the tableau")
	}

	s.terms.DeleteColumnHead(uint16(sym))
	s.vars.Free(uint32(sym))
}

// rowValue reads a basic symbol's current constant, or 0 if it is
// currently non-basic.
func (s *Solver) rowValue(sym Symbol) float64 { return s.terms.RowConstant(uint16(sym)) }

// CreateVariable allocates a new external variable with value 0.
func (s *Solver) CreateVariable() Symbol {
	return s.newSymbol(external)
}

// DeleteVariable removes v, first disabling any edit constraint it
// still carries. v must not be referenced by any other live constraint.
func (s *Solver) DeleteVariable(v Symbol) error {
	if v == 0 {
		return nil
	}

	cons := s.getVarData(v).constraint
	if cons != 0 {
		if err := s.RemoveConstraint(cons); err != nil {
			return err
		}
	}

	s.freeSymbol(v)
	return nil
}

// Value returns v's current solved value.
func (s *Solver) Value(v Symbol) float64 { return s.rowValue(v) }

// AddConstraint adds desc to the system, returning a handle for later
// removal. On ErrUnsatisfied or ErrUnbound the system is left exactly as
// it was before the call.
func (s *Solver) AddConstraint(desc ConstraintDescription) (ConstraintHandle, error) {
	cons := constraintData{strength: desc.Strength}
	row := s.makeRow(&desc, &cons)

	if err := s.tryAddRow(row, &cons); err != nil {
		s.removeErrors(&cons)
		s.freeSymbol(cons.marker)
		s.freeSymbol(cons.other)
		s.logger.Debug("constraint rejected", "error", err, "strength", desc.Strength)
		return 0, err
	}

	if err := s.optimize(s.objective); err != nil {
		return 0, err
	}

	handle := ConstraintHandle(s.constraints.Alloc(cons))
	if s.infeasibleRows != 0 {
		panic("solver: AddConstraint left rows marked infeasible")
	}
	return handle, nil
}

// RemoveConstraint removes a constraint previously returned by
// AddConstraint. Removing the zero handle is a no-op.
func (s *Solver) RemoveConstraint(cons ConstraintHandle) error {
	if cons == 0 {
		return nil
	}

	if err := s.removeVars(cons); err != nil {
		return err
	}

	s.constraints.Free(uint32(cons))
	return nil
}

// EnableEdit makes v suggestible: AddConstraint-equivalent to pinning
// v == 0 at the given strength, clamped to at most StrengthStrong (edit
// constraints are never required). The stored edit value starts at 0, so
// the first Suggest applies its full value as the delta.
func (s *Solver) EnableEdit(v Symbol, strength float64) error {
	if strength > StrengthStrong {
		strength = StrengthStrong
	}

	existing := s.getVarData(v).constraint
	if existing != 0 {
		if err := s.RemoveConstraint(existing); err != nil {
			return err
		}
	}

	cons, err := s.AddConstraint(ConstraintDescription{
		Strength: strength,
		Terms:    []Term{{Symbol: v, Multiplier: 1}},
		Relation: Equal,
	})
	if err != nil {
		return err
	}

	vd := s.getVarData(v)
	vd.constraint = cons
	vd.editValue = 0
	return nil
}

// DisableEdit stops v from being suggestible, removing its edit
// constraint. It is a no-op if v has no edit constraint.
func (s *Solver) DisableEdit(v Symbol) error {
	if v == 0 {
		return nil
	}

	vd := s.getVarData(v)
	cons := vd.constraint
	if cons == 0 {
		return nil
	}

	vd.constraint = 0
	vd.editValue = 0
	return s.RemoveConstraint(cons)
}

// HasEdit reports whether v currently has an edit constraint.
func (s *Solver) HasEdit(v Symbol) bool {
	if v == 0 {
		return false
	}
	return s.getVarData(v).constraint != 0
}

// Suggest requests a new value for v, enabling edit on it at
// StrengthMedium first if needed, then re-solves.
func (s *Solver) Suggest(v Symbol, value float64) error {
	return s.SuggestBatch([]Symbol{v}, []float64{value})
}

// SuggestBatch requests new values for several variables at once,
// applying every edit delta before running a single dual-simplex pass —
// cheaper than calling Suggest repeatedly when adjusting a group of
// variables together.
func (s *Solver) SuggestBatch(vars []Symbol, values []float64) error {
	if len(vars) != len(values) {
		panic("solver: SuggestBatch vars and values must be the same length")
	}

	for i, v := range vars {
		vd := s.getVarData(v)
		cons := vd.constraint
		if cons == 0 {
			if err := s.EnableEdit(v, StrengthMedium); err != nil {
				return err
			}
			vd = s.getVarData(v)
			cons = vd.constraint
		}

		delta := values[i] - vd.editValue
		vd.editValue = values[i]
		s.deltaEditConstant(delta, cons)
	}

	return s.dualOptimize()
}

// DumpRows writes a human-readable listing of every basic row currently
// in the tableau, objective first. Intended for debugging, not for
// parsing.
func (s *Solver) DumpRows(w io.Writer) error {
	var err error
	write := func(format string, args ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, args...)
	}

	dumpRow := func(label string, row Symbol) {
		write("%s: constant=%g\n", label, s.rowValue(row))
		for _, term := range s.terms.RowTerms(uint16(row)) {
			write("  + %g * s%d\n", term.Multiplier, term.Col)
		}
	}

	dumpRow("objective", s.objective)

	s.vars.Range(func(id uint32, vd *varData) bool {
		sym := Symbol(id)
		if sym == s.objective || !s.terms.HasRow(uint16(sym)) {
			return true
		}
		dumpRow(fmt.Sprintf("s%d [%s]", sym, vd.kind), sym)
		return true
	})

	return err
}
