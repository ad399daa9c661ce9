package solver

import (
	"math"

	"github.com/gridwright/cassowary/internal/tableau"
)

// markInfeasible enqueues row onto the dual-simplex worklist if its
// constant has gone negative and it is not already queued. The queue is
// threaded through each row head's otherwise-unused column-chain link
// (tableau.Tableau.QueueNext/SetQueueNext): the last row in the queue
// points to itself rather than to 0, so dual_optimize can tell "one row
// left" apart from "empty queue".
func (s *Solver) markInfeasible(row Symbol) {
	if s.terms.RowConstant(uint16(row)) >= 0 || s.terms.QueueNext(uint16(row)) != 0 {
		return
	}

	if s.infeasibleRows != 0 {
		s.terms.SetQueueNext(uint16(row), uint16(s.infeasibleRows))
	} else {
		s.terms.SetQueueNext(uint16(row), uint16(row))
	}
	s.infeasibleRows = row
}

// pivot makes entry basic in place of exit within row: row's expression
// for entry is solved and substituted into every other row that
// currently mentions entry.
func (s *Solver) pivot(row, entry, exit Symbol) {
	coeff, ok := s.terms.Coefficient(uint16(row), uint16(entry))
	if !ok || tableau.NearZero(coeff) {
		panic("solver: pivot on a missing or zero coefficient")
	}
	reciprocal := 1 / coeff

	s.terms.DeleteTerm(uint16(row), uint16(entry))
	s.terms.AddRow(uint16(entry), uint16(row), -reciprocal)
	s.terms.FreeRow(uint16(row))
	if row != exit {
		s.freeSymbol(row)
	}

	if exit != 0 {
		s.terms.AddTerm(uint16(entry), uint16(exit), reciprocal)
	}

	for _, term := range s.terms.ColumnRows(uint16(entry)) {
		itRow := Symbol(term.Row)
		mult := term.Multiplier

		s.terms.DeleteRowLink(term.Row, uint16(entry))
		s.terms.AddRow(term.Row, uint16(entry), mult)

		if !s.isExternal(itRow) {
			s.markInfeasible(itRow)
		}
	}
	s.terms.ResetColumnHead(uint16(entry))
}

// optimize runs the primal simplex on objective until no entering
// column improves it, or reports ErrInternal if the algorithm's own
// invariant (a leaving row always exists once a column has been chosen
// to enter) is ever violated.
func (s *Solver) optimize(objective Symbol) error {
	for {
		var enter Symbol
		for _, term := range s.terms.RowTerms(uint16(objective)) {
			if !s.isDummy(Symbol(term.Col)) && term.Multiplier < 0 {
				enter = Symbol(term.Col)
				break
			}
		}
		if enter == 0 {
			return nil
		}

		var exit Symbol
		minRatio := math.MaxFloat64
		for _, term := range s.terms.ColumnRows(uint16(enter)) {
			itRow := Symbol(term.Row)
			mult := term.Multiplier
			if !s.isPivotable(itRow) || itRow == objective || mult > 0 {
				continue
			}

			r := -s.rowValue(itRow) / mult
			if r < minRatio || (tableau.Approx(r, minRatio) && itRow < exit) {
				minRatio = r
				exit = itRow
			}
		}
		if exit == 0 {
			return ErrInternal
		}

		s.pivot(exit, enter, exit)
	}
}

// makeRow builds a fresh slack row for desc, attaching marker/error
// symbols per its relation and strength, and returns the row symbol.
func (s *Solver) makeRow(desc *ConstraintDescription, cons *constraintData) Symbol {
	row := s.newSymbol(slack)
	s.terms.InitRow(uint16(row), -desc.Constant)

	for _, term := range desc.Terms {
		s.terms.MergeRow(uint16(row), uint16(term.Symbol), term.Multiplier)
	}

	switch desc.Relation {
	case LessEqual, GreaterEqual:
		coeff := 1.0
		if desc.Relation == GreaterEqual {
			coeff = -1.0
		}
		cons.marker = s.newSymbol(slack)
		s.terms.AddTerm(uint16(row), uint16(cons.marker), coeff)
		if cons.strength < StrengthRequired {
			cons.other = s.newSymbol(errorSymbol)
			s.terms.AddTerm(uint16(row), uint16(cons.other), -coeff)
			s.terms.AddTerm(uint16(s.objective), uint16(cons.other), cons.strength)
		}

	default: // Equal
		if cons.strength >= StrengthRequired {
			cons.marker = s.newSymbol(dummy)
			s.terms.AddTerm(uint16(row), uint16(cons.marker), 1)
		} else {
			cons.marker = s.newSymbol(errorSymbol)
			cons.other = s.newSymbol(errorSymbol)
			s.terms.AddTerm(uint16(row), uint16(cons.marker), -1)
			s.terms.AddTerm(uint16(row), uint16(cons.other), 1)
			s.terms.AddTerm(uint16(s.objective), uint16(cons.marker), cons.strength)
			s.terms.AddTerm(uint16(s.objective), uint16(cons.other), cons.strength)
		}
	}

	if s.rowValue(row) < 0 {
		s.terms.MultiplyRow(uint16(row), -1)
	}
	return row
}

// removeErrors strips a removed constraint's error contribution back
// out of the objective, zeroing the objective's constant if doing so
// left it with no other terms.
func (s *Solver) removeErrors(cons *constraintData) {
	if cons.marker != 0 && s.isError(cons.marker) {
		s.terms.MergeRow(uint16(s.objective), uint16(cons.marker), -cons.strength)
	}
	if cons.other != 0 && s.isError(cons.other) {
		s.terms.MergeRow(uint16(s.objective), uint16(cons.other), -cons.strength)
	}
	if s.terms.IsConstantRow(uint16(s.objective)) {
		s.terms.AddTerm(uint16(s.objective), 0, -s.terms.RowConstant(uint16(s.objective)))
	}
}

// getLeavingRow picks which basic row should give up marker's column,
// preferring (in order) a row whose ratio test selects it over a
// negative coefficient, then over a positive one, then falling back to
// any external row that happens to reference marker.
func (s *Solver) getLeavingRow(marker Symbol) Symbol {
	var first, second, third Symbol
	r1, r2 := math.MaxFloat64, math.MaxFloat64

	for _, term := range s.terms.ColumnRows(uint16(marker)) {
		itRow := Symbol(term.Row)
		mult := term.Multiplier

		switch {
		case s.isExternal(itRow):
			third = itRow
		case mult < 0:
			if r := -s.rowValue(itRow) / mult; r < r1 {
				r1, first = r, itRow
			}
		default:
			if r := s.rowValue(itRow) / mult; r < r2 {
				r2, second = r, itRow
			}
		}
	}

	switch {
	case first != 0:
		return first
	case second != 0:
		return second
	default:
		return third
	}
}

// removeVars pivots a removed constraint's marker out of the basis if
// necessary, frees its marker and error symbols, and re-optimizes.
func (s *Solver) removeVars(cons ConstraintHandle) error {
	if cons == 0 {
		return nil
	}

	cd := s.getConstraintData(cons)
	marker := cd.marker
	s.removeErrors(cd)

	if !s.terms.HasRow(uint16(marker)) {
		exit := s.getLeavingRow(marker)
		if exit == 0 {
			return ErrInternal
		}
		s.pivot(exit, marker, exit)
	}

	s.terms.FreeRow(uint16(marker))
	s.freeSymbol(cd.marker)
	s.freeSymbol(cd.other)

	return s.optimize(s.objective)
}

// addWithArtificial runs the one-shot artificial-variable bootstrap used
// when no existing term of row can serve as pivot subject: it adds an
// artificial slack equal to row, optimizes row to drive it to zero, and
// then removes the artificial variable, pivoting it out of the basis
// first if it is still basic with a non-trivial row.
func (s *Solver) addWithArtificial(row Symbol) error {
	a := s.newSymbol(slack)
	s.terms.AddRow(uint16(a), uint16(row), 1)

	if err := s.optimize(row); err != nil {
		return err
	}

	var result error
	if !tableau.NearZero(s.rowValue(row)) {
		result = ErrUnbound
	}
	s.terms.FreeRow(uint16(row))
	s.freeSymbol(row)

	if s.terms.HasRow(uint16(a)) {
		if s.terms.IsConstantRow(uint16(a)) {
			s.terms.FreeRow(uint16(a))
			s.freeSymbol(a)
			return result
		}

		var entry Symbol
		for _, term := range s.terms.RowTerms(uint16(a)) {
			if s.isPivotable(Symbol(term.Col)) {
				entry = Symbol(term.Col)
				break
			}
		}
		if entry == 0 {
			s.terms.FreeRow(uint16(a))
			s.freeSymbol(a)
			return ErrUnbound
		}
		s.pivot(a, entry, 0)
	}

	for _, term := range s.terms.ColumnRows(uint16(a)) {
		s.terms.DeleteRowLink(term.Row, uint16(a))
	}
	s.terms.ResetColumnHead(uint16(a))
	s.freeSymbol(a)

	return result
}

// chooseSubject picks a column of row suitable to become basic without
// an artificial variable: an external variable if row has one, else a
// pivotable marker/error symbol with a negative coefficient. If neither
// exists, allDummy reports whether every term of row is a dummy symbol
// (the condition under which try_addrow can still avoid an artificial
// variable entirely).
func (s *Solver) chooseSubject(row Symbol, cons *constraintData) (subject Symbol, allDummy bool) {
	allDummy = true
	for _, term := range s.terms.RowTerms(uint16(row)) {
		key := Symbol(term.Col)
		if s.isExternal(key) {
			return key, false
		}
		allDummy = allDummy && s.isDummy(key)
	}

	if cons.marker != 0 && s.isPivotable(cons.marker) {
		if mult, ok := s.terms.Coefficient(uint16(row), uint16(cons.marker)); ok && mult < 0 {
			return cons.marker, false
		}
	}
	if cons.other != 0 && s.isPivotable(cons.other) {
		if mult, ok := s.terms.Coefficient(uint16(row), uint16(cons.other)); ok && mult < 0 {
			return cons.other, false
		}
	}

	return 0, allDummy
}

// tryAddRow admits row into the tableau: pivoting it in directly when a
// subject column is available, falling back to addWithArtificial
// otherwise, or rejecting it with ErrUnsatisfied when it is a trivially
// contradictory required constraint.
func (s *Solver) tryAddRow(row Symbol, cons *constraintData) error {
	subject, allDummy := s.chooseSubject(row, cons)

	if subject == 0 && allDummy {
		if tableau.NearZero(s.rowValue(row)) {
			subject = cons.marker
		} else {
			s.terms.FreeRow(uint16(row))
			s.freeSymbol(row)
			return ErrUnsatisfied
		}
	}

	if subject == 0 {
		return s.addWithArtificial(row)
	}

	s.pivot(row, subject, 0)
	return nil
}

// deltaEditConstant applies a change in an edit variable's suggested
// value to the constraint's marker/other symbols (or, if neither is
// currently basic, to every row that references the marker), queuing
// any row whose constant goes negative for dual_optimize to repair.
func (s *Solver) deltaEditConstant(delta float64, consID ConstraintHandle) {
	cons := s.getConstraintData(consID)

	if s.terms.HasRow(uint16(cons.marker)) {
		s.terms.AddTerm(uint16(cons.marker), 0, -delta)
		s.markInfeasible(cons.marker)
		return
	}

	if cons.other != 0 && s.terms.HasRow(uint16(cons.other)) {
		s.terms.AddTerm(uint16(cons.other), 0, delta)
		s.markInfeasible(cons.other)
		return
	}

	for _, term := range s.terms.ColumnRows(uint16(cons.marker)) {
		itRow := Symbol(term.Row)
		s.terms.AddTerm(uint16(itRow), 0, term.Multiplier*delta)
		if !s.isExternal(itRow) {
			s.markInfeasible(itRow)
		}
	}
}

// dualOptimize repairs every row queued by markInfeasible: each
// negative-constant row picks the cheapest entering column (by
// objective-ratio) and pivots it back to feasibility.
func (s *Solver) dualOptimize() error {
	for s.infeasibleRows != 0 {
		row := s.infeasibleRows
		next := s.terms.QueueNext(uint16(row))
		if next != uint16(row) {
			s.infeasibleRows = Symbol(next)
		} else {
			s.infeasibleRows = 0
		}
		s.terms.SetQueueNext(uint16(row), 0)

		constant := s.terms.RowConstant(uint16(row))
		if tableau.NearZero(constant) || constant >= 0 {
			continue
		}

		var enter Symbol
		minRatio := math.MaxFloat64
		for _, term := range s.terms.RowTerms(uint16(row)) {
			cur := Symbol(term.Col)
			if s.isDummy(cur) || term.Multiplier <= 0 {
				continue
			}

			r := 0.0
			if objMult, ok := s.terms.Coefficient(uint16(s.objective), uint16(cur)); ok {
				r = objMult / term.Multiplier
			}
			if minRatio > r {
				minRatio, enter = r, cur
			}
		}
		if enter == 0 {
			return ErrInternal
		}

		s.pivot(row, enter, row)
	}
	return nil
}
