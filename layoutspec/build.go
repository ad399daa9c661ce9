package layoutspec

import (
	"fmt"

	"github.com/gridwright/cassowary/solver"
)

// System is a Document bound to a live solver.Solver: the variable-name to
// solver.Symbol mapping and the handles of every constraint AddConstraint
// returned, in declaration order.
type System struct {
	Solver      *solver.Solver
	Variables   map[string]solver.Symbol
	Constraints []solver.ConstraintHandle
}

// Build validates doc and applies it to a fresh solver.Solver: every
// declared variable is created, every constraint is added in order, and
// every suggestion is applied as a single batch after all constraints are
// in place. On error the returned System is nil; a validation error is
// reported before any solver is constructed, and a solver error discards
// the partially built solver.
func Build(doc *Document, opts ...solver.Option) (*System, error) {
	if err := validate(doc); err != nil {
		return nil, err
	}

	s := solver.NewSolver(opts...)
	sys := &System{
		Solver:    s,
		Variables: make(map[string]solver.Symbol, len(doc.Variables)),
	}

	for _, name := range doc.Variables {
		sys.Variables[name] = s.CreateVariable()
	}

	for i, cs := range doc.Constraints {
		desc, err := sys.describe(cs)
		if err != nil {
			return nil, fmt.Errorf("layoutspec: constraint %d: %w", i, err)
		}
		handle, err := s.AddConstraint(desc)
		if err != nil {
			return nil, fmt.Errorf("layoutspec: constraint %d: %w", i, err)
		}
		sys.Constraints = append(sys.Constraints, handle)
	}

	if len(doc.Suggestions) > 0 {
		vars := make([]solver.Symbol, len(doc.Suggestions))
		values := make([]float64, len(doc.Suggestions))
		for i, sg := range doc.Suggestions {
			sym, ok := sys.Variables[sg.Variable]
			if !ok {
				return nil, fmt.Errorf("layoutspec: suggestion %d: %w: %q", i, ErrUnknownVariable, sg.Variable)
			}
			if sg.Strength != "" {
				strength, err := ParseStrength(sg.Strength)
				if err != nil {
					return nil, fmt.Errorf("layoutspec: suggestion %d: %w", i, err)
				}
				if err := s.EnableEdit(sym, strength); err != nil {
					return nil, fmt.Errorf("layoutspec: suggestion %d: %w", i, err)
				}
			}
			vars[i] = sym
			values[i] = sg.Value
		}
		if err := s.SuggestBatch(vars, values); err != nil {
			return nil, fmt.Errorf("layoutspec: suggestions: %w", err)
		}
	}

	return sys, nil
}

func (sys *System) describe(cs ConstraintSpec) (solver.ConstraintDescription, error) {
	if len(cs.Terms) == 0 {
		return solver.ConstraintDescription{}, ErrEmptyTerms
	}

	strength, err := ParseStrength(cs.Strength)
	if err != nil {
		return solver.ConstraintDescription{}, err
	}

	relation, err := ParseRelation(cs.Relation)
	if err != nil {
		return solver.ConstraintDescription{}, err
	}

	terms := make([]solver.Term, 0, len(cs.Terms))
	for _, t := range cs.Terms {
		sym, ok := sys.Variables[t.Variable]
		if !ok {
			return solver.ConstraintDescription{}, fmt.Errorf("%w: %q", ErrUnknownVariable, t.Variable)
		}
		terms = append(terms, solver.Term{Symbol: sym, Multiplier: t.Multiplier})
	}

	return solver.ConstraintDescription{
		Strength: strength,
		Terms:    terms,
		Relation: relation,
		Constant: cs.Constant,
	}, nil
}

// validate checks variable declarations are unique and every constraint's
// and suggestion's strength/relation/variable references are well formed,
// before any solver state is built.
func validate(doc *Document) error {
	seen := make(map[string]struct{}, len(doc.Variables))
	for _, name := range doc.Variables {
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateVariable, name)
		}
		seen[name] = struct{}{}
	}

	known := func(name string) error {
		if _, ok := seen[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownVariable, name)
		}
		return nil
	}

	for i, cs := range doc.Constraints {
		if len(cs.Terms) == 0 {
			return fmt.Errorf("layoutspec: constraint %d: %w", i, ErrEmptyTerms)
		}
		if _, err := ParseStrength(cs.Strength); err != nil {
			return fmt.Errorf("layoutspec: constraint %d: %w", i, err)
		}
		if _, err := ParseRelation(cs.Relation); err != nil {
			return fmt.Errorf("layoutspec: constraint %d: %w", i, err)
		}
		for _, t := range cs.Terms {
			if err := known(t.Variable); err != nil {
				return fmt.Errorf("layoutspec: constraint %d: %w", i, err)
			}
		}
	}

	for i, sg := range doc.Suggestions {
		if err := known(sg.Variable); err != nil {
			return fmt.Errorf("layoutspec: suggestion %d: %w", i, err)
		}
		if sg.Strength != "" {
			if _, err := ParseStrength(sg.Strength); err != nil {
				return fmt.Errorf("layoutspec: suggestion %d: %w", i, err)
			}
		}
	}

	return nil
}
