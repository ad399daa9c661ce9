// Package layoutspec defines a YAML document schema for declaring a
// Cassowary constraint system — variables, constraints, and initial edit
// suggestions — and a loader that turns a parsed document into
// solver.ConstraintDescription values and Suggest calls against a live
// solver.Solver.
//
// A document has three sections:
//
//	variables:
//	  - left
//	  - width
//	  - right
//	constraints:
//	  - strength: required
//	    terms:
//	      - {variable: right, multiplier: 1}
//	      - {variable: left, multiplier: -1}
//	      - {variable: width, multiplier: -1}
//	    relation: "=="
//	    constant: 0
//	  - strength: weak
//	    terms: [{variable: width, multiplier: 1}]
//	    relation: "=="
//	    constant: 100
//	suggestions:
//	  - variable: left
//	    value: 0
//
// Every variable referenced by a constraint or suggestion must be declared
// in variables. Strength accepts either a named level (required, strong,
// medium, weak) or a bare number, matching solver's float64 strengths.
// Terms are a list rather than a map so a document's declaration order is
// preserved into the solver's row-construction order — the simplex breaks
// ties between candidate subjects by the order terms were added, so two
// loads of the same file must produce the same term order.
package layoutspec

// Document is the top-level shape of a layout file.
type Document struct {
	Variables   []string         `yaml:"variables"`
	Constraints []ConstraintSpec `yaml:"constraints"`
	Suggestions []SuggestionSpec `yaml:"suggestions"`
}

// ConstraintSpec is one constraint entry: sum(Multiplier*Variable over
// Terms) Relation Constant, weighted by Strength.
type ConstraintSpec struct {
	Strength string     `yaml:"strength"`
	Terms    []TermSpec `yaml:"terms"`
	Relation string     `yaml:"relation"`
	Constant float64    `yaml:"constant"`
}

// TermSpec is one variable/coefficient pair of a constraint's left-hand side.
type TermSpec struct {
	Variable   string  `yaml:"variable"`
	Multiplier float64 `yaml:"multiplier"`
}

// SuggestionSpec requests an initial value for an edit variable.
type SuggestionSpec struct {
	Variable string  `yaml:"variable"`
	Value    float64 `yaml:"value"`
	Strength string  `yaml:"strength"`
}
