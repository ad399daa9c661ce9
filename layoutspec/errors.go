package layoutspec

import "errors"

var (
	// ErrUnknownVariable is returned when a constraint or suggestion
	// references a variable name not present in the document's variables
	// list.
	ErrUnknownVariable = errors.New("layoutspec: unknown variable")

	// ErrUnknownStrength is returned when a constraint or suggestion names
	// a strength that is neither a recognized level nor a parseable
	// number.
	ErrUnknownStrength = errors.New("layoutspec: unknown strength")

	// ErrUnknownRelation is returned when a constraint names a relation
	// operator other than "<=", "==" (or its alias "="), or ">=".
	ErrUnknownRelation = errors.New("layoutspec: unknown relation")

	// ErrEmptyTerms is returned for a constraint with no terms.
	ErrEmptyTerms = errors.New("layoutspec: constraint has no terms")

	// ErrDuplicateVariable is returned when the same variable name is
	// declared more than once.
	ErrDuplicateVariable = errors.New("layoutspec: duplicate variable")
)
