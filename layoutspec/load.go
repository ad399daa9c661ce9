package layoutspec

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gridwright/cassowary/solver"
)

// Load parses a layout document from r.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("layoutspec: read: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("layoutspec: parse: %w", err)
	}
	return &doc, nil
}

// LoadFile parses a layout document from the file at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("layoutspec: open %s: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

var namedStrengths = map[string]float64{
	"required": solver.StrengthRequired,
	"strong":   solver.StrengthStrong,
	"medium":   solver.StrengthMedium,
	"weak":     solver.StrengthWeak,
}

// ParseStrength resolves a strength string to its numeric value, accepting
// either a named level (required/strong/medium/weak, case-insensitive) or
// a bare floating-point literal.
func ParseStrength(s string) (float64, error) {
	if v, ok := namedStrengths[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v, nil
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return v, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrength, s)
}

// ParseRelation resolves a relation string ("<=", "==" or "=", ">=") to a
// solver.Relation.
func ParseRelation(s string) (solver.Relation, error) {
	switch strings.TrimSpace(s) {
	case "<=":
		return solver.LessEqual, nil
	case "==", "=":
		return solver.Equal, nil
	case ">=":
		return solver.GreaterEqual, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRelation, s)
	}
}
