package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boxLayout = `
variables: [left, width, right]
constraints:
  - strength: required
    terms:
      - {variable: right, multiplier: 1}
      - {variable: left, multiplier: -1}
      - {variable: width, multiplier: -1}
    relation: "=="
    constant: 0
suggestions:
  - variable: left
    value: 0
  - variable: width
    value: 100
`

func writeLayout(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(boxLayout), 0o644))
	return path
}

func TestSolveCommandPrintsVariableValues(t *testing.T) {
	path := writeLayout(t)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"solve", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "left = 0")
	assert.Contains(t, out.String(), "width = 100")
	assert.Contains(t, out.String(), "right = 100")
}

func TestSuggestCommandAppliesSetFlags(t *testing.T) {
	path := writeLayout(t)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"suggest", path, "--set", "width=50"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "before:")
	assert.Contains(t, out.String(), "after:")
	assert.Contains(t, out.String(), "width = 50")
	assert.Contains(t, out.String(), "right = 50")
}

func TestSolveCommandRejectsMissingFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"solve", "/no/such/file.yaml"})

	assert.Error(t, cmd.Execute())
}
