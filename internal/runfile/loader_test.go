package runfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeRunFile writes content to a fresh temp .hcl file and returns its path.
func writeRunFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trubric_run.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validRunFile = `
run_context {
  model   = "churn_model"
  dataset = "churn_holdout"
}

validation "threshold" "accuracy_floor" {
  severity = "error"
  arguments {
    value     = 0.82
    threshold = 0.8
  }
}

validation "expression" "dataset_is_holdout" {
  severity = "warning"
  arguments {
    assert = dataset == "churn_holdout"
  }
}
`

func TestLoad_ValidRunFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeRunFile(t, validRunFile)

	// --- Act ---
	handle, err := Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "churn_model", handle.RunContext.Model)
	require.Equal(t, "churn_holdout", handle.RunContext.Dataset)
	require.Equal(t, []string{"threshold", "expression"}, handle.DeclaredKinds(),
		"validations must keep declaration order")
	require.Equal(t, "accuracy_floor", handle.Validations[0].Name)
	require.NotEmpty(t, handle.ID)
}

func TestLoad_HandlesAreIndependent(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeRunFile(t, validRunFile)

	// --- Act ---
	first, err := Load(context.Background(), path)
	require.NoError(t, err)
	second, err := Load(context.Background(), path)
	require.NoError(t, err)

	// --- Assert ---
	require.NotEqual(t, first.ID, second.ID, "each load must return a fresh, disposable handle")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	// --- Act ---
	handle, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))

	// --- Assert ---
	require.Nil(t, handle)
	require.ErrorIs(t, err, ErrRunFileNotFound)
}

func TestLoad_EntryPointMissing(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeRunFile(t, `
validation "expression" "only_one" {
  severity = "error"
  arguments {
    assert = true
  }
}
`)

	// --- Act ---
	handle, err := Load(context.Background(), path)

	// --- Assert ---
	require.Nil(t, handle)
	require.ErrorIs(t, err, ErrEntryPointMissing)
}

func TestLoad_EntryPointWrongShape(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// run_context is present but lacks the required dataset attribute.
	path := writeRunFile(t, `
run_context {
  model = "churn_model"
}
`)

	// --- Act ---
	handle, err := Load(context.Background(), path)

	// --- Assert ---
	require.Nil(t, handle)
	require.ErrorIs(t, err, ErrEntryPointType)
}

func TestLoad_EmptyIdentifiersAreRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeRunFile(t, `
run_context {
  model   = ""
  dataset = "d"
}
`)

	// --- Act ---
	_, err := Load(context.Background(), path)

	// --- Assert ---
	require.ErrorIs(t, err, ErrEntryPointType)
}

func TestLoad_UnknownSeverity(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeRunFile(t, `
run_context {
  model   = "m"
  dataset = "d"
}

validation "expression" "bad_severity" {
  severity = "fatal"
  arguments {
    assert = true
  }
}
`)

	// --- Act ---
	_, err := Load(context.Background(), path)

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown severity 'fatal'")
}

func TestLoad_UnparsableFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeRunFile(t, `run_context { model = `)

	// --- Act ---
	_, err := Load(context.Background(), path)

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse run file")
}
