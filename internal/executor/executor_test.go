package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trubrics/trubrics-cli/checks/expression"
	"github.com/trubrics/trubrics-cli/checks/threshold"
	"github.com/trubrics/trubrics-cli/internal/registry"
	"github.com/trubrics/trubrics-cli/internal/runfile"
	"github.com/trubrics/trubrics-cli/internal/trubric"
)

// loadHandle writes content to a temp run file and loads it.
func loadHandle(t *testing.T, content string) *runfile.Handle {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trubric_run.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	handle, err := runfile.Load(context.Background(), path)
	require.NoError(t, err)
	return handle
}

func coreRegistry() *registry.Registry {
	reg := registry.New()
	(&expression.Module{}).Register(reg)
	(&threshold.Module{}).Register(reg)
	return reg
}

func TestRun_OneOutcomePerDeclarationInOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	handle := loadHandle(t, `
run_context {
  model   = "m"
  dataset = "d"
}

validation "threshold" "passing" {
  severity = "error"
  arguments {
    value     = 0.9
    threshold = 0.8
  }
}

validation "threshold" "failing" {
  severity = "warning"
  arguments {
    value     = 0.7
    threshold = 0.8
  }
}

validation "expression" "passing_again" {
  severity = "experiment"
  arguments {
    assert = true
  }
}
`)

	// --- Act ---
	outcomes := New(coreRegistry(), nil).Run(context.Background(), handle)

	// --- Assert ---
	require.Equal(t, []trubric.Outcome{
		{Kind: "threshold", Severity: trubric.SeverityError, Result: trubric.ResultPass},
		{Kind: "threshold", Severity: trubric.SeverityWarning, Result: trubric.ResultFail},
		{Kind: "expression", Severity: trubric.SeverityExperiment, Result: trubric.ResultPass},
	}, outcomes, "outcomes must preserve declaration order, not be regrouped by result or severity")
}

func TestRun_ModelAndDatasetAreInScope(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	handle := loadHandle(t, `
run_context {
  model   = "churn_model"
  dataset = "churn_holdout"
}

validation "expression" "model_name" {
  severity = "error"
  arguments {
    assert = model == "churn_model" && dataset == "churn_holdout"
  }
}
`)

	// --- Act ---
	outcomes := New(coreRegistry(), nil).Run(context.Background(), handle)

	// --- Assert ---
	require.Len(t, outcomes, 1)
	require.Equal(t, trubric.ResultPass, outcomes[0].Result)
}

func TestRun_BrokenValidationBecomesFailOutcome(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The second validation references an unknown check kind; the third has
	// arguments the handler cannot evaluate. Neither may abort the run.
	handle := loadHandle(t, `
run_context {
  model   = "m"
  dataset = "d"
}

validation "expression" "first" {
  severity = "error"
  arguments {
    assert = true
  }
}

validation "drift" "unknown_kind" {
  severity = "error"
  arguments {}
}

validation "threshold" "bad_operator" {
  severity = "warning"
  arguments {
    value     = 1
    threshold = 1
    operator  = "~="
  }
}
`)

	// --- Act ---
	outcomes := New(coreRegistry(), nil).Run(context.Background(), handle)

	// --- Assert ---
	require.Len(t, outcomes, 3, "every declared validation must produce an outcome")
	require.Equal(t, trubric.ResultPass, outcomes[0].Result)
	require.Equal(t, trubric.ResultFail, outcomes[1].Result)
	require.Equal(t, trubric.ResultFail, outcomes[2].Result)
}

func TestRun_UndecodableArgumentsBecomeFailOutcome(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	handle := loadHandle(t, `
run_context {
  model   = "m"
  dataset = "d"
}

validation "threshold" "missing_arguments" {
  severity = "error"
  arguments {
    value = 1
  }
}
`)

	// --- Act ---
	outcomes := New(coreRegistry(), nil).Run(context.Background(), handle)

	// --- Assert ---
	require.Len(t, outcomes, 1)
	require.Equal(t, trubric.ResultFail, outcomes[0].Result)
}

func TestRun_PanickingCheckBecomesFailOutcome(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	reg := registry.New()
	reg.RegisterCheck("panics", &registry.RegisteredCheck{
		NewArgs: func() any { return &struct{}{} },
		Fn: func(ctx context.Context, target registry.Target, args any) (bool, error) {
			panic("user check blew up")
		},
	})
	reg.RegisterCheck("errors", &registry.RegisteredCheck{
		NewArgs: func() any { return &struct{}{} },
		Fn: func(ctx context.Context, target registry.Target, args any) (bool, error) {
			return true, errors.New("could not evaluate")
		},
	})
	handle := loadHandle(t, `
run_context {
  model   = "m"
  dataset = "d"
}

validation "panics" "a" {
  severity = "error"
}

validation "errors" "b" {
  severity = "error"
}
`)

	// --- Act ---
	outcomes := New(reg, nil).Run(context.Background(), handle)

	// --- Assert ---
	require.Equal(t, trubric.ResultFail, outcomes[0].Result)
	require.Equal(t, trubric.ResultFail, outcomes[1].Result, "a handler error must override its pass result")
}

func TestRun_ObserverSeesOutcomesInExecutionOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	handle := loadHandle(t, `
run_context {
  model   = "m"
  dataset = "d"
}

validation "expression" "first" {
  severity = "error"
  arguments {
    assert = true
  }
}

validation "expression" "second" {
  severity = "warning"
  arguments {
    assert = false
  }
}
`)
	var seen []trubric.Outcome

	// --- Act ---
	outcomes := New(coreRegistry(), func(o trubric.Outcome) {
		seen = append(seen, o)
	}).Run(context.Background(), handle)

	// --- Assert ---
	require.Equal(t, outcomes, seen)
}
