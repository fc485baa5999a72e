// Package executor runs the validations declared by a loaded run file, in
// declaration order, producing exactly one outcome per declaration.
package executor

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/trubrics/trubrics-cli/internal/ctxlog"
	"github.com/trubrics/trubrics-cli/internal/registry"
	"github.com/trubrics/trubrics-cli/internal/runfile"
	"github.com/trubrics/trubrics-cli/internal/trubric"
	"github.com/zclconf/go-cty/cty"
)

// Executor evaluates declared validations against a run's model and dataset.
type Executor struct {
	registry *registry.Registry
	// observe, when set, is called with each outcome as soon as it is
	// produced. It must not influence control flow.
	observe func(trubric.Outcome)
}

// New creates an Executor. observe may be nil.
func New(reg *registry.Registry, observe func(trubric.Outcome)) *Executor {
	return &Executor{registry: reg, observe: observe}
}

// Run executes every validation declared by the handle and returns their
// outcomes in declaration order. It never short-circuits: a validation that
// cannot be evaluated (unknown kind, bad arguments, handler error or panic)
// is recorded as a fail outcome rather than raised, so one broken validation
// does not abort the run or hide later results.
func (e *Executor) Run(ctx context.Context, h *runfile.Handle) []trubric.Outcome {
	logger := ctxlog.FromContext(ctx)

	target := registry.Target{Model: h.RunContext.Model, Dataset: h.RunContext.Dataset}
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"model":   cty.StringVal(target.Model),
			"dataset": cty.StringVal(target.Dataset),
		},
	}

	outcomes := make([]trubric.Outcome, 0, len(h.Validations))
	for _, decl := range h.Validations {
		passed, err := e.evaluate(ctx, decl, target, evalCtx)
		if err != nil {
			logger.Warn("Validation could not be evaluated, recording as fail.",
				"kind", decl.Kind, "name", decl.Name, "error", err)
			passed = false
		}

		outcome := trubric.Outcome{
			Kind:     decl.Kind,
			Severity: trubric.Severity(decl.Severity),
			Result:   trubric.ResultPass,
		}
		if !passed {
			outcome.Result = trubric.ResultFail
		}
		outcomes = append(outcomes, outcome)

		if e.observe != nil {
			e.observe(outcome)
		}
	}
	return outcomes
}

// evaluate resolves and runs a single declared validation. The returned error
// means the check could not be evaluated; the caller records it as a fail.
func (e *Executor) evaluate(ctx context.Context, decl *runfile.Validation, target registry.Target, evalCtx *hcl.EvalContext) (passed bool, err error) {
	check, ok := e.registry.Lookup(decl.Kind)
	if !ok {
		return false, fmt.Errorf("no check handler registered for kind '%s'", decl.Kind)
	}

	args := check.NewArgs()
	body := hcl.EmptyBody()
	if decl.Arguments != nil {
		body = decl.Arguments.Body
	}
	if diags := gohcl.DecodeBody(body, evalCtx, args); diags.HasErrors() {
		return false, fmt.Errorf("failed to decode arguments: %w", diags)
	}

	// A panicking check is user-facing input, not a programmer error inside
	// the harness, so it is contained here.
	defer func() {
		if r := recover(); r != nil {
			passed = false
			err = fmt.Errorf("check panicked: %v", r)
		}
	}()
	return check.Fn(ctx, target, args)
}
