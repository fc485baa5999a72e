// Package expression provides the 'expression' validation kind: a boolean
// HCL expression evaluated with the run's model and dataset identifiers in
// scope.
package expression

import (
	"context"

	"github.com/trubrics/trubrics-cli/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Args defines the arguments block for the expression check. The assert
// expression is evaluated by the HCL decoder against the run's eval context,
// so `model` and `dataset` are available as variables.
type Args struct {
	Assert bool `hcl:"assert"`
}

// OnCheck is the handler for the 'expression' validation kind.
func OnCheck(ctx context.Context, target registry.Target, args any) (bool, error) {
	return args.(*Args).Assert, nil
}

// Register registers the handler with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCheck("expression", &registry.RegisteredCheck{
		NewArgs: func() any { return new(Args) },
		Fn:      OnCheck,
	})
}
