// Package threshold provides the 'threshold' validation kind: a numeric
// comparison of a measured value against a limit.
package threshold

import (
	"context"
	"fmt"

	"github.com/trubrics/trubrics-cli/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Args defines the arguments block for the threshold check.
type Args struct {
	Value     float64 `hcl:"value"`
	Threshold float64 `hcl:"threshold"`
	Operator  string  `hcl:"operator,optional"`
}

// OnCheck is the handler for the 'threshold' validation kind. The operator
// defaults to ">=".
func OnCheck(ctx context.Context, target registry.Target, rawArgs any) (bool, error) {
	args := rawArgs.(*Args)
	op := args.Operator
	if op == "" {
		op = ">="
	}
	switch op {
	case ">=":
		return args.Value >= args.Threshold, nil
	case ">":
		return args.Value > args.Threshold, nil
	case "<=":
		return args.Value <= args.Threshold, nil
	case "<":
		return args.Value < args.Threshold, nil
	case "==":
		return args.Value == args.Threshold, nil
	default:
		return false, fmt.Errorf("unknown operator '%s'", op)
	}
}

// Register registers the handler with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCheck("threshold", &registry.RegisteredCheck{
		NewArgs: func() any { return new(Args) },
		Fn:      OnCheck,
	})
}
