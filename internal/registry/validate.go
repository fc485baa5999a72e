package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/trubrics/trubrics-cli/internal/ctxlog"
)

// Validate performs a strict parity check between the kinds declared in a run
// definition and the handlers compiled into the binary. The run command
// itself is fail-open (an unknown kind becomes a fail outcome), but
// programmatic callers and tests can use Validate to surface mismatches
// before executing anything.
func (r *Registry) Validate(ctx context.Context, declaredKinds []string) error {
	logger := ctxlog.FromContext(ctx)

	var errs []string
	seen := make(map[string]struct{})
	for _, kind := range declaredKinds {
		if _, dup := seen[kind]; dup {
			continue
		}
		seen[kind] = struct{}{}
		if _, ok := r.checks[kind]; !ok {
			errs = append(errs, fmt.Sprintf("validation kind '%s' has no registered check handler", kind))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validation passed.", "declared_kinds", len(seen), "registered_kinds", len(r.checks))
	return nil
}
