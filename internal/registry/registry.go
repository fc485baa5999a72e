// Package registry maps declared validation kinds to compiled Go check
// handlers for a single application instance. Registration of externally
// declared kinds is the only way user-authored run definitions reach
// executable code; no raw module internals are exposed beyond the handler.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// Target identifies what a check is evaluated against.
type Target struct {
	Model   string
	Dataset string
}

// RegisteredCheck holds the compiled Go parts of one validation kind.
type RegisteredCheck struct {
	// NewArgs returns a fresh arguments struct for the HCL arguments block
	// to be decoded into.
	NewArgs func() any
	// Fn evaluates the check and reports whether it passed. A returned error
	// means the check itself could not be evaluated.
	Fn func(ctx context.Context, target Target, args any) (bool, error)
}

// Module is the interface all builtin check modules implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered check handlers for one application instance.
type Registry struct {
	checks map[string]*RegisteredCheck
}

// New creates and initialises an empty Registry.
func New() *Registry {
	return &Registry{checks: make(map[string]*RegisteredCheck)}
}

// RegisterCheck registers a handler for a validation kind. Duplicate
// registration is a programmer error.
func (r *Registry) RegisterCheck(kind string, check *RegisteredCheck) {
	if _, exists := r.checks[kind]; exists {
		panic(fmt.Sprintf("check handler with kind '%s' already registered", kind))
	}
	slog.Debug("Registering check handler.", "kind", kind)
	r.checks[kind] = check
}

// Lookup returns the handler for a kind, if one is registered.
func (r *Registry) Lookup(kind string) (*RegisteredCheck, bool) {
	check, ok := r.checks[kind]
	return check, ok
}

// Kinds returns the sorted list of registered validation kinds.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.checks))
	for kind := range r.checks {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
