// Package runfile loads user-authored trubric run definitions from disk.
//
// The run file is externally authored code admitted into the process at
// runtime: it is resolved from a file path, never through any package index,
// and nothing in it is sandboxed. Loading is the deliberate trust boundary of
// the harness; callers only ever see the typed Handle extracted here, not raw
// file internals.
package runfile

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/trubrics/trubrics-cli/internal/ctxlog"
	"github.com/trubrics/trubrics-cli/internal/trubric"
)

// RunContext identifies what a run executes against.
type RunContext struct {
	Model   string
	Dataset string
}

// Handle is one independent, disposable load of a run file. Each Load call
// returns a fresh Handle tagged with its own ID, so repeated loads within one
// process never collide through shared state.
type Handle struct {
	ID          string
	Path        string
	RunContext  RunContext
	Validations []*Validation
}

// Load parses the run file at path and extracts its entry point.
//
// It fails with ErrRunFileNotFound when the path does not exist, with
// ErrEntryPointMissing when the file lacks a run_context block, and with
// ErrEntryPointType when that block is present but malformed.
func Load(ctx context.Context, path string) (*Handle, error) {
	logger := ctxlog.FromContext(ctx)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunFileNotFound, path)
		}
		return nil, fmt.Errorf("error accessing run file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse run file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode run file %s: %w", path, diags)
	}

	if root.RunContext == nil {
		return nil, fmt.Errorf("%w (file %s)", ErrEntryPointMissing, path)
	}

	var entry runContextEntry
	if diags := gohcl.DecodeBody(root.RunContext.Body, nil, &entry); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %v", ErrEntryPointType, diags)
	}
	if entry.Model == "" || entry.Dataset == "" {
		return nil, fmt.Errorf("%w: model and dataset must be non-empty", ErrEntryPointType)
	}

	for _, v := range root.Validations {
		if !trubric.ValidSeverity(trubric.Severity(v.Severity)) {
			return nil, fmt.Errorf("validation '%s': unknown severity '%s' (file %s)", v.Name, v.Severity, path)
		}
	}

	handle := &Handle{
		ID:   uuid.NewString(),
		Path: path,
		RunContext: RunContext{
			Model:   entry.Model,
			Dataset: entry.Dataset,
		},
		Validations: root.Validations,
	}
	logger.Debug("Run file loaded.", "path", path, "handle_id", handle.ID, "validations", len(handle.Validations))
	return handle, nil
}

// DeclaredKinds returns the validation kinds in declaration order, with
// duplicates preserved.
func (h *Handle) DeclaredKinds() []string {
	kinds := make([]string, 0, len(h.Validations))
	for _, v := range h.Validations {
		kinds = append(kinds, v.Kind)
	}
	return kinds
}
