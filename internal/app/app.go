// Package app wires the trubrics CLI's collaborators together and implements
// the init and run pipelines behind the commands.
package app

import (
	"io"
	"log/slog"

	"github.com/trubrics/trubrics-cli/internal/registry"
	"github.com/trubrics/trubrics-cli/internal/remote"
)

// Options holds the ambient configuration for an App instance. Everything a
// pipeline needs beyond this arrives explicitly through its params struct;
// nothing is read from ambient process state.
type Options struct {
	LogLevel  string
	LogFormat string
}

// App encapsulates the application's dependencies and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	remote   *remote.Client
}

// New constructs a fully initialised App with its own isolated logger and
// registry. Log output goes to errW; user-facing status lines go to outW.
// When no modules are given, the compiled-in core checks are registered.
func New(outW, errW io.Writer, opts Options, modules ...registry.Module) *App {
	logger := newLogger(opts.LogLevel, opts.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreChecks
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All check modules registered.", "count", len(modules), "kinds", reg.Kinds())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		remote:   remote.NewClient(),
	}
}

// Registry returns the application's check registry. This is primarily for
// testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
