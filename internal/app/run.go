package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/trubrics/trubrics-cli/internal/config"
	"github.com/trubrics/trubrics-cli/internal/ctxlog"
	"github.com/trubrics/trubrics-cli/internal/executor"
	"github.com/trubrics/trubrics-cli/internal/runfile"
	"github.com/trubrics/trubrics-cli/internal/trubric"
)

// RunState names a stage of the run pipeline. The three REMOTE_* states are
// terminal; REMOTE_SKIPPED and REMOTE_FAILED still exit successfully because
// local persistence has already completed by then.
type RunState string

const (
	StateConfigLoaded RunState = "CONFIG_LOADED"
	StateScriptLoaded RunState = "SCRIPT_LOADED"
	StateExecuting    RunState = "EXECUTING"
	StateLocalSaved   RunState = "LOCAL_SAVED"
	StateRemoteSaved  RunState = "REMOTE_SAVED"
	StateRemoteSkip   RunState = "REMOTE_SKIPPED"
	StateRemoteFailed RunState = "REMOTE_FAILED"
)

// RunParams carries everything the run pipeline needs, threaded explicitly
// from the command's flags.
type RunParams struct {
	ConfigDir  string
	OutputDir  string
	OutputName string
	SaveUI     bool
}

var (
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Run executes the full trubric run pipeline: load config, load the run
// file, execute its validations while streaming one status line per outcome,
// save the report locally and, when requested and authenticated, push it to
// the trubrics manager. The returned state is the terminal pipeline state;
// a non-nil error always aborts the run.
func (a *App) Run(ctx context.Context, params RunParams) (RunState, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	cfg, err := config.Load(params.ConfigDir)
	if err != nil {
		return "", err
	}
	a.logger.Debug("Pipeline state changed.", "state", StateConfigLoaded, "run_path", cfg.RunPath)

	handle, err := runfile.Load(ctx, cfg.RunPath)
	if err != nil {
		return "", err
	}
	a.logger.Debug("Pipeline state changed.", "state", StateScriptLoaded, "handle_id", handle.ID)

	fmt.Fprintln(a.outW, bannerStyle.Render(fmt.Sprintf(
		"Running trubric from file '%s' with model '%s' and dataset '%s'.",
		cfg.RunPath, handle.RunContext.Model, handle.RunContext.Dataset)))

	a.logger.Debug("Pipeline state changed.", "state", StateExecuting, "validations", len(handle.Validations))
	exec := executor.New(a.registry, func(o trubric.Outcome) {
		fmt.Fprintln(a.outW, trubric.FormatOutcome(o))
	})
	outcomes := exec.Run(ctx, handle)

	report := &trubric.Trubric{
		RunID:       handle.ID,
		ModelName:   handle.RunContext.Model,
		DatasetName: handle.RunContext.Dataset,
		Validations: outcomes,
	}
	path, err := trubric.SaveLocal(report, params.OutputDir, params.OutputName)
	if err != nil {
		return "", err
	}
	a.logger.Info("Trubric saved locally.", "state", StateLocalSaved, "path", path)

	return a.saveRemote(ctx, cfg, report, params.SaveUI), nil
}

// saveRemote handles the optional remote leg of the pipeline. Its failures
// are downgraded to warnings: by this point the run's primary success
// criterion, the local save, has already been met.
func (a *App) saveRemote(ctx context.Context, cfg *config.Record, report *trubric.Trubric, saveUI bool) RunState {
	if !saveUI {
		a.logger.Debug("Pipeline state changed.", "state", StateRemoteSkip)
		return StateRemoteSkip
	}
	if !cfg.RemoteEnabled() {
		fmt.Fprintln(a.outW, warningStyle.Render(
			"ERROR: You must authenticate with the trubrics manager by running `trubrics init` to remotely save trubrics runs."))
		a.logger.Warn("Remote save requested but config is local-only.", "state", StateRemoteSkip)
		return StateRemoteSkip
	}

	if err := a.remote.SaveReport(ctx, cfg.APIURL, cfg.IdentityID, report); err != nil {
		fmt.Fprintln(a.outW, warningStyle.Render(fmt.Sprintf("WARNING: remote save failed: %v", err)))
		a.logger.Warn("Remote save failed.", "state", StateRemoteFailed, "error", err)
		return StateRemoteFailed
	}
	a.logger.Info("Trubric saved to the trubrics manager.", "state", StateRemoteSaved, "api_url", cfg.APIURL)
	return StateRemoteSaved
}
