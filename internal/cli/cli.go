// Package cli defines the trubrics command surface: the root command and the
// init and run subcommands.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/trubrics/trubrics-cli/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "trubrics",
		Short:         "Run validations against a model and dataset, and save the resulting trubric.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	rootCmd.PersistentFlags().String("log-format", "text", "Log output format. Options: 'text' or 'json'.")

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(runCmd())
	return rootCmd
}

// appOptions validates the ambient persistent flags and turns them into app
// options.
func appOptions(cmd *cobra.Command) (app.Options, error) {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logFormat, _ := cmd.Flags().GetString("log-format")

	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return app.Options{}, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	if logFormat != "text" && logFormat != "json" {
		return app.Options{}, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	return app.Options{LogLevel: logLevel, LogFormat: logFormat}, nil
}
