package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/trubrics/trubrics-cli/internal/cli"
)

// main is the entrypoint for the trubrics application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Stderr, os.Stdin, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW, errW io.Writer, inR io.Reader, args []string) error {
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(outW)
	rootCmd.SetErr(errW)
	rootCmd.SetIn(inR)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
