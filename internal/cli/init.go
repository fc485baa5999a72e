package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/trubrics/trubrics-cli/internal/app"
)

var successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))

func initCmd() *cobra.Command {
	var (
		apiURL     string
		runPath    string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialise the trubrics config for a working directory.",
		Long: `Initialise the trubrics config for a working directory.

Prompts for any omitted required value. When --trubrics-api-url is given, an
identity is prompted for and verified against the trubrics manager before
anything is written; a rejected identity aborts with a non-zero exit and no
config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := appOptions(cmd)
			if err != nil {
				return err
			}

			p := newPrompter(cmd)
			if runPath == "" {
				runPath, err = p.ask("Enter the path to your trubric run .hcl file (e.g. examples/trubric_run.hcl)", "")
				if err != nil {
					return err
				}
			}
			if configPath == "" {
				configPath, err = p.ask("Enter a path to save your .trubrics_config.json. The default path is", ".")
				if err != nil {
					return err
				}
			}
			identity := ""
			if apiURL != "" {
				identity, err = p.ask("Enter your User ID (generated in the trubrics manager)", "")
				if err != nil {
					return err
				}
			}

			a := app.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
			rec, err := a.Init(cmd.Context(), app.InitParams{
				RunPath:    runPath,
				ConfigDir:  configPath,
				APIURL:     apiURL,
				IdentityID: identity,
			})
			if errors.Is(err, app.ErrIdentityRejected) {
				return &ExitError{Code: 1, Message: err.Error()}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if rec.RemoteEnabled() {
				fmt.Fprintln(out, successStyle.Render(
					"Trubrics configuration has been set and user is authenticated with the trubrics manager UI:"))
			} else {
				fmt.Fprintln(out, successStyle.Render(
					"Trubrics config set without trubrics manager authentication:"))
			}
			rendered, _ := json.MarshalIndent(rec, "", "    ")
			fmt.Fprintln(out, string(rendered))
			return nil
		},
	}

	cmd.Flags().StringVar(&apiURL, "trubrics-api-url", "", "Base URL of the trubrics manager, for remote persistence.")
	cmd.Flags().StringVar(&runPath, "trubric-run-path", "", "Path to the trubric run .hcl file.")
	cmd.Flags().StringVar(&configPath, "trubric-config-path", "", "Directory to save the .trubrics_config.json in.")
	return cmd
}
