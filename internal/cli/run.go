package cli

import (
	"github.com/spf13/cobra"
	"github.com/trubrics/trubrics-cli/internal/app"
)

func runCmd() *cobra.Command {
	var (
		saveUI     bool
		configPath string
		outputPath string
		outputName string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the configured trubric and save the resulting report.",
		Long: `Run the configured trubric and save the resulting report.

Loads the run definition referenced by the config file, executes its
validations in declaration order, prints one status line per validation, and
writes the report locally. With --save-ui and a remote-enabled config the
report is also pushed to the trubrics manager; a remote failure is a warning,
never a run failure.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := appOptions(cmd)
			if err != nil {
				return err
			}

			p := newPrompter(cmd)
			if configPath == "" {
				configPath, err = p.ask("Enter the path to your trubric config .json file (this file can be generated by running `trubrics init`)", "")
				if err != nil {
					return err
				}
			}
			if outputPath == "" {
				outputPath, err = p.ask("Enter a path to save your output trubric file. The default path is", ".")
				if err != nil {
					return err
				}
			}
			if outputName == "" {
				outputName, err = p.ask("Enter the file name of your output trubric file. The default file name is", "my_new_trubric.json")
				if err != nil {
					return err
				}
			}

			a := app.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
			_, err = a.Run(cmd.Context(), app.RunParams{
				ConfigDir:  configPath,
				OutputDir:  outputPath,
				OutputName: outputName,
				SaveUI:     saveUI,
			})
			return err
		},
	}

	cmd.Flags().BoolVar(&saveUI, "save-ui", false, "Also push the report to the trubrics manager (requires an authenticated config).")
	cmd.Flags().StringVar(&configPath, "trubric-config-path", "", "Directory containing the .trubrics_config.json file.")
	cmd.Flags().StringVar(&outputPath, "trubric-output-file-path", "", "Directory to save the output trubric file in.")
	cmd.Flags().StringVar(&outputName, "trubric-output-file-name", "", "File name of the output trubric file.")
	return cmd
}
