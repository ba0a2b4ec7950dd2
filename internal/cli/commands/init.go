package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const configTemplate = `# nlsplit configuration.
# Values here are overridden by NLSPLIT_* environment variables and flags.

# Directory for generated setup files.
output_dir: runs

# Prefix for generated file names.
# output_prefix: exp_

# Repetitions carried inside each generated run.
# The model's repetitions are split into N/n runs of n repetitions each.
repetitions_per_run: 1

# Script template; enables job script generation.
# Supported placeholders: {model} {modelname} {experiment} {numexps} {csvfpath}
# script_template: job.pbs
# script_output_dir: scripts
# csv_output_dir: results

# Split-history database.
state_path: .nlsplit/state.db
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an nlsplit.yaml config file in the current directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing nlsplit.yaml")

	return cmd
}

func runInit(cmd *cobra.Command, force bool) error {
	const name = "nlsplit.yaml"

	if !force {
		if _, err := os.Stat(name); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", name)
		}
	}

	if err := os.WriteFile(name, []byte(configTemplate), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", name)
	return nil
}
