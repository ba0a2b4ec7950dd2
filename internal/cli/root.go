// Package cli provides the command-line interface for nlsplit.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nlogo-labs/nlsplit/internal/cli/commands"
	"github.com/nlogo-labs/nlsplit/internal/cli/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.4.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nlsplit",
		Short: "Split NetLogo BehaviorSpace experiments into single runs",
		Long: `nlsplit expands the BehaviorSpace experiments of a NetLogo model into
one setup file per parameter combination so the runs can be scheduled
independently, for instance as an HPC array job.

Alongside the setup files it can generate job scripts from a template and
a CSV run table mapping run numbers to parameter values.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			cmd.SetContext(config.WithLogger(cmd.Context(), logger))

			if cfg.Verbose {
				if used := config.GetConfigFileUsed(); used != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", used)
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} {{.Version}} (commit %s)\n", GitCommit))

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./nlsplit.yaml, searched upward)")
	rootCmd.PersistentFlags().String("output-dir", "", "Directory for generated setup files")
	rootCmd.PersistentFlags().String("output-prefix", "", "Prefix for generated file names")
	rootCmd.PersistentFlags().String("script-template", "", "Script template file; enables script generation")
	rootCmd.PersistentFlags().String("script-output-dir", "", "Directory for generated scripts (default: output dir)")
	rootCmd.PersistentFlags().String("csv-output-dir", "", "Directory simulations write CSV tables to (default: output dir)")
	rootCmd.PersistentFlags().Int("repetitions-per-run", config.DefaultRepetitionsPerRun, "Repetitions per generated run; 0 keeps all repetitions in one run")
	rootCmd.PersistentFlags().String("state", "", "Path to the split-history database")
	rootCmd.PersistentFlags().Bool("no-path-translation", false, "Keep paths exactly as given instead of making them absolute")
	rootCmd.PersistentFlags().Bool("no-state", false, "Do not record splits in the history database")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(commands.NewSplitCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewDoctorCommand())
	rootCmd.AddCommand(commands.NewRunsCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit))

	return rootCmd
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
