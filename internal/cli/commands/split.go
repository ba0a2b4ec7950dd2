package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nlogo-labs/nlsplit/internal/cli/config"
	"github.com/nlogo-labs/nlsplit/internal/split"
	"github.com/nlogo-labs/nlsplit/internal/state"
)

// SplitOptions holds options for the split command.
type SplitOptions struct {
	Experiments []string
	All         bool
	RunTable    bool
	Watch       bool
}

// NewSplitCommand creates the split command.
func NewSplitCommand() *cobra.Command {
	opts := &SplitOptions{}

	cmd := &cobra.Command{
		Use:   "split <model.nlogo>",
		Short: "Split experiments into one setup file per parameter combination",
		Long: `Expand the selected BehaviorSpace experiments of a model into individual
setup files, one per parameter-value combination (and per repetition chunk
when --repetitions-per-run is used).`,
		Example: `  # Split one experiment
  nlsplit split -e "density sweep" model.nlogo

  # Split all experiments, 1 repetition per run, with a run table
  nlsplit split -a --run-table model.nlogo

  # Generate PBS array job scripts alongside the setup files
  nlsplit split -a --script-template job.pbs --output-dir runs/ model.nlogo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Experiments, "experiment", "e", nil, "Name of an experiment to split (repeatable)")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Split all experiments in the model")
	cmd.Flags().BoolVar(&opts.RunTable, "run-table", false, "Write a CSV table of run numbers and parameter values")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Watch the model file and split again on change")
	cmd.MarkFlagsMutuallyExclusive("experiment", "all")
	cmd.MarkFlagsOneRequired("experiment", "all")

	return cmd
}

func runSplit(cmd *cobra.Command, modelPath string, opts *SplitOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	var store state.Store
	if !cfg.NoState {
		s, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	eng := split.NewEngine(logger, store)
	req := split.Request{
		ModelPath:          modelPath,
		Experiments:        opts.Experiments,
		All:                opts.All,
		RepetitionsPerRun:  cfg.RepetitionsPerRun,
		OutputDir:          cfg.OutputDir,
		OutputPrefix:       cfg.OutputPrefix,
		ScriptTemplatePath: cfg.ScriptTemplate,
		ScriptOutputDir:    cfg.ScriptOutputDir,
		CSVOutputDir:       cfg.CSVOutputDir,
		RunTable:           opts.RunTable,
		NoPathTranslation:  cfg.NoPathTranslation,
	}

	once := func() error {
		start := time.Now()
		res, err := eng.Split(cmd.Context(), req)
		if err != nil {
			return err
		}

		for _, exp := range res.Experiments {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d setup file(s)", exp.Name, exp.Runs)
			if exp.RunTablePath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), ", run table %s", exp.RunTablePath)
			}
			if exp.ScriptPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), ", script %s", exp.ScriptPath)
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
		}
		if len(res.Experiments) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No experiments matched")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Completed in %s\n", time.Since(start).Round(time.Millisecond))
		return nil
	}

	if err := once(); err != nil {
		return err
	}

	if opts.Watch {
		fmt.Fprintln(cmd.OutOrStdout(), "Watching for changes (ctrl-c to stop)")
		err := split.WatchModel(cmd.Context(), logger, modelPath, once)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	return nil
}
