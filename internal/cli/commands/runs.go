package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nlogo-labs/nlsplit/internal/cli/config"
)

// runsEntry is the JSON shape of one history row.
type runsEntry struct {
	ID          string     `json:"id"`
	ModelPath   string     `json:"model_path"`
	Experiment  string     `json:"experiment"`
	Runs        int        `json:"runs"`
	OutputDir   string     `json:"output_dir"`
	Status      string     `json:"status"`
	Error       string     `json:"error,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent splits from the history database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRuns(cmd, limit, jsonOut)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of splits to show")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}

func runRuns(cmd *cobra.Command, limit int, jsonOut bool) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	if _, err := os.Stat(cfg.StatePath); os.IsNotExist(err) {
		fmt.Fprintf(cmd.OutOrStdout(), "No split history at %s\n", cfg.StatePath)
		return nil
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	splits, err := store.ListSplits(limit)
	if err != nil {
		return err
	}

	if jsonOut {
		entries := make([]runsEntry, len(splits))
		for i, sp := range splits {
			entries[i] = runsEntry{
				ID:          sp.ID,
				ModelPath:   sp.ModelPath,
				Experiment:  sp.Experiment,
				Runs:        sp.Runs,
				OutputDir:   sp.OutputDir,
				Status:      string(sp.Status),
				Error:       sp.Error,
				StartedAt:   sp.StartedAt,
				CompletedAt: sp.CompletedAt,
			}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(splits) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No splits recorded")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Started", "Experiment", "Runs", "Status", "Output"})
	for _, sp := range splits {
		t.AppendRow(table.Row{
			sp.StartedAt.Local().Format("2006-01-02 15:04:05"),
			sp.Experiment,
			sp.Runs,
			string(sp.Status),
			sp.OutputDir,
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()

	return nil
}
