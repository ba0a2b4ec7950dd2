package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nlogo-labs/nlsplit/internal/nlogo"
	"github.com/nlogo-labs/nlsplit/internal/split"
)

// listEntry is the JSON shape of one listed experiment.
type listEntry struct {
	Name         string `json:"name"`
	Repetitions  int    `json:"repetitions"`
	Varying      int    `json:"varying"`
	Combinations int    `json:"combinations"`
	Runs         int    `json:"runs"`
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list <model.nlogo>",
		Short: "List the experiments in a model",
		Long: `List every BehaviorSpace experiment in the model with its repetition
count, varying variables, and how many runs a split would produce with the
current --repetitions-per-run setting.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0], jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}

func runList(cmd *cobra.Command, modelPath string, jsonOut bool) error {
	cfg := getConfig()

	model, err := nlogo.ReadModel(modelPath)
	if err != nil {
		return err
	}

	entries := make([]listEntry, 0, len(model.Experiments))
	for i := range model.Experiments {
		exp := &model.Experiments[i]
		plan := split.BuildPlan(exp, cfg.RepetitionsPerRun)
		entries = append(entries, listEntry{
			Name:         exp.Name,
			Repetitions:  exp.Repetitions,
			Varying:      len(plan.Axes),
			Combinations: plan.Combinations(),
			Runs:         plan.TotalRuns(),
		})
	}

	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No experiments in %s\n", modelPath)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Experiment", "Repetitions", "Varying", "Combinations", "Runs"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Name, e.Repetitions, e.Varying, e.Combinations, e.Runs})
	}
	t.SetStyle(table.StyleLight)
	t.Render()

	return nil
}
