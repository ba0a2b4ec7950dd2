package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nlogo-labs/nlsplit/internal/nlogo"
	"github.com/nlogo-labs/nlsplit/internal/script"
)

// scriptKeys are the placeholders substituted into script templates.
var scriptKeys = map[string]bool{
	"model":      true,
	"modelname":  true,
	"experiment": true,
	"numexps":    true,
	"csvfpath":   true,
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor <model.nlogo>",
		Short: "Check a model and the current configuration for problems",
		Long: `Verify that the model file parses, that its experiments are splittable,
and that the configured script template only uses supported placeholder
keys. Exits non-zero when a check fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, args[0])
		},
	}

	return cmd
}

func runDoctor(cmd *cobra.Command, modelPath string) error {
	cfg := getConfig()
	out := cmd.OutOrStdout()
	failed := false

	check := func(ok bool, format string, args ...any) {
		status := "ok  "
		if !ok {
			status = "FAIL"
			failed = true
		}
		fmt.Fprintf(out, "[%s] %s\n", status, fmt.Sprintf(format, args...))
	}

	model, err := nlogo.ReadModel(modelPath)
	check(err == nil, "model file parses: %s", modelPath)
	if err != nil {
		fmt.Fprintf(out, "       %v\n", err)
		return fmt.Errorf("doctor found problems")
	}

	check(len(model.Experiments) > 0, "model has experiments (%d found)", len(model.Experiments))

	for i := range model.Experiments {
		exp := &model.Experiments[i]
		check(exp.Name != "", "experiment %d has a name", i+1)
		check(exp.Repetitions > 0, "experiment %q has positive repetitions (%d)", exp.Name, exp.Repetitions)
		for _, svs := range exp.SteppedValueSets {
			check(svs.Step > 0, "experiment %q: stepped set %q has positive step", exp.Name, svs.Variable)
			check(svs.First <= svs.Last, "experiment %q: stepped set %q range is not empty", exp.Name, svs.Variable)
		}
	}

	if cfg.ScriptTemplate != "" {
		raw, err := os.ReadFile(cfg.ScriptTemplate)
		check(err == nil, "script template readable: %s", cfg.ScriptTemplate)
		if err == nil {
			tmpl, err := script.Parse(string(raw))
			check(err == nil, "script template parses")
			if err == nil {
				for _, field := range tmpl.Fields() {
					if !scriptKeys[field] {
						check(false, "script template key {%s} is supported", field)
					}
				}
			}
		}
	}

	if failed {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Fprintln(out, "All checks passed")
	return nil
}
