package split

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nlogo-labs/nlsplit/internal/nlogo"
	"github.com/nlogo-labs/nlsplit/internal/runtable"
	"github.com/nlogo-labs/nlsplit/internal/script"
	"github.com/nlogo-labs/nlsplit/internal/state"
)

// Engine orchestrates a split: it reads the model, expands the selected
// experiments, emits the per-run setup files plus optional script and run
// table artifacts, and records the invocation in the state store.
type Engine struct {
	logger *slog.Logger
	store  state.Store
}

// NewEngine creates an engine. store may be nil to skip history recording.
func NewEngine(logger *slog.Logger, store state.Store) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{logger: logger, store: store}
}

// Request describes one split invocation.
type Request struct {
	// ModelPath is the .nlogo file to split.
	ModelPath string
	// Experiments are the experiment names to split; ignored when All is set.
	Experiments []string
	// All splits every experiment in the model.
	All bool
	// RepetitionsPerRun splits an experiment's repetitions across runs;
	// <= 0 keeps all repetitions inside each run.
	RepetitionsPerRun int
	// OutputDir receives the setup files (and, by default, scripts and CSV).
	OutputDir string
	// OutputPrefix is prepended to every generated file name.
	OutputPrefix string
	// ScriptTemplatePath enables script generation from the template file.
	ScriptTemplatePath string
	// ScriptOutputDir overrides OutputDir for script files.
	ScriptOutputDir string
	// CSVOutputDir is the directory simulations will write their tables to;
	// it is only substituted into script templates.
	CSVOutputDir string
	// RunTable emits a CSV mapping run numbers to parameter values.
	RunTable bool
	// NoPathTranslation preserves all paths exactly as given instead of
	// resolving them to absolute paths.
	NoPathTranslation bool
}

// ExperimentResult summarizes the artifacts emitted for one experiment.
type ExperimentResult struct {
	Name         string
	Runs         int
	RunTablePath string
	ScriptPath   string
}

// Result summarizes a whole split invocation.
type Result struct {
	ModelPath   string
	Experiments []ExperimentResult
	// Missing are requested experiment names not present in the model.
	Missing []string
	// Warnings collected while splitting.
	Warnings []string
}

// nameSanitizer replaces characters that are awkward in file names.
// Spaces become underscores, path separators become dashes.
var nameSanitizer = strings.NewReplacer(" ", "_", "/", "-", "\\", "-")

// SanitizeName maps an experiment name to its file name form.
func SanitizeName(name string) string {
	return nameSanitizer.Replace(name)
}

// Split performs one split invocation.
func (e *Engine) Split(ctx context.Context, req Request) (*Result, error) {
	if !req.All && len(req.Experiments) == 0 {
		return nil, fmt.Errorf("no experiments selected")
	}

	if err := e.resolvePaths(&req); err != nil {
		return nil, err
	}

	// Load the script template up front so a bad template fails before any
	// setup files are written.
	var tmpl *script.Template
	var scriptExt string
	if req.ScriptTemplatePath != "" {
		raw, err := os.ReadFile(req.ScriptTemplatePath)
		if err != nil {
			return nil, fmt.Errorf("read script template: %w", err)
		}
		tmpl, err = script.Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("parse script template %s: %w", req.ScriptTemplatePath, err)
		}
		scriptExt = filepath.Ext(req.ScriptTemplatePath)
	}

	model, err := nlogo.ReadModel(req.ModelPath)
	if err != nil {
		return nil, err
	}

	res := &Result{ModelPath: req.ModelPath}
	processed := map[string]bool{}

	for i := range model.Experiments {
		exp := &model.Experiments[i]
		if !req.All && !containsName(req.Experiments, exp.Name) {
			continue
		}
		processed[exp.Name] = true

		expRes, err := e.splitExperiment(ctx, req, exp, tmpl, scriptExt, res)
		if err != nil {
			return nil, fmt.Errorf("split experiment %q: %w", exp.Name, err)
		}
		res.Experiments = append(res.Experiments, *expRes)
	}

	for _, name := range req.Experiments {
		if !processed[name] {
			res.Missing = append(res.Missing, name)
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"experiment %q not found in model file %s", name, req.ModelPath))
		}
	}

	return res, nil
}

// splitExperiment emits all artifacts for a single experiment.
func (e *Engine) splitExperiment(ctx context.Context, req Request, exp *nlogo.Experiment,
	tmpl *script.Template, scriptExt string, res *Result) (*ExperimentResult, error) {

	var rec *state.Split
	if e.store != nil {
		var err error
		rec, err = e.store.CreateSplit(req.ModelPath, exp.Name, req.OutputDir)
		if err != nil {
			return nil, err
		}
	}

	expRes, err := e.emitExperiment(ctx, req, exp, tmpl, scriptExt, res)

	if e.store != nil && rec != nil {
		status, errMsg, runs := state.StatusSuccess, "", 0
		if err != nil {
			status, errMsg = state.StatusFailed, err.Error()
		} else {
			runs = expRes.Runs
		}
		if serr := e.store.CompleteSplit(rec.ID, status, runs, errMsg); serr != nil {
			e.logger.Warn("failed to record split completion", "error", serr)
		}
	}

	return expRes, err
}

func (e *Engine) emitExperiment(ctx context.Context, req Request, exp *nlogo.Experiment,
	tmpl *script.Template, scriptExt string, res *Result) (*ExperimentResult, error) {

	plan := BuildPlan(exp, req.RepetitionsPerRun)
	for _, w := range plan.Warnings {
		e.logger.Warn(w)
		res.Warnings = append(res.Warnings, w)
	}

	name := SanitizeName(exp.Name)
	pad := plan.PadWidth()
	runs := plan.Runs()

	e.logger.Info("splitting experiment",
		"experiment", exp.Name,
		"combinations", plan.Combinations(),
		"runs", len(runs))

	for _, run := range runs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(req.OutputDir,
			fmt.Sprintf("%s%s_%0*d.xml", req.OutputPrefix, name, pad, run.Number))
		instance := plan.Materialize(run)
		if err := writeFileAtomic(path, func(w io.Writer) error {
			return nlogo.WriteExperiment(w, instance)
		}); err != nil {
			return nil, err
		}
		e.logger.Debug("wrote setup file", "path", path)
	}

	expRes := &ExperimentResult{Name: exp.Name, Runs: len(runs)}

	if req.RunTable {
		path := filepath.Join(req.OutputDir,
			fmt.Sprintf("%s%s_run_table.csv", req.OutputPrefix, name))
		rows := BuildRunTable(plan)
		if err := writeFileAtomic(path, func(w io.Writer) error {
			return runtable.Write(w, rows)
		}); err != nil {
			return nil, err
		}
		expRes.RunTablePath = path
	}

	if tmpl != nil {
		path := filepath.Join(req.ScriptOutputDir,
			fmt.Sprintf("%s%s_script%s", req.OutputPrefix, name, scriptExt))
		rendered, unknown := tmpl.Render(map[string]string{
			"model":     req.ModelPath,
			"modelname": modelName(req.ModelPath),
			// netlogo-headless --experiment takes the name exactly as
			// written in the model, not the sanitized file form.
			"experiment": exp.Name,
			"numexps":    fmt.Sprintf("%d", len(runs)),
			"csvfpath":   req.CSVOutputDir,
		})
		for _, key := range unknown {
			w := fmt.Sprintf("unsupported key {%s} in script template, ignoring", key)
			e.logger.Warn(w)
			res.Warnings = append(res.Warnings, w)
		}
		if err := writeFileAtomic(path, func(w io.Writer) error {
			_, err := io.WriteString(w, rendered)
			return err
		}); err != nil {
			return nil, err
		}
		expRes.ScriptPath = path
	}

	return expRes, nil
}

// resolvePaths applies path translation and defaulting to the request.
// netlogo-headless runs from the NetLogo install directory, so relative
// paths in generated scripts break; everything becomes absolute unless the
// caller opted out.
func (e *Engine) resolvePaths(req *Request) error {
	abs := func(p string) (string, error) {
		if req.NoPathTranslation {
			return p, nil
		}
		return filepath.Abs(p)
	}

	var err error
	if req.OutputDir == "" {
		req.OutputDir = "."
	}
	if req.OutputDir, err = abs(req.OutputDir); err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}
	if req.ScriptOutputDir == "" {
		req.ScriptOutputDir = req.OutputDir
	} else if req.ScriptOutputDir, err = abs(req.ScriptOutputDir); err != nil {
		return fmt.Errorf("resolve script output dir: %w", err)
	}
	if req.CSVOutputDir == "" {
		req.CSVOutputDir = req.OutputDir
	} else if req.CSVOutputDir, err = abs(req.CSVOutputDir); err != nil {
		return fmt.Errorf("resolve csv output dir: %w", err)
	}
	if req.ModelPath, err = abs(req.ModelPath); err != nil {
		return fmt.Errorf("resolve model path: %w", err)
	}

	if err := os.MkdirAll(req.OutputDir, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if req.ScriptOutputDir != req.OutputDir {
		if err := os.MkdirAll(req.ScriptOutputDir, 0o750); err != nil {
			return fmt.Errorf("create script output dir: %w", err)
		}
	}
	return nil
}

// modelName is the model file base name up to the first dot.
func modelName(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
