// Package config provides configuration management for the nlsplit CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	// OutputDir receives the generated setup files.
	OutputDir string `koanf:"output_dir"`
	// OutputPrefix is prepended to every generated file name.
	OutputPrefix string `koanf:"output_prefix"`
	// ScriptTemplate is the path to a script template file; empty disables
	// script generation.
	ScriptTemplate string `koanf:"script_template"`
	// ScriptOutputDir overrides OutputDir for generated scripts.
	ScriptOutputDir string `koanf:"script_output_dir"`
	// CSVOutputDir is substituted for {csvfpath} in script templates.
	CSVOutputDir string `koanf:"csv_output_dir"`
	// RepetitionsPerRun splits experiment repetitions across runs.
	RepetitionsPerRun int `koanf:"repetitions_per_run"`
	// StatePath is the SQLite split-history database.
	StatePath string `koanf:"state_path"`
	// NoPathTranslation preserves paths exactly as given.
	NoPathTranslation bool `koanf:"no_path_translation"`
	// NoState disables split-history recording.
	NoState bool `koanf:"no_state"`
	Verbose bool `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultOutputDir         = "."
	DefaultRepetitionsPerRun = 1
	DefaultStateFile         = ".nlsplit/state.db"
)
