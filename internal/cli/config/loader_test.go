package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output-dir", "", "")
	flags.String("output-prefix", "", "")
	flags.Int("repetitions-per-run", DefaultRepetitionsPerRun, "")
	flags.String("state", "", "")
	flags.Bool("verbose", false, "")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	ResetConfig()

	cfg, err := LoadConfig("", newFlags())
	require.NoError(t, err)

	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, DefaultRepetitionsPerRun, cfg.RepetitionsPerRun)
	assert.Equal(t, DefaultStateFile, cfg.StatePath)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	ResetConfig()

	content := `output_dir: runs
output_prefix: hpc_
repetitions_per_run: 5
`
	require.NoError(t, os.WriteFile("nlsplit.yaml", []byte(content), 0o644))

	cfg, err := LoadConfig("", newFlags())
	require.NoError(t, err)

	// Relative paths from the config file resolve against its directory.
	assert.Equal(t, filepath.Join(dir, "runs"), cfg.OutputDir)
	assert.Equal(t, "hpc_", cfg.OutputPrefix)
	assert.Equal(t, 5, cfg.RepetitionsPerRun)
	assert.Equal(t, filepath.Join(dir, "nlsplit.yaml"), GetConfigFileUsed())
}

func TestLoadConfig_UpwardSearch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nlsplit.yml"), []byte("output_prefix: up_\n"), 0o644))
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	t.Chdir(sub)
	ResetConfig()

	cfg, err := LoadConfig("", newFlags())
	require.NoError(t, err)
	assert.Equal(t, "up_", cfg.OutputPrefix)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	ResetConfig()

	require.NoError(t, os.WriteFile("nlsplit.yaml", []byte("output_prefix: file_\n"), 0o644))
	t.Setenv("NLSPLIT_OUTPUT_PREFIX", "env_")

	cfg, err := LoadConfig("", newFlags())
	require.NoError(t, err)
	assert.Equal(t, "env_", cfg.OutputPrefix)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	ResetConfig()

	t.Setenv("NLSPLIT_REPETITIONS_PER_RUN", "7")

	flags := newFlags()
	require.NoError(t, flags.Set("repetitions-per-run", "3"))
	require.NoError(t, flags.Set("output-prefix", "flag_"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.RepetitionsPerRun)
	assert.Equal(t, "flag_", cfg.OutputPrefix)
}

func TestLoadConfig_StateFlagMapsToStatePath(t *testing.T) {
	t.Chdir(t.TempDir())
	ResetConfig()

	flags := newFlags()
	require.NoError(t, flags.Set("state", "custom/state.db"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "custom/state.db", cfg.StatePath)
}

func TestLoadConfig_ExplicitMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	ResetConfig()

	_, err := LoadConfig("does-not-exist.yaml", newFlags())
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{RepetitionsPerRun: -1}
	assert.Error(t, cfg.Validate())

	cfg = &Config{ScriptTemplate: filepath.Join(t.TempDir(), "missing.pbs")}
	assert.Error(t, cfg.Validate())

	cfg = &Config{RepetitionsPerRun: 1}
	assert.NoError(t, cfg.Validate())
}
