package config

import (
	"fmt"
	"os"
)

// Validate checks values that would only fail later with a worse message.
func (c *Config) Validate() error {
	if c.RepetitionsPerRun < 0 {
		return fmt.Errorf("repetitions_per_run must not be negative (got %d)", c.RepetitionsPerRun)
	}
	if c.ScriptTemplate != "" {
		if _, err := os.Stat(c.ScriptTemplate); os.IsNotExist(err) {
			return fmt.Errorf("script template does not exist: %s", c.ScriptTemplate)
		}
	}
	return nil
}
