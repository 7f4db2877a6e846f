package config

import (
	"fmt"
	"os"
	"strconv"
)

// loadFromEnv overrides config from TASKMGR_* environment variables.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	if v := os.Getenv("TASKMGR_FILE"); v != "" {
		cfg.TaskFile = v
		sources["task_file"] = SourceEnv
	}
	if v := os.Getenv("TASKMGR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		sources["log_level"] = SourceEnv
	}
	if v := os.Getenv("TASKMGR_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		sources["log_format"] = SourceEnv
	}
	if v := os.Getenv("TASKMGR_LOG_TIMESTAMPS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TASKMGR_LOG_TIMESTAMPS: %w", err)
		}
		cfg.LogTimestamps = b
		sources["log_timestamps"] = SourceEnv
	}
	return nil
}
