package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskmgr configuration file
# Values can be overridden by TASKMGR_* environment variables or CLI flags

# Task file (relative to the working directory, supports ~ and $VAR)
task_file = "tasks.json"

# Log level: debug, info, warn, error
log_level = "warn"

# Log format: text, json, logfmt
log_format = "text"

# Include timestamps in log lines
log_timestamps = false
`
}
