package domain

import "time"

// Command is an external process invocation.
type Command struct {
	Argv    []string
	Dir     string
	Env     map[string]string
	Timeout time.Duration
}

// CommandResult is what the process runner reports back.
type CommandResult struct {
	ExitCode int
	// Output holds the tail of the combined stdout and stderr.
	Output string
}
