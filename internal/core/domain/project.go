package domain

// Project is a loaded taskfile: the registered tasks plus invocation defaults.
type Project struct {
	// Path is the taskfile that was loaded.
	Path string
	// Root is the directory relative paths resolve against.
	Root string
	// Default is the task run when no targets are given.
	Default string
	// Fingerprint selects how tracked files are summarized.
	Fingerprint FingerprintMode
	Tasks       *TaskSet
}
