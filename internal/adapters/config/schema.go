package config

// File names searched for, in order, in each directory during discovery.
var taskfileNames = []string{"tend.yaml", "tend.yml", "tend.hcl"}

// Taskfile is the decoded form of a YAML or HCL taskfile.
// YAML declares tasks as a mapping; HCL declares labeled task blocks.
type Taskfile struct {
	Default     string             `yaml:"default" hcl:"default,optional"`
	Fingerprint string             `yaml:"fingerprint" hcl:"fingerprint,optional"`
	Tasks       map[string]TaskDTO `yaml:"tasks"`
	TaskBlocks  []TaskDTO          `yaml:"-" hcl:"task,block"`
}

// TaskDTO represents a task definition in the configuration.
type TaskDTO struct {
	Name        string            `yaml:"-" hcl:"name,label"`
	Description string            `yaml:"description" hcl:"description,optional"`
	Cmd         []string          `yaml:"cmd" hcl:"cmd,optional"`
	Cwd         string            `yaml:"cwd" hcl:"cwd,optional"`
	Environment map[string]string `yaml:"environment" hcl:"environment,optional"`
	Timeout     string            `yaml:"timeout" hcl:"timeout,optional"`
	Input       []string          `yaml:"input" hcl:"input,optional"`
	Glob        []string          `yaml:"glob" hcl:"glob,optional"`
	Scan        []ScanDTO         `yaml:"scan" hcl:"scan,block"`
	DependsOn   []string          `yaml:"dependsOn" hcl:"depends_on,optional"`
	Target      []string          `yaml:"target" hcl:"target,optional"`
	Always      bool              `yaml:"always" hcl:"always,optional"`
}

// ScanDTO declares a directory whose files are discovered when the task starts.
type ScanDTO struct {
	Root string   `yaml:"root" hcl:"root"`
	Skip []string `yaml:"skip" hcl:"skip,optional"`
}
