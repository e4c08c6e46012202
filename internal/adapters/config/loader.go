// Package config loads taskfiles into registered tasks.
package config

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"go.trai.ch/tend/internal/core/domain"
	"go.trai.ch/tend/internal/core/ports"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader for YAML and HCL taskfiles.
type Loader struct {
	logger   ports.Logger
	scanner  ports.FileScanner
	resolver ports.InputResolver
	runner   ports.CommandRunner
}

// NewLoader creates a new Loader. The scanner and resolver back dynamic file sets;
// the runner backs command actions.
func NewLoader(
	logger ports.Logger,
	scanner ports.FileScanner,
	resolver ports.InputResolver,
	runner ports.CommandRunner,
) *Loader {
	return &Loader{
		logger:   logger,
		scanner:  scanner,
		resolver: resolver,
		runner:   runner,
	}
}

// Load reads the taskfile at path, or the first one found walking up from cwd when path is empty.
func (l *Loader) Load(cwd, path string) (*domain.Project, error) {
	if path == "" {
		found, err := findTaskfile(cwd)
		if err != nil {
			return nil, err
		}
		path = found
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, domain.WithKind(domain.ErrConfigReadFailed, err, "path", path)
	}

	root := filepath.Dir(path)
	var tf *Taskfile
	if filepath.Ext(path) == ".hcl" {
		tf, err = decodeHCL(path, root, data)
	} else {
		tf, err = decodeYAML(path, data)
	}
	if err != nil {
		return nil, err
	}

	return l.buildProject(path, root, tf)
}

func decodeYAML(path string, data []byte) (*Taskfile, error) {
	var tf Taskfile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, domain.WithKind(domain.ErrConfigParseFailed, err, "path", path)
	}
	return &tf, nil
}

func findTaskfile(cwd string) (string, error) {
	currentDir := cwd
	for {
		for _, name := range taskfileNames {
			candidate := filepath.Join(currentDir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", domain.Annotate(domain.ErrConfigNotFound, "cwd", cwd)
		}
		currentDir = parentDir
	}
}

func (l *Loader) buildProject(path, root string, tf *Taskfile) (*domain.Project, error) {
	mode, err := domain.ParseFingerprintMode(tf.Fingerprint)
	if err != nil {
		return nil, domain.Annotate(err, "path", path)
	}

	tasks := domain.NewTaskSet()
	for _, name := range slices.Sorted(maps.Keys(tf.Tasks)) {
		task, err := l.buildTask(name, root, tf.Tasks[name])
		if err != nil {
			return nil, domain.Annotate(err, "path", path)
		}
		if err := tasks.Register(task); err != nil {
			return nil, domain.Annotate(err, "path", path)
		}
	}

	if tf.Default != "" {
		if _, ok := tasks.Get(domain.NewInternedString(tf.Default)); !ok {
			return nil, domain.Annotate(domain.ErrTaskNotFound, "default", tf.Default, "path", path)
		}
	}

	return &domain.Project{
		Path:        path,
		Root:        root,
		Default:     tf.Default,
		Fingerprint: mode,
		Tasks:       tasks,
	}, nil
}

func (l *Loader) buildTask(name, root string, dto TaskDTO) (*domain.Task, error) {
	if err := domain.ValidateTaskName(name); err != nil {
		return nil, err
	}

	var timeout time.Duration
	if dto.Timeout != "" {
		d, err := time.ParseDuration(dto.Timeout)
		if err != nil || d < 0 {
			return nil, domain.Annotate(domain.ErrInvalidTimeout, "task", name, "timeout", dto.Timeout)
		}
		timeout = d
	}

	task := &domain.Task{
		Name:        domain.NewInternedString(name),
		Description: dto.Description,
		Action:      domain.NoAction,
		Targets:     domain.TrackFiles(resolvePaths(root, dto.Target)...),
		AlwaysRun:   dto.Always,
	}

	for _, input := range resolvePaths(root, dto.Input) {
		task.Deps = append(task.Deps, domain.DependsOnFile(input))
	}
	if len(dto.Glob) > 0 {
		task.Deps = append(task.Deps, l.globSet(root, dto.Glob))
	}
	for _, scan := range dto.Scan {
		set, err := l.scanSet(name, root, scan)
		if err != nil {
			return nil, err
		}
		task.Deps = append(task.Deps, set)
	}
	for _, dep := range dto.DependsOn {
		task.Deps = append(task.Deps, domain.DependsOnTask(dep))
	}

	if len(dto.Cmd) > 0 {
		task.Action = l.commandAction(domain.Command{
			Argv:    dto.Cmd,
			Dir:     resolvePath(root, dto.Cwd),
			Env:     dto.Environment,
			Timeout: timeout,
		})
	} else if len(task.Targets) > 0 && l.logger != nil {
		l.logger.Warn(fmt.Sprintf("task %s declares targets but no cmd", name))
	}

	return task, nil
}

func (l *Loader) globSet(root string, patterns []string) *domain.DynamicFileSet {
	patterns = slices.Clone(patterns)
	return domain.NewDynamicFileSet("glob "+strings.Join(patterns, " "), func(context.Context) ([]domain.TrackedFile, error) {
		paths, err := l.resolver.ResolveInputs(patterns, root)
		if err != nil {
			return nil, err
		}
		return domain.TrackFiles(paths...), nil
	})
}

func (l *Loader) scanSet(task, root string, scan ScanDTO) (*domain.DynamicFileSet, error) {
	skip := make([]*regexp.Regexp, 0, len(scan.Skip))
	for _, pattern := range scan.Skip {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, domain.WithKind(domain.ErrInvalidSkipPattern, err, "task", task, "pattern", pattern)
		}
		skip = append(skip, re)
	}

	dir := resolvePath(root, scan.Root)
	return domain.NewDynamicFileSet("scan "+scan.Root, func(ctx context.Context) ([]domain.TrackedFile, error) {
		paths, err := l.scanner.Scan(ctx, dir, skip)
		if err != nil {
			return nil, err
		}
		return domain.TrackFiles(paths...), nil
	}), nil
}

func (l *Loader) commandAction(cmd domain.Command) domain.Action {
	return func(ctx context.Context, stdout, stderr io.Writer) error {
		_, err := l.runner.Run(ctx, cmd, stdout, stderr)
		return err
	}
}

func resolvePath(root, path string) string {
	if path == "" {
		return root
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

func resolvePaths(root string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = resolvePath(root, p)
	}
	return out
}
