// Package shell runs task commands as subprocesses.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/tend/internal/core/domain"
	"go.trai.ch/tend/internal/core/ports"
)

const (
	// DefaultTailSize is the number of trailing output bytes kept for error reports.
	DefaultTailSize = 4096
	// waitDelay bounds how long Wait blocks on output pipes held open by orphaned children.
	waitDelay = 2 * time.Second
)

var _ ports.CommandRunner = (*Executor)(nil)

// Executor implements ports.CommandRunner using os/exec.
type Executor struct {
	logger   ports.Logger
	tailSize int
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger:   logger,
		tailSize: DefaultTailSize,
	}
}

// Run executes cmd and streams its output to stdout and stderr.
// The process environment is the system environment overridden by cmd.Env.
// A non-zero Timeout kills the process once it elapses.
func (e *Executor) Run(
	ctx context.Context,
	cmd domain.Command,
	stdout, stderr io.Writer,
) (domain.CommandResult, error) {
	if len(cmd.Argv) == 0 {
		return domain.CommandResult{}, nil
	}

	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	name := cmd.Argv[0]
	env := resolveEnvironment(os.Environ(), cmd.Env)

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Argv[1:]...) //nolint:gosec // user provided command
	c.Args[0] = name
	c.Dir = cmd.Dir
	c.Env = env
	c.WaitDelay = waitDelay

	tail := newTailBuffer(e.tailSize)
	c.Stdout = io.MultiWriter(writerOrDiscard(stdout), tail)
	c.Stderr = io.MultiWriter(writerOrDiscard(stderr), tail)

	err := c.Run()
	result := domain.CommandResult{ExitCode: 0, Output: tail.String()}
	if err == nil {
		return result, nil
	}

	result.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	}

	kv := []any{"exit_code", result.ExitCode, "output", result.Output}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		kv = append(kv, "timeout", cmd.Timeout.String())
		if e.logger != nil {
			e.logger.Warn("command " + name + " timed out after " + cmd.Timeout.String())
		}
	}
	return result, domain.WithKind(domain.ErrCommandFailed, err, kv...)
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// resolveEnvironment merges the system environment with task overrides.
// The result is sorted by key.
func resolveEnvironment(sysEnv []string, taskEnv map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(taskEnv))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range taskEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by PATH in env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}

// tailBuffer keeps the last size bytes written to it.
type tailBuffer struct {
	mu   sync.Mutex
	size int
	buf  []byte
}

func newTailBuffer(size int) *tailBuffer {
	return &tailBuffer{size: size}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.size; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}
