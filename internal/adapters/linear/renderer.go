// Package linear provides a line-oriented renderer for terminals and CI logs.
package linear

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/tend/internal/core/domain"
	"go.trai.ch/tend/internal/core/ports"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer with chronological, task-prefixed lines.
// Task output goes to stdout; status lines and the summary go to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu      sync.Mutex
	started map[string]time.Time
	buffers map[string]*bytes.Buffer
}

// NewRenderer creates a Renderer. Nil writers select the process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  termenv.NewOutput(stderr, termenv.WithProfile(colorProfile())),
		started: make(map[string]time.Time),
		buffers: make(map[string]*bytes.Buffer),
	}
}

func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// OnPlan prints the number of planned tasks.
func (r *Renderer) OnPlan(tasks, targets []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Planning %d task(s) for target(s): %s\n",
		len(tasks), strings.Join(targets, ", "))
}

// OnTaskStart prints a start line for the task.
func (r *Renderer) OnTaskStart(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.started[name] = time.Now()
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", r.prefix(name))
}

// TaskOutput returns a writer that prints complete lines prefixed with the task name.
func (r *Renderer) TaskOutput(name string) io.Writer {
	return &taskWriter{r: r, name: name}
}

// OnTaskComplete flushes pending output and prints the task's outcome.
func (r *Renderer) OnTaskComplete(result domain.TaskResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.flushLocked(result.Name)
	delete(r.started, result.Name)

	prefix := r.prefix(result.Name)
	switch result.Outcome {
	case domain.OutcomeRan:
		_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v (%s)\n",
			prefix, r.symbol(result.Outcome), round(result.Duration), reason(result))
	case domain.OutcomeFresh:
		_, _ = fmt.Fprintf(r.stderr, "%s %s Up to date\n", prefix, r.symbol(result.Outcome))
	case domain.OutcomeFailed:
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n",
			prefix, r.symbol(result.Outcome), round(result.Duration), result.Err)
	case domain.OutcomeSkippedDependencyFailed:
		_, _ = fmt.Fprintf(r.stderr, "%s %s Skipped: dependency %s did not succeed\n",
			prefix, r.symbol(result.Outcome), result.Detail)
	case domain.OutcomeCancelled:
		_, _ = fmt.Fprintf(r.stderr, "%s %s Cancelled\n", prefix, r.symbol(result.Outcome))
	}
}

// Summary prints one line per task in plan order, the failure details and the totals.
func (r *Renderer) Summary(report *domain.RunReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	if report.DryRun {
		b.WriteString("\nDry run summary:\n")
	} else {
		b.WriteString("\nSummary:\n")
	}

	width := 0
	for _, res := range report.Results {
		width = max(width, len(res.Name))
	}

	for _, res := range report.Results {
		outcome := res.Outcome.String()
		if report.DryRun && res.Outcome == domain.OutcomeRan {
			outcome = "would-run"
		}
		line := fmt.Sprintf("  %s %-*s  %-25s %s", r.symbol(res.Outcome), width, res.Name, outcome, reason(res))
		b.WriteString(strings.TrimRight(line, " ") + "\n")

		if res.Outcome == domain.OutcomeFailed {
			writeFailure(&b, res)
		}
	}

	fmt.Fprintf(&b, "%d task(s): %d ran, %d fresh, %d failed, %d skipped, %d cancelled (%v)\n",
		len(report.Results),
		report.Count(domain.OutcomeRan),
		report.Count(domain.OutcomeFresh),
		report.Count(domain.OutcomeFailed),
		report.Count(domain.OutcomeSkippedDependencyFailed),
		report.Count(domain.OutcomeCancelled),
		round(report.Duration),
	)

	_, err := io.WriteString(r.stderr, b.String())
	return err
}

func writeFailure(b *strings.Builder, res domain.TaskResult) {
	msg, meta := res.ErrorDetail()
	if msg == "" {
		return
	}
	fmt.Fprintf(b, "      %s\n", msg)

	output, _ := meta["output"].(string)
	delete(meta, "output")
	delete(meta, "task")
	for _, key := range slices.Sorted(maps.Keys(meta)) {
		fmt.Fprintf(b, "      %s: %v\n", key, meta[key])
	}
	if output = strings.TrimRight(output, "\n"); output != "" {
		b.WriteString("      output:\n")
		for _, line := range strings.Split(output, "\n") {
			fmt.Fprintf(b, "        | %s\n", line)
		}
	}
}

func reason(res domain.TaskResult) string {
	if res.Reason == "" {
		return ""
	}
	if res.Detail == "" {
		return string(res.Reason)
	}
	return fmt.Sprintf("%s (%s)", res.Reason, res.Detail)
}

func round(d time.Duration) time.Duration {
	return d.Round(time.Millisecond)
}

func (r *Renderer) prefix(name string) string {
	return r.output.String("[" + name + "]").Faint().String()
}

func (r *Renderer) symbol(o domain.Outcome) string {
	switch o {
	case domain.OutcomeRan:
		return r.output.String("✓").Foreground(termenv.ANSIGreen).String()
	case domain.OutcomeFresh:
		return r.output.String("•").Faint().String()
	case domain.OutcomeFailed:
		return r.output.String("✗").Foreground(termenv.ANSIRed).String()
	default:
		return r.output.String("-").Foreground(termenv.ANSIYellow).String()
	}
}

// flushLocked prints any partial line left for the task. Must be called with r.mu held.
func (r *Renderer) flushLocked(name string) {
	buf, ok := r.buffers[name]
	if !ok {
		return
	}
	if buf.Len() > 0 {
		r.printLineLocked(name, buf.Bytes())
	}
	delete(r.buffers, name)
}

// printLineLocked prints a line with the task name prefix. Must be called with r.mu held.
func (r *Renderer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", name, line)
}

// taskWriter buffers a task's output and prints it line by line.
type taskWriter struct {
	r    *Renderer
	name string
}

func (w *taskWriter) Write(p []byte) (int, error) {
	w.r.mu.Lock()
	defer w.r.mu.Unlock()

	buf, ok := w.r.buffers[w.name]
	if !ok {
		buf = new(bytes.Buffer)
		w.r.buffers[w.name] = buf
	}
	buf.Write(p)

	for {
		i := bytes.IndexByte(buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		w.r.printLineLocked(w.name, buf.Next(i+1))
	}
	return len(p), nil
}
