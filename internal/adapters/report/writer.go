// Package report writes machine-readable run reports.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/tend/internal/core/domain"
	"go.trai.ch/tend/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ReportWriter = (*Writer)(nil)

// Document is the JSON form of a run report.
type Document struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Requested   []string       `json:"requested"`
	DryRun      bool           `json:"dry_run"`
	OK          bool           `json:"ok"`
	DurationMS  int64          `json:"duration_ms"`
	Counts      map[string]int `json:"counts"`
	Tasks       []TaskEntry    `json:"tasks"`
}

// TaskEntry is one task of a Document.
type TaskEntry struct {
	Name       string         `json:"name"`
	Outcome    domain.Outcome `json:"outcome"`
	Reason     domain.Reason  `json:"reason,omitempty"`
	Detail     string         `json:"detail,omitempty"`
	DurationMS int64          `json:"duration_ms"`
	Error      *ErrorEntry    `json:"error,omitempty"`
}

// ErrorEntry carries the failure detail of a task.
type ErrorEntry struct {
	Message  string `json:"message"`
	ExitCode *int   `json:"exit_code,omitempty"`
	Output   string `json:"output,omitempty"`
}

var outcomes = []domain.Outcome{
	domain.OutcomeRan,
	domain.OutcomeFresh,
	domain.OutcomeFailed,
	domain.OutcomeSkippedDependencyFailed,
	domain.OutcomeCancelled,
}

// Writer implements ports.ReportWriter with an indented JSON file.
type Writer struct {
	now func() time.Time
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{now: time.Now}
}

// NewDocument converts a run report into its JSON form.
func NewDocument(report *domain.RunReport, generatedAt time.Time) Document {
	doc := Document{
		GeneratedAt: generatedAt.UTC(),
		Requested:   report.Requested,
		DryRun:      report.DryRun,
		OK:          report.OK(),
		DurationMS:  report.Duration.Milliseconds(),
		Counts:      make(map[string]int, len(outcomes)),
		Tasks:       make([]TaskEntry, 0, len(report.Results)),
	}
	for _, o := range outcomes {
		doc.Counts[o.String()] = report.Count(o)
	}

	for _, res := range report.Results {
		entry := TaskEntry{
			Name:       res.Name,
			Outcome:    res.Outcome,
			Reason:     res.Reason,
			Detail:     res.Detail,
			DurationMS: res.Duration.Milliseconds(),
		}
		if msg, meta := res.ErrorDetail(); msg != "" {
			entry.Error = &ErrorEntry{Message: msg}
			if code, ok := meta["exit_code"].(int); ok {
				entry.Error.ExitCode = &code
			}
			entry.Error.Output, _ = meta["output"].(string)
		}
		doc.Tasks = append(doc.Tasks, entry)
	}
	return doc
}

// Write stores the report at path, replacing any previous file atomically.
func (w *Writer) Write(path string, report *domain.RunReport) error {
	path = filepath.Clean(path)

	data, err := json.MarshalIndent(NewDocument(report, w.now()), "", "  ")
	if err != nil {
		return domain.WithKind(domain.ErrReportWriteFailed, zerr.Wrap(err, "failed to marshal report"), "path", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return domain.WithKind(domain.ErrReportWriteFailed, err, "path", path)
	}

	tmp, err := os.CreateTemp(dir, ".tend-report-*.json")
	if err != nil {
		return domain.WithKind(domain.ErrReportWriteFailed, err, "path", path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return domain.WithKind(domain.ErrReportWriteFailed, err, "path", path)
	}
	if err := tmp.Close(); err != nil {
		return domain.WithKind(domain.ErrReportWriteFailed, err, "path", path)
	}
	//nolint:gosec // Path is cleaned and provided by the operator
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return domain.WithKind(domain.ErrReportWriteFailed, err, "path", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return domain.WithKind(domain.ErrReportWriteFailed, err, "path", path)
	}
	return nil
}
