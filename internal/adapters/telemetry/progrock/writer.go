package progrock

import (
	"fmt"
	"io"
	"sync"

	"github.com/vito/progrock"
)

var _ progrock.Writer = (*LineWriter)(nil)

// LineWriter is a progrock.Writer that prints one line per completed vertex.
type LineWriter struct {
	mu      sync.Mutex
	out     io.Writer
	printed map[string]bool
}

// NewLineWriter creates a LineWriter printing to out.
func NewLineWriter(out io.Writer) *LineWriter {
	return &LineWriter{
		out:     out,
		printed: make(map[string]bool),
	}
}

// WriteStatus prints vertices that completed in this update.
func (w *LineWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range update.Vertexes {
		if v.Completed == nil || w.printed[v.Id] {
			continue
		}
		w.printed[v.Id] = true

		status := "done"
		switch {
		case v.Error != nil:
			status = "failed: " + *v.Error
		case v.Cached:
			status = "not run"
		}

		var elapsed string
		if v.Started != nil {
			elapsed = fmt.Sprintf(" (%s)", v.Completed.AsTime().Sub(v.Started.AsTime()))
		}
		if _, err := fmt.Fprintf(w.out, "[%s] %s%s\n", v.Name, status, elapsed); err != nil {
			return err
		}
	}
	return nil
}

// Close does nothing.
func (w *LineWriter) Close() error {
	return nil
}
