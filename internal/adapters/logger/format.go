package logger

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// ErrorEntry is one level of an error chain as printed to the operator.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries flattens err into one entry per message.
// Wrappers without a message lend their metadata to the next entry.
// An error joining several causes contributes all but the last as plain entries
// and the chain continues into the last.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any

	push := func(msg string, meta map[string]any) {
		if len(pending) > 0 {
			merged := maps.Clone(meta)
			if merged == nil {
				merged = map[string]any{}
			}
			maps.Copy(merged, pending)
			meta = merged
			pending = nil
		}
		entries = append(entries, ErrorEntry{Message: msg, Metadata: meta})
	}

	for current := err; current != nil; {
		if zErr, ok := current.(*zerr.Error); ok {
			if zErr.Message() == "" {
				if pending == nil {
					pending = map[string]any{}
				}
				for k, v := range zErr.Metadata() {
					if _, ok := pending[k]; !ok {
						pending[k] = v
					}
				}
			} else {
				push(zErr.Message(), zErr.Metadata())
			}
			current = zErr.Unwrap()
			continue
		}

		if multi, ok := current.(interface{ Unwrap() []error }); ok {
			children := multi.Unwrap()
			if len(children) > 0 {
				for _, child := range children[:len(children)-1] {
					push(child.Error(), nil)
				}
				current = children[len(children)-1]
				continue
			}
		}

		push(current.Error(), nil)
		break
	}

	return entries
}

// formatErrorEntries renders entries as a headline followed by its causes.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		prefix, indent := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			prefix, indent = "    → ", "      "
		}

		lines = append(lines, prefix+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
