package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// TrackedFile identifies one filesystem path used as a dependency or target.
// Its fingerprint is computed per invocation and never stored on the file itself.
type TrackedFile struct {
	Path InternedString
}

// TrackFile returns a TrackedFile for the cleaned path.
func TrackFile(path string) TrackedFile {
	return TrackedFile{Path: NewInternedString(filepath.Clean(path))}
}

// TrackFiles returns TrackedFiles for all paths, preserving order.
func TrackFiles(paths ...string) []TrackedFile {
	out := make([]TrackedFile, len(paths))
	for i, p := range paths {
		out[i] = TrackFile(p)
	}
	return out
}

// String returns the path.
func (f TrackedFile) String() string {
	return f.Path.String()
}

// SortTrackedFiles sorts files lexicographically by path and drops duplicates.
func SortTrackedFiles(files []TrackedFile) []TrackedFile {
	slices.SortFunc(files, func(a, b TrackedFile) int {
		return strings.Compare(a.Path.String(), b.Path.String())
	})
	return slices.CompactFunc(files, func(a, b TrackedFile) bool {
		return a.Path == b.Path
	})
}
