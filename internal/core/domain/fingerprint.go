package domain

import (
	"strings"
	"time"
)

// FingerprintMode selects how a file's state is summarized.
type FingerprintMode int

const (
	// FingerprintModTime summarizes a file by its modification time only.
	FingerprintModTime FingerprintMode = iota
	// FingerprintContent adds an xxhash digest of the file content.
	FingerprintContent
)

// String returns the taskfile spelling of the mode.
func (m FingerprintMode) String() string {
	if m == FingerprintContent {
		return "content"
	}
	return "mtime"
}

// ParseFingerprintMode parses the taskfile spelling of a mode. The empty string selects mtime.
func ParseFingerprintMode(s string) (FingerprintMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mtime":
		return FingerprintModTime, nil
	case "content":
		return FingerprintContent, nil
	default:
		return FingerprintModTime, Annotate(ErrInvalidFingerprintMode, "mode", s)
	}
}

// Fingerprint is a comparable summary of a file's state.
// The zero value is the absent fingerprint.
type Fingerprint struct {
	Exists    bool
	ModTime   time.Time
	Digest    uint64
	HasDigest bool
}

// Absent returns the fingerprint of a path that does not exist.
func Absent() Fingerprint {
	return Fingerprint{}
}

// Present reports whether the fingerprint belongs to an existing file.
func (f Fingerprint) Present() bool {
	return f.Exists
}

// NewerThan reports whether f is strictly newer than other.
// An absent fingerprint is older than everything, including another absent one.
func (f Fingerprint) NewerThan(other Fingerprint) bool {
	if !f.Exists {
		return false
	}
	if !other.Exists {
		return true
	}
	return f.ModTime.After(other.ModTime)
}

// Same reports whether two fingerprints describe the same file state.
// Absent never matches a real fingerprint. Digests decide when both sides carry one.
func (f Fingerprint) Same(other Fingerprint) bool {
	if f.Exists != other.Exists {
		return false
	}
	if !f.Exists {
		return true
	}
	if f.HasDigest && other.HasDigest {
		return f.Digest == other.Digest
	}
	return f.ModTime.Equal(other.ModTime)
}

// Oldest returns the oldest fingerprint in fps, or Absent if fps is empty or any entry is absent.
func Oldest(fps ...Fingerprint) Fingerprint {
	if len(fps) == 0 {
		return Absent()
	}
	oldest := fps[0]
	for _, fp := range fps[1:] {
		if oldest.NewerThan(fp) {
			oldest = fp
		}
	}
	return oldest
}
