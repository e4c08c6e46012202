package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tend/internal/core/domain"
	"go.trai.ch/tend/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter summarizes files by modification time and, in content mode, an xxhash digest.
type Fingerprinter struct{}

// NewFingerprinter creates a new Fingerprinter.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{}
}

// Fingerprint returns the fingerprint of path, or domain.Absent() if it does not exist.
// Directories are fingerprinted by their own mtime.
func (f *Fingerprinter) Fingerprint(path string, mode domain.FingerprintMode) (domain.Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.Absent(), nil
		}
		return domain.Absent(), zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()), "path", path)
	}

	fp := domain.Fingerprint{
		Exists:  true,
		ModTime: info.ModTime(),
	}
	if mode == domain.FingerprintContent && info.Mode().IsRegular() {
		digest, err := ComputeFileHash(path)
		if err != nil {
			return domain.Absent(), err
		}
		fp.Digest = digest
		fp.HasDigest = true
	}
	return fp, nil
}

// ComputeFileHash computes the XXHash of a file's content.
func ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}
