package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tend/internal/adapters/fs"
	"go.trai.ch/tend/internal/core/domain"
)

func TestFingerprinter_Absent(t *testing.T) {
	fp, err := fs.NewFingerprinter().Fingerprint(filepath.Join(t.TempDir(), "missing"), domain.FingerprintModTime)
	require.NoError(t, err)
	assert.False(t, fp.Present())
}

func TestFingerprinter_ModTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	writeFile(t, path, "hello")
	mtime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	fp, err := fs.NewFingerprinter().Fingerprint(path, domain.FingerprintModTime)
	require.NoError(t, err)

	assert.True(t, fp.Present())
	assert.True(t, fp.ModTime.Equal(mtime))
	assert.False(t, fp.HasDigest)
}

func TestFingerprinter_Content(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	writeFile(t, a, "same content")
	writeFile(t, b, "same content")
	older := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(b, older, older))

	f := fs.NewFingerprinter()
	fa, err := f.Fingerprint(a, domain.FingerprintContent)
	require.NoError(t, err)
	fb, err := f.Fingerprint(b, domain.FingerprintContent)
	require.NoError(t, err)

	assert.True(t, fa.HasDigest)
	assert.True(t, fa.Same(fb), "equal content is the same state in content mode")

	writeFile(t, b, "edited")
	fb, err = f.Fingerprint(b, domain.FingerprintContent)
	require.NoError(t, err)
	assert.False(t, fa.Same(fb))
}

func TestComputeFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hash.txt")
	writeFile(t, path, "hello world")

	h1, err := fs.ComputeFileHash(path)
	require.NoError(t, err)
	h2, err := fs.ComputeFileHash(path)
	require.NoError(t, err)

	assert.NotZero(t, h1)
	assert.Equal(t, h1, h2)

	_, err = fs.ComputeFileHash(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
