package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tend/internal/core/domain"
)

func TestFingerprint_NewerThan(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older := domain.Fingerprint{Exists: true, ModTime: base}
	newer := domain.Fingerprint{Exists: true, ModTime: base.Add(time.Second)}
	absent := domain.Absent()

	assert.True(t, newer.NewerThan(older))
	assert.False(t, older.NewerThan(newer))
	assert.False(t, older.NewerThan(older), "equal fingerprints are not newer")
	assert.True(t, older.NewerThan(absent), "absent is older than everything")
	assert.False(t, absent.NewerThan(older))
	assert.False(t, absent.NewerThan(absent))
}

func TestFingerprint_Same(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("absent never matches a real fingerprint", func(t *testing.T) {
		present := domain.Fingerprint{Exists: true}
		assert.False(t, domain.Absent().Same(present))
		assert.True(t, domain.Absent().Same(domain.Absent()))
	})

	t.Run("digest decides when both sides have one", func(t *testing.T) {
		a := domain.Fingerprint{Exists: true, ModTime: base, Digest: 1, HasDigest: true}
		b := domain.Fingerprint{Exists: true, ModTime: base.Add(time.Hour), Digest: 1, HasDigest: true}
		c := domain.Fingerprint{Exists: true, ModTime: base, Digest: 2, HasDigest: true}
		assert.True(t, a.Same(b))
		assert.False(t, a.Same(c))
	})

	t.Run("mtime decides otherwise", func(t *testing.T) {
		a := domain.Fingerprint{Exists: true, ModTime: base}
		b := domain.Fingerprint{Exists: true, ModTime: base, Digest: 9, HasDigest: true}
		assert.True(t, a.Same(b))
	})
}

func TestOldest(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := domain.Fingerprint{Exists: true, ModTime: base.Add(time.Minute)}
	b := domain.Fingerprint{Exists: true, ModTime: base}

	assert.Equal(t, b, domain.Oldest(a, b))
	assert.False(t, domain.Oldest(a, domain.Absent()).Present())
	assert.False(t, domain.Oldest().Present())
}

func TestParseFingerprintMode(t *testing.T) {
	mode, err := domain.ParseFingerprintMode("")
	require.NoError(t, err)
	assert.Equal(t, domain.FingerprintModTime, mode)

	mode, err = domain.ParseFingerprintMode("Content")
	require.NoError(t, err)
	assert.Equal(t, domain.FingerprintContent, mode)
	assert.Equal(t, "content", mode.String())

	_, err = domain.ParseFingerprintMode("sha")
	require.ErrorIs(t, err, domain.ErrInvalidFingerprintMode)
}

func TestSortTrackedFiles(t *testing.T) {
	files := domain.TrackFiles("b.ts", "./a.ts", "b.ts", "resources.ts")

	sorted := domain.SortTrackedFiles(files)

	paths := make([]string, len(sorted))
	for i, f := range sorted {
		paths[i] = f.String()
	}
	assert.Equal(t, []string{"a.ts", "b.ts", "resources.ts"}, paths)
}
