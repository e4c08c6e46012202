package shell_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tend/internal/adapters/shell"
)

func TestResolveEnvironment(t *testing.T) {
	env := shell.ResolveEnvironment(
		[]string{"PATH=/usr/bin", "HOME=/root", "BROKEN"},
		map[string]string{"HOME": "/tmp/home", "CI": "1"},
	)
	assert.Equal(t, []string{"CI=1", "HOME=/tmp/home", "PATH=/usr/bin"}, env)
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "tool")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain"), nil, 0o644))

	got, err := shell.LookPath("tool", []string{"PATH=/nonexistent" + string(os.PathListSeparator) + dir})
	require.NoError(t, err)
	assert.Equal(t, bin, got)

	_, err = shell.LookPath("plain", []string{"PATH=" + dir})
	require.Error(t, err)

	_, err = shell.LookPath("tool", nil)
	require.Error(t, err)
}

func TestTailBuffer(t *testing.T) {
	tail := shell.NewTailBuffer(5)
	_, _ = tail.Write([]byte("abc"))
	_, _ = tail.Write([]byte("defg"))
	assert.Equal(t, "cdefg", shell.TailString(tail))
}
