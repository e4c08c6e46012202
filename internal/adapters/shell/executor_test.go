package shell_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tend/internal/adapters/shell"
	"go.trai.ch/tend/internal/core/domain"
	"go.trai.ch/tend/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestExecutor_Run_StreamsOutput(t *testing.T) {
	executor := shell.NewExecutor(nil)
	var stdout, stderr bytes.Buffer

	res, err := executor.Run(context.Background(), domain.Command{
		Argv: []string{"sh", "-c", "echo line1; echo line2 >&2"},
		Dir:  t.TempDir(),
	}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "line1\n", stdout.String())
	assert.Equal(t, "line2\n", stderr.String())
	assert.Contains(t, res.Output, "line1")
	assert.Contains(t, res.Output, "line2")
}

func TestExecutor_Run_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	executor := shell.NewExecutor(nil)

	_, err := executor.Run(context.Background(), domain.Command{
		Argv: []string{"sh", "-c", "echo hi > out.txt"},
		Dir:  dir,
	}, nil, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(data))
}

func TestExecutor_Run_EnvironmentOverrides(t *testing.T) {
	t.Setenv("TEND_TEST_BASE", "from-system")
	executor := shell.NewExecutor(nil)
	var stdout bytes.Buffer

	_, err := executor.Run(context.Background(), domain.Command{
		Argv: []string{"sh", "-c", "echo $TEND_TEST_BASE $TEND_TEST_VAR"},
		Env:  map[string]string{"TEND_TEST_VAR": "from-task"},
	}, &stdout, nil)

	require.NoError(t, err)
	assert.Equal(t, "from-system from-task\n", stdout.String())
}

func TestExecutor_Run_NonZeroExit(t *testing.T) {
	executor := shell.NewExecutor(nil)

	res, err := executor.Run(context.Background(), domain.Command{
		Argv: []string{"sh", "-c", "echo broken >&2; exit 3"},
	}, nil, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCommandFailed))
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "broken\n", res.Output)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, 3, zErr.Metadata()["exit_code"])
	assert.Equal(t, "broken\n", zErr.Metadata()["output"])
}

func TestExecutor_Run_MissingExecutable(t *testing.T) {
	executor := shell.NewExecutor(nil)

	res, err := executor.Run(context.Background(), domain.Command{
		Argv: []string{"tend-definitely-not-a-command"},
	}, nil, nil)

	require.ErrorIs(t, err, domain.ErrCommandFailed)
	assert.Equal(t, -1, res.ExitCode)
}

func TestExecutor_Run_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Cond(func(msg string) bool {
		return strings.Contains(msg, "timed out")
	})).Times(1)

	executor := shell.NewExecutor(log)
	start := time.Now()

	_, err := executor.Run(context.Background(), domain.Command{
		Argv:    []string{"sleep", "10"},
		Timeout: 100 * time.Millisecond,
	}, nil, nil)

	require.ErrorIs(t, err, domain.ErrCommandFailed)
	assert.Less(t, time.Since(start), 5*time.Second)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "100ms", zErr.Metadata()["timeout"])
}

func TestExecutor_Run_EmptyArgv(t *testing.T) {
	res, err := shell.NewExecutor(nil).Run(context.Background(), domain.Command{}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.CommandResult{}, res)
}

func TestExecutor_Run_OutputTailIsBounded(t *testing.T) {
	executor := shell.NewExecutor(nil)
	executor.SetTailSize(8)

	res, err := executor.Run(context.Background(), domain.Command{
		Argv: []string{"sh", "-c", "printf 0123456789abcdef; exit 1"},
	}, nil, nil)

	require.Error(t, err)
	assert.Equal(t, "89abcdef", res.Output)
}
