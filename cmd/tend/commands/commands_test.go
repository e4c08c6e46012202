package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tend/cmd/tend/commands"
	"go.trai.ch/tend/internal/app"
	"go.trai.ch/tend/internal/build"
	"go.trai.ch/tend/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type mockApp struct {
	runFunc   func(ctx context.Context, targetNames []string, opts app.RunOptions) error
	listFunc  func(opts app.LoadOptions, w io.Writer) error
	graphFunc func(opts app.LoadOptions, targetNames []string, w io.Writer) error
}

func (m *mockApp) Run(ctx context.Context, targetNames []string, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, targetNames, opts)
	}
	return nil
}

func (m *mockApp) List(opts app.LoadOptions, w io.Writer) error {
	if m.listFunc != nil {
		return m.listFunc(opts, w)
	}
	return nil
}

func (m *mockApp) Graph(opts app.LoadOptions, targetNames []string, w io.Writer) error {
	if m.graphFunc != nil {
		return m.graphFunc(opts, targetNames, w)
	}
	return nil
}

type jsonLogger struct {
	*mocks.MockLogger
	json bool
}

func (l *jsonLogger) SetJSON(enable bool) { l.json = enable }

func newLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	return mocks.NewMockLogger(gomock.NewController(t))
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		var capturedTargets []string

		mock := &mockApp{
			runFunc: func(_ context.Context, targetNames []string, opts app.RunOptions) error {
				capturedOpts = opts
				capturedTargets = targetNames
				return nil
			},
		}

		cli := commands.New(mock, newLogger(t))
		cli.SetArgs([]string{
			"-f", "ci/tend.yaml", "run", "build", "test",
			"-j", "4", "--fail-fast", "--dry-run", "--trace", "otel", "--report", "out/report.json",
		})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []string{"build", "test"}, capturedTargets)
		assert.Equal(t, app.RunOptions{
			LoadOptions: app.LoadOptions{ConfigPath: "ci/tend.yaml"},
			Jobs:        4,
			FailFast:    true,
			DryRun:      true,
			Trace:       "otel",
			ReportPath:  "out/report.json",
		}, capturedOpts)
	})

	t.Run("defaults", func(t *testing.T) {
		var capturedOpts app.RunOptions
		var capturedTargets []string
		mock := &mockApp{
			runFunc: func(_ context.Context, targetNames []string, opts app.RunOptions) error {
				capturedOpts = opts
				capturedTargets = targetNames
				return nil
			},
		}

		cli := commands.New(mock, newLogger(t))
		cli.SetArgs([]string{"run"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Empty(t, capturedTargets)
		assert.Equal(t, 0, capturedOpts.Jobs)
		assert.False(t, capturedOpts.FailFast)
		assert.Equal(t, "none", capturedOpts.Trace)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock, newLogger(t))
		cli.SetArgs([]string{"run", "target"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_List(t *testing.T) {
	var captured app.LoadOptions
	mock := &mockApp{
		listFunc: func(opts app.LoadOptions, w io.Writer) error {
			captured = opts
			_, err := io.WriteString(w, "* build\n")
			return err
		},
	}

	buf := new(bytes.Buffer)
	cli := commands.New(mock, newLogger(t))
	cli.SetArgs([]string{"list", "--file", "tend.hcl"})
	cli.SetOutput(buf, buf)

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "tend.hcl", captured.ConfigPath)
	assert.Equal(t, "* build\n", buf.String())
}

func TestCommands_ListRejectsArgs(t *testing.T) {
	cli := commands.New(&mockApp{}, newLogger(t))
	cli.SetArgs([]string{"list", "extra"})
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

	require.Error(t, cli.Execute(context.Background()))
}

func TestCommands_Graph(t *testing.T) {
	var captured []string
	mock := &mockApp{
		graphFunc: func(_ app.LoadOptions, targetNames []string, w io.Writer) error {
			captured = targetNames
			_, err := io.WriteString(w, "lib\napp <- lib\n")
			return err
		},
	}

	buf := new(bytes.Buffer)
	cli := commands.New(mock, newLogger(t))
	cli.SetArgs([]string{"graph", "app"})
	cli.SetOutput(buf, buf)

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, []string{"app"}, captured)
	assert.Equal(t, "lib\napp <- lib\n", buf.String())
}

func TestCommands_LogJSON(t *testing.T) {
	log := &jsonLogger{MockLogger: newLogger(t)}
	cli := commands.New(&mockApp{}, log)
	cli.SetArgs([]string{"--log-json", "list"})
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, log.json)
}

func TestCommands_Version(t *testing.T) {
	build.Version = "1.2.3"
	build.Commit = "abc123"
	build.Date = "2026-01-01"
	t.Cleanup(func() {
		build.Version = "dev"
		build.Commit = "none"
		build.Date = "unknown"
	})

	t.Run("command", func(t *testing.T) {
		buf := new(bytes.Buffer)
		cli := commands.New(&mockApp{}, newLogger(t))
		cli.SetArgs([]string{"version"})
		cli.SetOutput(buf, buf)

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "tend version 1.2.3 (commit: abc123, date: 2026-01-01)\n", buf.String())
	})

	t.Run("flag", func(t *testing.T) {
		buf := new(bytes.Buffer)
		cli := commands.New(&mockApp{}, newLogger(t))
		cli.SetArgs([]string{"--version"})
		cli.SetOutput(buf, buf)

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), "version")
	})
}
