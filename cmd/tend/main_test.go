package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tend/internal/adapters/fs"
	"go.trai.ch/tend/internal/adapters/linear"
	"go.trai.ch/tend/internal/adapters/report"
	"go.trai.ch/tend/internal/adapters/telemetry"
	"go.trai.ch/tend/internal/app"
	"go.trai.ch/tend/internal/core/domain"
	"go.trai.ch/tend/internal/core/ports/mocks"
	"go.trai.ch/tend/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

func newComponents(t *testing.T, out io.Writer) (*app.Components, *mocks.MockConfigLoader, *mocks.MockLogger) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)

	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	renderer := linear.NewRenderer(out, out)
	sched := scheduler.NewScheduler(fs.NewFingerprinter(), renderer, telemetry.NewNoOpTracer(), log)
	application := app.New(loader, sched, renderer, telemetry.NewSet(log, out), report.NewWriter(), log)
	return app.NewComponents(application, log), loader, log
}

func provide(c *app.Components) ComponentProvider {
	return func(context.Context) (*app.Components, error) {
		return c, nil
	}
}

func failingProject(dir string) *domain.Project {
	tasks := domain.NewTaskSet()
	_ = tasks.Register(&domain.Task{
		Name: domain.NewInternedString("broken"),
		Action: func(context.Context, io.Writer, io.Writer) error {
			return errors.New("exit status 1")
		},
		AlwaysRun: true,
	})
	return &domain.Project{Path: filepath.Join(dir, "tend.yaml"), Root: dir, Default: "broken", Tasks: tasks}
}

func TestRun_Version(t *testing.T) {
	out := &bytes.Buffer{}
	components, _, _ := newComponents(t, out)

	code := run(context.Background(), []string{"version"}, out, io.Discard, provide(components))
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "tend version dev")
}

func TestRun_InitializationError(t *testing.T) {
	stderr := &bytes.Buffer{}
	code := run(context.Background(), []string{"version"}, io.Discard, stderr,
		func(context.Context) (*app.Components, error) {
			return nil, errors.New("init failed")
		})

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

func TestRun_LoadErrorIsLogged(t *testing.T) {
	components, loader, log := newComponents(t, io.Discard)
	loadErr := errors.New("load failed")
	loader.EXPECT().Load(gomock.Any(), "").Return(nil, loadErr)
	log.EXPECT().Error(loadErr).Times(1)

	code := run(context.Background(), []string{"run", "build"}, io.Discard, io.Discard, provide(components))
	assert.Equal(t, 1, code)
}

func TestRun_BuildFailureIsNotLoggedTwice(t *testing.T) {
	out := &bytes.Buffer{}
	components, loader, log := newComponents(t, out)
	dir := t.TempDir()
	loader.EXPECT().Load(gomock.Any(), "").Return(failingProject(dir), nil)
	log.EXPECT().Error(gomock.Any()).Times(0)

	code := run(context.Background(), []string{"run"}, out, out, provide(components))
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "exit status 1")
}

func TestRun_ConfigFlag(t *testing.T) {
	components, loader, _ := newComponents(t, io.Discard)
	wd, err := os.Getwd()
	require.NoError(t, err)
	loader.EXPECT().Load(wd, "build/tend.hcl").Return(nil, domain.ErrConfigNotFound)
	components.Logger.(*mocks.MockLogger).EXPECT().Error(gomock.Any())

	code := run(context.Background(), []string{"-f", "build/tend.hcl", "list"}, io.Discard, io.Discard, provide(components))
	assert.Equal(t, 1, code)
}
