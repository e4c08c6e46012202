package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tend/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestTaskSet_Register(t *testing.T) {
	set := domain.NewTaskSet()
	require.NoError(t, set.Register(newTask("generate")))

	err := set.Register(newTask("generate"))
	require.ErrorIs(t, err, domain.ErrDuplicateTaskName)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "generate", zErr.Metadata()["task"])
	assert.Equal(t, 1, set.Len())
}

func TestTaskSet_RegisterValidation(t *testing.T) {
	set := domain.NewTaskSet()

	require.ErrorIs(t, set.Register(newTask("has space")), domain.ErrInvalidTaskName)
	require.ErrorIs(t, set.Register(&domain.Task{Name: domain.NewInternedString("x")}), domain.ErrNilAction)
	require.NoError(t, set.Register(newTask("gen:providers.v2")))
}

func TestTaskSet_Order(t *testing.T) {
	set := mustSet(t, newTask("zeta"), newTask("alpha"), newTask("mid"))

	var registered []string
	for task := range set.All() {
		registered = append(registered, task.Name.String())
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, registered)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, set.Names())

	got, ok := set.Get(domain.NewInternedString("mid"))
	require.True(t, ok)
	assert.Equal(t, "mid", got.Name.String())
}

func TestTask_DependencyKinds(t *testing.T) {
	set := domain.NewDynamicFileSet("scan", nil)
	task := newTask("t",
		domain.DependsOnFile("a.txt"),
		set,
		domain.DependsOnTask("other"),
		domain.DependsOnFile("b.txt"),
	)

	assert.Equal(t, domain.TrackFiles("a.txt", "b.txt"), task.StaticFiles())
	assert.Equal(t, []*domain.DynamicFileSet{set}, task.DynamicSets())
	assert.Equal(t, domain.NewInternedStrings([]string{"other"}), task.TaskRefs())
}

func TestDynamicFileSet_Key(t *testing.T) {
	a := domain.NewDynamicFileSet("same", nil)
	b := domain.NewDynamicFileSet("same", nil)
	assert.NotEqual(t, a.Key(), b.Key())
}
