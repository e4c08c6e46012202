package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tend/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestRunReport(t *testing.T) {
	report := &domain.RunReport{
		Results: []domain.TaskResult{
			{Name: "a", Outcome: domain.OutcomeRan},
			{Name: "b", Outcome: domain.OutcomeFresh},
		},
	}
	assert.True(t, report.OK())

	report.Results = append(report.Results,
		domain.TaskResult{Name: "c", Outcome: domain.OutcomeFailed},
		domain.TaskResult{Name: "d", Outcome: domain.OutcomeSkippedDependencyFailed},
	)
	assert.False(t, report.OK())
	assert.Equal(t, 1, report.Count(domain.OutcomeFailed))
	assert.Len(t, report.Failed(), 2)

	res, ok := report.Result("d")
	require.True(t, ok)
	assert.Equal(t, "skipped-dependency-failed", res.Outcome.String())
}

func TestTaskResult_ErrorDetail(t *testing.T) {
	cause := zerr.With(zerr.Wrap(zerr.New("exit status 2"), "command failed"), "exit_code", 2)
	res := domain.TaskResult{Err: domain.Annotate(domain.ErrActionFailed, "task", "gen", "cause", "x"), Outcome: domain.OutcomeFailed}
	msg, meta := res.ErrorDetail()
	assert.Equal(t, "action failed", msg)
	assert.Equal(t, "gen", meta["task"])

	res.Err = zerr.Wrap(cause, "action failed")
	_, meta = res.ErrorDetail()
	assert.Equal(t, 2, meta["exit_code"])
}

func TestOutcome_MarshalText(t *testing.T) {
	data, err := json.Marshal(domain.TaskResult{Name: "a", Outcome: domain.OutcomeCancelled, Reason: domain.ReasonCancelled})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"a","outcome":"cancelled","reason":"cancelled","duration":0}`, string(data))
}

func TestOutcome_UnmarshalText(t *testing.T) {
	var res domain.TaskResult
	require.NoError(t, json.Unmarshal([]byte(`{"name":"a","outcome":"skipped-dependency-failed"}`), &res))
	assert.Equal(t, domain.OutcomeSkippedDependencyFailed, res.Outcome)

	require.Error(t, json.Unmarshal([]byte(`{"outcome":"exploded"}`), &res))
}

func TestWithKind(t *testing.T) {
	cause := zerr.With(zerr.New("exit status 1"), "exit_code", 1)
	err := domain.WithKind(domain.ErrActionFailed, cause, "task", "build")

	require.ErrorIs(t, err, domain.ErrActionFailed)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "action failed: exit status 1", err.Error())

	_, meta := domain.TaskResult{Err: err}.ErrorDetail()
	assert.Equal(t, "build", meta["task"])
	assert.Equal(t, 1, meta["exit_code"])
}
