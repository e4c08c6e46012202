package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tend/internal/core/domain"
)

func TestTaskState_Transition(t *testing.T) {
	tests := []struct {
		from, to domain.TaskState
		ok       bool
	}{
		{domain.StatePending, domain.StateReady, true},
		{domain.StatePending, domain.StateSkipped, true},
		{domain.StateReady, domain.StateRunning, true},
		{domain.StateRunning, domain.StateSucceeded, true},
		{domain.StateRunning, domain.StateFailed, true},
		{domain.StateRunning, domain.StateSkipped, true},
		{domain.StatePending, domain.StateRunning, false},
		{domain.StateSucceeded, domain.StateRunning, false},
		{domain.StateFailed, domain.StateSkipped, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			got, err := tt.from.Transition(tt.to)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, got)
				return
			}
			require.ErrorIs(t, err, domain.ErrInvalidTransition)
			assert.Equal(t, tt.from, got)
		})
	}
}

func TestTaskState_IsTerminal(t *testing.T) {
	assert.False(t, domain.StateRunning.IsTerminal())
	assert.True(t, domain.StateSkipped.IsTerminal())
	assert.Equal(t, "TaskState(42)", domain.TaskState(42).String())
}
