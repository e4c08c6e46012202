package progrock_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tend/internal/adapters/telemetry/progrock"
	"go.trai.ch/tend/internal/core/ports"
)

func TestTracer_PrintsCompletedVertices(t *testing.T) {
	var out bytes.Buffer
	tracer := progrock.New(&out)
	ctx := context.Background()

	_, span := tracer.Start(ctx, "build")
	_, err := span.Write([]byte("compiling\n"))
	require.NoError(t, err)
	span.End()

	_, span = tracer.Start(ctx, "lint")
	span.RecordError(errors.New("exit status 1"))
	span.End()

	_, span = tracer.Start(ctx, "docs")
	span.SetAttribute("tend.fresh", true)
	span.End()

	_, span = tracer.Start(ctx, "deploy", ports.WithSkipped())
	span.End()

	require.NoError(t, tracer.Close())

	got := out.String()
	assert.Contains(t, got, "[build] done")
	assert.Contains(t, got, "[lint] failed: exit status 1")
	assert.Contains(t, got, "[docs] not run")
	assert.Contains(t, got, "[deploy] not run")
}

func TestTracer_EmitPlan(t *testing.T) {
	var out bytes.Buffer
	tracer := progrock.New(&out)

	tracer.EmitPlan(context.Background(), []string{"a", "b"})
	require.NoError(t, tracer.Close())

	assert.Contains(t, out.String(), "[plan] done")
}

func TestTracer_ImplementsPort(_ *testing.T) {
	var _ ports.Tracer = (*progrock.Tracer)(nil)
	var _ ports.Span = (*progrock.Span)(nil)
}
