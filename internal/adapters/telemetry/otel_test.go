package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/tend/internal/adapters/telemetry"
	"go.trai.ch/tend/internal/core/ports"
)

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr
}

func attr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestOTelTracer_SpanLifecycle(t *testing.T) {
	sr := setupRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(context.Background(), "build")
	span.SetAttribute("tend.reason", "target-missing")
	span.SetAttribute("count", 3)
	_, err := span.Write([]byte("line one\n"))
	require.NoError(t, err)
	span.RecordError(errors.New("exit status 2"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, "build", got.Name())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "exit status 2", got.Status().Description)

	reason, ok := attr(got.Attributes(), "tend.reason")
	require.True(t, ok)
	assert.Equal(t, "target-missing", reason.AsString())

	var logs []string
	for _, ev := range got.Events() {
		if ev.Name == "log" {
			msg, _ := attr(ev.Attributes, "message")
			logs = append(logs, msg.AsString())
		}
	}
	assert.Equal(t, []string{"line one\n"}, logs)
}

func TestOTelTracer_SkippedOption(t *testing.T) {
	sr := setupRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(context.Background(), "deploy", ports.WithSkipped())
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	skipped, ok := attr(spans[0].Attributes(), "tend.skipped")
	require.True(t, ok)
	assert.True(t, skipped.AsBool())
}

func TestOTelTracer_EmitPlan(t *testing.T) {
	sr := setupRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	tracer.EmitPlan(context.Background(), []string{"a"})
	assert.Empty(t, sr.Ended())

	ctx, root := otel.Tracer("test").Start(context.Background(), "root")
	tracer.EmitPlan(ctx, []string{"a", "b"})
	root.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "plan_emitted", spans[0].Events()[0].Name)
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	got, span := tracer.Start(ctx, "span", ports.WithSkipped())
	assert.Equal(t, ctx, got)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	span.End()
	tracer.EmitPlan(ctx, nil)
}
