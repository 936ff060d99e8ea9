package observability

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/noop"
	"go.opentelemetry.io/otel/trace"
)

func TestSeverityOf(t *testing.T) {
	tests := []struct {
		level zerolog.Level
		want  otellog.Severity
	}{
		{zerolog.DebugLevel, otellog.SeverityDebug},
		{zerolog.InfoLevel, otellog.SeverityInfo},
		{zerolog.WarnLevel, otellog.SeverityWarn},
		{zerolog.ErrorLevel, otellog.SeverityError},
		{zerolog.FatalLevel, otellog.SeverityFatal},
		{zerolog.NoLevel, otellog.SeverityUndefined},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, severityOf(tt.level))
		})
	}
}

func TestOTelHook_DoesNotPanicWithoutContext(t *testing.T) {
	logger := zerolog.New(io.Discard).Hook(NewOTelHook(noop.NewLoggerProvider().Logger("test")))
	assert.NotPanics(t, func() {
		logger.Info().Msg("queued")
	})
}

func TestLoggerFromContext_AddsTraceIDs(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	assert.NotNil(t, LoggerFromContext(ctx))
	assert.NotNil(t, LoggerFromContext(context.Background()))
}
