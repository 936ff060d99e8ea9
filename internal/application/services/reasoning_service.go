package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/zatekoja/voicebyte/internal/domain/providers"
	apperrors "github.com/zatekoja/voicebyte/pkg/errors"
	"github.com/zatekoja/voicebyte/pkg/retry"
)

// Reasoner is a retry-wrapped text completion. Errors are ServiceErrors
// (apperrors.ErrorTypeExternal) carrying the last attempt's cause.
type Reasoner interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

// ReasoningService applies the bounded retry policy to a ReasoningProvider.
type ReasoningService struct {
	provider providers.ReasoningProvider
	policy   retry.Config
}

var (
	reasoningMetricsOnce sync.Once
	reasoningCalls       metric.Int64Counter
	reasoningAttempts    metric.Int64Histogram
)

// NewReasoningService creates a reasoning service. A nil provider makes
// every call fail, which leaves callers on their local fallbacks.
func NewReasoningService(provider providers.ReasoningProvider, policy retry.Config) *ReasoningService {
	return &ReasoningService{provider: provider, policy: policy}
}

// Complete sends one system+user exchange and returns the trimmed reply.
func (s *ReasoningService) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if s.provider == nil {
		recordReasoningCall(ctx, "unconfigured", 0)
		return "", apperrors.NewExternalError("reasoning service not configured", nil)
	}

	attempts := 0
	var reply string
	err := retry.DoWithTimeout(ctx, s.policy, "reasoning", func(attemptCtx context.Context) error {
		attempts++
		out, err := s.provider.Complete(attemptCtx, providers.CompletionRequest{
			System:    system,
			User:      user,
			MaxTokens: maxTokens,
		})
		if err != nil {
			return err
		}
		reply = strings.TrimSpace(out)
		return nil
	}, func(attempt int, err error, nextDelay time.Duration) {
		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("next_delay", nextDelay).
			Msg("reasoning call failed, retrying")
	})
	if err != nil {
		// A rejected key is retried like any other failure but will not fix
		// itself, so it is reported louder.
		if errors.Is(err, providers.ErrReasoningUnauthorized) {
			recordReasoningCall(ctx, "unauthorized", attempts)
			log.Error().Err(err).Int("attempts", attempts).Msg("reasoning service rejected the API key")
		} else {
			recordReasoningCall(ctx, "exhausted", attempts)
			log.Warn().Err(err).Int("attempts", attempts).Msg("reasoning service unavailable")
		}
		return "", apperrors.NewExternalError("reasoning service unavailable", err)
	}

	recordReasoningCall(ctx, "ok", attempts)
	return reply, nil
}

func initReasoningMetrics() {
	meter := otel.Meter("github.com/zatekoja/voicebyte/reasoning")
	if counter, err := meter.Int64Counter(
		"reasoning.call.count",
		metric.WithDescription("Reasoning service calls by outcome"),
	); err == nil {
		reasoningCalls = counter
	}
	if hist, err := meter.Int64Histogram(
		"reasoning.call.attempts",
		metric.WithDescription("Attempts used per reasoning call"),
	); err == nil {
		reasoningAttempts = hist
	}
}

func recordReasoningCall(ctx context.Context, outcome string, attempts int) {
	reasoningMetricsOnce.Do(initReasoningMetrics)
	attrs := metric.WithAttributes(attribute.String("reasoning.outcome", outcome))
	if reasoningCalls != nil {
		reasoningCalls.Add(ctx, 1, attrs)
	}
	if reasoningAttempts != nil && attempts > 0 {
		reasoningAttempts.Record(ctx, int64(attempts), attrs)
	}
}
