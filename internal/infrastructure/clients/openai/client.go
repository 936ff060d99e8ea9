package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	openaisdk "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/zatekoja/voicebyte/internal/domain/providers"
	"github.com/zatekoja/voicebyte/pkg/config"
)

const defaultModel = "llama-3.3-70b-versatile"

// go-openai omits a zero temperature from the request, which leaves the
// endpoint on its own default. This is as close to zero as float32 gets.
const zeroTemperature = math.SmallestNonzeroFloat32

// Client sends chat completions to an OpenAI-compatible endpoint (Groq by
// default). It makes one attempt per call.
type Client struct {
	api   *openaisdk.Client
	model string
}

// NewClient creates a new chat completion client.
func NewClient(cfg *config.ReasoningConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("reasoning api key is required")
	}

	sdkCfg := openaisdk.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		sdkCfg.BaseURL = cfg.BaseURL
	}
	// Per-attempt deadlines come from the caller's context.
	sdkCfg.HTTPClient = &http.Client{}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Client{
		api:   openaisdk.NewClientWithConfig(sdkCfg),
		model: model,
	}, nil
}

// Complete sends req at (effectively) temperature 0 and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, req providers.CompletionRequest) (string, error) {
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openaisdk.ChatCompletionRequest{
		Model: c.model,
		Messages: []openaisdk.ChatCompletionMessage{
			{Role: openaisdk.ChatMessageRoleSystem, Content: req.System},
			{Role: openaisdk.ChatMessageRoleUser, Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: zeroTemperature,
	})
	if err != nil {
		status := statusOf(err)
		recordCompletionMetric(ctx, c.model, status, time.Since(start), err)
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return "", fmt.Errorf("%w: status %d", providers.ErrReasoningUnauthorized, status)
		}
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := errors.New("chat completion returned no choices")
		recordCompletionMetric(ctx, c.model, http.StatusOK, time.Since(start), err)
		return "", err
	}

	recordCompletionMetric(ctx, c.model, http.StatusOK, time.Since(start), nil)
	return resp.Choices[0].Message.Content, nil
}

func statusOf(err error) int {
	var apiErr *openaisdk.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openaisdk.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

type completionMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var (
	completionMetricsOnce sync.Once
	completionMetricsOK   bool
	metrics               completionMetrics
)

func initCompletionMetrics() {
	meter := otel.Meter("github.com/zatekoja/voicebyte/llm")

	requestCount, err := meter.Int64Counter(
		"ai.llm.request.count",
		metric.WithDescription("Number of chat completion requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.llm.request.duration",
		metric.WithDescription("Chat completion request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.llm.request.errors",
		metric.WithDescription("Number of failed chat completion requests"),
	)
	if err != nil {
		return
	}

	metrics = completionMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	completionMetricsOK = true
}

func recordCompletionMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	completionMetricsOnce.Do(initCompletionMetrics)
	if !completionMetricsOK {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	metrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		metrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
