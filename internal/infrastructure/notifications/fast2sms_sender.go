package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zatekoja/voicebyte/pkg/config"
)

const (
	fast2SMSDefaultURL = "https://www.fast2sms.com/dev/bulkV2"
	fast2SMSTimeout    = 6 * time.Second
)

// Fast2SMSSender sends messages via the Fast2SMS bulk API
type Fast2SMSSender struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewFast2SMSSender creates a new Fast2SMS sender. An empty API key yields a
// sender that reports itself unconfigured.
func NewFast2SMSSender(cfg config.SMSConfig) *Fast2SMSSender {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fast2SMSDefaultURL
	}
	return &Fast2SMSSender{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: fast2SMSTimeout,
		},
	}
}

// Fast2SMSMessage is the bulkV2 quick-route request body
type Fast2SMSMessage struct {
	Route    string `json:"route"`
	Message  string `json:"message"`
	Language string `json:"language"`
	Flash    int    `json:"flash"`
	Numbers  string `json:"numbers"`
}

// Fast2SMSResponse represents the API response
type Fast2SMSResponse struct {
	Return    bool            `json:"return"`
	RequestID string          `json:"request_id"`
	Message   json.RawMessage `json:"message"`
}

// IsConfigured reports whether an API key is present
func (s *Fast2SMSSender) IsConfigured() bool {
	return s.apiKey != ""
}

// Send delivers message to a 10-digit mobile number
func (s *Fast2SMSSender) Send(ctx context.Context, mobile, message string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("fast2sms api key is not set")
	}

	payload, err := json.Marshal(Fast2SMSMessage{
		Route:    "q",
		Message:  message,
		Language: "english",
		Flash:    0,
		Numbers:  mobile,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("authorization", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fast2sms API error (status %d): %s", resp.StatusCode, string(body))
	}

	var out Fast2SMSResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if !out.Return {
		return fmt.Errorf("fast2sms rejected message: %s", string(out.Message))
	}
	return nil
}
