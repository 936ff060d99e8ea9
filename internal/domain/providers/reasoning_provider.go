package providers

import (
	"context"
	"errors"
)

// CompletionRequest is a single system+user exchange with the reasoning service
type CompletionRequest struct {
	System    string
	User      string
	MaxTokens int
}

// ReasoningProvider is the raw text-in/text-out language model boundary.
// Implementations make exactly one attempt per call; retries live above them.
type ReasoningProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ErrReasoningUnauthorized is returned when the endpoint rejects the API key.
var ErrReasoningUnauthorized = errors.New("reasoning provider unauthorized")
