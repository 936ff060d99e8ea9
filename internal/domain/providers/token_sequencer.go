package providers

import (
	"context"
	"time"
)

// TokenSequencer allocates the sequential per-day queue token
type TokenSequencer interface {
	// Next returns the next token for the calendar day of day, starting at 1
	Next(ctx context.Context, day time.Time) (int, error)
}
