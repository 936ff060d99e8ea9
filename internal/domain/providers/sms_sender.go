package providers

import "context"

// SMSSender delivers a text message to a 10-digit mobile number
type SMSSender interface {
	// Send delivers message to the given number
	Send(ctx context.Context, mobile, message string) error

	// IsConfigured reports whether delivery credentials are present
	IsConfigured() bool
}
