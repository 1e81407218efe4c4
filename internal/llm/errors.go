package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotConfigured indicates no provider API key is set. The rest of the
// app keeps working; only AI-dependent actions surface this.
var ErrNotConfigured = errors.New("no LLM provider configured: set STUDYHUB_LLM_PROVIDER and its API key")

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema. Surfaced to users as "the AI could not
// complete this request", distinct from transport failures: the remedy is
// rephrasing the input, not retrying the connection.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrContentBlocked indicates the provider's safety filter refused the
// request or withheld the response. Never retried: the same input yields
// the same refusal.
type ErrContentBlocked struct {
	Reason string
}

func (e *ErrContentBlocked) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("content blocked by the provider: %s", e.Reason)
	}
	return "content blocked by the provider"
}

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}
