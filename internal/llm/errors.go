package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies a provider failure.
type Kind int

const (
	// KindUnavailable covers network failures and 5xx responses.
	KindUnavailable Kind = iota
	// KindRateLimited is a 429 from the provider.
	KindRateLimited
	// KindInvalidOutput means the reply was not JSON matching the schema.
	KindInvalidOutput
	// KindTruncated means the reply stopped at MaxTokens.
	KindTruncated
	// KindRejected is a 4xx other than 429: bad key, bad model, bad request.
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindInvalidOutput:
		return "invalid output"
	case KindTruncated:
		return "truncated"
	case KindRejected:
		return "rejected"
	default:
		return "unavailable"
	}
}

// Error is returned by every Provider for failures it can classify.
type Error struct {
	Kind     Kind
	Provider string

	// RetryAfter is the server's hint for KindRateLimited, zero if absent.
	RetryAfter time.Duration

	// Content is the offending reply for KindInvalidOutput and KindTruncated.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	msg := "llm"
	if e.Provider != "" {
		msg = e.Provider
	}
	msg += ": " + e.Kind.String()
	if e.Kind == KindRateLimited && e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err wraps an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// statusError maps an HTTP status from a provider SDK to an *Error.
func statusError(provider string, status int, err error) *Error {
	kind := KindUnavailable
	switch {
	case status == http.StatusTooManyRequests:
		kind = KindRateLimited
	case status >= 400 && status < 500:
		kind = KindRejected
	}
	return &Error{Kind: kind, Provider: provider, Err: err}
}
