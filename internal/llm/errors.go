package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies a provider failure. The retry decorator keys off it.
type Kind int

const (
	// KindUnavailable covers network failures and 5xx answers.
	KindUnavailable Kind = iota
	KindRateLimited
	// KindInvalid means the model answered but the content did not parse
	// or did not match the request schema.
	KindInvalid
	// KindTruncated means generation stopped at MaxTokens before the
	// content became valid.
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindInvalid:
		return "invalid response"
	case KindTruncated:
		return "truncated response"
	default:
		return "provider unavailable"
	}
}

// Error is returned by every Provider in this package.
type Error struct {
	Kind Kind

	// RetryAfter is the server's hint for KindRateLimited, zero if absent.
	RetryAfter time.Duration

	// Content holds the offending output for KindInvalid and KindTruncated.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "llm: " + e.Kind.String()
	}
	return fmt.Sprintf("llm: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of err, or false if err is not an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func invalidContent(raw json.RawMessage, format string, args ...any) *Error {
	return &Error{Kind: KindInvalid, Content: raw, Err: fmt.Errorf(format, args...)}
}

// fromStatus maps an SDK error carrying an HTTP status. Anything other
// than 429 is treated as the vendor being unavailable.
func fromStatus(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &Error{Kind: KindRateLimited, Err: err}
	}
	return &Error{Kind: KindUnavailable, Err: err}
}
