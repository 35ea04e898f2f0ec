package grading

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/abhisek/hanzi/internal/hanzi"
)

// ErrMalformed marks a response that could not be interpreted.
var ErrMalformed = errors.New("malformed response")

// ClientConfig configures a remote grading service client.
type ClientConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	UserAgent         string
}

func (c ClientConfig) withDefaults() ClientConfig {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 5
	}
	if c.Burst < 1 {
		c.Burst = 1
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = 500 * time.Millisecond
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 8 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "hanzi/1.0"
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c
}

// client is a rate-limited JSON-over-HTTP caller with retry.
type client struct {
	cfg         ClientConfig
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

func newClient(cfg ClientConfig) *client {
	cfg = cfg.withDefaults()
	return &client{
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

// statusError is a non-2xx response.
type statusError struct {
	Code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

func retryable(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// postJSON sends body to path and decodes the response into out. It
// retries network errors, 429 and 5xx with exponential backoff.
func (c *client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	url := c.cfg.BaseURL + path

	var lastErr error
	backoff := c.cfg.InitialBackoff

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, backoff); err != nil {
				return err
			}
			backoff = min(backoff*2, c.cfg.MaxBackoff)
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		wait, err := c.do(ctx, url, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err

		var se *statusError
		if errors.As(err, &se) && !retryable(se.Code) {
			return err
		}
		if errors.Is(err, ErrMalformed) || ctx.Err() != nil {
			return err
		}
		if wait > backoff {
			backoff = min(wait, c.cfg.MaxBackoff)
		}
	}
	return lastErr
}

// do performs one request. wait is the server's Retry-After hint.
func (c *client) do(ctx context.Context, url string, payload []byte, out any) (wait time.Duration, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
			wait = time.Duration(secs) * time.Second
		}
		return wait, &statusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return 0, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// HTTPClassifier calls POST {base}/classify.
type HTTPClassifier struct {
	c *client
}

func NewHTTPClassifier(cfg ClientConfig) *HTTPClassifier {
	return &HTTPClassifier{c: newClient(cfg)}
}

type classifyRequest struct {
	Character string   `json:"character"`
	Strokes   []Stroke `json:"strokes"`
}

func (h *HTTPClassifier) Classify(ctx context.Context, char hanzi.Char, strokes []Stroke) (*Classification, error) {
	var out Classification
	if err := h.c.postJSON(ctx, "/classify", classifyRequest{Character: string(char), Strokes: strokes}, &out); err != nil {
		return nil, fmt.Errorf("classify %s: %w", char, err)
	}
	if len(strokes) > 0 && len(out.Mapping) == 0 {
		return nil, fmt.Errorf("classify %s: %w: empty mapping", char, ErrMalformed)
	}
	return &out, nil
}

// HTTPRecognizer calls POST {base}/recognize.
type HTTPRecognizer struct {
	c *client
}

func NewHTTPRecognizer(cfg ClientConfig) *HTTPRecognizer {
	return &HTTPRecognizer{c: newClient(cfg)}
}

type recognizeRequest struct {
	Strokes []Stroke `json:"strokes"`
}

type recognizeResponse struct {
	Character *string `json:"character"`
}

func (h *HTTPRecognizer) Recognize(ctx context.Context, strokes []Stroke) (hanzi.Char, bool, error) {
	var out recognizeResponse
	if err := h.c.postJSON(ctx, "/recognize", recognizeRequest{Strokes: strokes}, &out); err != nil {
		return "", false, fmt.Errorf("recognize: %w", err)
	}
	if out.Character == nil || *out.Character == "" {
		return "", false, nil
	}
	c, err := hanzi.ParseChar(*out.Character)
	if err != nil {
		return "", false, fmt.Errorf("recognize: %w: %v", ErrMalformed, err)
	}
	return c, true, nil
}
