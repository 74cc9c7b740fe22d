// Package moderation is a client for the bad-words text moderation API.
// It owns the retry policy for that dependency and normalizes its failures.
package moderation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	censorPath      = "/bad_words?censor_character=*"
	maxResponseSize = 1 << 20 // 1MB
)

// Config holds the connection settings for the moderation service.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// BadWord is one term detected by the moderation service.
type BadWord struct {
	Original    string `json:"original"`
	Word        string `json:"word"`
	Deviations  int64  `json:"deviations"`
	Info        int64  `json:"info"`
	ReplacedLen int64  `json:"replacedLen"`
}

// BadWordResponse is the success payload of the moderation service.
type BadWordResponse struct {
	Content         string    `json:"content"`
	BadWordsTotal   int64     `json:"bad_words_total"`
	BadWordsList    []BadWord `json:"bad_words_list"`
	CensoredContent string    `json:"censored_content"`
}

// Client calls the moderation service with bounded retries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	policy     RetryPolicy
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryPolicy replaces DefaultRetryPolicy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.policy = p }
}

// WithRateLimit paces outbound requests to rps with the given burst, to stay
// within the upstream API quota. A non-positive rps leaves requests unpaced.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the logger used to report retries.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a moderation client. BaseURL and APIKey are required.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		policy:     DefaultRetryPolicy(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Censor sends text to the moderation service and returns the censored
// version. Transport failures and 5xx answers are retried according to the
// retry policy; 4xx answers fail immediately with a client-fault
// *FilterError.
func (c *Client) Censor(ctx context.Context, text string) (string, error) {
	backoff := c.policy.Backoff()

	var lastErr error
	for attempt := 1; ; attempt++ {
		censored, err := c.send(ctx, text)
		if err == nil {
			return censored, nil
		}
		if !c.retryable(ctx, err) {
			return "", err
		}
		lastErr = err

		delay, stop := backoff.Next()
		if stop {
			break
		}

		c.logger.WarnContext(ctx, "moderation request failed, retrying",
			"attempt", attempt, "delay", delay, "error", err)

		if err := sleep(ctx, delay); err != nil {
			break
		}
	}

	var fe *FilterError
	if errors.As(lastErr, &fe) {
		return "", fe
	}
	return "", fmt.Errorf("%w: %w", ErrTransientExhausted, lastErr)
}

// send performs a single request.
func (c *Client) send(ctx context.Context, text string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %w", ErrTransientExhausted, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+censorPath, strings.NewReader(text))
	if err != nil {
		return "", err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &transportError{err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", &transportError{err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", newFilterError(resp.StatusCode, errorMessage(body))
	}

	var out BadWordResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if out.CensoredContent == "" && out.Content != "" {
		return "", fmt.Errorf("%w: missing censored_content", ErrDecode)
	}

	return out.CensoredContent, nil
}

// retryable reports whether err is transient. Errors caused by the caller's
// context ending are never retried.
func (c *Client) retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}

	var te *transportError
	if errors.As(err, &te) {
		return true
	}

	var fe *FilterError
	return errors.As(err, &fe) && fe.Fault() == ServerFault
}

// errorMessage extracts the upstream {"message": ...} field, falling back to
// the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
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
