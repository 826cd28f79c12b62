// Package apiclient talks to the asset management REST API on behalf of the
// signed-in user.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "office-asset-web/pkg/errors"
)

const (
	serviceName = "asset-management-api"
	userAgent   = "office-asset-web/1.0"
)

// Config holds configuration for the API client
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
	MaxPayloadSize int64
}

// DefaultConfig returns a default configuration for the API client
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:        baseURL,
		Timeout:        10 * time.Second,
		RetryAttempts:  3,
		RetryDelay:     500 * time.Millisecond,
		MaxPayloadSize: 1024 * 1024,
	}
}

// Observer receives the outcome of every upstream call.
type Observer interface {
	ObserveAPICall(method, resource string, status int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveAPICall(string, string, int, time.Duration) {}

// Client is the concrete implementation of every resource API below.
type Client struct {
	config   Config
	http     *http.Client
	logger   *logrus.Entry
	observer Observer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithObserver reports call outcomes to o.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// New creates a Client.
func New(config Config, logger *logrus.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	c := &Client{
		config:   config,
		http:     &http.Client{Timeout: config.Timeout},
		logger:   logger.WithField("component", "apiclient"),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tokenKey struct{}

// WithToken attaches the bearer token used for calls made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the bearer token carried by ctx.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// errorBody is the error envelope of the API. message is either a string
// or a list of strings.
type errorBody struct {
	StatusCode int             `json:"statusCode"`
	Message    json.RawMessage `json:"message"`
	Error      string          `json:"error"`
}

func (b errorBody) messages() []string {
	if len(b.Message) == 0 {
		return nil
	}
	var one string
	if err := json.Unmarshal(b.Message, &one); err == nil {
		return []string{one}
	}
	var many []string
	if err := json.Unmarshal(b.Message, &many); err == nil {
		return many
	}
	return nil
}

// query issues a GET and decodes the response into out. Queries are
// retried on transport errors and 5xx responses.
func (c *Client) query(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out, c.config.RetryAttempts)
}

// mutate issues a write. Writes are never retried.
func (c *Client) mutate(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, nil, body, out, 0)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any, retries int) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return apperrors.InternalError("failed to marshal request", err)
		}
		if int64(len(payload)) > c.config.MaxPayloadSize {
			return apperrors.BadRequestError(fmt.Sprintf("request payload too large: %d bytes (max %d)", len(payload), c.config.MaxPayloadSize))
		}
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return classifyContextErr(ctx.Err(), path)
			case <-time.After(c.config.RetryDelay * time.Duration(attempt)):
			}
			c.logger.WithFields(logrus.Fields{
				"method":  method,
				"path":    path,
				"attempt": attempt + 1,
			}).Warn("retrying API call")
		}

		err := c.attempt(ctx, method, path, params, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable(err) {
			return err
		}
	}

	return lastErr
}

func (c *Client) attempt(ctx context.Context, method, path string, params url.Values, payload []byte, out any) error {
	target := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperrors.InternalError("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observer.ObserveAPICall(method, resourceOf(path), 0, time.Since(start))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return classifyContextErr(ctxErr, path)
		}
		return apperrors.ExternalServiceError(serviceName, err)
	}
	defer resp.Body.Close()
	c.observer.ObserveAPICall(method, resourceOf(path), resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxPayloadSize+1))
	if err != nil {
		return apperrors.ExternalServiceError(serviceName, err)
	}
	if int64(len(data)) > c.config.MaxPayloadSize {
		return answered(resp.StatusCode, fmt.Errorf("response too large (max %d bytes)", c.config.MaxPayloadSize))
	}

	if resp.StatusCode >= 400 {
		return c.statusError(resp.StatusCode, data)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return answered(resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func (c *Client) statusError(status int, data []byte) error {
	var body errorBody
	_ = json.Unmarshal(data, &body)
	msgs := body.messages()

	appErr := apperrors.FromStatus(status, strings.Join(msgs, "; "))
	if len(msgs) > 1 {
		for i, m := range msgs {
			appErr.WithField(fmt.Sprintf("message_%d", i), m)
		}
	}
	if status >= 500 {
		c.logger.WithFields(logrus.Fields{"status": status, "body": string(data)}).Error("API returned server error")
	}
	return appErr
}

// answered is an upstream failure on a response that did arrive; it is
// not retried.
func answered(status int, cause error) error {
	appErr := apperrors.ExternalServiceError(serviceName, cause)
	appErr.Status = status
	return appErr
}

func retryable(err error) bool {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return false
	}
	if appErr.Code != apperrors.ErrorCodeExternalService {
		return false
	}
	// transport failures carry no status
	return appErr.Status == 0 || appErr.Status >= 500
}

func classifyContextErr(err error, path string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewAppErrorWithCause(apperrors.ErrorCodeTimeout, "timeout calling "+path, err)
	}
	return err
}

// resourceOf reduces a path to its first segment for metric labels.
func resourceOf(path string) string {
	trimmed := strings.Trim(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return trimmed
}
