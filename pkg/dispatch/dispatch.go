package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 10 * time.Second

// Sender posts JSON payloads to collection endpoints. Zero value is not
// usable; use NewSender.
type Sender struct {
	client  *http.Client
	timeout time.Duration
	headers map[string]string
}

// SenderOption configures a Sender.
type SenderOption func(*Sender)

// WithTimeout sets the per-delivery timeout.
func WithTimeout(d time.Duration) SenderOption {
	return func(s *Sender) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithHTTPClient replaces the default pooled client, e.g. for tests or
// custom transports.
func WithHTTPClient(c *http.Client) SenderOption {
	return func(s *Sender) {
		if c != nil {
			s.client = c
		}
	}
}

// WithHeader adds a header to every delivery.
func WithHeader(key, value string) SenderOption {
	return func(s *Sender) {
		if s.headers == nil {
			s.headers = make(map[string]string)
		}
		s.headers[key] = value
	}
}

// NewSender creates a sender with a connection-pooled HTTP client.
func NewSender(opts ...SenderOption) *Sender {
	s := &Sender{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send marshals payload to JSON and posts it to endpoint in a single
// attempt. Non-2xx responses and transport failures are returned as errors;
// the response body is discarded either way.
func (s *Sender) Send(ctx context.Context, endpoint string, payload any) error {
	if err := validateEndpoint(endpoint); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Drain so the connection returns to the pool.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrDeliveryFailed, resp.StatusCode)
	}
	return nil
}

// validateEndpoint fails fast on unusable endpoints. Only http and https
// schemes are accepted, which also guards against SSRF via odd schemes.
func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("%w: endpoint is required", ErrInvalidEndpoint)
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidEndpoint, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidEndpoint)
	}
	return nil
}
