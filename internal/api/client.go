// Package api loads the dashboard data from the remote JSON endpoint in a
// single request.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTimeout = 12 * time.Second
	defaultAPIErr  = "API error"
	maxBodyBytes   = 8 << 20
)

type Client struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
	now      func() time.Time
	log      *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a client. A non-positive timeout means DefaultTimeout.
func New(endpoint string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		endpoint: strings.TrimSpace(endpoint),
		timeout:  timeout,
		http:     http.DefaultClient,
		now:      time.Now,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoint() string { return c.endpoint }

func (c *Client) Configured() bool { return !IsPlaceholderEndpoint(c.endpoint) }

// IsPlaceholderEndpoint reports whether the endpoint was left unset.
func IsPlaceholderEndpoint(endpoint string) bool {
	endpoint = strings.TrimSpace(endpoint)
	return endpoint == "" || strings.Contains(endpoint, "PASTE")
}

func (c *Client) requestURL() (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("mode", "all")
	q.Set("_ts", strconv.FormatInt(c.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// LoadAll issues exactly one request bounded by the client timeout. The
// returned payload always has non-nil slices when err is nil.
func (c *Client) LoadAll(ctx context.Context) (Payload, error) {
	if !c.Configured() {
		return Payload{}, ErrNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := c.now()
	p, err := c.loadAll(ctx)
	c.log.Info("load finished",
		slog.String("kind", Kind(err)),
		slog.Duration("took", c.now().Sub(started)),
		slog.Int("subjects", len(p.Subjects)),
		slog.Int("lessons", len(p.Schedule)))
	return p, err
}

func (c *Client) loadAll(ctx context.Context) (Payload, error) {
	target, err := c.requestURL()
	if err != nil {
		return Payload{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Payload{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return Payload{}, classify(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Payload{}, classify(ctx, err)
	}

	var p Payload
	decodeErr := json.Unmarshal(body, &p)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && !p.OK && p.Error != "" {
			return Payload{}, &APIError{Message: p.Error}
		}
		return Payload{}, &StatusError{Code: resp.StatusCode}
	}
	if decodeErr != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformed, decodeErr)
	}
	if !p.OK {
		msg := strings.TrimSpace(p.Error)
		if msg == "" {
			msg = defaultAPIErr
		}
		return Payload{}, &APIError{Message: msg}
	}
	p.normalize()
	return p, nil
}

func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return &NetworkError{Err: err}
}
