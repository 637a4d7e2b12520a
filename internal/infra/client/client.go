// Package client implements the portfolio backend REST client. The
// backend owns persistence and pricing; this client is the only code
// that talks to it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
	"github.com/rmeucci/portfolio-bff-go/internal/infra/resilience"
)

var tracer = otel.Tracer("backend-client")

// Client wraps HTTP calls to the portfolio backend API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	bulkhead   *resilience.Bulkhead
	logger     *zap.Logger
}

// NewClient creates a backend client.
func NewClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	maxConc := cfg.MaxConcurrency
	if maxConc < 1 {
		maxConc = 1
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		cfg:        cfg,
		bulkhead:   resilience.NewBulkhead(maxConc),
		logger:     logger,
	}
}

// statusError carries a non-2xx backend response.
type statusError struct {
	Status int
	Body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Body)
}

// doRead executes a GET through the bulkhead, breaker, and the
// configured retry policy (0 retries by default).
func (c *Client) doRead(ctx context.Context, path string) ([]byte, error) {
	if err := c.bulkhead.Acquire(ctx); err != nil {
		return nil, err
	}
	defer c.bulkhead.Release()

	var body []byte
	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			var err error
			body, err = c.request(ctx, http.MethodGet, path, nil)
			return err
		})
	})
	return body, c.translateBreaker(err)
}

// doWrite executes a mutation. Mutations are never retried
// automatically; a failed save/delete is reported and the user decides.
func (c *Client) doWrite(ctx context.Context, method, path string, payload any, headers map[string]string) ([]byte, error) {
	if err := c.bulkhead.Acquire(ctx); err != nil {
		return nil, err
	}
	defer c.bulkhead.Release()

	var body []byte
	_, err := c.cb.Execute(func() (any, error) {
		var err error
		body, err = c.request(ctx, method, path, payload, withHeaders(headers))
		return nil, err
	})
	return body, c.translateBreaker(err)
}

type requestOpt func(*http.Request)

func withHeaders(h map[string]string) requestOpt {
	return func(req *http.Request) {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}
}

func (c *Client) request(ctx context.Context, method, path string, payload any, opts ...requestOpt) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		c.logger.Error("backend: failed to create request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("backend: failed to read response body",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("backend: non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, &statusError{Status: resp.StatusCode, Body: string(body)}
	}

	c.logger.Debug("backend: request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	return body, nil
}

// translateBreaker maps breaker rejections to the domain error the
// handler layer knows how to present.
func (c *Client) translateBreaker(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &domain.ErrCircuitOpen{Service: "backend"}
	}
	return err
}

// fetchError classifies a read failure for one resource.
func fetchError(resource string, err error) error {
	var circuit *domain.ErrCircuitOpen
	if errors.As(err, &circuit) {
		return err
	}
	var se *statusError
	if errors.As(err, &se) {
		return &domain.ErrFetch{Resource: resource, Status: se.Status}
	}
	return &domain.ErrFetch{Resource: resource, Err: err}
}

// mutationError classifies a write failure. A 404 on delete means the
// record was already gone server-side.
func mutationError(resource, op string, id string, err error) error {
	var circuit *domain.ErrCircuitOpen
	if errors.As(err, &circuit) {
		return err
	}
	var se *statusError
	if errors.As(err, &se) {
		if op == "delete" && se.Status == http.StatusNotFound {
			return &domain.ErrAlreadyDeleted{Resource: resource, ID: id}
		}
		return &domain.ErrMutation{Resource: resource, Op: op, Status: se.Status}
	}
	return &domain.ErrMutation{Resource: resource, Op: op, Err: err}
}
