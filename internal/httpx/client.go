package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
)

var (
	ErrRateLimited = errors.New("rate limited")
	ErrServerError = errors.New("server error")
	ErrUnexpected  = errors.New("unexpected status code")
	ErrCircuitOpen = errors.New("circuit breaker open")
)

// Config bundles the HTTP client and resilience settings for one upstream.
type Config struct {
	Timeout         time.Duration
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Client wraps an http.Client with retry-with-backoff and a circuit breaker.
// Retries cover transport failures, 429 and 5xx responses; anything else
// non-2xx fails immediately. Requests honor context cancellation.
type Client struct {
	http    *http.Client
	cfg     Config
	circuit *gobreaker.CircuitBreaker
}

func New(name string, cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 500 * time.Millisecond
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 5 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		cfg:     cfg,
		circuit: cb,
	}
}

// Do executes the request built by buildRequest, retrying retryable failures
// with exponential backoff until MaxRetries is exhausted. The request is
// rebuilt per attempt so bodies and idempotency stay in the caller's hands.
func (c *Client) Do(ctx context.Context, buildRequest func() (*http.Request, error)) (*http.Response, error) {
	var resp *http.Response

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.InitialInterval
	bo.MaxInterval = c.cfg.MaxInterval

	operation := func() error {
		req, err := buildRequest()
		if err != nil {
			return backoff.Permanent(err)
		}
		req = req.WithContext(ctx)

		result, err := c.circuit.Execute(func() (interface{}, error) {
			r, execErr := c.http.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if r.StatusCode == http.StatusTooManyRequests {
				r.Body.Close()
				return nil, ErrRateLimited
			}
			if r.StatusCode >= 500 {
				r.Body.Close()
				return nil, ErrServerError
			}
			if r.StatusCode < 200 || r.StatusCode >= 300 {
				r.Body.Close()
				return nil, fmt.Errorf("%w: %d", ErrUnexpected, r.StatusCode)
			}

			return r, nil
		})
		if err != nil {
			// An open circuit will not recover within this call's retry
			// budget; fail fast instead of burning attempts.
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(fmt.Errorf("%w: %v", ErrCircuitOpen, err))
			}
			if errors.Is(err, ErrUnexpected) {
				return backoff.Permanent(err)
			}
			return err
		}

		r, ok := result.(*http.Response)
		if !ok {
			return backoff.Permanent(fmt.Errorf("unexpected result type from circuit breaker"))
		}
		resp = r
		return nil
	}

	retries := backoff.WithMaxRetries(bo, uint64(c.cfg.MaxRetries))
	if err := backoff.Retry(operation, backoff.WithContext(retries, ctx)); err != nil {
		return nil, err
	}

	return resp, nil
}
