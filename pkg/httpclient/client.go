package httpclient

import (
	"fmt"
	"net/http"
	"time"

	"mortgagemind/internal/config"
	"mortgagemind/pkg/circuitbreaker"
)

// Client wraps the standard http.Client with circuit breaker protection
// for calls to external services.
type Client struct {
	httpClient *http.Client
	breaker    circuitbreaker.CircuitBreaker
}

// NewClient creates a Client according to the circuit breaker
// configuration. With the breaker disabled the client degrades to a plain
// http.Client with a request timeout.
func NewClient(cfg config.CircuitBreakerConfig) (*Client, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	if !cfg.Enabled {
		return &Client{httpClient: httpClient}, nil
	}

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid circuit breaker timeout duration: %w", err)
	}

	return &Client{
		httpClient: httpClient,
		breaker:    circuitbreaker.New(cfg.FailureThreshold, cfg.SuccessThreshold, timeout),
	}, nil
}

// Do executes an HTTP request with circuit breaker protection. Responses
// with status >= 500 count as failures for the breaker but are still
// returned to the caller.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.breaker == nil {
		return c.httpClient.Do(req)
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			// Keep the response available; the breaker only needs the
			// failure signal.
			return resp, fmt.Errorf("server error: received status code %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if resp, ok := res.(*http.Response); ok && resp != nil {
			return resp, nil
		}
		return nil, err
	}
	return res.(*http.Response), nil
}
