// Package client is the HTTP client for the Skylift control plane. Every
// call maps to one endpoint, decodes into a typed model value, and returns an
// *APIError for non-2xx responses so callers can surface the backend's own
// message.
package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/rudderlabs/rudder-go-kit/config"
	kithttputil "github.com/rudderlabs/rudder-go-kit/httputil"
	"github.com/rudderlabs/rudder-go-kit/logger"
	"github.com/rudderlabs/rudder-go-kit/stats"

	"github.com/skyliftdata/skylift-go/jsonrs"
)

type requestDoer interface {
	Do(*http.Request) (*http.Response, error)
}

type Option func(*Client)

// WithRequestDoer overrides both underlying HTTP clients, primarily for tests.
func WithRequestDoer(doer requestDoer) Option {
	return func(c *Client) {
		c.fetchDoer = doer
		c.commandDoer = doer
	}
}

type Client struct {
	log          logger.Logger
	statsFactory stats.Stats

	// fetchDoer retries idempotent GETs; commandDoer never retries, a
	// start/stop/deploy must not be replayed by the transport.
	fetchDoer   requestDoer
	commandDoer requestDoer

	config struct {
		baseURL                string
		apiKey                 string
		timeout                time.Duration
		maxHTTPConnections     int
		maxHTTPIdleConnections int
		maxIdleConnDuration    time.Duration
		retryWaitMin           time.Duration
		retryWaitMax           time.Duration
		retryMax               int
	}
}

func New(conf *config.Config, log logger.Logger, statsFactory stats.Stats, opts ...Option) *Client {
	c := &Client{
		log:          log.Child("client"),
		statsFactory: statsFactory,
	}

	c.config.baseURL = conf.GetString("Client.url", "https://api.skylift.io")
	c.config.apiKey = conf.GetString("Client.apiKey", "")
	c.config.timeout = conf.GetDuration("Client.timeout", 30, time.Second)
	c.config.maxHTTPConnections = conf.GetInt("Client.maxHTTPConnections", 10)
	c.config.maxHTTPIdleConnections = conf.GetInt("Client.maxHTTPIdleConnections", 5)
	c.config.maxIdleConnDuration = conf.GetDuration("Client.maxIdleConnDuration", 30, time.Second)
	c.config.retryWaitMin = conf.GetDuration("Client.retryWaitMin", 100, time.Millisecond)
	c.config.retryWaitMax = conf.GetDuration("Client.retryWaitMax", 5, time.Second)
	c.config.retryMax = conf.GetInt("Client.retryMax", 3)

	for _, opt := range opts {
		opt(c)
	}

	if c.fetchDoer == nil {
		c.fetchDoer = c.retryableClient(c.config.retryMax).StandardClient()
	}
	if c.commandDoer == nil {
		c.commandDoer = c.retryableClient(0).StandardClient()
	}
	return c
}

func (c *Client) retryableClient(retryMax int) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{
		Transport: &http.Transport{
			MaxConnsPerHost:     c.config.maxHTTPConnections,
			MaxIdleConnsPerHost: c.config.maxHTTPIdleConnections,
			IdleConnTimeout:     c.config.maxIdleConnDuration,
		},
		Timeout: c.config.timeout,
	}
	client.Logger = nil
	client.RetryWaitMin = c.config.retryWaitMin
	client.RetryWaitMax = c.config.retryWaitMax
	client.RetryMax = retryMax
	return client
}

// do issues one request and decodes a 2xx response body into out when out is
// non-nil. Non-2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqJSON, err := jsonrs.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling request body: %w", err)
		}
		reqBody = bytes.NewBuffer(reqJSON)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.apiKey)
	}
	req.Header.Set("X-Request-Id", uuid.New().String())

	doer := c.commandDoer
	if method == http.MethodGet {
		doer = c.fetchDoer
	}
	resp, err := doer.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer func() { kithttputil.CloseResponse(resp) }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp)
	}
	if out != nil {
		if err := jsonrs.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
