package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Client executes built requests against a base URL. It is the direct
// path used by pre-flight checks; during a run the external engine owns
// execution and the client is not on the hot path.
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    map[string]string
	logger     zerolog.Logger
	observer   RequestObserver
}

// RequestObserver is notified after each executed request. statusCode
// is 0 when the request failed before a response arrived.
type RequestObserver func(method, path string, statusCode int, err error)

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new HTTP client with the given options.
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers: make(map[string]string),
		logger:  zerolog.Nop(),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithBaseURL sets the base URL for the client.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the timeout for the client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithLogger sets the logger used for request and response logging.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithObserver registers a callback invoked after every request, for
// metrics or custom accounting.
func WithObserver(observer RequestObserver) ClientOption {
	return func(c *Client) {
		c.observer = observer
	}
}

// BaseURL returns the base URL the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes a built request and returns the drained response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := req.Build(c.baseURL)
	if err != nil {
		return nil, err
	}
	httpReq = httpReq.WithContext(ctx)

	// Client-level headers fill in gaps; per-request headers win.
	for key, value := range c.headers {
		if httpReq.Header.Get(key) == "" {
			httpReq.Header.Set(key, value)
		}
	}

	c.logger.Debug().
		Str("method", httpReq.Method).
		Str("url", httpReq.URL.String()).
		Str("name", req.StatName(c.baseURL)).
		Msg("sending request")

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("method", httpReq.Method).
			Str("url", httpReq.URL.String()).
			Msg("request failed")
		if c.observer != nil {
			c.observer(req.Method, req.Path, 0, err)
		}
		return nil, err
	}
	elapsed := time.Since(start)

	bodyBytes, err := io.ReadAll(httpResp.Body)
	httpResp.Body.Close()
	if err != nil {
		return nil, err
	}

	resp := &Response{
		StatusCode:   httpResp.StatusCode,
		Status:       httpResp.Status,
		Headers:      httpResp.Header,
		Body:         io.NopCloser(bytes.NewReader(bodyBytes)),
		ResponseTime: elapsed,
		rawBody:      bodyBytes,
		parsed:       true,
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("response_time", elapsed).
		Int("body_bytes", len(bodyBytes)).
		Msg("received response")

	if c.observer != nil {
		c.observer(req.Method, req.Path, resp.StatusCode, nil)
	}

	return resp, nil
}
