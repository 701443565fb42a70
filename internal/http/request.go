// Package http wraps net/http with the fluent request builder and
// response accessors the load-test tasks use. Execution of the built
// requests is the external engine's job; the builder only prepares
// them and labels them for the engine's statistics.
package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// supportedMethods are the HTTP methods the builder accepts.
var supportedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// Request accumulates the parts of an HTTP request through a chainable
// API and builds a net/http request on demand.
type Request struct {
	Method      string
	Path        string
	Name        string // label for the engine's per-request statistics
	QueryParams url.Values
	Headers     map[string]string
	Body        interface{}
}

// NewRequest creates a request builder for the given method and path.
func NewRequest(method, path string) *Request {
	return &Request{
		Method:      strings.ToUpper(method),
		Path:        path,
		QueryParams: make(url.Values),
		Headers:     make(map[string]string),
	}
}

// WithMethod replaces the HTTP method.
func (r *Request) WithMethod(method string) *Request {
	r.Method = strings.ToUpper(method)
	return r
}

// WithPath replaces the request path.
func (r *Request) WithPath(path string) *Request {
	r.Path = path
	return r
}

// WithName labels the request for the engine's statistics. Unnamed
// requests are reported under their full URL.
func (r *Request) WithName(name string) *Request {
	r.Name = name
	return r
}

// WithHeader adds a header to the request.
func (r *Request) WithHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

// WithHeaders merges a header set into the request. Later calls win on
// conflicting keys.
func (r *Request) WithHeaders(headers map[string]string) *Request {
	for key, value := range headers {
		r.Headers[key] = value
	}
	return r
}

// WithQueryParam adds a query parameter to the request.
func (r *Request) WithQueryParam(key, value string) *Request {
	r.QueryParams.Add(key, value)
	return r
}

// WithQueryParams adds multiple query parameters to the request.
func (r *Request) WithQueryParams(params map[string]string) *Request {
	for key, value := range params {
		r.QueryParams.Add(key, value)
	}
	return r
}

// WithBody sets the request body. Strings, byte slices and readers are
// sent as-is; anything else is JSON-marshaled at Build time.
func (r *Request) WithBody(body interface{}) *Request {
	r.Body = body
	return r
}

// WithJSON sets a JSON request body and the matching Content-Type.
func (r *Request) WithJSON(body interface{}) *Request {
	r.Body = body
	r.Headers["Content-Type"] = "application/json"
	return r
}

// StatName returns the label used in the engine's statistics.
func (r *Request) StatName(baseURL string) string {
	if r.Name != "" {
		return r.Name
	}
	return r.Method + " " + joinURL(baseURL, r.Path)
}

// Reset clears all accumulated parameters so the builder can be reused
// for a new request.
func (r *Request) Reset() *Request {
	r.Method = http.MethodGet
	r.Path = ""
	r.Name = ""
	r.QueryParams = make(url.Values)
	r.Headers = make(map[string]string)
	r.Body = nil
	return r
}

// Build constructs an http.Request against the given base URL.
func (r *Request) Build(baseURL string) (*http.Request, error) {
	if r.Path == "" {
		return nil, fmt.Errorf("request path must be set before building")
	}
	if !supportedMethods[r.Method] {
		return nil, fmt.Errorf("unsupported HTTP method: %s", r.Method)
	}

	reqURL, err := url.Parse(joinURL(baseURL, r.Path))
	if err != nil {
		return nil, err
	}

	query := reqURL.Query()
	for key, values := range r.QueryParams {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	reqURL.RawQuery = query.Encode()

	var bodyReader io.Reader
	if r.Body != nil {
		switch body := r.Body.(type) {
		case string:
			bodyReader = strings.NewReader(body)
		case []byte:
			bodyReader = bytes.NewReader(body)
		case io.Reader:
			bodyReader = body
		default:
			jsonBody, err := json.Marshal(body)
			if err != nil {
				return nil, err
			}
			bodyReader = bytes.NewReader(jsonBody)
			if _, ok := r.Headers["Content-Type"]; !ok {
				r.Headers["Content-Type"] = "application/json"
			}
		}
	}

	req, err := http.NewRequest(r.Method, reqURL.String(), bodyReader)
	if err != nil {
		return nil, err
	}

	for key, value := range r.Headers {
		req.Header.Set(key, value)
	}

	return req, nil
}

// joinURL joins a base URL and a path with exactly one separating slash.
func joinURL(baseURL, path string) string {
	if baseURL == "" {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
