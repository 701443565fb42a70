package http

import (
	"testing"
)

func TestRequest_Build(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		baseURL        string
		headers        map[string]string
		queryParams    map[string]string
		body           interface{}
		expectedURL    string
		expectedMethod string
	}{
		{
			name:           "Simple GET request",
			method:         "GET",
			path:           "/status",
			baseURL:        "https://api.example.com",
			headers:        map[string]string{"Accept": "application/json"},
			expectedURL:    "https://api.example.com/status",
			expectedMethod: "GET",
		},
		{
			name:           "Lowercase method is normalized",
			method:         "post",
			path:           "/orders",
			baseURL:        "https://api.example.com",
			expectedURL:    "https://api.example.com/orders",
			expectedMethod: "POST",
		},
		{
			name:           "Request with query parameters",
			method:         "GET",
			path:           "/orders",
			baseURL:        "https://api.example.com",
			queryParams:    map[string]string{"page": "1", "limit": "10"},
			expectedURL:    "https://api.example.com/orders?limit=10&page=1",
			expectedMethod: "GET",
		},
		{
			name:           "Trailing slash in base URL",
			method:         "GET",
			path:           "/orders",
			baseURL:        "https://api.example.com/",
			expectedURL:    "https://api.example.com/orders",
			expectedMethod: "GET",
		},
		{
			name:           "Path without leading slash",
			method:         "GET",
			path:           "orders",
			baseURL:        "https://api.example.com",
			expectedURL:    "https://api.example.com/orders",
			expectedMethod: "GET",
		},
		{
			name:           "POST request with body",
			method:         "POST",
			path:           "/orders",
			baseURL:        "https://api.example.com",
			body:           map[string]string{"sku": "A-100", "qty": "2"},
			expectedURL:    "https://api.example.com/orders",
			expectedMethod: "POST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequest(tt.method, tt.path)

			for key, value := range tt.headers {
				req.WithHeader(key, value)
			}
			for key, value := range tt.queryParams {
				req.WithQueryParam(key, value)
			}
			if tt.body != nil {
				req.WithBody(tt.body)
			}

			httpReq, err := req.Build(tt.baseURL)
			if err != nil {
				t.Fatalf("Error building request: %v", err)
			}

			if httpReq.Method != tt.expectedMethod {
				t.Errorf("Expected method %s, got %s", tt.expectedMethod, httpReq.Method)
			}
			if httpReq.URL.String() != tt.expectedURL {
				t.Errorf("Expected URL %s, got %s", tt.expectedURL, httpReq.URL.String())
			}
			for key, value := range tt.headers {
				if httpReq.Header.Get(key) != value {
					t.Errorf("Expected header %s: %s, got %s", key, value, httpReq.Header.Get(key))
				}
			}

			if tt.body != nil {
				if httpReq.Header.Get("Content-Type") != "application/json" {
					t.Errorf("Expected Content-Type: application/json, got %s", httpReq.Header.Get("Content-Type"))
				}
				if httpReq.Body == nil {
					t.Errorf("Expected body, got nil")
				}
			}
		})
	}
}

func TestRequest_Build_Errors(t *testing.T) {
	if _, err := NewRequest("GET", "").Build("https://api.example.com"); err == nil {
		t.Error("Expected error for empty path, got nil")
	}
	if _, err := NewRequest("TRACE", "/status").Build("https://api.example.com"); err == nil {
		t.Error("Expected error for unsupported method, got nil")
	}
}

func TestRequest_WithMethods(t *testing.T) {
	req := NewRequest("GET", "/test")
	req.WithHeader("X-Test", "test-value")
	if req.Headers["X-Test"] != "test-value" {
		t.Errorf("Expected header X-Test: test-value, got %s", req.Headers["X-Test"])
	}

	req = NewRequest("GET", "/test")
	req.WithHeaders(map[string]string{"A": "1", "B": "2"}).WithHeaders(map[string]string{"B": "3"})
	if req.Headers["A"] != "1" || req.Headers["B"] != "3" {
		t.Errorf("Expected merged headers A=1 B=3, got %v", req.Headers)
	}

	req = NewRequest("GET", "/test")
	req.WithQueryParam("param", "value")
	if req.QueryParams.Get("param") != "value" {
		t.Errorf("Expected query param param=value, got %s", req.QueryParams.Get("param"))
	}

	req = NewRequest("GET", "/test")
	req.WithQueryParams(map[string]string{"param1": "value1", "param2": "value2"})
	if req.QueryParams.Get("param1") != "value1" || req.QueryParams.Get("param2") != "value2" {
		t.Errorf("Expected query params param1=value1&param2=value2, got %s", req.QueryParams.Encode())
	}

	req = NewRequest("POST", "/test")
	req.WithJSON(map[string]string{"name": "John"})
	if req.Headers["Content-Type"] != "application/json" {
		t.Errorf("Expected WithJSON to set Content-Type, got %s", req.Headers["Content-Type"])
	}
	if req.Body == nil {
		t.Errorf("Expected body to be set, got nil")
	}
}

func TestRequest_StatName(t *testing.T) {
	req := NewRequest("GET", "/orders").WithName("list-orders")
	if got := req.StatName("https://api.example.com"); got != "list-orders" {
		t.Errorf("Expected stat name list-orders, got %s", got)
	}

	req = NewRequest("GET", "/orders")
	want := "GET https://api.example.com/orders"
	if got := req.StatName("https://api.example.com"); got != want {
		t.Errorf("Expected stat name %q, got %q", want, got)
	}
}

func TestRequest_Reset(t *testing.T) {
	req := NewRequest("POST", "/orders").
		WithName("create-order").
		WithHeader("X-Test", "1").
		WithQueryParam("a", "b").
		WithJSON(map[string]string{"sku": "A-100"})

	req.Reset()

	if req.Method != "GET" {
		t.Errorf("Expected method GET after reset, got %s", req.Method)
	}
	if req.Path != "" || req.Name != "" {
		t.Errorf("Expected empty path and name after reset, got %q / %q", req.Path, req.Name)
	}
	if len(req.Headers) != 0 || len(req.QueryParams) != 0 {
		t.Errorf("Expected empty headers and params after reset, got %v / %v", req.Headers, req.QueryParams)
	}
	if req.Body != nil {
		t.Errorf("Expected nil body after reset, got %v", req.Body)
	}
}
