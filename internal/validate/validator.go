// Package validate checks HTTP responses against declared expectations.
// A Validator collects checks through a chainable API and runs them all
// against each response, reporting every failure rather than stopping
// at the first.
package validate

import (
	"fmt"
	"strings"

	httpx "github.com/stampede-dev/stampede/internal/http"
	"github.com/stampede-dev/stampede/pkg/jsonpath"
	"github.com/stampede-dev/stampede/pkg/jsonschema"
)

// Check is a single expectation run against a response.
type Check struct {
	Name string
	Run  func(*httpx.Response) error
}

// Validator holds an ordered list of checks.
type Validator struct {
	checks []Check
}

// NewValidator creates an empty validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ExpectStatus requires an exact status code.
func (v *Validator) ExpectStatus(code int) *Validator {
	return v.add(fmt.Sprintf("status == %d", code), func(resp *httpx.Response) error {
		if resp.StatusCode != code {
			return fmt.Errorf("expected status %d, got %d", code, resp.StatusCode)
		}
		return nil
	})
}

// ExpectStatusIn requires the status code to be one of the given codes.
func (v *Validator) ExpectStatusIn(codes ...int) *Validator {
	return v.add(fmt.Sprintf("status in %v", codes), func(resp *httpx.Response) error {
		for _, code := range codes {
			if resp.StatusCode == code {
				return nil
			}
		}
		return fmt.Errorf("expected status in %v, got %d", codes, resp.StatusCode)
	})
}

// ExpectSuccess requires a 2xx status code.
func (v *Validator) ExpectSuccess() *Validator {
	return v.add("status is 2xx", func(resp *httpx.Response) error {
		if !resp.IsSuccess() {
			return fmt.Errorf("expected 2xx status, got %d", resp.StatusCode)
		}
		return nil
	})
}

// ExpectHeader requires a header to carry an exact value.
func (v *Validator) ExpectHeader(key, value string) *Validator {
	return v.add(fmt.Sprintf("header %s == %q", key, value), func(resp *httpx.Response) error {
		got := resp.GetHeader(key)
		if got != value {
			return fmt.Errorf("expected header %s: %q, got %q", key, value, got)
		}
		return nil
	})
}

// ExpectHeaderContains requires a header value to contain a substring.
func (v *Validator) ExpectHeaderContains(key, substr string) *Validator {
	return v.add(fmt.Sprintf("header %s contains %q", key, substr), func(resp *httpx.Response) error {
		got := resp.GetHeader(key)
		if !strings.Contains(got, substr) {
			return fmt.Errorf("expected header %s to contain %q, got %q", key, substr, got)
		}
		return nil
	})
}

// ExpectJSONPath requires a JSONPath expression in the body to resolve
// to the given value.
func (v *Validator) ExpectJSONPath(path, want string) *Validator {
	return v.add(fmt.Sprintf("jsonpath %s == %q", path, want), func(resp *httpx.Response) error {
		body, err := resp.GetBodyAsString()
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		got, err := jsonpath.Extract(body, path)
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("expected %s = %q, got %q", path, want, got)
		}
		return nil
	})
}

// ExpectJSONPathExists requires a JSONPath expression to resolve at all.
func (v *Validator) ExpectJSONPathExists(path string) *Validator {
	return v.add(fmt.Sprintf("jsonpath %s exists", path), func(resp *httpx.Response) error {
		body, err := resp.GetBodyAsString()
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		if !jsonpath.Exists(body, path) {
			return fmt.Errorf("path not found: %s", path)
		}
		return nil
	})
}

// ExpectJSONSchema requires the body to conform to a compiled schema.
func (v *Validator) ExpectJSONSchema(schema *jsonschema.Schema) *Validator {
	return v.add("body matches schema", func(resp *httpx.Response) error {
		body, err := resp.GetBodyAsString()
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		valid, errs := schema.Validate(body)
		if !valid {
			return fmt.Errorf("schema violation: %s", errs.Error())
		}
		return nil
	})
}

// ExpectFunc adds a named custom check.
func (v *Validator) ExpectFunc(name string, fn func(*httpx.Response) error) *Validator {
	return v.add(name, fn)
}

// Reset clears all accumulated checks so the validator can be reused.
func (v *Validator) Reset() *Validator {
	v.checks = nil
	return v
}

// Len returns the number of registered checks.
func (v *Validator) Len() int {
	return len(v.checks)
}

// Validate runs every check against the response, in registration
// order, and returns one result per check.
func (v *Validator) Validate(resp *httpx.Response) []Result {
	results := make([]Result, 0, len(v.checks))
	for _, check := range v.checks {
		result := Result{Name: check.Name, Passed: true}
		if err := check.Run(resp); err != nil {
			result.Passed = false
			result.Err = err
		}
		results = append(results, result)
	}
	return results
}

// AssertValid runs every check and returns an aggregated error naming
// each failed expectation, or nil when all pass.
func (v *Validator) AssertValid(resp *httpx.Response) error {
	var failures []string
	for _, result := range v.Validate(resp) {
		if !result.Passed {
			failures = append(failures, fmt.Sprintf("%s: %v", result.Name, result.Err))
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("response validation failed: %s", strings.Join(failures, "; "))
	}
	return nil
}

func (v *Validator) add(name string, fn func(*httpx.Response) error) *Validator {
	v.checks = append(v.checks, Check{Name: name, Run: fn})
	return v
}
