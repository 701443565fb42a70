package cli

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	httpx "github.com/stampede-dev/stampede/internal/http"
	"github.com/stampede-dev/stampede/internal/validate"
)

// newCheckFlags returns a throwaway command carrying the check flags,
// so buildValidator can be tested without running the command.
func newCheckFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.Flags().IntSlice("expect-status", nil, "")
	cmd.Flags().StringArray("expect-header", nil, "")
	cmd.Flags().StringArray("expect-jsonpath", nil, "")
	cmd.Flags().String("schema", "", "")
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}
	return cmd
}

func checkResponse(status int, body string) *httpx.Response {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	return &httpx.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Headers:    headers,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestBuildValidator_DefaultExpectsSuccess(t *testing.T) {
	cmd := newCheckFlags(t)
	validator, err := buildValidator(cmd, nil)
	if err != nil {
		t.Fatalf("buildValidator() error = %v", err)
	}

	if err := validator.AssertValid(checkResponse(204, "")); err != nil {
		t.Errorf("AssertValid(204) error = %v", err)
	}
	if err := validator.AssertValid(checkResponse(500, "")); err == nil {
		t.Error("AssertValid(500) returned nil error")
	}
}

func TestBuildValidator_ExplicitStatuses(t *testing.T) {
	cmd := newCheckFlags(t, "--expect-status", "200,404")
	validator, err := buildValidator(cmd, nil)
	if err != nil {
		t.Fatalf("buildValidator() error = %v", err)
	}

	if err := validator.AssertValid(checkResponse(404, "")); err != nil {
		t.Errorf("AssertValid(404) error = %v", err)
	}
	if err := validator.AssertValid(checkResponse(500, "")); err == nil {
		t.Error("AssertValid(500) returned nil error")
	}
}

func TestBuildValidator_JSONPathAndHeader(t *testing.T) {
	cmd := newCheckFlags(t,
		"--expect-header", "Content-Type: application/json",
		"--expect-jsonpath", "$.status=ok",
		"--expect-jsonpath", "$.data",
	)
	validator, err := buildValidator(cmd, nil)
	if err != nil {
		t.Fatalf("buildValidator() error = %v", err)
	}

	results := validator.Validate(checkResponse(200, `{"status":"ok","data":[1]}`))
	if summary := validate.Summarize(results); summary.Failed != 0 {
		t.Errorf("expected all checks to pass, got %+v", results)
	}

	results = validator.Validate(checkResponse(200, `{"status":"down"}`))
	if summary := validate.Summarize(results); summary.Failed != 2 {
		t.Errorf("expected 2 failures, got %+v", results)
	}
}

func TestBuildValidator_SchemaByName(t *testing.T) {
	schemas := map[string]string{
		"order": `{"type":"object","required":["id"]}`,
	}

	cmd := newCheckFlags(t, "--schema", "order")
	validator, err := buildValidator(cmd, schemas)
	if err != nil {
		t.Fatalf("buildValidator() error = %v", err)
	}
	if err := validator.AssertValid(checkResponse(200, `{"id":1}`)); err != nil {
		t.Errorf("AssertValid() error = %v", err)
	}
	if err := validator.AssertValid(checkResponse(200, `{}`)); err == nil {
		t.Error("AssertValid() on schema violation returned nil error")
	}

	cmd = newCheckFlags(t, "--schema", "missing")
	if _, err := buildValidator(cmd, schemas); err == nil {
		t.Error("buildValidator() with unknown schema returned nil error")
	}
}

func TestBuildValidator_MalformedHeaderFlag(t *testing.T) {
	cmd := newCheckFlags(t, "--expect-header", "not-a-header")
	if _, err := buildValidator(cmd, nil); err == nil {
		t.Error("buildValidator() with malformed header returned nil error")
	}
}
