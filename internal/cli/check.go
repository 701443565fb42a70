package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	httpx "github.com/stampede-dev/stampede/internal/http"
	"github.com/stampede-dev/stampede/internal/output"
	"github.com/stampede-dev/stampede/internal/validate"
	"github.com/stampede-dev/stampede/pkg/jsonschema"
)

var checkCmd = &cobra.Command{
	Use:   "check PATH",
	Short: "Send one request to the target and validate the response",
	Long: `Check sends a single request to the configured target and runs the
declared expectations against the response. It is meant as a pre-flight
gate: a target that fails its checks is not worth load testing.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			fail(err)
		}

		if cfg.Target.BaseURL == "" {
			fail(fmt.Errorf("no target configured: set target.base_url or STAMPEDE_TARGET_BASE_URL"))
		}

		method, _ := cmd.Flags().GetString("method")
		headers, _ := cmd.Flags().GetStringArray("header")
		headerSet, _ := cmd.Flags().GetString("header-set")
		body, _ := cmd.Flags().GetString("body")
		noColor, _ := cmd.Flags().GetBool("no-color")

		req := httpx.NewRequest(method, args[0])
		if headerSet != "" {
			set, err := cfg.HeaderSet(headerSet)
			if err != nil {
				fail(err)
			}
			req.WithHeaders(set)
		}
		for _, header := range headers {
			parts := strings.SplitN(header, ":", 2)
			if len(parts) == 2 {
				req.WithHeader(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
			}
		}
		if body != "" {
			req.WithBody(body)
		}

		validator, err := buildValidator(cmd, cfg.Schemas)
		if err != nil {
			fail(err)
		}

		client := httpx.NewClient(
			httpx.WithBaseURL(cfg.Target.BaseURL),
			httpx.WithTimeout(cfg.Target.Timeout),
			httpx.WithLogger(logger),
		)

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Target.Timeout)
		defer cancel()

		resp, err := client.Do(ctx, req)
		if err != nil {
			fail(err)
		}

		results := validator.Validate(resp)
		fmt.Print(output.FormatResults(results, noColor))

		if validate.Summarize(results).Failed > 0 {
			os.Exit(1)
		}
	},
}

// buildValidator turns the check flags into expectations.
func buildValidator(cmd *cobra.Command, schemas map[string]string) (*validate.Validator, error) {
	validator := validate.NewValidator()

	if codes, _ := cmd.Flags().GetIntSlice("expect-status"); len(codes) == 1 {
		validator.ExpectStatus(codes[0])
	} else if len(codes) > 1 {
		validator.ExpectStatusIn(codes...)
	} else {
		validator.ExpectSuccess()
	}

	expectHeaders, _ := cmd.Flags().GetStringArray("expect-header")
	for _, header := range expectHeaders {
		parts := strings.SplitN(header, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed --expect-header %q, want 'Key: value'", header)
		}
		validator.ExpectHeader(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
	}

	expectPaths, _ := cmd.Flags().GetStringArray("expect-jsonpath")
	for _, expr := range expectPaths {
		if path, want, found := strings.Cut(expr, "="); found {
			validator.ExpectJSONPath(strings.TrimSpace(path), strings.TrimSpace(want))
		} else {
			validator.ExpectJSONPathExists(strings.TrimSpace(expr))
		}
	}

	if schemaName, _ := cmd.Flags().GetString("schema"); schemaName != "" {
		schemaStr, ok := schemas[schemaName]
		if !ok {
			return nil, fmt.Errorf("unknown schema: %s", schemaName)
		}
		schema, err := jsonschema.Compile(schemaStr)
		if err != nil {
			return nil, err
		}
		validator.ExpectJSONSchema(schema)
	}

	return validator, nil
}

func init() {
	checkCmd.Flags().StringP("method", "X", "GET", "HTTP method")
	checkCmd.Flags().StringArrayP("header", "H", nil, "Request header (repeatable, 'Key: value')")
	checkCmd.Flags().String("header-set", "", "Named header set from the config")
	checkCmd.Flags().StringP("body", "d", "", "Request body")
	checkCmd.Flags().IntSlice("expect-status", nil, "Expected status code(s); default any 2xx")
	checkCmd.Flags().StringArray("expect-header", nil, "Expected response header (repeatable, 'Key: value')")
	checkCmd.Flags().StringArray("expect-jsonpath", nil, "Expected JSONPath, '$.a.b=value' or bare path for existence")
	checkCmd.Flags().String("schema", "", "Named JSON schema from the config to validate the body")
}
