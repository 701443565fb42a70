// Package jsonschema validates JSON documents against JSON Schema
// definitions. Schemas are compiled once and reused, since validators
// run the same schema against every sampled response.
package jsonschema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationErrors is a collection of schema violations for one document.
type ValidationErrors []error

// Error implements the error interface for ValidationErrors.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Schema is a compiled JSON Schema ready for repeated validation.
type Schema struct {
	compiled *jsonschema.Schema
}

// Compile parses and compiles a schema from its JSON text.
func Compile(schemaStr string) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(schemaStr)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &Schema{compiled: compiled}, nil
}

// CompileFile compiles a schema from a file path or URL.
func CompileFile(location string) (*Schema, error) {
	compiled, err := jsonschema.Compile(location)
	if err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", location, err)
	}
	return &Schema{compiled: compiled}, nil
}

// Validate checks a JSON document against the schema. It returns false
// with the individual violations when the document does not conform,
// and a single-element error list when the document is not valid JSON.
func (s *Schema) Validate(jsonStr string) (bool, ValidationErrors) {
	var jsonData interface{}
	if err := json.Unmarshal([]byte(jsonStr), &jsonData); err != nil {
		return false, ValidationErrors{fmt.Errorf("invalid JSON: %w", err)}
	}

	err := s.compiled.Validate(jsonData)
	if err == nil {
		return true, nil
	}

	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		return false, collectViolations(validationErr)
	}
	return false, ValidationErrors{err}
}

// Validate is a one-shot convenience that compiles schemaStr and
// validates jsonStr against it. Compilation problems are returned as
// the error; schema violations yield (false, nil).
func Validate(jsonStr, schemaStr string) (bool, error) {
	schema, err := Compile(schemaStr)
	if err != nil {
		return false, err
	}
	var jsonData interface{}
	if err := json.Unmarshal([]byte(jsonStr), &jsonData); err != nil {
		return false, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.compiled.Validate(jsonData); err != nil {
		return false, nil
	}
	return true, nil
}

// ValidateWithErrors is a one-shot convenience that also reports the
// individual violations.
func ValidateWithErrors(jsonStr, schemaStr string) (bool, ValidationErrors) {
	schema, err := Compile(schemaStr)
	if err != nil {
		return false, ValidationErrors{err}
	}
	return schema.Validate(jsonStr)
}

// collectViolations flattens the nested cause tree into a list.
func collectViolations(err *jsonschema.ValidationError) ValidationErrors {
	var errors ValidationErrors
	if err.Message != "" {
		errors = append(errors, fmt.Errorf("validation error at %s: %s", err.InstanceLocation, err.Message))
	}
	for _, cause := range err.Causes {
		errors = append(errors, collectViolations(cause)...)
	}
	return errors
}
