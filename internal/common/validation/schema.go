package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"assessment-workers/internal/common/errors"
)

// JSONSchema describes a job's input or output variables. It marshals to a
// draft-07 compatible document.
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties,omitempty"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties *bool               `json:"additionalProperties,omitempty"`
}

// Property is one field of a schema. An empty Type accepts any JSON value,
// which is how loosely typed form fields are declared.
type Property struct {
	Type        string              `json:"type,omitempty"`
	Description string              `json:"description,omitempty"`
	Default     interface{}         `json:"default,omitempty"`
	Minimum     *float64            `json:"minimum,omitempty"`
	Maximum     *float64            `json:"maximum,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Pattern     string              `json:"pattern,omitempty"`
	MinLength   *int                `json:"minLength,omitempty"`
	MaxLength   *int                `json:"maxLength,omitempty"`
	Items       *Property           `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validator compiles schemas once and caches them by name.
type Validator struct {
	mu      sync.RWMutex
	schemas map[string]*gojsonschema.Schema
}

func NewValidator() *Validator {
	return &Validator{schemas: make(map[string]*gojsonschema.Schema)}
}

// Register compiles schema under name, replacing any previous entry.
func (v *Validator) Register(name string, schema JSONSchema) error {
	compiled, err := Compile(schema)
	if err != nil {
		return fmt.Errorf("schema %s: %w", name, err)
	}
	v.mu.Lock()
	v.schemas[name] = compiled
	v.mu.Unlock()
	return nil
}

// Validate checks input against the schema registered under name.
func (v *Validator) Validate(name string, input map[string]interface{}) (*ValidationResult, error) {
	v.mu.RLock()
	compiled, ok := v.schemas[name]
	v.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no schema registered for %s", name)
	}
	return run(compiled, input)
}

// Compile turns a JSONSchema into a reusable gojsonschema.Schema.
func Compile(schema JSONSchema) (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
}

// ValidateInput validates input against schema. A schema that does not
// compile is reported as a single error on the root.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	compiled, err := Compile(schema)
	if err != nil {
		return &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: "(root)", Message: err.Error(), Code: "INVALID_SCHEMA"}},
		}
	}
	result, err := run(compiled, input)
	if err != nil {
		return &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: "(root)", Message: err.Error(), Code: "INVALID_DOCUMENT"}},
		}
	}
	return result
}

// ValidateVariables parses raw job variables and validates them, returning
// an INVALID_INPUT_SCHEMA error that lists every violation.
func ValidateVariables(variables string, schema JSONSchema) (map[string]interface{}, error) {
	input := map[string]interface{}{}
	if strings.TrimSpace(variables) != "" {
		if err := json.Unmarshal([]byte(variables), &input); err != nil {
			return nil, errors.NewInvalidInputSchemaError(fmt.Sprintf("variables are not a JSON object: %v", err))
		}
	}

	result := ValidateInput(input, schema)
	if !result.Valid {
		return nil, errors.NewInvalidInputSchemaError(strings.Join(result.GetErrorMessages(), "; ")).
			WithMetadata("validationErrors", result.Errors)
	}
	return input, nil
}

func run(compiled *gojsonschema.Schema, input map[string]interface{}) (*ValidationResult, error) {
	res, err := compiled.Validate(gojsonschema.NewGoLoader(input))
	if err != nil {
		return nil, err
	}

	out := &ValidationResult{Valid: res.Valid()}
	for _, e := range res.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   fieldOf(e),
			Message: e.Description(),
			Code:    e.Type(),
		})
	}
	return out, nil
}

// fieldOf names the offending field. Required errors are reported on the
// parent object, so the missing property is appended.
func fieldOf(e gojsonschema.ResultError) string {
	field := e.Field()
	if e.Type() != "required" {
		return field
	}
	prop, ok := e.Details()["property"].(string)
	if !ok || field == prop || strings.HasSuffix(field, "."+prop) {
		return field
	}
	if field == "" || field == "(root)" {
		return prop
	}
	return field + "." + prop
}

// GetSchemaFromJSON parses a schema document.
func GetSchemaFromJSON(schemaJSON string) (JSONSchema, error) {
	var schema JSONSchema
	err := json.Unmarshal([]byte(schemaJSON), &schema)
	return schema, err
}

// GetErrorMessages returns "field: message" for each error.
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

func (vr *ValidationResult) HasErrors(field string) bool {
	return len(vr.GetErrorsForField(field)) > 0
}

// GetErrorsForField returns errors on field or anything nested under it.
func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail reports whether email looks like an address.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

var activityPattern = regexp.MustCompile(`^[a-z]+(-[a-z]+)*$`)

// ValidateActivityNaming checks task types are lower-case kebab words.
func ValidateActivityNaming(taskType string) error {
	if !activityPattern.MatchString(taskType) {
		return fmt.Errorf("task type %q must be lower-case words joined by hyphens (e.g. lookup-region)", taskType)
	}
	return nil
}

func IntPtr(i int) *int { return &i }

func FloatPtr(f float64) *float64 { return &f }

func BoolPtr(b bool) *bool { return &b }
