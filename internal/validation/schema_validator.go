package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaValidator validates JSON-compatible documents against named JSON schemas
type SchemaValidator interface {
	AddSchema(name string, schema []byte) error
	Validate(name string, doc interface{}) error
	ValidateBytes(name string, data []byte) error
}

type validator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a new schema validator
func NewSchemaValidator() SchemaValidator {
	return &validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// AddSchema compiles and registers a schema under name. Registering the same
// name twice is a no-op.
func (v *validator) AddSchema(name string, schema []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.schemas[name]; ok {
		return nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema))
	if err != nil {
		return fmt.Errorf(ErrMsgParseSchema, name, err)
	}

	if err := v.compiler.AddResource(name, doc); err != nil {
		return fmt.Errorf(ErrMsgAddSchemaResource, name, err)
	}

	compiled, err := v.compiler.Compile(name)
	if err != nil {
		return fmt.Errorf(ErrMsgCompileSchema, name, err)
	}

	v.schemas[name] = compiled
	return nil
}

// Validate checks a decoded document. Documents decoded from YAML are
// normalized through JSON first so map and number types line up.
func (v *validator) Validate(name string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf(ErrMsgEncodeDocument, err)
	}
	return v.ValidateBytes(name, data)
}

// ValidateBytes validates JSON data bytes against a registered schema
func (v *validator) ValidateBytes(name string, data []byte) error {
	v.mu.Lock()
	schema, ok := v.schemas[name]
	v.mu.Unlock()
	if !ok {
		return fmt.Errorf(ErrMsgSchemaNotRegistered, name)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf(ErrMsgParseDocument, err)
	}

	if err := schema.Validate(doc); err != nil {
		return formatValidationError(err)
	}

	return nil
}

// formatValidationError formats validation errors to be user-friendly
func formatValidationError(err error) error {
	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		var errors []string
		collectErrors(validationErr, &errors)
		return fmt.Errorf("schema validation failed:\n%s", strings.Join(errors, "\n"))
	}
	return fmt.Errorf("validation error: %w", err)
}

// collectErrors recursively collects all validation errors
func collectErrors(err *jsonschema.ValidationError, errors *[]string) {
	if len(err.Causes) == 0 {
		*errors = append(*errors, formatError(err))
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, errors)
	}
}

// formatError formats a single validation error
func formatError(err *jsonschema.ValidationError) string {
	location := strings.Join(err.InstanceLocation, "/")
	if location == "" {
		location = "(root)"
	} else {
		location = "/" + location
	}

	keywords := ""
	if err.ErrorKind != nil {
		if keywordPath := err.ErrorKind.KeywordPath(); len(keywordPath) > 0 {
			keywords = strings.Join(keywordPath, ".")
		}
	}

	if keywords != "" {
		return fmt.Sprintf("  - at %s: %s validation failed", location, keywords)
	}
	return fmt.Sprintf("  - at %s: validation failed", location)
}
