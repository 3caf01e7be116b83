package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// jsonSchema adapts a compiled JSON Schema document to the Schema interface.
type jsonSchema struct {
	compiled *jsonschema.Schema
}

// FromJSONSchema compiles a Draft 2020-12 document into a Schema. The name
// identifies the document in error messages.
func FromJSONSchema(name string, raw []byte) (Schema, error) {
	if name == "" {
		name = "schema.json"
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("schema: document is required")
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("schema: add resource: %w", err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("schema: compile: %w", err)
	}
	return &jsonSchema{compiled: compiled}, nil
}

// Validate implements Schema. Values round-trip through JSON so Go-native
// numbers take the shapes the validator expects.
func (s *jsonSchema) Validate(values Values) Violations {
	instance, err := normalizeInstance(values)
	if err != nil {
		return Violations{"": err.Error()}
	}

	err = s.compiled.Validate(instance)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return Violations{"": err.Error()}
	}

	out := Violations{}
	collectViolations(validationErr, out)
	if len(out) == 0 {
		out[""] = strings.TrimSpace(validationErr.Message)
	}
	return out
}

func normalizeInstance(values Values) (any, error) {
	data, err := json.Marshal(map[string]any(values))
	if err != nil {
		return nil, fmt.Errorf("schema: encode values: %w", err)
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("schema: decode values: %w", err)
	}
	return instance, nil
}

func collectViolations(err *jsonschema.ValidationError, dest Violations) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		field, message := violationEntry(err)
		if message == "" {
			return
		}
		if _, exists := dest[field]; !exists {
			dest[field] = message
		}
		return
	}
	for _, cause := range err.Causes {
		collectViolations(cause, dest)
	}
}

// violationEntry maps a leaf cause to a field name. Instance locations point
// at the offending value; "missing properties" messages carry the field in
// the message text instead, so that shape is parsed out.
func violationEntry(err *jsonschema.ValidationError) (string, string) {
	message := strings.TrimSpace(err.Message)
	if field := fieldFromLocation(err.InstanceLocation); field != "" {
		return field, message
	}
	if name, ok := missingProperty(message); ok {
		return name, "is required"
	}
	return "", message
}

func fieldFromLocation(location string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(location), "/")
	if trimmed == "" {
		return ""
	}
	segments := strings.Split(trimmed, "/")
	first := strings.ReplaceAll(segments[0], "~1", "/")
	return strings.ReplaceAll(first, "~0", "~")
}

func missingProperty(message string) (string, bool) {
	const prefix = "missing properties: "
	if !strings.HasPrefix(message, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(message, prefix)
	name := strings.Trim(strings.SplitN(rest, ",", 2)[0], "' ")
	if name == "" {
		return "", false
	}
	return name, true
}
