package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// openapiSchema validates values against an operation's JSON request body.
type openapiSchema struct {
	value *openapi3.Schema
}

// FromOpenAPI derives a Schema from the application/json request body of the
// named operation in an OpenAPI 3 document.
func FromOpenAPI(ctx context.Context, raw []byte, operationID string) (Schema, error) {
	if ctx == nil {
		return nil, errors.New("schema: context is required")
	}
	if len(raw) == 0 {
		return nil, errors.New("schema: document payload is empty")
	}
	if operationID == "" {
		return nil, errors.New("schema: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("schema: load document: %w", err)
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return nil, fmt.Errorf("schema: operation %q not found", operationID)
	}

	value := requestBodySchema(operation)
	if value == nil {
		return nil, fmt.Errorf("schema: operation %q has no JSON request body", operationID)
	}
	return &openapiSchema{value: value}, nil
}

// Validate implements Schema.
func (s *openapiSchema) Validate(values Values) Violations {
	instance, err := normalizeInstance(values)
	if err != nil {
		return Violations{"": err.Error()}
	}

	err = s.value.VisitJSON(instance, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	out := Violations{}
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, item := range multi {
			field, message := schemaErrorEntry(item)
			if _, exists := out[field]; !exists && message != "" {
				out[field] = message
			}
		}
	} else {
		field, message := schemaErrorEntry(err)
		out[field] = message
	}
	if len(out) == 0 {
		out[""] = strings.TrimSpace(err.Error())
	}
	return out
}

func schemaErrorEntry(err error) (string, string) {
	var schemaErr *openapi3.SchemaError
	if !errors.As(err, &schemaErr) {
		return "", strings.TrimSpace(err.Error())
	}

	pointer := schemaErr.JSONPointer()
	if len(pointer) > 0 {
		return pointer[0], strings.TrimSpace(schemaErr.Reason)
	}
	return "", strings.TrimSpace(schemaErr.Reason)
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec == nil || spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestBodySchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	media := operation.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil {
		return nil
	}
	return media.Schema.Value
}
