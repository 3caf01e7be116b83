// Package schema defines the validation collaborator consumed by the form
// bridge: a pure check from field values to per-field messages. Three
// implementations ship with the package — declarative rules, compiled JSON
// Schema documents, and OpenAPI operation request bodies.
package schema
