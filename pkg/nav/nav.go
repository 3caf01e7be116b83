package nav

import (
	"context"
	"encoding/json"
)

// Method enumerates the write verbs a visit may carry. Reads go through
// Navigate and carry no method.
type Method string

const (
	// MethodCreate submits a new resource (POST).
	MethodCreate Method = "post"
	// MethodUpdate applies a partial replacement (PATCH).
	MethodUpdate Method = "patch"
	// MethodReplace applies a full replacement (PUT).
	MethodReplace Method = "put"
	// MethodDelete removes a resource (DELETE).
	MethodDelete Method = "delete"
)

// Valid reports whether the method belongs to the supported verb family.
func (m Method) Valid() bool {
	switch m {
	case MethodCreate, MethodUpdate, MethodReplace, MethodDelete:
		return true
	default:
		return false
	}
}

// HTTPVerb returns the HTTP method name for the wire request.
func (m Method) HTTPVerb() string {
	switch m {
	case MethodCreate:
		return "POST"
	case MethodUpdate:
		return "PATCH"
	case MethodReplace:
		return "PUT"
	case MethodDelete:
		return "DELETE"
	default:
		return ""
	}
}

// Payload is the wire body of a write visit.
type Payload map[string]any

// Params is the canonical query-parameter set of a read navigation.
type Params map[string]string

// Page is the document a server-driven endpoint re-renders in response to a
// navigation: the component to display plus its raw props. Callers decode
// Props into their own view input struct.
type Page struct {
	Component string          `json:"component"`
	Props     json.RawMessage `json:"props"`
}

// Options carries per-visit instructions and lifecycle callbacks. The
// preserve flags are pure hints passed through to the server untouched; the
// client attaches no local semantics to them.
type Options struct {
	Method         Method
	PreserveScroll bool
	PreserveState  bool

	// OnSuccess fires when the server acknowledges the request.
	OnSuccess func()
	// OnError fires with the server's field-keyed error map, or with a
	// single root entry when the failure is not attributable to a field
	// (transport failures included).
	OnError func(ErrorBag)
	// OnFinish always fires last, after OnSuccess or OnError.
	OnFinish func()
	// OnPage fires when the response body is a re-rendered page document.
	OnPage func(Page)
}

// Client dispatches navigation requests. Implementations return an error only
// for programmer mistakes (empty destination, invalid method); transport and
// server failures are reported through Options callbacks so every rejection
// path ends in a visible message.
type Client interface {
	// Visit performs one write round trip.
	Visit(ctx context.Context, destination string, payload Payload, opts Options) error
	// Navigate performs one idempotent read describing the full desired
	// view state.
	Navigate(ctx context.Context, destination string, params Params, opts Options) error
}
