// Package pagekit is the client core for server-driven admin pages: a form
// submission bridge and a paginated table controller, both dispatching
// through a shared navigation client. See pkg/form, pkg/table, pkg/nav, and
// pkg/schema for the individual contracts.
package pagekit

import (
	"github.com/harborview/pagekit/internal/transport"
	"github.com/harborview/pagekit/pkg/nav"
)

// TransportOption configures the built-in HTTP navigation client.
type TransportOption = transport.Option

// WithHTTPClient injects a custom http.Client into the transport.
var WithHTTPClient = transport.WithHTTPClient

// WithBaseURL prefixes relative destinations with the given origin.
var WithBaseURL = transport.WithBaseURL

// NewHTTPClient constructs the JSON-over-HTTP navigation client while
// keeping the concrete type hidden from consumers.
func NewHTTPClient(options ...TransportOption) nav.Client {
	return transport.New(options...)
}
