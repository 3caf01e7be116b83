// Package table implements the paginated data table controller: it turns
// user intent (search, sort click, page change, page-size change) into one
// navigation request carrying the full canonical view state. The server is
// the sole source of truth for rows and totals; the controller performs no
// local sorting, filtering, or caching. State is rehydrated from server
// props after every round trip except the uncommitted search buffer, which
// stays local until explicitly submitted.
package table
