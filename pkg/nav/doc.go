// Package nav defines the navigation/request contract shared by the form
// bridge and the table controller. A Client dispatches exactly one request
// per call and reports the outcome through lifecycle callbacks; it never
// retries, queues, or cancels. Concrete transports live in
// internal/transport.
package nav
