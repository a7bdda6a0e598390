// Package client implements the HTTP client for the Scouting America
// REST APIs.
//
// Requests carry a bearer token supplied by a TokenProvider and are
// retried on transient failures. Responses decode into the record types
// in types.go; error responses map to typed errors so callers can tell
// authorization failures apart from missing resources.
package client
