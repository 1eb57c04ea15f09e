// Package client talks to the userkeeper HTTP API on behalf of the CLI.
//
// # Overview
//
// Client is the transport-agnostic contract used by the CLI; HTTPClient is
// its net/http implementation. After a successful Login the access token is
// kept in memory and sent as "Authorization: Bearer <token>" on calls that
// need it.
//
// # Error Handling
//
// Failures are reported as sentinel errors that callers match with
// errors.Is: ErrUnavailable (transport failure), ErrUnauthorized (the access
// gate rejected the token or no login happened yet), ErrNotFound and
// ErrBadRequest. The server's message is kept in an *APIError.
//
// HTTPClient is safe for concurrent use.
package client
