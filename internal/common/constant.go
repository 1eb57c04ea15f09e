// Package common contains shared constants and sentinel errors used across
// userkeeper components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer credential.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only authorization scheme accepted by the access gate.
const BearerScheme = "Bearer"

// RequestIDHeaderName is echoed on every response for log correlation.
const RequestIDHeaderName = "X-Request-ID"
