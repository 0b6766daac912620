// Package common contains shared constants and sentinel errors used across
// the admin console components.
package common

// AuthorizationHeaderName is the HTTP header that carries the bearer token on
// outbound API requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token value in the Authorization header.
const BearerPrefix = "Bearer "

// Storage keys of the persisted client state.
const (
	TokenStorageKey = "adminToken"
	ThemeStorageKey = "theme"
)

// DefaultRoute is where a successful login lands when no route was requested
// before the redirect to login happened.
const DefaultRoute = "/"
