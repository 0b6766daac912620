// Package session implements the two-step login of the admin console.
//
// A Manager moves between three states:
//
//	unauthenticated -> (Login) -> otp_pending -> (ValidateLogin) -> authenticated
//	authenticated   -> (Logout) -> unauthenticated
//
// The bearer token is persisted through a TokenStore; on startup Restore
// treats a stored token as an authenticated session without asking the server.
package session
