// Package api is the HTTP adapter between the console and the Daily Hustle
// REST backend.
//
// # Overview
//
// Client centralises the base URL, reads the bearer token from a TokenSource
// on every request and maps failures to typed errors. GetEnvelope and GetPage
// decode the backend's response envelopes and fail fast with a *ParseError
// when the shape does not match. Login and ValidateLogin implement the two
// auth endpoints.
//
// # Error Handling
//
//   - transport failures match ErrUnavailable;
//   - HTTP status >= 400 is a *StatusError carrying the server message;
//     401 also matches common.ErrorUnauthorized and 404 common.ErrorNotFound;
//   - unexpected response shapes are a *ParseError matching ErrMalformedResponse.
//
// There is no retry, no backoff and no client-side timeout; cancellation only
// comes from the caller's context.
package api
