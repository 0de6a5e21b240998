// Package client is the remote resource gateway of the console.
//
// # Overview
//
// The Client interface covers the five users API calls (FetchAll, FetchOne,
// Create, Update, Delete). HTTPClient implements it over HTTP/JSON against
//
//	GET    /users
//	GET    /users/{id}
//	POST   /users
//	PUT    /users/{id}
//	DELETE /users/{id}
//
// Update is a full replace; there is no partial patch.
//
// # Error Handling
//
// Every failure is a *TransportError carrying the HTTP status (zero when no
// response arrived) and a message. It matches ErrNotFound (404) and
// ErrUnavailable (no response, 502, 503, 504) with errors.Is. A success
// response whose body cannot be decoded keeps its status and matches
// ErrBadResponse instead. The gateway never retries; retry policy belongs to
// the cache.
//
// Timeouts are per request and configured on construction.
package client
