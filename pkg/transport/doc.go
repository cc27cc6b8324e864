// Package transport provides the HTTP plumbing shared by all handlers:
// error-to-status mapping, JSON response writers, and the middleware stack
// (panic recovery, request IDs, structured request logging).
//
// Middleware here operates on plain http.Handler values so it composes with
// the auth middleware in pkg/auth and the metrics middleware in
// pkg/observability.
package transport
