package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rolodex-dev/rolodex/pkg/api"
	"github.com/rolodex-dev/rolodex/pkg/observability"
)

// Middleware creates HTTP middleware from a Chain. It runs authentication
// and injects the resolved principal into the request context.
//
// Every failure path writes the same response body and status: a caller
// cannot distinguish a missing header from a stale or forged token.
func Middleware(chain *Chain) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := chain.Authenticate(r.Context(), r)

			if result.Decision != Yes || result.User == nil {
				slog.Warn("authentication failed",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
				)
				observability.AuthFailuresTotal.Inc()
				writeUnauthenticated(w)
				return
			}

			slog.Debug("authentication succeeded",
				"username", result.User.Username,
				"path", r.URL.Path,
			)

			ctx := SetPrincipal(r.Context(), result.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeUnauthenticated emits the single 401 shape shared by all token
// failure modes.
func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: api.NewUnauthenticatedError()})
}
