// Package http serves the contact-management API over HTTP. The adapter
// owns routing and request decoding; domain rules live in pkg/auth/session,
// pkg/access, and pkg/storage.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/rolodex-dev/rolodex/pkg/access"
	"github.com/rolodex-dev/rolodex/pkg/api"
	"github.com/rolodex-dev/rolodex/pkg/auth"
	"github.com/rolodex-dev/rolodex/pkg/auth/session"
	"github.com/rolodex-dev/rolodex/pkg/blob"
	"github.com/rolodex-dev/rolodex/pkg/storage"
	"github.com/rolodex-dev/rolodex/pkg/transport"
)

// Adapter routes API requests to handlers and serializes responses.
type Adapter struct {
	sessions *session.Service
	guard    *access.Guard
	store    storage.Store
	blobs    *blob.Store
	mux      *http.ServeMux
	config   Config
	logger   *slog.Logger
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	MaxBodySize int64
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		MaxBodySize: 10 << 20, // 10 MB
	}
}

// NewAdapter creates an HTTP adapter over the given collaborators. The auth
// chain protects every route except registration, login, health, and the
// file routes.
func NewAdapter(sessions *session.Service, chain *auth.Chain, store storage.Store, blobs *blob.Store, cfg Config, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}

	a := &Adapter{
		sessions: sessions,
		guard:    access.NewGuard(store, store),
		store:    store,
		blobs:    blobs,
		mux:      http.NewServeMux(),
		config:   cfg,
		logger:   logger,
	}

	protected := auth.Middleware(chain)
	guarded := func(h http.HandlerFunc) http.Handler { return protected(h) }

	// Public routes.
	a.mux.HandleFunc("POST /v1/users", a.handleRegister)
	a.mux.HandleFunc("POST /v1/users/login", a.handleLogin)
	a.mux.HandleFunc("GET /v1/healthz", a.handleHealth)

	a.mux.HandleFunc("POST /v1/files", a.handleUploadFile)
	a.mux.HandleFunc("GET /v1/files", a.handleListFiles)
	a.mux.HandleFunc("GET /v1/files/{id}", a.handleGetFile)
	a.mux.HandleFunc("PUT /v1/files/{id}", a.handleUpdateFile)
	a.mux.HandleFunc("DELETE /v1/files/{id}", a.handleDeleteFile)
	a.mux.HandleFunc("GET /v1/files/{id}/download", a.handleDownloadFile)

	// Protected routes.
	a.mux.Handle("GET /v1/users/current", guarded(a.handleCurrentUser))
	a.mux.Handle("PATCH /v1/users/current", guarded(a.handleUpdateUser))
	a.mux.Handle("DELETE /v1/users/logout", guarded(a.handleLogout))

	a.mux.Handle("POST /v1/contacts", guarded(a.handleCreateContact))
	a.mux.Handle("GET /v1/contacts", guarded(a.handleSearchContacts))
	a.mux.Handle("GET /v1/contacts/{id}", guarded(a.handleGetContact))
	a.mux.Handle("PUT /v1/contacts/{id}", guarded(a.handleUpdateContact))
	a.mux.Handle("DELETE /v1/contacts/{id}", guarded(a.handleDeleteContact))

	a.mux.Handle("POST /v1/contacts/{contactID}/addresses", guarded(a.handleCreateAddress))
	a.mux.Handle("GET /v1/contacts/{contactID}/addresses", guarded(a.handleListAddresses))
	a.mux.Handle("GET /v1/contacts/{contactID}/addresses/{addressID}", guarded(a.handleGetAddress))
	a.mux.Handle("PUT /v1/contacts/{contactID}/addresses/{addressID}", guarded(a.handleUpdateAddress))
	a.mux.Handle("DELETE /v1/contacts/{contactID}/addresses/{addressID}", guarded(a.handleDeleteAddress))

	return a
}

// Handler returns the http.Handler for this adapter. Use this to integrate
// with an http.Server or test with httptest.
func (a *Adapter) Handler() http.Handler {
	return a.mux
}

// handleHealth handles GET /v1/healthz.
func (a *Adapter) handleHealth(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// dataEnvelope wraps every successful response body.
type dataEnvelope struct {
	Data any `json:"data"`
}

// writeData writes a success response with the body wrapped in a data
// envelope.
func writeData(w http.ResponseWriter, statusCode int, body any) {
	transport.WriteJSON(w, statusCode, dataEnvelope{Data: body})
}

// decodeJSON decodes the request body into dst, enforcing the content type
// and body size limit. It writes the error response itself and returns false
// when decoding fails.
func (a *Adapter) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError("content_type", "Content-Type must be application/json"),
				http.StatusUnsupportedMediaType,
			)
			return false
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError("body", fmt.Sprintf("request body too large (max %d bytes)", a.config.MaxBodySize)),
				http.StatusRequestEntityTooLarge,
			)
			return false
		}
		transport.WriteAPIError(w, api.NewInvalidRequestError("body", "invalid JSON: "+err.Error()))
		return false
	}
	return true
}

// pathID parses the named path segment as a positive integer identifier.
// It writes a 400 response itself and returns false on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		transport.WriteAPIError(w, api.NewInvalidRequestError(name, name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}

// principal returns the authenticated user from the request context. The
// auth middleware guarantees it is present on protected routes; a missing
// principal means a wiring bug, answered with a 401 rather than a panic.
func (a *Adapter) principal(w http.ResponseWriter, r *http.Request) (*api.User, bool) {
	u := auth.PrincipalFromContext(r.Context())
	if u == nil {
		transport.WriteAPIError(w, api.NewUnauthenticatedError())
		return nil, false
	}
	return u, true
}

// writeServerError logs the underlying cause and answers with an opaque 500.
func (a *Adapter) writeServerError(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Error("request failed",
		slog.String("request_id", transport.RequestIDFromContext(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	transport.WriteAPIError(w, api.NewServerError("internal server error"))
}
