package http

import (
	"errors"
	"net/http"

	"github.com/rolodex-dev/rolodex/pkg/api"
	"github.com/rolodex-dev/rolodex/pkg/auth"
	"github.com/rolodex-dev/rolodex/pkg/auth/session"
	"github.com/rolodex-dev/rolodex/pkg/observability"
	"github.com/rolodex-dev/rolodex/pkg/storage"
	"github.com/rolodex-dev/rolodex/pkg/transport"
)

// handleRegister handles POST /v1/users.
func (a *Adapter) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		transport.WriteAPIError(w, err)
		return
	}

	hash, err := session.HashPassword(req.Password)
	if err != nil {
		a.writeServerError(w, r, err)
		return
	}

	u := &api.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
	}
	if err := a.store.CreateUser(r.Context(), u); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			transport.WriteAPIError(w, api.NewConflictError("username", "username already registered"))
			return
		}
		a.writeServerError(w, r, err)
		return
	}

	writeData(w, http.StatusCreated, u.Resource())
}

// handleLogin handles POST /v1/users/login. Success returns the user with
// a freshly issued token; failure answers with the same error regardless of
// whether the username or the password was wrong.
func (a *Adapter) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		transport.WriteAPIError(w, err)
		return
	}

	u, err := a.sessions.VerifyCredentials(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			observability.LoginsTotal.WithLabelValues("rejected").Inc()
			transport.WriteAPIError(w, api.NewInvalidCredentialsError())
			return
		}
		a.writeServerError(w, r, err)
		return
	}

	if _, err := a.sessions.IssueToken(r.Context(), u); err != nil {
		a.writeServerError(w, r, err)
		return
	}

	observability.LoginsTotal.WithLabelValues("ok").Inc()
	writeData(w, http.StatusOK, u.ResourceWithToken())
}

// handleCurrentUser handles GET /v1/users/current.
func (a *Adapter) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	u, ok := a.principal(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, u.Resource())
}

// handleUpdateUser handles PATCH /v1/users/current. Name and password update
// independently; a new password does not invalidate the current session.
func (a *Adapter) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	u, ok := a.principal(w, r)
	if !ok {
		return
	}

	var req api.UpdateUserRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		transport.WriteAPIError(w, err)
		return
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := session.HashPassword(*req.Password)
		if err != nil {
			a.writeServerError(w, r, err)
			return
		}
		u.PasswordHash = hash
	}

	if err := a.store.UpdateUser(r.Context(), u); err != nil {
		a.writeServerError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, u.Resource())
}

// handleLogout handles DELETE /v1/users/logout. The token stops resolving
// immediately; repeating the call with a fresh login is the only way back in.
func (a *Adapter) handleLogout(w http.ResponseWriter, r *http.Request) {
	u, ok := a.principal(w, r)
	if !ok {
		return
	}

	if err := a.sessions.RevokeToken(r.Context(), u); err != nil {
		a.writeServerError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, true)
}
