package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rolodex-dev/rolodex/pkg/access"
	"github.com/rolodex-dev/rolodex/pkg/api"
	"github.com/rolodex-dev/rolodex/pkg/observability"
	"github.com/rolodex-dev/rolodex/pkg/transport"
)

// handleCreateContact handles POST /v1/contacts.
func (a *Adapter) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	u, ok := a.principal(w, r)
	if !ok {
		return
	}

	var req api.ContactRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		transport.WriteAPIError(w, err)
		return
	}

	c := &api.Contact{
		UserID:    u.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if err := a.store.CreateContact(r.Context(), c); err != nil {
		a.writeServerError(w, r, err)
		return
	}

	writeData(w, http.StatusCreated, c)
}

// handleSearchContacts handles GET /v1/contacts. All criteria are optional
// and combine with AND; no criteria lists every contact of the caller.
func (a *Adapter) handleSearchContacts(w http.ResponseWriter, r *http.Request) {
	u, ok := a.principal(w, r)
	if !ok {
		return
	}

	q, apiErr := parseContactSearch(r)
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	page, err := a.store.SearchContacts(r.Context(), u.ID, q)
	if err != nil {
		a.writeServerError(w, r, err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, page)
}

// parseContactSearch extracts search criteria and pagination from the query
// string. Pagination values must be positive integers when present.
func parseContactSearch(r *http.Request) (api.ContactSearch, *api.APIError) {
	values := r.URL.Query()
	q := api.ContactSearch{
		Name:  values.Get("name"),
		Email: values.Get("email"),
		Phone: values.Get("phone"),
	}

	if pageStr := values.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return q, api.NewInvalidRequestError("page", "page must be a positive integer")
		}
		q.Page = page
	}
	if sizeStr := values.Get("size"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 1 {
			return q, api.NewInvalidRequestError("size", "size must be a positive integer")
		}
		q.Size = size
	}

	return q.Normalize(), nil
}

// handleGetContact handles GET /v1/contacts/{id}.
func (a *Adapter) handleGetContact(w http.ResponseWriter, r *http.Request) {
	u, ok := a.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := a.guard.Contact(r.Context(), u, id)
	if err != nil {
		a.writeGuardError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, c)
}

// handleUpdateContact handles PUT /v1/contacts/{id}.
func (a *Adapter) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	u, ok := a.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req api.ContactRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		transport.WriteAPIError(w, err)
		return
	}

	c, err := a.guard.Contact(r.Context(), u, id)
	if err != nil {
		a.writeGuardError(w, r, err)
		return
	}

	c.FirstName = req.FirstName
	c.LastName = req.LastName
	c.Email = req.Email
	c.Phone = req.Phone

	if err := a.store.UpdateContact(r.Context(), c); err != nil {
		a.writeServerError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, c)
}

// handleDeleteContact handles DELETE /v1/contacts/{id}. Deleting a contact
// removes its addresses with it.
func (a *Adapter) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	u, ok := a.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := a.guard.Contact(r.Context(), u, id); err != nil {
		a.writeGuardError(w, r, err)
		return
	}

	if err := a.store.DeleteContact(r.Context(), id, u.ID); err != nil {
		a.writeServerError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, true)
}

// writeGuardError maps an ownership-guard failure to the wire. Misses answer
// with a plain not-found; anything else is a server fault.
func (a *Adapter) writeGuardError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *access.NotFoundError
	if errors.As(err, &nf) {
		observability.OwnershipMissesTotal.WithLabelValues(nf.Resource).Inc()
		transport.WriteAPIError(w, api.NewNotFoundError(nf.Error()))
		return
	}
	a.writeServerError(w, r, err)
}
