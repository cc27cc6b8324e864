package http

import (
	"net/http"

	"github.com/rolodex-dev/rolodex/pkg/api"
	"github.com/rolodex-dev/rolodex/pkg/transport"
)

// handleCreateAddress handles POST /v1/contacts/{contactID}/addresses.
func (a *Adapter) handleCreateAddress(w http.ResponseWriter, r *http.Request) {
	u, ok := a.principal(w, r)
	if !ok {
		return
	}
	contactID, ok := pathID(w, r, "contactID")
	if !ok {
		return
	}

	var req api.AddressRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		transport.WriteAPIError(w, err)
		return
	}

	c, err := a.guard.Contact(r.Context(), u, contactID)
	if err != nil {
		a.writeGuardError(w, r, err)
		return
	}

	addr := &api.Address{
		ContactID:  c.ID,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}
	if err := a.store.CreateAddress(r.Context(), addr); err != nil {
		a.writeServerError(w, r, err)
		return
	}

	writeData(w, http.StatusCreated, addr)
}

// handleListAddresses handles GET /v1/contacts/{contactID}/addresses.
func (a *Adapter) handleListAddresses(w http.ResponseWriter, r *http.Request) {
	u, ok := a.principal(w, r)
	if !ok {
		return
	}
	contactID, ok := pathID(w, r, "contactID")
	if !ok {
		return
	}

	c, err := a.guard.Contact(r.Context(), u, contactID)
	if err != nil {
		a.writeGuardError(w, r, err)
		return
	}

	addrs, err := a.store.ListAddresses(r.Context(), c.ID)
	if err != nil {
		a.writeServerError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, addrs)
}

// handleGetAddress handles GET /v1/contacts/{contactID}/addresses/{addressID}.
func (a *Adapter) handleGetAddress(w http.ResponseWriter, r *http.Request) {
	u, ok := a.principal(w, r)
	if !ok {
		return
	}
	contactID, ok := pathID(w, r, "contactID")
	if !ok {
		return
	}
	addressID, ok := pathID(w, r, "addressID")
	if !ok {
		return
	}

	_, addr, err := a.guard.Address(r.Context(), u, contactID, addressID)
	if err != nil {
		a.writeGuardError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, addr)
}

// handleUpdateAddress handles PUT /v1/contacts/{contactID}/addresses/{addressID}.
func (a *Adapter) handleUpdateAddress(w http.ResponseWriter, r *http.Request) {
	u, ok := a.principal(w, r)
	if !ok {
		return
	}
	contactID, ok := pathID(w, r, "contactID")
	if !ok {
		return
	}
	addressID, ok := pathID(w, r, "addressID")
	if !ok {
		return
	}

	var req api.AddressRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		transport.WriteAPIError(w, err)
		return
	}

	_, addr, err := a.guard.Address(r.Context(), u, contactID, addressID)
	if err != nil {
		a.writeGuardError(w, r, err)
		return
	}

	addr.Street = req.Street
	addr.City = req.City
	addr.Province = req.Province
	addr.Country = req.Country
	addr.PostalCode = req.PostalCode

	if err := a.store.UpdateAddress(r.Context(), addr); err != nil {
		a.writeServerError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, addr)
}

// handleDeleteAddress handles DELETE /v1/contacts/{contactID}/addresses/{addressID}.
func (a *Adapter) handleDeleteAddress(w http.ResponseWriter, r *http.Request) {
	u, ok := a.principal(w, r)
	if !ok {
		return
	}
	contactID, ok := pathID(w, r, "contactID")
	if !ok {
		return
	}
	addressID, ok := pathID(w, r, "addressID")
	if !ok {
		return
	}

	c, addr, err := a.guard.Address(r.Context(), u, contactID, addressID)
	if err != nil {
		a.writeGuardError(w, r, err)
		return
	}

	if err := a.store.DeleteAddress(r.Context(), addr.ID, c.ID); err != nil {
		a.writeServerError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, true)
}
