// Package access enforces ownership when resolving nested resources.
//
// Every single-resource read, update, or delete of a contact or address
// passes through the [Guard]. The guard resolves each hop of the ownership
// chain (user → contact → address) with a compound lookup that includes the
// owner's identifier, and fails closed with a NotFoundError on any miss.
// There is intentionally no "forbidden" outcome: a resource owned by
// someone else looks exactly like a resource that does not exist.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/rolodex-dev/rolodex/pkg/api"
	"github.com/rolodex-dev/rolodex/pkg/storage"
)

// NotFoundError reports a failed hop in the ownership chain. Resource names
// the level that missed ("Contact" or "Address"), never the reason.
type NotFoundError struct {
	Resource string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// Guard resolves resource identifier chains within one principal's boundary.
type Guard struct {
	contacts  storage.ContactStore
	addresses storage.AddressStore
}

// NewGuard creates a guard over the given stores.
func NewGuard(contacts storage.ContactStore, addresses storage.AddressStore) *Guard {
	return &Guard{contacts: contacts, addresses: addresses}
}

// Contact resolves contactID within the principal's boundary. A contact
// that does not exist and a contact owned by another user produce the same
// NotFoundError.
func (g *Guard) Contact(ctx context.Context, principal *api.User, contactID int64) (*api.Contact, error) {
	c, err := g.contacts.FindContact(ctx, contactID, principal.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &NotFoundError{Resource: "Contact"}
		}
		return nil, fmt.Errorf("resolving contact: %w", err)
	}
	return c, nil
}

// Address resolves the two-hop chain contactID → addressID. The contact hop
// runs first; the address lookup is scoped by the contact actually resolved,
// so an address reached through the wrong contact misses even when both
// belong to the same principal.
func (g *Guard) Address(ctx context.Context, principal *api.User, contactID, addressID int64) (*api.Contact, *api.Address, error) {
	c, err := g.Contact(ctx, principal, contactID)
	if err != nil {
		return nil, nil, err
	}

	a, err := g.addresses.FindAddress(ctx, addressID, c.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, &NotFoundError{Resource: "Address"}
		}
		return nil, nil, fmt.Errorf("resolving address: %w", err)
	}
	return c, a, nil
}
