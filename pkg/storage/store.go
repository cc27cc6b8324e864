package storage

import (
	"context"

	"github.com/rolodex-dev/rolodex/pkg/api"
)

// UserStore persists user accounts and their session-token state.
type UserStore interface {
	// CreateUser inserts a new user and fills in its ID.
	// Returns ErrConflict if the username is already taken.
	CreateUser(ctx context.Context, u *api.User) error

	// FindUserByUsername returns the user with the given username,
	// or ErrNotFound.
	FindUserByUsername(ctx context.Context, username string) (*api.User, error)

	// FindUserByToken returns the user whose current session token equals
	// token, or ErrNotFound. An empty token never matches.
	FindUserByToken(ctx context.Context, token string) (*api.User, error)

	// UpdateUser persists changes to name, password hash, and token.
	// The write is a single-row update: concurrent logins race benignly
	// and the last write wins.
	UpdateUser(ctx context.Context, u *api.User) error
}

// ContactStore persists contacts. Every read is scoped by the owning user.
type ContactStore interface {
	// CreateContact inserts a new contact and fills in its ID.
	CreateContact(ctx context.Context, c *api.Contact) error

	// FindContact returns the contact with the given id owned by userID,
	// or ErrNotFound if either the id or the ownership edge is missing.
	FindContact(ctx context.Context, id, userID int64) (*api.Contact, error)

	// UpdateContact persists field changes to a contact. The update is
	// scoped by (c.ID, c.UserID) and returns ErrNotFound on a miss.
	UpdateContact(ctx context.Context, c *api.Contact) error

	// DeleteContact removes the contact (and its addresses) scoped by
	// (id, userID). Returns ErrNotFound on a miss.
	DeleteContact(ctx context.Context, id, userID int64) error

	// SearchContacts returns one page of userID's contacts matching the
	// criteria. Ordering is by contact id ascending, so repeated calls
	// over unchanged data paginate deterministically.
	SearchContacts(ctx context.Context, userID int64, q api.ContactSearch) (*api.ContactPage, error)
}

// AddressStore persists addresses. Every read is scoped by the owning contact.
type AddressStore interface {
	// CreateAddress inserts a new address and fills in its ID.
	CreateAddress(ctx context.Context, a *api.Address) error

	// FindAddress returns the address with the given id owned by contactID,
	// or ErrNotFound.
	FindAddress(ctx context.Context, id, contactID int64) (*api.Address, error)

	// ListAddresses returns all addresses owned by contactID, ordered by id.
	ListAddresses(ctx context.Context, contactID int64) ([]api.Address, error)

	// UpdateAddress persists field changes scoped by (a.ID, a.ContactID).
	UpdateAddress(ctx context.Context, a *api.Address) error

	// DeleteAddress removes the address scoped by (id, contactID).
	DeleteAddress(ctx context.Context, id, contactID int64) error
}

// FileStore persists file metadata. Files are not user-scoped.
type FileStore interface {
	CreateFile(ctx context.Context, f *api.File) error
	FindFile(ctx context.Context, id int64) (*api.File, error)
	ListFiles(ctx context.Context) ([]api.File, error)
	UpdateFile(ctx context.Context, f *api.File) error
	DeleteFile(ctx context.Context, id int64) error
}

// Store is the full persistence surface consumed by the API server.
type Store interface {
	UserStore
	ContactStore
	AddressStore
	FileStore

	// Close releases the underlying resources.
	Close()
}
