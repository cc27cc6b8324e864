// Package memory provides an in-memory implementation of storage.Store for
// testing and lightweight deployments. All data is lost when the process
// restarts.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rolodex-dev/rolodex/pkg/api"
	"github.com/rolodex-dev/rolodex/pkg/storage"
)

// Store is an in-memory storage.Store guarded by a single RWMutex.
type Store struct {
	mu sync.RWMutex

	users     map[int64]*api.User
	contacts  map[int64]*api.Contact
	addresses map[int64]*api.Address
	files     map[int64]*api.File

	nextUserID    int64
	nextContactID int64
	nextAddressID int64
	nextFileID    int64
}

// Ensure Store implements storage.Store at compile time.
var _ storage.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:     make(map[int64]*api.User),
		contacts:  make(map[int64]*api.Contact),
		addresses: make(map[int64]*api.Address),
		files:     make(map[int64]*api.File),
	}
}

// Close is a no-op for the memory store.
func (s *Store) Close() {}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// CreateUser inserts a new user. Usernames are unique.
func (s *Store) CreateUser(_ context.Context, u *api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return storage.ErrConflict
		}
	}

	s.nextUserID++
	u.ID = s.nextUserID
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

// FindUserByUsername returns the user with the given username.
func (s *Store) FindUserByUsername(_ context.Context, username string) (*api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

// FindUserByToken returns the user holding the given session token.
// An empty token matches nothing: a logged-out user's cleared token must
// not become a wildcard credential.
func (s *Store) FindUserByToken(_ context.Context, token string) (*api.User, error) {
	if token == "" {
		return nil, storage.ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Token == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

// UpdateUser overwrites the stored user row.
func (s *Store) UpdateUser(_ context.Context, u *api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return storage.ErrNotFound
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

// ---------------------------------------------------------------------------
// Contacts
// ---------------------------------------------------------------------------

// CreateContact inserts a new contact.
func (s *Store) CreateContact(_ context.Context, c *api.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextContactID++
	c.ID = s.nextContactID
	cp := *c
	s.contacts[c.ID] = &cp
	return nil
}

// FindContact returns the contact scoped by (id, userID).
func (s *Store) FindContact(_ context.Context, id, userID int64) (*api.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contacts[id]
	if !ok || c.UserID != userID {
		return nil, storage.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// UpdateContact overwrites the contact scoped by (c.ID, c.UserID).
func (s *Store) UpdateContact(_ context.Context, c *api.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.contacts[c.ID]
	if !ok || existing.UserID != c.UserID {
		return storage.ErrNotFound
	}
	cp := *c
	s.contacts[c.ID] = &cp
	return nil
}

// DeleteContact removes the contact and its addresses, scoped by (id, userID).
func (s *Store) DeleteContact(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contacts[id]
	if !ok || c.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.contacts, id)
	for aid, a := range s.addresses {
		if a.ContactID == id {
			delete(s.addresses, aid)
		}
	}
	return nil
}

// SearchContacts returns one page of userID's contacts matching q.
// Results are ordered by contact id so pagination is stable.
func (s *Store) SearchContacts(_ context.Context, userID int64, q api.ContactSearch) (*api.ContactPage, error) {
	q = q.Normalize()

	s.mu.RLock()
	var matched []api.Contact
	for _, c := range s.contacts {
		if c.UserID != userID {
			continue
		}
		if matchesContact(c, q) {
			matched = append(matched, *c)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	start := q.Offset()
	if start > total {
		start = total
	}
	end := start + q.Size
	if end > total {
		end = total
	}

	items := matched[start:end]
	if items == nil {
		items = []api.Contact{}
	}

	return &api.ContactPage{
		Items: items,
		Meta:  api.PageMeta{Total: total, Page: q.Page, Size: q.Size},
	}, nil
}

// matchesContact applies the optional criteria. Criteria are AND-combined;
// the name criterion alone spans two fields with OR.
func matchesContact(c *api.Contact, q api.ContactSearch) bool {
	if q.Name != "" {
		name := strings.ToLower(q.Name)
		first := strings.ToLower(c.FirstName)
		last := strings.ToLower(c.LastName)
		if !strings.Contains(first, name) && !strings.Contains(last, name) {
			return false
		}
	}
	if q.Email != "" {
		if !strings.Contains(strings.ToLower(c.Email), strings.ToLower(q.Email)) {
			return false
		}
	}
	if q.Phone != "" {
		if !strings.Contains(c.Phone, q.Phone) {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Addresses
// ---------------------------------------------------------------------------

// CreateAddress inserts a new address.
func (s *Store) CreateAddress(_ context.Context, a *api.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAddressID++
	a.ID = s.nextAddressID
	cp := *a
	s.addresses[a.ID] = &cp
	return nil
}

// FindAddress returns the address scoped by (id, contactID).
func (s *Store) FindAddress(_ context.Context, id, contactID int64) (*api.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.addresses[id]
	if !ok || a.ContactID != contactID {
		return nil, storage.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// ListAddresses returns all addresses owned by contactID, ordered by id.
func (s *Store) ListAddresses(_ context.Context, contactID int64) ([]api.Address, error) {
	s.mu.RLock()
	var out []api.Address
	for _, a := range s.addresses {
		if a.ContactID == contactID {
			out = append(out, *a)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if out == nil {
		out = []api.Address{}
	}
	return out, nil
}

// UpdateAddress overwrites the address scoped by (a.ID, a.ContactID).
func (s *Store) UpdateAddress(_ context.Context, a *api.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.addresses[a.ID]
	if !ok || existing.ContactID != a.ContactID {
		return storage.ErrNotFound
	}
	cp := *a
	s.addresses[a.ID] = &cp
	return nil
}

// DeleteAddress removes the address scoped by (id, contactID).
func (s *Store) DeleteAddress(_ context.Context, id, contactID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.addresses[id]
	if !ok || a.ContactID != contactID {
		return storage.ErrNotFound
	}
	delete(s.addresses, id)
	return nil
}

// ---------------------------------------------------------------------------
// Files
// ---------------------------------------------------------------------------

// CreateFile inserts new file metadata.
func (s *Store) CreateFile(_ context.Context, f *api.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextFileID++
	f.ID = s.nextFileID
	cp := *f
	s.files[f.ID] = &cp
	return nil
}

// FindFile returns the file metadata with the given id.
func (s *Store) FindFile(_ context.Context, id int64) (*api.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

// ListFiles returns all file metadata, ordered by id.
func (s *Store) ListFiles(_ context.Context) ([]api.File, error) {
	s.mu.RLock()
	var out []api.File
	for _, f := range s.files {
		out = append(out, *f)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if out == nil {
		out = []api.File{}
	}
	return out, nil
}

// UpdateFile overwrites the stored file metadata.
func (s *Store) UpdateFile(_ context.Context, f *api.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[f.ID]; !ok {
		return storage.ErrNotFound
	}
	cp := *f
	s.files[f.ID] = &cp
	return nil
}

// DeleteFile removes the file metadata with the given id.
func (s *Store) DeleteFile(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.files, id)
	return nil
}
