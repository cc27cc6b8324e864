package api

// User represents a registered account. A user is the ownership boundary
// for contacts: every contact belongs to exactly one user and is invisible
// to all others.
//
// Token holds the current opaque session token. An empty token means the
// user is logged out; at most one token is active per user at any time.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Token        string `json:"-"`
}

// UserResource is the wire representation of a user. The session token is
// included only in the login response.
type UserResource struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token,omitempty"`
}

// Resource returns the wire representation without the session token.
func (u *User) Resource() UserResource {
	return UserResource{ID: u.ID, Username: u.Username, Name: u.Name}
}

// ResourceWithToken returns the wire representation including the current
// session token. Used only by the login handler.
func (u *User) ResourceWithToken() UserResource {
	r := u.Resource()
	r.Token = u.Token
	return r
}

// Contact represents a contact record. UserID identifies the owning user
// and never changes after creation.
type Contact struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Address represents an address record. ContactID identifies the owning
// contact and never changes after creation. Ownership is transitive: an
// address is reachable only through its contact, and the contact only
// through its user.
type Address struct {
	ID         int64  `json:"id"`
	ContactID  int64  `json:"-"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// File represents an uploaded file's metadata. Files are deliberately not
// scoped to a user; the file routes are unauthenticated.
type File struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Path     string `json:"-"`
}

// RegisterRequest is the payload for POST /v1/users.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the payload for POST /v1/users/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateUserRequest is the payload for PATCH /v1/users/current. Both fields
// are optional; a nil field leaves the current value unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// FileUpdateRequest is the payload for renaming an uploaded file. Only the
// metadata changes; the stored contents are immutable.
type FileUpdateRequest struct {
	Filename string `json:"filename"`
}

// ContactRequest is the payload for creating or replacing a contact.
type ContactRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// AddressRequest is the payload for creating or replacing an address.
type AddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}
