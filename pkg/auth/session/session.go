// Package session implements the opaque-session-token authenticator.
//
// A login issues a fresh UUID token and stores it on the user's row,
// replacing any previous token: one active session per user. Protected
// requests present the raw token in a configurable header; resolution is a
// single keyed lookup against the user store. Tokens carry no claims.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rolodex-dev/rolodex/pkg/api"
	"github.com/rolodex-dev/rolodex/pkg/auth"
	"github.com/rolodex-dev/rolodex/pkg/debug"
	"github.com/rolodex-dev/rolodex/pkg/storage"
)

// DefaultTokenHeader is the request header carrying the session token when
// no header name is configured.
const DefaultTokenHeader = "Authorization"

// dummyHash is a valid bcrypt digest compared against when the username is
// unknown, so that lookups for absent and present users cost the same.
// The digest matches no password we ever accept.
var dummyHash = []byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B0GmFeBlN1T/P7dLMWBEWeBZGmxa")

// Service issues, resolves, and revokes session tokens, and verifies login
// credentials. It is safe for concurrent use.
type Service struct {
	users  storage.UserStore
	header string
}

// Ensure Service implements auth.Authenticator at compile time.
var _ auth.Authenticator = (*Service)(nil)

// New creates a session service backed by the given user store. header is
// the request header carrying the token; empty means DefaultTokenHeader.
func New(users storage.UserStore, header string) *Service {
	if header == "" {
		header = DefaultTokenHeader
	}
	return &Service{users: users, header: header}
}

// HashPassword derives the stored bcrypt digest for a plaintext password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(h), nil
}

// VerifyCredentials looks up the user by username and checks the password
// against the stored bcrypt hash. An unknown username and a wrong password
// both return auth.ErrInvalidCredentials; the unknown-username path still
// performs a bcrypt comparison so the two are not distinguishable by timing.
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (*api.User, error) {
	u, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, auth.ErrInvalidCredentials
	}
	return u, nil
}

// IssueToken generates a fresh opaque token, stores it as the user's
// current token, and returns it. Any previously issued token is overwritten
// and stops resolving immediately.
func (s *Service) IssueToken(ctx context.Context, u *api.User) (string, error) {
	token := uuid.NewString()
	u.Token = token
	if err := s.users.UpdateUser(ctx, u); err != nil {
		return "", fmt.Errorf("storing token: %w", err)
	}
	return token, nil
}

// RevokeToken clears the user's current token. Revoking an already-cleared
// token is a no-op.
func (s *Service) RevokeToken(ctx context.Context, u *api.User) error {
	u.Token = ""
	if err := s.users.UpdateUser(ctx, u); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}

// ResolveToken returns the user whose current token equals the presented
// value. Missing, malformed, stale, and revoked tokens all fail uniformly
// with auth.ErrUnauthenticated.
func (s *Service) ResolveToken(ctx context.Context, token string) (*api.User, error) {
	if token == "" {
		return nil, auth.ErrUnauthenticated
	}
	u, err := s.users.FindUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, auth.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolving token: %w", err)
	}
	return u, nil
}

// Authenticate extracts the token header and resolves it.
// Returns Abstain when the header is absent (the chain's default then
// rejects with the same shape as an invalid token), No when a token is
// present but does not resolve, and Yes with the user otherwise.
func (s *Service) Authenticate(ctx context.Context, r *http.Request) auth.Result {
	token := r.Header.Get(s.header)
	if token == "" {
		return auth.Result{Decision: auth.Abstain}
	}

	u, err := s.ResolveToken(ctx, token)
	if err != nil {
		debug.Log("auth", "token did not resolve")
		return auth.Result{Decision: auth.No, Err: err}
	}

	debug.Log("auth", "token resolved", "user", u.Username)
	return auth.Result{Decision: auth.Yes, User: u}
}
