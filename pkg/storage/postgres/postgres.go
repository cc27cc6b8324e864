// Package postgres provides a PostgreSQL implementation of storage.Store.
// It uses pgx/v5 for connection pooling and embedded SQL migrations for
// schema management.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rolodex-dev/rolodex/pkg/api"
	"github.com/rolodex-dev/rolodex/pkg/storage"
)

// Config describes the connection pool and startup behavior of the store.
type Config struct {
	// DSN is the connection string, in any form pgxpool.ParseConfig accepts.
	DSN string

	// MaxConns caps the pool. The contact API issues at most a handful of
	// short queries per request, so a small pool goes a long way. Zero
	// means 10.
	MaxConns int32

	// MinConns is how many idle connections the pool keeps warm. Zero
	// means 2.
	MinConns int32

	// MaxConnLifetime recycles connections older than this, so the pool
	// follows server-side restarts and failovers. Zero means 30 minutes.
	MaxConnLifetime time.Duration

	// MigrateOnStart applies pending schema migrations before the store
	// is returned.
	MigrateOnStart bool
}

func (c *Config) defaults() {
	if c.MaxConns == 0 {
		c.MaxConns = 10
	}
	if c.MinConns == 0 {
		c.MinConns = 2
	}
	if c.MaxConnLifetime == 0 {
		c.MaxConnLifetime = 30 * time.Minute
	}
}

// Store is a PostgreSQL-backed storage.Store.
type Store struct {
	pool *pgxpool.Pool
}

// Ensure Store implements storage.Store at compile time.
var _ storage.Store = (*Store)(nil)

// New creates a new PostgreSQL store with the given configuration.
// If MigrateOnStart is true, schema migrations are applied automatically.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cfg.defaults()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connectivity.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{pool: pool}

	if cfg.MigrateOnStart {
		if err := s.migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return s, nil
}

// HealthCheck verifies the database connection.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// CreateUser inserts a new user and fills in its ID.
func (s *Store) CreateUser(ctx context.Context, u *api.User) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (username, name, password_hash, token)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, u.Username, u.Name, u.PasswordHash, nullString(u.Token)).Scan(&u.ID)

	if err != nil {
		if isDuplicateKey(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// FindUserByUsername returns the user with the given username.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*api.User, error) {
	return s.findUser(ctx, "username = $1", username)
}

// FindUserByToken returns the user holding the given session token.
// The empty string never matches; logged-out users store NULL.
func (s *Store) FindUserByToken(ctx context.Context, token string) (*api.User, error) {
	if token == "" {
		return nil, storage.ErrNotFound
	}
	return s.findUser(ctx, "token = $1", token)
}

func (s *Store) findUser(ctx context.Context, predicate string, arg any) (*api.User, error) {
	var u api.User
	var token *string

	err := s.pool.QueryRow(ctx,
		"SELECT id, username, name, password_hash, token FROM users WHERE "+predicate,
		arg,
	).Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &token)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	if token != nil {
		u.Token = *token
	}
	return &u, nil
}

// UpdateUser persists name, password hash, and token in one row update.
// Concurrent logins race benignly: the last write wins, which matches the
// single-active-session model.
func (s *Store) UpdateUser(ctx context.Context, u *api.User) error {
	result, err := s.pool.Exec(ctx, `
		UPDATE users SET name = $1, password_hash = $2, token = $3 WHERE id = $4
	`, u.Name, u.PasswordHash, nullString(u.Token), u.ID)

	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Contacts
// ---------------------------------------------------------------------------

// CreateContact inserts a new contact and fills in its ID.
func (s *Store) CreateContact(ctx context.Context, c *api.Contact) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO contacts (user_id, first_name, last_name, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, c.UserID, c.FirstName, c.LastName, c.Email, c.Phone).Scan(&c.ID)

	if err != nil {
		return fmt.Errorf("inserting contact: %w", err)
	}
	return nil
}

// FindContact returns the contact scoped by (id, userID). The owner
// predicate is part of the query itself, never applied after the fact.
func (s *Store) FindContact(ctx context.Context, id, userID int64) (*api.Contact, error) {
	var c api.Contact

	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, first_name, last_name, email, phone
		FROM contacts
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.Phone)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying contact: %w", err)
	}
	return &c, nil
}

// UpdateContact persists field changes scoped by (c.ID, c.UserID).
func (s *Store) UpdateContact(ctx context.Context, c *api.Contact) error {
	result, err := s.pool.Exec(ctx, `
		UPDATE contacts SET first_name = $1, last_name = $2, email = $3, phone = $4
		WHERE id = $5 AND user_id = $6
	`, c.FirstName, c.LastName, c.Email, c.Phone, c.ID, c.UserID)

	if err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteContact removes the contact scoped by (id, userID). Addresses go
// with it via ON DELETE CASCADE.
func (s *Store) DeleteContact(ctx context.Context, id, userID int64) error {
	result, err := s.pool.Exec(ctx,
		"DELETE FROM contacts WHERE id = $1 AND user_id = $2", id, userID)

	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Addresses
// ---------------------------------------------------------------------------

// CreateAddress inserts a new address and fills in its ID.
func (s *Store) CreateAddress(ctx context.Context, a *api.Address) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO addresses (contact_id, street, city, province, country, postal_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, a.ContactID, a.Street, a.City, a.Province, a.Country, a.PostalCode).Scan(&a.ID)

	if err != nil {
		return fmt.Errorf("inserting address: %w", err)
	}
	return nil
}

// FindAddress returns the address scoped by (id, contactID).
func (s *Store) FindAddress(ctx context.Context, id, contactID int64) (*api.Address, error) {
	var a api.Address

	err := s.pool.QueryRow(ctx, `
		SELECT id, contact_id, street, city, province, country, postal_code
		FROM addresses
		WHERE id = $1 AND contact_id = $2
	`, id, contactID).Scan(&a.ID, &a.ContactID, &a.Street, &a.City, &a.Province, &a.Country, &a.PostalCode)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying address: %w", err)
	}
	return &a, nil
}

// ListAddresses returns all addresses owned by contactID, ordered by id.
func (s *Store) ListAddresses(ctx context.Context, contactID int64) ([]api.Address, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, contact_id, street, city, province, country, postal_code
		FROM addresses
		WHERE contact_id = $1
		ORDER BY id
	`, contactID)
	if err != nil {
		return nil, fmt.Errorf("querying addresses: %w", err)
	}
	defer rows.Close()

	out := []api.Address{}
	for rows.Next() {
		var a api.Address
		if err := rows.Scan(&a.ID, &a.ContactID, &a.Street, &a.City, &a.Province, &a.Country, &a.PostalCode); err != nil {
			return nil, fmt.Errorf("scanning address: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateAddress persists field changes scoped by (a.ID, a.ContactID).
func (s *Store) UpdateAddress(ctx context.Context, a *api.Address) error {
	result, err := s.pool.Exec(ctx, `
		UPDATE addresses SET street = $1, city = $2, province = $3, country = $4, postal_code = $5
		WHERE id = $6 AND contact_id = $7
	`, a.Street, a.City, a.Province, a.Country, a.PostalCode, a.ID, a.ContactID)

	if err != nil {
		return fmt.Errorf("updating address: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteAddress removes the address scoped by (id, contactID).
func (s *Store) DeleteAddress(ctx context.Context, id, contactID int64) error {
	result, err := s.pool.Exec(ctx,
		"DELETE FROM addresses WHERE id = $1 AND contact_id = $2", id, contactID)

	if err != nil {
		return fmt.Errorf("deleting address: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Files
// ---------------------------------------------------------------------------

// CreateFile inserts new file metadata and fills in its ID.
func (s *Store) CreateFile(ctx context.Context, f *api.File) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO files (filename, mime_type, path)
		VALUES ($1, $2, $3)
		RETURNING id
	`, f.Filename, f.MimeType, f.Path).Scan(&f.ID)

	if err != nil {
		return fmt.Errorf("inserting file: %w", err)
	}
	return nil
}

// FindFile returns the file metadata with the given id.
func (s *Store) FindFile(ctx context.Context, id int64) (*api.File, error) {
	var f api.File

	err := s.pool.QueryRow(ctx,
		"SELECT id, filename, mime_type, path FROM files WHERE id = $1", id,
	).Scan(&f.ID, &f.Filename, &f.MimeType, &f.Path)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying file: %w", err)
	}
	return &f, nil
}

// ListFiles returns all file metadata, ordered by id.
func (s *Store) ListFiles(ctx context.Context) ([]api.File, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, filename, mime_type, path FROM files ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	out := []api.File{}
	for rows.Next() {
		var f api.File
		if err := rows.Scan(&f.ID, &f.Filename, &f.MimeType, &f.Path); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// UpdateFile persists changed file metadata.
func (s *Store) UpdateFile(ctx context.Context, f *api.File) error {
	result, err := s.pool.Exec(ctx, `
		UPDATE files SET filename = $1, mime_type = $2, path = $3 WHERE id = $4
	`, f.Filename, f.MimeType, f.Path, f.ID)

	if err != nil {
		return fmt.Errorf("updating file: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteFile removes the file metadata with the given id.
func (s *Store) DeleteFile(ctx context.Context, id int64) error {
	result, err := s.pool.Exec(ctx, "DELETE FROM files WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// nullString converts an empty string to nil for nullable TEXT columns.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// isDuplicateKey checks if the error is a PostgreSQL unique violation (23505).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
