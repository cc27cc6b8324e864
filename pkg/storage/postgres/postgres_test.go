package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	pgmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rolodex-dev/rolodex/pkg/api"
	"github.com/rolodex-dev/rolodex/pkg/storage"
)

func init() {
	// Configure testcontainers to use podman.
	// Detect the podman socket from `podman machine inspect`.
	if os.Getenv("DOCKER_HOST") == "" {
		out, err := exec.Command("podman", "machine", "inspect", "--format", "{{.ConnectionInfo.PodmanSocket.Path}}").Output()
		if err == nil {
			sock := strings.TrimSpace(string(out))
			if sock != "" {
				os.Setenv("DOCKER_HOST", "unix://"+sock)
			}
		}
	}
	// Ryuk needs privileged mode with podman.
	if os.Getenv("TESTCONTAINERS_RYUK_CONTAINER_PRIVILEGED") == "" {
		os.Setenv("TESTCONTAINERS_RYUK_CONTAINER_PRIVILEGED", "true")
	}
}

// setupTestDB starts a PostgreSQL container and returns a connected Store.
// Tests are skipped if no container runtime is available.
func setupTestDB(t *testing.T) *Store {
	t.Helper()

	if os.Getenv("SKIP_INTEGRATION") == "true" {
		t.Skip("SKIP_INTEGRATION=true, skipping PostgreSQL integration tests")
	}

	ctx := context.Background()

	container, err := pgmodule.Run(ctx,
		"postgres:16-alpine",
		pgmodule.WithDatabase("rolodex_test"),
		pgmodule.WithUsername("test"),
		pgmodule.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("skipping: could not start PostgreSQL container: %v", err)
	}

	t.Cleanup(func() {
		container.Terminate(context.Background())
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("getting connection string: %v", err)
	}

	store, err := New(ctx, Config{
		DSN:            connStr,
		MaxConns:       5,
		MinConns:       1,
		MigrateOnStart: true,
	})
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func createUser(t *testing.T, s *Store, username string) *api.User {
	t.Helper()
	u := &api.User{Username: username, Name: username, PasswordHash: "hash"}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	return u
}

func createContact(t *testing.T, s *Store, userID int64, first, last, email, phone string) *api.Contact {
	t.Helper()
	c := &api.Contact{UserID: userID, FirstName: first, LastName: last, Email: email, Phone: phone}
	if err := s.CreateContact(context.Background(), c); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	return c
}

func TestUserLifecycle(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	u := createUser(t, s, "alfred")
	if u.ID == 0 {
		t.Fatal("CreateUser did not assign an ID")
	}

	// Duplicate username.
	err := s.CreateUser(ctx, &api.User{Username: "alfred", Name: "Again", PasswordHash: "h"})
	if !errors.Is(err, storage.ErrConflict) {
		t.Errorf("duplicate username: expected ErrConflict, got %v", err)
	}

	// Token set and resolve.
	u.Token = "tok-123"
	if err := s.UpdateUser(ctx, u); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	got, err := s.FindUserByToken(ctx, "tok-123")
	if err != nil {
		t.Fatalf("FindUserByToken: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("token resolved to user %d, want %d", got.ID, u.ID)
	}

	// Token clear (logout): NULL must not match the empty string.
	u.Token = ""
	if err := s.UpdateUser(ctx, u); err != nil {
		t.Fatalf("UpdateUser (clear token): %v", err)
	}
	if _, err := s.FindUserByToken(ctx, "tok-123"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("stale token: expected ErrNotFound, got %v", err)
	}
	if _, err := s.FindUserByToken(ctx, ""); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("empty token: expected ErrNotFound, got %v", err)
	}
}

func TestContactOwnershipScoping(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")
	c := createContact(t, s, alice.ID, "Ali", "Baba", "ali@example.com", "0811")

	if _, err := s.FindContact(ctx, c.ID, alice.ID); err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if _, err := s.FindContact(ctx, c.ID, bob.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("cross-owner lookup: expected ErrNotFound, got %v", err)
	}

	// Cross-owner update and delete must also miss.
	stolen := *c
	stolen.UserID = bob.ID
	stolen.FirstName = "Hacked"
	if err := s.UpdateContact(ctx, &stolen); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("cross-owner update: expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteContact(ctx, c.ID, bob.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("cross-owner delete: expected ErrNotFound, got %v", err)
	}
}

func TestAddressOwnershipScoping(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	alice := createUser(t, s, "alice")
	c1 := createContact(t, s, alice.ID, "Ali", "", "", "")
	c2 := createContact(t, s, alice.ID, "Budi", "", "", "")

	a := &api.Address{ContactID: c1.ID, Street: "Jalan Sudirman", City: "Jakarta", Country: "Indonesia", PostalCode: "12190"}
	if err := s.CreateAddress(ctx, a); err != nil {
		t.Fatalf("CreateAddress: %v", err)
	}

	if _, err := s.FindAddress(ctx, a.ID, c1.ID); err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if _, err := s.FindAddress(ctx, a.ID, c2.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("sibling-contact lookup: expected ErrNotFound, got %v", err)
	}

	// Deleting the contact cascades to its addresses.
	if err := s.DeleteContact(ctx, c1.ID, alice.ID); err != nil {
		t.Fatalf("DeleteContact: %v", err)
	}
	if _, err := s.FindAddress(ctx, a.ID, c1.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("address should cascade away, got %v", err)
	}
}

func TestSearchContacts(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	createContact(t, s, alice.ID, "Ali", "Topan", "ali@example.com", "08111")
	createContact(t, s, alice.ID, "Budi", "Alison", "budi@example.com", "08222")
	createContact(t, s, alice.ID, "Citra", "Dewi", "citra@other.org", "09333")
	createContact(t, s, bob.ID, "Ali", "Bob", "ali@bob.net", "08111")

	t.Run("no criteria returns only the owner's contacts", func(t *testing.T) {
		page, err := s.SearchContacts(ctx, alice.ID, api.ContactSearch{})
		if err != nil {
			t.Fatalf("SearchContacts: %v", err)
		}
		if page.Meta.Total != 3 {
			t.Errorf("Total = %d, want 3", page.Meta.Total)
		}
	})

	t.Run("name spans first and last name case-insensitively", func(t *testing.T) {
		page, err := s.SearchContacts(ctx, alice.ID, api.ContactSearch{Name: "ALI"})
		if err != nil {
			t.Fatalf("SearchContacts: %v", err)
		}
		if page.Meta.Total != 2 {
			t.Errorf("Total = %d, want 2 (Ali and Alison)", page.Meta.Total)
		}
	})

	t.Run("criteria combine with AND", func(t *testing.T) {
		page, err := s.SearchContacts(ctx, alice.ID, api.ContactSearch{Name: "ali", Email: "budi"})
		if err != nil {
			t.Fatalf("SearchContacts: %v", err)
		}
		if page.Meta.Total != 1 {
			t.Errorf("Total = %d, want 1", page.Meta.Total)
		}
	})

	t.Run("phone substring", func(t *testing.T) {
		page, err := s.SearchContacts(ctx, alice.ID, api.ContactSearch{Phone: "08"})
		if err != nil {
			t.Fatalf("SearchContacts: %v", err)
		}
		if page.Meta.Total != 2 {
			t.Errorf("Total = %d, want 2", page.Meta.Total)
		}
	})

	t.Run("like metacharacters are literal", func(t *testing.T) {
		page, err := s.SearchContacts(ctx, alice.ID, api.ContactSearch{Name: "%"})
		if err != nil {
			t.Fatalf("SearchContacts: %v", err)
		}
		if page.Meta.Total != 0 {
			t.Errorf("Total = %d, want 0 (no name contains a literal %%)", page.Meta.Total)
		}
	})
}

func TestSearchContactsPagination(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	alice := createUser(t, s, "alice")
	for i := 1; i <= 25; i++ {
		createContact(t, s, alice.ID, fmt.Sprintf("Contact%02d", i), "", "", "")
	}

	page2, err := s.SearchContacts(ctx, alice.ID, api.ContactSearch{Page: 2, Size: 10})
	if err != nil {
		t.Fatalf("SearchContacts: %v", err)
	}
	if page2.Meta.Total != 25 || len(page2.Items) != 10 {
		t.Fatalf("page 2: total %d len %d, want 25/10", page2.Meta.Total, len(page2.Items))
	}
	if page2.Items[0].FirstName != "Contact11" {
		t.Errorf("page 2 starts at %s, want Contact11", page2.Items[0].FirstName)
	}

	page3, err := s.SearchContacts(ctx, alice.ID, api.ContactSearch{Page: 3, Size: 10})
	if err != nil {
		t.Fatalf("SearchContacts: %v", err)
	}
	if len(page3.Items) != 5 {
		t.Errorf("page 3 len = %d, want 5", len(page3.Items))
	}
}

func TestFileMetadata(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	f := &api.File{Filename: "report.pdf", MimeType: "application/pdf", Path: "files/2f/report.pdf"}
	if err := s.CreateFile(ctx, f); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	got, err := s.FindFile(ctx, f.ID)
	if err != nil {
		t.Fatalf("FindFile: %v", err)
	}
	if got.Path != f.Path {
		t.Errorf("Path = %q, want %q", got.Path, f.Path)
	}

	list, err := s.ListFiles(ctx)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("len(ListFiles) = %d, want 1", len(list))
	}

	if err := s.DeleteFile(ctx, f.ID); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := s.FindFile(ctx, f.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
