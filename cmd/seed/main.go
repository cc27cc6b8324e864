// Command seed populates the configured store with development data: one
// user with a known password, a contact, and an address. Intended for local
// development against a fresh database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/rolodex-dev/rolodex/pkg/api"
	"github.com/rolodex-dev/rolodex/pkg/auth/session"
	"github.com/rolodex-dev/rolodex/pkg/config"
	"github.com/rolodex-dev/rolodex/pkg/storage"
	"github.com/rolodex-dev/rolodex/pkg/storage/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	username := flag.String("username", "demo", "username of the seeded user")
	password := flag.String("password", "rahasia", "password of the seeded user")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if cfg.Storage.Type != "postgres" {
		return fmt.Errorf("seeding requires storage.type \"postgres\", got %q", cfg.Storage.Type)
	}

	ctx := context.Background()
	store, err := postgres.New(ctx, postgres.Config{
		DSN:            cfg.Storage.Postgres.DSN,
		MaxConns:       cfg.Storage.Postgres.MaxConns,
		MigrateOnStart: true,
	})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	hash, err := session.HashPassword(*password)
	if err != nil {
		return err
	}

	user := &api.User{Username: *username, Name: "Demo User", PasswordHash: hash}
	if err := store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return fmt.Errorf("user %q already exists", *username)
		}
		return fmt.Errorf("creating user: %w", err)
	}

	contact := &api.Contact{
		UserID:    user.ID,
		FirstName: "Budi",
		LastName:  "Santoso",
		Email:     "budi@example.com",
		Phone:     "081234567890",
	}
	if err := store.CreateContact(ctx, contact); err != nil {
		return fmt.Errorf("creating contact: %w", err)
	}

	address := &api.Address{
		ContactID:  contact.ID,
		Street:     "Jl. Raya Bogor",
		City:       "Bogor",
		Province:   "Jawa Barat",
		Country:    "Indonesia",
		PostalCode: "16111",
	}
	if err := store.CreateAddress(ctx, address); err != nil {
		return fmt.Errorf("creating address: %w", err)
	}

	slog.Info("seeded development data",
		"user", user.Username,
		"contact", contact.ID,
		"address", address.ID,
	)
	return nil
}
