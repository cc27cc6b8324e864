// Package api defines the core domain types for the rolodex contact API.
//
// This package provides all data types shared between transport, storage,
// and auth: users, contacts, addresses, files, request payloads, search
// criteria, and the structured error taxonomy.
//
// The package has zero external dependencies (Go standard library only) and
// performs no I/O.
//
// Core types:
//   - [User]: an authenticated principal; owns contacts
//   - [Contact]: a contact record owned by exactly one user
//   - [Address]: an address record owned by exactly one contact
//   - [ContactSearch]: optional filter criteria plus pagination
//   - [APIError]: structured error with type, param, and message
package api
