// Package storage defines the persistence interfaces for the rolodex API
// and the sentinel errors shared across storage adapter implementations.
//
// Storage adapters (memory, postgres) implement the [Store] interface.
// Owned resources (contacts, addresses) are looked up with a compound key
// that always includes the owner identifier: there is deliberately no way
// to fetch a contact or address by primary key alone. This makes
// cross-tenant reads unrepresentable at the interface level.
package storage
