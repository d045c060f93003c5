// Package storage persists the organization holiday table and the
// scheduling decision audit log.
//
// It currently supports:
//   - SQLite database file (driver "sqlite")
//   - In-memory store for tests and ephemeral runs (driver "memory")
package storage
