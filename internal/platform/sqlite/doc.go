// Package sqlite implements the store interfaces on SQLite through the pure
// Go modernc.org/sqlite driver. It backs local development and the
// integration tests, and embeds its own goose migrations.
//
// Timestamps are stored as Unix milliseconds so that ordering by created_at
// is numeric; ties are broken by insertion order.
package sqlite
