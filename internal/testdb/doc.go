// Package testdb provides migrated databases for tests: an in-memory SQLite
// database that needs no external services, and a PostgreSQL database taken
// from the environment for integration runs.
package testdb
