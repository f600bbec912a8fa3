package sqlite

import "embed"

// Migrations holds the goose SQL migrations for SQLite, rooted at
// "migrations".
//
//go:embed migrations/*.sql
var Migrations embed.FS
