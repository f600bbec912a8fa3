package postgres

import "embed"

// Migrations holds the goose SQL migrations for PostgreSQL, rooted at
// "migrations".
//
//go:embed migrations/*.sql
var Migrations embed.FS
