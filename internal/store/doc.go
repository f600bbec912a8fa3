// Package store defines the persistence contracts for users and tasks.
// Implementations live under internal/platform; the service layer depends
// only on these interfaces.
package store
