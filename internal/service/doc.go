// Package service holds the application's use cases: registering and
// authenticating users, and managing each user's tasks.
//
// Services depend on the store interfaces and on the auth package's token and
// password abstractions, never on a concrete database. Expected failures are
// reported as the sentinel errors in errors.go; anything else is wrapped in a
// *ServiceError so the API layer can log it and answer with a generic 500.
package service
