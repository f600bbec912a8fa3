// Package middleware provides the HTTP middleware chain: trace correlation,
// request logging, panic recovery and bearer-token authentication.
package middleware
