// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts HTTP to the service layer: handlers decode
// and validate bodies, call a service, and translate results and errors into
// the JSON envelope defined in package shared.
package api
