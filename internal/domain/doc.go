// Package domain contains the core business entities of the task tracker:
// users, the tasks they own, and the status values a task moves between.
// It is independent of any storage or delivery mechanism.
package domain
