// Package store defines the persistence interfaces for users, tasks, and
// comments, plus the transaction plumbing the services use to group writes.
// Implementations live under internal/platform.
package store
