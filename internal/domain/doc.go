// Package domain contains the core business entities of the task tracker
// (users, tasks, and comments) together with their validation rules. It is
// independent of any storage or delivery mechanism; authorization decisions
// over these entities live in the service layer.
package domain
