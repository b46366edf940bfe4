// Package service provides application-level services for accounts, tasks,
// and comments. Services enforce the authorization rules (who may edit what)
// and run multi-step mutations inside database transactions; persistence
// details stay behind the store interfaces.
package service
