// Package api contains the HTTP handlers for the task board endpoints:
// request decoding and validation, the mapping of service errors to status
// codes, and the response envelope every endpoint answers with.
package api
