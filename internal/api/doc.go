// Package api provides the book club REST API: federated login via Google,
// cookie-based sessions, and the club, book, and meeting resources under
// /api/v1.
package api
