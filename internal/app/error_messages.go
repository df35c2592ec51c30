// SPDX-License-Identifier: MIT

// Package app contains shared application-layer constants used across the
// server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when a decoded request fails basic
	// validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing user record.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgLoginAlreadyExists is returned when a registration attempt collides
	// with an existing login.
	MsgLoginAlreadyExists = "login already exists"

	// MsgInvalidSyncDelta is returned when a sync request decodes but fails
	// delta validation.
	MsgInvalidSyncDelta = "invalid sync delta"

	// MsgSyncConflict is the error field of the 409 conflict response body.
	// Clients match on it, so the wording is part of the wire contract.
	MsgSyncConflict = "Sync Conflict"

	// MsgNoUserIDProvided is returned when an authenticated route is reached
	// without a user id in the request context.
	MsgNoUserIDProvided = "no user ID was given"
)
