package service

import "errors"

var (
	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrWrongPassword           = errors.New("wrong password")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrSyncConflict signals that a delta's baseVersion did not match the
	// stored vault version. It is expected, recoverable control flow — the
	// caller resolves it client-side — not a hard failure.
	ErrSyncConflict = errors.New("sync conflict")

	// ErrEntryNotFound is returned by client vault lookups for unknown ids
	// and for tombstoned entries.
	ErrEntryNotFound = errors.New("entry not found")
)
