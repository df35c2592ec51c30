package validators

import "errors"

var (
	// ErrUnsupportedType is returned when Validate receives a value of a
	// type the validator does not know how to check.
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrEmptyEventID is returned for a sync delta without an event id;
	// without one the server cannot deduplicate retries.
	ErrEmptyEventID = errors.New("sync delta has no event id")

	// ErrNegativeBaseVersion is returned for a sync delta whose baseVersion
	// is below zero.
	ErrNegativeBaseVersion = errors.New("sync delta base version is negative")

	// ErrEntryWithoutID is returned when a delta carries an entry with an
	// empty id.
	ErrEntryWithoutID = errors.New("vault entry has no id")

	// ErrEmptyDeletedID is returned when the deleted-ids list contains an
	// empty string.
	ErrEmptyDeletedID = errors.New("deleted entry id is empty")

	// ErrEmptyCredentials is returned when a user's login or password is
	// missing.
	ErrEmptyCredentials = errors.New("login and password must not be empty")
)
