package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known
// failure conditions. Callers should use [errors.Is] to match against these
// values.
var (
	// ErrLoginAlreadyExists is returned when registering a user fails
	// because the login is already taken.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrVersionConflict is returned when the optimistic version gate
	// fails: the baseVersion supplied by the client does not match the
	// stored vault version, meaning another device advanced the vault
	// since the client last synchronized. No mutation occurs.
	ErrVersionConflict = errors.New("vault version conflict occurred")

	// ErrCorruptLocalState is returned when a persisted client-side row
	// cannot be decoded. The store clears the offending state and the
	// caller falls through to safe defaults.
	ErrCorruptLocalState = errors.New("corrupt local state")
)

// Low-level database operation errors, returned (or wrapped) by repository
// methods when a SQL-level operation fails before any domain logic applies.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
)
