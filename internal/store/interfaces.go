// Package store implements the persistence layer: PostgreSQL-backed
// repositories for the server's authoritative vault state and SQLite-backed
// stores for the client's local snapshot, outbox, and device identity.
package store

import (
	"context"

	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

// UserRepository provides account persistence for the auth service.
type UserRepository interface {
	// CreateUser inserts a new account and returns it with the
	// server-assigned UserID. Returns ErrLoginAlreadyExists when the login
	// is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin looks an account up by login. Returns
	// ErrNoUserWasFound when no record matches.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// VaultRepository is the server-side VersionedStore: the durable per-user
// record of (vaultVersion, entries, lastSyncedAt).
type VaultRepository interface {
	// GetOrCreateVault returns the user's vault, initializing an empty
	// sync state at version 0 on first access.
	GetOrCreateVault(ctx context.Context, userID int64) (models.Vault, error)

	// ApplySync applies a delta behind the optimistic version gate inside
	// a single transaction. The vault row is locked for the duration, so
	// two concurrent requests against the same baseVersion cannot both
	// commit. A gate failure returns the current server state together
	// with ErrVersionConflict; the stored state is untouched.
	ApplySync(ctx context.Context, userID int64, delta models.SyncDelta) (models.Vault, error)
}
