package service

import (
	"context"

	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

// SyncService is the pure synchronization core shared by the client engine
// and the tests: delta computation, conflict resolution, and the
// convergence hash. Implementations hold no mutable state.
type SyncService interface {
	// CalculateDelta computes the set of locally-changed entries relative
	// to baseVersion. An empty delta means "nothing to send".
	CalculateDelta(entries []models.VaultEntry, baseVersion int64, deviceID string) models.SyncDelta

	// ResolveConflicts merges a server-reported delta into the local entry
	// set using deterministic last-writer-wins with a device-id tie-break.
	// The result is independent of input ordering and idempotent.
	ResolveConflicts(localEntries []models.VaultEntry, serverDelta models.SyncDelta) []models.VaultEntry

	// VaultHash computes a deterministic SHA-256 digest of the entry set,
	// used to verify convergence across replicas.
	VaultHash(entries []models.VaultEntry) (string, error)
}

// VaultService is the server-side sync endpoint logic: versioned reads and
// the optimistic-concurrency merge.
type VaultService interface {
	// GetVault returns the user's authoritative vault, creating an empty
	// sync state at version 0 on first access.
	GetVault(ctx context.Context, userID int64) (models.Vault, error)

	// ApplySync validates delta and applies it behind the optimistic
	// version gate. On success the returned vault reflects the freshly
	// committed state. When delta.BaseVersion does not match the stored
	// vault version, ApplySync returns the current server state together
	// with ErrSyncConflict and no mutation occurs.
	ApplySync(ctx context.Context, userID int64, delta models.SyncDelta) (models.Vault, error)
}

// AuthService handles user registration, credential verification, and the
// JWT token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}
