package service

import (
	"context"

	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService is the client-side contract for account lifecycle:
// registration, login, and session teardown.
type ClientAuthService interface {
	// Register creates an account on the server and stores the returned
	// bearer token in the transport adapter.
	Register(ctx context.Context, user models.User) error

	// Login authenticates against the server and stores the returned bearer
	// token in the transport adapter.
	Login(ctx context.Context, user models.User) error

	// Logout clears the bearer token and purges all local state: snapshot,
	// versions, and outbox. The device id survives so tie-break ordering
	// stays stable across sessions.
	Logout(ctx context.Context) error
}

// ClientVaultService is the client-side contract for vault CRUD. Every
// mutation is local-first: it stamps the entry, persists it to the local
// snapshot, advances the local vault version, and notifies the sync engine.
// No operation in this interface performs network I/O.
type ClientVaultService interface {
	// List returns the visible entries, tombstones filtered out.
	List(ctx context.Context) ([]models.VaultEntry, error)

	// Get returns a single visible entry by id. Returns
	// ErrEntryNotFound for unknown ids and tombstones.
	Get(ctx context.Context, entryID string) (models.VaultEntry, error)

	// Add creates a new entry: assigns a UUID, stamps version, updatedAt,
	// and device id, and persists it locally.
	Add(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error)

	// Update modifies an existing entry. A password change pushes the
	// previous password onto the entry's history ring.
	Update(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error)

	// Delete tombstones an entry. The tombstone stays in the snapshot and
	// travels with the next delta so the deletion can be ordered against
	// concurrent edits on other devices.
	Delete(ctx context.Context, entryID string) error
}

// EngineState is the sync engine's lifecycle state.
type EngineState string

const (
	// EngineIdle: nothing queued, local state matches the last server ack.
	EngineIdle EngineState = "idle"
	// EnginePending: at least one delta is queued and not yet acknowledged.
	EnginePending EngineState = "pending"
	// EngineSyncing: a push is in flight.
	EngineSyncing EngineState = "syncing"
	// EngineConflict: a version-gate rejection is being resolved.
	EngineConflict EngineState = "conflict"
	// EngineError: the last push failed for a non-transport reason; waiting
	// for a manual or scheduled retry.
	EngineError EngineState = "error"
	// EngineOffline: the server is unreachable; mutations accumulate locally.
	EngineOffline EngineState = "offline"
)

// SyncEngine drives the offline-first synchronization loop: queueing local
// change-sets, pushing them in order, and resolving version conflicts with
// the deterministic merge from SyncService.
type SyncEngine interface {
	// Start performs the session bootstrap: loads the local snapshot, pulls
	// the server state, detects a stale outbox left over from a previous
	// session, and reconciles. An unreachable server flips the engine
	// offline instead of failing.
	Start(ctx context.Context) error

	// NotifyChange signals that a local mutation happened. The background
	// job coalesces bursts of notifications into one delta.
	NotifyChange()

	// Changes exposes the notification channel consumed by the background
	// job.
	Changes() <-chan struct{}

	// QueueChanges computes the delta of unsynced local changes and places
	// it in the outbox. A queued-but-unsent delta with the same base
	// version is replaced in place rather than stacked.
	QueueChanges(ctx context.Context) error

	// ProcessOutbox pushes queued events head-first, one in flight at a
	// time, until the outbox drains or a push fails.
	ProcessOutbox(ctx context.Context) error

	// Sync is the full cycle: QueueChanges followed by ProcessOutbox.
	Sync(ctx context.Context) error

	// SetOnline flips connectivity. Coming back online triggers nothing by
	// itself; the background job's next tick drains the outbox.
	SetOnline(online bool)

	// State returns the engine's current lifecycle state.
	State() EngineState

	// Status derives the user-facing indicator from the engine state and
	// the outbox depth.
	Status(ctx context.Context) (models.SyncStatus, error)
}
