// SPDX-License-Identifier: MIT

package models

import "time"

// SyncDelta is the unit of transmission from client to server: the set of
// entries changed since BaseVersion, computed against the last
// server-acknowledged vault version.
type SyncDelta struct {
	// EventID uniquely identifies the delta across retries of the same
	// logical change-set.
	EventID string `json:"eventId"`

	// DeviceID is the installation that computed the delta.
	DeviceID string `json:"device_id"`

	// Added is kept for wire compatibility and server-side handling but is
	// always empty when produced by this client: new entries travel in
	// Updated as version-incremented upserts.
	Added []VaultEntry `json:"added"`

	// Updated carries every entry whose version exceeds BaseVersion,
	// tombstones included.
	Updated []VaultEntry `json:"updated"`

	// Deleted lists entry ids to remove physically on the merge side.
	// Distinct from tombstones: this client never populates it, but both
	// sides must handle it.
	Deleted []string `json:"deleted"`

	// BaseVersion is the vault version the client believed was current when
	// the delta was computed — the optimistic-concurrency token.
	BaseVersion int64 `json:"baseVersion"`
}

// Empty reports whether the delta carries no changes. Callers must treat an
// empty delta as "nothing to send".
func (d SyncDelta) Empty() bool {
	return len(d.Added) == 0 && len(d.Updated) == 0 && len(d.Deleted) == 0
}

// OutboxEvent is a queued, not-yet-acknowledged SyncDelta.
type OutboxEvent struct {
	EventID   string    `json:"eventId"`
	Timestamp time.Time `json:"timestamp"`
	Delta     SyncDelta `json:"delta"`
}

// VaultState is the client-side persisted snapshot of a user's vault.
// VaultVersion and ServerVersion diverge exactly when there are unsynced
// local changes.
type VaultState struct {
	Entries       []VaultEntry `json:"entries"`
	VaultVersion  int64        `json:"vaultVersion"`
	ServerVersion int64        `json:"serverVersion"`
}

// Vault is the server-side authoritative record of a user's last-synced
// state.
type Vault struct {
	UserID       int64        `json:"-"`
	VaultVersion int64        `json:"vaultVersion"`
	Entries      []VaultEntry `json:"entries"`
	LastSyncedAt time.Time    `json:"lastSyncedAt"`
}

// TableName returns the name of the database table associated with the
// Vault model.
func (v Vault) TableName() string {
	return "vaults"
}

// SyncStatus is the client-facing synchronization indicator derived from the
// engine state and the outbox depth.
type SyncStatus string

const (
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusPending SyncStatus = "pending"
	SyncStatusSyncing SyncStatus = "syncing"
	SyncStatusOffline SyncStatus = "offline"
	SyncStatusError   SyncStatus = "error"
)
