package models

import "time"

// VaultResponse is the body of GET /api/vault: the authoritative vault
// version together with the full encrypted entry list. Tombstones are
// included; the presentation layer filters them.
type VaultResponse struct {
	VaultVersion     int64        `json:"vaultVersion"`
	EncryptedEntries []VaultEntry `json:"encryptedEntries"`
	LastSyncedAt     time.Time    `json:"lastSyncedAt"`
}

// SyncResult is the 200 body of POST /api/vault/sync. Entries is a fresh
// full read of the post-merge state: the server is always the post-merge
// source of truth, so the client overwrites its local state with it.
type SyncResult struct {
	Success      bool         `json:"success"`
	VaultVersion int64        `json:"vaultVersion"`
	Entries      []VaultEntry `json:"entries"`
	LastSyncedAt time.Time    `json:"lastSyncedAt"`
}

// ConflictResponse is the 409 body of POST /api/vault/sync, returned when
// the delta's baseVersion no longer matches the stored vault version.
// It carries the full current server state so the client can resolve the
// conflict without an extra round trip.
type ConflictResponse struct {
	Error             string       `json:"error"`
	ServerBaseVersion int64        `json:"server_base_version"`
	VaultVersion      int64        `json:"vaultVersion"`
	EncryptedEntries  []VaultEntry `json:"encryptedEntries"`
}

// ErrorResponse is the structured shape of every non-2xx body: a message
// plus optional context, never a raw stack trace.
type ErrorResponse struct {
	Error string `json:"error"`
}
