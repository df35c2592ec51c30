// SPDX-License-Identifier: MIT

package models

import "time"

const (
	// PasswordHistoryLimit bounds the per-entry ring of previous passwords
	// recorded on password change (most recent first).
	PasswordHistoryLimit = 5

	// EncryptedHistoryLimit bounds the per-entry ring of payloads that lost
	// a merge conflict (most recent loss first).
	EncryptedHistoryLimit = 10
)

// VaultEntry is a single credential record.
//
// The Password field is an opaque ciphertext string: the sync protocol never
// inspects it and the server stores it as-is. JSON tags define the wire
// format shared by the client, the server, and local persistence, so they
// must not change independently on either side.
type VaultEntry struct {
	// ID is a client-generated UUID, globally unique within a user's vault.
	ID string `json:"id"`

	Website  string `json:"website"`
	Username string `json:"username"`

	// Password is the encrypted payload. Opaque to the sync core.
	Password string `json:"password"`

	SecurityQuestion string `json:"securityQuestion,omitempty"`
	SecurityAnswer   string `json:"securityAnswer,omitempty"`
	Category         string `json:"category,omitempty"`
	IsFavorite       bool   `json:"isFavorite"`

	// PasswordHistory records prior password payloads on password change,
	// most recent first, truncated to PasswordHistoryLimit.
	PasswordHistory []PasswordHistoryEntry `json:"passwordHistory,omitempty"`

	// EncryptedHistory records the losing side's payload whenever a merge
	// conflict discards it, most recent first, truncated to
	// EncryptedHistoryLimit. This is the audit trail that makes LWW
	// resolution recoverable rather than silently destructive.
	EncryptedHistory []LostVersion `json:"encrypted_history,omitempty"`

	// Version is the vault-scoped version stamped at the entry's last
	// mutation: max(local vaultVersion, server vaultVersion)+1 on the
	// client, the accepted nextVersion on the server.
	Version int64 `json:"version"`

	// UpdatedAt is authoritative for last-writer-wins ordering.
	// Compared at millisecond resolution.
	UpdatedAt time.Time `json:"updatedAt"`

	// DeviceID identifies the installation that produced the last mutation.
	// Used as the deterministic tie-break when UpdatedAt is equal.
	DeviceID string `json:"device_id,omitempty"`

	// IsDeleted marks the entry as a tombstone. Tombstones stay on the wire
	// so deletion can be synced and ordered against concurrent edits; the
	// presentation layer filters them out.
	IsDeleted bool       `json:"isDeleted,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// PasswordHistoryEntry is one element of the password-change ring.
type PasswordHistoryEntry struct {
	Password  string    `json:"password"`
	ChangedAt time.Time `json:"changedAt"`
}

// LostVersion preserves the payload of an entry revision that lost a merge
// conflict.
type LostVersion struct {
	EncryptedData string    `json:"encrypted_data"`
	Timestamp     time.Time `json:"timestamp"`
	DeviceID      string    `json:"device_id"`
}

// Clone returns a deep copy of the entry. History slices are copied so the
// clone can be mutated without aliasing the receiver.
func (e VaultEntry) Clone() VaultEntry {
	c := e
	if e.PasswordHistory != nil {
		c.PasswordHistory = append([]PasswordHistoryEntry(nil), e.PasswordHistory...)
	}
	if e.EncryptedHistory != nil {
		c.EncryptedHistory = append([]LostVersion(nil), e.EncryptedHistory...)
	}
	if e.DeletedAt != nil {
		ts := *e.DeletedAt
		c.DeletedAt = &ts
	}
	return c
}

// TableName returns the name of the database table associated with the
// VaultEntry model.
func (e VaultEntry) TableName() string {
	return "vault_entries"
}
