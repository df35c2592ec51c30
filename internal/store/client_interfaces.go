package store

import (
	"context"

	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalVaultStore is the client-side persistent snapshot: entries plus the
// (vaultVersion, serverVersion) pair. VaultVersion advances on every local
// mutation; ServerVersion only on a server acknowledgement.
type LocalVaultStore interface {
	// LoadState reads the full snapshot. A missing or unreadable snapshot
	// yields the empty state at version 0, never an error the caller must
	// branch on: local corruption degrades to a fresh vault.
	LoadState(ctx context.Context) (models.VaultState, error)

	// SaveEntry upserts a single entry in the snapshot.
	SaveEntry(ctx context.Context, entry models.VaultEntry) error

	// ReplaceEntries atomically swaps the whole entry set, e.g. after a
	// conflict merge.
	ReplaceEntries(ctx context.Context, entries []models.VaultEntry) error

	// SaveVersions persists the version pair.
	SaveVersions(ctx context.Context, vaultVersion, serverVersion int64) error

	// Purge wipes the snapshot and versions. Used on session teardown.
	Purge(ctx context.Context) error
}

// OutboxStore is the durable FIFO of deltas awaiting server acknowledgement.
type OutboxStore interface {
	// Enqueue appends an event at the tail.
	Enqueue(ctx context.Context, event models.OutboxEvent) error

	// Peek returns the head event without removing it. ok is false when the
	// outbox is empty. A corrupt head row is dropped and the next one
	// returned.
	Peek(ctx context.Context) (event models.OutboxEvent, ok bool, err error)

	// Tail returns the most recently enqueued event, ok false when empty.
	Tail(ctx context.Context) (event models.OutboxEvent, ok bool, err error)

	// ReplaceTail overwrites the most recently enqueued event in place,
	// keeping its queue position.
	ReplaceTail(ctx context.Context, event models.OutboxEvent) error

	// Remove deletes the event with the given id, typically after the server
	// acknowledged it.
	Remove(ctx context.Context, eventID string) error

	// Clear drops every queued event.
	Clear(ctx context.Context) error

	// Depth reports the number of queued events.
	Depth(ctx context.Context) (int, error)
}

// DeviceStore owns the stable per-installation identifier used for
// last-writer-wins tie-breaking.
type DeviceStore interface {
	// DeviceID returns the installation id, generating and persisting one on
	// first access.
	DeviceID(ctx context.Context) (string, error)
}
