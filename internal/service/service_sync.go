// SPDX-License-Identifier: MIT

package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/utils"
	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

// syncService is the concrete implementation of SyncService.
// It performs purely in-memory delta computation and conflict resolution;
// no storage layer or logger is required because the operations are
// stateless and produce no side effects.
//
// The only non-deterministic input — the event id stamped on a fresh
// delta — is produced by an injectable generator so that tests can pin it.
type syncService struct {
	idGen func() string
}

// NewSyncService constructs a SyncService ready for use.
func NewSyncService() SyncService {
	return &syncService{idGen: utils.NewUUID}
}

// CalculateDelta implements SyncService.
//
// It selects every entry whose version exceeds baseVersion. Both real edits
// and tombstones travel in Updated: tombstones carry full entry state
// including history, so the client never needs a separate deletion-id list.
// Added stays empty — new entries are version-incremented "updates" too,
// since the server upserts by id regardless of bucket.
//
// The result is a pure function of its inputs except for EventID; callers
// that need a no-op must check [models.SyncDelta.Empty] rather than rely on
// the delta being absent.
func (s *syncService) CalculateDelta(entries []models.VaultEntry, baseVersion int64, deviceID string) models.SyncDelta {
	delta := models.SyncDelta{
		EventID:     s.idGen(),
		DeviceID:    deviceID,
		Added:       make([]models.VaultEntry, 0),
		Updated:     make([]models.VaultEntry, 0),
		Deleted:     make([]string, 0),
		BaseVersion: baseVersion,
	}

	for _, e := range entries {
		if e.Version > baseVersion {
			delta.Updated = append(delta.Updated, e.Clone())
		}
	}

	return delta
}

// ResolveConflicts implements SyncService.
//
// It merges a server-reported delta into the local entry set using
// deterministic last-writer-wins:
//
//  1. Seed the result map from local entries (id → entry).
//  2. Insert server-added entries not present locally as-is.
//  3. For each server-updated entry present locally, compare UpdatedAt at
//     millisecond resolution; strictly later wins. On an exact tie the
//     lexicographically greater device id wins — arbitrary but
//     deterministic, so all replicas converge to the same winner.
//     The losing side's payload is prepended to the winning entry's
//     encrypted_history (bounded) unless it is identical to the winner's.
//  4. Remove server-deleted ids from the map entirely. This is a hard
//     delete on the merge side, distinct from the soft-delete tombstones
//     used for in-band sync.
//
// The result is ordered by entry id, so it is independent of input
// ordering, and resolving the same delta twice yields the same result.
func (s *syncService) ResolveConflicts(localEntries []models.VaultEntry, serverDelta models.SyncDelta) []models.VaultEntry {
	merged := make(map[string]models.VaultEntry, len(localEntries)+len(serverDelta.Added))
	for _, e := range localEntries {
		merged[e.ID] = e.Clone()
	}

	for _, serverEntry := range serverDelta.Added {
		if _, exists := merged[serverEntry.ID]; !exists {
			merged[serverEntry.ID] = serverEntry.Clone()
		}
	}

	for _, serverEntry := range serverDelta.Updated {
		localEntry, exists := merged[serverEntry.ID]
		if !exists {
			merged[serverEntry.ID] = serverEntry.Clone()
			continue
		}

		merged[serverEntry.ID] = resolveEntry(localEntry, serverEntry, serverDelta.DeviceID)
	}

	for _, id := range serverDelta.Deleted {
		delete(merged, id)
	}

	result := make([]models.VaultEntry, 0, len(merged))
	for _, e := range merged {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result
}

// resolveEntry applies LWW with the device-id tie-break to a single pair of
// revisions and returns the winner with the loser recorded in its
// encrypted_history.
func resolveEntry(localEntry, serverEntry models.VaultEntry, deltaDeviceID string) models.VaultEntry {
	localTime := localEntry.UpdatedAt.Truncate(time.Millisecond)
	serverTime := serverEntry.UpdatedAt.Truncate(time.Millisecond)

	serverDevice := serverEntry.DeviceID
	if serverDevice == "" {
		serverDevice = deltaDeviceID
	}
	localDevice := localEntry.DeviceID

	serverWins := serverTime.After(localTime) ||
		(serverTime.Equal(localTime) && serverDevice > localDevice)

	winner, loser := localEntry, serverEntry
	loserDevice := serverDevice
	if serverWins {
		winner, loser = serverEntry, localEntry
		loserDevice = localDevice
	}

	resolved := winner.Clone()
	if loser.Password != winner.Password {
		resolved.EncryptedHistory = recordLoss(localEntry.EncryptedHistory, loser, loserDevice)
	} else if serverWins {
		// Same payload on both sides: the server revision wins but the
		// local audit trail survives the overwrite.
		resolved.EncryptedHistory = append([]models.LostVersion(nil), localEntry.EncryptedHistory...)
	}

	return resolved
}

// recordLoss prepends the losing revision's payload to history, truncated
// to the most recent EncryptedHistoryLimit losses.
func recordLoss(history []models.LostVersion, loser models.VaultEntry, loserDevice string) []models.LostVersion {
	if loserDevice == "" {
		loserDevice = "unknown"
	}

	lost := models.LostVersion{
		EncryptedData: loser.Password,
		Timestamp:     loser.UpdatedAt,
		DeviceID:      loserDevice,
	}

	keep := history
	if len(keep) > models.EncryptedHistoryLimit-1 {
		keep = keep[:models.EncryptedHistoryLimit-1]
	}

	result := make([]models.LostVersion, 0, len(keep)+1)
	result = append(result, lost)
	result = append(result, keep...)

	return result
}

// vaultHashProjection is the canonical per-entry projection hashed by
// VaultHash. Field order matters: it defines the hash input.
type vaultHashProjection struct {
	ID        string `json:"id"`
	Version   int64  `json:"v"`
	UpdatedAt string `json:"u"`
	Password  string `json:"p"`
}

// VaultHash implements SyncService.
//
// It computes a deterministic SHA-256 hash of the entry set: entries are
// sorted by id and projected to (id, version, updatedAt, password) before
// hashing, so two replicas holding the same state produce the same hash
// regardless of entry ordering.
func (s *syncService) VaultHash(entries []models.VaultEntry) (string, error) {
	sorted := make([]vaultHashProjection, 0, len(entries))
	for _, e := range entries {
		sorted = append(sorted, vaultHashProjection{
			ID:        e.ID,
			Version:   e.Version,
			UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339Nano),
			Password:  e.Password,
		})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	payload, err := json.Marshal(sorted)
	if err != nil {
		return "", err
	}

	digest := sha256.Sum256(payload)
	return hex.EncodeToString(digest[:]), nil
}
