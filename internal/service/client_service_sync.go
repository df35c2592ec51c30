// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/adapter"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/store"
	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

// syncEngine drives the offline-first loop: local changes become outbox
// events, events are pushed head-first with one in flight, and a version
// gate rejection is resolved with the deterministic merge and re-queued.
//
// The mutex serializes queueing, pushing, and conflict resolution so that
// the snapshot, the versions, and the outbox never interleave between two
// cycles.
type syncEngine struct {
	vaultStore  store.LocalVaultStore
	outbox      store.OutboxStore
	deviceStore store.DeviceStore
	server      adapter.ServerAdapter
	core        SyncService
	logger      *logger.Logger

	mu sync.Mutex

	stateMu sync.RWMutex
	state   EngineState
	online  bool

	changes chan struct{}
	now     func() time.Time
}

func NewSyncEngine(
	vaultStore store.LocalVaultStore,
	outbox store.OutboxStore,
	deviceStore store.DeviceStore,
	server adapter.ServerAdapter,
	core SyncService,
	logger *logger.Logger,
) *syncEngine {
	return &syncEngine{
		vaultStore:  vaultStore,
		outbox:      outbox,
		deviceStore: deviceStore,
		server:      server,
		core:        core,
		logger:      logger,
		state:       EngineIdle,
		online:      true,
		changes:     make(chan struct{}, 1),
		now:         time.Now,
	}
}

// Start bootstraps the session. Three cases after pulling the server state:
//
//   - empty outbox: the server is authoritative, the snapshot is replaced.
//   - outbox head still matches the server version: a previous session left
//     unsent work behind; just drain it.
//   - outbox head computed against a version the server has moved past: the
//     queued deltas are unusable. They are discarded, the local snapshot is
//     merged with the server state, and a fresh delta is queued.
//
// An unreachable server flips the engine offline instead of failing; the
// vault keeps working locally.
func (e *syncEngine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	log := e.logger.With().Str("func", "syncEngine.Start").Logger()

	resp, err := e.server.GetVault(ctx)
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			return fmt.Errorf("vault pull rejected: %w", err)
		}
		log.Warn().Err(err).Msg("server unreachable, starting offline")
		e.setOnline(false)
		e.setState(EngineOffline)
		return nil
	}

	head, ok, err := e.outbox.Peek(ctx)
	if err != nil {
		return fmt.Errorf("inspect outbox: %w", err)
	}

	switch {
	case !ok:
		if err = e.overwriteLocal(ctx, resp.EncryptedEntries, resp.VaultVersion); err != nil {
			return err
		}
		e.setState(EngineIdle)

	case head.Delta.BaseVersion == resp.VaultVersion:
		log.Info().Str("event_id", head.EventID).Msg("resuming queued sync from previous session")
		return e.processOutboxLocked(ctx)

	default:
		log.Warn().
			Int64("outbox_base", head.Delta.BaseVersion).
			Int64("server_version", resp.VaultVersion).
			Msg("stale outbox detected, discarding and re-merging")
		if err = e.outbox.Clear(ctx); err != nil {
			return fmt.Errorf("clear stale outbox: %w", err)
		}
		if err = e.reconcile(ctx, resp.EncryptedEntries, resp.VaultVersion); err != nil {
			return err
		}
		if err = e.queueChangesLocked(ctx); err != nil {
			return err
		}
		return e.processOutboxLocked(ctx)
	}

	return nil
}

func (e *syncEngine) NotifyChange() {
	select {
	case e.changes <- struct{}{}:
	default:
	}
}

func (e *syncEngine) Changes() <-chan struct{} {
	return e.changes
}

// QueueChanges computes the delta of entries newer than the last
// acknowledged server version and places it in the outbox. If the tail
// event was computed against the same base version it is replaced in
// place — the new delta subsumes it, and stacking both would only earn the
// second one a guaranteed version-gate rejection.
func (e *syncEngine) QueueChanges(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queueChangesLocked(ctx)
}

func (e *syncEngine) queueChangesLocked(ctx context.Context) error {
	log := e.logger.With().Str("func", "syncEngine.QueueChanges").Logger()

	state, err := e.vaultStore.LoadState(ctx)
	if err != nil {
		return fmt.Errorf("load local state: %w", err)
	}

	deviceID, err := e.deviceStore.DeviceID(ctx)
	if err != nil {
		return fmt.Errorf("get device id: %w", err)
	}

	delta := e.core.CalculateDelta(state.Entries, state.ServerVersion, deviceID)
	if delta.Empty() {
		return nil
	}

	event := models.OutboxEvent{
		EventID:   delta.EventID,
		Timestamp: e.now().UTC(),
		Delta:     delta,
	}

	tail, ok, err := e.outbox.Tail(ctx)
	if err != nil {
		return fmt.Errorf("inspect outbox tail: %w", err)
	}
	if ok && tail.Delta.BaseVersion == delta.BaseVersion {
		if err = e.outbox.ReplaceTail(ctx, event); err != nil {
			return fmt.Errorf("replace outbox tail: %w", err)
		}
		log.Debug().Str("event_id", event.EventID).Int64("base_version", delta.BaseVersion).Msg("outbox tail replaced")
	} else {
		if err = e.outbox.Enqueue(ctx, event); err != nil {
			return fmt.Errorf("enqueue outbox event: %w", err)
		}
		log.Debug().Str("event_id", event.EventID).Int64("base_version", delta.BaseVersion).Msg("outbox event queued")
	}

	e.setState(EnginePending)
	return nil
}

// ProcessOutbox drains the queue head-first with a single event in flight.
// A conflict is resolved inline and the loop continues with the re-queued
// delta; a transport failure flips the engine offline and leaves the queue
// untouched for the next cycle.
func (e *syncEngine) ProcessOutbox(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.processOutboxLocked(ctx)
}

func (e *syncEngine) processOutboxLocked(ctx context.Context) error {
	log := e.logger.With().Str("func", "syncEngine.ProcessOutbox").Logger()

	for {
		if !e.isOnline() && !e.tryReconnect(ctx) {
			e.setState(EngineOffline)
			return nil
		}

		event, ok, err := e.outbox.Peek(ctx)
		if err != nil {
			return fmt.Errorf("peek outbox: %w", err)
		}
		if !ok {
			e.setState(EngineIdle)
			return nil
		}

		e.setState(EngineSyncing)
		result, conflict, err := e.server.PushDelta(ctx, event.Delta)

		switch {
		case err == nil:
			if err = e.outbox.Remove(ctx, event.EventID); err != nil {
				return fmt.Errorf("remove acknowledged event: %w", err)
			}
			if err = e.applyAck(ctx, result); err != nil {
				return err
			}
			log.Info().Str("event_id", event.EventID).Int64("vault_version", result.VaultVersion).Msg("delta acknowledged")

		case errors.Is(err, adapter.ErrVersionConflict) && conflict != nil:
			log.Info().
				Str("event_id", event.EventID).
				Int64("base_version", event.Delta.BaseVersion).
				Int64("server_version", conflict.VaultVersion).
				Msg("version gate rejected delta, resolving")
			e.setState(EngineConflict)
			if err = e.outbox.Clear(ctx); err != nil {
				return fmt.Errorf("clear outbox after conflict: %w", err)
			}
			if err = e.reconcile(ctx, conflict.EncryptedEntries, conflict.VaultVersion); err != nil {
				return err
			}
			if err = e.queueChangesLocked(ctx); err != nil {
				return err
			}

		case errors.Is(err, adapter.ErrUnauthorized):
			e.setState(EngineError)
			return fmt.Errorf("push rejected: %w", err)

		case errors.Is(err, adapter.ErrServerUnavailable):
			log.Warn().Err(err).Msg("server unavailable, going offline")
			e.setOnline(false)
			e.setState(EngineOffline)
			return nil

		case errors.Is(err, adapter.ErrBadRequest), errors.Is(err, adapter.ErrInternalServerError):
			log.Error().Err(err).Str("event_id", event.EventID).Msg("push failed")
			e.setState(EngineError)
			return err

		default:
			// transport-level failure (timeout, refused connection)
			log.Warn().Err(err).Msg("push transport failure, going offline")
			e.setOnline(false)
			e.setState(EngineOffline)
			return nil
		}
	}
}

// Sync runs one full cycle: queue whatever changed, then drain the outbox.
func (e *syncEngine) Sync(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.queueChangesLocked(ctx); err != nil {
		return err
	}
	return e.processOutboxLocked(ctx)
}

func (e *syncEngine) SetOnline(online bool) {
	e.setOnline(online)
	if online {
		e.stateMu.Lock()
		if e.state == EngineOffline {
			e.state = EnginePending
		}
		e.stateMu.Unlock()
	}
}

func (e *syncEngine) State() EngineState {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.state
}

// Status projects the engine state and outbox depth onto the user-facing
// indicator.
func (e *syncEngine) Status(ctx context.Context) (models.SyncStatus, error) {
	switch e.State() {
	case EngineOffline:
		return models.SyncStatusOffline, nil
	case EngineError:
		return models.SyncStatusError, nil
	case EngineSyncing, EngineConflict:
		return models.SyncStatusSyncing, nil
	}

	depth, err := e.outbox.Depth(ctx)
	if err != nil {
		return models.SyncStatusError, fmt.Errorf("read outbox depth: %w", err)
	}
	if depth > 0 {
		return models.SyncStatusPending, nil
	}
	return models.SyncStatusSynced, nil
}

// applyAck installs the server's post-merge truth. The snapshot is only
// overwritten once the outbox is empty: while later events are still
// queued, the local snapshot is ahead of the server and must be preserved.
func (e *syncEngine) applyAck(ctx context.Context, result models.SyncResult) error {
	depth, err := e.outbox.Depth(ctx)
	if err != nil {
		return fmt.Errorf("read outbox depth: %w", err)
	}

	if depth == 0 {
		return e.overwriteLocal(ctx, result.Entries, result.VaultVersion)
	}

	state, err := e.vaultStore.LoadState(ctx)
	if err != nil {
		return fmt.Errorf("load local state: %w", err)
	}
	if err = e.vaultStore.SaveVersions(ctx, state.VaultVersion, result.VaultVersion); err != nil {
		return fmt.Errorf("save versions: %w", err)
	}
	return nil
}

func (e *syncEngine) overwriteLocal(ctx context.Context, entries []models.VaultEntry, serverVersion int64) error {
	if err := e.vaultStore.ReplaceEntries(ctx, entries); err != nil {
		return fmt.Errorf("replace local entries: %w", err)
	}
	if err := e.vaultStore.SaveVersions(ctx, serverVersion, serverVersion); err != nil {
		return fmt.Errorf("save versions: %w", err)
	}
	return nil
}

// reconcile merges the reported server state into the local snapshot with
// the deterministic LWW resolution, bumps the local vault version past both
// sides, and re-stamps every entry where the local revision won so the next
// delta carries exactly the surviving local changes.
func (e *syncEngine) reconcile(ctx context.Context, serverEntries []models.VaultEntry, serverVersion int64) error {
	state, err := e.vaultStore.LoadState(ctx)
	if err != nil {
		return fmt.Errorf("load local state: %w", err)
	}

	serverDelta := models.SyncDelta{
		Updated:     serverEntries,
		BaseVersion: serverVersion,
	}
	merged := e.core.ResolveConflicts(state.Entries, serverDelta)

	newVersion := maxInt64(state.VaultVersion, serverVersion) + 1

	serverByID := make(map[string]models.VaultEntry, len(serverEntries))
	for _, entry := range serverEntries {
		serverByID[entry.ID] = entry
	}
	for i := range merged {
		if !matchesServerRevision(merged[i], serverByID) {
			merged[i].Version = newVersion
		}
	}

	if err = e.vaultStore.ReplaceEntries(ctx, merged); err != nil {
		return fmt.Errorf("replace merged entries: %w", err)
	}
	if err = e.vaultStore.SaveVersions(ctx, newVersion, serverVersion); err != nil {
		return fmt.Errorf("save versions: %w", err)
	}

	return nil
}

// matchesServerRevision reports whether the merged entry is exactly the
// server's revision, meaning nothing local survived and it needs no re-push.
func matchesServerRevision(merged models.VaultEntry, serverByID map[string]models.VaultEntry) bool {
	server, exists := serverByID[merged.ID]
	if !exists {
		return false
	}
	return merged.Password == server.Password &&
		merged.UpdatedAt.Equal(server.UpdatedAt) &&
		merged.DeviceID == server.DeviceID &&
		merged.IsDeleted == server.IsDeleted &&
		len(merged.EncryptedHistory) == len(server.EncryptedHistory)
}

func (e *syncEngine) setState(state EngineState) {
	e.stateMu.Lock()
	e.state = state
	e.stateMu.Unlock()
}

// tryReconnect checks whether the server is reachable again after the
// engine went offline. An ErrUnauthorized answer still proves reachability;
// the push that follows will surface the auth failure on its own.
func (e *syncEngine) tryReconnect(ctx context.Context) bool {
	if _, err := e.server.GetVault(ctx); err != nil && !errors.Is(err, adapter.ErrUnauthorized) {
		return false
	}
	e.SetOnline(true)
	return true
}

func (e *syncEngine) setOnline(online bool) {
	e.stateMu.Lock()
	e.online = online
	e.stateMu.Unlock()
}

func (e *syncEngine) isOnline() bool {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.online
}
