// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/store"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/utils"
	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

// clientVaultService implements local-first CRUD over the client snapshot.
//
// Every mutation stamps the entry with version max(vaultVersion,
// serverVersion)+1, the current time, and this installation's device id,
// then advances the local vault version to the same value. The two versions
// diverging is exactly the signal that unsynced changes exist.
type clientVaultService struct {
	vaultStore  store.LocalVaultStore
	deviceStore store.DeviceStore
	logger      *logger.Logger

	// notify pings the sync engine after a successful mutation. Wired in
	// NewClientServices; a no-op until then.
	notify func()

	now   func() time.Time
	idGen func() string
}

func NewClientVaultService(vaultStore store.LocalVaultStore, deviceStore store.DeviceStore, logger *logger.Logger) *clientVaultService {
	return &clientVaultService{
		vaultStore:  vaultStore,
		deviceStore: deviceStore,
		logger:      logger,
		notify:      func() {},
		now:         time.Now,
		idGen:       utils.NewUUID,
	}
}

// SetChangeNotifier wires the engine's change signal. Must be called before
// the first mutation if queueing is expected to happen automatically.
func (c *clientVaultService) SetChangeNotifier(notify func()) {
	if notify != nil {
		c.notify = notify
	}
}

func (c *clientVaultService) List(ctx context.Context) ([]models.VaultEntry, error) {
	state, err := c.vaultStore.LoadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("load local state: %w", err)
	}

	visible := make([]models.VaultEntry, 0, len(state.Entries))
	for _, entry := range state.Entries {
		if entry.IsDeleted {
			continue
		}
		visible = append(visible, entry)
	}

	return visible, nil
}

func (c *clientVaultService) Get(ctx context.Context, entryID string) (models.VaultEntry, error) {
	state, err := c.vaultStore.LoadState(ctx)
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("load local state: %w", err)
	}

	for _, entry := range state.Entries {
		if entry.ID == entryID && !entry.IsDeleted {
			return entry, nil
		}
	}

	return models.VaultEntry{}, ErrEntryNotFound
}

func (c *clientVaultService) Add(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	log := c.logger.With().Str("func", "clientVaultService.Add").Logger()

	if entry.Website == "" && entry.Username == "" && entry.Password == "" {
		return models.VaultEntry{}, ErrInvalidDataProvided
	}

	state, err := c.vaultStore.LoadState(ctx)
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("load local state: %w", err)
	}

	deviceID, err := c.deviceStore.DeviceID(ctx)
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("get device id: %w", err)
	}

	entry.ID = c.idGen()
	entry.PasswordHistory = nil
	entry.EncryptedHistory = nil
	entry.IsDeleted = false
	entry.DeletedAt = nil
	c.stamp(&entry, state, deviceID)

	if err = c.persist(ctx, entry, entry.Version); err != nil {
		return models.VaultEntry{}, err
	}

	log.Debug().Str("entry_id", entry.ID).Int64("version", entry.Version).Msg("entry added")
	c.notify()
	return entry, nil
}

func (c *clientVaultService) Update(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	log := c.logger.With().Str("func", "clientVaultService.Update").Str("entry_id", entry.ID).Logger()

	state, err := c.vaultStore.LoadState(ctx)
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("load local state: %w", err)
	}

	current, found := findEntry(state.Entries, entry.ID)
	if !found || current.IsDeleted {
		return models.VaultEntry{}, ErrEntryNotFound
	}

	deviceID, err := c.deviceStore.DeviceID(ctx)
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("get device id: %w", err)
	}

	// histories are owned by the stored copy; incoming payloads never
	// overwrite them directly
	entry.PasswordHistory = current.PasswordHistory
	entry.EncryptedHistory = current.EncryptedHistory
	entry.IsDeleted = false
	entry.DeletedAt = nil

	if entry.Password != current.Password && current.Password != "" {
		entry.PasswordHistory = pushPasswordHistory(current.PasswordHistory, current.Password, c.now())
	}

	c.stamp(&entry, state, deviceID)

	if err = c.persist(ctx, entry, entry.Version); err != nil {
		return models.VaultEntry{}, err
	}

	log.Debug().Int64("version", entry.Version).Msg("entry updated")
	c.notify()
	return entry, nil
}

func (c *clientVaultService) Delete(ctx context.Context, entryID string) error {
	log := c.logger.With().Str("func", "clientVaultService.Delete").Str("entry_id", entryID).Logger()

	state, err := c.vaultStore.LoadState(ctx)
	if err != nil {
		return fmt.Errorf("load local state: %w", err)
	}

	current, found := findEntry(state.Entries, entryID)
	if !found || current.IsDeleted {
		return ErrEntryNotFound
	}

	deviceID, err := c.deviceStore.DeviceID(ctx)
	if err != nil {
		return fmt.Errorf("get device id: %w", err)
	}

	now := c.now()
	current.IsDeleted = true
	current.DeletedAt = &now
	c.stamp(&current, state, deviceID)

	if err = c.persist(ctx, current, current.Version); err != nil {
		return err
	}

	log.Debug().Int64("version", current.Version).Msg("entry tombstoned")
	c.notify()
	return nil
}

// stamp assigns the mutation metadata: the vault-scoped version, the wall
// clock, and the device id.
func (c *clientVaultService) stamp(entry *models.VaultEntry, state models.VaultState, deviceID string) {
	entry.Version = maxInt64(state.VaultVersion, state.ServerVersion) + 1
	entry.UpdatedAt = c.now().UTC()
	entry.DeviceID = deviceID
}

func (c *clientVaultService) persist(ctx context.Context, entry models.VaultEntry, newVaultVersion int64) error {
	state, err := c.vaultStore.LoadState(ctx)
	if err != nil {
		return fmt.Errorf("load local state: %w", err)
	}

	if err = c.vaultStore.SaveEntry(ctx, entry); err != nil {
		return fmt.Errorf("save entry: %w", err)
	}
	if err = c.vaultStore.SaveVersions(ctx, newVaultVersion, state.ServerVersion); err != nil {
		return fmt.Errorf("save versions: %w", err)
	}

	return nil
}

func findEntry(entries []models.VaultEntry, entryID string) (models.VaultEntry, bool) {
	for _, entry := range entries {
		if entry.ID == entryID {
			return entry.Clone(), true
		}
	}
	return models.VaultEntry{}, false
}

// pushPasswordHistory prepends the replaced password, keeping the ring at
// models.PasswordHistoryLimit.
func pushPasswordHistory(history []models.PasswordHistoryEntry, oldPassword string, changedAt time.Time) []models.PasswordHistoryEntry {
	updated := append(
		[]models.PasswordHistoryEntry{{Password: oldPassword, ChangedAt: changedAt.UTC()}},
		history...,
	)
	if len(updated) > models.PasswordHistoryLimit {
		updated = updated[:models.PasswordHistoryLimit]
	}
	return updated
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
