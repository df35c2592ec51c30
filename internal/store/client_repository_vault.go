package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

type localVaultStore struct {
	*DB
	logger *logger.Logger
}

func NewLocalVaultStore(db *DB, logger *logger.Logger) LocalVaultStore {
	return &localVaultStore{
		DB:     db,
		logger: logger,
	}
}

// LoadState reads the snapshot. Rows whose payload no longer decodes are
// dropped on the spot; a missing meta row means a fresh vault at version 0.
func (l *localVaultStore) LoadState(ctx context.Context) (models.VaultState, error) {
	log := l.logger.With().Str("func", "localVaultStore.LoadState").Logger()

	state := models.VaultState{Entries: []models.VaultEntry{}}

	row := l.DB.QueryRowContext(ctx, selectVaultMeta)
	err := row.Scan(&state.VaultVersion, &state.ServerVersion)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).Msg("failed to read vault meta")
		return models.VaultState{}, fmt.Errorf("failed to read vault meta: %w", err)
	}

	rows, err := l.DB.QueryContext(ctx, selectLocalEntries)
	if err != nil {
		log.Err(err).Msg("failed to query local entries")
		return models.VaultState{}, fmt.Errorf("failed to query local entries: %w", err)
	}
	defer rows.Close()

	var corrupt []string
	for rows.Next() {
		var payload string
		if err = rows.Scan(&payload); err != nil {
			log.Err(err).Msg("failed to scan local entry row")
			return models.VaultState{}, fmt.Errorf("failed to scan local entry row: %w", err)
		}

		var entry models.VaultEntry
		if err = json.Unmarshal([]byte(payload), &entry); err != nil || entry.ID == "" {
			log.Warn().Err(err).Msg("dropping corrupt local entry")
			corrupt = append(corrupt, payload)
			continue
		}
		state.Entries = append(state.Entries, entry)
	}
	if err = rows.Err(); err != nil {
		return models.VaultState{}, fmt.Errorf("failed to iterate local entries: %w", err)
	}

	for _, payload := range corrupt {
		if _, err = l.DB.ExecContext(ctx, `DELETE FROM local_entries WHERE payload = $1;`, payload); err != nil {
			log.Err(err).Msg("failed to drop corrupt local entry")
		}
	}

	return state, nil
}

func (l *localVaultStore) SaveEntry(ctx context.Context, entry models.VaultEntry) error {
	log := l.logger.With().Str("func", "localVaultStore.SaveEntry").Str("entry_id", entry.ID).Logger()

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode entry: %w", err)
	}

	if _, err = l.DB.ExecContext(ctx, upsertLocalEntry, entry.ID, string(payload)); err != nil {
		log.Err(err).Msg("failed to upsert local entry")
		return fmt.Errorf("failed to upsert local entry: %w", err)
	}

	return nil
}

func (l *localVaultStore) ReplaceEntries(ctx context.Context, entries []models.VaultEntry) error {
	log := l.logger.With().Str("func", "localVaultStore.ReplaceEntries").Logger()

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteAllLocalEntries); err != nil {
		log.Err(err).Msg("failed to clear local entries")
		return fmt.Errorf("failed to clear local entries: %w", err)
	}

	for _, entry := range entries {
		payload, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to encode entry: %w", err)
		}
		if _, err = tx.ExecContext(ctx, upsertLocalEntry, entry.ID, string(payload)); err != nil {
			log.Err(err).Str("entry_id", entry.ID).Msg("failed to write local entry")
			return fmt.Errorf("failed to write local entry: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("failed to commit entry replacement")
		return fmt.Errorf("failed to commit entry replacement: %w", err)
	}

	return nil
}

func (l *localVaultStore) SaveVersions(ctx context.Context, vaultVersion, serverVersion int64) error {
	log := l.logger.With().Str("func", "localVaultStore.SaveVersions").Logger()

	if _, err := l.DB.ExecContext(ctx, upsertVaultMeta, vaultVersion, serverVersion); err != nil {
		log.Err(err).Msg("failed to persist vault versions")
		return fmt.Errorf("failed to persist vault versions: %w", err)
	}

	return nil
}

func (l *localVaultStore) Purge(ctx context.Context) error {
	log := l.logger.With().Str("func", "localVaultStore.Purge").Logger()

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteAllLocalEntries); err != nil {
		log.Err(err).Msg("failed to purge local entries")
		return fmt.Errorf("failed to purge local entries: %w", err)
	}
	if _, err = tx.ExecContext(ctx, deleteVaultMeta); err != nil {
		log.Err(err).Msg("failed to purge vault meta")
		return fmt.Errorf("failed to purge vault meta: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("failed to commit purge")
		return fmt.Errorf("failed to commit purge: %w", err)
	}

	return nil
}
