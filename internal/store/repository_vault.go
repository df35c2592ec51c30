// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

// PostgresVaultRepository is the authoritative server-side vault store.
type PostgresVaultRepository struct {
	db  *DB
	log *logger.Logger
	now func() time.Time
}

func NewPostgresVaultRepository(db *DB, log *logger.Logger) *PostgresVaultRepository {
	return &PostgresVaultRepository{db: db, log: log, now: time.Now}
}

// GetOrCreateVault returns the user's vault, initializing an empty sync
// state at version 0 on first access.
func (r *PostgresVaultRepository) GetOrCreateVault(ctx context.Context, userID int64) (models.Vault, error) {
	log := r.log.With().Str("func", "PostgresVaultRepository.GetOrCreateVault").Int64("user_id", userID).Logger()

	_, err := r.db.ExecContext(ctx, ensureVaultExists, userID)
	if err != nil {
		log.Error().Err(err).Msg("error ensuring vault row")
		return models.Vault{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	vault := models.Vault{UserID: userID}
	var lastSynced sql.NullTime
	row := r.db.QueryRowContext(ctx, selectVault, userID)
	if err = row.Scan(&vault.VaultVersion, &lastSynced); err != nil {
		log.Error().Err(err).Msg("error reading vault row")
		return models.Vault{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if lastSynced.Valid {
		vault.LastSyncedAt = lastSynced.Time
	}

	vault.Entries, err = r.readEntries(ctx, r.db.DB, userID)
	if err != nil {
		log.Error().Err(err).Msg("error reading vault entries")
		return models.Vault{}, err
	}

	return vault, nil
}

// ApplySync runs the merge transaction. The vault row is locked with
// SELECT ... FOR UPDATE so concurrent deltas for one user serialize; the
// version gate then decides between commit and conflict. On gate failure
// the current server state is returned with ErrVersionConflict and nothing
// is written.
func (r *PostgresVaultRepository) ApplySync(ctx context.Context, userID int64, delta models.SyncDelta) (models.Vault, error) {
	log := r.log.With().
		Str("func", "PostgresVaultRepository.ApplySync").
		Int64("user_id", userID).
		Str("event_id", delta.EventID).
		Logger()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("error starting transaction")
		return models.Vault{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, ensureVaultExists, userID); err != nil {
		log.Error().Err(err).Msg("error ensuring vault row")
		return models.Vault{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	vault := models.Vault{UserID: userID}
	var lastSynced sql.NullTime
	row := tx.QueryRowContext(ctx, selectVaultForUpdate, userID)
	if err = row.Scan(&vault.VaultVersion, &lastSynced); err != nil {
		log.Error().Err(err).Msg("error locking vault row")
		return models.Vault{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if lastSynced.Valid {
		vault.LastSyncedAt = lastSynced.Time
	}

	if delta.BaseVersion != vault.VaultVersion {
		log.Info().
			Int64("base_version", delta.BaseVersion).
			Int64("vault_version", vault.VaultVersion).
			Msg("sync rejected by version gate")

		vault.Entries, err = r.readEntries(ctx, tx, userID)
		if err != nil {
			return models.Vault{}, err
		}
		return vault, ErrVersionConflict
	}

	nextVersion := vault.VaultVersion + 1

	for _, entry := range append(delta.Added, delta.Updated...) {
		query, args, err := buildUpsertEntryQuery(userID, entry, nextVersion)
		if err != nil {
			log.Error().Err(err).Str("entry_id", entry.ID).Msg("error building upsert")
			return models.Vault{}, err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Error().Err(err).Str("entry_id", entry.ID).Msg("error upserting entry")
			return models.Vault{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if len(delta.Deleted) > 0 {
		if _, err = tx.ExecContext(ctx, deleteVaultEntries, userID, delta.Deleted); err != nil {
			log.Error().Err(err).Msg("error deleting entries")
			return models.Vault{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	syncedAt := r.now().UTC()
	if _, err = tx.ExecContext(ctx, commitVaultVersion, userID, nextVersion, syncedAt); err != nil {
		log.Error().Err(err).Msg("error advancing vault version")
		return models.Vault{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	vault.VaultVersion = nextVersion
	vault.LastSyncedAt = syncedAt
	vault.Entries, err = r.readEntries(ctx, tx, userID)
	if err != nil {
		return models.Vault{}, err
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("error committing sync transaction")
		return models.Vault{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().Int64("vault_version", nextVersion).Msg("sync applied")
	return vault, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *PostgresVaultRepository) readEntries(ctx context.Context, q queryer, userID int64) ([]models.VaultEntry, error) {
	rows, err := q.QueryContext(ctx, selectVaultEntries, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.VaultEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func scanEntry(rows *sql.Rows) (models.VaultEntry, error) {
	var (
		entry            models.VaultEntry
		passwordHistory  []byte
		encryptedHistory []byte
		deletedAt        sql.NullTime
	)

	err := rows.Scan(
		&entry.ID,
		&entry.Website,
		&entry.Username,
		&entry.Password,
		&entry.SecurityQuestion,
		&entry.SecurityAnswer,
		&entry.Category,
		&entry.IsFavorite,
		&passwordHistory,
		&encryptedHistory,
		&entry.Version,
		&entry.UpdatedAt,
		&entry.DeviceID,
		&entry.IsDeleted,
		&deletedAt,
	)
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if len(passwordHistory) > 0 {
		if err = json.Unmarshal(passwordHistory, &entry.PasswordHistory); err != nil {
			return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
	}
	if len(encryptedHistory) > 0 {
		if err = json.Unmarshal(encryptedHistory, &entry.EncryptedHistory); err != nil {
			return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
	}
	if len(entry.PasswordHistory) == 0 {
		entry.PasswordHistory = nil
	}
	if len(entry.EncryptedHistory) == 0 {
		entry.EncryptedHistory = nil
	}
	if deletedAt.Valid {
		ts := deletedAt.Time
		entry.DeletedAt = &ts
	}

	return entry, nil
}
