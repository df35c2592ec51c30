package store

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

const (
	createUser = `INSERT INTO users (login, password_hash)
    VALUES ($1, $2)
    RETURNING user_id, login, password_hash, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, created_at
    FROM users
    WHERE login = $1;`

	// ensureVaultExists initializes the sync state at version 0 on first
	// access without disturbing an existing row.
	ensureVaultExists = `INSERT INTO vaults (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING;`

	selectVault = `SELECT vault_version, last_synced_at
		FROM vaults
		WHERE user_id = $1;`

	// selectVaultForUpdate takes a row lock on the user's vault so that
	// concurrent sync requests for the same user serialize: the loser of
	// the race observes the committed version bump and fails the gate.
	selectVaultForUpdate = `SELECT vault_version, last_synced_at
		FROM vaults
		WHERE user_id = $1
		FOR UPDATE;`

	selectVaultEntries = `SELECT
			entry_id,
			website,
			username,
			password,
			security_question,
			security_answer,
			category,
			is_favorite,
			password_history,
			encrypted_history,
			version,
			updated_at,
			device_id,
			is_deleted,
			deleted_at
		FROM vault_entries
		WHERE user_id = $1
		ORDER BY entry_id;`

	deleteVaultEntries = `DELETE FROM vault_entries
		WHERE user_id = $1 AND entry_id = ANY($2);`

	commitVaultVersion = `UPDATE vaults
		SET vault_version = $2, last_synced_at = $3
		WHERE user_id = $1;`
)

// upsertEntrySuffix keeps merge semantics in one place: every payload
// column takes the incoming value, while encrypted_history falls back to
// the stored value when the incoming entry carries none, so a client that
// never saw a conflict cannot wipe another device's audit trail.
const upsertEntrySuffix = `ON CONFLICT (user_id, entry_id) DO UPDATE SET
		website = EXCLUDED.website,
		username = EXCLUDED.username,
		password = EXCLUDED.password,
		security_question = EXCLUDED.security_question,
		security_answer = EXCLUDED.security_answer,
		category = EXCLUDED.category,
		is_favorite = EXCLUDED.is_favorite,
		password_history = EXCLUDED.password_history,
		encrypted_history = CASE
			WHEN EXCLUDED.encrypted_history <> '[]'::jsonb THEN EXCLUDED.encrypted_history
			ELSE vault_entries.encrypted_history
		END,
		version = EXCLUDED.version,
		updated_at = EXCLUDED.updated_at,
		device_id = EXCLUDED.device_id,
		is_deleted = EXCLUDED.is_deleted,
		deleted_at = EXCLUDED.deleted_at`

// buildUpsertEntryQuery builds the INSERT ... ON CONFLICT statement for a
// single entry, stamping the server-assigned version.
func buildUpsertEntryQuery(userID int64, entry models.VaultEntry, version int64) (string, []any, error) {
	passwordHistory, err := json.Marshal(historyOrEmpty(entry.PasswordHistory))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	encryptedHistory, err := json.Marshal(lossesOrEmpty(entry.EncryptedHistory))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := sq.Insert("vault_entries").
		Columns(
			"user_id",
			"entry_id",
			"website",
			"username",
			"password",
			"security_question",
			"security_answer",
			"category",
			"is_favorite",
			"password_history",
			"encrypted_history",
			"version",
			"updated_at",
			"device_id",
			"is_deleted",
			"deleted_at",
		).
		Values(
			userID,
			entry.ID,
			entry.Website,
			entry.Username,
			entry.Password,
			entry.SecurityQuestion,
			entry.SecurityAnswer,
			entry.Category,
			entry.IsFavorite,
			passwordHistory,
			encryptedHistory,
			version,
			entry.UpdatedAt,
			entry.DeviceID,
			entry.IsDeleted,
			entry.DeletedAt,
		).
		Suffix(upsertEntrySuffix).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func historyOrEmpty(h []models.PasswordHistoryEntry) []models.PasswordHistoryEntry {
	if h == nil {
		return []models.PasswordHistoryEntry{}
	}
	return h
}

func lossesOrEmpty(h []models.LostVersion) []models.LostVersion {
	if h == nil {
		return []models.LostVersion{}
	}
	return h
}
