package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

// textArrayConverter renders []string as a Postgres array literal; the default
// converter refuses slices, which the deleted-IDs bind needs.
type textArrayConverter struct{}

func (textArrayConverter) ConvertValue(v any) (driver.Value, error) {
	if ids, ok := v.([]string); ok {
		return "{" + strings.Join(ids, ",") + "}", nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

func newTestVaultRepo(t *testing.T) (*PostgresVaultRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(textArrayConverter{}))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := NewPostgresVaultRepository(&DB{DB: db, logger: l}, l)
	return repo, mock, db
}

func entryColumns() []string {
	return []string{
		"entry_id", "website", "username", "password",
		"security_question", "security_answer", "category", "is_favorite",
		"password_history", "encrypted_history",
		"version", "updated_at", "device_id", "is_deleted", "deleted_at",
	}
}

func addEntryRow(rows *sqlmock.Rows, id string, version int64, updatedAt time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, "example.com", "john", "cipher",
		"", "", "", false,
		[]byte(`[]`), []byte(`[]`),
		version, updatedAt, "device-a", false, nil,
	)
}

func TestGetOrCreateVault_FirstAccess(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO vaults").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT vault_version").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"vault_version", "last_synced_at"}).AddRow(0, nil))
	mock.ExpectQuery("SELECT").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(entryColumns()))

	vault, err := repo.GetOrCreateVault(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vault.VaultVersion != 0 {
		t.Errorf("expected version 0 on first access, got %d", vault.VaultVersion)
	}
	if vault.Entries == nil || len(vault.Entries) != 0 {
		t.Errorf("expected empty non-nil entries, got %v", vault.Entries)
	}
}

func TestGetOrCreateVault_ExistingVault(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectExec("INSERT INTO vaults").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT vault_version").
		WillReturnRows(sqlmock.NewRows([]string{"vault_version", "last_synced_at"}).AddRow(3, now))
	mock.ExpectQuery("SELECT").
		WillReturnRows(addEntryRow(sqlmock.NewRows(entryColumns()), "e1", 3, now))

	vault, err := repo.GetOrCreateVault(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vault.VaultVersion != 3 {
		t.Errorf("expected version 3, got %d", vault.VaultVersion)
	}
	if len(vault.Entries) != 1 || vault.Entries[0].ID != "e1" {
		t.Errorf("unexpected entries: %v", vault.Entries)
	}
}

func TestApplySync_VersionGateRejectsStaleBase(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO vaults").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"vault_version", "last_synced_at"}).AddRow(5, now))
	mock.ExpectQuery("SELECT").
		WillReturnRows(addEntryRow(sqlmock.NewRows(entryColumns()), "e1", 5, now))
	mock.ExpectRollback()

	delta := models.SyncDelta{
		EventID:     "evt-1",
		BaseVersion: 3,
		Updated:     []models.VaultEntry{{ID: "e1", Password: "changed"}},
	}

	vault, err := repo.ApplySync(context.Background(), 7, delta)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
	if vault.VaultVersion != 5 {
		t.Errorf("expected current server version 5 in conflict response, got %d", vault.VaultVersion)
	}
	if len(vault.Entries) != 1 {
		t.Errorf("expected server entries in conflict response, got %v", vault.Entries)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestApplySync_MatchingBaseCommitsNextVersion(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	repo.now = func() time.Time { return now }

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO vaults").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"vault_version", "last_synced_at"}).AddRow(3, now))
	mock.ExpectExec("INSERT INTO vault_entries").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE vaults").
		WithArgs(int64(7), int64(4), now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT").
		WillReturnRows(addEntryRow(sqlmock.NewRows(entryColumns()), "e1", 4, now))
	mock.ExpectCommit()

	delta := models.SyncDelta{
		EventID:     "evt-1",
		DeviceID:    "device-a",
		BaseVersion: 3,
		Updated:     []models.VaultEntry{{ID: "e1", Password: "cipher", UpdatedAt: now}},
	}

	vault, err := repo.ApplySync(context.Background(), 7, delta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vault.VaultVersion != 4 {
		t.Errorf("expected vault version 4, got %d", vault.VaultVersion)
	}
	if !vault.LastSyncedAt.Equal(now) {
		t.Errorf("expected lastSyncedAt %v, got %v", now, vault.LastSyncedAt)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestApplySync_DeletedIDsAreRemoved(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	repo.now = func() time.Time { return now }

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO vaults").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"vault_version", "last_synced_at"}).AddRow(2, now))
	mock.ExpectExec("DELETE FROM vault_entries").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE vaults").
		WithArgs(int64(7), int64(3), now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows(entryColumns()))
	mock.ExpectCommit()

	delta := models.SyncDelta{
		EventID:     "evt-2",
		BaseVersion: 2,
		Deleted:     []string{"e1"},
	}

	vault, err := repo.ApplySync(context.Background(), 7, delta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vault.VaultVersion != 3 {
		t.Errorf("expected vault version 3, got %d", vault.VaultVersion)
	}
	if len(vault.Entries) != 0 {
		t.Errorf("expected no entries after delete, got %v", vault.Entries)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestApplySync_BeginError(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("connection lost"))

	_, err := repo.ApplySync(context.Background(), 7, models.SyncDelta{BaseVersion: 0})
	if !errors.Is(err, ErrBeginningTransaction) {
		t.Fatalf("expected ErrBeginningTransaction, got %v", err)
	}
}
