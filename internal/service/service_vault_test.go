package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/mock"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/store"
	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

func TestVaultService_GetVault(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockVaultRepository(ctrl)
	svc := NewVaultService(repo, logger.Nop())

	ctx := context.Background()
	want := models.Vault{UserID: 7, VaultVersion: 3, Entries: []models.VaultEntry{{ID: "e1"}}}

	repo.EXPECT().GetOrCreateVault(ctx, int64(7)).Return(want, nil)

	got, err := svc.GetVault(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestVaultService_GetVault_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockVaultRepository(ctrl)
	svc := NewVaultService(repo, logger.Nop())

	ctx := context.Background()
	repo.EXPECT().GetOrCreateVault(ctx, int64(7)).Return(models.Vault{}, errors.New("db down"))

	_, err := svc.GetVault(ctx, 7)
	require.Error(t, err)
}

func TestVaultService_ApplySync_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockVaultRepository(ctrl)
	svc := NewVaultService(repo, logger.Nop())

	ctx := context.Background()
	delta := models.SyncDelta{EventID: "evt-1", BaseVersion: 2}
	want := models.Vault{UserID: 7, VaultVersion: 3, LastSyncedAt: time.Now()}

	repo.EXPECT().ApplySync(ctx, int64(7), delta).Return(want, nil)

	got, err := svc.ApplySync(ctx, 7, delta)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.VaultVersion)
}

func TestVaultService_ApplySync_ConflictCarriesServerState(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockVaultRepository(ctrl)
	svc := NewVaultService(repo, logger.Nop())

	ctx := context.Background()
	delta := models.SyncDelta{EventID: "evt-1", BaseVersion: 2}
	serverState := models.Vault{UserID: 7, VaultVersion: 5, Entries: []models.VaultEntry{{ID: "e1", Version: 5}}}

	repo.EXPECT().ApplySync(ctx, int64(7), delta).Return(serverState, store.ErrVersionConflict)

	got, err := svc.ApplySync(ctx, 7, delta)
	require.ErrorIs(t, err, ErrSyncConflict)
	assert.Equal(t, int64(5), got.VaultVersion)
	require.Len(t, got.Entries, 1)
}

func TestVaultService_ApplySync_RejectsInvalidDelta(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockVaultRepository(ctrl)
	svc := NewVaultService(repo, logger.Nop())

	ctx := context.Background()

	_, err := svc.ApplySync(ctx, 7, models.SyncDelta{EventID: "", BaseVersion: 0})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.ApplySync(ctx, 7, models.SyncDelta{EventID: "evt-1", BaseVersion: -1})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
