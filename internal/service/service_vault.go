// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/store"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/validators"
	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

// vaultService implements the server side of the sync protocol on top of a
// VaultRepository. The optimistic version gate itself lives in the
// repository transaction; this layer validates input and translates storage
// errors for the transport.
type vaultService struct {
	vaultRepository store.VaultRepository
	validator       validators.Validator
	logger          *logger.Logger
}

func NewVaultService(vaultRepository store.VaultRepository, logger *logger.Logger) VaultService {
	return &vaultService{
		vaultRepository: vaultRepository,
		validator:       validators.NewSyncValidator(),
		logger:          logger,
	}
}

// GetVault returns the user's authoritative vault, creating an empty sync
// state at version 0 on first access.
func (v *vaultService) GetVault(ctx context.Context, userID int64) (models.Vault, error) {
	log := logger.FromContext(ctx)

	vault, err := v.vaultRepository.GetOrCreateVault(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("vault read failed")
		return models.Vault{}, fmt.Errorf("vault read failed: %w", err)
	}

	return vault, nil
}

// ApplySync applies a delta behind the optimistic version gate.
//
// A malformed delta (empty EventID, negative BaseVersion, entries without
// ids) is rejected with ErrInvalidDataProvided before touching storage. A
// gate failure surfaces as ErrSyncConflict together with the current server
// state so the transport can build the conflict response; nothing is
// mutated in that case.
func (v *vaultService) ApplySync(ctx context.Context, userID int64, delta models.SyncDelta) (models.Vault, error) {
	log := logger.FromContext(ctx)

	if err := v.validator.Validate(ctx, delta); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("invalid sync delta provided")
		return models.Vault{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	vault, err := v.vaultRepository.ApplySync(ctx, userID, delta)
	if err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			log.Info().
				Int64("user_id", userID).
				Int64("base_version", delta.BaseVersion).
				Int64("vault_version", vault.VaultVersion).
				Msg("sync conflict")
			return vault, ErrSyncConflict
		}
		log.Err(err).Int64("user_id", userID).Msg("sync application failed")
		return models.Vault{}, fmt.Errorf("sync application failed: %w", err)
	}

	return vault, nil
}
