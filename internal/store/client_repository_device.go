package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/utils"
)

type deviceStore struct {
	*DB
	logger *logger.Logger
}

func NewDeviceStore(db *DB, logger *logger.Logger) DeviceStore {
	return &deviceStore{
		DB:     db,
		logger: logger,
	}
}

// DeviceID returns the stable installation id, generating one on first
// access. The id never changes afterwards: tie-break ordering between
// devices depends on it staying put.
func (d *deviceStore) DeviceID(ctx context.Context) (string, error) {
	log := d.logger.With().Str("func", "deviceStore.DeviceID").Logger()

	var id string
	row := d.DB.QueryRowContext(ctx, selectDeviceID)
	err := row.Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).Msg("failed to read device id")
		return "", fmt.Errorf("failed to read device id: %w", err)
	}

	id = utils.NewUUID()
	if _, err = d.DB.ExecContext(ctx, insertDeviceID, id); err != nil {
		log.Err(err).Msg("failed to persist device id")
		return "", fmt.Errorf("failed to persist device id: %w", err)
	}
	log.Info().Str("device_id", id).Msg("generated new device id")

	return id, nil
}
