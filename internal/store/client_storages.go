package store

import (
	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
)

// ClientStorages bundles the client-side stores behind their interfaces.
type ClientStorages struct {
	Vault  LocalVaultStore
	Outbox OutboxStore
	Device DeviceStore
}

func NewClientStorages(db *DB, log *logger.Logger) *ClientStorages {
	return &ClientStorages{
		Vault:  NewLocalVaultStore(db, log),
		Outbox: NewOutboxStore(db, log),
		Device: NewDeviceStore(db, log),
	}
}
