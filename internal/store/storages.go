package store

import (
	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
)

// Storages bundles the server-side repositories behind their interfaces.
type Storages struct {
	Users  UserRepository
	Vaults VaultRepository
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		Users:  NewPostgresUserRepository(db, log),
		Vaults: NewPostgresVaultRepository(db, log),
	}
}
