package service

import (
	"github.com/Konduru-Hemesh/secure-password-demo/internal/adapter"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/store"
)

// ClientServices bundles the client-side services: auth, local-first vault
// CRUD, the sync engine, and its background job.
type ClientServices struct {
	AuthService  ClientAuthService
	VaultService ClientVaultService
	SyncEngine   SyncEngine
	SyncJob      ClientSyncJob
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, logger *logger.Logger) *ClientServices {
	core := NewSyncService()
	engine := NewSyncEngine(storages.Vault, storages.Outbox, storages.Device, serverAdapter, core, logger)

	vaultSvc := NewClientVaultService(storages.Vault, storages.Device, logger)
	vaultSvc.SetChangeNotifier(engine.NotifyChange)

	return &ClientServices{
		AuthService:  NewClientAuthService(serverAdapter, storages.Vault, storages.Outbox, logger),
		VaultService: vaultSvc,
		SyncEngine:   engine,
		SyncJob:      NewClientSyncJob(engine),
	}
}
