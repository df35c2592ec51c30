package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Konduru-Hemesh/secure-password-demo/internal/adapter"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/config"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/logger"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/service"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/store"
	"github.com/Konduru-Hemesh/secure-password-demo/internal/workers"
	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

// App is the client runtime: local storage, server adapter, services, and
// the background sync worker bound together for one process.
type App struct {
	cfg      *config.ClientConfig
	db       *store.DB
	services *service.ClientServices
	logger   *logger.Logger
}

func NewApp() (*App, error) {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}

	log := logger.NewClientLogger("vault-client")

	db, err := store.NewConnectSQLite(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	storages := store.NewClientStorages(db, log)

	serverAdapter := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{
		BaseURL: cfg.Adapter.BaseURL,
		Timeout: cfg.Adapter.RequestTimeout,
	})

	svcs := service.NewClientServices(storages, serverAdapter, log)

	return &App{
		cfg:      cfg,
		db:       db,
		services: svcs,
		logger:   log,
	}, nil
}

// Run authenticates, starts the sync engine and the background worker, and
// blocks until the process receives a termination signal.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := a.authenticate(ctx); err != nil {
		return err
	}

	if err := a.services.SyncEngine.Start(ctx); err != nil {
		// Offline and error states are recoverable: the engine keeps local
		// data usable and the worker retries on its interval.
		a.logger.Err(err).Msg("sync engine started degraded")
	}

	workers.NewWorkers(ctx, a.services.SyncJob, a.cfg.Workers).Run()
	defer a.services.SyncJob.Stop()

	if status, statusErr := a.services.SyncEngine.Status(ctx); statusErr == nil {
		a.logger.Info().Str("status", string(status)).Msg("client running")
	}

	<-ctx.Done()

	a.logger.Info().Msg("client shutting down")
	return a.db.Close()
}

// authenticate logs in with credentials from the environment, registering
// the account first when it does not exist yet.
func (a *App) authenticate(ctx context.Context) error {
	user := models.User{
		Login:    os.Getenv("VAULT_LOGIN"),
		Password: os.Getenv("VAULT_PASSWORD"),
	}

	err := a.services.AuthService.Login(ctx, user)
	if err == nil {
		return nil
	}
	if !errors.Is(err, adapter.ErrUnauthorized) {
		return fmt.Errorf("login: %w", err)
	}

	if err := a.services.AuthService.Register(ctx, user); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}
